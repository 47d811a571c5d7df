package pages

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jonathan/jobpilot/internal/present"
	"github.com/jonathan/jobpilot/internal/types"
	"golang.org/x/sync/errgroup"
)

// StatCard is one tile of the dashboard summary grid.
type StatCard struct {
	Label string
	Value string
}

// DashboardView is a snapshot of the dashboard.
type DashboardView struct {
	Status      Status
	User        *types.User
	Stats       types.ApplicationStats
	Cards       []StatCard
	Recent      []types.Application
	Resume      *types.Resume
	UploadError string
}

// Dashboard loads the summary screen: stats, recent applications, résumé and profile.
type Dashboard struct {
	lifecycle
	deps Deps
	view DashboardView
}

// NewDashboard creates a Dashboard controller.
func NewDashboard(deps Deps) *Dashboard {
	return &Dashboard{deps: deps.withDefaults()}
}

// Mount guards the session and runs the four initial fetches concurrently.
func (d *Dashboard) Mount(parent context.Context) error {
	if err := Guard(d.deps.Store, d.deps.Navigator); err != nil {
		return err
	}
	ctx := d.mount(parent)
	d.update(ctx, func() { d.view = DashboardView{Status: Loading()} })

	svc := d.deps.Services
	var (
		apps    types.Envelope[[]types.Application]
		stats   types.Envelope[types.ApplicationStats]
		resume  types.Envelope[types.Resume]
		profile types.Envelope[types.User]
	)
	var g errgroup.Group
	g.Go(func() error { apps = svc.Applications.GetApplications(ctx); return nil })
	g.Go(func() error { stats = svc.Applications.GetApplicationStats(ctx); return nil })
	g.Go(func() error { resume = svc.Resume.GetResume(ctx); return nil })
	g.Go(func() error { profile = svc.Auth.GetProfile(ctx); return nil })
	_ = g.Wait()

	d.update(ctx, func() {
		switch {
		case !apps.Success:
			d.view.Status = Failed(apps.MessageOr("Failed to load applications"))
		case !stats.Success:
			d.view.Status = Failed(stats.MessageOr("Failed to load stats"))
		default:
			d.view.Status = Ready()
		}
		if apps.HasData() {
			d.view.Recent = present.RecentApplications(*apps.Data, present.DefaultRecentCount)
		}
		if stats.HasData() {
			d.view.Stats = *stats.Data
		}
		d.view.Cards = statCards(d.view.Stats)
		if resume.HasData() {
			d.view.Resume = resume.Data
		}
		if profile.HasData() {
			d.view.User = profile.Data
		}
	})

	d.deps.Log.WithField("phase", d.View().Status.Phase.String()).Debug("dashboard mounted")
	return nil
}

// Upload replaces the résumé shown on the dashboard without refetching anything else.
func (d *Dashboard) Upload(filename string, content []byte) error {
	ctx, err := d.active()
	if err != nil {
		return err
	}
	env := d.deps.Services.Resume.UploadResume(ctx, filename, content)
	var failure error
	d.update(ctx, func() {
		if env.HasData() {
			d.view.Resume = env.Data
			d.view.UploadError = ""
			return
		}
		d.view.UploadError = env.MessageOr("Failed to upload resume")
		failure = &Failure{Message: d.view.UploadError, Local: env.IsLocal()}
	})
	return failure
}

// View returns a snapshot of the dashboard.
func (d *Dashboard) View() DashboardView {
	var v DashboardView
	d.withLock(func() {
		v = d.view
		v.Cards = append([]StatCard(nil), d.view.Cards...)
		v.Recent = append([]types.Application(nil), d.view.Recent...)
	})
	return v
}

func statCards(s types.ApplicationStats) []StatCard {
	return []StatCard{
		{Label: "Total Applications", Value: fmt.Sprint(s.TotalApplications)},
		{Label: "Interviews", Value: fmt.Sprint(s.Interviews)},
		{Label: "Avg Match Score", Value: fmt.Sprintf("%d%%", s.AvgMatchScore)},
		{Label: "This Week", Value: fmt.Sprint(s.ThisWeek)},
	}
}

// notFound reports whether env is the backend's "nothing here" answer.
func notFound[T any](env types.Envelope[T]) bool {
	return !env.Success && env.StatusCode == http.StatusNotFound
}
