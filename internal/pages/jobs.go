package pages

import (
	"context"
	"maps"

	"github.com/jonathan/jobpilot/internal/present"
	"github.com/jonathan/jobpilot/internal/session"
	"github.com/jonathan/jobpilot/internal/types"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// JobsView is a snapshot of the job search screen.
type JobsView struct {
	Status       Status
	Resume       *types.Resume
	Ranked       bool
	Filters      types.JobFilters
	Page         present.Page[types.Job]
	Total        int
	DisplayCount int
	LoadingMore  bool
	ApplyingID   string
	Applied      map[string]bool
	ActionError  string
}

// Jobs lists postings, ranked by match score when the user has a résumé.
type Jobs struct {
	lifecycle
	deps Deps

	status       Status
	resume       *types.Resume
	ranked       bool
	filters      types.JobFilters
	jobs         []types.Job
	displayCount int
	loadingMore  bool
	applyingID   string
	applied      map[string]bool
	actionError  string
}

// NewJobs creates a Jobs controller.
func NewJobs(deps Deps) *Jobs {
	deps = deps.withDefaults()
	return &Jobs{deps: deps, displayCount: deps.PageSize, applied: map[string]bool{}}
}

// Mount guards the session and loads the initial list.
func (j *Jobs) Mount(parent context.Context) error {
	if err := Guard(j.deps.Store, j.deps.Navigator); err != nil {
		return err
	}
	ctx := j.mount(parent)
	j.load(ctx)
	return nil
}

// load fetches the résumé and the unranked list together. The ranked list is only
// requested once a résumé is known to exist, and the unranked list is the fallback.
func (j *Jobs) load(ctx context.Context) {
	j.update(ctx, func() {
		j.status = Loading()
		j.actionError = ""
	})

	svc := j.deps.Services
	var (
		resume types.Envelope[types.Resume]
		all    types.Envelope[[]types.Job]
	)
	var g errgroup.Group
	g.Go(func() error { resume = svc.Resume.GetResume(ctx); return nil })
	g.Go(func() error { all = svc.Jobs.GetJobs(ctx, types.JobFilters{}); return nil })
	_ = g.Wait()

	list, ranked := all, false
	if resume.HasData() {
		matched := svc.Jobs.GetMatchedJobs(ctx)
		if matched.HasData() {
			list, ranked = matched, true
		} else {
			j.deps.Log.WithField("status", matched.StatusCode).Debug("matched jobs unavailable, using unranked list")
		}
	}

	j.update(ctx, func() {
		j.resume = nil
		if resume.HasData() {
			j.resume = resume.Data
		}
		j.filters = types.JobFilters{}
		j.displayCount = j.deps.PageSize
		if !list.Success {
			j.jobs = nil
			j.ranked = false
			j.status = Failed(list.MessageOr("Failed to load jobs"))
			return
		}
		j.jobs = derefSlice(list.Data)
		j.ranked = ranked
		j.status = Ready()
	})
}

// Search replaces the list with GET /jobs results for filters and resets pagination.
// Filters are trimmed and empty ones are omitted. When a list is already on screen a
// failed search keeps it, with its filters and pagination, and reports the failure
// as an action error.
func (j *Jobs) Search(filters types.JobFilters) error {
	ctx, err := j.active()
	if err != nil {
		return err
	}
	active := filters.Normalize()
	var (
		loaded      bool
		prevFilters types.JobFilters
		prevDisplay int
	)
	j.update(ctx, func() {
		loaded = j.status.Phase == PhaseReady
		prevFilters, prevDisplay = j.filters, j.displayCount
		j.status = Loading()
		j.actionError = ""
		j.displayCount = j.deps.PageSize
		j.filters = active
	})

	env := j.deps.Services.Jobs.GetJobs(ctx, active)

	var failure error
	j.update(ctx, func() {
		if !env.Success {
			msg := env.MessageOr("Failed to search jobs")
			failure = &Failure{Message: msg, Local: env.IsLocal()}
			if !loaded {
				j.status = Failed(msg)
				return
			}
			j.status = Ready()
			j.actionError = msg
			j.filters, j.displayCount = prevFilters, prevDisplay
			return
		}
		j.jobs = derefSlice(env.Data)
		j.ranked = false
		j.status = Ready()
	})
	return failure
}

// ClearFilters drops the active filters and reloads the initial list.
func (j *Jobs) ClearFilters() error {
	ctx, err := j.active()
	if err != nil {
		return err
	}
	j.load(ctx)
	return nil
}

// Apply creates an application for job. Without a résumé the user is sent to the
// upload page instead. The job is marked applied only when the backend accepts it.
func (j *Jobs) Apply(job types.Job) error {
	ctx, err := j.active()
	if err != nil {
		return err
	}

	var resume *types.Resume
	j.withLock(func() { resume = j.resume })
	if resume == nil {
		j.deps.Navigator.Navigate(session.RouteResume)
		return ErrResumeRequired
	}

	j.update(ctx, func() {
		j.applyingID = job.ID
		j.actionError = ""
	})

	env := j.deps.Services.Applications.CreateApplication(ctx, types.NewApplicationInput(job, *resume))

	var failure error
	j.update(ctx, func() {
		j.applyingID = ""
		if !env.Success {
			j.actionError = env.MessageOr("Failed to apply")
			failure = &Failure{Message: j.actionError, Local: env.IsLocal()}
			return
		}
		j.applied[job.ID] = true
	})
	j.deps.Log.WithFields(logrus.Fields{"job_id": job.ID, "ok": env.Success}).Debug("apply")
	return failure
}

// LoadMore reveals the next page after the configured delay.
func (j *Jobs) LoadMore() error {
	ctx, err := j.active()
	if err != nil {
		return err
	}

	proceed := false
	j.update(ctx, func() {
		if j.loadingMore || j.displayCount >= len(j.jobs) {
			return
		}
		j.loadingMore = true
		proceed = true
	})
	if !proceed {
		return nil
	}

	if err := j.deps.Clock.Sleep(ctx, j.deps.LoadMoreDelay); err != nil {
		j.withLock(func() { j.loadingMore = false })
		return err
	}
	j.update(ctx, func() {
		j.displayCount += j.deps.PageSize
		j.loadingMore = false
	})
	return nil
}

// Jobs returns every loaded job, not just the visible page.
func (j *Jobs) Jobs() []types.Job {
	var out []types.Job
	j.withLock(func() { out = append([]types.Job(nil), j.jobs...) })
	return out
}

// View returns a snapshot of the screen.
func (j *Jobs) View() JobsView {
	var v JobsView
	j.withLock(func() {
		jobs := append([]types.Job(nil), j.jobs...)
		v = JobsView{
			Status:       j.status,
			Resume:       j.resume,
			Ranked:       j.ranked,
			Filters:      j.filters,
			Page:         present.Paginate(jobs, j.displayCount),
			Total:        len(j.jobs),
			DisplayCount: j.displayCount,
			LoadingMore:  j.loadingMore,
			ApplyingID:   j.applyingID,
			Applied:      maps.Clone(j.applied),
			ActionError:  j.actionError,
		}
	})
	return v
}

func derefSlice[T any](p *[]T) []T {
	if p == nil {
		return nil
	}
	return *p
}
