package pages

import (
	"context"
	"fmt"

	"github.com/jonathan/jobpilot/internal/present"
	"github.com/jonathan/jobpilot/internal/types"
	"github.com/sirupsen/logrus"
)

// ApplicationsView is a snapshot of the applications screen.
type ApplicationsView struct {
	Status     Status
	Filter     present.StatusFilter
	Items      []types.Application
	Counts     map[types.ApplicationStatus]int
	Total      int
	UpdatingID string
	OpenMenu   string
	Error      string
}

// Applications lists the user's applications with a status filter and per-row status menu.
type Applications struct {
	lifecycle
	deps Deps

	status     Status
	apps       []types.Application
	filter     present.StatusFilter
	menu       Menu
	updatingID string
	errMsg     string
}

// NewApplications creates an Applications controller.
func NewApplications(deps Deps) *Applications {
	return &Applications{deps: deps.withDefaults(), filter: present.FilterAll}
}

// Mount guards the session and fetches the applications once.
func (a *Applications) Mount(parent context.Context) error {
	if err := Guard(a.deps.Store, a.deps.Navigator); err != nil {
		return err
	}
	ctx := a.mount(parent)
	a.update(ctx, func() {
		a.status = Loading()
		a.errMsg = ""
	})

	env := a.deps.Services.Applications.GetApplications(ctx)

	a.update(ctx, func() {
		if !env.Success {
			a.status = Failed(env.MessageOr("Failed to fetch applications"))
			return
		}
		a.apps = derefSlice(env.Data)
		a.status = Ready()
	})
	return nil
}

// SetFilter changes which statuses are listed.
func (a *Applications) SetFilter(f present.StatusFilter) {
	a.withLock(func() { a.filter = f })
}

// ToggleMenu opens the row menu for id, closing any other.
func (a *Applications) ToggleMenu(id string) {
	a.withLock(func() { a.menu.Toggle(id) })
}

// DismissMenu closes any open row menu.
func (a *Applications) DismissMenu() {
	a.withLock(func() { a.menu.Dismiss() })
}

// UpdateStatus sets the status of application id locally, then asks the backend.
// On failure only that application is reverted and an error is shown.
func (a *Applications) UpdateStatus(id string, status types.ApplicationStatus) error {
	ctx, err := a.active()
	if err != nil {
		return err
	}

	var previous types.ApplicationStatus
	found := false
	a.update(ctx, func() {
		a.menu.Dismiss()
		for i := range a.apps {
			if a.apps[i].ID == id {
				previous = a.apps[i].Status
				a.apps[i].Status = status
				found = true
				break
			}
		}
		if found {
			a.updatingID = id
			a.errMsg = ""
		}
	})
	if !found {
		return &Failure{Message: fmt.Sprintf("Application %s not found", id), Local: true}
	}

	env := a.deps.Services.Applications.UpdateApplicationStatus(ctx, id, status)

	var failure error
	a.update(ctx, func() {
		a.updatingID = ""
		if env.Success {
			return
		}
		for i := range a.apps {
			if a.apps[i].ID == id && a.apps[i].Status == status {
				a.apps[i].Status = previous
			}
		}
		a.errMsg = env.MessageOr("Failed to update status")
		failure = &Failure{Message: a.errMsg, Local: env.IsLocal()}
	})

	a.deps.Log.WithFields(logrus.Fields{
		"application_id": id,
		"status":         status,
		"ok":             env.Success,
	}).Debug("status update")
	return failure
}

// All returns every loaded application regardless of filter.
func (a *Applications) All() []types.Application {
	var out []types.Application
	a.withLock(func() { out = append([]types.Application(nil), a.apps...) })
	return out
}

// View returns a snapshot of the screen.
func (a *Applications) View() ApplicationsView {
	var v ApplicationsView
	a.withLock(func() {
		v = ApplicationsView{
			Status:     a.status,
			Filter:     a.filter,
			Items:      present.FilterByStatus(a.apps, a.filter),
			Counts:     present.CountByStatus(a.apps),
			Total:      len(a.apps),
			UpdatingID: a.updatingID,
			OpenMenu:   a.menu.OpenID(),
			Error:      a.errMsg,
		}
	})
	return v
}
