// Package pages contains the controllers behind each screen of the client.
//
// A controller is a small state machine. Mount runs the session guard, then the
// initial fetches; actions (search, apply, upload, ...) move it between phases.
// View returns an immutable snapshot for rendering. Unmount cancels everything in
// flight and results that arrive afterwards are discarded.
package pages

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jonathan/jobpilot/internal/logger"
	"github.com/jonathan/jobpilot/internal/present"
	"github.com/jonathan/jobpilot/internal/services"
	"github.com/jonathan/jobpilot/internal/session"
	"github.com/sirupsen/logrus"
)

// ErrLoginRequired is returned by Mount when there is no access token.
var ErrLoginRequired = errors.New("login required")

// ErrNotMounted is returned by actions invoked before Mount or after Unmount.
var ErrNotMounted = errors.New("page is not mounted")

// ErrResumeRequired is returned by actions that need an uploaded résumé.
var ErrResumeRequired = errors.New("a resume is required")

// Phase is the loading state of a page.
type Phase int

// Page phases.
const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseReady
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseError:
		return "error"
	default:
		return "idle"
	}
}

// Status is the phase plus, in PhaseError, the message to show.
type Status struct {
	Phase Phase
	Err   string
}

// Loading returns the loading status.
func Loading() Status { return Status{Phase: PhaseLoading} }

// Ready returns the ready status.
func Ready() Status { return Status{Phase: PhaseReady} }

// Failed returns an error status carrying msg.
func Failed(msg string) Status { return Status{Phase: PhaseError, Err: msg} }

// Failure is an action that did not complete. Message is what the user sees.
// Local is set when the action was rejected before any request was sent.
type Failure struct {
	Message string
	Local   bool
}

func (f *Failure) Error() string {
	return f.Message
}

// Clock abstracts time so delays and message expiry can be driven by tests.
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}

// SystemClock is the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// Sleep waits for d or until ctx is done.
func (SystemClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Deps are the collaborators shared by every controller.
type Deps struct {
	Services  *services.Services
	Store     session.Store
	Navigator session.Navigator
	Log       logrus.FieldLogger
	Clock     Clock

	PageSize      int
	LoadMoreDelay time.Duration
	FlashTTL      time.Duration
}

// DefaultFlashTTL is how long transient messages stay visible.
const DefaultFlashTTL = 5 * time.Second

func (d Deps) withDefaults() Deps {
	if d.Navigator == nil {
		d.Navigator = session.NopNavigator
	}
	d.Log = logger.OrDiscard(d.Log)
	if d.Clock == nil {
		d.Clock = SystemClock{}
	}
	if d.PageSize <= 0 {
		d.PageSize = present.PageSize
	}
	if d.LoadMoreDelay == 0 {
		d.LoadMoreDelay = present.LoadMoreDelay
	}
	if d.FlashTTL <= 0 {
		d.FlashTTL = DefaultFlashTTL
	}
	return d
}

// Guard redirects to login when the store holds no access token.
// It must run before any page fetch.
func Guard(store session.Store, nav session.Navigator) error {
	sess, err := store.Load()
	if err != nil || !sess.Authenticated() {
		nav.Navigate(session.RouteLogin)
		return ErrLoginRequired
	}
	return nil
}

// lifecycle tracks whether a controller is mounted. Its mutex also guards the
// controller's view state, so a write can be dropped atomically after Unmount.
type lifecycle struct {
	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
}

func (l *lifecycle) mount(parent context.Context) context.Context {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
	}
	l.ctx, l.cancel = context.WithCancel(parent)
	return l.ctx
}

// Unmount cancels in-flight work. Later results are not applied.
func (l *lifecycle) Unmount() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
	}
}

// active returns the mount context, or ErrNotMounted.
func (l *lifecycle) active() (context.Context, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.ctx == nil || l.ctx.Err() != nil {
		return nil, ErrNotMounted
	}
	return l.ctx, nil
}

// update applies fn to the view unless ctx has been cancelled.
func (l *lifecycle) update(ctx context.Context, fn func()) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if ctx.Err() != nil {
		return false
	}
	fn()
	return true
}

// withLock runs fn with the view locked.
func (l *lifecycle) withLock(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn()
}
