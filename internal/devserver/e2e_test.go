package devserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobpilot/internal/apiclient"
	"github.com/jonathan/jobpilot/internal/logger"
	"github.com/jonathan/jobpilot/internal/pages"
	"github.com/jonathan/jobpilot/internal/services"
	"github.com/jonathan/jobpilot/internal/session"
	"github.com/jonathan/jobpilot/internal/types"
)

// clientHarness drives the dev server through the real client stack.
type clientHarness struct {
	server    *Server
	store     *session.MemoryStore
	nav       *session.RecordingNavigator
	services  *services.Services
	refreshes *atomic.Int32
}

func newClientHarness(t *testing.T, opts ...serverOption) *clientHarness {
	t.Helper()
	s, _ := newTestServer(t, opts...)

	refreshes := &atomic.Int32{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == apiclient.RefreshPath {
			refreshes.Add(1)
		}
		s.Handler().ServeHTTP(w, r)
	}))
	t.Cleanup(ts.Close)

	store := session.NewMemoryStore(session.Session{})
	nav := &session.RecordingNavigator{}
	client := apiclient.New(ts.URL, store, apiclient.WithNavigator(nav), apiclient.WithLogger(logger.Discard()))
	return &clientHarness{
		server:    s,
		store:     store,
		nav:       nav,
		services:  services.New(client, store),
		refreshes: refreshes,
	}
}

func (h *clientHarness) deps() pages.Deps {
	return pages.Deps{Services: h.services, Store: h.store, Navigator: h.nav, Log: logger.Discard()}
}

func (h *clientHarness) registerUser(t *testing.T) types.AuthData {
	t.Helper()
	env := h.services.Auth.Register(context.Background(), "Ada Lovelace", "ada@example.com", "secret123")
	require.True(t, env.HasData(), env.Message)
	return *env.Data
}

// expireAccessToken swaps the stored access token for one that expired an hour ago.
func (h *clientHarness) expireAccessToken(t *testing.T) string {
	t.Helper()
	sess, err := h.store.Load()
	require.NoError(t, err)
	require.NotNil(t, sess.User)

	h.server.jwt.now = func() time.Time { return time.Now().Add(-time.Hour) }
	stale, err := h.server.jwt.GenerateAccessToken(uuid.MustParse(sess.User.ID))
	h.server.jwt.now = time.Now
	require.NoError(t, err)

	sess.AccessToken = stale
	require.NoError(t, h.store.Save(sess))
	return stale
}

func TestEndToEnd_AuthSession(t *testing.T) {
	h := newClientHarness(t)
	ctx := context.Background()

	auth := h.registerUser(t)
	sess, err := h.store.Load()
	require.NoError(t, err)
	assert.Equal(t, auth.AccessToken, sess.AccessToken)

	profile := h.services.Auth.GetProfile(ctx)
	require.True(t, profile.HasData())
	assert.Equal(t, "ada@example.com", profile.Data.Email)

	bad := h.services.Auth.Login(ctx, "ada@example.com", "wrong-password")
	assert.False(t, bad.Success)
	assert.Equal(t, http.StatusUnauthorized, bad.StatusCode)
	assert.Equal(t, "Invalid email or password", bad.Message)
	assert.Empty(t, h.nav.Routes(), "bad credentials never redirect")

	require.NoError(t, h.services.Auth.Logout())
	assert.ErrorIs(t, pages.NewDashboard(h.deps()).Mount(ctx), pages.ErrLoginRequired)
	assert.Equal(t, session.RouteLogin, h.nav.Last())

	good := h.services.Auth.Login(ctx, "ada@example.com", "secret123")
	require.True(t, good.HasData())
	assert.Equal(t, "Login successful", good.Message)
}

func TestEndToEnd_ExpiredTokenRefreshesOnce(t *testing.T) {
	h := newClientHarness(t)
	h.registerUser(t)
	stale := h.expireAccessToken(t)

	const callers = 8
	var wg sync.WaitGroup
	results := make([]types.Envelope[types.User], callers)
	for i := range callers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = h.services.Auth.GetProfile(context.Background())
		}(i)
	}
	wg.Wait()

	for _, env := range results {
		require.True(t, env.HasData(), env.Message)
		assert.Equal(t, "ada@example.com", env.Data.Email)
	}
	assert.Equal(t, int32(1), h.refreshes.Load(), "concurrent 401s share one refresh")

	sess, err := h.store.Load()
	require.NoError(t, err)
	assert.NotEqual(t, stale, sess.AccessToken)
	assert.Empty(t, h.nav.Routes())
}

func TestEndToEnd_RejectedRefreshLogsOut(t *testing.T) {
	h := newClientHarness(t)
	h.registerUser(t)
	h.expireAccessToken(t)

	sess, err := h.store.Load()
	require.NoError(t, err)
	sess.RefreshToken = "revoked"
	require.NoError(t, h.store.Save(sess))

	env := h.services.Auth.GetProfile(context.Background())
	assert.False(t, env.Success)
	assert.Equal(t, http.StatusUnauthorized, env.StatusCode)
	assert.Equal(t, session.RouteLogin, h.nav.Last())

	sess, err = h.store.Load()
	require.NoError(t, err)
	assert.False(t, sess.Authenticated(), "session cleared")
}

func TestEndToEnd_JobSearchFlow(t *testing.T) {
	h := newClientHarness(t, withSeed())
	ctx := context.Background()
	h.registerUser(t)

	jobs := pages.NewJobs(h.deps())
	require.NoError(t, jobs.Mount(ctx))
	defer jobs.Unmount()

	view := jobs.View()
	assert.Equal(t, pages.PhaseReady, view.Status.Phase)
	assert.False(t, view.Ranked, "no résumé yet")
	assert.Equal(t, len(sampleJobs), view.Total)

	first := jobs.Jobs()[0]
	assert.ErrorIs(t, jobs.Apply(first), pages.ErrResumeRequired)
	assert.Equal(t, session.RouteResume, h.nav.Last())

	resumePage := pages.NewResume(h.deps())
	require.NoError(t, resumePage.Mount(ctx))
	defer resumePage.Unmount()
	require.NoError(t, resumePage.Upload(pages.SourcePicker, "ada.pdf", makePDF(t, resumeLines, true)))
	require.NotNil(t, resumePage.View().Resume)
	assert.Equal(t, "Ada Lovelace", resumePage.View().Resume.Name)

	require.NoError(t, jobs.Mount(ctx))
	view = jobs.View()
	require.True(t, view.Ranked)
	assert.Equal(t, "Backend Engineer", view.Page.Items[0].Title)

	require.NoError(t, jobs.Apply(view.Page.Items[0]))
	assert.True(t, jobs.View().Applied[view.Page.Items[0].ID])

	err := jobs.Apply(view.Page.Items[0])
	var failure *pages.Failure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, "Already applied to this job", failure.Message)
	assert.False(t, failure.Local)

	require.NoError(t, jobs.Search(types.JobFilters{Keyword: " kafka "}))
	assert.Equal(t, 3, jobs.View().Total)
}

func TestEndToEnd_AnalyzeAndTrack(t *testing.T) {
	h := newClientHarness(t)
	ctx := context.Background()
	h.registerUser(t)

	uploaded := h.services.Resume.UploadResume(ctx, "ada.pdf", makePDF(t, resumeLines, false))
	require.True(t, uploaded.HasData(), uploaded.Message)

	analyze := pages.NewAnalyze(h.deps())
	require.NoError(t, analyze.Mount(ctx))
	defer analyze.Unmount()
	assert.False(t, analyze.View().NeedsResume)

	var failure *pages.Failure
	require.ErrorAs(t, analyze.Submit("too short"), &failure)
	assert.True(t, failure.Local)

	description := "We are hiring a backend engineer with Go, Kafka and Kubernetes experience for our platform team."
	require.NoError(t, analyze.Submit(description))
	result := analyze.View().Result
	require.NotNil(t, result)
	assert.Equal(t, 67, result.Overall.Value)
	assert.Equal(t, []string{"Kafka"}, result.Skills.Missing)
	assert.True(t, result.CanSave)

	created := h.services.Jobs.CreateJob(ctx, types.CreateJobInput{
		Title: "Platform Backend Engineer", Company: "Initrode", Description: description, ApplyURL: "https://jobs.example.com/initrode/platform",
	})
	require.True(t, created.HasData(), created.Message)
	require.NoError(t, analyze.SaveAsApplication(*created.Data))
	require.NotNil(t, analyze.View().Saved)

	apps := pages.NewApplications(h.deps())
	require.NoError(t, apps.Mount(ctx))
	defer apps.Unmount()
	require.Len(t, apps.All(), 1)
	id := apps.All()[0].ID

	require.NoError(t, apps.UpdateStatus(id, types.StatusInterview))
	assert.Equal(t, types.StatusInterview, apps.All()[0].Status)

	dashboard := pages.NewDashboard(h.deps())
	require.NoError(t, dashboard.Mount(ctx))
	defer dashboard.Unmount()
	dv := dashboard.View()
	assert.Equal(t, pages.PhaseReady, dv.Status.Phase)
	assert.Equal(t, types.ApplicationStats{TotalApplications: 1, Interviews: 1, AvgMatchScore: 67, ThisWeek: 1}, dv.Stats)
	require.NotNil(t, dv.User)
	assert.Equal(t, "Ada Lovelace", dv.User.Name)
	require.Len(t, dv.Recent, 1)
}
