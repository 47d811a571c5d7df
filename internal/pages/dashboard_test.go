package pages

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/jonathan/jobpilot/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedDashboard(h *harness) {
	apps := make([]types.Application, 7)
	for i := range apps {
		apps[i] = types.Application{ID: fmt.Sprintf("a%d", i), Status: types.StatusApplied}
	}
	h.backend.reply("GET /applications", http.StatusOK, types.OK(http.StatusOK, apps, ""))
	h.backend.reply("GET /applications/stats", http.StatusOK, types.OK(http.StatusOK, types.ApplicationStats{
		TotalApplications: 7, Interviews: 2, AvgMatchScore: 74, ThisWeek: 3,
	}, ""))
	h.backend.reply("GET /resume", http.StatusOK, types.OK(http.StatusOK, testResume, ""))
	h.backend.reply("GET /auth/profile", http.StatusOK, types.OK(http.StatusOK, types.User{ID: "u1", Name: "Jane"}, ""))
}

func TestDashboard_Mount(t *testing.T) {
	h := newHarness(t)
	seedDashboard(h)

	page := NewDashboard(h.deps)
	require.NoError(t, page.Mount(context.Background()))

	view := page.View()
	assert.Equal(t, PhaseReady, view.Status.Phase)
	assert.Equal(t, []StatCard{
		{Label: "Total Applications", Value: "7"},
		{Label: "Interviews", Value: "2"},
		{Label: "Avg Match Score", Value: "74%"},
		{Label: "This Week", Value: "3"},
	}, view.Cards)
	require.Len(t, view.Recent, 5)
	assert.Equal(t, "a0", view.Recent[0].ID)
	assert.Equal(t, "r1", view.Resume.ID)
	assert.Equal(t, "Jane", view.User.Name)

	for _, key := range []string{"GET /applications", "GET /applications/stats", "GET /resume", "GET /auth/profile"} {
		assert.Equal(t, 1, h.backend.count(key), key)
	}
}

func TestDashboard_MissingResumeIsNotAnError(t *testing.T) {
	h := newHarness(t)
	seedDashboard(h)
	h.backend.reply("GET /resume", http.StatusNotFound, notFoundEnvelope("Resume not found"))

	page := NewDashboard(h.deps)
	require.NoError(t, page.Mount(context.Background()))

	view := page.View()
	assert.Equal(t, PhaseReady, view.Status.Phase)
	assert.Nil(t, view.Resume)
}

func TestDashboard_StatsFailure(t *testing.T) {
	h := newHarness(t)
	seedDashboard(h)
	h.backend.reply("GET /applications/stats", http.StatusInternalServerError, types.Fail[any](http.StatusInternalServerError, "Stats unavailable", ""))

	page := NewDashboard(h.deps)
	require.NoError(t, page.Mount(context.Background()))

	view := page.View()
	assert.Equal(t, Failed("Stats unavailable"), view.Status)
	assert.Len(t, view.Recent, 5)
}

func TestDashboard_UploadReplacesResumeWithoutRefetch(t *testing.T) {
	h := newHarness(t)
	seedDashboard(h)
	h.backend.reply("POST /resume/upload", http.StatusOK, types.OK(http.StatusOK, types.Resume{ID: "r2"}, ""))

	page := NewDashboard(h.deps)
	require.NoError(t, page.Mount(context.Background()))
	require.NoError(t, page.Upload("cv.pdf", pdf))

	assert.Equal(t, "r2", page.View().Resume.ID)
	assert.Equal(t, 1, h.backend.count("GET /resume"))
	assert.Equal(t, 1, h.backend.count("GET /applications"))

	require.Error(t, page.Upload("cv.txt", []byte("nope, not a pdf at all")))
	assert.Equal(t, "Please upload a PDF file", page.View().UploadError)
	assert.Equal(t, "r2", page.View().Resume.ID)
}
