package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonathan/jobpilot/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := NewFileStore(path)

	empty, err := store.Load()
	require.NoError(t, err)
	assert.False(t, empty.Authenticated())

	want := Session{AccessToken: "a1", RefreshToken: "r1", User: &types.User{ID: "u1", Name: "Jane", Email: "jane@example.com"}}
	require.NoError(t, store.Save(want))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear(), "clearing twice is fine")

	cleared, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, Session{}, cleared)
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewFileStore(path).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse session file")
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore(Session{AccessToken: "a"})

	s, err := store.Load()
	require.NoError(t, err)
	assert.True(t, s.Authenticated())

	require.NoError(t, store.Save(Session{AccessToken: "b", RefreshToken: "r"}))
	assert.Equal(t, 1, store.Saves())

	require.NoError(t, store.Clear())
	s, _ = store.Load()
	assert.False(t, s.Authenticated())
}

func TestFromAuth(t *testing.T) {
	s := FromAuth(types.AuthData{AccessToken: "a", RefreshToken: "r", User: &types.User{ID: "u"}})
	assert.Equal(t, "a", s.AccessToken)
	assert.Equal(t, "r", s.RefreshToken)
	assert.Equal(t, "u", s.User.ID)
}

func TestExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("whatever"))
	require.NoError(t, err)

	got, ok := Expiry(token)
	require.True(t, ok)
	assert.True(t, exp.Equal(got))

	_, ok = Expiry("")
	assert.False(t, ok)
	_, ok = Expiry("not-a-jwt")
	assert.False(t, ok)
}

func TestRecordingNavigator(t *testing.T) {
	nav := &RecordingNavigator{}
	assert.Equal(t, Route(""), nav.Last())

	nav.Navigate(RouteLogin)
	nav.Navigate(RouteResume)

	assert.Equal(t, []Route{RouteLogin, RouteResume}, nav.Routes())
	assert.Equal(t, RouteResume, nav.Last())
}
