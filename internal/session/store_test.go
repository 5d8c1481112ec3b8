package session_test

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novellea/storefront-client/internal/session"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestStore_LoginPersistsAcrossRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	first := session.NewStore(path, testLogger())
	require.NoError(t, first.Login("token-abc", session.User{ID: "u1", Name: "Ananya", Email: "ananya@example.com"}))

	// A new store over the same file resumes the session.
	second := session.NewStore(path, testLogger())
	require.NoError(t, second.Load())

	assert.True(t, second.Authenticated())
	assert.Equal(t, "token-abc", second.Token())
	user, ok := second.User()
	require.True(t, ok)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "Ananya", user.Name)
}

func TestStore_MissingFileIsAnonymousStart(t *testing.T) {
	store := session.NewStore(filepath.Join(t.TempDir(), "absent.json"), testLogger())

	require.NoError(t, store.Load())

	assert.False(t, store.Authenticated())
	_, ok := store.User()
	assert.False(t, ok)
}

func TestStore_CorruptFileMeansReLogin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store := session.NewStore(path, testLogger())

	require.NoError(t, store.Load())
	assert.False(t, store.Authenticated())
}

func TestStore_LogoutClearsMemoryAndDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := session.NewStore(path, testLogger())
	require.NoError(t, store.Login("token-abc", session.User{ID: "u1"}))

	require.NoError(t, store.Logout())

	assert.False(t, store.Authenticated())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "session file must be removed")

	// Logging out twice is harmless.
	assert.NoError(t, store.Logout())
}

func TestStore_SessionFileIsPrivate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := session.NewStore(path, testLogger())
	require.NoError(t, store.Login("token-abc", session.User{ID: "u1"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
