package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SaveAndCurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewStoreAt(path)

	require.Nil(t, store.Current(), "fresh store should hold no session")

	require.NoError(t, store.Save(Session{Token: "abc123", UserLogin: "dev"}))

	sess := store.Current()
	require.NotNil(t, sess)
	assert.Equal(t, "abc123", sess.Token)
	assert.Equal(t, "dev", sess.UserLogin)

	// Durable keys on disk stay token / user_login.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var raw map[string]string
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "abc123", raw["token"])
	assert.Equal(t, "dev", raw["user_login"])

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestStore_Clear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewStoreAt(path)

	require.NoError(t, store.Save(Session{Token: "tok", UserLogin: "dev"}))
	require.NoError(t, store.Clear())
	assert.Nil(t, store.Current())

	// Clearing an already-empty store is fine.
	require.NoError(t, store.Clear())
}

func TestStore_EmptyTokenCountsAsAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewStoreAt(path)

	require.NoError(t, store.Save(Session{Token: "", UserLogin: "dev"}))
	assert.Nil(t, store.Current())
}

func TestStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	store := NewStoreAt(path)
	assert.Nil(t, store.Current())
}
