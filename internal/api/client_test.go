package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"panelctl/internal/session"
)

func newTestStore(t *testing.T) *session.Store {
	t.Helper()
	return session.NewStoreAt(filepath.Join(t.TempDir(), "session.json"))
}

func newTestClient(t *testing.T, serverURL string, store *session.Store) *Client {
	t.Helper()
	return New(serverURL, 5*time.Second, store)
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	store := newTestStore(t)
	require.NoError(t, store.Save(session.Session{Token: "tok-42", UserLogin: "dev"}))

	client := newTestClient(t, server.URL, store)
	_, err := Enterprises(client).List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-42", gotAuth)
}

func TestClient_NoSessionShortCircuits(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, newTestStore(t))
	_, err := Enterprises(client).List(context.Background())
	require.ErrorIs(t, err, ErrNoSession)
	assert.Equal(t, int32(0), requests.Load(), "no request may be issued without a token")
}

func TestClient_TokenReadAtCallTime(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	store := newTestStore(t)
	client := newTestClient(t, server.URL, store)

	require.NoError(t, store.Save(session.Session{Token: "first", UserLogin: "dev"}))
	_, err := DataFormats(client).List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer first", gotAuth)

	// The token is never cached: a replaced session is picked up immediately.
	require.NoError(t, store.Save(session.Session{Token: "second", UserLogin: "dev"}))
	_, err = DataFormats(client).List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer second", gotAuth)
}

func TestClient_LoginSuccessPersistsSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/login/", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		var creds map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		if creds["developer_login"] == "dev" && creds["developer_password"] == "secret" {
			w.Write([]byte(`{"access_token": "jwt-token", "token_type": "bearer"}`))
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "Invalid login or password."}`))
	}))
	defer server.Close()

	store := newTestStore(t)
	client := newTestClient(t, server.URL, store)

	sess, err := client.Login(context.Background(), "dev", "secret")
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", sess.Token)
	assert.Equal(t, "dev", sess.UserLogin)

	stored := store.Current()
	require.NotNil(t, stored)
	assert.Equal(t, "jwt-token", stored.Token)
	assert.Equal(t, "dev", stored.UserLogin)
}

func TestClient_LoginFailureLeavesStoreUntouched(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "Invalid login or password."}`))
	}))
	defer server.Close()

	store := newTestStore(t)
	client := newTestClient(t, server.URL, store)

	_, err := client.Login(context.Background(), "dev", "wrong")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Invalid login or password.", apiErr.Detail)
	assert.Nil(t, store.Current())
}

func TestClient_Logout(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(session.Session{Token: "tok", UserLogin: "dev"}))

	client := New("http://unused", time.Second, store)
	require.NoError(t, client.Logout())
	assert.Nil(t, store.Current())
}

func TestClient_SurfacesDetailOnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail": "Enterprise not found."}`))
	}))
	defer server.Close()

	store := newTestStore(t)
	require.NoError(t, store.Save(session.Session{Token: "tok", UserLogin: "dev"}))

	client := newTestClient(t, server.URL, store)
	_, err := Enterprises(client).Get(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "Enterprise not found.")
}

func TestClient_NetworkFailureWrapped(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(session.Session{Token: "tok", UserLogin: "dev"}))

	// Closed server: connection refused.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := newTestClient(t, url, store)
	_, err := Enterprises(client).List(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoSession)
}
