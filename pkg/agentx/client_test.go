package agentx_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	// Packages
	agentx "github.com/mutablelogic/go-agentx"
	api "github.com/mutablelogic/go-agentx/pkg/agentx"
	client "github.com/mutablelogic/go-client"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

const (
	testKey = "test-key"
)

///////////////////////////////////////////////////////////////////////////////
// HELPERS

// newServer returns a test server which rejects requests without the API key
func newServer(t *testing.T, mux *http.ServeMux) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != testKey {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T, url string) *api.Client {
	t.Helper()
	c, err := api.New(testKey, client.OptEndpoint(url))
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

///////////////////////////////////////////////////////////////////////////////
// TESTS

func TestNew_MissingKey(t *testing.T) {
	t.Setenv(api.EnvAPIKey, "")
	_, err := api.New("")
	assert.ErrorIs(t, err, agentx.ErrBadParameter)
}

func TestNew_KeyFromEnv(t *testing.T) {
	assert := assert.New(t)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /getProfile", func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(r.Header.Get("User-Agent"), "go-agentx/")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"_id":"u1","name":"Jo","email":"jo@example.com","plan":"pro"}`))
	})
	srv := newServer(t, mux)

	t.Setenv(api.EnvAPIKey, testKey)
	c, err := api.New("", client.OptEndpoint(srv.URL))
	require.NoError(t, err)

	profile, err := c.GetProfile(context.Background())
	require.NoError(t, err)
	assert.Equal("u1", profile.ID)
	assert.Equal("Jo", profile.Name)
	assert.Equal("pro", profile.Get("plan"))
}

func TestNew_WrongKey(t *testing.T) {
	srv := newServer(t, http.NewServeMux())
	c, err := api.New("wrong", client.OptEndpoint(srv.URL))
	require.NoError(t, err)

	_, err = c.GetProfile(context.Background())
	var httpErr httpresponse.Err
	if assert.True(t, errors.As(err, &httpErr)) {
		assert.Equal(t, http.StatusUnauthorized, int(httpErr))
	}
}

func TestGetAgent_Cached(t *testing.T) {
	assert := assert.New(t)
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /agents/{id}", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(w, map[string]any{"_id": r.PathValue("id"), "name": "Support", "avatar": "a.png"})
	})
	c := newClient(t, newServer(t, mux).URL)

	for range 3 {
		agent, err := c.GetAgent(context.Background(), "a1")
		require.NoError(t, err)
		assert.Equal("a1", agent.ID)
		assert.Equal("Support", agent.Name)
		assert.Equal("a.png", agent.Avatar)
	}
	assert.EqualValues(1, calls.Load())
}

func TestGetAgent_NotFound(t *testing.T) {
	assert := assert.New(t)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /agents/{id}", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such agent", http.StatusNotFound)
	})
	c := newClient(t, newServer(t, mux).URL)

	_, err := c.GetAgent(context.Background(), "missing")
	assert.ErrorIs(err, agentx.ErrNotFound)

	// The transport error is kept in the chain
	var httpErr httpresponse.Err
	if assert.True(errors.As(err, &httpErr)) {
		assert.Equal(http.StatusNotFound, int(httpErr))
	}

	// Empty identifiers are rejected without a request
	_, err = c.GetAgent(context.Background(), "")
	assert.ErrorIs(err, agentx.ErrBadParameter)
}

func TestGetAgent_NotFoundWithBody(t *testing.T) {
	assert := assert.New(t)
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /agents/{id}", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"code":404,"reason":"agent not found"}`))
	})
	c := newClient(t, newServer(t, mux).URL)

	// A JSON error body is still not found, and is not cached
	_, err := c.GetAgent(context.Background(), "missing")
	assert.ErrorIs(err, agentx.ErrNotFound)
	_, err = c.GetAgent(context.Background(), "missing")
	assert.ErrorIs(err, agentx.ErrNotFound)
	assert.EqualValues(2, calls.Load())
}

func TestListAgents(t *testing.T) {
	assert := assert.New(t)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /agents", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []map[string]any{
			{"_id": "a2", "name": "Sales"},
			{"_id": "a1", "name": "Billing"},
		})
	})
	mux.HandleFunc("GET /agents/{id}", func(w http.ResponseWriter, r *http.Request) {
		t.Error("agent should be served from the list")
	})
	c := newClient(t, newServer(t, mux).URL)

	agents, err := c.ListAgents(context.Background())
	require.NoError(t, err)
	if assert.Len(agents, 2) {
		assert.Equal("Billing", agents[0].Name)
		assert.Equal("Sales", agents[1].Name)
	}

	agent, err := c.GetAgent(context.Background(), "a2")
	require.NoError(t, err)
	assert.Equal("Sales", agent.Name)
}

func TestGetProfile_Error(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /getProfile", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	c := newClient(t, newServer(t, mux).URL)

	_, err := c.GetProfile(context.Background())
	var httpErr httpresponse.Err
	if assert.True(t, errors.As(err, &httpErr)) {
		assert.Equal(t, http.StatusInternalServerError, int(httpErr))
	}
}
