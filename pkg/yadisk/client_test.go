package yadisk

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient starts server with handler and returns a client whose API
// root points at it.
func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(ClientConfig{
		ID:      "client-id",
		Secret:  "client-secret",
		Token:   "test-token",
		BaseURL: server.URL + "/v1/disk/",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client, server
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func TestNewClientRejectsNegativeDefaults(t *testing.T) {
	_, err := NewClient(ClientConfig{Defaults: Options{Retries: Ptr(-1)}})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSessionCache(t *testing.T) {
	client, err := NewClient(ClientConfig{Token: "a"})
	require.NoError(t, err)

	s1 := client.Session("worker-1")
	assert.Same(t, s1, client.Session("worker-1"))
	assert.NotSame(t, s1, client.Session("worker-2"))
	assert.NotSame(t, s1, client.SessionForToken("b", "worker-1"))

	client.SetToken("b")
	assert.Same(t, client.SessionForToken("b", "worker-1"), client.Session("worker-1"))
}

func TestSessionCacheConcurrentCreation(t *testing.T) {
	client, err := NewClient(ClientConfig{Token: "a"})
	require.NoError(t, err)

	const n = 32
	got := make([]*Session, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = client.Session("shared")
		}(i)
	}
	wg.Wait()

	for _, s := range got {
		assert.Same(t, got[0], s)
	}
}

func TestCloseTearsDownAllSessions(t *testing.T) {
	client, err := NewClient(ClientConfig{Token: "a"})
	require.NoError(t, err)

	s1 := client.Session("one")
	s2 := client.Session("two")
	require.NoError(t, client.Close())

	assert.True(t, s1.isClosed())
	assert.True(t, s2.isClosed())
	assert.ErrorIs(t, s1.Close(), ErrSessionClosed)

	// A fresh session is created after shutdown.
	s3 := client.Session("one")
	assert.NotSame(t, s1, s3)
	assert.False(t, s3.isClosed())
}

func TestClearSessionCacheKeepsSessionsOpen(t *testing.T) {
	client, err := NewClient(ClientConfig{Token: "a"})
	require.NoError(t, err)

	s1 := client.Session("one")
	client.ClearSessionCache()
	assert.False(t, s1.isClosed())
	assert.NotSame(t, s1, client.Session("one"))
}

func TestDefaultSessionHeaders(t *testing.T) {
	var seen http.Header
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Clone()
		writeJSON(w, http.StatusOK, `{"total_space": 10, "used_space": 3, "user": {"login": "alice"}}`)
	}))

	disk, err := client.GetDiskInfo(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(10), disk.TotalSpace)
	assert.Equal(t, "alice", disk.User.Login)

	assert.Equal(t, "OAuth test-token", seen.Get("Authorization"))
	assert.Equal(t, DefaultUserAgent, seen.Get("User-Agent"))
	assert.Equal(t, "*/*", seen.Get("Accept"))
	assert.Equal(t, "gzip, deflate", seen.Get("Accept-Encoding"))
}

func TestLowercaseOverrideReplacesTransportHeaders(t *testing.T) {
	var agents, encodings []string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agents = r.Header.Values("User-Agent")
		encodings = r.Header.Values("Accept-Encoding")
		writeJSON(w, http.StatusOK, `{}`)
	}))

	_, err := client.GetDiskInfo(context.Background(), &Options{Headers: map[string]string{
		"user-agent":      "custom/1",
		"accept-encoding": "identity",
	}})
	require.NoError(t, err)
	assert.Equal(t, []string{"custom/1"}, agents)
	assert.Equal(t, []string{"identity"}, encodings)
}

func TestSetLoggerWhileRequestsRun(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{}`)
	}))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := client.GetDiskInfo(context.Background(), nil)
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			client.SetLogger(nil)
		}()
	}
	wg.Wait()
	assert.NotNil(t, client.log())
}
