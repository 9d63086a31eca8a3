package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anandv/hrms-dashboard/internal/errkind"
)

func TestSearch_Success(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotQuery = req["query"]

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"employee_id":"E1"}]}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	body, err := c.Search(context.Background(), "all employees")
	require.NoError(t, err)

	assert.Equal(t, "/search", gotPath)
	assert.Equal(t, "all employees", gotQuery)
	assert.Contains(t, body, "data")
}

func TestSearchRank_Path(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).SearchRank(context.Background(), "angular developer")
	require.NoError(t, err)
	assert.Equal(t, "/search-rank", gotPath)
}

func TestSearch_BackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "database unavailable", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Search(context.Background(), "q")
	require.Error(t, err)
	assert.True(t, errkind.Is(err, errkind.KindBackend))
	assert.Contains(t, err.Error(), "database unavailable")
}

func TestSearch_HTMLErrorBodyReduced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html><body><h1>502 Bad Gateway</h1>\n<p>nginx</p>\n</body></html>"))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Search(context.Background(), "q")
	require.Error(t, err)
	assert.True(t, errkind.Is(err, errkind.KindBackend))
	assert.Contains(t, err.Error(), "502 Bad Gateway nginx")
	assert.NotContains(t, err.Error(), "<html>")
}

func TestSearch_NotJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("plain text, not json"))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Search(context.Background(), "q")
	require.Error(t, err)
	assert.True(t, errkind.Is(err, errkind.KindParse))
}

func TestSearch_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithTimeout(20*time.Millisecond))
	_, err := c.Search(context.Background(), "q")
	require.Error(t, err)
	assert.True(t, errkind.Is(err, errkind.KindTimeout))
}

func TestSearch_ContextDeadline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := New(srv.URL).Search(ctx, "q")
	require.Error(t, err)
	assert.True(t, errkind.Is(err, errkind.KindTimeout))
}

func TestSearch_ConnectionRefused(t *testing.T) {
	// Closed server: the port is released immediately.
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := New(url).Search(context.Background(), "q")
	require.Error(t, err)
	assert.True(t, errkind.Is(err, errkind.KindTransport))
}

func TestWithPaths(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/", WithPaths("/api/v2/search", "/api/v2/rank"))
	_, err := c.Search(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, "/api/v2/search", gotPath)
}
