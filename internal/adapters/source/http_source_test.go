package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const networkDoc = `
points:
  - {id: depot, x: 0, y: 0}
  - {id: A, x: 3, y: 4}
edges:
  - {from: depot, to: A, weight: 5}
orders:
  - {destination: A}
`

func newTestSource(t *testing.T, url, token string) *HTTPNetworkSource {
	t.Helper()
	src, err := NewHTTPNetworkSource(url, token, nil)
	require.NoError(t, err)
	src.backoff = time.Millisecond
	return src
}

func TestHTTPNetworkSourceFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(networkDoc))
	}))
	defer srv.Close()

	n, err := newTestSource(t, srv.URL, "secret").FetchNetwork(context.Background())
	require.NoError(t, err)
	assert.Len(t, n.Points, 2)
	assert.Equal(t, 5.0, n.Edges[0].Weight)
	assert.Equal(t, "A", n.Orders[0].Destination)
}

func TestHTTPNetworkSourceRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(networkDoc))
	}))
	defer srv.Close()

	n, err := newTestSource(t, srv.URL, "").FetchNetwork(context.Background())
	require.NoError(t, err)
	assert.Len(t, n.Points, 2)
	assert.Equal(t, int32(3), calls.Load())
}

func TestHTTPNetworkSourceDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestSource(t, srv.URL, "").FetchNetwork(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
	assert.Equal(t, int32(1), calls.Load())
}

func TestHTTPNetworkSourceGivesUp(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestSource(t, srv.URL, "").FetchNetwork(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(4), calls.Load())
}

func TestHTTPNetworkSourceBadDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("points: [{id: a, x: oops}]"))
	}))
	defer srv.Close()

	_, err := newTestSource(t, srv.URL, "").FetchNetwork(context.Background())
	assert.Error(t, err)
}

func TestHTTPNetworkSourceCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestSource(t, "http://127.0.0.1:1", "").FetchNetwork(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewHTTPNetworkSourceRequiresURL(t *testing.T) {
	_, err := NewHTTPNetworkSource("  ", "", nil)
	assert.Error(t, err)
}
