package validator

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/starlist/internal/transport"
	"github.com/agentstation/starlist/pkg/logging"
)

// githubAPI fakes GET /repos/{owner}/{repo}.
func githubAPI(t *testing.T, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		switch r.URL.Path {
		case "/repos/x/live":
			_, _ = w.Write([]byte(`{"name":"live","fork":false}`))
		case "/repos/x/forked":
			_, _ = w.Write([]byte(`{"name":"forked","fork":true}`))
		case "/repos/x/limited":
			w.WriteHeader(http.StatusForbidden)
		case "/repos/x/throttled":
			w.WriteHeader(http.StatusTooManyRequests)
		case "/repos/x/broken":
			w.WriteHeader(http.StatusInternalServerError)
		case "/repos/x/garbled":
			_, _ = w.Write([]byte(`{"fork":`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestValidateRepository(t *testing.T) {
	var calls atomic.Int32
	api := githubAPI(t, &calls)

	tests := []struct {
		url  string
		want bool
	}{
		{"https://github.com/x/live", true},
		{"https://github.com/x/forked", false},
		{"https://github.com/x/missing", false},
		{"https://github.com/x/limited", true},
		{"https://github.com/x/throttled", false},
		{"https://github.com/x/broken", false},
		{"https://github.com/x/garbled", false},
	}

	v := New(NewCache(), WithAPIBase(api.URL))
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, v.Validate(context.Background(), tt.url))
		})
	}
	assert.Equal(t, int32(len(tests)), calls.Load())
}

func TestValidateRepositoryQuotaHint(t *testing.T) {
	var calls atomic.Int32
	api := githubAPI(t, &calls)

	tests := []struct {
		name     string
		token    string
		wantHint bool
	}{
		{"anonymous", "", true},
		{"authenticated", "ghp_test", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := logging.New(&buf)
			ctx := logging.WithLogger(context.Background(), &logger)

			v := New(NewCache(), WithAPIBase(api.URL), WithGitHubClient(transport.NewGitHub(tt.token)))
			assert.True(t, v.Validate(ctx, "https://github.com/x/limited"))
			assert.Contains(t, buf.String(), "https://github.com/x/limited")
			assert.Equal(t, tt.wantHint, strings.Contains(buf.String(), "GITHUB_TOKEN"))
		})
	}
}

func TestValidateRepositoryNetworkError(t *testing.T) {
	api := httptest.NewServer(http.NotFoundHandler())
	base := api.URL
	api.Close()

	v := New(NewCache(), WithAPIBase(base))
	assert.False(t, v.Validate(context.Background(), "https://github.com/x/live"))
}

func TestValidateProbe(t *testing.T) {
	var mu sync.Mutex
	var methods []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		methods = append(methods, r.Method+" "+r.URL.Path)
		mu.Unlock()

		switch r.URL.Path {
		case "/ok":
			w.WriteHeader(http.StatusOK)
		case "/no-head":
			if r.Method == http.MethodHead {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			w.WriteHeader(http.StatusOK)
		case "/forbidden":
			w.WriteHeader(http.StatusForbidden)
		case "/gone":
			w.WriteHeader(http.StatusGone)
		case "/moved":
			http.Redirect(w, r, "/ok", http.StatusMovedPermanently)
		}
	}))
	defer srv.Close()

	v := New(NewCache())
	ctx := context.Background()

	assert.True(t, v.Validate(ctx, srv.URL+"/ok"))
	assert.True(t, v.Validate(ctx, srv.URL+"/no-head"))
	assert.False(t, v.Validate(ctx, srv.URL+"/forbidden"))
	assert.False(t, v.Validate(ctx, srv.URL+"/gone"))
	assert.True(t, v.Validate(ctx, srv.URL+"/moved"))

	mu.Lock()
	defer mu.Unlock()
	assert.Contains(t, methods, "GET /no-head")
	assert.Contains(t, methods, "GET /forbidden")
	assert.NotContains(t, methods, "GET /gone")
	assert.NotContains(t, methods, "GET /ok")
}

func TestValidateProbeTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	v := New(NewCache(), WithProbeTimeout(50*time.Millisecond))

	start := time.Now()
	assert.False(t, v.Validate(context.Background(), srv.URL+"/slow"))
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestValidateEmptyURL(t *testing.T) {
	v := New(nil)
	assert.False(t, v.Validate(context.Background(), "  "))
	assert.Zero(t, v.Cache().Len())
}

func TestValidateIsMemoized(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cache := NewCache()
	v := New(cache)
	ctx := context.Background()

	// Variants that normalize to the same key.
	urls := []string{srv.URL + "/page", srv.URL + "/page/", " " + srv.URL + "/PAGE "}
	for _, u := range urls {
		assert.True(t, v.Validate(ctx, u))
	}

	assert.Equal(t, int32(1), hits.Load())
	assert.Equal(t, 1, cache.Len())
	assert.Equal(t, int64(2), cache.Hits())
}

func TestValidateAll(t *testing.T) {
	var calls atomic.Int32
	api := githubAPI(t, &calls)

	var probes atomic.Int32
	site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		probes.Add(1)
		time.Sleep(20 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer site.Close()

	urls := []string{
		"https://github.com/x/live",
		site.URL + "/a",
		"https://github.com/x/forked",
		site.URL + "/a",
		site.URL + "/a",
	}

	v := New(NewCache(), WithAPIBase(api.URL))
	verdicts := v.ValidateAll(context.Background(), urls)

	require.Len(t, verdicts, len(urls))
	for i, verdict := range verdicts {
		assert.Equal(t, urls[i], verdict.URL)
	}
	assert.True(t, verdicts[0].Live)
	assert.True(t, verdicts[1].Live)
	assert.False(t, verdicts[2].Live)
	assert.True(t, verdicts[3].Live)
	assert.True(t, verdicts[4].Live)

	assert.Equal(t, int32(1), probes.Load(), "concurrent lookups of one URL share a single probe")
	assert.Equal(t, int32(2), calls.Load())
}
