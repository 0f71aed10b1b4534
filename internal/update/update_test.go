package update

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/kwicketgen/internal/version"
)

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{name: "1.0.0 < 1.0.1", a: "1.0.0", b: "1.0.1", want: -1},
		{name: "1.0.1 > 1.0.0", a: "1.0.1", b: "1.0.0", want: 1},
		{name: "1.0.0 == 1.0.0", a: "1.0.0", b: "1.0.0", want: 0},
		{name: "v prefix", a: "v1.0.0", b: "1.0.1", want: -1},
		{name: "major", a: "1.0.0", b: "2.0.0", want: -1},
		{name: "2.0.0 > 1.9.9", a: "2.0.0", b: "1.9.9", want: 1},
		{name: "dev > release", a: "dev", b: "999.999.999", want: 1},
		{name: "release < dev", a: "1.0.0", b: "dev", want: -1},
		{name: "pre-release compares base", a: "1.0.0-beta", b: "1.0.0", want: 0},
		{name: "short version", a: "1.2", b: "1.2.1", want: -1},
		{name: "two digit minor", a: "0.10.0", b: "0.9.0", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, compareVersions(tt.a, tt.b))
		})
	}
}

func withVersion(t *testing.T, v string) {
	t.Helper()
	prev := version.Version
	version.Version = v
	t.Cleanup(func() { version.Version = prev })
}

func releaseServer(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Contains(t, r.Header.Get("User-Agent"), "kwicketgen/")
		_, _ = w.Write([]byte(`{"tag_name": "v1.3.0", "html_url": "https://example.test/r/v1.3.0"}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCheckFetchesAndCaches(t *testing.T) {
	withVersion(t, "1.2.0")
	var hits atomic.Int32
	srv := releaseServer(t, &hits)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := &Checker{URL: srv.URL, Client: srv.Client(), CacheDir: t.TempDir(), now: func() time.Time { return now }}

	info, err := c.Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1.3.0", info.LatestVersion)
	assert.Equal(t, "https://example.test/r/v1.3.0", info.ReleaseURL)
	assert.True(t, info.UpdateAvailable)
	assert.FileExists(t, filepath.Join(c.CacheDir, cacheFile))

	// Within a day the cache answers.
	now = now.Add(time.Hour)
	_, err = c.Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())

	// After a day the release is fetched again.
	now = now.Add(cacheTTL)
	_, err = c.Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}

func TestCheckCachedAnswerUsesCurrentVersion(t *testing.T) {
	withVersion(t, "1.3.0")
	var hits atomic.Int32
	srv := releaseServer(t, &hits)

	dir := t.TempDir()
	now := time.Now()
	require.NoError(t, os.WriteFile(filepath.Join(dir, cacheFile),
		[]byte(`{"latest_version": "1.3.0", "current_version": "1.0.0", "checked_at": "`+now.Format(time.RFC3339)+`", "update_available": true}`), 0o644))

	c := &Checker{URL: srv.URL, Client: srv.Client(), CacheDir: dir, now: func() time.Time { return now }}
	info, err := c.Check(context.Background())
	require.NoError(t, err)
	assert.False(t, info.UpdateAvailable)
	assert.Zero(t, hits.Load())
}

func TestCheckServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	t.Cleanup(srv.Close)

	c := &Checker{URL: srv.URL, Client: srv.Client(), now: time.Now}
	_, err := c.Check(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/cache-home")
	dir, err := cacheDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/cache-home", "kwicketgen"), dir)
}
