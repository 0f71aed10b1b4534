// Package update checks GitHub for a newer kwicketgen release.
package update

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/pthm/kwicketgen/internal/version"
)

const (
	releaseURL = "https://api.github.com/repos/pthm/kwicketgen/releases/latest"
	cacheTTL   = 24 * time.Hour
	cacheFile  = "update-check.json"
)

// Info contains update check results
type Info struct {
	LatestVersion   string    `json:"latest_version"`
	ReleaseURL      string    `json:"release_url,omitempty"`
	CurrentVersion  string    `json:"current_version"`
	CheckedAt       time.Time `json:"checked_at"`
	UpdateAvailable bool      `json:"update_available"`
}

// githubRelease represents the GitHub API response
type githubRelease struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// Checker looks up the latest release, caching the answer for a day.
type Checker struct {
	// URL is the GitHub latest release endpoint.
	URL    string
	Client *http.Client
	// CacheDir holds the cached answer. Empty disables the cache.
	CacheDir string

	now func() time.Time
}

// NewChecker returns a checker for the kwicketgen repository that caches
// under the user cache directory.
func NewChecker() *Checker {
	dir, err := cacheDir()
	if err != nil {
		dir = ""
	}
	return &Checker{
		URL:      releaseURL,
		Client:   &http.Client{Timeout: 5 * time.Second},
		CacheDir: dir,
		now:      time.Now,
	}
}

// Check returns the latest release, from the cache when it is fresh.
func (c *Checker) Check(ctx context.Context) (*Info, error) {
	if info, err := c.loadCache(); err == nil && c.now().Sub(info.CheckedAt) < cacheTTL {
		info.CurrentVersion = version.Version
		info.UpdateAvailable = compareVersions(info.CurrentVersion, info.LatestVersion) < 0
		return info, nil
	}

	info, err := c.fetch(ctx)
	if err != nil {
		return nil, err
	}
	_ = c.saveCache(info)
	return info, nil
}

func (c *Checker) fetch(ctx context.Context) (*Info, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, http.NoBody)
	if err != nil {
		return nil, errors.Wrap(err, "building release request")
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "kwicketgen/"+version.Version)

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetching latest release")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf("GitHub API returned status %d", resp.StatusCode)
	}

	var release githubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, errors.Wrap(err, "decoding release")
	}

	latest := strings.TrimPrefix(release.TagName, "v")
	return &Info{
		LatestVersion:   latest,
		ReleaseURL:      release.HTMLURL,
		CurrentVersion:  version.Version,
		CheckedAt:       c.now(),
		UpdateAvailable: compareVersions(version.Version, latest) < 0,
	}, nil
}

// cacheDir returns $XDG_CACHE_HOME/kwicketgen or ~/.cache/kwicketgen.
func cacheDir() (string, error) {
	cacheHome := os.Getenv("XDG_CACHE_HOME")
	if cacheHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		cacheHome = filepath.Join(home, ".cache")
	}
	return filepath.Join(cacheHome, "kwicketgen"), nil
}

func (c *Checker) loadCache() (*Info, error) {
	if c.CacheDir == "" {
		return nil, errors.New("cache disabled")
	}
	data, err := os.ReadFile(filepath.Join(c.CacheDir, cacheFile))
	if err != nil {
		return nil, err
	}
	var info Info
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *Checker) saveCache(info *Info) error {
	if c.CacheDir == "" {
		return nil
	}
	if err := os.MkdirAll(c.CacheDir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.CacheDir, cacheFile), data, 0o644)
}

// compareVersions compares two semver strings
// Returns -1 if a < b, 0 if a == b, 1 if a > b
func compareVersions(a, b string) int {
	a = strings.TrimPrefix(a, "v")
	b = strings.TrimPrefix(b, "v")

	// dev builds are always the newest
	if a == "dev" {
		return 1
	}
	if b == "dev" {
		return -1
	}

	partsA := strings.Split(a, ".")
	partsB := strings.Split(b, ".")
	for i := 0; i < max(len(partsA), len(partsB)); i++ {
		numA, numB := part(partsA, i), part(partsB, i)
		if numA < numB {
			return -1
		}
		if numA > numB {
			return 1
		}
	}
	return 0
}

// part returns the numeric value of parts[i], ignoring pre-release suffixes
// such as "0-beta".
func part(parts []string, i int) int {
	if i >= len(parts) {
		return 0
	}
	n, _ := strconv.Atoi(strings.Split(parts[i], "-")[0])
	return n
}
