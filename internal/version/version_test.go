package version

import (
	"runtime/debug"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func restore(t *testing.T) {
	t.Helper()
	v, c, d := Version, Commit, Date
	t.Cleanup(func() { Version, Commit, Date = v, c, d })
}

func TestFromBuildInfo(t *testing.T) {
	restore(t)
	Version, Commit, Date = "dev", "none", "unknown"

	fromBuildInfo(&debug.BuildInfo{
		Main: debug.Module{Version: "v1.4.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
		},
	})

	assert.Equal(t, "v1.4.0", Short())
	assert.Equal(t, "0123456", Commit)
	assert.Equal(t, "2026-01-02T03:04:05Z", Date)
}

func TestFromBuildInfoDevel(t *testing.T) {
	restore(t)
	Version, Commit = "dev", "none"

	fromBuildInfo(&debug.BuildInfo{
		Main:     debug.Module{Version: "(devel)"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "abc"}},
	})

	assert.Equal(t, "dev", Version)
	assert.Equal(t, "abc", Commit)
}

func TestInfo(t *testing.T) {
	restore(t)
	Version, Commit, Date = "v0.3.0", "deadbee", "today"

	info := Info()
	assert.True(t, strings.HasPrefix(info, "kwicketgen v0.3.0 (commit: deadbee, built: today) go"), info)
}
