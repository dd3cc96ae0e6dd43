package commands

import (
	"encoding/json"
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/leapstack-labs/sqlbuilder/internal/cli/testutil"
	"github.com/leapstack-labs/sqlbuilder/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVersionCommand(t *testing.T) {
	tests := []struct {
		name    string
		info    BuildInfo
		wantOut []string
	}{
		{
			name:    "default version",
			info:    BuildInfo{Version: "0.1.0"},
			wantOut: []string{"sqlbuilder v0.1.0", "query-builder"},
		},
		{
			name:    "injected build info",
			info:    BuildInfo{Version: "1.2.3", GitCommit: "abc123", BuildDate: "2026-01-02"},
			wantOut: []string{"sqlbuilder v1.2.3", "commit: abc123, built: 2026-01-02"},
		},
		{
			name:    "dev version",
			info:    BuildInfo{Version: "dev"},
			wantOut: []string{"sqlbuilder vdev", runtime.Version()},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := testutil.ExecuteCommand(t, NewVersionCommand(tt.info), "")
			require.NoError(t, res.Err)
			for _, want := range tt.wantOut {
				assert.Contains(t, res.Out, want)
			}
		})
	}
}

func TestVersionCommand_JSON(t *testing.T) {
	info := BuildInfo{Version: "1.2.3", GitCommit: "abc123", BuildDate: "2026-01-02"}
	res := testutil.ExecuteCommand(t, withOutput(NewVersionCommand(info), config.OutputJSON), "")
	require.NoError(t, res.Err)

	var got BuildInfo
	require.NoError(t, json.Unmarshal([]byte(res.Out), &got))
	assert.Equal(t, "1.2.3", got.Version)
	assert.Equal(t, "abc123", got.GitCommit)
	assert.Equal(t, "2026-01-02", got.BuildDate)
	assert.Equal(t, runtime.Version(), got.GoVersion)
}

func TestBuildInfo_WithVCS(t *testing.T) {
	stamped := func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef0123"},
			{Key: "vcs.time", Value: "2026-03-04T05:06:07Z"},
		}}, true
	}
	missing := func() (*debug.BuildInfo, bool) { return nil, false }

	tests := []struct {
		name       string
		info       BuildInfo
		read       func() (*debug.BuildInfo, bool)
		wantCommit string
		wantDate   string
	}{
		{
			name:       "unknown fields come from the VCS stamp",
			info:       BuildInfo{GitCommit: unknownBuild, BuildDate: unknownBuild},
			read:       stamped,
			wantCommit: "0123456789ab",
			wantDate:   "2026-03-04T05:06:07Z",
		},
		{
			name:       "ldflags win over the VCS stamp",
			info:       BuildInfo{GitCommit: "feedbeef", BuildDate: "2026-01-02"},
			read:       stamped,
			wantCommit: "feedbeef",
			wantDate:   "2026-01-02",
		},
		{
			name:       "no build info",
			info:       BuildInfo{GitCommit: unknownBuild, BuildDate: unknownBuild},
			read:       missing,
			wantCommit: unknownBuild,
			wantDate:   unknownBuild,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.info.withVCS(tt.read)
			assert.Equal(t, tt.wantCommit, got.GitCommit)
			assert.Equal(t, tt.wantDate, got.BuildDate)
			assert.Equal(t, runtime.Version(), got.GoVersion)
		})
	}
}

func TestVersionCommandMetadata(t *testing.T) {
	cmd := NewVersionCommand(BuildInfo{Version: "test"})

	assert.Equal(t, "version", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
}
