package commands

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/leapstack-labs/sqlbuilder/internal/cli/output"
	"github.com/spf13/cobra"
)

// unknownBuild is the placeholder for build fields not injected by ldflags.
const unknownBuild = "unknown"

// BuildInfo describes the running binary.
type BuildInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
}

// withVCS fills fields left unknown by ldflags from the VCS stamp the Go
// toolchain embeds in module builds.
func (b BuildInfo) withVCS(read func() (*debug.BuildInfo, bool)) BuildInfo {
	if b.GoVersion == "" {
		b.GoVersion = runtime.Version()
	}
	bi, ok := read()
	if !ok {
		return b
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if isUnknown(b.GitCommit) {
				b.GitCommit = shortCommit(s.Value)
			}
		case "vcs.time":
			if isUnknown(b.BuildDate) {
				b.BuildDate = s.Value
			}
		}
	}
	return b
}

func isUnknown(s string) bool {
	return s == "" || s == unknownBuild
}

func shortCommit(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}

// NewVersionCommand creates the version command.
func NewVersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display sqlbuilder version and build information.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVersion(cmd, info.withVCS(debug.ReadBuildInfo))
		},
	}
}

func runVersion(cmd *cobra.Command, info BuildInfo) error {
	r := NewCommandContext(cmd).Renderer

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(info)
	}
	r.Println(fmt.Sprintf("sqlbuilder v%s", info.Version))
	r.Println("SQL expression flattening for query-builder extractors")
	r.Println(fmt.Sprintf("commit: %s, built: %s, %s", info.GitCommit, info.BuildDate, info.GoVersion))
	return nil
}
