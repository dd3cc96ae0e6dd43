package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/leapstack-labs/sqlbuilder/internal/cli/commands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBuildVars(t *testing.T, version, commit, date string) {
	t.Helper()
	oldVersion, oldCommit, oldDate := Version, GitCommit, BuildDate
	Version, GitCommit, BuildDate = version, commit, date
	t.Cleanup(func() {
		Version, GitCommit, BuildDate = oldVersion, oldCommit, oldDate
	})
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRootCmd_InjectedBuildInfo(t *testing.T) {
	setBuildVars(t, "2.0.0", "c0ffee", "2026-05-06")

	out, err := execute(t, "version", "-o", "json")
	require.NoError(t, err)

	var got commands.BuildInfo
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "2.0.0", got.Version)
	assert.Equal(t, "c0ffee", got.GitCommit)
	assert.Equal(t, "2026-05-06", got.BuildDate)
}

func TestRootCmd_VersionFlag(t *testing.T) {
	setBuildVars(t, "2.0.0", "c0ffee", "2026-05-06")

	out, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "sqlbuilder 2.0.0")
}
