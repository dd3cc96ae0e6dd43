// Package main provides tests for the sqlbuilder CLI.
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leapstack-labs/sqlbuilder/internal/cli"
)

func testdataDir(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	return filepath.Join(wd, "testdata")
}

// run executes the root command from an empty directory so no config file is
// picked up implicitly.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	output, err := run(t, "version")
	if err != nil {
		t.Errorf("version command error = %v", err)
	}
	if !strings.Contains(output, "sqlbuilder") {
		t.Errorf("version output should contain 'sqlbuilder', got: %s", output)
	}
}

func TestHelpCommand(t *testing.T) {
	output, err := run(t, "--help")
	if err != nil {
		t.Errorf("help command error = %v", err)
	}

	expectedCommands := []string{"render", "fragments", "table", "params", "classify", "joins", "completion"}
	for _, expected := range expectedCommands {
		if !strings.Contains(output, expected) {
			t.Errorf("help output should contain '%s', got: %s", expected, output)
		}
	}
}

func TestRenderCommand(t *testing.T) {
	td := testdataDir(t)

	output, err := run(t, "render", filepath.Join(td, "expr.json"))
	if err != nil {
		t.Fatalf("render command error = %v", err)
	}
	if output != "COALESCE(nickname,'anon') as nick\n" {
		t.Errorf("unexpected render output: %q", output)
	}
}

func TestRenderCommandJSON(t *testing.T) {
	td := testdataDir(t)

	output, err := run(t, "render", "-o", "json", filepath.Join(td, "expr.json"))
	if err != nil {
		t.Fatalf("render --output json error = %v", err)
	}
	if !strings.Contains(output, `"opaque": true`) {
		t.Errorf("JSON output should flag the call as opaque, got: %s", output)
	}
}

func TestConfigFileOptions(t *testing.T) {
	td := testdataDir(t)

	output, err := run(t, "--config", filepath.Join(td, "sqlbuilder.yaml"), "classify", "ILIKE")
	if err != nil {
		t.Fatalf("classify command error = %v", err)
	}
	if output != "ILIKE\tcomparison\n" {
		t.Errorf("comparison_operators from the config file should apply, got: %q", output)
	}
}

func TestOptionFlagOverridesConfigFile(t *testing.T) {
	td := testdataDir(t)

	output, err := run(t,
		"--config", filepath.Join(td, "sqlbuilder.yaml"),
		"--option", "comparison_operators=between",
		"classify", "ILIKE", "between",
	)
	if err != nil {
		t.Fatalf("classify command error = %v", err)
	}
	if output != "ILIKE\t-\nbetween\tcomparison\n" {
		t.Errorf("--option should replace the configured operators, got: %q", output)
	}
}

func TestInvalidOutputFormat(t *testing.T) {
	td := testdataDir(t)

	_, err := run(t, "render", "-o", "xml", filepath.Join(td, "expr.json"))
	if err == nil {
		t.Fatal("expected an error for an unknown output format")
	}
	if !strings.Contains(err.Error(), "invalid output format") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestMissingConfigFile(t *testing.T) {
	_, err := run(t, "--config", "missing.yaml", "version")
	if err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}
