package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/sqlbuilder/internal/config"
)

// generateSchemaDocs writes the configuration reference to outDir.
func generateSchemaDocs(outDir string) error {
	log.Printf("Generating schema docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(outDir, "configuration.md")
	if err := os.WriteFile(filename, configurationDoc().Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to generate configuration.md: %w", err)
	}
	log.Printf("  Generated configuration.md")
	return nil
}

// ConfigField represents a configuration field definition.
type ConfigField struct {
	Name        string
	Type        string
	Default     string
	Flag        string
	Description string
}

// getConfigSchema mirrors internal/config.Config.
func getConfigSchema() []ConfigField {
	return []ConfigField{
		{Name: "output", Type: "string", Default: config.DefaultOutput, Flag: "--output", Description: "Output format: " + strings.Join(config.OutputFormats, ", ")},
		{Name: "verbose", Type: "bool", Default: "false", Flag: "--verbose", Description: "Debug logging to stderr"},
		{Name: "log_level", Type: "string", Default: config.DefaultLogLevel, Flag: "--log-level", Description: "Log level: debug, info, warn, error"},
		{Name: "options", Type: "map[string]any", Flag: "--option key=value", Description: "Options passed unchanged to the extractor"},
	}
}

// configurationDoc renders the configuration reference page.
func configurationDoc() *MarkdownWriter {
	w := NewMarkdownWriter()
	w.Frontmatter("Configuration", "sqlbuilder configuration reference")
	w.GeneratedMarker()

	w.Header(1, "Configuration")
	w.Paragraph("sqlbuilder reads " + InlineCode(config.ConfigFileName) + " (or " + InlineCode(config.ConfigFileNameAlt) +
		") from the working directory, or the file given with " + InlineCode("--config") + ".")

	w.Header(2, "Settings")
	var rows [][]string
	for _, f := range getConfigSchema() {
		defVal := f.Default
		if defVal == "" {
			defVal = "-"
		}
		rows = append(rows, []string{InlineCode(f.Name), f.Type, InlineCode(defVal), InlineCode(f.Flag), f.Description})
	}
	w.Table([]string{"Field", "Type", "Default", "Flag", "Description"}, rows)

	w.Header(2, "Extractor Options")
	w.Paragraph("Keys under " + InlineCode("options") + " are handed to the extractor as they are. " +
		"The CLI reads " + InlineCode("comparison_operators") + ", a comma-separated list of extra comparison operators for " +
		InlineCode("classify") + ". " + InlineCode("--option") + " values that read as integers or booleans are converted.")

	w.Header(2, "Full Configuration Example")
	w.CodeBlock("yaml", `# sqlbuilder.yaml
output: table
log_level: info

options:
  comparison_operators: like,ilike,in
  escape_char: ${SQL_ESCAPE_CHAR}`)

	w.Header(2, "Environment Variables")
	w.Paragraph("Every setting can be set as " + InlineCode(config.EnvPrefix+"<FIELD>") +
		", and options as " + InlineCode(config.EnvPrefix+"OPTIONS_<KEY>") +
		". String options may reference the environment with " + InlineCode("${VAR_NAME}") + ".")
	return w
}
