package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/sqlbuilder/internal/cli"
	"github.com/leapstack-labs/sqlbuilder/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// generateCLIDocs writes index.md and one page per command to outDir.
func generateCLIDocs(outDir string) error {
	log.Printf("Generating CLI docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	pages := cliPages(cli.NewRootCmd())
	for name, w := range pages {
		if err := os.WriteFile(filepath.Join(outDir, name), w.Bytes(), 0600); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		log.Printf("  Generated %s", name)
	}
	return nil
}

// documented lists the commands that get a reference page.
func documented(rootCmd *cobra.Command) []*cobra.Command {
	var cmds []*cobra.Command
	for _, cmd := range rootCmd.Commands() {
		if cmd.Hidden || cmd.Name() == "help" || cmd.Name() == "__complete" {
			continue
		}
		cmds = append(cmds, cmd)
	}
	return cmds
}

// cliPages renders the CLI reference keyed by file name.
func cliPages(rootCmd *cobra.Command) map[string]*MarkdownWriter {
	pages := map[string]*MarkdownWriter{"index.md": cliIndex(rootCmd)}
	for _, cmd := range documented(rootCmd) {
		pages[cmd.Name()+".md"] = commandPage(cmd)
	}
	return pages
}

// cliIndex renders the CLI overview page.
func cliIndex(rootCmd *cobra.Command) *MarkdownWriter {
	w := NewMarkdownWriter()
	w.Frontmatter("CLI Reference", "Command-line interface reference for sqlbuilder")
	w.GeneratedMarker()

	w.Header(1, "CLI Reference")
	w.Paragraph("sqlbuilder renders parsed SQL expression trees as literal SQL text, resolves FROM items and classifies operator and join tokens.")

	w.Header(2, "Installation")
	w.CodeBlock("bash", "go install github.com/leapstack-labs/sqlbuilder/cmd/sqlbuilder@latest")

	w.Header(2, "Commands")
	var rows [][]string
	for _, cmd := range documented(rootCmd) {
		link := fmt.Sprintf("[%s](/cli/%s)", InlineCode(cmd.Name()), cmd.Name())
		rows = append(rows, []string{link, cleanDescription(cmd.Short)})
	}
	w.Table([]string{"Command", "Description"}, rows)

	w.Header(2, "Input Files")
	w.Paragraph("Commands read parser output as JSON, or YAML when the file ends in " +
		InlineCode(".yaml") + " or " + InlineCode(".yml") + ". A file may hold one node or a list of nodes. " +
		"Pass " + InlineCode("-") + " to read JSON from standard input.")

	w.Header(2, "Output Formats")
	var formats []string
	for _, f := range config.OutputFormats {
		formats = append(formats, InlineCode(f))
	}
	w.Paragraph("Select with " + InlineCode("--output") + ": " + strings.Join(formats, ", ") +
		". " + InlineCode("auto") + " prints tables on a terminal and plain text otherwise.")

	w.Header(2, "Global Options")
	writeFlagsTable(w, rootCmd.PersistentFlags())

	w.Header(2, "Environment Variables")
	w.Table([]string{"Variable", "Description"}, [][]string{
		{InlineCode(config.EnvPrefix + "OUTPUT"), "Default output format"},
		{InlineCode(config.EnvPrefix + "VERBOSE"), "Enable debug logging"},
		{InlineCode(config.EnvPrefix + "LOG_LEVEL"), "Log level"},
		{InlineCode(config.EnvPrefix + "OPTIONS_<KEY>"), "Extractor option " + InlineCode("<key>")},
	})
	w.Paragraph("Command-line flags take precedence over environment variables, which take precedence over " +
		InlineCode(config.ConfigFileName) + ".")

	w.Header(2, "Exit Codes")
	w.Table([]string{"Code", "Meaning"}, [][]string{
		{InlineCode("0"), "Success"},
		{InlineCode("1"), "Error (malformed node, unsupported join or expression type; details on stderr)"},
	})
	return w
}

// commandPage renders the page of a single command.
func commandPage(cmd *cobra.Command) *MarkdownWriter {
	w := NewMarkdownWriter()
	w.Frontmatter(cmd.Name(), cmd.Short)
	w.GeneratedMarker()

	w.Header(1, cmd.Name())
	if cmd.Long != "" {
		w.Paragraph(cmd.Long)
	} else {
		w.Paragraph(cmd.Short)
	}

	w.Header(2, "Usage")
	useLine := cmd.UseLine()
	if !strings.HasPrefix(useLine, "sqlbuilder") {
		useLine = "sqlbuilder " + useLine
	}
	w.CodeBlock("bash", useLine)

	if len(cmd.Aliases) > 0 {
		w.Header(2, "Aliases")
		var aliases []string
		for _, alias := range cmd.Aliases {
			aliases = append(aliases, InlineCode(alias))
		}
		w.BulletList(aliases)
	}

	if cmd.HasLocalFlags() {
		w.Header(2, "Options")
		writeFlagsTable(w, cmd.LocalFlags())
	}
	if cmd.HasInheritedFlags() {
		w.Header(2, "Global Options")
		writeFlagsTable(w, cmd.InheritedFlags())
	}

	if cmd.Example != "" {
		w.Header(2, "Examples")
		w.CodeBlock("bash", cleanExample(cmd.Example))
	}
	return w
}

// writeFlagsTable writes a table of the visible flags.
func writeFlagsTable(w *MarkdownWriter, flags *pflag.FlagSet) {
	var rows [][]string
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		short := ""
		if f.Shorthand != "" {
			short = "-" + f.Shorthand
		}
		defVal := f.DefValue
		if f.Value.Type() == "string" && defVal != "" {
			defVal = InlineCode(defVal)
		}
		rows = append(rows, []string{InlineCode("--" + f.Name), short, defVal, cleanDescription(f.Usage)})
	})
	w.Table([]string{"Option", "Short", "Default", "Description"}, rows)
}

// cleanExample removes the indentation shared by all non-empty lines.
func cleanExample(example string) string {
	lines := strings.Split(example, "\n")

	minIndent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		if minIndent == -1 || indent < minIndent {
			minIndent = indent
		}
	}
	if minIndent <= 0 {
		return strings.TrimSpace(example)
	}

	for i, line := range lines {
		if len(line) >= minIndent {
			lines[i] = line[minIndent:]
		} else {
			lines[i] = strings.TrimLeft(line, " \t")
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
