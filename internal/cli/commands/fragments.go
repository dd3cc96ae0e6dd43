package commands

import (
	"fmt"
	"strconv"

	"github.com/leapstack-labs/sqlbuilder/internal/cli/output"
	"github.com/spf13/cobra"
)

// fragmentsOutput is the JSON form of a Flatten result.
type fragmentsOutput struct {
	File   string   `json:"file"`
	Parts  []string `json:"parts"`
	Text   string   `json:"text"`
	Opaque bool     `json:"opaque"`
}

// NewFragmentsCommand creates the fragments command.
func NewFragmentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fragments <file>",
		Short: "Show the fragments a node sequence flattens to",
		Long: `Flatten the nodes of a parser-output file and list the resulting fragments.

Each top-level node yields one fragment. The opaque flag reports whether
the sequence must be handed to a query builder as raw text.`,
		Example: `  # List fragments of a SELECT list
  sqlbuilder fragments select.json

  # As a table
  sqlbuilder fragments select.yaml -o table`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFragments(cmd, args[0])
		},
	}

	return cmd
}

func runFragments(cmd *cobra.Command, path string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	nodes, err := readNodes(path, cmd.InOrStdin())
	if err != nil {
		return err
	}
	frags, err := cmdCtx.Extractor.Flatten(nodes)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		parts := frags.Parts
		if parts == nil {
			parts = []string{}
		}
		return r.JSON(fragmentsOutput{File: path, Parts: parts, Text: frags.String(), Opaque: frags.Opaque})
	case output.ModeTable, output.ModeMarkdown:
		rows := make([][]string, 0, len(frags.Parts))
		for i, p := range frags.Parts {
			rows = append(rows, []string{strconv.Itoa(i), p})
		}
		r.Table([]string{"#", "FRAGMENT"}, rows)
		r.Println(fmt.Sprintf("opaque: %t", frags.Opaque))
	default:
		for _, p := range frags.Parts {
			r.Println(p)
		}
		r.Println(fmt.Sprintf("opaque: %t", frags.Opaque))
	}

	return nil
}
