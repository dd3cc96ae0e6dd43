package commands

import (
	"fmt"

	"github.com/leapstack-labs/sqlbuilder/internal/cli/output"
	"github.com/spf13/cobra"
)

// tableRef is one resolved FROM item.
type tableRef struct {
	ExprType string `json:"expr_type"`
	Ref      string `json:"ref"`
}

// NewTableCommand creates the table command.
func NewTableCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table <file>",
		Short: "Resolve FROM items to table references",
		Long: `Resolve each node of a parser-output file to the text of a FROM item:
a table name, a parenthesized subquery or an expression, followed by its alias.`,
		Example: `  # Resolve a FROM clause
  sqlbuilder table from.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTable(cmd, args[0])
		},
	}

	return cmd
}

func runTable(cmd *cobra.Command, path string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	nodes, err := readNodes(path, cmd.InOrStdin())
	if err != nil {
		return err
	}

	refs := make([]tableRef, 0, len(nodes))
	for i, n := range nodes {
		ref, err := cmdCtx.Extractor.TableReference(n)
		if err != nil {
			return fmt.Errorf("%s: node %d: %w", path, i, err)
		}
		refs = append(refs, tableRef{ExprType: n.ExprType.String(), Ref: ref})
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(refs)
	case output.ModeTable, output.ModeMarkdown:
		rows := make([][]string, 0, len(refs))
		for _, ref := range refs {
			rows = append(rows, []string{ref.ExprType, ref.Ref})
		}
		r.Table([]string{"TYPE", "REFERENCE"}, rows)
	default:
		for _, ref := range refs {
			r.Println(ref.Ref)
		}
	}

	return nil
}
