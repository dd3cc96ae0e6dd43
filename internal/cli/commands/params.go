package commands

import (
	"fmt"

	"github.com/leapstack-labs/sqlbuilder/internal/cli/output"
	"github.com/spf13/cobra"
)

// ParamsOptions holds options for the params command.
type ParamsOptions struct {
	Prefix string
}

// NewParamsCommand creates the params command.
func NewParamsCommand() *cobra.Command {
	opts := &ParamsOptions{}

	cmd := &cobra.Command{
		Use:   "params <file>",
		Short: "Collect the raw argument text of function calls",
		Long: `Collect the argument tokens of each function node in a parser-output file,
depth first, joined by commas. Bracketed sub-expressions are kept whole.`,
		Example: `  # Collect arguments of a function call
  sqlbuilder params call.json

  # Prepend accumulated text
  sqlbuilder params call.json --prefix 'x,'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParams(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.Prefix, "prefix", "", "Text the collected arguments are appended to")

	return cmd
}

func runParams(cmd *cobra.Command, path string, opts *ParamsOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	nodes, err := readNodes(path, cmd.InOrStdin())
	if err != nil {
		return err
	}

	params := make([]string, 0, len(nodes))
	for i, n := range nodes {
		p, err := cmdCtx.Extractor.CollectParams(n, opts.Prefix)
		if err != nil {
			return fmt.Errorf("%s: node %d: %w", path, i, err)
		}
		params = append(params, p)
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(params)
	case output.ModeTable, output.ModeMarkdown:
		rows := make([][]string, 0, len(params))
		for i, p := range params {
			rows = append(rows, []string{nodes[i].BaseExpr, p})
		}
		r.Table([]string{"FUNCTION", "PARAMS"}, rows)
	default:
		for _, p := range params {
			r.Println(p)
		}
	}

	return nil
}
