package commands

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/leapstack-labs/sqlbuilder/internal/cli/output"
	"github.com/leapstack-labs/sqlbuilder/pkg/extract"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// renderedExpr is one rendered node of an input file.
type renderedExpr struct {
	File   string `json:"file"`
	Index  int    `json:"index"`
	Text   string `json:"text"`
	Opaque bool   `json:"opaque"`
}

// RenderOptions holds options for the render command.
type RenderOptions struct {
	Watch bool
}

// NewRenderCommand creates the render command.
func NewRenderCommand() *cobra.Command {
	opts := &RenderOptions{}

	cmd := &cobra.Command{
		Use:   "render <file>...",
		Short: "Render parsed expression trees back to SQL text",
		Long: `Render each node of one or more parser-output files as literal SQL text.

Function and aggregate calls are rebuilt from their arguments, aliases are
appended, and every result is flagged opaque when it is anything other than
a plain column or constant.

Files are JSON, or YAML when named *.yaml or *.yml. Use - to read JSON
from standard input. With --watch the files are rendered again whenever
they change, until interrupted.`,
		Example: `  # Render a SELECT list
  sqlbuilder render select.json

  # Render several files at once
  sqlbuilder render a.json b.yaml

  # Render from a pipe as JSON
  cat expr.json | sqlbuilder render - --output json

  # Re-render on every save
  sqlbuilder render select.yaml --watch`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Render again when an input file changes")

	return cmd
}

func runRender(cmd *cobra.Command, args []string, opts *RenderOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	stdin, err := readStdinOnce(cmd, args)
	if err != nil {
		return err
	}

	render := func() error {
		results, err := renderFiles(cmdCtx.Extractor, args, stdin)
		if err != nil {
			return err
		}
		cmdCtx.Logger.Debug("rendered expressions", "files", len(args))
		return printRendered(r, args, results)
	}

	if !opts.Watch {
		return render()
	}
	return watchInputs(cmd.Context(), args, cmdCtx.Logger, func() {
		if err := render(); err != nil {
			r.Warn(fmt.Sprintf("Error: %v", err))
		}
	})
}

// errStdinRepeated is returned when - appears more than once in the inputs.
var errStdinRepeated = errors.New("standard input (-) can be read only once")

// readStdinOnce buffers the command input when - is among paths, so every
// render reads the same bytes.
func readStdinOnce(cmd *cobra.Command, paths []string) ([]byte, error) {
	switch countStdin(paths) {
	case 0:
		return nil, nil
	case 1:
	default:
		return nil, errStdinRepeated
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return b, nil
}

func countStdin(paths []string) int {
	n := 0
	for _, p := range paths {
		if p == stdinPath {
			n++
		}
	}
	return n
}

// renderFiles decodes and renders the files concurrently. Results keep the
// order of paths.
func renderFiles(ex *extract.Extractor, paths []string, stdin []byte) ([][]renderedExpr, error) {
	results := make([][]renderedExpr, len(paths))
	g := new(errgroup.Group)
	for i, path := range paths {
		g.Go(func() error {
			nodes, err := readNodes(path, bytes.NewReader(stdin))
			if err != nil {
				return err
			}
			exprs := make([]renderedExpr, 0, len(nodes))
			for j, n := range nodes {
				text, opaque, err := ex.ExpressionOpaque(n)
				if err != nil {
					return fmt.Errorf("%s: node %d: %w", path, j, err)
				}
				exprs = append(exprs, renderedExpr{File: path, Index: j, Text: text, Opaque: opaque})
			}
			results[i] = exprs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func printRendered(r *output.Renderer, paths []string, results [][]renderedExpr) error {
	all := []renderedExpr{}
	for _, exprs := range results {
		all = append(all, exprs...)
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(all)
	case output.ModeMarkdown:
		for i, path := range paths {
			r.Println(output.FormatHeader(2, path))
			r.Println("")
			for _, e := range results[i] {
				r.Println(output.FormatCodeBlock("sql", e.Text))
				r.Println("")
			}
		}
	case output.ModeTable:
		rows := make([][]string, 0, len(all))
		for _, e := range all {
			rows = append(rows, []string{e.File, strconv.Itoa(e.Index), e.Text, strconv.FormatBool(e.Opaque)})
		}
		r.Table([]string{"FILE", "#", "SQL", "OPAQUE"}, rows)
	default:
		for _, e := range all {
			r.Println(e.Text)
		}
	}

	return nil
}
