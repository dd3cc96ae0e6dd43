package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/leapstack-labs/sqlbuilder/internal/cli/output"
	"github.com/leapstack-labs/sqlbuilder/pkg/extract"
	"github.com/leapstack-labs/sqlbuilder/pkg/node"
	"github.com/spf13/cobra"
)

// joinItem is the join analysis of one FROM item.
type joinItem struct {
	Ref      string `json:"ref"`
	JoinType string `json:"join_type"`
	Valid    bool   `json:"valid"`
	Handled  bool   `json:"handled"`
	// Inner holds the FROM items of a subquery's parsed statement.
	Inner []joinItem `json:"inner,omitempty"`
}

// joinsOutput is the JSON form of the joins command.
type joinsOutput struct {
	File        string     `json:"file"`
	SingleTable bool       `json:"single_table"`
	From        []joinItem `json:"from"`
}

// NewJoinsCommand creates the joins command.
func NewJoinsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "joins <statement-file>",
		Short: "Check the FROM clause of a parsed statement",
		Long: `Resolve every FROM item of a parsed statement and check its join kind.

Reports whether the statement reads from a single plain table, and for each
FROM item whether its join can be expressed and whether it is already
handled by the FROM chain. FROM items of subqueries the parser expanded are
checked too and listed under their subquery. Exits with an error after printing when any join
is unsupported.`,
		Example: `  # Check a statement
  sqlbuilder joins statement.json

  # As JSON
  sqlbuilder joins statement.yaml -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJoins(cmd, args[0])
		},
	}

	return cmd
}

func runJoins(cmd *cobra.Command, path string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	stmt, err := readStatement(path, cmd.InOrStdin())
	if err != nil {
		return err
	}

	items, joinErr, err := analyzeFrom(cmdCtx.Extractor, stmt.From, path+": FROM item")
	if err != nil {
		return err
	}
	result := joinsOutput{
		File:        path,
		SingleTable: extract.IsSingleTable(stmt),
		From:        items,
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		if err := r.JSON(result); err != nil {
			return err
		}
	case output.ModeTable, output.ModeMarkdown:
		var rows [][]string
		walkJoinItems(result.From, 0, func(item joinItem, depth int) {
			rows = append(rows, []string{
				strings.Repeat("  ", depth) + item.Ref,
				item.JoinType,
				strconv.FormatBool(item.Valid),
				strconv.FormatBool(item.Handled),
			})
		})
		r.Table([]string{"REFERENCE", "JOIN", "VALID", "HANDLED"}, rows)
		r.Println(fmt.Sprintf("single table: %t", result.SingleTable))
	default:
		styles := r.Styles()
		r.Println(fmt.Sprintf("single table: %t", result.SingleTable))
		walkJoinItems(result.From, 0, func(item joinItem, depth int) {
			status := styles.Success.Render("ok")
			switch {
			case !item.Valid:
				status = styles.Error.Render("unsupported")
			case item.Handled:
				status = styles.Muted.Render("handled")
			}
			r.Println(fmt.Sprintf("%s%s\t%s\t%s", strings.Repeat("  ", depth), item.Ref, item.JoinType, status))
		})
	}

	return joinErr
}

// analyzeFrom resolves and checks every FROM item, descending into the parsed
// statements of subqueries. joinErr is the first unsupported join found; err
// is a FROM item that could not be resolved at all.
func analyzeFrom(ex *extract.Extractor, from []*node.Node, where string) (items []joinItem, joinErr, err error) {
	items = make([]joinItem, 0, len(from))
	for i, n := range from {
		at := fmt.Sprintf("%s %d", where, i)
		ref, err := ex.TableReference(n)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", at, err)
		}
		if err := extract.CheckJoin(n.JoinType); err != nil && joinErr == nil {
			joinErr = fmt.Errorf("%s: %w", at, err)
		}
		item := joinItem{
			Ref:      ref,
			JoinType: n.JoinType,
			Valid:    extract.ValidJoin(n.JoinType),
			Handled:  extract.HandledJoinType(n.JoinType),
		}
		if n.Query != nil && len(n.Query.From) > 0 {
			inner, innerJoinErr, err := analyzeFrom(ex, n.Query.From, at+": FROM item")
			if err != nil {
				return nil, nil, err
			}
			if joinErr == nil {
				joinErr = innerJoinErr
			}
			item.Inner = inner
		}
		items = append(items, item)
	}
	return items, joinErr, nil
}

// walkJoinItems visits items depth-first, subquery items after their parent.
func walkJoinItems(items []joinItem, depth int, fn func(joinItem, int)) {
	for _, item := range items {
		fn(item, depth)
		walkJoinItems(item.Inner, depth+1, fn)
	}
}
