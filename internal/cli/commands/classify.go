package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/leapstack-labs/sqlbuilder/internal/cli/output"
	"github.com/leapstack-labs/sqlbuilder/internal/config"
	"github.com/leapstack-labs/sqlbuilder/pkg/extract"
	"github.com/spf13/cobra"
)

// comparisonOption names the extractor option holding extra comparison
// operators, as a list or a comma-separated string.
const comparisonOption = "comparison_operators"

// classifyConfig is the part of the extractor options classify reads.
type classifyConfig struct {
	ComparisonOperators []string `mapstructure:"comparison_operators"`
}

// tokenClass is the classification of one token.
type tokenClass struct {
	Token       string `json:"token"`
	Normalized  string `json:"normalized"`
	Logical     bool   `json:"logical"`
	Arithmetic  bool   `json:"arithmetic"`
	Comparison  bool   `json:"comparison"`
	ValidJoin   bool   `json:"valid_join"`
	HandledJoin bool   `json:"handled_join"`
}

// kinds lists the names of the predicates the token satisfies.
func (c tokenClass) kinds() []string {
	var kinds []string
	if c.Logical {
		kinds = append(kinds, "logical")
	}
	if c.Arithmetic {
		kinds = append(kinds, "arithmetic")
	}
	if c.Comparison {
		kinds = append(kinds, "comparison")
	}
	if !c.ValidJoin {
		kinds = append(kinds, "invalid-join")
	}
	if c.HandledJoin {
		kinds = append(kinds, "handled-join")
	}
	return kinds
}

// ClassifyOptions holds options for the classify command.
type ClassifyOptions struct {
	Extra []string
}

// NewClassifyCommand creates the classify command.
func NewClassifyCommand() *cobra.Command {
	opts := &ClassifyOptions{}

	cmd := &cobra.Command{
		Use:   "classify <token>...",
		Short: "Classify operator and join tokens",
		Long: `Report which classifier predicates each token satisfies: logical,
arithmetic or comparison operator, and whether it names a join kind that is
unsupported (NATURAL) or already handled by the FROM chain (CROSS).

Tokens are compared case-insensitively after trimming. Extra comparison
operators come from --extra and the comparison_operators option.`,
		Example: `  # Classify a few tokens
  sqlbuilder classify AND '+' '<>' natural

  # Treat LIKE and IN as comparisons
  sqlbuilder classify like in --extra like,in`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClassify(cmd, args, opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.Extra, "extra", nil, "Additional comparison operators")

	return cmd
}

func runClassify(cmd *cobra.Command, tokens []string, opts *ClassifyOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	var cc classifyConfig
	if err := config.DecodeOptions(cmdCtx.Extractor.Options(), &cc); err != nil {
		return fmt.Errorf("invalid %s option: %w", comparisonOption, err)
	}
	extra := append(append([]string(nil), opts.Extra...), cc.ComparisonOperators...)

	classes := make([]tokenClass, 0, len(tokens))
	for _, tok := range tokens {
		classes = append(classes, tokenClass{
			Token:       tok,
			Normalized:  extract.Normalize(tok),
			Logical:     extract.IsLogicalOperator(tok),
			Arithmetic:  extract.IsArithmeticOperator(tok),
			Comparison:  extract.IsComparisonOperator(tok, extra...),
			ValidJoin:   extract.ValidJoin(tok),
			HandledJoin: extract.HandledJoinType(tok),
		})
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(classes)
	case output.ModeTable, output.ModeMarkdown:
		rows := make([][]string, 0, len(classes))
		for _, c := range classes {
			rows = append(rows, []string{
				c.Token,
				strconv.FormatBool(c.Logical),
				strconv.FormatBool(c.Arithmetic),
				strconv.FormatBool(c.Comparison),
				strconv.FormatBool(c.ValidJoin),
				strconv.FormatBool(c.HandledJoin),
			})
		}
		r.Table([]string{"TOKEN", "LOGICAL", "ARITHMETIC", "COMPARISON", "VALID JOIN", "HANDLED JOIN"}, rows)
	default:
		for _, c := range classes {
			kinds := c.kinds()
			if len(kinds) == 0 {
				kinds = []string{"-"}
			}
			r.Println(c.Token + "\t" + strings.Join(kinds, ","))
		}
	}

	return nil
}
