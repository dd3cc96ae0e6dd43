package commands

import (
	"context"
	"log/slog"

	"github.com/leapstack-labs/sqlbuilder/internal/cli/output"
	"github.com/leapstack-labs/sqlbuilder/internal/config"
	"github.com/leapstack-labs/sqlbuilder/pkg/extract"
	"github.com/spf13/cobra"
)

// configKey is used to store config in context.
type configKey struct{}

// loggerKey is used to store the logger in context.
type loggerKey struct{}

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg       *config.Config
	Logger    *slog.Logger
	Renderer  *output.Renderer
	Extractor *extract.Extractor
}

// WithConfig stores the loaded config and logger for subcommands.
func WithConfig(ctx context.Context, cfg *config.Config, logger *slog.Logger) context.Context {
	ctx = context.WithValue(ctx, configKey{}, cfg)
	return context.WithValue(ctx, loggerKey{}, logger)
}

// NewCommandContext builds the dependencies of a command from its context.
// Commands run without a root command (as in tests) get the defaults.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, ok := ctx.Value(configKey{}).(*config.Config)
	if !ok || cfg == nil {
		cfg = config.Default()
	}
	logger, ok := ctx.Value(loggerKey{}).(*slog.Logger)
	if !ok || logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &CommandContext{
		Cfg:       cfg,
		Logger:    logger,
		Renderer:  output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.Output)),
		Extractor: extract.New(cfg.Options, logger),
	}
}
