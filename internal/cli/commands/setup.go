package commands

import (
	"log/slog"

	"github.com/leapstack-labs/kicadfab/internal/cli/config"
	"github.com/leapstack-labs/kicadfab/internal/cli/output"
	"github.com/leapstack-labs/kicadfab/internal/fab"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext builds a CommandContext from the command's context.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := config.GetConfig(cmd.Context())
	logger := config.GetLogger(cmd.Context())
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// Runner returns a fab.Runner reporting through the context's renderer.
func (c *CommandContext) Runner() *fab.Runner {
	return fab.NewRunner(c.Renderer, c.Logger)
}

// Options maps the configuration onto run options for dir.
func (c *CommandContext) Options(dir string) fab.Options {
	return fab.Options{
		Dir: dir,
		Inputs: map[fab.Kind]string{
			fab.BOM: c.Cfg.BOM,
			fab.POS: c.Cfg.POS,
		},
		Outputs: map[fab.Kind]string{
			fab.BOM: c.Cfg.BOMOutput,
			fab.POS: c.Cfg.POSOutput,
		},
		Overwrite: c.Cfg.Force,
		DryRun:    c.Cfg.DryRun,
	}
}

// dirArg returns the positional path argument, defaulting to ".".
func dirArg(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return "."
}
