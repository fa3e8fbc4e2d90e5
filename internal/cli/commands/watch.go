package commands

import (
	"os"
	"os/signal"
	"time"

	"github.com/leapstack-labs/kicadfab/internal/cli/output"
	"github.com/leapstack-labs/kicadfab/internal/fab"
	"github.com/spf13/cobra"
)

// WatchOptions holds options for the watch command.
type WatchOptions struct {
	Debounce time.Duration
}

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	opts := &WatchOptions{}
	cmd := &cobra.Command{
		Use:   "watch [path]",
		Short: "Re-run the conversion whenever the KiCad exports change",
		Long: `Convert once, then watch the project directory and convert again each time
a CSV export or the .kicad_pcb file changes. Outputs are always overwritten.
Stop with Ctrl-C.`,
		Example: `  # Watch the current project
  kicadfab watch

  # Watch with a longer settle time
  kicadfab watch ./boards/widget --debounce 1s`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, dirArg(args), opts)
		},
	}

	cmd.Flags().DurationVar(&opts.Debounce, "debounce", fab.DefaultDebounce, "Time to wait for changes to settle")

	return cmd
}

func runWatch(cmd *cobra.Command, dir string, opts *WatchOptions) error {
	cc := NewCommandContext(cmd)
	r := cc.Renderer

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	return cc.Runner().Watch(ctx, cc.Options(dir), opts.Debounce, func(summary fab.Summary, err error) {
		if err != nil {
			cc.Logger.Debug("run finished with errors", "error", err)
		}
		if renderErr := renderSummary(r, summary, cc.Cfg.DryRun, cc.Cfg.Verbose); renderErr != nil {
			cc.Logger.Error("rendering summary", "error", renderErr)
		}
		if r.EffectiveMode() != output.ModeJSON {
			r.Muted("Watching " + dir + " for changes...")
		}
	})
}
