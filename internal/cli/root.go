// Package cli provides the command-line interface for kicadfab.
package cli

import (
	"fmt"
	"os"

	"github.com/leapstack-labs/kicadfab/internal/cli/commands"
	"github.com/leapstack-labs/kicadfab/internal/cli/config"
	"github.com/leapstack-labs/kicadfab/internal/cli/output"
	"github.com/spf13/cobra"
)

var cfgFile string

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "kicadfab [path]",
		Short: "Convert KiCad BOM and position files for JLCPCB assembly",
		Long: `Convert BOM and position files from KiCad Pcbnew to the format desired by JLCPCB.

The BOM filename defaults to '[project].csv' and the position filename defaults
to '[project]-all-pos.csv', where 'project' is determined by looking for
[project].kicad_pcb in the given directory. Use --bom and --pos to change these
if necessary.`,
		Example: `  # Convert the project in the current directory
  kicadfab

  # Convert another project, replacing existing outputs
  kicadfab ./boards/widget --force

  # Preview without writing
  kicadfab --dry-run`,
		Version: Version,
		Args:    cobra.MaximumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, used, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}

			logger := cfg.NewLogger(cmd.ErrOrStderr())
			if used != "" {
				logger.Debug("using config file", "path", used)
			}

			ctx := config.WithConfig(cmd.Context(), cfg)
			ctx = config.WithLogger(ctx, logger)
			cmd.SetContext(ctx)
			return nil
		},
		RunE:          commands.RunConvert,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: ./kicadfab.yaml)")
	pf.String("bom", "", "BOM file from KiCad (default: autodetect)")
	pf.String("pos", "", "Position file from KiCad (default: autodetect)")
	pf.BoolP("force", "f", false, "Overwrite output files if they exist")
	pf.String("bom-output", config.DefaultBOMOutput, "Name of BOM output file")
	pf.String("pos-output", config.DefaultPOSOutput, "Name of position output file")
	pf.Bool("dry-run", false, "Convert and preview without writing outputs")
	pf.BoolP("verbose", "v", false, "Verbose output")
	pf.StringP("output", "o", "", "Output format (auto|text|markdown|json)")
	pf.String("log-level", "", "Log level (debug|info|warn|error)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return output.Modes(), cobra.ShellCompDirectiveNoFileComp
	})
	for _, name := range []string{"bom", "pos"} {
		_ = rootCmd.MarkPersistentFlagFilename(name, "csv")
	}

	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(commands.NewDetectCommand())
	rootCmd.AddCommand(commands.NewKindsCommand())
	rootCmd.AddCommand(commands.NewWatchCommand())
	rootCmd.AddCommand(commands.NewInitCommand())
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for kicadfab.

To load completions:

Bash:
  $ source <(kicadfab completion bash)

Zsh:
  $ kicadfab completion zsh > "${fpath[1]}/_kicadfab"

Fish:
  $ kicadfab completion fish | source

PowerShell:
  PS> kicadfab completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
	return cmd
}
