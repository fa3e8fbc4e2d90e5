package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/kicadfab/internal/cli/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const configHeader = `# kicadfab configuration.
# Values here are overridden by KICADFAB_* environment variables and flags.
`

// fileConfig is the subset of Config written by init.
type fileConfig struct {
	BOMOutput string `yaml:"bom_output"`
	POSOutput string `yaml:"pos_output"`
	Force     bool   `yaml:"force"`
	Output    string `yaml:"output"`
	LogLevel  string `yaml:"log_level"`
}

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a kicadfab.yaml with the current settings",
		Long: `Write a kicadfab.yaml configuration file holding the effective output
names, overwrite policy, output format and log level.

An existing kicadfab.yaml is only replaced when --force is given.`,
		Example: `  # Initialize in current directory
  kicadfab init

  # Record custom output names
  kicadfab init --bom-output jlc-bom.csv --pos-output jlc-cpl.csv

  # Replace an existing config
  kicadfab init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := NewCommandContext(cmd)
			path, err := writeConfigFile(dirArg(args), cc.Cfg)
			if err != nil {
				return err
			}
			cc.Renderer.Success(fmt.Sprintf("Wrote %s.", path))
			return nil
		},
	}
}

func writeConfigFile(dir string, cfg *config.Config) (string, error) {
	if dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	path := filepath.Join(dir, config.ConfigFileNames[0])
	if _, err := os.Stat(path); err == nil && !cfg.Force {
		return "", fmt.Errorf("%s already exists. Use --force to overwrite", path)
	}

	var buf bytes.Buffer
	buf.WriteString(configHeader)
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(fileConfig{
		BOMOutput: cfg.BOMOutput,
		POSOutput: cfg.POSOutput,
		Force:     false,
		Output:    cfg.OutputFormat,
		LogLevel:  cfg.LogLevel,
	}); err != nil {
		return "", fmt.Errorf("encoding config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", err
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
