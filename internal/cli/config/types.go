// Package config provides configuration management for the kicadfab CLI.
package config

// Config holds all CLI configuration options.
type Config struct {
	BOM       string `koanf:"bom"`
	POS       string `koanf:"pos"`
	BOMOutput string `koanf:"bom_output"`
	POSOutput string `koanf:"pos_output"`
	Force     bool   `koanf:"force"`
	DryRun    bool   `koanf:"dry_run"`
	Verbose   bool   `koanf:"verbose"`
	// OutputFormat is one of auto, text, markdown or json.
	OutputFormat string `koanf:"output"`
	LogLevel     string `koanf:"log_level"`
}

// Default configuration values.
const (
	DefaultBOMOutput = "bom_to_fab.csv"
	DefaultPOSOutput = "pos_to_fab.csv"
	DefaultOutput    = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultLogLevel  = "warn"
	EnvPrefix        = "KICADFAB_"
)

// ConfigFileNames are the config files searched in the working directory.
var ConfigFileNames = []string{"kicadfab.yaml", "kicadfab.yml"}
