package commands

import (
	"os"
	"path/filepath"

	"github.com/leapstack-labs/kicadfab/internal/cli/output"
	"github.com/leapstack-labs/kicadfab/internal/fab"
	"github.com/spf13/cobra"
)

// DetectOutput is the JSON output of the detect command.
type DetectOutput struct {
	Dir      string         `json:"dir"`
	Project  string         `json:"project,omitempty"`
	Found    bool           `json:"found"`
	Files    []DetectedFile `json:"files,omitempty"`
	Messages []output.Event `json:"messages"`
}

// DetectedFile is a guessed input filename.
type DetectedFile struct {
	Kind   fab.Kind `json:"kind"`
	Path   string   `json:"path"`
	Exists bool     `json:"exists"`
}

// NewDetectCommand creates the detect command.
func NewDetectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "detect [path]",
		Short: "Show the detected project and guessed input files",
		Long: `Look for a single .kicad_pcb file in the directory and print the input
filenames that would be used when --bom and --pos are not given.`,
		Example: `  # Detect in the current directory
  kicadfab detect

  # Detect in another directory, as JSON
  kicadfab detect ./boards/widget -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd, dirArg(args))
		},
	}
}

func runDetect(cmd *cobra.Command, dir string) error {
	cc := NewCommandContext(cmd)
	r := cc.Renderer
	locator := fab.NewLocator(r, cc.Logger)

	result := DetectOutput{Dir: dir}
	result.Project, result.Found = locator.Locate(dir)
	if result.Found {
		for _, kind := range fab.Kinds() {
			name, _ := locator.DefaultFilename(kind, dir)
			path := filepath.Join(dir, name)
			_, err := os.Stat(path)
			result.Files = append(result.Files, DetectedFile{Kind: kind, Path: path, Exists: err == nil})
		}
	}

	if r.EffectiveMode() == output.ModeJSON {
		result.Messages = r.Events()
		return r.JSON(result)
	}
	if !result.Found {
		return nil
	}

	r.Println("")
	r.Println(output.FormatKeyValue("Project", result.Project))
	rows := make([][]string, 0, len(result.Files))
	for _, f := range result.Files {
		exists := "no"
		if f.Exists {
			exists = "yes"
		}
		rows = append(rows, []string{f.Kind.String(), f.Path, exists})
	}
	r.Table([]string{"Kind", "File", "Exists"}, rows)
	return nil
}
