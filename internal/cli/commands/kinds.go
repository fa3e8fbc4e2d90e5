package commands

import (
	"fmt"

	"github.com/leapstack-labs/kicadfab/internal/cli/output"
	"github.com/leapstack-labs/kicadfab/internal/fab"
	"github.com/spf13/cobra"
)

// KindOutput describes one file kind in JSON output.
type KindOutput struct {
	Kind            fab.Kind          `json:"kind"`
	Description     string            `json:"description"`
	Delimiter       string            `json:"delimiter"`
	Columns         []string          `json:"columns"`
	Renames         map[string]string `json:"renames"`
	DefaultFilename string            `json:"default_filename"`
}

// NewKindsCommand creates the kinds command.
func NewKindsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds [bom|pos]",
		Short: "List the column mapping applied to each file kind",
		Long: `List the delimiter, kept columns and vendor column names used for the
BOM and position files.`,
		Example: `  # Show all mappings
  kicadfab kinds

  # Show the position file mapping only
  kicadfab kinds pos`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds := fab.Kinds()
			if len(args) == 1 {
				kind, err := fab.ParseKind(args[0])
				if err != nil {
					return err
				}
				kinds = []fab.Kind{kind}
			}
			return listKinds(cmd, kinds)
		},
	}
}

func listKinds(cmd *cobra.Command, kinds []fab.Kind) error {
	r := NewCommandContext(cmd).Renderer

	if r.EffectiveMode() == output.ModeJSON {
		out := make([]KindOutput, 0, len(kinds))
		for _, kind := range kinds {
			p := kind.Profile()
			out = append(out, KindOutput{
				Kind:            kind,
				Description:     kind.Description(),
				Delimiter:       string(p.Delimiter),
				Columns:         p.Columns,
				Renames:         p.Renames,
				DefaultFilename: p.DefaultFilename("{project}"),
			})
		}
		return r.JSON(out)
	}

	for i, kind := range kinds {
		p := kind.Profile()
		if i > 0 {
			r.Println("")
		}
		r.Header(2, fmt.Sprintf("%s (%s)", kind.Description(), kind))
		r.Println(output.FormatKeyValue("Delimiter", fmt.Sprintf("%q", string(p.Delimiter))))
		r.Println(output.FormatKeyValue("Default input", p.DefaultFilename("<project>")))
		rows := make([][]string, len(p.Columns))
		outCols := p.OutputColumns()
		for j, col := range p.Columns {
			rows[j] = []string{col, outCols[j]}
		}
		r.Table([]string{"KiCad column", "Vendor column"}, rows)
	}
	return nil
}
