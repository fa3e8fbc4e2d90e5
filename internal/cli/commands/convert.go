package commands

import (
	"fmt"
	"strconv"

	"github.com/leapstack-labs/kicadfab/internal/cli/output"
	"github.com/leapstack-labs/kicadfab/internal/fab"
	"github.com/spf13/cobra"
)

// ConvertOutput is the JSON document printed by a conversion.
type ConvertOutput struct {
	Messages []output.Event `json:"messages"`
	Results  []ResultOutput `json:"results"`
	Failed   bool           `json:"failed"`
}

// ResultOutput is one converted kind in JSON output.
type ResultOutput struct {
	fab.Result
	Columns []string   `json:"columns,omitempty"`
	Preview [][]string `json:"preview,omitempty"`
}

// RunConvert converts the BOM and position files of the directory given as
// the optional positional argument. It returns an error when any kind failed
// hard, so the process exits non-zero.
func RunConvert(cmd *cobra.Command, args []string) error {
	cc := NewCommandContext(cmd)

	summary, err := cc.Runner().Run(cmd.Context(), cc.Options(dirArg(args)))
	if err != nil {
		cc.Logger.Debug("run finished with errors", "error", err)
	}
	if renderErr := renderSummary(cc.Renderer, summary, cc.Cfg.DryRun, cc.Cfg.Verbose); renderErr != nil {
		return renderErr
	}
	return failureError(summary)
}

// failureError summarizes hard failures; details were already reported.
func failureError(summary fab.Summary) error {
	failed := 0
	for _, res := range summary.Results {
		if res.Status == fab.StatusFailed {
			failed++
		}
	}
	if failed == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d conversions failed", failed, len(summary.Results))
}

func renderSummary(r *output.Renderer, summary fab.Summary, dryRun, verbose bool) error {
	mode := r.EffectiveMode()
	if mode == output.ModeJSON {
		doc := ConvertOutput{
			Messages: r.Events(),
			Results:  make([]ResultOutput, 0, len(summary.Results)),
			Failed:   summary.Failed(),
		}
		for _, res := range summary.Results {
			ro := ResultOutput{Result: res}
			if dryRun && res.Table != nil {
				ro.Columns = res.Table.Columns
				ro.Preview = res.Table.Rows
			}
			doc.Results = append(doc.Results, ro)
		}
		r.ResetEvents()
		return r.JSON(doc)
	}

	if dryRun {
		for _, res := range summary.Results {
			if res.Table == nil {
				continue
			}
			r.Println("")
			r.Header(2, fmt.Sprintf("%s preview (%s)", res.Kind, res.Output))
			r.Table(res.Table.Columns, res.Table.Rows)
		}
	}

	if mode == output.ModeMarkdown || verbose {
		r.Println("")
		r.Header(2, "Summary")
		rows := make([][]string, 0, len(summary.Results))
		for _, res := range summary.Results {
			rows = append(rows, []string{
				res.Kind.String(), res.Input, res.Output, res.Status.String(), strconv.Itoa(res.Rows),
			})
		}
		r.Table([]string{"Kind", "Input", "Output", "Status", "Rows"}, rows)
	}
	return nil
}
