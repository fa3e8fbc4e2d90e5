package fab

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
)

// Default output filenames.
const (
	DefaultBOMOutput = "bom_to_fab.csv"
	DefaultPOSOutput = "pos_to_fab.csv"
)

// Options configures a full run over both kinds.
type Options struct {
	// Dir is the project directory used to guess input filenames.
	Dir string
	// Inputs holds explicit input filenames; a missing entry is autodetected.
	Inputs map[Kind]string
	// Outputs holds output filenames; a missing entry uses the default.
	Outputs   map[Kind]string
	Overwrite bool
	DryRun    bool
}

// Summary collects the per-kind results of a run.
type Summary struct {
	Results []Result `json:"results"`
}

// Failed reports whether any kind ended in a hard failure.
func (s Summary) Failed() bool {
	for _, r := range s.Results {
		if r.Status == StatusFailed {
			return true
		}
	}
	return false
}

// Runner processes the BOM and position files of a project directory.
type Runner struct {
	Locator     *Locator
	Transformer *Transformer
	logger      *slog.Logger
}

// NewRunner wires a Locator and Transformer sharing reporter and logger.
func NewRunner(reporter Reporter, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{
		Locator:     NewLocator(reporter, logger),
		Transformer: NewTransformer(reporter, logger),
		logger:      logger,
	}
}

// Run converts every kind in order. A failure for one kind does not stop the
// next; all hard failures are joined into the returned error.
func (r *Runner) Run(ctx context.Context, opts Options) (Summary, error) {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	// Inputs are resolved up front, matching the order of status lines
	// users see: detection first, then conversion.
	inputs := make(map[Kind]string, len(Kinds()))
	for _, kind := range Kinds() {
		inputs[kind] = r.ResolveInput(kind, dir, opts.Inputs[kind])
	}

	var (
		summary Summary
		errs    []error
	)
	for _, kind := range Kinds() {
		res, err := r.Transformer.Transform(ctx, Request{
			Kind:      kind,
			Input:     inputs[kind],
			Output:    OutputFor(kind, opts.Outputs),
			Overwrite: opts.Overwrite,
			DryRun:    opts.DryRun,
		})
		summary.Results = append(summary.Results, res)
		if err != nil {
			r.logger.Debug("conversion failed", "kind", kind.String(), "error", err)
			errs = append(errs, err)
		}
	}
	return summary, errors.Join(errs...)
}

// ResolveInput returns explicit when set, otherwise the guessed filename
// inside dir, or "" when nothing could be guessed.
func (r *Runner) ResolveInput(kind Kind, dir, explicit string) string {
	if explicit != "" {
		return explicit
	}
	name, ok := r.Locator.DefaultFilename(kind, dir)
	if !ok {
		return ""
	}
	return filepath.Join(dir, name)
}

// OutputFor returns the configured output for kind or its default.
func OutputFor(kind Kind, outputs map[Kind]string) string {
	if out := outputs[kind]; out != "" {
		return out
	}
	if kind == BOM {
		return DefaultBOMOutput
	}
	return DefaultPOSOutput
}
