package fab

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// Status describes how a single conversion ended.
type Status int

const (
	StatusWritten      Status = iota // output written
	StatusNoInput                    // no filename given or detected
	StatusInputMissing               // input file does not exist
	StatusOutputExists               // output exists and overwrite is off
	StatusDryRun                     // converted but not written
	StatusFailed                     // hard failure, see the returned error
)

var statusNames = map[Status]string{
	StatusWritten:      "written",
	StatusNoInput:      "no-input",
	StatusInputMissing: "input-missing",
	StatusOutputExists: "output-exists",
	StatusDryRun:       "dry-run",
	StatusFailed:       "failed",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Request describes one conversion.
type Request struct {
	Kind      Kind
	Input     string // empty when no filename was given or detected
	Output    string
	Overwrite bool
	DryRun    bool
}

// Result reports the outcome of one conversion.
type Result struct {
	Kind   Kind   `json:"kind"`
	Input  string `json:"input,omitempty"`
	Output string `json:"output"`
	Status Status `json:"status"`
	Rows   int    `json:"rows"`
	Error  string `json:"error,omitempty"`
	// Table holds the converted data when it was produced.
	Table *Table `json:"-"`
}

// Transformer runs the read, filter, rename and write steps for one kind.
type Transformer struct {
	reporter Reporter
	logger   *slog.Logger
}

// NewTransformer creates a Transformer. A nil reporter or logger discards output.
func NewTransformer(reporter Reporter, logger *slog.Logger) *Transformer {
	if reporter == nil {
		reporter = NopReporter{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Transformer{reporter: reporter, logger: logger}
}

// Transform converts req.Input into req.Output. Missing inputs and refused
// overwrites are reported and return a nil error; a malformed input returns
// an error and leaves req.Output untouched.
func (t *Transformer) Transform(ctx context.Context, req Request) (Result, error) {
	res := Result{Kind: req.Kind, Input: req.Input, Output: req.Output}
	log := t.logger.With("kind", req.Kind.String(), "input", req.Input, "output", req.Output)

	if err := ctx.Err(); err != nil {
		res.Status = StatusFailed
		res.Error = err.Error()
		return res, err
	}

	if req.Input == "" {
		t.reporter.Warning(fmt.Sprintf("No %s filename given.", req.Kind))
		res.Status = StatusNoInput
		return res, nil
	}

	profile := req.Kind.Profile()
	data, err := loadTable(req.Input, profile.Delimiter)
	if errors.Is(err, fs.ErrNotExist) {
		t.reporter.Warning(fmt.Sprintf("File not found: %s", req.Input))
		res.Status = StatusInputMissing
		return res, nil
	}
	if err != nil {
		return t.fail(res, fmt.Errorf("reading %s: %w", req.Input, err))
	}
	t.reporter.Info(fmt.Sprintf("Opened %s.", req.Input))
	log.Debug("read input", "columns", len(data.Columns), "rows", len(data.Rows))

	selected, err := data.Select(profile.Columns)
	if err != nil {
		return t.fail(res, fmt.Errorf("%s file %s: %w", req.Kind, req.Input, err))
	}
	converted := selected.Rename(profile.Renames)
	res.Table = converted
	res.Rows = len(converted.Rows)

	if !req.Overwrite {
		if _, err := os.Stat(req.Output); err == nil {
			t.reporter.Warning(fmt.Sprintf("%s exists already, use --force to overwrite!", req.Output))
			res.Status = StatusOutputExists
			return res, nil
		}
	}

	if req.DryRun {
		t.reporter.Info(fmt.Sprintf("Dry run: would write %d rows to %s.", res.Rows, req.Output))
		res.Status = StatusDryRun
		return res, nil
	}

	if err := writeFileAtomic(req.Output, converted); err != nil {
		return t.fail(res, fmt.Errorf("writing %s: %w", req.Output, err))
	}
	log.Debug("wrote output", "rows", res.Rows)
	t.reporter.Success(fmt.Sprintf("Wrote output to %s.", req.Output))
	res.Status = StatusWritten
	return res, nil
}

func (t *Transformer) fail(res Result, err error) (Result, error) {
	t.reporter.Error(err.Error())
	res.Status = StatusFailed
	res.Error = err.Error()
	res.Table = nil
	res.Rows = 0
	return res, err
}

func loadTable(path string, delim rune) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadTable(f, delim)
}

// writeFileAtomic writes t to a temporary file next to path and renames it
// into place, so a failed write never leaves a partial output behind.
func writeFileAtomic(path string, t *Table) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = t.Write(tmp); err != nil {
		return err
	}
	if err = tmp.Chmod(0o644); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
