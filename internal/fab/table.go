package fab

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Table is a delimited file held in memory. Cells are kept as the text that
// was read; coordinates and rotations are never parsed as numbers.
type Table struct {
	Columns []string
	Rows    [][]string
}

// ReadTable reads a delimited table with a header row. A leading UTF-8 byte
// order mark is dropped. Rows shorter than the header are padded with empty
// cells and longer rows are truncated.
func ReadTable(r io.Reader, delim rune) (*Table, error) {
	cr := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(transform.Nop)))
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyInput
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	t := &Table{Columns: header}
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", len(t.Rows)+1, err)
		}
		t.Rows = append(t.Rows, fitRow(record, len(header)))
	}
	return t, nil
}

func fitRow(record []string, width int) []string {
	if len(record) == width {
		return record
	}
	row := make([]string, width)
	copy(row, record)
	return row
}

// Select projects t onto columns, in the given order. Every missing column
// is named in the returned *MissingColumnsError.
func (t *Table) Select(columns []string) (*Table, error) {
	index := make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		if _, dup := index[c]; !dup {
			index[c] = i
		}
	}

	positions := make([]int, len(columns))
	var missing []string
	for i, c := range columns {
		pos, ok := index[c]
		if !ok {
			missing = append(missing, c)
			continue
		}
		positions[i] = pos
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	out := &Table{
		Columns: append([]string(nil), columns...),
		Rows:    make([][]string, len(t.Rows)),
	}
	for r, row := range t.Rows {
		projected := make([]string, len(positions))
		for i, pos := range positions {
			projected[i] = row[pos]
		}
		out.Rows[r] = projected
	}
	return out, nil
}

// Rename relabels columns in a single pass. Every new name is computed from
// the original header, so mappings that rotate names (A->B, B->C) are safe.
func (t *Table) Rename(mapping map[string]string) *Table {
	columns := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		if renamed, ok := mapping[c]; ok {
			columns[i] = renamed
		} else {
			columns[i] = c
		}
	}
	return &Table{Columns: columns, Rows: t.Rows}
}

// Write serializes t as comma-separated text with a header row.
func (t *Table) Write(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return err
	}
	return cw.Error()
}
