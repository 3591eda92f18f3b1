package pipeline

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"electclean/internal"
)

var (
	ErrEmptyInput          = errors.New("csv input has no header row")
	ErrAllStrategiesFailed = errors.New("every load strategy failed")
)

// LoadStrategy turns CSV bytes into a rectangular table. A strategy either
// returns a table where every row has len(Header) fields, or an error and
// no table.
type LoadStrategy interface {
	Name() string
	Load(r io.Reader) (internal.Table, []internal.SkippedRow, error)
}

// DefaultStrategies is the strict -> repair -> lenient fallback order.
// Repair diagnostics are written to diag.
func DefaultStrategies(diag io.Writer) []LoadStrategy {
	return []LoadStrategy{
		StrictStrategy{},
		RepairStrategy{Diag: diag},
		LenientStrategy{},
	}
}

// LoadTable reads path once and tries each strategy in order, returning
// the first table produced. A missing file is fatal and no strategy runs.
func LoadTable(path string, strategies []LoadStrategy) (internal.Table, internal.LoadReport, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return internal.Table{}, internal.LoadReport{}, err
	}
	return LoadBytes(blob, strategies)
}

func LoadBytes(blob []byte, strategies []LoadStrategy) (internal.Table, internal.LoadReport, error) {
	var errs []error
	for _, s := range strategies {
		table, skipped, err := s.Load(bytes.NewReader(blob))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
			continue
		}
		return table, internal.LoadReport{Strategy: s.Name(), Skipped: skipped}, nil
	}
	return internal.Table{}, internal.LoadReport{}, fmt.Errorf("%w: %w", ErrAllStrategiesFailed, errors.Join(errs...))
}

// StrictStrategy fails on any field count mismatch. Bare quotes inside
// unquoted fields are kept as literal text.
type StrictStrategy struct{}

func (StrictStrategy) Name() string { return "strict" }

func (StrictStrategy) Load(r io.Reader) (internal.Table, []internal.SkippedRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 0
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return internal.Table{}, nil, err
	}
	if len(records) == 0 {
		return internal.Table{}, nil, ErrEmptyInput
	}
	return internal.Table{Header: cleanHeader(records[0]), Rows: records[1:]}, nil, nil
}

// RepairStrategy strips spurious leading empty fields from over-long rows
// and drops rows that still do not match the header width, reporting each
// by record number (the header is record 1; a quoted field spanning lines
// still counts as one record). A CSV read error fails the strategy.
type RepairStrategy struct {
	Diag io.Writer
}

func (RepairStrategy) Name() string { return "repair" }

func (s RepairStrategy) Load(r io.Reader) (internal.Table, []internal.SkippedRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return internal.Table{}, nil, ErrEmptyInput
	}
	if err != nil {
		return internal.Table{}, nil, err
	}
	n := len(header)

	var rows [][]string
	var skipped []internal.SkippedRow
	record := 1
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return internal.Table{}, nil, err
		}
		record++

		for len(row) > n && row[0] == "" {
			row = row[1:]
		}
		if len(row) == n {
			rows = append(rows, row)
			continue
		}

		skipped = append(skipped, internal.SkippedRow{Line: record, Expected: n, Got: len(row)})
		if s.Diag != nil {
			fmt.Fprintf(s.Diag, "Skipped line %d: expected %d fields, got %d\n", record, n, len(row))
		}
	}

	return internal.Table{Header: cleanHeader(header), Rows: rows}, skipped, nil
}

// LenientStrategy tolerates stray quotes and silently drops any row that
// does not parse or does not match the header width.
type LenientStrategy struct{}

func (LenientStrategy) Name() string { return "lenient" }

func (LenientStrategy) Load(r io.Reader) (internal.Table, []internal.SkippedRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return internal.Table{}, nil, ErrEmptyInput
	}
	if err != nil {
		return internal.Table{}, nil, err
	}
	n := len(header)

	var rows [][]string
	var skipped []internal.SkippedRow
	record := 1
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		record++
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			skipped = append(skipped, internal.SkippedRow{Line: record, Expected: n})
			continue
		}
		if err != nil {
			return internal.Table{}, nil, err
		}
		if len(row) != n {
			skipped = append(skipped, internal.SkippedRow{Line: record, Expected: n, Got: len(row)})
			continue
		}
		rows = append(rows, row)
	}

	return internal.Table{Header: cleanHeader(header), Rows: rows}, skipped, nil
}

func cleanHeader(header []string) []string {
	out := make([]string, len(header))
	copy(out, header)
	if len(out) > 0 {
		out[0] = strings.TrimPrefix(out[0], "\ufeff")
	}
	return out
}
