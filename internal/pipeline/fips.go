package pipeline

import (
	"fmt"

	"electclean/internal"
	"electclean/internal/catalog"
)

// LoadFIPS reads the county_name,county_fips lookup file. The lookup file
// has no repair path: it must parse strictly.
func LoadFIPS(path string) (*catalog.Index, error) {
	table, _, err := LoadTable(path, []LoadStrategy{StrictStrategy{}})
	if err != nil {
		return nil, fmt.Errorf("load fips: %w", err)
	}

	nameIdx := columnIndex(table.Header, "county_name")
	codeIdx := columnIndex(table.Header, "county_fips")
	if nameIdx < 0 {
		return nil, fmt.Errorf("load fips: %w: county_name", ErrMissingColumn)
	}
	if codeIdx < 0 {
		return nil, fmt.Errorf("load fips: %w: county_fips", ErrMissingColumn)
	}

	entries := make([]internal.FIPSEntry, 0, len(table.Rows))
	for _, row := range table.Rows {
		entries = append(entries, internal.FIPSEntry{CountyName: row[nameIdx], CountyFIPS: row[codeIdx]})
	}
	return catalog.BuildIndex(entries), nil
}

// MergeFIPS left-joins county FIPS codes onto the records in place. It
// returns the number of rows left without a code and the distinct county
// names behind them, in first-seen order.
func MergeFIPS(records []internal.CleanRecord, idx *catalog.Index) (int, []string) {
	rows := 0
	var unmatched []string
	seen := map[string]struct{}{}
	for i := range records {
		code, ok := idx.Lookup(records[i].CountyName)
		records[i].CountyFIPS = code
		if ok {
			continue
		}
		rows++
		if _, dup := seen[records[i].CountyName]; !dup {
			seen[records[i].CountyName] = struct{}{}
			unmatched = append(unmatched, records[i].CountyName)
		}
	}
	return rows, unmatched
}
