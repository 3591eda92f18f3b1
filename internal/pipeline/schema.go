package pipeline

import (
	"errors"
	"fmt"

	"electclean/internal"
	"electclean/internal/util"
)

var ErrMissingColumn = errors.New("missing required column")

const electionColumn = "Election"

var columnRenames = map[string]string{
	"ReportingCountyName":       "county_name",
	"JurisdictionName":          "jurisdiction_name",
	"DataEntryJurisdictionName": "precinct",
	"Office":                    "office",
	"NameonBallot":              "candidate",
	"PoliticalParty":            "party_detailed",
	"TotalVotes":                "votes",
}

var droppedColumns = []string{
	"Election",
	"OfficeCategory",
	"BallotOrder",
	"Winner",
	"NumberofOfficeSeats",
	"DataEntryLevelName",
}

var sourceColumns = []string{
	"precinct",
	"office",
	"party_detailed",
	"votes",
	"county_name",
	"jurisdiction_name",
	"candidate",
	"year",
}

// NormalizeSchema renames source columns to codebook names, derives year
// from the election identifier and drops the columns the codebook does not
// carry. Columns listed for dropping may be absent.
func NormalizeSchema(t internal.Table) (internal.Table, error) {
	header := make([]string, len(t.Header))
	for i, name := range t.Header {
		if renamed, ok := columnRenames[name]; ok {
			name = renamed
		}
		header[i] = name
	}

	electionIdx := columnIndex(header, electionColumn)
	if electionIdx < 0 {
		return internal.Table{}, fmt.Errorf("%w: %s", ErrMissingColumn, electionColumn)
	}
	years := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		years[i] = util.ExtractYear(row[electionIdx])
	}

	out := setColumn(internal.Table{Header: header, Rows: t.Rows}, "year", years)
	return dropColumns(out, droppedColumns), nil
}

// BuildRawRecords reads the normalized table into records.
func BuildRawRecords(t internal.Table) ([]internal.RawRecord, error) {
	idx := map[string]int{}
	for _, name := range sourceColumns {
		i := columnIndex(t.Header, name)
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
		idx[name] = i
	}

	out := make([]internal.RawRecord, 0, len(t.Rows))
	for _, row := range t.Rows {
		out = append(out, internal.RawRecord{
			CountyName:       row[idx["county_name"]],
			JurisdictionName: row[idx["jurisdiction_name"]],
			Precinct:         row[idx["precinct"]],
			Office:           row[idx["office"]],
			Candidate:        row[idx["candidate"]],
			PartyDetailed:    row[idx["party_detailed"]],
			Votes:            row[idx["votes"]],
			Year:             row[idx["year"]],
		})
	}
	return out, nil
}

func columnIndex(header []string, name string) int {
	for i, h := range header {
		if h == name {
			return i
		}
	}
	return -1
}

// setColumn overwrites an existing column or appends a new one.
func setColumn(t internal.Table, name string, values []string) internal.Table {
	i := columnIndex(t.Header, name)
	header := t.Header
	if i < 0 {
		header = append(append([]string{}, t.Header...), name)
		i = len(header) - 1
	}

	rows := make([][]string, len(t.Rows))
	for r, row := range t.Rows {
		next := make([]string, len(header))
		copy(next, row)
		next[i] = values[r]
		rows[r] = next
	}
	return internal.Table{Header: header, Rows: rows}
}

func dropColumns(t internal.Table, names []string) internal.Table {
	drop := map[string]struct{}{}
	for _, n := range names {
		drop[n] = struct{}{}
	}

	keep := make([]int, 0, len(t.Header))
	header := make([]string, 0, len(t.Header))
	for i, h := range t.Header {
		if _, ok := drop[h]; ok {
			continue
		}
		keep = append(keep, i)
		header = append(header, h)
	}

	rows := make([][]string, len(t.Rows))
	for r, row := range t.Rows {
		next := make([]string, len(keep))
		for j, i := range keep {
			next[j] = row[i]
		}
		rows[r] = next
	}
	return internal.Table{Header: header, Rows: rows}
}
