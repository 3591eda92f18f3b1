package internal

import "strconv"

// Table is a rectangular CSV table: every row has len(Header) fields.
type Table struct {
	Header []string
	Rows   [][]string
}

type SkippedRow struct {
	Line     int
	Expected int
	Got      int
}

type LoadReport struct {
	Strategy string
	Skipped  []SkippedRow
}

type RawRecord struct {
	CountyName       string
	JurisdictionName string
	Precinct         string
	Office           string
	Candidate        string
	PartyDetailed    string
	Votes            string
	Year             string
}

type FIPSEntry struct {
	CountyName string
	CountyFIPS string
}

type CleanRecord struct {
	Precinct         string
	Office           string
	PartyDetailed    string
	PartySimplified  string
	Votes            int
	CountyName       string
	CountyFIPS       string
	JurisdictionName string
	Candidate        string
	Year             string
	Stage            string
	State            string
	Special          string
	WriteIn          string
	Date             string
}

// Values returns the record in codebook column order.
func (r CleanRecord) Values() []string {
	return []string{
		r.Precinct,
		r.Office,
		r.PartyDetailed,
		r.PartySimplified,
		strconv.Itoa(r.Votes),
		r.CountyName,
		r.CountyFIPS,
		r.JurisdictionName,
		r.Candidate,
		r.Year,
		r.Stage,
		r.State,
		r.Special,
		r.WriteIn,
		r.Date,
	}
}

type RunStatus string

const (
	RunSucceeded RunStatus = "succeeded"
	RunFailed    RunStatus = "failed"
)

type RunRecord struct {
	ID            string
	StartedAt     string
	FinishedAt    string
	Strategy      string
	InputRows     int
	OutputRows    int
	SkippedRows   int
	UnmatchedFIPS int
	OutputPath    string
	Status        RunStatus
	Error         string
}

type VoteTotal struct {
	Key   string
	Votes int64
	Rows  int
}
