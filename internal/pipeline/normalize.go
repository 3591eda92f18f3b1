package pipeline

import (
	"strings"

	"electclean/internal"
	"electclean/internal/config"
	"electclean/internal/util"
)

const (
	combinedPresidentOffice = "US PRESIDENT & VICE PRESIDENT"
	presidentOffice         = "US PRESIDENT"
)

var partySimplified = map[string]string{
	"DEMOCRATIC":                         "DEMOCRAT",
	"REPUBLICAN":                         "REPUBLICAN",
	"LIBERTARIAN":                        "LIBERTARIAN",
	"INDEPENDENT":                        "OTHER",
	"OTHER":                              "OTHER",
	"PARTY FOR SOCIALISM AND LIBERATION": "OTHER",
	"AMERICAN SOLIDARITY":                "OTHER",
	"WE THE PEOPLE":                      "OTHER",
}

func StandardizeOffice(office string) string {
	return strings.ReplaceAll(util.Upper(office), combinedPresidentOffice, presidentOffice)
}

// SimplifyParty maps an uppercased detailed party label to the simplified
// taxonomy. Labels outside the table map to "".
func SimplifyParty(partyDetailed string) string {
	return partySimplified[partyDetailed]
}

// NormalizeRecords runs the standardize, canonicalize, sanitize and enrich
// stages over the raw records. County FIPS is left for MergeFIPS.
func NormalizeRecords(raw []internal.RawRecord, election config.Election) []internal.CleanRecord {
	out := make([]internal.CleanRecord, 0, len(raw))
	for _, r := range raw {
		rec := internal.CleanRecord{
			Precinct:         r.Precinct,
			Office:           StandardizeOffice(r.Office),
			PartyDetailed:    util.Upper(r.PartyDetailed),
			CountyName:       util.Upper(r.CountyName),
			JurisdictionName: util.Upper(r.JurisdictionName),
			Candidate:        CleanCandidate(r.Candidate),
			Votes:            util.ParseVotes(r.Votes),
			Year:             r.Year,
		}
		rec.PartySimplified = SimplifyParty(rec.PartyDetailed)
		rec.WriteIn = writeInFlag(rec.Candidate)
		ApplyElection(&rec, election)
		out = append(out, rec)
	}
	return out
}

func ApplyElection(rec *internal.CleanRecord, election config.Election) {
	rec.Stage = election.Stage
	rec.State = election.State
	rec.Special = election.Special
	rec.Date = election.Date
}
