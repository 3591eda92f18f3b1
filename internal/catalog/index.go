package catalog

import (
	"math"
	"strconv"
	"strings"

	"electclean/internal"
	"electclean/internal/util"
)

// MissingFIPS is the text a county without a lookup entry carries before
// padding. Padded it becomes "00nan", which downstream consumers key on.
const MissingFIPS = "nan"

const fipsWidth = 5

// Index maps uppercased county names to FIPS codes.
type Index struct {
	FIPSByCounty map[string]string
	Duplicates   []string
}

func BuildIndex(entries []internal.FIPSEntry) *Index {
	idx := &Index{FIPSByCounty: map[string]string{}}

	for _, e := range entries {
		county := util.Upper(e.CountyName)
		if _, ok := idx.FIPSByCounty[county]; ok {
			idx.Duplicates = append(idx.Duplicates, county)
			continue
		}
		idx.FIPSByCounty[county] = normalizeCode(e.CountyFIPS)
	}

	return idx
}

// Lookup returns the zero-padded FIPS code for a county name. Unmatched
// counties, and counties listed with an empty code, get the padded
// MissingFIPS sentinel and ok=false.
func (idx *Index) Lookup(county string) (string, bool) {
	code, ok := idx.FIPSByCounty[util.Upper(county)]
	if !ok || code == MissingFIPS {
		return util.ZFill(MissingFIPS, fipsWidth), false
	}
	return util.ZFill(code, fipsWidth), true
}

// normalizeCode renders numeric codes as plain integers ("01001" and
// "1001.0" both become "1001") so padding yields one canonical form.
func normalizeCode(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return MissingFIPS
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return strconv.FormatInt(n, 10)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) && f == math.Trunc(f) {
		return strconv.FormatFloat(f, 'f', 0, 64)
	}
	return s
}
