package pipeline

import (
	"strings"

	"electclean/internal/util"
)

const writeInCandidate = "WRITE-IN"

var presidentNames = map[string]string{
	"DONALD J TRUMP":      "DONALD J TRUMP",
	"KAMALA D HARRIS":     "KAMALA D HARRIS",
	"CHASE OLIVER":        "CHASE OLIVER",
	"CLAUDIA DE LA CRUZ":  "CLAUDIA DE LA CRUZ",
	"CORNEL WEST":         "CORNEL WEST",
	"ROBERT F KENNEDY JR": "ROBERT F KENNEDY",
	"PETER SONSKI":        "PETER SONSKI",
	"JILL STEIN":          "JILL STEIN",
	"RANDALL TERRY":       "RANDALL TERRY",
	"JOSEPH KISHORE":      "JOSEPH KISHORE",
	"RACHELE FRUIT":       "RACHELE FRUIT",
}

// Order matters: the two-byte "é" artifact goes before the bare "Ã".
var mojibakeRepair = strings.NewReplacer("Ã©", "E", "Ã", "A")

// CleanCandidate maps a ballot name to its canonical form. Write-ins
// collapse to WRITE-IN, running mates are cut, and unknown names pass
// through after punctuation and encoding cleanup.
func CleanCandidate(name string) string {
	if name == "" {
		return name
	}

	name = util.Upper(name)

	if strings.Contains(name, "W/I") {
		return writeInCandidate
	}

	if before, _, found := strings.Cut(name, "&"); found {
		name = strings.TrimSpace(before)
	}

	name = strings.ReplaceAll(name, ".", "")
	name = mojibakeRepair.Replace(name)

	if canonical, ok := presidentNames[name]; ok {
		return canonical
	}
	return name
}

func writeInFlag(candidate string) string {
	if candidate == writeInCandidate {
		return "TRUE"
	}
	return "FALSE"
}
