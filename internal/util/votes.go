package util

import (
	"math"
	"strconv"
	"strings"
)

// ParseVotes coerces a raw vote count to a non-negative integer. Decimal
// counts are truncated toward zero; anything unparseable counts as zero.
func ParseVotes(input string) int {
	s := strings.TrimSpace(input)
	if s == "" {
		return 0
	}

	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return clampVotes(n)
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	f = math.Trunc(f)
	if f >= math.MaxInt64 || f <= math.MinInt64 {
		return 0
	}
	return clampVotes(int64(f))
}

func clampVotes(n int64) int {
	if n < 0 || n > math.MaxInt {
		return 0
	}
	return int(n)
}
