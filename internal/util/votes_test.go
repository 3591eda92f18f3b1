package util

import "testing"

func TestParseVotes(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  int
	}{
		{name: "integer", input: "120", want: 120},
		{name: "padded", input: " 42 ", want: 42},
		{name: "negative", input: "-4", want: 0},
		{name: "empty", input: "", want: 0},
		{name: "text", input: "n/a", want: 0},
		{name: "thousands separator", input: "1,234", want: 0},
		{name: "decimal", input: "12.0", want: 12},
		{name: "fraction truncated", input: "7.9", want: 7},
		{name: "negative decimal", input: "-3.5", want: 0},
		{name: "exponent", input: "1e3", want: 1000},
		{name: "nan", input: "NaN", want: 0},
		{name: "infinity", input: "inf", want: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ParseVotes(tc.input); got != tc.want {
				t.Fatalf("got %d want %d", got, tc.want)
			}
		})
	}
}
