package util

import "testing"

func TestUpper(t *testing.T) {
	cases := map[string]string{
		"":              "",
		"marion":        "MARION",
		"St. Joseph":    "ST. JOSEPH",
		"straße":        "STRASSE",
		"AndrÃ©":        "ANDRÃ©",
		"Democratic":    "DEMOCRATIC",
		"José Ñúñez":    "JOSÉ ÑÚÑEZ",
		"already UPPER": "ALREADY UPPER",
	}
	for in, want := range cases {
		if got := Upper(in); got != want {
			t.Fatalf("Upper(%q)=%q want %q", in, got, want)
		}
	}
}

func TestExtractYear(t *testing.T) {
	cases := map[string]string{
		"2024 General Election":       "2024",
		"General Election 11/05/2024": "2024",
		"Primary 20240507":            "2024",
		"General":                     "",
		"":                            "",
	}
	for in, want := range cases {
		if got := ExtractYear(in); got != want {
			t.Fatalf("ExtractYear(%q)=%q want %q", in, got, want)
		}
	}
}

func TestZFill(t *testing.T) {
	cases := []struct {
		in    string
		width int
		want  string
	}{
		{in: "1001", width: 5, want: "01001"},
		{in: "18097", width: 5, want: "18097"},
		{in: "nan", width: 5, want: "00nan"},
		{in: "-42", width: 5, want: "-0042"},
		{in: "", width: 5, want: "00000"},
		{in: "123456", width: 5, want: "123456"},
	}
	for _, tc := range cases {
		if got := ZFill(tc.in, tc.width); got != tc.want {
			t.Fatalf("ZFill(%q)=%q want %q", tc.in, got, tc.want)
		}
	}
}
