package pipeline

import "testing"

func TestCleanCandidate(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "punctuation", input: "DONALD J. TRUMP", want: "DONALD J TRUMP"},
		{name: "write-in marker", input: "JOHN DOE (W/I)", want: "WRITE-IN"},
		{name: "write-in lowercase", input: "jane roe w/i", want: "WRITE-IN"},
		{name: "write-in beats running mate", input: "A B & C D (W/I)", want: "WRITE-IN"},
		{name: "running mate", input: "JANE SMITH & JOHN JONES", want: "JANE SMITH"},
		{name: "ticket to canonical", input: "Kamala D. Harris & Tim Walz", want: "KAMALA D HARRIS"},
		{name: "alias", input: "Robert F. Kennedy Jr.", want: "ROBERT F KENNEDY"},
		{name: "mojibake e acute", input: "AndrÃ© Jones", want: "ANDRE JONES"},
		{name: "mojibake a", input: "FranÃ§ois", want: "FRANA§OIS"},
		{name: "unknown passthrough", input: "Some Local Candidate", want: "SOME LOCAL CANDIDATE"},
		{name: "no trim without ampersand", input: " Jill Stein", want: " JILL STEIN"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CleanCandidate(tc.input); got != tc.want {
				t.Fatalf("CleanCandidate(%q)=%q want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestCleanCandidateIsStable(t *testing.T) {
	for in := range presidentNames {
		once := CleanCandidate(in)
		if twice := CleanCandidate(once); twice != once {
			t.Fatalf("%q -> %q -> %q", in, once, twice)
		}
	}
}

func TestWriteInFlag(t *testing.T) {
	if writeInFlag("WRITE-IN") != "TRUE" || writeInFlag("JILL STEIN") != "FALSE" || writeInFlag("") != "FALSE" {
		t.Fatal("unexpected writein flag")
	}
}
