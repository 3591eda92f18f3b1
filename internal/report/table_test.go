package report

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"electclean/internal"
)

func TestRenderTableAlignsByDisplayWidth(t *testing.T) {
	out := RenderTable([]string{"candidate", "votes"}, [][]string{
		{"JOSÉ", "1"},
		{"日本", "22"},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("lines=%d\n%s", len(lines), out)
	}
	want := runewidth.StringWidth(lines[0])
	for i, l := range lines {
		if w := runewidth.StringWidth(l); w != want {
			t.Fatalf("line %d width=%d want %d\n%s", i, w, want, out)
		}
	}
	if lines[1] != "| --------- | ----- |" {
		t.Fatalf("separator=%q", lines[1])
	}
}

func TestTotals(t *testing.T) {
	out := Totals("candidate", []internal.VoteTotal{
		{Key: "DONALD J TRUMP", Votes: 1234567, Rows: 3},
		{Key: "", Votes: 0, Rows: 1},
	})
	if !strings.Contains(out, "1,234,567") {
		t.Fatalf("missing commas:\n%s", out)
	}
	if !strings.Contains(out, "100.00%") || !strings.Contains(out, "(none)") {
		t.Fatalf("unexpected:\n%s", out)
	}
	if !strings.Contains(out, "| TOTAL ") {
		t.Fatalf("missing total row:\n%s", out)
	}
}

func TestRuns(t *testing.T) {
	out := Runs([]internal.RunRecord{{ID: "abc", Status: internal.RunSucceeded, Strategy: "repair", OutputRows: 12000, SkippedRows: 2}})
	if !strings.Contains(out, "12,000") || !strings.Contains(out, "repair") {
		t.Fatalf("unexpected:\n%s", out)
	}
}

func TestSkippedRows(t *testing.T) {
	out := SkippedRows([]internal.SkippedRow{{Line: 7, Expected: 13, Got: 11}})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 || lines[2] != "| 7    | 13       | 11  |" {
		t.Fatalf("unexpected:\n%s", out)
	}
}
