package storage

import (
	"context"
	"path/filepath"
	"testing"

	"electclean/internal"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "nested", "ledger.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func record(candidate, party string, votes int) internal.CleanRecord {
	return internal.CleanRecord{
		Precinct:        "PRECINCT 1",
		Office:          "US PRESIDENT",
		PartyDetailed:   party,
		PartySimplified: party,
		Votes:           votes,
		CountyName:      "MARION",
		CountyFIPS:      "18097",
		Candidate:       candidate,
		Year:            "2024",
		Stage:           "GEN",
		State:           "INDIANA",
		Special:         "FALSE",
		WriteIn:         "FALSE",
		Date:            "2024-11-05",
	}
}

func TestRunsAndSkippedRows(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	runs := []internal.RunRecord{
		{ID: "a", StartedAt: "2024-11-06T10:00:00Z", FinishedAt: "2024-11-06T10:00:01Z", Strategy: "strict", InputRows: 10, OutputRows: 10, Status: internal.RunSucceeded},
		{ID: "b", StartedAt: "2024-11-06T11:00:00Z", FinishedAt: "2024-11-06T11:00:01Z", Strategy: "repair", InputRows: 9, OutputRows: 9, SkippedRows: 1, Status: internal.RunSucceeded},
		{ID: "c", StartedAt: "2024-11-06T12:00:00Z", FinishedAt: "2024-11-06T12:00:00Z", Status: internal.RunFailed, Error: "open: no such file"},
	}
	for _, r := range runs {
		if err := db.InsertRun(ctx, r); err != nil {
			t.Fatal(err)
		}
	}

	got, err := db.ListRuns(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].ID != "c" || got[1].ID != "b" {
		t.Fatalf("runs=%+v", got)
	}
	if got[0].Status != internal.RunFailed || got[0].Error == "" {
		t.Fatalf("failed run=%+v", got[0])
	}

	skipped := []internal.SkippedRow{{Line: 7, Expected: 13, Got: 11}, {Line: 3, Expected: 13, Got: 15}}
	if err := db.InsertSkippedRows(ctx, "b", skipped); err != nil {
		t.Fatal(err)
	}
	back, err := db.ListSkippedRows(ctx, "b")
	if err != nil {
		t.Fatal(err)
	}
	if len(back) != 2 || back[0].Line != 3 || back[1].Got != 11 {
		t.Fatalf("skipped=%+v", back)
	}
}

func TestReplaceCleanRecordsAndTotals(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	first := []internal.CleanRecord{record("OLD", "OTHER", 1)}
	if err := db.ReplaceCleanRecords(ctx, "run-1", first); err != nil {
		t.Fatal(err)
	}

	second := []internal.CleanRecord{
		record("DONALD J TRUMP", "REPUBLICAN", 120),
		record("KAMALA D HARRIS", "DEMOCRAT", 95),
		record("DONALD J TRUMP", "REPUBLICAN", 30),
		record("WRITE-IN", "OTHER", 0),
	}
	if err := db.ReplaceCleanRecords(ctx, "run-2", second); err != nil {
		t.Fatal(err)
	}

	recs, err := db.GetCleanRecords(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 4 || recs[0] != second[0] || recs[3] != second[3] {
		t.Fatalf("records=%+v", recs)
	}

	byCandidate, err := db.CandidateTotals(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(byCandidate) != 3 {
		t.Fatalf("len=%d", len(byCandidate))
	}
	if byCandidate[0].Key != "DONALD J TRUMP" || byCandidate[0].Votes != 150 || byCandidate[0].Rows != 2 {
		t.Fatalf("top=%+v", byCandidate[0])
	}

	byParty, err := db.PartyTotals(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if byParty[len(byParty)-1].Key != "OTHER" || byParty[len(byParty)-1].Votes != 0 {
		t.Fatalf("parties=%+v", byParty)
	}
}

func TestMetadata(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	v, err := db.GetMetadata(ctx, "last_run_id")
	if err != nil || v != nil {
		t.Fatalf("v=%v err=%v", v, err)
	}
	if err := db.SetMetadata(ctx, "last_run_id", "a"); err != nil {
		t.Fatal(err)
	}
	if err := db.SetMetadata(ctx, "last_run_id", "b"); err != nil {
		t.Fatal(err)
	}
	v, err = db.GetMetadata(ctx, "last_run_id")
	if err != nil || v == nil || *v != "b" {
		t.Fatalf("v=%v err=%v", v, err)
	}
}
