package storage

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"electclean/internal"
)

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
  id TEXT PRIMARY KEY,
  startedAt TEXT NOT NULL,
  finishedAt TEXT NOT NULL,
  strategy TEXT NOT NULL DEFAULT '',
  inputRows INTEGER NOT NULL DEFAULT 0,
  outputRows INTEGER NOT NULL DEFAULT 0,
  skippedRows INTEGER NOT NULL DEFAULT 0,
  unmatchedFips INTEGER NOT NULL DEFAULT 0,
  outputPath TEXT NOT NULL DEFAULT '',
  status TEXT NOT NULL,
  error TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_runs_startedAt ON runs(startedAt);

CREATE TABLE IF NOT EXISTS skipped_rows (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  runId TEXT NOT NULL,
  lineNo INTEGER NOT NULL,
  expected INTEGER NOT NULL,
  got INTEGER NOT NULL,
  FOREIGN KEY(runId) REFERENCES runs(id)
);

CREATE TABLE IF NOT EXISTS clean_records (
  rowNo INTEGER NOT NULL,
  runId TEXT NOT NULL,
  precinct TEXT NOT NULL,
  office TEXT NOT NULL,
  party_detailed TEXT NOT NULL,
  party_simplified TEXT NOT NULL,
  votes INTEGER NOT NULL,
  county_name TEXT NOT NULL,
  county_fips TEXT NOT NULL,
  jurisdiction_name TEXT NOT NULL,
  candidate TEXT NOT NULL,
  year TEXT NOT NULL,
  stage TEXT NOT NULL,
  state TEXT NOT NULL,
  special TEXT NOT NULL,
  writein TEXT NOT NULL,
  date TEXT NOT NULL,
  PRIMARY KEY(rowNo)
);
CREATE INDEX IF NOT EXISTS idx_clean_candidate ON clean_records(candidate);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

func (d *DB) InsertRun(ctx context.Context, run internal.RunRecord) error {
	_, err := d.conn.ExecContext(ctx, `
INSERT INTO runs (id, startedAt, finishedAt, strategy, inputRows, outputRows, skippedRows, unmatchedFips, outputPath, status, error)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, run.ID, run.StartedAt, run.FinishedAt, run.Strategy, run.InputRows, run.OutputRows, run.SkippedRows, run.UnmatchedFIPS, run.OutputPath, string(run.Status), run.Error)
	return err
}

func (d *DB) ListRuns(ctx context.Context, limit int) ([]internal.RunRecord, error) {
	rows, err := d.conn.QueryContext(ctx, `
SELECT id, startedAt, finishedAt, strategy, inputRows, outputRows, skippedRows, unmatchedFips, outputPath, status, error
FROM runs ORDER BY startedAt DESC, id DESC LIMIT ?
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.RunRecord
	for rows.Next() {
		var r internal.RunRecord
		var status string
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.FinishedAt, &r.Strategy, &r.InputRows, &r.OutputRows, &r.SkippedRows, &r.UnmatchedFIPS, &r.OutputPath, &status, &r.Error); err != nil {
			return nil, err
		}
		r.Status = internal.RunStatus(status)
		out = append(out, r)
	}
	return out, rows.Err()
}

func (d *DB) InsertSkippedRows(ctx context.Context, runID string, skipped []internal.SkippedRow) error {
	if len(skipped) == 0 {
		return nil
	}

	tx, err := d.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO skipped_rows (runId, lineNo, expected, got) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, s := range skipped {
		if _, err := stmt.ExecContext(ctx, runID, s.Line, s.Expected, s.Got); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (d *DB) ListSkippedRows(ctx context.Context, runID string) ([]internal.SkippedRow, error) {
	rows, err := d.conn.QueryContext(ctx, `SELECT lineNo, expected, got FROM skipped_rows WHERE runId = ? ORDER BY lineNo ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.SkippedRow
	for rows.Next() {
		var s internal.SkippedRow
		if err := rows.Scan(&s.Line, &s.Expected, &s.Got); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ReplaceCleanRecords swaps the mirrored clean table for the records of
// runID. Only the latest successful run's table is kept.
func (d *DB) ReplaceCleanRecords(ctx context.Context, runID string, records []internal.CleanRecord) error {
	tx, err := d.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM clean_records`); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO clean_records (
  rowNo, runId, precinct, office, party_detailed, party_simplified, votes,
  county_name, county_fips, jurisdiction_name, candidate, year,
  stage, state, special, writein, date
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, r := range records {
		if _, err := stmt.ExecContext(ctx,
			i+1, runID, r.Precinct, r.Office, r.PartyDetailed, r.PartySimplified, r.Votes,
			r.CountyName, r.CountyFIPS, r.JurisdictionName, r.Candidate, r.Year,
			r.Stage, r.State, r.Special, r.WriteIn, r.Date,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (d *DB) GetCleanRecords(ctx context.Context) ([]internal.CleanRecord, error) {
	rows, err := d.conn.QueryContext(ctx, `
SELECT precinct, office, party_detailed, party_simplified, votes,
       county_name, county_fips, jurisdiction_name, candidate, year,
       stage, state, special, writein, date
FROM clean_records ORDER BY rowNo ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.CleanRecord
	for rows.Next() {
		var r internal.CleanRecord
		if err := rows.Scan(
			&r.Precinct, &r.Office, &r.PartyDetailed, &r.PartySimplified, &r.Votes,
			&r.CountyName, &r.CountyFIPS, &r.JurisdictionName, &r.Candidate, &r.Year,
			&r.Stage, &r.State, &r.Special, &r.WriteIn, &r.Date,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (d *DB) CandidateTotals(ctx context.Context) ([]internal.VoteTotal, error) {
	return d.totals(ctx, `
SELECT candidate, SUM(votes), COUNT(*) FROM clean_records
GROUP BY candidate ORDER BY SUM(votes) DESC, candidate ASC`)
}

func (d *DB) PartyTotals(ctx context.Context) ([]internal.VoteTotal, error) {
	return d.totals(ctx, `
SELECT party_simplified, SUM(votes), COUNT(*) FROM clean_records
GROUP BY party_simplified ORDER BY SUM(votes) DESC, party_simplified ASC`)
}

func (d *DB) totals(ctx context.Context, query string) ([]internal.VoteTotal, error) {
	rows, err := d.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.VoteTotal
	for rows.Next() {
		var t internal.VoteTotal
		if err := rows.Scan(&t.Key, &t.Votes, &t.Rows); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (d *DB) SetMetadata(ctx context.Context, key, value string) error {
	_, err := d.conn.ExecContext(ctx, `
INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP
`, key, value)
	return err
}

func (d *DB) GetMetadata(ctx context.Context, key string) (*string, error) {
	var value string
	err := d.conn.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}
