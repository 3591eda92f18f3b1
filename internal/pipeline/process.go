package pipeline

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"electclean/internal"
	"electclean/internal/config"
	"electclean/internal/logger"
	"electclean/internal/storage"
)

const lastRunKey = "last_run_id"

type ProcessingService struct {
	db   *storage.DB
	cfg  config.Config
	log  *logger.Logger
	diag io.Writer
}

// NewProcessingService wires the pipeline. db may be nil, in which case runs
// are not recorded. Malformed-row diagnostics go to diag, stdout when nil.
func NewProcessingService(db *storage.DB, cfg config.Config, log *logger.Logger, diag io.Writer) *ProcessingService {
	if log == nil {
		log = logger.Discard()
	}
	if diag == nil {
		diag = os.Stdout
	}
	return &ProcessingService{db: db, cfg: cfg, log: log, diag: diag}
}

type RunResult struct {
	RunID             string
	Strategy          string
	InputRows         int
	OutputRows        int
	Skipped           []internal.SkippedRow
	UnmatchedRows     int
	UnmatchedCounties []string
	OutputPath        string
	Records           []internal.CleanRecord
}

func (s *ProcessingService) Run(ctx context.Context) (RunResult, error) {
	start := time.Now().UTC()
	res := RunResult{RunID: uuid.NewString(), OutputPath: s.cfg.OutputPath()}
	log := s.log.With("run", res.RunID)

	err := s.run(ctx, log, &res)
	s.recordRun(ctx, log, start, res, err)
	if err != nil {
		log.Error("run failed", "err", err)
		return res, err
	}

	log.Info("run complete",
		"strategy", res.Strategy,
		"rows", res.OutputRows,
		"skipped", len(res.Skipped),
		"unmatched_fips", res.UnmatchedRows,
		"output", res.OutputPath,
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return res, nil
}

func (s *ProcessingService) run(ctx context.Context, log *logger.Logger, res *RunResult) error {
	table, report, err := LoadTable(s.cfg.DataPath(), DefaultStrategies(s.diag))
	if err != nil {
		return err
	}
	res.Strategy = report.Strategy
	res.Skipped = report.Skipped
	res.InputRows = len(table.Rows)
	log.Debug("loaded", "path", s.cfg.DataPath(), "strategy", report.Strategy, "rows", len(table.Rows))
	if report.Strategy != "strict" {
		log.Warn("strict parse failed, used fallback", "strategy", report.Strategy, "skipped", len(report.Skipped))
	}

	idx, err := LoadFIPS(s.cfg.FIPSPath())
	if err != nil {
		return err
	}
	for _, county := range idx.Duplicates {
		log.Warn("duplicate fips entry ignored", "county", county)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	table, err = NormalizeSchema(table)
	if err != nil {
		return err
	}
	raw, err := BuildRawRecords(table)
	if err != nil {
		return err
	}
	records := NormalizeRecords(raw, s.cfg.Election)

	res.UnmatchedRows, res.UnmatchedCounties = MergeFIPS(records, idx)
	for _, county := range res.UnmatchedCounties {
		log.Warn("county has no fips code", "county", county)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := WriteCleanCSV(records, res.OutputPath); err != nil {
		return err
	}
	res.OutputRows = len(records)
	res.Records = records
	return nil
}

func (s *ProcessingService) recordRun(ctx context.Context, log *logger.Logger, start time.Time, res RunResult, runErr error) {
	if s.db == nil {
		return
	}

	run := internal.RunRecord{
		ID:            res.RunID,
		StartedAt:     start.Format(time.RFC3339Nano),
		FinishedAt:    time.Now().UTC().Format(time.RFC3339Nano),
		Strategy:      res.Strategy,
		InputRows:     res.InputRows,
		OutputRows:    res.OutputRows,
		SkippedRows:   len(res.Skipped),
		UnmatchedFIPS: res.UnmatchedRows,
		OutputPath:    res.OutputPath,
		Status:        internal.RunSucceeded,
	}
	if runErr != nil {
		run.Status = internal.RunFailed
		run.Error = runErr.Error()
	}

	ctx = context.WithoutCancel(ctx)
	if err := s.db.InsertRun(ctx, run); err != nil {
		log.Warn("record run failed", "err", err)
		return
	}
	if err := s.db.InsertSkippedRows(ctx, res.RunID, res.Skipped); err != nil {
		log.Warn("record skipped rows failed", "err", err)
	}
	if runErr != nil {
		return
	}
	if err := s.db.ReplaceCleanRecords(ctx, res.RunID, res.Records); err != nil {
		log.Warn("mirror clean records failed", "err", err)
		return
	}
	if err := s.db.SetMetadata(ctx, lastRunKey, res.RunID); err != nil {
		log.Warn("record last run failed", "err", err)
	}
}

// LastRunID returns the id of the last run whose clean table is mirrored in
// the ledger, or "" when there is none.
func LastRunID(ctx context.Context, db *storage.DB) (string, error) {
	v, err := db.GetMetadata(ctx, lastRunKey)
	if err != nil || v == nil {
		return "", err
	}
	return *v, nil
}
