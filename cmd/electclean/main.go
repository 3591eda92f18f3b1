package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dustin/go-humanize"

	"electclean/internal/config"
	"electclean/internal/logger"
	"electclean/internal/pipeline"
	"electclean/internal/report"
	"electclean/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)

	log := logger.NewLogger(cfg.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cmd := "run"
	args := []string{}
	if len(os.Args) > 1 {
		cmd = os.Args[1]
		args = os.Args[2:]
	}

	switch cmd {
	case "run":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		noLedger := fs.Bool("no-ledger", false, "do not record the run in the ledger")
		_ = fs.Parse(args)

		var db *storage.DB
		if !*noLedger && strings.TrimSpace(cfg.DBPath) != "" {
			db, err = storage.Open(cfg.DBPath)
			if err != nil {
				log.Warn("ledger unavailable, run will not be recorded", "path", cfg.DBPath, "err", err)
				db = nil
			} else {
				defer db.Close()
			}
		}

		svc := pipeline.NewProcessingService(db, cfg, log, os.Stdout)
		res, err := svc.Run(ctx)
		must(err)
		fmt.Printf("run done strategy=%s rows=%s skipped=%d unmatched_fips=%d output=%s\n",
			res.Strategy, humanize.Comma(int64(res.OutputRows)), len(res.Skipped), res.UnmatchedRows, res.OutputPath)
	case "runs":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		limit := fs.Int("limit", 20, "max runs to list")
		runID := fs.String("run", "", "list the rows skipped by this run")
		_ = fs.Parse(args)
		db := openLedger(cfg)
		defer db.Close()

		if id := strings.TrimSpace(*runID); id != "" {
			skipped, err := db.ListSkippedRows(ctx, id)
			must(err)
			if len(skipped) == 0 {
				fmt.Printf("no skipped rows for run %s\n", id)
				return
			}
			fmt.Print(report.SkippedRows(skipped))
			return
		}

		runs, err := db.ListRuns(ctx, *limit)
		must(err)
		if len(runs) == 0 {
			fmt.Println("no runs recorded")
			return
		}
		fmt.Print(report.Runs(runs))
	case "totals":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		by := fs.String("by", "candidate", "candidate|party")
		_ = fs.Parse(args)
		db := openLedger(cfg)
		defer db.Close()

		switch strings.ToLower(strings.TrimSpace(*by)) {
		case "candidate":
			totals, err := db.CandidateTotals(ctx)
			must(err)
			fmt.Print(report.Totals("candidate", totals))
		case "party":
			totals, err := db.PartyTotals(ctx)
			must(err)
			fmt.Print(report.Totals("party_simplified", totals))
		default:
			must(fmt.Errorf("unsupported --by value: %s", *by))
		}
	case "export:xlsx":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		out := fs.String("out", "", "output xlsx path")
		_ = fs.Parse(args)
		if strings.TrimSpace(*out) == "" {
			must(fmt.Errorf("--out is required"))
		}
		db := openLedger(cfg)
		defer db.Close()

		runID, err := pipeline.LastRunID(ctx, db)
		must(err)
		if runID == "" {
			must(fmt.Errorf("no successful run recorded in %s", cfg.DBPath))
		}
		records, err := db.GetCleanRecords(ctx)
		must(err)
		must(pipeline.ExportRecordsToXLSX(records, *out))
		fmt.Printf("exported %s rows of run %s to %s\n", humanize.Comma(int64(len(records))), runID, *out)
	case "help", "-h", "--help":
		usage()
	default:
		usage()
		os.Exit(1)
	}
}

func openLedger(cfg config.Config) *storage.DB {
	must(cfg.Require("ELECTCLEAN_DB_PATH", cfg.DBPath))
	db, err := storage.Open(cfg.DBPath)
	must(err)
	return db
}

func usage() {
	fmt.Println("usage: electclean [command]")
	fmt.Println("commands:")
	fmt.Println("  run [--no-ledger]              clean the configured CSV (default)")
	fmt.Println("  runs [--limit=20] [--run=ID]   list recorded runs, or one run's skipped rows")
	fmt.Println("  totals [--by=candidate|party]  vote totals of the last run")
	fmt.Println("  export:xlsx --out=./clean.xlsx export the last run to xlsx")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
