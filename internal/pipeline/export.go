package pipeline

import (
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"electclean/internal"
)

var CodebookColumns = []string{
	"precinct",
	"office",
	"party_detailed",
	"party_simplified",
	"votes",
	"county_name",
	"county_fips",
	"jurisdiction_name",
	"candidate",
	"year",
	"stage",
	"state",
	"special",
	"writein",
	"date",
}

// WriteCleanCSV writes the codebook projection of records to outputPath.
// The file is written beside the target and renamed into place, so a failed
// write never leaves a truncated file under the final name.
func WriteCleanCSV(records []internal.CleanRecord, outputPath string) (err error) {
	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(outputPath)+"-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	w := csv.NewWriter(tmp)
	if err := w.Write(CodebookColumns); err != nil {
		return err
	}
	for _, rec := range records {
		if err := w.Write(rec.Values()); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), outputPath)
}

func ExportRecordsToXLSX(records []internal.CleanRecord, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	header := make([]any, len(CodebookColumns))
	for i, h := range CodebookColumns {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := rec.Values()
		row := make([]any, len(values))
		for j, v := range values {
			row[j] = v
		}
		row[4] = rec.Votes
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}
