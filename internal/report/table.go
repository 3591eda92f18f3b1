// Package report renders ledger data as aligned console tables.
package report

import (
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"electclean/internal"
)

// RenderTable lays out a pipe table with columns padded to their display
// width, so accented or wide names stay aligned.
func RenderTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = max(runewidth.StringWidth(h), 3)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			if w := runewidth.StringWidth(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var sb strings.Builder
	writeRow := func(cells []string) {
		sb.WriteString("|")
		for i, w := range widths {
			content := ""
			if i < len(cells) {
				content = cells[i]
			}
			sb.WriteString(" ")
			sb.WriteString(content)
			if pad := w - runewidth.StringWidth(content); pad > 0 {
				sb.WriteString(strings.Repeat(" ", pad))
			}
			sb.WriteString(" |")
		}
		sb.WriteString("\n")
	}

	writeRow(headers)
	sep := make([]string, len(widths))
	for i, w := range widths {
		sep[i] = strings.Repeat("-", w)
	}
	writeRow(sep)
	for _, row := range rows {
		writeRow(row)
	}
	return sb.String()
}

// Totals renders vote totals with a share-of-total column. Empty keys are
// shown as "(none)".
func Totals(keyHeader string, totals []internal.VoteTotal) string {
	var sum int64
	for _, t := range totals {
		sum += t.Votes
	}

	rows := make([][]string, 0, len(totals)+1)
	for _, t := range totals {
		key := t.Key
		if key == "" {
			key = "(none)"
		}
		share := "0.00%"
		if sum > 0 {
			share = strconv.FormatFloat(float64(t.Votes)*100/float64(sum), 'f', 2, 64) + "%"
		}
		rows = append(rows, []string{key, humanize.Comma(t.Votes), share, humanize.Comma(int64(t.Rows))})
	}
	rows = append(rows, []string{"TOTAL", humanize.Comma(sum), "", ""})

	return RenderTable([]string{keyHeader, "votes", "share", "rows"}, rows)
}

func Runs(runs []internal.RunRecord) string {
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			r.ID,
			r.StartedAt,
			string(r.Status),
			r.Strategy,
			humanize.Comma(int64(r.OutputRows)),
			humanize.Comma(int64(r.SkippedRows)),
			humanize.Comma(int64(r.UnmatchedFIPS)),
			r.Error,
		})
	}
	return RenderTable([]string{"run", "started", "status", "strategy", "rows", "skipped", "no_fips", "error"}, rows)
}

func SkippedRows(rows []internal.SkippedRow) string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{strconv.Itoa(r.Line), strconv.Itoa(r.Expected), strconv.Itoa(r.Got)})
	}
	return RenderTable([]string{"line", "expected", "got"}, out)
}
