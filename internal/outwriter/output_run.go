package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/repograde/repograde/internal/contract"
	"github.com/repograde/repograde/internal/parquet"
	"github.com/repograde/repograde/schema"
)

// WriteRun outputs a single assessment run, dispatching based on the output
// format configured.
func WriteRun(run *schema.RunResult, cfg *contract.Config) error {
	fmtFloat := createFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRunJSON(w, run)
		}, "Wrote JSON")

	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRunCSV(w, run, fmtFloat)
		}, "Wrote CSV")

	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return fmt.Errorf("parquet output requires --output-file")
		}
		rows := make([]parquet.RecordRow, 0, len(run.Records))
		for _, rec := range run.Records {
			rows = append(rows, parquet.RecordRowFromRecord(run.RunID, rec))
		}
		return parquet.WriteRecordsParquet(rows, cfg.OutputFile)

	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRunTable(w, run, cfg, fmtFloat)
		}, "Wrote table")
	}
}

// writeRunTable generates and writes the human-readable record table with a
// run summary footer.
func writeRunTable(w io.Writer, run *schema.RunResult, cfg *contract.Config, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Attribute", "Category", "Tier", "Status", "Score", "Evidence"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignLeft
	})

	evidenceWidth := getMaxEvidenceWidth(cfg)
	var data [][]string
	for _, rec := range run.Records {
		score := "-"
		if rec.HasScore() {
			score = fmtFloat(rec.Score)
		}
		data = append(data, []string{
			rec.Name,
			rec.Category,
			strconv.Itoa(rec.Tier),
			contract.StatusGlyph(rec.Status, cfg.UseEmojis),
			score,
			truncateText(rec.Evidence, evidenceWidth),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	tierLabel := string(run.Tier)
	if cfg.UseColors {
		tierLabel = contract.GetColorTierLabel(run.Tier)
	}
	if _, err := fmt.Fprintf(w, "%s: %s (%s)\n", run.Repo.Name, fmtFloat(run.Overall), tierLabel); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Assessed %d of %d checks (%d skipped) in %v with %d workers\n",
		run.Assessed, run.Total, run.Skipped, run.Duration.Round(time.Millisecond), cfg.Workers); err != nil {
		return err
	}
	return nil
}

// writeRunCSV writes one row per record, with run identity on every row so
// concatenated exports stay self-describing.
func writeRunCSV(w io.Writer, run *schema.RunResult, fmtFloat func(float64) string) error {
	header := []string{
		"run_id",
		"repo",
		"attribute_id",
		"name",
		"category",
		"tier",
		"weight",
		"status",
		"score",
		"evidence",
		"overall",
		"cert_tier",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, rec := range run.Records {
			score := ""
			if rec.HasScore() {
				score = fmtFloat(rec.Score)
			}
			row := []string{
				run.RunID,
				run.Repo.Name,
				rec.AttributeID,
				rec.Name,
				rec.Category,
				strconv.Itoa(rec.Tier),
				fmt.Sprintf("%.2f", rec.Weight),
				string(rec.Status),
				score,
				rec.Evidence,
				fmtFloat(run.Overall),
				string(run.Tier),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeRunJSON writes the full run in JSON format.
func writeRunJSON(w io.Writer, run *schema.RunResult) error {
	type jsonRecord struct {
		AttributeID string   `json:"attribute_id"`
		Name        string   `json:"name"`
		Category    string   `json:"category"`
		Tier        int      `json:"tier"`
		Weight      float64  `json:"weight"`
		Status      string   `json:"status"`
		Score       *float64 `json:"score"`
		Evidence    string   `json:"evidence,omitempty"`
	}
	type jsonRun struct {
		RunID      string       `json:"run_id"`
		Repo       string       `json:"repo"`
		Path       string       `json:"path"`
		StartedAt  string       `json:"started_at"`
		DurationMs int64        `json:"duration_ms"`
		Overall    float64      `json:"overall"`
		Tier       string       `json:"tier"`
		Assessed   int          `json:"assessed"`
		Skipped    int          `json:"skipped"`
		Total      int          `json:"total"`
		Records    []jsonRecord `json:"records"`
	}

	records := make([]jsonRecord, 0, len(run.Records))
	for _, rec := range run.Records {
		jr := jsonRecord{
			AttributeID: rec.AttributeID,
			Name:        rec.Name,
			Category:    rec.Category,
			Tier:        rec.Tier,
			Weight:      rec.Weight,
			Status:      string(rec.Status),
			Evidence:    rec.Evidence,
		}
		if rec.HasScore() {
			score := rec.Score
			jr.Score = &score
		}
		records = append(records, jr)
	}

	return writeJSON(w, jsonRun{
		RunID:      run.RunID,
		Repo:       run.Repo.Name,
		Path:       run.Repo.Path,
		StartedAt:  run.StartedAt.Format(contract.DateTimeFormat),
		DurationMs: run.Duration.Milliseconds(),
		Overall:    run.Overall,
		Tier:       string(run.Tier),
		Assessed:   run.Assessed,
		Skipped:    run.Skipped,
		Total:      run.Total,
		Records:    records,
	})
}
