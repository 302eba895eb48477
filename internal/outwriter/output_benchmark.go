package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/repograde/repograde/internal/contract"
	"github.com/repograde/repograde/schema"
)

// WriteBenchmark outputs a population benchmark snapshot, dispatching based
// on the output format configured.
func WriteBenchmark(snapshot *schema.BenchmarkSnapshot, cfg *contract.Config) error {
	fmtFloat := createFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeBenchmarkJSON(w, snapshot)
		}, "Wrote JSON")

	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeBenchmarkCSV(w, snapshot, fmtFloat)
		}, "Wrote CSV")

	case schema.ParquetOut:
		return errParquetUnsupported("benchmarks")

	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeBenchmarkTable(w, snapshot, fmtFloat)
		}, "Wrote table")
	}
}

// statsRow flattens one Statistics value for tabular output.
func statsRow(name string, s schema.Statistics, fmtFloat func(float64) string) []string {
	return []string{
		name,
		strconv.Itoa(s.Count),
		fmtFloat(s.Mean),
		fmtFloat(s.Median),
		fmtFloat(s.StdDev),
		fmtFloat(s.Min),
		fmtFloat(s.Max),
		fmtFloat(s.P25),
		fmtFloat(s.P75),
		fmtFloat(s.P90),
		fmtFloat(s.P95),
	}
}

// writeBenchmarkTable generates and writes the human-readable statistics table.
func writeBenchmarkTable(w io.Writer, snapshot *schema.BenchmarkSnapshot, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Dimension", "Count", "Mean", "Median", "StdDev", "Min", "Max", "P25", "P75", "P90", "P95"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	data := [][]string{statsRow("overall", snapshot.Overall, fmtFloat)}
	for _, attrID := range sortedStatisticsIDs(snapshot.Dimensions) {
		data = append(data, statsRow(attrID, snapshot.Dimensions[attrID], fmtFloat))
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Benchmark over %d repositories, created %s\n",
		snapshot.Size, snapshot.CreatedAt.Format(contract.DateTimeFormat))
	return err
}

// writeBenchmarkCSV writes the statistics rows in CSV format.
func writeBenchmarkCSV(w io.Writer, snapshot *schema.BenchmarkSnapshot, fmtFloat func(float64) string) error {
	header := []string{"dimension", "count", "mean", "median", "stddev", "min", "max", "p25", "p75", "p90", "p95"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		if err := cw.Write(statsRow("overall", snapshot.Overall, fmtFloat)); err != nil {
			return err
		}
		for _, attrID := range sortedStatisticsIDs(snapshot.Dimensions) {
			if err := cw.Write(statsRow(attrID, snapshot.Dimensions[attrID], fmtFloat)); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeBenchmarkJSON writes the snapshot in JSON format.
func writeBenchmarkJSON(w io.Writer, snapshot *schema.BenchmarkSnapshot) error {
	type jsonSnapshot struct {
		Size       int                          `json:"size"`
		CreatedAt  string                       `json:"created_at"`
		Overall    schema.Statistics            `json:"overall"`
		Dimensions map[string]schema.Statistics `json:"dimensions,omitempty"`
	}
	return writeJSON(w, jsonSnapshot{
		Size:       snapshot.Size,
		CreatedAt:  snapshot.CreatedAt.Format(contract.DateTimeFormat),
		Overall:    snapshot.Overall,
		Dimensions: snapshot.Dimensions,
	})
}
