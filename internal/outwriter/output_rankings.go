package outwriter

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/repograde/repograde/internal/contract"
	"github.com/repograde/repograde/schema"
)

// WriteRankings outputs population ranking entries, dispatching based on the
// output format configured.
func WriteRankings(entries []schema.RankingEntry, cfg *contract.Config) error {
	fmtFloat := createFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRankingsJSON(w, entries)
		}, "Wrote JSON")

	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRankingsCSV(w, entries, fmtFloat)
		}, "Wrote CSV")

	case schema.ParquetOut:
		return errParquetUnsupported("rankings")

	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRankingsTable(w, entries, cfg, fmtFloat)
		}, "Wrote table")
	}
}

// writeRankingsTable generates and writes the human-readable ranking table.
func writeRankingsTable(w io.Writer, entries []schema.RankingEntry, cfg *contract.Config, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Repo", "Overall", "Tier", "Percentile"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, e := range entries {
		tierLabel := string(e.Tier)
		if cfg.UseColors {
			tierLabel = contract.GetColorTierLabel(e.Tier)
		}
		data = append(data, []string{
			strconv.Itoa(e.Rank),
			e.Repo,
			fmtFloat(e.Overall),
			tierLabel,
			fmtFloat(e.Percentile),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeRankingsCSV writes one row per repository with dimension columns
// flattened out.
func writeRankingsCSV(w io.Writer, entries []schema.RankingEntry, fmtFloat func(float64) string) error {
	header := []string{
		"rank",
		"repo",
		"overall",
		"tier",
		"percentile",
		"dimension",
		"dimension_score",
		"dimension_rank",
		"dimension_percentile",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, e := range entries {
			base := []string{
				strconv.Itoa(e.Rank),
				e.Repo,
				fmtFloat(e.Overall),
				string(e.Tier),
				fmtFloat(e.Percentile),
			}
			if len(e.Dimensions) == 0 {
				if err := cw.Write(append(base, "", "", "", "")); err != nil {
					return err
				}
				continue
			}
			for _, attrID := range sortedDimensionIDs(e.Dimensions) {
				dim := e.Dimensions[attrID]
				row := append(append([]string{}, base...),
					attrID,
					fmtFloat(dim.Score),
					strconv.Itoa(dim.Rank),
					fmtFloat(dim.Percentile),
				)
				if err := cw.Write(row); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// writeRankingsJSON writes the ranking entries in JSON format.
func writeRankingsJSON(w io.Writer, entries []schema.RankingEntry) error {
	type jsonDimension struct {
		Score      float64 `json:"score"`
		Rank       int     `json:"rank"`
		Percentile float64 `json:"percentile"`
	}
	type jsonEntry struct {
		Rank       int                      `json:"rank"`
		Repo       string                   `json:"repo"`
		Overall    float64                  `json:"overall"`
		Tier       string                   `json:"tier"`
		Percentile float64                  `json:"percentile"`
		Dimensions map[string]jsonDimension `json:"dimensions,omitempty"`
	}

	output := make([]jsonEntry, 0, len(entries))
	for _, e := range entries {
		je := jsonEntry{
			Rank:       e.Rank,
			Repo:       e.Repo,
			Overall:    e.Overall,
			Tier:       string(e.Tier),
			Percentile: e.Percentile,
		}
		if len(e.Dimensions) > 0 {
			je.Dimensions = make(map[string]jsonDimension, len(e.Dimensions))
			for attrID, dim := range e.Dimensions {
				je.Dimensions[attrID] = jsonDimension{
					Score:      dim.Score,
					Rank:       dim.Rank,
					Percentile: dim.Percentile,
				}
			}
		}
		output = append(output, je)
	}
	return writeJSON(w, output)
}
