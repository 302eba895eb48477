package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/repograde/repograde/internal/contract"
	"github.com/repograde/repograde/schema"
)

// WriteCatalog outputs the attribute catalog, dispatching based on the
// output format configured. Attributes are ordered by tier, then ID.
func WriteCatalog(attrs schema.AttributeIndex, cfg *contract.Config) error {
	sorted := sortedAttributes(attrs)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCatalogJSON(w, sorted)
		}, "Wrote JSON")

	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCatalogCSV(w, sorted)
		}, "Wrote CSV")

	case schema.ParquetOut:
		return errParquetUnsupported("the catalog")

	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCatalogTable(w, sorted)
		}, "Wrote table")
	}
}

// sortedAttributes flattens the index into display order.
func sortedAttributes(attrs schema.AttributeIndex) []schema.Attribute {
	sorted := make([]schema.Attribute, 0, len(attrs))
	for _, attr := range attrs {
		sorted = append(sorted, attr)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Tier != sorted[j].Tier {
			return sorted[i].Tier < sorted[j].Tier
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}

// writeCatalogTable generates and writes the human-readable catalog table.
func writeCatalogTable(w io.Writer, attrs []schema.Attribute) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"ID", "Name", "Category", "Tier", "Weight"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignLeft
	})

	var data [][]string
	for _, attr := range attrs {
		data = append(data, []string{
			attr.ID,
			attr.Name,
			attr.Category,
			strconv.Itoa(attr.Tier),
			fmt.Sprintf("%.2f", attr.EffectiveDefaultWeight()),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d attributes in catalog\n", len(attrs))
	return err
}

// writeCatalogCSV writes the catalog in CSV format.
func writeCatalogCSV(w io.Writer, attrs []schema.Attribute) error {
	header := []string{"id", "name", "category", "tier", "weight", "description"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, attr := range attrs {
			row := []string{
				attr.ID,
				attr.Name,
				attr.Category,
				strconv.Itoa(attr.Tier),
				fmt.Sprintf("%.2f", attr.EffectiveDefaultWeight()),
				attr.Description,
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeCatalogJSON writes the catalog in JSON format.
func writeCatalogJSON(w io.Writer, attrs []schema.Attribute) error {
	type jsonAttribute struct {
		ID          string  `json:"id"`
		Name        string  `json:"name"`
		Category    string  `json:"category"`
		Tier        int     `json:"tier"`
		Weight      float64 `json:"weight"`
		Description string  `json:"description,omitempty"`
	}

	output := make([]jsonAttribute, 0, len(attrs))
	for _, attr := range attrs {
		output = append(output, jsonAttribute{
			ID:          attr.ID,
			Name:        attr.Name,
			Category:    attr.Category,
			Tier:        attr.Tier,
			Weight:      attr.EffectiveDefaultWeight(),
			Description: attr.Description,
		})
	}
	return writeJSON(w, output)
}
