package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/repograde/repograde/internal/contract"
	"github.com/repograde/repograde/schema"
	"golang.org/x/term"
)

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader handles the common pattern of creating a CSV writer,
// writing a header, and writing data rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	return writeRows(csvWriter)
}

// createFormatter creates the float formatter closure used across output types.
func createFormatter(precision int) func(float64) string {
	return func(v float64) string {
		return fmt.Sprintf("%.*f", precision, v)
	}
}

// getMaxEvidenceWidth calculates the maximum width for evidence text in table
// output based on terminal width.
func getMaxEvidenceWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default for narrow terminals and CI
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the fixed columns (attribute, category, tier, status,
	// score) plus table borders and padding.
	baseWidth := 60

	available := termWidth - baseWidth
	if available < 20 {
		return 20
	}
	if available > 80 {
		return 80
	}
	return available
}

// sortedDimensionIDs returns the dimension keys in stable order for output.
func sortedDimensionIDs(dims map[string]schema.DimensionScore) []string {
	ids := make([]string, 0, len(dims))
	for id := range dims {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// sortedStatisticsIDs returns the statistics keys in stable order for output.
func sortedStatisticsIDs(dims map[string]schema.Statistics) []string {
	ids := make([]string, 0, len(dims))
	for id := range dims {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// truncateText bounds a text cell to the given width.
func truncateText(text string, width int) string {
	if width <= 3 || len(text) <= width {
		return text
	}
	return text[:width-3] + "..."
}
