package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shelfscan/labelscan/internal/pipeline"
)

// BatchReport is the JSON envelope for a batch run.
type BatchReport struct {
	BatchTimestamp string                `json:"batch_timestamp"`
	Summary        pipeline.Summary      `json:"summary"`
	Results        []pipeline.ItemResult `json:"results"`
}

// WriteBatchReport writes the full batch report as JSON and a per-file
// CSV summary next to it, returning the JSON filename.
func WriteBatchReport(results []pipeline.ItemResult, summary pipeline.Summary, outputDir string) (string, error) {
	timestamp := time.Now().Format(timestampFormat)
	jsonName := fmt.Sprintf("batch_extraction_%s.json", timestamp)

	report := BatchReport{
		BatchTimestamp: timestamp,
		Summary:        summary,
		Results:        results,
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal batch report: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outputDir, jsonName), data, 0644); err != nil {
		return "", fmt.Errorf("failed to write batch report: %w", err)
	}

	csvName := fmt.Sprintf("batch_summary_%s.csv", timestamp)
	f, err := os.Create(filepath.Join(outputDir, csvName))
	if err != nil {
		return "", fmt.Errorf("failed to create batch summary: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"filename", "status", "product_names", "retailer_names", "prices", "dates"}); err != nil {
		return "", fmt.Errorf("failed to write batch summary header: %w", err)
	}
	for _, r := range results {
		row := []string{r.Filename, r.Status, "", "", "", ""}
		if r.Status == pipeline.StatusSuccess && r.Info != nil {
			row[2] = strings.Join(r.Info.ProductNames, ", ")
			row[3] = strings.Join(r.Info.RetailerNames, ", ")
			row[4] = strings.Join(r.Info.Prices, ", ")
			row[5] = strings.Join(r.Info.Dates, ", ")
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("failed to write batch summary row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush batch summary: %w", err)
	}
	return jsonName, nil
}
