// Package export serializes extraction results to the supported output
// formats: JSON, CSV, a plain-text report and an xlsx workbook, plus a
// combined report for batch runs.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shelfscan/labelscan/internal/classify"
)

// timestampFormat matches the compact form used in output filenames and
// record fields.
const timestampFormat = "20060102_150405"

// Record is the JSON export envelope for a single image.
type Record struct {
	SourceFile          string                `json:"source_file"`
	ExtractionTimestamp string                `json:"extraction_timestamp"`
	ExtractedData       *classify.ProductInfo `json:"extracted_data"`
}

func outputName(sourceFile, timestamp, ext string) string {
	base := strings.TrimSuffix(filepath.Base(sourceFile), filepath.Ext(sourceFile))
	return fmt.Sprintf("%s_extracted_%s.%s", base, timestamp, ext)
}

// WriteJSON writes the extraction record for one image and returns the
// generated filename.
func WriteJSON(sourceFile string, info *classify.ProductInfo, outputDir string) (string, error) {
	timestamp := time.Now().Format(timestampFormat)
	name := outputName(sourceFile, timestamp, "json")

	record := Record{
		SourceFile:          filepath.Base(sourceFile),
		ExtractionTimestamp: timestamp,
		ExtractedData:       info,
	}
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal record: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outputDir, name), data, 0644); err != nil {
		return "", fmt.Errorf("failed to write JSON export: %w", err)
	}
	return name, nil
}

// WriteCSV writes one row per (category, value) pair with source file
// and timestamp columns, and returns the generated filename.
func WriteCSV(sourceFile string, info *classify.ProductInfo, outputDir string) (string, error) {
	timestamp := time.Now().Format(timestampFormat)
	name := outputName(sourceFile, timestamp, "csv")

	f, err := os.Create(filepath.Join(outputDir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create CSV export: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"source_file", "category", "value", "timestamp"}); err != nil {
		return "", fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, item := range info.Items() {
		for _, value := range item.Values {
			if err := w.Write([]string{filepath.Base(sourceFile), item.Name, value, timestamp}); err != nil {
				return "", fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush CSV export: %w", err)
	}
	return name, nil
}

// WriteText writes a human-readable category report and returns the
// generated filename. Empty categories are reported as "Not Detected".
func WriteText(sourceFile string, info *classify.ProductInfo, outputDir string) (string, error) {
	timestamp := time.Now().Format(timestampFormat)
	name := outputName(sourceFile, timestamp, "txt")

	f, err := os.Create(filepath.Join(outputDir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create text export: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(FormatReport(filepath.Base(sourceFile), timestamp, info)); err != nil {
		return "", fmt.Errorf("failed to write text export: %w", err)
	}
	return name, nil
}

// FormatReport renders the plain-text report body: a header followed by
// one block per category with "- value" lines or "- Not Detected".
func FormatReport(sourceFile, timestamp string, info *classify.ProductInfo) string {
	var sb strings.Builder
	sb.WriteString("Product Information Extraction Report\n")
	fmt.Fprintf(&sb, "Source File: %s\n", sourceFile)
	fmt.Fprintf(&sb, "Extraction Date: %s\n", timestamp)
	sb.WriteString(strings.Repeat("=", 50) + "\n\n")

	for _, item := range info.Items() {
		fmt.Fprintf(&sb, "%s:\n", strings.ToUpper(item.Name))
		if len(item.Values) == 0 {
			sb.WriteString("  - Not Detected\n")
		} else {
			for _, value := range item.Values {
				fmt.Fprintf(&sb, "  - %s\n", value)
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
