package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/shelfscan/labelscan/internal/classify"
)

// sheetNameLimit is the spreadsheet format's hard cap on sheet names.
const sheetNameLimit = 31

// WriteXLSX writes a workbook with a Summary sheet (category, count,
// value preview) plus one sheet per non-empty category, and returns the
// generated filename.
func WriteXLSX(sourceFile string, info *classify.ProductInfo, outputDir string) (string, error) {
	timestamp := time.Now().Format(timestampFormat)
	name := outputName(sourceFile, timestamp, "xlsx")

	f := excelize.NewFile()
	defer f.Close()

	const summary = "Summary"
	if err := f.SetSheetName("Sheet1", summary); err != nil {
		return "", fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if err := f.SetSheetRow(summary, "A1", &[]interface{}{"Category", "Count", "Values"}); err != nil {
		return "", fmt.Errorf("failed to write summary header: %w", err)
	}

	row := 2
	for _, item := range info.Items() {
		preview := item.Values
		suffix := ""
		if len(preview) > 3 {
			preview = preview[:3]
			suffix = "..."
		}
		cell := fmt.Sprintf("A%d", row)
		values := []interface{}{item.Name, len(item.Values), strings.Join(preview, ", ") + suffix}
		if err := f.SetSheetRow(summary, cell, &values); err != nil {
			return "", fmt.Errorf("failed to write summary row: %w", err)
		}
		row++
	}

	for _, item := range info.Items() {
		if len(item.Values) == 0 {
			continue
		}
		sheet := item.Name
		if len(sheet) > sheetNameLimit {
			sheet = sheet[:sheetNameLimit]
		}
		if _, err := f.NewSheet(sheet); err != nil {
			return "", fmt.Errorf("failed to create sheet %s: %w", sheet, err)
		}
		if err := f.SetCellValue(sheet, "A1", item.Name); err != nil {
			return "", fmt.Errorf("failed to write sheet header: %w", err)
		}
		for i, value := range item.Values {
			cell := fmt.Sprintf("A%d", i+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return "", fmt.Errorf("failed to write sheet value: %w", err)
			}
		}
	}

	path := filepath.Join(outputDir, name)
	if err := f.SaveAs(path); err != nil {
		// SaveAs may leave a partial file behind on failure.
		os.Remove(path)
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}
	return name, nil
}
