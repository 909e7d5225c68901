package chart

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/maroof-insights/storefront-dashboard/internal/models"
)

const mixSheet = "Sheet1"

// WriteBusinessMixXLSX writes the aggregated mix table as a workbook with a
// header row followed by one row per category, largest group first.
func WriteBusinessMixXLSX(rows []models.CategorySummary, labels Labels, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := setRow(f, mixSheet, 1, []any{"Type", labels.StoreCount, labels.ReviewCount}); err != nil {
		return err
	}
	for i := range rows {
		row := rows[len(rows)-1-i]
		if err := setRow(f, mixSheet, i+2, []any{row.Category, row.TotalCount, row.TotalReviews}); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(mixSheet, "A", "A", 32); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}
	if err := f.SetColWidth(mixSheet, "B", "C", 16); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// setRow writes values into row (1-based) starting at column A
func setRow(f *excelize.File, sheet string, row int, values []any) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("failed to address cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("failed to set cell %s: %w", cell, err)
		}
	}
	return nil
}
