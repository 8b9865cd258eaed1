package csvexport

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"billscan/internal/domain"
)

const (
	itemsSheet   = "Line Items"
	summarySheet = "Summary"
)

// WriteWorkbook writes an extraction result as an XLSX workbook with a line
// item sheet and a summary sheet.
func WriteWorkbook(w io.Writer, resp *domain.ExtractionResponse) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", itemsSheet); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(itemsSheet, cell, col); err != nil {
			return err
		}
	}

	rowNum := 2
	for i := range resp.Data.PagewiseLineItems {
		page := &resp.Data.PagewiseLineItems[i]
		for j := range page.BillItems {
			item := &page.BillItems[j]
			values := []interface{}{
				page.PageNo,
				string(page.PageType),
				item.ItemName,
				item.ItemAmount,
				item.ItemRate,
				item.ItemQuantity,
			}
			for col, v := range values {
				cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
				if err != nil {
					return err
				}
				if err := f.SetCellValue(itemsSheet, cell, v); err != nil {
					return err
				}
			}
			rowNum++
		}
	}

	if err := writeSummarySheet(f, resp); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, resp *domain.ExtractionResponse) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("creating summary sheet: %w", err)
	}

	rows := [][2]interface{}{
		{"Pages Extracted", len(resp.Data.PagewiseLineItems)},
		{"Pages Failed", len(resp.PageErrors)},
		{"Total Item Count", resp.Data.TotalItemCount},
		{"Total Bill Amount", resp.Data.TotalBillAmount},
		{"Input Tokens", resp.TokenUsage.InputTokens},
		{"Output Tokens", resp.TokenUsage.OutputTokens},
		{"Total Tokens", resp.TokenUsage.TotalTokens},
	}
	for i, row := range rows {
		labelCell := fmt.Sprintf("A%d", i+1)
		valueCell := fmt.Sprintf("B%d", i+1)
		if err := f.SetCellValue(summarySheet, labelCell, row[0]); err != nil {
			return err
		}
		if err := f.SetCellValue(summarySheet, valueCell, row[1]); err != nil {
			return err
		}
	}
	return nil
}
