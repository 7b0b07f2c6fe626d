// Package xlsxexport renders procurement reports as xlsx workbooks.
package xlsxexport

import (
	"bytes"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// agingColumns defines the aging report header row.
var agingColumns = []string{
	"Supplier",
	"Original Amount",
	"Paid Amount",
	"Remaining Amount",
	"Due Date",
	"Status",
	"Days Overdue",
}

// AgingRow is one outstanding debt line in the aging report.
type AgingRow struct {
	SupplierName    string
	OriginalAmount  decimal.Decimal
	PaidAmount      decimal.Decimal
	RemainingAmount decimal.Decimal
	DueDate         time.Time
	Status          string
	DaysOverdue     int
}

// DebtAgingWorkbook renders the rows as a single-sheet xlsx workbook and
// returns the encoded bytes.
func DebtAgingWorkbook(rows []AgingRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Debt Aging"
	f.SetSheetName(f.GetSheetName(0), sheet)

	for col, title := range agingColumns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("xlsxexport.DebtAgingWorkbook: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, fmt.Errorf("xlsxexport.DebtAgingWorkbook: %w", err)
		}
	}

	for i, row := range rows {
		values := []interface{}{
			row.SupplierName,
			row.OriginalAmount.InexactFloat64(),
			row.PaidAmount.InexactFloat64(),
			row.RemainingAmount.InexactFloat64(),
			row.DueDate.Format("2006-01-02"),
			row.Status,
			row.DaysOverdue,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, fmt.Errorf("xlsxexport.DebtAgingWorkbook: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("xlsxexport.DebtAgingWorkbook: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("xlsxexport.DebtAgingWorkbook: %w", err)
	}
	return buf.Bytes(), nil
}
