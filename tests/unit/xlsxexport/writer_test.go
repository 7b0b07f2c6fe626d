package xlsxexport_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"procura/internal/xlsxexport"
)

func TestDebtAgingWorkbook(t *testing.T) {
	due := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	rows := []xlsxexport.AgingRow{
		{
			SupplierName:    "Norte Distribuciones",
			OriginalAmount:  decimal.NewFromInt(1000),
			PaidAmount:      decimal.NewFromInt(400),
			RemainingAmount: decimal.NewFromInt(600),
			DueDate:         due,
			Status:          "OVERDUE",
			DaysOverdue:     45,
		},
		{
			SupplierName:    "Sur Alimentos",
			OriginalAmount:  decimal.NewFromInt(500),
			PaidAmount:      decimal.Zero,
			RemainingAmount: decimal.NewFromInt(500),
			DueDate:         due.AddDate(0, 2, 0),
			Status:          "PENDING",
			DaysOverdue:     0,
		},
	}

	data, err := xlsxexport.DebtAgingWorkbook(rows)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	const sheet = "Debt Aging"
	header, err := f.GetCellValue(sheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Supplier", header)

	name, err := f.GetCellValue(sheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "Norte Distribuciones", name)

	remaining, err := f.GetCellValue(sheet, "D2")
	require.NoError(t, err)
	assert.Equal(t, "600", remaining)

	status, err := f.GetCellValue(sheet, "F3")
	require.NoError(t, err)
	assert.Equal(t, "PENDING", status)

	dueCell, err := f.GetCellValue(sheet, "E2")
	require.NoError(t, err)
	assert.Equal(t, "2025-05-01", dueCell)
}

func TestDebtAgingWorkbook_EmptyStillHasHeader(t *testing.T) {
	data, err := xlsxexport.DebtAgingWorkbook(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Debt Aging")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Len(t, rows[0], 7)
}
