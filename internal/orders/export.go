package orders

import (
	"bytes"
	"fmt"
	"time"

	"restaurant-panel/internal/models"
	"restaurant-panel/internal/money"

	"github.com/xuri/excelize/v2"
)

const (
	receiptSheet = "Receipt"
	ordersSheet  = "Orders"
	dateLayout   = "02.01.2006 15:04"
)

// BuildReceipt renders a single order as a printable sheet.
func BuildReceipt(o *models.Order, loc *time.Location) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", receiptSheet); err != nil {
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	header := [][2]string{
		{"Order", fmt.Sprintf("#%d", o.ID)},
		{"Date", o.CreatedAt.In(loc).Format(dateLayout)},
		{"Status", Label(o.Status)},
		{"Customer", o.Name},
		{"Phone", o.Phone},
		{"Address", o.Address},
	}
	row := 1
	for _, kv := range header {
		cell := fmt.Sprintf("A%d", row)
		_ = f.SetCellValue(receiptSheet, cell, kv[0])
		_ = f.SetCellStyle(receiptSheet, cell, cell, bold)
		_ = f.SetCellValue(receiptSheet, fmt.Sprintf("B%d", row), kv[1])
		row++
	}

	row++
	for i, h := range []string{"Item", "Qty", "Unit price", "Line total"} {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		_ = f.SetCellValue(receiptSheet, cell, h)
		_ = f.SetCellStyle(receiptSheet, cell, cell, bold)
	}
	row++

	for _, it := range o.Items {
		unit := it.UnitPrice()
		_ = f.SetCellValue(receiptSheet, fmt.Sprintf("A%d", row), it.Name)
		_ = f.SetCellValue(receiptSheet, fmt.Sprintf("B%d", row), it.Units())
		_ = f.SetCellValue(receiptSheet, fmt.Sprintf("C%d", row), money.FormatTRY(unit))
		_ = f.SetCellValue(receiptSheet, fmt.Sprintf("D%d", row), money.FormatTRY(unit*float64(it.Units())))
		row++
	}

	row++
	totalLabel := fmt.Sprintf("C%d", row)
	_ = f.SetCellValue(receiptSheet, totalLabel, "Total")
	_ = f.SetCellStyle(receiptSheet, totalLabel, totalLabel, bold)
	_ = f.SetCellValue(receiptSheet, fmt.Sprintf("D%d", row), money.FormatTRY(o.Amount))

	_ = f.SetColWidth(receiptSheet, "A", "A", 28)
	_ = f.SetColWidth(receiptSheet, "B", "D", 14)

	return f.WriteToBuffer()
}

// BuildOrderList renders the filtered order list, one row per order.
func BuildOrderList(list []models.Order, loc *time.Location) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ordersSheet); err != nil {
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	headers := []string{"Order", "Date", "Customer", "Phone", "Items", "Status", "Amount"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(ordersSheet, cell, h)
		_ = f.SetCellStyle(ordersSheet, cell, cell, bold)
	}

	var sum float64
	for i := range list {
		o := &list[i]
		row := i + 2
		values := []any{
			o.ID,
			o.CreatedAt.In(loc).Format(dateLayout),
			o.Name,
			o.Phone,
			len(o.Items),
			Label(o.Status),
			money.Round2(o.Amount),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			_ = f.SetCellValue(ordersSheet, cell, v)
		}
		sum += o.Amount
	}

	totalRow := len(list) + 2
	_ = f.SetCellValue(ordersSheet, fmt.Sprintf("F%d", totalRow), "Total")
	_ = f.SetCellStyle(ordersSheet, fmt.Sprintf("F%d", totalRow), fmt.Sprintf("F%d", totalRow), bold)
	_ = f.SetCellValue(ordersSheet, fmt.Sprintf("G%d", totalRow), money.Round2(sum))

	_ = f.SetColWidth(ordersSheet, "B", "C", 20)

	return f.WriteToBuffer()
}
