package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/lease-abstractor/internal/session"
)

const importSheet = "Yardi Import"

// importHeaders is the fixed column order the property management import
// expects. Keep in sync with importRow.
var importHeaders = []string{
	"TenantName", "TenantEmail", "TenantPhone",
	"PropertyAddress", "UnitNumber", "PropertyType", "SquareFootage",
	"LeaseNumber", "LeaseStartDate", "LeaseEndDate", "LeaseTermMonths", "LeaseType",
	"MonthlyRent", "SecurityDeposit", "PetDeposit", "PaymentDueDate",
	"LateFeeType", "LateFeePercentage", "LateFeeAmount", "LateFeeGracePeriod",
	"ParkingSpaces", "PetAllowed", "PetType", "UtilitiesIncluded",
	"SourceFile",
}

func importRow(e session.Entry) []any {
	d := e.Data
	return []any{
		d.TenantName, d.TenantEmail, d.TenantPhone,
		d.PropertyAddress, d.UnitNumber, d.PropertyType, d.SquareFootage,
		d.LeaseNumber, d.LeaseStartDate, d.LeaseEndDate, d.LeaseTermMonths, d.LeaseType,
		d.MonthlyRent, d.SecurityDeposit, d.PetDeposit, d.PaymentDueDate,
		d.LateFeeType, d.LateFeePercentage, d.LateFeeFlatAmount, d.LateFeeGracePeriod,
		d.ParkingSpaces, yesNo(d.PetAllowed), d.PetType, d.UtilitiesIncluded,
		e.Filename,
	}
}

// ImportWorkbook returns the flat import workbook as bytes: a header row
// plus exactly one row per batch entry.
func (s *Service) ImportWorkbook(batch []session.Entry) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", importSheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"1F4E78"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF", Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	for i, h := range importHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(importSheet, cell, h)
		_ = f.SetCellStyle(importSheet, cell, cell, headerStyle)
	}

	for rowIdx, entry := range batch {
		row := rowIdx + 2
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(importSheet, cell, v)
		}
		for col, v := range importRow(entry) {
			write(col+1, v)
		}
	}

	// Widen the long text columns
	_ = f.SetColWidth(importSheet, "A", "A", 25) // tenant
	_ = f.SetColWidth(importSheet, "B", "B", 30) // email
	_ = f.SetColWidth(importSheet, "C", "C", 15) // phone
	_ = f.SetColWidth(importSheet, "D", "D", 40) // address
	_ = f.SetColWidth(importSheet, "E", "L", 15)
	_ = f.SetColWidth(importSheet, "M", "T", 15)
	_ = f.SetColWidth(importSheet, "U", "U", 15)
	_ = f.SetColWidth(importSheet, "V", "V", 12)
	_ = f.SetColWidth(importSheet, "W", "X", 30)
	_ = f.SetColWidth(importSheet, "Y", "Y", 30) // source file

	// Freeze the header row
	_ = f.SetPanes(importSheet, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	})

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.import.ok",
		"rows", len(batch),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
