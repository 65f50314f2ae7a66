package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/lease-abstractor/constants"
	"github.com/joseph-ayodele/lease-abstractor/internal/leasefields"
	"github.com/joseph-ayodele/lease-abstractor/internal/session"
)

// referenceStyles holds the style ids shared by every sheet in the workbook.
type referenceStyles struct {
	title      int
	subtitle   int
	section    int
	fieldLabel int
	value      int
	header     int
	highConf   int
	mediumConf int
	lowConf    int
}

// ReferenceWorkbook returns the human-readable reference workbook: a Summary
// sheet first, then one titled sheet per lease with sectioned field tables
// and a confidence banner.
func (s *Service) ReferenceWorkbook(batch []session.Entry) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", "Summary"); err != nil {
		return nil, err
	}

	styles, err := newReferenceStyles(f)
	if err != nil {
		return nil, err
	}

	for i, entry := range batch {
		sheet := fmt.Sprintf("Lease_%d", i+1)
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
		if err := writeLeaseSheet(f, sheet, entry, styles); err != nil {
			return nil, fmt.Errorf("sheet %s: %w", sheet, err)
		}
	}

	if err := writeSummarySheet(f, batch, styles); err != nil {
		return nil, fmt.Errorf("summary sheet: %w", err)
	}
	if idx, err := f.GetSheetIndex("Summary"); err == nil {
		f.SetActiveSheet(idx)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.reference.ok",
		"leases", len(batch),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func newReferenceStyles(f *excelize.File) (referenceStyles, error) {
	var st referenceStyles
	var err error

	mk := func(style *excelize.Style) int {
		if err != nil {
			return 0
		}
		var id int
		id, err = f.NewStyle(style)
		return id
	}

	center := &excelize.Alignment{Horizontal: "center", Vertical: "center"}
	banner := func(color string) *excelize.Style {
		return &excelize.Style{
			Fill:      excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
			Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
			Alignment: center,
		}
	}

	st.title = mk(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"203864"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF", Size: 14},
		Alignment: center,
	})
	st.subtitle = mk(&excelize.Style{
		Font:      &excelize.Font{Italic: true, Size: 9},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	st.section = mk(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF", Size: 12},
		Alignment: center,
	})
	st.fieldLabel = mk(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"D9E1F2"}, Pattern: 1},
		Font: &excelize.Font{Bold: true, Size: 10},
	})
	st.value = mk(&excelize.Style{
		Font:      &excelize.Font{Size: 10},
		Alignment: &excelize.Alignment{Vertical: "center", WrapText: true},
	})
	st.header = mk(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF", Size: 11},
		Alignment: center,
	})
	st.highConf = mk(banner("28A745"))
	st.mediumConf = mk(banner("FFC107"))
	st.lowConf = mk(banner("DC3545"))

	return st, err
}

// field is one label/value row in a section.
type field struct {
	label string
	value any
}

func writeLeaseSheet(f *excelize.File, sheet string, entry session.Entry, st referenceStyles) error {
	d := entry.Data
	row := 1

	mergeRow := func(value any, style int) {
		a := fmt.Sprintf("A%d", row)
		b := fmt.Sprintf("B%d", row)
		_ = f.MergeCell(sheet, a, b)
		_ = f.SetCellValue(sheet, a, value)
		_ = f.SetCellStyle(sheet, a, b, style)
		row++
	}

	mergeRow("LEASE ABSTRACTION - "+truncate(entry.Filename, 60), st.title)
	mergeRow("Extracted: "+entry.ExtractedAt.Format("2006-01-02 15:04:05"), st.subtitle)
	row++

	section := func(title string, fields []field) {
		mergeRow(title, st.section)
		for _, fd := range fields {
			label := fmt.Sprintf("A%d", row)
			value := fmt.Sprintf("B%d", row)
			_ = f.SetCellValue(sheet, label, fd.label)
			_ = f.SetCellStyle(sheet, label, label, st.fieldLabel)
			_ = f.SetCellValue(sheet, value, fd.value)
			_ = f.SetCellStyle(sheet, value, value, st.value)
			row++
		}
		row++
	}

	section(leasefields.GroupTenant, []field{
		{"Tenant Name", d.TenantName},
		{"Tenant Email", d.TenantEmail},
		{"Tenant Phone", d.TenantPhone},
	})
	section(leasefields.GroupProperty, []field{
		{"Property Address", d.PropertyAddress},
		{"Unit Number", d.UnitNumber},
		{"Property Type", d.PropertyType},
		{"Square Footage", d.SquareFootage},
	})
	section(leasefields.GroupLeaseTerms, []field{
		{"Lease Number", d.LeaseNumber},
		{"Lease Start Date", d.LeaseStartDate},
		{"Lease End Date", d.LeaseEndDate},
		{"Lease Term (Months)", d.LeaseTermMonths},
		{"Lease Type", d.LeaseType},
	})
	section(leasefields.GroupFinancial, []field{
		{"Monthly Rent", currency(d.MonthlyRent)},
		{"Security Deposit", currency(d.SecurityDeposit)},
		{"Pet Deposit", currency(d.PetDeposit)},
		{"Payment Due Date", fmt.Sprintf("Day %d of month", int(d.PaymentDueDate))},
		{"Late Fee Type", orNotSpecified(d.LateFeeType)},
		{"Late Fee", LateFeeDisplay(d)},
		{"Late Fee Grace Period", fmt.Sprintf("%d days", int(d.LateFeeGracePeriod))},
	})
	section(leasefields.GroupAdditional, []field{
		{"Parking Spaces", int(d.ParkingSpaces)},
		{"Pet Allowed", yesNo(d.PetAllowed)},
		{"Pet Type", d.PetType},
		{"Utilities Included", d.UtilitiesIncluded},
		{"Renewal Options", d.RenewalOptions},
		{"Early Termination", d.EarlyTerminationClause},
		{"Maintenance Responsibilities", d.MaintenanceResponsibilities},
	})

	level := constants.ClassifyConfidence(d.ConfidenceScore)
	bannerStyle := st.lowConf
	switch level {
	case constants.ConfidenceHigh:
		bannerStyle = st.highConf
	case constants.ConfidenceMedium:
		bannerStyle = st.mediumConf
	}
	mergeRow(fmt.Sprintf("Extraction Confidence: %s (%.0f%%)", level, d.ConfidenceScore*100), bannerStyle)

	_ = f.SetColWidth(sheet, "A", "A", 30)
	_ = f.SetColWidth(sheet, "B", "B", 50)
	return nil
}

var summaryHeaders = []string{
	"#", "Tenant Name", "Property Address", "Unit",
	"Start Date", "End Date", "Monthly Rent", "Confidence",
}

func writeSummarySheet(f *excelize.File, batch []session.Entry, st referenceStyles) error {
	const sheet = "Summary"

	_ = f.MergeCell(sheet, "A1", "H1")
	_ = f.SetCellValue(sheet, "A1", "LEASE ABSTRACTION SUMMARY")
	_ = f.SetCellStyle(sheet, "A1", "H1", st.title)

	for i, h := range summaryHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 3)
		_ = f.SetCellValue(sheet, cell, h)
		_ = f.SetCellStyle(sheet, cell, cell, st.header)
	}

	for i, entry := range batch {
		d := entry.Data
		row := i + 4
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, i+1)
		write(2, d.TenantName)
		write(3, d.PropertyAddress)
		write(4, d.UnitNumber)
		write(5, d.LeaseStartDate)
		write(6, d.LeaseEndDate)
		write(7, currency(d.MonthlyRent))
		write(8, string(constants.ClassifyConfidence(d.ConfidenceScore)))
	}

	_ = f.SetColWidth(sheet, "A", "A", 5)
	_ = f.SetColWidth(sheet, "B", "B", 25)
	_ = f.SetColWidth(sheet, "C", "C", 35)
	_ = f.SetColWidth(sheet, "D", "D", 10)
	_ = f.SetColWidth(sheet, "E", "G", 15)
	_ = f.SetColWidth(sheet, "H", "H", 12)

	_ = f.SetPanes(sheet, &excelize.Panes{
		Freeze: true, YSplit: 3, TopLeftCell: "A4", ActivePane: "bottomLeft",
	})
	return nil
}

func orNotSpecified(s string) string {
	if s == "" {
		return "Not specified"
	}
	return s
}
