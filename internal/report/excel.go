package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Yasser-Essafi/SRM/internal/model"
)

// ExcelGenerator renders the delinquency report as a workbook: one summary
// sheet plus one sheet per zone.
type ExcelGenerator struct{}

func NewExcelGenerator() *ExcelGenerator {
	return &ExcelGenerator{}
}

func (g *ExcelGenerator) Render(report model.DelinquencyReport) ([]byte, error) {
	file := excelize.NewFile()

	summarySheet := "Summary"
	file.SetSheetName("Sheet1", summarySheet)
	if err := g.writeSummary(file, summarySheet, report); err != nil {
		return nil, err
	}

	usedNames := map[string]struct{}{summarySheet: {}}
	for _, section := range report.Zones {
		sheetName := buildSheetName(section.Zone, usedNames)
		usedNames[sheetName] = struct{}{}

		file.NewSheet(sheetName)
		if err := g.writeZone(file, sheetName, section); err != nil {
			return nil, err
		}
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *ExcelGenerator) writeSummary(file *excelize.File, sheet string, report model.DelinquencyReport) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	totalContracts := 0
	totalOutstanding := 0.0
	for _, section := range report.Zones {
		totalContracts += len(section.Contracts)
		for _, contract := range section.Contracts {
			totalOutstanding += contract.OutstandingBalance
		}
	}

	set("A1", "Report")
	set("B1", "Unpaid contracts and zone outages")
	set("A2", "Generated at")
	set("B2", report.GeneratedAt.Format("2006-01-02 15:04"))
	set("A3", "Unpaid contracts")
	set("B3", totalContracts)
	set("A4", "Outstanding total, MAD")
	set("B4", totalOutstanding)

	tableRow := 6
	set(fmt.Sprintf("A%d", tableRow), "Zone")
	set(fmt.Sprintf("B%d", tableRow), "Maintenance")
	set(fmt.Sprintf("C%d", tableRow), "Affected services")
	set(fmt.Sprintf("D%d", tableRow), "Unpaid contracts")
	set(fmt.Sprintf("E%d", tableRow), "Outstanding, MAD")

	for i, section := range report.Zones {
		row := tableRow + 1 + i
		outstanding := 0.0
		for _, contract := range section.Contracts {
			outstanding += contract.OutstandingBalance
		}
		set(fmt.Sprintf("A%d", row), section.Zone.ZoneName)
		set(fmt.Sprintf("B%d", row), string(section.Zone.MaintenanceStatus))
		set(fmt.Sprintf("C%d", row), joinServices(section.Zone.AffectedServices))
		set(fmt.Sprintf("D%d", row), len(section.Contracts))
		set(fmt.Sprintf("E%d", row), outstanding)
	}

	_ = file.SetColWidth(sheet, "A", "A", 40)
	_ = file.SetColWidth(sheet, "B", "C", 20)
	_ = file.SetColWidth(sheet, "D", "E", 18)
	return nil
}

func (g *ExcelGenerator) writeZone(file *excelize.File, sheet string, section model.ZoneSection) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Zone")
	set("B1", section.Zone.ZoneName)
	set("A2", "Maintenance")
	set("B2", string(section.Zone.MaintenanceStatus))
	if section.Zone.OutageReason != nil {
		set("A3", "Outage reason")
		set("B3", *section.Zone.OutageReason)
	}
	if section.Zone.EstimatedRestoration != nil {
		set("A4", "Estimated restoration")
		set("B4", section.Zone.EstimatedRestoration.Format("2006-01-02 15:04"))
	}
	set("A5", "Status updated")
	set("B5", section.Zone.StatusUpdated.Format("2006-01-02 15:04"))

	tableRow := 7
	headers := []string{
		"Service",
		"Contract number",
		"Customer",
		"Phone",
		"Outstanding, MAD",
		"Last payment",
		"Cut status",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, tableRow)
		set(cell, header)
	}

	for i, contract := range section.Contracts {
		row := tableRow + 1 + i
		values := []interface{}{
			string(contract.Service),
			contract.ContractNumber,
			contract.CustomerName,
			contract.Phone,
			contract.OutstandingBalance,
			formatDate(contract.LastPaymentDate),
			string(contract.CutStatus),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			set(cell, value)
		}
	}

	_ = file.SetColWidth(sheet, "A", "A", 14)
	_ = file.SetColWidth(sheet, "B", "B", 26)
	_ = file.SetColWidth(sheet, "C", "C", 30)
	_ = file.SetColWidth(sheet, "D", "G", 18)
	return nil
}

func buildSheetName(zone model.Zone, used map[string]struct{}) string {
	name := sanitizeSheetName(zone.ZoneName)
	if name == "" {
		name = fmt.Sprintf("zone-%d", zone.ZoneID)
	}
	if len([]rune(name)) > 28 {
		name = string([]rune(name)[:28])
	}
	if _, taken := used[name]; taken {
		name = fmt.Sprintf("%s-%d", name, zone.ZoneID)
	}
	return name
}

func sanitizeSheetName(input string) string {
	replacer := strings.NewReplacer(":", " ", "\\", " ", "/", " ", "?", " ", "*", " ", "[", " ", "]", " ")
	return strings.TrimSpace(replacer.Replace(input))
}

func joinServices(services []model.Service) string {
	if len(services) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(services))
	for _, svc := range services {
		parts = append(parts, string(svc))
	}
	return strings.Join(parts, ", ")
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}
