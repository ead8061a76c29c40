package report

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/Yasser-Essafi/SRM/internal/model"
)

// PDFGenerator renders the delinquency report as a PDF. Customer and zone
// names are UTF-8 Arabic, so a UTF-8 font file path should be configured;
// without one the built-in Helvetica core font is used and non-Latin text
// degrades.
type PDFGenerator struct {
	fontName string
	fontPath string
}

func NewPDFGenerator(fontPath string) *PDFGenerator {
	g := &PDFGenerator{fontName: "Helvetica", fontPath: fontPath}
	if fontPath != "" {
		g.fontName = "ReportFont"
	}
	return g
}

func (g *PDFGenerator) Render(report model.DelinquencyReport) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	if g.fontPath != "" {
		pdf.AddUTF8Font(g.fontName, "", g.fontPath)
		pdf.AddUTF8Font(g.fontName, "B", g.fontPath)
	}

	pdf.SetFont(g.fontName, "B", 14)
	pdf.CellFormat(0, 10, "SRM — Unpaid contracts and zone outages", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated at %s", report.GeneratedAt.Format("2006-01-02 15:04")), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	for _, section := range report.Zones {
		g.writeZone(pdf, section)
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *PDFGenerator) writeZone(pdf *gofpdf.Fpdf, section model.ZoneSection) {
	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Zone %d — %s", section.Zone.ZoneID, section.Zone.ZoneName), "", 1, "L", false, 0, "")

	pdf.SetFont(g.fontName, "", 10)
	maintenance := fmt.Sprintf("Maintenance: %s", section.Zone.MaintenanceStatus)
	if section.Zone.MaintenanceStatus == model.MaintenanceActive {
		maintenance += fmt.Sprintf(" (%s)", joinServices(section.Zone.AffectedServices))
		if section.Zone.OutageReason != nil {
			maintenance += fmt.Sprintf(" — %s", *section.Zone.OutageReason)
		}
		if section.Zone.EstimatedRestoration != nil {
			maintenance += fmt.Sprintf(", restoration by %s", section.Zone.EstimatedRestoration.Format("2006-01-02 15:04"))
		}
	}
	pdf.MultiCell(0, 5, maintenance, "", "L", false)
	pdf.Ln(1)

	if len(section.Contracts) == 0 {
		pdf.CellFormat(0, 6, "No unpaid contracts.", "", 1, "L", false, 0, "")
		return
	}

	headers := []string{"Service", "Contract", "Customer", "Phone", "Outstanding, MAD", "Last payment", "Cut status"}
	colWidths := []float64{28, 52, 55, 32, 36, 32, 30}
	g.drawRow(pdf, headers, colWidths, true)

	for _, contract := range section.Contracts {
		row := []string{
			string(contract.Service),
			contract.ContractNumber,
			contract.CustomerName,
			contract.Phone,
			fmt.Sprintf("%.2f", contract.OutstandingBalance),
			formatDate(contract.LastPaymentDate),
			string(contract.CutStatus),
		}
		g.drawRow(pdf, row, colWidths, false)
	}
}

func (g *PDFGenerator) drawRow(pdf *gofpdf.Fpdf, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(g.fontName, style, 9)
	for i, col := range cols {
		pdf.CellFormat(widths[i], 6, col, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
}
