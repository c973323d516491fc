package reporting

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/lcalzada-xor/airsentry/internal/core/domain"
)

// PDFExporter renders an analysis report as a PDF threat summary.
type PDFExporter struct{}

// NewPDFExporter creates a new PDF exporter instance
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// ExportThreatReport generates a PDF from one analysis cycle.
func (e *PDFExporter) ExportThreatReport(report domain.AnalysisReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	e.addHeader(pdf, report)
	e.addRiskScore(pdf, report)
	e.addSeverityBreakdown(pdf, report)
	e.addFindingsTable(pdf, report)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *PDFExporter) addHeader(pdf *gofpdf.Fpdf, report domain.AnalysisReport) {
	pdf.SetFont("Arial", "B", 24)
	pdf.SetTextColor(0, 51, 102) // Dark blue
	pdf.CellFormat(0, 15, "Wireless Threat Report", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(120, 120, 120)
	generated := report.Summary.GeneratedAt.Format(time.RFC1123)
	pdf.CellFormat(0, 6, "Generated: "+generated, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Networks observed: %d", report.Summary.NetworkCount), "", 1, "L", false, 0, "")
	pdf.Ln(4)
}

func (e *PDFExporter) addRiskScore(pdf *gofpdf.Fpdf, report domain.AnalysisReport) {
	score := report.Summary.RiskScore

	pdf.SetFont("Arial", "B", 16)
	switch {
	case score >= 8.0:
		pdf.SetTextColor(180, 0, 0)
	case score >= 6.0:
		pdf.SetTextColor(220, 100, 0)
	case score >= 4.0:
		pdf.SetTextColor(200, 160, 0)
	default:
		pdf.SetTextColor(0, 130, 0)
	}
	pdf.CellFormat(0, 10, fmt.Sprintf("Risk Score: %.1f / 10", score), "", 1, "L", false, 0, "")
	pdf.Ln(2)
}

func (e *PDFExporter) addSeverityBreakdown(pdf *gofpdf.Fpdf, report domain.AnalysisReport) {
	pdf.SetFont("Arial", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 8, "Findings by severity", "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, severity := range []domain.Severity{
		domain.SeverityCritical, domain.SeverityHigh, domain.SeverityMedium, domain.SeverityLow,
	} {
		count := report.Summary.BySeverity[severity.String()]
		pdf.CellFormat(0, 6, fmt.Sprintf("%s: %d", severity, count), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func (e *PDFExporter) addFindingsTable(pdf *gofpdf.Fpdf, report domain.AnalysisReport) {
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Findings", "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(45, 7, "SSID", "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, 7, "BSSID", "1", 0, "L", true, 0, "")
	pdf.CellFormat(55, 7, "Type", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 7, "Severity", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 9)
	for _, a := range report.Assessments {
		for _, f := range a.Findings {
			pdf.CellFormat(45, 6, truncate(f.SSID, 24), "1", 0, "L", false, 0, "")
			pdf.CellFormat(40, 6, f.BSSID, "1", 0, "L", false, 0, "")
			pdf.CellFormat(55, 6, string(f.Type), "1", 0, "L", false, 0, "")
			pdf.CellFormat(25, 6, f.Severity.String(), "1", 1, "L", false, 0, "")
		}
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "~"
}
