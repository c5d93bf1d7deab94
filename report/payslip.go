// Package report renders calculation results as PDF documents.
package report

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"github.com/warp/payroll-engine/salary"
)

// Payslip is the header information printed above a breakdown.
type Payslip struct {
	EmployeeName string
	Period       string // free text, e.g. "2025-03"
	TaxYear      int
	PayPeriods   int
	Children     int
	Breakdown    salary.Breakdown
}

type row struct {
	label  string
	amount decimal.Decimal
}

// WritePayslip renders p as a single A4 page. Amounts are in euros.
func WritePayslip(w io.Writer, p Payslip) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Payslip", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	if p.EmployeeName != "" {
		pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", p.EmployeeName))
		pdf.Ln(7)
	}
	if p.Period != "" {
		pdf.Cell(0, 8, fmt.Sprintf("Period: %s", p.Period))
		pdf.Ln(7)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Tax year: %d   Payments per year: %d   Children: %d", p.TaxYear, p.PayPeriods, p.Children))
	pdf.Ln(12)

	b := p.Breakdown
	writeRows(pdf, "Earnings", []row{{"Gross salary", b.GrossSalary}})
	writeRows(pdf, "Deductions", []row{
		{"EFKA (employee)", b.EFKAEmployee},
		{"Income tax", b.IncomeTax},
		{"Solidarity contribution", b.SolidarityTax},
		{"Total deductions", b.TotalDeductions},
	})

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(120, 9, "Net pay", "T", 0, "L", false, 0, "")
	pdf.CellFormat(50, 9, euros(b.NetSalary), "T", 1, "R", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "I", 9)
	pdf.Cell(0, 6, fmt.Sprintf("Employer contribution (EFKA): %s", euros(b.EFKAEmployer)))

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to render payslip: %w", err)
	}
	return pdf.Output(w)
}

func writeRows(pdf *gofpdf.Fpdf, title string, rows []row) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, title)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	for _, r := range rows {
		pdf.CellFormat(120, 7, r.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(50, 7, euros(r.amount), "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
}

func euros(d decimal.Decimal) string {
	return d.StringFixed(2) + " EUR"
}
