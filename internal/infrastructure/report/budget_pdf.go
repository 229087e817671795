// Package report renders printable project documents.
package report

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/core/domain"
	"github.com/NischalJogani/PrishaNangalia-CSIA/internal/core/ports"
)

const currencyPrefix = "Rs "

var budgetCols = []float64{86, 32, 32, 32}

// BudgetPDF implements ports.BudgetRenderer with gofpdf.
type BudgetPDF struct {
	now func() time.Time
}

func NewBudgetPDF() *BudgetPDF {
	return &BudgetPDF{now: time.Now}
}

var _ ports.BudgetRenderer = (*BudgetPDF)(nil)

// RenderBudget lays out one row per budget item followed by the totals.
func (r *BudgetPDF) RenderBudget(project *domain.Project, report *ports.BudgetReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(14, 14, 14)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Budget Statement")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(80, 80, 80)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Project #%d  %s", project.ID, project.SiteType)))
	pdf.Ln(5)
	if project.ClientName != "" {
		pdf.Cell(0, 6, tr("Client: "+project.ClientName))
		pdf.Ln(5)
	}
	if project.DesignerName != "" {
		pdf.Cell(0, 6, tr("Designer: "+project.DesignerName))
		pdf.Ln(5)
	}
	pdf.Ln(5)

	header := func() {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(245, 245, 245)
		pdf.SetDrawColor(200, 200, 200)
		pdf.SetTextColor(20, 20, 20)
		pdf.CellFormat(budgetCols[0], 8, "ITEM", "1", 0, "L", true, 0, "")
		pdf.CellFormat(budgetCols[1], 8, "ESTIMATED", "1", 0, "R", true, 0, "")
		pdf.CellFormat(budgetCols[2], 8, "ACTUAL", "1", 0, "R", true, 0, "")
		pdf.CellFormat(budgetCols[3], 8, "DIFFERENCE", "1", 1, "R", true, 0, "")
		pdf.SetFont("Helvetica", "", 9)
	}
	header()

	for _, it := range report.Items {
		if pdf.GetY() > 270 {
			pdf.AddPage()
			header()
		}
		pdf.CellFormat(budgetCols[0], 8, tr(it.ItemName), "1", 0, "L", false, 0, "")
		pdf.CellFormat(budgetCols[1], 8, FormatMoney(it.EstimatedCost), "1", 0, "R", false, 0, "")
		pdf.CellFormat(budgetCols[2], 8, FormatMoney(it.ActualCost), "1", 0, "R", false, 0, "")
		pdf.CellFormat(budgetCols[3], 8, FormatMoney(it.ActualCost-it.EstimatedCost), "1", 1, "R", false, 0, "")
	}

	sum := report.Summary
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(budgetCols[0], 9, "TOTAL", "1", 0, "L", true, 0, "")
	pdf.CellFormat(budgetCols[1], 9, FormatMoney(sum.TotalEstimated), "1", 0, "R", true, 0, "")
	pdf.CellFormat(budgetCols[2], 9, FormatMoney(sum.TotalActual), "1", 0, "R", true, 0, "")
	pdf.CellFormat(budgetCols[3], 9, FormatMoney(sum.Difference), "1", 1, "R", true, 0, "")
	pdf.Ln(6)

	if sum.OverBudget {
		pdf.SetTextColor(180, 30, 30)
		pdf.Cell(0, 6, "Over budget by "+FormatMoney(sum.Difference))
	} else {
		pdf.SetTextColor(30, 120, 30)
		pdf.Cell(0, 6, "Within budget")
	}

	pdf.SetY(-18)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 10, "Generated "+r.now().Format(time.RFC3339), "", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("budget pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// FormatMoney renders an amount in minor units with thousands separators,
// e.g. 123456 as "Rs 1,234.56".
func FormatMoney(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	major, cents := minor/100, minor%100
	return sign + currencyPrefix + withCommas(strconv.FormatInt(major, 10)) + fmt.Sprintf(".%02d", cents)
}

func withCommas(digits string) string {
	out := make([]byte, 0, len(digits)+len(digits)/3)
	for i := 0; i < len(digits); i++ {
		out = append(out, digits[i])
		if rem := len(digits) - i - 1; rem > 0 && rem%3 == 0 {
			out = append(out, ',')
		}
	}
	return string(out)
}
