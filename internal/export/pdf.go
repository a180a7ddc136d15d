// Package export renders the current cost breakdown to a printable PDF
// cost sheet.
package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/jfaundez/bakecalc/internal/model"
)

// Page layout constants (A4 portrait in mm).
const (
	pageWidth    = 210.0
	marginLeft   = 18.0
	marginRight  = 18.0
	marginTop    = 18.0
	contentWidth = pageWidth - marginLeft - marginRight
	rowHeight    = 7.0
	barHeight    = 5.0
	barMaxWidth  = contentWidth - 70.0
	qrSize       = 28.0
)

// ExportCostSheet writes a one-page cost sheet for the given recipe: the
// line-item table, the total and suggested price, a proportional bar chart
// of the cost distribution, and a QR code encoding the recipe document so
// the sheet can be scanned back in.
func ExportCostSheet(path string, rec model.Recipe, sum model.Summary) error {
	if len(sum.Items) == 0 {
		return fmt.Errorf("no line items to export")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	// Header
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(contentWidth, 8, rec.Name, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetX(marginLeft)
	pdf.CellFormat(contentWidth, 5, rec.Date, "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	renderItemTable(pdf, sum)
	renderTotals(pdf, sum)
	renderDistribution(pdf, sum)

	if err := renderRecipeQR(pdf, rec); err != nil {
		return err
	}

	return pdf.OutputFileAndClose(path)
}

// renderItemTable draws the line-item table.
func renderItemTable(pdf *fpdf.Fpdf, sum model.Summary) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(235, 235, 235)
	pdf.SetX(marginLeft)
	pdf.CellFormat(contentWidth*0.45, rowHeight, "Item", "B", 0, "L", true, 0, "")
	pdf.CellFormat(contentWidth*0.25, rowHeight, "Quantity", "B", 0, "L", true, 0, "")
	pdf.CellFormat(contentWidth*0.30, rowHeight, "Cost", "B", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range sum.Items {
		pdf.SetX(marginLeft)
		pdf.CellFormat(contentWidth*0.45, rowHeight, item.Label, "", 0, "L", false, 0, "")
		pdf.CellFormat(contentWidth*0.25, rowHeight, item.QuantityDisplay, "", 0, "L", false, 0, "")
		pdf.CellFormat(contentWidth*0.30, rowHeight, model.FormatCLP(item.Cost), "", 1, "R", false, 0, "")
	}
}

// renderTotals draws the total banner and suggested-price footer.
func renderTotals(pdf *fpdf.Fpdf, sum model.Summary) {
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetX(marginLeft)
	pdf.CellFormat(contentWidth*0.70, rowHeight, "Total cost", "T", 0, "L", false, 0, "")
	pdf.CellFormat(contentWidth*0.30, rowHeight, model.FormatCLP(sum.GrandTotal), "T", 1, "R", false, 0, "")

	pdf.SetX(marginLeft)
	pdf.SetTextColor(20, 110, 60)
	label := fmt.Sprintf("Suggested sale price (x%.2g)", sum.ProfitMargin)
	pdf.CellFormat(contentWidth*0.70, rowHeight, label, "", 0, "L", false, 0, "")
	pdf.CellFormat(contentWidth*0.30, rowHeight, model.FormatCLP(sum.SuggestedPrice), "", 1, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// renderDistribution draws a horizontal bar per line item, scaled to its
// share of the grand total.
func renderDistribution(pdf *fpdf.Fpdf, sum model.Summary) {
	if sum.GrandTotal == 0 {
		return
	}
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetX(marginLeft)
	pdf.CellFormat(contentWidth, rowHeight, "Cost distribution", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)

	for i, item := range sum.Items {
		pct := sum.Percentage(i)
		y := pdf.GetY()
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(45, barHeight+2, item.Label, "", 0, "L", false, 0, "")

		pdf.SetFillColor(217, 119, 6)
		pdf.Rect(marginLeft+48, y+1, barMaxWidth*pct/100, barHeight, "F")

		pdf.SetXY(marginLeft+48+barMaxWidth*pct/100+2, y)
		pdf.CellFormat(18, barHeight+2, fmt.Sprintf("%.1f%%", pct), "", 1, "L", false, 0, "")
	}
}

// renderRecipeQR embeds a QR code of the recipe interchange document in the
// bottom-right corner.
func renderRecipeQR(pdf *fpdf.Fpdf, rec model.Recipe) error {
	data, err := model.EncodeRecipe(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal recipe for QR code: %w", err)
	}
	qrPNG, err := qrcode.Encode(string(data), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_recipe_%d", rec.ID)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	_, pageH := pdf.GetPageSize()
	pdf.ImageOptions(imgName, pageWidth-marginRight-qrSize, pageH-qrSize-15, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(pageWidth-marginRight-qrSize, pageH-14)
	pdf.CellFormat(qrSize, 3.5, "Scan to re-import", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	return nil
}
