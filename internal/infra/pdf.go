package infra

// pdf.go — Stock report generation using go-pdf/fpdf.
// Renders the top/low stock report as a one-page A4 PDF with two tables:
// highest-stock products and lowest-stock products.

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Omc12/StockSimple/internal/dto"

	"github.com/go-pdf/fpdf"
)

// GenerateStockReportPDF writes the report to storagePath (created if needed)
// and returns the absolute path of the generated file.
func GenerateStockReportPDF(top, low []dto.ProductResponse, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	now := time.Now()
	fileName := fmt.Sprintf("stock_report_%s.pdf", now.Format("20060102_150405"))
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "StockSimple", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, "Inventory Stock Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, now.Format("02/01/2006 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	writeTable := func(title string, products []dto.ProductResponse) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(contentW, 7, title, "", 1, "L", false, 0, "")

		col1 := contentW * 0.22 // sku
		col2 := contentW * 0.42 // name
		col3 := contentW * 0.18 // stock
		col4 := contentW * 0.18 // reorder point

		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(col1, 6, "SKU", "B", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, "Product", "B", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 6, "Stock", "B", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 6, "Reorder pt.", "B", 1, "R", false, 0, "")

		pdf.SetFont("Helvetica", "", 9)
		for _, p := range products {
			name := p.Name
			if len(name) > 40 {
				name = name[:39] + "…"
			}
			pdf.CellFormat(col1, 6, p.SKU, "", 0, "L", false, 0, "")
			pdf.CellFormat(col2, 6, name, "", 0, "L", false, 0, "")
			pdf.CellFormat(col3, 6, fmt.Sprintf("%d", p.CurrentStock), "", 0, "R", false, 0, "")
			pdf.CellFormat(col4, 6, fmt.Sprintf("%d", p.ReorderPoint), "", 1, "R", false, 0, "")
		}
		pdf.Ln(6)
	}

	writeTable("Highest stock", top)
	writeTable("Lowest stock", low)

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
