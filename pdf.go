package main

import (
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfPageWidth  = 210 // A4 width in mm
	pdfMargin     = 10  // margin in mm
	pdfLineHeight = 5   // line height in mm
	pdfFontSize   = 10
)

// writePDF renders the already-generated index document as a PDF. Markdown
// heading lines become bold headings; everything else is body text.
func writePDF(content, outputPath string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.AddPage()

	width := float64(pdfPageWidth - 2*pdfMargin)
	for _, line := range strings.Split(content, "\n") {
		switch {
		case strings.HasPrefix(line, "# "):
			pdf.SetFont("Helvetica", "B", pdfFontSize+6)
			pdf.MultiCell(width, pdfLineHeight+2, strings.TrimPrefix(line, "# "), "", "L", false)
		case strings.HasPrefix(line, "## "):
			pdf.SetFont("Helvetica", "B", pdfFontSize+2)
			pdf.MultiCell(width, pdfLineHeight+1, strings.TrimPrefix(line, "## "), "", "L", false)
		case line == "---":
			pdf.Line(pdfMargin, pdf.GetY(), pdfPageWidth-pdfMargin, pdf.GetY())
			pdf.Ln(pdfLineHeight / 2)
		default:
			pdf.SetFont("Helvetica", "", pdfFontSize)
			pdf.MultiCell(width, pdfLineHeight, line, "", "L", false)
		}
	}

	if err := pdf.OutputFileAndClose(outputPath); err != nil {
		return fmt.Errorf("failed to write PDF %s: %w", outputPath, err)
	}
	return nil
}
