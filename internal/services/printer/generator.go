package printer

import (
	"bytes"
	"fmt"
	"log"

	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"

	"github.com/xelth-com/ploegwissel/internal/models"
)

// PDF layout (mm, A4 portrait)
const (
	pageMargin  = 12.0
	lineHeight  = 5.0
	labelWidth  = 48.0
	logoHeight  = 16.0
	qrSize      = 22.0
	headerSpace = 26.0
)

// pdfImageTypes maps logo MIME types gofpdf can embed
var pdfImageTypes = map[string]string{
	"image/png":  "PNG",
	"image/jpeg": "JPG",
}

// GenerateReportPDF renders the checklist report as an A4 PDF. The QR code in
// the header carries the archive name so a printed copy can be matched to its
// JSON export.
func GenerateReportPDF(doc models.Document, companyName, logo string) ([]byte, error) {
	rep := buildReport(doc, companyName)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetTitle(rep.Title, true)
	pdf.SetCreator("ploegwissel", true)
	pdf.AddPage()

	// Core fonts are cp1252; translate "ë", "–" and "•"
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageWidth, _ := pdf.GetPageSize()
	contentWidth := pageWidth - 2*pageMargin
	top := pdf.GetY()

	// Logo or placeholder box
	logoWidth := 32.0
	if !drawLogo(pdf, logo, pageMargin, top) {
		pdf.SetDrawColor(200, 200, 200)
		pdf.SetTextColor(120, 120, 120)
		pdf.SetFont("Arial", "", 7)
		pdf.Rect(pageMargin, top, logoWidth, logoHeight, "D")
		pdf.SetXY(pageMargin, top)
		pdf.CellFormat(logoWidth, logoHeight, "LOGO", "", 0, "C", false, 0, "")
	}

	// Company and subtitle
	textX := pageMargin + logoWidth + 4
	pdf.SetTextColor(17, 17, 17)
	pdf.SetXY(textX, top+2)
	pdf.SetFont("Arial", "B", 15)
	pdf.CellFormat(90, 7, tr(rep.Company), "", 2, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(102, 102, 102)
	pdf.CellFormat(90, 5, tr(rep.Subtitle), "", 0, "L", false, 0, "")

	// Date/time/shift next to the QR code
	qrX := pageMargin + contentWidth - qrSize
	metaX := qrX - 42
	pdf.SetTextColor(17, 17, 17)
	pdf.SetFont("Arial", "", 9)
	for i, line := range []string{"Datum: " + rep.Date, "Tijd: " + rep.Time, "Ploeg: " + rep.Shift} {
		pdf.SetXY(metaX, top+2+float64(i)*lineHeight)
		pdf.CellFormat(40, lineHeight, tr(line), "", 0, "L", false, 0, "")
	}

	qrPng, err := qrcode.Encode(rep.Name, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("encode archive qr: %w", err)
	}
	qrOptions := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
	pdf.RegisterImageOptionsReader("archive_qr", qrOptions, bytes.NewReader(qrPng))
	pdf.ImageOptions("archive_qr", qrX, top, qrSize, qrSize, false, qrOptions, 0, "")

	pdf.SetXY(pageMargin, top+headerSpace)

	for _, b := range rep.Blocks {
		drawBlock(pdf, tr, b, contentWidth)
	}

	pdf.Ln(2)
	pdf.SetFont("Arial", "", 7)
	pdf.SetTextColor(102, 102, 102)
	pdf.CellFormat(contentWidth, 4, tr(rep.Footer), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// drawLogo embeds a PNG/JPEG logo. It reports false when the logo is
// missing, invalid or in a format gofpdf cannot embed (WEBP, SVG).
func drawLogo(pdf *gofpdf.Fpdf, logo string, x, y float64) bool {
	if logo == "" {
		return false
	}
	parsed, err := models.ParseLogo(logo)
	if err != nil {
		log.Printf("⚠️  Report PDF: logo ignored: %v", err)
		return false
	}
	imageType, ok := pdfImageTypes[parsed.MIME]
	if !ok {
		return false
	}

	opts := gofpdf.ImageOptions{ImageType: imageType, ReadDpi: true}
	info := pdf.RegisterImageOptionsReader("logo", opts, bytes.NewReader(parsed.Data))
	if pdf.Err() || info == nil {
		log.Printf("⚠️  Report PDF: logo could not be decoded: %v", pdf.Error())
		pdf.ClearError()
		return false
	}

	w := 0.0 // keep aspect ratio
	if info.Height() > 0 {
		w = logoHeight * info.Width() / info.Height()
		if w > 32 {
			w = 32
		}
	}
	pdf.ImageOptions("logo", x, y, w, logoHeight, false, opts, 0, "")
	return true
}

func drawBlock(pdf *gofpdf.Fpdf, tr func(string) string, b block, width float64) {
	pdf.SetFont("Arial", "B", 10)
	pdf.SetTextColor(17, 17, 17)
	pdf.SetDrawColor(221, 221, 221)
	pdf.CellFormat(width, 7, tr(b.Title), "B", 1, "L", false, 0, "")
	pdf.Ln(1)

	for _, r := range b.Rows {
		if r.Rule {
			y := pdf.GetY() + 1
			pdf.Line(pageMargin, y, pageMargin+width, y)
			pdf.Ln(2)
			continue
		}
		pdf.SetFont("Arial", "", 9)
		pdf.SetTextColor(102, 102, 102)
		pdf.CellFormat(labelWidth, lineHeight, tr(r.Label+":"), "", 0, "L", false, 0, "")
		pdf.SetTextColor(17, 17, 17)
		pdf.MultiCell(width-labelWidth, lineHeight, tr(r.Value), "", "L", false)
	}
	pdf.Ln(3)
}
