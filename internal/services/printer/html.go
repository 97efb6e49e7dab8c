package printer

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log"

	"github.com/xelth-com/ploegwissel/internal/models"
)

//go:embed templates/report.html
var templateFS embed.FS

var reportTemplate = template.Must(template.ParseFS(templateFS, "templates/report.html"))

// HTMLOptions tunes the printable artifact
type HTMLOptions struct {
	// AutoPrint opens the print dialog once the page has loaded
	AutoPrint bool
}

// Artifact is a rendered, self-contained report ready for a Sink
type Artifact struct {
	Name  string // archive base name, ploegwissel_<date>_<shift>
	Title string
	HTML  []byte

	// Source values, for sinks that render natively (PDF)
	Doc         models.Document
	CompanyName string
	Logo        string
}

type htmlView struct {
	report
	Logo      template.URL
	AutoPrint bool
}

// RenderHTML builds the printable report of doc. Every user value passes
// through html/template, so markup in notes or names is escaped. An invalid
// or missing logo renders as the placeholder box.
func RenderHTML(doc models.Document, companyName, logo string, opts HTMLOptions) (Artifact, error) {
	view := htmlView{
		report:    buildReport(doc, companyName),
		AutoPrint: opts.AutoPrint,
	}
	if logo != "" {
		parsed, err := models.ParseLogo(logo)
		if err != nil {
			log.Printf("⚠️  Report: logo ignored: %v", err)
		} else {
			// Re-encoded from decoded bytes, so only base64 characters reach the attribute
			view.Logo = template.URL(parsed.DataURL())
		}
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, view); err != nil {
		return Artifact{}, fmt.Errorf("render report: %w", err)
	}

	return Artifact{
		Name:        view.Name,
		Title:       view.Title,
		HTML:        buf.Bytes(),
		Doc:         doc.Clone(),
		CompanyName: companyName,
		Logo:        logo,
	}, nil
}
