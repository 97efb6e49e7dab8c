package printer

import (
	"fmt"
	"strings"

	"github.com/xelth-com/ploegwissel/internal/models"
)

// Fixed report texts
const (
	fallbackTitle = "Ploegwissel Checklist"
	subtitle      = "Melkpoederproductie – Overdracht"
	footer        = "Gegenereerd via Ploegwissel Webapp • Print/PDF archivering"
)

// row is one label/value line of a report block; Rule rows draw a separator
type row struct {
	Label     string
	Value     string
	Multiline bool
	Rule      bool
}

// block is one card of the report, mirroring a checklist section
type block struct {
	Title string
	Wide  bool
	Rows  []row
}

// report is the format-neutral content shared by the HTML and PDF renderers.
// Values are plain text; each renderer escapes for its own output.
type report struct {
	Name     string
	Title    string
	Company  string
	Subtitle string
	Date     string
	Time     string
	Shift    string
	Blocks   []block
	Footer   string
}

// ArchiveName is the base name shared by the export file, the print title and the PDF
func ArchiveName(doc models.Document) string {
	return fmt.Sprintf("ploegwissel_%s_%s", doc.Meta.Date, doc.Meta.Shift)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "Ja"
	}
	return "Nee"
}

func joinChecked(f models.Flags) string {
	checked := f.Checked()
	if len(checked) == 0 {
		return "-"
	}
	return strings.Join(checked, ", ")
}

func buildReport(doc models.Document, companyName string) report {
	company := companyName
	if company == "" {
		company = fallbackTitle
	}

	kv := func(label, value string) row { return row{Label: label, Value: value} }
	text := func(label, value string) row { return row{Label: label, Value: orDash(value), Multiline: true} }

	return report{
		Name:     ArchiveName(doc),
		Title:    fmt.Sprintf("Ploegwissel_%s_%s", doc.Meta.Date, doc.Meta.Shift),
		Company:  company,
		Subtitle: subtitle,
		Date:     doc.Meta.Date,
		Time:     doc.Meta.Time,
		Shift:    doc.Meta.Shift,
		Footer:   footer,
		Blocks: []block{
			{Title: "Basis", Rows: []row{
				kv("Operator", orDash(doc.Meta.Operator)),
				kv("Ploegleider", orDash(doc.Meta.Leader)),
				kv("Product", orDash(doc.Prod.Product)),
				kv("Batch", orDash(doc.Prod.Batch)),
				kv("Processtatus", orDash(doc.Prod.Status)),
				kv("Stabiel", doc.Prod.Stable.Label()),
				text("Notities", doc.Prod.Notes),
			}},
			{Title: "Installaties", Rows: []row{
				kv("OK", joinChecked(doc.Tech.OK)),
				kv("Storingen", doc.Tech.HasIssue.Label()),
				text("Details", doc.Tech.IssueNotes),
			}},
			{Title: "Kwaliteit", Rows: []row{
				kv("Monster genomen", yesNo(doc.QA.SampleTaken)),
				kv("Verzonden QC", yesNo(doc.QA.SampleSent)),
				kv("Afwijking", doc.QA.Deviation.Label()),
				kv("Blokkade", doc.QA.Blocked.Label()),
				text("Notities", doc.QA.Notes),
			}},
			{Title: "Hygiëne & Veiligheid", Rows: []row{
				kv("CIP", yesNo(doc.Hyg.CIP)),
				kv("Handreiniging", yesNo(doc.Hyg.Manual)),
				kv("Werkplek schoon", yesNo(doc.Hyg.CleanArea)),
				kv("Openstaande reiniging", doc.Hyg.OpenTasks.Label()),
				text("Reiniging details", doc.Hyg.OpenNotes),
				{Rule: true},
				kv("Incident", doc.Safe.Incident.Label()),
				text("Incident details", doc.Safe.IncidentNotes),
				kv("Risico aanwezig", doc.Safe.Risk.Label()),
			}},
			{Title: "Planning & Acties", Wide: true, Rows: []row{
				kv("Planning", joinChecked(doc.Plan.Items)),
				text("Acties volgende ploeg", doc.Plan.Actions),
			}},
			{Title: "Overdragend", Rows: []row{
				kv("Naam", orDash(doc.Sign.FromName)),
				kv("Handtekening", orDash(doc.Sign.FromSign)),
			}},
			{Title: "Ontvangend", Rows: []row{
				kv("Naam", orDash(doc.Sign.ToName)),
				kv("Handtekening", orDash(doc.Sign.ToSign)),
				kv("Besproken", yesNo(doc.Sign.HandoverDone)),
			}},
		},
	}
}
