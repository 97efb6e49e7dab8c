package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/xelth-com/ploegwissel/internal/models"
)

// Envelope is the top-level shape of an exported checklist file
type Envelope struct {
	CompanyName string          `json:"companyName"`
	Data        models.Document `json:"data"`
}

// Filename returns the archive file name for doc: ploegwissel_<date>_<shift>.json.
// Exporting the same document twice yields the same name on purpose.
func Filename(doc models.Document) string {
	return fmt.Sprintf("ploegwissel_%s_%s.json", doc.Meta.Date, doc.Meta.Shift)
}

// Snapshot serializes doc and companyName as pretty-printed JSON
func Snapshot(doc models.Document, companyName string) ([]byte, string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Envelope{CompanyName: companyName, Data: doc}); err != nil {
		return nil, "", fmt.Errorf("encode export: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), Filename(doc), nil
}

// Parse reads an exported file back
func Parse(data []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Envelope{}, fmt.Errorf("parse export: %w", err)
	}
	return env, nil
}
