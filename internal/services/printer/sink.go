package printer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// ErrPresentationBlocked means the surface that should show or print the
// report could not be created. The caller reports it; nothing retries.
var ErrPresentationBlocked = errors.New("pop-up geblokkeerd. Sta pop-ups toe voor deze site en probeer opnieuw")

// Sink delivers a rendered report to a print or archive surface.
// Deliver returns where the report ended up (a path or URL).
type Sink interface {
	Deliver(ctx context.Context, a Artifact) (string, error)
}

// Sink names used in configuration
const (
	SinkFile    = "file"
	SinkPDF     = "pdf"
	SinkBrowser = "browser"
)

// ensureDir creates the output directory of a sink. Failing to do so means the
// surface cannot be created at all.
func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrPresentationBlocked, err)
	}
	return nil
}

// FileSink writes the HTML artifact to Dir as <name>.html
type FileSink struct {
	Dir string
}

func (s FileSink) Deliver(ctx context.Context, a Artifact) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := ensureDir(s.Dir); err != nil {
		return "", err
	}
	path := filepath.Join(s.Dir, a.Name+".html")
	if err := os.WriteFile(path, a.HTML, 0o644); err != nil {
		return "", fmt.Errorf("%w: %v", ErrPresentationBlocked, err)
	}
	log.Printf("🖨️  Report written: %s", path)
	return path, nil
}

// PDFSink renders the artifact's source natively with gofpdf into Dir as <name>.pdf
type PDFSink struct {
	Dir string
}

func (s PDFSink) Deliver(ctx context.Context, a Artifact) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := GenerateReportPDF(a.Doc, a.CompanyName, a.Logo)
	if err != nil {
		return "", err
	}
	if err := ensureDir(s.Dir); err != nil {
		return "", err
	}
	path := filepath.Join(s.Dir, a.Name+".pdf")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("%w: %v", ErrPresentationBlocked, err)
	}
	log.Printf("🖨️  Report PDF written: %s", path)
	return path, nil
}
