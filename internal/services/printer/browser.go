package printer

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// BrowserSink loads the HTML artifact in a fresh headless Chromium page and
// prints it to <Dir>/<name>.pdf. No browser, no surface: the delivery fails
// with ErrPresentationBlocked instead of downloading one.
type BrowserSink struct {
	Dir string
	Bin string // Chromium/Chrome binary; looked up on PATH when empty
}

func (s BrowserSink) Deliver(ctx context.Context, a Artifact) (string, error) {
	bin := s.Bin
	if bin == "" {
		found, ok := launcher.LookPath()
		if !ok {
			return "", fmt.Errorf("%w: no chrome binary found", ErrPresentationBlocked)
		}
		bin = found
	}

	l := launcher.New().Context(ctx).Bin(bin).Headless(true)
	controlURL, err := l.Launch()
	if err != nil {
		return "", fmt.Errorf("%w: launch chrome: %v", ErrPresentationBlocked, err)
	}
	defer l.Cleanup()
	defer l.Kill()

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return "", fmt.Errorf("%w: connect to chrome: %v", ErrPresentationBlocked, err)
	}
	defer browser.Close()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", fmt.Errorf("%w: open page: %v", ErrPresentationBlocked, err)
	}
	if err := page.SetDocumentContent(string(a.HTML)); err != nil {
		return "", fmt.Errorf("load report: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", fmt.Errorf("wait for report: %w", err)
	}

	stream, err := page.PDF(&proto.PagePrintToPDF{PrintBackground: true})
	if err != nil {
		return "", fmt.Errorf("print report: %w", err)
	}
	data, err := io.ReadAll(stream)
	if err != nil {
		return "", fmt.Errorf("read printed report: %w", err)
	}

	if err := ensureDir(s.Dir); err != nil {
		return "", err
	}
	path := filepath.Join(s.Dir, a.Name+".pdf")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("%w: %v", ErrPresentationBlocked, err)
	}
	log.Printf("🖨️  Report printed via browser: %s", path)
	return path, nil
}

// NewSink builds the sink named by kind (file, pdf, browser)
func NewSink(kind, dir, chromeBin string) (Sink, error) {
	switch kind {
	case SinkFile, "":
		return FileSink{Dir: dir}, nil
	case SinkPDF:
		return PDFSink{Dir: dir}, nil
	case SinkBrowser:
		return BrowserSink{Dir: dir, Bin: chromeBin}, nil
	default:
		return nil, fmt.Errorf("unknown report sink %q", kind)
	}
}
