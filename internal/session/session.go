// Package session owns the checklist being filled in on this device. Every
// change goes through the mutation package, is scheduled for saving and is
// announced to the listener.
package session

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/xelth-com/ploegwissel/internal/metrics"
	"github.com/xelth-com/ploegwissel/internal/models"
	"github.com/xelth-com/ploegwissel/internal/mutation"
	"github.com/xelth-com/ploegwissel/internal/scoring"
	"github.com/xelth-com/ploegwissel/internal/services/export"
	"github.com/xelth-com/ploegwissel/internal/services/printer"
	"github.com/xelth-com/ploegwissel/internal/storage"
)

// State is what the UI shows: the checklist, its company header and the
// live completion score
type State struct {
	Document    models.Document    `json:"data"`
	CompanyName string             `json:"companyName"`
	Logo        string             `json:"logo,omitempty"`
	Score       scoring.Completion `json:"score"`
	LastSaved   *time.Time         `json:"lastSaved,omitempty"`
}

type Options struct {
	// DefaultCompany replaces models.DefaultCompanyName when set
	DefaultCompany string
	Now            func() time.Time
	// OnChange is called with the new state after every applied change
	OnChange func(State)
}

type Session struct {
	gw   *storage.Gateway
	opts Options

	mu      sync.Mutex
	doc     models.Document
	company string
	logo    string
}

// Open loads the stored slots and merges them over a fresh checklist
func Open(ctx context.Context, gw *storage.Gateway, opts Options) *Session {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.DefaultCompany == "" {
		opts.DefaultCompany = models.DefaultCompanyName
	}

	loaded := gw.Load(ctx)
	s := &Session{
		gw:      gw,
		opts:    opts,
		doc:     models.MergeLoaded(models.NewDefault(opts.Now()), loaded.Document),
		company: opts.DefaultCompany,
	}
	if loaded.CompanyName != nil {
		s.company = *loaded.CompanyName
	}
	if loaded.Logo != nil {
		s.logo = *loaded.Logo
	}

	log.Printf("✅ Checklist %s %s opened (%d%% complete)",
		s.doc.Meta.Date, s.doc.Meta.Shift, scoring.Score(s.doc).Pct)
	return s
}

// Snapshot returns the current state. The document is a copy.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *Session) stateLocked() State {
	st := State{
		Document:    s.doc.Clone(),
		CompanyName: s.company,
		Logo:        s.logo,
		Score:       scoring.Score(s.doc),
	}
	if at := s.gw.LastSaved(); !at.IsZero() {
		st.LastSaved = &at
	}
	return st
}

// commitLocked stores next as the current document, schedules the save and
// notifies the listener. Called with s.mu held; returns the new state.
func (s *Session) commitLocked(kind string, next models.Document) State {
	s.doc = next
	s.gw.ScheduleSave(next.Clone(), s.company)
	metrics.Mutation(kind)

	st := s.stateLocked()
	if s.opts.OnChange != nil {
		s.opts.OnChange(st)
	}
	return st
}

// SetField assigns value to the field at path (see mutation.SetField)
func (s *Session) SetField(path string, value any) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := mutation.SetField(s.doc, path, value)
	if err != nil {
		return State{}, err
	}
	return s.commitLocked("field", next), nil
}

// Toggle flips key in the mapping at path
func (s *Session) Toggle(path, key string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := mutation.ToggleMapEntry(s.doc, path, key)
	if err != nil {
		return State{}, err
	}
	return s.commitLocked("toggle", next), nil
}

// SetCompany changes the report header, cut to models.MaxCompany characters
func (s *Session) SetCompany(name string) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.company = models.Truncate(name, models.MaxCompany)
	return s.commitLocked("company", s.doc)
}

// UploadLogo stores a new logo. Unsupported image types are rejected with
// models.ErrInvalidLogoType and change nothing.
func (s *Session) UploadLogo(ctx context.Context, dataURL string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.gw.SaveLogo(ctx, dataURL); err != nil {
		return State{}, err
	}
	s.logo = dataURL
	metrics.Mutation("logo")
	log.Println("🖼️  Logo updated")

	st := s.stateLocked()
	if s.opts.OnChange != nil {
		s.opts.OnChange(st)
	}
	return st, nil
}

// Reset starts a new checklist stamped with the current date and time.
// Company name and logo stay.
func (s *Session) Reset() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	log.Println("🆕 New checklist started")
	return s.commitLocked("reset", models.NewDefault(s.opts.Now()))
}

// HardClear deletes everything stored and returns to factory state
func (s *Session) HardClear(ctx context.Context) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gw.ClearAll(ctx)
	s.doc = models.NewDefault(s.opts.Now())
	s.company = s.opts.DefaultCompany
	s.logo = ""
	metrics.Mutation("clear")

	st := s.stateLocked()
	if s.opts.OnChange != nil {
		s.opts.OnChange(st)
	}
	return st
}

func (s *Session) Score() scoring.Completion {
	s.mu.Lock()
	defer s.mu.Unlock()
	return scoring.Score(s.doc)
}

// Export returns the JSON snapshot and its download file name
func (s *Session) Export() ([]byte, string, error) {
	st := s.Snapshot()
	data, name, err := export.Snapshot(st.Document, st.CompanyName)
	metrics.Report("export", err)
	return data, name, err
}

// Report renders the printable HTML report of the current state
func (s *Session) Report(opts printer.HTMLOptions) (printer.Artifact, error) {
	st := s.Snapshot()
	a, err := printer.RenderHTML(st.Document, st.CompanyName, st.Logo, opts)
	metrics.Report("html", err)
	return a, err
}

// ReportPDF renders the current state as PDF and returns it with its file name
func (s *Session) ReportPDF() ([]byte, string, error) {
	st := s.Snapshot()
	data, err := printer.GenerateReportPDF(st.Document, st.CompanyName, st.Logo)
	metrics.Report("pdf", err)
	if err != nil {
		return nil, "", err
	}
	return data, printer.ArchiveName(st.Document) + ".pdf", nil
}

// Print hands the rendered report to sink. A sink that cannot open its
// surface fails with printer.ErrPresentationBlocked; there is no fallback.
func (s *Session) Print(ctx context.Context, sink printer.Sink) (string, error) {
	a, err := s.Report(printer.HTMLOptions{AutoPrint: true})
	if err != nil {
		return "", err
	}
	path, err := sink.Deliver(ctx, a)
	metrics.Report("print", err)
	if err != nil {
		log.Printf("❌ Print failed: %v", err)
		return "", err
	}
	return path, nil
}

// Flush writes a pending save now (shutdown)
func (s *Session) Flush() bool {
	return s.gw.Flush()
}
