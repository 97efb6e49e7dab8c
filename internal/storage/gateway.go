package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/xelth-com/ploegwissel/internal/metrics"
	"github.com/xelth-com/ploegwissel/internal/models"
)

// ErrPersistenceWrite wraps store failures handed to Options.OnError.
// Gateway methods never return it.
var ErrPersistenceWrite = errors.New("persistence write failed")

// ErrInvalidLogoType is returned by SaveLogo for unsupported images
var ErrInvalidLogoType = models.ErrInvalidLogoType

const writeTimeout = 5 * time.Second

// Options configures a Gateway. Zero values give the production behaviour.
type Options struct {
	Delay     time.Duration
	Scheduler Scheduler
	OnSaved   func(at time.Time)
	OnError   func(err error)
	Now       func() time.Time
}

// Loaded is what Load found in the store. Nil means absent or unreadable.
type Loaded struct {
	Document    models.Persisted
	CompanyName *string
	Logo        *string
}

// Gateway is the only path between the checklist state and the store
type Gateway struct {
	store    Store
	debounce *Debouncer
	opts     Options

	mu     sync.Mutex
	seq    uint64
	closed bool

	writeMu     sync.Mutex
	lastWritten uint64

	savedMu   sync.Mutex
	lastSaved time.Time
}

func NewGateway(store Store, opts Options) *Gateway {
	if opts.Delay <= 0 {
		opts.Delay = DefaultSaveDelay
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Gateway{
		store:    store,
		debounce: NewDebouncer(opts.Delay, opts.Scheduler),
		opts:     opts,
	}
}

// Load reads the three slots. Missing slots are silent, unreadable ones
// are logged and reported as absent.
func (g *Gateway) Load(ctx context.Context) Loaded {
	var out Loaded

	if raw, ok := g.read(ctx, KeyChecklist); ok {
		doc, err := models.ParsePersisted(raw)
		if err != nil {
			g.readFailed(KeyChecklist, err)
		} else {
			out.Document = doc
		}
	}

	if raw, ok := g.read(ctx, KeyCompany); ok {
		name := string(raw)
		out.CompanyName = &name
	}

	if raw, ok := g.read(ctx, KeyLogo); ok {
		dataURL := string(raw)
		if _, err := models.ParseLogo(dataURL); err != nil {
			g.readFailed(KeyLogo, err)
		} else {
			out.Logo = &dataURL
		}
	}

	return out
}

func (g *Gateway) read(ctx context.Context, key string) ([]byte, bool) {
	raw, err := g.store.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return nil, false
	}
	if err != nil {
		g.readFailed(key, err)
		return nil, false
	}
	return raw, true
}

func (g *Gateway) readFailed(key string, err error) {
	metrics.ReadError(key)
	log.Printf("⚠️  Could not read %s, using defaults: %v", key, err)
}

// ScheduleSave queues a write of doc and companyName. Calls inside the
// quiet window replace each other, only the last one is written.
func (g *Gateway) ScheduleSave(doc models.Document, companyName string) {
	payload, err := json.Marshal(doc)
	if err != nil {
		g.writeFailed(KeyChecklist, err)
		return
	}

	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return
	}
	g.seq++
	seq := g.seq
	g.mu.Unlock()

	g.debounce.Trigger(func() { g.write(seq, payload, companyName) })
}

// write stores one scheduled state. A state older than one already
// written (or cleared) is dropped.
func (g *Gateway) write(seq uint64, payload []byte, companyName string) {
	g.writeMu.Lock()
	defer g.writeMu.Unlock()

	if seq <= g.lastWritten {
		return
	}
	g.lastWritten = seq

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	if err := g.store.Set(ctx, KeyChecklist, payload); err != nil {
		g.writeFailed(KeyChecklist, err)
		return
	}
	if err := g.store.Set(ctx, KeyCompany, []byte(companyName)); err != nil {
		g.writeFailed(KeyCompany, err)
		return
	}

	metrics.SaveOK()
	at := g.opts.Now()
	g.savedMu.Lock()
	g.lastSaved = at
	g.savedMu.Unlock()
	if g.opts.OnSaved != nil {
		g.opts.OnSaved(at)
	}
}

func (g *Gateway) writeFailed(key string, err error) {
	metrics.SaveError()
	log.Printf("❌ Autosave of %s failed: %v", key, err)
	if g.opts.OnError != nil {
		g.opts.OnError(fmt.Errorf("%w: %s: %v", ErrPersistenceWrite, key, err))
	}
}

// SaveLogo stores dataURL right away. Only an unsupported image type is
// reported; store failures are logged.
func (g *Gateway) SaveLogo(ctx context.Context, dataURL string) error {
	if _, err := models.ParseLogo(dataURL); err != nil {
		return err
	}
	if err := g.store.Set(ctx, KeyLogo, []byte(dataURL)); err != nil {
		g.writeFailed(KeyLogo, err)
	}
	return nil
}

// ClearAll drops the pending save and deletes every slot
func (g *Gateway) ClearAll(ctx context.Context) {
	g.debounce.Cancel()

	g.mu.Lock()
	issued := g.seq
	g.mu.Unlock()

	g.writeMu.Lock()
	defer g.writeMu.Unlock()
	if issued > g.lastWritten {
		g.lastWritten = issued
	}

	for _, key := range []string{KeyChecklist, KeyCompany, KeyLogo} {
		if err := g.store.Delete(ctx, key); err != nil {
			log.Printf("⚠️  Could not delete %s: %v", key, err)
		}
	}
	log.Println("🗑️  Stored checklist, company and logo cleared")
}

// LastSaved returns when the last autosave succeeded, zero before the first
func (g *Gateway) LastSaved() time.Time {
	g.savedMu.Lock()
	defer g.savedMu.Unlock()
	return g.lastSaved
}

// Pending reports whether a save is waiting for its window
func (g *Gateway) Pending() bool {
	return g.debounce.Pending()
}

// Flush writes the pending save now
func (g *Gateway) Flush() bool {
	return g.debounce.Flush()
}

// Close drops the pending save without writing it. Later ScheduleSave
// calls are ignored. The store stays open.
func (g *Gateway) Close() {
	g.mu.Lock()
	g.closed = true
	g.mu.Unlock()
	g.debounce.Cancel()
}
