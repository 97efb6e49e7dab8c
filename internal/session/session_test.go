package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xelth-com/ploegwissel/internal/models"
	"github.com/xelth-com/ploegwissel/internal/mutation"
	"github.com/xelth-com/ploegwissel/internal/services/printer"
	"github.com/xelth-com/ploegwissel/internal/storage"
)

var clock = time.Date(2024, 2, 7, 14, 5, 0, 0, time.Local)

func open(t *testing.T, store storage.Store, opts Options) *Session {
	t.Helper()
	if opts.Now == nil {
		opts.Now = func() time.Time { return clock }
	}
	// saves only happen through Flush
	gw := storage.NewGateway(store, storage.Options{Delay: time.Hour})
	t.Cleanup(gw.Close)
	return Open(context.Background(), gw, opts)
}

func TestOpen_Defaults(t *testing.T) {
	s := open(t, storage.NewMemoryStore(), Options{})
	st := s.Snapshot()

	assert.Equal(t, "2024-02-07", st.Document.Meta.Date)
	assert.Equal(t, "14:05", st.Document.Meta.Time)
	assert.Equal(t, models.DefaultCompanyName, st.CompanyName)
	assert.Empty(t, st.Logo)
	assert.Equal(t, 23, st.Score.Total)
	assert.Equal(t, 2, st.Score.Done)
}

func TestOpen_DefaultCompanyOverride(t *testing.T) {
	s := open(t, storage.NewMemoryStore(), Options{DefaultCompany: "Kaasmakerij"})
	assert.Equal(t, "Kaasmakerij", s.Snapshot().CompanyName)
}

func TestSession_PersistsAcrossOpen(t *testing.T) {
	store := storage.NewMemoryStore()
	s := open(t, store, Options{})

	_, err := s.SetField("meta.operator", "Piet")
	require.NoError(t, err)
	_, err = s.SetField("prod.stable", false)
	require.NoError(t, err)
	_, err = s.Toggle("tech.ok", "Zeef")
	require.NoError(t, err)
	s.SetCompany("Melkpoeders Noord")
	assert.Nil(t, s.Snapshot().LastSaved)
	require.True(t, s.Flush())
	assert.NotNil(t, s.Snapshot().LastSaved)

	before := s.Snapshot()
	after := open(t, store, Options{Now: func() time.Time { return clock.Add(24 * time.Hour) }}).Snapshot()

	if diff := cmp.Diff(before.Document, after.Document); diff != "" {
		t.Errorf("reopened document differs (-before +after):\n%s", diff)
	}
	assert.Equal(t, "Melkpoeders Noord", after.CompanyName)
	assert.Equal(t, before.Score, after.Score)
}

func TestSession_OnChange(t *testing.T) {
	var seen []State
	s := open(t, storage.NewMemoryStore(), Options{OnChange: func(st State) { seen = append(seen, st) }})

	_, err := s.SetField("meta.leader", "Els")
	require.NoError(t, err)
	_, err = s.SetField("meta.nope", "x")
	require.Error(t, err)

	require.Len(t, seen, 1)
	assert.Equal(t, "Els", seen[0].Document.Meta.Leader)
	assert.Equal(t, 3, seen[0].Score.Done)
}

func TestSession_InvalidMutationLeavesState(t *testing.T) {
	s := open(t, storage.NewMemoryStore(), Options{})
	before := s.Snapshot()

	_, err := s.SetField("meta.shift", "Weekend")
	assert.ErrorIs(t, err, mutation.ErrInvalidValue)
	_, err = s.Toggle("tech.ok", "Koeltoren")
	assert.ErrorIs(t, err, mutation.ErrUnknownKey)
	_, err = s.Toggle("meta.operator", "x")
	assert.ErrorIs(t, err, mutation.ErrInvalidPath)

	assert.Empty(t, cmp.Diff(before, s.Snapshot()))
}

func TestSession_SnapshotIsACopy(t *testing.T) {
	s := open(t, storage.NewMemoryStore(), Options{})
	st := s.Snapshot()
	st.Document.Tech.OK.Toggle("Silos")

	assert.False(t, s.Snapshot().Document.Tech.OK.Get("Silos"))
}

func TestSession_SetCompanyTruncates(t *testing.T) {
	s := open(t, storage.NewMemoryStore(), Options{})
	st := s.SetCompany(strings.Repeat("é", 100))
	assert.Equal(t, models.MaxCompany, len([]rune(st.CompanyName)))
}

func TestSession_UploadLogo(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	s := open(t, store, Options{})

	_, err := s.UploadLogo(ctx, "data:image/gif;base64,R0lGODlh")
	assert.ErrorIs(t, err, models.ErrInvalidLogoType)
	assert.Empty(t, s.Snapshot().Logo)

	st, err := s.UploadLogo(ctx, "data:image/png;base64,iVBORw0KGgo=")
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,iVBORw0KGgo=", st.Logo)

	// written right away, no debounce
	stored, err := store.Get(ctx, storage.KeyLogo)
	require.NoError(t, err)
	assert.Equal(t, st.Logo, string(stored))
}

func TestSession_Reset(t *testing.T) {
	now := clock
	s := open(t, storage.NewMemoryStore(), Options{Now: func() time.Time { return now }})
	_, err := s.SetField("meta.operator", "Piet")
	require.NoError(t, err)
	s.SetCompany("Kaas BV")
	_, err = s.UploadLogo(context.Background(), "data:image/png;base64,iVBORw0KGgo=")
	require.NoError(t, err)

	now = clock.Add(9 * time.Hour)
	st := s.Reset()

	assert.Empty(t, st.Document.Meta.Operator)
	assert.Equal(t, "23:05", st.Document.Meta.Time)
	assert.Equal(t, "Kaas BV", st.CompanyName)
	assert.NotEmpty(t, st.Logo)
}

func TestSession_HardClear(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	s := open(t, store, Options{})

	_, err := s.SetField("meta.operator", "Piet")
	require.NoError(t, err)
	s.SetCompany("Kaas BV")
	s.Flush()
	_, err = s.UploadLogo(ctx, "data:image/png;base64,iVBORw0KGgo=")
	require.NoError(t, err)

	st := s.HardClear(ctx)
	assert.Empty(t, st.Document.Meta.Operator)
	assert.Equal(t, models.DefaultCompanyName, st.CompanyName)
	assert.Empty(t, st.Logo)

	for _, key := range []string{storage.KeyChecklist, storage.KeyCompany, storage.KeyLogo} {
		_, err := store.Get(ctx, key)
		assert.ErrorIs(t, err, storage.ErrNotFound, key)
	}
	assert.False(t, s.Flush())
}

func TestSession_Export(t *testing.T) {
	s := open(t, storage.NewMemoryStore(), Options{})
	_, err := s.SetField("meta.shift", models.ShiftNight)
	require.NoError(t, err)

	data, name, err := s.Export()
	require.NoError(t, err)
	assert.Equal(t, "ploegwissel_2024-02-07_Nacht.json", name)
	assert.True(t, strings.HasPrefix(string(data), "{\n  \"companyName\": \"Zuivelfabriek – Melkpoeders\","))
}

func TestSession_ReportPDF(t *testing.T) {
	s := open(t, storage.NewMemoryStore(), Options{})
	data, name, err := s.ReportPDF()
	require.NoError(t, err)
	assert.Equal(t, "ploegwissel_2024-02-07_Ochtend.pdf", name)
	assert.True(t, strings.HasPrefix(string(data), "%PDF-"))
}

type blockedSink struct{}

func (blockedSink) Deliver(context.Context, printer.Artifact) (string, error) {
	return "", printer.ErrPresentationBlocked
}

func TestSession_Print(t *testing.T) {
	ctx := context.Background()
	s := open(t, storage.NewMemoryStore(), Options{})

	dir := t.TempDir()
	path, err := s.Print(ctx, printer.FileSink{Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "ploegwissel_2024-02-07_Ochtend.html"), path)
	html, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(html), "window.print()")

	_, err = s.Print(ctx, blockedSink{})
	assert.True(t, errors.Is(err, printer.ErrPresentationBlocked))
}
