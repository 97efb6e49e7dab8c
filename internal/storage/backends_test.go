package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xelth-com/ploegwissel/internal/models"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, KeyCompany)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, KeyCompany, []byte("Zuivelfabriek – Melkpoeders")))
	require.NoError(t, s.Set(ctx, KeyChecklist, []byte(`{"meta":{"operator":"Piet"}}`)))
	require.NoError(t, s.Set(ctx, KeyCompany, []byte("Kaas & Co")))

	got, err := s.Get(ctx, KeyCompany)
	require.NoError(t, err)
	assert.Equal(t, "Kaas & Co", string(got))

	got, err = s.Get(ctx, KeyChecklist)
	require.NoError(t, err)
	assert.JSONEq(t, `{"meta":{"operator":"Piet"}}`, string(got))

	require.NoError(t, s.Delete(ctx, KeyCompany))
	require.NoError(t, s.Delete(ctx, KeyCompany))
	_, err = s.Get(ctx, KeyCompany)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestBadgerStore_InMemory(t *testing.T) {
	s, err := OpenBadger(InMemoryBadgerConfig())
	require.NoError(t, err)
	defer s.Close()
	exerciseStore(t, s)
}

func TestBadgerStore_Reopen(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultBadgerConfig(t.TempDir())
	cfg.SyncWrites = false

	s, err := OpenBadger(cfg)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, KeyLogo, []byte("data:image/png;base64,iVBORw0KGgo=")))
	require.NoError(t, s.Close())

	s, err = OpenBadger(cfg)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Get(ctx, KeyLogo)
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,iVBORw0KGgo=", string(got))
}

func TestOpenBadger_RequiresPath(t *testing.T) {
	_, err := OpenBadger(BadgerConfig{})
	assert.Error(t, err)
}

func TestSlotEncoding(t *testing.T) {
	cases := []struct {
		name  string
		value string
		kind  string
	}{
		{"checklist", `{"meta":{"date":"2024-02-07"},"tech":{"ok":{"Zeef":true,"Silos":false}}}`, models.SlotKindJSON},
		{"company", "Zuivelfabriek – Melkpoeders", models.SlotKindText},
		{"logo", "data:image/png;base64,iVBORw0KGgo=", models.SlotKindText},
		{"numeric company", "123", models.SlotKindJSON},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			slot := encodeSlot("k", []byte(tc.value))
			assert.Equal(t, tc.kind, slot.Kind)

			back, err := decodeSlot(slot)
			require.NoError(t, err)
			assert.Equal(t, tc.value, string(back))
		})
	}
}
