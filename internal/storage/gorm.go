package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xelth-com/ploegwissel/internal/database"
	"github.com/xelth-com/ploegwissel/internal/models"
)

// GormStore keeps slots in the kv_slots table of a postgres database
type GormStore struct {
	db *database.DB
}

// NewGormStore migrates the slot table and returns a store on db
func NewGormStore(db *database.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&models.KVSlot{}); err != nil {
		return nil, fmt.Errorf("migrate kv_slots: %w", err)
	}
	log.Println("✅ kv_slots table ready")
	return &GormStore{db: db}, nil
}

func (s *GormStore) Get(ctx context.Context, key string) ([]byte, error) {
	var slot models.KVSlot
	err := s.db.WithContext(ctx).Where("slot_key = ?", key).First(&slot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return decodeSlot(slot)
}

func (s *GormStore) Set(ctx context.Context, key string, value []byte) error {
	slot := encodeSlot(key, value)
	slot.UpdatedAt = time.Now().UTC()

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slot_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"kind", "value", "updated_at"}),
	}).Create(&slot).Error
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (s *GormStore) Delete(ctx context.Context, key string) error {
	err := s.db.WithContext(ctx).Where("slot_key = ?", key).Delete(&models.KVSlot{}).Error
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (s *GormStore) Close() error {
	return s.db.Close()
}

// encodeSlot stores JSON payloads as they are and wraps anything else
// (company name, logo data URL) as a JSON string.
func encodeSlot(key string, value []byte) models.KVSlot {
	if json.Valid(value) {
		return models.KVSlot{Key: key, Kind: models.SlotKindJSON, Value: append([]byte(nil), value...)}
	}
	wrapped, _ := json.Marshal(string(value))
	return models.KVSlot{Key: key, Kind: models.SlotKindText, Value: wrapped}
}

func decodeSlot(slot models.KVSlot) ([]byte, error) {
	if slot.Kind != models.SlotKindText {
		return []byte(slot.Value), nil
	}
	var text string
	if err := json.Unmarshal(slot.Value, &text); err != nil {
		return nil, fmt.Errorf("decode %s: %w", slot.Key, err)
	}
	return []byte(text), nil
}
