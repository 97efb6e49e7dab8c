package models

import (
	"time"

	"gorm.io/datatypes"
)

// Slot payload kinds
const (
	SlotKindJSON = "json" // Value is the payload itself (the checklist)
	SlotKindText = "text" // Value is the payload wrapped as a JSON string (company name, logo)
)

// KVSlot is one persisted slot (checklist, company name, logo) when the
// postgres store is used. The column is json, not jsonb: jsonb reorders
// object keys and the checklist mappings are ordered.
type KVSlot struct {
	Key       string         `gorm:"column:slot_key;primaryKey;size:128" json:"key"`
	Kind      string         `gorm:"column:kind;size:8;not null;default:'json'" json:"kind"`
	Value     datatypes.JSON `gorm:"column:value;type:json;not null" json:"value"`
	UpdatedAt time.Time      `gorm:"column:updated_at" json:"updatedAt"`
}

// TableName specifies the table name
func (KVSlot) TableName() string {
	return "kv_slots"
}
