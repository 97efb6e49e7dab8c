package models

import (
	"encoding/json"
	"log"
	"time"
)

// Date and time layouts used by meta.date / meta.time
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// NewDefault creates an empty checklist stamped with now (local wall clock)
func NewDefault(now time.Time) Document {
	return Document{
		Meta: Meta{
			Date:  now.Format(DateLayout),
			Time:  now.Format(TimeLayout),
			Shift: ShiftMorning,
		},
		Prod: Prod{Status: StatusProducing},
		Tech: Tech{OK: NewFlags(TechKeys...)},
		Plan: Plan{Items: NewFlags(PlanKeys...)},
	}
}

// Persisted is a stored document kept as raw sections, so that a snapshot
// written by an older build can still be merged section by section.
type Persisted map[string]json.RawMessage

// ParsePersisted splits a stored document into its sections
func ParsePersisted(data []byte) (Persisted, error) {
	var p Persisted
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return p, nil
}

// MergeLoaded lays a persisted snapshot over defaults. Every section present
// in persisted replaces the default section as a whole; fields missing inside
// that section are zero, not defaulted. Sections that are absent or fail to
// decode keep the default. Keys added to tech.ok or plan.items after the
// snapshot was written only appear once that section is reset.
func MergeLoaded(defaults Document, persisted Persisted) Document {
	doc := defaults.Clone()
	if persisted == nil {
		return doc
	}

	mergeSection(persisted, "meta", &doc.Meta)
	mergeSection(persisted, "prod", &doc.Prod)
	mergeSection(persisted, "tech", &doc.Tech)
	mergeSection(persisted, "qa", &doc.QA)
	mergeSection(persisted, "hyg", &doc.Hyg)
	mergeSection(persisted, "safe", &doc.Safe)
	mergeSection(persisted, "plan", &doc.Plan)
	mergeSection(persisted, "sign", &doc.Sign)

	return doc
}

func mergeSection[T any](persisted Persisted, key string, dst *T) {
	raw, ok := persisted[key]
	if !ok {
		return
	}
	var section T
	if err := json.Unmarshal(raw, &section); err != nil {
		log.Printf("⚠️  Stored section %q unreadable, keeping default: %v", key, err)
		return
	}
	*dst = section
}
