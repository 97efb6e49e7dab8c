package mutation

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/xelth-com/ploegwissel/internal/models"
)

var (
	// ErrInvalidPath means the path does not address a field of the checklist
	ErrInvalidPath = errors.New("invalid field path")
	// ErrUnknownKey means the key is not part of the addressed mapping
	ErrUnknownKey = errors.New("unknown mapping key")
	// ErrInvalidValue means the value does not fit the addressed field
	ErrInvalidValue = errors.New("invalid field value")
)

func invalidPath(path string) error {
	return fmt.Errorf("%w: %q", ErrInvalidPath, path)
}

var validate = validator.New()

var (
	shiftRule  = "oneof=" + strings.Join(models.Shifts, " ")
	statusRule = oneofQuoted(models.ProcessStates)
)

// oneofQuoted builds a oneof rule for values containing spaces
func oneofQuoted(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		if strings.ContainsAny(v, " ") {
			quoted[i] = "'" + v + "'"
		} else {
			quoted[i] = v
		}
	}
	return "oneof=" + strings.Join(quoted, " ")
}

// checkString validates enumerated and formatted text fields
func checkString(f StringField, v string) error {
	switch f {
	case MetaShift:
		if err := validate.Var(v, shiftRule); err != nil {
			return fmt.Errorf("%w: shift %q", ErrInvalidValue, v)
		}
	case ProdStatus:
		if err := validate.Var(v, statusRule); err != nil {
			return fmt.Errorf("%w: status %q", ErrInvalidValue, v)
		}
	case MetaDate:
		if v == "" {
			return nil
		}
		if _, err := time.Parse(models.DateLayout, v); err != nil {
			return fmt.Errorf("%w: date %q", ErrInvalidValue, v)
		}
	case MetaTime:
		if v == "" {
			return nil
		}
		if _, err := time.Parse(models.TimeLayout, v); err != nil {
			return fmt.Errorf("%w: time %q", ErrInvalidValue, v)
		}
	}
	return nil
}

// SetString returns a copy of doc with f set to v (truncated to the field cap)
func SetString(doc models.Document, f StringField, v string) (models.Document, error) {
	if err := checkString(f, v); err != nil {
		return doc, err
	}
	next := doc.Clone()
	*stringFields[f].ref(&next) = models.Truncate(v, f.Max())
	return next, nil
}

// SetTri returns a copy of doc with f set to v
func SetTri(doc models.Document, f TriField, v models.TriState) models.Document {
	next := doc.Clone()
	*triFields[f].ref(&next) = v
	return next
}

// SetBool returns a copy of doc with f set to v
func SetBool(doc models.Document, f BoolField, v bool) models.Document {
	next := doc.Clone()
	*boolFields[f].ref(&next) = v
	return next
}

// Toggle returns a copy of doc with key flipped in mapping f
func Toggle(doc models.Document, f MapField, key string) (models.Document, error) {
	next := doc.Clone()
	if !mapFields[f].ref(&next).Toggle(key) {
		return doc, fmt.Errorf("%w: %q in %s", ErrUnknownKey, key, f.Path())
	}
	return next, nil
}

// SetField sets the leaf addressed by a wire path. value must be a string for
// text fields, a bool for checkboxes and nil, a bool or a TriState for
// yes/no questions. Mappings are changed with ToggleMapEntry only.
func SetField(doc models.Document, path string, value any) (models.Document, error) {
	field, err := Lookup(path)
	if err != nil {
		return doc, err
	}

	switch field.Kind {
	case KindString:
		s, ok := value.(string)
		if !ok {
			return doc, kindMismatch(field, value)
		}
		return SetString(doc, StringField(field.idx), s)

	case KindTri:
		var t models.TriState
		switch v := value.(type) {
		case nil:
			t = models.Unset
		case bool:
			t = models.TriOf(v)
		case models.TriState:
			t = v
		default:
			return doc, kindMismatch(field, value)
		}
		return SetTri(doc, TriField(field.idx), t), nil

	case KindBool:
		b, ok := value.(bool)
		if !ok {
			return doc, kindMismatch(field, value)
		}
		return SetBool(doc, BoolField(field.idx), b), nil

	default:
		return doc, fmt.Errorf("%w: %s is a mapping, toggle its entries instead", ErrInvalidPath, path)
	}
}

// ToggleMapEntry flips key in the mapping addressed by path
func ToggleMapEntry(doc models.Document, path string, key string) (models.Document, error) {
	field, err := Lookup(path)
	if err != nil {
		return doc, err
	}
	if field.Kind != KindMap {
		return doc, fmt.Errorf("%w: %s is not a mapping", ErrInvalidPath, path)
	}
	return Toggle(doc, MapField(field.idx), key)
}

func kindMismatch(field Field, value any) error {
	return fmt.Errorf("%w: %s expects %s, got %T", ErrInvalidValue, field.Path, field.Kind, value)
}
