package models

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidLogoType is returned for logos that are not PNG, JPEG, WEBP or SVG
var ErrInvalidLogoType = errors.New("upload een PNG/JPG/WEBP/SVG logo")

// LogoTypes are the accepted logo MIME types
var LogoTypes = []string{"image/png", "image/jpeg", "image/webp", "image/svg+xml"}

// Logo is a decoded logo data URL
type Logo struct {
	MIME string `validate:"required,oneof=image/png image/jpeg image/webp image/svg+xml"`
	Data []byte `validate:"min=1"`
}

var logoValidate = validator.New()

// ParseLogo decodes a data URL ("data:image/png;base64,...") and checks its type
func ParseLogo(dataURL string) (Logo, error) {
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return Logo{}, fmt.Errorf("%w: not a data URL", ErrInvalidLogoType)
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return Logo{}, fmt.Errorf("%w: data URL without payload", ErrInvalidLogoType)
	}

	params := strings.Split(header, ";")
	logo := Logo{MIME: strings.ToLower(strings.TrimSpace(params[0]))}
	isBase64 := false
	for _, p := range params[1:] {
		if strings.TrimSpace(p) == "base64" {
			isBase64 = true
		}
	}

	var err error
	if isBase64 {
		logo.Data, err = base64.StdEncoding.DecodeString(payload)
	} else {
		var text string
		text, err = url.PathUnescape(payload)
		logo.Data = []byte(text)
	}
	if err != nil {
		return Logo{}, fmt.Errorf("%w: %v", ErrInvalidLogoType, err)
	}

	if err := logoValidate.Struct(logo); err != nil {
		return Logo{}, fmt.Errorf("%w: %s", ErrInvalidLogoType, logo.MIME)
	}
	return logo, nil
}

// DataURL encodes the logo back into a base64 data URL
func (l Logo) DataURL() string {
	return "data:" + l.MIME + ";base64," + base64.StdEncoding.EncodeToString(l.Data)
}

// LogoFromFile builds a logo from raw file bytes and the MIME type of the upload
func LogoFromFile(mime string, data []byte) (Logo, error) {
	logo := Logo{MIME: strings.ToLower(mime), Data: data}
	if err := logoValidate.Struct(logo); err != nil {
		return Logo{}, fmt.Errorf("%w: %s", ErrInvalidLogoType, mime)
	}
	return logo, nil
}
