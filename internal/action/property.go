package action

import (
	"encoding/base64"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ds124wfegd/mineru-extract/internal/entity"
	"github.com/spf13/cast"
)

type PropertyType string

const (
	ShortText      PropertyType = "SHORT_TEXT"
	File           PropertyType = "FILE"
	StaticDropdown PropertyType = "STATIC_DROPDOWN"
	Checkbox       PropertyType = "CHECKBOX"
	Number         PropertyType = "NUMBER"
)

type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type Property struct {
	Name         string       `json:"name"`
	DisplayName  string       `json:"displayName"`
	Description  string       `json:"description,omitempty"`
	Type         PropertyType `json:"type"`
	Required     bool         `json:"required"`
	DefaultValue any          `json:"defaultValue,omitempty"`
	Options      []Option     `json:"options,omitempty"`
}

// coerce converts a raw JSON or form value into the Go type for the property:
// string, bool, int or entity.FilePayload.
func (p Property) coerce(raw any) (any, error) {
	switch p.Type {
	case ShortText, StaticDropdown:
		return cast.ToStringE(raw)
	case Checkbox:
		return cast.ToBoolE(raw)
	case Number:
		switch v := raw.(type) {
		case string:
			// cast treats a leading zero as octal, form values are decimal.
			return strconv.Atoi(strings.TrimSpace(v))
		case float64:
			if v != math.Trunc(v) {
				return nil, fmt.Errorf("%v is not a whole number", v)
			}
		case float32:
			if float64(v) != math.Trunc(float64(v)) {
				return nil, fmt.Errorf("%v is not a whole number", v)
			}
		}
		return cast.ToIntE(raw)
	case File:
		return coerceFile(raw)
	default:
		return nil, fmt.Errorf("unsupported property type %q", p.Type)
	}
}

// coerceFile accepts an entity.FilePayload or a decoded JSON object with
// filename, extension and base64 (or data) keys.
func coerceFile(raw any) (entity.FilePayload, error) {
	switch v := raw.(type) {
	case entity.FilePayload:
		return v, nil
	case *entity.FilePayload:
		if v == nil {
			return entity.FilePayload{}, fmt.Errorf("file is null")
		}
		return *v, nil
	case map[string]any:
		filename, err := cast.ToStringE(v["filename"])
		if err != nil {
			return entity.FilePayload{}, fmt.Errorf("filename: %w", err)
		}
		extension, err := cast.ToStringE(v["extension"])
		if err != nil {
			return entity.FilePayload{}, fmt.Errorf("extension: %w", err)
		}
		encoded, ok := v["base64"]
		if !ok {
			encoded = v["data"]
		}
		s, err := cast.ToStringE(encoded)
		if err != nil {
			return entity.FilePayload{}, fmt.Errorf("base64: %w", err)
		}
		data, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return entity.FilePayload{}, fmt.Errorf("base64: %w", err)
		}
		return entity.FilePayload{Filename: filename, Extension: extension, Data: data}, nil
	default:
		return entity.FilePayload{}, fmt.Errorf("unexpected file value of type %T", raw)
	}
}
