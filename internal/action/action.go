// Package action declares the parameter schema of the actions this service
// exposes and resolves caller-supplied values against it.
package action

import (
	"fmt"
	"strings"

	"github.com/ds124wfegd/mineru-extract/internal/entity"
)

type Action struct {
	Name        string     `json:"name"`
	DisplayName string     `json:"displayName"`
	Description string     `json:"description"`
	Props       []Property `json:"props"`
}

// Values holds resolved property values keyed by property name.
type Values map[string]any

// Resolve applies defaults, checks that required properties are present and
// coerces every supplied value. Unknown keys are ignored.
func (a Action) Resolve(raw map[string]any) (Values, error) {
	values := make(Values, len(a.Props))
	var missing []string

	for _, p := range a.Props {
		v, ok := raw[p.Name]
		if !ok || v == nil {
			if p.DefaultValue != nil {
				values[p.Name] = p.DefaultValue
				continue
			}
			if p.Required {
				missing = append(missing, p.Name)
			}
			continue
		}

		coerced, err := p.coerce(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", entity.ErrInvalidInput, p.Name, err)
		}
		if s, isString := coerced.(string); isString && s == "" && p.Required {
			if p.DefaultValue != nil {
				values[p.Name] = p.DefaultValue
				continue
			}
			missing = append(missing, p.Name)
			continue
		}
		values[p.Name] = coerced
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", entity.ErrMissingParameter, strings.Join(missing, ", "))
	}
	return values, nil
}

// Prop returns the property with the given name.
func (a Action) Prop(name string) (Property, bool) {
	for _, p := range a.Props {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}

func (v Values) String(name string) string {
	s, _ := v[name].(string)
	return s
}

func (v Values) Bool(name string) bool {
	b, _ := v[name].(bool)
	return b
}

// Int returns nil when the property was not supplied and has no default.
func (v Values) Int(name string) *int {
	i, ok := v[name].(int)
	if !ok {
		return nil
	}
	return &i
}

func (v Values) File(name string) entity.FilePayload {
	f, _ := v[name].(entity.FilePayload)
	return f
}
