package form

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/ishanya/ishanya/core"
)

// FieldType is the input a field is rendered with.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldEmail    FieldType = "email"
	FieldPassword FieldType = "password"
	FieldTel      FieldType = "tel"
	FieldDate     FieldType = "date"
	FieldTextarea FieldType = "textarea"
	FieldSelect   FieldType = "select"
	FieldRadio    FieldType = "radio"
	FieldFile     FieldType = "file"
)

// strictPolicy strips every HTML element.
var strictPolicy = bluemonday.StrictPolicy()

type (
	// State maps a field name to its current value.
	State map[string]string

	// ErrorMap maps a field name to the message of its first failing rule.
	ErrorMap map[string]string

	Rule struct {
		Tag     string `yaml:"tag" json:"tag"`
		Message string `yaml:"message" json:"message"`
	}

	FieldDef struct {
		Name     string    `yaml:"name" json:"name"`
		Label    string    `yaml:"label" json:"label"`
		Type     FieldType `yaml:"type" json:"type"`
		Default  string    `yaml:"default" json:"default,omitempty"`
		Options  []string  `yaml:"options" json:"options,omitempty"`
		Sanitize bool      `yaml:"sanitize" json:"-"`
		Rules    []Rule    `yaml:"rules" json:"rules"`
	}

	// Outcome is the toast text shown after a submission.
	Outcome struct {
		Title       string `yaml:"title" json:"title"`
		Description string `yaml:"description" json:"description"`
	}

	Schema struct {
		Name           string     `yaml:"name" json:"name"`
		Title          string     `yaml:"title" json:"title"`
		ResetOnSuccess bool       `yaml:"resetOnSuccess" json:"resetOnSuccess"`
		CloseOnSuccess bool       `yaml:"closeOnSuccess" json:"closeOnSuccess"`
		SuccessStatus  string     `yaml:"successStatus" json:"successStatus,omitempty"`
		Next           []string   `yaml:"next" json:"next,omitempty"`
		Success        Outcome    `yaml:"success" json:"success"`
		Failure        Outcome    `yaml:"failure" json:"failure"`
		Fields         []FieldDef `yaml:"fields" json:"fields"`

		validator *Validator
	}
)

// Clone returns a copy of the state.
func (s State) Clone() State {
	c := make(State, len(s))
	for k, v := range s {
		c[k] = v
	}
	return c
}

func (e ErrorMap) Empty() bool { return len(e) == 0 }

// FieldErrors converts the map into core field errors, in schema order.
func (e ErrorMap) FieldErrors(schema *Schema) []core.FieldError {
	flds := make([]core.FieldError, 0, len(e))
	for _, fd := range schema.Fields {
		if msg, ok := e[fd.Name]; ok {
			flds = append(flds, core.FieldError{Field: fd.Name, Error: msg})
		}
	}
	return flds
}

// Field returns the definition of the named field.
func (s *Schema) Field(name string) (*FieldDef, bool) {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i], true
		}
	}
	return nil, false
}

// Defaults returns a fresh state seeded with every field's default.
func (s *Schema) Defaults() State {
	st := make(State, len(s.Fields))
	for _, fd := range s.Fields {
		st[fd.Name] = fd.Default
	}
	return st
}

// Clean returns a copy of state holding only the schema's fields, normalized:
// values are trimmed (passwords excepted), emails lowered and `sanitize` fields stripped of HTML.
func (s *Schema) Clean(state State) State {
	cleaned := make(State, len(s.Fields))
	for _, fd := range s.Fields {
		v, ok := state[fd.Name]
		if !ok {
			continue
		}
		switch fd.Type {
		case FieldPassword:
		case FieldEmail:
			v = core.CleanString(v, true)
		default:
			v = core.CleanString(v)
		}
		if fd.Sanitize {
			v = strings.TrimSpace(stripHTML(v))
		}
		cleaned[fd.Name] = v
	}
	return cleaned
}

// stripHTML removes every element from v and keeps entities as plain text.
// Unescaping may reveal encoded markup, so it repeats until nothing changes.
func stripHTML(v string) string {
	for i := 0; i < maxStripPasses; i++ {
		next := html.UnescapeString(strictPolicy.Sanitize(v))
		if next == v {
			return v
		}
		v = next
	}
	return strictPolicy.Sanitize(v)
}

const maxStripPasses = 4

// Validate returns the first failing rule's message for every invalid field.
// Keys of state unknown to the schema are ignored.
func (s *Schema) Validate(state State) ErrorMap {
	v := s.validator
	if v == nil {
		v = defaultValidator()
	}
	return v.Validate(s, state)
}
