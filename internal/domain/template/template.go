package template

import (
	"strings"

	"github.com/luminacoach/lumina/internal/httperr"
)

// ===============================
// Template
// ===============================

type Template struct {
	ID     string   `json:"id" yaml:"id"`
	Name   string   `json:"name" yaml:"name"`
	Fields []string `json:"fields" yaml:"fields"`
	Custom bool     `json:"custom" yaml:"-"`
}

// ===============================
// Mode
// ===============================

type Mode string

const (
	ModeDefault  Mode = "default"
	ModeTemplate Mode = "template"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeDefault, "":
		return ModeDefault, nil
	case ModeTemplate:
		return ModeTemplate, nil
	}
	return "", httperr.ErrBusiness("invalid_template_mode")
}

// ===============================
// Validations
// ===============================

// Normalize trims the name and every field label, dropping blank labels and
// repeats of an earlier label. Note values are keyed by label.
func Normalize(name string, fields []string) (string, []string) {
	out := make([]string, 0, len(fields))
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return strings.TrimSpace(name), out
}

// Validate requires a name and at least one non-blank field label.
func Validate(name string, fields []string) error {
	name, fields = Normalize(name, fields)
	if name == "" {
		return httperr.ErrBusiness("template_name_required")
	}
	if len(fields) == 0 {
		return httperr.ErrBusiness("template_fields_required")
	}
	return nil
}

// ===============================
// Resolution
// ===============================

// Resolve returns the effective template: nil in default mode or with no
// selection, otherwise the preset with selectedID, then the custom one.
func Resolve(mode Mode, selectedID string, presets, customs []Template) *Template {
	if mode != ModeTemplate || selectedID == "" {
		return nil
	}
	if t := Find(presets, selectedID); t != nil {
		return t
	}
	return Find(customs, selectedID)
}

func Find(list []Template, id string) *Template {
	for i := range list {
		if list[i].ID == id {
			t := list[i]
			return &t
		}
	}
	return nil
}
