package template

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var presetsYAML []byte

type presetFile struct {
	Templates []Template `yaml:"templates"`
}

// ParsePresets decodes a presets document and validates every entry.
func ParsePresets(data []byte) ([]Template, error) {
	var f presetFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse presets: %w", err)
	}

	seen := make(map[string]bool, len(f.Templates))
	out := make([]Template, 0, len(f.Templates))
	for _, t := range f.Templates {
		if t.ID == "" || seen[t.ID] {
			return nil, fmt.Errorf("preset %q: missing or duplicate id", t.Name)
		}
		if err := Validate(t.Name, t.Fields); err != nil {
			return nil, fmt.Errorf("preset %q: %w", t.ID, err)
		}
		seen[t.ID] = true
		t.Name, t.Fields = Normalize(t.Name, t.Fields)
		t.Custom = false
		out = append(out, t)
	}
	return out, nil
}

// Presets returns the templates shipped with the binary.
func Presets() []Template {
	list, err := ParsePresets(presetsYAML)
	if err != nil {
		panic(err)
	}
	return list
}

func IsPreset(id string) bool {
	return Find(Presets(), id) != nil
}
