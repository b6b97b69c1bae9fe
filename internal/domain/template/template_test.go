package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luminacoach/lumina/internal/httperr"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		tName  string
		fields []string
		code   string
	}{
		{"valid", "Intake", []string{"Goal", "Blockers"}, ""},
		{"blank name", "   ", []string{"Goal"}, "template_name_required"},
		{"no fields", "Intake", nil, "template_fields_required"},
		{"all blank fields", "Intake", []string{" ", ""}, "template_fields_required"},
		{"one usable field", "Intake", []string{" ", "Goal"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.tName, tt.fields)
			if tt.code == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, httperr.IsBusiness(err, tt.code), "got %v", err)
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		fields []string
		want   []string
	}{
		{"blanks dropped", []string{" Goal", "", "  ", "Blockers "}, []string{"Goal", "Blockers"}},
		{"repeats dropped", []string{"Goal", " Goal ", "Blockers", "Goal"}, []string{"Goal", "Blockers"}},
		{"case kept apart", []string{"Goal", "goal"}, []string{"Goal", "goal"}},
		{"all blank", []string{" ", ""}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, fields := Normalize("  Intake ", tt.fields)
			assert.Equal(t, "Intake", name)
			assert.Equal(t, tt.want, fields)
		})
	}
}

func TestResolve(t *testing.T) {
	presets := []Template{{ID: "p1", Name: "Preset"}, {ID: "shared", Name: "Preset wins"}}
	customs := []Template{{ID: "c1", Name: "Custom", Custom: true}, {ID: "shared", Name: "Custom loses", Custom: true}}

	assert.Nil(t, Resolve(ModeDefault, "p1", presets, customs))
	assert.Nil(t, Resolve(ModeTemplate, "", presets, customs))
	assert.Nil(t, Resolve(ModeTemplate, "missing", presets, customs))

	got := Resolve(ModeTemplate, "p1", presets, customs)
	require.NotNil(t, got)
	assert.Equal(t, "Preset", got.Name)

	got = Resolve(ModeTemplate, "c1", presets, customs)
	require.NotNil(t, got)
	assert.True(t, got.Custom)

	got = Resolve(ModeTemplate, "shared", presets, customs)
	require.NotNil(t, got)
	assert.Equal(t, "Preset wins", got.Name)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeDefault, m)

	m, err = ParseMode(" Template ")
	require.NoError(t, err)
	assert.Equal(t, ModeTemplate, m)

	_, err = ParseMode("fancy")
	assert.True(t, httperr.IsBusiness(err, "invalid_template_mode"))
}

func TestPresets(t *testing.T) {
	list := Presets()
	require.NotEmpty(t, list)
	for _, p := range list {
		assert.False(t, p.Custom)
		assert.NoError(t, Validate(p.Name, p.Fields))
	}
	assert.True(t, IsPreset("preset-grow"))
	assert.False(t, IsPreset("nope"))
}

func TestParsePresetsRejectsDuplicates(t *testing.T) {
	doc := []byte(`
templates:
  - id: a
    name: One
    fields: [x]
  - id: a
    name: Two
    fields: [y]
`)
	_, err := ParsePresets(doc)
	assert.Error(t, err)

	_, err = ParsePresets([]byte("templates:\n  - id: b\n    name: Empty\n    fields: ['  ']\n"))
	assert.Error(t, err)
}
