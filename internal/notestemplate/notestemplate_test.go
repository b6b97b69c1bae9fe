package notestemplate

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luminacoach/lumina/internal/apiclient"
	"github.com/luminacoach/lumina/internal/domain/template"
)

// fakeAPI keeps server state in memory.
type fakeAPI struct {
	customs  []apiclient.Template
	settings apiclient.NoteSettings
	calls    int
	nextID   int
}

func (f *fakeAPI) TemplatePresets(context.Context) ([]apiclient.Template, error) {
	return template.Presets(), nil
}

func (f *fakeAPI) CustomTemplates(context.Context) ([]apiclient.Template, error) {
	return append([]apiclient.Template(nil), f.customs...), nil
}

func (f *fakeAPI) CreateCustomTemplate(_ context.Context, name string, fields []string) (apiclient.Template, error) {
	f.calls++
	f.nextID++
	t := apiclient.Template{ID: fmt.Sprintf("custom-%d", f.nextID), Name: name, Fields: fields, Custom: true}
	f.customs = append(f.customs, t)
	return t, nil
}

func (f *fakeAPI) UpdateCustomTemplate(_ context.Context, id, name string, fields []string) (apiclient.Template, error) {
	f.calls++
	return apiclient.Template{ID: id, Name: name, Fields: fields, Custom: true}, nil
}

func (f *fakeAPI) DeleteCustomTemplate(context.Context, string) error {
	f.calls++
	return nil
}

func (f *fakeAPI) NoteSettings(context.Context) (apiclient.NoteSettings, error) {
	return f.settings, nil
}

func (f *fakeAPI) UpdateNoteSettings(_ context.Context, s apiclient.NoteSettings) (apiclient.NoteSettings, error) {
	f.calls++
	f.settings = s
	return s, nil
}

func TestInvalidTemplatesAreNotSaved(t *testing.T) {
	api := &fakeAPI{}
	s := New(api)
	ctx := context.Background()

	tests := []struct {
		name   string
		tName  string
		fields []string
	}{
		{"blank name", "  ", []string{"Goal"}},
		{"no fields", "Intake", nil},
		{"blank fields", "Intake", []string{" ", ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.SaveCustomTemplate(ctx, "", tt.tName, tt.fields)
			assert.ErrorIs(t, err, ErrInvalidTemplate)
		})
	}

	assert.Zero(t, api.calls)
	assert.Empty(t, s.Customs())
}

func TestActiveTemplateResolution(t *testing.T) {
	api := &fakeAPI{customs: []apiclient.Template{{ID: "c1", Name: "Mine", Fields: []string{"A"}, Custom: true}}}
	s := New(api)
	ctx := context.Background()
	require.NoError(t, s.Load(ctx))

	assert.Nil(t, s.GetActiveTemplate(), "default mode")

	require.NoError(t, s.SetMode(ctx, template.ModeTemplate))
	assert.Nil(t, s.GetActiveTemplate(), "no selection")

	require.NoError(t, s.Select(ctx, "preset-grow"))
	require.NotNil(t, s.GetActiveTemplate())
	assert.Equal(t, "preset-grow", s.GetActiveTemplate().ID)

	require.NoError(t, s.Select(ctx, "c1"))
	assert.Equal(t, "Mine", s.GetActiveTemplate().Name)

	assert.ErrorIs(t, s.Select(ctx, "missing"), ErrUnknownTemplate)

	require.NoError(t, s.SetMode(ctx, template.ModeDefault))
	assert.Nil(t, s.GetActiveTemplate())
	assert.Equal(t, "c1", s.SelectedID())
}

func TestSaveUpdateDelete(t *testing.T) {
	api := &fakeAPI{}
	s := New(api)
	ctx := context.Background()
	require.NoError(t, s.Load(ctx))

	created, err := s.SaveCustomTemplate(ctx, "", " Intake ", []string{"Goal", " ", "Blockers"})
	require.NoError(t, err)
	assert.Equal(t, "Intake", created.Name)
	assert.Equal(t, []string{"Goal", "Blockers"}, created.Fields)

	require.NoError(t, s.Select(ctx, created.ID))

	_, err = s.SaveCustomTemplate(ctx, created.ID, "Intake v2", []string{"Goal"})
	require.NoError(t, err)
	require.Len(t, s.Customs(), 1)
	assert.Equal(t, "Intake v2", s.GetActiveTemplate().Name)

	_, err = s.SaveCustomTemplate(ctx, "preset-soap", "Mine", []string{"A"})
	assert.ErrorIs(t, err, ErrPresetReadOnly)
	assert.ErrorIs(t, s.DeleteCustomTemplate(ctx, "preset-soap"), ErrPresetReadOnly)

	require.NoError(t, s.DeleteCustomTemplate(ctx, created.ID))
	assert.Empty(t, s.Customs())
	assert.Empty(t, s.SelectedID())
	assert.Nil(t, s.GetActiveTemplate())
}
