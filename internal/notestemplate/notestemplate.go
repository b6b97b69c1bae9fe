// Package notestemplate is the client's view of note templates: presets,
// the provider's custom templates and which one, if any, new notes use.
//
// Mutations call the API first and change local state only on success.
// There is no merge with concurrent edits elsewhere; the last write wins.
package notestemplate

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/luminacoach/lumina/internal/apiclient"
	"github.com/luminacoach/lumina/internal/domain/template"
)

var (
	// ErrInvalidTemplate means nothing was saved: the name or every field
	// label was blank.
	ErrInvalidTemplate = errors.New("template needs a name and at least one field")
	ErrPresetReadOnly  = errors.New("preset templates cannot be changed")
	ErrUnknownTemplate = errors.New("no template with that id")
)

type API interface {
	TemplatePresets(ctx context.Context) ([]apiclient.Template, error)
	CustomTemplates(ctx context.Context) ([]apiclient.Template, error)
	CreateCustomTemplate(ctx context.Context, name string, fields []string) (apiclient.Template, error)
	UpdateCustomTemplate(ctx context.Context, id, name string, fields []string) (apiclient.Template, error)
	DeleteCustomTemplate(ctx context.Context, id string) error
	NoteSettings(ctx context.Context) (apiclient.NoteSettings, error)
	UpdateNoteSettings(ctx context.Context, s apiclient.NoteSettings) (apiclient.NoteSettings, error)
}

type State struct {
	api API

	mu         sync.RWMutex
	mode       template.Mode
	selectedID string
	presets    []template.Template
	customs    []template.Template
}

func New(api API) *State {
	return &State{api: api, mode: template.ModeDefault}
}

// Load fetches presets, custom templates and the saved selection.
func (s *State) Load(ctx context.Context) error {
	presets, err := s.api.TemplatePresets(ctx)
	if err != nil {
		return fmt.Errorf("load presets: %w", err)
	}
	customs, err := s.api.CustomTemplates(ctx)
	if err != nil {
		return fmt.Errorf("load custom templates: %w", err)
	}
	settings, err := s.api.NoteSettings(ctx)
	if err != nil {
		return fmt.Errorf("load note settings: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.presets = presets
	s.customs = customs
	s.mode = settings.TemplateMode
	if s.mode == "" {
		s.mode = template.ModeDefault
	}
	s.selectedID = settings.SelectedTemplateID
	return nil
}

func (s *State) Mode() template.Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

func (s *State) SelectedID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedID
}

func (s *State) Presets() []template.Template {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]template.Template(nil), s.presets...)
}

func (s *State) Customs() []template.Template {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]template.Template(nil), s.customs...)
}

// GetActiveTemplate is nil in default mode or without a selection;
// otherwise the preset with the selected id, else the custom one, else nil.
func (s *State) GetActiveTemplate() *template.Template {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return template.Resolve(s.mode, s.selectedID, s.presets, s.customs)
}

// ======================================================
// CUSTOM TEMPLATES
// ======================================================

// SaveCustomTemplate creates the template when id is empty and replaces the
// one with that id otherwise. Invalid input returns ErrInvalidTemplate
// without calling the API.
func (s *State) SaveCustomTemplate(ctx context.Context, id, name string, fields []string) (*template.Template, error) {
	if err := template.Validate(name, fields); err != nil {
		return nil, ErrInvalidTemplate
	}
	name, fields = template.Normalize(name, fields)

	if id != "" && template.IsPreset(id) {
		return nil, ErrPresetReadOnly
	}

	if id == "" {
		created, err := s.api.CreateCustomTemplate(ctx, name, fields)
		if err != nil {
			return nil, fmt.Errorf("create template: %w", err)
		}
		created.Custom = true

		s.mu.Lock()
		s.customs = append(s.customs, created)
		s.mu.Unlock()
		return &created, nil
	}

	updated, err := s.api.UpdateCustomTemplate(ctx, id, name, fields)
	if err != nil {
		return nil, fmt.Errorf("update template: %w", err)
	}
	updated.Custom = true

	s.mu.Lock()
	defer s.mu.Unlock()
	replaced := false
	for i := range s.customs {
		if s.customs[i].ID == id {
			s.customs[i] = updated
			replaced = true
		}
	}
	if !replaced {
		s.customs = append(s.customs, updated)
	}
	return &updated, nil
}

// DeleteCustomTemplate removes the template and clears the selection when
// it pointed at it.
func (s *State) DeleteCustomTemplate(ctx context.Context, id string) error {
	if template.IsPreset(id) {
		return ErrPresetReadOnly
	}
	if err := s.api.DeleteCustomTemplate(ctx, id); err != nil {
		return fmt.Errorf("delete template: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.customs[:0]
	for _, t := range s.customs {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.customs = kept
	if s.selectedID == id {
		s.selectedID = ""
		s.mode = template.ModeDefault
	}
	return nil
}

// ======================================================
// SELECTION
// ======================================================

func (s *State) SetMode(ctx context.Context, mode template.Mode) error {
	return s.saveSettings(ctx, mode, s.SelectedID())
}

// Select switches to template mode with id selected. The id must be a
// loaded preset or custom template.
func (s *State) Select(ctx context.Context, id string) error {
	s.mu.RLock()
	known := template.Find(s.presets, id) != nil || template.Find(s.customs, id) != nil
	s.mu.RUnlock()
	if !known {
		return ErrUnknownTemplate
	}
	return s.saveSettings(ctx, template.ModeTemplate, id)
}

func (s *State) saveSettings(ctx context.Context, mode template.Mode, selectedID string) error {
	saved, err := s.api.UpdateNoteSettings(ctx, apiclient.NoteSettings{TemplateMode: mode, SelectedTemplateID: selectedID})
	if err != nil {
		return fmt.Errorf("save note settings: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = saved.TemplateMode
	s.selectedID = saved.SelectedTemplateID
	return nil
}
