// Package noteseditor holds the notes of one session and the rules for
// writing them. The same editor runs with a local sink, where changes only
// reach the change callback, or an API sink that persists each change.
package noteseditor

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/luminacoach/lumina/internal/apiclient"
	"github.com/luminacoach/lumina/internal/domain/note"
	"github.com/luminacoach/lumina/internal/domain/template"
	"github.com/luminacoach/lumina/internal/httperr"
)

type Mode string

const (
	ModeFree     Mode = "free"
	ModeTemplate Mode = "template"
)

var (
	// ErrTemplateNotConfigured asks the caller to send the user to the
	// note settings; the mode is left unchanged.
	ErrTemplateNotConfigured = errors.New("no note template is selected")
	ErrEmptyNote             = errors.New("note is empty")
	ErrNoteNotFound          = errors.New("note not found")
)

// Templates supplies the active template, nil meaning none.
type Templates interface {
	GetActiveTemplate() *template.Template
}

// Sink stores note changes. content is already composed for the shape.
type Sink interface {
	Create(ctx context.Context, sessionID string, shape note.Shape, in note.Input, content string) (apiclient.Note, error)
	Update(ctx context.Context, sessionID string, existing apiclient.Note, in note.Input, content string) (apiclient.Note, error)
	Delete(ctx context.Context, sessionID, noteID string) error
}

type Editor struct {
	sessionID string
	templates Templates
	sink      Sink
	onChange  func([]apiclient.Note)

	mu    sync.Mutex
	mode  Mode
	notes []apiclient.Note
}

// New starts in free mode with notes shown newest first. onChange may be
// nil.
func New(sessionID string, notes []apiclient.Note, templates Templates, sink Sink, onChange func([]apiclient.Note)) *Editor {
	list := append([]apiclient.Note(nil), notes...)
	note.NewestFirst(list,
		func(n apiclient.Note) time.Time { return n.CreatedAt },
		func(n apiclient.Note) string { return n.ID },
	)

	return &Editor{
		sessionID: sessionID,
		templates: templates,
		sink:      sink,
		onChange:  onChange,
		mode:      ModeFree,
		notes:     list,
	}
}

func (e *Editor) Mode() Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

func (e *Editor) Notes() []apiclient.Note {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]apiclient.Note(nil), e.notes...)
}

// SelectMode switches between free and template writing. Template mode
// needs an active template.
func (e *Editor) SelectMode(m Mode) error {
	if m == ModeTemplate && e.templates.GetActiveTemplate() == nil {
		return ErrTemplateNotConfigured
	}

	e.mu.Lock()
	e.mode = m
	e.mu.Unlock()
	return nil
}

// Save writes a new note in the current mode and puts it first.
func (e *Editor) Save(ctx context.Context, in note.Input) (apiclient.Note, error) {
	shape := note.Freeform
	if e.Mode() == ModeTemplate {
		active := e.templates.GetActiveTemplate()
		if active == nil {
			return apiclient.Note{}, ErrTemplateNotConfigured
		}
		shape = note.ShapeOf(active)
	}

	content, err := compose(shape, in)
	if err != nil {
		return apiclient.Note{}, err
	}

	n, err := e.sink.Create(ctx, e.sessionID, shape, in, content)
	if err != nil {
		return apiclient.Note{}, err
	}

	e.mu.Lock()
	e.notes = append([]apiclient.Note{n}, e.notes...)
	list := append([]apiclient.Note(nil), e.notes...)
	e.mu.Unlock()

	e.changed(list)
	return n, nil
}

// Edit rewrites a note using that note's own shape, whatever mode the
// editor is in.
func (e *Editor) Edit(ctx context.Context, id string, in note.Input) (apiclient.Note, error) {
	existing, ok := e.find(id)
	if !ok {
		return apiclient.Note{}, ErrNoteNotFound
	}

	content, err := compose(shapeOf(existing), in)
	if err != nil {
		return apiclient.Note{}, err
	}

	n, err := e.sink.Update(ctx, e.sessionID, existing, in, content)
	if err != nil {
		return apiclient.Note{}, err
	}

	e.mu.Lock()
	for i := range e.notes {
		if e.notes[i].ID == id {
			e.notes[i] = n
		}
	}
	list := append([]apiclient.Note(nil), e.notes...)
	e.mu.Unlock()

	e.changed(list)
	return n, nil
}

func (e *Editor) Delete(ctx context.Context, id string) error {
	if _, ok := e.find(id); !ok {
		return ErrNoteNotFound
	}
	if err := e.sink.Delete(ctx, e.sessionID, id); err != nil {
		return err
	}

	e.mu.Lock()
	kept := make([]apiclient.Note, 0, len(e.notes))
	for _, n := range e.notes {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	e.notes = kept
	list := append([]apiclient.Note(nil), kept...)
	e.mu.Unlock()

	e.changed(list)
	return nil
}

func (e *Editor) find(id string) (apiclient.Note, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, n := range e.notes {
		if n.ID == id {
			return n, true
		}
	}
	return apiclient.Note{}, false
}

func (e *Editor) changed(list []apiclient.Note) {
	if e.onChange != nil {
		e.onChange(list)
	}
}

// shapeOf recovers a note's shape. Template notes without a stored field
// list fall back to their content keys.
func shapeOf(n apiclient.Note) note.Shape {
	if !n.IsTemplate {
		return note.Freeform
	}

	fields := append([]string(nil), n.Fields...)
	if len(fields) == 0 {
		if values, err := note.Decode(n.Content); err == nil {
			for k := range values {
				fields = append(fields, k)
			}
			sort.Strings(fields)
		}
	}
	return note.Shape{IsTemplate: true, TemplateID: n.TemplateID, TemplateName: n.TemplateName, Fields: fields}
}

func compose(shape note.Shape, in note.Input) (string, error) {
	content, err := note.Compose(shape, in)
	if httperr.CodeOf(err) == "empty_note" {
		return "", ErrEmptyNote
	}
	return content, err
}
