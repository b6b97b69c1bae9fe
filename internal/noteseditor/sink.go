package noteseditor

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/luminacoach/lumina/internal/apiclient"
	"github.com/luminacoach/lumina/internal/domain/note"
)

// ======================================================
// LOCAL
// ======================================================

// LocalSink keeps notes in memory only; the editor's change callback is the
// sole way they leave it.
type LocalSink struct {
	Now      func() time.Time
	Location *time.Location
}

func (s LocalSink) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s LocalSink) Create(_ context.Context, sessionID string, shape note.Shape, _ note.Input, content string) (apiclient.Note, error) {
	now := s.now()
	n := apiclient.Note{
		ID:           uuid.NewString(),
		SessionID:    sessionID,
		Content:      content,
		IsTemplate:   shape.IsTemplate,
		TemplateID:   shape.TemplateID,
		TemplateName: shape.TemplateName,
		Fields:       shape.Fields,
		CreatedAt:    now,
	}
	return s.stamp(n, now), nil
}

func (s LocalSink) Update(_ context.Context, _ string, existing apiclient.Note, _ note.Input, content string) (apiclient.Note, error) {
	existing.Content = content
	return s.stamp(existing, s.now()), nil
}

func (LocalSink) Delete(context.Context, string, string) error { return nil }

func (s LocalSink) stamp(n apiclient.Note, at time.Time) apiclient.Note {
	n.UpdatedAt = at
	n.Timestamp = note.Timestamp(at, s.Location)
	n.Entries = nil
	if n.IsTemplate {
		if entries, err := note.Render(n.Fields, n.Content); err == nil {
			n.Entries = entries
		}
	}
	return n
}

// ======================================================
// API
// ======================================================

type NotesAPI interface {
	CreateNote(ctx context.Context, sessionID string, in apiclient.NoteInput) (apiclient.Note, error)
	UpdateNote(ctx context.Context, sessionID, noteID string, in apiclient.NoteInput) (apiclient.Note, error)
	DeleteNote(ctx context.Context, sessionID, noteID string) error
}

// APISink persists every change. The server composes the stored content
// itself from the same input.
type APISink struct {
	API NotesAPI
}

func (s APISink) Create(ctx context.Context, sessionID string, shape note.Shape, in note.Input, _ string) (apiclient.Note, error) {
	return s.API.CreateNote(ctx, sessionID, apiclient.NoteInput{
		IsTemplate: shape.IsTemplate,
		TemplateID: shape.TemplateID,
		Text:       in.Text,
		Values:     in.Values,
	})
}

func (s APISink) Update(ctx context.Context, sessionID string, existing apiclient.Note, in note.Input, _ string) (apiclient.Note, error) {
	return s.API.UpdateNote(ctx, sessionID, existing.ID, apiclient.NoteInput{Text: in.Text, Values: in.Values})
}

func (s APISink) Delete(ctx context.Context, sessionID, noteID string) error {
	return s.API.DeleteNote(ctx, sessionID, noteID)
}
