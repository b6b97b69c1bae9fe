package note

import (
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/luminacoach/lumina/internal/domain/template"
	"github.com/luminacoach/lumina/internal/httperr"
)

// EmptyPlaceholder is shown for template fields left blank.
const EmptyPlaceholder = "No entry"

// TimestampLayout is the human readable form of a note's time.
const TimestampLayout = "Jan 2, 2006 3:04 PM"

// ===============================
// Shape
// ===============================

// Shape is the structure a note's content follows. It is taken from the
// active template when a note is created and from the note itself when it
// is edited, so editing never reinterprets an old note.
type Shape struct {
	IsTemplate   bool
	TemplateID   string
	TemplateName string
	Fields       []string
}

var Freeform = Shape{}

func ShapeOf(t *template.Template) Shape {
	if t == nil {
		return Freeform
	}
	return Shape{
		IsTemplate:   true,
		TemplateID:   t.ID,
		TemplateName: t.Name,
		Fields:       append([]string(nil), t.Fields...),
	}
}

// Input is what the user typed: Text for freeform notes, Values keyed by
// field label for template notes.
type Input struct {
	Text   string            `json:"text"`
	Values map[string]string `json:"values"`
}

// ===============================
// Compose
// ===============================

// Compose serialises in according to shape. Freeform content is the trimmed
// text; template content is a JSON object holding every field of the shape.
// A note with nothing in it is rejected with empty_note.
func Compose(shape Shape, in Input) (string, error) {
	if !shape.IsTemplate {
		text := strings.TrimSpace(in.Text)
		if text == "" {
			return "", httperr.ErrBusiness("empty_note")
		}
		return text, nil
	}

	if len(shape.Fields) == 0 {
		return "", httperr.ErrBusiness("template_fields_required")
	}

	values := make(map[string]string, len(shape.Fields))
	filled := false
	for _, f := range shape.Fields {
		v := strings.TrimSpace(in.Values[f])
		if v != "" {
			filled = true
		}
		values[f] = v
	}
	if !filled {
		return "", httperr.ErrBusiness("empty_note")
	}

	b, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Decode parses template note content.
func Decode(content string) (map[string]string, error) {
	values := map[string]string{}
	if err := json.Unmarshal([]byte(content), &values); err != nil {
		return nil, httperr.ErrBusiness("invalid_note_content")
	}
	return values, nil
}

// ===============================
// Render
// ===============================

type Entry struct {
	Field string `json:"field"`
	Value string `json:"value"`
	Empty bool   `json:"empty"`
}

// Render lists template note values in field order, substituting the
// placeholder for blanks. Keys absent from fields are appended in sorted
// order so that nothing stored is hidden.
func Render(fields []string, content string) ([]Entry, error) {
	values, err := Decode(content)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(values))
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		seen[f] = true
		entries = append(entries, entry(f, values[f]))
	}

	var extra []string
	for k := range values {
		if !seen[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	for _, k := range extra {
		entries = append(entries, entry(k, values[k]))
	}
	return entries, nil
}

func entry(field, value string) Entry {
	if strings.TrimSpace(value) == "" {
		return Entry{Field: field, Value: EmptyPlaceholder, Empty: true}
	}
	return Entry{Field: field, Value: value}
}

// ===============================
// Ordering / display
// ===============================

func Timestamp(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(TimestampLayout)
}

// NewestFirst sorts by created time descending, breaking ties by id so the
// order is stable.
func NewestFirst[T any](list []T, created func(T) time.Time, id func(T) string) {
	sort.SliceStable(list, func(i, j int) bool {
		ci, cj := created(list[i]), created(list[j])
		if !ci.Equal(cj) {
			return ci.After(cj)
		}
		return id(list[i]) > id(list[j])
	})
}
