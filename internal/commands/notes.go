package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/luminacoach/lumina/internal/apiclient"
	"github.com/luminacoach/lumina/internal/domain/note"
	"github.com/luminacoach/lumina/internal/noteseditor"
)

func newNotesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes <session-id>",
		Short: "Show and write the notes of a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(app); err != nil {
				return err
			}

			list, err := app.API.Notes(cmd.Context(), args[0])
			if err != nil {
				var se *apiclient.StatusError
				if errors.As(err, &se) {
					return explain(err)
				}
				degrade(app, "notes", err)
			}

			ed := noteseditor.New(args[0], list, app.Templates, noteseditor.APISink{API: app.API}, nil)
			printNotes(cmd, ed.Notes())
			return nil
		},
	}

	cmd.AddCommand(newAddNoteCmd(app), newEditNoteCmd(app), newDeleteNoteCmd(app))
	return cmd
}

// noteFlags are shared by add and edit.
type noteFlags struct {
	text   string
	fields []string
}

func (f *noteFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.text, "text", "", "freeform note text")
	cmd.Flags().StringArrayVar(&f.fields, "field", nil, `template field value as "Label=value" (repeatable)`)
}

func (f *noteFlags) input() (note.Input, error) {
	in := note.Input{Text: f.text}
	if len(f.fields) == 0 {
		return in, nil
	}
	in.Values = make(map[string]string, len(f.fields))
	for _, kv := range f.fields {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return note.Input{}, fmt.Errorf("--field %q: want Label=value", kv)
		}
		in.Values[strings.TrimSpace(key)] = value
	}
	return in, nil
}

func newAddNoteCmd(app *App) *cobra.Command {
	var (
		flags       noteFlags
		useTemplate bool
	)

	cmd := &cobra.Command{
		Use:   "add <session-id>",
		Short: "Write a new note",
		Example: `  lumina notes add 42 --text "Talked through the Q3 plan"
  lumina notes add 42 --template --field "Goals=Ship v2" --field "Next Steps=Draft memo"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(app); err != nil {
				return err
			}
			ctx := cmd.Context()

			in, err := flags.input()
			if err != nil {
				return err
			}

			ed, err := openEditor(cmd, app, args[0], useTemplate)
			if err != nil {
				return err
			}
			if useTemplate {
				if err := ed.SelectMode(noteseditor.ModeTemplate); err != nil {
					return noteError(err)
				}
			}

			n, err := ed.Save(ctx, in)
			if err != nil {
				return noteError(err)
			}
			printf(cmd, "%s Note saved.\n%s\n", okStyle.Render("✓"), renderNote(n))
			return nil
		},
	}

	flags.bind(cmd)
	cmd.Flags().BoolVar(&useTemplate, "template", false, "write with the active template")
	return cmd
}

func newEditNoteCmd(app *App) *cobra.Command {
	var flags noteFlags

	cmd := &cobra.Command{
		Use:   "edit <session-id> <note-id>",
		Short: "Rewrite a note in its own format",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(app); err != nil {
				return err
			}

			in, err := flags.input()
			if err != nil {
				return err
			}

			ed, err := openEditor(cmd, app, args[0], false)
			if err != nil {
				return err
			}
			n, err := ed.Edit(cmd.Context(), args[1], in)
			if err != nil {
				return noteError(err)
			}
			printf(cmd, "%s Note updated.\n%s\n", okStyle.Render("✓"), renderNote(n))
			return nil
		},
	}

	flags.bind(cmd)
	return cmd
}

func newDeleteNoteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <session-id> <note-id>",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(app); err != nil {
				return err
			}

			ed, err := openEditor(cmd, app, args[0], false)
			if err != nil {
				return err
			}
			if err := ed.Delete(cmd.Context(), args[1]); err != nil {
				return noteError(err)
			}
			printf(cmd, "Note deleted.\n")
			return nil
		},
	}
}

// openEditor loads the session's notes, and the templates when they are
// needed, into an API-backed editor.
func openEditor(cmd *cobra.Command, app *App, sessionID string, withTemplates bool) (*noteseditor.Editor, error) {
	ctx := cmd.Context()

	if withTemplates {
		if err := app.Templates.Load(ctx); err != nil {
			return nil, explain(err)
		}
	}

	list, err := app.API.Notes(ctx, sessionID)
	if err != nil {
		return nil, explain(err)
	}
	return noteseditor.New(sessionID, list, app.Templates, noteseditor.APISink{API: app.API}, nil), nil
}

func noteError(err error) error {
	switch {
	case errors.Is(err, noteseditor.ErrTemplateNotConfigured):
		return errors.New(`no note template is selected; pick one with "lumina templates use <id>"`)
	case errors.Is(err, noteseditor.ErrEmptyNote):
		return errors.New("note is empty; pass --text or at least one --field")
	case errors.Is(err, noteseditor.ErrNoteNotFound):
		return errors.New("no note with that id in this session")
	}
	return explain(err)
}

func printNotes(cmd *cobra.Command, list []apiclient.Note) {
	if len(list) == 0 {
		printf(cmd, "%s\n%s\n",
			titleStyle.Render("Add Your First Note"),
			mutedStyle.Render(`Nothing written for this session yet. Try "lumina notes add <session-id> --text ...".`))
		return
	}
	for _, n := range list {
		printf(cmd, "%s\n", renderNote(n))
	}
}
