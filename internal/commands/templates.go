package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/luminacoach/lumina/internal/domain/template"
	"github.com/luminacoach/lumina/internal/notestemplate"
)

func newTemplatesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List note templates and choose the one new notes use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadTemplates(cmd, app); err != nil {
				return err
			}

			st := app.Templates
			printf(cmd, "%s %s\n", labelStyle.Render("Mode:"), st.Mode())
			if active := st.GetActiveTemplate(); active != nil {
				printf(cmd, "%s %s\n", labelStyle.Render("Active:"), active.Name)
			}

			rows := [][]string{}
			for _, t := range append(st.Presets(), st.Customs()...) {
				kind := "preset"
				if t.Custom {
					kind = "custom"
				}
				mark := ""
				if t.ID == st.SelectedID() {
					mark = okStyle.Render("●")
				}
				rows = append(rows, []string{mark, t.ID, t.Name, kind, strings.Join(t.Fields, ", ")})
			}
			printf(cmd, "%s\n", renderTable([]string{"", "ID", "Name", "Kind", "Fields"}, rows))
			return nil
		},
	}

	cmd.AddCommand(
		newSaveTemplateCmd(app),
		newDeleteTemplateCmd(app),
		newUseTemplateCmd(app),
		newTemplateModeCmd(app),
	)
	return cmd
}

func newSaveTemplateCmd(app *App) *cobra.Command {
	var (
		id, name string
		fields   []string
	)

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Create a custom template, or replace one with --id",
		Example: `  lumina templates save --name "Check-in" --field Wins --field Blockers
  lumina templates save --id 7f9c... --name "Check-in" --field Wins`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadTemplates(cmd, app); err != nil {
				return err
			}

			t, err := app.Templates.SaveCustomTemplate(cmd.Context(), id, name, fields)
			if err != nil {
				return templateError(err)
			}
			printf(cmd, "%s Saved %s (%s).\n", okStyle.Render("✓"), t.Name, mutedStyle.Render(t.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "custom template to replace")
	cmd.Flags().StringVar(&name, "name", "", "template name")
	cmd.Flags().StringArrayVar(&fields, "field", nil, "field label, in order (repeatable)")
	return cmd
}

func newDeleteTemplateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a custom template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadTemplates(cmd, app); err != nil {
				return err
			}
			if err := app.Templates.DeleteCustomTemplate(cmd.Context(), args[0]); err != nil {
				return templateError(err)
			}
			printf(cmd, "Template deleted.\n")
			return nil
		},
	}
}

func newUseTemplateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "use <id>",
		Short: "Write new notes with this template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadTemplates(cmd, app); err != nil {
				return err
			}
			if err := app.Templates.Select(cmd.Context(), args[0]); err != nil {
				return templateError(err)
			}
			if active := app.Templates.GetActiveTemplate(); active != nil {
				printf(cmd, "New notes will use %s.\n", active.Name)
			}
			return nil
		},
	}
}

func newTemplateModeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:       "mode <default|template>",
		Short:     "Switch between freeform and template notes",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(template.ModeDefault), string(template.ModeTemplate)},
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := template.ParseMode(args[0])
			if err != nil {
				return errors.New(`mode must be "default" or "template"`)
			}
			if err := loadTemplates(cmd, app); err != nil {
				return err
			}
			if err := app.Templates.SetMode(cmd.Context(), mode); err != nil {
				return templateError(err)
			}
			printf(cmd, "Note mode is %s.\n", app.Templates.Mode())
			return nil
		},
	}
}

func loadTemplates(cmd *cobra.Command, app *App) error {
	if err := requireAuth(app); err != nil {
		return err
	}
	if err := app.Templates.Load(cmd.Context()); err != nil {
		return explain(err)
	}
	return nil
}

func templateError(err error) error {
	switch {
	case errors.Is(err, notestemplate.ErrInvalidTemplate),
		errors.Is(err, notestemplate.ErrPresetReadOnly),
		errors.Is(err, notestemplate.ErrUnknownTemplate):
		return err
	}
	return explain(err)
}
