package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/luminacoach/lumina/internal/domain/note"
	"github.com/luminacoach/lumina/internal/httperr"
	ucNote "github.com/luminacoach/lumina/internal/usecase/note"
)

type NoteHandler struct {
	list   *ucNote.ListNotes
	create *ucNote.CreateNote
	update *ucNote.UpdateNote
	delete *ucNote.DeleteNote
}

func NewNoteHandler(
	list *ucNote.ListNotes,
	create *ucNote.CreateNote,
	update *ucNote.UpdateNote,
	delete *ucNote.DeleteNote,
) *NoteHandler {
	return &NoteHandler{
		list:   list,
		create: create,
		update: update,
		delete: delete,
	}
}

// CreateNoteRequest holds either Text (freeform) or Values keyed by field
// label (template). TemplateID is optional; the active template is used
// when it is empty.
type CreateNoteRequest struct {
	IsTemplate bool              `json:"isTemplate"`
	TemplateID string            `json:"templateId"`
	Text       string            `json:"text"`
	Values     map[string]string `json:"values"`
}

type UpdateNoteRequest struct {
	Text   string            `json:"text"`
	Values map[string]string `json:"values"`
}

func (h *NoteHandler) List(c *gin.Context) {
	notes, err := h.list.Execute(c.Request.Context(), providerIDFrom(c), c.Param("id"))
	if err != nil {
		httperr.FromError(c, err, "failed_to_list_notes")
		return
	}

	c.JSON(http.StatusOK, notes)
}

func (h *NoteHandler) Create(c *gin.Context) {
	var req CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	n, err := h.create.Execute(c.Request.Context(), ucNote.CreateNoteInput{
		ProviderID: providerIDFrom(c),
		SessionID:  c.Param("id"),
		IsTemplate: req.IsTemplate,
		TemplateID: req.TemplateID,
		Input:      domain.Input{Text: req.Text, Values: req.Values},
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_create_note")
		return
	}

	c.JSON(http.StatusCreated, n)
}

func (h *NoteHandler) Update(c *gin.Context) {
	var req UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	n, err := h.update.Execute(
		c.Request.Context(),
		providerIDFrom(c),
		c.Param("id"),
		c.Param("noteId"),
		domain.Input{Text: req.Text, Values: req.Values},
	)
	if err != nil {
		httperr.FromError(c, err, "failed_to_update_note")
		return
	}

	c.JSON(http.StatusOK, n)
}

func (h *NoteHandler) Delete(c *gin.Context) {
	err := h.delete.Execute(c.Request.Context(), providerIDFrom(c), c.Param("id"), c.Param("noteId"))
	if err != nil {
		httperr.FromError(c, err, "failed_to_delete_note")
		return
	}

	c.Status(http.StatusNoContent)
}
