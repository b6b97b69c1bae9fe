package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/luminacoach/lumina/internal/httperr"
	ucTemplate "github.com/luminacoach/lumina/internal/usecase/template"
)

// ======================================================
// HANDLER
// ======================================================

type TemplateHandler struct {
	list     *ucTemplate.ListTemplates
	save     *ucTemplate.SaveCustomTemplate
	delete   *ucTemplate.DeleteCustomTemplate
	settings *ucTemplate.GetSettings
	update   *ucTemplate.UpdateSettings
}

func NewTemplateHandler(
	list *ucTemplate.ListTemplates,
	save *ucTemplate.SaveCustomTemplate,
	delete *ucTemplate.DeleteCustomTemplate,
	settings *ucTemplate.GetSettings,
	update *ucTemplate.UpdateSettings,
) *TemplateHandler {
	return &TemplateHandler{
		list:     list,
		save:     save,
		delete:   delete,
		settings: settings,
		update:   update,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type TemplateRequest struct {
	Name   string   `json:"name"`
	Fields []string `json:"fields"`
}

type NoteSettingsRequest struct {
	TemplateMode       string `json:"templateMode" binding:"required"`
	SelectedTemplateID string `json:"selectedTemplateId"`
}

// ======================================================
// TEMPLATES
// ======================================================

func (h *TemplateHandler) Presets(c *gin.Context) {
	c.JSON(http.StatusOK, h.list.Presets())
}

func (h *TemplateHandler) ListCustom(c *gin.Context) {
	list, err := h.list.Custom(c.Request.Context(), providerIDFrom(c))
	if err != nil {
		httperr.FromError(c, err, "failed_to_list_templates")
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *TemplateHandler) CreateCustom(c *gin.Context) {
	h.saveCustom(c, "", http.StatusCreated)
}

func (h *TemplateHandler) UpdateCustom(c *gin.Context) {
	h.saveCustom(c, c.Param("id"), http.StatusOK)
}

func (h *TemplateHandler) saveCustom(c *gin.Context, id string, status int) {
	var req TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	t, err := h.save.Execute(c.Request.Context(), ucTemplate.SaveCustomTemplateInput{
		ProviderID: providerIDFrom(c),
		ID:         id,
		Name:       req.Name,
		Fields:     req.Fields,
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_save_template")
		return
	}

	c.JSON(status, t)
}

func (h *TemplateHandler) DeleteCustom(c *gin.Context) {
	if err := h.delete.Execute(c.Request.Context(), providerIDFrom(c), c.Param("id")); err != nil {
		httperr.FromError(c, err, "failed_to_delete_template")
		return
	}

	c.Status(http.StatusNoContent)
}

// Active returns the template new notes will use, or null in freeform mode.
func (h *TemplateHandler) Active(c *gin.Context) {
	t, err := h.settings.Active(c.Request.Context(), providerIDFrom(c))
	if err != nil {
		httperr.FromError(c, err, "failed_to_resolve_template")
		return
	}

	c.JSON(http.StatusOK, gin.H{"template": t})
}

// ======================================================
// SETTINGS
// ======================================================

func (h *TemplateHandler) GetSettings(c *gin.Context) {
	s, err := h.settings.Execute(c.Request.Context(), providerIDFrom(c))
	if err != nil {
		httperr.FromError(c, err, "failed_to_load_settings")
		return
	}

	c.JSON(http.StatusOK, s)
}

func (h *TemplateHandler) UpdateSettings(c *gin.Context) {
	var req NoteSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	s, err := h.update.Execute(c.Request.Context(), providerIDFrom(c), req.TemplateMode, req.SelectedTemplateID)
	if err != nil {
		httperr.FromError(c, err, "failed_to_update_settings")
		return
	}

	c.JSON(http.StatusOK, s)
}
