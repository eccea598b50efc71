package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/question-authoring-service/internal/services"
	"github.com/SAP-F-2025/question-authoring-service/internal/utils"
)

type DraftHandler struct {
	BaseHandler
	draftService  services.DraftService
	exportService services.ExportService
}

func NewDraftHandler(draftService services.DraftService, exportService services.ExportService, logger utils.Logger) *DraftHandler {
	return &DraftHandler{
		BaseHandler:   NewBaseHandler(logger),
		draftService:  draftService,
		exportService: exportService,
	}
}

// CreateDraft opens a draft from the settings screen
// @Summary Create draft
// @Description Creates a question draft with the chosen type and settings
// @Tags drafts
// @Accept json
// @Produce json
// @Param draft body services.CreateDraftRequest true "Draft settings"
// @Success 201 {object} services.DraftResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /drafts [post]
func (h *DraftHandler) CreateDraft(c *gin.Context) {
	h.LogRequest(c, "Creating draft")

	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var req services.CreateDraftRequest
	if !h.bindJSON(c, &req) {
		return
	}

	draft, err := h.draftService.Create(h.ctx(c), &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	respondDraft(c, http.StatusCreated, draft)
}

// ListDrafts lists the caller's drafts
// @Summary List drafts
// @Tags drafts
// @Produce json
// @Param type query string false "Question type"
// @Param difficulty query string false "Difficulty"
// @Param status query string false "editing or published"
// @Param category query string false "Category path prefix"
// @Param search query string false "Title search"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset"
// @Success 200 {object} services.DraftListResponse
// @Router /drafts [get]
func (h *DraftHandler) ListDrafts(c *gin.Context) {
	h.LogRequest(c, "Listing drafts")

	userID, ok := h.userID(c)
	if !ok {
		return
	}

	drafts, err := h.draftService.List(h.ctx(c), userID, parseDraftFilters(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, drafts)
}

// GetDraft returns a draft with its content
// @Summary Get draft
// @Tags drafts
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} services.DraftResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /drafts/{id} [get]
func (h *DraftHandler) GetDraft(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	draft, err := h.draftService.Get(h.ctx(c), id, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	respondDraft(c, http.StatusOK, draft)
}

// UpdateDraft changes title and settings. Changing question_type resets
// the content.
// @Summary Update draft
// @Tags drafts
// @Accept json
// @Produce json
// @Param id path string true "Draft ID"
// @Param If-Match header string false "Expected draft version"
// @Param draft body services.UpdateDraftRequest true "Changed fields"
// @Success 200 {object} services.DraftResponse
// @Failure 409 {object} ErrorResponse
// @Router /drafts/{id} [put]
func (h *DraftHandler) UpdateDraft(c *gin.Context) {
	target, ok := parseTarget(c)
	if !ok {
		return
	}
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	var req services.UpdateDraftRequest
	if !h.bindJSON(c, &req) {
		return
	}

	h.LogRequest(c, "Updating draft", "draft_id", target.DraftID)
	draft, err := h.draftService.Update(h.ctx(c), target, &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	respondDraft(c, http.StatusOK, draft)
}

// DeleteDraft removes a draft
// @Summary Delete draft
// @Tags drafts
// @Param id path string true "Draft ID"
// @Success 204
// @Router /drafts/{id} [delete]
func (h *DraftHandler) DeleteDraft(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Deleting draft", "draft_id", id)
	if err := h.draftService.Delete(h.ctx(c), id, userID); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// PublishDraft validates and freezes a draft
// @Summary Publish draft
// @Tags drafts
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} services.DraftResponse
// @Failure 400 {object} ErrorResponse "Draft incomplete"
// @Failure 409 {object} ErrorResponse
// @Router /drafts/{id}/publish [post]
func (h *DraftHandler) PublishDraft(c *gin.Context) {
	target, ok := parseTarget(c)
	if !ok {
		return
	}
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Publishing draft", "draft_id", target.DraftID)
	draft, err := h.draftService.Publish(h.ctx(c), target, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	respondDraft(c, http.StatusOK, draft)
}

// PreviewDraft renders the read-only preview
// @Summary Preview draft
// @Tags drafts
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} services.PreviewResponse
// @Router /drafts/{id}/preview [get]
func (h *DraftHandler) PreviewDraft(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	preview, err := h.draftService.Preview(h.ctx(c), id, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, preview)
}

func (h *DraftHandler) GetDraftStats(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	stats, err := h.draftService.Stats(h.ctx(c), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ExportDraft downloads one draft as xlsx or csv
// @Summary Export draft
// @Tags export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce text/csv
// @Param id path string true "Draft ID"
// @Param format query string false "xlsx or csv" default(xlsx)
// @Router /drafts/{id}/export [get]
func (h *DraftHandler) ExportDraft(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	result, err := h.exportService.ExportDraft(h.ctx(c), id, c.DefaultQuery("format", services.ExportFormatXLSX), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	sendFile(c, result)
}

// ExportDrafts downloads every matching draft of the caller.
func (h *DraftHandler) ExportDrafts(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	result, err := h.exportService.ExportDrafts(h.ctx(c), userID, parseDraftFilters(c), c.DefaultQuery("format", services.ExportFormatXLSX))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	sendFile(c, result)
}

func sendFile(c *gin.Context, result *services.ExportResult) {
	c.Header("Content-Disposition", `attachment; filename="`+result.FileName+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Data)
}
