package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/question-authoring-service/internal/services"
	"github.com/SAP-F-2025/question-authoring-service/internal/utils"
)

type CategoryHandler struct {
	BaseHandler
	categoryService services.CategoryService
}

func NewCategoryHandler(categoryService services.CategoryService, logger utils.Logger) *CategoryHandler {
	return &CategoryHandler{
		BaseHandler:     NewBaseHandler(logger),
		categoryService: categoryService,
	}
}

// GetCategories returns the taxonomy with nothing selected
// @Summary Category tree
// @Tags categories
// @Produce json
// @Success 200 {object} services.CategoryTreeResponse
// @Router /categories [get]
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, h.categoryService.Tree())
}

// GetDraftCategory returns the taxonomy with the draft's selection restored
// @Summary Draft category
// @Tags categories
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} services.CategoryTreeResponse
// @Router /drafts/{id}/category [get]
func (h *CategoryHandler) GetDraftCategory(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	tree, err := h.categoryService.DraftCategory(h.ctx(c), id, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tree)
}

func (h *CategoryHandler) SelectCategory(c *gin.Context) {
	var req services.SelectCategoryRequest
	h.update(c, &req, func(target services.DraftTarget, userID string) (*services.CategoryTreeResponse, error) {
		return h.categoryService.SelectPath(h.ctx(c), target, &req, userID)
	})
}

func (h *CategoryHandler) ToggleCategory(c *gin.Context) {
	var req services.ToggleCategoryRequest
	h.update(c, &req, func(target services.DraftTarget, userID string) (*services.CategoryTreeResponse, error) {
		return h.categoryService.Toggle(h.ctx(c), target, &req, userID)
	})
}

func (h *CategoryHandler) update(c *gin.Context, body interface{}, call func(services.DraftTarget, string) (*services.CategoryTreeResponse, error)) {
	target, ok := parseTarget(c)
	if !ok {
		return
	}
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	if !h.bindJSON(c, body) {
		return
	}

	h.LogRequest(c, "Updating draft category", "draft_id", target.DraftID)
	tree, err := call(target, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.Header("ETag", etag(tree.Version))
	c.JSON(http.StatusOK, tree)
}
