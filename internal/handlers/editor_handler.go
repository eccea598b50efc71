package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/question-authoring-service/internal/services"
	"github.com/SAP-F-2025/question-authoring-service/internal/utils"
)

// EditorHandler exposes the editor interactions. Every route accepts an
// optional item_id query parameter to address a child of a group draft
// and an optional If-Match version.
type EditorHandler struct {
	BaseHandler
	editorService services.EditorService
}

func NewEditorHandler(editorService services.EditorService, logger utils.Logger) *EditorHandler {
	return &EditorHandler{
		BaseHandler:   NewBaseHandler(logger),
		editorService: editorService,
	}
}

type editCall func(ctx context.Context, target services.DraftTarget, userID string) (*services.DraftResponse, error)

// edit binds body when non-nil, runs call and writes the updated draft.
func (h *EditorHandler) edit(c *gin.Context, message string, body interface{}, call editCall) {
	target, ok := parseTarget(c)
	if !ok {
		return
	}
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	if body != nil && !h.bindJSON(c, body) {
		return
	}

	h.LogRequest(c, message, "draft_id", target.DraftID, "item_id", target.ItemID)
	draft, err := call(h.ctx(c), target, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	respondDraft(c, http.StatusOK, draft)
}

// SetContent routes rich-text editor changes to stem, sentence or answer
// @Summary Set question text
// @Tags editor
// @Accept json
// @Produce json
// @Param id path string true "Draft ID"
// @Param item_id query string false "Group question ID"
// @Param body body services.SetTextRequest true "Editor content"
// @Success 200 {object} services.DraftResponse
// @Failure 422 {object} ErrorResponse
// @Router /drafts/{id}/content [put]
func (h *EditorHandler) SetContent(c *gin.Context) {
	var req services.SetTextRequest
	h.edit(c, "Setting draft text", &req, func(ctx context.Context, t services.DraftTarget, userID string) (*services.DraftResponse, error) {
		return h.editorService.SetText(ctx, t, &req, userID)
	})
}

func (h *EditorHandler) SetFocus(c *gin.Context) {
	var req services.FocusRequest
	h.edit(c, "Setting editor focus", &req, func(ctx context.Context, t services.DraftTarget, userID string) (*services.DraftResponse, error) {
		return h.editorService.SetFocus(ctx, t, &req, userID)
	})
}

// ===== FILL IN THE BLANK =====

// AddBlank turns the selected text into a blank
// @Summary Add blank
// @Tags editor
// @Accept json
// @Produce json
// @Param id path string true "Draft ID"
// @Param body body services.SelectionRequest true "Selected text and range"
// @Success 200 {object} services.DraftResponse
// @Failure 422 {object} ErrorResponse "Empty, duplicate or overlapping selection"
// @Router /drafts/{id}/blanks [post]
func (h *EditorHandler) AddBlank(c *gin.Context) {
	var req services.SelectionRequest
	h.edit(c, "Adding blank", &req, func(ctx context.Context, t services.DraftTarget, userID string) (*services.DraftResponse, error) {
		return h.editorService.AddBlank(ctx, t, &req, userID)
	})
}

func (h *EditorHandler) RemoveBlank(c *gin.Context) {
	blankID, err := strconv.ParseInt(c.Param("blank_id"), 10, 64)
	if err != nil || blankID <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid blank_id",
			Details: "blank_id must be a positive integer",
		})
		return
	}
	h.edit(c, "Removing blank", nil, func(ctx context.Context, t services.DraftTarget, userID string) (*services.DraftResponse, error) {
		return h.editorService.RemoveBlank(ctx, t, blankID, userID)
	})
}

// ===== ARRANGEMENT =====

func (h *EditorHandler) MixWords(c *gin.Context) {
	var req services.SelectionRequest
	h.edit(c, "Mixing words", &req, func(ctx context.Context, t services.DraftTarget, userID string) (*services.DraftResponse, error) {
		return h.editorService.Mix(ctx, t, &req, userID)
	})
}

func (h *EditorHandler) RemixWords(c *gin.Context) {
	h.edit(c, "Remixing words", nil, func(ctx context.Context, t services.DraftTarget, userID string) (*services.DraftResponse, error) {
		return h.editorService.Remix(ctx, t, userID)
	})
}

// ===== MULTIPLE CHOICE =====

func (h *EditorHandler) AddOption(c *gin.Context) {
	h.edit(c, "Adding option", nil, func(ctx context.Context, t services.DraftTarget, userID string) (*services.DraftResponse, error) {
		return h.editorService.AddOption(ctx, t, userID)
	})
}

func (h *EditorHandler) DeleteOption(c *gin.Context) {
	optionID := ParseStringIDParam(c, "option_id")
	if optionID == "" {
		return
	}
	h.edit(c, "Deleting option", nil, func(ctx context.Context, t services.DraftTarget, userID string) (*services.DraftResponse, error) {
		return h.editorService.DeleteOption(ctx, t, optionID, userID)
	})
}

func (h *EditorHandler) AddInput(c *gin.Context) {
	optionID := ParseStringIDParam(c, "option_id")
	if optionID == "" {
		return
	}
	// The body is optional; without it the input is appended.
	var req services.AddInputRequest
	var body interface{}
	if c.Request.ContentLength != 0 {
		body = &req
	}
	h.edit(c, "Adding option input", body, func(ctx context.Context, t services.DraftTarget, userID string) (*services.DraftResponse, error) {
		return h.editorService.AddInput(ctx, t, optionID, &req, userID)
	})
}

func (h *EditorHandler) SetInputText(c *gin.Context) {
	optionID := ParseStringIDParam(c, "option_id")
	if optionID == "" {
		return
	}
	inputID := ParseStringIDParam(c, "input_id")
	if inputID == "" {
		return
	}
	var req services.SetInputTextRequest
	h.edit(c, "Setting option input", &req, func(ctx context.Context, t services.DraftTarget, userID string) (*services.DraftResponse, error) {
		return h.editorService.SetInputText(ctx, t, optionID, inputID, &req, userID)
	})
}

func (h *EditorHandler) DeleteInput(c *gin.Context) {
	optionID := ParseStringIDParam(c, "option_id")
	if optionID == "" {
		return
	}
	inputID := ParseStringIDParam(c, "input_id")
	if inputID == "" {
		return
	}
	h.edit(c, "Deleting option input", nil, func(ctx context.Context, t services.DraftTarget, userID string) (*services.DraftResponse, error) {
		return h.editorService.DeleteInput(ctx, t, optionID, inputID, userID)
	})
}

// ToggleCorrect flips an option's correctness. Objective questions keep a
// single correct option.
// @Summary Toggle correct option
// @Tags editor
// @Produce json
// @Param id path string true "Draft ID"
// @Param option_id path string true "Option ID"
// @Success 200 {object} services.DraftResponse
// @Failure 404 {object} ErrorResponse
// @Router /drafts/{id}/options/{option_id}/correct [post]
func (h *EditorHandler) ToggleCorrect(c *gin.Context) {
	optionID := ParseStringIDParam(c, "option_id")
	if optionID == "" {
		return
	}
	h.edit(c, "Toggling correct option", nil, func(ctx context.Context, t services.DraftTarget, userID string) (*services.DraftResponse, error) {
		return h.editorService.ToggleCorrect(ctx, t, optionID, userID)
	})
}

// ===== QUESTION GROUP =====

func (h *EditorHandler) UpdateGroup(c *gin.Context) {
	var req services.UpdateGroupRequest
	h.edit(c, "Updating group", &req, func(ctx context.Context, t services.DraftTarget, userID string) (*services.DraftResponse, error) {
		return h.editorService.UpdateGroup(ctx, t, &req, userID)
	})
}

func (h *EditorHandler) AddGroupQuestion(c *gin.Context) {
	h.edit(c, "Adding group question", nil, func(ctx context.Context, t services.DraftTarget, userID string) (*services.DraftResponse, error) {
		return h.editorService.AddGroupQuestion(ctx, t, userID)
	})
}

func (h *EditorHandler) DeleteGroupQuestion(c *gin.Context) {
	questionID := ParseStringIDParam(c, "question_id")
	if questionID == "" {
		return
	}
	h.edit(c, "Deleting group question", nil, func(ctx context.Context, t services.DraftTarget, userID string) (*services.DraftResponse, error) {
		return h.editorService.DeleteGroupQuestion(ctx, t, questionID, userID)
	})
}

func (h *EditorHandler) ChangeGroupQuestionType(c *gin.Context) {
	questionID := ParseStringIDParam(c, "question_id")
	if questionID == "" {
		return
	}
	var req services.ChangeTypeRequest
	h.edit(c, "Changing group question type", &req, func(ctx context.Context, t services.DraftTarget, userID string) (*services.DraftResponse, error) {
		return h.editorService.ChangeGroupQuestionType(ctx, t, questionID, &req, userID)
	})
}

// ReorderGroupQuestions accepts {from, to} indices or a drag-and-drop
// {active_id, over_id} pair.
// @Summary Reorder group questions
// @Tags editor
// @Accept json
// @Produce json
// @Param id path string true "Draft ID"
// @Param body body services.ReorderRequest true "Reorder intent"
// @Success 200 {object} services.DraftResponse
// @Router /drafts/{id}/group/questions/reorder [put]
func (h *EditorHandler) ReorderGroupQuestions(c *gin.Context) {
	var req services.ReorderRequest
	h.edit(c, "Reordering group questions", &req, func(ctx context.Context, t services.DraftTarget, userID string) (*services.DraftResponse, error) {
		return h.editorService.ReorderGroupQuestions(ctx, t, &req, userID)
	})
}
