package services

import (
	"time"

	"github.com/SAP-F-2025/question-authoring-service/internal/authoring"
	"github.com/SAP-F-2025/question-authoring-service/internal/models"
	"github.com/SAP-F-2025/question-authoring-service/internal/repositories"
)

// ===== REQUESTS =====

// CreateDraftRequest is submitted from the settings screen.
type CreateDraftRequest struct {
	Title        string              `json:"title" validate:"required,max=200"`
	QuestionType models.QuestionType `json:"question_type" validate:"required,question_type"`
	models.QuestionSettings
}

type UpdateDraftRequest struct {
	Title        *string                 `json:"title" validate:"omitempty,min=1,max=200"`
	QuestionType *models.QuestionType    `json:"question_type" validate:"omitempty,question_type"`
	CategoryPath *string                 `json:"category_path" validate:"omitempty,category_path"`
	Difficulty   *models.DifficultyLevel `json:"difficulty" validate:"omitempty,difficulty_level"`
	Price        *int64                  `json:"price" validate:"omitempty,min=0,max=100000000"`
}

// DraftTarget addresses the question an editing operation applies to:
// the draft itself, or one child of a group draft when ItemID is set.
// A non-zero ExpectedVersion fails the operation with ErrDraftConflict
// when the draft has moved on.
type DraftTarget struct {
	DraftID         string
	ItemID          string
	ExpectedVersion int
}

type SetTextRequest struct {
	Field authoring.TextField `json:"field" validate:"omitempty,oneof=stem sentence answer"`
	HTML  string              `json:"html"`
}

// SelectionRequest carries an editor text selection. Emptiness and range
// problems are reported by the model, not by request validation.
type SelectionRequest struct {
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

type AddInputRequest struct {
	AfterInputID string `json:"after_input_id"`
}

type SetInputTextRequest struct {
	Text string `json:"text" validate:"max=1000"`
}

type UpdateGroupRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=200"`
	Description *string `json:"description"`
}

type ChangeTypeRequest struct {
	Type models.QuestionType `json:"type" validate:"required,question_type"`
}

// ReorderRequest accepts either indices or a drag-and-drop intent.
type ReorderRequest struct {
	From     *int   `json:"from" validate:"omitempty,min=0"`
	To       *int   `json:"to" validate:"omitempty,min=0"`
	ActiveID string `json:"active_id"`
	OverID   string `json:"over_id"`
}

type FocusRequest struct {
	Region  authoring.Region `json:"region" validate:"required,max=100"`
	Focused bool             `json:"focused"`
}

type SelectCategoryRequest struct {
	Path string `json:"path" validate:"max=500"`
}

type ToggleCategoryRequest struct {
	NodeID  string `json:"node_id" validate:"required"`
	Checked bool   `json:"checked"`
}

// ===== RESPONSES =====

type DraftResponse struct {
	ID          string                  `json:"id"`
	Title       string                  `json:"title"`
	Type        models.QuestionType     `json:"question_type"`
	Settings    models.QuestionSettings `json:"settings"`
	Status      models.DraftStatus      `json:"status"`
	Content     authoring.Content       `json:"content"`
	Focus       authoring.FocusState    `json:"focus"`
	Version     int                     `json:"version"`
	CreatedBy   string                  `json:"created_by"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
	PublishedAt *time.Time              `json:"published_at,omitempty"`
}

type DraftSummary struct {
	ID        string                  `json:"id"`
	Title     string                  `json:"title"`
	Type      models.QuestionType     `json:"question_type"`
	Settings  models.QuestionSettings `json:"settings"`
	Status    models.DraftStatus      `json:"status"`
	Version   int                     `json:"version"`
	UpdatedAt time.Time               `json:"updated_at"`
}

type DraftListResponse struct {
	Drafts []*DraftSummary `json:"drafts"`
	Total  int64           `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

type PreviewResponse struct {
	DraftID    string                  `json:"draft_id"`
	Title      string                  `json:"title"`
	Settings   models.QuestionSettings `json:"settings"`
	Preview    authoring.Preview       `json:"preview"`
	Text       string                  `json:"text"`
	AnswerText string                  `json:"answer_text"`
}

type CategoryTreeResponse struct {
	Roots        []*authoring.TreeNode `json:"roots"`
	SelectedPath string                `json:"selected_path"`
	SelectedIDs  []string              `json:"selected_ids,omitempty"`
	Version      int                   `json:"version,omitempty"`
}

type ExportResult struct {
	FileName    string
	ContentType string
	Data        []byte
}

type DraftStats = repositories.DraftStats

func newDraftSummary(d *models.Draft) *DraftSummary {
	return &DraftSummary{
		ID:        d.ID,
		Title:     d.Title,
		Type:      d.Type,
		Settings:  d.Settings(),
		Status:    d.Status,
		Version:   d.Version,
		UpdatedAt: d.UpdatedAt,
	}
}
