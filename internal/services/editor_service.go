package services

import (
	"context"

	"github.com/SAP-F-2025/question-authoring-service/internal/authoring"
	"github.com/SAP-F-2025/question-authoring-service/internal/models"
	"github.com/SAP-F-2025/question-authoring-service/internal/validator"
)

type editorService struct {
	store     *draftStore
	validator *validator.Validator
	shuffler  authoring.Shuffler
	log       *ServiceLogger
}

func NewEditorService(store *draftStore, v *validator.Validator, shuffler authoring.Shuffler, log *ServiceLogger) EditorService {
	return &editorService{store: store, validator: v, shuffler: shuffler, log: log}
}

type editFunc func(doc *document) error

// edit runs one editor interaction against the target draft and logs it.
func (s *editorService) edit(ctx context.Context, operation string, target DraftTarget, userID string, fn editFunc) (*DraftResponse, error) {
	op := s.log.WithOperation(ctx, operation, userID)
	draft, err := s.store.mutate(ctx, target, userID, func(_ *models.Draft, doc *document) error {
		return fn(doc)
	})
	var resp *DraftResponse
	if err == nil {
		resp, err = toDraftResponse(draft)
	}
	op.LogResult(target.DraftID, err)
	return resp, err
}

// editValidated validates req before editing.
func (s *editorService) editValidated(ctx context.Context, operation string, target DraftTarget, userID string, req interface{}, fn editFunc) (*DraftResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		s.log.WithOperation(ctx, operation, userID).LogResult(target.DraftID, err)
		return nil, err
	}
	return s.edit(ctx, operation, target, userID, fn)
}

// ===== TEXT & FOCUS =====

func (s *editorService) SetText(ctx context.Context, target DraftTarget, req *SetTextRequest, userID string) (*DraftResponse, error) {
	return s.editValidated(ctx, "set_text", target, userID, req, func(doc *document) error {
		p, err := resolvePayload(doc, target.ItemID)
		if err != nil {
			return err
		}
		return authoring.ApplyText(p, req.Field, req.HTML)
	})
}

// SetFocus records a focus or blur event for an editor region. Focus
// state lives on the draft, not on a child question.
func (s *editorService) SetFocus(ctx context.Context, target DraftTarget, req *FocusRequest, userID string) (*DraftResponse, error) {
	return s.editValidated(ctx, "set_focus", target, userID, req, func(doc *document) error {
		if req.Focused {
			doc.Focus.Focus(req.Region)
		} else {
			doc.Focus.Blur(req.Region)
		}
		return nil
	})
}

// ===== FILL IN THE BLANK =====

func (s *editorService) AddBlank(ctx context.Context, target DraftTarget, req *SelectionRequest, userID string) (*DraftResponse, error) {
	return s.edit(ctx, "add_blank", target, userID, func(doc *document) error {
		q, err := payloadAs[*authoring.FillInBlank](doc, target.ItemID)
		if err != nil {
			return err
		}
		_, err = q.AddBlank(doc.IDs, req.Text, req.Start, req.End)
		return err
	})
}

func (s *editorService) RemoveBlank(ctx context.Context, target DraftTarget, blankID int64, userID string) (*DraftResponse, error) {
	return s.edit(ctx, "remove_blank", target, userID, func(doc *document) error {
		q, err := payloadAs[*authoring.FillInBlank](doc, target.ItemID)
		if err != nil {
			return err
		}
		return q.RemoveBlank(blankID)
	})
}

// ===== ARRANGEMENT =====

func (s *editorService) Mix(ctx context.Context, target DraftTarget, req *SelectionRequest, userID string) (*DraftResponse, error) {
	return s.edit(ctx, "mix_words", target, userID, func(doc *document) error {
		q, err := payloadAs[*authoring.Arrangement](doc, target.ItemID)
		if err != nil {
			return err
		}
		return q.Mix(authoring.Selection{Text: req.Text, Start: req.Start, End: req.End}, s.shuffler)
	})
}

func (s *editorService) Remix(ctx context.Context, target DraftTarget, userID string) (*DraftResponse, error) {
	return s.edit(ctx, "remix_words", target, userID, func(doc *document) error {
		q, err := payloadAs[*authoring.Arrangement](doc, target.ItemID)
		if err != nil {
			return err
		}
		return q.Remix(s.shuffler)
	})
}

// ===== MULTIPLE CHOICE =====

func (s *editorService) AddOption(ctx context.Context, target DraftTarget, userID string) (*DraftResponse, error) {
	return s.edit(ctx, "add_option", target, userID, func(doc *document) error {
		q, err := payloadAs[*authoring.MultipleChoice](doc, target.ItemID)
		if err != nil {
			return err
		}
		q.AddOption(doc.IDs)
		return nil
	})
}

func (s *editorService) DeleteOption(ctx context.Context, target DraftTarget, optionID, userID string) (*DraftResponse, error) {
	return s.edit(ctx, "delete_option", target, userID, func(doc *document) error {
		q, err := payloadAs[*authoring.MultipleChoice](doc, target.ItemID)
		if err != nil {
			return err
		}
		return q.DeleteOption(optionID)
	})
}

func (s *editorService) AddInput(ctx context.Context, target DraftTarget, optionID string, req *AddInputRequest, userID string) (*DraftResponse, error) {
	return s.edit(ctx, "add_input", target, userID, func(doc *document) error {
		q, err := payloadAs[*authoring.MultipleChoice](doc, target.ItemID)
		if err != nil {
			return err
		}
		_, err = q.AddInput(doc.IDs, optionID, req.AfterInputID)
		return err
	})
}

func (s *editorService) SetInputText(ctx context.Context, target DraftTarget, optionID, inputID string, req *SetInputTextRequest, userID string) (*DraftResponse, error) {
	return s.editValidated(ctx, "set_input_text", target, userID, req, func(doc *document) error {
		q, err := payloadAs[*authoring.MultipleChoice](doc, target.ItemID)
		if err != nil {
			return err
		}
		return q.SetInputText(optionID, inputID, req.Text)
	})
}

func (s *editorService) DeleteInput(ctx context.Context, target DraftTarget, optionID, inputID, userID string) (*DraftResponse, error) {
	return s.edit(ctx, "delete_input", target, userID, func(doc *document) error {
		q, err := payloadAs[*authoring.MultipleChoice](doc, target.ItemID)
		if err != nil {
			return err
		}
		return q.DeleteInput(optionID, inputID)
	})
}

func (s *editorService) ToggleCorrect(ctx context.Context, target DraftTarget, optionID, userID string) (*DraftResponse, error) {
	return s.edit(ctx, "toggle_correct", target, userID, func(doc *document) error {
		q, err := payloadAs[*authoring.MultipleChoice](doc, target.ItemID)
		if err != nil {
			return err
		}
		return q.ToggleCorrect(optionID)
	})
}

// ===== QUESTION GROUP =====

func (s *editorService) UpdateGroup(ctx context.Context, target DraftTarget, req *UpdateGroupRequest, userID string) (*DraftResponse, error) {
	return s.editValidated(ctx, "update_group", target, userID, req, func(doc *document) error {
		g, err := payloadAs[*authoring.QuestionGroup](doc, target.ItemID)
		if err != nil {
			return err
		}
		if req.Title != nil {
			g.Title = *req.Title
		}
		if req.Description != nil {
			g.Description = *req.Description
		}
		return nil
	})
}

func (s *editorService) AddGroupQuestion(ctx context.Context, target DraftTarget, userID string) (*DraftResponse, error) {
	return s.edit(ctx, "add_group_question", target, userID, func(doc *document) error {
		g, err := payloadAs[*authoring.QuestionGroup](doc, target.ItemID)
		if err != nil {
			return err
		}
		g.AddQuestion(doc.IDs)
		return nil
	})
}

func (s *editorService) DeleteGroupQuestion(ctx context.Context, target DraftTarget, questionID, userID string) (*DraftResponse, error) {
	return s.edit(ctx, "delete_group_question", target, userID, func(doc *document) error {
		g, err := payloadAs[*authoring.QuestionGroup](doc, target.ItemID)
		if err != nil {
			return err
		}
		return g.DeleteQuestion(questionID)
	})
}

func (s *editorService) ChangeGroupQuestionType(ctx context.Context, target DraftTarget, questionID string, req *ChangeTypeRequest, userID string) (*DraftResponse, error) {
	return s.editValidated(ctx, "change_group_question_type", target, userID, req, func(doc *document) error {
		g, err := payloadAs[*authoring.QuestionGroup](doc, target.ItemID)
		if err != nil {
			return err
		}
		return g.ChangeType(doc.IDs, questionID, req.Type)
	})
}

// ReorderGroupQuestions accepts either explicit indices or a drag intent
// naming the dragged question and the one it was dropped on.
func (s *editorService) ReorderGroupQuestions(ctx context.Context, target DraftTarget, req *ReorderRequest, userID string) (*DraftResponse, error) {
	byIndex := req.From != nil && req.To != nil
	byDrag := req.ActiveID != "" && req.OverID != ""
	if !byIndex && !byDrag {
		err := ValidationErrors{}.Add("from", "required_without", "either from/to or active_id/over_id is required")
		s.log.WithOperation(ctx, "reorder_group_questions", userID).LogResult(target.DraftID, err)
		return nil, err
	}

	return s.editValidated(ctx, "reorder_group_questions", target, userID, req, func(doc *document) error {
		g, err := payloadAs[*authoring.QuestionGroup](doc, target.ItemID)
		if err != nil {
			return err
		}
		if byIndex {
			return g.Reorder(*req.From, *req.To)
		}
		return g.Move(req.ActiveID, req.OverID)
	})
}
