package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SAP-F-2025/question-authoring-service/internal/authoring"
	"github.com/SAP-F-2025/question-authoring-service/internal/events"
	"github.com/SAP-F-2025/question-authoring-service/internal/models"
	"github.com/SAP-F-2025/question-authoring-service/internal/repositories"
	"github.com/SAP-F-2025/question-authoring-service/internal/validator"
)

type draftService struct {
	store      *draftStore
	validator  *validator.Validator
	categories *authoring.CategoryTree
	publisher  events.EventPublisher
	log        *ServiceLogger
	now        func() time.Time
}

func NewDraftService(store *draftStore, v *validator.Validator, categories *authoring.CategoryTree, publisher events.EventPublisher, log *ServiceLogger) DraftService {
	return &draftService{
		store:      store,
		validator:  v,
		categories: categories,
		publisher:  publisher,
		log:        log,
		now:        time.Now,
	}
}

// ===== CRUD =====

// Create opens a draft from the settings screen. The content starts as the
// default payload for the chosen type.
func (s *draftService) Create(ctx context.Context, req *CreateDraftRequest, userID string) (resp *DraftResponse, err error) {
	op := s.log.WithOperation(ctx, "create_draft", userID)
	var draftID string
	defer func() { op.LogResult(draftID, err) }()

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	draft := &models.Draft{
		ID:           uuid.NewString(),
		Title:        strings.TrimSpace(req.Title),
		Type:         req.QuestionType,
		CategoryPath: normalizeCategoryPath(req.CategoryPath),
		Difficulty:   req.Difficulty,
		Price:        req.Price,
		Status:       models.DraftStatusEditing,
		CreatedBy:    userID,
		Version:      1,
	}
	draftID = draft.ID

	ids := authoring.NewCounter(0)
	content, err := authoring.NewContent(ids, req.QuestionType)
	if err != nil {
		return nil, translateModelError(err)
	}
	if err := encodeDocument(draft, &document{Content: content, IDs: ids}); err != nil {
		return nil, err
	}

	if err := s.store.repo.Create(ctx, draft); err != nil {
		return nil, fmt.Errorf("failed to create draft: %w", err)
	}
	s.store.remember(ctx, draft)
	s.store.forgetLists(ctx, userID)
	s.publish(ctx, events.NewDraftCreatedEvent(draft))
	s.log.LogAudit(ctx, "create", userID, draft.ID, map[string]interface{}{"question_type": draft.Type})

	return toDraftResponse(draft)
}

func (s *draftService) Get(ctx context.Context, id, userID string) (resp *DraftResponse, err error) {
	op := s.log.WithOperation(ctx, "get_draft", userID)
	defer func() { op.LogResult(id, err) }()

	draft, err := s.store.load(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	return toDraftResponse(draft)
}

func (s *draftService) List(ctx context.Context, userID string, filters repositories.DraftFilters) (resp *DraftListResponse, err error) {
	op := s.log.WithOperation(ctx, "list_drafts", userID)
	defer func() { op.LogResult("", err) }()

	filters = filters.Normalize()
	drafts, total, err := s.store.repo.List(ctx, userID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}

	resp = &DraftListResponse{
		Drafts: make([]*DraftSummary, 0, len(drafts)),
		Total:  total,
		Limit:  filters.Limit,
		Offset: filters.Offset,
	}
	for _, d := range drafts {
		resp.Drafts = append(resp.Drafts, newDraftSummary(d))
	}
	return resp, nil
}

// Update changes the draft header. Switching the question type discards
// the content and starts over with the new type's default payload.
func (s *draftService) Update(ctx context.Context, target DraftTarget, req *UpdateDraftRequest, userID string) (resp *DraftResponse, err error) {
	op := s.log.WithOperation(ctx, "update_draft", userID)
	defer func() { op.LogResult(target.DraftID, err) }()

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	draft, err := s.store.mutate(ctx, target, userID, func(d *models.Draft, doc *document) error {
		if req.Title != nil {
			d.Title = strings.TrimSpace(*req.Title)
		}
		if req.CategoryPath != nil {
			d.CategoryPath = normalizeCategoryPath(*req.CategoryPath)
		}
		if req.Difficulty != nil {
			d.Difficulty = *req.Difficulty
		}
		if req.Price != nil {
			d.Price = *req.Price
		}
		if req.QuestionType != nil && *req.QuestionType != doc.Content.Type() {
			content, err := authoring.NewContent(doc.IDs, *req.QuestionType)
			if err != nil {
				return err
			}
			doc.Content = content
			doc.Focus = authoring.FocusState{}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toDraftResponse(draft)
}

func (s *draftService) Delete(ctx context.Context, id, userID string) (err error) {
	op := s.log.WithOperation(ctx, "delete_draft", userID)
	defer func() { op.LogResult(id, err) }()

	if _, err := s.store.load(ctx, id, userID); err != nil {
		return err
	}
	if err := s.store.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrDraftNotFound
		}
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	s.store.forget(ctx, id)
	s.store.forgetLists(ctx, userID)
	s.publish(ctx, events.NewDraftDeletedEvent(id, userID))
	s.log.LogAudit(ctx, "delete", userID, id, nil)
	return nil
}

// ===== PUBLISHING =====

// Publish freezes a complete draft. The settings and the content are both
// checked; every problem found is reported at once.
func (s *draftService) Publish(ctx context.Context, target DraftTarget, userID string) (resp *DraftResponse, err error) {
	op := s.log.WithOperation(ctx, "publish_draft", userID)
	defer func() { op.LogResult(target.DraftID, err) }()

	draft, err := s.store.mutate(ctx, target, userID, func(d *models.Draft, doc *document) error {
		var problems ValidationErrors
		if strings.TrimSpace(d.Title) == "" {
			problems = problems.Add("title", "required", "title is required")
		}
		if err := s.validator.Validate(d.Settings()); err != nil {
			var ve ValidationErrors
			if !errors.As(err, &ve) {
				return err
			}
			problems = append(problems, ve...)
		}
		if err := s.validator.Question().ValidateContent(doc.Content); err != nil {
			var ve ValidationErrors
			if !errors.As(err, &ve) {
				return err
			}
			problems = append(problems, ve...)
		}
		if len(problems) > 0 {
			return problems
		}

		published := s.now().UTC()
		d.Status = models.DraftStatusPublished
		d.PublishedAt = &published
		doc.Focus = authoring.FocusState{}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.NewQuestionPublishedEvent(draft))
	s.log.LogAudit(ctx, "publish", userID, draft.ID, map[string]interface{}{"version": draft.Version})
	return toDraftResponse(draft)
}

// ===== READ MODELS =====

func (s *draftService) Preview(ctx context.Context, id, userID string) (resp *PreviewResponse, err error) {
	op := s.log.WithOperation(ctx, "preview", userID)
	defer func() { op.LogResult(id, err) }()

	draft, err := s.store.load(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	doc, err := decodeDocument(draft)
	if err != nil {
		return nil, err
	}

	preview := authoring.Render(doc.Content)
	return &PreviewResponse{
		DraftID:    draft.ID,
		Title:      draft.Title,
		Settings:   draft.Settings(),
		Preview:    preview,
		Text:       preview.Text(),
		AnswerText: preview.AnswerText(),
	}, nil
}

func (s *draftService) Stats(ctx context.Context, userID string) (stats *DraftStats, err error) {
	op := s.log.WithOperation(ctx, "draft_stats", userID)
	defer func() { op.LogResult("", err) }()

	stats, err = s.store.repo.GetStats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load draft stats: %w", err)
	}
	return stats, nil
}

// publish never fails the operation that triggered it.
func (s *draftService) publish(ctx context.Context, event *events.AuthoringEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishAuthoringEvent(ctx, event); err != nil {
		s.log.logger.ErrorContext(ctx, "Failed to publish authoring event",
			"event_type", event.Type, "draft_id", event.DraftID, "error", err)
	}
}

// normalizeCategoryPath renders a validated path with the canonical
// separator, so "TOEIC/Reading" and "TOEIC > Reading" are stored alike.
func normalizeCategoryPath(path string) string {
	return strings.Join(authoring.ParsePath(path), authoring.PathSeparator)
}
