package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/SAP-F-2025/question-authoring-service/internal/authoring"
	"github.com/SAP-F-2025/question-authoring-service/internal/cache"
	"github.com/SAP-F-2025/question-authoring-service/internal/models"
	"github.com/SAP-F-2025/question-authoring-service/internal/repositories"
)

// maxMutationAttempts bounds how often an edit is re-applied after losing
// an optimistic-lock race.
const maxMutationAttempts = 3

// errUnchanged lets a mutation report that it had nothing to do; the
// draft is returned as loaded and not saved.
var errUnchanged = errors.New("draft unchanged")

// document is a decoded draft: its question content and the id generator
// that continues from the draft's persisted sequence.
type document struct {
	Content authoring.Content
	IDs     *authoring.Counter
	Focus   authoring.FocusState
}

// draftStore loads and saves drafts through the cache and the repository.
// Every editing operation goes through mutate.
type draftStore struct {
	repo  repositories.DraftRepository
	cache cache.CacheService
	ttl   time.Duration
	log   *ServiceLogger
}

func newDraftStore(repo repositories.DraftRepository, c cache.CacheService, ttl time.Duration, log *ServiceLogger) *draftStore {
	if c == nil {
		c = cache.NewNoopCache()
	}
	return &draftStore{repo: repo, cache: c, ttl: ttl, log: log}
}

// cachedDraft carries the fields models.Draft hides from JSON.
type cachedDraft struct {
	Draft    *models.Draft `json:"draft"`
	Sequence int64         `json:"sequence"`
}

// load returns the draft owned by userID.
func (s *draftStore) load(ctx context.Context, id, userID string) (*models.Draft, error) {
	var cached cachedDraft
	var draft *models.Draft
	err := s.cache.Get(ctx, cache.DraftKey(id), &cached)
	if err == nil && cached.Draft != nil {
		draft = cached.Draft
		draft.Sequence = cached.Sequence
	} else {
		if err != nil && !errors.Is(err, cache.ErrCacheMiss) {
			s.log.logger.WarnContext(ctx, "Draft cache unavailable", "draft_id", id, "error", err)
		}
		draft, err = s.repo.GetByID(ctx, id)
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrDraftNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load draft: %w", err)
		}
		s.remember(ctx, draft)
	}

	if draft.CreatedBy != userID {
		return nil, NewPermissionError(userID, id, "draft", "access", "not the draft owner")
	}
	return draft, nil
}

// loadFresh bypasses the cache.
func (s *draftStore) loadFresh(ctx context.Context, id, userID string) (*models.Draft, error) {
	s.forget(ctx, id)
	return s.load(ctx, id, userID)
}

func (s *draftStore) save(ctx context.Context, draft *models.Draft) error {
	if err := s.repo.Update(ctx, draft); err != nil {
		switch {
		case errors.Is(err, repositories.ErrVersionConflict):
			s.forget(ctx, draft.ID)
			return ErrDraftConflict
		case errors.Is(err, repositories.ErrNotFound):
			s.forget(ctx, draft.ID)
			return ErrDraftNotFound
		}
		return fmt.Errorf("failed to save draft: %w", err)
	}
	s.remember(ctx, draft)
	s.forgetLists(ctx, draft.CreatedBy)
	return nil
}

func (s *draftStore) remember(ctx context.Context, draft *models.Draft) {
	entry := cachedDraft{Draft: draft, Sequence: draft.Sequence}
	if err := s.cache.Set(ctx, cache.DraftKey(draft.ID), entry, s.ttl); err != nil {
		s.log.logger.DebugContext(ctx, "Draft not cached", "draft_id", draft.ID, "error", err)
	}
}

func (s *draftStore) forget(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, cache.DraftKey(id)); err != nil {
		s.log.logger.WarnContext(ctx, "Draft cache eviction failed", "draft_id", id, "error", err)
	}
}

func (s *draftStore) forgetLists(ctx context.Context, userID string) {
	if err := s.cache.DeletePattern(ctx, cache.UserDraftsPattern(userID)); err != nil {
		s.log.logger.WarnContext(ctx, "Draft list cache eviction failed", "user_id", userID, "error", err)
	}
}

// mutate applies fn to a fresh decode of the draft and saves the result.
// fn must be a pure function of the document it is given: after a lost
// race it is re-run against the newer draft. A failing fn leaves the
// stored draft untouched.
func (s *draftStore) mutate(ctx context.Context, target DraftTarget, userID string, fn func(d *models.Draft, doc *document) error) (*models.Draft, error) {
	var lastErr error
	for attempt := 0; attempt < maxMutationAttempts; attempt++ {
		load := s.load
		if attempt > 0 || target.ExpectedVersion != 0 {
			load = s.loadFresh
		}
		draft, err := load(ctx, target.DraftID, userID)
		if err != nil {
			return nil, err
		}
		if target.ExpectedVersion != 0 && target.ExpectedVersion != draft.Version {
			return nil, ErrDraftConflict
		}
		if !draft.IsEditable() {
			return nil, ErrDraftNotEditable
		}

		doc, err := decodeDocument(draft)
		if err != nil {
			return nil, err
		}
		if err := fn(draft, doc); err != nil {
			if errors.Is(err, errUnchanged) {
				return draft, nil
			}
			return nil, translateModelError(err)
		}
		if err := encodeDocument(draft, doc); err != nil {
			return nil, err
		}

		lastErr = s.save(ctx, draft)
		if lastErr == nil {
			return draft, nil
		}
		if !errors.Is(lastErr, ErrDraftConflict) || target.ExpectedVersion != 0 {
			return nil, lastErr
		}
	}
	return nil, lastErr
}

func decodeDocument(d *models.Draft) (*document, error) {
	doc := &document{
		IDs:   authoring.NewCounter(d.Sequence),
		Focus: authoring.FocusState{Owner: authoring.Region(d.FocusOwner)},
	}
	if len(d.Content) > 0 {
		if err := json.Unmarshal(d.Content, &doc.Content); err != nil {
			return nil, fmt.Errorf("draft %s has unreadable content: %w", d.ID, err)
		}
	}
	if doc.Content.Payload == nil {
		content, err := authoring.NewContent(doc.IDs, d.Type)
		if err != nil {
			return nil, translateModelError(err)
		}
		doc.Content = content
	}
	return doc, nil
}

func encodeDocument(d *models.Draft, doc *document) error {
	data, err := json.Marshal(doc.Content)
	if err != nil {
		return fmt.Errorf("failed to encode draft content: %w", err)
	}
	d.Content = data
	d.Type = doc.Content.Type()
	d.Sequence = doc.IDs.Current()
	d.FocusOwner = string(doc.Focus.Owner)
	return nil
}

// resolvePayload returns the payload addressed by itemID: the draft's own
// payload when itemID is empty, otherwise the matching group child.
func resolvePayload(doc *document, itemID string) (authoring.Payload, error) {
	if itemID == "" {
		return doc.Content.Payload, nil
	}
	group, ok := doc.Content.Payload.(*authoring.QuestionGroup)
	if !ok {
		return nil, ErrInvalidTarget
	}
	item, err := group.Item(itemID)
	if err != nil {
		return nil, err
	}
	return item.Question.Payload, nil
}

// payloadAs resolves the target payload and asserts its concrete type.
func payloadAs[T authoring.Payload](doc *document, itemID string) (T, error) {
	p, err := resolvePayload(doc, itemID)
	if err != nil {
		var zero T
		return zero, err
	}
	return authoring.PayloadAs[T](p)
}

func toDraftResponse(d *models.Draft) (*DraftResponse, error) {
	doc, err := decodeDocument(d)
	if err != nil {
		return nil, err
	}
	return &DraftResponse{
		ID:          d.ID,
		Title:       d.Title,
		Type:        d.Type,
		Settings:    d.Settings(),
		Status:      d.Status,
		Content:     doc.Content,
		Focus:       doc.Focus,
		Version:     d.Version,
		CreatedBy:   d.CreatedBy,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
		PublishedAt: d.PublishedAt,
	}, nil
}
