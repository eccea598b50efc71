package events

import (
	"encoding/json"
	"time"

	"github.com/SAP-F-2025/question-authoring-service/internal/models"
	"github.com/google/uuid"
)

// EventType names an authoring event
type EventType string

const (
	EventDraftCreated      EventType = "draft.created"
	EventDraftDeleted      EventType = "draft.deleted"
	EventQuestionPublished EventType = "question.published"
)

const (
	eventSource  = "question-authoring-service"
	eventVersion = "1.0"
)

// AuthoringEvent is the envelope for every event on the authoring topic
type AuthoringEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	DraftID   string                 `json:"draft_id"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// NewAuthoringEvent stamps an envelope for draftID.
func NewAuthoringEvent(eventType EventType, draftID string, data interface{}) *AuthoringEvent {
	return &AuthoringEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    eventSource,
		Version:   eventVersion,
		DraftID:   draftID,
		Data:      data,
	}
}

type DraftCreatedEvent struct {
	DraftID      string              `json:"draft_id"`
	Title        string              `json:"title"`
	QuestionType models.QuestionType `json:"question_type"`
	CategoryPath string              `json:"category_path"`
	CreatedBy    string              `json:"created_by"`
}

type DraftDeletedEvent struct {
	DraftID   string `json:"draft_id"`
	DeletedBy string `json:"deleted_by"`
}

// QuestionPublishedEvent carries the finished question for downstream
// question banks.
type QuestionPublishedEvent struct {
	DraftID      string                 `json:"draft_id"`
	Title        string                 `json:"title"`
	QuestionType models.QuestionType    `json:"question_type"`
	CategoryPath string                 `json:"category_path"`
	Difficulty   models.DifficultyLevel `json:"difficulty"`
	Price        int64                  `json:"price"`
	CreatedBy    string                 `json:"created_by"`
	PublishedAt  time.Time              `json:"published_at"`
	Content      json.RawMessage        `json:"content"`
}

func NewDraftCreatedEvent(d *models.Draft) *AuthoringEvent {
	return NewAuthoringEvent(EventDraftCreated, d.ID, DraftCreatedEvent{
		DraftID:      d.ID,
		Title:        d.Title,
		QuestionType: d.Type,
		CategoryPath: d.CategoryPath,
		CreatedBy:    d.CreatedBy,
	})
}

func NewDraftDeletedEvent(draftID, userID string) *AuthoringEvent {
	return NewAuthoringEvent(EventDraftDeleted, draftID, DraftDeletedEvent{
		DraftID:   draftID,
		DeletedBy: userID,
	})
}

func NewQuestionPublishedEvent(d *models.Draft) *AuthoringEvent {
	published := time.Now().UTC()
	if d.PublishedAt != nil {
		published = *d.PublishedAt
	}
	return NewAuthoringEvent(EventQuestionPublished, d.ID, QuestionPublishedEvent{
		DraftID:      d.ID,
		Title:        d.Title,
		QuestionType: d.Type,
		CategoryPath: d.CategoryPath,
		Difficulty:   d.Difficulty,
		Price:        d.Price,
		CreatedBy:    d.CreatedBy,
		PublishedAt:  published,
		Content:      json.RawMessage(d.Content),
	})
}
