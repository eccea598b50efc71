package authoring

import (
	"encoding/json"
	"fmt"

	"github.com/SAP-F-2025/question-authoring-service/internal/models"
)

// Payload is the type-specific body of a question. Exactly one concrete
// payload exists per question; switching type replaces it.
type Payload interface {
	Type() models.QuestionType
	SetStem(content string)
}

// Subjective is a free-response question.
type Subjective struct {
	Stem         string `json:"stem"`
	SampleAnswer string `json:"sample_answer"`
}

func (s *Subjective) Type() models.QuestionType { return models.Subjective }

func (s *Subjective) SetStem(content string) { s.Stem = content }

// NewPayload builds the default payload for t.
func NewPayload(ids IDGenerator, t models.QuestionType) (Payload, error) {
	switch t {
	case models.Subjective:
		return &Subjective{}, nil
	case models.Objective:
		return NewMultipleChoice(ids, true), nil
	case models.MultipleChoice:
		return NewMultipleChoice(ids, false), nil
	case models.FillInBlank:
		return &FillInBlank{}, nil
	case models.Arrangement:
		return &Arrangement{}, nil
	case models.QuestionGroup:
		return NewQuestionGroup(ids), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, t)
	}
}

// Content wraps a Payload and serialises it as {"type": ..., "data": ...}.
type Content struct {
	Payload Payload
}

func NewContent(ids IDGenerator, t models.QuestionType) (Content, error) {
	p, err := NewPayload(ids, t)
	if err != nil {
		return Content{}, err
	}
	return Content{Payload: p}, nil
}

func (c Content) Type() models.QuestionType {
	if c.Payload == nil {
		return ""
	}
	return c.Payload.Type()
}

type contentEnvelope struct {
	Type models.QuestionType `json:"type"`
	Data json.RawMessage     `json:"data"`
}

func (c Content) MarshalJSON() ([]byte, error) {
	if c.Payload == nil {
		return []byte("null"), nil
	}
	data, err := json.Marshal(c.Payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(contentEnvelope{Type: c.Payload.Type(), Data: data})
}

func (c *Content) UnmarshalJSON(b []byte) error {
	var env contentEnvelope
	if err := json.Unmarshal(b, &env); err != nil {
		return err
	}
	if env.Type == "" {
		c.Payload = nil
		return nil
	}

	var p Payload
	switch env.Type {
	case models.Subjective:
		p = &Subjective{}
	case models.Objective:
		p = &MultipleChoice{SingleAnswer: true}
	case models.MultipleChoice:
		p = &MultipleChoice{}
	case models.FillInBlank:
		p = &FillInBlank{}
	case models.Arrangement:
		p = &Arrangement{}
	case models.QuestionGroup:
		p = &QuestionGroup{}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownType, env.Type)
	}

	if len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, p); err != nil {
			return fmt.Errorf("invalid %s content: %w", env.Type, err)
		}
	}
	if mc, ok := p.(*MultipleChoice); ok && env.Type == models.Objective {
		mc.SingleAnswer = true
	}
	c.Payload = p
	return nil
}

// PayloadAs returns p as T or ErrPayloadMismatch.
func PayloadAs[T Payload](p Payload) (T, error) {
	typed, ok := p.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: have %s", ErrPayloadMismatch, typeOf(p))
	}
	return typed, nil
}

func typeOf(p Payload) models.QuestionType {
	if p == nil {
		return ""
	}
	return p.Type()
}

// TextField names an editable rich-text region of a payload.
type TextField string

const (
	FieldStem     TextField = "stem"
	FieldSentence TextField = "sentence"
	FieldAnswer   TextField = "answer"
)

// ApplyText routes an editor content change to the payload field it
// belongs to.
func ApplyText(p Payload, field TextField, content string) error {
	switch field {
	case FieldStem, "":
		p.SetStem(content)
		return nil
	case FieldSentence:
		switch typed := p.(type) {
		case *FillInBlank:
			typed.SetSentence(content)
			return nil
		case *Arrangement:
			typed.SetSentence(content)
			return nil
		}
	case FieldAnswer:
		if s, ok := p.(*Subjective); ok {
			s.SampleAnswer = content
			return nil
		}
	}
	return fmt.Errorf("%w: %s on %s", ErrUnsupportedField, field, typeOf(p))
}
