package authoring

import (
	"fmt"

	"github.com/SAP-F-2025/question-authoring-service/internal/models"
)

// GroupItem is one child question of a group.
type GroupItem struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Question Content `json:"question"`
}

func (g *GroupItem) Type() models.QuestionType {
	return g.Question.Type()
}

// QuestionGroup holds heterogeneous child questions under a shared
// heading. Child titles are always "Question 1".."Question N" in order.
type QuestionGroup struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Items       []*GroupItem `json:"items"`
}

// NewQuestionGroup returns a group with a single subjective question.
func NewQuestionGroup(ids IDGenerator) *QuestionGroup {
	g := &QuestionGroup{}
	g.AddQuestion(ids)
	return g
}

func (g *QuestionGroup) Type() models.QuestionType { return models.QuestionGroup }

func (g *QuestionGroup) SetStem(content string) { g.Description = content }

// AddQuestion appends a subjective question titled after its position.
func (g *QuestionGroup) AddQuestion(ids IDGenerator) *GroupItem {
	item := &GroupItem{
		ID:       ids.NextString(),
		Title:    questionTitle(len(g.Items) + 1),
		Question: Content{Payload: &Subjective{}},
	}
	g.Items = append(g.Items, item)
	return item
}

// DeleteQuestion removes a question and renumbers the rest. The last
// remaining question cannot be deleted.
func (g *QuestionGroup) DeleteQuestion(itemID string) error {
	idx := g.index(itemID)
	if idx < 0 {
		return ErrQuestionNotFound
	}
	if len(g.Items) <= 1 {
		return ErrMinimumQuestions
	}
	g.Items = append(g.Items[:idx], g.Items[idx+1:]...)
	g.renumber()
	return nil
}

// ChangeType discards the item's payload and replaces it with a fresh
// default payload for t.
func (g *QuestionGroup) ChangeType(ids IDGenerator, itemID string, t models.QuestionType) error {
	item, err := g.Item(itemID)
	if err != nil {
		return err
	}
	if t == models.QuestionGroup {
		return ErrNestedGroup
	}
	p, err := NewPayload(ids, t)
	if err != nil {
		return err
	}
	item.Question = Content{Payload: p}
	return nil
}

// Reorder moves the item at from to position to and renumbers.
func (g *QuestionGroup) Reorder(from, to int) error {
	n := len(g.Items)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("%w: from=%d to=%d len=%d", ErrIndexOutOfRange, from, to, n)
	}
	if from != to {
		item := g.Items[from]
		g.Items = append(g.Items[:from], g.Items[from+1:]...)
		g.Items = append(g.Items[:to], append([]*GroupItem{item}, g.Items[to:]...)...)
	}
	g.renumber()
	return nil
}

// Move handles a drag-and-drop reorder intent: activeID takes overID's
// position.
func (g *QuestionGroup) Move(activeID, overID string) error {
	from := g.index(activeID)
	to := g.index(overID)
	if from < 0 || to < 0 {
		return ErrQuestionNotFound
	}
	return g.Reorder(from, to)
}

func (g *QuestionGroup) Item(itemID string) (*GroupItem, error) {
	idx := g.index(itemID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrQuestionNotFound, itemID)
	}
	return g.Items[idx], nil
}

func (g *QuestionGroup) index(itemID string) int {
	for i, item := range g.Items {
		if item.ID == itemID {
			return i
		}
	}
	return -1
}

func (g *QuestionGroup) renumber() {
	for i, item := range g.Items {
		item.Title = questionTitle(i + 1)
	}
}

func questionTitle(n int) string {
	return fmt.Sprintf("Question %d", n)
}
