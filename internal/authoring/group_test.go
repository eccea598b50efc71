package authoring

import (
	"testing"

	"github.com/SAP-F-2025/question-authoring-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(g *QuestionGroup) []string {
	out := make([]string, len(g.Items))
	for i, item := range g.Items {
		out[i] = item.Title
	}
	return out
}

func TestQuestionGroup_AddQuestion(t *testing.T) {
	ids := NewCounter(0)
	g := NewQuestionGroup(ids)

	item := g.AddQuestion(ids)

	assert.Equal(t, "Question 2", item.Title)
	assert.Equal(t, models.Subjective, item.Type())
	assert.Equal(t, []string{"Question 1", "Question 2"}, titles(g))
}

func TestQuestionGroup_DeleteRenumbersAndKeepsPayload(t *testing.T) {
	ids := NewCounter(0)
	g := NewQuestionGroup(ids)
	g.AddQuestion(ids)
	third := g.AddQuestion(ids)
	second := g.Items[1]

	require.NoError(t, g.ChangeType(ids, third.ID, models.FillInBlank))
	fill, err := PayloadAs[*FillInBlank](third.Question.Payload)
	require.NoError(t, err)
	fill.SetSentence("Water boils at 100 degrees")
	_, err = fill.AddBlank(ids, "100", 15, 18)
	require.NoError(t, err)

	require.NoError(t, g.DeleteQuestion(second.ID))

	assert.Equal(t, []string{"Question 1", "Question 2"}, titles(g))
	assert.Equal(t, third.ID, g.Items[1].ID)
	moved, err := PayloadAs[*FillInBlank](g.Items[1].Question.Payload)
	require.NoError(t, err)
	assert.Equal(t, "Water boils at 100 degrees", moved.Display())
	assert.Len(t, moved.Blanks, 1)
}

func TestQuestionGroup_DeleteFloor(t *testing.T) {
	g := NewQuestionGroup(NewCounter(0))

	assert.ErrorIs(t, g.DeleteQuestion(g.Items[0].ID), ErrMinimumQuestions)
	assert.ErrorIs(t, g.DeleteQuestion("missing"), ErrQuestionNotFound)
	assert.Len(t, g.Items, 1)
}

func TestQuestionGroup_ChangeTypeDiscardsPayload(t *testing.T) {
	ids := NewCounter(0)
	g := NewQuestionGroup(ids)
	item := g.Items[0]
	item.Question.Payload.SetStem("<p>Describe your hometown.</p>")

	require.NoError(t, g.ChangeType(ids, item.ID, models.Arrangement))
	assert.Equal(t, models.Arrangement, item.Type())

	require.NoError(t, g.ChangeType(ids, item.ID, models.Subjective))
	subj, err := PayloadAs[*Subjective](item.Question.Payload)
	require.NoError(t, err)
	assert.Empty(t, subj.Stem)

	require.NoError(t, g.ChangeType(ids, item.ID, models.Objective))
	mc, err := PayloadAs[*MultipleChoice](item.Question.Payload)
	require.NoError(t, err)
	assert.True(t, mc.SingleAnswer)
	assert.Len(t, mc.Options, MinOptions)

	assert.ErrorIs(t, g.ChangeType(ids, item.ID, models.QuestionGroup), ErrNestedGroup)
	assert.ErrorIs(t, g.ChangeType(ids, item.ID, "essay"), ErrUnknownType)
	assert.Equal(t, models.Objective, item.Type())
}

func TestQuestionGroup_Reorder(t *testing.T) {
	ids := NewCounter(0)
	g := NewQuestionGroup(ids)
	g.AddQuestion(ids)
	g.AddQuestion(ids)
	a, b, c := g.Items[0].ID, g.Items[1].ID, g.Items[2].ID

	require.NoError(t, g.Reorder(0, 2))
	assert.Equal(t, []string{b, c, a}, []string{g.Items[0].ID, g.Items[1].ID, g.Items[2].ID})
	assert.Equal(t, []string{"Question 1", "Question 2", "Question 3"}, titles(g))

	require.NoError(t, g.Move(a, b))
	assert.Equal(t, []string{a, b, c}, []string{g.Items[0].ID, g.Items[1].ID, g.Items[2].ID})

	assert.ErrorIs(t, g.Reorder(0, 3), ErrIndexOutOfRange)
	assert.ErrorIs(t, g.Move("missing", a), ErrQuestionNotFound)
}
