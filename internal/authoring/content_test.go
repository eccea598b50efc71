package authoring

import (
	"encoding/json"
	"testing"

	"github.com/SAP-F-2025/question-authoring-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContent_DefaultPayloads(t *testing.T) {
	tests := []struct {
		qType models.QuestionType
		check func(t *testing.T, p Payload)
	}{
		{qType: models.Subjective, check: func(t *testing.T, p Payload) { assert.IsType(t, &Subjective{}, p) }},
		{qType: models.FillInBlank, check: func(t *testing.T, p Payload) { assert.IsType(t, &FillInBlank{}, p) }},
		{qType: models.Arrangement, check: func(t *testing.T, p Payload) { assert.IsType(t, &Arrangement{}, p) }},
		{qType: models.MultipleChoice, check: func(t *testing.T, p Payload) {
			mc := p.(*MultipleChoice)
			assert.False(t, mc.SingleAnswer)
			assert.Len(t, mc.Options, 2)
		}},
		{qType: models.Objective, check: func(t *testing.T, p Payload) {
			assert.True(t, p.(*MultipleChoice).SingleAnswer)
		}},
		{qType: models.QuestionGroup, check: func(t *testing.T, p Payload) {
			g := p.(*QuestionGroup)
			require.Len(t, g.Items, 1)
			assert.Equal(t, "Question 1", g.Items[0].Title)
		}},
	}

	for _, tt := range tests {
		t.Run(string(tt.qType), func(t *testing.T) {
			c, err := NewContent(NewCounter(0), tt.qType)
			require.NoError(t, err)
			assert.Equal(t, tt.qType, c.Type())
			tt.check(t, c.Payload)
		})
	}

	_, err := NewContent(NewCounter(0), "matching")
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestContent_JSONKeepsNestedPayloads(t *testing.T) {
	ids := NewCounter(0)
	c, err := NewContent(ids, models.QuestionGroup)
	require.NoError(t, err)
	g := c.Payload.(*QuestionGroup)
	g.Title = "Reading set"
	item := g.AddQuestion(ids)
	require.NoError(t, g.ChangeType(ids, item.ID, models.Objective))
	mc := item.Question.Payload.(*MultipleChoice)
	require.NoError(t, mc.ToggleCorrect(mc.Options[1].ID))

	raw, err := json.Marshal(c)
	require.NoError(t, err)

	var decoded Content
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, c, decoded)
	decodedGroup := decoded.Payload.(*QuestionGroup)
	assert.Equal(t, models.Objective, decodedGroup.Items[1].Type())
	assert.JSONEq(t, `{"type":"subjective","data":{"stem":"","sample_answer":""}}`, mustJSON(t, decodedGroup.Items[0].Question))
}

func TestContent_UnmarshalUnknownType(t *testing.T) {
	var c Content
	err := json.Unmarshal([]byte(`{"type":"matching","data":{}}`), &c)

	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestPayloadAs(t *testing.T) {
	var p Payload = &Arrangement{}

	_, err := PayloadAs[*FillInBlank](p)
	assert.ErrorIs(t, err, ErrPayloadMismatch)

	a, err := PayloadAs[*Arrangement](p)
	require.NoError(t, err)
	assert.Same(t, p, a)
}

func TestApplyText(t *testing.T) {
	fill := &FillInBlank{}
	require.NoError(t, ApplyText(fill, FieldSentence, "<p>Cats  sleep</p>"))
	require.NoError(t, ApplyText(fill, FieldStem, "<b>Fill the gap</b>"))
	assert.Equal(t, "Cats sleep", fill.Sentence)
	assert.Equal(t, "<b>Fill the gap</b>", fill.Stem)

	subj := &Subjective{}
	require.NoError(t, ApplyText(subj, FieldAnswer, "Because."))
	assert.Equal(t, "Because.", subj.SampleAnswer)

	assert.ErrorIs(t, ApplyText(subj, FieldSentence, "x"), ErrUnsupportedField)
	assert.ErrorIs(t, ApplyText(fill, FieldAnswer, "x"), ErrUnsupportedField)
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}
