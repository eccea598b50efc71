package authoring

import (
	"testing"

	"github.com/SAP-F-2025/question-authoring-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_FillInBlank(t *testing.T) {
	f := &FillInBlank{Stem: "<p>Complete the sentence.</p>", Sentence: "The sun rises in the east"}
	ids := NewCounter(0)
	_, err := f.AddBlank(ids, "east", 21, 25)
	require.NoError(t, err)
	_, err = f.AddBlank(ids, "sun", 4, 7)
	require.NoError(t, err)

	pv := RenderPayload(f)

	assert.Equal(t, models.FillInBlank, pv.Type)
	assert.Equal(t, "Complete the sentence.\nThe (1)____ rises in the (2)____", pv.Text())
	assert.Equal(t, "(1) sun; (2) east", pv.AnswerText())
}

func TestRender_Arrangement(t *testing.T) {
	a := &Arrangement{}
	a.SetSentence("The sun rises in the east")

	pv := RenderPayload(a)
	assert.Equal(t, "The / sun / rises / in / the / east", pv.Text())
	for _, w := range pv.Words {
		assert.False(t, w.IsMixed)
	}

	require.NoError(t, a.Mix(Selection{Text: "rises in the east"}, reverseShuffler{}))
	pv = RenderPayload(a)

	assert.Equal(t, "The / sun / east / the / in / rises", pv.Text())
	assert.Equal(t, "The sun rises in the east", pv.AnswerText())
	assert.True(t, pv.Words[2].IsMixed)
	assert.False(t, pv.Answer[0].IsMixed)
}

func TestRender_MultipleChoice(t *testing.T) {
	ids := NewCounter(0)
	mc := NewMultipleChoice(ids, false)
	mc.SetStem("Pick the fruits")
	mc.AddOption(ids)
	require.NoError(t, mc.SetInputText(mc.Options[0].ID, mc.Options[0].Inputs[0].ID, "apple"))
	require.NoError(t, mc.SetInputText(mc.Options[1].ID, mc.Options[1].Inputs[0].ID, "carrot"))
	require.NoError(t, mc.SetInputText(mc.Options[2].ID, mc.Options[2].Inputs[0].ID, "pear"))
	require.NoError(t, mc.ToggleCorrect(mc.Options[0].ID))
	require.NoError(t, mc.ToggleCorrect(mc.Options[2].ID))

	pv := RenderPayload(mc)

	require.Len(t, pv.Options, 3)
	assert.Equal(t, "C", pv.Options[2].Letter)
	assert.Equal(t, "Pick the fruits\nA. apple\nB. carrot\nC. pear", pv.Text())
	assert.Equal(t, "A, C", pv.AnswerText())
}

func TestRender_Group(t *testing.T) {
	ids := NewCounter(0)
	g := NewQuestionGroup(ids)
	g.Title = "Passage 1"
	g.Items[0].Question.Payload.SetStem("Why?")
	second := g.AddQuestion(ids)
	require.NoError(t, g.ChangeType(ids, second.ID, models.Arrangement))
	require.NoError(t, ApplyText(second.Question.Payload, FieldSentence, "a b"))

	pv := Render(Content{Payload: g})

	require.Len(t, pv.Children, 2)
	assert.Equal(t, 2, pv.Children[1].Number)
	assert.Equal(t, models.Arrangement, pv.Children[1].Preview.Type)
	assert.Equal(t, "Passage 1\nQuestion 1: Why?\nQuestion 2: a / b", pv.Text())
}

func TestOptionLetter(t *testing.T) {
	assert.Equal(t, "A", optionLetter(0))
	assert.Equal(t, "Z", optionLetter(25))
	assert.Equal(t, "27", optionLetter(26))
}
