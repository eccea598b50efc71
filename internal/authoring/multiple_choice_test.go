package authoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultipleChoice_OptionFloor(t *testing.T) {
	ids := NewCounter(0)
	mc := NewMultipleChoice(ids, false)
	require.Len(t, mc.Options, 2)

	for _, opt := range mc.Options {
		assert.ErrorIs(t, mc.DeleteOption(opt.ID), ErrMinimumOptions)
	}
	assert.Len(t, mc.Options, 2)

	added := mc.AddOption(ids)
	require.Len(t, mc.Options, 3)
	assert.False(t, added.IsCorrect)
	assert.Len(t, added.Inputs, 1)
	assert.Equal(t, "", added.Inputs[0].Text)

	require.NoError(t, mc.DeleteOption(mc.Options[0].ID))
	assert.Len(t, mc.Options, 2)
	assert.Equal(t, added.ID, mc.Options[1].ID)
}

func TestMultipleChoice_DeleteUnknownOption(t *testing.T) {
	mc := NewMultipleChoice(NewCounter(0), false)

	assert.ErrorIs(t, mc.DeleteOption("nope"), ErrOptionNotFound)
}

func TestMultipleChoice_Inputs(t *testing.T) {
	ids := NewCounter(0)
	mc := NewMultipleChoice(ids, false)
	opt := mc.Options[0]
	first := opt.Inputs[0].ID

	third, err := mc.AddInput(ids, opt.ID, first)
	require.NoError(t, err)
	second, err := mc.AddInput(ids, opt.ID, first)
	require.NoError(t, err)

	require.NoError(t, mc.SetInputText(opt.ID, first, "The"))
	require.NoError(t, mc.SetInputText(opt.ID, second.ID, "cat"))
	require.NoError(t, mc.SetInputText(opt.ID, third.ID, "sleeps"))

	inputs := mc.Options[0].Inputs
	require.Len(t, inputs, 3)
	assert.Equal(t, []string{first, second.ID, third.ID}, []string{inputs[0].ID, inputs[1].ID, inputs[2].ID})
	assert.Equal(t, "The cat sleeps", mc.Options[0].Label())

	require.NoError(t, mc.DeleteInput(opt.ID, second.ID))
	require.NoError(t, mc.DeleteInput(opt.ID, third.ID))
	assert.ErrorIs(t, mc.DeleteInput(opt.ID, first), ErrMinimumInputs)
	assert.Len(t, mc.Options[0].Inputs, 1)

	_, err = mc.AddInput(ids, opt.ID, "missing")
	assert.ErrorIs(t, err, ErrInputNotFound)
	_, err = mc.AddInput(ids, "missing", "")
	assert.ErrorIs(t, err, ErrOptionNotFound)
}

func TestMultipleChoice_ToggleCorrectAllowsSeveral(t *testing.T) {
	ids := NewCounter(0)
	mc := NewMultipleChoice(ids, false)
	mc.AddOption(ids)

	require.NoError(t, mc.ToggleCorrect(mc.Options[0].ID))
	require.NoError(t, mc.ToggleCorrect(mc.Options[2].ID))
	assert.Equal(t, []string{mc.Options[0].ID, mc.Options[2].ID}, mc.CorrectOptionIDs())

	require.NoError(t, mc.ToggleCorrect(mc.Options[0].ID))
	assert.Equal(t, []string{mc.Options[2].ID}, mc.CorrectOptionIDs())
}

func TestMultipleChoice_SingleAnswerMode(t *testing.T) {
	ids := NewCounter(0)
	mc := NewMultipleChoice(ids, true)

	require.NoError(t, mc.ToggleCorrect(mc.Options[0].ID))
	require.NoError(t, mc.ToggleCorrect(mc.Options[1].ID))

	assert.Equal(t, []string{mc.Options[1].ID}, mc.CorrectOptionIDs())
}
