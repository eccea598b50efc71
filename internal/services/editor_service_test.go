package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SAP-F-2025/question-authoring-service/internal/authoring"
	"github.com/SAP-F-2025/question-authoring-service/internal/models"
)

func requireRule(t *testing.T, err error, rule string) {
	t.Helper()
	var bre *BusinessRuleError
	require.ErrorAs(t, err, &bre)
	assert.Equal(t, rule, bre.Rule)
}

func TestEditorService_MultipleChoiceOptions(t *testing.T) {
	env := newTestEnv(t)
	d := env.create(t, models.MultipleChoice)
	editor := env.services.Editor()
	ctx := context.Background()

	resp, err := editor.AddOption(ctx, target(d), testUser)
	require.NoError(t, err)
	mc := resp.Content.Payload.(*authoring.MultipleChoice)
	require.Len(t, mc.Options, 3)
	assert.Equal(t, "5", mc.Options[2].ID)

	_, err = editor.SetInputText(ctx, target(d), "1", "2", &SetInputTextRequest{Text: "Paris"}, testUser)
	require.NoError(t, err)
	resp, err = editor.AddInput(ctx, target(d), "1", &AddInputRequest{AfterInputID: "2"}, testUser)
	require.NoError(t, err)
	mc = resp.Content.Payload.(*authoring.MultipleChoice)
	assert.Equal(t, []authoring.OptionInput{{ID: "2", Text: "Paris"}, {ID: "7"}}, mc.Options[0].Inputs)

	resp, err = editor.ToggleCorrect(ctx, target(d), "1", testUser)
	require.NoError(t, err)
	resp, err = editor.ToggleCorrect(ctx, target(d), "3", testUser)
	require.NoError(t, err)
	mc = resp.Content.Payload.(*authoring.MultipleChoice)
	assert.Equal(t, []string{"1", "3"}, mc.CorrectOptionIDs())

	_, err = editor.DeleteInput(ctx, target(d), "1", "7", testUser)
	require.NoError(t, err)
	_, err = editor.DeleteInput(ctx, target(d), "1", "2", testUser)
	requireRule(t, err, "input_minimum")

	_, err = editor.DeleteOption(ctx, target(d), "5", testUser)
	require.NoError(t, err)
	_, err = editor.DeleteOption(ctx, target(d), "3", testUser)
	requireRule(t, err, "option_minimum")

	_, err = editor.DeleteOption(ctx, target(d), "99", testUser)
	assert.True(t, IsNotFound(err))
	assert.ErrorIs(t, err, authoring.ErrOptionNotFound)
}

func TestEditorService_ObjectiveKeepsSingleAnswer(t *testing.T) {
	env := newTestEnv(t)
	d := env.create(t, models.Objective)
	ctx := context.Background()

	_, err := env.services.Editor().ToggleCorrect(ctx, target(d), "1", testUser)
	require.NoError(t, err)
	resp, err := env.services.Editor().ToggleCorrect(ctx, target(d), "3", testUser)
	require.NoError(t, err)

	mc := resp.Content.Payload.(*authoring.MultipleChoice)
	assert.True(t, mc.SingleAnswer)
	assert.Equal(t, []string{"3"}, mc.CorrectOptionIDs())
}

func TestEditorService_FillInBlankRejectionLeavesDraftUntouched(t *testing.T) {
	env := newTestEnv(t)
	d := env.create(t, models.FillInBlank)
	editor := env.services.Editor()
	ctx := context.Background()

	_, err := editor.SetText(ctx, target(d), &SetTextRequest{Field: authoring.FieldSentence, HTML: "the cat and the dog"}, testUser)
	require.NoError(t, err)
	before, err := editor.AddBlank(ctx, target(d), &SelectionRequest{Text: "cat", Start: 4, End: 7}, testUser)
	require.NoError(t, err)

	_, err = editor.AddBlank(ctx, target(d), &SelectionRequest{Text: "cat", Start: 20, End: 23}, testUser)
	requireRule(t, err, "blank_duplicate")

	_, err = editor.AddBlank(ctx, target(d), &SelectionRequest{Text: "  ", Start: 0, End: 2}, testUser)
	requireRule(t, err, "selection_empty")

	after, err := env.services.Draft().Get(ctx, d.ID, testUser)
	require.NoError(t, err)
	assert.Equal(t, before.Version, after.Version)
	assert.Equal(t, before.Content, after.Content)

	resp, err := editor.RemoveBlank(ctx, target(d), 1, testUser)
	require.NoError(t, err)
	fb := resp.Content.Payload.(*authoring.FillInBlank)
	assert.Equal(t, "the cat and the dog", fb.Sentence)
	assert.Empty(t, fb.Blanks)

	_, err = editor.RemoveBlank(ctx, target(d), 1, testUser)
	assert.True(t, IsNotFound(err))
}

func TestEditorService_ArrangementMix(t *testing.T) {
	env := newTestEnv(t)
	d := env.create(t, models.Arrangement)
	editor := env.services.Editor()
	ctx := context.Background()

	_, err := editor.SetText(ctx, target(d), &SetTextRequest{Field: authoring.FieldSentence, HTML: "<p>I like green apples</p>"}, testUser)
	require.NoError(t, err)

	_, err = editor.Remix(ctx, target(d), testUser)
	requireRule(t, err, "arrangement_not_mixed")

	resp, err := editor.Mix(ctx, target(d), &SelectionRequest{Text: "like green apples", Start: 2, End: 19}, testUser)
	require.NoError(t, err)
	a := resp.Content.Payload.(*authoring.Arrangement)
	assert.True(t, a.IsMixed())
	assert.Equal(t, []string{"I", "like", "green", "apples"}, a.CorrectOrder)
	assert.Equal(t, "I", a.MixedWords[0])
	assert.ElementsMatch(t, []string{"like", "green", "apples"}, a.MixedSpan())

	resp, err = editor.Remix(ctx, target(d), testUser)
	require.NoError(t, err)
	a = resp.Content.Payload.(*authoring.Arrangement)
	assert.Equal(t, "I", a.MixedWords[0])
	assert.ElementsMatch(t, []string{"like", "green", "apples"}, a.MixedSpan())

	_, err = editor.Mix(ctx, target(d), &SelectionRequest{Text: "red pears"}, testUser)
	requireRule(t, err, "selection_not_found")
}

func TestEditorService_TypeMismatch(t *testing.T) {
	env := newTestEnv(t)
	d := env.create(t, models.Subjective)
	ctx := context.Background()

	_, err := env.services.Editor().AddBlank(ctx, target(d), &SelectionRequest{Text: "x", End: 1}, testUser)
	requireRule(t, err, "question_type_mismatch")

	_, err = env.services.Editor().SetText(ctx, target(d), &SetTextRequest{Field: authoring.FieldSentence, HTML: "x"}, testUser)
	requireRule(t, err, "text_field_unsupported")

	resp, err := env.services.Editor().SetText(ctx, target(d), &SetTextRequest{Field: authoring.FieldAnswer, HTML: "<p>Sample</p>"}, testUser)
	require.NoError(t, err)
	assert.Equal(t, "<p>Sample</p>", resp.Content.Payload.(*authoring.Subjective).SampleAnswer)
}

func TestEditorService_GroupQuestions(t *testing.T) {
	env := newTestEnv(t)
	d := env.create(t, models.QuestionGroup)
	editor := env.services.Editor()
	ctx := context.Background()

	title := "Reading passage"
	_, err := editor.UpdateGroup(ctx, target(d), &UpdateGroupRequest{Title: &title}, testUser)
	require.NoError(t, err)

	resp, err := editor.AddGroupQuestion(ctx, target(d), testUser)
	require.NoError(t, err)
	g := resp.Content.Payload.(*authoring.QuestionGroup)
	require.Len(t, g.Items, 2)
	assert.Equal(t, "Reading passage", g.Title)
	assert.Equal(t, "2", g.Items[1].ID)

	_, err = editor.ChangeGroupQuestionType(ctx, target(d), "2", &ChangeTypeRequest{Type: models.FillInBlank}, testUser)
	require.NoError(t, err)

	child := DraftTarget{DraftID: d.ID, ItemID: "2"}
	_, err = editor.SetText(ctx, child, &SetTextRequest{Field: authoring.FieldSentence, HTML: "Hello world"}, testUser)
	require.NoError(t, err)
	resp, err = editor.AddBlank(ctx, child, &SelectionRequest{Text: "world", Start: 6, End: 11}, testUser)
	require.NoError(t, err)
	g = resp.Content.Payload.(*authoring.QuestionGroup)
	fb := g.Items[1].Question.Payload.(*authoring.FillInBlank)
	assert.Equal(t, "Hello {BLANK_3}", fb.Sentence)

	from, to := 1, 0
	resp, err = editor.ReorderGroupQuestions(ctx, target(d), &ReorderRequest{From: &from, To: &to}, testUser)
	require.NoError(t, err)
	g = resp.Content.Payload.(*authoring.QuestionGroup)
	assert.Equal(t, "2", g.Items[0].ID)
	assert.Equal(t, "Question 1", g.Items[0].Title)
	assert.Equal(t, "Question 2", g.Items[1].Title)

	resp, err = editor.ReorderGroupQuestions(ctx, target(d), &ReorderRequest{ActiveID: "1", OverID: "2"}, testUser)
	require.NoError(t, err)
	g = resp.Content.Payload.(*authoring.QuestionGroup)
	assert.Equal(t, "1", g.Items[0].ID)

	_, err = editor.ReorderGroupQuestions(ctx, target(d), &ReorderRequest{}, testUser)
	assert.True(t, IsValidation(err))

	_, err = editor.ChangeGroupQuestionType(ctx, target(d), "1", &ChangeTypeRequest{Type: models.QuestionGroup}, testUser)
	requireRule(t, err, "group_nested")

	resp, err = editor.DeleteGroupQuestion(ctx, target(d), "1", testUser)
	require.NoError(t, err)
	g = resp.Content.Payload.(*authoring.QuestionGroup)
	require.Len(t, g.Items, 1)
	assert.Equal(t, "Question 1", g.Items[0].Title)

	_, err = editor.DeleteGroupQuestion(ctx, target(d), "2", testUser)
	requireRule(t, err, "group_minimum")

	_, err = editor.SetText(ctx, DraftTarget{DraftID: d.ID, ItemID: "42"}, &SetTextRequest{HTML: "x"}, testUser)
	assert.True(t, IsNotFound(err))
}

func TestEditorService_ItemTargetRequiresGroup(t *testing.T) {
	env := newTestEnv(t)
	d := env.create(t, models.Subjective)

	_, err := env.services.Editor().SetText(context.Background(), DraftTarget{DraftID: d.ID, ItemID: "1"}, &SetTextRequest{HTML: "x"}, testUser)
	assert.ErrorIs(t, err, ErrInvalidTarget)
}

func TestEditorService_ExpectedVersion(t *testing.T) {
	env := newTestEnv(t)
	d := env.create(t, models.Subjective)
	editor := env.services.Editor()
	ctx := context.Background()

	resp, err := editor.SetText(ctx, DraftTarget{DraftID: d.ID, ExpectedVersion: 1}, &SetTextRequest{HTML: "first"}, testUser)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Version)

	_, err = editor.SetText(ctx, DraftTarget{DraftID: d.ID, ExpectedVersion: 1}, &SetTextRequest{HTML: "stale"}, testUser)
	assert.ErrorIs(t, err, ErrDraftConflict)

	got, err := env.services.Draft().Get(ctx, d.ID, testUser)
	require.NoError(t, err)
	assert.Equal(t, "first", got.Content.Payload.(*authoring.Subjective).Stem)
}

func TestEditorService_Focus(t *testing.T) {
	env := newTestEnv(t)
	d := env.create(t, models.FillInBlank)
	editor := env.services.Editor()
	ctx := context.Background()

	resp, err := editor.SetFocus(ctx, target(d), &FocusRequest{Region: "stem", Focused: true}, testUser)
	require.NoError(t, err)
	assert.True(t, resp.Focus.ToolbarVisible("stem"))

	resp, err = editor.SetFocus(ctx, target(d), &FocusRequest{Region: "sentence", Focused: false}, testUser)
	require.NoError(t, err)
	assert.Equal(t, authoring.Region("stem"), resp.Focus.Owner)

	resp, err = editor.SetFocus(ctx, target(d), &FocusRequest{Region: "stem", Focused: false}, testUser)
	require.NoError(t, err)
	assert.False(t, resp.Focus.ToolbarVisible("stem"))

	_, err = editor.SetFocus(ctx, target(d), &FocusRequest{}, testUser)
	assert.True(t, IsValidation(err))
}
