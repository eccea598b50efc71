package validator

import (
	"fmt"
	"strings"

	"github.com/SAP-F-2025/question-authoring-service/internal/authoring"
)

// QuestionValidator checks that a draft's content is complete enough to
// publish. Editing never requires completeness.
type QuestionValidator struct{}

func NewQuestionValidator() *QuestionValidator {
	return &QuestionValidator{}
}

// ValidateContent returns every problem found, or nil.
func (v *QuestionValidator) ValidateContent(content authoring.Content) error {
	errs := v.validatePayload("", content.Payload)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (v *QuestionValidator) validatePayload(prefix string, p authoring.Payload) ValidationErrors {
	var errs ValidationErrors
	switch q := p.(type) {
	case nil:
		errs = errs.Add(prefix+"content", "required", "is required")
	case *authoring.Subjective:
		errs = append(errs, v.validateSubjective(prefix, q)...)
	case *authoring.FillInBlank:
		errs = append(errs, v.validateFillInBlank(prefix, q)...)
	case *authoring.Arrangement:
		errs = append(errs, v.validateArrangement(prefix, q)...)
	case *authoring.MultipleChoice:
		errs = append(errs, v.validateMultipleChoice(prefix, q)...)
	case *authoring.QuestionGroup:
		errs = append(errs, v.validateGroup(prefix, q)...)
	default:
		errs = errs.Add(prefix+"type", "question_type", fmt.Sprintf("unsupported question type %s", p.Type()))
	}
	return errs
}

func (v *QuestionValidator) validateSubjective(prefix string, q *authoring.Subjective) ValidationErrors {
	var errs ValidationErrors
	if isBlank(q.Stem) {
		errs = errs.Add(prefix+"stem", "required", "is required")
	}
	return errs
}

func (v *QuestionValidator) validateFillInBlank(prefix string, q *authoring.FillInBlank) ValidationErrors {
	var errs ValidationErrors
	if isBlank(q.Sentence) {
		return errs.Add(prefix+"sentence", "required", "is required")
	}
	if len(q.Blanks) == 0 {
		errs = errs.Add(prefix+"blanks", "min", "must contain at least 1 blank")
	}
	for _, b := range q.Blanks {
		if !strings.Contains(q.Sentence, authoring.Placeholder(b.ID)) {
			errs = errs.Add(prefix+"blanks", "placeholder", fmt.Sprintf("blank %d has no placeholder in the sentence", b.ID))
		}
	}
	return errs
}

func (v *QuestionValidator) validateArrangement(prefix string, q *authoring.Arrangement) ValidationErrors {
	var errs ValidationErrors
	if len(q.CorrectOrder) < 2 {
		return errs.Add(prefix+"sentence", "min", "must contain at least 2 words")
	}
	if !q.IsMixed() {
		errs = errs.Add(prefix+"mixed_words", "required", "select words to mix before publishing")
	}
	return errs
}

func (v *QuestionValidator) validateMultipleChoice(prefix string, q *authoring.MultipleChoice) ValidationErrors {
	var errs ValidationErrors
	if isBlank(q.Stem) {
		errs = errs.Add(prefix+"stem", "required", "is required")
	}
	if len(q.Options) < authoring.MinOptions {
		errs = errs.Add(prefix+"options", "min", fmt.Sprintf("must have at least %d options", authoring.MinOptions))
	}
	for i := range q.Options {
		if isBlank(q.Options[i].Label()) {
			errs = errs.Add(fmt.Sprintf("%soptions[%d]", prefix, i), "required", "option text is required")
		}
	}

	correct := len(q.CorrectOptionIDs())
	switch {
	case correct == 0:
		errs = errs.Add(prefix+"options", "correct", "must mark at least 1 correct option")
	case q.SingleAnswer && correct > 1:
		errs = errs.Add(prefix+"options", "correct", "must mark exactly 1 correct option")
	}
	return errs
}

func (v *QuestionValidator) validateGroup(prefix string, q *authoring.QuestionGroup) ValidationErrors {
	var errs ValidationErrors
	if isBlank(q.Title) {
		errs = errs.Add(prefix+"title", "required", "is required")
	}
	if len(q.Items) == 0 {
		errs = errs.Add(prefix+"items", "min", "must contain at least 1 question")
	}
	for i, item := range q.Items {
		errs = append(errs, v.validatePayload(fmt.Sprintf("%sitems[%d].", prefix, i), item.Question.Payload)...)
	}
	return errs
}

func isBlank(html string) bool {
	return authoring.StripMarkup(html) == ""
}
