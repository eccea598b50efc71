package authoring

import "errors"

// Model rejections. Every operation returning one of these has left its
// receiver untouched.
var (
	ErrEmptySelection    = errors.New("selection is empty")
	ErrInvalidRange      = errors.New("selection range is invalid")
	ErrSelectionNotFound = errors.New("selection not found in sentence")
	ErrDuplicateBlank    = errors.New("a blank with the same text already exists")
	ErrOverlappingBlank  = errors.New("selection overlaps an existing blank")
	ErrBlankNotFound     = errors.New("blank not found")
	ErrNothingMixed      = errors.New("no words have been mixed")

	ErrOptionNotFound = errors.New("option not found")
	ErrInputNotFound  = errors.New("option input not found")
	ErrMinimumOptions = errors.New("a question needs at least 2 options")
	ErrMinimumInputs  = errors.New("an option needs at least 1 input")

	ErrQuestionNotFound  = errors.New("group question not found")
	ErrMinimumQuestions  = errors.New("a group needs at least 1 question")
	ErrIndexOutOfRange   = errors.New("reorder index out of range")
	ErrNestedGroup       = errors.New("question groups cannot be nested")
	ErrUnknownType       = errors.New("unknown question type")
	ErrPayloadMismatch   = errors.New("operation does not apply to this question type")
	ErrUnsupportedField  = errors.New("text field does not apply to this question type")
	ErrDuplicateCategory = errors.New("duplicate category id")
)
