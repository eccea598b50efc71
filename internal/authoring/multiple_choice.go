package authoring

import (
	"strings"

	"github.com/SAP-F-2025/question-authoring-service/internal/models"
)

const (
	MinOptions = 2
	MinInputs  = 1
)

type OptionInput struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Option is one answer choice. Multi-part answers ("The ___ is ___") use
// several inputs.
type Option struct {
	ID        string        `json:"id"`
	Inputs    []OptionInput `json:"inputs"`
	IsCorrect bool          `json:"is_correct"`
}

// Label joins the option's inputs with single spaces.
func (o *Option) Label() string {
	texts := make([]string, len(o.Inputs))
	for i, in := range o.Inputs {
		texts[i] = in.Text
	}
	return strings.Join(texts, " ")
}

// MultipleChoice backs both the multiple_choice and objective types. In
// single-answer (objective) mode at most one option is correct.
type MultipleChoice struct {
	Stem         string   `json:"stem"`
	SingleAnswer bool     `json:"single_answer"`
	Options      []Option `json:"options"`
}

// NewMultipleChoice returns a question with the minimum number of empty
// options.
func NewMultipleChoice(ids IDGenerator, singleAnswer bool) *MultipleChoice {
	mc := &MultipleChoice{SingleAnswer: singleAnswer}
	for i := 0; i < MinOptions; i++ {
		mc.AddOption(ids)
	}
	return mc
}

func (m *MultipleChoice) Type() models.QuestionType {
	if m.SingleAnswer {
		return models.Objective
	}
	return models.MultipleChoice
}

func (m *MultipleChoice) SetStem(content string) { m.Stem = content }

// AddOption appends an incorrect option with one empty input.
func (m *MultipleChoice) AddOption(ids IDGenerator) Option {
	opt := Option{
		ID:     ids.NextString(),
		Inputs: []OptionInput{{ID: ids.NextString()}},
	}
	m.Options = append(m.Options, opt)
	return opt
}

// DeleteOption refuses to go below MinOptions.
func (m *MultipleChoice) DeleteOption(optionID string) error {
	idx := m.optionIndex(optionID)
	if idx < 0 {
		return ErrOptionNotFound
	}
	if len(m.Options) <= MinOptions {
		return ErrMinimumOptions
	}
	m.Options = append(m.Options[:idx], m.Options[idx+1:]...)
	return nil
}

// AddInput inserts an empty input right after afterInputID. An empty
// afterInputID appends.
func (m *MultipleChoice) AddInput(ids IDGenerator, optionID, afterInputID string) (OptionInput, error) {
	opt, err := m.option(optionID)
	if err != nil {
		return OptionInput{}, err
	}

	pos := len(opt.Inputs)
	if afterInputID != "" {
		idx := inputIndex(opt, afterInputID)
		if idx < 0 {
			return OptionInput{}, ErrInputNotFound
		}
		pos = idx + 1
	}

	in := OptionInput{ID: ids.NextString()}
	opt.Inputs = append(opt.Inputs, OptionInput{})
	copy(opt.Inputs[pos+1:], opt.Inputs[pos:])
	opt.Inputs[pos] = in
	return in, nil
}

// DeleteInput refuses to leave an option without inputs.
func (m *MultipleChoice) DeleteInput(optionID, inputID string) error {
	opt, err := m.option(optionID)
	if err != nil {
		return err
	}
	idx := inputIndex(opt, inputID)
	if idx < 0 {
		return ErrInputNotFound
	}
	if len(opt.Inputs) <= MinInputs {
		return ErrMinimumInputs
	}
	opt.Inputs = append(opt.Inputs[:idx], opt.Inputs[idx+1:]...)
	return nil
}

func (m *MultipleChoice) SetInputText(optionID, inputID, text string) error {
	opt, err := m.option(optionID)
	if err != nil {
		return err
	}
	idx := inputIndex(opt, inputID)
	if idx < 0 {
		return ErrInputNotFound
	}
	opt.Inputs[idx].Text = text
	return nil
}

// ToggleCorrect flips an option's correctness. Several options may be
// correct unless the question is in single-answer mode.
func (m *MultipleChoice) ToggleCorrect(optionID string) error {
	opt, err := m.option(optionID)
	if err != nil {
		return err
	}
	opt.IsCorrect = !opt.IsCorrect

	if m.SingleAnswer && opt.IsCorrect {
		for i := range m.Options {
			if m.Options[i].ID != optionID {
				m.Options[i].IsCorrect = false
			}
		}
	}
	return nil
}

// CorrectOptionIDs returns the ids of correct options in display order.
func (m *MultipleChoice) CorrectOptionIDs() []string {
	var ids []string
	for _, o := range m.Options {
		if o.IsCorrect {
			ids = append(ids, o.ID)
		}
	}
	return ids
}

func (m *MultipleChoice) option(optionID string) (*Option, error) {
	idx := m.optionIndex(optionID)
	if idx < 0 {
		return nil, ErrOptionNotFound
	}
	return &m.Options[idx], nil
}

func (m *MultipleChoice) optionIndex(optionID string) int {
	for i := range m.Options {
		if m.Options[i].ID == optionID {
			return i
		}
	}
	return -1
}

func inputIndex(opt *Option, inputID string) int {
	for i := range opt.Inputs {
		if opt.Inputs[i].ID == inputID {
			return i
		}
	}
	return -1
}
