package authoring

import (
	"fmt"
	"strings"

	"github.com/SAP-F-2025/question-authoring-service/internal/models"
)

// Selection is a span of text chosen in the editor.
type Selection struct {
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

type WordToken struct {
	Word    string `json:"word"`
	Index   int    `json:"index"`
	IsMixed bool   `json:"is_mixed"`
}

// Arrangement is a word-ordering question. CorrectOrder always holds the
// sentence's words in their original order; only the selected span is
// mixed.
type Arrangement struct {
	Stem                   string      `json:"stem"`
	Sentence               string      `json:"sentence"`
	CorrectOrder           []string    `json:"correct_order"`
	MixedWords             []string    `json:"mixed_words"`
	MixedWordsWithBorder   []WordToken `json:"mixed_words_with_border"`
	CorrectOrderWithBorder []WordToken `json:"correct_order_with_border"`
}

func (a *Arrangement) Type() models.QuestionType { return models.Arrangement }

func (a *Arrangement) SetStem(content string) { a.Stem = content }

// SetSentence resets the question to content's words. Any previous mix is
// discarded.
func (a *Arrangement) SetSentence(content string) {
	a.Sentence = StripMarkup(content)
	a.CorrectOrder = strings.Fields(a.Sentence)
	a.MixedWords = nil
	a.MixedWordsWithBorder = nil
	a.CorrectOrderWithBorder = nil
}

// IsMixed reports whether a mix has been applied since the sentence was set.
func (a *Arrangement) IsMixed() bool {
	return len(a.MixedWords) > 0
}

// Mix shuffles the words of sel and splices them back in place of the first
// run of words in CorrectOrder that matches the selection.
func (a *Arrangement) Mix(sel Selection, shuffler Shuffler) error {
	words := strings.Fields(sel.Text)
	if len(words) == 0 {
		return ErrEmptySelection
	}

	span := findSpan(a.CorrectOrder, words)
	if span < 0 {
		return fmt.Errorf("%w: %q", ErrSelectionNotFound, strings.Join(words, " "))
	}

	shuffled := append([]string(nil), words...)
	shuffleStrings(shuffler, shuffled)

	mixed := make([]string, 0, len(a.CorrectOrder))
	mixed = append(mixed, a.CorrectOrder[:span]...)
	mixed = append(mixed, shuffled...)
	mixed = append(mixed, a.CorrectOrder[span+len(words):]...)

	a.MixedWords = mixed
	a.MixedWordsWithBorder = tagSpan(mixed, span, len(words))
	a.CorrectOrderWithBorder = tagSpan(a.CorrectOrder, span, len(words))
	return nil
}

// Remix re-permutes only the tokens flagged as mixed; the others keep
// their positions.
func (a *Arrangement) Remix(shuffler Shuffler) error {
	var positions []int
	for i, tok := range a.MixedWordsWithBorder {
		if tok.IsMixed {
			positions = append(positions, i)
		}
	}
	if len(positions) == 0 {
		return ErrNothingMixed
	}

	words := make([]string, len(positions))
	for i, pos := range positions {
		words[i] = a.MixedWordsWithBorder[pos].Word
	}
	shuffleStrings(shuffler, words)

	for i, pos := range positions {
		a.MixedWordsWithBorder[pos].Word = words[i]
		a.MixedWords[pos] = words[i]
	}
	return nil
}

// MixedSpan returns the words currently flagged as mixed, in display order.
func (a *Arrangement) MixedSpan() []string {
	var out []string
	for _, tok := range a.MixedWordsWithBorder {
		if tok.IsMixed {
			out = append(out, tok.Word)
		}
	}
	return out
}

func findSpan(order, words []string) int {
	for i := 0; i+len(words) <= len(order); i++ {
		match := true
		for j, w := range words {
			if order[i+j] != w {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

func tagSpan(words []string, start, length int) []WordToken {
	tokens := make([]WordToken, len(words))
	for i, w := range words {
		tokens[i] = WordToken{
			Word:    w,
			Index:   i,
			IsMixed: i >= start && i < start+length,
		}
	}
	return tokens
}
