package authoring

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/SAP-F-2025/question-authoring-service/internal/models"
)

var placeholderPattern = regexp.MustCompile(`\{BLANK_(\d+)\}`)

// Placeholder returns the token that stands in for blank id inside a sentence.
func Placeholder(id int64) string {
	return "{BLANK_" + strconv.FormatInt(id, 10) + "}"
}

type Blank struct {
	ID    int64  `json:"id"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"text"`
}

// FillInBlank is a sentence in which selected spans have been replaced by
// {BLANK_<id>} placeholders.
type FillInBlank struct {
	Stem     string  `json:"stem"`
	Sentence string  `json:"sentence"`
	Blanks   []Blank `json:"blanks"`
}

func (f *FillInBlank) Type() models.QuestionType { return models.FillInBlank }

func (f *FillInBlank) SetStem(content string) { f.Stem = content }

// SetSentence replaces the sentence with the plain text of content. Blanks
// whose placeholder no longer appears are dropped.
func (f *FillInBlank) SetSentence(content string) {
	f.Sentence = StripMarkup(content)

	kept := f.Blanks[:0]
	for _, b := range f.Blanks {
		if strings.Contains(f.Sentence, Placeholder(b.ID)) {
			kept = append(kept, b)
		}
	}
	f.Blanks = kept
}

// AddBlank turns the first occurrence of selectedText into a blank.
// Rejections are checked in order: empty selection, duplicate text, then
// positional overlap or textual containment with an existing blank.
func (f *FillInBlank) AddBlank(ids IDGenerator, selectedText string, start, end int) (Blank, error) {
	text := strings.TrimSpace(selectedText)
	if text == "" {
		return Blank{}, ErrEmptySelection
	}
	if start < 0 || end < start {
		return Blank{}, ErrInvalidRange
	}

	for _, b := range f.Blanks {
		if strings.TrimSpace(b.Text) == text {
			return Blank{}, fmt.Errorf("%w: %q", ErrDuplicateBlank, text)
		}
	}

	for _, b := range f.Blanks {
		existing := strings.TrimSpace(b.Text)
		if start < b.End && b.Start < end ||
			strings.Contains(existing, text) || strings.Contains(text, existing) {
			return Blank{}, fmt.Errorf("%w: %q conflicts with %q", ErrOverlappingBlank, text, existing)
		}
	}

	idx := indexOutsidePlaceholders(f.Sentence, text)
	if idx < 0 {
		return Blank{}, fmt.Errorf("%w: %q", ErrSelectionNotFound, text)
	}

	blank := Blank{ID: ids.NextInt(), Start: start, End: end, Text: text}
	f.Sentence = f.Sentence[:idx] + Placeholder(blank.ID) + f.Sentence[idx+len(text):]
	f.Blanks = append(f.Blanks, blank)
	return blank, nil
}

// RemoveBlank deletes a blank and puts its text back where its placeholder
// stood.
func (f *FillInBlank) RemoveBlank(id int64) error {
	for i, b := range f.Blanks {
		if b.ID != id {
			continue
		}
		f.Sentence = strings.Replace(f.Sentence, Placeholder(id), b.Text, 1)
		f.Blanks = append(f.Blanks[:i], f.Blanks[i+1:]...)
		return nil
	}
	return ErrBlankNotFound
}

// Blank looks up a blank by id.
func (f *FillInBlank) Blank(id int64) (Blank, bool) {
	for _, b := range f.Blanks {
		if b.ID == id {
			return b, true
		}
	}
	return Blank{}, false
}

// Display returns the sentence with every known placeholder replaced by its
// blank's text.
func (f *FillInBlank) Display() string {
	var b strings.Builder
	for _, seg := range RenderWithBlanks(f.Sentence, f.Blanks) {
		if seg.Blank != nil {
			b.WriteString(seg.Blank.Text)
		} else {
			b.WriteString(seg.Text)
		}
	}
	return b.String()
}

// BlankRef marks a blank inside a rendered sentence. Number is the blank's
// 1-based position by first placeholder occurrence.
type BlankRef struct {
	ID     int64  `json:"id"`
	Number int    `json:"number"`
	Text   string `json:"text"`
}

// Segment is either literal text or a blank.
type Segment struct {
	Text  string    `json:"text,omitempty"`
	Blank *BlankRef `json:"blank,omitempty"`
}

// RenderWithBlanks splits sentence on placeholders. Placeholders without a
// matching blank are kept as literal text.
func RenderWithBlanks(sentence string, blanks []Blank) []Segment {
	numbers := numberBlanks(sentence, blanks)
	byID := make(map[int64]Blank, len(blanks))
	for _, b := range blanks {
		byID[b.ID] = b
	}

	var segments []Segment
	appendLiteral := func(s string) {
		if s == "" {
			return
		}
		if n := len(segments); n > 0 && segments[n-1].Blank == nil {
			segments[n-1].Text += s
			return
		}
		segments = append(segments, Segment{Text: s})
	}

	last := 0
	for _, m := range placeholderPattern.FindAllStringSubmatchIndex(sentence, -1) {
		appendLiteral(sentence[last:m[0]])
		last = m[1]

		id, err := strconv.ParseInt(sentence[m[2]:m[3]], 10, 64)
		b, known := byID[id]
		if err != nil || !known {
			appendLiteral(sentence[m[0]:m[1]])
			continue
		}
		segments = append(segments, Segment{Blank: &BlankRef{ID: b.ID, Number: numbers[b.ID], Text: b.Text}})
	}
	appendLiteral(sentence[last:])
	return segments
}

// numberBlanks orders blanks by where their placeholder first appears.
func numberBlanks(sentence string, blanks []Blank) map[int64]int {
	type located struct {
		id  int64
		pos int
	}
	var present []located
	for _, b := range blanks {
		if pos := strings.Index(sentence, Placeholder(b.ID)); pos >= 0 {
			present = append(present, located{id: b.ID, pos: pos})
		}
	}
	sort.SliceStable(present, func(i, j int) bool { return present[i].pos < present[j].pos })

	numbers := make(map[int64]int, len(present))
	for i, p := range present {
		numbers[p.id] = i + 1
	}
	return numbers
}

// indexOutsidePlaceholders finds the first occurrence of text that does
// not overlap an existing placeholder token.
func indexOutsidePlaceholders(sentence, text string) int {
	tokens := placeholderPattern.FindAllStringIndex(sentence, -1)
	for from := 0; from <= len(sentence); {
		rel := strings.Index(sentence[from:], text)
		if rel < 0 {
			return -1
		}
		idx := from + rel
		end := idx + len(text)
		clash := false
		for _, tok := range tokens {
			if idx < tok[1] && tok[0] < end {
				clash = true
				from = tok[1]
				break
			}
		}
		if !clash {
			return idx
		}
	}
	return -1
}

// AnswerKey maps each blank's display number to its text.
func (f *FillInBlank) AnswerKey() map[int]string {
	numbers := numberBlanks(f.Sentence, f.Blanks)
	key := make(map[int]string, len(numbers))
	for _, b := range f.Blanks {
		if n, ok := numbers[b.ID]; ok {
			key[n] = b.Text
		}
	}
	return key
}
