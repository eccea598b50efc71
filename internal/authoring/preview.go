package authoring

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/SAP-F-2025/question-authoring-service/internal/models"
)

type OptionPreview struct {
	ID        string `json:"id"`
	Letter    string `json:"letter"`
	Label     string `json:"label"`
	IsCorrect bool   `json:"is_correct"`
}

type ChildPreview struct {
	ID      string  `json:"id"`
	Number  int     `json:"number"`
	Title   string  `json:"title"`
	Preview Preview `json:"preview"`
}

// Preview is the read-only projection of a question shown next to the
// editor. Only the fields relevant to Type are set.
type Preview struct {
	Type models.QuestionType `json:"type"`
	Stem string              `json:"stem,omitempty"`

	SampleAnswer string `json:"sample_answer,omitempty"`

	Segments []Segment `json:"segments,omitempty"`

	Words  []WordToken `json:"words,omitempty"`
	Answer []WordToken `json:"answer,omitempty"`

	Options []OptionPreview `json:"options,omitempty"`

	Title       string         `json:"title,omitempty"`
	Description string         `json:"description,omitempty"`
	Children    []ChildPreview `json:"children,omitempty"`
}

func Render(c Content) Preview {
	return RenderPayload(c.Payload)
}

func RenderPayload(p Payload) Preview {
	switch q := p.(type) {
	case *Subjective:
		return Preview{Type: q.Type(), Stem: q.Stem, SampleAnswer: q.SampleAnswer}
	case *FillInBlank:
		return Preview{Type: q.Type(), Stem: q.Stem, Segments: RenderWithBlanks(q.Sentence, q.Blanks)}
	case *Arrangement:
		return renderArrangement(q)
	case *MultipleChoice:
		return renderMultipleChoice(q)
	case *QuestionGroup:
		return renderGroup(q)
	default:
		return Preview{}
	}
}

func renderArrangement(a *Arrangement) Preview {
	pv := Preview{Type: a.Type(), Stem: a.Stem}
	if a.IsMixed() {
		pv.Words = a.MixedWordsWithBorder
		pv.Answer = a.CorrectOrderWithBorder
		return pv
	}
	plain := tagSpan(a.CorrectOrder, 0, 0)
	pv.Words = plain
	pv.Answer = plain
	return pv
}

func renderMultipleChoice(m *MultipleChoice) Preview {
	pv := Preview{Type: m.Type(), Stem: m.Stem}
	for i := range m.Options {
		opt := &m.Options[i]
		pv.Options = append(pv.Options, OptionPreview{
			ID:        opt.ID,
			Letter:    optionLetter(i),
			Label:     opt.Label(),
			IsCorrect: opt.IsCorrect,
		})
	}
	return pv
}

func renderGroup(g *QuestionGroup) Preview {
	pv := Preview{Type: g.Type(), Title: g.Title, Description: g.Description}
	for i, item := range g.Items {
		pv.Children = append(pv.Children, ChildPreview{
			ID:      item.ID,
			Number:  i + 1,
			Title:   item.Title,
			Preview: Render(item.Question),
		})
	}
	return pv
}

func optionLetter(i int) string {
	if i < 26 {
		return string(rune('A' + i))
	}
	return strconv.Itoa(i + 1)
}

// Text renders the preview as plain text, blanks shown as numbered gaps.
func (p Preview) Text() string {
	var lines []string
	add := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			lines = append(lines, s)
		}
	}

	add(StripMarkup(p.Stem))
	switch p.Type {
	case models.FillInBlank:
		var b strings.Builder
		for _, seg := range p.Segments {
			if seg.Blank != nil {
				fmt.Fprintf(&b, "(%d)____", seg.Blank.Number)
			} else {
				b.WriteString(seg.Text)
			}
		}
		add(b.String())
	case models.Arrangement:
		add(joinWords(p.Words, " / "))
	case models.MultipleChoice, models.Objective:
		for _, o := range p.Options {
			add(o.Letter + ". " + o.Label)
		}
	case models.QuestionGroup:
		add(p.Title)
		add(StripMarkup(p.Description))
		for _, child := range p.Children {
			add(child.Title + ": " + child.Preview.Text())
		}
	}
	return strings.Join(lines, "\n")
}

// AnswerText renders the answer key as plain text.
func (p Preview) AnswerText() string {
	switch p.Type {
	case models.Subjective:
		return StripMarkup(p.SampleAnswer)
	case models.FillInBlank:
		var parts []string
		for _, seg := range p.Segments {
			if seg.Blank != nil {
				parts = append(parts, fmt.Sprintf("(%d) %s", seg.Blank.Number, seg.Blank.Text))
			}
		}
		return strings.Join(parts, "; ")
	case models.Arrangement:
		return joinWords(p.Answer, " ")
	case models.MultipleChoice, models.Objective:
		var letters []string
		for _, o := range p.Options {
			if o.IsCorrect {
				letters = append(letters, o.Letter)
			}
		}
		return strings.Join(letters, ", ")
	case models.QuestionGroup:
		var parts []string
		for _, child := range p.Children {
			parts = append(parts, child.Title+": "+child.Preview.AnswerText())
		}
		return strings.Join(parts, "\n")
	}
	return ""
}

func joinWords(tokens []WordToken, sep string) string {
	words := make([]string, len(tokens))
	for i, t := range tokens {
		words[i] = t.Word
	}
	return strings.Join(words, sep)
}
