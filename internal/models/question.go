package models

type QuestionType string

const (
	Subjective     QuestionType = "subjective"
	Objective      QuestionType = "objective"
	MultipleChoice QuestionType = "multiple_choice"
	FillInBlank    QuestionType = "fill_in_blank"
	Arrangement    QuestionType = "arrangement"
	QuestionGroup  QuestionType = "group"
)

// QuestionTypes lists every type a draft may be created with.
var QuestionTypes = []QuestionType{
	Subjective,
	Objective,
	MultipleChoice,
	FillInBlank,
	Arrangement,
	QuestionGroup,
}

// IsValid reports whether t is a known question type.
func (t QuestionType) IsValid() bool {
	for _, known := range QuestionTypes {
		if t == known {
			return true
		}
	}
	return false
}

type DifficultyLevel string

const (
	DifficultyEasy   DifficultyLevel = "easy"
	DifficultyMedium DifficultyLevel = "medium"
	DifficultyHard   DifficultyLevel = "hard"
)

var DifficultyLevels = []DifficultyLevel{
	DifficultyEasy,
	DifficultyMedium,
	DifficultyHard,
}

func (d DifficultyLevel) IsValid() bool {
	for _, known := range DifficultyLevels {
		if d == known {
			return true
		}
	}
	return false
}
