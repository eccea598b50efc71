package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type DraftStatus string

const (
	DraftStatusEditing   DraftStatus = "editing"
	DraftStatusPublished DraftStatus = "published"
)

// QuestionSettings is the metadata collected on the settings screen and
// carried into the editor when a draft is opened.
type QuestionSettings struct {
	CategoryPath string          `json:"category_path" validate:"required,category_path"`
	Difficulty   DifficultyLevel `json:"difficulty" validate:"required,difficulty_level"`
	Price        int64           `json:"price" validate:"min=0,max=100000000"` // minor currency units
}

// Draft is a question under composition. Content holds the tagged
// question payload as JSON; Sequence is the last id handed out inside it.
type Draft struct {
	ID           string          `json:"id" gorm:"primaryKey;size:36"`
	Title        string          `json:"title" gorm:"not null;size:200"`
	Type         QuestionType    `json:"type" gorm:"not null;index;size:30"`
	CategoryPath string          `json:"category_path" gorm:"size:500;index"`
	Difficulty   DifficultyLevel `json:"difficulty" gorm:"size:20;default:medium;index"`
	Price        int64           `json:"price" gorm:"default:0"`
	Status       DraftStatus     `json:"status" gorm:"size:20;default:editing;index"`

	Content    datatypes.JSON `json:"content" gorm:"type:jsonb"`
	FocusOwner string         `json:"focus_owner" gorm:"size:100"`
	Sequence   int64          `json:"-" gorm:"default:0"`

	// Metadata
	CreatedBy   string         `json:"created_by" gorm:"not null;index;size:255"`
	PublishedAt *time.Time     `json:"published_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	// Version control
	Version int `json:"version" gorm:"default:1"`
}

func (Draft) TableName() string {
	return "question_drafts"
}

// Settings returns the draft's settings-screen metadata.
func (d *Draft) Settings() QuestionSettings {
	return QuestionSettings{
		CategoryPath: d.CategoryPath,
		Difficulty:   d.Difficulty,
		Price:        d.Price,
	}
}

// IsEditable reports whether the draft still accepts content changes.
func (d *Draft) IsEditable() bool {
	return d.Status != DraftStatusPublished
}

// Clone returns a copy that shares no mutable state with d.
func (d *Draft) Clone() *Draft {
	cp := *d
	if d.Content != nil {
		cp.Content = append(datatypes.JSON(nil), d.Content...)
	}
	if d.PublishedAt != nil {
		t := *d.PublishedAt
		cp.PublishedAt = &t
	}
	return &cp
}
