package repositories

import (
	"errors"

	"github.com/SAP-F-2025/question-authoring-service/internal/models"
)

var (
	ErrNotFound        = errors.New("record not found")
	ErrVersionConflict = errors.New("record was modified concurrently")
)

// ===== SHARED FILTER STRUCTS =====

type DraftFilters struct {
	Type           *models.QuestionType    `json:"type"`
	Difficulty     *models.DifficultyLevel `json:"difficulty"`
	Status         *models.DraftStatus     `json:"status"`
	CategoryPrefix string                  `json:"category_prefix"` // matches paths starting with it
	Search         string                  `json:"search"`
	Limit          int                     `json:"limit"`
	Offset         int                     `json:"offset"`
	SortBy         string                  `json:"sort_by"`    // "created_at", "updated_at", "title"
	SortOrder      string                  `json:"sort_order"` // "asc", "desc"
}

// Normalize clamps paging and sorting to supported values.
func (f DraftFilters) Normalize() DraftFilters {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	switch f.SortBy {
	case "created_at", "updated_at", "title":
	default:
		f.SortBy = "updated_at"
	}
	if f.SortOrder != "asc" {
		f.SortOrder = "desc"
	}
	return f
}

// ===== SHARED STATISTICS STRUCTS =====

type DraftStats struct {
	Total      int64                         `json:"total"`
	Published  int64                         `json:"published"`
	ByType     map[models.QuestionType]int64 `json:"by_type"`
	ByCategory map[string]int64              `json:"by_category"`
}
