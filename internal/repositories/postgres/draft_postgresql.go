package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SAP-F-2025/question-authoring-service/internal/models"
	"github.com/SAP-F-2025/question-authoring-service/internal/repositories"
	"gorm.io/gorm"
)

type DraftPostgreSQL struct {
	db *gorm.DB
}

func NewDraftPostgreSQL(db *gorm.DB) repositories.DraftRepository {
	return &DraftPostgreSQL{db: db}
}

// Create inserts a new draft at version 1
func (d *DraftPostgreSQL) Create(ctx context.Context, draft *models.Draft) error {
	draft.Version = 1
	if draft.Status == "" {
		draft.Status = models.DraftStatusEditing
	}
	if err := d.db.WithContext(ctx).Create(draft).Error; err != nil {
		return fmt.Errorf("failed to create draft: %w", err)
	}
	return nil
}

// GetByID retrieves a draft by ID
func (d *DraftPostgreSQL) GetByID(ctx context.Context, id string) (*models.Draft, error) {
	var draft models.Draft
	err := d.db.WithContext(ctx).First(&draft, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}
	return &draft, nil
}

// Update writes the draft only if nobody else saved it since it was read
func (d *DraftPostgreSQL) Update(ctx context.Context, draft *models.Draft) error {
	expected := draft.Version
	now := time.Now()

	result := d.db.WithContext(ctx).
		Model(&models.Draft{}).
		Where("id = ? AND version = ?", draft.ID, expected).
		Updates(map[string]interface{}{
			"title":         draft.Title,
			"type":          draft.Type,
			"category_path": draft.CategoryPath,
			"difficulty":    draft.Difficulty,
			"price":         draft.Price,
			"status":        draft.Status,
			"content":       draft.Content,
			"focus_owner":   draft.FocusOwner,
			"sequence":      draft.Sequence,
			"published_at":  draft.PublishedAt,
			"updated_at":    now,
			"version":       gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update draft: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := d.db.WithContext(ctx).Model(&models.Draft{}).Where("id = ?", draft.ID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check draft: %w", err)
		}
		if count == 0 {
			return repositories.ErrNotFound
		}
		return repositories.ErrVersionConflict
	}

	draft.Version = expected + 1
	draft.UpdatedAt = now
	return nil
}

// Delete soft deletes a draft
func (d *DraftPostgreSQL) Delete(ctx context.Context, id string) error {
	result := d.db.WithContext(ctx).Delete(&models.Draft{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete draft: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// List retrieves a creator's drafts with filters and pagination
func (d *DraftPostgreSQL) List(ctx context.Context, creatorID string, filters repositories.DraftFilters) ([]*models.Draft, int64, error) {
	filters = filters.Normalize()
	query := d.applyFilters(d.db.WithContext(ctx).Model(&models.Draft{}).Where("created_by = ?", creatorID), filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var drafts []*models.Draft
	err := d.applyPaginationAndSort(query, filters).Find(&drafts).Error
	if err != nil {
		return nil, 0, err
	}
	return drafts, total, nil
}

// GetStats counts a creator's drafts by status, type and category
func (d *DraftPostgreSQL) GetStats(ctx context.Context, creatorID string) (*repositories.DraftStats, error) {
	stats := &repositories.DraftStats{
		ByType:     make(map[models.QuestionType]int64),
		ByCategory: make(map[string]int64),
	}
	base := func() *gorm.DB {
		return d.db.WithContext(ctx).Model(&models.Draft{}).Where("created_by = ?", creatorID)
	}

	if err := base().Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := base().Where("status = ?", models.DraftStatusPublished).Count(&stats.Published).Error; err != nil {
		return nil, err
	}

	var byType []struct {
		Type  models.QuestionType
		Count int64
	}
	if err := base().Select("type, count(*) as count").Group("type").Scan(&byType).Error; err != nil {
		return nil, err
	}
	for _, row := range byType {
		stats.ByType[row.Type] = row.Count
	}

	var byCategory []struct {
		CategoryPath string
		Count        int64
	}
	if err := base().Select("category_path, count(*) as count").Group("category_path").Scan(&byCategory).Error; err != nil {
		return nil, err
	}
	for _, row := range byCategory {
		stats.ByCategory[row.CategoryPath] = row.Count
	}
	return stats, nil
}

func (d *DraftPostgreSQL) applyFilters(query *gorm.DB, filters repositories.DraftFilters) *gorm.DB {
	if filters.Type != nil {
		query = query.Where("type = ?", *filters.Type)
	}
	if filters.Difficulty != nil {
		query = query.Where("difficulty = ?", *filters.Difficulty)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.CategoryPrefix != "" {
		query = query.Where("category_path LIKE ?", escapeLike(filters.CategoryPrefix)+"%")
	}
	if filters.Search != "" {
		query = query.Where("title ILIKE ?", "%"+escapeLike(filters.Search)+"%")
	}
	return query
}

func (d *DraftPostgreSQL) applyPaginationAndSort(query *gorm.DB, filters repositories.DraftFilters) *gorm.DB {
	return query.
		Order(fmt.Sprintf("%s %s", filters.SortBy, strings.ToUpper(filters.SortOrder))).
		Limit(filters.Limit).
		Offset(filters.Offset)
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
