// Package memory keeps drafts in process memory. It backs local runs
// (STORAGE_DRIVER=memory) and service tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/SAP-F-2025/question-authoring-service/internal/models"
	"github.com/SAP-F-2025/question-authoring-service/internal/repositories"
)

type DraftMemory struct {
	mu     sync.RWMutex
	drafts map[string]*models.Draft
	now    func() time.Time
}

func NewDraftMemory() *DraftMemory {
	return &DraftMemory{
		drafts: make(map[string]*models.Draft),
		now:    time.Now,
	}
}

var _ repositories.DraftRepository = (*DraftMemory)(nil)

func (m *DraftMemory) Create(ctx context.Context, draft *models.Draft) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	draft.Version = 1
	if draft.Status == "" {
		draft.Status = models.DraftStatusEditing
	}
	draft.CreatedAt = now
	draft.UpdatedAt = now
	m.drafts[draft.ID] = draft.Clone()
	return nil
}

func (m *DraftMemory) GetByID(ctx context.Context, id string) (*models.Draft, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	d, ok := m.drafts[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return d.Clone(), nil
}

func (m *DraftMemory) Update(ctx context.Context, draft *models.Draft) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.drafts[draft.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	if stored.Version != draft.Version {
		return repositories.ErrVersionConflict
	}

	draft.Version++
	draft.CreatedAt = stored.CreatedAt
	draft.UpdatedAt = m.now()
	m.drafts[draft.ID] = draft.Clone()
	return nil
}

func (m *DraftMemory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.drafts[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.drafts, id)
	return nil
}

func (m *DraftMemory) List(ctx context.Context, creatorID string, filters repositories.DraftFilters) ([]*models.Draft, int64, error) {
	filters = filters.Normalize()

	m.mu.RLock()
	var matched []*models.Draft
	for _, d := range m.drafts {
		if d.CreatedBy == creatorID && matches(d, filters) {
			matched = append(matched, d.Clone())
		}
	}
	m.mu.RUnlock()

	sort.SliceStable(matched, less(matched, filters.SortBy, filters.SortOrder == "asc"))

	total := int64(len(matched))
	if filters.Offset >= len(matched) {
		return []*models.Draft{}, total, nil
	}
	end := filters.Offset + filters.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[filters.Offset:end], total, nil
}

func (m *DraftMemory) GetStats(ctx context.Context, creatorID string) (*repositories.DraftStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := &repositories.DraftStats{
		ByType:     make(map[models.QuestionType]int64),
		ByCategory: make(map[string]int64),
	}
	for _, d := range m.drafts {
		if d.CreatedBy != creatorID {
			continue
		}
		stats.Total++
		if d.Status == models.DraftStatusPublished {
			stats.Published++
		}
		stats.ByType[d.Type]++
		stats.ByCategory[d.CategoryPath]++
	}
	return stats, nil
}

func matches(d *models.Draft, f repositories.DraftFilters) bool {
	switch {
	case f.Type != nil && d.Type != *f.Type:
		return false
	case f.Difficulty != nil && d.Difficulty != *f.Difficulty:
		return false
	case f.Status != nil && d.Status != *f.Status:
		return false
	case f.CategoryPrefix != "" && !strings.HasPrefix(d.CategoryPath, f.CategoryPrefix):
		return false
	case f.Search != "" && !strings.Contains(strings.ToLower(d.Title), strings.ToLower(f.Search)):
		return false
	}
	return true
}

func less(drafts []*models.Draft, sortBy string, asc bool) func(i, j int) bool {
	return func(i, j int) bool {
		a, b := drafts[i], drafts[j]
		if !asc {
			a, b = b, a
		}
		switch sortBy {
		case "title":
			return a.Title < b.Title
		case "created_at":
			return a.CreatedAt.Before(b.CreatedAt)
		default:
			return a.UpdatedAt.Before(b.UpdatedAt)
		}
	}
}
