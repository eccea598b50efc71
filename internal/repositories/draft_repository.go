package repositories

import (
	"context"

	"github.com/SAP-F-2025/question-authoring-service/internal/models"
)

// DraftRepository stores question drafts. Update is optimistic: it only
// succeeds when the stored version equals draft.Version, and bumps it.
type DraftRepository interface {
	Create(ctx context.Context, draft *models.Draft) error
	GetByID(ctx context.Context, id string) (*models.Draft, error)
	Update(ctx context.Context, draft *models.Draft) error
	Delete(ctx context.Context, id string) error

	List(ctx context.Context, creatorID string, filters DraftFilters) ([]*models.Draft, int64, error)
	GetStats(ctx context.Context, creatorID string) (*DraftStats, error)
}
