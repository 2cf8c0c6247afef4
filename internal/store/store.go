// Package store is the persistence adapter: a generic row store over the
// articles, news_articles and content_reviews tables. The pipeline only needs
// select-by-id, slug existence, insert, update and a filtered list.
package store

import (
	"context"

	"github.com/emlakpress/contentd/internal/models"
)

// ContentStore is the row-level persistence contract. Implementations return
// taxonomy errors: NotFoundError for missing rows, PersistenceError when the
// underlying store is unavailable.
type ContentStore interface {
	GetByID(ctx context.Context, ct models.ContentType, id string) (*models.ContentRecord, error)
	SlugExists(ctx context.Context, ct models.ContentType, slug string) (bool, error)
	Insert(ctx context.Context, rec *models.ContentRecord) error
	Update(ctx context.Context, rec *models.ContentRecord) error
	ListByReviewStatus(ctx context.Context, ct models.ContentType, status models.ReviewStatus, page, pageSize int) ([]*models.ContentRecord, error)
	AppendReview(ctx context.Context, entry *models.ReviewEntry) error
}
