package store

import (
	"context"
	"testing"
	"time"

	"github.com/emlakpress/contentd/internal/apperrors"
	"github.com/emlakpress/contentd/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFileStore(t *testing.T) *FileStore {
	t.Helper()
	st, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	return st
}

func record(id, slug string, reviewStatus models.ReviewStatus, createdAt time.Time) *models.ContentRecord {
	return &models.ContentRecord{
		ID:           id,
		ContentType:  models.ContentTypeArticle,
		Title:        "Başlık",
		Slug:         slug,
		Status:       models.StatusDraft,
		ReviewStatus: reviewStatus,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
}

func TestFileStoreInsertAndGet(t *testing.T) {
	st := newFileStore(t)
	ctx := context.Background()

	rec := record("id-1", "baslik", models.ReviewDraft, time.Now())
	require.NoError(t, st.Insert(ctx, rec))

	got, err := st.GetByID(ctx, models.ContentTypeArticle, "id-1")
	require.NoError(t, err)
	assert.Equal(t, rec.Slug, got.Slug)
	assert.Equal(t, rec.Title, got.Title)
}

func TestFileStoreGetMissingIsNotFound(t *testing.T) {
	st := newFileStore(t)

	_, err := st.GetByID(context.Background(), models.ContentTypeArticle, "ghost")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}

func TestFileStoreInsertDuplicateFails(t *testing.T) {
	st := newFileStore(t)
	ctx := context.Background()

	rec := record("id-1", "baslik", models.ReviewDraft, time.Now())
	require.NoError(t, st.Insert(ctx, rec))
	err := st.Insert(ctx, rec)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindPersistence))
}

func TestFileStoreUpdate(t *testing.T) {
	st := newFileStore(t)
	ctx := context.Background()

	rec := record("id-1", "baslik", models.ReviewDraft, time.Now())
	require.NoError(t, st.Insert(ctx, rec))

	rec.ReviewStatus = models.ReviewPendingReview
	require.NoError(t, st.Update(ctx, rec))

	got, err := st.GetByID(ctx, models.ContentTypeArticle, "id-1")
	require.NoError(t, err)
	assert.Equal(t, models.ReviewPendingReview, got.ReviewStatus)
}

func TestFileStoreUpdateMissingIsNotFound(t *testing.T) {
	st := newFileStore(t)

	err := st.Update(context.Background(), record("ghost", "x", models.ReviewDraft, time.Now()))
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}

func TestFileStoreSlugExists(t *testing.T) {
	st := newFileStore(t)
	ctx := context.Background()

	require.NoError(t, st.Insert(ctx, record("id-1", "karasu-satilik-daire", models.ReviewDraft, time.Now())))

	exists, err := st.SlugExists(ctx, models.ContentTypeArticle, "karasu-satilik-daire")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = st.SlugExists(ctx, models.ContentTypeArticle, "serbest-slug")
	require.NoError(t, err)
	assert.False(t, exists)

	// Slugs are scoped per table.
	exists, err = st.SlugExists(ctx, models.ContentTypeNews, "karasu-satilik-daire")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestFileStoreListByReviewStatus(t *testing.T) {
	st := newFileStore(t)
	ctx := context.Background()
	base := time.Now()

	require.NoError(t, st.Insert(ctx, record("id-1", "a", models.ReviewPendingReview, base.Add(-time.Hour))))
	require.NoError(t, st.Insert(ctx, record("id-2", "b", models.ReviewPendingReview, base)))
	require.NoError(t, st.Insert(ctx, record("id-3", "c", models.ReviewDraft, base)))

	records, err := st.ListByReviewStatus(ctx, models.ContentTypeArticle, models.ReviewPendingReview, 1, 10)
	require.NoError(t, err)
	require.Len(t, records, 2)
	// Newest first.
	assert.Equal(t, "id-2", records[0].ID)

	records, err = st.ListByReviewStatus(ctx, models.ContentTypeArticle, models.ReviewPendingReview, 2, 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "id-1", records[0].ID)
}

func TestFileStoreListClampsPage(t *testing.T) {
	st := newFileStore(t)
	ctx := context.Background()

	require.NoError(t, st.Insert(ctx, record("id-1", "a", models.ReviewPendingReview, time.Now())))

	records, err := st.ListByReviewStatus(ctx, models.ContentTypeArticle, models.ReviewPendingReview, 0, 10)
	require.NoError(t, err)
	assert.Len(t, records, 1)

	records, err = st.ListByReviewStatus(ctx, models.ContentTypeArticle, models.ReviewPendingReview, -3, 10)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestFileStoreAppendReview(t *testing.T) {
	st := newFileStore(t)

	err := st.AppendReview(context.Background(), &models.ReviewEntry{
		ID:          "rev-1",
		ContentType: models.ContentTypeArticle,
		ContentID:   "id-1",
		Action:      models.ActionSubmit,
		FromStatus:  models.ReviewDraft,
		ToStatus:    models.ReviewPendingReview,
		CreatedAt:   time.Now(),
	})
	require.NoError(t, err)
}
