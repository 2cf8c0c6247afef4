package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/emlakpress/contentd/internal/apperrors"
	"github.com/emlakpress/contentd/internal/models"
)

const reviewsTable = "content_reviews"

// FileStore keeps one JSON file per row under basePath/<table>/.
type FileStore struct {
	basePath string
	mu       sync.RWMutex
}

func NewFileStore(basePath string) (*FileStore, error) {
	for _, table := range []string{
		models.ContentTypeArticle.Table(),
		models.ContentTypeNews.Table(),
		reviewsTable,
	} {
		if err := os.MkdirAll(filepath.Join(basePath, table), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create table directory %s: %w", table, err)
		}
	}
	return &FileStore{basePath: basePath}, nil
}

func (s *FileStore) recordPath(ct models.ContentType, id string) string {
	return filepath.Join(s.basePath, ct.Table(), id+".json")
}

func (s *FileStore) GetByID(ctx context.Context, ct models.ContentType, id string) (*models.ContentRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.recordPath(ct, id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NotFound("content %s/%s not found", ct, id)
		}
		return nil, apperrors.Persistence(err, "failed to read content %s/%s", ct, id)
	}

	var rec models.ContentRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, apperrors.Persistence(err, "failed to decode content %s/%s", ct, id)
	}
	return &rec, nil
}

func (s *FileStore) SlugExists(ctx context.Context, ct models.ContentType, slug string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	records, err := s.readTable(ct)
	if err != nil {
		return false, err
	}
	for _, rec := range records {
		if rec.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (s *FileStore) Insert(ctx context.Context, rec *models.ContentRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.recordPath(rec.ContentType, rec.ID)
	if _, err := os.Stat(path); err == nil {
		return apperrors.Persistence(nil, "content %s/%s already exists", rec.ContentType, rec.ID)
	}
	return s.writeRecord(path, rec)
}

func (s *FileStore) Update(ctx context.Context, rec *models.ContentRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.recordPath(rec.ContentType, rec.ID)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return apperrors.NotFound("content %s/%s not found", rec.ContentType, rec.ID)
		}
		return apperrors.Persistence(err, "failed to stat content %s/%s", rec.ContentType, rec.ID)
	}
	return s.writeRecord(path, rec)
}

func (s *FileStore) ListByReviewStatus(ctx context.Context, ct models.ContentType, status models.ReviewStatus, page, pageSize int) ([]*models.ContentRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	records, err := s.readTable(ct)
	if err != nil {
		return nil, err
	}

	var filtered []*models.ContentRecord
	for _, rec := range records {
		if status == "" || rec.ReviewStatus == status {
			filtered = append(filtered, rec)
		}
	}
	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	if page < 1 {
		page = 1
	}
	start := (page - 1) * pageSize
	if start >= len(filtered) {
		return []*models.ContentRecord{}, nil
	}
	end := start + pageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end], nil
}

func (s *FileStore) AppendReview(ctx context.Context, entry *models.ReviewEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	filename := fmt.Sprintf("%d_%s.json", time.Now().UnixNano(), entry.ID)
	path := filepath.Join(s.basePath, reviewsTable, filename)

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return apperrors.Persistence(err, "failed to encode review entry")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return apperrors.Persistence(err, "failed to write review entry")
	}
	return nil
}

func (s *FileStore) readTable(ct models.ContentType) ([]*models.ContentRecord, error) {
	dir := filepath.Join(s.basePath, ct.Table())
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, apperrors.Persistence(err, "failed to read table %s", ct.Table())
	}

	var records []*models.ContentRecord
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, apperrors.Persistence(err, "failed to read %s", entry.Name())
		}
		var rec models.ContentRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, apperrors.Persistence(err, "failed to decode %s", entry.Name())
		}
		records = append(records, &rec)
	}
	return records, nil
}

func (s *FileStore) writeRecord(path string, rec *models.ContentRecord) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return apperrors.Persistence(err, "failed to encode content record")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return apperrors.Persistence(err, "failed to write content record")
	}
	return nil
}
