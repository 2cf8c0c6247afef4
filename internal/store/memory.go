package store

import (
	"context"
	"sort"
	"sync"

	"github.com/emlakpress/contentd/internal/apperrors"
	"github.com/emlakpress/contentd/internal/models"
)

// MemoryStore is an in-memory ContentStore for tests and local development.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]map[string]*models.ContentRecord // table -> id -> record
	reviews []*models.ReviewEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]map[string]*models.ContentRecord),
	}
}

// table looks the inner map up without materializing it, so read paths stay
// safe under RLock. A nil map is fine to range over and index.
func (s *MemoryStore) table(ct models.ContentType) map[string]*models.ContentRecord {
	return s.records[ct.Table()]
}

func (s *MemoryStore) GetByID(ctx context.Context, ct models.ContentType, id string) (*models.ContentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.table(ct)[id]
	if !ok {
		return nil, apperrors.NotFound("content %s/%s not found", ct, id)
	}
	copied := *rec
	return &copied, nil
}

func (s *MemoryStore) SlugExists(ctx context.Context, ct models.ContentType, slug string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.table(ct) {
		if rec.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) Insert(ctx context.Context, rec *models.ContentRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.table(rec.ContentType)
	if t == nil {
		t = make(map[string]*models.ContentRecord)
		s.records[rec.ContentType.Table()] = t
	}
	if _, ok := t[rec.ID]; ok {
		return apperrors.Persistence(nil, "content %s/%s already exists", rec.ContentType, rec.ID)
	}
	copied := *rec
	t[rec.ID] = &copied
	return nil
}

func (s *MemoryStore) Update(ctx context.Context, rec *models.ContentRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.table(rec.ContentType)
	if _, ok := t[rec.ID]; !ok {
		return apperrors.NotFound("content %s/%s not found", rec.ContentType, rec.ID)
	}
	copied := *rec
	t[rec.ID] = &copied
	return nil
}

func (s *MemoryStore) ListByReviewStatus(ctx context.Context, ct models.ContentType, status models.ReviewStatus, page, pageSize int) ([]*models.ContentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var filtered []*models.ContentRecord
	for _, rec := range s.table(ct) {
		if status == "" || rec.ReviewStatus == status {
			copied := *rec
			filtered = append(filtered, &copied)
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

func (s *MemoryStore) AppendReview(ctx context.Context, entry *models.ReviewEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *entry
	s.reviews = append(s.reviews, &copied)
	return nil
}

// Reviews returns the appended review trail, newest last.
func (s *MemoryStore) Reviews() []*models.ReviewEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.ReviewEntry, len(s.reviews))
	copy(out, s.reviews)
	return out
}
