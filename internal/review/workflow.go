// Package review implements the editorial state machine from draft to
// published/rejected.
package review

import (
	"context"
	"strings"
	"time"

	"github.com/emlakpress/contentd/internal/apperrors"
	"github.com/emlakpress/contentd/internal/archive"
	"github.com/emlakpress/contentd/internal/audit"
	"github.com/emlakpress/contentd/internal/logger"
	"github.com/emlakpress/contentd/internal/models"
	"github.com/emlakpress/contentd/internal/quality"
	"github.com/emlakpress/contentd/internal/store"
	"github.com/google/uuid"
)

// Workflow moves content records through review_status transitions and
// handles conditional auto-publish on approval.
type Workflow struct {
	store    store.ContentStore
	audit    audit.Sink
	archiver archive.Archiver
	now      func() time.Time
}

func NewWorkflow(st store.ContentStore, sink audit.Sink, archiver archive.Archiver) *Workflow {
	return &Workflow{
		store:    st,
		audit:    sink,
		archiver: archiver,
		now:      time.Now,
	}
}

// Submit moves a record into pending_review from any state and recomputes the
// quality verdict onto it. Resubmission of rejected or changes_requested
// records is a normal editorial cycle.
func (w *Workflow) Submit(ctx context.Context, ct models.ContentType, id, actor string) (*models.ContentRecord, error) {
	rec, err := w.store.GetByID(ctx, ct, id)
	if err != nil {
		return nil, err
	}

	from := rec.ReviewStatus
	verdict := quality.Check(quality.Input{
		Title:           rec.Title,
		Content:         rec.Content,
		Excerpt:         rec.Excerpt,
		MetaDescription: rec.MetaDescription,
		Slug:            rec.Slug,
	})
	rec.QualityScore = &verdict.Score
	rec.QualityIssues = verdict.Issues
	rec.ReviewStatus = models.ReviewPendingReview
	rec.UpdatedAt = w.now()

	if err := w.store.Update(ctx, rec); err != nil {
		return nil, err
	}

	w.trace(ctx, rec, models.ActionSubmit, from, actor, "")
	return rec, nil
}

// Approve marks a record approved. If the stored quality score clears the
// publish threshold the record is also published, and published_at is set
// only the first time; approval below the threshold leaves status at draft.
func (w *Workflow) Approve(ctx context.Context, ct models.ContentType, id, actor, notes string) (*models.ContentRecord, error) {
	rec, err := w.store.GetByID(ctx, ct, id)
	if err != nil {
		return nil, err
	}

	from := rec.ReviewStatus
	rec.ReviewStatus = models.ReviewApproved
	if notes != "" {
		rec.ReviewNotes = notes
	}

	published := false
	if rec.QualityScore != nil && *rec.QualityScore >= quality.PublishThreshold {
		rec.Status = models.StatusPublished
		if rec.PublishedAt == nil {
			t := w.now()
			rec.PublishedAt = &t
		}
		published = true
	}
	rec.UpdatedAt = w.now()

	if err := w.store.Update(ctx, rec); err != nil {
		return nil, err
	}

	w.trace(ctx, rec, models.ActionApprove, from, actor, notes)
	if published {
		w.audit.Emit(ctx, audit.Event{
			Type:         audit.EventContentPublished,
			Actor:        actor,
			ResourceType: rec.ContentType.Table(),
			ResourceID:   rec.ID,
			Metadata:     map[string]string{"slug": rec.Slug},
		})
		w.archiver.Snapshot(ctx, rec)
	}
	return rec, nil
}

// Reject marks a record rejected. Reason is required and is stored, together
// with any notes, in review_notes.
func (w *Workflow) Reject(ctx context.Context, ct models.ContentType, id, actor, reason, notes string) (*models.ContentRecord, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, apperrors.Validation("rejection reason is required")
	}

	rec, err := w.store.GetByID(ctx, ct, id)
	if err != nil {
		return nil, err
	}

	from := rec.ReviewStatus
	rec.ReviewStatus = models.ReviewRejected
	rec.ReviewNotes = reason
	if notes != "" {
		rec.ReviewNotes = reason + ": " + notes
	}
	rec.UpdatedAt = w.now()

	if err := w.store.Update(ctx, rec); err != nil {
		return nil, err
	}

	w.trace(ctx, rec, models.ActionReject, from, actor, rec.ReviewNotes)
	return rec, nil
}

// RequestChanges sends a record back to its author.
func (w *Workflow) RequestChanges(ctx context.Context, ct models.ContentType, id, actor, notes string) (*models.ContentRecord, error) {
	rec, err := w.store.GetByID(ctx, ct, id)
	if err != nil {
		return nil, err
	}

	from := rec.ReviewStatus
	rec.ReviewStatus = models.ReviewChangesRequested
	if notes != "" {
		rec.ReviewNotes = notes
	}
	rec.UpdatedAt = w.now()

	if err := w.store.Update(ctx, rec); err != nil {
		return nil, err
	}

	w.trace(ctx, rec, models.ActionRequestChanges, from, actor, notes)
	return rec, nil
}

// ListPending returns records awaiting review, newest first.
func (w *Workflow) ListPending(ctx context.Context, ct models.ContentType, page, pageSize int) ([]*models.ContentRecord, error) {
	return w.store.ListByReviewStatus(ctx, ct, models.ReviewPendingReview, page, pageSize)
}

// trace appends the transition to content_reviews and emits an audit event.
// Neither failure blocks the transition itself.
func (w *Workflow) trace(ctx context.Context, rec *models.ContentRecord, action models.ReviewActionType, from models.ReviewStatus, actor, notes string) {
	entry := &models.ReviewEntry{
		ID:          uuid.NewString(),
		ContentType: rec.ContentType,
		ContentID:   rec.ID,
		Action:      action,
		FromStatus:  from,
		ToStatus:    rec.ReviewStatus,
		Notes:       notes,
		Actor:       actor,
		CreatedAt:   w.now(),
	}
	if err := w.store.AppendReview(ctx, entry); err != nil {
		logger.Get().Warn().Err(err).Str("id", rec.ID).Msg("failed to append review entry")
	}

	w.audit.Emit(ctx, audit.Event{
		Type:         audit.EventReviewTransition,
		Actor:        actor,
		ResourceType: rec.ContentType.Table(),
		ResourceID:   rec.ID,
		Metadata: map[string]string{
			"action": string(action),
			"from":   string(from),
			"to":     string(rec.ReviewStatus),
		},
	})
}
