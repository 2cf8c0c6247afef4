package models

import "time"

// ContentType selects which table a record lives in.
type ContentType string

const (
	ContentTypeArticle ContentType = "article"
	ContentTypeNews    ContentType = "news"
)

// Table maps a content type to its row-store table name.
func (t ContentType) Table() string {
	if t == ContentTypeNews {
		return "news_articles"
	}
	return "articles"
}

// Status is the publication state of a record, tracked separately from review state.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// ReviewStatus is the editorial state of a record.
type ReviewStatus string

const (
	ReviewDraft            ReviewStatus = "draft"
	ReviewPendingReview    ReviewStatus = "pending_review"
	ReviewApproved         ReviewStatus = "approved"
	ReviewRejected         ReviewStatus = "rejected"
	ReviewChangesRequested ReviewStatus = "changes_requested"
)

// ContentRecord is the persisted article/news entity.
// Invariants: Slug is unique within its table; PublishedAt is set exactly once,
// the first time Status becomes published, and never cleared afterward.
type ContentRecord struct {
	ID              string       `json:"id"`
	ContentType     ContentType  `json:"content_type"`
	Title           string       `json:"title"`
	Slug            string       `json:"slug"`
	Content         string       `json:"content"`
	Excerpt         string       `json:"excerpt"`
	MetaDescription string       `json:"meta_description"`
	Keywords        []string     `json:"keywords"`
	Category        string       `json:"category"`
	Author          string       `json:"author"`
	Status          Status       `json:"status"`
	ReviewStatus    ReviewStatus `json:"review_status"`
	ReviewNotes     string       `json:"review_notes,omitempty"`
	QualityScore    *int         `json:"quality_score,omitempty"`
	QualityIssues   []string     `json:"quality_issues,omitempty"`
	PublishedAt     *time.Time   `json:"published_at,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// QualityVerdict is the output of the quality gate. It is derived, not persisted
// as its own entity; Score and Issues are written onto the content record.
type QualityVerdict struct {
	Score  int      `json:"score"`
	Passed bool     `json:"passed"`
	Issues []string `json:"issues"`
}
