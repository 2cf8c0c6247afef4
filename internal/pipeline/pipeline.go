// Package pipeline runs one content generation end to end: prompt, provider
// call, parse, slug resolution, quality check, persist.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/emlakpress/contentd/internal/ai"
	"github.com/emlakpress/contentd/internal/apperrors"
	"github.com/emlakpress/contentd/internal/audit"
	"github.com/emlakpress/contentd/internal/logger"
	"github.com/emlakpress/contentd/internal/models"
	"github.com/emlakpress/contentd/internal/quality"
	"github.com/emlakpress/contentd/internal/slug"
	"github.com/emlakpress/contentd/internal/store"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Generator produces raw model text for a prompt. ai.Client is the production
// implementation.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Pipeline struct {
	generator Generator
	store     store.ContentStore
	audit     audit.Sink
	validate  *validator.Validate
	now       func() time.Time
}

func New(generator Generator, st store.ContentStore, sink audit.Sink) *Pipeline {
	v := validator.New()
	// Report wire field names, not Go struct fields.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Pipeline{
		generator: generator,
		store:     st,
		audit:     sink,
		validate:  v,
		now:       time.Now,
	}
}

// validationMessage flattens the first field error into a short caller-facing
// message; raw validator text never leaves the pipeline.
func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return "invalid content request"
	}
	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.Join(strings.Fields(fe.Param()), ", "))
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// Generate runs the full pipeline for one request and persists the result as
// a draft. Generation and parse failures abort before anything is written; no
// partial record ever exists for a failed generation.
func (p *Pipeline) Generate(ctx context.Context, req models.ContentRequest) (*models.ContentRecord, error) {
	if err := p.validate.Struct(req); err != nil {
		return nil, apperrors.Validation("%s", validationMessage(err))
	}
	if req.ContentType == "" {
		req.ContentType = models.ContentTypeArticle
	}

	log := logger.Get()
	start := p.now()

	prompt := ai.BuildPrompt(req)

	raw, err := p.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	gen, err := ai.Parse(raw)
	if err != nil {
		return nil, err
	}

	candidate := gen.SlugHint
	if candidate == "" {
		candidate = gen.Title
	}
	if candidate == "" {
		candidate = req.PrimaryKeyword
	}
	resolved, err := slug.Resolve(ctx, candidate, func(ctx context.Context, s string) (bool, error) {
		return p.store.SlugExists(ctx, req.ContentType, s)
	})
	if err != nil {
		return nil, err
	}

	keywords := gen.Keywords
	if len(keywords) == 0 {
		keywords = append([]string{req.PrimaryKeyword}, req.SecondaryKeywords...)
	}

	now := p.now()
	rec := &models.ContentRecord{
		ID:              uuid.NewString(),
		ContentType:     req.ContentType,
		Title:           gen.Title,
		Slug:            resolved,
		Content:         gen.Content,
		Excerpt:         gen.Excerpt,
		MetaDescription: gen.MetaDescription,
		Keywords:        keywords,
		Category:        req.Category,
		Author:          req.Author,
		Status:          models.StatusDraft,
		ReviewStatus:    models.ReviewDraft,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := p.store.Insert(ctx, rec); err != nil {
		return nil, err
	}

	// The quality write is a separate, idempotent follow-up; a record that
	// misses it just sits in draft with empty quality fields.
	verdict := quality.Check(quality.Input{
		Title:           rec.Title,
		Content:         rec.Content,
		Excerpt:         rec.Excerpt,
		MetaDescription: rec.MetaDescription,
		Slug:            rec.Slug,
	})
	rec.QualityScore = &verdict.Score
	rec.QualityIssues = verdict.Issues
	rec.UpdatedAt = p.now()
	if err := p.store.Update(ctx, rec); err != nil {
		log.Warn().Err(err).Str("id", rec.ID).Msg("quality follow-up write failed")
	}

	p.audit.Emit(ctx, audit.Event{
		Type:         audit.EventContentCreated,
		Actor:        req.Author,
		ResourceType: req.ContentType.Table(),
		ResourceID:   rec.ID,
		Metadata: map[string]string{
			"slug":    rec.Slug,
			"keyword": req.PrimaryKeyword,
		},
	})

	log.Info().
		Str("id", rec.ID).
		Str("slug", rec.Slug).
		Int("quality_score", verdict.Score).
		Dur("duration", p.now().Sub(start)).
		Msg("content generated")

	return rec, nil
}
