package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/emlakpress/contentd/internal/apperrors"
	"github.com/emlakpress/contentd/internal/audit"
	"github.com/emlakpress/contentd/internal/models"
	"github.com/emlakpress/contentd/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	text string
	err  error
}

func (s stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return s.text, s.err
}

func providerJSON() string {
	body := "<h2>Karasu Emlak Piyasası</h2>" + strings.Repeat("<p>Bölgedeki konut arzı ve fiyat gelişimi üzerine değerlendirme.</p>", 40)
	return `{
		"seoSetup": {
			"title": "Karasu Satılık Daire Fiyatları ve Bölge Rehberi",
			"metaDescription": "` + strings.Repeat("Karasu bölgesinde satılık daire arayanlar için güncel fiyatlar. ", 2) + `Detaylı rehber.",
			"slug": "karasu-satilik-daire"
		},
		"mainContent": "` + body + `",
		"keywords": ["karasu satılık daire", "karasu emlak"]
	}`
}

func validRequest() models.ContentRequest {
	return models.ContentRequest{
		PrimaryKeyword: "Karasu satılık daire",
		PageType:       models.PageTypeBlog,
	}
}

func TestGeneratePersistsDraft(t *testing.T) {
	st := store.NewMemoryStore()
	p := New(stubGenerator{text: providerJSON()}, st, audit.NopSink{})

	rec, err := p.Generate(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "Karasu Satılık Daire Fiyatları ve Bölge Rehberi", rec.Title)
	assert.Equal(t, "karasu-satilik-daire", rec.Slug)
	assert.Equal(t, models.StatusDraft, rec.Status)
	assert.Equal(t, models.ReviewDraft, rec.ReviewStatus)
	require.NotNil(t, rec.QualityScore)
	assert.GreaterOrEqual(t, *rec.QualityScore, 70)

	stored, err := st.GetByID(context.Background(), models.ContentTypeArticle, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.Slug, stored.Slug)
	require.NotNil(t, stored.QualityScore)
}

func TestGenerateValidationError(t *testing.T) {
	st := store.NewMemoryStore()
	p := New(stubGenerator{text: providerJSON()}, st, audit.NopSink{})

	_, err := p.Generate(context.Background(), models.ContentRequest{PageType: models.PageTypeBlog})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))

	// The message names the wire field; raw validator output never leaks.
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, "primary_keyword is required", appErr.Message)

	_, err = p.Generate(context.Background(), models.ContentRequest{
		PrimaryKeyword: "karasu satılık daire",
		PageType:       "landing",
	})
	require.Error(t, err)
	appErr, ok = apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, "page_type must be one of: cornerstone, blog", appErr.Message)
	assert.NotContains(t, appErr.Message, "Key:")
}

func TestGenerateFailureCreatesNoRecord(t *testing.T) {
	st := store.NewMemoryStore()
	p := New(stubGenerator{err: apperrors.Generation(nil, "all generation providers failed")}, st, audit.NopSink{})

	_, err := p.Generate(context.Background(), validRequest())
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindGeneration))

	records, err := st.ListByReviewStatus(context.Background(), models.ContentTypeArticle, "", 1, 100)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestParseFailureCreatesNoRecord(t *testing.T) {
	st := store.NewMemoryStore()
	p := New(stubGenerator{text: "no json in here"}, st, audit.NopSink{})

	_, err := p.Generate(context.Background(), validRequest())
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindParse))

	records, err := st.ListByReviewStatus(context.Background(), models.ContentTypeArticle, "", 1, 100)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestGenerateDisambiguatesSlugCollision(t *testing.T) {
	st := store.NewMemoryStore()
	p := New(stubGenerator{text: providerJSON()}, st, audit.NopSink{})

	first, err := p.Generate(context.Background(), validRequest())
	require.NoError(t, err)
	second, err := p.Generate(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "karasu-satilik-daire", first.Slug)
	assert.NotEqual(t, first.Slug, second.Slug)
	assert.Regexp(t, `^karasu-satilik-daire-\d+$`, second.Slug)
}

func TestGenerateFallsBackToKeywordSlug(t *testing.T) {
	st := store.NewMemoryStore()
	p := New(stubGenerator{text: `{"mainContent": "<p>govde</p>"}`}, st, audit.NopSink{})

	rec, err := p.Generate(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, "karasu-satilik-daire", rec.Slug)
}

func TestGenerateDefaultsKeywordsFromRequest(t *testing.T) {
	st := store.NewMemoryStore()
	p := New(stubGenerator{text: `{"title": "Başlık", "mainContent": "<p>govde</p>"}`}, st, audit.NopSink{})

	req := validRequest()
	req.SecondaryKeywords = []string{"karasu emlak"}
	rec, err := p.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, []string{"Karasu satılık daire", "karasu emlak"}, rec.Keywords)
}
