package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/emlakpress/contentd/internal/archive"
	"github.com/emlakpress/contentd/internal/audit"
	"github.com/emlakpress/contentd/internal/middleware"
	"github.com/emlakpress/contentd/internal/models"
	"github.com/emlakpress/contentd/internal/pipeline"
	"github.com/emlakpress/contentd/internal/review"
	"github.com/emlakpress/contentd/internal/store"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
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
		"mainContent": "` + body + `"
	}`
}

func newTestApp(t *testing.T, gen pipeline.Generator, adminKey string) (*fiber.App, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	pipe := pipeline.New(gen, st, audit.NopSink{})
	workflow := review.NewWorkflow(st, audit.NopSink{}, archive.NopArchiver{})

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	app.Use(requestid.New())
	SetupRoutes(app, NewHandlers(pipe, workflow, st), adminKey)
	return app, st
}

type envelopeBody struct {
	Success   bool            `json:"success"`
	RequestID string          `json:"requestId"`
	Code      string          `json:"code"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (*http.Response, envelopeBody) {
	t.Helper()
	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var env envelopeBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

func TestHealthCheck(t *testing.T) {
	app, _ := newTestApp(t, stubGenerator{text: providerJSON()}, "")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGenerateEndpoint(t *testing.T) {
	app, st := newTestApp(t, stubGenerator{text: providerJSON()}, "")

	resp, env := doJSON(t, app, http.MethodPost, "/api/v1/content/generate", models.ContentRequest{
		PrimaryKeyword: "Karasu satılık daire",
		PageType:       models.PageTypeBlog,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, env.Success)
	assert.NotEmpty(t, env.RequestID)

	var rec models.ContentRecord
	require.NoError(t, json.Unmarshal(env.Data, &rec))
	assert.Equal(t, "karasu-satilik-daire", rec.Slug)

	stored, err := st.GetByID(context.Background(), models.ContentTypeArticle, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReviewDraft, stored.ReviewStatus)
}

func TestGenerateValidationEnvelope(t *testing.T) {
	app, _ := newTestApp(t, stubGenerator{text: providerJSON()}, "")

	resp, env := doJSON(t, app, http.MethodPost, "/api/v1/content/generate", models.ContentRequest{
		PageType: models.PageTypeBlog,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, env.Success)
	assert.Equal(t, "VALIDATION_ERROR", env.Code)
	assert.NotEmpty(t, env.Message)
}

func TestGenerateFailureEnvelope(t *testing.T) {
	app, _ := newTestApp(t, stubGenerator{text: ""}, "")

	// The stub returns text with no locatable JSON object.
	resp, env := doJSON(t, app, http.MethodPost, "/api/v1/content/generate", models.ContentRequest{
		PrimaryKeyword: "karasu",
		PageType:       models.PageTypeBlog,
	})
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "PARSE_FAILED", env.Code)
}

func TestReviewFlowOverHTTP(t *testing.T) {
	app, _ := newTestApp(t, stubGenerator{text: providerJSON()}, "")

	_, env := doJSON(t, app, http.MethodPost, "/api/v1/content/generate", models.ContentRequest{
		PrimaryKeyword: "Karasu satılık daire",
		PageType:       models.PageTypeBlog,
	})
	var rec models.ContentRecord
	require.NoError(t, json.Unmarshal(env.Data, &rec))

	resp, env := doJSON(t, app, http.MethodPost, "/api/v1/content/article/"+rec.ID+"/submit", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(env.Data, &rec))
	assert.Equal(t, models.ReviewPendingReview, rec.ReviewStatus)

	resp, env = doJSON(t, app, http.MethodGet, "/api/v1/content/article/pending", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, env = doJSON(t, app, http.MethodPost, "/api/v1/content/article/"+rec.ID+"/approve", map[string]string{"notes": "ok"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(env.Data, &rec))
	assert.Equal(t, models.ReviewApproved, rec.ReviewStatus)
	assert.Equal(t, models.StatusPublished, rec.Status)
	assert.NotNil(t, rec.PublishedAt)
}

func TestRejectRequiresReasonOverHTTP(t *testing.T) {
	app, _ := newTestApp(t, stubGenerator{text: providerJSON()}, "")

	_, env := doJSON(t, app, http.MethodPost, "/api/v1/content/generate", models.ContentRequest{
		PrimaryKeyword: "Karasu satılık daire",
		PageType:       models.PageTypeBlog,
	})
	var rec models.ContentRecord
	require.NoError(t, json.Unmarshal(env.Data, &rec))

	resp, env := doJSON(t, app, http.MethodPost, "/api/v1/content/article/"+rec.ID+"/reject", map[string]string{"notes": "missing reason"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", env.Code)
}

func TestUnknownContentType(t *testing.T) {
	app, _ := newTestApp(t, stubGenerator{text: providerJSON()}, "")

	resp, env := doJSON(t, app, http.MethodGet, "/api/v1/content/page/some-id", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", env.Code)
}

func TestMissingRecordIsNotFound(t *testing.T) {
	app, _ := newTestApp(t, stubGenerator{text: providerJSON()}, "")

	resp, env := doJSON(t, app, http.MethodGet, "/api/v1/content/article/ghost", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", env.Code)
}

func TestAdminKeyGuardsMutations(t *testing.T) {
	app, _ := newTestApp(t, stubGenerator{text: providerJSON()}, "sekret")

	resp, env := doJSON(t, app, http.MethodPost, "/api/v1/content/generate", models.ContentRequest{
		PrimaryKeyword: "karasu",
		PageType:       models.PageTypeBlog,
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.False(t, env.Success)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/content/generate", bytes.NewReader([]byte(`{"primary_keyword":"karasu","page_type":"blog"}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", "sekret")
	authed, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, authed.StatusCode)
}
