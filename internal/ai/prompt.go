package ai

import (
	"fmt"
	"strings"

	"github.com/emlakpress/contentd/internal/models"
)

// Word count minimums by page type. Stated in the prompt only; enforcement
// happens downstream in the quality gate.
const (
	cornerstoneMinWords = 2500
	blogMinWords        = 1200
)

const defaultLocale = "tr-TR"

// bannedPhrases are stock AI filler phrases the model is told to avoid.
var bannedPhrases = []string{
	"in today's fast-paced world",
	"unlock the potential",
	"look no further",
	"dive into",
	"game-changer",
	"whether you're a seasoned investor or a first-time buyer",
}

const promptTemplate = `You are a senior Turkish real-estate content writer and SEO specialist.
Write a %s page of at least %d words for the following brief.

Brief:
- Primary keyword: %s
- Secondary keywords: %s
- Region: %s
- Funnel stage: %s
- Call to action: %s
- Locale: %s

Tone rules:
- Professional, concrete and locally grounded. No hype.
- Never use any of these stock phrases: %s.
- Use the primary keyword naturally in the title, the first paragraph and at least one heading.
- Structure the body with <h2>/<h3> headings and <p> paragraphs (HTML, no markdown).

Respond with a single valid JSON object and nothing else, exactly this shape:
{
  "seoSetup": {
    "title": "page title, 30-65 characters, contains the primary keyword",
    "metaDescription": "120-160 characters",
    "slug": "url-safe-lowercase-slug"
  },
  "intro": {
    "paragraph1": "opening paragraph",
    "paragraph2": "second paragraph"
  },
  "mainContent": "full HTML body with headings and paragraphs",
  "faq": [
    {"question": "...", "answer": "..."}
  ],
  "keywords": ["primary keyword", "secondary keywords"],
  "excerpt": "1-2 sentence summary"
}`

// BuildPrompt renders the generation instruction for a request. It is pure and
// deterministic; missing optional fields are rendered as an em-dash so the
// prompt shape stays stable.
func BuildPrompt(req models.ContentRequest) string {
	minWords := blogMinWords
	pageType := "blog article"
	if req.PageType == models.PageTypeCornerstone {
		minWords = cornerstoneMinWords
		pageType = "cornerstone pillar"
	}

	locale := req.Locale
	if locale == "" {
		locale = defaultLocale
	}

	return fmt.Sprintf(promptTemplate,
		pageType,
		minWords,
		orDash(req.PrimaryKeyword),
		orDash(strings.Join(req.SecondaryKeywords, ", ")),
		orDash(req.Region),
		orDash(string(req.FunnelStage)),
		orDash(req.CTALabel),
		locale,
		strings.Join(bannedPhrases, "; "),
	)
}

func orDash(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "—"
	}
	return s
}
