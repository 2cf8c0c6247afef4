package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/emlakpress/contentd/internal/apperrors"
	"github.com/emlakpress/contentd/internal/models"
)

// FAQHeading is the heading rendered above an appended FAQ block. Its presence
// in the body is the duplication guard: a body already carrying it never gets
// a second FAQ section.
const FAQHeading = "Sıkça Sorulan Sorular"

const excerptMaxLen = 200

// Providers disagree on field names for the same semantic value. Each list is
// checked in order and the first non-empty hit wins.
var (
	titlePaths    = []string{"seoSetup.title", "meta.title", "title", "seo_title"}
	metaDescPaths = []string{"seoSetup.metaDescription", "meta.metaDescription", "metaDescription", "meta_description", "seo_description"}
	contentPaths  = []string{"mainContent", "article.mainContent", "content", "content_md", "body"}
	slugPaths     = []string{"seoSetup.slug", "meta.slug", "slug"}
	excerptPaths  = []string{"excerpt", "summary"}
	keywordPaths  = []string{"keywords", "tags"}
	faqPaths      = []string{"faq", "faqs"}
)

// Parse extracts and normalizes a GeneratedContent from a raw provider
// response. The raw text may wrap the JSON object in prose or code fences.
// Returns a ParseError when no JSON object can be located at all; absent
// individual fields are not an error.
func Parse(raw string) (*models.GeneratedContent, error) {
	tree, err := decodeObject(raw)
	if err != nil {
		return nil, apperrors.Parse("invalid JSON response")
	}

	gen := &models.GeneratedContent{
		Title:           firstString(tree, titlePaths),
		MetaDescription: firstString(tree, metaDescPaths),
		Content:         firstString(tree, contentPaths),
		SlugHint:        firstString(tree, slugPaths),
		Excerpt:         firstString(tree, excerptPaths),
		Keywords:        extractKeywords(tree),
		FAQ:             extractFAQ(tree),
	}

	gen.Content = prependIntro(tree, gen.Content)
	gen.Content = appendFAQ(gen.Content, gen.FAQ)

	if gen.Excerpt == "" {
		gen.Excerpt = truncateRunes(gen.MetaDescription, excerptMaxLen)
	}

	return gen, nil
}

// decodeObject tries a whole-string parse first, then falls back to the
// greedy {...} substring between the first '{' and the last '}'.
func decodeObject(raw string) (map[string]interface{}, error) {
	s := strings.TrimSpace(raw)

	// Some models wrap the object in a markdown code fence.
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
		s = strings.TrimSpace(s)
	}

	var tree map[string]interface{}
	if err := json.Unmarshal([]byte(s), &tree); err == nil {
		return tree, nil
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object found")
	}
	if err := json.Unmarshal([]byte(s[start:end+1]), &tree); err != nil {
		return nil, fmt.Errorf("brace-matched substring is not valid JSON: %w", err)
	}
	return tree, nil
}

// lookup walks a dot-separated path through nested objects.
func lookup(tree map[string]interface{}, path string) interface{} {
	parts := strings.Split(path, ".")
	var cur interface{} = tree
	for _, key := range parts {
		obj, ok := cur.(map[string]interface{})
		if !ok {
			return nil
		}
		cur, ok = obj[key]
		if !ok {
			return nil
		}
	}
	return cur
}

func firstString(tree map[string]interface{}, paths []string) string {
	for _, path := range paths {
		if s, ok := lookup(tree, path).(string); ok {
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}

// extractKeywords accepts either a JSON array or a comma-separated string.
func extractKeywords(tree map[string]interface{}) []string {
	for _, path := range keywordPaths {
		switch v := lookup(tree, path).(type) {
		case []interface{}:
			var out []string
			for _, item := range v {
				if s, ok := item.(string); ok {
					if trimmed := strings.TrimSpace(s); trimmed != "" {
						out = append(out, trimmed)
					}
				}
			}
			if len(out) > 0 {
				return out
			}
		case string:
			var out []string
			for _, part := range strings.Split(v, ",") {
				if trimmed := strings.TrimSpace(part); trimmed != "" {
					out = append(out, trimmed)
				}
			}
			if len(out) > 0 {
				return out
			}
		}
	}
	return nil
}

func extractFAQ(tree map[string]interface{}) []models.FAQ {
	for _, path := range faqPaths {
		list, ok := lookup(tree, path).([]interface{})
		if !ok {
			continue
		}
		var out []models.FAQ
		for _, item := range list {
			obj, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			q := stringField(obj, "question", "q")
			a := stringField(obj, "answer", "a")
			if q != "" && a != "" {
				out = append(out, models.FAQ{Question: q, Answer: a})
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

func stringField(obj map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if s, ok := obj[key].(string); ok {
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}

// prependIntro prepends the two intro paragraphs unless the body already
// contains the first one. Some providers inline the intro into mainContent;
// the guard prevents a duplicate opening.
func prependIntro(tree map[string]interface{}, content string) string {
	p1 := firstString(tree, []string{"intro.paragraph1"})
	p2 := firstString(tree, []string{"intro.paragraph2"})
	if p1 == "" {
		return content
	}
	if strings.Contains(content, p1) {
		return content
	}

	var b strings.Builder
	b.WriteString("<p>" + p1 + "</p>\n")
	if p2 != "" {
		b.WriteString("<p>" + p2 + "</p>\n")
	}
	b.WriteString(content)
	return b.String()
}

// appendFAQ renders the FAQ pairs into an HTML block at the end of the body.
// Idempotent: a body that already contains the FAQ heading is left alone.
func appendFAQ(content string, faq []models.FAQ) string {
	if len(faq) == 0 || strings.Contains(content, FAQHeading) {
		return content
	}

	var b strings.Builder
	b.WriteString(content)
	b.WriteString("\n<h2>" + FAQHeading + "</h2>\n")
	for _, pair := range faq {
		b.WriteString("<h3>" + pair.Question + "</h3>\n")
		b.WriteString("<p>" + pair.Answer + "</p>\n")
	}
	return b.String()
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
