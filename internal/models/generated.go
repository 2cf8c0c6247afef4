package models

// FAQ is a single question/answer pair produced by the generation provider.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// GeneratedContent is the canonical, normalized output of the response parser.
// It is immutable once produced; the slug resolver and quality gate only read it.
type GeneratedContent struct {
	Title           string   `json:"title"`
	Content         string   `json:"content"`
	Excerpt         string   `json:"excerpt"`
	MetaDescription string   `json:"meta_description"`
	Keywords        []string `json:"keywords"`
	FAQ             []FAQ    `json:"faq,omitempty"`
	SlugHint        string   `json:"slug_hint,omitempty"`
}
