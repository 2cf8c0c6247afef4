// Package quality scores generated content against a fixed editorial rubric.
package quality

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/emlakpress/contentd/internal/models"
)

// PublishThreshold is the minimum score for auto-publish on approval. The
// review workflow depends on this exact value.
const PublishThreshold = 70

// Rubric bounds. The per-check point weights are tunable policy; the threshold
// above is not.
const (
	titleMinLen    = 30
	titleMaxLen    = 65
	metaDescMinLen = 120
	metaDescMaxLen = 160
	contentMinLen  = 1500
)

const (
	titlePoints    = 15
	metaDescPoints = 15
	slugPoints     = 10
	contentPoints  = 25
	headingPoints  = 15
	artifactPoints = 20
)

// Input is the subset of record fields the gate inspects.
type Input struct {
	Title           string
	Content         string
	Excerpt         string
	MetaDescription string
	Slug            string
}

var (
	headingTag      = regexp.MustCompile(`<h[1-6][^>]*>`)
	slugShape       = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	bracketArtifact = regexp.MustCompile(`\[[A-Z][A-Z0-9 _-]*\]`)
	blockquoteAlt   = regexp.MustCompile(`(?is)<blockquote[^>]*>.*?Alt Text.*?</blockquote>`)
)

// Check scores the input and returns an itemized verdict. It is total: empty
// or malformed input is simply scored as failing, never an error.
func Check(in Input) models.QualityVerdict {
	score := 0
	var issues []string

	if n := utf8.RuneCountInString(in.Title); n >= titleMinLen && n <= titleMaxLen {
		score += titlePoints
	} else {
		issues = append(issues, "title length outside target range")
	}

	if n := utf8.RuneCountInString(in.MetaDescription); n >= metaDescMinLen && n <= metaDescMaxLen {
		score += metaDescPoints
	} else {
		issues = append(issues, "meta description length outside target range")
	}

	if in.Slug != "" && slugShape.MatchString(in.Slug) {
		score += slugPoints
	} else {
		issues = append(issues, "slug missing or not URL-safe")
	}

	if utf8.RuneCountInString(in.Content) >= contentMinLen {
		score += contentPoints
	} else {
		issues = append(issues, "content below minimum length")
	}

	if headingTag.MatchString(in.Content) {
		score += headingPoints
	} else {
		issues = append(issues, "content has no headings")
	}

	if artifact := findArtifact(in.Content); artifact == "" {
		score += artifactPoints
	} else {
		issues = append(issues, "content contains placeholder artifact: "+artifact)
	}

	return models.QualityVerdict{
		Score:  score,
		Passed: score >= PublishThreshold,
		Issues: issues,
	}
}

// findArtifact returns the first unresolved placeholder or AI artifact found
// in the content, or "" when the content is clean.
func findArtifact(content string) string {
	if idx := strings.Index(content, "[IMAGE"); idx >= 0 {
		return "[IMAGE"
	}
	if blockquoteAlt.MatchString(content) {
		return "Alt Text blockquote"
	}
	if m := bracketArtifact.FindString(content); m != "" {
		return m
	}
	return ""
}
