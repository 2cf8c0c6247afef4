// Package slug derives URL-safe, per-table-unique slugs for content records.
package slug

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
)

const maxLength = 100

// Turkish characters mapped to their ASCII equivalents.
var transliterations = map[rune]rune{
	'ç': 'c', 'Ç': 'c',
	'ğ': 'g', 'Ğ': 'g',
	'ı': 'i', 'İ': 'i',
	'ö': 'o', 'Ö': 'o',
	'ş': 's', 'Ş': 's',
	'ü': 'u', 'Ü': 'u',
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// ExistsFunc reports whether a slug is already taken within the target table.
type ExistsFunc func(ctx context.Context, slug string) (bool, error)

// Slugify formats a candidate into a URL-safe slug without touching any
// external store: lowercase, transliterate, collapse non-alphanumeric runs to
// single hyphens, trim hyphens, cap at 100 characters.
func Slugify(candidate string) string {
	s := strings.ToLower(strings.Map(func(r rune) rune {
		if mapped, ok := transliterations[r]; ok {
			return mapped
		}
		return r
	}, candidate))

	s = nonAlnum.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	if len(s) > maxLength {
		s = strings.Trim(s[:maxLength], "-")
	}
	return s
}

// Resolve slugifies the candidate and disambiguates a collision by appending a
// millisecond timestamp, shortening the base so the result stays within the
// 100-character cap. The new candidate is not re-checked; two collisions
// within the same millisecond are accepted as a negligible edge case.
func Resolve(ctx context.Context, candidate string, exists ExistsFunc) (string, error) {
	s := Slugify(candidate)

	taken, err := exists(ctx, s)
	if err != nil {
		return "", fmt.Errorf("slug uniqueness check failed: %w", err)
	}
	if !taken {
		return s, nil
	}

	suffix := fmt.Sprintf("-%d", time.Now().UnixMilli())
	if len(s)+len(suffix) > maxLength {
		s = strings.TrimRight(s[:maxLength-len(suffix)], "-")
	}
	return s + suffix, nil
}
