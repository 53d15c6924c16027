package service

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/video-club/video-club-api/internal/web/catalog/model"
)

// titleNormalizer folds case, strips diacritics, and recomposes, so
// "Amélie" and "AMELIE" normalize to the same form.
var titleNormalizer = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// NormalizeTitle returns the canonical matching form of a movie title:
// trimmed, case folded, diacritics stripped, whitespace runs collapsed
// to a single space. Matching on this form replaces the old
// regex-with-wildcard-gaps lookup, which misbehaved on titles containing
// pattern metacharacters.
func NormalizeTitle(title string) string {
	stripped, _, err := transform.String(titleNormalizer, title)
	if err != nil {
		// Transform only fails on invalid UTF-8; fall back to the raw title.
		stripped = title
	}

	folded := cases.Fold().String(stripped)
	return strings.Join(strings.Fields(folded), " ")
}

// titleNorms collects the normalized form of every locale title,
// deduplicated, for the movie's title_norms field.
func titleNorms(translations map[string]model.Translation) []string {
	seen := make(map[string]struct{}, len(translations))
	var norms []string
	for _, tr := range translations {
		n := NormalizeTitle(tr.Title)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		norms = append(norms, n)
	}

	return norms
}
