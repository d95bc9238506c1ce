package blogservice

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	maxSlugAttempts = 1000
	fallbackSlug    = "post"
)

var slugSeparatorRX = regexp.MustCompile(`[^a-z0-9]+`)

type slugLookup interface {
	slugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)
}

// slugify lowercases title, folds accented letters to ASCII and joins the remaining
// alphanumeric runs with hyphens.
func slugify(title string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, title)
	if err != nil {
		folded = title
	}

	slug := slugSeparatorRX.ReplaceAllString(strings.ToLower(folded), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return fallbackSlug
	}

	return slug
}

// generateUniqueSlug returns slugify(title), or the first of base-1, base-2, ... that is
// not used by a blog other than excludeID.
func generateUniqueSlug(ctx context.Context, lookup slugLookup, title string, excludeID uuid.UUID) (string, error) {
	base := slugify(title)
	slug := base

	for n := 1; ; n++ {
		exists, err := lookup.slugExists(ctx, slug, excludeID)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		if n > maxSlugAttempts {
			return "", ErrSlugExhausted
		}

		slug = fmt.Sprintf("%s-%d", base, n)
	}
}
