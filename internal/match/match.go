// Package match holds the name-matching strategy used for duplicate
// detection before every insert path (manual add, recipe expansion,
// historic re-add, share merge).
package match

import (
	"strings"

	"github.com/checklistia/checklistia/internal/model"
)

// Matcher decides whether two product names refer to the same product.
// The strategy is pluggable so stricter normalization (diacritics,
// stemming) can be substituted without touching call sites.
type Matcher interface {
	Matches(a, b string) bool
}

// CaseInsensitive matches names after trimming whitespace, ignoring case.
// Diacritics are not normalized: "açúcar" and "acucar" are different.
type CaseInsensitive struct{}

func (CaseInsensitive) Matches(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// FindDuplicate returns the first item whose name matches the candidate
// under the given matcher, or nil when none matches.
func FindDuplicate(items []model.ShoppingItem, name string, m Matcher) *model.ShoppingItem {
	for i := range items {
		if m.Matches(items[i].Name, name) {
			return &items[i]
		}
	}
	return nil
}
