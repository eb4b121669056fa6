package catalog

import (
	"strings"

	"golang.org/x/text/cases"
)

// fold returns the case-folded form of s used for every title and author
// comparison, so "Über" and "ÜBER" compare equal.
func fold(s string) string {
	return cases.Fold().String(s)
}

func sameTitle(a, b string) bool {
	return fold(a) == fold(b)
}

// matchesFolded reports whether the already folded query occurs in the
// book's title or author.
func (b Book) matchesFolded(foldedQuery string) bool {
	return strings.Contains(fold(b.Title), foldedQuery) || strings.Contains(fold(b.Author), foldedQuery)
}

// Matches reports whether query occurs in the title or author, ignoring case.
// An empty query matches every book.
func (b Book) Matches(query string) bool {
	return b.matchesFolded(fold(query))
}
