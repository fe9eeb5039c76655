package helper

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Numeric-aware and case/accent-insensitive: "Turma 2" < "Turma 10" and
// "turma a" == "Turma A". A collator is not safe for concurrent use.
func newNaturalCollator() *collate.Collator {
	return collate.New(language.BrazilianPortuguese, collate.Numeric, collate.Loose)
}

// SortNatural stably sorts items by key(item). Equal keys keep input order.
func SortNatural[T any](items []T, key func(T) string) {
	col := newNaturalCollator()
	sort.SliceStable(items, func(i, j int) bool {
		return col.CompareString(key(items[i]), key(items[j])) < 0
	})
}
