package domain

import (
	"sort"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortStable returns a sorted copy of items. The input slice is not touched
// and items with equal keys keep their relative order.
func SortStable[T any](items []T, criterion SortCriterion, name func(T) string, price func(T) decimal.Decimal) []T {
	out := make([]T, len(items))
	copy(out, items)

	switch criterion {
	case SortName:
		// Collator keeps internal buffers, so one per call
		col := collate.New(language.English)
		sort.SliceStable(out, func(i, j int) bool {
			return col.CompareString(name(out[i]), name(out[j])) < 0
		})
	case SortPrice:
		sort.SliceStable(out, func(i, j int) bool {
			return price(out[i]).LessThan(price(out[j]))
		})
	}

	return out
}
