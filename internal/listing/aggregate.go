package listing

import (
	"cmp"
	"slices"
)

const (
	// PopularLimit is the number of records in the popularity ranking.
	PopularLimit = 5
	// TagCloudLimit is the number of tags in the tag cloud.
	TagCloudLimit = 15
)

// Count pairs a label with its number of occurrences.
type Count struct {
	Label string
	Count int
}

// CategoryCounts counts records per category in order of first appearance.
func (e Engine[T]) CategoryCounts(items []T) []Count {
	return tally(items, func(item T, add func(string)) {
		add(e.acc.Category(item))
	})
}

// Popular returns up to limit records ordered by rank descending. Equal ranks
// keep store order.
func (e Engine[T]) Popular(items []T, limit int) []T {
	ranked := slices.Clone(items)
	slices.SortStableFunc(ranked, func(a, b T) int {
		return cmp.Compare(e.acc.Rank(b), e.acc.Rank(a))
	})
	return Head(ranked, limit)
}

// TagCloud counts tag occurrences across all records and returns the most
// frequent up to limit. Equal counts keep first-encountered order.
func (e Engine[T]) TagCloud(items []T, limit int) []Count {
	counts := tally(items, func(item T, add func(string)) {
		for _, tag := range e.acc.Tags(item) {
			add(tag)
		}
	})
	slices.SortStableFunc(counts, func(a, b Count) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return Head(counts, limit)
}

func tally[T any](items []T, each func(T, func(string))) []Count {
	var out []Count
	pos := make(map[string]int)
	add := func(label string) {
		if i, ok := pos[label]; ok {
			out[i].Count++
			return
		}
		pos[label] = len(out)
		out = append(out, Count{Label: label, Count: 1})
	}
	for _, item := range items {
		each(item, add)
	}
	return out
}
