// Package listing derives the visible window of a record list: filtering by
// category, tag or search term, pagination, and the sidebar aggregates.
package listing

import (
	"strings"
	"unicode/utf8"
)

// AllCategories disables the category filter.
const AllCategories = "all"

// MinSearchLength is the rune count at which a search term takes effect.
const MinSearchLength = 2

// Dimension is the criterion the visible subset is currently derived by.
type Dimension int

const (
	DimensionNone Dimension = iota
	DimensionCategory
	DimensionTag
	DimensionSearch
)

func (d Dimension) String() string {
	switch d {
	case DimensionCategory:
		return "category"
	case DimensionTag:
		return "tag"
	case DimensionSearch:
		return "search"
	default:
		return "none"
	}
}

// Filter is the single active filter dimension and its value.
type Filter struct {
	Dimension Dimension
	Value     string
}

// Active reports whether the filter narrows the store at all.
func (f Filter) Active() bool {
	switch f.Dimension {
	case DimensionCategory:
		return f.Value != "" && f.Value != AllCategories
	case DimensionTag:
		return f.Value != ""
	case DimensionSearch:
		return utf8.RuneCountInString(f.Value) >= MinSearchLength
	default:
		return false
	}
}

// Accessors expose the fields of a record type the engine filters and ranks by.
type Accessors[T any] struct {
	ID       func(T) int
	Title    func(T) string
	Summary  func(T) string
	Tags     func(T) []string
	Category func(T) string
	Rank     func(T) int
}

// Engine filters and paginates records of one type.
type Engine[T any] struct {
	acc Accessors[T]
}

// NewEngine returns an engine over records described by acc.
func NewEngine[T any](acc Accessors[T]) Engine[T] {
	return Engine[T]{acc: acc}
}

// Accessors returns the field accessors the engine was built with.
func (e Engine[T]) Accessors() Accessors[T] {
	return e.acc
}

// Filter returns the records matching f in store order. An inactive filter
// returns all records.
func (e Engine[T]) Filter(items []T, f Filter) []T {
	if !f.Active() {
		return items
	}
	var match func(T) bool
	switch f.Dimension {
	case DimensionCategory:
		match = func(item T) bool { return e.acc.Category(item) == f.Value }
	case DimensionTag:
		match = func(item T) bool { return containsTag(e.acc.Tags(item), f.Value) }
	case DimensionSearch:
		query := strings.ToLower(f.Value)
		match = func(item T) bool { return e.matchesSearch(item, query) }
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		if match(item) {
			out = append(out, item)
		}
	}
	return out
}

func (e Engine[T]) matchesSearch(item T, query string) bool {
	if strings.Contains(strings.ToLower(e.acc.Title(item)), query) {
		return true
	}
	if e.acc.Summary != nil && strings.Contains(strings.ToLower(e.acc.Summary(item)), query) {
		return true
	}
	for _, tag := range e.acc.Tags(item) {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
