package content

import (
	"errors"
	"fmt"
	"slices"
)

// ErrDuplicateID is returned when two records in one store share an identifier.
var ErrDuplicateID = errors.New("duplicate record id")

// Store is an ordered, read-only sequence of records. Order is source order.
type Store[T any] struct {
	items []T
	index map[int]int
}

// NewStore builds a store, rejecting repeated identifiers.
func NewStore[T any](items []T, id func(T) int) (*Store[T], error) {
	s := &Store[T]{
		items: slices.Clone(items),
		index: make(map[int]int, len(items)),
	}
	for i, item := range s.items {
		key := id(item)
		if _, dup := s.index[key]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, key)
		}
		s.index[key] = i
	}
	return s, nil
}

// All returns the records in source order. Callers must not modify the result.
func (s *Store[T]) All() []T {
	if s == nil {
		return nil
	}
	return s.items
}

// Len returns the number of records.
func (s *Store[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// Get looks a record up by identifier.
func (s *Store[T]) Get(id int) (T, bool) {
	var zero T
	if s == nil {
		return zero, false
	}
	i, ok := s.index[id]
	if !ok {
		return zero, false
	}
	return s.items[i], true
}

// ArticleID and PortfolioID are the identifier accessors for the record types.
func ArticleID(a Article) int         { return a.ID }
func PortfolioID(p PortfolioItem) int { return p.ID }
