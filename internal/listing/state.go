package listing

// State is the filter and page position a listing is rendered from.
// Setting a filter dimension replaces any previous one and rewinds to page 1.
type State struct {
	Filter   Filter
	Page     int
	PageSize int
}

// NewState returns the default state: no filter, first page.
func NewState(pageSize int) State {
	if pageSize < 1 {
		pageSize = 1
	}
	return State{Page: 1, PageSize: pageSize}
}

// SetCategory filters by category; AllCategories clears the filter.
func (s *State) SetCategory(category string) {
	s.Filter = Filter{Dimension: DimensionCategory, Value: category}
	s.Page = 1
}

// SetTag filters by exact tag.
func (s *State) SetTag(tag string) {
	s.Filter = Filter{Dimension: DimensionTag, Value: tag}
	s.Page = 1
}

// SetSearch filters by a free-text query.
func (s *State) SetSearch(query string) {
	s.Filter = Filter{Dimension: DimensionSearch, Value: query}
	s.Page = 1
}

// Reset clears the filter and rewinds to page 1.
func (s *State) Reset() {
	s.Filter = Filter{}
	s.Page = 1
}

// SetPage moves to page p. Pages below 1 are clamped to 1.
func (s *State) SetPage(p int) {
	if p < 1 {
		p = 1
	}
	s.Page = p
}
