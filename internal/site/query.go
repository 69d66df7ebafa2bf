package site

import (
	"net/url"
	"strconv"

	"github.com/Zachkp/folio/internal/listing"
)

// Query parameters understood by the listing endpoints.
const (
	ParamCategory = "category"
	ParamTag      = "tag"
	ParamSearch   = "q"
	ParamPage     = "page"
	ParamFilter   = "filter"
	ParamShown    = "shown"
)

// BlogState decodes the blog listing state from a query string. When several
// filters are present the search wins over the tag, and the tag over the
// category, as if they had been applied in that order.
func (s *Site) BlogState(q url.Values) listing.State {
	st := listing.NewState(s.blogPageSize)
	if q.Has(ParamCategory) {
		st.SetCategory(q.Get(ParamCategory))
	}
	if q.Has(ParamTag) {
		st.SetTag(q.Get(ParamTag))
	}
	if q.Has(ParamSearch) {
		st.SetSearch(q.Get(ParamSearch))
	}
	if p, err := strconv.Atoi(q.Get(ParamPage)); err == nil {
		st.SetPage(p)
	}
	return st
}

// blogQuery encodes the active filter of st, without the page.
func blogQuery(st listing.State) url.Values {
	q := url.Values{}
	if !st.Filter.Active() {
		return q
	}
	switch st.Filter.Dimension {
	case listing.DimensionCategory:
		q.Set(ParamCategory, st.Filter.Value)
	case listing.DimensionTag:
		q.Set(ParamTag, st.Filter.Value)
	case listing.DimensionSearch:
		q.Set(ParamSearch, st.Filter.Value)
	}
	return q
}

// PortfolioState is the portfolio grid's category filter and how many of the
// matching projects are shown.
type PortfolioState struct {
	Filter string
	Shown  int
}

// PortfolioState decodes the portfolio state from a query string.
func (s *Site) PortfolioState(q url.Values) PortfolioState {
	st := PortfolioState{Filter: listing.AllCategories, Shown: s.portfolioBatch}
	if f := q.Get(ParamFilter); f != "" {
		st.Filter = f
	}
	if n, err := strconv.Atoi(q.Get(ParamShown)); err == nil && n > 0 {
		st.Shown = n
	}
	return st
}

func portfolioQuery(filter string, shown int) string {
	return url.Values{
		ParamFilter: {filter},
		ParamShown:  {strconv.Itoa(shown)},
	}.Encode()
}
