package site

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/Zachkp/folio/internal/listing"
	"github.com/Zachkp/folio/internal/render"
)

// mountPortfolio renders the first st.Shown projects of the st.Filter
// category, marks the active filter button and points the buttons and the
// load-more control at the next state.
func (s *Site) mountPortfolio(doc *goquery.Document, hooks PortfolioHooks, st PortfolioState) error {
	el := hooks.resolve(doc)

	filtered := s.projects.Filter(s.library.Portfolio.All(), listing.Filter{
		Dimension: listing.DimensionCategory,
		Value:     st.Filter,
	})
	if el.grid != nil {
		if err := s.renderer.Into(el.grid, render.ViewPortfolio, render.PortfolioList{
			Items: listing.Head(filtered, st.Shown),
		}); err != nil {
			return err
		}
	}

	if el.filters != nil {
		el.filters.Each(func(_ int, btn *goquery.Selection) {
			filter := btn.AttrOr("data-filter", listing.AllCategories)
			btn.RemoveClass("active")
			if filter == st.Filter {
				btn.AddClass("active")
			}
			// Changing the filter starts over at the first batch.
			btn.SetAttr("hx-get", PortfolioEndpoint+"?"+portfolioQuery(filter, s.portfolioBatch))
			btn.SetAttr("hx-target", hooks.Grid)
		})
	}

	if el.loadMore != nil {
		if st.Shown >= len(filtered) {
			el.loadMore.SetAttr("style", "display: none")
			el.loadMore.RemoveAttr("hx-get")
		} else {
			el.loadMore.SetAttr("style", "display: inline-block")
			el.loadMore.SetAttr("hx-get", PortfolioEndpoint+"?"+portfolioQuery(st.Filter, st.Shown+s.portfolioBatch))
			el.loadMore.SetAttr("hx-target", hooks.Grid)
		}
	}
	return nil
}

// PortfolioPartial renders the response to a portfolio grid request: the
// grid, with the filter bar and load-more control swapped out of band.
func (s *Site) PortfolioPartial(st PortfolioState) (Partial, error) {
	doc, err := s.parse(PagePortfolio)
	if err != nil {
		return Partial{}, err
	}
	if err := s.mountPortfolio(doc, DefaultPortfolioHooks, st); err != nil {
		return Partial{}, err
	}
	el := DefaultPortfolioHooks.resolve(doc)
	return cut(el.grid, el.filterBar, el.loadMore)
}
