package site

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/Zachkp/folio/internal/listing"
	"github.com/Zachkp/folio/internal/render"
)

const searchTrigger = "input changed delay:300ms, search"

// mountBlog renders the article list for st along with its pagination and
// the sidebar widgets. Each widget is skipped when its hook is absent.
func (s *Site) mountBlog(doc *goquery.Document, hooks BlogHooks, st listing.State) error {
	el := hooks.resolve(doc)
	all := s.library.Articles.All()

	res := s.articles.Apply(all, st)
	if el.posts != nil {
		if err := s.renderer.Into(el.posts, render.ViewArticles, render.ArticleList{
			Articles: res.Visible,
			PostURL:  PostURL,
		}); err != nil {
			return err
		}
	}
	if el.pagination != nil {
		if err := s.renderer.Into(el.pagination, render.ViewPagination, render.PaginationView{
			Pagination: listing.Paginate(res.Page, res.TotalPages),
			Endpoint:   BlogEndpoint,
			Target:     hooks.Posts,
			Query:      blogQuery(st),
		}); err != nil {
			return err
		}
	}
	if el.categories != nil {
		if err := s.renderer.Into(el.categories, render.ViewCategories, render.CountList{
			Counts:   s.articles.CategoryCounts(all),
			Endpoint: BlogEndpoint,
			Target:   hooks.Posts,
		}); err != nil {
			return err
		}
	}
	if el.popular != nil {
		if err := s.renderer.Into(el.popular, render.ViewPopular, render.ArticleList{
			Articles: s.articles.Popular(all, listing.PopularLimit),
			PostURL:  PostURL,
		}); err != nil {
			return err
		}
	}
	if el.tagCloud != nil {
		if err := s.renderer.Into(el.tagCloud, render.ViewTagCloud, render.CountList{
			Counts:   s.articles.TagCloud(all, listing.TagCloudLimit),
			Endpoint: BlogEndpoint,
			Target:   hooks.Posts,
		}); err != nil {
			return err
		}
	}
	if el.search != nil {
		el.search.SetAttr("name", ParamSearch)
		el.search.SetAttr("hx-get", BlogEndpoint)
		el.search.SetAttr("hx-trigger", searchTrigger)
		el.search.SetAttr("hx-target", hooks.Posts)
		if st.Filter.Dimension == listing.DimensionSearch {
			el.search.SetAttr("value", st.Filter.Value)
		}
	}
	return nil
}

// BlogPartial renders the response to a blog listing request: the article
// list, with the pagination swapped out of band.
func (s *Site) BlogPartial(st listing.State) (Partial, error) {
	doc, err := s.parse(PageBlog)
	if err != nil {
		return Partial{}, err
	}
	hooks := DefaultBlogHooks
	// Sidebar widgets do not change with the filter.
	hooks.Categories, hooks.Popular, hooks.TagCloud = "", "", ""
	if err := s.mountBlog(doc, hooks, st); err != nil {
		return Partial{}, err
	}
	el := hooks.resolve(doc)
	return cut(el.posts, el.pagination)
}
