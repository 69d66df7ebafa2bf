package site

import "github.com/PuerkitoBio/goquery"

// Page hook descriptors list the selectors each controller needs. They are
// resolved once per document; a selector that matches nothing turns the
// dependent feature off.

// BlogHooks are the blog page's elements.
type BlogHooks struct {
	Posts      string
	Categories string
	Popular    string
	TagCloud   string
	Pagination string
	Search     string
}

var DefaultBlogHooks = BlogHooks{
	Posts:      "#blog-posts",
	Categories: "#blog-categories",
	Popular:    "#popular-posts",
	TagCloud:   "#tag-cloud",
	Pagination: "#blog-pagination",
	Search:     "#blog-search",
}

type blogElements struct {
	posts, categories, popular, tagCloud, pagination, search *goquery.Selection
}

func (h BlogHooks) resolve(doc *goquery.Document) blogElements {
	return blogElements{
		posts:      lookup(doc, h.Posts),
		categories: lookup(doc, h.Categories),
		popular:    lookup(doc, h.Popular),
		tagCloud:   lookup(doc, h.TagCloud),
		pagination: lookup(doc, h.Pagination),
		search:     lookup(doc, h.Search),
	}
}

// PortfolioHooks are the portfolio page's elements. Filters matches every
// filter button; FilterBar is their common container.
type PortfolioHooks struct {
	Grid      string
	FilterBar string
	Filters   string
	LoadMore  string
}

var DefaultPortfolioHooks = PortfolioHooks{
	Grid:      "#portfolio-grid",
	FilterBar: "#portfolio-filters",
	Filters:   ".filter-btn",
	LoadMore:  "#load-more-btn",
}

type portfolioElements struct {
	grid, filterBar, filters, loadMore *goquery.Selection
}

func (h PortfolioHooks) resolve(doc *goquery.Document) portfolioElements {
	return portfolioElements{
		grid:      lookup(doc, h.Grid),
		filterBar: lookup(doc, h.FilterBar),
		filters:   lookupAll(doc, h.Filters),
		loadMore:  lookup(doc, h.LoadMore),
	}
}

// HomeHooks are the home page's elements.
type HomeHooks struct {
	Featured string
	Recent   string
}

var DefaultHomeHooks = HomeHooks{
	Featured: "#featured-projects",
	Recent:   "#recent-posts",
}

// AboutHooks are the about page's elements.
type AboutHooks struct {
	Timeline string
}

var DefaultAboutHooks = AboutHooks{Timeline: "#timeline"}

// ContactHooks are the contact page's elements.
type ContactHooks struct {
	Form    string
	Message string
	Submit  string
}

var DefaultContactHooks = ContactHooks{
	Form:    "#contact-form",
	Message: "#form-message",
	Submit:  `button[type="submit"]`,
}

// PostHooks are the article page's elements.
type PostHooks struct {
	Post string
}

var DefaultPostHooks = PostHooks{Post: "#post"}

func lookup(doc *goquery.Document, selector string) *goquery.Selection {
	if selector == "" {
		return nil
	}
	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return nil
	}
	return sel
}

func lookupAll(doc *goquery.Document, selector string) *goquery.Selection {
	if selector == "" {
		return nil
	}
	sel := doc.Find(selector)
	if sel.Length() == 0 {
		return nil
	}
	return sel
}
