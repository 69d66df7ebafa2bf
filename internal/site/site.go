// Package site composes the site's pages. Each page document is parsed from
// the embedded page templates, receives the shared navbar and footer, and is
// then handed to the controller registered for it.
package site

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/Zachkp/folio/internal/content"
	"github.com/Zachkp/folio/internal/fragment"
	"github.com/Zachkp/folio/internal/listing"
	"github.com/Zachkp/folio/internal/render"
	"github.com/Zachkp/folio/internal/reveal"
)

// ErrNotFound is returned for unknown pages and records.
var ErrNotFound = errors.New("site: not found")

// Page names, matching the files under web/pages.
const (
	PageHome      = "index"
	PageAbout     = "about"
	PageBlog      = "blog"
	PagePortfolio = "portfolio"
	PageContact   = "contact"
	PagePost      = "blog-post"
)

// Pages lists the statically exportable pages.
var Pages = []string{PageHome, PageAbout, PageBlog, PagePortfolio, PageContact}

const (
	navbarContainer = "#navbar-container"
	footerContainer = "#footer-container"
)

// Endpoints the rendered markup points HTMX requests at.
const (
	BlogEndpoint      = "/blog/posts"
	PortfolioEndpoint = "/portfolio/items"
	PostURL           = "/blog/post/"
	ContactEndpoint   = "/contact"
)

const (
	DefaultBlogPageSize   = 5
	DefaultPortfolioBatch = 6
	RecentPostsLimit      = 3
)

// Option configures a Site.
type Option func(*Site)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Site) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source used for the footer year.
func WithClock(now func() time.Time) Option {
	return func(s *Site) {
		if now != nil {
			s.now = now
		}
	}
}

// WithBlogPageSize sets how many articles a blog page shows.
func WithBlogPageSize(n int) Option {
	return func(s *Site) {
		if n > 0 {
			s.blogPageSize = n
		}
	}
}

// WithPortfolioBatch sets how many projects are shown initially and added
// per "load more".
func WithPortfolioBatch(n int) Option {
	return func(s *Site) {
		if n > 0 {
			s.portfolioBatch = n
		}
	}
}

// Site renders every page of the portfolio.
type Site struct {
	pages    fs.FS
	loader   *fragment.Loader
	renderer *render.Renderer
	library  *content.Library
	logger   *slog.Logger
	now      func() time.Time

	articles listing.Engine[content.Article]
	projects listing.Engine[content.PortfolioItem]

	blogPageSize   int
	portfolioBatch int
}

// New returns a Site reading page templates from pages, which holds one
// <name>.html file per page.
func New(pages fs.FS, loader *fragment.Loader, renderer *render.Renderer, library *content.Library, opts ...Option) *Site {
	s := &Site{
		pages:          pages,
		loader:         loader,
		renderer:       renderer,
		library:        library,
		logger:         slog.Default(),
		now:            time.Now,
		articles:       listing.NewEngine(articleAccessors),
		projects:       listing.NewEngine(portfolioAccessors),
		blogPageSize:   DefaultBlogPageSize,
		portfolioBatch: DefaultPortfolioBatch,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BlogPageSize returns the configured blog page size.
func (s *Site) BlogPageSize() int { return s.blogPageSize }

// PortfolioBatch returns the configured portfolio batch size.
func (s *Site) PortfolioBatch() int { return s.portfolioBatch }

// Page renders page name as served at path, with q holding the request's
// filter state. Unknown pages return ErrNotFound.
func (s *Site) Page(ctx context.Context, name, path string, q url.Values) (*goquery.Document, error) {
	doc, err := s.compose(ctx, name, path)
	if err != nil {
		return nil, err
	}

	switch name {
	case PageHome:
		err = s.mountHome(doc, DefaultHomeHooks)
	case PageAbout:
		err = s.mountAbout(doc, DefaultAboutHooks)
	case PageBlog:
		err = s.mountBlog(doc, DefaultBlogHooks, s.BlogState(q))
	case PagePortfolio:
		err = s.mountPortfolio(doc, DefaultPortfolioHooks, s.PortfolioState(q))
	case PageContact:
		s.mountContact(doc, DefaultContactHooks)
	default:
		return nil, fmt.Errorf("page %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("page %q: %w", name, err)
	}
	reveal.ApplyAll(doc, stages[name]...)
	return doc, nil
}

// ArticleIDs lists every article id in display order.
func (s *Site) ArticleIDs() []int {
	all := s.library.Articles.All()
	ids := make([]int, len(all))
	for i, a := range all {
		ids[i] = a.ID
	}
	return ids
}

// Post renders the article page for id.
func (s *Site) Post(ctx context.Context, id int) (*goquery.Document, error) {
	article, ok := s.library.Articles.Get(id)
	if !ok {
		return nil, fmt.Errorf("article %d: %w", id, ErrNotFound)
	}
	// Articles highlight the blog entry of the navbar.
	doc, err := s.compose(ctx, PagePost, "/blog")
	if err != nil {
		return nil, err
	}
	if err := s.mountPost(doc, DefaultPostHooks, article); err != nil {
		return nil, fmt.Errorf("article %d: %w", id, err)
	}
	return doc, nil
}

// compose parses a page and injects the shared chrome.
func (s *Site) compose(ctx context.Context, name, path string) (*goquery.Document, error) {
	doc, err := s.parse(name)
	if err != nil {
		return nil, err
	}
	p := fragment.Page{Doc: doc, Path: path}
	s.loader.Render(ctx, p, "navbar", navbarContainer)
	s.loader.Render(ctx, p, "footer", footerContainer)

	// Pages may carry their own year slot or toggle outside the fragments.
	fragment.SetCurrentYear(doc, s.now())
	fragment.BindNavToggle(doc)
	return doc, nil
}

func (s *Site) parse(name string) (*goquery.Document, error) {
	f, err := s.pages.Open(name + ".html")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("page %q: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("opening page %q: %w", name, err)
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("parsing page %q: %w", name, err)
	}
	return doc, nil
}
