package site

import (
	"context"
	"errors"
	"io/fs"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/Zachkp/folio/internal/content"
	"github.com/Zachkp/folio/internal/fragment"
	"github.com/Zachkp/folio/internal/listing"
	"github.com/Zachkp/folio/internal/render"
	"github.com/Zachkp/folio/web"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func newTestSite(t *testing.T, pages fs.FS, opts ...Option) *Site {
	t.Helper()
	lib, err := content.LoadLibrary()
	if err != nil {
		t.Fatalf("LoadLibrary: %v", err)
	}
	r, err := render.New()
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	loader := fragment.NewLoader(fragment.FSFetcher{FS: web.Components()}, fragment.WithClock(clock))
	return New(pages, loader, r, lib, append([]Option{WithClock(clock)}, opts...)...)
}

func page(t *testing.T, s *Site, name, path, rawQuery string) *goquery.Document {
	t.Helper()
	q, err := url.ParseQuery(rawQuery)
	if err != nil {
		t.Fatal(err)
	}
	doc, err := s.Page(context.Background(), name, path, q)
	if err != nil {
		t.Fatalf("Page(%s): %v", name, err)
	}
	return doc
}

func ids(sel *goquery.Selection, attr string) []string {
	var out []string
	sel.Each(func(_ int, el *goquery.Selection) {
		out = append(out, el.AttrOr(attr, ""))
	})
	return out
}

func TestComposeInjectsChrome(t *testing.T) {
	s := newTestSite(t, web.Pages())
	doc := page(t, s, PageAbout, "/about", "")

	if doc.Find("#navbar-container .nav-menu").Length() != 1 {
		t.Fatal("navbar not injected")
	}
	if got := doc.Find(".nav-link.active").AttrOr("href", ""); got != "/about" {
		t.Errorf("active link = %q, want /about", got)
	}
	if got := doc.Find("#current-year").Text(); got != "2025" {
		t.Errorf("year = %q, want 2025", got)
	}
	if got := doc.Find(".mobile-toggle").AttrOr("onclick", ""); !strings.Contains(got, "nav-menu") {
		t.Errorf("toggle handler = %q", got)
	}
	if doc.Find("#timeline .timeline-item").Length() != 3 {
		t.Errorf("timeline entries = %d, want 3", doc.Find("#timeline .timeline-item").Length())
	}
	if got := doc.Find(".timeline-item").Eq(1).AttrOr("data-delay", ""); got != "0.5s" {
		t.Errorf("second timeline delay = %q, want 0.5s", got)
	}
}

func TestUnknownPage(t *testing.T) {
	s := newTestSite(t, web.Pages())
	_, err := s.Page(context.Background(), "nope", "/nope", nil)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestBlogFirstPage(t *testing.T) {
	s := newTestSite(t, web.Pages())
	doc := page(t, s, PageBlog, "/blog", "")

	if got := ids(doc.Find("#blog-posts .blog-article"), "id"); strings.Join(got, ",") != "post-1,post-2,post-3,post-4,post-5" {
		t.Errorf("posts = %v", got)
	}
	links := doc.Find("#blog-pagination .page-link")
	if got := links.Filter(".active").Text(); got != "1" {
		t.Errorf("active page = %q, want 1", got)
	}
	if doc.Find("#blog-pagination span.prev.disabled").Length() != 1 {
		t.Error("previous link should be disabled on page 1")
	}
	if got := doc.Find("#blog-pagination a.next").AttrOr("hx-get", ""); got != "/blog/posts?page=2" {
		t.Errorf("next hx-get = %q", got)
	}

	counts := 0
	doc.Find("#blog-categories .category-count").Each(func(_ int, c *goquery.Selection) {
		n, err := strconv.Atoi(strings.TrimSpace(c.Text()))
		if err != nil {
			t.Fatalf("category count %q: %v", c.Text(), err)
		}
		counts += n
	})
	if counts != 6 {
		t.Errorf("category counts sum to %d, want 6", counts)
	}
	if got := doc.Find("#popular-posts .popular-post").Length(); got != listing.PopularLimit {
		t.Errorf("popular posts = %d", got)
	}
	if got := doc.Find("#popular-posts h4 a").First().Text(); got != "Getting Started with Unity Shader Graph" {
		t.Errorf("most popular = %q", got)
	}
	if got := doc.Find("#blog-search").AttrOr("hx-get", ""); got != BlogEndpoint {
		t.Errorf("search hx-get = %q", got)
	}
}

func TestBlogSearchState(t *testing.T) {
	s := newTestSite(t, web.Pages())
	doc := page(t, s, PageBlog, "/blog", "q=tu")

	if got := ids(doc.Find("#blog-posts .blog-article"), "id"); strings.Join(got, ",") != "post-4,post-6" {
		t.Errorf("posts = %v, want post-4,post-6", got)
	}
	if got := doc.Find("#blog-search").AttrOr("value", ""); got != "tu" {
		t.Errorf("search value = %q", got)
	}
	if doc.Find("#blog-pagination .page-link").Length() != 0 {
		t.Error("a single page of results needs no pagination")
	}
}

func TestBlogNoResults(t *testing.T) {
	s := newTestSite(t, web.Pages())
	doc := page(t, s, PageBlog, "/blog", "tag=Nonexistent")

	if doc.Find("#blog-posts .no-results").Length() != 1 {
		t.Error("expected no-results placeholder")
	}
	if strings.TrimSpace(doc.Find("#blog-pagination").Text()) != "" {
		t.Error("pagination should be empty when nothing matches")
	}
}

func TestBlogStatePrecedence(t *testing.T) {
	s := newTestSite(t, web.Pages())
	st := s.BlogState(url.Values{"category": {"Programming"}, "tag": {"Tutorial"}, "page": {"2"}})
	if st.Filter.Dimension != listing.DimensionTag || st.Filter.Value != "Tutorial" {
		t.Errorf("filter = %+v, want tag Tutorial", st.Filter)
	}
	if st.Page != 2 || st.PageSize != DefaultBlogPageSize {
		t.Errorf("page %d size %d", st.Page, st.PageSize)
	}

	st = s.BlogState(url.Values{"page": {"-4"}})
	if st.Page != 1 {
		t.Errorf("page = %d, want clamped to 1", st.Page)
	}
}

func TestBlogPartial(t *testing.T) {
	s := newTestSite(t, web.Pages())
	st := s.BlogState(url.Values{"page": {"2"}})
	p, err := s.BlogPartial(st)
	if err != nil {
		t.Fatalf("BlogPartial: %v", err)
	}
	if !strings.Contains(p.Main, `id="post-6"`) || strings.Contains(p.Main, `id="post-1"`) {
		t.Errorf("main = %s", p.Main)
	}
	if len(p.OutOfBand) != 1 {
		t.Fatalf("out of band = %d, want 1", len(p.OutOfBand))
	}
	oob := p.OutOfBand[0]
	if !strings.Contains(oob, `id="blog-pagination"`) || !strings.Contains(oob, `hx-swap-oob="true"`) {
		t.Errorf("pagination oob = %s", oob)
	}
	if strings.Contains(p.String(), "category-item") {
		t.Error("partial should not re-render the sidebar")
	}
}

func TestBlogPartialPastLastPage(t *testing.T) {
	s := newTestSite(t, web.Pages())
	for _, raw := range []string{"3", "9223372036854775807", "3689348814741910324"} {
		p, err := s.BlogPartial(s.BlogState(url.Values{"page": {raw}}))
		if err != nil {
			t.Fatalf("page %s: %v", raw, err)
		}
		if !strings.Contains(p.Main, "no-results") || strings.Contains(p.Main, `id="post-`) {
			t.Errorf("page %s: main = %s", raw, p.Main)
		}
	}
}

func TestPortfolioLoadMore(t *testing.T) {
	s := newTestSite(t, web.Pages())

	doc := page(t, s, PagePortfolio, "/portfolio", "")
	if got := doc.Find("#portfolio-grid .portfolio-item").Length(); got != 6 {
		t.Errorf("initial items = %d, want 6", got)
	}
	more := doc.Find("#load-more-btn")
	if more.AttrOr("style", "") != "display: inline-block" {
		t.Errorf("load more style = %q", more.AttrOr("style", ""))
	}
	if got := more.AttrOr("hx-get", ""); got != "/portfolio/items?filter=all&shown=12" {
		t.Errorf("load more hx-get = %q", got)
	}
	if got := doc.Find(".filter-btn.active").AttrOr("data-filter", ""); got != "all" {
		t.Errorf("active filter = %q", got)
	}

	doc = page(t, s, PagePortfolio, "/portfolio", "filter=all&shown=12")
	if got := doc.Find("#portfolio-grid .portfolio-item").Length(); got != 8 {
		t.Errorf("expanded items = %d, want 8", got)
	}
	if doc.Find("#load-more-btn").AttrOr("style", "") != "display: none" {
		t.Error("load more should hide once everything is shown")
	}
}

func TestPortfolioFilter(t *testing.T) {
	s := newTestSite(t, web.Pages())
	doc := page(t, s, PagePortfolio, "/portfolio", "filter=game")

	items := doc.Find("#portfolio-grid .portfolio-item")
	if items.Length() != 3 {
		t.Errorf("game items = %d, want 3", items.Length())
	}
	items.Each(func(_ int, el *goquery.Selection) {
		if el.AttrOr("data-category", "") != "game" {
			t.Errorf("item of category %q in game filter", el.AttrOr("data-category", ""))
		}
	})
	if got := doc.Find(".portfolio-item .category-badge").First().Text(); got != "Complete Games" {
		t.Errorf("label = %q", got)
	}

	active := doc.Find(".filter-btn.active")
	if active.Length() != 1 || active.AttrOr("data-filter", "") != "game" {
		t.Errorf("active buttons = %v", ids(active, "data-filter"))
	}
	if got := doc.Find(`.filter-btn[data-filter="art"]`).AttrOr("hx-get", ""); got != "/portfolio/items?filter=art&shown=6" {
		t.Errorf("art button hx-get = %q", got)
	}
	if doc.Find("#load-more-btn").AttrOr("style", "") != "display: none" {
		t.Error("load more should be hidden for a filter with fewer items than a batch")
	}
}

func TestPortfolioPartial(t *testing.T) {
	s := newTestSite(t, web.Pages(), WithPortfolioBatch(2))
	p, err := s.PortfolioPartial(PortfolioState{Filter: "music", Shown: 2})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(p.Main, `class="portfolio-item"`) != 2 {
		t.Errorf("main = %s", p.Main)
	}
	if len(p.OutOfBand) != 2 {
		t.Fatalf("out of band = %d, want filters and load more", len(p.OutOfBand))
	}
	if !strings.Contains(p.OutOfBand[0], `id="portfolio-filters"`) || !strings.Contains(p.OutOfBand[1], `id="load-more-btn"`) {
		t.Errorf("oob = %v", p.OutOfBand)
	}
}

func TestHomeSections(t *testing.T) {
	s := newTestSite(t, web.Pages())
	doc := page(t, s, PageHome, "/", "")

	if got := doc.Find("#featured-projects .project-card").Length(); got != 1 {
		t.Errorf("featured = %d, want 1", got)
	}
	var titles []string
	doc.Find("#recent-posts .blog-title").Each(func(_ int, el *goquery.Selection) {
		titles = append(titles, el.Text())
	})
	want := []string{
		"Interactive Audio Design in Game Music",
		"TypeScript in Game Development",
		"Choosing a Visual Style for Indie Games",
	}
	if strings.Join(titles, "|") != strings.Join(want, "|") {
		t.Errorf("recent = %v", titles)
	}
	if got := doc.Find(".nav-link.active").AttrOr("href", ""); got != "/" {
		t.Errorf("active link = %q", got)
	}
}

func TestHomeEmptySectionsShowError(t *testing.T) {
	s := newTestSite(t, web.Pages())
	empty, _ := content.NewStore[content.PortfolioItem](nil, content.PortfolioID)
	s.library = &content.Library{Articles: s.library.Articles, Portfolio: empty}

	doc := page(t, s, PageHome, "/", "")
	if got := doc.Find("#featured-projects .error-message").Text(); !strings.Contains(got, TextNoProjects) {
		t.Errorf("featured = %q", got)
	}
}

func TestMissingHooksAreSkipped(t *testing.T) {
	pages := fstest.MapFS{
		"blog.html": {Data: []byte(`<html><body><div id="blog-posts"></div></body></html>`)},
	}
	s := newTestSite(t, pages)
	doc := page(t, s, PageBlog, "/blog", "")

	if doc.Find("#blog-posts .blog-article").Length() != 5 {
		t.Error("posts should render without the other widgets")
	}
	if doc.Find(".mobile-toggle").Length() != 0 {
		t.Error("no navbar container, so no navbar")
	}
}

func TestContactPageWiring(t *testing.T) {
	s := newTestSite(t, web.Pages())
	doc := page(t, s, PageContact, "/contact", "")

	form := doc.Find("#contact-form")
	if form.AttrOr("hx-post", "") != ContactEndpoint || form.AttrOr("hx-target", "") != "#form-message" {
		t.Errorf("form attrs: post=%q target=%q", form.AttrOr("hx-post", ""), form.AttrOr("hx-target", ""))
	}
	if got := form.Find(`button[type="submit"]`).AttrOr("data-busy-label", ""); got != "Sending..." {
		t.Errorf("busy label = %q", got)
	}
	if got := doc.Find("#form-message").AttrOr("style", ""); got != "display: none" {
		t.Errorf("message style = %q", got)
	}
	if doc.Find(".faq-item.animate-on-scroll").Length() == 0 {
		t.Error("faq items should be staged for reveal")
	}
}

func TestPost(t *testing.T) {
	s := newTestSite(t, web.Pages())
	doc, err := s.Post(context.Background(), 1)
	if err != nil {
		t.Fatalf("Post: %v", err)
	}
	if got := doc.Find("#post h1").Text(); got != "Interactive Audio Design in Game Music" {
		t.Errorf("title = %q", got)
	}
	if doc.Find("#post .post-body h2").Length() == 0 {
		t.Error("markdown body not rendered")
	}
	if !strings.HasPrefix(doc.Find("title").Text(), "Interactive Audio Design in Game Music | ") {
		t.Errorf("document title = %q", doc.Find("title").Text())
	}
	if got := doc.Find(".nav-link.active").AttrOr("href", ""); got != "/blog" {
		t.Errorf("active link = %q", got)
	}

	if _, err := s.Post(context.Background(), 99); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing post err = %v", err)
	}
}

func TestRecentArticles(t *testing.T) {
	a := []content.Article{
		{ID: 1, Date: fixedNow.AddDate(0, -2, 0)},
		{ID: 2, Date: fixedNow},
		{ID: 3, Date: fixedNow.AddDate(0, -1, 0)},
	}
	got := RecentArticles(a, 2)
	if len(got) != 2 || got[0].ID != 2 || got[1].ID != 3 {
		t.Errorf("recent = %+v", got)
	}
	if a[0].ID != 1 {
		t.Error("input was reordered")
	}
}
