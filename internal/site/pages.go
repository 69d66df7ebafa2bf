package site

import (
	"slices"

	"github.com/PuerkitoBio/goquery"

	"github.com/Zachkp/folio/internal/contact"
	"github.com/Zachkp/folio/internal/content"
	"github.com/Zachkp/folio/internal/render"
	"github.com/Zachkp/folio/internal/reveal"
)

// Error copy shown in place of empty home page sections.
const (
	TextNoProjects = "Unable to load projects. Please try again later."
	TextNoPosts    = "Unable to load blog posts. Please try again later."
)

// stages are the entrance animations of each page.
var stages = map[string][]reveal.Stage{
	PageHome: {
		{Selector: ".hero-content", Kind: reveal.FadeUp},
		{Selector: ".project-card", Kind: reveal.FadeUp, Stagger: 0.1},
		{Selector: ".blog-card", Kind: reveal.FadeUp, Stagger: 0.1},
	},
	PageAbout: {
		{Selector: ".timeline-item", Kind: reveal.FadeLeft, Delay: 0.3, Stagger: 0.2},
		{Selector: ".matrix-category", Kind: reveal.FadeUp, Stagger: 0.2},
		{Selector: ".philosophy-card", Kind: reveal.Scale, Stagger: 0.15},
		{Selector: ".interest-card", Kind: reveal.FadeUp, Stagger: 0.15},
	},
	PageBlog: {
		{Selector: ".sidebar-widget", Kind: reveal.FadeUp, Stagger: 0.1},
	},
	PageContact: {
		{Selector: ".info-card", Kind: reveal.FadeLeft, Stagger: 0.15},
		{Selector: ".contact-form-container", Kind: reveal.FadeUp, Delay: 0.2},
		{Selector: ".faq-item", Kind: reveal.FadeUp, Stagger: 0.1},
	},
}

func (s *Site) mountHome(doc *goquery.Document, hooks HomeHooks) error {
	if el := lookup(doc, hooks.Featured); el != nil {
		var featured []content.PortfolioItem
		for _, p := range s.library.Portfolio.All() {
			if p.Featured {
				featured = append(featured, p)
			}
		}
		var err error
		if len(featured) == 0 {
			err = s.renderer.Into(el, render.ViewError, TextNoProjects)
		} else {
			err = s.renderer.Into(el, render.ViewFeatured, render.PortfolioList{Items: featured})
		}
		if err != nil {
			return err
		}
	}

	if el := lookup(doc, hooks.Recent); el != nil {
		recent := RecentArticles(s.library.Articles.All(), RecentPostsLimit)
		var err error
		if len(recent) == 0 {
			err = s.renderer.Into(el, render.ViewError, TextNoPosts)
		} else {
			err = s.renderer.Into(el, render.ViewRecent, render.ArticleList{Articles: recent, PostURL: PostURL})
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// RecentArticles returns up to n articles, newest first.
func RecentArticles(articles []content.Article, n int) []content.Article {
	sorted := slices.Clone(articles)
	slices.SortStableFunc(sorted, func(a, b content.Article) int {
		return b.Date.Compare(a.Date)
	})
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

func (s *Site) mountAbout(doc *goquery.Document, hooks AboutHooks) error {
	if el := lookup(doc, hooks.Timeline); el != nil {
		return s.renderer.Into(el, render.ViewTimeline, s.library.Timeline)
	}
	return nil
}

// mountContact points the form at the contact endpoint. The submit button is
// disabled by HTMX while the request is in flight.
func (s *Site) mountContact(doc *goquery.Document, hooks ContactHooks) {
	form := lookup(doc, hooks.Form)
	if form == nil {
		return
	}
	form.SetAttr("hx-post", ContactEndpoint)
	form.SetAttr("hx-target", hooks.Message)
	form.SetAttr("hx-swap", "outerHTML")
	form.SetAttr("hx-disabled-elt", "find "+hooks.Submit)

	if btn := form.Find(hooks.Submit).First(); btn.Length() > 0 {
		btn.SetAttr("data-busy-label", contact.DefaultBusyLabel)
	}
	if msg := lookup(doc, hooks.Message); msg != nil {
		msg.SetAttr("role", "status")
		msg.SetAttr("style", "display: none")
	}
}

func (s *Site) mountPost(doc *goquery.Document, hooks PostHooks, a content.Article) error {
	el := lookup(doc, hooks.Post)
	if el == nil {
		return ErrNotFound
	}
	body, err := s.renderer.Markdown(a.Content)
	if err != nil {
		return err
	}
	if title := doc.Find("title").First(); title.Length() > 0 {
		title.SetText(a.Title + " | " + title.Text())
	}
	return s.renderer.Into(el, render.ViewArticle, render.ArticleView{Article: a, Body: body})
}
