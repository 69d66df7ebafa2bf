// Package render turns visible records into markup. Every view fully
// replaces the container it is rendered into; dynamic values are escaped by
// html/template.
package render

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"html/template"
	"io"
	"net/url"
	"strconv"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/Zachkp/folio/internal/content"
	"github.com/Zachkp/folio/internal/listing"
)

// Renderer executes the site's view templates.
type Renderer struct {
	tmpl *template.Template
	md   goldmark.Markdown
}

// New parses the view templates.
func New() (*Renderer, error) {
	tmpl, err := template.New("views").Funcs(template.FuncMap{
		"date":  formatDate,
		"hue":   hue,
		"query": query,
	}).Parse(viewTemplates)
	if err != nil {
		return nil, fmt.Errorf("parsing view templates: %w", err)
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)
	return &Renderer{tmpl: tmpl, md: md}, nil
}

// Execute writes view name with data to w.
func (r *Renderer) Execute(w io.Writer, name string, data any) error {
	if err := r.tmpl.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("rendering %s: %w", name, err)
	}
	return nil
}

// String renders view name to a string.
func (r *Renderer) String(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := r.Execute(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Into replaces the contents of every element in sel with view name.
func (r *Renderer) Into(sel *goquery.Selection, name string, data any) error {
	markup, err := r.String(name, data)
	if err != nil {
		return err
	}
	sel.SetHtml(markup)
	return nil
}

// Markdown converts article source to HTML. Raw HTML in the source is dropped.
func (r *Renderer) Markdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// EmptyState is the "no results" placeholder copy.
type EmptyState struct {
	Title string
	Hint  string
}

var (
	NoArticles = EmptyState{Title: "No articles found", Hint: "Try another search term or category."}
	NoProjects = EmptyState{Title: "No projects found", Hint: "Nothing matches the current filter, try another one."}
)

// ArticleList is the data for ViewArticles, ViewPopular and ViewRecent.
type ArticleList struct {
	Articles []content.Article
	PostURL  string
	Empty    EmptyState
}

// Placeholder returns the empty-state copy, defaulting to NoArticles.
func (l ArticleList) Placeholder() EmptyState {
	if l.Empty == (EmptyState{}) {
		return NoArticles
	}
	return l.Empty
}

// PortfolioList is the data for ViewPortfolio and ViewFeatured.
type PortfolioList struct {
	Items []content.PortfolioItem
	Empty EmptyState
}

// Placeholder returns the empty-state copy, defaulting to NoProjects.
func (l PortfolioList) Placeholder() EmptyState {
	if l.Empty == (EmptyState{}) {
		return NoProjects
	}
	return l.Empty
}

// CountList is the data for ViewCategories and ViewTagCloud. Endpoint and
// Target are the HTMX request path and swap target of each entry.
type CountList struct {
	Counts   []listing.Count
	Endpoint string
	Target   string
}

// PaginationView is the data for ViewPagination. Query holds the active
// filter; each link adds its page number to it.
type PaginationView struct {
	Pagination listing.Pagination
	Endpoint   string
	Target     string
	Query      url.Values
}

// PageLinkView is one rendered pagination link.
type PageLinkView struct {
	Link     listing.PageLink
	Class    string
	Label    string
	Query    template.URL
	Endpoint string
	Target   string
}

// Link prepares a page link for rendering. An empty label shows the page number.
func (p PaginationView) Link(link listing.PageLink, class, label string) PageLinkView {
	if label == "" {
		label = strconv.Itoa(link.Page)
	}
	q := url.Values{}
	for k, v := range p.Query {
		q[k] = v
	}
	q.Set("page", strconv.Itoa(link.Page))
	return PageLinkView{
		Link:     link,
		Class:    class,
		Label:    label,
		Query:    template.URL(q.Encode()),
		Endpoint: p.Endpoint,
		Target:   p.Target,
	}
}

// ArticleView is the data for ViewArticle.
type ArticleView struct {
	Article content.Article
	Body    template.HTML
}

// FormMessage is the data for ViewFormMessage.
type FormMessage struct {
	Kind         string
	Text         string
	DismissAfter int64 // milliseconds
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

// hue derives a stable gradient hue from a record id.
func hue(id, salt int) int {
	h := fnv.New32a()
	fmt.Fprintf(h, "%d:%d", id, salt)
	return int(h.Sum32() % 360)
}

func query(key, value string) string {
	return url.Values{key: {value}}.Encode()
}
