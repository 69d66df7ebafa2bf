package render

// View names understood by Renderer.
const (
	ViewArticles    = "articles"
	ViewCategories  = "categories"
	ViewPopular     = "popular"
	ViewTagCloud    = "tag-cloud"
	ViewPagination  = "pagination"
	ViewPortfolio   = "portfolio"
	ViewFeatured    = "featured"
	ViewRecent      = "recent"
	ViewArticle     = "article"
	ViewTimeline    = "timeline"
	ViewError       = "error"
	ViewFormMessage = "form-message"
)

const viewTemplates = `
{{define "no-results"}}
<div class="no-results">
  <i class="fas fa-search"></i>
  <h3>{{.Title}}</h3>
  <p>{{.Hint}}</p>
</div>
{{end}}

{{define "tags"}}{{range .}}<span class="tag">{{.}}</span>{{end}}{{end}}

{{define "articles"}}
{{- if not .Articles}}{{template "no-results" .Placeholder}}{{else}}
{{- range .Articles}}
<article class="blog-article" id="post-{{.ID}}">
  <div class="article-image" style="--hue-a: {{hue .ID 0}}; --hue-b: {{hue .ID 1}}"></div>
  <div class="article-content">
    <div class="article-header">
      <h2 class="article-title"><a href="{{$.PostURL}}{{.ID}}">{{.Title}}</a></h2>
      <div class="article-meta">
        <span><i class="far fa-calendar"></i> {{date .Date}}</span>
        <span><i class="far fa-folder"></i> {{.Category}}</span>
        <span><i class="far fa-clock"></i> {{.ReadTime}} min read</span>
        <span><i class="far fa-eye"></i> {{.Views}} views</span>
      </div>
    </div>
    <div class="article-excerpt"><p>{{.Excerpt}}</p></div>
    <div class="article-footer">
      <div class="article-tags">{{template "tags" .Tags}}</div>
      <a href="{{$.PostURL}}{{.ID}}" class="read-more">Read more <i class="fas fa-arrow-right"></i></a>
    </div>
  </div>
</article>
{{- end}}{{end}}
{{end}}

{{define "categories"}}
{{- range .Counts}}
<div class="category-item" data-category="{{.Label}}" hx-get="{{$.Endpoint}}?{{query "category" .Label}}" hx-target="{{$.Target}}">
  <span>{{.Label}}</span>
  <span class="category-count">{{.Count}}</span>
</div>
{{- end}}
{{end}}

{{define "popular"}}
{{- range .Articles}}
<div class="popular-post">
  <div class="popular-image"></div>
  <div class="popular-content">
    <h4><a href="{{$.PostURL}}{{.ID}}">{{.Title}}</a></h4>
    <div class="popular-date">{{date .Date}}</div>
  </div>
</div>
{{- end}}
{{end}}

{{define "tag-cloud"}}
{{- range .Counts}}
<a href="#" class="tag" data-tag="{{.Label}}" hx-get="{{$.Endpoint}}?{{query "tag" .Label}}" hx-target="{{$.Target}}">{{.Label}} ({{.Count}})</a>
{{- end}}
{{end}}

{{define "page-link"}}
{{- if .Link.Disabled}}<span class="page-link disabled {{.Class}}">{{.Label}}</span>
{{- else}}<a href="?{{.Query}}" class="page-link{{if .Link.Current}} active{{end}} {{.Class}}" data-page="{{.Link.Page}}" hx-get="{{.Endpoint}}?{{.Query}}" hx-target="{{.Target}}" hx-swap="innerHTML show:window:top">{{.Label}}</a>
{{- end}}
{{end}}

{{define "pagination"}}
{{- if .Pagination.Visible}}
{{- template "page-link" (.Link .Pagination.Prev "prev" "Previous")}}
{{- range .Pagination.Pages}}{{template "page-link" ($.Link . "" "")}}{{end}}
{{- template "page-link" (.Link .Pagination.Next "next" "Next")}}
{{- end}}
{{end}}

{{define "portfolio"}}
{{- if not .Items}}{{template "no-results" .Placeholder}}{{else}}
{{- range .Items}}
<div class="portfolio-item" data-category="{{.Category}}">
  <div class="portfolio-image" data-category="{{.Category.Label}}"></div>
  <div class="portfolio-content">
    <h3 class="portfolio-title">{{.Title}}</h3>
    <div class="portfolio-meta"><span>{{.Year}}</span> &bull; <span>{{.Role}}</span></div>
    <p class="portfolio-description">{{.Description}}</p>
    <div class="portfolio-tags">{{template "tags" .Tags}}</div>
    <div class="portfolio-footer">
      <span class="category-badge">{{.Category.Label}}</span>
      {{- if .Link}}<a href="{{.Link}}" class="btn btn-outline">View details</a>{{end}}
    </div>
  </div>
</div>
{{- end}}{{end}}
{{end}}

{{define "featured"}}
{{- range .Items}}
<div class="project-card">
  <div class="project-image"></div>
  <div class="project-content">
    <h3 class="project-title">{{.Title}}</h3>
    <p class="project-category">{{.Category.Label}} &bull; {{.Year}}</p>
    <p>{{.Description}}</p>
    <div class="project-tags">{{template "tags" .Tags}}</div>
  </div>
</div>
{{- end}}
{{end}}

{{define "recent"}}
{{- range .Articles}}
<div class="blog-card">
  <div class="blog-image"></div>
  <div class="blog-content">
    <h3 class="blog-title">{{.Title}}</h3>
    <div class="blog-meta"><span>{{date .Date}}</span> &bull; <span>{{.Category}}</span> &bull; <span>{{.ReadTime}} min read</span></div>
    <p>{{.Excerpt}}</p>
    <a href="{{$.PostURL}}{{.ID}}" class="btn btn-outline">Read more</a>
  </div>
</div>
{{- end}}
{{end}}

{{define "article"}}
<article class="blog-post">
  <header>
    <h1>{{.Article.Title}}</h1>
    <div class="article-meta">
      <span>{{date .Article.Date}}</span> &bull; <span>{{.Article.Category}}</span> &bull; <span>{{.Article.ReadTime}} min read</span>
    </div>
    <div class="article-tags">{{template "tags" .Article.Tags}}</div>
  </header>
  <div class="post-body">{{.Body}}</div>
</article>
{{end}}

{{define "timeline"}}
{{- range .}}
<div class="timeline-item">
  <h3>{{.Title}}</h3>
  <div class="timeline-meta">{{.Organization}} &bull; {{.Start}} &ndash; {{.End}}</div>
  <ul>{{range .Highlights}}<li>{{.}}</li>{{end}}</ul>
</div>
{{- end}}
{{end}}

{{define "error"}}
<div class="error-message">
  <i class="fas fa-exclamation-triangle"></i>
  <p>{{.}}</p>
</div>
{{end}}

{{define "form-message"}}<div id="form-message" class="form-message {{.Kind}}" role="status" data-dismiss-after="{{.DismissAfter}}">{{.Text}}</div>{{end}}
`
