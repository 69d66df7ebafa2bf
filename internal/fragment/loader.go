// Package fragment loads shared page chrome (navbar, footer) once, memoizes
// it, and injects it into page documents.
package fragment

import (
	"context"
	"html"
	"log/slog"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/singleflight"
)

// Page is the document a fragment is rendered into and the path it is served at.
type Page struct {
	Doc  *goquery.Document
	Path string
}

// Hook runs after a fragment has been injected into a page.
type Hook func(p Page, now time.Time)

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger used for fetch failures.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithClock overrides the time source passed to hooks.
func WithClock(now func() time.Time) Option {
	return func(l *Loader) {
		if now != nil {
			l.now = now
		}
	}
}

// WithFetchTimeout bounds each fetch. Fetches are shared between concurrent
// callers, so they run detached from any single caller's cancellation.
func WithFetchTimeout(d time.Duration) Option {
	return func(l *Loader) {
		if d > 0 {
			l.timeout = d
		}
	}
}

// WithHook registers a post-render hook for the fragment with exactly this name.
func WithHook(name string, hook Hook) Option {
	return func(l *Loader) {
		l.hooks[name] = hook
	}
}

// DefaultFetchTimeout bounds a fragment fetch unless WithFetchTimeout says otherwise.
const DefaultFetchTimeout = 10 * time.Second

// Loader fetches each named fragment at most once and caches the markup.
// Failed fetches are not cached.
type Loader struct {
	fetcher Fetcher
	logger  *slog.Logger
	now     func() time.Time
	timeout time.Duration
	hooks   map[string]Hook

	mu    sync.RWMutex
	cache map[string]string
	group singleflight.Group
}

// NewLoader returns a loader with the navbar and footer hooks installed.
func NewLoader(fetcher Fetcher, opts ...Option) *Loader {
	l := &Loader{
		fetcher: fetcher,
		logger:  slog.Default(),
		now:     time.Now,
		timeout: DefaultFetchTimeout,
		cache:   make(map[string]string),
		hooks: map[string]Hook{
			"navbar": func(p Page, _ time.Time) { MarkActiveLinks(p.Doc, p.Path) },
			"footer": func(p Page, now time.Time) { SetCurrentYear(p.Doc, now) },
		},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load returns the fragment's markup. On failure it returns an inline error
// placeholder instead of an error.
func (l *Loader) Load(ctx context.Context, name string) string {
	l.mu.RLock()
	markup, ok := l.cache[name]
	l.mu.RUnlock()
	if ok {
		return markup
	}

	ch := l.group.DoChan(name, func() (any, error) {
		l.mu.RLock()
		cached, ok := l.cache[name]
		l.mu.RUnlock()
		if ok {
			return cached, nil
		}

		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), l.timeout)
		defer cancel()
		fetched, err := l.fetcher.Fetch(fetchCtx, name)
		if err != nil {
			return "", err
		}
		l.mu.Lock()
		l.cache[name] = fetched
		l.mu.Unlock()
		return fetched, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			l.logger.Error("loading fragment failed", "fragment", name, "error", res.Err)
			return Placeholder(name)
		}
		return res.Val.(string)
	case <-ctx.Done():
		l.logger.Warn("loading fragment abandoned", "fragment", name, "error", ctx.Err())
		return Placeholder(name)
	}
}

// Cached reports whether a fragment is already in the cache.
func (l *Loader) Cached(name string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.cache[name]
	return ok
}

// Render injects the named fragment into the first element matching
// selector, runs the fragment's hook and rebinds the mobile navigation
// toggle. It returns false, without fetching, when nothing matches.
func (l *Loader) Render(ctx context.Context, p Page, name, selector string) bool {
	target := p.Doc.Find(selector).First()
	if target.Length() == 0 {
		return false
	}

	target.SetHtml(l.Load(ctx, name))

	if hook, ok := l.hooks[name]; ok {
		hook(p, l.now())
	}
	BindNavToggle(p.Doc)
	return true
}

// Placeholder is the markup shown in place of a fragment that failed to load.
func Placeholder(name string) string {
	return `<div class="component-error">Unable to load ` + html.EscapeString(name) + `</div>`
}
