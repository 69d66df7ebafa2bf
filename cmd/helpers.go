package cmd

import (
	"fmt"
	"log/slog"

	"github.com/Zachkp/folio/internal/config"
	"github.com/Zachkp/folio/internal/content"
	"github.com/Zachkp/folio/internal/fragment"
	"github.com/Zachkp/folio/internal/render"
	"github.com/Zachkp/folio/internal/site"
	"github.com/Zachkp/folio/web"
)

// buildSite wires the content, fragment loader and renderer into a Site.
func buildSite(cfg *config.Config, logger *slog.Logger) (*site.Site, *render.Renderer, error) {
	lib, err := content.LoadLibrary()
	if err != nil {
		return nil, nil, fmt.Errorf("loading content: %w", err)
	}
	r, err := render.New()
	if err != nil {
		return nil, nil, err
	}

	var fetcher fragment.Fetcher = fragment.FSFetcher{FS: web.Components()}
	if cfg.Site.ComponentsURL != "" {
		fetcher = fragment.NewHTTPFetcher(cfg.Site.ComponentsURL, cfg.Site.FetchTimeout)
	}
	loader := fragment.NewLoader(fetcher,
		fragment.WithLogger(logger),
		fragment.WithFetchTimeout(cfg.Site.FetchTimeout),
	)

	st := site.New(web.Pages(), loader, r, lib,
		site.WithLogger(logger),
		site.WithBlogPageSize(cfg.Site.BlogPageSize),
		site.WithPortfolioBatch(cfg.Site.PortfolioBatch),
	)
	return st, r, nil
}
