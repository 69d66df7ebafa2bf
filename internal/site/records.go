package site

import (
	"github.com/Zachkp/folio/internal/content"
	"github.com/Zachkp/folio/internal/listing"
)

var articleAccessors = listing.Accessors[content.Article]{
	ID:       content.ArticleID,
	Title:    func(a content.Article) string { return a.Title },
	Summary:  func(a content.Article) string { return a.Excerpt },
	Tags:     func(a content.Article) []string { return a.Tags },
	Category: func(a content.Article) string { return a.Category },
	Rank:     func(a content.Article) int { return a.Views },
}

var portfolioAccessors = listing.Accessors[content.PortfolioItem]{
	ID:       content.PortfolioID,
	Title:    func(p content.PortfolioItem) string { return p.Title },
	Summary:  func(p content.PortfolioItem) string { return p.Description },
	Tags:     func(p content.PortfolioItem) []string { return p.Tags },
	Category: func(p content.PortfolioItem) string { return string(p.Category) },
	Rank:     func(p content.PortfolioItem) int { return p.Year },
}
