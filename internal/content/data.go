package content

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

// Library is the full set of records the site serves.
type Library struct {
	Articles  *Store[Article]
	Portfolio *Store[PortfolioItem]
	Timeline  []TimelineEntry
}

// LoadLibrary decodes the embedded sample data.
func LoadLibrary() (*Library, error) {
	var articles []Article
	if err := decode("data/articles.yaml", &articles); err != nil {
		return nil, err
	}
	var items []PortfolioItem
	if err := decode("data/portfolio.yaml", &items); err != nil {
		return nil, err
	}
	var timeline []TimelineEntry
	if err := decode("data/timeline.yaml", &timeline); err != nil {
		return nil, err
	}

	articleStore, err := NewStore(articles, ArticleID)
	if err != nil {
		return nil, fmt.Errorf("articles: %w", err)
	}
	portfolioStore, err := NewStore(items, PortfolioID)
	if err != nil {
		return nil, fmt.Errorf("portfolio: %w", err)
	}

	return &Library{
		Articles:  articleStore,
		Portfolio: portfolioStore,
		Timeline:  timeline,
	}, nil
}

func decode(name string, out any) error {
	data, err := dataFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	return nil
}
