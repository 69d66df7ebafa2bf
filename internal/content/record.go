// Package content holds the static records shown on the site: blog articles
// and portfolio items, loaded once from embedded YAML and never mutated.
package content

import "time"

// Article is a single blog post.
type Article struct {
	ID       int       `yaml:"id"`
	Title    string    `yaml:"title"`
	Excerpt  string    `yaml:"excerpt"`
	Content  string    `yaml:"content"` // markdown
	Date     time.Time `yaml:"date"`
	Category string    `yaml:"category"`
	Tags     []string  `yaml:"tags"`
	ReadTime int       `yaml:"read_time"` // minutes
	Views    int       `yaml:"views"`
	Featured bool      `yaml:"featured"`
}

// Category identifies the kind of portfolio work.
type Category string

const (
	CategoryGame  Category = "game"
	CategoryArt   Category = "art"
	CategoryMusic Category = "music"
	CategoryTool  Category = "tool"
)

var categoryLabels = map[Category]string{
	CategoryGame:  "Complete Games",
	CategoryArt:   "Artwork",
	CategoryMusic: "Music & Audio",
	CategoryTool:  "Dev Tools",
}

// Label returns the display label, falling back to the raw value.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// PortfolioItem is a single entry in the portfolio grid.
type PortfolioItem struct {
	ID          int      `yaml:"id"`
	Title       string   `yaml:"title"`
	Category    Category `yaml:"category"`
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags"`
	Year        int      `yaml:"year"`
	Role        string   `yaml:"role"`
	Link        string   `yaml:"link,omitempty"`
	Featured    bool     `yaml:"featured"`
}

// TimelineEntry is a row of the about page's experience and education timeline.
type TimelineEntry struct {
	Title        string   `yaml:"title"`
	Organization string   `yaml:"organization"`
	Start        string   `yaml:"start"`
	End          string   `yaml:"end"`
	Logo         string   `yaml:"logo,omitempty"`
	Highlights   []string `yaml:"highlights"`
}
