package fragment

import (
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const (
	navLinkSelector    = ".nav-link"
	navToggleSelector  = ".mobile-toggle"
	navMenuSelector    = ".nav-menu"
	currentYearElement = "#current-year"

	navToggleHandler = "document.querySelector('.nav-menu').classList.toggle('active')"
)

// MarkActiveLinks clears "active" from every nav link, then sets it on the
// first link whose href matches path.
func MarkActiveLinks(doc *goquery.Document, path string) {
	links := doc.Find(navLinkSelector)
	links.RemoveClass("active")
	links.EachWithBreak(func(_ int, link *goquery.Selection) bool {
		href, ok := link.Attr("href")
		if ok && href != "" && IsCurrentPage(href, path) {
			link.AddClass("active")
			return false
		}
		return true
	})
}

// IsCurrentPage is a loose match between a nav href and the request path:
// the path ends with href, both are the root, or both sit under /pages/ and
// share the last path component.
func IsCurrentPage(href, path string) bool {
	if strings.HasSuffix(path, href) {
		return true
	}
	if path == "/" && href == "/" {
		return true
	}
	if strings.Contains(path, "/pages/") && strings.Contains(href, "/pages/") {
		return lastSegment(path) == lastSegment(href)
	}
	return false
}

func lastSegment(p string) string {
	return p[strings.LastIndex(p, "/")+1:]
}

// SetCurrentYear writes now's year into the current-year element, if present.
func SetCurrentYear(doc *goquery.Document, now time.Time) {
	doc.Find(currentYearElement).SetText(strconv.Itoa(now.Year()))
}

// BindNavToggle replaces the mobile toggle with a clone stripped of inline
// listeners and attaches a single click handler for the nav menu. It does
// nothing unless both the toggle and the menu exist.
func BindNavToggle(doc *goquery.Document) {
	toggle := doc.Find(navToggleSelector).First()
	if toggle.Length() == 0 || doc.Find(navMenuSelector).Length() == 0 {
		return
	}

	fresh := toggle.Clone()
	for _, n := range fresh.Nodes {
		n.Attr = stripListeners(n.Attr)
	}
	fresh.SetAttr("onclick", navToggleHandler)
	toggle.ReplaceWithSelection(fresh)
}

func stripListeners(attrs []html.Attribute) []html.Attribute {
	kept := attrs[:0]
	for _, a := range attrs {
		key := strings.ToLower(a.Key)
		if strings.HasPrefix(key, "on") || strings.HasPrefix(key, "hx-on") ||
			strings.HasPrefix(key, "x-on:") || strings.HasPrefix(key, "@") {
			continue
		}
		kept = append(kept, a)
	}
	return kept
}
