// Package reveal stages entrance animations in server-rendered markup. Each
// staged element gets a data-animation kind and a per-index delay; site.js
// plays the animation once when the element first scrolls into view.
package reveal

import (
	"fmt"
	"math"
	"strconv"

	"github.com/PuerkitoBio/goquery"
)

// Kind is the entrance effect.
type Kind string

const (
	FadeUp   Kind = "fade-up"
	FadeLeft Kind = "fade-left"
	Scale    Kind = "scale"
)

// Class marks elements the client-side observer watches.
const Class = "animate-on-scroll"

// Stage describes the staggered reveal of every element matching Selector.
type Stage struct {
	Selector string
	Kind     Kind
	Duration float64 // seconds
	Delay    float64 // seconds before the first element
	Stagger  float64 // seconds between consecutive elements
}

// Apply marks each element matched by the stage and returns how many were
// staged. Missing elements are not an error.
func (s Stage) Apply(doc *goquery.Document) int {
	kind := s.Kind
	if kind == "" {
		kind = FadeUp
	}
	duration := s.Duration
	if duration <= 0 {
		duration = 0.8
	}

	sel := doc.Find(s.Selector)
	sel.Each(func(i int, el *goquery.Selection) {
		el.AddClass(Class)
		el.SetAttr("data-animation", string(kind))
		el.SetAttr("data-duration", formatSeconds(duration))
		el.SetAttr("data-delay", formatSeconds(s.Delay+float64(i)*s.Stagger))
	})
	return sel.Length()
}

// ApplyAll applies every stage in order.
func ApplyAll(doc *goquery.Document, stages ...Stage) int {
	n := 0
	for _, s := range stages {
		n += s.Apply(doc)
	}
	return n
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64) + "s"
}

// String describes the stage for logs.
func (s Stage) String() string {
	return fmt.Sprintf("%s(%s)", s.Kind, s.Selector)
}
