package site

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Partial is an HTMX response: Main replaces the request's target and each
// OutOfBand element replaces the element with the same id.
type Partial struct {
	Main      string
	OutOfBand []string
}

// WriteTo writes the partial as a single response body.
func (p Partial) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, p.String())
	return int64(n), err
}

func (p Partial) String() string {
	var b strings.Builder
	b.WriteString(p.Main)
	for _, oob := range p.OutOfBand {
		b.WriteString("\n")
		b.WriteString(oob)
	}
	return b.String()
}

// cut takes the inner markup of main and the outer markup of each oob
// element, marked for an out-of-band swap. Missing oob elements are skipped.
func cut(main *goquery.Selection, oob ...*goquery.Selection) (Partial, error) {
	if main == nil {
		return Partial{}, fmt.Errorf("listing container: %w", ErrNotFound)
	}
	inner, err := main.Html()
	if err != nil {
		return Partial{}, err
	}
	p := Partial{Main: inner}
	for _, sel := range oob {
		if sel == nil {
			continue
		}
		sel.SetAttr("hx-swap-oob", "true")
		outer, err := goquery.OuterHtml(sel)
		if err != nil {
			return Partial{}, err
		}
		p.OutOfBand = append(p.OutOfBand, outer)
	}
	return p, nil
}
