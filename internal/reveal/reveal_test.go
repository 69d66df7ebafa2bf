package reveal

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func TestStageStaggersDelays(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<div class="card">a</div><div class="card">b</div><div class="card">c</div>`))
	if err != nil {
		t.Fatal(err)
	}

	n := Stage{Selector: ".card", Kind: Scale, Delay: 0.3, Stagger: 0.2}.Apply(doc)
	if n != 3 {
		t.Fatalf("staged %d, want 3", n)
	}

	want := []string{"0.3s", "0.5s", "0.7s"}
	doc.Find(".card").Each(func(i int, s *goquery.Selection) {
		if !s.HasClass(Class) {
			t.Errorf("card %d missing %s", i, Class)
		}
		if v, _ := s.Attr("data-animation"); v != string(Scale) {
			t.Errorf("card %d animation = %q", i, v)
		}
		if v, _ := s.Attr("data-delay"); v != want[i] {
			t.Errorf("card %d delay = %q, want %q", i, v, want[i])
		}
		if v, _ := s.Attr("data-duration"); v != "0.8s" {
			t.Errorf("card %d duration = %q", i, v)
		}
	})
}

func TestMissingElementsAreIgnored(t *testing.T) {
	doc, _ := goquery.NewDocumentFromReader(strings.NewReader(`<p>nothing</p>`))
	if n := ApplyAll(doc, Stage{Selector: ".timeline-item"}, Stage{Selector: ".skill-card"}); n != 0 {
		t.Errorf("staged %d, want 0", n)
	}
}
