package enhance

import (
	"testing"

	"github.com/Two-Pixel-Technologies/rural-research-web/internal/config"
	"github.com/Two-Pixel-Technologies/rural-research-web/internal/dom/memdom"
)

const anchorPage = `<!DOCTYPE html>
<html>
<body>
  <nav class="navbar"></nav>
  <a id="jump" href="#section1">Methods</a>
  <a id="bare" href="#">Top</a>
  <a id="dangling" href="#nowhere">Nowhere</a>
  <section id="section1">Methodology</section>
</body>
</html>`

func TestAnchorScrollOffset(t *testing.T) {
	doc := memdom.MustParse(anchorPage)
	doc.Query(".navbar").(*memdom.Element).SetRect(0, 64)
	doc.ElementByID("section1").(*memdom.Element).SetRect(900, 400)

	b := ResolveBindings(doc, config.DefaultConfig().Selectors)
	if len(b.AnchorLinks) != 3 {
		t.Fatalf("expected 3 fragment links, got %d", len(b.AnchorLinks))
	}
	NewAnchorScroller(doc, b, true).Wire()

	prevented := doc.Click(doc.ElementByID("jump"))
	if !prevented {
		t.Error("fragment click should prevent default navigation")
	}

	calls := doc.ScrollCalls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 scroll, got %d", len(calls))
	}
	if calls[0].Y != 836 {
		t.Errorf("scroll offset = %v, want 836 (900 - 64)", calls[0].Y)
	}
	if !calls[0].Smooth {
		t.Error("scroll should be smooth")
	}
}

func TestAnchorScrollWithoutNavbar(t *testing.T) {
	doc := memdom.MustParse(`<html><body>
      <a id="jump" href="#s">Go</a><section id="s"></section>
    </body></html>`)
	doc.ElementByID("s").(*memdom.Element).SetRect(500, 100)

	b := ResolveBindings(doc, config.DefaultConfig().Selectors)
	NewAnchorScroller(doc, b, true).Wire()

	doc.Click(doc.ElementByID("jump"))
	calls := doc.ScrollCalls()
	if len(calls) != 1 || calls[0].Y != 500 {
		t.Errorf("scroll calls = %+v, want one call to 500", calls)
	}
}

func TestAnchorBareFragmentIsIgnored(t *testing.T) {
	doc := memdom.MustParse(anchorPage)
	b := ResolveBindings(doc, config.DefaultConfig().Selectors)
	NewAnchorScroller(doc, b, true).Wire()

	if doc.Click(doc.ElementByID("bare")) {
		t.Error("bare # must not prevent default")
	}
	if len(doc.ScrollCalls()) != 0 {
		t.Errorf("bare # must not scroll, got %+v", doc.ScrollCalls())
	}
}

func TestAnchorUnknownTargetIsIgnored(t *testing.T) {
	doc := memdom.MustParse(anchorPage)
	b := ResolveBindings(doc, config.DefaultConfig().Selectors)
	NewAnchorScroller(doc, b, true).Wire()

	if doc.Click(doc.ElementByID("dangling")) {
		t.Error("unknown fragment must not prevent default")
	}
	if len(doc.ScrollCalls()) != 0 {
		t.Errorf("unknown fragment must not scroll, got %+v", doc.ScrollCalls())
	}
}
