package enhance

import (
	"testing"

	"github.com/Two-Pixel-Technologies/rural-research-web/internal/config"
	"github.com/Two-Pixel-Technologies/rural-research-web/internal/dom/memdom"
)

const cardsPage = `<!DOCTYPE html>
<html>
<body>
  <div class="project-card" id="linked">
    <h3 id="title">Soil health survey</h3>
    <a href="projects/soil.html"><span id="more">Read more</span></a>
  </div>
  <div class="project-card" id="bare">
    <h3>Unpublished work</h3>
  </div>
</body>
</html>`

func wireCards(t *testing.T) *memdom.Document {
	t.Helper()
	doc := memdom.MustParse(cardsPage)
	b := ResolveBindings(doc, config.DefaultConfig().Selectors)
	NewCardExpander(doc, b).Wire()
	return doc
}

func TestCardClickNavigates(t *testing.T) {
	doc := wireCards(t)

	doc.Click(doc.ElementByID("title"))

	navs := doc.Navigations()
	if len(navs) != 1 || navs[0] != "projects/soil.html" {
		t.Errorf("navigations = %v, want [projects/soil.html]", navs)
	}
}

func TestCardLinkClickIsNative(t *testing.T) {
	doc := wireCards(t)

	// clicks on the link or its descendants stay with the link
	doc.Click(doc.ElementByID("more"))
	doc.Click(doc.ElementByID("linked").Query("a"))

	if navs := doc.Navigations(); len(navs) != 0 {
		t.Errorf("expander must not double-navigate, got %v", navs)
	}
}

func TestCardAffordance(t *testing.T) {
	doc := wireCards(t)

	linked := doc.ElementByID("linked").(*memdom.Element)
	if got := linked.StyleValue("cursor"); got != "pointer" {
		t.Errorf("linked card cursor = %q, want pointer", got)
	}

	bare := doc.ElementByID("bare").(*memdom.Element)
	if got := bare.StyleValue("cursor"); got != "" {
		t.Errorf("bare card cursor = %q, want none", got)
	}
}

func TestCardWithoutLinkIsInert(t *testing.T) {
	doc := wireCards(t)

	doc.Click(doc.ElementByID("bare"))
	if navs := doc.Navigations(); len(navs) != 0 {
		t.Errorf("bare card must not navigate, got %v", navs)
	}
}
