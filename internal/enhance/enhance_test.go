package enhance

import (
	"testing"

	"github.com/Two-Pixel-Technologies/rural-research-web/internal/config"
	"github.com/Two-Pixel-Technologies/rural-research-web/internal/dom/memdom"
)

const fullPage = `<!DOCTYPE html>
<html>
<body>
  <nav class="navbar">
    <button class="nav-toggle" aria-expanded="false"><span></span></button>
    <ul class="nav-menu">
      <li><a class="nav-link" href="index.html">Home</a></li>
      <li><a class="nav-link" href="projects.html">Projects</a></li>
      <li><a class="nav-link" href="#contact">Contact</a></li>
    </ul>
  </nav>
  <main>
    <section id="hero" class="animate-on-scroll">Rural research network</section>
    <section id="projects" class="animate-on-scroll" data-delay="1">
      <div class="project-card">
        <h3 id="card-title">Water quality</h3>
        <a href="projects/water.html">Read more</a>
      </div>
    </section>
    <section id="contact">Contact</section>
  </main>
</body>
</html>`

func TestSetupWiresEverything(t *testing.T) {
	doc := memdom.MustParse(fullPage)
	doc.SetLocation("/projects.html", "")
	doc.Query(".navbar").(*memdom.Element).SetRect(0, 60)
	doc.ElementByID("contact").(*memdom.Element).SetRect(1400, 300)

	Setup(doc, config.DefaultConfig())

	// menu
	doc.Click(doc.Query(".nav-toggle"))
	if !doc.Query(".nav-menu").HasClass("active") {
		t.Error("toggle click should open the menu")
	}
	doc.Key("Escape")
	if doc.Query(".nav-menu").HasClass("active") {
		t.Error("escape should close the menu")
	}

	// active link
	active := doc.QueryAll(".nav-link.active")
	if len(active) != 1 || active[0].Href() != "projects.html" {
		t.Errorf("active links = %v, want projects.html only", active)
	}

	// reveal observer
	obs := doc.LastObserver()
	if obs == nil || obs.ObservedCount() != 2 {
		t.Fatalf("expected observer over 2 elements, got %+v", obs)
	}

	// anchor scrolling
	prevented := doc.Click(doc.QueryAll(".nav-link")[2])
	if !prevented {
		t.Error("fragment nav link should prevent default")
	}
	calls := doc.ScrollCalls()
	if len(calls) != 1 || calls[0].Y != 1340 {
		t.Errorf("scroll calls = %+v, want one call to 1340", calls)
	}

	// shadow
	doc.Scroll(40)
	if !doc.Query(".navbar").HasClass("scrolled") {
		t.Error("deep scroll should shadow the navbar")
	}

	// cards
	doc.Click(doc.ElementByID("card-title"))
	if navs := doc.Navigations(); len(navs) != 1 || navs[0] != "projects/water.html" {
		t.Errorf("navigations = %v, want [projects/water.html]", navs)
	}
}

func TestSetupWaitsForReady(t *testing.T) {
	doc := memdom.MustParse(fullPage)
	doc.MarkLoading()

	Setup(doc, config.DefaultConfig())

	doc.Click(doc.Query(".nav-toggle"))
	if doc.Query(".nav-menu").HasClass("active") {
		t.Fatal("nothing may be wired before the document is ready")
	}

	doc.FinishLoading()
	doc.Click(doc.Query(".nav-toggle"))
	if !doc.Query(".nav-menu").HasClass("active") {
		t.Error("behaviors should be wired once loading finishes")
	}
}

func TestSetupOnEmptyPage(t *testing.T) {
	doc := memdom.MustParse(`<html><body><p>plain text</p></body></html>`)
	Setup(doc, config.DefaultConfig())

	// no behavior should have left a mark
	if doc.LastObserver() != nil {
		t.Error("no observer expected on a plain page")
	}
	doc.Scroll(100)
	doc.Key("Escape")
	if len(doc.Navigations()) != 0 || len(doc.ScrollCalls()) != 0 {
		t.Error("plain page must stay untouched")
	}
}
