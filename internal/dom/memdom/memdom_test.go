package memdom

import (
	"testing"
	"time"

	"github.com/Two-Pixel-Technologies/rural-research-web/internal/dom"
)

const page = `<!DOCTYPE html>
<html>
<body>
  <nav class="navbar">
    <button class="nav-toggle" aria-expanded="false"><span></span></button>
    <ul class="nav-menu">
      <li><a class="nav-link" href="index.html">Home</a></li>
      <li><a class="nav-link" href="projects.html">Projects</a></li>
    </ul>
  </nav>
  <main>
    <section id="intro" class="animate-on-scroll" data-delay="2">Intro</section>
    <div class="project-card"><h3>Soil survey</h3><a href="projects/soil.html"><span>Read more</span></a></div>
    <div class="project-card empty"><h3>No link here</h3></div>
  </main>
</body>
</html>`

func TestQuerySelectors(t *testing.T) {
	doc := MustParse(page)

	if el := doc.Query(".nav-toggle"); el == nil {
		t.Fatal("expected .nav-toggle to resolve")
	}
	if got := len(doc.QueryAll(".nav-link")); got != 2 {
		t.Errorf("expected 2 nav links, got %d", got)
	}
	if got := len(doc.QueryAll(`a[href^="#"]`)); got != 0 {
		t.Errorf("expected no fragment links, got %d", got)
	}
	if el := doc.ElementByID("intro"); el == nil || el.TagName() != "section" {
		t.Errorf("ElementByID(intro) = %v, want section element", el)
	}
	if el := doc.ElementByID("missing"); el != nil {
		t.Errorf("expected nil for unknown id, got %v", el)
	}
	if doc.Query("!!bogus!!") != nil {
		t.Error("invalid selector should match nothing")
	}
}

func TestClassMutationsWriteThrough(t *testing.T) {
	doc := MustParse(page)
	menu := doc.Query(".nav-menu")

	menu.AddClass("active")
	if !menu.HasClass("active") {
		t.Fatal("AddClass did not stick")
	}
	if doc.Query(".nav-menu.active") == nil {
		t.Error("selector queries should observe added classes")
	}

	menu.AddClass("active") // second add is a no-op
	menu.RemoveClass("active")
	if menu.HasClass("active") {
		t.Error("RemoveClass did not remove")
	}
	if on := menu.ToggleClass("active"); !on {
		t.Error("ToggleClass should report the class as now present")
	}
	if on := menu.ToggleClass("active"); on {
		t.Error("second ToggleClass should report removal")
	}
}

func TestAttributes(t *testing.T) {
	doc := MustParse(page)
	toggle := doc.Query(".nav-toggle")

	if got := toggle.Attr("aria-expanded"); got != "false" {
		t.Errorf("aria-expanded = %q, want false", got)
	}
	toggle.SetAttr("aria-expanded", "true")
	if got := toggle.Attr("aria-expanded"); got != "true" {
		t.Errorf("aria-expanded after set = %q, want true", got)
	}

	section := doc.ElementByID("intro")
	if got := section.DataAttr("delay"); got != "2" {
		t.Errorf("data-delay = %q, want 2", got)
	}
	if got := section.DataAttr("missing"); got != "" {
		t.Errorf("absent data attr = %q, want empty", got)
	}
}

func TestClickBubblesToAncestors(t *testing.T) {
	doc := MustParse(page)
	card := doc.Query(".project-card")
	link := card.Query("a")
	span := link.Query("span")

	var order []string
	link.OnClick(func(ev dom.Event) {
		order = append(order, "link")
		if ev.Target() != span {
			t.Errorf("event target = %v, want the span", ev.Target())
		}
	})
	card.OnClick(func(dom.Event) { order = append(order, "card") })

	var docSaw dom.Element
	doc.OnClick(func(target dom.Element) { docSaw = target })

	prevented := doc.Click(span)
	if prevented {
		t.Error("no listener prevented default")
	}
	if len(order) != 2 || order[0] != "link" || order[1] != "card" {
		t.Errorf("dispatch order = %v, want [link card]", order)
	}
	if docSaw != span {
		t.Errorf("document subscriber saw %v, want the span", docSaw)
	}
}

func TestClickPreventDefault(t *testing.T) {
	doc := MustParse(page)
	link := doc.Query(".nav-link")
	link.OnClick(func(ev dom.Event) { ev.PreventDefault() })

	if !doc.Click(link) {
		t.Error("PreventDefault should be reported")
	}
}

func TestContainsIsInclusive(t *testing.T) {
	doc := MustParse(page)
	card := doc.Query(".project-card")
	link := card.Query("a")
	span := link.Query("span")

	if !link.Contains(link) {
		t.Error("an element contains itself")
	}
	if !link.Contains(span) {
		t.Error("link should contain its span")
	}
	if link.Contains(card) {
		t.Error("link should not contain its ancestor")
	}
}

func TestObserverLifecycle(t *testing.T) {
	doc := MustParse(page)
	section := doc.ElementByID("intro")

	var seen []dom.Element
	obs := doc.NewObserver(dom.ObserverConfig{BottomInsetPx: 50, Threshold: 0.1}, func(el dom.Element) {
		seen = append(seen, el)
	})

	mobs := doc.LastObserver()
	if mobs == nil || mobs.Config.BottomInsetPx != 50 {
		t.Fatalf("observer config not recorded: %+v", mobs)
	}

	obs.Observe(section)
	if !mobs.Observing(section) {
		t.Fatal("section should be observed")
	}

	mobs.Intersect(section)
	if len(seen) != 1 {
		t.Fatalf("expected 1 delivery, got %d", len(seen))
	}

	obs.Unobserve(section)
	mobs.Intersect(section)
	if len(seen) != 1 {
		t.Error("unobserved element must not be delivered")
	}
}

func TestClockAdvance(t *testing.T) {
	doc := MustParse(page)
	clock := doc.Clock()

	var fired []string
	doc.Scheduler().After(300*time.Millisecond, func() { fired = append(fired, "late") })
	doc.Scheduler().After(100*time.Millisecond, func() { fired = append(fired, "early") })

	clock.Advance(50 * time.Millisecond)
	if len(fired) != 0 {
		t.Fatalf("nothing should fire at 50ms, got %v", fired)
	}

	clock.Advance(300 * time.Millisecond)
	if len(fired) != 2 || fired[0] != "early" || fired[1] != "late" {
		t.Errorf("fire order = %v, want [early late]", fired)
	}
	if clock.Pending() != 0 {
		t.Errorf("pending = %d, want 0", clock.Pending())
	}
}

func TestReadyQueueing(t *testing.T) {
	doc := MustParse(page)

	ran := false
	doc.Ready(func() { ran = true })
	if !ran {
		t.Fatal("loaded document should run Ready immediately")
	}

	doc.MarkLoading()
	ran = false
	doc.Ready(func() { ran = true })
	if ran {
		t.Fatal("loading document must queue Ready callbacks")
	}
	doc.FinishLoading()
	if !ran {
		t.Error("FinishLoading should flush queued callbacks")
	}
}

func TestScrollBookkeeping(t *testing.T) {
	doc := MustParse(page)

	var offsets []float64
	doc.OnScroll(func() { offsets = append(offsets, doc.ScrollY()) })

	doc.Scroll(15)
	doc.ScrollTo(731, true)

	if len(offsets) != 2 || offsets[0] != 15 || offsets[1] != 731 {
		t.Errorf("observed offsets = %v, want [15 731]", offsets)
	}
	calls := doc.ScrollCalls()
	if len(calls) != 1 || calls[0].Y != 731 || !calls[0].Smooth {
		t.Errorf("scroll calls = %+v, want one smooth call to 731", calls)
	}
}

func TestNavigationBookkeeping(t *testing.T) {
	doc := MustParse(page)
	doc.SetLocation("/projects/index.html", "#top")

	if loc := doc.Location(); loc.Path != "/projects/index.html" || loc.Hash != "#top" {
		t.Errorf("location = %+v", loc)
	}

	doc.Navigate("projects/soil.html")
	if navs := doc.Navigations(); len(navs) != 1 || navs[0] != "projects/soil.html" {
		t.Errorf("navigations = %v", navs)
	}
}

func TestGeometryAndStyles(t *testing.T) {
	doc := MustParse(page)
	section := doc.ElementByID("intro").(*Element)
	section.SetRect(820, 140)

	if section.Top() != 820 || section.Height() != 140 {
		t.Errorf("rect = (%v, %v), want (820, 140)", section.Top(), section.Height())
	}

	section.SetStyle("cursor", "pointer")
	if got := section.StyleValue("cursor"); got != "pointer" {
		t.Errorf("cursor = %q, want pointer", got)
	}
	section.SetStyle("cursor", "")
	if got := section.StyleValue("cursor"); got != "" {
		t.Errorf("cleared cursor = %q, want empty", got)
	}
}
