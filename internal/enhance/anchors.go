package enhance

import (
	"strings"

	"github.com/Two-Pixel-Technologies/rural-research-web/internal/dom"
	"github.com/Two-Pixel-Technologies/rural-research-web/internal/logging"
)

// AnchorScroller intercepts clicks on same-page fragment links and scrolls
// to the target with the navbar height subtracted, so the heading lands
// below the fixed bar instead of underneath it.
type AnchorScroller struct {
	doc    dom.Document
	navbar dom.Element
	links  []dom.Element
	smooth bool
}

// NewAnchorScroller builds the scroller over the resolved fragment links.
func NewAnchorScroller(doc dom.Document, b *Bindings, smooth bool) *AnchorScroller {
	return &AnchorScroller{
		doc:    doc,
		navbar: b.Navbar,
		links:  b.AnchorLinks,
		smooth: smooth,
	}
}

// Wire attaches a click handler to every fragment link.
func (s *AnchorScroller) Wire() {
	for _, link := range s.links {
		link := link
		link.OnClick(func(ev dom.Event) {
			s.follow(ev, link.Attr("href"))
		})
	}
}

// follow scrolls to the element the fragment names. A bare "#" or an
// unknown id leaves default navigation alone.
func (s *AnchorScroller) follow(ev dom.Event, href string) {
	id := strings.TrimPrefix(href, "#")
	if href == "" || id == "" {
		return
	}

	target := s.doc.ElementByID(id)
	if target == nil {
		logging.ScrollDebug("anchor target #%s not found", id)
		return
	}

	ev.PreventDefault()

	offset := target.Top() - s.navHeight()
	s.doc.ScrollTo(offset, s.smooth)
	logging.ScrollDebug("anchor #%s -> offset %.0f", id, offset)
}

func (s *AnchorScroller) navHeight() float64 {
	if s.navbar == nil {
		return 0
	}
	return s.navbar.Height()
}
