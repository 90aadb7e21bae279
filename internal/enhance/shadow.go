package enhance

import (
	"github.com/Two-Pixel-Technologies/rural-research-web/internal/config"
	"github.com/Two-Pixel-Technologies/rural-research-web/internal/dom"
	"github.com/Two-Pixel-Technologies/rural-research-web/internal/logging"
)

// ShadowController adds the scrolled class to the navbar once the page has
// scrolled past the configured offset and removes it again near the top.
// Every scroll event is handled on its own; the work is one class check.
type ShadowController struct {
	doc           dom.Document
	navbar        dom.Element
	scrolledClass string
	offset        float64
}

// NewShadowController builds the controller. Wire is a no-op without a
// navbar.
func NewShadowController(doc dom.Document, b *Bindings, cfg config.ScrollConfig, scrolledClass string) *ShadowController {
	return &ShadowController{
		doc:           doc,
		navbar:        b.Navbar,
		scrolledClass: scrolledClass,
		offset:        cfg.ShadowOffsetPx,
	}
}

// Wire subscribes to scroll events.
func (s *ShadowController) Wire() {
	if s.navbar == nil {
		logging.ScrollDebug("no navbar, shadow controller inactive")
		return
	}
	s.doc.OnScroll(s.update)
}

func (s *ShadowController) update() {
	if s.doc.ScrollY() > s.offset {
		s.navbar.AddClass(s.scrolledClass)
	} else {
		s.navbar.RemoveClass(s.scrolledClass)
	}
}
