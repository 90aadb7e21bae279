// Package enhance wires the page behaviors for the rural research site:
// the mobile menu, anchor scrolling, viewport reveal animations, active
// link marking, the navbar scroll shadow and clickable project cards.
//
// Each behavior works on its own slice of the page and degrades to a
// no-op when its markup is absent. They are wired once, in a fixed
// sequence, as soon as the document structure is ready; none of them
// depends on another's side effects.
package enhance

import (
	"github.com/Two-Pixel-Technologies/rural-research-web/internal/config"
	"github.com/Two-Pixel-Technologies/rural-research-web/internal/dom"
	"github.com/Two-Pixel-Technologies/rural-research-web/internal/logging"
)

// Setup resolves the page bindings and wires every behavior. It runs
// immediately if the document has already loaded, otherwise once the
// structure is ready.
func Setup(doc dom.Document, cfg *config.Config) {
	doc.Ready(func() {
		wire(doc, cfg)
	})
}

func wire(doc dom.Document, cfg *config.Config) {
	t := logging.StartTimer(logging.CategoryBoot, "page enhancement")
	defer t.Stop()

	b := ResolveBindings(doc, cfg.Selectors)

	NewMenu(doc, b, cfg.Classes.Active).Wire()
	NewAnchorScroller(doc, b, cfg.Scroll.Smooth).Wire()
	NewRevealer(doc, b, cfg.Reveal, cfg.Classes.Animated).Wire()
	NewActiveLinkMarker(b, cfg.Classes.Active, cfg.Site.IndexDoc).Mark(doc.Location())
	NewShadowController(doc, b, cfg.Scroll, cfg.Classes.Scrolled).Wire()
	NewCardExpander(doc, b).Wire()

	logging.BootDebug("behaviors wired: links=%d reveals=%d cards=%d",
		len(b.NavLinks), len(b.RevealTargets), len(b.Cards))
}
