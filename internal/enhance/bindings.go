package enhance

import (
	"github.com/Two-Pixel-Technologies/rural-research-web/internal/config"
	"github.com/Two-Pixel-Technologies/rural-research-web/internal/dom"
)

// Bindings holds the structural elements the behaviors attach to, resolved
// once at startup. Absent elements stay nil and the behavior that needs
// them turns into a no-op, so a page can ship any subset of the markup.
type Bindings struct {
	Navbar    dom.Element
	NavToggle dom.Element
	NavMenu   dom.Element

	NavLinks      []dom.Element
	AnchorLinks   []dom.Element
	RevealTargets []dom.Element
	Cards         []dom.Element
}

// ResolveBindings queries the document for every configured selector.
func ResolveBindings(doc dom.Document, sel config.SelectorsConfig) *Bindings {
	return &Bindings{
		Navbar:        doc.Query(sel.Navbar),
		NavToggle:     doc.Query(sel.NavToggle),
		NavMenu:       doc.Query(sel.NavMenu),
		NavLinks:      doc.QueryAll(sel.NavLink),
		AnchorLinks:   doc.QueryAll(sel.AnchorLink),
		RevealTargets: doc.QueryAll(sel.Reveal),
		Cards:         doc.QueryAll(sel.Card),
	}
}
