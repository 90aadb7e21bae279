package enhance

import (
	"strings"

	"github.com/Two-Pixel-Technologies/rural-research-web/internal/dom"
	"github.com/Two-Pixel-Technologies/rural-research-web/internal/logging"
)

// ActiveLinkMarker marks the navigation link that points at the current
// page. An empty final path segment is treated as the index document, so
// "/" and "/index.html" mark the same link. Marking is additive; links are
// never unmarked.
type ActiveLinkMarker struct {
	links       []dom.Element
	activeClass string
	indexDoc    string
}

// NewActiveLinkMarker builds the marker over the resolved navigation links.
func NewActiveLinkMarker(b *Bindings, activeClass, indexDoc string) *ActiveLinkMarker {
	return &ActiveLinkMarker{
		links:       b.NavLinks,
		activeClass: activeClass,
		indexDoc:    indexDoc,
	}
}

// Mark activates every link whose href equals the current document name.
func (m *ActiveLinkMarker) Mark(loc dom.Location) {
	current := currentDoc(loc.Path, m.indexDoc)
	for _, link := range m.links {
		if link.Href() == current {
			link.AddClass(m.activeClass)
			logging.NavDebug("active link %q", current)
		}
	}
}

// currentDoc returns the last path segment, falling back to the index
// document when the path ends in a slash or is empty.
func currentDoc(path, indexDoc string) string {
	segs := strings.Split(path, "/")
	if doc := segs[len(segs)-1]; doc != "" {
		return doc
	}
	return indexDoc
}
