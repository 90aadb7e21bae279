package enhance

import (
	"github.com/Two-Pixel-Technologies/rural-research-web/internal/dom"
	"github.com/Two-Pixel-Technologies/rural-research-web/internal/logging"
)

// CardExpander makes a whole card navigate like its inner link. Clicks on
// the link itself are left to native navigation so the destination is not
// visited twice. Cards without a link keep their default behavior.
type CardExpander struct {
	doc   dom.Document
	cards []dom.Element
}

// NewCardExpander builds the expander over the resolved cards.
func NewCardExpander(doc dom.Document, b *Bindings) *CardExpander {
	return &CardExpander{doc: doc, cards: b.Cards}
}

// Wire gives each linked card a pointer cursor and a click handler.
func (c *CardExpander) Wire() {
	wired := 0
	for _, card := range c.cards {
		link := card.Query("a")
		if link == nil {
			continue
		}

		card.SetStyle("cursor", "pointer")
		card.OnClick(func(ev dom.Event) {
			if link.Contains(ev.Target()) {
				return
			}
			href := link.Href()
			if href == "" {
				return
			}
			logging.CardsDebug("card click -> %s", href)
			c.doc.Navigate(href)
		})
		wired++
	}
	if wired > 0 {
		logging.CardsDebug("%d cards expanded", wired)
	}
}
