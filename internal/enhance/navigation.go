package enhance

import (
	"strconv"

	"github.com/Two-Pixel-Technologies/rural-research-web/internal/dom"
	"github.com/Two-Pixel-Technologies/rural-research-web/internal/logging"
)

// Menu drives the mobile navigation menu. Open state lives in the active
// class on the menu element itself; the toggle's active class, its
// aria-expanded attribute and the body scroll lock are mirrored from it on
// every transition, so they can never drift apart.
type Menu struct {
	doc         dom.Document
	navbar      dom.Element
	toggle      dom.Element
	menu        dom.Element
	links       []dom.Element
	activeClass string
}

// NewMenu builds the menu controller. Toggle and Close are safe no-ops
// when the page lacks a toggle or a menu element.
func NewMenu(doc dom.Document, b *Bindings, activeClass string) *Menu {
	return &Menu{
		doc:         doc,
		navbar:      b.Navbar,
		toggle:      b.NavToggle,
		menu:        b.NavMenu,
		links:       b.NavLinks,
		activeClass: activeClass,
	}
}

// Wire attaches the toggle handler and the three dismissal paths: a click
// on any navigation link, Escape while open, and a click outside the
// navigation container while open.
func (m *Menu) Wire() {
	if m.toggle == nil || m.menu == nil {
		logging.NavDebug("menu markup missing, controller inactive")
		return
	}

	m.toggle.OnClick(func(dom.Event) { m.Toggle() })

	for _, link := range m.links {
		link.OnClick(func(dom.Event) { m.Close() })
	}

	m.doc.OnKeyDown(func(key string) {
		if key == "Escape" && m.IsOpen() {
			m.Close()
		}
	})

	container := m.navbar
	if container == nil {
		container = m.menu
	}
	m.doc.OnClick(func(target dom.Element) {
		if m.IsOpen() && !container.Contains(target) {
			m.Close()
		}
	})
}

// IsOpen reports whether the menu is currently open.
func (m *Menu) IsOpen() bool {
	return m.menu != nil && m.menu.HasClass(m.activeClass)
}

// Toggle flips the menu between open and closed.
func (m *Menu) Toggle() {
	if m.toggle == nil || m.menu == nil {
		return
	}
	open := m.menu.ToggleClass(m.activeClass)
	m.apply(open)
	logging.NavDebug("menu toggled, open=%v", open)
}

// Close closes the menu. Closing an already-closed menu is a no-op.
func (m *Menu) Close() {
	if !m.IsOpen() {
		return
	}
	m.menu.RemoveClass(m.activeClass)
	m.apply(false)
	logging.NavDebug("menu closed")
}

// apply mirrors the open state onto the toggle and the body scroll lock.
func (m *Menu) apply(open bool) {
	if open {
		m.toggle.AddClass(m.activeClass)
	} else {
		m.toggle.RemoveClass(m.activeClass)
	}
	m.toggle.SetAttr("aria-expanded", strconv.FormatBool(open))

	if body := m.doc.Body(); body != nil {
		if open {
			body.SetStyle("overflow", "hidden")
		} else {
			body.SetStyle("overflow", "")
		}
	}
}
