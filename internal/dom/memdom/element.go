package memdom

import (
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/Two-Pixel-Technologies/rural-research-web/internal/dom"
)

// Element is an in-memory dom.Element. Class and attribute mutations write
// through to the underlying parse tree, so selector queries observe them.
type Element struct {
	node *html.Node
	doc  *Document

	top    float64
	height float64
	styles map[string]string

	clickFns []func(dom.Event)
}

func (e *Element) TagName() string {
	return e.node.Data
}

func (e *Element) ID() string {
	return nodeAttr(e.node, "id")
}

func (e *Element) Attr(name string) string {
	return nodeAttr(e.node, name)
}

func (e *Element) SetAttr(name, value string) {
	setNodeAttr(e.node, name, value)
}

func (e *Element) DataAttr(name string) string {
	return nodeAttr(e.node, "data-"+name)
}

func (e *Element) classes() []string {
	return strings.Fields(nodeAttr(e.node, "class"))
}

func (e *Element) setClasses(classes []string) {
	setNodeAttr(e.node, "class", strings.Join(classes, " "))
}

func (e *Element) HasClass(name string) bool {
	for _, c := range e.classes() {
		if c == name {
			return true
		}
	}
	return false
}

func (e *Element) AddClass(name string) {
	if e.HasClass(name) {
		return
	}
	e.setClasses(append(e.classes(), name))
}

func (e *Element) RemoveClass(name string) {
	classes := e.classes()
	kept := classes[:0]
	for _, c := range classes {
		if c != name {
			kept = append(kept, c)
		}
	}
	e.setClasses(kept)
}

func (e *Element) ToggleClass(name string) bool {
	if e.HasClass(name) {
		e.RemoveClass(name)
		return false
	}
	e.AddClass(name)
	return true
}

func (e *Element) Href() string {
	return nodeAttr(e.node, "href")
}

// SetRect assigns the element's document-relative top offset and rendered
// height for geometry-sensitive assertions.
func (e *Element) SetRect(top, height float64) {
	e.top = top
	e.height = height
}

func (e *Element) Top() float64 {
	return e.top
}

func (e *Element) Height() float64 {
	return e.height
}

func (e *Element) Contains(other dom.Element) bool {
	oe, ok := other.(*Element)
	if !ok || oe == nil {
		return false
	}
	for n := oe.node; n != nil; n = n.Parent {
		if n == e.node {
			return true
		}
	}
	return false
}

func (e *Element) Query(selector string) dom.Element {
	sel := e.doc.compile(selector)
	if sel == nil {
		return nil
	}
	n := cascadia.Query(e.node, sel)
	if n == nil {
		return nil
	}
	return e.doc.wrap(n)
}

func (e *Element) QueryAll(selector string) []dom.Element {
	sel := e.doc.compile(selector)
	if sel == nil {
		return nil
	}
	nodes := cascadia.QueryAll(e.node, sel)
	els := make([]dom.Element, 0, len(nodes))
	for _, n := range nodes {
		els = append(els, e.doc.wrap(n))
	}
	return els
}

func (e *Element) SetStyle(prop, value string) {
	if e.styles == nil {
		e.styles = make(map[string]string)
	}
	if value == "" {
		delete(e.styles, prop)
		return
	}
	e.styles[prop] = value
}

// StyleValue returns the inline style assigned to prop, or "".
func (e *Element) StyleValue(prop string) string {
	return e.styles[prop]
}

func (e *Element) OnClick(fn func(dom.Event)) {
	e.clickFns = append(e.clickFns, fn)
}

type event struct {
	target    *Element
	prevented bool
}

func (ev *event) Target() dom.Element {
	return ev.target
}

func (ev *event) PreventDefault() {
	ev.prevented = true
}
