// Package memdom implements the dom capability interfaces over a parsed
// in-memory HTML tree. It exists so the page behaviors can be exercised
// without a rendering engine: tests drive clicks, key presses, scrolling,
// intersection and time explicitly and assert the resulting class,
// attribute and navigation state.
//
// Dispatch is synchronous and single-threaded, mirroring the browser's
// serialized event loop.
package memdom

import (
	"fmt"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/Two-Pixel-Technologies/rural-research-web/internal/dom"
)

// Document is an in-memory dom.Document with explicit controls for the
// inputs a browser would produce on its own.
type Document struct {
	root *html.Node

	elements  map[*html.Node]*Element
	selectors map[string]cascadia.Sel

	location dom.Location
	scrollY  float64
	loading  bool

	scrollFns []func()
	keyFns    []func(string)
	clickFns  []func(dom.Element)
	readyFns  []func()

	scrolls     []ScrollCall
	navigations []string

	observers []*Observer
	clock     *Clock
}

// ScrollCall records one programmatic window scroll.
type ScrollCall struct {
	Y      float64
	Smooth bool
}

// Parse builds a document from HTML source. The document starts out fully
// loaded; use MarkLoading to exercise deferred startup.
func Parse(src string) (*Document, error) {
	root, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &Document{
		root:      root,
		elements:  make(map[*html.Node]*Element),
		selectors: make(map[string]cascadia.Sel),
		clock:     newClock(),
	}, nil
}

// MustParse is Parse for fixtures known to be valid.
func MustParse(src string) *Document {
	d, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return d
}

func (d *Document) wrap(n *html.Node) *Element {
	if n == nil {
		return nil
	}
	if el, ok := d.elements[n]; ok {
		return el
	}
	el := &Element{node: n, doc: d}
	d.elements[n] = el
	return el
}

func (d *Document) compile(selector string) cascadia.Sel {
	if sel, ok := d.selectors[selector]; ok {
		return sel
	}
	sel, err := cascadia.Parse(selector)
	if err != nil {
		// Invalid selectors match nothing, like querySelectorAll with a
		// selector the engine rejects would surface as no behavior.
		sel = nil
	}
	d.selectors[selector] = sel
	return sel
}

func (d *Document) ElementByID(id string) dom.Element {
	n := findByID(d.root, id)
	if n == nil {
		return nil
	}
	return d.wrap(n)
}

func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode && nodeAttr(n, "id") == id {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

func (d *Document) Query(selector string) dom.Element {
	sel := d.compile(selector)
	if sel == nil {
		return nil
	}
	n := cascadia.Query(d.root, sel)
	if n == nil {
		return nil
	}
	return d.wrap(n)
}

func (d *Document) QueryAll(selector string) []dom.Element {
	sel := d.compile(selector)
	if sel == nil {
		return nil
	}
	nodes := cascadia.QueryAll(d.root, sel)
	els := make([]dom.Element, 0, len(nodes))
	for _, n := range nodes {
		els = append(els, d.wrap(n))
	}
	return els
}

func (d *Document) Body() dom.Element {
	sel := d.compile("body")
	if n := cascadia.Query(d.root, sel); n != nil {
		return d.wrap(n)
	}
	return nil
}

// SetLocation positions the document at the given URL pieces.
func (d *Document) SetLocation(path, hash string) {
	d.location = dom.Location{Path: path, Hash: hash}
}

func (d *Document) Location() dom.Location {
	return d.location
}

func (d *Document) Navigate(url string) {
	d.navigations = append(d.navigations, url)
}

// Navigations returns every whole-page navigation requested so far.
func (d *Document) Navigations() []string {
	return d.navigations
}

func (d *Document) ScrollY() float64 {
	return d.scrollY
}

func (d *Document) ScrollTo(y float64, smooth bool) {
	d.scrolls = append(d.scrolls, ScrollCall{Y: y, Smooth: smooth})
	d.Scroll(y)
}

// ScrollCalls returns every programmatic scroll requested so far.
func (d *Document) ScrollCalls() []ScrollCall {
	return d.scrolls
}

// Scroll moves the window to offset y and fires scroll subscribers, the way
// user scrolling would.
func (d *Document) Scroll(y float64) {
	d.scrollY = y
	for _, fn := range d.scrollFns {
		fn()
	}
}

func (d *Document) OnScroll(fn func()) {
	d.scrollFns = append(d.scrollFns, fn)
}

func (d *Document) OnKeyDown(fn func(key string)) {
	d.keyFns = append(d.keyFns, fn)
}

func (d *Document) OnClick(fn func(target dom.Element)) {
	d.clickFns = append(d.clickFns, fn)
}

// Key dispatches a key press to document subscribers.
func (d *Document) Key(key string) {
	for _, fn := range d.keyFns {
		fn(key)
	}
}

// Click dispatches a click originating on target: element listeners run
// from the target up through its ancestors, then document subscribers, the
// way a browser bubbles. It reports whether any listener prevented the
// default action.
func (d *Document) Click(target dom.Element) bool {
	el, ok := target.(*Element)
	if !ok || el == nil {
		return false
	}
	ev := &event{target: el}
	for n := el.node; n != nil; n = n.Parent {
		cur, tracked := d.elements[n]
		if !tracked {
			continue
		}
		for _, fn := range cur.clickFns {
			fn(ev)
		}
	}
	for _, fn := range d.clickFns {
		fn(el)
	}
	return ev.prevented
}

// MarkLoading puts the document back into the loading state so Ready
// callbacks queue instead of running immediately.
func (d *Document) MarkLoading() {
	d.loading = true
}

// FinishLoading fires queued Ready callbacks and marks the document loaded.
func (d *Document) FinishLoading() {
	d.loading = false
	fns := d.readyFns
	d.readyFns = nil
	for _, fn := range fns {
		fn()
	}
}

func (d *Document) Ready(fn func()) {
	if d.loading {
		d.readyFns = append(d.readyFns, fn)
		return
	}
	fn()
}

func (d *Document) NewObserver(cfg dom.ObserverConfig, fn func(el dom.Element)) dom.Observer {
	obs := &Observer{Config: cfg, fn: fn, observed: make(map[*Element]bool)}
	d.observers = append(d.observers, obs)
	return obs
}

// Observers returns every observer created on this document, in creation
// order.
func (d *Document) Observers() []*Observer {
	return d.observers
}

// LastObserver returns the most recently created observer, or nil.
func (d *Document) LastObserver() *Observer {
	if len(d.observers) == 0 {
		return nil
	}
	return d.observers[len(d.observers)-1]
}

func (d *Document) Scheduler() dom.Scheduler {
	return d.clock
}

// Clock returns the manual scheduler backing Scheduler, for advancing time
// in tests.
func (d *Document) Clock() *Clock {
	return d.clock
}

func nodeAttr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func setNodeAttr(n *html.Node, name, value string) {
	for i, a := range n.Attr {
		if a.Key == name {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: name, Val: value})
}
