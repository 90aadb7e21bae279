//go:build js && wasm

package domjs

import (
	"fmt"
	"strings"
	"syscall/js"
	"time"

	"github.com/Two-Pixel-Technologies/rural-research-web/internal/dom"
)

// pin retains js.Func values for the lifetime of the page. Handlers are
// installed once at startup and never torn down, so nothing is ever
// released; without the pin the Go GC would collect the trampolines out
// from under the browser.
type pin struct {
	funcs []js.Func
}

func (p *pin) keep(fn js.Func) js.Func {
	p.funcs = append(p.funcs, fn)
	return fn
}

type document struct {
	doc js.Value
	win js.Value
	pin *pin
}

// New wraps the global browser document.
func New() dom.Document {
	g := js.Global()
	return &document{
		doc: g.Get("document"),
		win: g,
		pin: &pin{},
	}
}

func (d *document) wrap(v js.Value) dom.Element {
	if v.IsNull() || v.IsUndefined() {
		return nil
	}
	return &element{v: v, d: d}
}

func (d *document) ElementByID(id string) dom.Element {
	return d.wrap(d.doc.Call("getElementById", id))
}

func (d *document) Query(selector string) dom.Element {
	return d.wrap(d.doc.Call("querySelector", selector))
}

func (d *document) QueryAll(selector string) []dom.Element {
	return d.collect(d.doc.Call("querySelectorAll", selector))
}

func (d *document) collect(list js.Value) []dom.Element {
	n := list.Get("length").Int()
	els := make([]dom.Element, 0, n)
	for i := 0; i < n; i++ {
		if el := d.wrap(list.Index(i)); el != nil {
			els = append(els, el)
		}
	}
	return els
}

func (d *document) Body() dom.Element {
	return d.wrap(d.doc.Get("body"))
}

func (d *document) Location() dom.Location {
	loc := d.win.Get("location")
	return dom.Location{
		Path: loc.Get("pathname").String(),
		Hash: loc.Get("hash").String(),
	}
}

func (d *document) Navigate(url string) {
	d.win.Get("location").Set("href", url)
}

func (d *document) ScrollY() float64 {
	return d.win.Get("scrollY").Float()
}

func (d *document) ScrollTo(y float64, smooth bool) {
	behavior := "auto"
	if smooth {
		behavior = "smooth"
	}
	d.win.Call("scrollTo", map[string]interface{}{
		"top":      y,
		"behavior": behavior,
	})
}

func (d *document) OnScroll(fn func()) {
	cb := d.pin.keep(js.FuncOf(func(js.Value, []js.Value) interface{} {
		fn()
		return nil
	}))
	d.win.Call("addEventListener", "scroll", cb, map[string]interface{}{
		"passive": true,
	})
}

func (d *document) OnKeyDown(fn func(key string)) {
	cb := d.pin.keep(js.FuncOf(func(_ js.Value, args []js.Value) interface{} {
		if len(args) > 0 {
			fn(args[0].Get("key").String())
		}
		return nil
	}))
	d.doc.Call("addEventListener", "keydown", cb)
}

func (d *document) OnClick(fn func(target dom.Element)) {
	cb := d.pin.keep(js.FuncOf(func(_ js.Value, args []js.Value) interface{} {
		if len(args) > 0 {
			if el := d.wrap(args[0].Get("target")); el != nil {
				fn(el)
			}
		}
		return nil
	}))
	d.doc.Call("addEventListener", "click", cb)
}

func (d *document) Ready(fn func()) {
	if d.doc.Get("readyState").String() != "loading" {
		fn()
		return
	}
	cb := d.pin.keep(js.FuncOf(func(js.Value, []js.Value) interface{} {
		fn()
		return nil
	}))
	d.doc.Call("addEventListener", "DOMContentLoaded", cb)
}

func (d *document) NewObserver(cfg dom.ObserverConfig, fn func(el dom.Element)) dom.Observer {
	cb := d.pin.keep(js.FuncOf(func(_ js.Value, args []js.Value) interface{} {
		if len(args) == 0 {
			return nil
		}
		entries := args[0]
		for i := 0; i < entries.Get("length").Int(); i++ {
			entry := entries.Index(i)
			if !entry.Get("isIntersecting").Bool() {
				continue
			}
			if el := d.wrap(entry.Get("target")); el != nil {
				fn(el)
			}
		}
		return nil
	}))
	obs := d.win.Get("IntersectionObserver").New(cb, map[string]interface{}{
		"rootMargin": fmt.Sprintf("0px 0px -%.0fpx 0px", cfg.BottomInsetPx),
		"threshold":  cfg.Threshold,
	})
	return &observer{v: obs}
}

func (d *document) Scheduler() dom.Scheduler {
	return goScheduler{}
}

type observer struct {
	v js.Value
}

func (o *observer) Observe(el dom.Element) {
	if je, ok := el.(*element); ok {
		o.v.Call("observe", je.v)
	}
}

func (o *observer) Unobserve(el dom.Element) {
	if je, ok := el.(*element); ok {
		o.v.Call("unobserve", je.v)
	}
}

func (o *observer) Disconnect() {
	o.v.Call("disconnect")
}

// goScheduler runs deferred work on the wasm runtime's own timers, which
// share the page's event loop.
type goScheduler struct{}

func (goScheduler) After(d time.Duration, fn func()) {
	time.AfterFunc(d, fn)
}

type element struct {
	v js.Value
	d *document
}

func (e *element) TagName() string {
	return strings.ToLower(e.v.Get("tagName").String())
}

func (e *element) ID() string {
	return e.v.Get("id").String()
}

func (e *element) Attr(name string) string {
	v := e.v.Call("getAttribute", name)
	if v.IsNull() || v.IsUndefined() {
		return ""
	}
	return v.String()
}

func (e *element) SetAttr(name, value string) {
	e.v.Call("setAttribute", name, value)
}

func (e *element) DataAttr(name string) string {
	return e.Attr("data-" + name)
}

func (e *element) HasClass(name string) bool {
	return e.v.Get("classList").Call("contains", name).Bool()
}

func (e *element) AddClass(name string) {
	e.v.Get("classList").Call("add", name)
}

func (e *element) RemoveClass(name string) {
	e.v.Get("classList").Call("remove", name)
}

func (e *element) ToggleClass(name string) bool {
	return e.v.Get("classList").Call("toggle", name).Bool()
}

func (e *element) Href() string {
	return e.Attr("href")
}

func (e *element) Top() float64 {
	rect := e.v.Call("getBoundingClientRect")
	return rect.Get("top").Float() + e.d.win.Get("scrollY").Float()
}

func (e *element) Height() float64 {
	return e.v.Get("offsetHeight").Float()
}

func (e *element) Contains(other dom.Element) bool {
	oe, ok := other.(*element)
	if !ok {
		return false
	}
	return e.v.Call("contains", oe.v).Bool()
}

func (e *element) Query(selector string) dom.Element {
	return e.d.wrap(e.v.Call("querySelector", selector))
}

func (e *element) QueryAll(selector string) []dom.Element {
	return e.d.collect(e.v.Call("querySelectorAll", selector))
}

func (e *element) SetStyle(prop, value string) {
	style := e.v.Get("style")
	if value == "" {
		style.Call("removeProperty", prop)
		return
	}
	style.Call("setProperty", prop, value)
}

func (e *element) OnClick(fn func(dom.Event)) {
	cb := e.d.pin.keep(js.FuncOf(func(_ js.Value, args []js.Value) interface{} {
		if len(args) > 0 {
			fn(&event{v: args[0], d: e.d})
		}
		return nil
	}))
	e.v.Call("addEventListener", "click", cb)
}

type event struct {
	v js.Value
	d *document
}

func (ev *event) Target() dom.Element {
	return ev.d.wrap(ev.v.Get("target"))
}

func (ev *event) PreventDefault() {
	ev.v.Call("preventDefault")
}
