// Package dom defines the slice of the browser document model that the page
// behaviors consume. The interfaces are implemented by domjs (syscall/js,
// wasm builds) and memdom (in-memory, native builds and tests), so every
// behavior can run and be tested without a rendering engine.
package dom

// Event carries the pieces of a dispatched browser event the behaviors
// inspect.
type Event interface {
	// Target returns the element the event originated on.
	Target() Element

	// PreventDefault suppresses the browser's default reaction, e.g. an
	// anchor navigation.
	PreventDefault()
}

// Element is a live element handle. Lookups of the same underlying node
// yield handles that behave identically; identity checks go through
// Contains, which is inclusive like the browser's Node.contains.
type Element interface {
	TagName() string
	ID() string

	// Attr returns the attribute value, or "" when absent.
	Attr(name string) string
	SetAttr(name, value string)

	// DataAttr returns the data-<name> attribute value, or "" when absent.
	DataAttr(name string) string

	HasClass(name string) bool
	AddClass(name string)
	RemoveClass(name string)

	// ToggleClass flips the class and reports whether it is now present.
	ToggleClass(name string) bool

	// Href returns the anchor reference as authored in the markup, not the
	// resolved absolute URL.
	Href() string

	// Top returns the element's offset from the top of the document in
	// pixels.
	Top() float64

	// Height returns the element's rendered height in pixels.
	Height() float64

	// Contains reports whether other is this element or one of its
	// descendants.
	Contains(other Element) bool

	// Query returns the first descendant matching the CSS selector, or nil.
	Query(selector string) Element

	QueryAll(selector string) []Element

	// SetStyle assigns an inline style property. An empty value clears it.
	SetStyle(prop, value string)

	OnClick(fn func(Event))
}

// Location describes the parts of the page URL the behaviors read.
type Location struct {
	// Path is the URL path, e.g. "/projects/index.html".
	Path string

	// Hash is the fragment including the leading "#", or "".
	Hash string
}

// Document is the page-level capability surface.
type Document interface {
	// ElementByID returns the element with the given id, or nil.
	ElementByID(id string) Element

	// Query returns the first element matching the CSS selector, or nil.
	Query(selector string) Element

	QueryAll(selector string) []Element

	Body() Element

	Location() Location

	// Navigate points the whole page at url.
	Navigate(url string)

	// ScrollY returns the window's current vertical scroll offset.
	ScrollY() float64

	// ScrollTo scrolls the window to the vertical offset, smoothly when
	// smooth is set. Easing and duration are left to the platform.
	ScrollTo(y float64, smooth bool)

	// OnScroll subscribes to window scroll events. The subscription is
	// passive: handlers never block scrolling.
	OnScroll(fn func())

	// OnKeyDown subscribes to document key presses. Keys use the browser
	// naming, e.g. "Escape".
	OnKeyDown(fn func(key string))

	// OnClick subscribes to document-level clicks and receives the event
	// target. Used for outside-click dismissal.
	OnClick(fn func(target Element))

	// Ready runs fn once the document structure has finished loading, or
	// immediately if it already has.
	Ready(fn func())

	// NewObserver builds a viewport-intersection observer delivering each
	// element to fn when it first crosses the configured visibility
	// threshold.
	NewObserver(cfg ObserverConfig, fn func(el Element)) Observer

	// Scheduler returns the document's timer capability.
	Scheduler() Scheduler
}
