package dom

import "time"

// ObserverConfig shapes viewport-intersection reporting.
type ObserverConfig struct {
	// BottomInsetPx shrinks the observation area upward from the viewport
	// bottom, so elements announce slightly before fully entering view.
	BottomInsetPx float64

	// Threshold is the visible fraction (0..1) an element must reach
	// before it is reported.
	Threshold float64
}

// Observer reports elements crossing into visibility. Implementations
// deliver the registered callback once per crossing; callers that want
// at-most-once semantics unobserve from inside the callback.
type Observer interface {
	Observe(el Element)
	Unobserve(el Element)

	// Disconnect stops observing every element.
	Disconnect()
}

// Scheduler defers work on the document's timeline. Scheduled functions are
// fire-and-forget: once handed over they cannot be recalled.
type Scheduler interface {
	After(d time.Duration, fn func())
}
