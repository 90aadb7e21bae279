package memdom

import (
	"time"

	"github.com/Two-Pixel-Technologies/rural-research-web/internal/dom"
)

// Observer is a hand-cranked intersection observer: tests call Intersect to
// simulate an element crossing into visibility.
type Observer struct {
	// Config echoes the configuration the observer was built with.
	Config dom.ObserverConfig

	fn       func(dom.Element)
	observed map[*Element]bool
}

func (o *Observer) Observe(el dom.Element) {
	if e, ok := el.(*Element); ok && e != nil {
		o.observed[e] = true
	}
}

func (o *Observer) Unobserve(el dom.Element) {
	if e, ok := el.(*Element); ok {
		delete(o.observed, e)
	}
}

func (o *Observer) Disconnect() {
	o.observed = make(map[*Element]bool)
}

// Observing reports whether el is currently under observation.
func (o *Observer) Observing(el dom.Element) bool {
	e, ok := el.(*Element)
	if !ok {
		return false
	}
	return o.observed[e]
}

// ObservedCount returns the number of elements under observation.
func (o *Observer) ObservedCount() int {
	return len(o.observed)
}

// Intersect reports el as crossing the visibility threshold. Elements no
// longer observed are not delivered, matching the browser primitive.
func (o *Observer) Intersect(el dom.Element) {
	e, ok := el.(*Element)
	if !ok || !o.observed[e] {
		return
	}
	o.fn(e)
}

// Clock is a manual scheduler: nothing fires until a test advances time.
type Clock struct {
	now     time.Duration
	pending []timer
}

type timer struct {
	due time.Duration
	fn  func()
}

func newClock() *Clock {
	return &Clock{}
}

func (c *Clock) After(d time.Duration, fn func()) {
	c.pending = append(c.pending, timer{due: c.now + d, fn: fn})
}

// Advance moves the clock forward by d, running due timers in deadline
// order. Timers scheduled while advancing run too if they fall due.
func (c *Clock) Advance(d time.Duration) {
	target := c.now + d
	for {
		idx := -1
		for i, t := range c.pending {
			if t.due > target {
				continue
			}
			if idx == -1 || t.due < c.pending[idx].due {
				idx = i
			}
		}
		if idx == -1 {
			break
		}
		t := c.pending[idx]
		c.pending = append(c.pending[:idx], c.pending[idx+1:]...)
		c.now = t.due
		t.fn()
	}
	c.now = target
}

// Pending returns the number of timers waiting to fire.
func (c *Clock) Pending() int {
	return len(c.pending)
}
