package enhance

import (
	"strconv"
	"time"

	"github.com/Two-Pixel-Technologies/rural-research-web/internal/config"
	"github.com/Two-Pixel-Technologies/rural-research-web/internal/dom"
	"github.com/Two-Pixel-Technologies/rural-research-web/internal/logging"
)

// Revealer applies the animated class to flagged elements the first time
// they cross into the viewport. Each element triggers at most once: it is
// unobserved before the delayed class application is even scheduled.
type Revealer struct {
	doc           dom.Document
	targets       []dom.Element
	animatedClass string
	delayAttr     string
	delayStep     time.Duration
	observerCfg   dom.ObserverConfig

	obs dom.Observer
}

// NewRevealer builds the revealer over the flagged elements.
func NewRevealer(doc dom.Document, b *Bindings, cfg config.RevealConfig, animatedClass string) *Revealer {
	step := time.Duration(cfg.DelayStepMs) * time.Millisecond
	if step < 0 {
		step = 0
	}
	return &Revealer{
		doc:           doc,
		targets:       b.RevealTargets,
		animatedClass: animatedClass,
		delayAttr:     cfg.DelayAttr,
		delayStep:     step,
		observerCfg: dom.ObserverConfig{
			BottomInsetPx: cfg.BottomInsetPx,
			Threshold:     cfg.Threshold,
		},
	}
}

// Wire starts observing every target. Nothing happens on a page with no
// flagged elements.
func (r *Revealer) Wire() {
	if len(r.targets) == 0 {
		return
	}

	r.obs = r.doc.NewObserver(r.observerCfg, r.reveal)
	for _, t := range r.targets {
		r.obs.Observe(t)
	}
	logging.RevealDebug("observing %d elements", len(r.targets))
}

// reveal handles one viewport entry. The delay is data-delay units times
// the configured step; once scheduled it always fires.
func (r *Revealer) reveal(el dom.Element) {
	r.obs.Unobserve(el)

	delay := time.Duration(delayUnits(el.DataAttr(r.delayAttr))) * r.delayStep
	r.doc.Scheduler().After(delay, func() {
		el.AddClass(r.animatedClass)
	})
	logging.RevealDebug("reveal scheduled in %v", delay)
}

// delayUnits parses the per-element stagger multiplier. Missing, malformed
// and negative values all mean no delay.
func delayUnits(raw string) int {
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
