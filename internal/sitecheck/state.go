package sitecheck

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-rod/rod"
)

// evalJSON runs a JS function in the page and decodes its result.
func evalJSON(ctx context.Context, page *rod.Page, js string, out interface{}) error {
	res, err := page.Context(ctx).Evaluate(&rod.EvalOptions{
		JS:           js,
		ByValue:      true,
		AwaitPromise: true,
	})
	if err != nil {
		return err
	}
	if res == nil {
		return errors.New("empty eval result")
	}
	raw, err := res.Value.MarshalJSON()
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// evalDo runs a JS function for its side effect only.
func evalDo(ctx context.Context, page *rod.Page, js string) error {
	_, err := page.Context(ctx).Evaluate(&rod.EvalOptions{
		JS:           js,
		ByValue:      true,
		AwaitPromise: true,
	})
	return err
}

// waitUntil polls cond every 50ms until it holds or the timeout passes.
func waitUntil(ctx context.Context, timeout time.Duration, cond func() (bool, error)) error {
	deadline := time.Now().Add(timeout)
	for {
		ok, err := cond()
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("condition not met within %v", timeout)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(50 * time.Millisecond):
		}
	}
}

// menuState mirrors the markup state the menu behavior maintains.
type menuState struct {
	Present      bool   `json:"present"`
	Open         bool   `json:"open"`
	ToggleActive bool   `json:"toggleActive"`
	Expanded     string `json:"expanded"`
	Overflow     string `json:"overflow"`
}

// inLockstep reports whether every open-state marker agrees.
func (s menuState) inLockstep(open bool) bool {
	wantExpanded := "false"
	wantOverflow := ""
	if open {
		wantExpanded = "true"
		wantOverflow = "hidden"
	}
	return s.Open == open &&
		s.ToggleActive == open &&
		s.Expanded == wantExpanded &&
		s.Overflow == wantOverflow
}

func menuStateJS(toggleSel, menuSel, activeClass string) string {
	return fmt.Sprintf(`
	() => {
		const toggle = document.querySelector(%q);
		const menu = document.querySelector(%q);
		if (!toggle || !menu) return { present: false };
		return {
			present: true,
			open: menu.classList.contains(%q),
			toggleActive: toggle.classList.contains(%q),
			expanded: toggle.getAttribute('aria-expanded') || '',
			overflow: document.body.style.overflow || ''
		};
	}
	`, toggleSel, menuSel, activeClass, activeClass)
}

// anchorProbe describes the first usable fragment link on the page.
type anchorProbe struct {
	Present  bool    `json:"present"`
	Href     string  `json:"href"`
	Expected float64 `json:"expected"`
}

func anchorProbeJS(navbarSel, anchorSel string) string {
	return fmt.Sprintf(`
	() => {
		const nav = document.querySelector(%q);
		const links = Array.from(document.querySelectorAll(%q));
		for (const link of links) {
			const frag = link.getAttribute('href');
			if (!frag || frag === '#') continue;
			const target = document.getElementById(frag.slice(1));
			if (!target) continue;
			const expected = target.getBoundingClientRect().top + window.scrollY - (nav ? nav.offsetHeight : 0);
			return { present: true, href: frag, expected };
		}
		return { present: false };
	}
	`, navbarSel, anchorSel)
}

// revealState counts flagged elements and how many have animated.
type revealState struct {
	Count    int `json:"count"`
	Animated int `json:"animated"`
}

func revealStateJS(revealSel, animatedClass string) string {
	return fmt.Sprintf(`
	() => {
		const els = Array.from(document.querySelectorAll(%q));
		return {
			count: els.length,
			animated: els.filter(e => e.classList.contains(%q)).length
		};
	}
	`, revealSel, animatedClass)
}

// activeLinkState compares marked links against the expected set.
type activeLinkState struct {
	Count    int      `json:"count"`
	Marked   []string `json:"marked"`
	Expected []string `json:"expected"`
}

func activeLinkStateJS(linkSel, activeClass, indexDoc string) string {
	return fmt.Sprintf(`
	() => {
		const links = Array.from(document.querySelectorAll(%q));
		const file = location.pathname.split('/').pop() || %q;
		return {
			count: links.length,
			marked: links.filter(l => l.classList.contains(%q)).map(l => l.getAttribute('href')),
			expected: links.filter(l => l.getAttribute('href') === file).map(l => l.getAttribute('href'))
		};
	}
	`, linkSel, indexDoc, activeClass)
}

// shadowState reads the navbar shadow marker and the scroll offset.
type shadowState struct {
	Present  bool    `json:"present"`
	Scrolled bool    `json:"scrolled"`
	ScrollY  float64 `json:"scrollY"`
}

func shadowStateJS(navbarSel, scrolledClass string) string {
	return fmt.Sprintf(`
	() => {
		const nav = document.querySelector(%q);
		if (!nav) return { present: false };
		return {
			present: true,
			scrolled: nav.classList.contains(%q),
			scrollY: window.scrollY
		};
	}
	`, navbarSel, scrolledClass)
}

// cardProbe describes the first linked card on the page.
type cardProbe struct {
	Present bool   `json:"present"`
	Cursor  string `json:"cursor"`
	Target  string `json:"target"`
}

func cardProbeJS(cardSel string) string {
	return fmt.Sprintf(`
	() => {
		const cards = Array.from(document.querySelectorAll(%q));
		for (const card of cards) {
			const link = card.querySelector('a');
			if (!link) continue;
			return {
				present: true,
				cursor: getComputedStyle(card).cursor,
				target: new URL(link.getAttribute('href'), location.href).href
			};
		}
		return { present: false };
	}
	`, cardSel)
}

// cardClickJS clicks the first linked card off its inner link.
func cardClickJS(cardSel string) string {
	return fmt.Sprintf(`
	() => {
		const cards = Array.from(document.querySelectorAll(%q));
		for (const card of cards) {
			if (!card.querySelector('a')) continue;
			card.click();
			return true;
		}
		return false;
	}
	`, cardSel)
}
