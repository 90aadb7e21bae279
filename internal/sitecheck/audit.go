package sitecheck

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"golang.org/x/sync/errgroup"

	"github.com/Two-Pixel-Technologies/rural-research-web/internal/config"
	"github.com/Two-Pixel-Technologies/rural-research-web/internal/logging"
)

// Audit names, in the order the auditor runs them.
const (
	AuditBoot       = "wasm-boot"
	AuditMenu       = "nav-menu"
	AuditActiveLink = "active-link"
	AuditAnchor     = "anchor-scroll"
	AuditShadow     = "scroll-shadow"
	AuditReveal     = "reveal"
	AuditCards      = "card-links"
)

// scrollTolerance is the allowed error between expected and final scroll
// offsets; browsers land smooth scrolls within a pixel.
const scrollTolerance = 2.0

// interactTimeout bounds each in-page wait. Reveal delays and smooth
// scrolls finish well inside it.
const interactTimeout = 5 * time.Second

// Finding is one audit result for one page.
type Finding struct {
	Page   string `json:"page"`
	Audit  string `json:"audit"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// Auditor drives the behavior audits across the configured pages.
type Auditor struct {
	cfg *config.Config
	mgr *SessionManager
}

// NewAuditor builds an auditor over a session manager.
func NewAuditor(cfg *config.Config, mgr *SessionManager) *Auditor {
	return &Auditor{cfg: cfg, mgr: mgr}
}

// PageURL resolves a page name inside the site directory to a file URL.
func PageURL(siteDir, page string) (string, error) {
	abs, err := filepath.Abs(filepath.Join(siteDir, page))
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", page, err)
	}
	return "file://" + filepath.ToSlash(abs), nil
}

// Run audits every configured page with bounded concurrency and returns
// the findings sorted by page.
func (a *Auditor) Run(ctx context.Context) ([]Finding, error) {
	if err := a.mgr.Start(ctx); err != nil {
		return nil, err
	}

	t := logging.StartTimer(logging.CategoryCheck, "site audit")
	defer t.Stop()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.Check.Concurrency)

	var mu sync.Mutex
	var all []Finding

	for _, page := range a.cfg.Check.Pages {
		page := page
		g.Go(func() error {
			findings, err := a.AuditPage(ctx, page)
			if err != nil {
				return fmt.Errorf("%s: %w", page, err)
			}
			mu.Lock()
			all = append(all, findings...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	SortFindings(all)
	return all, nil
}

// AuditPage opens one page and runs every audit against it.
func (a *Auditor) AuditPage(ctx context.Context, page string) ([]Finding, error) {
	url, err := PageURL(a.cfg.Site.Dir, page)
	if err != nil {
		return nil, err
	}

	sess, err := a.mgr.CreateSession(ctx, url)
	if err != nil {
		return nil, err
	}
	defer a.mgr.CloseSession(sess.ID)

	p, _ := a.mgr.Page(sess.ID)

	boot := a.auditBoot(ctx, page, p)
	if !boot.Passed {
		return []Finding{boot}, nil
	}

	findings := []Finding{
		boot,
		a.auditMenu(ctx, page, p),
		a.auditActiveLink(ctx, page, p),
		a.auditAnchor(ctx, page, p),
		a.auditShadow(ctx, page, p),
		a.auditReveal(ctx, page, p),
		// navigates away from the page, keep it last
		a.auditCards(ctx, page, p),
	}
	logging.Check("%s: %d audits", page, len(findings))
	return findings, nil
}

// waitBooted blocks until the wasm module reports itself wired, then
// lets late layout and fonts settle before anything is measured.
func (a *Auditor) waitBooted(ctx context.Context, p *rod.Page) error {
	err := waitUntil(ctx, a.cfg.GetNavTimeout(), func() (bool, error) {
		var ready bool
		if err := evalJSON(ctx, p, `() => window.ruralwebReady === true`, &ready); err != nil {
			return false, err
		}
		return ready, nil
	})
	if err != nil {
		return err
	}
	time.Sleep(a.cfg.GetSettleDelay())
	return nil
}

func (a *Auditor) auditBoot(ctx context.Context, page string, p *rod.Page) Finding {
	if err := a.waitBooted(ctx, p); err != nil {
		return fail(page, AuditBoot, "page never became interactive: %v", err)
	}
	return pass(page, AuditBoot, "module wired")
}

// auditMenu walks the menu through open, escape and outside-click and
// checks every state marker stays in lockstep.
func (a *Auditor) auditMenu(ctx context.Context, page string, p *rod.Page) Finding {
	js := menuStateJS(a.cfg.Selectors.NavToggle, a.cfg.Selectors.NavMenu, a.cfg.Classes.Active)

	read := func() (menuState, error) {
		var s menuState
		err := evalJSON(ctx, p, js, &s)
		return s, err
	}

	s, err := read()
	if err != nil {
		return fail(page, AuditMenu, "read state: %v", err)
	}
	if !s.Present {
		return pass(page, AuditMenu, "menu markup absent, skipped")
	}
	if !s.inLockstep(false) {
		return fail(page, AuditMenu, "initial state out of lockstep: %+v", s)
	}

	clickToggle := func() error {
		el, err := p.Context(ctx).Timeout(interactTimeout).Element(a.cfg.Selectors.NavToggle)
		if err != nil {
			return err
		}
		return el.Click(proto.InputMouseButtonLeft, 1)
	}

	// open
	if err := clickToggle(); err != nil {
		return fail(page, AuditMenu, "toggle click: %v", err)
	}
	if err := waitUntil(ctx, interactTimeout, func() (bool, error) {
		s, err := read()
		return s.inLockstep(true), err
	}); err != nil {
		return fail(page, AuditMenu, "open state never reached lockstep: %v", err)
	}

	// escape closes
	if err := evalDo(ctx, p, `() => { document.dispatchEvent(new KeyboardEvent('keydown', { key: 'Escape' })); return true; }`); err != nil {
		return fail(page, AuditMenu, "dispatch escape: %v", err)
	}
	if err := waitUntil(ctx, interactTimeout, func() (bool, error) {
		s, err := read()
		return s.inLockstep(false), err
	}); err != nil {
		return fail(page, AuditMenu, "escape did not close the menu: %v", err)
	}

	// outside click closes
	if err := clickToggle(); err != nil {
		return fail(page, AuditMenu, "toggle reopen: %v", err)
	}
	if err := evalDo(ctx, p, `() => { document.body.click(); return true; }`); err != nil {
		return fail(page, AuditMenu, "outside click: %v", err)
	}
	if err := waitUntil(ctx, interactTimeout, func() (bool, error) {
		s, err := read()
		return s.inLockstep(false), err
	}); err != nil {
		return fail(page, AuditMenu, "outside click did not close the menu: %v", err)
	}

	return pass(page, AuditMenu, "lockstep held through open, escape and outside click")
}

// auditActiveLink checks exactly the links naming the current document
// carry the active class.
func (a *Auditor) auditActiveLink(ctx context.Context, page string, p *rod.Page) Finding {
	var s activeLinkState
	js := activeLinkStateJS(a.cfg.Selectors.NavLink, a.cfg.Classes.Active, a.cfg.Site.IndexDoc)
	if err := evalJSON(ctx, p, js, &s); err != nil {
		return fail(page, AuditActiveLink, "read state: %v", err)
	}
	if s.Count == 0 {
		return pass(page, AuditActiveLink, "no navigation links, skipped")
	}

	sort.Strings(s.Marked)
	sort.Strings(s.Expected)
	if strings.Join(s.Marked, ",") != strings.Join(s.Expected, ",") {
		return fail(page, AuditActiveLink, "marked %v, expected %v", s.Marked, s.Expected)
	}
	return pass(page, AuditActiveLink, "marked %v", s.Marked)
}

// auditAnchor clicks the first usable fragment link and checks the page
// lands at the target offset minus the navbar height.
func (a *Auditor) auditAnchor(ctx context.Context, page string, p *rod.Page) Finding {
	var probe anchorProbe
	js := anchorProbeJS(a.cfg.Selectors.Navbar, a.cfg.Selectors.AnchorLink)
	if err := evalJSON(ctx, p, js, &probe); err != nil {
		return fail(page, AuditAnchor, "probe: %v", err)
	}
	if !probe.Present {
		return pass(page, AuditAnchor, "no resolvable fragment links, skipped")
	}

	sel := fmt.Sprintf(`a[href=%q]`, probe.Href)
	el, err := p.Context(ctx).Timeout(interactTimeout).Element(sel)
	if err != nil {
		return fail(page, AuditAnchor, "find %s: %v", probe.Href, err)
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fail(page, AuditAnchor, "click %s: %v", probe.Href, err)
	}

	var lastY float64
	err = waitUntil(ctx, interactTimeout, func() (bool, error) {
		if err := evalJSON(ctx, p, `() => window.scrollY`, &lastY); err != nil {
			return false, err
		}
		return math.Abs(lastY-probe.Expected) <= scrollTolerance, nil
	})
	if err != nil {
		return fail(page, AuditAnchor, "%s: scrolled to %.0f, expected %.0f", probe.Href, lastY, probe.Expected)
	}
	return pass(page, AuditAnchor, "%s landed at offset %.0f", probe.Href, lastY)
}

// auditShadow scrolls past the offset and back and watches the navbar
// class follow.
func (a *Auditor) auditShadow(ctx context.Context, page string, p *rod.Page) Finding {
	js := shadowStateJS(a.cfg.Selectors.Navbar, a.cfg.Classes.Scrolled)

	read := func() (shadowState, error) {
		var s shadowState
		err := evalJSON(ctx, p, js, &s)
		return s, err
	}

	s, err := read()
	if err != nil {
		return fail(page, AuditShadow, "read state: %v", err)
	}
	if !s.Present {
		return pass(page, AuditShadow, "no navbar, skipped")
	}

	deep := a.cfg.Scroll.ShadowOffsetPx + 100
	if err := evalDo(ctx, p, fmt.Sprintf(`() => { window.scrollTo(0, %v); return true; }`, deep)); err != nil {
		return fail(page, AuditShadow, "scroll down: %v", err)
	}
	if err := waitUntil(ctx, interactTimeout, func() (bool, error) {
		s, err := read()
		return s.Scrolled, err
	}); err != nil {
		return fail(page, AuditShadow, "shadow missing after scrolling to %v: %v", deep, err)
	}

	if err := evalDo(ctx, p, `() => { window.scrollTo(0, 0); return true; }`); err != nil {
		return fail(page, AuditShadow, "scroll up: %v", err)
	}
	if err := waitUntil(ctx, interactTimeout, func() (bool, error) {
		s, err := read()
		return !s.Scrolled, err
	}); err != nil {
		return fail(page, AuditShadow, "shadow still present back at the top: %v", err)
	}
	return pass(page, AuditShadow, "shadow follows the scroll offset")
}

// auditReveal scrolls to the bottom and waits for every flagged element
// to animate.
func (a *Auditor) auditReveal(ctx context.Context, page string, p *rod.Page) Finding {
	js := revealStateJS(a.cfg.Selectors.Reveal, a.cfg.Classes.Animated)

	var s revealState
	if err := evalJSON(ctx, p, js, &s); err != nil {
		return fail(page, AuditReveal, "read state: %v", err)
	}
	if s.Count == 0 {
		return pass(page, AuditReveal, "no flagged elements, skipped")
	}

	if err := evalDo(ctx, p, `() => { window.scrollTo(0, document.body.scrollHeight); return true; }`); err != nil {
		return fail(page, AuditReveal, "scroll to bottom: %v", err)
	}

	err := waitUntil(ctx, interactTimeout, func() (bool, error) {
		if err := evalJSON(ctx, p, js, &s); err != nil {
			return false, err
		}
		return s.Animated == s.Count, nil
	})
	if err != nil {
		return fail(page, AuditReveal, "%d of %d elements animated: %v", s.Animated, s.Count, err)
	}

	// scroll back so later audits see a settled page
	_ = evalDo(ctx, p, `() => { window.scrollTo(0, 0); return true; }`)
	return pass(page, AuditReveal, "all %d elements animated", s.Count)
}

// auditCards clicks a linked card off its inner link and expects the
// page to navigate to the link target.
func (a *Auditor) auditCards(ctx context.Context, page string, p *rod.Page) Finding {
	var probe cardProbe
	if err := evalJSON(ctx, p, cardProbeJS(a.cfg.Selectors.Card), &probe); err != nil {
		return fail(page, AuditCards, "probe: %v", err)
	}
	if !probe.Present {
		return pass(page, AuditCards, "no linked cards, skipped")
	}
	if probe.Cursor != "pointer" {
		return fail(page, AuditCards, "linked card cursor is %q, want pointer", probe.Cursor)
	}

	var clicked bool
	if err := evalJSON(ctx, p, cardClickJS(a.cfg.Selectors.Card), &clicked); err != nil {
		return fail(page, AuditCards, "click card: %v", err)
	}
	if !clicked {
		return fail(page, AuditCards, "no card accepted the click")
	}

	var href string
	err := waitUntil(ctx, interactTimeout, func() (bool, error) {
		if err := evalJSON(ctx, p, `() => location.href`, &href); err != nil {
			return false, err
		}
		return href == probe.Target, nil
	})
	if err != nil {
		return fail(page, AuditCards, "at %s, expected %s", href, probe.Target)
	}
	return pass(page, AuditCards, "card navigated to %s", probe.Target)
}

func pass(page, audit, format string, args ...interface{}) Finding {
	return Finding{Page: page, Audit: audit, Passed: true, Detail: fmt.Sprintf(format, args...)}
}

func fail(page, audit, format string, args ...interface{}) Finding {
	logging.CheckError("%s/%s: "+format, append([]interface{}{page, audit}, args...)...)
	return Finding{Page: page, Audit: audit, Passed: false, Detail: fmt.Sprintf(format, args...)}
}

// SortFindings orders findings by page, keeping each page's audits in
// execution order.
func SortFindings(findings []Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		return findings[i].Page < findings[j].Page
	})
}

// Summary aggregates findings.
type Summary struct {
	Total  int
	Passed int
	Failed int
}

// Summarize counts passes and failures.
func Summarize(findings []Finding) Summary {
	s := Summary{Total: len(findings)}
	for _, f := range findings {
		if f.Passed {
			s.Passed++
		} else {
			s.Failed++
		}
	}
	return s
}
