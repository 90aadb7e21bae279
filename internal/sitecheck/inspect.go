package sitecheck

import (
	"context"
	"fmt"

	"github.com/Two-Pixel-Technologies/rural-research-web/internal/logging"
)

// PageState is everything the audits read from one page, captured in a
// single pass without interacting with it.
type PageState struct {
	Page   string          `json:"page"`
	URL    string          `json:"url"`
	Booted bool            `json:"booted"`
	Menu   menuState       `json:"menu"`
	Links  activeLinkState `json:"links"`
	Anchor anchorProbe     `json:"anchor"`
	Shadow shadowState     `json:"shadow"`
	Reveal revealState     `json:"reveal"`
	Card   cardProbe       `json:"card"`
}

// Inspect opens a page and reads every behavior probe as-is. When
// withShot is set it also captures a screenshot before the session
// closes. The session manager must not be shut down yet; Inspect starts
// it if needed.
func (a *Auditor) Inspect(ctx context.Context, page string, withShot, fullPage bool) (*PageState, []byte, error) {
	if err := a.mgr.Start(ctx); err != nil {
		return nil, nil, err
	}

	url, err := PageURL(a.cfg.Site.Dir, page)
	if err != nil {
		return nil, nil, err
	}

	sess, err := a.mgr.CreateSession(ctx, url)
	if err != nil {
		return nil, nil, err
	}
	defer a.mgr.CloseSession(sess.ID)

	p, ok := a.mgr.Page(sess.ID)
	if !ok {
		return nil, nil, fmt.Errorf("unknown session: %s", sess.ID)
	}

	st := &PageState{Page: page, URL: url, Booted: true}
	if err := a.waitBooted(ctx, p); err != nil {
		// a page without the module still has inspectable markup
		logging.Check("%s: module never booted: %v", page, err)
		st.Booted = false
	}

	reads := []struct {
		js  string
		out interface{}
	}{
		{menuStateJS(a.cfg.Selectors.NavToggle, a.cfg.Selectors.NavMenu, a.cfg.Classes.Active), &st.Menu},
		{activeLinkStateJS(a.cfg.Selectors.NavLink, a.cfg.Classes.Active, a.cfg.Site.IndexDoc), &st.Links},
		{anchorProbeJS(a.cfg.Selectors.Navbar, a.cfg.Selectors.AnchorLink), &st.Anchor},
		{shadowStateJS(a.cfg.Selectors.Navbar, a.cfg.Classes.Scrolled), &st.Shadow},
		{revealStateJS(a.cfg.Selectors.Reveal, a.cfg.Classes.Animated), &st.Reveal},
		{cardProbeJS(a.cfg.Selectors.Card), &st.Card},
	}
	for _, r := range reads {
		if err := evalJSON(ctx, p, r.js, r.out); err != nil {
			return nil, nil, err
		}
	}

	var shot []byte
	if withShot {
		shot, err = a.mgr.Screenshot(ctx, sess.ID, fullPage)
		if err != nil {
			return nil, nil, err
		}
	}
	return st, shot, nil
}
