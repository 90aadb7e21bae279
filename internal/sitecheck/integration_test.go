//go:build integration

package sitecheck_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Two-Pixel-Technologies/rural-research-web/internal/config"
	"github.com/Two-Pixel-Technologies/rural-research-web/internal/sitecheck"
)

func TestSessionManager_Lifecycle_Integration(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "<html><body><h1>Rural Research Collective</h1></body></html>")
	}))
	defer ts.Close()

	cfg := config.DefaultConfig()
	cfg.Check.Headless = true
	cfg.Check.NavTimeout = "10s"

	mgr := sitecheck.NewSessionManager(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	defer func() {
		if err := mgr.Shutdown(context.Background()); err != nil {
			t.Logf("shutdown: %v", err)
		}
	}()

	require.NoError(t, mgr.Start(ctx), "failed to start browser")
	require.True(t, mgr.IsConnected())

	sess, err := mgr.CreateSession(ctx, ts.URL)
	require.NoError(t, err, "failed to create session")
	require.NotEmpty(t, sess.ID)
	require.Equal(t, ts.URL, sess.URL)

	got, ok := mgr.GetSession(sess.ID)
	require.True(t, ok)
	require.Equal(t, "active", got.Status)

	require.NoError(t, mgr.Navigate(ctx, sess.ID, ts.URL+"/about"))

	png, err := mgr.Screenshot(ctx, sess.ID, false)
	require.NoError(t, err)
	require.NotEmpty(t, png)

	mgr.CloseSession(sess.ID)
	_, ok = mgr.GetSession(sess.ID)
	require.False(t, ok)
}

// TestAuditor_Site_Integration runs the full audit against the bundled
// site. It needs the wasm module built into site/assets first.
func TestAuditor_Site_Integration(t *testing.T) {
	siteDir, err := filepath.Abs(filepath.Join("..", "..", "site"))
	require.NoError(t, err)

	if _, err := os.Stat(filepath.Join(siteDir, "assets", "ruralweb.wasm")); err != nil {
		t.Skip("site wasm artifact missing, build ./cmd/wasm for js/wasm first")
	}

	cfg := config.DefaultConfig()
	cfg.Site.Dir = siteDir
	cfg.Check.Headless = true

	mgr := sitecheck.NewSessionManager(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	defer func() {
		if err := mgr.Shutdown(context.Background()); err != nil {
			t.Logf("shutdown: %v", err)
		}
	}()

	findings, err := sitecheck.NewAuditor(cfg, mgr).Run(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, findings)

	for _, f := range findings {
		require.True(t, f.Passed, "%s/%s: %s", f.Page, f.Audit, f.Detail)
	}
	t.Log("\n" + sitecheck.RenderReport(findings))
}

// TestInspect_PlainPage_Integration reads the probes off a page that
// never loads the wasm module. Everything should report absent rather
// than error.
func TestInspect_PlainPage_Integration(t *testing.T) {
	dir := t.TempDir()
	page := "bare.html"
	html := `<!DOCTYPE html><html><head><title>Bare</title></head><body><h1>No module here</h1></body></html>`
	require.NoError(t, os.WriteFile(filepath.Join(dir, page), []byte(html), 0o644))

	cfg := config.DefaultConfig()
	cfg.Site.Dir = dir
	cfg.Check.Headless = true
	cfg.Check.NavTimeout = "3s"

	mgr := sitecheck.NewSessionManager(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	defer func() {
		if err := mgr.Shutdown(context.Background()); err != nil {
			t.Logf("shutdown: %v", err)
		}
	}()

	state, shot, err := sitecheck.NewAuditor(cfg, mgr).Inspect(ctx, page, true, false)
	require.NoError(t, err, "a module-free page should still be inspectable")

	require.Equal(t, page, state.Page)
	require.False(t, state.Booted)
	require.False(t, state.Menu.Present)
	require.False(t, state.Anchor.Present)
	require.False(t, state.Shadow.Present)
	require.Zero(t, state.Reveal.Count)
	require.False(t, state.Card.Present)
	require.NotEmpty(t, shot, "screenshot should come back with the state")
}
