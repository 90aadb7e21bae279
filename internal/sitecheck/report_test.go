package sitecheck

import (
	"strings"
	"testing"
)

func TestRenderReport(t *testing.T) {
	findings := []Finding{
		{Page: "about.html", Audit: AuditBoot, Passed: true, Detail: "module wired"},
		{Page: "about.html", Audit: AuditMenu, Passed: true, Detail: "lockstep held"},
		{Page: "index.html", Audit: AuditBoot, Passed: true, Detail: "module wired"},
		{Page: "index.html", Audit: AuditAnchor, Passed: false, Detail: "scrolled to 400, expected 836"},
	}

	out := RenderReport(findings)

	for _, want := range []string{
		"about.html",
		"index.html",
		"PASS",
		"FAIL",
		"scrolled to 400, expected 836",
		"4 audits, 1 failed",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}

	// page headers appear once each
	if n := strings.Count(out, "about.html"); n != 1 {
		t.Errorf("about.html appears %d times, want 1", n)
	}
}

func TestRenderReportAllPassed(t *testing.T) {
	findings := []Finding{
		{Page: "index.html", Audit: AuditBoot, Passed: true, Detail: "module wired"},
		{Page: "index.html", Audit: AuditReveal, Passed: true, Detail: "all 4 elements animated"},
	}

	out := RenderReport(findings)

	if !strings.Contains(out, "2 audits, 2 passed") {
		t.Errorf("report missing summary:\n%s", out)
	}
	if strings.Contains(out, "FAIL") {
		t.Errorf("report has FAIL with no failures:\n%s", out)
	}
}

func TestRenderReportEmpty(t *testing.T) {
	out := RenderReport(nil)
	if !strings.Contains(out, "0 audits, 0 passed") {
		t.Errorf("empty report = %q", out)
	}
}
