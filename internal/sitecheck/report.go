package sitecheck

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Report colors.
var (
	passColor   = lipgloss.Color("#8BC34A")
	failColor   = lipgloss.Color("#e53935")
	headerColor = lipgloss.Color("#2196F3")
	mutedColor  = lipgloss.Color("#808080")
)

var (
	reportHeaderStyle = lipgloss.NewStyle().Foreground(headerColor).Bold(true)
	passStyle         = lipgloss.NewStyle().Foreground(passColor).Bold(true)
	failStyle         = lipgloss.NewStyle().Foreground(failColor).Bold(true)
	auditNameStyle    = lipgloss.NewStyle().Width(14)
	detailStyle       = lipgloss.NewStyle().Foreground(mutedColor)
)

// RenderReport formats findings grouped by page, closing with a summary
// line. Findings are expected in SortFindings order.
func RenderReport(findings []Finding) string {
	var b strings.Builder

	lastPage := ""
	for _, f := range findings {
		if f.Page != lastPage {
			if lastPage != "" {
				b.WriteString("\n")
			}
			b.WriteString(reportHeaderStyle.Render(f.Page))
			b.WriteString("\n")
			lastPage = f.Page
		}

		marker := passStyle.Render("PASS")
		if !f.Passed {
			marker = failStyle.Render("FAIL")
		}
		b.WriteString(fmt.Sprintf("  %s  %s %s\n",
			marker,
			auditNameStyle.Render(f.Audit),
			detailStyle.Render(f.Detail)))
	}

	s := Summarize(findings)
	line := fmt.Sprintf("%d audits, %d passed", s.Total, s.Passed)
	style := passStyle
	if s.Failed > 0 {
		line = fmt.Sprintf("%d audits, %d failed", s.Total, s.Failed)
		style = failStyle
	}
	b.WriteString("\n")
	b.WriteString(style.Render(line))
	b.WriteString("\n")

	return b.String()
}
