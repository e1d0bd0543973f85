package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/csheth/missiongen/internal/about"
)

const (
	appTitle   = "AI Mission Statement Generator"
	appTagline = "Create powerful mission statements that inspire and drive success!"

	submitLabel  = "Generate Mission Statement"
	loadingLabel = "Crafting Your Mission..."
)

func (m *model) View() string {
	body := m.about.view()
	if m.tab == tabGenerator {
		body = m.generatorBody()
	}
	return joinNonEmpty([]string{m.heroView(), body, m.footerView()})
}

func (m *model) heroView() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		heroTitleStyle.Render(appTitle),
		taglineStyle.Render(appTagline),
		"",
		m.tabsView(),
	)
}

func (m *model) tabsView() string {
	cells := make([]string, 0, len(tabTitles))
	for i, title := range tabTitles {
		label := fmt.Sprintf("%d %s", i+1, title)
		if tab(i) == m.tab {
			cells = append(cells, activeTabStyle.Render(label))
			continue
		}
		cells = append(cells, tabStyle.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (m *model) generatorBody() string {
	v := m.generator
	if v == nil {
		return ""
	}
	state := v.session.State()
	parts := []string{
		inputBoxStyle.Render(v.input.View()),
		m.submitView(v),
	}
	if msg := state.ErrorMessage(); msg != "" {
		parts = append(parts, errorBoxStyle.Render(wordwrap.String(msg, m.layout.wrapWidth())))
	}
	if statement := state.Statement(); statement != "" {
		parts = append(parts, m.statementCard(v, statement))
	}
	if v.notice != "" {
		parts = append(parts, errorStyle.Render(wordwrap.String(v.notice, m.layout.contentWidth)))
	}
	parts = append(parts, m.supportView())
	return joinNonEmpty(parts)
}

func (m *model) submitView(v *generatorView) string {
	switch {
	case v.session.Pending():
		return fmt.Sprintf("%s %s", m.spinner.View(), helperStyle.Render(loadingLabel))
	case v.session.CanSubmit():
		return buttonStyle.Render(submitLabel) + helperStyle.Render("  ctrl+s")
	default:
		return buttonDisabledStyle.Render(submitLabel) + helperStyle.Render("  describe your organization to enable")
	}
}

func (m *model) statementCard(v *generatorView, statement string) string {
	copyLabel := helperStyle.Render("ctrl+y Copy")
	if v.session.Copied() {
		copyLabel = copiedStyle.Render("✓ Copied!")
	}
	header := lipgloss.JoinHorizontal(lipgloss.Top, sectionHeaderStyle.Render("Your Mission Statement"), "  ", copyLabel)
	return cardStyle.Render(header + "\n\n" + wordwrap.String(statement, m.layout.wrapWidth()))
}

func (m *model) supportView() string {
	support := about.Support()
	lines := []string{sectionHeaderStyle.Render(support.Title)}
	if support.Body != "" {
		lines = append(lines, helperStyle.Render(wordwrap.String(support.Body, m.layout.wrapWidth())))
	}
	lines = append(lines, about.SupportURL)
	return supportBoxStyle.Render(strings.Join(lines, "\n"))
}

func (m *model) footerView() string {
	return joinNonEmpty([]string{m.sessionMeterView(), m.help.View(m.keys)})
}

func (m *model) sessionMeterView() string {
	stats := []string{
		"Model " + m.config.LLM.Name(),
	}
	if m.generator != nil {
		stats = append(stats, "Status "+m.generator.session.State().Status().String())
	}
	stats = append(stats, m.jobStatusBadges()...)
	return statusBarStyle.Render(strings.Join(stats, "  •  "))
}

func (m *model) jobStatusBadges() []string {
	var badges []string
	for _, kind := range []jobKind{jobKindGenerate, jobKindCopy} {
		snapshot, ok := m.lastJobs[kind]
		if !ok {
			continue
		}
		switch snapshot.Status {
		case jobStatusRunning:
			badges = append(badges, fmt.Sprintf("%s…", kind))
		case jobStatusSucceeded:
			badges = append(badges, fmt.Sprintf("%s ✓ %s", kind, snapshot.Duration.Round(10*time.Millisecond)))
		case jobStatusFailed:
			badges = append(badges, fmt.Sprintf("%s ✗", kind))
		}
	}
	return badges
}

func joinNonEmpty(parts []string) string {
	filtered := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		filtered = append(filtered, part)
	}
	return strings.Join(filtered, "\n\n")
}
