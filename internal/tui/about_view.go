package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"

	"github.com/csheth/missiongen/internal/about"
)

type aboutView struct {
	viewport viewport.Model
}

func newAboutView(layout pageLayout) aboutView {
	vp := viewport.New(layout.contentWidth, layout.aboutHeight)
	vp.MouseWheelEnabled = true
	v := aboutView{viewport: vp}
	v.resize(layout)
	return v
}

func (v *aboutView) resize(layout pageLayout) {
	v.viewport.Width = layout.contentWidth
	v.viewport.Height = layout.aboutHeight
	v.viewport.SetContent(renderAbout(layout.contentWidth))
}

func (v *aboutView) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return cmd
}

func (v aboutView) view() string {
	return v.viewport.View()
}

func renderAbout(width int) string {
	wrap := width - 2
	if wrap < 20 {
		wrap = 20
	}
	var b strings.Builder
	b.WriteString(heroTitleStyle.Render(about.Title))
	b.WriteRune('\n')
	b.WriteString(taglineStyle.Render(about.Tagline))
	b.WriteString("\n\n")
	b.WriteString(wordwrap.String(about.Welcome, wrap))
	for _, section := range about.Sections() {
		b.WriteString("\n\n")
		b.WriteString(sectionHeaderStyle.Render(section.Title))
		if section.Body != "" {
			b.WriteRune('\n')
			b.WriteString(helperStyle.Render(wordwrap.String(section.Body, wrap)))
		}
		for _, item := range section.Items {
			b.WriteString("\n • ")
			b.WriteString(strings.ReplaceAll(wordwrap.String(item, wrap-3), "\n", "\n   "))
		}
	}
	return b.String()
}
