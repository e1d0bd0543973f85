package tui

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/missiongen/internal/generator"
)

const descriptionPlaceholder = "Describe your organization, its purpose, values, and goals. " +
	"Include your industry, target audience, and what makes you unique..."

// generatorView is one mount of the generator tab. A fresh view, with its own
// session, is built every time the tab is shown.
type generatorView struct {
	id      uint64
	session *generator.Session
	input   textarea.Model
	notice  string
}

func newGeneratorView(id uint64, layout pageLayout) *generatorView {
	input := textarea.New()
	input.Placeholder = descriptionPlaceholder
	input.ShowLineNumbers = false
	input.Prompt = ""
	input.CharLimit = 0
	input.Focus()

	v := &generatorView{
		id:      id,
		session: generator.NewSession(),
		input:   input,
	}
	v.resize(layout)
	return v
}

func (v *generatorView) resize(layout pageLayout) {
	v.input.SetWidth(layout.contentWidth - 4)
	v.input.SetHeight(layout.inputHeight)
}

// updateInput forwards msg to the textarea. Editing stays possible while loading.
func (v *generatorView) updateInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	v.session.SetDescription(v.input.Value())
	return cmd
}

func (v *generatorView) close() {
	v.session.Close()
	v.input.Blur()
}
