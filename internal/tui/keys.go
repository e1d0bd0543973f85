package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Submit    key.Binding
	Copy      key.Binding
	NextTab   key.Binding
	PrevTab   key.Binding
	Generator key.Binding
	About     key.Binding
	Back      key.Binding
	Scroll    key.Binding
	Quit      key.Binding
	QuitAlt   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s", "alt+enter"),
			key.WithHelp("ctrl+s", "generate"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev tab"),
		),
		Generator: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "generator"),
		),
		About: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "about"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Scroll: key.NewBinding(
			key.WithKeys("up", "down", "pgup", "pgdown"),
			key.WithHelp("↑/↓", "scroll"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		QuitAlt: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap; disabled bindings are skipped by the help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Copy, k.NextTab, k.Scroll, k.Back, k.Quit, k.QuitAlt}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Copy},
		{k.NextTab, k.PrevTab, k.Generator, k.About},
		{k.Scroll, k.Back, k.Quit, k.QuitAlt},
	}
}
