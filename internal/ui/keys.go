package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the workbench. Printable keys
// belong to the prompt input, so every action sits on a control or
// navigation key.
type keyMap struct {
	// Prompt
	Submit key.Binding
	Recall key.Binding

	// Image
	OpenImage key.Binding
	CopyImage key.Binding

	// General
	CycleTheme  key.Binding
	Diagnostics key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Generate"),
		),
		Recall: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "Recall last prompt"),
		),
		OpenImage: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "Open image"),
		),
		CopyImage: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "Copy image URL"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "Cycle theme"),
		),
		Diagnostics: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "Diagnostics"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "Toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "Quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Recall, k.OpenImage, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Recall},
		{k.OpenImage, k.CopyImage},
		{k.CycleTheme, k.Diagnostics, k.Help, k.Quit},
	}
}
