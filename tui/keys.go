package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"prioritizer/internal/infrastructure/config"
)

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	PickUp   key.Binding
	Drop     key.Binding
	Cancel   key.Binding
	Complete key.Binding
	Refresh  key.Binding
	Quit     key.Binding
}

var keys = newKeyMap(config.Default("").Keybindings)

// InitKeybindings loads the key bindings from config
func InitKeybindings(cfg *config.Config) {
	keys = newKeyMap(cfg.Keybindings)
}

func newKeyMap(kb config.KeybindingsConfig) keyMap {
	return keyMap{
		Up:       binding(kb.Up, "up"),
		Down:     binding(kb.Down, "down"),
		Left:     binding(kb.Left, "section left"),
		Right:    binding(kb.Right, "section right"),
		PickUp:   binding(kb.PickUp, "pick up"),
		Drop:     binding(kb.Drop, "drop"),
		Cancel:   binding(kb.Cancel, "cancel"),
		Complete: binding(kb.Complete, "toggle done"),
		Refresh:  binding(kb.Refresh, "refresh"),
		Quit:     binding(kb.Quit, "quit"),
	}
}

// binding builds a key binding labelled with its first key
func binding(keysPressed []string, desc string) key.Binding {
	label := ""
	if len(keysPressed) > 0 {
		label = keysPressed[0]
	}
	if label == " " {
		label = "space"
	}
	return key.NewBinding(key.WithKeys(keysPressed...), key.WithHelp(label, desc))
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PickUp, k.Drop, k.Cancel, k.Complete, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.PickUp, k.Drop, k.Cancel},
		{k.Complete, k.Refresh, k.Quit},
	}
}
