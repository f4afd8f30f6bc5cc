package tui

import "github.com/charmbracelet/bubbles/key"

// Plain letters belong to the code input, so every action key is either a
// control chord or enter/esc.
type keyMap struct {
	submit        key.Binding
	syncNow       key.Binding
	toggleOffline key.Binding
	reload        key.Binding
	search        key.Binding
	copyRef       key.Binding
	back          key.Binding
	quit          key.Binding
}

var keys = keyMap{
	submit:        key.NewBinding(key.WithKeys("enter")),
	syncNow:       key.NewBinding(key.WithKeys("ctrl+s")),
	toggleOffline: key.NewBinding(key.WithKeys("ctrl+o")),
	reload:        key.NewBinding(key.WithKeys("ctrl+r")),
	search:        key.NewBinding(key.WithKeys("ctrl+f")),
	copyRef:       key.NewBinding(key.WithKeys("ctrl+y")),
	back:          key.NewBinding(key.WithKeys("esc")),
	quit:          key.NewBinding(key.WithKeys("ctrl+c")),
}
