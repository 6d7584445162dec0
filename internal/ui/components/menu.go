package components

import (
	tea "charm.land/bubbletea/v2"
)

// MenuItem is one entry of the main menu.
type MenuItem struct {
	Label  string
	Action func() tea.Cmd
}

// Menu tracks the selection of a vertical menu and dispatches item
// actions. Rendering is left to the owning screen, which draws the
// entries as button boxes.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a menu with the first item selected.
func NewMenu(items []MenuItem) Menu {
	return Menu{Items: items}
}

// Labels returns the item labels in order, for the screen's renderer.
func (m Menu) Labels() []string {
	labels := make([]string, len(m.Items))
	for i, item := range m.Items {
		labels[i] = item.Label
	}
	return labels
}

// Update moves the selection with wrap-around and activates the
// selected item on Enter. Digit keys jump to an entry and activate it
// in one press.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		m.Selected = (m.Selected - 1 + len(m.Items)) % len(m.Items)
	case "down", "j":
		m.Selected = (m.Selected + 1) % len(m.Items)
	case "enter":
		return m, m.activate()
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			idx := int(key[0] - '1')
			if idx < len(m.Items) {
				m.Selected = idx
				return m, m.activate()
			}
		}
	}

	return m, nil
}

func (m Menu) activate() tea.Cmd {
	item := m.Items[m.Selected]
	if item.Action == nil {
		return nil
	}
	return item.Action()
}
