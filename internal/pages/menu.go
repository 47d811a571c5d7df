package pages

// Menu is a set of per-row dropdowns of which at most one is open.
// The zero value has every dropdown closed. Menu is not safe for concurrent use;
// controllers guard it with their own lock.
type Menu struct {
	open string
}

// Toggle opens the dropdown for id, closing any other. Toggling the open one closes it.
func (m *Menu) Toggle(id string) {
	if m.open == id {
		m.open = ""
		return
	}
	m.open = id
}

// Dismiss closes whichever dropdown is open, the equivalent of a click outside.
func (m *Menu) Dismiss() {
	m.open = ""
}

// OpenID returns the id of the open dropdown, or "".
func (m *Menu) OpenID() string {
	return m.open
}

// IsOpen reports whether the dropdown for id is open.
func (m *Menu) IsOpen(id string) bool {
	return id != "" && m.open == id
}
