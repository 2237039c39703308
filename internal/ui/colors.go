package ui

import "github.com/charmbracelet/lipgloss"

var styles = newPalette(colors{
	accent: "#7D56F4",
	ok:     "#04B575",
	err:    "#FF0000",
	warn:   "#FFA500",
	muted:  "#626262",
})

// colors names the hex foregrounds of the contact browser.
type colors struct {
	accent string
	ok     string
	err    string
	warn   string
	muted  string
}

// palette holds the styles rendered by the browser views.
type palette struct {
	title    lipgloss.Style // list title and contact name
	phone    lipgloss.Style // phone numbers in the detail view
	birthday lipgloss.Style // birthday countdown
	err      lipgloss.Style
	warn     lipgloss.Style // empty book, no matches, no phones
	help     lipgloss.Style // paging status line
}

func newPalette(c colors) palette {
	fg := func(hex string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
	}

	return palette{
		title:    fg(c.accent).Bold(true).MarginBottom(1),
		phone:    fg(c.accent),
		birthday: fg(c.ok).Bold(true),
		err:      fg(c.err).Bold(true),
		warn:     fg(c.warn),
		help:     fg(c.muted).Italic(true),
	}
}
