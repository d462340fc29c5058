package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Label       lipgloss.Style
	Separator   lipgloss.Style
	Item        lipgloss.Style
	Selected    lipgloss.Style
	Bullet      lipgloss.Style
	URL         lipgloss.Style
	Description lipgloss.Style
	Stars       lipgloss.Style
	Scroll      lipgloss.Style
	Help        lipgloss.Style
	Main        lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Label:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		Separator:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Item:        lipgloss.NewStyle(),
		Selected:    lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true).Background(lipgloss.Color("238")),
		Bullet:      lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		URL:         lipgloss.NewStyle().Faint(true),
		Description: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Stars:       lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Scroll:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Help:        lipgloss.NewStyle().Faint(true),
		Main:        lipgloss.NewStyle().Padding(1, 2),
	}
}
