package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"ghsearch/internal/domain"
)

// SearchLabel is the text shown in front of the input field
const SearchLabel = "Search:"

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width      int
	Height     int
	Input      string // rendered text input
	Results    domain.ViewState
	Selected   int
	Offset     int
	Hyperlinks bool
	Help       string
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{styles: NewStyles()}
}

// Chrome is the number of lines around the result list: label row,
// separator, scroll indicator, blank line plus help row, container padding.
const Chrome = 1 + 1 + 1 + 2 + 2

// ListHeight returns how many result rows fit in a terminal of the given height
func ListHeight(height int) int {
	if n := height - Chrome; n > 0 {
		return n
	}
	return 1
}

// Render produces the complete view: label, input, separator, result list
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.styles.Label.Render(SearchLabel))
	content.WriteString(" ")
	content.WriteString(state.Input)
	content.WriteString("\n")

	innerWidth := state.Width - 4 // Main container padding
	if innerWidth <= 0 {
		innerWidth = 76
	}
	content.WriteString(r.styles.Separator.Render(strings.Repeat("─", innerWidth)))
	content.WriteString("\n")

	content.WriteString(r.renderList(state, innerWidth))

	if state.Help != "" {
		content.WriteString("\n\n")
		content.WriteString(r.styles.Help.Render(state.Help))
	}

	return r.styles.Main.Render(content.String())
}

// renderList renders the visible window of the result list
func (r *Renderer) renderList(state ViewState, width int) string {
	items := state.Results.Items
	if len(items) == 0 {
		return ""
	}

	rows := ListHeight(state.Height)
	start := state.Offset
	if start < 0 || start >= len(items) {
		start = 0
	}
	end := start + rows
	if end > len(items) {
		end = len(items)
	}

	lines := make([]string, 0, end-start+1)
	for i := start; i < end; i++ {
		lines = append(lines, r.RenderItem(items[i], i == state.Selected, state.Hyperlinks, width))
	}

	if start > 0 || end < len(items) {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("%d-%d of %d", start+1, end, len(items))))
	}

	return strings.Join(lines, "\n")
}

// RenderItem renders one result: a hyperlink to HTMLURL whose text is Name.
// Without hyperlink support the URL is printed after the name.
func (r *Renderer) RenderItem(rec domain.RepositoryRecord, selected, hyperlinks bool, width int) string {
	nameStyle := r.styles.Item
	if selected {
		nameStyle = r.styles.Selected
	}

	bullet := "  "
	if selected {
		bullet = r.styles.Bullet.Render("> ")
	}

	name := nameStyle.Render(rec.Name)
	line := bullet
	if hyperlinks {
		line += termenv.Hyperlink(rec.HTMLURL, name)
	} else {
		line += name + " " + r.styles.URL.Render(rec.HTMLURL)
	}

	if rec.Stars > 0 {
		line += " " + r.styles.Stars.Render(fmt.Sprintf("★%d", rec.Stars))
	}

	if rec.Description != "" {
		room := width - lipgloss.Width(line) - 3
		if room > 10 {
			line += "  " + r.styles.Description.Render(truncate(rec.Description, room))
		}
	}

	return line
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
