package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"ghsearch/internal/domain"
	"ghsearch/internal/ui/logic"
	"ghsearch/internal/ui/views"
)

// Options configures the UI model
type Options struct {
	Hyperlinks   bool
	InitialQuery string
	// OnInput is called on the UI goroutine every time the field's value changes
	OnInput func(domain.InputChangeEvent)
}

// Model represents the UI state
type Model struct {
	input     textinput.Model
	lastValue string
	onInput   func(domain.InputChangeEvent)

	results domain.ViewState
	nav     *logic.Navigator

	width      int
	height     int
	hyperlinks bool
	keys       keyMap
	help       help.Model
	renderer   *views.Renderer
}

// NewModel creates a new UI model
func NewModel(opts Options) *Model {
	ti := textinput.New()
	ti.Prompt = "" // The label is rendered by the view
	ti.Placeholder = "repository name"
	ti.SetValue(opts.InitialQuery)
	ti.Focus()

	onInput := opts.OnInput
	if onInput == nil {
		onInput = func(domain.InputChangeEvent) {}
	}

	return &Model{
		input:      ti,
		onInput:    onInput,
		hyperlinks: opts.Hyperlinks,
		nav:        logic.NewNavigator(),
		keys:       newKeyMap(),
		help:       help.New(),
		renderer:   views.NewRenderer(),
	}
}

// Init emits the initial query, if any, and starts the cursor blinking
func (m *Model) Init() tea.Cmd {
	m.emitIfChanged()
	return textinput.Blink
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = msg.Width - len(views.SearchLabel) - 6
		m.nav.SetViewportHeight(views.ListHeight(msg.Height))
		return m, nil

	case ViewStateMsg:
		m.results = msg.State
		m.nav.Reset(msg.State.Len())
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.nav.Move(-1)
			return m, nil
		case key.Matches(msg, m.keys.Down):
			m.nav.Move(1)
			return m, nil
		case key.Matches(msg, m.keys.PageUp):
			m.nav.PageUp()
			return m, nil
		case key.Matches(msg, m.keys.PageDown):
			m.nav.PageDown()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.emitIfChanged()
	return m, cmd
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	return m.renderer.Render(views.ViewState{
		Width:      m.width,
		Height:     m.height,
		Input:      m.input.View(),
		Results:    m.results,
		Selected:   m.nav.GetSelectedIndex(),
		Offset:     m.nav.GetViewportOffset(),
		Hyperlinks: m.hyperlinks,
		Help:       m.help.View(m.keys),
	})
}

// Value returns the current content of the search field
func (m *Model) Value() string {
	return m.input.Value()
}

// Results returns the view state currently displayed
func (m *Model) Results() domain.ViewState {
	return m.results
}

// Selected returns the index of the highlighted result
func (m *Model) Selected() int {
	return m.nav.GetSelectedIndex()
}

func (m *Model) emitIfChanged() {
	value := m.input.Value()
	if value == m.lastValue {
		return
	}
	m.lastValue = value
	m.onInput(domain.InputChangeEvent{Value: value})
}
