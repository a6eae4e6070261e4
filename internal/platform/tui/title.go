package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TitleChoice is an entry of the title screen.
type TitleChoice int

const (
	ChoiceNone TitleChoice = iota
	ChoiceStart
	ChoiceRuns
	ChoiceQuit
)

type titleItem struct {
	choice TitleChoice
	label  string
}

var titleItems = []titleItem{
	{ChoiceStart, "Start run"},
	{ChoiceRuns, "Recent runs"},
	{ChoiceQuit, "Quit"},
}

// controlsLegend lists the run controls under the menu.
var controlsLegend = []string{
	"A/D or Left/Right: Move   Space/W: Jump   J: Attack",
	"P/Esc: Pause   R: Restart   B: Title   Q: Quit",
}

// TitleModel is the Bubble Tea model for the title screen.
type TitleModel struct {
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	renderer  *lipgloss.Renderer
	chosen    TitleChoice
}

// NewTitleModel creates a title screen sized width x height.
// A nil renderer uses the default one.
func NewTitleModel(width, height int, r *lipgloss.Renderer) TitleModel {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return TitleModel{
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		renderer:  r,
	}
}

// Init initializes the title model.
func (m TitleModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the title screen.
func (m TitleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionQuit:
			m.chosen = ChoiceQuit
		case MenuActionUp:
			if m.cursor > 0 {
				m.cursor--
			}
		case MenuActionDown:
			if m.cursor < len(titleItems)-1 {
				m.cursor++
			}
		case MenuActionSelect:
			m.chosen = titleItems[m.cursor].choice
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// View renders the title screen.
func (m TitleModel) View() string {
	titleStyle := m.renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	selStyle := m.renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle := m.renderer.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("H I G H W A Y   R U N N E R", m.width)))
	b.WriteString("\n\n")

	for i, item := range titleItems {
		line := "  " + item.label
		if i == m.cursor {
			b.WriteString(selStyle.Render(centerText("> "+item.label, m.width)))
		} else {
			b.WriteString(centerText(line, m.width))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	for _, l := range controlsLegend {
		b.WriteString(dimStyle.Render(centerText(l, m.width)))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render(centerText("Up/Down: Navigate  |  Enter: Select", m.width)))
	b.WriteString("\n")

	return b.String()
}

// Chosen returns the confirmed choice, or ChoiceNone.
func (m TitleModel) Chosen() TitleChoice {
	return m.chosen
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}
