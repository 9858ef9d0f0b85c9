package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/kinview/pkg/kin"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// personPickerModel is the bubbletea model for interactive person selection,
// used by the relate command when endpoints are omitted.
type personPickerModel struct {
	Title    string
	People   []kin.Person
	Cursor   int
	Selected *kin.Person
	Height   int
	Offset   int
}

// newPersonPicker creates a picker over the snapshot with the given prompt.
func newPersonPicker(title string, people []kin.Person) personPickerModel {
	return personPickerModel{
		Title:  title,
		People: people,
		Height: 15,
	}
}

func (m personPickerModel) Init() tea.Cmd {
	return nil
}

func (m personPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.People)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Selected = &m.People[m.Cursor]
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m personPickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.People) {
		end = len(m.People)
	}

	for i := m.Offset; i < end; i++ {
		p := m.People[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		name := p.FullName()
		if name == "" {
			name = p.ID
		}

		var detail string
		if year, ok := p.BirthYear(); ok {
			detail = fmt.Sprintf("b. %d", year)
		}
		line := fmt.Sprintf("%s%-30s %s", cursor, name, listDimStyle.Render(detail))

		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.People))))

	return b.String()
}

// pickPerson runs the picker and returns the chosen person's ID.
// It returns an error when the user quits without selecting.
func pickPerson(title string, people []kin.Person) (string, error) {
	final, err := tea.NewProgram(newPersonPicker(title, people)).Run()
	if err != nil {
		return "", err
	}
	m, ok := final.(personPickerModel)
	if !ok || m.Selected == nil {
		return "", fmt.Errorf("no person selected")
	}
	return m.Selected.ID, nil
}
