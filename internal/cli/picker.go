package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// revisionListModel is the bubbletea model for interactive revision
// selection.
type revisionListModel struct {
	organisation string
	module       string
	revisions    []string

	cursor   int
	offset   int
	height   int
	selected string
}

func newRevisionListModel(organisation, module string, revisions []string) revisionListModel {
	return revisionListModel{
		organisation: organisation,
		module:       module,
		revisions:    revisions,
		height:       15,
	}
}

func (m revisionListModel) Init() tea.Cmd {
	return nil
}

func (m revisionListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.revisions)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "enter":
			m.selected = m.revisions[m.cursor]
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 6
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m revisionListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Select Revision · %s/%s", m.organisation, m.module)))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.revisions) {
		end = len(m.revisions)
	}

	for i := m.offset; i < end; i++ {
		line := "  " + m.revisions[i]
		style := lipgloss.NewStyle().Foreground(colorWhite)
		if i == m.cursor {
			line = "▸ " + m.revisions[i]
			style = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.revisions))))

	return b.String()
}
