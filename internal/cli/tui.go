package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/scadkit/pkg/gallery"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// ModelListModel - Interactive model selection
// =============================================================================

// ModelSelection holds the result of the model selection.
type ModelSelection struct {
	Model *gallery.Model
}

// ModelListModel is the bubbletea model for interactive model selection.
type ModelListModel struct {
	Models   []gallery.Model
	Cursor   int
	Selected *ModelSelection
	Height   int
	Offset   int
}

// NewModelListModel creates a new model list model.
func NewModelListModel(models []gallery.Model) ModelListModel {
	return ModelListModel{
		Models: models,
		Cursor: 0,
		Height: 15,
		Offset: 0,
	}
}

func (m ModelListModel) Init() tea.Cmd {
	return nil
}

func (m ModelListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Models)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			model := m.Models[m.Cursor]
			m.Selected = &ModelSelection{Model: &model}
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

func (m ModelListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Model"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Models) {
		end = len(m.Models)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		model := m.Models[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		rows = append(rows, []string{cursor, model.Name, model.Description})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Model", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Models) {
				return lipgloss.NewStyle()
			}

			base := lipgloss.NewStyle()
			if col == 2 {
				base = base.Foreground(colorDim)
			}
			if actualIdx == m.Cursor {
				if col != 2 {
					return base.Foreground(colorGreen).Bold(true)
				}
				return base.Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Models))))

	return b.String()
}
