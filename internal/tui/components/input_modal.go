package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/roster/internal/tui/styles"
)

// ModalResult reports what a key press did to a modal
type ModalResult int

const (
	ModalEditing ModalResult = iota
	ModalSubmitted
	ModalCancelled
)

const modalWidth = 40

// CreateUserModal collects a name and an email address
type CreateUserModal struct {
	visible bool
	focus   int
	inputs  []textinput.Model
}

// NewCreateUserModal creates a hidden create dialog
func NewCreateUserModal() CreateUserModal {
	name := newModalInput("Name", 64)
	email := newModalInput("name@example.com", 128)

	return CreateUserModal{
		inputs: []textinput.Model{name, email},
	}
}

func newModalInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = modalWidth - 10
	ti.Prompt = ""
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle
	return ti
}

// Show displays the modal with empty fields and the name focused
func (m *CreateUserModal) Show() {
	m.visible = true
	for i := range m.inputs {
		m.inputs[i].SetValue("")
	}
	m.setFocus(0)
}

// Hide dismisses the modal
func (m *CreateUserModal) Hide() {
	m.visible = false
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
}

// IsVisible returns whether the modal is shown
func (m CreateUserModal) IsVisible() bool {
	return m.visible
}

// Name returns the trimmed name field
func (m CreateUserModal) Name() string {
	return strings.TrimSpace(m.inputs[0].Value())
}

// Email returns the trimmed email field
func (m CreateUserModal) Email() string {
	return strings.TrimSpace(m.inputs[1].Value())
}

func (m *CreateUserModal) setFocus(i int) {
	m.focus = i
	for j := range m.inputs {
		if j == i {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
}

// Update handles input events. Tab cycles fields; enter on the name moves
// to the email, enter on the email submits; esc cancels.
func (m CreateUserModal) Update(msg tea.Msg) (CreateUserModal, tea.Cmd, ModalResult) {
	if !m.visible {
		return m, nil, ModalEditing
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.Hide()
			return m, nil, ModalCancelled
		case "tab", "down":
			m.setFocus((m.focus + 1) % len(m.inputs))
			return m, nil, ModalEditing
		case "shift+tab", "up":
			m.setFocus((m.focus + len(m.inputs) - 1) % len(m.inputs))
			return m, nil, ModalEditing
		case "enter":
			if m.focus < len(m.inputs)-1 {
				m.setFocus(m.focus + 1)
				return m, nil, ModalEditing
			}
			return m, nil, ModalSubmitted
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd, ModalEditing
}

// View renders the create dialog
func (m CreateUserModal) View() string {
	if !m.visible {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Foreground(styles.White).
		Bold(true).
		Width(modalWidth).
		Background(styles.SlateDark)

	rowStyle := lipgloss.NewStyle().
		Width(modalWidth).
		Background(styles.SlateDark)

	spacer := rowStyle.Render("")

	labels := []string{"Name ", "Email"}
	rows := []string{titleStyle.Render("New user"), spacer}
	for i, in := range m.inputs {
		label := styles.DimStyle.Render(labels[i])
		if i == m.focus {
			label = styles.AccentStyle.Render(labels[i])
		}
		rows = append(rows, rowStyle.Render(label+"  "+in.View()))
	}
	rows = append(rows, spacer, rowStyle.Render(
		styles.HelpKeyStyle.Render("tab")+styles.HelpDescStyle.Render(" next  ")+
			styles.HelpKeyStyle.Render("enter")+styles.HelpDescStyle.Render(" create  ")+
			styles.HelpKeyStyle.Render("esc")+styles.HelpDescStyle.Render(" cancel"),
	))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Accent).
		Background(styles.SlateDark).
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
