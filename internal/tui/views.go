package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/roster/internal/domain"
	"github.com/mmcdole/roster/internal/tui/styles"
)

// row is one rendered list entry
type row struct {
	user    domain.User
	matched []int // highlighted rune positions in the name
}

// View renders the screen
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	sections := []string{m.renderHeader(), ""}
	if m.filterActive {
		sections = append(sections, m.filterInput.View())
	}
	sections = append(sections, m.renderList(), m.renderFooter())
	view := lipgloss.JoinVertical(lipgloss.Left, sections...)

	// Overlay dialogs
	if m.createModal.IsVisible() {
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.createModal.View())
	} else if m.state.ShowDeleteDialog {
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.renderDeleteConfirmation())
	}

	return view
}

func (m Model) renderHeader() string {
	title := styles.TitleStyle.Render("Users")
	count := styles.DimStyle.Render(fmt.Sprintf(" (%d)", len(m.state.Users)))
	if m.filterQuery != "" {
		count = styles.DimStyle.Render(fmt.Sprintf(" (%d of %d)", len(m.matches), len(m.state.Users)))
	}

	var activity string
	switch {
	case m.state.IsRefreshing:
		activity = "  " + m.spinner.View() + styles.DimStyle.Render(" Refreshing...")
	case m.state.IsLoading:
		activity = "  " + m.spinner.View() + styles.DimStyle.Render(" Loading...")
	}

	return title + count + activity
}

func (m Model) renderList() string {
	height := m.listHeight()
	rows := m.visibleRows()

	var lines []string
	switch {
	case len(rows) == 0 && m.filterQuery != "":
		lines = append(lines, styles.DimStyle.Render("  No matches"))
	case len(rows) == 0 && !m.state.HasLoadedOnce && m.state.Busy():
		lines = append(lines, styles.DimStyle.Render("  Loading users..."))
	case len(rows) == 0 && !m.state.HasLoadedOnce:
		lines = append(lines, styles.DimStyle.Render("  No users loaded. Press r to retry."))
	case len(rows) == 0:
		lines = append(lines, styles.DimStyle.Render("  No users"))
	default:
		end := m.offset + height
		if end > len(rows) {
			end = len(rows)
		}
		for i := m.offset; i < end; i++ {
			lines = append(lines, m.renderRow(rows[i], i == m.cursor))
		}
	}

	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// renderRow renders "name  email  time" across the full width
func (m Model) renderRow(r row, selected bool) string {
	base := styles.NormalItemStyle
	if selected {
		base = styles.SelectedItemStyle
	}

	observed := ""
	if !r.user.ObservedAt.IsZero() {
		observed = r.user.ObservedAt.Format(m.timeFormat)
	}

	// 2 for the margin, 2 between each column
	timeWidth := lipgloss.Width(observed)
	textWidth := m.Width - timeWidth - 6
	if textWidth < 10 {
		textWidth = 10
	}
	nameWidth := textWidth / 2
	emailWidth := textWidth - nameWidth

	name := styles.Truncate(r.user.Name, nameWidth)
	matched := r.matched
	if name != r.user.Name {
		// Highlights past the ellipsis would land on the wrong runes
		matched = nil
	}

	line := base.Render(" ") +
		styles.Highlight(name, matched, base, selected) +
		base.Render(strings.Repeat(" ", max(nameWidth-lipgloss.Width(name), 0)+2)) +
		base.Render(styles.Pad(styles.Truncate(r.user.Email, emailWidth), emailWidth)) +
		base.Render("  ") +
		base.Render(observed) +
		base.Render(" ")

	return line
}

func (m Model) renderFooter() string {
	var left string
	if m.statusMsg != "" {
		if m.statusIsErr {
			left = styles.ErrorStyle.Render(m.statusMsg)
		} else {
			left = styles.SuccessStyle.Render(m.statusMsg)
		}
	}

	var hints []string
	for _, b := range Keys.ShortHelp() {
		h := b.Help()
		hints = append(hints, styles.HelpKeyStyle.Render(h.Key)+" "+styles.HelpDescStyle.Render(h.Desc))
	}
	right := strings.Join(hints, "  ")

	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) renderDeleteConfirmation() string {
	target := "this user"
	if m.state.PendingDeleteID != nil {
		for _, u := range m.state.Users {
			if u.ID == *m.state.PendingDeleteID {
				target = u.Name
				break
			}
		}
	}

	yes := Keys.Confirm.Help()
	no := Keys.Deny.Help()
	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitleStyle.Render("Delete user?"),
		styles.DimStyle.Render("Delete "+target+" from the server?"),
		"",
		styles.HelpKeyStyle.Render("["+yes.Key+"]")+" Yes      "+
			styles.HelpKeyStyle.Render("["+no.Key+"]")+" No",
	)

	return styles.ModalStyle.Render(content)
}

