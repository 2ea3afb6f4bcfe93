package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/roster/internal/domain"
	"github.com/mmcdole/roster/internal/search"
	"github.com/mmcdole/roster/internal/tui/components"
	"github.com/mmcdole/roster/internal/tui/styles"
	"github.com/mmcdole/roster/internal/userlist"
)

const (
	// DefaultStatusDuration is how long an event stays in the status line
	DefaultStatusDuration = 3 * time.Second

	// header + blank line
	headerHeight = 2
	footerHeight = 1
)

// Controller is the part of userlist.Controller the model drives
type Controller interface {
	State() userlist.State
	Dispatch(action userlist.Action)
	SubscribeState() (<-chan userlist.State, func())
	SubscribeEvents() (<-chan userlist.Event, func())
}

// Options configures the model
type Options struct {
	TimeFormat     string             // Go layout for ObservedAt
	Localizer      userlist.Localizer // success messages
	StatusDuration time.Duration
}

// Model is the main Bubble Tea model for the application
type Model struct {
	ctrl      Controller
	localizer userlist.Localizer

	stateCh     <-chan userlist.State
	eventCh     <-chan userlist.Event
	unsubscribe []func()

	// Latest controller snapshot
	state userlist.State

	// UI components
	spinner     spinner.Model
	createModal components.CreateUserModal
	filterInput textinput.Model

	// Filter state
	filterActive bool
	filterQuery  string
	matches      []search.Match

	// Selection
	cursor int
	offset int

	// Dimensions
	Width  int
	Height int
	Ready  bool

	// Status line
	statusMsg      string
	statusIsErr    bool
	statusSeq      int
	statusDuration time.Duration
	timeFormat     string
}

// NewModel creates the model and subscribes to the controller's streams
func NewModel(ctrl Controller, opts Options) Model {
	if opts.TimeFormat == "" {
		opts.TimeFormat = "03:04 PM"
	}
	if opts.Localizer == nil {
		opts.Localizer = userlist.DefaultCatalog()
	}
	if opts.StatusDuration <= 0 {
		opts.StatusDuration = DefaultStatusDuration
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	stateCh, unsubState := ctrl.SubscribeState()
	eventCh, unsubEvents := ctrl.SubscribeEvents()

	return Model{
		ctrl:           ctrl,
		localizer:      opts.Localizer,
		stateCh:        stateCh,
		eventCh:        eventCh,
		unsubscribe:    []func(){unsubState, unsubEvents},
		state:          ctrl.State(),
		spinner:        sp,
		createModal:    components.NewCreateUserModal(),
		filterInput:    ti,
		statusDuration: opts.StatusDuration,
		timeFormat:     opts.TimeFormat,
	}
}

// Init starts the stream listeners and asks for the first load
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		listenStateCmd(m.stateCh),
		listenEventCmd(m.eventCh),
		dispatchCmd(m.ctrl, userlist.ScreenReady{}),
		m.spinner.Tick,
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.ensureVisible()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case StateChangedMsg:
		// The snapshot on the channel may already be stale; read the latest
		m.syncState()
		return m, listenStateCmd(m.stateCh)

	case EventMsg:
		cmd := m.showEvent(msg.Event)
		return m, tea.Batch(cmd, listenEventCmd(m.eventCh))

	case ClearStatusMsg:
		if msg.Seq == m.statusSeq {
			m.statusMsg = ""
			m.statusIsErr = false
		}
		return m, nil

	case subscriptionClosedMsg:
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleKeyMsg routes keys to the open dialog, the filter, or the list
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	switch {
	case m.state.ShowCreateDialog:
		return m.handleCreateDialogKey(msg)
	case m.state.ShowDeleteDialog:
		return m.handleDeleteDialogKey(msg)
	case m.filterInput.Focused():
		return m.handleFilterKey(msg)
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m.quit()

	case key.Matches(msg, Keys.Up):
		m.moveCursor(-1)

	case key.Matches(msg, Keys.Down):
		m.moveCursor(1)

	case key.Matches(msg, Keys.Home):
		m.cursor = 0
		m.clampCursor()

	case key.Matches(msg, Keys.End):
		m.cursor = len(m.visibleRows()) - 1
		m.clampCursor()

	case key.Matches(msg, Keys.Escape):
		if m.filterActive {
			m.clearFilter()
		}

	case key.Matches(msg, Keys.Filter):
		m.filterActive = true
		cmd := m.filterInput.Focus()
		return m, cmd

	case key.Matches(msg, Keys.New):
		m.dispatch(userlist.RequestCreate{})

	case key.Matches(msg, Keys.Delete):
		if u, ok := m.selectedUser(); ok {
			m.dispatch(userlist.RequestDelete{ID: u.ID})
		}

	case key.Matches(msg, Keys.Refresh):
		m.dispatch(userlist.Refresh{UserGesture: true})
	}

	return m, nil
}

func (m Model) handleCreateDialogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var result components.ModalResult
	m.createModal, cmd, result = m.createModal.Update(msg)

	switch result {
	case components.ModalSubmitted:
		if m.createModal.Name() == "" || m.createModal.Email() == "" {
			return m, m.setStatus("Name and email are required", true)
		}
		m.dispatch(userlist.ConfirmCreate{
			Name:  m.createModal.Name(),
			Email: m.createModal.Email(),
		})
	case components.ModalCancelled:
		m.dispatch(userlist.DismissDialog{})
	}
	return m, cmd
}

func (m Model) handleDeleteDialogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Confirm):
		m.dispatch(userlist.ConfirmDelete{})
	case key.Matches(msg, Keys.Deny):
		m.dispatch(userlist.DismissDialog{})
	}
	return m, nil
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.clearFilter()
		return m, nil
	case "enter":
		// Keep the filter, return keys to the list
		m.filterInput.Blur()
		if m.filterQuery == "" {
			m.filterActive = false
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	for _, unsub := range m.unsubscribe {
		unsub()
	}
	return m, tea.Quit
}

// dispatch sends an action and picks up the synchronous part of its effect
func (m *Model) dispatch(action userlist.Action) {
	m.ctrl.Dispatch(action)
	m.syncState()
}

// syncState copies the controller's latest state and reconciles the UI
func (m *Model) syncState() {
	m.state = m.ctrl.State()

	switch {
	case m.state.ShowCreateDialog && !m.createModal.IsVisible():
		m.createModal.Show()
	case !m.state.ShowCreateDialog && m.createModal.IsVisible():
		m.createModal.Hide()
	}

	m.applyFilter()
}

func (m *Model) showEvent(ev userlist.Event) tea.Cmd {
	switch e := ev.(type) {
	case userlist.UserCreated:
		return m.setStatus(m.localizer.Localize(userlist.KeyUserCreated), false)
	case userlist.UserDeleted:
		return m.setStatus(m.localizer.Localize(userlist.KeyUserDeleted), false)
	case userlist.OperationFailed:
		return m.setStatus(e.Message, true)
	case userlist.LoadFailed:
		return m.setStatus(e.Message, true)
	}
	return nil
}

func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.statusSeq++
	m.statusMsg = text
	m.statusIsErr = isErr
	return ClearStatusCmd(m.statusSeq, m.statusDuration)
}

func (m *Model) applyFilter() {
	m.filterQuery = m.filterInput.Value()
	if m.filterQuery == "" {
		m.matches = nil
	} else {
		m.matches = search.Filter(m.state.Users, m.filterQuery)
	}
	m.clampCursor()
}

func (m *Model) clearFilter() {
	m.filterActive = false
	m.filterInput.SetValue("")
	m.filterInput.Blur()
	m.applyFilter()
}

// visibleRows returns the users shown, in display order
func (m Model) visibleRows() []row {
	if m.filterQuery == "" {
		rows := make([]row, len(m.state.Users))
		for i, u := range m.state.Users {
			rows[i] = row{user: u}
		}
		return rows
	}

	rows := make([]row, 0, len(m.matches))
	for _, match := range m.matches {
		if match.Index >= len(m.state.Users) {
			continue
		}
		rows = append(rows, row{
			user:    m.state.Users[match.Index],
			matched: match.MatchedIndexes,
		})
	}
	return rows
}

func (m Model) selectedUser() (domain.User, bool) {
	rows := m.visibleRows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return domain.User{}, false
	}
	return rows[m.cursor].user, true
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *Model) clampCursor() {
	n := len(m.visibleRows())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.ensureVisible()
}

func (m Model) listHeight() int {
	h := m.Height - headerHeight - footerHeight
	if m.filterActive {
		h--
	}
	if h < 1 {
		h = 1
	}
	return h
}

func (m *Model) ensureVisible() {
	// Don't adjust offset if size hasn't been set yet
	if !m.Ready {
		return
	}
	maxVisible := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+maxVisible {
		m.offset = m.cursor - maxVisible + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}
