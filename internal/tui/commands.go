package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/roster/internal/userlist"
)

// Command factories bridging controller streams into the program loop.
// Each listener re-arms itself from Update after every message.

// listenStateCmd waits for the next state snapshot
func listenStateCmd(ch <-chan userlist.State) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return subscriptionClosedMsg{}
		}
		return StateChangedMsg{}
	}
}

// listenEventCmd waits for the next one-shot event
func listenEventCmd(ch <-chan userlist.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return subscriptionClosedMsg{}
		}
		return EventMsg{Event: ev}
	}
}

// dispatchCmd applies an action off the update loop
func dispatchCmd(ctrl Controller, action userlist.Action) tea.Cmd {
	return func() tea.Msg {
		ctrl.Dispatch(action)
		return nil
	}
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(seq int, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{Seq: seq}
	})
}
