package tui

import "github.com/mmcdole/roster/internal/userlist"

// Message types for the TUI

// StateChangedMsg signals that the controller published a new state
type StateChangedMsg struct{}

// EventMsg carries a one-shot controller event
type EventMsg struct {
	Event userlist.Event
}

// subscriptionClosedMsg signals that the controller closed a stream
type subscriptionClosedMsg struct{}

// ClearStatusMsg clears the status line if it still shows status Seq
type ClearStatusMsg struct {
	Seq int
}
