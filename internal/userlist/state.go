package userlist

import "github.com/mmcdole/roster/internal/domain"

// State is the presentation state of the user list screen
type State struct {
	Users         []domain.User
	IsLoading     bool // loading without a user gesture
	IsRefreshing  bool // loading because the user asked
	HasLoadedOnce bool

	ShowCreateDialog bool
	ShowDeleteDialog bool

	// PendingDeleteID is set only while ShowDeleteDialog is true
	PendingDeleteID *int64
}

// Busy reports whether a load or refresh is in progress
func (s State) Busy() bool {
	return s.IsLoading || s.IsRefreshing
}

func (s State) clone() State {
	out := s
	if s.Users != nil {
		out.Users = append([]domain.User(nil), s.Users...)
	}
	if s.PendingDeleteID != nil {
		id := *s.PendingDeleteID
		out.PendingDeleteID = &id
	}
	return out
}
