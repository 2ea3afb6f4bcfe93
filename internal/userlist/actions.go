package userlist

// Action is a user intent submitted to the Controller
type Action interface {
	isAction()
}

// ScreenReady loads the list unless it has already loaded once
type ScreenReady struct{}

// RequestCreate opens the create dialog
type RequestCreate struct{}

// ConfirmCreate creates a user from the create dialog's fields
type ConfirmCreate struct {
	Name  string
	Email string
}

// RequestDelete opens the delete confirmation for a user
type RequestDelete struct {
	ID int64
}

// ConfirmDelete deletes the user awaiting confirmation
type ConfirmDelete struct{}

// DismissDialog closes whichever dialog is open
type DismissDialog struct{}

// Refresh reloads the list. UserGesture distinguishes pull-to-refresh
// from a programmatic reload.
type Refresh struct {
	UserGesture bool
}

func (ScreenReady) isAction()   {}
func (RequestCreate) isAction() {}
func (ConfirmCreate) isAction() {}
func (RequestDelete) isAction() {}
func (ConfirmDelete) isAction() {}
func (DismissDialog) isAction() {}
func (Refresh) isAction()       {}
