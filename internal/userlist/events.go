package userlist

// Event is a one-shot notification. Events are not part of State and are
// lost if nobody is subscribed when they are emitted.
type Event interface {
	isEvent()
}

// UserCreated signals a successful create
type UserCreated struct{}

// UserDeleted signals a successful delete
type UserDeleted struct{}

// OperationFailed signals a failed create or delete
type OperationFailed struct {
	Message string
}

// LoadFailed signals a failed list load attempt
type LoadFailed struct {
	Message string
}

func (UserCreated) isEvent()     {}
func (UserDeleted) isEvent()     {}
func (OperationFailed) isEvent() {}
func (LoadFailed) isEvent()      {}
