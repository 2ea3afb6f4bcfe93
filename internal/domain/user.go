package domain

import "time"

// User is a remote user record.
type User struct {
	ID     int64
	Name   string
	Email  string
	Gender string
	Status string

	// ObservedAt is stamped locally when the list containing the user was
	// accepted. It is display-only and never leaves the client.
	ObservedAt time.Time
}

// Stamp returns copies of users with ObservedAt set to at.
func Stamp(users []User, at time.Time) []User {
	out := make([]User, len(users))
	for i, u := range users {
		u.ObservedAt = at
		out[i] = u
	}
	return out
}
