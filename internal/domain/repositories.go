package domain

import (
	"context"
)

// UserRepository provides access to the remote users collection.
//
// Every method returns a Result for domain failures. The error return is
// reserved for things that are not domain failures: context cancellation,
// which must unwind the caller, and defects such as a success response
// whose body cannot be decoded.
type UserRepository interface {
	// ListLatest returns the users on the last page of the collection
	ListLatest(ctx context.Context) (Result[[]User], error)

	// Create creates a user and returns the server's record
	Create(ctx context.Context, name, email string) (Result[User], error)

	// Delete removes a user by ID
	Delete(ctx context.Context, id int64) (Result[Unit], error)
}
