package gorest

import "github.com/mmcdole/roster/internal/domain"

// MapUser converts an API user to a domain user
func MapUser(u UserResponse) domain.User {
	return domain.User{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Gender: u.Gender,
		Status: u.Status,
	}
}

// MapUsers converts a page of API users, preserving order
func MapUsers(users []UserResponse) []domain.User {
	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		out = append(out, MapUser(u))
	}
	return out
}

// mapResult converts a successful Result with fn, passing failures through
func mapResult[From, To any](r domain.Result[From], fn func(From) To) domain.Result[To] {
	v, ok := r.Value()
	if !ok {
		return domain.MapFailure[To](r)
	}
	return domain.Success(fn(v))
}
