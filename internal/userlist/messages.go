package userlist

import "github.com/mmcdole/roster/internal/domain"

// Message keys
const (
	KeyRequestTimeout  = "error_request_timeout"
	KeyUnauthorized    = "error_unauthorized"
	KeyConflict        = "error_conflict"
	KeyTooManyRequests = "error_too_many_requests"
	KeyNoInternet      = "error_no_internet"
	KeyServerError     = "error_server_error"
	KeyUnknown         = "error_unknown"
	KeyEmailExists     = "error_email_exists"
	KeyUserCreated     = "user_created_successfully"
	KeyUserDeleted     = "user_deleted_successfully"
)

// Localizer resolves a message key to display text
type Localizer interface {
	Localize(key string) string
}

// Catalog is a map-backed Localizer. Unknown keys resolve to themselves.
type Catalog map[string]string

// Localize implements Localizer
func (c Catalog) Localize(key string) string {
	if s, ok := c[key]; ok {
		return s
	}
	return key
}

// DefaultCatalog returns the English messages
func DefaultCatalog() Catalog {
	return Catalog{
		KeyRequestTimeout:  "The request timed out. Please try again.",
		KeyUnauthorized:    "Not authorized. Check your access token.",
		KeyConflict:        "The request conflicts with existing data.",
		KeyTooManyRequests: "Too many requests. Please slow down.",
		KeyNoInternet:      "No internet connection.",
		KeyServerError:     "The server ran into a problem.",
		KeyUnknown:         "Something went wrong.",
		KeyEmailExists:     "A user with this email already exists.",
		KeyUserCreated:     "User created successfully",
		KeyUserDeleted:     "User deleted successfully",
	}
}

// MessageKey returns the generic message key for an error kind
func MessageKey(kind domain.ErrorKind) string {
	switch kind {
	case domain.KindRequestTimeout:
		return KeyRequestTimeout
	case domain.KindUnauthorized:
		return KeyUnauthorized
	case domain.KindConflict:
		return KeyConflict
	case domain.KindTooManyRequests:
		return KeyTooManyRequests
	case domain.KindNoInternet:
		return KeyNoInternet
	case domain.KindServerError:
		return KeyServerError
	default:
		return KeyUnknown
	}
}
