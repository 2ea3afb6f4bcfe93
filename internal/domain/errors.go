package domain

// ErrorKind classifies a failed network operation.
// The set is closed: every transport outcome maps to exactly one kind.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindRequestTimeout
	KindUnauthorized
	KindConflict
	KindTooManyRequests
	KindNoInternet
	KindServerError
)

// ErrorKinds lists every kind, in declaration order.
var ErrorKinds = []ErrorKind{
	KindUnknown,
	KindRequestTimeout,
	KindUnauthorized,
	KindConflict,
	KindTooManyRequests,
	KindNoInternet,
	KindServerError,
}

// String returns the kind's identifier
func (k ErrorKind) String() string {
	switch k {
	case KindRequestTimeout:
		return "request_timeout"
	case KindUnauthorized:
		return "unauthorized"
	case KindConflict:
		return "conflict"
	case KindTooManyRequests:
		return "too_many_requests"
	case KindNoInternet:
		return "no_internet"
	case KindServerError:
		return "server_error"
	default:
		return "unknown"
	}
}

// Error implements the error interface so a kind can be wrapped by callers
// that leave the Result world (the CLI, mostly).
func (k ErrorKind) Error() string {
	return "network error: " + k.String()
}

// Transient reports whether an operation that failed with this kind may
// succeed if simply tried again later.
func (k ErrorKind) Transient() bool {
	switch k {
	case KindNoInternet, KindRequestTimeout, KindServerError, KindTooManyRequests:
		return true
	default:
		return false
	}
}
