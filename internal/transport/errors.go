package transport

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrAddressUnresolvable indicates the API host name could not be resolved
	ErrAddressUnresolvable = errors.New("address could not be resolved")

	// ErrTransport indicates any other failure to complete the exchange
	ErrTransport = errors.New("transport failure")
)

// DecodeError reports a success response whose body does not decode into
// the expected type. It is a defect, not a network failure.
type DecodeError struct {
	StatusCode int
	Target     string
	Err        error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s from %d response: %v", e.Target, e.StatusCode, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsCancellation reports whether err is a context cancellation or deadline
// that must unwind the caller rather than become a Result.
func IsCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
