package transport

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-json-experiment/json"

	"github.com/mmcdole/roster/internal/domain"
)

// Classify converts a transport outcome into a Result.
//
// Cancellation is returned as the error, unchanged. A 2xx body that does
// not decode into V is returned as a *DecodeError. Everything else becomes
// a Result.
func Classify[V any](resp *Response, err error) (domain.Result[V], error) {
	if err != nil {
		return classifyFailure[V](err)
	}

	switch code := resp.StatusCode; {
	case code == http.StatusNoContent:
		return noContent[V](), nil
	case code >= 200 && code < 300:
		return decode[V](resp)
	default:
		return domain.Failure[V](KindForStatus(code)), nil
	}
}

// KindForStatus maps a non-success HTTP status to an ErrorKind
func KindForStatus(code int) domain.ErrorKind {
	switch {
	case code == http.StatusUnauthorized:
		return domain.KindUnauthorized
	case code == http.StatusRequestTimeout:
		return domain.KindRequestTimeout
	case code == http.StatusUnprocessableEntity:
		return domain.KindConflict
	case code == http.StatusTooManyRequests:
		return domain.KindTooManyRequests
	case code >= 500 && code < 600:
		return domain.KindServerError
	default:
		return domain.KindUnknown
	}
}

func classifyFailure[V any](err error) (domain.Result[V], error) {
	switch {
	case errors.Is(err, ErrAddressUnresolvable):
		return domain.Failure[V](domain.KindNoInternet), nil
	case IsCancellation(err):
		return domain.Result[V]{}, err
	default:
		return domain.Failure[V](domain.KindUnknown), nil
	}
}

// noContent succeeds only for callers that expect no value
func noContent[V any]() domain.Result[V] {
	var v V
	if _, ok := any(v).(domain.Unit); ok {
		return domain.Success(v)
	}
	return domain.Failure[V](domain.KindUnknown)
}

func decode[V any](resp *Response) (domain.Result[V], error) {
	var v V
	if _, ok := any(v).(domain.Unit); ok {
		return domain.Success(v), nil
	}
	if err := json.Unmarshal(resp.Body, &v); err != nil {
		return domain.Result[V]{}, &DecodeError{
			StatusCode: resp.StatusCode,
			Target:     fmt.Sprintf("%T", v),
			Err:        err,
		}
	}
	return domain.Success(v), nil
}
