package domain

// Unit is the value carried by a successful operation that returns nothing.
type Unit struct{}

// Result is either a success carrying a value or a failure carrying an
// ErrorKind. The zero Result is not valid; use Success or Failure.
type Result[V any] struct {
	value V
	kind  ErrorKind
	ok    bool
}

// Success wraps a value.
func Success[V any](value V) Result[V] {
	return Result[V]{value: value, ok: true}
}

// Failure wraps an error kind.
func Failure[V any](kind ErrorKind) Result[V] {
	return Result[V]{kind: kind}
}

// IsSuccess reports which variant is populated.
func (r Result[V]) IsSuccess() bool {
	return r.ok
}

// Value returns the success value. ok is false for a failure.
func (r Result[V]) Value() (value V, ok bool) {
	return r.value, r.ok
}

// Kind returns the failure kind. ok is false for a success.
func (r Result[V]) Kind() (kind ErrorKind, ok bool) {
	if r.ok {
		return 0, false
	}
	return r.kind, true
}

// Err returns the failure kind as an error, or nil on success.
func (r Result[V]) Err() error {
	if r.ok {
		return nil
	}
	return r.kind
}

// MapFailure re-types a failure. It panics when called on a success,
// which would drop the value.
func MapFailure[To, From any](r Result[From]) Result[To] {
	if r.ok {
		panic("domain: MapFailure called on a success")
	}
	return Failure[To](r.kind)
}
