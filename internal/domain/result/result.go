package result

import "fmt"

// Kind classifies the outcome of an operation.
type Kind string

const (
	Success        Kind = "Success"
	NotFound       Kind = "NotFound"
	InvalidData    Kind = "InvalidData"
	Duplicate      Kind = "Duplicate"
	DataStoreError Kind = "DataStoreError"
)

// Result is the uniform outcome envelope returned by every repository
// and service operation. It is the only error-signaling mechanism
// inside the core: no error values cross these boundaries.
//
// Value is meaningful only when Succeeded is true.
type Result[T any] struct {
	Value     T      `json:"value,omitempty"`
	Kind      Kind   `json:"result_type"`
	Message   string `json:"message,omitempty"`
	Succeeded bool   `json:"succeeded"`
}

// OK returns a successful result carrying v.
func OK[T any](v T) Result[T] {
	return Result[T]{Succeeded: true, Kind: Success, Value: v}
}

// Fail returns a failed result of the given kind. Message is always set.
func Fail[T any](kind Kind, format string, args ...any) Result[T] {
	return Result[T]{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NotFoundf returns a failed NotFound result.
func NotFoundf[T any](format string, args ...any) Result[T] {
	return Fail[T](NotFound, format, args...)
}

// InvalidDataf returns a failed InvalidData result.
func InvalidDataf[T any](format string, args ...any) Result[T] {
	return Fail[T](InvalidData, format, args...)
}

// Duplicatef returns a failed Duplicate result.
func Duplicatef[T any](format string, args ...any) Result[T] {
	return Fail[T](Duplicate, format, args...)
}

// DataStoreErrorf returns a failed DataStoreError result.
func DataStoreErrorf[T any](format string, args ...any) Result[T] {
	return Fail[T](DataStoreError, format, args...)
}

// Failed reports whether the operation did not succeed.
func (r Result[T]) Failed() bool {
	return !r.Succeeded
}
