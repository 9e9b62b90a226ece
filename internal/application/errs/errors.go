package errs

import "errors"

// Sentinel errors for the HTTP boundary. The transactional core itself
// reports failures through the result envelope; these exist for the
// auth flow and request decoding.
var (
	ErrNotFound             = errors.New("not found")
	ErrDataConflict         = errors.New("data conflict")
	ErrInvalidRequest       = errors.New("invalid request")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidAccountNumber = errors.New("invalid account number")
)

// Type just for marshalling purpose.
// Should only be used immediately before marshalling.
type JSON struct {
	Error string `json:"error"`
}
