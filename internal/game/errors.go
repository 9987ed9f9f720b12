package game

import "errors"

// Caller-recoverable error taxonomy for the session engine. Handlers map
// these to HTTP status codes with errors.Is; services wrap them with
// fmt.Errorf("%w: ...") to add detail.
var (
	ErrNotFound        = errors.New("not found")
	ErrAlreadyRedeemed = errors.New("code already redeemed")
	ErrInvalidState    = errors.New("invalid session state")
	ErrConflict        = errors.New("conflict")
)
