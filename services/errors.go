package services

import "errors"

// Error taxonomy surfaced by the store. Controllers map these onto
// HTTP status codes; everything else passes through verbatim as a
// backend error.
var (
	// ErrNotConfigured means no persistence backend was configured.
	// The dashboard still renders, but every action is disabled.
	ErrNotConfigured = errors.New("persistence backend is not configured")

	// ErrConnectivity means a load round trip failed. The previous
	// snapshot is left intact and a manual retry is the remedy.
	ErrConnectivity = errors.New("could not reach the persistence backend")

	// ErrValidation means the request was rejected before any backend
	// call was issued.
	ErrValidation = errors.New("validation failed")

	// ErrOrderNotFound means the id does not exist in the current snapshot.
	ErrOrderNotFound = errors.New("order not found")
)
