package track

import "errors"

// Sentinel errors for the four failure classes surfaced by the store and the
// API client. Callers branch with errors.Is; the concrete wrapped error keeps
// the underlying detail.
var (
	// ErrValidation: input failed a local format or duplicate check. No
	// network call was made.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound: the targeted id no longer exists server-side. Non-fatal;
	// the caller should refresh its list.
	ErrNotFound = errors.New("not found")

	// ErrTransport: network failure or unexpected status. Any optimistic
	// mutation has been rolled back.
	ErrTransport = errors.New("transport error")

	// ErrConflict: the server rejected a duplicate that slipped past the
	// local pre-check.
	ErrConflict = errors.New("conflict")
)
