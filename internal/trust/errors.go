package trust

import "errors"

// Validation errors: rejected synchronously, nothing persisted.
var (
	ErrInvalidActor   = errors.New("invalid actor reference")
	ErrEmptyMessage   = errors.New("appeal message is empty")
	ErrNotAppealable  = errors.New("suspension is not appealable")
	ErrUnknownOutcome = errors.New("unknown booking outcome")
)

// Conflict errors: the caller retries the operation from scratch.
var (
	ErrAppealAlreadyPending = errors.New("an appeal is already pending for this suspension")
)

// Not-found errors: surfaced to the caller, no partial state left behind.
var (
	ErrNoActiveSuspension = errors.New("no active suspension for actor")
	ErrAppealNotPending   = errors.New("appeal is not pending review")
)
