package domain

import "errors"

var (
	// ErrStoreUnavailable is returned when the catalog store cannot be reached at all
	ErrStoreUnavailable = errors.New("catalog store unavailable")

	// ErrInvalidExtraction is returned when an extraction lacks the fields required to resolve it
	ErrInvalidExtraction = errors.New("invalid extraction")
)
