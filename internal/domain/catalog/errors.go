package catalog

import "errors"

var (
	ErrEntryNotFound   = errors.New("catalog entry not found")
	ErrCodeConflict    = errors.New("catalog entry with this code already exists")
	ErrEntryInUse      = errors.New("catalog entry is referenced by deliveries")
	ErrInvalidOrdering = errors.New("invalid ordering field")
)
