package delivery

import "errors"

var (
	ErrDeliveryNotFound      = errors.New("delivery not found")
	ErrNumberConflict        = errors.New("delivery with this number already exists")
	ErrInvalidTimeRange      = errors.New("arrival time must be after departure time")
	ErrInvalidCondition      = errors.New("invalid condition value")
	ErrInvalidOrdering       = errors.New("invalid ordering field")
	ErrCompletedStatusAbsent = errors.New("completed status not configured")
)
