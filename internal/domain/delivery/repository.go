package delivery

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// WriteModel carries the writable fields for creating a delivery.
type WriteModel struct {
	Number           string
	TransportModelID uint
	PackagingID      uint
	StatusID         uint
	CargoTypeID      *uint
	DepartureTime    time.Time
	ArrivalTime      time.Time
	Distance         float64
	Condition        Condition
	Notes            *string
	MediaFile        *string
	ServiceIDs       []uint
}

// Patch carries a partial update. Nil fields are left untouched. A nil
// Services pointer leaves the association as is; a non-nil pointer replaces
// the whole set, including replacing with nothing.
type Patch struct {
	Number           *string
	TransportModelID *uint
	PackagingID      *uint
	StatusID         *uint
	CargoTypeID      *uint
	DepartureTime    *time.Time
	ArrivalTime      *time.Time
	Distance         *float64
	Condition        *Condition
	Notes            *string
	MediaFile        *string
	Services         *[]uint
}

// Filter represents the composable listing filters, combined with AND.
type Filter struct {
	TransportModelID *uint
	StatusID         *uint
	PackagingID      *uint
	CargoTypeID      *uint
	Condition        *Condition

	MinDistance *float64
	MaxDistance *float64

	// Any-of match on associated service ids; results are deduplicated.
	ServiceIDs []uint

	// "today" or "week"; empty means no time constraint.
	TimeFilter string

	Search   string
	Ordering string
}

// Repository defines delivery persistence operations.
type Repository interface {
	Create(ctx context.Context, w *WriteModel, actorID uuid.UUID) (*Delivery, error)
	GetByID(ctx context.Context, id uint) (*Delivery, error)
	Update(ctx context.Context, id uint, patch *Patch, actorID uuid.UUID) (*Delivery, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter *Filter) ([]*Delivery, error)
	SetStatus(ctx context.Context, id uint, statusID uint, actorID uuid.UUID) (*Delivery, error)
	Statistics(ctx context.Context) (*Statistics, error)
}
