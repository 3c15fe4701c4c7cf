package delivery

import (
	"math"
	"time"

	"delivery-tracker/internal/domain/catalog"

	"github.com/google/uuid"
)

// Condition represents the technical condition of the transport on a delivery.
type Condition string

const (
	ConditionOperational Condition = "operational"
	ConditionFaulty      Condition = "faulty"
)

// Delivery is the central shipment record. Catalog references are carried as
// resolved entries so projections can expose both ids and names.
type Delivery struct {
	ID     uint
	Number string

	TransportModel catalog.Entry
	Packaging      catalog.Entry
	Status         catalog.Entry
	CargoType      *catalog.Entry

	DepartureTime time.Time
	ArrivalTime   time.Time
	Distance      float64
	Condition     Condition

	Services []catalog.Entry

	Notes     *string
	MediaFile *string

	CreatedAt time.Time
	UpdatedAt time.Time

	CreatedByID   *uuid.UUID
	UpdatedByID   *uuid.UUID
	CreatedByName *string
	UpdatedByName *string
}

// TravelTimeHours returns the travel duration in hours rounded to two decimal
// places, or 0 when either timestamp is unset.
func (d *Delivery) TravelTimeHours() float64 {
	if d.DepartureTime.IsZero() || d.ArrivalTime.IsZero() {
		return 0
	}
	hours := d.ArrivalTime.Sub(d.DepartureTime).Seconds() / 3600
	return math.Round(hours*100) / 100
}

// Statistics represents aggregate counters over the whole delivery table.
type Statistics struct {
	TotalDeliveries     int64
	CompletedDeliveries int64
	PendingDeliveries   int64
	AvgDistance         float64
}
