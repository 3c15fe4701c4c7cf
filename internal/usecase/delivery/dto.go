package delivery

import (
	"time"

	domainDelivery "delivery-tracker/internal/domain/delivery"

	"github.com/google/uuid"
)

// Request DTOs
type CreateDeliveryRequest struct {
	Number         string     `json:"number" validate:"required,max=100"`
	TransportModel uint       `json:"transport_model" validate:"required"`
	Packaging      uint       `json:"packaging" validate:"required"`
	Status         uint       `json:"status" validate:"required"`
	CargoType      *uint      `json:"cargo_type"`
	DepartureTime  time.Time  `json:"departure_time" validate:"required"`
	ArrivalTime    time.Time  `json:"arrival_time" validate:"required"`
	Distance       float64    `json:"distance" validate:"min=0"`
	Condition      string     `json:"condition" validate:"omitempty,condition"`
	Services       []uint     `json:"services"`
	Notes          *string    `json:"notes" validate:"omitempty,max=2000"`
	MediaFile      *string    `json:"media_file" validate:"omitempty,max=255"`
}

// UpdateDeliveryRequest is a partial update: nil fields are left untouched.
// Services is a pointer on purpose: an absent field keeps the existing set
// while a present (possibly empty) list replaces it entirely.
type UpdateDeliveryRequest struct {
	Number         *string    `json:"number" validate:"omitempty,max=100"`
	TransportModel *uint      `json:"transport_model"`
	Packaging      *uint      `json:"packaging"`
	Status         *uint      `json:"status"`
	CargoType      *uint      `json:"cargo_type"`
	DepartureTime  *time.Time `json:"departure_time"`
	ArrivalTime    *time.Time `json:"arrival_time"`
	Distance       *float64   `json:"distance" validate:"omitempty,min=0"`
	Condition      *string    `json:"condition" validate:"omitempty,condition"`
	Services       *[]uint    `json:"services"`
	Notes          *string    `json:"notes" validate:"omitempty,max=2000"`
	MediaFile      *string    `json:"media_file" validate:"omitempty,max=255"`
}

type ListDeliveriesRequest struct {
	TransportModel *uint    `form:"transport_model"`
	Status         *uint    `form:"status"`
	Packaging      *uint    `form:"packaging"`
	CargoType      *uint    `form:"cargo_type"`
	Condition      *string  `form:"condition"`
	MinDistance    *float64 `form:"min_distance"`
	MaxDistance    *float64 `form:"max_distance"`
	Services       string   `form:"services"`
	TimeFilter     string   `form:"time_filter"`
	Search         string   `form:"search"`
	Ordering       string   `form:"ordering"`
}

// Response DTOs
type ServiceData struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Code        string  `json:"code"`
	Description *string `json:"description"`
	Active      bool    `json:"active"`
}

// DeliveryListItem is the lightweight projection used for listings.
type DeliveryListItem struct {
	ID                 uint      `json:"id"`
	Number             string    `json:"number"`
	TransportModel     uint      `json:"transport_model"`
	TransportModelName string    `json:"transport_model_name"`
	DepartureTime      time.Time `json:"departure_time"`
	ArrivalTime        time.Time `json:"arrival_time"`
	TravelTime         float64   `json:"travel_time"`
	Distance           float64   `json:"distance"`
	Status             uint      `json:"status"`
	StatusName         string    `json:"status_name"`
	Condition          string    `json:"condition"`
	Packaging          uint      `json:"packaging"`
	PackagingName      string    `json:"packaging_name"`
}

// DeliveryDetail is the full projection returned for single-record reads.
type DeliveryDetail struct {
	ID                 uint          `json:"id"`
	Number             string        `json:"number"`
	TransportModel     uint          `json:"transport_model"`
	TransportModelName string        `json:"transport_model_name"`
	Packaging          uint          `json:"packaging"`
	PackagingName      string        `json:"packaging_name"`
	Status             uint          `json:"status"`
	StatusName         string        `json:"status_name"`
	CargoType          *uint         `json:"cargo_type"`
	CargoTypeName      *string       `json:"cargo_type_name"`
	DepartureTime      time.Time     `json:"departure_time"`
	ArrivalTime        time.Time     `json:"arrival_time"`
	TravelTime         float64       `json:"travel_time"`
	Distance           float64       `json:"distance"`
	Condition          string        `json:"condition"`
	Services           []uint        `json:"services"`
	ServicesData       []ServiceData `json:"services_data"`
	Notes              *string       `json:"notes"`
	MediaFile          *string       `json:"media_file"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
	CreatedBy          *uuid.UUID    `json:"created_by"`
	CreatedByName      *string       `json:"created_by_name"`
	UpdatedBy          *uuid.UUID    `json:"updated_by"`
	UpdatedByName      *string       `json:"updated_by_name"`
}

type StatsResponse struct {
	TotalDeliveries     int64   `json:"total_deliveries"`
	CompletedDeliveries int64   `json:"completed_deliveries"`
	PendingDeliveries   int64   `json:"pending_deliveries"`
	AvgDistance         float64 `json:"avg_distance"`
}

func ToDeliveryListItem(d *domainDelivery.Delivery) *DeliveryListItem {
	return &DeliveryListItem{
		ID:                 d.ID,
		Number:             d.Number,
		TransportModel:     d.TransportModel.ID,
		TransportModelName: d.TransportModel.Name,
		DepartureTime:      d.DepartureTime,
		ArrivalTime:        d.ArrivalTime,
		TravelTime:         d.TravelTimeHours(),
		Distance:           d.Distance,
		Status:             d.Status.ID,
		StatusName:         d.Status.Name,
		Condition:          string(d.Condition),
		Packaging:          d.Packaging.ID,
		PackagingName:      d.Packaging.Name,
	}
}

func ToDeliveryDetail(d *domainDelivery.Delivery) *DeliveryDetail {
	detail := &DeliveryDetail{
		ID:                 d.ID,
		Number:             d.Number,
		TransportModel:     d.TransportModel.ID,
		TransportModelName: d.TransportModel.Name,
		Packaging:          d.Packaging.ID,
		PackagingName:      d.Packaging.Name,
		Status:             d.Status.ID,
		StatusName:         d.Status.Name,
		DepartureTime:      d.DepartureTime,
		ArrivalTime:        d.ArrivalTime,
		TravelTime:         d.TravelTimeHours(),
		Distance:           d.Distance,
		Condition:          string(d.Condition),
		Services:           make([]uint, len(d.Services)),
		ServicesData:       make([]ServiceData, len(d.Services)),
		Notes:              d.Notes,
		MediaFile:          d.MediaFile,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
		CreatedBy:          d.CreatedByID,
		CreatedByName:      d.CreatedByName,
		UpdatedBy:          d.UpdatedByID,
		UpdatedByName:      d.UpdatedByName,
	}

	if d.CargoType != nil {
		detail.CargoType = &d.CargoType.ID
		detail.CargoTypeName = &d.CargoType.Name
	}

	for i, s := range d.Services {
		detail.Services[i] = s.ID
		detail.ServicesData[i] = ServiceData{
			ID:          s.ID,
			Name:        s.Name,
			Code:        s.Code,
			Description: s.Description,
			Active:      s.Active,
		}
	}

	return detail
}
