package models

import (
	"time"

	"github.com/google/uuid"
)

// DeliveryModel represents the database model for deliveries. Hard catalog
// references (transport model, packaging, status) restrict deletion of the
// referenced row; the cargo type reference is nulled instead.
type DeliveryModel struct {
	ID     uint   `gorm:"primaryKey"`
	Number string `gorm:"size:100;not null;uniqueIndex"`

	TransportModelID uint                 `gorm:"not null;index"`
	TransportModel   *TransportModelModel `gorm:"foreignKey:TransportModelID;constraint:OnDelete:RESTRICT"`
	PackagingID      uint                 `gorm:"not null;index"`
	Packaging        *PackagingTypeModel  `gorm:"foreignKey:PackagingID;constraint:OnDelete:RESTRICT"`
	StatusID         uint                 `gorm:"not null;index"`
	Status           *DeliveryStatusModel `gorm:"foreignKey:StatusID;constraint:OnDelete:RESTRICT"`
	CargoTypeID      *uint                `gorm:"index"`
	CargoType        *CargoTypeModel      `gorm:"foreignKey:CargoTypeID;constraint:OnDelete:SET NULL"`

	DepartureTime time.Time `gorm:"not null;index"`
	ArrivalTime   time.Time `gorm:"not null"`
	Distance      float64   `gorm:"type:decimal(10,2);not null"`
	Condition     string    `gorm:"size:20;not null;default:'operational'"`

	Services []ServiceModel `gorm:"many2many:delivery_services;joinForeignKey:DeliveryID;joinReferences:ServiceID"`

	Notes     *string `gorm:"type:text"`
	MediaFile *string `gorm:"size:255"`

	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`

	CreatedByID *uuid.UUID `gorm:"type:uuid"`
	CreatedBy   *UserModel `gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL"`
	UpdatedByID *uuid.UUID `gorm:"type:uuid"`
	UpdatedBy   *UserModel `gorm:"foreignKey:UpdatedByID;constraint:OnDelete:SET NULL"`
}

func (DeliveryModel) TableName() string {
	return "deliveries"
}
