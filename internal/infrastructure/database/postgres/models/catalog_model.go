package models

// CatalogFields holds the uniform columns shared by every reference catalog
// table. Code is the unique business key; inactive rows stay valid foreign-key
// targets for historical deliveries.
type CatalogFields struct {
	ID          uint    `gorm:"primaryKey"`
	Name        string  `gorm:"size:100;not null;index"`
	Code        string  `gorm:"size:50;not null;uniqueIndex"`
	Description *string `gorm:"type:text"`
	Active      bool    `gorm:"not null;default:true"`
}

type TransportModelModel struct {
	CatalogFields
}

func (TransportModelModel) TableName() string {
	return "transport_models"
}

type PackagingTypeModel struct {
	CatalogFields
}

func (PackagingTypeModel) TableName() string {
	return "packaging_types"
}

type ServiceModel struct {
	CatalogFields
}

func (ServiceModel) TableName() string {
	return "services"
}

type DeliveryStatusModel struct {
	CatalogFields
}

func (DeliveryStatusModel) TableName() string {
	return "delivery_statuses"
}

type CargoTypeModel struct {
	CatalogFields
}

func (CargoTypeModel) TableName() string {
	return "cargo_types"
}
