package postgres

import (
	"testing"

	"delivery-tracker/internal/infrastructure/database/postgres/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// openTestDB opens a fresh in-memory sqlite database with the full schema.
// MaxOpenConns is pinned to 1 because every new sqlite :memory: connection
// would otherwise see its own empty database.
func openTestDB(t *testing.T) *DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := gdb.AutoMigrate(
		&models.UserModel{},
		&models.TransportModelModel{},
		&models.PackagingTypeModel{},
		&models.ServiceModel{},
		&models.DeliveryStatusModel{},
		&models.CargoTypeModel{},
		&models.DeliveryModel{},
	); err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}

	db := &DB{DB: gdb}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func mustSeed(t *testing.T, db *DB, value interface{}) {
	t.Helper()
	if err := db.DB.Create(value).Error; err != nil {
		t.Fatalf("failed to seed %T: %v", value, err)
	}
}

// baseCatalogs holds the minimal reference rows a delivery needs.
type baseCatalogs struct {
	Transport models.TransportModelModel
	Packaging models.PackagingTypeModel
	Status    models.DeliveryStatusModel
	Cargo     models.CargoTypeModel
	ServiceA  models.ServiceModel
	ServiceB  models.ServiceModel
}

func seedBaseCatalogs(t *testing.T, db *DB) *baseCatalogs {
	t.Helper()

	b := &baseCatalogs{
		Transport: models.TransportModelModel{CatalogFields: models.CatalogFields{Name: "КамАЗ-5490", Code: "kamaz-5490", Active: true}},
		Packaging: models.PackagingTypeModel{CatalogFields: models.CatalogFields{Name: "Паллет", Code: "pallet", Active: true}},
		Status:    models.DeliveryStatusModel{CatalogFields: models.CatalogFields{Name: "В пути", Code: "in_transit", Active: true}},
		Cargo:     models.CargoTypeModel{CatalogFields: models.CatalogFields{Name: "Продукты", Code: "groceries", Active: true}},
		ServiceA:  models.ServiceModel{CatalogFields: models.CatalogFields{Name: "Погрузка", Code: "loading", Active: true}},
		ServiceB:  models.ServiceModel{CatalogFields: models.CatalogFields{Name: "Страхование", Code: "insurance", Active: true}},
	}

	mustSeed(t, db, &b.Transport)
	mustSeed(t, db, &b.Packaging)
	mustSeed(t, db, &b.Status)
	mustSeed(t, db, &b.Cargo)
	mustSeed(t, db, &b.ServiceA)
	mustSeed(t, db, &b.ServiceB)
	return b
}

func strPtr(s string) *string { return &s }

func uintPtr(v uint) *uint { return &v }

func floatPtr(v float64) *float64 { return &v }
