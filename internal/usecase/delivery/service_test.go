package delivery

import (
	"context"
	"errors"
	"os"
	"strconv"
	"testing"
	"time"

	domainDelivery "delivery-tracker/internal/domain/delivery"
	"delivery-tracker/internal/infrastructure/database/postgres"
	"delivery-tracker/internal/infrastructure/database/postgres/models"
	"delivery-tracker/internal/logger"
	appErrors "delivery-tracker/pkg/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	logger.Logger = zap.NewNop()
	os.Exit(m.Run())
}

type fixture struct {
	db        *postgres.DB
	service   *Service
	transport models.TransportModelModel
	packaging models.PackagingTypeModel
	status    models.DeliveryStatusModel
	serviceA  models.ServiceModel
	serviceB  models.ServiceModel
}

func newFixture(t *testing.T) *fixture {
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

	db := &postgres.DB{DB: gdb}
	if err := db.Migrate(); err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	f := &fixture{
		db:        db,
		transport: models.TransportModelModel{CatalogFields: models.CatalogFields{Name: "КамАЗ-5490", Code: "kamaz-5490", Active: true}},
		packaging: models.PackagingTypeModel{CatalogFields: models.CatalogFields{Name: "Паллет", Code: "pallet", Active: true}},
		status:    models.DeliveryStatusModel{CatalogFields: models.CatalogFields{Name: "В пути", Code: "in_transit", Active: true}},
		serviceA:  models.ServiceModel{CatalogFields: models.CatalogFields{Name: "Погрузка", Code: "loading", Active: true}},
		serviceB:  models.ServiceModel{CatalogFields: models.CatalogFields{Name: "Страхование", Code: "insurance", Active: true}},
	}
	for _, row := range []interface{}{&f.transport, &f.packaging, &f.status, &f.serviceA, &f.serviceB} {
		if err := gdb.Create(row).Error; err != nil {
			t.Fatalf("failed to seed %T: %v", row, err)
		}
	}

	f.service = NewService(postgres.NewDeliveryRepository(db), postgres.NewDeliveryStatusRepository(db))
	return f
}

func (f *fixture) addStatus(t *testing.T, name, code string) models.DeliveryStatusModel {
	t.Helper()
	row := models.DeliveryStatusModel{CatalogFields: models.CatalogFields{Name: name, Code: code, Active: true}}
	if err := f.db.DB.Create(&row).Error; err != nil {
		t.Fatalf("failed to seed status %s: %v", code, err)
	}
	return row
}

func (f *fixture) createDelivery(t *testing.T, number string) *DeliveryDetail {
	t.Helper()
	departure := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	detail, err := f.service.Create(context.Background(), uuid.New(), &CreateDeliveryRequest{
		Number:         number,
		TransportModel: f.transport.ID,
		Packaging:      f.packaging.ID,
		Status:         f.status.ID,
		DepartureTime:  departure,
		ArrivalTime:    departure.Add(3 * time.Hour),
		Distance:       250,
		Services:       []uint{f.serviceA.ID},
	})
	if err != nil {
		t.Fatalf("failed to create delivery %s: %v", number, err)
	}
	return detail
}

func TestCreateDefaultsAndProjection(t *testing.T) {
	f := newFixture(t)

	detail := f.createDelivery(t, "DL-001")
	if detail.Condition != string(domainDelivery.ConditionOperational) {
		t.Fatalf("condition = %q, want operational by default", detail.Condition)
	}
	if detail.TravelTime != 3 {
		t.Fatalf("travel time = %v, want 3", detail.TravelTime)
	}
	if detail.StatusName != "В пути" || detail.TransportModelName != "КамАЗ-5490" {
		t.Fatalf("projection names not resolved: %+v", detail)
	}
	if len(detail.Services) != 1 || len(detail.ServicesData) != 1 || detail.ServicesData[0].Code != "loading" {
		t.Fatalf("services projection = %+v / %+v", detail.Services, detail.ServicesData)
	}
}

func TestCreateRejectsInvalidTimeRange(t *testing.T) {
	f := newFixture(t)
	departure := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	for _, arrival := range []time.Time{departure, departure.Add(-time.Hour)} {
		_, err := f.service.Create(context.Background(), uuid.New(), &CreateDeliveryRequest{
			Number:         "DL-BAD",
			TransportModel: f.transport.ID,
			Packaging:      f.packaging.ID,
			Status:         f.status.ID,
			DepartureTime:  departure,
			ArrivalTime:    arrival,
		})
		if !errors.Is(err, domainDelivery.ErrInvalidTimeRange) {
			t.Fatalf("Create() with arrival %v error = %v, want ErrInvalidTimeRange", arrival, err)
		}
	}

	items, err := f.service.List(context.Background(), &ListDeliveriesRequest{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("rejected creates persisted %d deliveries", len(items))
	}
}

func TestCreateRejectsUnknownCondition(t *testing.T) {
	f := newFixture(t)
	departure := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	_, err := f.service.Create(context.Background(), uuid.New(), &CreateDeliveryRequest{
		Number:         "DL-BAD",
		TransportModel: f.transport.ID,
		Packaging:      f.packaging.ID,
		Status:         f.status.ID,
		DepartureTime:  departure,
		ArrivalTime:    departure.Add(time.Hour),
		Condition:      "broken",
	})

	var appErr *appErrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != "VALIDATION_ERROR" {
		t.Fatalf("Create() with unknown condition error = %v, want a validation error", err)
	}
}

func TestUpdateValidatesMergedTimeRange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	detail := f.createDelivery(t, "DL-010")

	// Moving only the departure past the stored arrival must fail.
	lateDeparture := detail.ArrivalTime.Add(time.Hour)
	_, err := f.service.Update(ctx, detail.ID, uuid.New(), &UpdateDeliveryRequest{DepartureTime: &lateDeparture})
	if !errors.Is(err, domainDelivery.ErrInvalidTimeRange) {
		t.Fatalf("Update() error = %v, want ErrInvalidTimeRange", err)
	}

	// Moving both together is fine.
	newArrival := lateDeparture.Add(2 * time.Hour)
	updated, err := f.service.Update(ctx, detail.ID, uuid.New(), &UpdateDeliveryRequest{
		DepartureTime: &lateDeparture,
		ArrivalTime:   &newArrival,
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.TravelTime != 2 {
		t.Fatalf("travel time after update = %v, want 2", updated.TravelTime)
	}
}

func TestUpdateServicesSemantics(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	detail := f.createDelivery(t, "DL-011")
	actor := uuid.New()

	// Absent field: set untouched.
	notes := "padded load"
	updated, err := f.service.Update(ctx, detail.ID, actor, &UpdateDeliveryRequest{Notes: &notes})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if len(updated.Services) != 1 {
		t.Fatalf("absent services field changed the set: %+v", updated.Services)
	}

	// Present list: full replace.
	services := []uint{f.serviceB.ID}
	updated, err = f.service.Update(ctx, detail.ID, actor, &UpdateDeliveryRequest{Services: &services})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if len(updated.Services) != 1 || updated.Services[0] != f.serviceB.ID {
		t.Fatalf("service replace = %+v, want only serviceB", updated.Services)
	}

	// Present empty list: clear.
	empty := []uint{}
	updated, err = f.service.Update(ctx, detail.ID, actor, &UpdateDeliveryRequest{Services: &empty})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if len(updated.Services) != 0 {
		t.Fatalf("empty services list left %d attached", len(updated.Services))
	}
}

func TestMarkCompletedByCode(t *testing.T) {
	f := newFixture(t)
	done := f.addStatus(t, "Завершено", "completed")
	detail := f.createDelivery(t, "DL-020")

	updated, err := f.service.MarkCompleted(context.Background(), detail.ID, uuid.New())
	if err != nil {
		t.Fatalf("MarkCompleted() error = %v", err)
	}
	if updated.Status != done.ID {
		t.Fatalf("status after MarkCompleted() = %d, want %d", updated.Status, done.ID)
	}
}

func TestMarkCompletedFallsBackToLegacyNames(t *testing.T) {
	f := newFixture(t)
	// No entry with code "completed"; the legacy display name must still match,
	// case-insensitively.
	done := f.addStatus(t, "выполнено", "legacy-done")
	detail := f.createDelivery(t, "DL-021")

	updated, err := f.service.MarkCompleted(context.Background(), detail.ID, uuid.New())
	if err != nil {
		t.Fatalf("MarkCompleted() error = %v", err)
	}
	if updated.Status != done.ID {
		t.Fatalf("status after MarkCompleted() = %d, want the legacy-named status %d", updated.Status, done.ID)
	}
}

func TestMarkCompletedWithoutCompletedStatus(t *testing.T) {
	f := newFixture(t)
	detail := f.createDelivery(t, "DL-022")

	_, err := f.service.MarkCompleted(context.Background(), detail.ID, uuid.New())
	if !errors.Is(err, domainDelivery.ErrCompletedStatusAbsent) {
		t.Fatalf("MarkCompleted() error = %v, want ErrCompletedStatusAbsent", err)
	}

	// The delivery must be left untouched.
	got, err := f.service.Get(context.Background(), detail.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Status != f.status.ID {
		t.Fatalf("status changed to %d after a failed MarkCompleted()", got.Status)
	}
}

func TestListParsesServicesCSV(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.createDelivery(t, "DL-030")

	csv := " " + strconv.Itoa(int(f.serviceA.ID)) + ", " + strconv.Itoa(int(f.serviceB.ID)) + " "
	items, err := f.service.List(ctx, &ListDeliveriesRequest{Services: csv})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("services CSV filter = %d deliveries, want 1", len(items))
	}

	_, err = f.service.List(ctx, &ListDeliveriesRequest{Services: "1,abc"})
	var appErr *appErrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != "VALIDATION_ERROR" {
		t.Fatalf("List() with malformed services error = %v, want a validation error", err)
	}
}

func TestStats(t *testing.T) {
	f := newFixture(t)
	done := f.addStatus(t, "Проведено", "completed")
	f.createDelivery(t, "DL-040")
	detail := f.createDelivery(t, "DL-041")

	if _, err := f.service.Update(context.Background(), detail.ID, uuid.New(), &UpdateDeliveryRequest{Status: &done.ID}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	stats, err := f.service.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.TotalDeliveries != 2 || stats.CompletedDeliveries != 1 || stats.PendingDeliveries != 1 {
		t.Fatalf("Stats() = %+v, want 2 total with 1 completed", stats)
	}
	if stats.AvgDistance != 250 {
		t.Fatalf("avg distance = %v, want 250", stats.AvgDistance)
	}
}
