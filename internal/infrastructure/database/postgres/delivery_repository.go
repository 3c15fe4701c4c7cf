package postgres

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"delivery-tracker/internal/domain/catalog"
	"delivery-tracker/internal/domain/delivery"
	"delivery-tracker/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DeliveryRepository struct {
	db *DB
}

func NewDeliveryRepository(db *DB) *DeliveryRepository {
	return &DeliveryRepository{db: db}
}

var deliveryOrderings = map[string]string{
	"number":         "number",
	"departure_time": "departure_time",
	"arrival_time":   "arrival_time",
	"distance":       "distance",
	"created_at":     "created_at",
	"updated_at":     "updated_at",
}

func (r *DeliveryRepository) Create(ctx context.Context, w *delivery.WriteModel, actorID uuid.UUID) (*delivery.Delivery, error) {
	now := time.Now()
	row := &models.DeliveryModel{
		Number:           w.Number,
		TransportModelID: w.TransportModelID,
		PackagingID:      w.PackagingID,
		StatusID:         w.StatusID,
		CargoTypeID:      w.CargoTypeID,
		DepartureTime:    w.DepartureTime,
		ArrivalTime:      w.ArrivalTime,
		Distance:         w.Distance,
		Condition:        string(w.Condition),
		Notes:            w.Notes,
		MediaFile:        w.MediaFile,
		CreatedAt:        now,
		UpdatedAt:        now,
		CreatedByID:      &actorID,
		UpdatedByID:      &actorID,
	}

	err := r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(row).Error; err != nil {
			return err
		}
		if len(w.ServiceIDs) > 0 {
			services, err := loadServices(tx, w.ServiceIDs)
			if err != nil {
				return err
			}
			if err := tx.Model(row).Association("Services").Append(services); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, catalog.ErrEntryNotFound) {
			return nil, err
		}
		if isDuplicateKeyErr(err) {
			return nil, delivery.ErrNumberConflict
		}
		return nil, fmt.Errorf("failed to create delivery: %w", err)
	}

	return r.GetByID(ctx, row.ID)
}

func (r *DeliveryRepository) GetByID(ctx context.Context, id uint) (*delivery.Delivery, error) {
	var row models.DeliveryModel
	err := r.db.DB.WithContext(ctx).
		Preload("TransportModel").
		Preload("Packaging").
		Preload("Status").
		Preload("CargoType").
		Preload("Services").
		Preload("CreatedBy").
		Preload("UpdatedBy").
		Where("id = ?", id).
		First(&row).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, delivery.ErrDeliveryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get delivery: %w", err)
	}

	return toDeliveryEntity(&row), nil
}

// Update applies a partial update. The field update and the service
// association replace run in one transaction so they commit together.
func (r *DeliveryRepository) Update(ctx context.Context, id uint, patch *delivery.Patch, actorID uuid.UUID) (*delivery.Delivery, error) {
	changes := map[string]interface{}{
		"updated_by_id": actorID,
		"updated_at":    time.Now(),
	}
	if patch.Number != nil {
		changes["number"] = *patch.Number
	}
	if patch.TransportModelID != nil {
		changes["transport_model_id"] = *patch.TransportModelID
	}
	if patch.PackagingID != nil {
		changes["packaging_id"] = *patch.PackagingID
	}
	if patch.StatusID != nil {
		changes["status_id"] = *patch.StatusID
	}
	if patch.CargoTypeID != nil {
		changes["cargo_type_id"] = *patch.CargoTypeID
	}
	if patch.DepartureTime != nil {
		changes["departure_time"] = *patch.DepartureTime
	}
	if patch.ArrivalTime != nil {
		changes["arrival_time"] = *patch.ArrivalTime
	}
	if patch.Distance != nil {
		changes["distance"] = *patch.Distance
	}
	if patch.Condition != nil {
		changes["condition"] = string(*patch.Condition)
	}
	if patch.Notes != nil {
		changes["notes"] = *patch.Notes
	}
	if patch.MediaFile != nil {
		changes["media_file"] = *patch.MediaFile
	}

	err := r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.DeliveryModel{}).Where("id = ?", id).Updates(changes)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return delivery.ErrDeliveryNotFound
		}

		if patch.Services != nil {
			assoc := tx.Model(&models.DeliveryModel{ID: id}).Association("Services")
			if len(*patch.Services) == 0 {
				// Field present but empty clears the whole set.
				if err := assoc.Clear(); err != nil {
					return err
				}
			} else {
				services, err := loadServices(tx, *patch.Services)
				if err != nil {
					return err
				}
				if err := assoc.Replace(services); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, delivery.ErrDeliveryNotFound) || errors.Is(err, catalog.ErrEntryNotFound) {
			return nil, err
		}
		if isDuplicateKeyErr(err) {
			return nil, delivery.ErrNumberConflict
		}
		return nil, fmt.Errorf("failed to update delivery: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *DeliveryRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM delivery_services WHERE delivery_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.DeliveryModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return delivery.ErrDeliveryNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, delivery.ErrDeliveryNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete delivery: %w", err)
	}
	return nil
}

func (r *DeliveryRepository) List(ctx context.Context, filter *delivery.Filter) ([]*delivery.Delivery, error) {
	q := r.db.DB.WithContext(ctx).Model(&models.DeliveryModel{}).
		Preload("TransportModel").
		Preload("Packaging").
		Preload("Status").
		Preload("CargoType").
		Preload("Services").
		Preload("CreatedBy").
		Preload("UpdatedBy")

	if filter.TransportModelID != nil {
		q = q.Where("deliveries.transport_model_id = ?", *filter.TransportModelID)
	}
	if filter.StatusID != nil {
		q = q.Where("deliveries.status_id = ?", *filter.StatusID)
	}
	if filter.PackagingID != nil {
		q = q.Where("deliveries.packaging_id = ?", *filter.PackagingID)
	}
	if filter.CargoTypeID != nil {
		q = q.Where("deliveries.cargo_type_id = ?", *filter.CargoTypeID)
	}
	if filter.Condition != nil {
		q = q.Where("deliveries.condition = ?", string(*filter.Condition))
	}
	if filter.MinDistance != nil {
		q = q.Where("deliveries.distance >= ?", *filter.MinDistance)
	}
	if filter.MaxDistance != nil {
		q = q.Where("deliveries.distance <= ?", *filter.MaxDistance)
	}
	if len(filter.ServiceIDs) > 0 {
		// Any-of membership; DISTINCT keeps a delivery matched through
		// several services from appearing more than once.
		q = q.Joins("JOIN delivery_services ON delivery_services.delivery_id = deliveries.id").
			Where("delivery_services.service_id IN ?", filter.ServiceIDs).
			Distinct("deliveries.*")
	}

	switch filter.TimeFilter {
	case "today":
		now := time.Now()
		dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		q = q.Where("deliveries.departure_time >= ?", dayStart)
	case "week":
		q = q.Where("deliveries.departure_time >= ?", time.Now().AddDate(0, 0, -7))
	}

	if filter.Search != "" {
		search := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where("LOWER(deliveries.number) LIKE ? OR LOWER(deliveries.notes) LIKE ?", search, search)
	}

	order, err := deliveryOrderClause(filter.Ordering)
	if err != nil {
		return nil, err
	}

	var rows []models.DeliveryModel
	if err := q.Order(order).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list deliveries: %w", err)
	}

	deliveries := make([]*delivery.Delivery, len(rows))
	for i := range rows {
		deliveries[i] = toDeliveryEntity(&rows[i])
	}
	return deliveries, nil
}

func (r *DeliveryRepository) SetStatus(ctx context.Context, id uint, statusID uint, actorID uuid.UUID) (*delivery.Delivery, error) {
	result := r.db.DB.WithContext(ctx).
		Model(&models.DeliveryModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status_id":     statusID,
			"updated_by_id": actorID,
			"updated_at":    time.Now(),
		})

	if result.Error != nil {
		return nil, fmt.Errorf("failed to update delivery status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, delivery.ErrDeliveryNotFound
	}

	return r.GetByID(ctx, id)
}

// Statistics aggregates over the whole table. The "completed" bucket is the
// set of statuses whose name matches Проведено case-insensitively; the match
// runs in Go because sqlite's LOWER only folds ASCII.
func (r *DeliveryRepository) Statistics(ctx context.Context) (*delivery.Statistics, error) {
	stats := &delivery.Statistics{}

	if err := r.db.DB.WithContext(ctx).Model(&models.DeliveryModel{}).
		Count(&stats.TotalDeliveries).Error; err != nil {
		return nil, fmt.Errorf("failed to count deliveries: %w", err)
	}

	completedIDs, err := r.completedStatusIDs(ctx)
	if err != nil {
		return nil, err
	}
	if len(completedIDs) > 0 {
		if err := r.db.DB.WithContext(ctx).Model(&models.DeliveryModel{}).
			Where("status_id IN ?", completedIDs).
			Count(&stats.CompletedDeliveries).Error; err != nil {
			return nil, fmt.Errorf("failed to count completed deliveries: %w", err)
		}
	}
	stats.PendingDeliveries = stats.TotalDeliveries - stats.CompletedDeliveries

	var avg float64
	if err := r.db.DB.WithContext(ctx).Model(&models.DeliveryModel{}).
		Select("COALESCE(AVG(distance), 0)").
		Scan(&avg).Error; err != nil {
		return nil, fmt.Errorf("failed to average distance: %w", err)
	}
	stats.AvgDistance = math.Round(avg*100) / 100

	return stats, nil
}

func (r *DeliveryRepository) completedStatusIDs(ctx context.Context) ([]uint, error) {
	var rows []models.CatalogFields
	if err := r.db.DB.WithContext(ctx).
		Table(models.DeliveryStatusModel{}.TableName()).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load delivery statuses: %w", err)
	}

	var ids []uint
	for i := range rows {
		if strings.EqualFold(rows[i].Name, "Проведено") {
			ids = append(ids, rows[i].ID)
		}
	}
	return ids, nil
}

// loadServices resolves service ids to rows, failing when any id is unknown.
func loadServices(tx *gorm.DB, ids []uint) ([]models.ServiceModel, error) {
	if len(ids) == 0 {
		return []models.ServiceModel{}, nil
	}

	var services []models.ServiceModel
	if err := tx.Where("id IN ?", ids).Find(&services).Error; err != nil {
		return nil, err
	}
	if len(services) != len(uniqueIDs(ids)) {
		return nil, catalog.ErrEntryNotFound
	}
	return services, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func deliveryOrderClause(ordering string) (string, error) {
	if ordering == "" {
		return "departure_time DESC", nil
	}

	field := ordering
	dir := "ASC"
	if strings.HasPrefix(ordering, "-") {
		field = ordering[1:]
		dir = "DESC"
	}

	col, ok := deliveryOrderings[field]
	if !ok {
		return "", delivery.ErrInvalidOrdering
	}
	return "deliveries." + col + " " + dir, nil
}

func toDeliveryEntity(m *models.DeliveryModel) *delivery.Delivery {
	d := &delivery.Delivery{
		ID:            m.ID,
		Number:        m.Number,
		DepartureTime: m.DepartureTime,
		ArrivalTime:   m.ArrivalTime,
		Distance:      m.Distance,
		Condition:     delivery.Condition(m.Condition),
		Notes:         m.Notes,
		MediaFile:     m.MediaFile,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
		CreatedByID:   m.CreatedByID,
		UpdatedByID:   m.UpdatedByID,
	}

	if m.TransportModel != nil {
		d.TransportModel = *toCatalogEntry(&m.TransportModel.CatalogFields)
	} else {
		d.TransportModel = catalog.Entry{ID: m.TransportModelID}
	}
	if m.Packaging != nil {
		d.Packaging = *toCatalogEntry(&m.Packaging.CatalogFields)
	} else {
		d.Packaging = catalog.Entry{ID: m.PackagingID}
	}
	if m.Status != nil {
		d.Status = *toCatalogEntry(&m.Status.CatalogFields)
	} else {
		d.Status = catalog.Entry{ID: m.StatusID}
	}
	if m.CargoType != nil {
		d.CargoType = toCatalogEntry(&m.CargoType.CatalogFields)
	}

	d.Services = make([]catalog.Entry, len(m.Services))
	for i := range m.Services {
		d.Services[i] = *toCatalogEntry(&m.Services[i].CatalogFields)
	}

	if m.CreatedBy != nil {
		d.CreatedByName = &m.CreatedBy.Username
	}
	if m.UpdatedBy != nil {
		d.UpdatedByName = &m.UpdatedBy.Username
	}

	return d
}
