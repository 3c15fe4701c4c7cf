package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"delivery-tracker/internal/domain/catalog"
	"delivery-tracker/internal/infrastructure/database/postgres/models"

	"gorm.io/gorm"
)

// catalogTable describes one reference catalog table and what happens to
// delivery references when one of its rows is deleted.
type catalogTable struct {
	name string
	// delivery columns that block deletion while they reference the row
	protectColumns []string
	// delivery columns nulled when the row is deleted
	nullifyColumns []string
	// m2m join table cleared when the row is deleted
	joinTable  string
	joinColumn string
}

// CatalogRepository implements catalog.Repository once for all five catalogs;
// constructors below bind it to a concrete table.
type CatalogRepository struct {
	db    *DB
	table catalogTable
}

func NewTransportModelRepository(db *DB) *CatalogRepository {
	return &CatalogRepository{db: db, table: catalogTable{
		name:           models.TransportModelModel{}.TableName(),
		protectColumns: []string{"transport_model_id"},
	}}
}

func NewPackagingTypeRepository(db *DB) *CatalogRepository {
	return &CatalogRepository{db: db, table: catalogTable{
		name:           models.PackagingTypeModel{}.TableName(),
		protectColumns: []string{"packaging_id"},
	}}
}

func NewServiceRepository(db *DB) *CatalogRepository {
	return &CatalogRepository{db: db, table: catalogTable{
		name:       models.ServiceModel{}.TableName(),
		joinTable:  "delivery_services",
		joinColumn: "service_id",
	}}
}

func NewDeliveryStatusRepository(db *DB) *CatalogRepository {
	return &CatalogRepository{db: db, table: catalogTable{
		name:           models.DeliveryStatusModel{}.TableName(),
		protectColumns: []string{"status_id"},
	}}
}

func NewCargoTypeRepository(db *DB) *CatalogRepository {
	return &CatalogRepository{db: db, table: catalogTable{
		name:           models.CargoTypeModel{}.TableName(),
		nullifyColumns: []string{"cargo_type_id"},
	}}
}

var catalogOrderings = map[string]string{
	"name": "name",
	"code": "code",
}

func (r *CatalogRepository) List(ctx context.Context, filter *catalog.Filter, privileged bool) ([]*catalog.Entry, error) {
	q := r.db.DB.WithContext(ctx).Table(r.table.name)

	if !privileged {
		q = q.Where("active = ?", true)
	}
	if filter.Active != nil {
		q = q.Where("active = ?", *filter.Active)
	}
	if filter.Search != "" {
		// LOWER/LIKE instead of ILIKE so the same query runs on the
		// sqlite test driver.
		search := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(code) LIKE ? OR LOWER(description) LIKE ?",
			search, search, search)
	}

	order, err := catalogOrderClause(filter.Ordering)
	if err != nil {
		return nil, err
	}

	var rows []models.CatalogFields
	if err := q.Order(order).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", r.table.name, err)
	}

	entries := make([]*catalog.Entry, len(rows))
	for i := range rows {
		entries[i] = toCatalogEntry(&rows[i])
	}
	return entries, nil
}

func (r *CatalogRepository) GetByID(ctx context.Context, id uint, privileged bool) (*catalog.Entry, error) {
	q := r.db.DB.WithContext(ctx).Table(r.table.name).Where("id = ?", id)
	if !privileged {
		q = q.Where("active = ?", true)
	}

	var row models.CatalogFields
	err := q.First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, catalog.ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s entry: %w", r.table.name, err)
	}

	return toCatalogEntry(&row), nil
}

func (r *CatalogRepository) GetByCode(ctx context.Context, code string) (*catalog.Entry, error) {
	var row models.CatalogFields
	err := r.db.DB.WithContext(ctx).Table(r.table.name).Where("code = ?", code).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, catalog.ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s entry by code: %w", r.table.name, err)
	}

	return toCatalogEntry(&row), nil
}

func (r *CatalogRepository) Create(ctx context.Context, entry *catalog.Entry) error {
	row := toCatalogRow(entry)

	err := r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Table(r.table.name).Where("code = ?", entry.Code).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return catalog.ErrCodeConflict
		}
		return tx.Table(r.table.name).Create(row).Error
	})
	if err != nil {
		if errors.Is(err, catalog.ErrCodeConflict) || isDuplicateKeyErr(err) {
			return catalog.ErrCodeConflict
		}
		return fmt.Errorf("failed to create %s entry: %w", r.table.name, err)
	}

	entry.ID = row.ID
	return nil
}

func (r *CatalogRepository) Update(ctx context.Context, entry *catalog.Entry) error {
	err := r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Table(r.table.name).
			Where("code = ? AND id <> ?", entry.Code, entry.ID).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return catalog.ErrCodeConflict
		}

		result := tx.Table(r.table.name).Where("id = ?", entry.ID).Updates(map[string]interface{}{
			"name":        entry.Name,
			"code":        entry.Code,
			"description": entry.Description,
			"active":      entry.Active,
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return catalog.ErrEntryNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, catalog.ErrCodeConflict) || errors.Is(err, catalog.ErrEntryNotFound) {
			return err
		}
		if isDuplicateKeyErr(err) {
			return catalog.ErrCodeConflict
		}
		return fmt.Errorf("failed to update %s entry: %w", r.table.name, err)
	}
	return nil
}

// Delete removes a catalog row. The reference check and the delete run in one
// transaction so a concurrent delivery insert cannot slip between them.
func (r *CatalogRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, col := range r.table.protectColumns {
			var n int64
			if err := tx.Table("deliveries").Where(col+" = ?", id).Count(&n).Error; err != nil {
				return err
			}
			if n > 0 {
				return catalog.ErrEntryInUse
			}
		}

		for _, col := range r.table.nullifyColumns {
			if err := tx.Table("deliveries").Where(col+" = ?", id).
				Update(col, nil).Error; err != nil {
				return err
			}
		}

		if r.table.joinTable != "" {
			if err := tx.Exec(
				fmt.Sprintf("DELETE FROM %s WHERE %s = ?", r.table.joinTable, r.table.joinColumn),
				id,
			).Error; err != nil {
				return err
			}
		}

		result := tx.Table(r.table.name).Where("id = ?", id).Delete(&models.CatalogFields{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return catalog.ErrEntryNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, catalog.ErrEntryInUse) || errors.Is(err, catalog.ErrEntryNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete %s entry: %w", r.table.name, err)
	}
	return nil
}

func catalogOrderClause(ordering string) (string, error) {
	if ordering == "" {
		return "name ASC", nil
	}

	field := ordering
	dir := "ASC"
	if strings.HasPrefix(ordering, "-") {
		field = ordering[1:]
		dir = "DESC"
	}

	col, ok := catalogOrderings[field]
	if !ok {
		return "", catalog.ErrInvalidOrdering
	}
	return col + " " + dir, nil
}

func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

func toCatalogEntry(row *models.CatalogFields) *catalog.Entry {
	return &catalog.Entry{
		ID:          row.ID,
		Name:        row.Name,
		Code:        row.Code,
		Description: row.Description,
		Active:      row.Active,
	}
}

func toCatalogRow(e *catalog.Entry) *models.CatalogFields {
	return &models.CatalogFields{
		ID:          e.ID,
		Name:        e.Name,
		Code:        e.Code,
		Description: e.Description,
		Active:      e.Active,
	}
}
