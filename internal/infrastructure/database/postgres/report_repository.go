package postgres

import (
	"context"
	"fmt"
	"sort"
	"time"

	"delivery-tracker/internal/domain/report"
	"delivery-tracker/internal/infrastructure/database/postgres/models"

	"gorm.io/gorm"
)

type ReportRepository struct {
	db *DB
}

func NewReportRepository(db *DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Generate computes all report sections independently over the deliveries
// departing within [start, end].
func (r *ReportRepository) Generate(ctx context.Context, start, end time.Time, granularity report.Granularity) (*report.Report, error) {
	rep := &report.Report{
		StatusReport:    []report.StatusCount{},
		TransportReport: []report.TransportStat{},
		ServiceReport:   []report.ServiceCount{},
		DateReport:      []report.DateCount{},
	}

	base := func() *gorm.DB {
		return r.db.DB.WithContext(ctx).Model(&models.DeliveryModel{}).
			Where("deliveries.departure_time >= ? AND deliveries.departure_time <= ?", start, end)
	}

	err := base().
		Joins("JOIN delivery_statuses ON delivery_statuses.id = deliveries.status_id").
		Select("delivery_statuses.name AS status_name, COUNT(deliveries.id) AS count").
		Group("delivery_statuses.name").
		Order("count DESC").
		Scan(&rep.StatusReport).Error
	if err != nil {
		return nil, fmt.Errorf("failed to build status report: %w", err)
	}

	err = base().
		Joins("JOIN transport_models ON transport_models.id = deliveries.transport_model_id").
		Select("transport_models.name AS transport_model_name, " +
			"COUNT(deliveries.id) AS count, " +
			"COALESCE(SUM(deliveries.distance), 0) AS total_distance, " +
			"COALESCE(AVG(deliveries.distance), 0) AS avg_distance").
		Group("transport_models.name").
		Order("count DESC").
		Scan(&rep.TransportReport).Error
	if err != nil {
		return nil, fmt.Errorf("failed to build transport report: %w", err)
	}

	// Join-based fan-out: a delivery with N services contributes to N groups.
	err = base().
		Joins("JOIN delivery_services ON delivery_services.delivery_id = deliveries.id").
		Joins("JOIN services ON services.id = delivery_services.service_id").
		Select("services.name AS service_name, COUNT(deliveries.id) AS count").
		Group("services.name").
		Order("count DESC").
		Scan(&rep.ServiceReport).Error
	if err != nil {
		return nil, fmt.Errorf("failed to build service report: %w", err)
	}

	dateReport, err := r.dateReport(base(), granularity)
	if err != nil {
		return nil, err
	}
	rep.DateReport = dateReport

	err = base().
		Select("COUNT(deliveries.id) AS total, " +
			"COALESCE(SUM(deliveries.distance), 0) AS total_distance, " +
			"COALESCE(AVG(deliveries.distance), 0) AS avg_distance, " +
			"COALESCE(MIN(deliveries.distance), 0) AS min_distance, " +
			"COALESCE(MAX(deliveries.distance), 0) AS max_distance").
		Scan(&rep.Summary).Error
	if err != nil {
		return nil, fmt.Errorf("failed to build report summary: %w", err)
	}

	return rep, nil
}

// dateReport buckets departure times in Go. DATE_TRUNC would push this into
// the database but is postgres-only; the row volume here is one timestamp per
// delivery in range.
func (r *ReportRepository) dateReport(q *gorm.DB, granularity report.Granularity) ([]report.DateCount, error) {
	var times []time.Time
	if err := q.Pluck("deliveries.departure_time", &times).Error; err != nil {
		return nil, fmt.Errorf("failed to load departure times: %w", err)
	}

	counts := make(map[time.Time]int64)
	for _, t := range times {
		counts[report.TruncateBucket(granularity, t)]++
	}

	buckets := make([]time.Time, 0, len(counts))
	for b := range counts {
		buckets = append(buckets, b)
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Before(buckets[j]) })

	out := make([]report.DateCount, len(buckets))
	for i, b := range buckets {
		out[i] = report.DateCount{Bucket: report.BucketLabel(b), Count: counts[b]}
	}
	return out, nil
}
