package delivery

import (
	"context"
	"errors"
	"strconv"
	"strings"

	domainCatalog "delivery-tracker/internal/domain/catalog"
	domainDelivery "delivery-tracker/internal/domain/delivery"
	"delivery-tracker/internal/logger"
	appErrors "delivery-tracker/pkg/errors"
	"delivery-tracker/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// completedNames are the legacy display names accepted as "completed" when
// the status catalog has no entry with code "completed". The fallback exists
// because historical data was seeded without codes; it is matched exactly,
// case-insensitively.
var completedNames = []string{"Проведено", "Выполнено"}

// Service implements delivery use cases.
type Service struct {
	deliveryRepo domainDelivery.Repository
	statusRepo   domainCatalog.Repository
}

func NewService(deliveryRepo domainDelivery.Repository, statusRepo domainCatalog.Repository) *Service {
	return &Service{
		deliveryRepo: deliveryRepo,
		statusRepo:   statusRepo,
	}
}

func (s *Service) List(ctx context.Context, req *ListDeliveriesRequest) ([]*DeliveryListItem, error) {
	serviceIDs, err := parseServiceIDs(req.Services)
	if err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid services filter", err)
	}

	filter := &domainDelivery.Filter{
		TransportModelID: req.TransportModel,
		StatusID:         req.Status,
		PackagingID:      req.Packaging,
		CargoTypeID:      req.CargoType,
		MinDistance:      req.MinDistance,
		MaxDistance:      req.MaxDistance,
		ServiceIDs:       serviceIDs,
		TimeFilter:       req.TimeFilter,
		Search:           req.Search,
		Ordering:         req.Ordering,
	}
	if req.Condition != nil {
		cond := domainDelivery.Condition(*req.Condition)
		filter.Condition = &cond
	}

	deliveries, err := s.deliveryRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]*DeliveryListItem, len(deliveries))
	for i, d := range deliveries {
		out[i] = ToDeliveryListItem(d)
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*DeliveryDetail, error) {
	d, err := s.deliveryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToDeliveryDetail(d), nil
}

func (s *Service) Create(ctx context.Context, actorID uuid.UUID, req *CreateDeliveryRequest) (*DeliveryDetail, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}
	if !req.ArrivalTime.After(req.DepartureTime) {
		return nil, domainDelivery.ErrInvalidTimeRange
	}

	condition := domainDelivery.ConditionOperational
	if req.Condition != "" {
		condition = domainDelivery.Condition(req.Condition)
	}

	w := &domainDelivery.WriteModel{
		Number:           req.Number,
		TransportModelID: req.TransportModel,
		PackagingID:      req.Packaging,
		StatusID:         req.Status,
		CargoTypeID:      req.CargoType,
		DepartureTime:    req.DepartureTime,
		ArrivalTime:      req.ArrivalTime,
		Distance:         req.Distance,
		Condition:        condition,
		Notes:            req.Notes,
		MediaFile:        req.MediaFile,
		ServiceIDs:       req.Services,
	}

	created, err := s.deliveryRepo.Create(ctx, w, actorID)
	if err != nil {
		return nil, err
	}

	logger.Info("Delivery created",
		zap.Uint("delivery_id", created.ID),
		zap.String("number", created.Number),
		zap.String("created_by", actorID.String()),
	)

	return ToDeliveryDetail(created), nil
}

func (s *Service) Update(ctx context.Context, id uint, actorID uuid.UUID, req *UpdateDeliveryRequest) (*DeliveryDetail, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	existing, err := s.deliveryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Validate the time range that would result from the patch, not just the
	// fields present in it.
	departure := existing.DepartureTime
	arrival := existing.ArrivalTime
	if req.DepartureTime != nil {
		departure = *req.DepartureTime
	}
	if req.ArrivalTime != nil {
		arrival = *req.ArrivalTime
	}
	if !arrival.After(departure) {
		return nil, domainDelivery.ErrInvalidTimeRange
	}

	patch := &domainDelivery.Patch{
		Number:           req.Number,
		TransportModelID: req.TransportModel,
		PackagingID:      req.Packaging,
		StatusID:         req.Status,
		CargoTypeID:      req.CargoType,
		DepartureTime:    req.DepartureTime,
		ArrivalTime:      req.ArrivalTime,
		Distance:         req.Distance,
		Notes:            req.Notes,
		MediaFile:        req.MediaFile,
		Services:         req.Services,
	}
	if req.Condition != nil {
		cond := domainDelivery.Condition(*req.Condition)
		patch.Condition = &cond
	}

	updated, err := s.deliveryRepo.Update(ctx, id, patch, actorID)
	if err != nil {
		return nil, err
	}

	logger.Info("Delivery updated",
		zap.Uint("delivery_id", id),
		zap.String("updated_by", actorID.String()),
	)

	return ToDeliveryDetail(updated), nil
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	if err := s.deliveryRepo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info("Delivery deleted", zap.Uint("delivery_id", id))
	return nil
}

// MarkCompleted resolves the completed status from the catalog and applies it.
// Nothing is mutated when no completed-equivalent entry exists.
func (s *Service) MarkCompleted(ctx context.Context, id uint, actorID uuid.UUID) (*DeliveryDetail, error) {
	status, err := s.resolveCompletedStatus(ctx)
	if err != nil {
		return nil, err
	}

	updated, err := s.deliveryRepo.SetStatus(ctx, id, status.ID, actorID)
	if err != nil {
		return nil, err
	}

	logger.Info("Delivery marked completed",
		zap.Uint("delivery_id", id),
		zap.Uint("status_id", status.ID),
		zap.String("updated_by", actorID.String()),
	)

	return ToDeliveryDetail(updated), nil
}

func (s *Service) Stats(ctx context.Context) (*StatsResponse, error) {
	stats, err := s.deliveryRepo.Statistics(ctx)
	if err != nil {
		return nil, err
	}

	return &StatsResponse{
		TotalDeliveries:     stats.TotalDeliveries,
		CompletedDeliveries: stats.CompletedDeliveries,
		PendingDeliveries:   stats.PendingDeliveries,
		AvgDistance:         stats.AvgDistance,
	}, nil
}

func (s *Service) resolveCompletedStatus(ctx context.Context) (*domainCatalog.Entry, error) {
	status, err := s.statusRepo.GetByCode(ctx, "completed")
	if err == nil {
		return status, nil
	}
	if !errors.Is(err, domainCatalog.ErrEntryNotFound) {
		return nil, err
	}

	// Name matching runs in Go: the names are Cyrillic and SQL LOWER is not
	// reliable for them on every backend.
	entries, err := s.statusRepo.List(ctx, &domainCatalog.Filter{}, true)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		for _, name := range completedNames {
			if strings.EqualFold(e.Name, name) {
				return e, nil
			}
		}
	}

	return nil, domainDelivery.ErrCompletedStatusAbsent
}

func parseServiceIDs(csv string) ([]uint, error) {
	if csv == "" {
		return nil, nil
	}

	parts := strings.Split(csv, ",")
	ids := make([]uint, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return nil, err
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}
