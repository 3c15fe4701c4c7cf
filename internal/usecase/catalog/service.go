package catalog

import (
	"context"

	domainCatalog "delivery-tracker/internal/domain/catalog"
	"delivery-tracker/internal/logger"
	appErrors "delivery-tracker/pkg/errors"
	"delivery-tracker/pkg/utils"

	"go.uber.org/zap"
)

// Service implements the use cases shared by all five reference catalogs; it
// is instantiated once per catalog kind.
type Service struct {
	repo domainCatalog.Repository
	kind domainCatalog.Kind
}

func NewService(repo domainCatalog.Repository, kind domainCatalog.Kind) *Service {
	return &Service{repo: repo, kind: kind}
}

func (s *Service) Kind() domainCatalog.Kind {
	return s.kind
}

func (s *Service) List(ctx context.Context, req *ListEntriesRequest, privileged bool) ([]*EntryResponse, error) {
	filter := &domainCatalog.Filter{
		Active:   req.Active,
		Search:   req.Search,
		Ordering: req.Ordering,
	}

	entries, err := s.repo.List(ctx, filter, privileged)
	if err != nil {
		return nil, err
	}

	out := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		out[i] = ToEntryResponse(e)
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id uint, privileged bool) (*EntryResponse, error) {
	entry, err := s.repo.GetByID(ctx, id, privileged)
	if err != nil {
		return nil, err
	}
	return ToEntryResponse(entry), nil
}

func (s *Service) Create(ctx context.Context, req *CreateEntryRequest) (*EntryResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	entry := &domainCatalog.Entry{
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		Active:      active,
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}

	logger.Info("Catalog entry created",
		zap.String("catalog", string(s.kind)),
		zap.Uint("entry_id", entry.ID),
		zap.String("code", entry.Code),
	)

	return ToEntryResponse(entry), nil
}

func (s *Service) Update(ctx context.Context, id uint, req *UpdateEntryRequest) (*EntryResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	entry, err := s.repo.GetByID(ctx, id, true)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		entry.Name = *req.Name
	}
	if req.Code != nil {
		entry.Code = *req.Code
	}
	if req.Description != nil {
		entry.Description = req.Description
	}
	if req.Active != nil {
		entry.Active = *req.Active
	}

	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, err
	}

	logger.Info("Catalog entry updated",
		zap.String("catalog", string(s.kind)),
		zap.Uint("entry_id", entry.ID),
	)

	return ToEntryResponse(entry), nil
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info("Catalog entry deleted",
		zap.String("catalog", string(s.kind)),
		zap.Uint("entry_id", id),
	)
	return nil
}
