package catalog

import (
	domainCatalog "delivery-tracker/internal/domain/catalog"
)

// Request DTOs
type CreateEntryRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Code        string  `json:"code" validate:"required,max=50"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Active      *bool   `json:"active"`
}

type UpdateEntryRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=100"`
	Code        *string `json:"code" validate:"omitempty,max=50"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Active      *bool   `json:"active"`
}

type ListEntriesRequest struct {
	Active   *bool  `form:"active"`
	Search   string `form:"search"`
	Ordering string `form:"ordering"`
}

// Response DTOs
type EntryResponse struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Code        string  `json:"code"`
	Description *string `json:"description"`
	Active      bool    `json:"active"`
}

func ToEntryResponse(e *domainCatalog.Entry) *EntryResponse {
	return &EntryResponse{
		ID:          e.ID,
		Name:        e.Name,
		Code:        e.Code,
		Description: e.Description,
		Active:      e.Active,
	}
}
