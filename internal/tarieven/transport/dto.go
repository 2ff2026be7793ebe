package transport

import "github.com/google/uuid"

// Standard hours (normuren)

type CreateStandardHourRequest struct {
	Scope        string   `json:"scope" validate:"required,min=1,max=100"`
	Activity     string   `json:"activity" validate:"required,min=1,max=200"`
	HoursPerUnit *float64 `json:"hoursPerUnit" validate:"required,gt=0"`
	Unit         string   `json:"unit" validate:"required,min=1,max=20"`
}

type UpdateStandardHourRequest struct {
	Scope        *string  `json:"scope,omitempty" validate:"omitempty,min=1,max=100"`
	Activity     *string  `json:"activity,omitempty" validate:"omitempty,min=1,max=200"`
	HoursPerUnit *float64 `json:"hoursPerUnit,omitempty" validate:"omitempty,gt=0"`
	Unit         *string  `json:"unit,omitempty" validate:"omitempty,min=1,max=20"`
}

type ListStandardHoursRequest struct {
	Scope     string `form:"scope" validate:"omitempty,max=100"`
	Search    string `form:"search" validate:"max=200"`
	Page      int    `form:"page" validate:"omitempty,min=1"`
	PageSize  int    `form:"pageSize" validate:"omitempty,min=1,max=100"`
	SortBy    string `form:"sortBy" validate:"omitempty,oneof=scope activity hoursPerUnit createdAt updatedAt"`
	SortOrder string `form:"sortOrder" validate:"omitempty,oneof=asc desc"`
}

type StandardHourResponse struct {
	ID           uuid.UUID `json:"id"`
	Scope        string    `json:"scope"`
	Activity     string    `json:"activity"`
	HoursPerUnit float64   `json:"hoursPerUnit"`
	Unit         string    `json:"unit"`
	CreatedAt    string    `json:"createdAt"`
	UpdatedAt    string    `json:"updatedAt"`
}

type StandardHourListResponse struct {
	Items      []StandardHourResponse `json:"items"`
	Total      int                    `json:"total"`
	Page       int                    `json:"page"`
	PageSize   int                    `json:"pageSize"`
	TotalPages int                    `json:"totalPages"`
}

// Correction factors (correctiefactoren)

type CreateCorrectionFactorRequest struct {
	Type   string   `json:"type" validate:"required,min=1,max=100"`
	Value  string   `json:"value" validate:"required,min=1,max=100"`
	Factor *float64 `json:"factor" validate:"required,gt=0,max=10"`
}

type UpdateCorrectionFactorRequest struct {
	Type   *string  `json:"type,omitempty" validate:"omitempty,min=1,max=100"`
	Value  *string  `json:"value,omitempty" validate:"omitempty,min=1,max=100"`
	Factor *float64 `json:"factor,omitempty" validate:"omitempty,gt=0,max=10"`
}

type ListCorrectionFactorsRequest struct {
	Type      string `form:"type" validate:"omitempty,max=100"`
	Page      int    `form:"page" validate:"omitempty,min=1"`
	PageSize  int    `form:"pageSize" validate:"omitempty,min=1,max=100"`
	SortBy    string `form:"sortBy" validate:"omitempty,oneof=type value factor createdAt updatedAt"`
	SortOrder string `form:"sortOrder" validate:"omitempty,oneof=asc desc"`
}

type CorrectionFactorResponse struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	Value     string    `json:"value"`
	Factor    float64   `json:"factor"`
	CreatedAt string    `json:"createdAt"`
	UpdatedAt string    `json:"updatedAt"`
}

type CorrectionFactorListResponse struct {
	Items      []CorrectionFactorResponse `json:"items"`
	Total      int                        `json:"total"`
	Page       int                        `json:"page"`
	PageSize   int                        `json:"pageSize"`
	TotalPages int                        `json:"totalPages"`
}

// Products (producten)

type CreateProductRequest struct {
	Name           string   `json:"name" validate:"required,min=1,max=200"`
	SellPrice      *float64 `json:"sellPrice" validate:"required,min=0"`
	Unit           string   `json:"unit" validate:"required,min=1,max=20"`
	WastagePercent *float64 `json:"wastagePercent,omitempty" validate:"omitempty,min=0,max=100"`
}

type UpdateProductRequest struct {
	Name           *string  `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	SellPrice      *float64 `json:"sellPrice,omitempty" validate:"omitempty,min=0"`
	Unit           *string  `json:"unit,omitempty" validate:"omitempty,min=1,max=20"`
	WastagePercent *float64 `json:"wastagePercent,omitempty" validate:"omitempty,min=0,max=100"`
}

type ListProductsRequest struct {
	Search    string `form:"search" validate:"max=200"`
	Page      int    `form:"page" validate:"omitempty,min=1"`
	PageSize  int    `form:"pageSize" validate:"omitempty,min=1,max=100"`
	SortBy    string `form:"sortBy" validate:"omitempty,oneof=name sellPrice createdAt updatedAt"`
	SortOrder string `form:"sortOrder" validate:"omitempty,oneof=asc desc"`
}

type ProductResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	SellPrice      float64   `json:"sellPrice"`
	Unit           string    `json:"unit"`
	WastagePercent float64   `json:"wastagePercent"`
	CreatedAt      string    `json:"createdAt"`
	UpdatedAt      string    `json:"updatedAt"`
}

type ProductListResponse struct {
	Items      []ProductResponse `json:"items"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	TotalPages int               `json:"totalPages"`
}

// Settings (instellingen)

type UpsertSettingsRequest struct {
	HourlyRate           *float64 `json:"hourlyRate" validate:"required,gt=0"`
	DefaultMarginPercent *float64 `json:"defaultMarginPercent" validate:"required,min=0,max=100"`
	VatPercent           *float64 `json:"vatPercent" validate:"required,min=0,max=100"`
}

type SettingsResponse struct {
	HourlyRate           float64 `json:"hourlyRate"`
	DefaultMarginPercent float64 `json:"defaultMarginPercent"`
	VatPercent           float64 `json:"vatPercent"`
	UpdatedAt            string  `json:"updatedAt"`
}
