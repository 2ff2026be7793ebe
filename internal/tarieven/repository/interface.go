package repository

import (
	"context"

	"github.com/google/uuid"
)

// StandardHour is one row of the normuren table: the reference labor hours
// per unit of work for a named activity within a scope.
type StandardHour struct {
	ID             uuid.UUID `db:"id"`
	OrganizationID uuid.UUID `db:"organization_id"`
	Scope          string    `db:"scope"`
	Activity       string    `db:"activiteit"`
	HoursPerUnit   float64   `db:"uren_per_eenheid"`
	Unit           string    `db:"eenheid"`
	CreatedAt      string    `db:"created_at"`
	UpdatedAt      string    `db:"updated_at"`
}

// CorrectionFactor is one row of the correctiefactoren table: a multiplier
// keyed by factor category and selected value.
type CorrectionFactor struct {
	ID             uuid.UUID `db:"id"`
	OrganizationID uuid.UUID `db:"organization_id"`
	Type           string    `db:"type"`
	Value          string    `db:"waarde"`
	Factor         float64   `db:"factor"`
	CreatedAt      string    `db:"created_at"`
	UpdatedAt      string    `db:"updated_at"`
}

// Product is one row of the producten table: a priced material or machine
// rental, with a wastage percentage that inflates consumed quantities.
type Product struct {
	ID             uuid.UUID `db:"id"`
	OrganizationID uuid.UUID `db:"organization_id"`
	Name           string    `db:"naam"`
	SellPrice      float64   `db:"verkoopprijs"`
	Unit           string    `db:"eenheid"`
	WastagePercent float64   `db:"derving_percentage"`
	CreatedAt      string    `db:"created_at"`
	UpdatedAt      string    `db:"updated_at"`
}

// Settings is the singleton instellingen row per organization: tenant-wide
// pricing defaults.
type Settings struct {
	OrganizationID       uuid.UUID `db:"organization_id"`
	HourlyRate           float64   `db:"uurtarief"`
	DefaultMarginPercent float64   `db:"standaard_marge_percentage"`
	VatPercent           float64   `db:"btw_percentage"`
	UpdatedAt            string    `db:"updated_at"`
}

// CreateStandardHourParams contains data for creating a standard-hour entry.
type CreateStandardHourParams struct {
	OrganizationID uuid.UUID
	Scope          string
	Activity       string
	HoursPerUnit   float64
	Unit           string
}

// UpdateStandardHourParams contains data for updating a standard-hour entry.
type UpdateStandardHourParams struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	Scope          *string
	Activity       *string
	HoursPerUnit   *float64
	Unit           *string
}

// ListStandardHoursParams defines filters for listing standard hours.
type ListStandardHoursParams struct {
	OrganizationID uuid.UUID
	Scope          string
	Search         string
	Offset         int
	Limit          int
	SortBy         string
	SortOrder      string
}

// CreateCorrectionFactorParams contains data for creating a correction factor.
type CreateCorrectionFactorParams struct {
	OrganizationID uuid.UUID
	Type           string
	Value          string
	Factor         float64
}

// UpdateCorrectionFactorParams contains data for updating a correction factor.
type UpdateCorrectionFactorParams struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	Type           *string
	Value          *string
	Factor         *float64
}

// ListCorrectionFactorsParams defines filters for listing correction factors.
type ListCorrectionFactorsParams struct {
	OrganizationID uuid.UUID
	Type           string
	Offset         int
	Limit          int
	SortBy         string
	SortOrder      string
}

// CreateProductParams contains data for creating a product.
type CreateProductParams struct {
	OrganizationID uuid.UUID
	Name           string
	SellPrice      float64
	Unit           string
	WastagePercent float64
}

// UpdateProductParams contains data for updating a product.
type UpdateProductParams struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	Name           *string
	SellPrice      *float64
	Unit           *string
	WastagePercent *float64
}

// ListProductsParams defines filters for listing products.
type ListProductsParams struct {
	OrganizationID uuid.UUID
	Search         string
	Offset         int
	Limit          int
	SortBy         string
	SortOrder      string
}

// UpsertSettingsParams contains the full settings row for an organization.
type UpsertSettingsParams struct {
	OrganizationID       uuid.UUID
	HourlyRate           float64
	DefaultMarginPercent float64
	VatPercent           float64
}

// Repository defines rate-table storage operations.
type Repository interface {
	CreateStandardHour(ctx context.Context, params CreateStandardHourParams) (StandardHour, error)
	UpsertStandardHour(ctx context.Context, params CreateStandardHourParams) (StandardHour, error)
	UpdateStandardHour(ctx context.Context, params UpdateStandardHourParams) (StandardHour, error)
	DeleteStandardHour(ctx context.Context, organizationID uuid.UUID, id uuid.UUID) error
	GetStandardHourByID(ctx context.Context, organizationID uuid.UUID, id uuid.UUID) (StandardHour, error)
	ListStandardHours(ctx context.Context, params ListStandardHoursParams) ([]StandardHour, int, error)
	AllStandardHours(ctx context.Context, organizationID uuid.UUID) ([]StandardHour, error)

	CreateCorrectionFactor(ctx context.Context, params CreateCorrectionFactorParams) (CorrectionFactor, error)
	UpsertCorrectionFactor(ctx context.Context, params CreateCorrectionFactorParams) (CorrectionFactor, error)
	UpdateCorrectionFactor(ctx context.Context, params UpdateCorrectionFactorParams) (CorrectionFactor, error)
	DeleteCorrectionFactor(ctx context.Context, organizationID uuid.UUID, id uuid.UUID) error
	GetCorrectionFactorByID(ctx context.Context, organizationID uuid.UUID, id uuid.UUID) (CorrectionFactor, error)
	ListCorrectionFactors(ctx context.Context, params ListCorrectionFactorsParams) ([]CorrectionFactor, int, error)
	AllCorrectionFactors(ctx context.Context, organizationID uuid.UUID) ([]CorrectionFactor, error)

	CreateProduct(ctx context.Context, params CreateProductParams) (Product, error)
	UpsertProduct(ctx context.Context, params CreateProductParams) (Product, error)
	UpdateProduct(ctx context.Context, params UpdateProductParams) (Product, error)
	DeleteProduct(ctx context.Context, organizationID uuid.UUID, id uuid.UUID) error
	GetProductByID(ctx context.Context, organizationID uuid.UUID, id uuid.UUID) (Product, error)
	ListProducts(ctx context.Context, params ListProductsParams) ([]Product, int, error)
	AllProducts(ctx context.Context, organizationID uuid.UUID) ([]Product, error)

	GetSettings(ctx context.Context, organizationID uuid.UUID) (Settings, error)
	UpsertSettings(ctx context.Context, params UpsertSettingsParams) (Settings, error)
}
