// Package transport defines the request and response DTOs for the quotes API.
package transport

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// QuoteStatus represents the lifecycle state of a quote.
type QuoteStatus string

const (
	QuoteStatusDraft    QuoteStatus = "concept"
	QuoteStatusSent     QuoteStatus = "verzonden"
	QuoteStatusAccepted QuoteStatus = "geaccepteerd"
	QuoteStatusDeclined QuoteStatus = "afgewezen"
	QuoteStatusExpired  QuoteStatus = "verlopen"
)

// ── Requests ──────────────────────────────────────────────────────────────────

// CalculateQuoteRequest describes the work to price. ScopeData carries one
// JSON object per requested scope id; the calculation engine skips requested
// ids that have no data.
type CalculateQuoteRequest struct {
	QuoteType       string                     `json:"quoteType" validate:"required,oneof=aanleg onderhoud"`
	ScopeIDs        []string                   `json:"scopeIds" validate:"required,min=1,dive,required"`
	ScopeData       map[string]json.RawMessage `json:"scopeData"`
	Accessibility   string                     `json:"accessibility" validate:"required,oneof=goed beperkt slecht"`
	BacklogSeverity string                     `json:"backlogSeverity" validate:"omitempty,oneof=geen licht ernstig"`
	ScopeMargins    map[string]float64         `json:"scopeMargins" validate:"omitempty,dive,min=0,max=100"`
	IncludeWarranty bool                       `json:"includeWarranty"`
}

// CreateQuoteRequest creates a quote: the calculation input plus the customer.
type CreateQuoteRequest struct {
	CalculateQuoteRequest

	CustomerName    string     `json:"customerName" validate:"required,min=1,max=255"`
	CustomerEmail   string     `json:"customerEmail" validate:"required,email,max=255"`
	CustomerPhone   string     `json:"customerPhone" validate:"omitempty,max=30"`
	CustomerAddress string     `json:"customerAddress" validate:"omitempty,max=500"`
	Notes           *string    `json:"notes" validate:"omitempty,max=2000"`
	ValidUntil      *time.Time `json:"validUntil"`
}

// UpdateQuoteStatusRequest changes a quote's status by hand, for acceptances
// recorded over the phone. Verlopen is owned by the expiry sweep.
type UpdateQuoteStatusRequest struct {
	Status QuoteStatus `json:"status" validate:"required,oneof=verzonden geaccepteerd afgewezen"`
}

// ListQuotesRequest defines the query parameters for listing quotes.
type ListQuotesRequest struct {
	Status    string `form:"status" validate:"omitempty,oneof=concept verzonden geaccepteerd afgewezen verlopen"`
	QuoteType string `form:"quoteType" validate:"omitempty,oneof=aanleg onderhoud"`
	Search    string `form:"search"`
	SortBy    string `form:"sortBy" validate:"omitempty,oneof=quoteNumber status customerName totalInclVat validUntil createdAt updatedAt"`
	SortOrder string `form:"sortOrder" validate:"omitempty,oneof=asc desc"`
	Page      int    `form:"page" validate:"omitempty,min=1"`
	PageSize  int    `form:"pageSize" validate:"omitempty,min=1,max=100"`
}

// ListScopesRequest selects which quote type's scopes to enumerate.
type ListScopesRequest struct {
	QuoteType string `form:"quoteType" validate:"required,oneof=aanleg onderhoud"`
}

// AcceptQuoteRequest is the request body for accepting a quote.
type AcceptQuoteRequest struct {
	SignatureName string `json:"signatureName" validate:"required,min=1,max=255"`
}

// DeclineQuoteRequest is the request body for declining a quote.
type DeclineQuoteRequest struct {
	Reason string `json:"reason" validate:"max=2000"`
}

// ── Responses ─────────────────────────────────────────────────────────────────

// QuoteLineResponse is a single priced row on a quote.
type QuoteLineResponse struct {
	ID                    uuid.UUID `json:"id"`
	Scope                 string    `json:"scope"`
	Description           string    `json:"description"`
	Unit                  string    `json:"unit"`
	Quantity              float64   `json:"quantity"`
	UnitPrice             float64   `json:"unitPrice"`
	Total                 float64   `json:"total"`
	Kind                  string    `json:"kind"`
	MarginOverridePercent *float64  `json:"marginOverridePercent,omitempty"`
	SortOrder             int       `json:"sortOrder"`
}

// TotalsResponse is the aggregated financial summary of a quote.
type TotalsResponse struct {
	MaterialCost           float64 `json:"materialCost"`
	LaborCost              float64 `json:"laborCost"`
	TotalHours             float64 `json:"totalHours"`
	Subtotal               float64 `json:"subtotal"`
	Margin                 float64 `json:"margin"`
	EffectiveMarginPercent float64 `json:"effectiveMarginPercent"`
	ExVat                  float64 `json:"exVat"`
	Vat                    float64 `json:"vat"`
	InclVat                float64 `json:"inclVat"`
}

// CalculationResponse is the preview result; nothing is persisted.
type CalculationResponse struct {
	Lines    []QuoteLineResponse `json:"lines"`
	Totals   TotalsResponse      `json:"totals"`
	Warnings []string            `json:"warnings,omitempty"`
}

// QuoteResponse is the authenticated view of a quote.
type QuoteResponse struct {
	ID              uuid.UUID   `json:"id"`
	QuoteNumber     string      `json:"quoteNumber"`
	QuoteType       string      `json:"quoteType"`
	Status          QuoteStatus `json:"status"`
	CustomerName    string      `json:"customerName"`
	CustomerEmail   string      `json:"customerEmail"`
	CustomerPhone   *string     `json:"customerPhone,omitempty"`
	CustomerAddress *string     `json:"customerAddress,omitempty"`
	Accessibility   string      `json:"accessibility"`
	BacklogSeverity *string     `json:"backlogSeverity,omitempty"`
	Notes           *string     `json:"notes,omitempty"`

	ScopeMargins map[string]float64  `json:"scopeMargins,omitempty"`
	Lines        []QuoteLineResponse `json:"lines,omitempty"`
	Totals       TotalsResponse      `json:"totals"`

	ValidUntil    *time.Time `json:"validUntil,omitempty"`
	PublicToken   *string    `json:"publicToken,omitempty"`
	ArchiveKey    *string    `json:"archiveKey,omitempty"`
	SentAt        *time.Time `json:"sentAt,omitempty"`
	AcceptedAt    *time.Time `json:"acceptedAt,omitempty"`
	SignedBy      *string    `json:"signedBy,omitempty"`
	DeclinedAt    *time.Time `json:"declinedAt,omitempty"`
	DeclineReason *string    `json:"declineReason,omitempty"`

	CreatedBy uuid.UUID `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// QuoteListResponse is a paginated list of quotes without their lines.
type QuoteListResponse struct {
	Quotes     []QuoteResponse `json:"quotes"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"pageSize"`
	TotalPages int             `json:"totalPages"`
}

// ScopesResponse enumerates the scope ids a quote type supports.
type ScopesResponse struct {
	QuoteType string   `json:"quoteType"`
	Scopes    []string `json:"scopes"`
}

// ── Public DTOs ───────────────────────────────────────────────────────────────

// PublicQuoteLineResponse is the customer-facing view of a line. Margin
// internals are never exposed on the public surface.
type PublicQuoteLineResponse struct {
	ID          uuid.UUID `json:"id"`
	Scope       string    `json:"scope"`
	Description string    `json:"description"`
	Unit        string    `json:"unit"`
	Quantity    float64   `json:"quantity"`
	UnitPrice   float64   `json:"unitPrice"`
	Total       float64   `json:"total"`
	Kind        string    `json:"kind"`
	SortOrder   int       `json:"sortOrder"`
}

// PublicTotalsResponse shows the customer only the billable totals.
type PublicTotalsResponse struct {
	ExVat   float64 `json:"exVat"`
	Vat     float64 `json:"vat"`
	InclVat float64 `json:"inclVat"`
}

// PublicQuoteResponse is the customer-facing quote proposal.
type PublicQuoteResponse struct {
	QuoteNumber  string                    `json:"quoteNumber"`
	QuoteType    string                    `json:"quoteType"`
	Status       QuoteStatus               `json:"status"`
	CustomerName string                    `json:"customerName"`
	Notes        *string                   `json:"notes,omitempty"`
	Lines        []PublicQuoteLineResponse `json:"lines"`
	Totals       PublicTotalsResponse      `json:"totals"`
	ValidUntil   *time.Time                `json:"validUntil,omitempty"`
	AcceptedAt   *time.Time                `json:"acceptedAt,omitempty"`
	DeclinedAt   *time.Time                `json:"declinedAt,omitempty"`
}
