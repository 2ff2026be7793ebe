package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ── Domain Models ─────────────────────────────────────────────────────────────

// Quote is the database model for a quote header (offerte).
type Quote struct {
	ID             uuid.UUID `db:"id"`
	OrganizationID uuid.UUID `db:"organization_id"`
	QuoteNumber    string    `db:"offerte_nummer"`
	QuoteType      string    `db:"soort"`
	Status         string    `db:"status"`

	CustomerName    string  `db:"klant_naam"`
	CustomerEmail   string  `db:"klant_email"`
	CustomerPhone   *string `db:"klant_telefoon"`
	CustomerAddress *string `db:"klant_adres"`

	Accessibility   string  `db:"bereikbaarheid"`
	BacklogSeverity *string `db:"achterstalligheid"`
	Notes           *string `db:"notities"`

	// ScopeRequest is the declarative work description the lines were
	// generated from, kept so a quote can be re-priced later.
	ScopeRequest json.RawMessage    `db:"scope_aanvraag"`
	ScopeMargins map[string]float64 `db:"scope_marges"`

	MaterialCost           float64 `db:"materiaal_kosten"`
	LaborCost              float64 `db:"arbeid_kosten"`
	TotalHours             float64 `db:"totaal_uren"`
	Subtotal               float64 `db:"subtotaal"`
	Margin                 float64 `db:"marge"`
	EffectiveMarginPercent float64 `db:"effectieve_marge_pct"`
	ExVat                  float64 `db:"totaal_excl_btw"`
	Vat                    float64 `db:"btw_bedrag"`
	InclVat                float64 `db:"totaal_incl_btw"`

	ValidUntil       *time.Time `db:"geldig_tot"`
	PublicToken      *string    `db:"public_token"`
	PublicTokenExpAt *time.Time `db:"public_token_expires_at"`
	ArchiveKey       *string    `db:"archief_key"`

	SentAt        *time.Time `db:"verzonden_op"`
	AcceptedAt    *time.Time `db:"geaccepteerd_op"`
	SignedBy      *string    `db:"ondertekend_door"`
	DeclinedAt    *time.Time `db:"afgewezen_op"`
	DeclineReason *string    `db:"afwijs_reden"`

	CreatedBy uuid.UUID `db:"created_by"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// QuoteLine is the database model for a single priced row (offerteregel).
type QuoteLine struct {
	ID                    uuid.UUID `db:"id"`
	QuoteID               uuid.UUID `db:"offerte_id"`
	OrganizationID        uuid.UUID `db:"organization_id"`
	Scope                 string    `db:"scope"`
	Description           string    `db:"omschrijving"`
	Unit                  string    `db:"eenheid"`
	Quantity              float64   `db:"aantal"`
	UnitPrice             float64   `db:"prijs_per_eenheid"`
	Total                 float64   `db:"totaal"`
	Kind                  string    `db:"soort"`
	MarginOverridePercent *float64  `db:"marge_override_pct"`
	SortOrder             int       `db:"sort_order"`
	CreatedAt             time.Time `db:"created_at"`
}

// ExpiredQuote identifies a quote flipped to verlopen by the expiry sweep.
type ExpiredQuote struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	QuoteNumber    string
}

// ListParams contains parameters for listing quotes.
type ListParams struct {
	OrganizationID uuid.UUID
	Status         *string
	QuoteType      *string
	Search         string
	SortBy         string
	SortOrder      string
	Page           int
	PageSize       int
}

// ListResult contains the paginated result of listing quotes.
type ListResult struct {
	Items      []Quote
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

// Repository defines the persistence operations for quotes.
type Repository interface {
	NextQuoteNumber(ctx context.Context, orgID uuid.UUID) (string, error)
	CreateWithLines(ctx context.Context, quote Quote, lines []QuoteLine) error
	GetByID(ctx context.Context, id, orgID uuid.UUID) (*Quote, error)
	GetLinesByQuoteID(ctx context.Context, quoteID, orgID uuid.UUID) ([]QuoteLine, error)
	GetLinesByQuoteIDNoOrg(ctx context.Context, quoteID uuid.UUID) ([]QuoteLine, error)
	List(ctx context.Context, params ListParams) (*ListResult, error)
	UpdateStatus(ctx context.Context, id, orgID uuid.UUID, status string) error
	Delete(ctx context.Context, id, orgID uuid.UUID) error

	SetPublicToken(ctx context.Context, id, orgID uuid.UUID, token string, expiresAt time.Time) error
	GetByToken(ctx context.Context, token string) (*Quote, error)
	MarkSent(ctx context.Context, id, orgID uuid.UUID) error
	MarkAccepted(ctx context.Context, id uuid.UUID, signedBy string) error
	MarkDeclined(ctx context.Context, id uuid.UUID, reason *string) error
	MarkExpired(ctx context.Context, cutoff time.Time) ([]ExpiredQuote, error)

	SetArchiveKey(ctx context.Context, id, orgID uuid.UUID, key string) error
}
