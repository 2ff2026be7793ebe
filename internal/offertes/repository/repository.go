package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"offerte-engine-backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const quoteNotFoundMessage = "offerte not found"

// Repo provides PostgreSQL-backed persistence for quotes.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new quotes repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Repository = (*Repo)(nil)

// NextQuoteNumber atomically generates the next quote number for an organization.
func (r *Repo) NextQuoteNumber(ctx context.Context, orgID uuid.UUID) (string, error) {
	var nextNum int
	query := `
		INSERT INTO offerte_tellers (organization_id, laatste_nummer)
		VALUES ($1, 1)
		ON CONFLICT (organization_id) DO UPDATE SET laatste_nummer = offerte_tellers.laatste_nummer + 1
		RETURNING laatste_nummer`

	if err := r.pool.QueryRow(ctx, query, orgID).Scan(&nextNum); err != nil {
		return "", fmt.Errorf("failed to generate quote number: %w", err)
	}

	year := time.Now().Year()
	return fmt.Sprintf("OFF-%d-%04d", year, nextNum), nil
}

// CreateWithLines inserts a quote header and its lines in a single transaction.
func (r *Repo) CreateWithLines(ctx context.Context, quote Quote, lines []QuoteLine) error {
	scopeMargins, err := json.Marshal(quote.ScopeMargins)
	if err != nil {
		return fmt.Errorf("failed to marshal scope margins: %w", err)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	quoteQuery := `
		INSERT INTO offertes (
			id, organization_id, offerte_nummer, soort, status,
			klant_naam, klant_email, klant_telefoon, klant_adres,
			bereikbaarheid, achterstalligheid, notities,
			scope_aanvraag, scope_marges,
			materiaal_kosten, arbeid_kosten, totaal_uren, subtotaal, marge,
			effectieve_marge_pct, totaal_excl_btw, btw_bedrag, totaal_incl_btw,
			geldig_tot, created_by, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27)`

	if _, err := tx.Exec(ctx, quoteQuery,
		quote.ID, quote.OrganizationID, quote.QuoteNumber, quote.QuoteType, quote.Status,
		quote.CustomerName, quote.CustomerEmail, quote.CustomerPhone, quote.CustomerAddress,
		quote.Accessibility, quote.BacklogSeverity, quote.Notes,
		quote.ScopeRequest, scopeMargins,
		quote.MaterialCost, quote.LaborCost, quote.TotalHours, quote.Subtotal, quote.Margin,
		quote.EffectiveMarginPercent, quote.ExVat, quote.Vat, quote.InclVat,
		quote.ValidUntil, quote.CreatedBy, quote.CreatedAt, quote.UpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert quote: %w", err)
	}

	if err := r.insertLines(ctx, tx, lines); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *Repo) insertLines(ctx context.Context, tx pgx.Tx, lines []QuoteLine) error {
	lineQuery := `
		INSERT INTO offerte_regels (
			id, offerte_id, organization_id, scope, omschrijving, eenheid,
			aantal, prijs_per_eenheid, totaal, soort, marge_override_pct, sort_order, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	for _, line := range lines {
		if _, err := tx.Exec(ctx, lineQuery,
			line.ID, line.QuoteID, line.OrganizationID,
			line.Scope, line.Description, line.Unit,
			line.Quantity, line.UnitPrice, line.Total,
			line.Kind, line.MarginOverridePercent, line.SortOrder, line.CreatedAt,
		); err != nil {
			return fmt.Errorf("failed to insert quote line: %w", err)
		}
	}
	return nil
}

const quoteColumns = `id, organization_id, offerte_nummer, soort, status,
		klant_naam, klant_email, klant_telefoon, klant_adres,
		bereikbaarheid, achterstalligheid, notities,
		scope_aanvraag, scope_marges,
		materiaal_kosten, arbeid_kosten, totaal_uren, subtotaal, marge,
		effectieve_marge_pct, totaal_excl_btw, btw_bedrag, totaal_incl_btw,
		geldig_tot, public_token, public_token_expires_at, archief_key,
		verzonden_op, geaccepteerd_op, ondertekend_door, afgewezen_op, afwijs_reden,
		created_by, created_at, updated_at`

func scanQuote(row pgx.Row) (*Quote, error) {
	var q Quote
	var scopeMargins []byte
	err := row.Scan(
		&q.ID, &q.OrganizationID, &q.QuoteNumber, &q.QuoteType, &q.Status,
		&q.CustomerName, &q.CustomerEmail, &q.CustomerPhone, &q.CustomerAddress,
		&q.Accessibility, &q.BacklogSeverity, &q.Notes,
		&q.ScopeRequest, &scopeMargins,
		&q.MaterialCost, &q.LaborCost, &q.TotalHours, &q.Subtotal, &q.Margin,
		&q.EffectiveMarginPercent, &q.ExVat, &q.Vat, &q.InclVat,
		&q.ValidUntil, &q.PublicToken, &q.PublicTokenExpAt, &q.ArchiveKey,
		&q.SentAt, &q.AcceptedAt, &q.SignedBy, &q.DeclinedAt, &q.DeclineReason,
		&q.CreatedBy, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(scopeMargins) > 0 {
		if err := json.Unmarshal(scopeMargins, &q.ScopeMargins); err != nil {
			return nil, fmt.Errorf("failed to unmarshal scope margins: %w", err)
		}
	}
	return &q, nil
}

// GetByID retrieves a quote by its ID scoped to organization.
func (r *Repo) GetByID(ctx context.Context, id, orgID uuid.UUID) (*Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM offertes WHERE id = $1 AND organization_id = $2`
	quote, err := scanQuote(r.pool.QueryRow(ctx, query, id, orgID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(quoteNotFoundMessage)
		}
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}
	return quote, nil
}

// GetByToken retrieves a quote by its public token. Token lookups are not
// organization-scoped: the token itself is the credential.
func (r *Repo) GetByToken(ctx context.Context, token string) (*Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM offertes WHERE public_token = $1`
	quote, err := scanQuote(r.pool.QueryRow(ctx, query, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(quoteNotFoundMessage)
		}
		return nil, fmt.Errorf("failed to get quote by token: %w", err)
	}
	return quote, nil
}

const lineColumns = `id, offerte_id, organization_id, scope, omschrijving, eenheid,
		aantal, prijs_per_eenheid, totaal, soort, marge_override_pct, sort_order, created_at`

func (r *Repo) queryLines(ctx context.Context, query string, args ...any) ([]QuoteLine, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query quote lines: %w", err)
	}
	defer rows.Close()

	var lines []QuoteLine
	for rows.Next() {
		var l QuoteLine
		if err := rows.Scan(
			&l.ID, &l.QuoteID, &l.OrganizationID, &l.Scope, &l.Description, &l.Unit,
			&l.Quantity, &l.UnitPrice, &l.Total, &l.Kind, &l.MarginOverridePercent,
			&l.SortOrder, &l.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan quote line: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate quote lines: %w", err)
	}
	return lines, nil
}

// GetLinesByQuoteID retrieves all lines for a quote in display order.
func (r *Repo) GetLinesByQuoteID(ctx context.Context, quoteID, orgID uuid.UUID) ([]QuoteLine, error) {
	query := `SELECT ` + lineColumns + ` FROM offerte_regels
		WHERE offerte_id = $1 AND organization_id = $2
		ORDER BY sort_order ASC`
	return r.queryLines(ctx, query, quoteID, orgID)
}

// GetLinesByQuoteIDNoOrg retrieves lines without organization scoping, for the
// public token flow where the quote row already proved access.
func (r *Repo) GetLinesByQuoteIDNoOrg(ctx context.Context, quoteID uuid.UUID) ([]QuoteLine, error) {
	query := `SELECT ` + lineColumns + ` FROM offerte_regels
		WHERE offerte_id = $1
		ORDER BY sort_order ASC`
	return r.queryLines(ctx, query, quoteID)
}

// List retrieves quotes with filtering and pagination.
func (r *Repo) List(ctx context.Context, params ListParams) (*ListResult, error) {
	sortBy, err := resolveSortBy(params.SortBy)
	if err != nil {
		return nil, err
	}
	sortOrder, err := resolveSortOrder(params.SortOrder)
	if err != nil {
		return nil, err
	}

	var searchParam interface{}
	if params.Search != "" {
		searchParam = "%" + params.Search + "%"
	}

	var statusParam interface{}
	if params.Status != nil {
		statusParam = *params.Status
	}

	var typeParam interface{}
	if params.QuoteType != nil {
		typeParam = *params.QuoteType
	}

	baseQuery := `
		FROM offertes
		WHERE organization_id = $1
			AND ($2::text IS NULL OR status = $2)
			AND ($3::text IS NULL OR soort = $3)
			AND ($4::text IS NULL OR offerte_nummer ILIKE $4 OR klant_naam ILIKE $4 OR klant_email ILIKE $4)
	`
	args := []interface{}{params.OrganizationID, statusParam, typeParam, searchParam}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) "+baseQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count quotes: %w", err)
	}

	totalPages := (total + params.PageSize - 1) / params.PageSize
	offset := (params.Page - 1) * params.PageSize

	selectQuery := `SELECT ` + quoteColumns + baseQuery + `
		ORDER BY
			CASE WHEN $5 = 'quoteNumber' AND $6 = 'asc' THEN offerte_nummer END ASC,
			CASE WHEN $5 = 'quoteNumber' AND $6 = 'desc' THEN offerte_nummer END DESC,
			CASE WHEN $5 = 'status' AND $6 = 'asc' THEN status END ASC,
			CASE WHEN $5 = 'status' AND $6 = 'desc' THEN status END DESC,
			CASE WHEN $5 = 'customerName' AND $6 = 'asc' THEN klant_naam END ASC,
			CASE WHEN $5 = 'customerName' AND $6 = 'desc' THEN klant_naam END DESC,
			CASE WHEN $5 = 'totalInclVat' AND $6 = 'asc' THEN totaal_incl_btw END ASC,
			CASE WHEN $5 = 'totalInclVat' AND $6 = 'desc' THEN totaal_incl_btw END DESC,
			CASE WHEN $5 = 'validUntil' AND $6 = 'asc' THEN geldig_tot END ASC,
			CASE WHEN $5 = 'validUntil' AND $6 = 'desc' THEN geldig_tot END DESC,
			CASE WHEN $5 = 'createdAt' AND $6 = 'asc' THEN created_at END ASC,
			CASE WHEN $5 = 'createdAt' AND $6 = 'desc' THEN created_at END DESC,
			CASE WHEN $5 = 'updatedAt' AND $6 = 'asc' THEN updated_at END ASC,
			CASE WHEN $5 = 'updatedAt' AND $6 = 'desc' THEN updated_at END DESC,
			created_at DESC
		LIMIT $7 OFFSET $8`

	args = append(args, sortBy, sortOrder, params.PageSize, offset)

	rows, err := r.pool.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}
	defer rows.Close()

	var items []Quote
	for rows.Next() {
		quote, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan quote: %w", err)
		}
		items = append(items, *quote)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate quotes: %w", err)
	}

	return &ListResult{
		Items:      items,
		Total:      total,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: totalPages,
	}, nil
}

// UpdateStatus updates the status of a quote.
func (r *Repo) UpdateStatus(ctx context.Context, id, orgID uuid.UUID, status string) error {
	query := `UPDATE offertes SET status = $3, updated_at = $4 WHERE id = $1 AND organization_id = $2`
	result, err := r.pool.Exec(ctx, query, id, orgID, status, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update quote status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(quoteNotFoundMessage)
	}
	return nil
}

// Delete removes a quote (cascade deletes its lines).
func (r *Repo) Delete(ctx context.Context, id, orgID uuid.UUID) error {
	query := `DELETE FROM offertes WHERE id = $1 AND organization_id = $2`
	result, err := r.pool.Exec(ctx, query, id, orgID)
	if err != nil {
		return fmt.Errorf("failed to delete quote: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(quoteNotFoundMessage)
	}
	return nil
}

// SetPublicToken stores the public magic-link token and its expiry.
func (r *Repo) SetPublicToken(ctx context.Context, id, orgID uuid.UUID, token string, expiresAt time.Time) error {
	query := `UPDATE offertes SET public_token = $3, public_token_expires_at = $4, updated_at = $5
		WHERE id = $1 AND organization_id = $2`
	result, err := r.pool.Exec(ctx, query, id, orgID, token, expiresAt, time.Now())
	if err != nil {
		return fmt.Errorf("failed to set public token: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(quoteNotFoundMessage)
	}
	return nil
}

// MarkSent flips a quote to verzonden and records the send time once.
func (r *Repo) MarkSent(ctx context.Context, id, orgID uuid.UUID) error {
	query := `UPDATE offertes SET status = 'verzonden', verzonden_op = COALESCE(verzonden_op, $3), updated_at = $3
		WHERE id = $1 AND organization_id = $2`
	result, err := r.pool.Exec(ctx, query, id, orgID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to mark quote sent: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(quoteNotFoundMessage)
	}
	return nil
}

// MarkAccepted records customer acceptance. Not organization-scoped: called
// from the public token flow.
func (r *Repo) MarkAccepted(ctx context.Context, id uuid.UUID, signedBy string) error {
	query := `UPDATE offertes SET status = 'geaccepteerd', geaccepteerd_op = $2, ondertekend_door = $3, updated_at = $2 WHERE id = $1`
	result, err := r.pool.Exec(ctx, query, id, time.Now(), signedBy)
	if err != nil {
		return fmt.Errorf("failed to mark quote accepted: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(quoteNotFoundMessage)
	}
	return nil
}

// MarkDeclined records customer rejection with an optional reason.
func (r *Repo) MarkDeclined(ctx context.Context, id uuid.UUID, reason *string) error {
	query := `UPDATE offertes SET status = 'afgewezen', afgewezen_op = $2, afwijs_reden = $3, updated_at = $2 WHERE id = $1`
	result, err := r.pool.Exec(ctx, query, id, time.Now(), reason)
	if err != nil {
		return fmt.Errorf("failed to mark quote declined: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(quoteNotFoundMessage)
	}
	return nil
}

// MarkExpired flips every sent quote whose validity passed the cutoff to
// verlopen and returns the affected quotes for event publication.
func (r *Repo) MarkExpired(ctx context.Context, cutoff time.Time) ([]ExpiredQuote, error) {
	query := `UPDATE offertes SET status = 'verlopen', updated_at = $1
		WHERE status = 'verzonden' AND geldig_tot IS NOT NULL AND geldig_tot < $1
		RETURNING id, organization_id, offerte_nummer`

	rows, err := r.pool.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to expire quotes: %w", err)
	}
	defer rows.Close()

	var expired []ExpiredQuote
	for rows.Next() {
		var e ExpiredQuote
		if err := rows.Scan(&e.ID, &e.OrganizationID, &e.QuoteNumber); err != nil {
			return nil, fmt.Errorf("failed to scan expired quote: %w", err)
		}
		expired = append(expired, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expired quotes: %w", err)
	}
	return expired, nil
}

// SetArchiveKey stores the object storage key of the archived workbook.
func (r *Repo) SetArchiveKey(ctx context.Context, id, orgID uuid.UUID, key string) error {
	query := `UPDATE offertes SET archief_key = $3, updated_at = $4 WHERE id = $1 AND organization_id = $2`
	result, err := r.pool.Exec(ctx, query, id, orgID, key, time.Now())
	if err != nil {
		return fmt.Errorf("failed to set archive key: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(quoteNotFoundMessage)
	}
	return nil
}

func resolveSortBy(sortBy string) (string, error) {
	if sortBy == "" {
		return "createdAt", nil
	}
	switch sortBy {
	case "quoteNumber", "status", "customerName", "totalInclVat", "validUntil", "createdAt", "updatedAt":
		return sortBy, nil
	default:
		return "", apperr.BadRequest("invalid sort field")
	}
}

func resolveSortOrder(sortOrder string) (string, error) {
	if sortOrder == "" {
		return "desc", nil
	}
	switch sortOrder {
	case "asc", "desc":
		return sortOrder, nil
	default:
		return "", apperr.BadRequest("invalid sort order")
	}
}
