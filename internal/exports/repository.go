package exports

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"offerte-engine-backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrAPIKeyNotFound = errors.New("export API key not found")

const apiKeyPrefix = "off_"

// APIKey represents an export API key stored in the database.
type APIKey struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	Name           string
	KeyHash        string
	KeyPrefix      string
	IsActive       bool
	CreatedBy      *uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
	LastUsedAt     *time.Time
}

// AcceptedQuote is an accepted quote header with its priced lines, as pulled
// by an external bookkeeping system.
type AcceptedQuote struct {
	ID           uuid.UUID
	QuoteNumber  string
	QuoteType    string
	CustomerName string
	AcceptedAt   time.Time
	InclVat      float64
	Lines        []QuoteExportLine
}

// QuoteExportLine is one priced row in an export.
type QuoteExportLine struct {
	Scope       string
	Description string
	Unit        string
	Quantity    float64
	UnitPrice   float64
	Total       float64
	Kind        string
}

// QuoteExport is a full quote rendered into a workbook or archive.
type QuoteExport struct {
	ID                     uuid.UUID
	OrganizationID         uuid.UUID
	QuoteNumber            string
	QuoteType              string
	Status                 string
	CustomerName           string
	CustomerEmail          string
	CustomerAddress        *string
	ValidUntil             *time.Time
	CreatedAt              time.Time
	MaterialCost           float64
	LaborCost              float64
	TotalHours             float64
	Subtotal               float64
	Margin                 float64
	EffectiveMarginPercent float64
	ExVat                  float64
	Vat                    float64
	InclVat                float64
	Lines                  []QuoteExportLine
}

// Repository provides data access for export operations. It reads the quote
// tables directly so the exports module stays self-contained.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GenerateAPIKey creates a new random API key and returns the plaintext key and its hash.
func GenerateAPIKey() (plaintext string, hash string, prefix string, err error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", "", "", err
	}
	plaintext = apiKeyPrefix + hex.EncodeToString(bytes)
	h := sha256.Sum256([]byte(plaintext))
	hash = hex.EncodeToString(h[:])
	prefix = plaintext[:12]
	return plaintext, hash, prefix, nil
}

// HashKey hashes a plaintext API key for lookup.
func HashKey(plaintext string) string {
	h := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(h[:])
}

// CreateAPIKey creates a new export API key record.
func (r *Repository) CreateAPIKey(ctx context.Context, orgID uuid.UUID, name string, keyHash string, keyPrefix string, createdBy *uuid.UUID) (APIKey, error) {
	var key APIKey
	err := r.pool.QueryRow(ctx, `
		INSERT INTO export_api_keys (organization_id, name, key_hash, key_prefix, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, organization_id, name, key_hash, key_prefix, is_active, created_by, created_at, updated_at, last_used_at
	`, orgID, name, keyHash, keyPrefix, createdBy).Scan(
		&key.ID, &key.OrganizationID, &key.Name, &key.KeyHash, &key.KeyPrefix, &key.IsActive, &key.CreatedBy, &key.CreatedAt, &key.UpdatedAt, &key.LastUsedAt,
	)
	return key, err
}

// GetAPIKeyByHash retrieves an active API key by its hash.
func (r *Repository) GetAPIKeyByHash(ctx context.Context, keyHash string) (APIKey, error) {
	var key APIKey
	err := r.pool.QueryRow(ctx, `
		SELECT id, organization_id, name, key_hash, key_prefix, is_active, created_by, created_at, updated_at, last_used_at
		FROM export_api_keys
		WHERE key_hash = $1 AND is_active = true
	`, keyHash).Scan(
		&key.ID, &key.OrganizationID, &key.Name, &key.KeyHash, &key.KeyPrefix, &key.IsActive, &key.CreatedBy, &key.CreatedAt, &key.UpdatedAt, &key.LastUsedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return APIKey{}, ErrAPIKeyNotFound
	}
	return key, err
}

// ListAPIKeys returns all export API keys for an organization.
func (r *Repository) ListAPIKeys(ctx context.Context, orgID uuid.UUID) ([]APIKey, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, organization_id, name, key_hash, key_prefix, is_active, created_by, created_at, updated_at, last_used_at
		FROM export_api_keys
		WHERE organization_id = $1
		ORDER BY created_at DESC
	`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	keys := make([]APIKey, 0)
	for rows.Next() {
		var key APIKey
		if err := rows.Scan(
			&key.ID, &key.OrganizationID, &key.Name, &key.KeyHash, &key.KeyPrefix, &key.IsActive, &key.CreatedBy, &key.CreatedAt, &key.UpdatedAt, &key.LastUsedAt,
		); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// RevokeAPIKey deactivates an export API key.
func (r *Repository) RevokeAPIKey(ctx context.Context, keyID uuid.UUID, orgID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE export_api_keys SET is_active = false, updated_at = now()
		WHERE id = $1 AND organization_id = $2
	`, keyID, orgID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAPIKeyNotFound
	}
	return nil
}

// TouchAPIKey updates the last_used_at timestamp for the key.
func (r *Repository) TouchAPIKey(ctx context.Context, keyID uuid.UUID) {
	_, _ = r.pool.Exec(ctx, `
		UPDATE export_api_keys SET last_used_at = now(), updated_at = now()
		WHERE id = $1
	`, keyID)
}

// ListAcceptedQuotes returns accepted quotes in the date range with their
// lines, oldest acceptance first.
func (r *Repository) ListAcceptedQuotes(ctx context.Context, orgID uuid.UUID, from, to time.Time, limit int) ([]AcceptedQuote, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, offerte_nummer, soort, klant_naam, geaccepteerd_op, totaal_incl_btw
		FROM offertes
		WHERE organization_id = $1
			AND status = 'geaccepteerd'
			AND geaccepteerd_op >= $2 AND geaccepteerd_op <= $3
		ORDER BY geaccepteerd_op ASC
		LIMIT $4
	`, orgID, from, to, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	quotes := make([]AcceptedQuote, 0)
	for rows.Next() {
		var q AcceptedQuote
		if err := rows.Scan(&q.ID, &q.QuoteNumber, &q.QuoteType, &q.CustomerName, &q.AcceptedAt, &q.InclVat); err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range quotes {
		lines, err := r.quoteLines(ctx, quotes[i].ID, orgID)
		if err != nil {
			return nil, err
		}
		quotes[i].Lines = lines
	}
	return quotes, nil
}

// ListExportedQuoteIDs returns the subset of the given quote ids that already
// appear in the export ledger.
func (r *Repository) ListExportedQuoteIDs(ctx context.Context, orgID uuid.UUID, quoteIDs []uuid.UUID) (map[uuid.UUID]struct{}, error) {
	if len(quoteIDs) == 0 {
		return map[uuid.UUID]struct{}{}, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT offerte_id
		FROM offerte_exports
		WHERE organization_id = $1 AND offerte_id = ANY($2)
	`, orgID, quoteIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[uuid.UUID]struct{})
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		result[id] = struct{}{}
	}
	return result, rows.Err()
}

// RecordExports stores exported quote ids to keep the CSV pull idempotent.
func (r *Repository) RecordExports(ctx context.Context, orgID uuid.UUID, quoteIDs []uuid.UUID) error {
	if len(quoteIDs) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, id := range quoteIDs {
		batch.Queue(`
			INSERT INTO offerte_exports (organization_id, offerte_id)
			VALUES ($1, $2)
			ON CONFLICT (organization_id, offerte_id) DO NOTHING
		`, orgID, id)
	}
	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()
	for i := 0; i < len(quoteIDs); i++ {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// GetQuoteForExport loads a quote header and lines for workbook rendering.
func (r *Repository) GetQuoteForExport(ctx context.Context, id, orgID uuid.UUID) (*QuoteExport, error) {
	var q QuoteExport
	err := r.pool.QueryRow(ctx, `
		SELECT id, organization_id, offerte_nummer, soort, status,
			klant_naam, klant_email, klant_adres, geldig_tot, created_at,
			materiaal_kosten, arbeid_kosten, totaal_uren, subtotaal, marge,
			effectieve_marge_pct, totaal_excl_btw, btw_bedrag, totaal_incl_btw
		FROM offertes
		WHERE id = $1 AND organization_id = $2
	`, id, orgID).Scan(
		&q.ID, &q.OrganizationID, &q.QuoteNumber, &q.QuoteType, &q.Status,
		&q.CustomerName, &q.CustomerEmail, &q.CustomerAddress, &q.ValidUntil, &q.CreatedAt,
		&q.MaterialCost, &q.LaborCost, &q.TotalHours, &q.Subtotal, &q.Margin,
		&q.EffectiveMarginPercent, &q.ExVat, &q.Vat, &q.InclVat,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("offerte niet gevonden")
	}
	if err != nil {
		return nil, fmt.Errorf("get quote for export: %w", err)
	}

	lines, err := r.quoteLines(ctx, q.ID, orgID)
	if err != nil {
		return nil, err
	}
	q.Lines = lines
	return &q, nil
}

// SetArchiveKey stores the object key of the archived workbook on the quote.
func (r *Repository) SetArchiveKey(ctx context.Context, id, orgID uuid.UUID, key string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE offertes SET archief_key = $3, updated_at = now()
		WHERE id = $1 AND organization_id = $2
	`, id, orgID, key)
	if err != nil {
		return fmt.Errorf("set archive key: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("offerte niet gevonden")
	}
	return nil
}

func (r *Repository) quoteLines(ctx context.Context, quoteID, orgID uuid.UUID) ([]QuoteExportLine, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT scope, omschrijving, eenheid, aantal, prijs_per_eenheid, totaal, soort
		FROM offerte_regels
		WHERE offerte_id = $1 AND organization_id = $2
		ORDER BY sort_order ASC
	`, quoteID, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]QuoteExportLine, 0)
	for rows.Next() {
		var line QuoteExportLine
		if err := rows.Scan(&line.Scope, &line.Description, &line.Unit, &line.Quantity, &line.UnitPrice, &line.Total, &line.Kind); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}
