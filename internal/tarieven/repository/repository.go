package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"offerte-engine-backend/platform/apperr"
)

const (
	standardHourNotFoundMessage     = "standard hour not found"
	correctionFactorNotFoundMessage = "correction factor not found"
	productNotFoundMessage          = "product not found"
	settingsNotFoundMessage         = "settings not found"

	uniqueViolationCode = "23505"
)

// Repo implements the rates repository.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new rates repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// CreateStandardHour creates a standard-hour entry.
func (r *Repo) CreateStandardHour(ctx context.Context, params CreateStandardHourParams) (StandardHour, error) {
	query := `
		INSERT INTO tarieven_normuren (organization_id, scope, activiteit, uren_per_eenheid, eenheid)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, organization_id, scope, activiteit, uren_per_eenheid, eenheid, created_at, updated_at`

	var entry StandardHour
	var createdAt, updatedAt time.Time
	if err := r.pool.QueryRow(ctx, query,
		params.OrganizationID, params.Scope, params.Activity, params.HoursPerUnit, params.Unit,
	).Scan(
		&entry.ID, &entry.OrganizationID, &entry.Scope, &entry.Activity, &entry.HoursPerUnit, &entry.Unit,
		&createdAt, &updatedAt,
	); err != nil {
		if isUniqueViolation(err) {
			return StandardHour{}, apperr.Conflict("standard hour already exists for this scope and activity")
		}
		return StandardHour{}, fmt.Errorf("create standard hour: %w", err)
	}

	entry.CreatedAt = createdAt.Format(time.RFC3339)
	entry.UpdatedAt = updatedAt.Format(time.RFC3339)
	return entry, nil
}

// UpsertStandardHour inserts a standard-hour entry or updates the rate of an
// existing (scope, activiteit) pair. Used by the seeder.
func (r *Repo) UpsertStandardHour(ctx context.Context, params CreateStandardHourParams) (StandardHour, error) {
	query := `
		INSERT INTO tarieven_normuren (organization_id, scope, activiteit, uren_per_eenheid, eenheid)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (organization_id, scope, activiteit)
		DO UPDATE SET uren_per_eenheid = EXCLUDED.uren_per_eenheid, eenheid = EXCLUDED.eenheid, updated_at = now()
		RETURNING id, organization_id, scope, activiteit, uren_per_eenheid, eenheid, created_at, updated_at`

	var entry StandardHour
	var createdAt, updatedAt time.Time
	if err := r.pool.QueryRow(ctx, query,
		params.OrganizationID, params.Scope, params.Activity, params.HoursPerUnit, params.Unit,
	).Scan(
		&entry.ID, &entry.OrganizationID, &entry.Scope, &entry.Activity, &entry.HoursPerUnit, &entry.Unit,
		&createdAt, &updatedAt,
	); err != nil {
		return StandardHour{}, fmt.Errorf("upsert standard hour: %w", err)
	}

	entry.CreatedAt = createdAt.Format(time.RFC3339)
	entry.UpdatedAt = updatedAt.Format(time.RFC3339)
	return entry, nil
}

// UpdateStandardHour updates a standard-hour entry.
func (r *Repo) UpdateStandardHour(ctx context.Context, params UpdateStandardHourParams) (StandardHour, error) {
	query := `
		UPDATE tarieven_normuren
		SET scope = COALESCE($3, scope),
			activiteit = COALESCE($4, activiteit),
			uren_per_eenheid = COALESCE($5, uren_per_eenheid),
			eenheid = COALESCE($6, eenheid),
			updated_at = now()
		WHERE id = $1 AND organization_id = $2
		RETURNING id, organization_id, scope, activiteit, uren_per_eenheid, eenheid, created_at, updated_at`

	var entry StandardHour
	var createdAt, updatedAt time.Time
	if err := r.pool.QueryRow(ctx, query,
		params.ID, params.OrganizationID, params.Scope, params.Activity, params.HoursPerUnit, params.Unit,
	).Scan(
		&entry.ID, &entry.OrganizationID, &entry.Scope, &entry.Activity, &entry.HoursPerUnit, &entry.Unit,
		&createdAt, &updatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return StandardHour{}, apperr.NotFound(standardHourNotFoundMessage)
		}
		if isUniqueViolation(err) {
			return StandardHour{}, apperr.Conflict("standard hour already exists for this scope and activity")
		}
		return StandardHour{}, fmt.Errorf("update standard hour: %w", err)
	}

	entry.CreatedAt = createdAt.Format(time.RFC3339)
	entry.UpdatedAt = updatedAt.Format(time.RFC3339)
	return entry, nil
}

// DeleteStandardHour deletes a standard-hour entry.
func (r *Repo) DeleteStandardHour(ctx context.Context, organizationID uuid.UUID, id uuid.UUID) error {
	query := `DELETE FROM tarieven_normuren WHERE id = $1 AND organization_id = $2`
	result, err := r.pool.Exec(ctx, query, id, organizationID)
	if err != nil {
		return fmt.Errorf("delete standard hour: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(standardHourNotFoundMessage)
	}
	return nil
}

// GetStandardHourByID retrieves a standard-hour entry by ID.
func (r *Repo) GetStandardHourByID(ctx context.Context, organizationID uuid.UUID, id uuid.UUID) (StandardHour, error) {
	query := `
		SELECT id, organization_id, scope, activiteit, uren_per_eenheid, eenheid, created_at, updated_at
		FROM tarieven_normuren
		WHERE id = $1 AND organization_id = $2`

	var entry StandardHour
	var createdAt, updatedAt time.Time
	if err := r.pool.QueryRow(ctx, query, id, organizationID).Scan(
		&entry.ID, &entry.OrganizationID, &entry.Scope, &entry.Activity, &entry.HoursPerUnit, &entry.Unit,
		&createdAt, &updatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return StandardHour{}, apperr.NotFound(standardHourNotFoundMessage)
		}
		return StandardHour{}, fmt.Errorf("get standard hour by id: %w", err)
	}

	entry.CreatedAt = createdAt.Format(time.RFC3339)
	entry.UpdatedAt = updatedAt.Format(time.RFC3339)
	return entry, nil
}

// ListStandardHours lists standard hours with filters and pagination.
func (r *Repo) ListStandardHours(ctx context.Context, params ListStandardHoursParams) ([]StandardHour, int, error) {
	whereClauses := []string{"organization_id = $1"}
	args := []interface{}{params.OrganizationID}
	argIdx := 2

	if params.Scope != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("scope = $%d", argIdx))
		args = append(args, params.Scope)
		argIdx++
	}

	if params.Search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("activiteit ILIKE $%d", argIdx))
		args = append(args, "%"+params.Search+"%")
		argIdx++
	}

	whereClause := strings.Join(whereClauses, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM tarieven_normuren WHERE %s", whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count standard hours: %w", err)
	}

	sortColumn := "scope"
	switch params.SortBy {
	case "activity":
		sortColumn = "activiteit"
	case "hoursPerUnit":
		sortColumn = "uren_per_eenheid"
	case "createdAt":
		sortColumn = "created_at"
	case "updatedAt":
		sortColumn = "updated_at"
	}

	sortOrder := "ASC"
	if params.SortOrder == "desc" {
		sortOrder = "DESC"
	}

	args = append(args, params.Limit, params.Offset)
	query := fmt.Sprintf(`
		SELECT id, organization_id, scope, activiteit, uren_per_eenheid, eenheid, created_at, updated_at
		FROM tarieven_normuren
		WHERE %s
		ORDER BY %s %s, activiteit ASC
		LIMIT $%d OFFSET $%d
	`, whereClause, sortColumn, sortOrder, argIdx, argIdx+1)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list standard hours: %w", err)
	}
	defer rows.Close()

	items := make([]StandardHour, 0)
	for rows.Next() {
		var entry StandardHour
		var createdAt, updatedAt time.Time
		if err := rows.Scan(
			&entry.ID, &entry.OrganizationID, &entry.Scope, &entry.Activity, &entry.HoursPerUnit, &entry.Unit,
			&createdAt, &updatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan standard hour: %w", err)
		}
		entry.CreatedAt = createdAt.Format(time.RFC3339)
		entry.UpdatedAt = updatedAt.Format(time.RFC3339)
		items = append(items, entry)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("iterate standard hours: %w", rows.Err())
	}

	return items, total, nil
}

// AllStandardHours loads every standard-hour entry for an organization.
// Used by the calculation snapshot, which needs the full table.
func (r *Repo) AllStandardHours(ctx context.Context, organizationID uuid.UUID) ([]StandardHour, error) {
	query := `
		SELECT id, organization_id, scope, activiteit, uren_per_eenheid, eenheid, created_at, updated_at
		FROM tarieven_normuren
		WHERE organization_id = $1
		ORDER BY scope ASC, activiteit ASC`

	rows, err := r.pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("all standard hours: %w", err)
	}
	defer rows.Close()

	items := make([]StandardHour, 0)
	for rows.Next() {
		var entry StandardHour
		var createdAt, updatedAt time.Time
		if err := rows.Scan(
			&entry.ID, &entry.OrganizationID, &entry.Scope, &entry.Activity, &entry.HoursPerUnit, &entry.Unit,
			&createdAt, &updatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan standard hour: %w", err)
		}
		entry.CreatedAt = createdAt.Format(time.RFC3339)
		entry.UpdatedAt = updatedAt.Format(time.RFC3339)
		items = append(items, entry)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate standard hours: %w", rows.Err())
	}

	return items, nil
}

// CreateCorrectionFactor creates a correction factor.
func (r *Repo) CreateCorrectionFactor(ctx context.Context, params CreateCorrectionFactorParams) (CorrectionFactor, error) {
	query := `
		INSERT INTO tarieven_correctiefactoren (organization_id, type, waarde, factor)
		VALUES ($1, $2, $3, $4)
		RETURNING id, organization_id, type, waarde, factor, created_at, updated_at`

	var cf CorrectionFactor
	var createdAt, updatedAt time.Time
	if err := r.pool.QueryRow(ctx, query,
		params.OrganizationID, params.Type, params.Value, params.Factor,
	).Scan(&cf.ID, &cf.OrganizationID, &cf.Type, &cf.Value, &cf.Factor, &createdAt, &updatedAt); err != nil {
		if isUniqueViolation(err) {
			return CorrectionFactor{}, apperr.Conflict("correction factor already exists for this type and value")
		}
		return CorrectionFactor{}, fmt.Errorf("create correction factor: %w", err)
	}

	cf.CreatedAt = createdAt.Format(time.RFC3339)
	cf.UpdatedAt = updatedAt.Format(time.RFC3339)
	return cf, nil
}

// UpsertCorrectionFactor inserts a correction factor or updates the factor of
// an existing (type, waarde) pair. Used by the seeder.
func (r *Repo) UpsertCorrectionFactor(ctx context.Context, params CreateCorrectionFactorParams) (CorrectionFactor, error) {
	query := `
		INSERT INTO tarieven_correctiefactoren (organization_id, type, waarde, factor)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (organization_id, type, waarde)
		DO UPDATE SET factor = EXCLUDED.factor, updated_at = now()
		RETURNING id, organization_id, type, waarde, factor, created_at, updated_at`

	var cf CorrectionFactor
	var createdAt, updatedAt time.Time
	if err := r.pool.QueryRow(ctx, query,
		params.OrganizationID, params.Type, params.Value, params.Factor,
	).Scan(&cf.ID, &cf.OrganizationID, &cf.Type, &cf.Value, &cf.Factor, &createdAt, &updatedAt); err != nil {
		return CorrectionFactor{}, fmt.Errorf("upsert correction factor: %w", err)
	}

	cf.CreatedAt = createdAt.Format(time.RFC3339)
	cf.UpdatedAt = updatedAt.Format(time.RFC3339)
	return cf, nil
}

// UpdateCorrectionFactor updates a correction factor.
func (r *Repo) UpdateCorrectionFactor(ctx context.Context, params UpdateCorrectionFactorParams) (CorrectionFactor, error) {
	query := `
		UPDATE tarieven_correctiefactoren
		SET type = COALESCE($3, type),
			waarde = COALESCE($4, waarde),
			factor = COALESCE($5, factor),
			updated_at = now()
		WHERE id = $1 AND organization_id = $2
		RETURNING id, organization_id, type, waarde, factor, created_at, updated_at`

	var cf CorrectionFactor
	var createdAt, updatedAt time.Time
	if err := r.pool.QueryRow(ctx, query,
		params.ID, params.OrganizationID, params.Type, params.Value, params.Factor,
	).Scan(&cf.ID, &cf.OrganizationID, &cf.Type, &cf.Value, &cf.Factor, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return CorrectionFactor{}, apperr.NotFound(correctionFactorNotFoundMessage)
		}
		if isUniqueViolation(err) {
			return CorrectionFactor{}, apperr.Conflict("correction factor already exists for this type and value")
		}
		return CorrectionFactor{}, fmt.Errorf("update correction factor: %w", err)
	}

	cf.CreatedAt = createdAt.Format(time.RFC3339)
	cf.UpdatedAt = updatedAt.Format(time.RFC3339)
	return cf, nil
}

// DeleteCorrectionFactor deletes a correction factor.
func (r *Repo) DeleteCorrectionFactor(ctx context.Context, organizationID uuid.UUID, id uuid.UUID) error {
	query := `DELETE FROM tarieven_correctiefactoren WHERE id = $1 AND organization_id = $2`
	result, err := r.pool.Exec(ctx, query, id, organizationID)
	if err != nil {
		return fmt.Errorf("delete correction factor: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(correctionFactorNotFoundMessage)
	}
	return nil
}

// GetCorrectionFactorByID retrieves a correction factor by ID.
func (r *Repo) GetCorrectionFactorByID(ctx context.Context, organizationID uuid.UUID, id uuid.UUID) (CorrectionFactor, error) {
	query := `
		SELECT id, organization_id, type, waarde, factor, created_at, updated_at
		FROM tarieven_correctiefactoren
		WHERE id = $1 AND organization_id = $2`

	var cf CorrectionFactor
	var createdAt, updatedAt time.Time
	if err := r.pool.QueryRow(ctx, query, id, organizationID).Scan(
		&cf.ID, &cf.OrganizationID, &cf.Type, &cf.Value, &cf.Factor, &createdAt, &updatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return CorrectionFactor{}, apperr.NotFound(correctionFactorNotFoundMessage)
		}
		return CorrectionFactor{}, fmt.Errorf("get correction factor by id: %w", err)
	}

	cf.CreatedAt = createdAt.Format(time.RFC3339)
	cf.UpdatedAt = updatedAt.Format(time.RFC3339)
	return cf, nil
}

// ListCorrectionFactors lists correction factors with filters and pagination.
func (r *Repo) ListCorrectionFactors(ctx context.Context, params ListCorrectionFactorsParams) ([]CorrectionFactor, int, error) {
	whereClauses := []string{"organization_id = $1"}
	args := []interface{}{params.OrganizationID}
	argIdx := 2

	if params.Type != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("type = $%d", argIdx))
		args = append(args, params.Type)
		argIdx++
	}

	whereClause := strings.Join(whereClauses, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM tarieven_correctiefactoren WHERE %s", whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count correction factors: %w", err)
	}

	sortColumn := "type"
	switch params.SortBy {
	case "value":
		sortColumn = "waarde"
	case "factor":
		sortColumn = "factor"
	case "createdAt":
		sortColumn = "created_at"
	case "updatedAt":
		sortColumn = "updated_at"
	}

	sortOrder := "ASC"
	if params.SortOrder == "desc" {
		sortOrder = "DESC"
	}

	args = append(args, params.Limit, params.Offset)
	query := fmt.Sprintf(`
		SELECT id, organization_id, type, waarde, factor, created_at, updated_at
		FROM tarieven_correctiefactoren
		WHERE %s
		ORDER BY %s %s, waarde ASC
		LIMIT $%d OFFSET $%d
	`, whereClause, sortColumn, sortOrder, argIdx, argIdx+1)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list correction factors: %w", err)
	}
	defer rows.Close()

	items := make([]CorrectionFactor, 0)
	for rows.Next() {
		var cf CorrectionFactor
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&cf.ID, &cf.OrganizationID, &cf.Type, &cf.Value, &cf.Factor, &createdAt, &updatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan correction factor: %w", err)
		}
		cf.CreatedAt = createdAt.Format(time.RFC3339)
		cf.UpdatedAt = updatedAt.Format(time.RFC3339)
		items = append(items, cf)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("iterate correction factors: %w", rows.Err())
	}

	return items, total, nil
}

// AllCorrectionFactors loads every correction factor for an organization.
func (r *Repo) AllCorrectionFactors(ctx context.Context, organizationID uuid.UUID) ([]CorrectionFactor, error) {
	query := `
		SELECT id, organization_id, type, waarde, factor, created_at, updated_at
		FROM tarieven_correctiefactoren
		WHERE organization_id = $1
		ORDER BY type ASC, waarde ASC`

	rows, err := r.pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("all correction factors: %w", err)
	}
	defer rows.Close()

	items := make([]CorrectionFactor, 0)
	for rows.Next() {
		var cf CorrectionFactor
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&cf.ID, &cf.OrganizationID, &cf.Type, &cf.Value, &cf.Factor, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan correction factor: %w", err)
		}
		cf.CreatedAt = createdAt.Format(time.RFC3339)
		cf.UpdatedAt = updatedAt.Format(time.RFC3339)
		items = append(items, cf)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate correction factors: %w", rows.Err())
	}

	return items, nil
}

// CreateProduct creates a product.
func (r *Repo) CreateProduct(ctx context.Context, params CreateProductParams) (Product, error) {
	query := `
		INSERT INTO tarieven_producten (organization_id, naam, verkoopprijs, eenheid, derving_percentage)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, organization_id, naam, verkoopprijs, eenheid, derving_percentage, created_at, updated_at`

	var product Product
	var createdAt, updatedAt time.Time
	if err := r.pool.QueryRow(ctx, query,
		params.OrganizationID, params.Name, params.SellPrice, params.Unit, params.WastagePercent,
	).Scan(
		&product.ID, &product.OrganizationID, &product.Name, &product.SellPrice, &product.Unit,
		&product.WastagePercent, &createdAt, &updatedAt,
	); err != nil {
		if isUniqueViolation(err) {
			return Product{}, apperr.Conflict("product with this name already exists")
		}
		return Product{}, fmt.Errorf("create product: %w", err)
	}

	product.CreatedAt = createdAt.Format(time.RFC3339)
	product.UpdatedAt = updatedAt.Format(time.RFC3339)
	return product, nil
}

// UpsertProduct inserts a product or updates the price of an existing name.
// Used by the seeder.
func (r *Repo) UpsertProduct(ctx context.Context, params CreateProductParams) (Product, error) {
	query := `
		INSERT INTO tarieven_producten (organization_id, naam, verkoopprijs, eenheid, derving_percentage)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (organization_id, naam)
		DO UPDATE SET verkoopprijs = EXCLUDED.verkoopprijs, eenheid = EXCLUDED.eenheid,
			derving_percentage = EXCLUDED.derving_percentage, updated_at = now()
		RETURNING id, organization_id, naam, verkoopprijs, eenheid, derving_percentage, created_at, updated_at`

	var product Product
	var createdAt, updatedAt time.Time
	if err := r.pool.QueryRow(ctx, query,
		params.OrganizationID, params.Name, params.SellPrice, params.Unit, params.WastagePercent,
	).Scan(
		&product.ID, &product.OrganizationID, &product.Name, &product.SellPrice, &product.Unit,
		&product.WastagePercent, &createdAt, &updatedAt,
	); err != nil {
		return Product{}, fmt.Errorf("upsert product: %w", err)
	}

	product.CreatedAt = createdAt.Format(time.RFC3339)
	product.UpdatedAt = updatedAt.Format(time.RFC3339)
	return product, nil
}

// UpdateProduct updates a product.
func (r *Repo) UpdateProduct(ctx context.Context, params UpdateProductParams) (Product, error) {
	query := `
		UPDATE tarieven_producten
		SET naam = COALESCE($3, naam),
			verkoopprijs = COALESCE($4, verkoopprijs),
			eenheid = COALESCE($5, eenheid),
			derving_percentage = COALESCE($6, derving_percentage),
			updated_at = now()
		WHERE id = $1 AND organization_id = $2
		RETURNING id, organization_id, naam, verkoopprijs, eenheid, derving_percentage, created_at, updated_at`

	var product Product
	var createdAt, updatedAt time.Time
	if err := r.pool.QueryRow(ctx, query,
		params.ID, params.OrganizationID, params.Name, params.SellPrice, params.Unit, params.WastagePercent,
	).Scan(
		&product.ID, &product.OrganizationID, &product.Name, &product.SellPrice, &product.Unit,
		&product.WastagePercent, &createdAt, &updatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, apperr.NotFound(productNotFoundMessage)
		}
		if isUniqueViolation(err) {
			return Product{}, apperr.Conflict("product with this name already exists")
		}
		return Product{}, fmt.Errorf("update product: %w", err)
	}

	product.CreatedAt = createdAt.Format(time.RFC3339)
	product.UpdatedAt = updatedAt.Format(time.RFC3339)
	return product, nil
}

// DeleteProduct deletes a product.
func (r *Repo) DeleteProduct(ctx context.Context, organizationID uuid.UUID, id uuid.UUID) error {
	query := `DELETE FROM tarieven_producten WHERE id = $1 AND organization_id = $2`
	result, err := r.pool.Exec(ctx, query, id, organizationID)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(productNotFoundMessage)
	}
	return nil
}

// GetProductByID retrieves a product by ID.
func (r *Repo) GetProductByID(ctx context.Context, organizationID uuid.UUID, id uuid.UUID) (Product, error) {
	query := `
		SELECT id, organization_id, naam, verkoopprijs, eenheid, derving_percentage, created_at, updated_at
		FROM tarieven_producten
		WHERE id = $1 AND organization_id = $2`

	var product Product
	var createdAt, updatedAt time.Time
	if err := r.pool.QueryRow(ctx, query, id, organizationID).Scan(
		&product.ID, &product.OrganizationID, &product.Name, &product.SellPrice, &product.Unit,
		&product.WastagePercent, &createdAt, &updatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, apperr.NotFound(productNotFoundMessage)
		}
		return Product{}, fmt.Errorf("get product by id: %w", err)
	}

	product.CreatedAt = createdAt.Format(time.RFC3339)
	product.UpdatedAt = updatedAt.Format(time.RFC3339)
	return product, nil
}

// ListProducts lists products with filters and pagination.
func (r *Repo) ListProducts(ctx context.Context, params ListProductsParams) ([]Product, int, error) {
	whereClauses := []string{"organization_id = $1"}
	args := []interface{}{params.OrganizationID}
	argIdx := 2

	if params.Search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("naam ILIKE $%d", argIdx))
		args = append(args, "%"+params.Search+"%")
		argIdx++
	}

	whereClause := strings.Join(whereClauses, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM tarieven_producten WHERE %s", whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	sortColumn := "naam"
	switch params.SortBy {
	case "sellPrice":
		sortColumn = "verkoopprijs"
	case "createdAt":
		sortColumn = "created_at"
	case "updatedAt":
		sortColumn = "updated_at"
	}

	sortOrder := "ASC"
	if params.SortOrder == "desc" {
		sortOrder = "DESC"
	}

	args = append(args, params.Limit, params.Offset)
	query := fmt.Sprintf(`
		SELECT id, organization_id, naam, verkoopprijs, eenheid, derving_percentage, created_at, updated_at
		FROM tarieven_producten
		WHERE %s
		ORDER BY %s %s, naam ASC
		LIMIT $%d OFFSET $%d
	`, whereClause, sortColumn, sortOrder, argIdx, argIdx+1)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	items := make([]Product, 0)
	for rows.Next() {
		var product Product
		var createdAt, updatedAt time.Time
		if err := rows.Scan(
			&product.ID, &product.OrganizationID, &product.Name, &product.SellPrice, &product.Unit,
			&product.WastagePercent, &createdAt, &updatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		product.CreatedAt = createdAt.Format(time.RFC3339)
		product.UpdatedAt = updatedAt.Format(time.RFC3339)
		items = append(items, product)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("iterate products: %w", rows.Err())
	}

	return items, total, nil
}

// AllProducts loads every product for an organization.
func (r *Repo) AllProducts(ctx context.Context, organizationID uuid.UUID) ([]Product, error) {
	query := `
		SELECT id, organization_id, naam, verkoopprijs, eenheid, derving_percentage, created_at, updated_at
		FROM tarieven_producten
		WHERE organization_id = $1
		ORDER BY naam ASC`

	rows, err := r.pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("all products: %w", err)
	}
	defer rows.Close()

	items := make([]Product, 0)
	for rows.Next() {
		var product Product
		var createdAt, updatedAt time.Time
		if err := rows.Scan(
			&product.ID, &product.OrganizationID, &product.Name, &product.SellPrice, &product.Unit,
			&product.WastagePercent, &createdAt, &updatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		product.CreatedAt = createdAt.Format(time.RFC3339)
		product.UpdatedAt = updatedAt.Format(time.RFC3339)
		items = append(items, product)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate products: %w", rows.Err())
	}

	return items, nil
}

// GetSettings retrieves the settings row for an organization.
func (r *Repo) GetSettings(ctx context.Context, organizationID uuid.UUID) (Settings, error) {
	query := `
		SELECT organization_id, uurtarief, standaard_marge_percentage, btw_percentage, updated_at
		FROM tarieven_instellingen
		WHERE organization_id = $1`

	var settings Settings
	var updatedAt time.Time
	if err := r.pool.QueryRow(ctx, query, organizationID).Scan(
		&settings.OrganizationID, &settings.HourlyRate, &settings.DefaultMarginPercent, &settings.VatPercent,
		&updatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Settings{}, apperr.NotFound(settingsNotFoundMessage)
		}
		return Settings{}, fmt.Errorf("get settings: %w", err)
	}

	settings.UpdatedAt = updatedAt.Format(time.RFC3339)
	return settings, nil
}

// UpsertSettings inserts or replaces the settings row for an organization.
func (r *Repo) UpsertSettings(ctx context.Context, params UpsertSettingsParams) (Settings, error) {
	query := `
		INSERT INTO tarieven_instellingen (organization_id, uurtarief, standaard_marge_percentage, btw_percentage)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (organization_id)
		DO UPDATE SET uurtarief = EXCLUDED.uurtarief,
			standaard_marge_percentage = EXCLUDED.standaard_marge_percentage,
			btw_percentage = EXCLUDED.btw_percentage,
			updated_at = now()
		RETURNING organization_id, uurtarief, standaard_marge_percentage, btw_percentage, updated_at`

	var settings Settings
	var updatedAt time.Time
	if err := r.pool.QueryRow(ctx, query,
		params.OrganizationID, params.HourlyRate, params.DefaultMarginPercent, params.VatPercent,
	).Scan(
		&settings.OrganizationID, &settings.HourlyRate, &settings.DefaultMarginPercent, &settings.VatPercent,
		&updatedAt,
	); err != nil {
		return Settings{}, fmt.Errorf("upsert settings: %w", err)
	}

	settings.UpdatedAt = updatedAt.Format(time.RFC3339)
	return settings, nil
}
