package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"offerte-engine-backend/internal/events"
	"offerte-engine-backend/internal/offertes/engine"
	"offerte-engine-backend/internal/tarieven/repository"
	"offerte-engine-backend/internal/tarieven/transport"
	"offerte-engine-backend/platform/logger"
)

// Table identifiers carried on RatesChanged events.
const (
	tableStandardHours     = "normuren"
	tableCorrectionFactors = "correctiefactoren"
	tableProducts          = "producten"
	tableSettings          = "instellingen"
)

// Service provides business logic for the rate tables.
type Service struct {
	repo     repository.Repository
	eventBus events.Bus
	log      *logger.Logger
}

// New creates a new rates service.
func New(repo repository.Repository, eventBus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, eventBus: eventBus, log: log}
}

// Snapshot bundles the four reference tables in the shape the calculation
// engine consumes.
type Snapshot struct {
	StandardHours     []engine.StandardHour
	CorrectionFactors []engine.CorrectionFactor
	Products          []engine.Product
	Settings          engine.Settings
}

// Snapshot loads all four reference tables for an organization concurrently.
// A missing settings row is an error: quotes cannot be priced without an
// hourly rate.
func (s *Service) Snapshot(ctx context.Context, tenantID uuid.UUID) (Snapshot, error) {
	var (
		hours    []repository.StandardHour
		factors  []repository.CorrectionFactor
		products []repository.Product
		settings repository.Settings
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		hours, err = s.repo.AllStandardHours(gctx, tenantID)
		return err
	})
	g.Go(func() error {
		var err error
		factors, err = s.repo.AllCorrectionFactors(gctx, tenantID)
		return err
	})
	g.Go(func() error {
		var err error
		products, err = s.repo.AllProducts(gctx, tenantID)
		return err
	})
	g.Go(func() error {
		var err error
		settings, err = s.repo.GetSettings(gctx, tenantID)
		return err
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}

	return Snapshot{
		StandardHours:     toEngineStandardHours(hours),
		CorrectionFactors: toEngineCorrectionFactors(factors),
		Products:          toEngineProducts(products),
		Settings:          toEngineSettings(settings),
	}, nil
}

// GetStandardHourByID retrieves a standard-hour entry by ID.
func (s *Service) GetStandardHourByID(ctx context.Context, tenantID uuid.UUID, id uuid.UUID) (transport.StandardHourResponse, error) {
	entry, err := s.repo.GetStandardHourByID(ctx, tenantID, id)
	if err != nil {
		return transport.StandardHourResponse{}, err
	}
	return toStandardHourResponse(entry), nil
}

// ListStandardHoursWithFilters retrieves standard hours with filters and pagination.
func (s *Service) ListStandardHoursWithFilters(ctx context.Context, tenantID uuid.UUID, req transport.ListStandardHoursRequest) (transport.StandardHourListResponse, error) {
	page, pageSize := normalizePaging(req.Page, req.PageSize)

	params := repository.ListStandardHoursParams{
		OrganizationID: tenantID,
		Scope:          strings.TrimSpace(req.Scope),
		Search:         strings.TrimSpace(req.Search),
		Offset:         (page - 1) * pageSize,
		Limit:          pageSize,
		SortBy:         req.SortBy,
		SortOrder:      req.SortOrder,
	}

	items, total, err := s.repo.ListStandardHours(ctx, params)
	if err != nil {
		return transport.StandardHourListResponse{}, err
	}

	return toStandardHourListResponse(items, total, page, pageSize), nil
}

// CreateStandardHour creates a standard-hour entry.
func (s *Service) CreateStandardHour(ctx context.Context, tenantID uuid.UUID, req transport.CreateStandardHourRequest) (transport.StandardHourResponse, error) {
	entry, err := s.repo.CreateStandardHour(ctx, repository.CreateStandardHourParams{
		OrganizationID: tenantID,
		Scope:          strings.TrimSpace(req.Scope),
		Activity:       strings.TrimSpace(req.Activity),
		HoursPerUnit:   *req.HoursPerUnit,
		Unit:           strings.TrimSpace(req.Unit),
	})
	if err != nil {
		return transport.StandardHourResponse{}, err
	}

	s.log.Info("standard hour created", "id", entry.ID, "scope", entry.Scope, "activity", entry.Activity)
	s.publishRatesChanged(ctx, tenantID, tableStandardHours)
	return toStandardHourResponse(entry), nil
}

// UpdateStandardHour updates a standard-hour entry.
func (s *Service) UpdateStandardHour(ctx context.Context, tenantID uuid.UUID, id uuid.UUID, req transport.UpdateStandardHourRequest) (transport.StandardHourResponse, error) {
	entry, err := s.repo.UpdateStandardHour(ctx, repository.UpdateStandardHourParams{
		ID:             id,
		OrganizationID: tenantID,
		Scope:          trimPtr(req.Scope),
		Activity:       trimPtr(req.Activity),
		HoursPerUnit:   req.HoursPerUnit,
		Unit:           trimPtr(req.Unit),
	})
	if err != nil {
		return transport.StandardHourResponse{}, err
	}

	s.log.Info("standard hour updated", "id", entry.ID, "scope", entry.Scope, "activity", entry.Activity)
	s.publishRatesChanged(ctx, tenantID, tableStandardHours)
	return toStandardHourResponse(entry), nil
}

// DeleteStandardHour deletes a standard-hour entry.
func (s *Service) DeleteStandardHour(ctx context.Context, tenantID uuid.UUID, id uuid.UUID) error {
	if err := s.repo.DeleteStandardHour(ctx, tenantID, id); err != nil {
		return err
	}

	s.log.Info("standard hour deleted", "id", id)
	s.publishRatesChanged(ctx, tenantID, tableStandardHours)
	return nil
}

// GetCorrectionFactorByID retrieves a correction factor by ID.
func (s *Service) GetCorrectionFactorByID(ctx context.Context, tenantID uuid.UUID, id uuid.UUID) (transport.CorrectionFactorResponse, error) {
	cf, err := s.repo.GetCorrectionFactorByID(ctx, tenantID, id)
	if err != nil {
		return transport.CorrectionFactorResponse{}, err
	}
	return toCorrectionFactorResponse(cf), nil
}

// ListCorrectionFactorsWithFilters retrieves correction factors with filters and pagination.
func (s *Service) ListCorrectionFactorsWithFilters(ctx context.Context, tenantID uuid.UUID, req transport.ListCorrectionFactorsRequest) (transport.CorrectionFactorListResponse, error) {
	page, pageSize := normalizePaging(req.Page, req.PageSize)

	params := repository.ListCorrectionFactorsParams{
		OrganizationID: tenantID,
		Type:           strings.TrimSpace(req.Type),
		Offset:         (page - 1) * pageSize,
		Limit:          pageSize,
		SortBy:         req.SortBy,
		SortOrder:      req.SortOrder,
	}

	items, total, err := s.repo.ListCorrectionFactors(ctx, params)
	if err != nil {
		return transport.CorrectionFactorListResponse{}, err
	}

	return toCorrectionFactorListResponse(items, total, page, pageSize), nil
}

// CreateCorrectionFactor creates a correction factor.
func (s *Service) CreateCorrectionFactor(ctx context.Context, tenantID uuid.UUID, req transport.CreateCorrectionFactorRequest) (transport.CorrectionFactorResponse, error) {
	cf, err := s.repo.CreateCorrectionFactor(ctx, repository.CreateCorrectionFactorParams{
		OrganizationID: tenantID,
		Type:           strings.TrimSpace(req.Type),
		Value:          strings.TrimSpace(req.Value),
		Factor:         *req.Factor,
	})
	if err != nil {
		return transport.CorrectionFactorResponse{}, err
	}

	s.log.Info("correction factor created", "id", cf.ID, "type", cf.Type, "value", cf.Value)
	s.publishRatesChanged(ctx, tenantID, tableCorrectionFactors)
	return toCorrectionFactorResponse(cf), nil
}

// UpdateCorrectionFactor updates a correction factor.
func (s *Service) UpdateCorrectionFactor(ctx context.Context, tenantID uuid.UUID, id uuid.UUID, req transport.UpdateCorrectionFactorRequest) (transport.CorrectionFactorResponse, error) {
	cf, err := s.repo.UpdateCorrectionFactor(ctx, repository.UpdateCorrectionFactorParams{
		ID:             id,
		OrganizationID: tenantID,
		Type:           trimPtr(req.Type),
		Value:          trimPtr(req.Value),
		Factor:         req.Factor,
	})
	if err != nil {
		return transport.CorrectionFactorResponse{}, err
	}

	s.log.Info("correction factor updated", "id", cf.ID, "type", cf.Type, "value", cf.Value)
	s.publishRatesChanged(ctx, tenantID, tableCorrectionFactors)
	return toCorrectionFactorResponse(cf), nil
}

// DeleteCorrectionFactor deletes a correction factor.
func (s *Service) DeleteCorrectionFactor(ctx context.Context, tenantID uuid.UUID, id uuid.UUID) error {
	if err := s.repo.DeleteCorrectionFactor(ctx, tenantID, id); err != nil {
		return err
	}

	s.log.Info("correction factor deleted", "id", id)
	s.publishRatesChanged(ctx, tenantID, tableCorrectionFactors)
	return nil
}

// GetProductByID retrieves a product by ID.
func (s *Service) GetProductByID(ctx context.Context, tenantID uuid.UUID, id uuid.UUID) (transport.ProductResponse, error) {
	product, err := s.repo.GetProductByID(ctx, tenantID, id)
	if err != nil {
		return transport.ProductResponse{}, err
	}
	return toProductResponse(product), nil
}

// ListProductsWithFilters retrieves products with search and pagination.
func (s *Service) ListProductsWithFilters(ctx context.Context, tenantID uuid.UUID, req transport.ListProductsRequest) (transport.ProductListResponse, error) {
	page, pageSize := normalizePaging(req.Page, req.PageSize)

	params := repository.ListProductsParams{
		OrganizationID: tenantID,
		Search:         strings.TrimSpace(req.Search),
		Offset:         (page - 1) * pageSize,
		Limit:          pageSize,
		SortBy:         req.SortBy,
		SortOrder:      req.SortOrder,
	}

	items, total, err := s.repo.ListProducts(ctx, params)
	if err != nil {
		return transport.ProductListResponse{}, err
	}

	return toProductListResponse(items, total, page, pageSize), nil
}

// CreateProduct creates a product.
func (s *Service) CreateProduct(ctx context.Context, tenantID uuid.UUID, req transport.CreateProductRequest) (transport.ProductResponse, error) {
	var wastage float64
	if req.WastagePercent != nil {
		wastage = *req.WastagePercent
	}

	product, err := s.repo.CreateProduct(ctx, repository.CreateProductParams{
		OrganizationID: tenantID,
		Name:           strings.TrimSpace(req.Name),
		SellPrice:      *req.SellPrice,
		Unit:           strings.TrimSpace(req.Unit),
		WastagePercent: wastage,
	})
	if err != nil {
		return transport.ProductResponse{}, err
	}

	s.log.Info("product created", "id", product.ID, "name", product.Name)
	s.publishRatesChanged(ctx, tenantID, tableProducts)
	return toProductResponse(product), nil
}

// UpdateProduct updates a product.
func (s *Service) UpdateProduct(ctx context.Context, tenantID uuid.UUID, id uuid.UUID, req transport.UpdateProductRequest) (transport.ProductResponse, error) {
	product, err := s.repo.UpdateProduct(ctx, repository.UpdateProductParams{
		ID:             id,
		OrganizationID: tenantID,
		Name:           trimPtr(req.Name),
		SellPrice:      req.SellPrice,
		Unit:           trimPtr(req.Unit),
		WastagePercent: req.WastagePercent,
	})
	if err != nil {
		return transport.ProductResponse{}, err
	}

	s.log.Info("product updated", "id", product.ID, "name", product.Name)
	s.publishRatesChanged(ctx, tenantID, tableProducts)
	return toProductResponse(product), nil
}

// DeleteProduct deletes a product.
func (s *Service) DeleteProduct(ctx context.Context, tenantID uuid.UUID, id uuid.UUID) error {
	if err := s.repo.DeleteProduct(ctx, tenantID, id); err != nil {
		return err
	}

	s.log.Info("product deleted", "id", id)
	s.publishRatesChanged(ctx, tenantID, tableProducts)
	return nil
}

// GetSettings retrieves the organization's pricing settings.
func (s *Service) GetSettings(ctx context.Context, tenantID uuid.UUID) (transport.SettingsResponse, error) {
	settings, err := s.repo.GetSettings(ctx, tenantID)
	if err != nil {
		return transport.SettingsResponse{}, err
	}
	return toSettingsResponse(settings), nil
}

// UpsertSettings inserts or replaces the organization's pricing settings.
func (s *Service) UpsertSettings(ctx context.Context, tenantID uuid.UUID, req transport.UpsertSettingsRequest) (transport.SettingsResponse, error) {
	settings, err := s.repo.UpsertSettings(ctx, repository.UpsertSettingsParams{
		OrganizationID:       tenantID,
		HourlyRate:           *req.HourlyRate,
		DefaultMarginPercent: *req.DefaultMarginPercent,
		VatPercent:           *req.VatPercent,
	})
	if err != nil {
		return transport.SettingsResponse{}, err
	}

	s.log.Info("settings updated", "organizationId", tenantID, "hourlyRate", settings.HourlyRate)
	s.publishRatesChanged(ctx, tenantID, tableSettings)
	return toSettingsResponse(settings), nil
}

func (s *Service) publishRatesChanged(ctx context.Context, tenantID uuid.UUID, table string) {
	if s.eventBus == nil {
		return
	}
	s.eventBus.Publish(ctx, events.RatesChanged{
		BaseEvent:      events.NewBaseEvent(),
		OrganizationID: tenantID,
		Table:          table,
	})
}

func normalizePaging(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}

func trimPtr(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	return &trimmed
}

func totalPagesFor(total, pageSize int) int {
	if pageSize < 1 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

func toStandardHourResponse(entry repository.StandardHour) transport.StandardHourResponse {
	return transport.StandardHourResponse{
		ID:           entry.ID,
		Scope:        entry.Scope,
		Activity:     entry.Activity,
		HoursPerUnit: entry.HoursPerUnit,
		Unit:         entry.Unit,
		CreatedAt:    entry.CreatedAt,
		UpdatedAt:    entry.UpdatedAt,
	}
}

func toStandardHourListResponse(items []repository.StandardHour, total int, page int, pageSize int) transport.StandardHourListResponse {
	responses := make([]transport.StandardHourResponse, len(items))
	for i, item := range items {
		responses[i] = toStandardHourResponse(item)
	}
	return transport.StandardHourListResponse{
		Items:      responses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPagesFor(total, pageSize),
	}
}

func toCorrectionFactorResponse(cf repository.CorrectionFactor) transport.CorrectionFactorResponse {
	return transport.CorrectionFactorResponse{
		ID:        cf.ID,
		Type:      cf.Type,
		Value:     cf.Value,
		Factor:    cf.Factor,
		CreatedAt: cf.CreatedAt,
		UpdatedAt: cf.UpdatedAt,
	}
}

func toCorrectionFactorListResponse(items []repository.CorrectionFactor, total int, page int, pageSize int) transport.CorrectionFactorListResponse {
	responses := make([]transport.CorrectionFactorResponse, len(items))
	for i, item := range items {
		responses[i] = toCorrectionFactorResponse(item)
	}
	return transport.CorrectionFactorListResponse{
		Items:      responses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPagesFor(total, pageSize),
	}
}

func toProductResponse(product repository.Product) transport.ProductResponse {
	return transport.ProductResponse{
		ID:             product.ID,
		Name:           product.Name,
		SellPrice:      product.SellPrice,
		Unit:           product.Unit,
		WastagePercent: product.WastagePercent,
		CreatedAt:      product.CreatedAt,
		UpdatedAt:      product.UpdatedAt,
	}
}

func toProductListResponse(items []repository.Product, total int, page int, pageSize int) transport.ProductListResponse {
	responses := make([]transport.ProductResponse, len(items))
	for i, item := range items {
		responses[i] = toProductResponse(item)
	}
	return transport.ProductListResponse{
		Items:      responses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPagesFor(total, pageSize),
	}
}

func toSettingsResponse(settings repository.Settings) transport.SettingsResponse {
	return transport.SettingsResponse{
		HourlyRate:           settings.HourlyRate,
		DefaultMarginPercent: settings.DefaultMarginPercent,
		VatPercent:           settings.VatPercent,
		UpdatedAt:            settings.UpdatedAt,
	}
}

func toEngineStandardHours(items []repository.StandardHour) []engine.StandardHour {
	result := make([]engine.StandardHour, len(items))
	for i, item := range items {
		result[i] = engine.StandardHour{
			Scope:        item.Scope,
			Activity:     item.Activity,
			HoursPerUnit: item.HoursPerUnit,
			Unit:         item.Unit,
		}
	}
	return result
}

func toEngineCorrectionFactors(items []repository.CorrectionFactor) []engine.CorrectionFactor {
	result := make([]engine.CorrectionFactor, len(items))
	for i, item := range items {
		result[i] = engine.CorrectionFactor{
			Type:   item.Type,
			Value:  item.Value,
			Factor: item.Factor,
		}
	}
	return result
}

func toEngineProducts(items []repository.Product) []engine.Product {
	result := make([]engine.Product, len(items))
	for i, item := range items {
		result[i] = engine.Product{
			Name:           item.Name,
			SellPrice:      item.SellPrice,
			Unit:           item.Unit,
			WastagePercent: item.WastagePercent,
		}
	}
	return result
}

func toEngineSettings(settings repository.Settings) engine.Settings {
	return engine.Settings{
		HourlyRate:           settings.HourlyRate,
		DefaultMarginPercent: settings.DefaultMarginPercent,
		VatPercent:           settings.VatPercent,
	}
}
