package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"offerte-engine-backend/internal/events"
	"offerte-engine-backend/internal/offertes/engine"
	"offerte-engine-backend/internal/offertes/repository"
	"offerte-engine-backend/internal/offertes/transport"
	"offerte-engine-backend/platform/apperr"
	"offerte-engine-backend/platform/logger"
	"offerte-engine-backend/platform/phone"

	"github.com/google/uuid"
)

const (
	defaultValidityDays = 30

	msgNoLinesGenerated = "geen regels gegenereerd voor de geselecteerde scopes; controleer de normuren"
)

// RateSnapshot bundles the reference tables required to price a quote.
type RateSnapshot struct {
	StandardHours     []engine.StandardHour
	CorrectionFactors []engine.CorrectionFactor
	Products          []engine.Product
	Settings          engine.Settings
}

// RateSource is the narrow interface the quotes service needs to obtain the
// rate tables. Implemented by an adapter in internal/adapters that wraps the
// tarieven service.
type RateSource interface {
	RateSnapshot(ctx context.Context, orgID uuid.UUID) (*RateSnapshot, error)
}

// Service provides business logic for quotes.
type Service struct {
	repo     repository.Repository
	rates    RateSource
	engine   *engine.Engine
	log      *logger.Logger
	eventBus events.Bus // nil disables event publication
}

// New creates a new quotes service.
func New(repo repository.Repository, rates RateSource, eng *engine.Engine, log *logger.Logger) *Service {
	return &Service{repo: repo, rates: rates, engine: eng, log: log}
}

// SetEventBus injects the event bus (set after construction to break circular deps).
func (s *Service) SetEventBus(bus events.Bus) {
	s.eventBus = bus
}

// calculation holds the outcome of one engine run.
type calculation struct {
	lines    []engine.LineItem
	totals   engine.Totals
	warnings []string
}

// calculate prices a work description against the organization's current
// rates. The fixed preparation line is appended after scope dispatch so it
// appears exactly once; the warranty line only when asked for.
func (s *Service) calculate(ctx context.Context, orgID uuid.UUID, req transport.CalculateQuoteRequest) (*calculation, error) {
	snapshot, err := s.rates.RateSnapshot(ctx, orgID)
	if err != nil {
		return nil, err
	}

	engineCtx := &engine.Context{
		StandardHours:     snapshot.StandardHours,
		CorrectionFactors: snapshot.CorrectionFactors,
		Products:          snapshot.Products,
		Settings:          snapshot.Settings,
		Accessibility:     req.Accessibility,
		BacklogSeverity:   req.BacklogSeverity,
	}
	lines := s.engine.Generate(engine.Request{
		QuoteType: engine.QuoteType(req.QuoteType),
		ScopeIDs:  req.ScopeIDs,
		ScopeData: req.ScopeData,
	}, engineCtx)

	var warnings []string
	if len(lines) == 0 {
		warnings = append(warnings, msgNoLinesGenerated)
	}

	lines = append(lines, s.engine.PreparationLine(snapshot.Settings))
	if req.IncludeWarranty {
		lines = append(lines, s.engine.WarrantyLine())
	}

	totals := engine.Aggregate(lines, snapshot.Settings, req.ScopeMargins)
	return &calculation{lines: lines, totals: totals, warnings: warnings}, nil
}

// Preview computes line items and totals without persisting anything.
func (s *Service) Preview(ctx context.Context, tenantID uuid.UUID, req transport.CalculateQuoteRequest) (*transport.CalculationResponse, error) {
	calc, err := s.calculate(ctx, tenantID, req)
	if err != nil {
		return nil, err
	}
	return &transport.CalculationResponse{
		Lines:    toEngineLineResponses(calc.lines),
		Totals:   toTotalsFromEngine(calc.totals),
		Warnings: calc.warnings,
	}, nil
}

// SupportedScopes enumerates the scope ids the engine can price for a quote type.
func (s *Service) SupportedScopes(quoteType string) *transport.ScopesResponse {
	return &transport.ScopesResponse{
		QuoteType: quoteType,
		Scopes:    s.engine.SupportedScopes(engine.QuoteType(quoteType)),
	}
}

// Create calculates and persists a new quote with its lines.
func (s *Service) Create(ctx context.Context, tenantID, actorID uuid.UUID, req transport.CreateQuoteRequest) (*transport.QuoteResponse, error) {
	calc, err := s.calculate(ctx, tenantID, req.CalculateQuoteRequest)
	if err != nil {
		return nil, err
	}

	quoteNumber, err := s.repo.NextQuoteNumber(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("generate quote number: %w", err)
	}

	scopeRequest, err := json.Marshal(req.CalculateQuoteRequest)
	if err != nil {
		return nil, fmt.Errorf("marshal scope request: %w", err)
	}

	now := time.Now()
	validUntil := req.ValidUntil
	if validUntil == nil {
		v := now.AddDate(0, 0, defaultValidityDays)
		validUntil = &v
	}

	quote := repository.Quote{
		ID:             uuid.New(),
		OrganizationID: tenantID,
		QuoteNumber:    quoteNumber,
		QuoteType:      req.QuoteType,
		Status:         string(transport.QuoteStatusDraft),

		CustomerName:    strings.TrimSpace(req.CustomerName),
		CustomerEmail:   strings.TrimSpace(req.CustomerEmail),
		CustomerPhone:   normalizedPhone(req.CustomerPhone),
		CustomerAddress: nilIfEmpty(req.CustomerAddress),

		Accessibility:   req.Accessibility,
		BacklogSeverity: nilIfEmpty(req.BacklogSeverity),
		Notes:           req.Notes,

		ScopeRequest: scopeRequest,
		ScopeMargins: req.ScopeMargins,

		MaterialCost:           calc.totals.MaterialCost,
		LaborCost:              calc.totals.LaborCost,
		TotalHours:             calc.totals.TotalHours,
		Subtotal:               calc.totals.Subtotal,
		Margin:                 calc.totals.Margin,
		EffectiveMarginPercent: calc.totals.EffectiveMarginPercent,
		ExVat:                  calc.totals.ExVat,
		Vat:                    calc.totals.Vat,
		InclVat:                calc.totals.InclVat,

		ValidUntil: validUntil,
		CreatedBy:  actorID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	lines := make([]repository.QuoteLine, len(calc.lines))
	for i, line := range calc.lines {
		lines[i] = repository.QuoteLine{
			ID:                    line.ID,
			QuoteID:               quote.ID,
			OrganizationID:        tenantID,
			Scope:                 line.Scope,
			Description:           line.Description,
			Unit:                  line.Unit,
			Quantity:              line.Quantity,
			UnitPrice:             line.UnitPrice,
			Total:                 line.Total,
			Kind:                  string(line.Kind),
			MarginOverridePercent: line.MarginOverridePercent,
			SortOrder:             i,
			CreatedAt:             now,
		}
	}

	if err := s.repo.CreateWithLines(ctx, quote, lines); err != nil {
		return nil, err
	}

	s.log.Info("quote created",
		"quoteId", quote.ID,
		"quoteNumber", quoteNumber,
		"organizationId", tenantID,
		"lines", len(lines),
	)

	if s.eventBus != nil {
		s.eventBus.Publish(ctx, events.QuoteCreated{
			BaseEvent:      events.NewBaseEvent(),
			QuoteID:        quote.ID,
			OrganizationID: tenantID,
			QuoteNumber:    quoteNumber,
			QuoteType:      quote.QuoteType,
			LineCount:      len(lines),
			TotalInclVat:   quote.InclVat,
		})
	}

	return s.GetByID(ctx, quote.ID, tenantID)
}

// GetByID retrieves a quote with its lines.
func (s *Service) GetByID(ctx context.Context, id, tenantID uuid.UUID) (*transport.QuoteResponse, error) {
	quote, err := s.repo.GetByID(ctx, id, tenantID)
	if err != nil {
		return nil, err
	}
	lines, err := s.repo.GetLinesByQuoteID(ctx, id, tenantID)
	if err != nil {
		return nil, err
	}
	return buildResponse(quote, lines), nil
}

// List retrieves quotes with filtering and pagination; lines are omitted.
func (s *Service) List(ctx context.Context, tenantID uuid.UUID, req transport.ListQuotesRequest) (*transport.QuoteListResponse, error) {
	page, pageSize := normalizePaging(req.Page, req.PageSize)

	result, err := s.repo.List(ctx, repository.ListParams{
		OrganizationID: tenantID,
		Status:         nilIfEmpty(req.Status),
		QuoteType:      nilIfEmpty(req.QuoteType),
		Search:         strings.TrimSpace(req.Search),
		SortBy:         req.SortBy,
		SortOrder:      req.SortOrder,
		Page:           page,
		PageSize:       pageSize,
	})
	if err != nil {
		return nil, err
	}

	quotes := make([]transport.QuoteResponse, len(result.Items))
	for i := range result.Items {
		quotes[i] = *buildResponse(&result.Items[i], nil)
	}

	return &transport.QuoteListResponse{
		Quotes:     quotes,
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
	}, nil
}

// statusTransitions lists which manual status changes are allowed. Verlopen
// is reached only through the expiry sweep, never by hand.
var statusTransitions = map[transport.QuoteStatus][]transport.QuoteStatus{
	transport.QuoteStatusDraft: {transport.QuoteStatusSent},
	transport.QuoteStatusSent:  {transport.QuoteStatusAccepted, transport.QuoteStatusDeclined},
}

func canTransition(from, to transport.QuoteStatus) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// UpdateStatus records a manual status change, for decisions taken outside
// the public link (accepted over the phone, declined by mail).
func (s *Service) UpdateStatus(ctx context.Context, id, tenantID, actorID uuid.UUID, status transport.QuoteStatus) (*transport.QuoteResponse, error) {
	current, err := s.repo.GetByID(ctx, id, tenantID)
	if err != nil {
		return nil, err
	}
	from := transport.QuoteStatus(current.Status)
	if from == status {
		return s.GetByID(ctx, id, tenantID)
	}
	if !canTransition(from, status) {
		return nil, apperr.BadRequest(fmt.Sprintf("cannot change status from %s to %s", from, status))
	}

	switch status {
	case transport.QuoteStatusSent:
		err = s.repo.MarkSent(ctx, id, tenantID)
	case transport.QuoteStatusAccepted:
		err = s.repo.MarkAccepted(ctx, id, actorID.String())
	case transport.QuoteStatusDeclined:
		err = s.repo.MarkDeclined(ctx, id, nil)
	default:
		err = s.repo.UpdateStatus(ctx, id, tenantID, string(status))
	}
	if err != nil {
		return nil, err
	}

	resp, err := s.GetByID(ctx, id, tenantID)
	if err != nil {
		return nil, err
	}

	s.log.Info("quote status changed",
		"quoteId", id,
		"organizationId", tenantID,
		"from", from,
		"to", status,
	)
	s.publishStatusEvent(ctx, current, status)

	return resp, nil
}

func (s *Service) publishStatusEvent(ctx context.Context, quote *repository.Quote, status transport.QuoteStatus) {
	if s.eventBus == nil {
		return
	}
	switch status {
	case transport.QuoteStatusAccepted:
		s.eventBus.Publish(ctx, events.QuoteAccepted{
			BaseEvent:      events.NewBaseEvent(),
			QuoteID:        quote.ID,
			OrganizationID: quote.OrganizationID,
			QuoteNumber:    quote.QuoteNumber,
			CustomerName:   quote.CustomerName,
			CustomerEmail:  quote.CustomerEmail,
			TotalInclVat:   quote.InclVat,
		})
	case transport.QuoteStatusDeclined:
		s.eventBus.Publish(ctx, events.QuoteDeclined{
			BaseEvent:      events.NewBaseEvent(),
			QuoteID:        quote.ID,
			OrganizationID: quote.OrganizationID,
			QuoteNumber:    quote.QuoteNumber,
		})
	}
}

// Delete removes a draft quote. Sent and decided quotes are part of the
// customer record and cannot be deleted.
func (s *Service) Delete(ctx context.Context, id, tenantID uuid.UUID) error {
	current, err := s.repo.GetByID(ctx, id, tenantID)
	if err != nil {
		return err
	}
	if current.Status != string(transport.QuoteStatusDraft) {
		return apperr.BadRequest("only draft quotes can be deleted")
	}
	if err := s.repo.Delete(ctx, id, tenantID); err != nil {
		return err
	}
	s.log.Info("quote deleted", "quoteId", id, "organizationId", tenantID)
	return nil
}

// ── Response mapping ──────────────────────────────────────────────────────────

func buildResponse(quote *repository.Quote, lines []repository.QuoteLine) *transport.QuoteResponse {
	return &transport.QuoteResponse{
		ID:              quote.ID,
		QuoteNumber:     quote.QuoteNumber,
		QuoteType:       quote.QuoteType,
		Status:          transport.QuoteStatus(quote.Status),
		CustomerName:    quote.CustomerName,
		CustomerEmail:   quote.CustomerEmail,
		CustomerPhone:   quote.CustomerPhone,
		CustomerAddress: quote.CustomerAddress,
		Accessibility:   quote.Accessibility,
		BacklogSeverity: quote.BacklogSeverity,
		Notes:           quote.Notes,
		ScopeMargins:    quote.ScopeMargins,
		Lines:           toStoredLineResponses(lines),
		Totals:          toTotalsFromQuote(quote),
		ValidUntil:      quote.ValidUntil,
		PublicToken:     quote.PublicToken,
		ArchiveKey:      quote.ArchiveKey,
		SentAt:          quote.SentAt,
		AcceptedAt:      quote.AcceptedAt,
		SignedBy:        quote.SignedBy,
		DeclinedAt:      quote.DeclinedAt,
		DeclineReason:   quote.DeclineReason,
		CreatedBy:       quote.CreatedBy,
		CreatedAt:       quote.CreatedAt,
		UpdatedAt:       quote.UpdatedAt,
	}
}

func toStoredLineResponses(lines []repository.QuoteLine) []transport.QuoteLineResponse {
	if lines == nil {
		return nil
	}
	out := make([]transport.QuoteLineResponse, len(lines))
	for i, line := range lines {
		out[i] = transport.QuoteLineResponse{
			ID:                    line.ID,
			Scope:                 line.Scope,
			Description:           line.Description,
			Unit:                  line.Unit,
			Quantity:              line.Quantity,
			UnitPrice:             line.UnitPrice,
			Total:                 line.Total,
			Kind:                  line.Kind,
			MarginOverridePercent: line.MarginOverridePercent,
			SortOrder:             line.SortOrder,
		}
	}
	return out
}

func toEngineLineResponses(lines []engine.LineItem) []transport.QuoteLineResponse {
	out := make([]transport.QuoteLineResponse, len(lines))
	for i, line := range lines {
		out[i] = transport.QuoteLineResponse{
			ID:                    line.ID,
			Scope:                 line.Scope,
			Description:           line.Description,
			Unit:                  line.Unit,
			Quantity:              line.Quantity,
			UnitPrice:             line.UnitPrice,
			Total:                 line.Total,
			Kind:                  string(line.Kind),
			MarginOverridePercent: line.MarginOverridePercent,
			SortOrder:             i,
		}
	}
	return out
}

func toTotalsFromEngine(t engine.Totals) transport.TotalsResponse {
	return transport.TotalsResponse{
		MaterialCost:           t.MaterialCost,
		LaborCost:              t.LaborCost,
		TotalHours:             t.TotalHours,
		Subtotal:               t.Subtotal,
		Margin:                 t.Margin,
		EffectiveMarginPercent: t.EffectiveMarginPercent,
		ExVat:                  t.ExVat,
		Vat:                    t.Vat,
		InclVat:                t.InclVat,
	}
}

func toTotalsFromQuote(q *repository.Quote) transport.TotalsResponse {
	return transport.TotalsResponse{
		MaterialCost:           q.MaterialCost,
		LaborCost:              q.LaborCost,
		TotalHours:             q.TotalHours,
		Subtotal:               q.Subtotal,
		Margin:                 q.Margin,
		EffectiveMarginPercent: q.EffectiveMarginPercent,
		ExVat:                  q.ExVat,
		Vat:                    q.Vat,
		InclVat:                q.InclVat,
	}
}

// ── Helpers ───────────────────────────────────────────────────────────────────

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

func nilIfEmpty(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func normalizedPhone(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	normalized := phone.NormalizeE164(trimmed)
	return &normalized
}
