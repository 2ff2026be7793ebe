// Package offertes provides the quote domain module: pricing, persistence
// and the customer-facing proposal flow.
package offertes

import (
	"offerte-engine-backend/internal/events"
	apphttp "offerte-engine-backend/internal/http"
	"offerte-engine-backend/internal/offertes/engine"
	"offerte-engine-backend/internal/offertes/handler"
	"offerte-engine-backend/internal/offertes/repository"
	"offerte-engine-backend/internal/offertes/service"
	"offerte-engine-backend/platform/config"
	"offerte-engine-backend/platform/logger"
	"offerte-engine-backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the offertes domain module.
type Module struct {
	handler       *handler.Handler
	publicHandler *handler.PublicHandler
	service       *service.Service
	repo          repository.Repository
	engine        *engine.Engine
}

// NewModule creates a new offertes module with all dependencies wired.
// The rate tables are read through the RateSource adapter so this module
// never depends on the tarieven packages directly.
func NewModule(pool *pgxpool.Pool, rates service.RateSource, eventBus events.Bus, val *validator.Validator, cfg config.PublicLinkConfig, log *logger.Logger) *Module {
	repo := repository.New(pool)
	eng := engine.New(engine.DefaultConfig())
	svc := service.New(repo, rates, eng, log)
	svc.SetEventBus(eventBus)
	h := handler.New(svc, val)
	ph := handler.NewPublicHandler(svc, val, cfg)

	return &Module{
		handler:       h,
		publicHandler: ph,
		service:       svc,
		repo:          repo,
		engine:        eng,
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "offertes"
}

// Service returns the service layer for use by adapters and the scheduler.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository exposes the quote store for the exports module.
func (m *Module) Repository() repository.Repository {
	return m.repo
}

// Engine exposes the calculation engine.
func (m *Module) Engine() *engine.Engine {
	return m.engine
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	quotes := ctx.Protected.Group("/offertes")
	m.handler.RegisterRoutes(quotes)

	// Public routes, no auth middleware
	publicQuotes := ctx.V1.Group("/public/offertes")
	m.publicHandler.RegisterRoutes(publicQuotes)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
