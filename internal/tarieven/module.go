// Package tarieven provides the rate-tables bounded context module: the
// normuren, correctiefactoren, producten and instellingen reference tables
// that feed the quote calculation engine.
package tarieven

import (
	"offerte-engine-backend/internal/events"
	apphttp "offerte-engine-backend/internal/http"
	"offerte-engine-backend/internal/tarieven/handler"
	"offerte-engine-backend/internal/tarieven/repository"
	"offerte-engine-backend/internal/tarieven/service"
	"offerte-engine-backend/platform/logger"
	"offerte-engine-backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the rate-tables bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the rates module.
func NewModule(pool *pgxpool.Pool, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, bus, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "tarieven"
}

// Service returns the service layer for external use. The quote module uses
// it to load rate snapshots for calculations.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for direct access if needed.
func (m *Module) Repository() repository.Repository {
	return m.repo
}

// RegisterRoutes mounts rate-table routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// Protected read-only endpoints
	ctx.Protected.GET("/tarieven/normuren", m.handler.ListStandardHours)
	ctx.Protected.GET("/tarieven/normuren/:id", m.handler.GetStandardHourByID)
	ctx.Protected.GET("/tarieven/correctiefactoren", m.handler.ListCorrectionFactors)
	ctx.Protected.GET("/tarieven/correctiefactoren/:id", m.handler.GetCorrectionFactorByID)
	ctx.Protected.GET("/tarieven/producten", m.handler.ListProducts)
	ctx.Protected.GET("/tarieven/producten/:id", m.handler.GetProductByID)
	ctx.Protected.GET("/tarieven/instellingen", m.handler.GetSettings)

	// Admin CRUD endpoints
	adminGroup := ctx.Admin.Group("/tarieven")
	adminGroup.POST("/normuren", m.handler.CreateStandardHour)
	adminGroup.PUT("/normuren/:id", m.handler.UpdateStandardHour)
	adminGroup.DELETE("/normuren/:id", m.handler.DeleteStandardHour)

	adminGroup.POST("/correctiefactoren", m.handler.CreateCorrectionFactor)
	adminGroup.PUT("/correctiefactoren/:id", m.handler.UpdateCorrectionFactor)
	adminGroup.DELETE("/correctiefactoren/:id", m.handler.DeleteCorrectionFactor)

	adminGroup.POST("/producten", m.handler.CreateProduct)
	adminGroup.PUT("/producten/:id", m.handler.UpdateProduct)
	adminGroup.DELETE("/producten/:id", m.handler.DeleteProduct)

	adminGroup.PUT("/instellingen", m.handler.UpsertSettings)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
