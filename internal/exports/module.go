package exports

import (
	apphttp "offerte-engine-backend/internal/http"
	"offerte-engine-backend/internal/storage"
	"offerte-engine-backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the exports bounded context module implementing http.Module.
type Module struct {
	handler *Handler
	repo    *Repository
}

// NewModule creates and initializes the exports module.
func NewModule(pool *pgxpool.Pool, val *validator.Validator) *Module {
	repo := NewRepository(pool)
	handler := NewHandler(repo, val)

	return &Module{
		handler: handler,
		repo:    repo,
	}
}

// SetArchiveStore wires the object store used for quote archiving.
func (m *Module) SetArchiveStore(store storage.ArchiveStore, bucket string) {
	m.handler.SetArchiveStore(store, bucket)
}

// Repository exposes the export repository for background workers.
func (m *Module) Repository() *Repository {
	return m.repo
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "exports"
}

// RegisterRoutes mounts export routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	publicGroup := ctx.V1.Group("/exports")
	publicGroup.Use(APIKeyAuthMiddleware(m.repo))
	publicGroup.GET("/offertes.csv", m.handler.HandleExportAcceptedCSV)

	quoteGroup := ctx.Protected.Group("/offertes")
	quoteGroup.GET("/:id/export.xlsx", m.handler.HandleDownloadWorkbook)
	quoteGroup.POST("/:id/archief", m.handler.HandleArchiveQuote)

	adminGroup := ctx.Admin.Group("/exports/keys")
	adminGroup.POST("", m.handler.HandleCreateAPIKey)
	adminGroup.GET("", m.handler.HandleListAPIKeys)
	adminGroup.DELETE("/:keyId", m.handler.HandleRevokeAPIKey)
}

var _ apphttp.Module = (*Module)(nil)
