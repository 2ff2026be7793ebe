// Package http assembles the gin application from its domain modules.
package http

import (
	"offerte-engine-backend/platform/config"
	"offerte-engine-backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Module is implemented by each domain module so the router stays unaware
// of individual endpoints.
type Module interface {
	// Name identifies the module in startup logs.
	Name() string
	// RegisterRoutes mounts the module's routes on the groups in ctx.
	RegisterRoutes(ctx *RouterContext)
}

// RouterContext carries the shared route groups and middleware a module
// needs when registering itself.
type RouterContext struct {
	// Engine is the root engine, for modules that mount outside /api/v1.
	Engine *gin.Engine
	// V1 is the public /api/v1 group.
	V1 *gin.RouterGroup
	// Protected requires a valid access token.
	Protected *gin.RouterGroup
	// Admin additionally requires the admin role.
	Admin *gin.RouterGroup
	// Config exposes the JWT settings to modules that issue tokens.
	Config config.JWTConfig
	// AuthMiddleware is the token check used by Protected and Admin.
	AuthMiddleware gin.HandlerFunc
	// AuthRateLimiter is the stricter per-IP limiter for login routes.
	AuthRateLimiter *httpkit.AuthRateLimiter
}
