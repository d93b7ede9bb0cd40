// Package router wires handlers, middleware and route groups onto the Echo
// instance.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/kitswap/kitswap-backend/internal/config"
	"github.com/kitswap/kitswap-backend/internal/handler"
	"github.com/kitswap/kitswap-backend/internal/middleware"
	"github.com/kitswap/kitswap-backend/internal/model"
)

// RegisterRoutes registers routes that carry no authentication at all.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the account endpoints. Register, login, refresh and
// logout are open; profile and document uploads require a bearer token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	// Logout works with either a refresh token body or a bearer header, so
	// it stays outside the JWT group.
	g.POST("/logout", a.Logout)

	p := e.Group("/auth")
	p.Use(middleware.JWTAuth(jwtSecret))
	p.GET("/profile", a.Profile)
	p.POST("/upload-id-document", a.UploadIDDocument)
	p.POST("/upload-proof-of-residence", a.UploadProofOfResidence)
}

// RegisterCatalog registers the public browse endpoints behind the shared
// response cache. A nil redis client disables caching transparently.
func RegisterCatalog(e *echo.Echo, h *handler.CatalogHandler, cacheCfg config.CacheConfig, rdb *redis.Client) {
	cached := middleware.NewRedisCache(cacheCfg, rdb)
	e.GET("/categories", h.ListCategories, cached)
	e.GET("/categories/:id/item-types", h.ListItemTypes, cached)
	e.GET("/item-types/:id/items", h.ListItemsByType, cached)
}

// RegisterItems registers the authenticated listing endpoints.
func RegisterItems(e *echo.Echo, h *handler.ItemHandler, jwtSecret string) {
	g := e.Group("/items")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.POST("", h.Create)
	g.GET("/mine", h.Mine)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

// RegisterUploads registers photo ingestion (bearer) and file serving
// (open; the store enforces path containment).
func RegisterUploads(e *echo.Echo, h *handler.UploadHandler, jwtSecret string) {
	e.POST("/upload/images", h.UploadImages, middleware.JWTAuth(jwtSecret))
	e.GET("/uploads/:type/:filename", h.Serve)
}

// RegisterAdmin registers the moderation console. The role guard runs at
// the group level and every handler re-checks the claim itself.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string) {
	g := e.Group("/admin")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleAdmin.String()))

	g.GET("/dashboard/stats", h.DashboardStats)
	g.GET("/users", h.ListUsers)
	g.GET("/sellers/pending", h.PendingSellers)
	g.PUT("/sellers/:id/verify", h.VerifySeller)
	g.PUT("/sellers/:id/reject", h.RejectSeller)
	g.PUT("/users/:id/role", h.UpdateRole)
	g.PUT("/users/:id/reset-password", h.ResetPassword)
	g.PUT("/users/:id/suspend", h.Suspend)
	g.PUT("/users/:id/reactivate", h.Reactivate)
}
