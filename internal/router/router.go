package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/partsgarage/inventory-api/internal/handler"    // handlers implementing the endpoint logic
	"github.com/partsgarage/inventory-api/internal/middleware" // session resolution and role enforcement
	"github.com/partsgarage/inventory-api/internal/model"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance. Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler. Load
	// balancers and monitoring systems use it to verify the service is up.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes. The credential
// endpoints (register, login) additionally run through the rate limiter so
// that password guessing is throttled per client IP.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, limit echo.MiddlewareFunc) {
	// Operations that establish a session live under /v1/auth and do not
	// require an existing one.
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register, limit)
	g.POST("/login", a.Login, limit)
	// Logout is deliberately unauthenticated: deleting an unknown or
	// already-expired token succeeds, so there is nothing to protect.
	g.POST("/logout", a.Logout)

	// /v1/me reports who the session belongs to and what role they carry.
	// It requires a live session; anonymous callers get a 401.
	e.GET("/v1/me", a.Me, middleware.RequireAuth())
}

// RegisterParts registers the car-part catalogue. Reads are public so that
// guests can browse the inventory; every mutation is restricted to admins.
func RegisterParts(e *echo.Echo, p *handler.PartHandler) {
	e.GET("/v1/parts", p.List)
	e.GET("/v1/parts/:number", p.Get)

	admin := e.Group("/v1/parts")
	admin.Use(middleware.RequireAuth())
	admin.Use(middleware.RequireRole(model.RoleAdmin))
	admin.POST("", p.Create)
	admin.PATCH("/:number", p.Rename)
	admin.DELETE("/:number", p.Delete)
}

// RegisterProjects registers the project endpoints. All of them require a
// session; membership checks for individual projects happen in the handler
// because they depend on the project being addressed.
func RegisterProjects(e *echo.Echo, h *handler.ProjectHandler) {
	g := e.Group("/v1/projects")
	g.Use(middleware.RequireAuth())
	g.POST("", h.Create)
	g.GET("", h.ListMine)
	g.GET("/:id", h.Get)
	g.PATCH("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	g.GET("/:id/parts", h.ListParts)
	g.POST("/:id/parts", h.AddPart)
	g.DELETE("/:id/parts/:number", h.RemovePart)
	g.POST("/:id/users", h.AddUser)
}
