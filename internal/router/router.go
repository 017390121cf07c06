package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4" // import the Echo web framework to handle routing

    "github.com/Oussamaredd/ISI-react-app1-sub002/internal/auth"
    "github.com/Oussamaredd/ISI-react-app1-sub002/internal/handler"
    "github.com/Oussamaredd/ISI-react-app1-sub002/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance. Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
    // Load balancers and monitoring systems use this endpoint to verify
    // that the service is up and running.
    e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints. Login endpoints sit
// behind the rate limiter; /v1/me sits behind the general access guard so
// it returns the caller's resolved identity, roles and permissions.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, svc *auth.Service, limiter echo.MiddlewareFunc) {
    g := e.Group("/v1/auth")
    // Local email/password login. Rate limited per client IP.
    g.POST("/login", a.Login, limiter)
    // Google OAuth: redirect out, then handle the provider callback.
    // The callback is limited too since it also mints sessions.
    g.GET("/google", a.GoogleLogin)
    g.GET("/google/callback", a.GoogleCallback, limiter)
    // Logout is idempotent and needs no guard: revoking an absent or
    // invalid session is a no-op that still clears the cookie.
    g.POST("/logout", a.Logout)

    me := e.Group("/v1")
    me.Use(middleware.RequireAuth(svc))
    me.GET("/me", a.Me)
}

// RegisterPublic registers the unauthenticated browse endpoints. These are
// the only routes wrapped by the response cache: guarded routes are never
// cached so role and permission changes apply on the next request.
func RegisterPublic(e *echo.Echo, hotels *handler.HotelHandler, cache echo.MiddlewareFunc) {
    e.GET("/v1/public/hotels", hotels.List, cache)
}

// RegisterAPI registers the authenticated application endpoints under /v1.
// Every route passes RequireAuth first; the per-route permission
// declarations then narrow access without any further storage reads.
func RegisterAPI(e *echo.Echo, svc *auth.Service,
    tickets *handler.TicketHandler, hotels *handler.HotelHandler,
    audits *handler.AuditHandler, settings *handler.SettingHandler) {

    g := e.Group("/v1")
    g.Use(middleware.RequireAuth(svc))

    g.GET("/tickets", tickets.List, middleware.RequirePermissions(auth.PermTicketsRead))
    g.GET("/tickets/:id", tickets.Get, middleware.RequirePermissions(auth.PermTicketsRead))
    g.POST("/tickets", tickets.Create, middleware.RequirePermissions(auth.PermTicketsWrite))
    g.PUT("/tickets/:id", tickets.Update, middleware.RequirePermissions(auth.PermTicketsWrite))
    g.DELETE("/tickets/:id", tickets.Delete, middleware.RequirePermissions(auth.PermTicketsWrite))

    g.GET("/hotels", hotels.List, middleware.RequirePermissions(auth.PermHotelsRead))
    g.GET("/hotels/:id", hotels.Get, middleware.RequirePermissions(auth.PermHotelsRead))
    g.POST("/hotels", hotels.Create, middleware.RequirePermissions(auth.PermHotelsWrite))
    g.PUT("/hotels/:id", hotels.Update, middleware.RequirePermissions(auth.PermHotelsWrite))

    g.GET("/audit", audits.List, middleware.RequirePermissions(auth.PermAuditRead))

    g.GET("/settings", settings.List)
    g.GET("/settings/:key", settings.Get)
    g.PUT("/settings/:key", settings.Put, middleware.RequirePermissions(auth.PermSettingsWrite))
}

// RegisterAdmin registers the administrative endpoints under /v1/admin.
// The whole group runs behind the stricter role-based guard.
func RegisterAdmin(e *echo.Echo, svc *auth.Service,
    users *handler.UserHandler, roles *handler.RoleHandler) {

    g := e.Group("/v1/admin")
    g.Use(middleware.RequireAdmin(svc))

    g.GET("/users", users.List)
    g.POST("/users", users.Create)
    g.PUT("/users/:id/role", users.UpdateRole)
    g.PUT("/users/:id/active", users.SetActive)
    g.POST("/users/:id/roles", users.AssignRole)
    g.DELETE("/users/:id/roles/:roleId", users.UnassignRole)

    g.GET("/roles", roles.List)
    g.GET("/roles/:id", roles.Get)
    g.POST("/roles", roles.Create)
    g.PUT("/roles/:id", roles.Update)
    g.DELETE("/roles/:id", roles.Delete)
    g.GET("/permissions", roles.Permissions)
}
