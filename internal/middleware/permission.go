package middleware

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/Oussamaredd/ISI-react-app1-sub002/internal/auth"
)

// RequirePermissions declares the permissions an endpoint needs.
// It is attached per route (or per group) at registration time:
//
//	g.GET("/audit", h.List, middleware.RequirePermissions("audit.read"))
//
// Declarations are normalized once, here, not per request. The
// guard performs no I/O: it only diffs the declared list against
// the effective permission set RequireAuth already attached. An
// empty declaration passes unconditionally. A missing context is
// treated as unauthenticated; a permission check with nobody to
// check must never pass.
func RequirePermissions(perms ...string) echo.MiddlewareFunc {
    required := make([]string, 0, len(perms))
    for _, p := range perms {
        if n := auth.Normalize(p); n != "" {
            required = append(required, n)
        }
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if len(required) == 0 {
                return next(c)
            }
            uc := CurrentUser(c)
            if uc == nil {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
            }
            have := make(map[string]bool, len(uc.Permissions))
            for _, p := range uc.Permissions {
                have[p] = true
            }
            for _, p := range required {
                if !have[p] {
                    return c.JSON(http.StatusForbidden, echo.Map{"error": "insufficient permissions"})
                }
            }
            return next(c)
        }
    }
}
