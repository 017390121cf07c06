package middleware

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/Oussamaredd/ISI-react-app1-sub002/internal/auth"
)

// RequireAdmin returns the stricter access guard used by the admin
// API. It shares the resolution pipeline with RequireAuth but then
// checks role membership against the admin allowlist instead of
// the fine-grained permission set; destructive admin operations
// are gated by the coarser role check on purpose. On success it
// attaches the narrower AdminContext (no permission set).
func RequireAdmin(svc *auth.Service) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            res, err := svc.ResolveRequest(c.Request().Context(), c.Request().Header.Get("Cookie"))
            if err != nil {
                return echo.NewHTTPError(http.StatusInternalServerError, "identity resolution failed")
            }
            switch res.State {
            case auth.StateUnauthenticated:
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
            case auth.StateInactive:
                return c.JSON(http.StatusForbidden, echo.Map{"error": "account disabled"})
            }

            grant := svc.Aggregator.Aggregate(res.User, res.Roles)
            if !grant.HasAnyRole(auth.AdminRoles...) {
                return c.JSON(http.StatusForbidden, echo.Map{"error": "admin access required"})
            }

            c.Set(AdminContextKey, &auth.AdminContext{
                ID:       res.User.ID,
                Email:    res.User.Email,
                Name:     res.User.Name,
                Role:     res.User.Role,
                Roles:    grant.Roles,
                IsActive: res.User.IsActive,
            })
            return next(c)
        }
    }
}
