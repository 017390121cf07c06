package middleware // middleware provides shared request processing for handlers

import (
    "net/http" // http package defines standard HTTP status codes

    "github.com/labstack/echo/v4" // echo provides middleware chaining and context

    "github.com/Oussamaredd/ISI-react-app1-sub002/internal/auth"
)

// Context keys under which the guards attach the resolved
// identity. Handlers read them via CurrentUser / CurrentAdmin.
const (
    UserContextKey  = "auth_user"
    AdminContextKey = "admin_user"
)

// CurrentUser returns the context attached by RequireAuth, or nil
// when the request did not pass through it.
func CurrentUser(c echo.Context) *auth.UserContext {
    if v, ok := c.Get(UserContextKey).(*auth.UserContext); ok {
        return v
    }
    return nil
}

// CurrentAdmin returns the context attached by RequireAdmin, or
// nil when the request did not pass through it.
func CurrentAdmin(c echo.Context) *auth.AdminContext {
    if v, ok := c.Get(AdminContextKey).(*auth.AdminContext); ok {
        return v
    }
    return nil
}

// RequireAuth returns the general-purpose access guard. It runs
// the shared resolution pipeline (signed cookie -> persisted user
// -> linked roles), rejects requests without a usable identity
// (401) or with a deactivated account (403), and otherwise
// aggregates the user's permissions and attaches a UserContext for
// downstream handlers. The 401 is deliberately identical whether
// the cookie was absent, invalid, or resolved to no user: an
// unauthorized response must not leak whether an email exists.
func RequireAuth(svc *auth.Service) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            res, err := svc.ResolveRequest(c.Request().Context(), c.Request().Header.Get("Cookie"))
            if err != nil {
                // Storage failures are server errors, not policy
                // outcomes; let the platform error handler report.
                return echo.NewHTTPError(http.StatusInternalServerError, "identity resolution failed")
            }
            switch res.State {
            case auth.StateUnauthenticated:
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
            case auth.StateInactive:
                return c.JSON(http.StatusForbidden, echo.Map{"error": "account disabled"})
            }

            grant := svc.Aggregator.Aggregate(res.User, res.Roles)
            c.Set(UserContextKey, &auth.UserContext{
                ID:          res.User.ID,
                Email:       res.User.Email,
                Name:        res.User.Name,
                Role:        res.User.Role,
                Roles:       grant.Roles,
                Permissions: grant.Permissions,
                IsActive:    res.User.IsActive,
                HotelID:     res.User.HotelID,
            })
            return next(c)
        }
    }
}
