package handler

import (
    "net/http/httptest"
    "testing"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/require"
)

func TestValidatePermissions(t *testing.T) {
    got, ok := validatePermissions([]string{" Tickets.Read ", "tickets.read", "AUDIT.READ"})
    require.True(t, ok)
    require.Equal(t, []string{"tickets.read", "audit.read"}, got)

    _, ok = validatePermissions([]string{"tickets.read", "made.up"})
    require.False(t, ok)

    got, ok = validatePermissions(nil)
    require.True(t, ok)
    require.Empty(t, got)
}

func TestPageParams(t *testing.T) {
    e := echo.New()

    ctx := func(target string) echo.Context {
        req := httptest.NewRequest("GET", target, nil)
        return e.NewContext(req, httptest.NewRecorder())
    }

    limit, offset := pageParams(ctx("/v1/tickets"))
    require.Equal(t, 20, limit)
    require.Equal(t, 0, offset)

    limit, offset = pageParams(ctx("/v1/tickets?page=3&page_size=10"))
    require.Equal(t, 10, limit)
    require.Equal(t, 20, offset)

    limit, _ = pageParams(ctx("/v1/tickets?page_size=9999"))
    require.Equal(t, 20, limit)

    limit, offset = pageParams(ctx("/v1/tickets?page=-1&page_size=-5"))
    require.Equal(t, 20, limit)
    require.Equal(t, 0, offset)
}
