package handler

import (
    "context"
    "database/sql"
    "errors"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/Oussamaredd/ISI-react-app1-sub002/internal/repository"
)

// SettingHandler exposes the settings key/value store. Reads are
// open to any authenticated user; writes require settings.write.
type SettingHandler struct {
    Settings *repository.SettingRepo
}

func NewSettingHandler(s *repository.SettingRepo) *SettingHandler { return &SettingHandler{Settings: s} }

type settingReq struct {
    Value string `json:"value"`
}

// List returns all settings.
func (h *SettingHandler) List(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    settings, err := h.Settings.List(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    out := echo.Map{}
    for _, s := range settings {
        out[s.Key] = s.Value
    }
    return c.JSON(http.StatusOK, echo.Map{"settings": out})
}

// Get returns a single setting by key.
func (h *SettingHandler) Get(c echo.Context) error {
    key := strings.TrimSpace(c.Param("key"))
    if key == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "key required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    s, err := h.Settings.Get(ctx, key)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "setting not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"key": s.Key, "value": s.Value, "updatedAt": s.UpdatedAt})
}

// Put writes a setting value.
func (h *SettingHandler) Put(c echo.Context) error {
    key := strings.TrimSpace(c.Param("key"))
    if key == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "key required"})
    }
    var req settingReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Settings.Upsert(ctx, key, req.Value); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save setting failed"})
    }
    emitAudit(c, "setting.update", "setting", 0, key)
    return c.NoContent(http.StatusNoContent)
}
