package handler

import (
    "context"
    "database/sql"
    "errors"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/Oussamaredd/ISI-react-app1-sub002/internal/auth"
    "github.com/Oussamaredd/ISI-react-app1-sub002/internal/model"
    "github.com/Oussamaredd/ISI-react-app1-sub002/internal/repository"
)

// RoleHandler implements the administrative role endpoints,
// including the permission catalog the admin UI renders its
// checkboxes from. Runs behind RequireAdmin.
type RoleHandler struct {
    Roles *repository.RoleRepo
}

func NewRoleHandler(r *repository.RoleRepo) *RoleHandler { return &RoleHandler{Roles: r} }

type roleReq struct {
    Name        string   `json:"name"`
    Description string   `json:"description"`
    Permissions []string `json:"permissions"`
}

type roleResp struct {
    ID          uint64    `json:"id"`
    Name        string    `json:"name"`
    Description string    `json:"description"`
    Permissions []string  `json:"permissions"`
    CreatedAt   time.Time `json:"createdAt"`
    UpdatedAt   time.Time `json:"updatedAt"`
}

func toRoleResp(r model.Role) roleResp {
    perms := r.Permissions
    if perms == nil {
        perms = []string{}
    }
    return roleResp{ID: r.ID, Name: r.Name, Description: r.Description,
        Permissions: perms, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt}
}

// validatePermissions normalizes the submitted permission strings
// and rejects any outside the known catalog.
func validatePermissions(in []string) ([]string, bool) {
    known := make(map[string]bool, len(auth.AllPermissions))
    for _, p := range auth.AllPermissions {
        known[p] = true
    }
    out := make([]string, 0, len(in))
    seen := map[string]bool{}
    for _, p := range in {
        n := auth.Normalize(p)
        if n == "" || seen[n] {
            continue
        }
        if !known[n] {
            return nil, false
        }
        seen[n] = true
        out = append(out, n)
    }
    return out, true
}

// List returns all roles, seeding the defaults on first call.
func (h *RoleHandler) List(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    roles, err := h.Roles.List(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    out := make([]roleResp, 0, len(roles))
    for _, r := range roles {
        out = append(out, toRoleResp(r))
    }
    return c.JSON(http.StatusOK, echo.Map{"roles": out})
}

// Permissions returns the full permission catalog.
func (h *RoleHandler) Permissions(c echo.Context) error {
    return c.JSON(http.StatusOK, echo.Map{"permissions": auth.AllPermissions})
}

// Get returns one role by id.
func (h *RoleHandler) Get(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    r, err := h.Roles.GetByID(ctx, id)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "role not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    return c.JSON(http.StatusOK, toRoleResp(r))
}

// Create inserts a custom role.
func (h *RoleHandler) Create(c echo.Context) error {
    var req roleReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    name := strings.TrimSpace(req.Name)
    if name == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
    }
    perms, ok := validatePermissions(req.Permissions)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown permission"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    id, err := h.Roles.Create(ctx, name, req.Description, perms)
    if err != nil {
        if errors.Is(err, repository.ErrRoleExists) {
            return c.JSON(http.StatusConflict, echo.Map{"error": "role name already exists"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create role failed"})
    }
    emitAudit(c, "role.create", "role", id, name)

    r, err := h.Roles.GetByID(ctx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    return c.JSON(http.StatusCreated, toRoleResp(r))
}

// Update replaces a role's name, description and permissions.
func (h *RoleHandler) Update(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var req roleReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    name := strings.TrimSpace(req.Name)
    if name == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
    }
    perms, ok := validatePermissions(req.Permissions)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown permission"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if _, err := h.Roles.GetByID(ctx, id); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "role not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    if err := h.Roles.Update(ctx, id, name, req.Description, perms); err != nil {
        if errors.Is(err, repository.ErrRoleExists) {
            return c.JSON(http.StatusConflict, echo.Map{"error": "role name already exists"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update role failed"})
    }
    emitAudit(c, "role.update", "role", id, name)

    r, err := h.Roles.GetByID(ctx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    return c.JSON(http.StatusOK, toRoleResp(r))
}

// Delete removes a role not linked to any user.
func (h *RoleHandler) Delete(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Roles.Delete(ctx, id); err != nil {
        if errors.Is(err, repository.ErrConflict) {
            return c.JSON(http.StatusConflict, echo.Map{"error": "role still assigned to users"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete role failed"})
    }
    emitAudit(c, "role.delete", "role", id, "")
    return c.NoContent(http.StatusNoContent)
}
