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

    "github.com/Oussamaredd/ISI-react-app1-sub002/internal/config"
    "github.com/Oussamaredd/ISI-react-app1-sub002/internal/model"
    "github.com/Oussamaredd/ISI-react-app1-sub002/internal/repository"
)

// UserHandler implements the administrative user endpoints. All of
// them run behind RequireAdmin: user management is role-gated, not
// permission-gated.
type UserHandler struct {
    Cfg      config.Config
    Users    *repository.UserRepo
    Sessions *repository.SessionRepo
}

func NewUserHandler(cfg config.Config, u *repository.UserRepo, s *repository.SessionRepo) *UserHandler {
    return &UserHandler{Cfg: cfg, Users: u, Sessions: s}
}

type userCreateReq struct {
    Email    string `json:"email"`
    Name     string `json:"name"`
    Password string `json:"password"`
    Role     string `json:"role"`
    HotelID  uint64 `json:"hotelId"`
}

type userRoleReq struct {
    Role string `json:"role"`
}

type userActiveReq struct {
    IsActive bool `json:"isActive"`
}

type userRoleLinkReq struct {
    RoleID uint64 `json:"roleId"`
}

type adminUserResp struct {
    ID        uint64    `json:"id"`
    Email     string    `json:"email"`
    Name      string    `json:"name"`
    Role      string    `json:"role"`
    IsActive  bool      `json:"isActive"`
    HotelID   uint64    `json:"hotelId"`
    CreatedAt time.Time `json:"createdAt"`
    UpdatedAt time.Time `json:"updatedAt"`
}

func toAdminUserResp(u model.User) adminUserResp {
    return adminUserResp{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role,
        IsActive: u.IsActive, HotelID: u.HotelID, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt}
}

// List returns a page of users.
func (h *UserHandler) List(c echo.Context) error {
    limit, offset := pageParams(c)

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    users, err := h.Users.List(ctx, limit, offset)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    out := make([]adminUserResp, 0, len(users))
    for _, u := range users {
        out = append(out, toAdminUserResp(u))
    }
    return c.JSON(http.StatusOK, echo.Map{"users": out})
}

// Create registers a password-backed user account.
func (h *UserHandler) Create(c echo.Context) error {
    var req userCreateReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Email = strings.ToLower(strings.TrimSpace(req.Email))
    if req.Email == "" || req.Password == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
    }
    role := strings.ToLower(strings.TrimSpace(req.Role))
    if role == "" {
        role = "agent"
    }
    hotelID := req.HotelID
    if hotelID == 0 {
        hotelID = h.Cfg.DefaultHotelID
    }
    if req.Name == "" {
        req.Name = req.Email
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    id, err := h.Users.Create(ctx, req.Email, req.Name, req.Password, role, hotelID, h.Cfg.BcryptCost)
    if err != nil {
        if errors.Is(err, repository.ErrEmailExists) {
            return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
    }
    emitAudit(c, "user.create", "user", id, "")

    u, err := h.Users.GetByID(ctx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    return c.JSON(http.StatusCreated, toAdminUserResp(u))
}

// UpdateRole changes a user's primary role.
func (h *UserHandler) UpdateRole(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var req userRoleReq
    if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Role) == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "role required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if _, err := h.Users.GetByID(ctx, id); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    role := strings.ToLower(strings.TrimSpace(req.Role))
    if err := h.Users.UpdateRole(ctx, id, role); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update role failed"})
    }
    emitAudit(c, "user.update_role", "user", id, role)
    return c.NoContent(http.StatusNoContent)
}

// SetActive toggles a user's active flag. Deactivating also
// revokes the user's sessions; the guard would reject the next
// request anyway since it re-reads the user row, but revoking
// keeps the sessions table honest.
func (h *UserHandler) SetActive(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var req userActiveReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if _, err := h.Users.GetByID(ctx, id); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    if err := h.Users.SetActive(ctx, id, req.IsActive); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update user failed"})
    }
    if !req.IsActive {
        _ = h.Sessions.RevokeAllForUser(ctx, id)
        emitAudit(c, "user.deactivate", "user", id, "")
    } else {
        emitAudit(c, "user.activate", "user", id, "")
    }
    return c.NoContent(http.StatusNoContent)
}

// AssignRole links a role to a user.
func (h *UserHandler) AssignRole(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var req userRoleLinkReq
    if err := c.Bind(&req); err != nil || req.RoleID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "roleId required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Users.AssignRole(ctx, id, req.RoleID); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "assign role failed"})
    }
    emitAudit(c, "user.assign_role", "user", id, strconv.FormatUint(req.RoleID, 10))
    return c.NoContent(http.StatusNoContent)
}

// UnassignRole removes a role link.
func (h *UserHandler) UnassignRole(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    roleID, err := strconv.ParseUint(c.Param("roleId"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid role id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Users.UnassignRole(ctx, id, roleID); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "unassign role failed"})
    }
    emitAudit(c, "user.unassign_role", "user", id, strconv.FormatUint(roleID, 10))
    return c.NoContent(http.StatusNoContent)
}
