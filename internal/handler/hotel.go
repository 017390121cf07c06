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

    "github.com/Oussamaredd/ISI-react-app1-sub002/internal/model"
    "github.com/Oussamaredd/ISI-react-app1-sub002/internal/repository"
)

// HotelHandler implements the hotel endpoints. Reads need
// hotels.read, writes hotels.write; the route registration
// declares those.
type HotelHandler struct {
    Hotels *repository.HotelRepo
}

func NewHotelHandler(r *repository.HotelRepo) *HotelHandler { return &HotelHandler{Hotels: r} }

type hotelReq struct {
    Name     string `json:"name"`
    City     string `json:"city"`
    Address  string `json:"address"`
    IsActive *bool  `json:"isActive"`
}

type hotelResp struct {
    ID        uint64    `json:"id"`
    Name      string    `json:"name"`
    City      string    `json:"city"`
    Address   string    `json:"address"`
    IsActive  bool      `json:"isActive"`
    CreatedAt time.Time `json:"createdAt"`
    UpdatedAt time.Time `json:"updatedAt"`
}

func toHotelResp(h model.Hotel) hotelResp {
    return hotelResp{ID: h.ID, Name: h.Name, City: h.City, Address: h.Address,
        IsActive: h.IsActive, CreatedAt: h.CreatedAt, UpdatedAt: h.UpdatedAt}
}

// List returns all hotels.
func (h *HotelHandler) List(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    hotels, err := h.Hotels.List(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    out := make([]hotelResp, 0, len(hotels))
    for _, ht := range hotels {
        out = append(out, toHotelResp(ht))
    }
    return c.JSON(http.StatusOK, echo.Map{"hotels": out})
}

// Get returns one hotel by id.
func (h *HotelHandler) Get(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    ht, err := h.Hotels.GetByID(ctx, id)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    return c.JSON(http.StatusOK, toHotelResp(ht))
}

// Create registers a new hotel.
func (h *HotelHandler) Create(c echo.Context) error {
    var req hotelReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Name = strings.TrimSpace(req.Name)
    if req.Name == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    id, err := h.Hotels.Create(ctx, req.Name, req.City, req.Address)
    if err != nil {
        if errors.Is(err, repository.ErrConflict) {
            return c.JSON(http.StatusConflict, echo.Map{"error": "hotel already exists"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create hotel failed"})
    }
    emitAudit(c, "hotel.create", "hotel", id, "")

    ht, err := h.Hotels.GetByID(ctx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    return c.JSON(http.StatusCreated, toHotelResp(ht))
}

// Update replaces a hotel's editable fields.
func (h *HotelHandler) Update(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var req hotelReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Name = strings.TrimSpace(req.Name)
    if req.Name == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
    }
    active := true
    if req.IsActive != nil {
        active = *req.IsActive
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Hotels.Update(ctx, id, req.Name, req.City, req.Address, active); err != nil {
        if errors.Is(err, repository.ErrConflict) {
            return c.JSON(http.StatusConflict, echo.Map{"error": "hotel name already exists"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update hotel failed"})
    }
    emitAudit(c, "hotel.update", "hotel", id, "")

    ht, err := h.Hotels.GetByID(ctx, id)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    return c.JSON(http.StatusOK, toHotelResp(ht))
}
