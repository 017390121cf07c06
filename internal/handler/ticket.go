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

    "github.com/Oussamaredd/ISI-react-app1-sub002/internal/middleware"
    "github.com/Oussamaredd/ISI-react-app1-sub002/internal/model"
    "github.com/Oussamaredd/ISI-react-app1-sub002/internal/repository"
)

// TicketHandler implements the ticket CRUD endpoints. All
// operations are scoped to the hotel of the authenticated user;
// the guards have attached the context before any handler runs.
type TicketHandler struct {
    Tickets *repository.TicketRepo
}

func NewTicketHandler(t *repository.TicketRepo) *TicketHandler { return &TicketHandler{Tickets: t} }

type ticketCreateReq struct {
    Title       string `json:"title"`
    Description string `json:"description"`
    Priority    string `json:"priority"`
}

type ticketUpdateReq struct {
    Title       string  `json:"title"`
    Description string  `json:"description"`
    Status      string  `json:"status"`
    Priority    string  `json:"priority"`
    AssignedTo  *uint64 `json:"assignedTo"`
}

type ticketResp struct {
    ID          uint64    `json:"id"`
    HotelID     uint64    `json:"hotelId"`
    Title       string    `json:"title"`
    Description string    `json:"description"`
    Status      string    `json:"status"`
    Priority    string    `json:"priority"`
    CreatedBy   uint64    `json:"createdBy"`
    AssignedTo  *uint64   `json:"assignedTo"`
    CreatedAt   time.Time `json:"createdAt"`
    UpdatedAt   time.Time `json:"updatedAt"`
}

func toTicketResp(t model.Ticket) ticketResp {
    return ticketResp{
        ID: t.ID, HotelID: t.HotelID, Title: t.Title, Description: t.Description,
        Status: t.Status, Priority: t.Priority, CreatedBy: t.CreatedBy,
        AssignedTo: t.AssignedTo, CreatedAt: t.CreatedAt, UpdatedAt: t.UpdatedAt,
    }
}

func validPriority(p string) bool {
    switch p {
    case model.PriorityLow, model.PriorityMedium, model.PriorityHigh:
        return true
    }
    return false
}

func validStatus(s string) bool {
    switch s {
    case model.TicketOpen, model.TicketInProgress, model.TicketResolved, model.TicketClosed:
        return true
    }
    return false
}

// pageParams reads ?page and ?page_size with sane bounds.
func pageParams(c echo.Context) (limit, offset int) {
    page, _ := strconv.Atoi(c.QueryParam("page"))
    if page < 1 {
        page = 1
    }
    size, _ := strconv.Atoi(c.QueryParam("page_size"))
    if size < 1 || size > 100 {
        size = 20
    }
    return size, (page - 1) * size
}

// List returns the caller's hotel tickets, optionally filtered by
// ?status=, newest first.
func (h *TicketHandler) List(c echo.Context) error {
    uc := middleware.CurrentUser(c)
    limit, offset := pageParams(c)
    status := strings.ToUpper(strings.TrimSpace(c.QueryParam("status")))
    if status != "" && !validStatus(status) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    tickets, err := h.Tickets.ListByHotel(ctx, uc.HotelID, status, limit, offset)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    out := make([]ticketResp, 0, len(tickets))
    for _, t := range tickets {
        out = append(out, toTicketResp(t))
    }
    return c.JSON(http.StatusOK, echo.Map{"tickets": out})
}

// Get returns a single ticket of the caller's hotel.
func (h *TicketHandler) Get(c echo.Context) error {
    uc := middleware.CurrentUser(c)
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    t, err := h.Tickets.GetByID(ctx, id, uc.HotelID)
    if err != nil {
        switch {
        case errors.Is(err, sql.ErrNoRows):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket not found"})
        case errors.Is(err, repository.ErrForbidden):
            return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    return c.JSON(http.StatusOK, toTicketResp(t))
}

// Create opens a new ticket in the caller's hotel.
func (h *TicketHandler) Create(c echo.Context) error {
    uc := middleware.CurrentUser(c)
    var req ticketCreateReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Title = strings.TrimSpace(req.Title)
    if req.Title == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "title required"})
    }
    req.Priority = strings.ToUpper(strings.TrimSpace(req.Priority))
    if req.Priority == "" {
        req.Priority = model.PriorityMedium
    }
    if !validPriority(req.Priority) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid priority"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    id, err := h.Tickets.Create(ctx, uc.HotelID, req.Title, req.Description, req.Priority, uc.ID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create ticket failed"})
    }
    emitAudit(c, "ticket.create", "ticket", id, "")

    t, err := h.Tickets.GetByID(ctx, id, uc.HotelID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    return c.JSON(http.StatusCreated, toTicketResp(t))
}

// Update replaces a ticket's mutable fields.
func (h *TicketHandler) Update(c echo.Context) error {
    uc := middleware.CurrentUser(c)
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var req ticketUpdateReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Title = strings.TrimSpace(req.Title)
    req.Status = strings.ToUpper(strings.TrimSpace(req.Status))
    req.Priority = strings.ToUpper(strings.TrimSpace(req.Priority))
    if req.Title == "" || !validStatus(req.Status) || !validPriority(req.Priority) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid fields"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    err = h.Tickets.Update(ctx, id, uc.HotelID, req.Title, req.Description, req.Status, req.Priority, req.AssignedTo)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update ticket failed"})
    }
    emitAudit(c, "ticket.update", "ticket", id, "")

    t, err := h.Tickets.GetByID(ctx, id, uc.HotelID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    return c.JSON(http.StatusOK, toTicketResp(t))
}

// Delete removes a ticket.
func (h *TicketHandler) Delete(c echo.Context) error {
    uc := middleware.CurrentUser(c)
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Tickets.Delete(ctx, id, uc.HotelID); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete ticket failed"})
    }
    emitAudit(c, "ticket.delete", "ticket", id, "")
    return c.NoContent(http.StatusNoContent)
}
