package handler

import (
    "context"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/Oussamaredd/ISI-react-app1-sub002/internal/model"
    "github.com/Oussamaredd/ISI-react-app1-sub002/internal/repository"
)

// AuditHandler exposes the audit trail. Reading it requires the
// audit.read permission, declared at route registration.
type AuditHandler struct {
    Audits *repository.AuditRepo
}

func NewAuditHandler(a *repository.AuditRepo) *AuditHandler { return &AuditHandler{Audits: a} }

type auditResp struct {
    ID         uint64    `json:"id"`
    ActorID    uint64    `json:"actorId"`
    ActorEmail string    `json:"actorEmail"`
    Action     string    `json:"action"`
    Entity     string    `json:"entity"`
    EntityID   uint64    `json:"entityId"`
    Details    string    `json:"details"`
    CreatedAt  time.Time `json:"createdAt"`
}

func toAuditResp(l model.AuditLog) auditResp {
    return auditResp{ID: l.ID, ActorID: l.ActorID, ActorEmail: l.ActorEmail,
        Action: l.Action, Entity: l.Entity, EntityID: l.EntityID,
        Details: l.Details, CreatedAt: l.CreatedAt}
}

// List returns a page of audit records, newest first.
func (h *AuditHandler) List(c echo.Context) error {
    limit, offset := pageParams(c)

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    logs, err := h.Audits.List(ctx, limit, offset)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    out := make([]auditResp, 0, len(logs))
    for _, l := range logs {
        out = append(out, toAuditResp(l))
    }
    return c.JSON(http.StatusOK, echo.Map{"logs": out})
}
