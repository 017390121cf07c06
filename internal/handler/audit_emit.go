package handler

import (
    "context"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/Oussamaredd/ISI-react-app1-sub002/internal/middleware"
    "github.com/Oussamaredd/ISI-react-app1-sub002/internal/queue"
    audit_publisher "github.com/Oussamaredd/ISI-react-app1-sub002/internal/service"
)

// emitAudit publishes an audit event for the action just performed
// by the current request's user. Publishing happens off the
// request path and failures are swallowed by the publisher (which
// logs them): a broker outage must never fail a CRUD call.
func emitAudit(c echo.Context, action, entity string, entityID uint64, details string) {
    var actorID uint64
    var actorEmail string
    if uc := middleware.CurrentUser(c); uc != nil {
        actorID, actorEmail = uc.ID, uc.Email
    } else if ac := middleware.CurrentAdmin(c); ac != nil {
        actorID, actorEmail = ac.ID, ac.Email
    }

    ev := queue.AuditEvent{
        ActorID:    actorID,
        ActorEmail: actorEmail,
        Action:     action,
        Entity:     entity,
        EntityID:   entityID,
        Details:    details,
        OccurredAt: time.Now().UTC().Format(time.RFC3339),
    }
    go func() {
        ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
        defer cancel()
        _ = audit_publisher.PublishAuditEvent(ctx, ev)
    }()
}
