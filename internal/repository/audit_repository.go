package repository

import (
    "context"
    "database/sql"

    "github.com/Oussamaredd/ISI-react-app1-sub002/internal/model"
)

// AuditRepo provides access to the 'audit_logs' table. Rows are
// inserted by the queue consumer draining the audit event stream.
type AuditRepo struct{ DB *sql.DB }

func NewAuditRepo(db *sql.DB) *AuditRepo { return &AuditRepo{DB: db} }

// Insert writes one audit record.
func (r *AuditRepo) Insert(ctx context.Context, l model.AuditLog) error {
    _, err := r.DB.ExecContext(ctx,
        "INSERT INTO audit_logs (actor_id, actor_email, action, entity, entity_id, details) VALUES (?,?,?,?,?,?)",
        l.ActorID, l.ActorEmail, l.Action, l.Entity, l.EntityID, l.Details)
    return err
}

// List returns a page of audit records, newest first.
func (r *AuditRepo) List(ctx context.Context, limit, offset int) ([]model.AuditLog, error) {
    rows, err := r.DB.QueryContext(ctx,
        `SELECT id, actor_id, actor_email, action, entity, entity_id, details, created_at
         FROM audit_logs ORDER BY id DESC LIMIT ? OFFSET ?`, limit, offset)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    var out []model.AuditLog
    for rows.Next() {
        var l model.AuditLog
        if err := rows.Scan(&l.ID, &l.ActorID, &l.ActorEmail, &l.Action,
            &l.Entity, &l.EntityID, &l.Details, &l.CreatedAt); err != nil {
            return nil, err
        }
        out = append(out, l)
    }
    return out, rows.Err()
}
