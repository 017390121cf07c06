package model

import "time"

// AuditLog records a mutating administrative action. Rows are
// written by the queue consumer that drains the audit event
// stream, never directly from request handlers.
//
// Fields:
//  ID         – primary key identifier.
//  ActorID    – user who performed the action.
//  ActorEmail – email of the actor at the time of the action.
//  Action     – verb, e.g. "ticket.create" or "user.deactivate".
//  Entity     – entity kind the action touched.
//  EntityID   – identifier of the touched entity.
//  Details    – optional free-form JSON payload.
//  CreatedAt  – when the action happened.
type AuditLog struct {
    ID         uint64    // audit_logs.id
    ActorID    uint64    // audit_logs.actor_id
    ActorEmail string    // audit_logs.actor_email
    Action     string    // audit_logs.action
    Entity     string    // audit_logs.entity
    EntityID   uint64    // audit_logs.entity_id
    Details    string    // audit_logs.details
    CreatedAt  time.Time // audit_logs.created_at
}
