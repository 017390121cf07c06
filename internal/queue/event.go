// Package queue defines message payloads exchanged over the message broker.
package queue

// AuditEvent is published whenever a handler performs a mutating
// operation. The consumer drains these into the audit_logs table;
// keeping the write off the request path means a slow audit store
// never delays the response.
type AuditEvent struct {
    ActorID    uint64 `json:"actor_id"`
    ActorEmail string `json:"actor_email"`
    Action     string `json:"action"`
    Entity     string `json:"entity"`
    EntityID   uint64 `json:"entity_id"`
    Details    string `json:"details,omitempty"`
    OccurredAt string `json:"occurred_at"`
}
