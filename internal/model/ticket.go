package model

import "time"

// Ticket status values as stored in tickets.status.
const (
    TicketOpen       = "OPEN"
    TicketInProgress = "IN_PROGRESS"
    TicketResolved   = "RESOLVED"
    TicketClosed     = "CLOSED"
)

// Ticket priority values as stored in tickets.priority.
const (
    PriorityLow    = "LOW"
    PriorityMedium = "MEDIUM"
    PriorityHigh   = "HIGH"
)

// Ticket represents a support ticket raised against a hotel. It
// corresponds to a row in the `tickets` table. Tickets are always
// scoped to a tenant via HotelID; listing endpoints filter on it.
//
// Fields:
//  ID          – primary key identifier.
//  HotelID     – tenant the ticket belongs to.
//  Title       – short summary of the issue.
//  Description – free-form details.
//  Status      – one of OPEN, IN_PROGRESS, RESOLVED, CLOSED.
//  Priority    – one of LOW, MEDIUM, HIGH.
//  CreatedBy   – user who opened the ticket.
//  AssignedTo  – user the ticket is assigned to (nullable).
//  CreatedAt   – timestamp of creation.
//  UpdatedAt   – timestamp of last update.
type Ticket struct {
    ID          uint64    // tickets.id
    HotelID     uint64    // tickets.hotel_id
    Title       string    // tickets.title
    Description string    // tickets.description
    Status      string    // tickets.status
    Priority    string    // tickets.priority
    CreatedBy   uint64    // tickets.created_by
    AssignedTo  *uint64   // tickets.assigned_to (nullable)
    CreatedAt   time.Time // tickets.created_at
    UpdatedAt   time.Time // tickets.updated_at
}
