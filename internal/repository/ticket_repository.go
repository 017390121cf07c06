package repository

import (
    "context"
    "database/sql"

    "github.com/Oussamaredd/ISI-react-app1-sub002/internal/model"
)

// TicketRepo provides access to the 'tickets' table. All reads and
// writes are tenant-scoped: a caller can only touch tickets of the
// hotel passed in, which handlers take from the request context.
type TicketRepo struct{ DB *sql.DB }

func NewTicketRepo(db *sql.DB) *TicketRepo { return &TicketRepo{DB: db} }

const ticketColumns = "id,hotel_id,title,description,status,priority,created_by,assigned_to,created_at,updated_at"

func scanTicket(rows *sql.Rows) (model.Ticket, error) {
    var (
        t        model.Ticket
        assigned sql.NullInt64
    )
    if err := rows.Scan(&t.ID, &t.HotelID, &t.Title, &t.Description, &t.Status,
        &t.Priority, &t.CreatedBy, &assigned, &t.CreatedAt, &t.UpdatedAt); err != nil {
        return model.Ticket{}, err
    }
    if assigned.Valid {
        v := uint64(assigned.Int64)
        t.AssignedTo = &v
    }
    return t, nil
}

// ListByHotel returns a page of the hotel's tickets, optionally
// filtered by status, newest first.
func (r *TicketRepo) ListByHotel(ctx context.Context, hotelID uint64, status string, limit, offset int) ([]model.Ticket, error) {
    q := "SELECT " + ticketColumns + " FROM tickets WHERE hotel_id=?"
    args := []interface{}{hotelID}
    if status != "" {
        q += " AND status=?"
        args = append(args, status)
    }
    q += " ORDER BY id DESC LIMIT ? OFFSET ?"
    args = append(args, limit, offset)

    rows, err := r.DB.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    var out []model.Ticket
    for rows.Next() {
        t, err := scanTicket(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, t)
    }
    return out, rows.Err()
}

// GetByID fetches a ticket and enforces tenant ownership:
// requesting another hotel's ticket yields ErrForbidden rather
// than leaking its existence through a different error.
func (r *TicketRepo) GetByID(ctx context.Context, id, hotelID uint64) (model.Ticket, error) {
    var (
        t        model.Ticket
        assigned sql.NullInt64
    )
    err := r.DB.QueryRowContext(ctx,
        "SELECT "+ticketColumns+" FROM tickets WHERE id=? LIMIT 1",
        id).Scan(&t.ID, &t.HotelID, &t.Title, &t.Description, &t.Status,
        &t.Priority, &t.CreatedBy, &assigned, &t.CreatedAt, &t.UpdatedAt)
    if err != nil {
        return model.Ticket{}, err
    }
    if t.HotelID != hotelID {
        return model.Ticket{}, ErrForbidden
    }
    if assigned.Valid {
        v := uint64(assigned.Int64)
        t.AssignedTo = &v
    }
    return t, nil
}

// Create inserts a ticket and returns its ID.
func (r *TicketRepo) Create(ctx context.Context, hotelID uint64, title, description, priority string, createdBy uint64) (uint64, error) {
    res, err := r.DB.ExecContext(ctx,
        "INSERT INTO tickets (hotel_id, title, description, status, priority, created_by) VALUES (?,?,?,?,?,?)",
        hotelID, title, description, model.TicketOpen, priority, createdBy)
    if err != nil {
        return 0, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return 0, err
    }
    return uint64(id), nil
}

// Update replaces the mutable fields of a ticket within the
// caller's hotel. Returns sql.ErrNoRows when nothing matched.
func (r *TicketRepo) Update(ctx context.Context, id, hotelID uint64, title, description, status, priority string, assignedTo *uint64) error {
    var assigned sql.NullInt64
    if assignedTo != nil {
        assigned = sql.NullInt64{Int64: int64(*assignedTo), Valid: true}
    }
    res, err := r.DB.ExecContext(ctx,
        "UPDATE tickets SET title=?, description=?, status=?, priority=?, assigned_to=? WHERE id=? AND hotel_id=?",
        title, description, status, priority, assigned, id, hotelID)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return sql.ErrNoRows
    }
    return nil
}

// Delete removes a ticket within the caller's hotel.
func (r *TicketRepo) Delete(ctx context.Context, id, hotelID uint64) error {
    res, err := r.DB.ExecContext(ctx,
        "DELETE FROM tickets WHERE id=? AND hotel_id=?", id, hotelID)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return sql.ErrNoRows
    }
    return nil
}
