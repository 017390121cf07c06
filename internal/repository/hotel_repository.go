package repository

import (
    "context"
    "database/sql"

    "github.com/Oussamaredd/ISI-react-app1-sub002/internal/model"
)

// HotelRepo provides access to the 'hotels' table.
type HotelRepo struct{ DB *sql.DB }

func NewHotelRepo(db *sql.DB) *HotelRepo { return &HotelRepo{DB: db} }

const hotelColumns = "id,name,city,address,is_active,created_at,updated_at"

// List returns all hotels ordered by name.
func (r *HotelRepo) List(ctx context.Context) ([]model.Hotel, error) {
    rows, err := r.DB.QueryContext(ctx,
        "SELECT "+hotelColumns+" FROM hotels ORDER BY name")
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    var out []model.Hotel
    for rows.Next() {
        var h model.Hotel
        if err := rows.Scan(&h.ID, &h.Name, &h.City, &h.Address, &h.IsActive,
            &h.CreatedAt, &h.UpdatedAt); err != nil {
            return nil, err
        }
        out = append(out, h)
    }
    return out, rows.Err()
}

// GetByID fetches a single hotel.
func (r *HotelRepo) GetByID(ctx context.Context, id uint64) (model.Hotel, error) {
    var h model.Hotel
    err := r.DB.QueryRowContext(ctx,
        "SELECT "+hotelColumns+" FROM hotels WHERE id=? LIMIT 1",
        id).Scan(&h.ID, &h.Name, &h.City, &h.Address, &h.IsActive, &h.CreatedAt, &h.UpdatedAt)
    return h, err
}

// Create inserts a hotel and returns its ID.
func (r *HotelRepo) Create(ctx context.Context, name, city, address string) (uint64, error) {
    res, err := r.DB.ExecContext(ctx,
        "INSERT INTO hotels (name, city, address) VALUES (?,?,?)", name, city, address)
    if err != nil {
        if isDuplicate(err) {
            return 0, ErrConflict
        }
        return 0, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return 0, err
    }
    return uint64(id), nil
}

// Update replaces a hotel's editable fields.
func (r *HotelRepo) Update(ctx context.Context, id uint64, name, city, address string, active bool) error {
    _, err := r.DB.ExecContext(ctx,
        "UPDATE hotels SET name=?, city=?, address=?, is_active=? WHERE id=?",
        name, city, address, active, id)
    if err != nil && isDuplicate(err) {
        return ErrConflict
    }
    return err
}
