package repository

import (
    "context"
    "database/sql"
    "encoding/json"
    "strings"

    "github.com/Oussamaredd/ISI-react-app1-sub002/internal/model"
    "github.com/Oussamaredd/ISI-react-app1-sub002/internal/utils"
)

const userColumns = "id,email,name,password_hash,role,is_active,hotel_id,created_at,updated_at"

// UserRepo provides access to the 'users' table and the
// user_roles junction.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

func scanUser(row *sql.Row) (model.User, error) {
    var u model.User
    err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role,
        &u.IsActive, &u.HotelID, &u.CreatedAt, &u.UpdatedAt)
    return u, err
}

// Create inserts a password-backed user (admin-created accounts)
// and returns its ID.
func (r *UserRepo) Create(ctx context.Context, email, name, password, role string, hotelID uint64, cost int) (uint64, error) {
    email = strings.ToLower(strings.TrimSpace(email))
    hash, err := utils.HashPassword(password, cost)
    if err != nil {
        return 0, err
    }
    res, err := r.DB.ExecContext(ctx,
        "INSERT INTO users (email, name, password_hash, role, hotel_id) VALUES (?,?,?,?,?)",
        email, name, hash, role, hotelID)
    if err != nil {
        if isDuplicate(err) {
            return 0, ErrEmailExists
        }
        return 0, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return 0, err
    }
    return uint64(id), nil
}

// CreateFromIdentity inserts a user materialized from an OAuth
// identity. No password hash is stored for such accounts.
func (r *UserRepo) CreateFromIdentity(ctx context.Context, email, name, role string, hotelID uint64) (uint64, error) {
    email = strings.ToLower(strings.TrimSpace(email))
    res, err := r.DB.ExecContext(ctx,
        "INSERT INTO users (email, name, role, hotel_id) VALUES (?,?,?,?)",
        email, name, role, hotelID)
    if err != nil {
        if isDuplicate(err) {
            return 0, ErrEmailExists
        }
        return 0, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return 0, err
    }
    return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
    email = strings.ToLower(strings.TrimSpace(email))
    return scanUser(r.DB.QueryRowContext(ctx,
        "SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
    return scanUser(r.DB.QueryRowContext(ctx,
        "SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
}

// List returns a page of users ordered by id.
func (r *UserRepo) List(ctx context.Context, limit, offset int) ([]model.User, error) {
    rows, err := r.DB.QueryContext(ctx,
        "SELECT "+userColumns+" FROM users ORDER BY id LIMIT ? OFFSET ?", limit, offset)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    var out []model.User
    for rows.Next() {
        var u model.User
        if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role,
            &u.IsActive, &u.HotelID, &u.CreatedAt, &u.UpdatedAt); err != nil {
            return nil, err
        }
        out = append(out, u)
    }
    return out, rows.Err()
}

// UpdateRole changes a user's primary role string.
func (r *UserRepo) UpdateRole(ctx context.Context, id uint64, role string) error {
    _, err := r.DB.ExecContext(ctx, "UPDATE users SET role=? WHERE id=?", role, id)
    return err
}

// SetActive toggles the active flag. Deactivation takes effect on
// the user's very next request since guards re-read storage every
// time.
func (r *UserRepo) SetActive(ctx context.Context, id uint64, active bool) error {
    _, err := r.DB.ExecContext(ctx, "UPDATE users SET is_active=? WHERE id=?", active, id)
    return err
}

// AssignRole links a role to a user. Re-assigning is a no-op.
func (r *UserRepo) AssignRole(ctx context.Context, userID, roleID uint64) error {
    _, err := r.DB.ExecContext(ctx,
        "INSERT IGNORE INTO user_roles (user_id, role_id) VALUES (?,?)", userID, roleID)
    return err
}

// UnassignRole removes a role link.
func (r *UserRepo) UnassignRole(ctx context.Context, userID, roleID uint64) error {
    _, err := r.DB.ExecContext(ctx,
        "DELETE FROM user_roles WHERE user_id=? AND role_id=?", userID, roleID)
    return err
}

// RolesForUser returns the role rows linked to a user via the
// user_roles junction, with permissions decoded from the JSON
// column. A NULL or empty column decodes to no permissions.
func (r *UserRepo) RolesForUser(ctx context.Context, userID uint64) ([]model.Role, error) {
    rows, err := r.DB.QueryContext(ctx,
        `SELECT r.id, r.name, r.description, r.permissions, r.created_at, r.updated_at
         FROM roles r JOIN user_roles ur ON ur.role_id = r.id
         WHERE ur.user_id = ? ORDER BY r.id`, userID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    var out []model.Role
    for rows.Next() {
        var (
            ro    model.Role
            perms sql.NullString
        )
        if err := rows.Scan(&ro.ID, &ro.Name, &ro.Description, &perms,
            &ro.CreatedAt, &ro.UpdatedAt); err != nil {
            return nil, err
        }
        if perms.Valid && perms.String != "" {
            if err := json.Unmarshal([]byte(perms.String), &ro.Permissions); err != nil {
                return nil, err
            }
        }
        out = append(out, ro)
    }
    return out, rows.Err()
}
