package repository

import (
    "context"
    "database/sql"
    "encoding/json"

    "github.com/Oussamaredd/ISI-react-app1-sub002/internal/model"
)

// RoleRepo provides access to the 'roles' table. Defaults holds
// the role -> permissions table used to lazily seed the built-in
// roles; it is injected at construction (from the auth package's
// fallback table) to keep this package free of policy constants.
type RoleRepo struct {
    DB       *sql.DB
    Defaults map[string][]string
}

func NewRoleRepo(db *sql.DB, defaults map[string][]string) *RoleRepo {
    return &RoleRepo{DB: db, Defaults: defaults}
}

// seedRoles are the built-in roles inserted on first listing, in
// insertion order.
var seedRoles = []struct{ name, description string }{
    {"admin", "Full administrative access"},
    {"manager", "Manage tickets, hotels and view users"},
    {"agent", "Work on tickets"},
}

// List returns all roles. When the table is empty the default
// roles are seeded first, so a fresh installation always exposes
// admin/manager/agent.
func (r *RoleRepo) List(ctx context.Context) ([]model.Role, error) {
    roles, err := r.list(ctx)
    if err != nil {
        return nil, err
    }
    if len(roles) > 0 {
        return roles, nil
    }
    if err := r.seed(ctx); err != nil {
        return nil, err
    }
    return r.list(ctx)
}

func (r *RoleRepo) list(ctx context.Context) ([]model.Role, error) {
    rows, err := r.DB.QueryContext(ctx,
        "SELECT id,name,description,permissions,created_at,updated_at FROM roles ORDER BY id")
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    var out []model.Role
    for rows.Next() {
        ro, err := scanRole(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, ro)
    }
    return out, rows.Err()
}

func (r *RoleRepo) seed(ctx context.Context) error {
    for _, s := range seedRoles {
        perms, err := json.Marshal(r.Defaults[s.name])
        if err != nil {
            return err
        }
        // INSERT IGNORE: two concurrent first listings must not
        // fail on the unique name index.
        if _, err := r.DB.ExecContext(ctx,
            "INSERT IGNORE INTO roles (name, description, permissions) VALUES (?,?,?)",
            s.name, s.description, string(perms)); err != nil {
            return err
        }
    }
    return nil
}

func scanRole(rows *sql.Rows) (model.Role, error) {
    var (
        ro    model.Role
        perms sql.NullString
    )
    if err := rows.Scan(&ro.ID, &ro.Name, &ro.Description, &perms,
        &ro.CreatedAt, &ro.UpdatedAt); err != nil {
        return model.Role{}, err
    }
    if perms.Valid && perms.String != "" {
        if err := json.Unmarshal([]byte(perms.String), &ro.Permissions); err != nil {
            return model.Role{}, err
        }
    }
    return ro, nil
}

// GetByID fetches a single role.
func (r *RoleRepo) GetByID(ctx context.Context, id uint64) (model.Role, error) {
    var (
        ro    model.Role
        perms sql.NullString
    )
    err := r.DB.QueryRowContext(ctx,
        "SELECT id,name,description,permissions,created_at,updated_at FROM roles WHERE id=? LIMIT 1",
        id).Scan(&ro.ID, &ro.Name, &ro.Description, &perms, &ro.CreatedAt, &ro.UpdatedAt)
    if err != nil {
        return model.Role{}, err
    }
    if perms.Valid && perms.String != "" {
        if err := json.Unmarshal([]byte(perms.String), &ro.Permissions); err != nil {
            return model.Role{}, err
        }
    }
    return ro, nil
}

// Create inserts a role and returns its ID. Role names are unique.
func (r *RoleRepo) Create(ctx context.Context, name, description string, permissions []string) (uint64, error) {
    perms, err := json.Marshal(permissions)
    if err != nil {
        return 0, err
    }
    res, err := r.DB.ExecContext(ctx,
        "INSERT INTO roles (name, description, permissions) VALUES (?,?,?)",
        name, description, string(perms))
    if err != nil {
        if isDuplicate(err) {
            return 0, ErrRoleExists
        }
        return 0, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return 0, err
    }
    return uint64(id), nil
}

// Update replaces a role's name, description and permission list.
func (r *RoleRepo) Update(ctx context.Context, id uint64, name, description string, permissions []string) error {
    perms, err := json.Marshal(permissions)
    if err != nil {
        return err
    }
    _, err = r.DB.ExecContext(ctx,
        "UPDATE roles SET name=?, description=?, permissions=? WHERE id=?",
        name, description, string(perms), id)
    if err != nil && isDuplicate(err) {
        return ErrRoleExists
    }
    return err
}

// Delete removes a role. A role still linked to users cannot be
// deleted and yields ErrConflict.
func (r *RoleRepo) Delete(ctx context.Context, id uint64) error {
    var n int
    if err := r.DB.QueryRowContext(ctx,
        "SELECT COUNT(*) FROM user_roles WHERE role_id=?", id).Scan(&n); err != nil {
        return err
    }
    if n > 0 {
        return ErrConflict
    }
    _, err := r.DB.ExecContext(ctx, "DELETE FROM roles WHERE id=?", id)
    return err
}
