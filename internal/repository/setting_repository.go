package repository

import (
    "context"
    "database/sql"

    "github.com/Oussamaredd/ISI-react-app1-sub002/internal/model"
)

// SettingRepo provides access to the 'settings' key/value table.
type SettingRepo struct{ DB *sql.DB }

func NewSettingRepo(db *sql.DB) *SettingRepo { return &SettingRepo{DB: db} }

// Get returns a single setting by key.
func (r *SettingRepo) Get(ctx context.Context, key string) (model.Setting, error) {
    var s model.Setting
    err := r.DB.QueryRowContext(ctx,
        "SELECT `key`, value, updated_at FROM settings WHERE `key`=? LIMIT 1",
        key).Scan(&s.Key, &s.Value, &s.UpdatedAt)
    return s, err
}

// Upsert writes a setting, replacing any previous value.
func (r *SettingRepo) Upsert(ctx context.Context, key, value string) error {
    _, err := r.DB.ExecContext(ctx,
        "INSERT INTO settings (`key`, value) VALUES (?,?) ON DUPLICATE KEY UPDATE value=VALUES(value)",
        key, value)
    return err
}

// List returns all settings ordered by key.
func (r *SettingRepo) List(ctx context.Context) ([]model.Setting, error) {
    rows, err := r.DB.QueryContext(ctx,
        "SELECT `key`, value, updated_at FROM settings ORDER BY `key`")
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    var out []model.Setting
    for rows.Next() {
        var s model.Setting
        if err := rows.Scan(&s.Key, &s.Value, &s.UpdatedAt); err != nil {
            return nil, err
        }
        out = append(out, s)
    }
    return out, rows.Err()
}
