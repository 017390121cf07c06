package model

import "time"

// Setting is a single key/value pair from the `settings` table.
// Settings hold small pieces of system configuration editable from
// the admin UI (branding, default tenant, notification toggles).
type Setting struct {
    Key       string    // settings.key
    Value     string    // settings.value
    UpdatedAt time.Time // settings.updated_at
}
