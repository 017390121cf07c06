package model

import "time"

// User represents an application user record as stored in the
// `users` table. Accounts are created either by an administrator
// or automatically the first time an identity from the OAuth
// provider is seen ("ensure user for auth"). OAuth-only accounts
// have no password hash, which is why the column is nullable.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Email        – unique email address; the linking key across auth providers.
//  Name         – display name shown in the admin UI.
//  PasswordHash – bcrypt hashed password; nil for OAuth-only accounts.
//  Role         – primary role name (defaults to "agent").
//  IsActive     – whether the account may authenticate.
//  HotelID      – owning tenant (hotel) of the user.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
    ID           uint64    // users.id
    Email        string    // users.email
    Name         string    // users.name
    PasswordHash *string   // users.password_hash (nullable)
    Role         string    // users.role
    IsActive     bool      // users.is_active
    HotelID      uint64    // users.hotel_id
    CreatedAt    time.Time // users.created_at
    UpdatedAt    time.Time // users.updated_at
}
