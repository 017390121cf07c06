package model

import "time"

// Hotel represents a tenant in the system. Every user and every
// ticket belongs to exactly one hotel. This struct corresponds to
// a row in the `hotels` table.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – unique hotel name.
//  City      – city the hotel operates in.
//  Address   – street address.
//  IsActive  – whether the hotel is currently serviced.
//  CreatedAt – timestamp when the hotel was created.
//  UpdatedAt – timestamp of last update.
type Hotel struct {
    ID        uint64    // hotels.id
    Name      string    // hotels.name
    City      string    // hotels.city
    Address   string    // hotels.address
    IsActive  bool      // hotels.is_active
    CreatedAt time.Time // hotels.created_at
    UpdatedAt time.Time // hotels.updated_at
}
