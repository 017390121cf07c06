package model

import "time"

// Role represents a row in the `roles` table. A role groups a set
// of permission strings; users are linked to roles through the
// `user_roles` junction table in addition to their primary role
// string. Permission strings are stored as a JSON array in the
// `permissions` column.
//
// Fields:
//  ID          – numeric identifier of the role.
//  Name        – unique role name (e.g. admin, manager, agent).
//  Description – optional human-readable description.
//  Permissions – permission strings granted by this role.
//  CreatedAt   – timestamp of creation.
//  UpdatedAt   – timestamp of last update.
type Role struct {
    ID          uint64    // roles.id
    Name        string    // roles.name
    Description string    // roles.description
    Permissions []string  // roles.permissions (JSON array)
    CreatedAt   time.Time // roles.created_at
    UpdatedAt   time.Time // roles.updated_at
}

// RoleRef is the lightweight id+name pair attached to request
// contexts. Handlers never need the full permission payload of
// each role, only its identity.
type RoleRef struct {
    ID   uint64 `json:"id"`
    Name string `json:"name"`
}
