// Package repository implements data access over database/sql.
// This file defines sentinel error values reused across the
// individual repositories so handlers can map failure scenarios to
// HTTP statuses without string matching.
package repository

import (
    "errors"
    "strings"
)

// ErrEmailExists is returned when an insert hits the unique email
// constraint on the users table. The auth materializer treats it
// as "someone else just created this user" and re-fetches.
var ErrEmailExists = errors.New("email already exists")

// ErrRoleExists is returned when a role insert or rename collides
// with an existing role name. Handlers translate this into 409.
var ErrRoleExists = errors.New("role name already exists")

// ErrForbidden is returned when the caller attempts an operation
// on a resource outside their tenant. Handlers translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a delete or update cannot proceed
// because of dependent records, such as deleting a role still
// assigned to users. Handlers translate this into HTTP 409.
var ErrConflict = errors.New("conflict")

// isDuplicate reports whether err is a MySQL duplicate-key error
// (error 1062 on a unique index).
func isDuplicate(err error) bool {
    return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
