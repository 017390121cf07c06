package auth

import (
    "context"
    "sort"
    "strings"

    "github.com/Oussamaredd/ISI-react-app1-sub002/internal/model"
)

// The permission universe referenced by the admin permission
// catalog. Custom roles may only combine these strings.
const (
    PermTicketsRead   = "tickets.read"
    PermTicketsWrite  = "tickets.write"
    PermHotelsRead    = "hotels.read"
    PermHotelsWrite   = "hotels.write"
    PermUsersRead     = "users.read"
    PermUsersWrite    = "users.write"
    PermRolesRead     = "roles.read"
    PermRolesWrite    = "roles.write"
    PermAuditRead     = "audit.read"
    PermSettingsWrite = "settings.write"
)

// AllPermissions lists the full catalog in display order.
var AllPermissions = []string{
    PermTicketsRead, PermTicketsWrite,
    PermHotelsRead, PermHotelsWrite,
    PermUsersRead, PermUsersWrite,
    PermRolesRead, PermRolesWrite,
    PermAuditRead, PermSettingsWrite,
}

// DefaultRolePermissions maps a normalized role name to the
// baseline permissions that role always grants. The table is
// additive: it applies whenever the role name is held, on top of
// whatever explicit permissions the role row carries in storage.
// Seeded roles may have empty permission columns; the table makes
// a role name alone sufficient for baseline access.
var DefaultRolePermissions = map[string][]string{
    "super_admin": AllPermissions,
    "admin":       AllPermissions,
    "manager": {
        PermTicketsRead, PermTicketsWrite,
        PermHotelsRead, PermHotelsWrite,
        PermUsersRead, PermAuditRead,
    },
    "agent": {PermTicketsRead, PermTicketsWrite},
}

// AdminRoles is the allowlist checked by the admin guard. Admin
// endpoints are gated purely by role membership, never by the
// fine-grained permission set.
var AdminRoles = []string{"admin", "super_admin"}

// Normalize canonicalizes a role or permission name for
// membership comparisons: trimmed and lower-cased.
func Normalize(s string) string {
    return strings.ToLower(strings.TrimSpace(s))
}

// RoleSource supplies the role rows linked to a user. Implemented
// by repository.UserRepo; tests substitute in-memory fakes.
type RoleSource interface {
    RolesForUser(ctx context.Context, userID uint64) ([]model.Role, error)
}

// Grant is the outcome of permission aggregation for one user on
// one request. It is transient and never cached across requests:
// a revoked permission takes effect on the very next request.
type Grant struct {
    RoleNames   map[string]bool // normalized role names held by the user
    Roles       []model.RoleRef // linked role rows, id+name
    Permissions []string        // sorted, deduped, normalized permission set
}

// Has reports whether the grant includes the given permission.
func (g Grant) Has(perm string) bool {
    perm = Normalize(perm)
    for _, p := range g.Permissions {
        if p == perm {
            return true
        }
    }
    return false
}

// HasAnyRole reports whether the grant holds at least one of the
// given role names (compared normalized).
func (g Grant) HasAnyRole(names ...string) bool {
    for _, n := range names {
        if g.RoleNames[Normalize(n)] {
            return true
        }
    }
    return false
}

// Aggregator computes the effective permission set for a user.
// The fallback table is injected at construction so tests can
// substitute alternate tables.
type Aggregator struct {
    Roles    RoleSource
    Fallback map[string][]string
}

// NewAggregator builds an Aggregator; a nil fallback selects
// DefaultRolePermissions.
func NewAggregator(src RoleSource, fallback map[string][]string) *Aggregator {
    if fallback == nil {
        fallback = DefaultRolePermissions
    }
    return &Aggregator{Roles: src, Fallback: fallback}
}

// Resolve computes the role-name set and effective permission set
// for the user:
//
//  1. seed the role set with the user's primary role, normalized;
//  2. add each linked role's normalized name and its explicit
//     permission strings;
//  3. for every held role name, union the fallback permissions in
//     as well. This step is unconditional, not only for roles with
//     missing explicit data.
//
// Role names absent from both storage and the fallback table
// contribute membership only; that is least-privilege, not an
// error.
func (a *Aggregator) Resolve(ctx context.Context, user model.User) (Grant, error) {
    linked, err := a.Roles.RolesForUser(ctx, user.ID)
    if err != nil {
        return Grant{}, err
    }
    return a.Aggregate(user, linked), nil
}

// Aggregate is the pure half of Resolve: it computes the grant
// from the user's primary role and an already-fetched list of
// linked roles. Guards use it after the shared resolution step has
// loaded the roles.
func (a *Aggregator) Aggregate(user model.User, linked []model.Role) Grant {
    grant := Grant{RoleNames: map[string]bool{}}
    perms := map[string]bool{}

    if n := Normalize(user.Role); n != "" {
        grant.RoleNames[n] = true
    }

    for _, r := range linked {
        grant.Roles = append(grant.Roles, model.RoleRef{ID: r.ID, Name: r.Name})
        if n := Normalize(r.Name); n != "" {
            grant.RoleNames[n] = true
        }
        for _, p := range r.Permissions {
            if n := Normalize(p); n != "" {
                perms[n] = true
            }
        }
    }

    for name := range grant.RoleNames {
        for _, p := range a.Fallback[name] {
            if n := Normalize(p); n != "" {
                perms[n] = true
            }
        }
    }

    grant.Permissions = make([]string, 0, len(perms))
    for p := range perms {
        grant.Permissions = append(grant.Permissions, p)
    }
    sort.Strings(grant.Permissions)
    return grant
}
