package auth

import (
    "context"
    "database/sql"
    "errors"
    "strings"

    "github.com/Oussamaredd/ISI-react-app1-sub002/internal/model"
    "github.com/Oussamaredd/ISI-react-app1-sub002/internal/repository"
)

// UserStore is the slice of the user repository the materializer
// needs. Implemented by repository.UserRepo.
type UserStore interface {
    GetByEmail(ctx context.Context, email string) (model.User, error)
    CreateFromIdentity(ctx context.Context, email, name, role string, hotelID uint64) (uint64, error)
}

// TenantAssigner decides which hotel a first-sight user belongs
// to. The default implementation returns a configured hotel id;
// deployments with per-domain tenant mapping plug in their own.
type TenantAssigner func(ctx context.Context, id Identity) (uint64, error)

// FixedTenant returns a TenantAssigner that always assigns the
// given hotel.
func FixedTenant(hotelID uint64) TenantAssigner {
    return func(context.Context, Identity) (uint64, error) { return hotelID, nil }
}

// Materializer maps a provider identity onto a persisted user,
// creating the row on first sight.
type Materializer struct {
    Users        UserStore
    DefaultRole  string
    AssignTenant TenantAssigner
}

// EnsureUserForAuth returns the persisted user for the identity,
// inserting one with the default role if none exists yet. A nil
// result with a nil error means the identity is unusable (no
// email) and callers must treat it as unauthorized.
//
// Concurrent first-sight creation is resolved by the unique email
// constraint: a duplicate-key insert means another request just
// created the row, so we re-fetch instead of failing.
func (m *Materializer) EnsureUserForAuth(ctx context.Context, id *Identity) (*model.User, error) {
    if id == nil {
        return nil, nil
    }
    email := strings.ToLower(strings.TrimSpace(id.Email))
    if email == "" {
        return nil, nil
    }

    u, err := m.Users.GetByEmail(ctx, email)
    if err == nil {
        return &u, nil
    }
    if !errors.Is(err, sql.ErrNoRows) {
        return nil, err
    }

    hotelID, err := m.AssignTenant(ctx, *id)
    if err != nil {
        return nil, err
    }
    role := m.DefaultRole
    if role == "" {
        role = "agent"
    }
    name := strings.TrimSpace(id.Name)
    if name == "" {
        name = email
    }

    if _, err := m.Users.CreateFromIdentity(ctx, email, name, role, hotelID); err != nil {
        if !errors.Is(err, repository.ErrEmailExists) {
            return nil, err
        }
        // Lost the creation race; the row exists now.
    }
    u, err = m.Users.GetByEmail(ctx, email)
    if err != nil {
        return nil, err
    }
    return &u, nil
}
