package auth

import (
    "context"
    "database/sql"
    "errors"

    "github.com/Oussamaredd/ISI-react-app1-sub002/internal/model"
    "github.com/Oussamaredd/ISI-react-app1-sub002/internal/utils"
)

// ResolutionState classifies the outcome of resolving a request's
// identity against storage.
type ResolutionState int

const (
    // StateUnauthenticated covers both "no usable identity" and
    // "identity with no materializable user". The two are
    // indistinguishable on the wire so a probe cannot learn
    // whether an email exists.
    StateUnauthenticated ResolutionState = iota
    // StateInactive means the user exists but is deactivated.
    StateInactive
    // StateResolved means an active user and its linked roles were
    // loaded.
    StateResolved
)

// Resolution is the sum-typed result shared by both guards. User
// and Roles are only meaningful for StateInactive/StateResolved.
type Resolution struct {
    State ResolutionState
    User  model.User
    Roles []model.Role
}

// SessionChecker validates that the session behind a token hash is
// still live. Implemented by repository.SessionRepo.
type SessionChecker interface {
    Validate(ctx context.Context, tokenHash string) (uint64, error)
}

// Service bundles the credential codec, the materializer and the
// aggregator so both guards run the exact same resolution path.
// Sessions is optional; when set, tokens whose session row has
// been revoked (logout, forced logout) stop resolving even before
// they expire.
type Service struct {
    Codec        TokenCodec
    Materializer *Materializer
    Aggregator   *Aggregator
    Sessions     SessionChecker
}

// ResolveRequest runs cookie -> identity -> persisted user -> roles.
// Storage errors propagate; policy outcomes are encoded in the
// Resolution state. No result is cached: every request re-reads
// current storage state so administrative changes apply on the
// next request.
func (s *Service) ResolveRequest(ctx context.Context, cookieHeader string) (Resolution, error) {
    id := s.Codec.ReadIdentity(cookieHeader)
    if id == nil {
        return Resolution{State: StateUnauthenticated}, nil
    }
    if s.Sessions != nil {
        raw := s.Codec.CookieValue(cookieHeader)
        if _, err := s.Sessions.Validate(ctx, utils.HashTokenRaw(raw)); err != nil {
            if errors.Is(err, sql.ErrNoRows) {
                // Revoked or unknown session: the signed token
                // alone is not enough.
                return Resolution{State: StateUnauthenticated}, nil
            }
            return Resolution{}, err
        }
    }
    u, err := s.Materializer.EnsureUserForAuth(ctx, id)
    if err != nil {
        return Resolution{}, err
    }
    if u == nil {
        return Resolution{State: StateUnauthenticated}, nil
    }
    if !u.IsActive {
        return Resolution{State: StateInactive, User: *u}, nil
    }
    roles, err := s.Aggregator.Roles.RolesForUser(ctx, u.ID)
    if err != nil {
        return Resolution{}, err
    }
    return Resolution{State: StateResolved, User: *u, Roles: roles}, nil
}
