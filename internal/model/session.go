package model

import "time"

// Session models an entry in the `sessions` table. A row is
// written on every successful login so that logout can revoke the
// cookie server-side. The cookie value itself is a signed token;
// only its SHA-256 hash is stored.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the session.
//  TokenHash – SHA-256 hex digest of the cookie token.
//  ExpiresAt – expiration timestamp of the session.
//  RevokedAt – when the session was revoked (null if still active).
//  CreatedAt – timestamp of creation.
type Session struct {
    ID        uint64     // sessions.id
    UserID    uint64     // sessions.user_id
    TokenHash string     // sessions.token_hash
    ExpiresAt time.Time  // sessions.expires_at
    RevokedAt *time.Time // sessions.revoked_at (nullable)
    CreatedAt time.Time  // sessions.created_at
}
