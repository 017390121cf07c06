// Package auth implements the authorization pipeline: reading a
// signed cookie into a provider identity, materializing that
// identity into a persisted user, and aggregating the user's roles
// into an effective permission set. The Echo middlewares in
// internal/middleware are thin policy layers over this package.
package auth

// Identity is the provider-level assertion decoded from a signed
// cookie token. It is ephemeral: never persisted as-is, only used
// as the input to user materialization. Values are immutable once
// constructed.
//
// Fields:
//  Provider – provider tag, currently "google" or "local".
//  Subject  – provider-scoped subject identifier.
//  Email    – email address; the linking key for materialization.
//  Name     – optional display name.
//  Picture  – optional avatar URL.
type Identity struct {
    Provider string
    Subject  string
    Email    string
    Name     string
    Picture  string
}
