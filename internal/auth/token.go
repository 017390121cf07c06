package auth

import (
    "errors"
    "net/http"
    "time"

    "github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens
)

// DefaultCookieName is used when no cookie name is configured.
const DefaultCookieName = "hta_session"

// ErrNoSecret is returned by IssueToken when no signing secret is
// configured. Issuing must fail loudly; reading degrades silently
// to "not authenticated" instead.
var ErrNoSecret = errors.New("auth: signing secret not configured")

// TokenCodec signs and verifies the session cookie token. The
// token is an HS256 JWT carrying the provider identity in its
// claims: sub (subject id), prv (provider tag), email, name and
// picture, plus the standard exp/iat pair.
type TokenCodec struct {
    Secret     string // HMAC signing secret
    CookieName string // cookie the token travels in
}

// NewTokenCodec builds a codec, falling back to DefaultCookieName
// when name is empty.
func NewTokenCodec(secret, name string) TokenCodec {
    if name == "" {
        name = DefaultCookieName
    }
    return TokenCodec{Secret: secret, CookieName: name}
}

// IssueToken signs a token embedding the identity, valid for ttl.
// An empty secret is a configuration failure and returns ErrNoSecret.
func (tc TokenCodec) IssueToken(id Identity, ttl time.Duration) (string, time.Time, error) {
    if tc.Secret == "" {
        return "", time.Time{}, ErrNoSecret
    }
    exp := time.Now().UTC().Add(ttl)
    claims := jwt.MapClaims{
        "sub":     id.Subject,
        "prv":     id.Provider,
        "email":   id.Email,
        "name":    id.Name,
        "picture": id.Picture,
        "exp":     exp.Unix(),
        "iat":     time.Now().UTC().Unix(),
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    signed, err := t.SignedString([]byte(tc.Secret))
    if err != nil {
        return "", time.Time{}, err
    }
    return signed, exp, nil
}

// ReadIdentity extracts the identity from the raw Cookie header of
// a request. Every failure mode (no cookie, no token, bad
// signature, expired token, malformed claims, missing secret)
// yields nil: verification never errors, it only declines to
// authenticate. No side effects.
func (tc TokenCodec) ReadIdentity(cookieHeader string) *Identity {
    if cookieHeader == "" || tc.Secret == "" {
        return nil
    }
    // Reuse net/http's cookie parsing rather than splitting the
    // header by hand.
    req := http.Request{Header: http.Header{"Cookie": {cookieHeader}}}
    ck, err := req.Cookie(tc.CookieName)
    if err != nil || ck.Value == "" {
        return nil
    }

    tok, err := jwt.Parse(ck.Value, func(t *jwt.Token) (interface{}, error) {
        // Only HMAC signatures are acceptable here; reject any
        // token trying to downgrade to none or switch algorithms.
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, errors.New("unexpected signing method")
        }
        return []byte(tc.Secret), nil
    })
    if err != nil || !tok.Valid {
        return nil
    }
    claims, ok := tok.Claims.(jwt.MapClaims)
    if !ok {
        return nil
    }

    id := Identity{
        Subject:  strClaim(claims, "sub"),
        Provider: strClaim(claims, "prv"),
        Email:    strClaim(claims, "email"),
        Name:     strClaim(claims, "name"),
        Picture:  strClaim(claims, "picture"),
    }
    if id.Subject == "" {
        return nil
    }
    return &id
}

// CookieValue returns the raw token value from the Cookie header,
// or "" when the session cookie is absent. Used for session-hash
// lookups, which operate on the raw token rather than its claims.
func (tc TokenCodec) CookieValue(cookieHeader string) string {
    if cookieHeader == "" {
        return ""
    }
    req := http.Request{Header: http.Header{"Cookie": {cookieHeader}}}
    ck, err := req.Cookie(tc.CookieName)
    if err != nil {
        return ""
    }
    return ck.Value
}

func strClaim(m jwt.MapClaims, k string) string {
    if v, ok := m[k].(string); ok {
        return v
    }
    return ""
}
