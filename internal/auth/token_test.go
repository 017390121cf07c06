package auth

import (
    "testing"
    "time"

    "github.com/stretchr/testify/require"
)

func cookieHeader(codec TokenCodec, token string) string {
    return codec.CookieName + "=" + token
}

func TestIssueAndReadRoundtrip(t *testing.T) {
    codec := NewTokenCodec("test-secret", "")
    require.Equal(t, DefaultCookieName, codec.CookieName)

    in := Identity{
        Provider: "google",
        Subject:  "sub-123",
        Email:    "alice@example.com",
        Name:     "Alice",
        Picture:  "https://example.com/a.png",
    }
    token, exp, err := codec.IssueToken(in, time.Hour)
    require.NoError(t, err)
    require.NotEmpty(t, token)
    require.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

    out := codec.ReadIdentity(cookieHeader(codec, token))
    require.NotNil(t, out)
    require.Equal(t, in, *out)
}

func TestIssueTokenRequiresSecret(t *testing.T) {
    codec := NewTokenCodec("", "session")
    _, _, err := codec.IssueToken(Identity{Subject: "x"}, time.Hour)
    require.ErrorIs(t, err, ErrNoSecret)
}

func TestReadIdentityRejectsBadSignature(t *testing.T) {
    issuer := NewTokenCodec("secret-a", "session")
    token, _, err := issuer.IssueToken(Identity{Subject: "x", Email: "x@example.com"}, time.Hour)
    require.NoError(t, err)

    verifier := NewTokenCodec("secret-b", "session")
    require.Nil(t, verifier.ReadIdentity(cookieHeader(verifier, token)))
}

func TestReadIdentityRejectsExpiredToken(t *testing.T) {
    codec := NewTokenCodec("test-secret", "session")
    token, _, err := codec.IssueToken(Identity{Subject: "x"}, -time.Minute)
    require.NoError(t, err)

    require.Nil(t, codec.ReadIdentity(cookieHeader(codec, token)))
}

func TestReadIdentityMissingCookie(t *testing.T) {
    codec := NewTokenCodec("test-secret", "session")
    require.Nil(t, codec.ReadIdentity(""))
    require.Nil(t, codec.ReadIdentity("other=value"))
    require.Nil(t, codec.ReadIdentity("session="))
    require.Nil(t, codec.ReadIdentity("session=not-a-jwt"))
}

func TestReadIdentityWithoutSecretDeclines(t *testing.T) {
    issuer := NewTokenCodec("test-secret", "session")
    token, _, err := issuer.IssueToken(Identity{Subject: "x"}, time.Hour)
    require.NoError(t, err)

    blank := TokenCodec{Secret: "", CookieName: "session"}
    require.Nil(t, blank.ReadIdentity(cookieHeader(blank, token)))
}

func TestReadIdentityRequiresSubject(t *testing.T) {
    codec := NewTokenCodec("test-secret", "session")
    token, _, err := codec.IssueToken(Identity{Email: "nosub@example.com"}, time.Hour)
    require.NoError(t, err)

    require.Nil(t, codec.ReadIdentity(cookieHeader(codec, token)))
}
