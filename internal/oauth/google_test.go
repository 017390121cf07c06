package oauth

import (
    "context"
    "net/http"
    "net/http/httptest"
    "net/url"
    "testing"
    "time"

    "github.com/stretchr/testify/require"
)

func testGoogle(tokenURL, userinfoURL string) *Google {
    return &Google{
        ClientID:         "client-id",
        ClientSecret:     "client-secret",
        RedirectURL:      "https://app.example.com/v1/auth/google/callback",
        AuthEndpoint:     "https://accounts.example.com/auth",
        TokenEndpoint:    tokenURL,
        UserinfoEndpoint: userinfoURL,
        HTTP:             &http.Client{Timeout: 2 * time.Second},
    }
}

func TestAuthURL(t *testing.T) {
    g := testGoogle("", "")
    raw := g.AuthURL("state-xyz")

    u, err := url.Parse(raw)
    require.NoError(t, err)
    q := u.Query()
    require.Equal(t, "client-id", q.Get("client_id"))
    require.Equal(t, "code", q.Get("response_type"))
    require.Equal(t, "state-xyz", q.Get("state"))
    require.Contains(t, q.Get("scope"), "email")
}

func TestExchangeHappyPath(t *testing.T) {
    mux := http.NewServeMux()
    mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
        require.NoError(t, r.ParseForm())
        require.Equal(t, "authorization_code", r.Form.Get("grant_type"))
        require.Equal(t, "the-code", r.Form.Get("code"))
        w.Header().Set("Content-Type", "application/json")
        _, _ = w.Write([]byte(`{"access_token":"at-1","token_type":"Bearer","expires_in":3600}`))
    })
    mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
        require.Equal(t, "Bearer at-1", r.Header.Get("Authorization"))
        w.Header().Set("Content-Type", "application/json")
        _, _ = w.Write([]byte(`{"sub":"g-123","email":"alice@example.com","email_verified":true,"name":"Alice","picture":"p"}`))
    })
    srv := httptest.NewServer(mux)
    defer srv.Close()

    g := testGoogle(srv.URL+"/token", srv.URL+"/userinfo")
    p, err := g.Exchange(context.Background(), "the-code")
    require.NoError(t, err)
    require.Equal(t, "g-123", p.Subject)
    require.Equal(t, "alice@example.com", p.Email)
    require.Equal(t, "Alice", p.Name)
}

func TestExchangeTokenEndpointError(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        http.Error(w, "bad code", http.StatusBadRequest)
    }))
    defer srv.Close()

    g := testGoogle(srv.URL, srv.URL)
    _, err := g.Exchange(context.Background(), "bad")
    require.Error(t, err)
}

func TestExchangeRejectsEmptyAccessToken(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.Header().Set("Content-Type", "application/json")
        _, _ = w.Write([]byte(`{}`))
    }))
    defer srv.Close()

    g := testGoogle(srv.URL, srv.URL)
    _, err := g.Exchange(context.Background(), "code")
    require.Error(t, err)
}

func TestExchangeRejectsMissingSubject(t *testing.T) {
    mux := http.NewServeMux()
    mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
        w.Header().Set("Content-Type", "application/json")
        _, _ = w.Write([]byte(`{"access_token":"at-1"}`))
    })
    mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
        w.Header().Set("Content-Type", "application/json")
        _, _ = w.Write([]byte(`{"email":"nobody@example.com"}`))
    })
    srv := httptest.NewServer(mux)
    defer srv.Close()

    g := testGoogle(srv.URL+"/token", srv.URL+"/userinfo")
    _, err := g.Exchange(context.Background(), "code")
    require.Error(t, err)
}
