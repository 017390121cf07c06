// Package oauth integrates the external OAuth provider. Only the
// pieces the auth handlers consume live here: building the consent
// URL, exchanging the authorization code and fetching the profile.
package oauth

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "net/http"
    "net/url"
    "strings"
    "time"
)

// Profile is what the provider tells us about the authenticated
// account. It feeds directly into auth.Identity.
type Profile struct {
    Subject       string `json:"sub"`
    Email         string `json:"email"`
    EmailVerified bool   `json:"email_verified"`
    Name          string `json:"name"`
    Picture       string `json:"picture"`
}

// Exchanger is the slice of the provider the auth handler needs.
// Tests substitute a fake; Google is the production implementation.
type Exchanger interface {
    AuthURL(state string) string
    Exchange(ctx context.Context, code string) (Profile, error)
}

// Google implements Exchanger against Google's OAuth2 endpoints
// using the authorization-code flow plus the userinfo endpoint.
// Endpoint URLs are fields so tests can point them at a local
// httptest server.
type Google struct {
    ClientID     string
    ClientSecret string
    RedirectURL  string

    AuthEndpoint     string
    TokenEndpoint    string
    UserinfoEndpoint string

    HTTP *http.Client
}

// NewGoogle builds a Google exchanger with the production
// endpoints and a 10 second HTTP timeout.
func NewGoogle(clientID, clientSecret, redirectURL string) *Google {
    return &Google{
        ClientID:         clientID,
        ClientSecret:     clientSecret,
        RedirectURL:      redirectURL,
        AuthEndpoint:     "https://accounts.google.com/o/oauth2/v2/auth",
        TokenEndpoint:    "https://oauth2.googleapis.com/token",
        UserinfoEndpoint: "https://openidconnect.googleapis.com/v1/userinfo",
        HTTP:             &http.Client{Timeout: 10 * time.Second},
    }
}

// AuthURL returns the consent page URL the login handler redirects
// to. The state value round-trips through a cookie to stop CSRF.
func (g *Google) AuthURL(state string) string {
    q := url.Values{}
    q.Set("client_id", g.ClientID)
    q.Set("redirect_uri", g.RedirectURL)
    q.Set("response_type", "code")
    q.Set("scope", "openid email profile")
    q.Set("state", state)
    return g.AuthEndpoint + "?" + q.Encode()
}

type tokenResponse struct {
    AccessToken string `json:"access_token"`
    TokenType   string `json:"token_type"`
    ExpiresIn   int    `json:"expires_in"`
    IDToken     string `json:"id_token"`
}

// Exchange trades the authorization code for an access token and
// fetches the account profile with it.
func (g *Google) Exchange(ctx context.Context, code string) (Profile, error) {
    form := url.Values{}
    form.Set("grant_type", "authorization_code")
    form.Set("code", code)
    form.Set("client_id", g.ClientID)
    form.Set("client_secret", g.ClientSecret)
    form.Set("redirect_uri", g.RedirectURL)

    req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.TokenEndpoint,
        strings.NewReader(form.Encode()))
    if err != nil {
        return Profile{}, err
    }
    req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

    resp, err := g.HTTP.Do(req)
    if err != nil {
        return Profile{}, err
    }
    defer resp.Body.Close()
    if resp.StatusCode/100 != 2 {
        return Profile{}, fmt.Errorf("oauth: token endpoint http %d", resp.StatusCode)
    }
    var tok tokenResponse
    if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
        return Profile{}, err
    }
    if tok.AccessToken == "" {
        return Profile{}, errors.New("oauth: empty access token")
    }

    uiReq, err := http.NewRequestWithContext(ctx, http.MethodGet, g.UserinfoEndpoint, nil)
    if err != nil {
        return Profile{}, err
    }
    uiReq.Header.Set("Authorization", "Bearer "+tok.AccessToken)

    uiResp, err := g.HTTP.Do(uiReq)
    if err != nil {
        return Profile{}, err
    }
    defer uiResp.Body.Close()
    if uiResp.StatusCode/100 != 2 {
        return Profile{}, fmt.Errorf("oauth: userinfo endpoint http %d", uiResp.StatusCode)
    }
    var p Profile
    if err := json.NewDecoder(uiResp.Body).Decode(&p); err != nil {
        return Profile{}, err
    }
    if p.Subject == "" {
        return Profile{}, errors.New("oauth: userinfo missing subject")
    }
    return p, nil
}
