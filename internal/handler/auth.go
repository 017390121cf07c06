package handler

import (
    "context"      // provides context with cancellation for DB calls
    "database/sql" // SQL database interactions
    "net/http"     // HTTP status codes and primitives
    "strconv"      // id formatting for token subjects
    "strings"      // string manipulation utilities
    "time"         // timeouts for DB calls and cookie lifetimes

    "github.com/labstack/echo/v4" // Echo framework for HTTP routing

    "github.com/Oussamaredd/ISI-react-app1-sub002/internal/auth"
    "github.com/Oussamaredd/ISI-react-app1-sub002/internal/config"
    "github.com/Oussamaredd/ISI-react-app1-sub002/internal/middleware"
    "github.com/Oussamaredd/ISI-react-app1-sub002/internal/oauth"
    "github.com/Oussamaredd/ISI-react-app1-sub002/internal/repository"
    "github.com/Oussamaredd/ISI-react-app1-sub002/internal/utils"
)

// stateCookie carries the OAuth CSRF state between the redirect to
// the provider and the callback.
const stateCookie = "oauth_state"

// AuthHandler bundles dependencies for the auth endpoints: local
// login, Google login, logout and the /me probe.
type AuthHandler struct {
    Cfg      config.Config
    Users    *repository.UserRepo
    Sessions *repository.SessionRepo
    Codec    auth.TokenCodec
    Ensure   *auth.Materializer
    Google   oauth.Exchanger // nil when Google login is not configured
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo, s *repository.SessionRepo,
    codec auth.TokenCodec, ensure *auth.Materializer, google oauth.Exchanger) *AuthHandler {
    return &AuthHandler{Cfg: cfg, Users: u, Sessions: s, Codec: codec, Ensure: ensure, Google: google}
}

// ----- DTOs -----

type loginReq struct {
    Email    string `json:"email"`
    Password string `json:"password"`
}

type userPart struct {
    ID      uint64 `json:"id"`
    Email   string `json:"email"`
    Name    string `json:"name"`
    Role    string `json:"role"`
    HotelID uint64 `json:"hotelId"`
}

// sessionTTL converts the configured hours into a duration.
func (h *AuthHandler) sessionTTL() time.Duration {
    return time.Duration(h.Cfg.SessionTTL) * time.Hour
}

// issueSession signs a cookie token for the identity, records the
// session row and sets the cookie on the response.
func (h *AuthHandler) issueSession(c echo.Context, ctx context.Context, userID uint64, id auth.Identity) error {
    token, exp, err := h.Codec.IssueToken(id, h.sessionTTL())
    if err != nil {
        return err
    }
    if err := h.Sessions.Store(ctx, userID, utils.HashTokenRaw(token), exp); err != nil {
        return err
    }
    c.SetCookie(&http.Cookie{
        Name:     h.Codec.CookieName,
        Value:    token,
        Path:     "/",
        Expires:  exp,
        HttpOnly: true,
        SameSite: http.SameSiteLaxMode,
        Secure:   h.Cfg.Env == "prod",
    })
    return nil
}

// Login authenticates with email/password and sets the session
// cookie. Unknown email and wrong password are deliberately the
// same 401.
func (h *AuthHandler) Login(c echo.Context) error {
    var req loginReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Email = strings.ToLower(strings.TrimSpace(req.Email))
    if req.Email == "" || req.Password == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    u, err := h.Users.GetByEmail(ctx, req.Email)
    if err != nil {
        if err == sql.ErrNoRows {
            return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    if u.PasswordHash == nil || !utils.VerifyPassword(*u.PasswordHash, req.Password) {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
    }
    if !u.IsActive {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "account disabled"})
    }

    id := auth.Identity{
        Provider: "local",
        Subject:  strconv.FormatUint(u.ID, 10),
        Email:    u.Email,
        Name:     u.Name,
    }
    if err := h.issueSession(c, ctx, u.ID, id); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue session failed"})
    }

    return c.JSON(http.StatusOK, echo.Map{
        "user": userPart{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role, HotelID: u.HotelID},
    })
}

// Logout revokes the current session server-side and clears the
// cookie. Succeeds with 204 even when no valid cookie is present;
// logout is idempotent.
func (h *AuthHandler) Logout(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if ck, err := c.Cookie(h.Codec.CookieName); err == nil && ck.Value != "" {
        _ = h.Sessions.RevokeByHash(ctx, utils.HashTokenRaw(ck.Value))
    }
    c.SetCookie(&http.Cookie{
        Name:     h.Codec.CookieName,
        Value:    "",
        Path:     "/",
        MaxAge:   -1,
        HttpOnly: true,
    })
    return c.NoContent(http.StatusNoContent)
}

// Me returns the authenticated user's resolved context. Runs
// behind RequireAuth, so the context is always present here.
func (h *AuthHandler) Me(c echo.Context) error {
    uc := middleware.CurrentUser(c)
    if uc == nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
    }
    return c.JSON(http.StatusOK, uc)
}

// GoogleLogin redirects the browser to Google's consent page with
// a fresh CSRF state cookie.
func (h *AuthHandler) GoogleLogin(c echo.Context) error {
    if h.Google == nil {
        return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "google login not configured"})
    }
    state, err := utils.RandomHex(16)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "state generation failed"})
    }
    c.SetCookie(&http.Cookie{
        Name:     stateCookie,
        Value:    state,
        Path:     "/",
        MaxAge:   300,
        HttpOnly: true,
        SameSite: http.SameSiteLaxMode,
    })
    return c.Redirect(http.StatusFound, h.Google.AuthURL(state))
}

// GoogleCallback finishes the OAuth flow: checks state, exchanges
// the code, materializes the user and sets the session cookie.
func (h *AuthHandler) GoogleCallback(c echo.Context) error {
    if h.Google == nil {
        return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "google login not configured"})
    }
    ck, err := c.Cookie(stateCookie)
    if err != nil || ck.Value == "" || ck.Value != c.QueryParam("state") {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "state mismatch"})
    }
    code := c.QueryParam("code")
    if code == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "code required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
    defer cancel()

    p, err := h.Google.Exchange(ctx, code)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "oauth exchange failed"})
    }

    id := auth.Identity{
        Provider: "google",
        Subject:  p.Subject,
        Email:    p.Email,
        Name:     p.Name,
        Picture:  p.Picture,
    }
    u, err := h.Ensure.EnsureUserForAuth(ctx, &id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "materialize user failed"})
    }
    if u == nil {
        // Provider gave us no usable email; nothing to link on.
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
    }
    if !u.IsActive {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "account disabled"})
    }

    if err := h.issueSession(c, ctx, u.ID, id); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue session failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "user": userPart{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role, HotelID: u.HotelID},
    })
}
