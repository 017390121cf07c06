package middleware

import (
    "context"
    "database/sql"
    "net/http"
    "net/http/httptest"
    "testing"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/require"

    "github.com/Oussamaredd/ISI-react-app1-sub002/internal/auth"
    "github.com/Oussamaredd/ISI-react-app1-sub002/internal/model"
    "github.com/Oussamaredd/ISI-react-app1-sub002/internal/utils"
)

// memStore is the in-memory storage backing the guard tests. It
// implements both the user store and the role source so one fake
// drives the whole resolution pipeline.
type memStore struct {
    byEmail map[string]*model.User
    roles   map[uint64][]model.Role
}

func newMemStore() *memStore {
    return &memStore{byEmail: map[string]*model.User{}, roles: map[uint64][]model.Role{}}
}

func (s *memStore) GetByEmail(ctx context.Context, email string) (model.User, error) {
    if u, ok := s.byEmail[email]; ok {
        return *u, nil
    }
    return model.User{}, sql.ErrNoRows
}

func (s *memStore) CreateFromIdentity(ctx context.Context, email, name, role string, hotelID uint64) (uint64, error) {
    id := uint64(len(s.byEmail) + 1)
    s.byEmail[email] = &model.User{ID: id, Email: email, Name: name, Role: role, HotelID: hotelID, IsActive: true}
    return id, nil
}

func (s *memStore) RolesForUser(ctx context.Context, userID uint64) ([]model.Role, error) {
    return s.roles[userID], nil
}

func testService(store *memStore) *auth.Service {
    codec := auth.NewTokenCodec("guard-test-secret", "session")
    return &auth.Service{
        Codec:        codec,
        Materializer: &auth.Materializer{Users: store, DefaultRole: "agent", AssignTenant: auth.FixedTenant(1)},
        Aggregator:   auth.NewAggregator(store, nil),
    }
}

// seedUser stores a user and returns a request cookie header that
// authenticates as them.
func seedUser(t *testing.T, store *memStore, svc *auth.Service, email, role string, active bool) string {
    t.Helper()
    id := uint64(len(store.byEmail) + 1)
    store.byEmail[email] = &model.User{ID: id, Email: email, Name: email, Role: role, HotelID: 1, IsActive: active}

    token, _, err := svc.Codec.IssueToken(auth.Identity{Provider: "local", Subject: "u", Email: email}, time.Hour)
    require.NoError(t, err)
    return svc.Codec.CookieName + "=" + token
}

func doRequest(e *echo.Echo, cookie string) *httptest.ResponseRecorder {
    req := httptest.NewRequest(http.MethodGet, "/probe", nil)
    if cookie != "" {
        req.Header.Set("Cookie", cookie)
    }
    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, req)
    return rec
}

func TestRequireAuthRejectsMissingAndBadCookies(t *testing.T) {
    store := newMemStore()
    svc := testService(store)

    e := echo.New()
    e.GET("/probe", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, RequireAuth(svc))

    require.Equal(t, http.StatusUnauthorized, doRequest(e, "").Code)
    require.Equal(t, http.StatusUnauthorized, doRequest(e, "session=garbage").Code)
}

func TestRequireAuthAttachesUserContext(t *testing.T) {
    store := newMemStore()
    svc := testService(store)
    cookie := seedUser(t, store, svc, "agent@example.com", "agent", true)

    var got *auth.UserContext
    e := echo.New()
    e.GET("/probe", func(c echo.Context) error {
        got = CurrentUser(c)
        return c.NoContent(http.StatusOK)
    }, RequireAuth(svc))

    require.Equal(t, http.StatusOK, doRequest(e, cookie).Code)
    require.NotNil(t, got)
    require.Equal(t, "agent@example.com", got.Email)
    require.Equal(t, []string{auth.PermTicketsRead, auth.PermTicketsWrite}, got.Permissions)
    require.True(t, got.IsActive)
}

func TestRequireAuthRejectsInactiveAccount(t *testing.T) {
    store := newMemStore()
    svc := testService(store)
    cookie := seedUser(t, store, svc, "off@example.com", "agent", false)

    e := echo.New()
    e.GET("/probe", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, RequireAuth(svc))

    rec := doRequest(e, cookie)
    require.Equal(t, http.StatusForbidden, rec.Code)
    require.Contains(t, rec.Body.String(), "account disabled")
}

func TestRequireAuthDeactivationAppliesNextRequest(t *testing.T) {
    store := newMemStore()
    svc := testService(store)
    cookie := seedUser(t, store, svc, "late@example.com", "agent", true)

    e := echo.New()
    e.GET("/probe", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, RequireAuth(svc))

    require.Equal(t, http.StatusOK, doRequest(e, cookie).Code)

    // Nothing is cached between requests, so flipping the stored
    // flag must lock the same cookie out immediately.
    store.byEmail["late@example.com"].IsActive = false
    require.Equal(t, http.StatusForbidden, doRequest(e, cookie).Code)
}

// revokableSessions marks token hashes as revoked; unknown hashes
// are treated as live so the other tests stay simple.
type revokableSessions struct {
    revoked map[string]bool
}

func (s *revokableSessions) Validate(ctx context.Context, tokenHash string) (uint64, error) {
    if s.revoked[tokenHash] {
        return 0, sql.ErrNoRows
    }
    return 1, nil
}

func TestRequireAuthRejectsRevokedSession(t *testing.T) {
    store := newMemStore()
    svc := testService(store)
    sessions := &revokableSessions{revoked: map[string]bool{}}
    svc.Sessions = sessions

    store.byEmail["out@example.com"] = &model.User{ID: 1, Email: "out@example.com", Role: "agent", HotelID: 1, IsActive: true}
    token, _, err := svc.Codec.IssueToken(auth.Identity{Provider: "local", Subject: "1", Email: "out@example.com"}, time.Hour)
    require.NoError(t, err)
    cookie := svc.Codec.CookieName + "=" + token

    e := echo.New()
    e.GET("/probe", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, RequireAuth(svc))

    require.Equal(t, http.StatusOK, doRequest(e, cookie).Code)

    // Logout revokes the stored hash; the still-valid token must
    // stop resolving immediately.
    sessions.revoked[utils.HashTokenRaw(token)] = true
    require.Equal(t, http.StatusUnauthorized, doRequest(e, cookie).Code)
}

func TestRequireAdminAllowlist(t *testing.T) {
    store := newMemStore()
    svc := testService(store)
    agentCookie := seedUser(t, store, svc, "agent@example.com", "agent", true)
    adminCookie := seedUser(t, store, svc, "admin@example.com", "admin", true)

    var got *auth.AdminContext
    e := echo.New()
    e.GET("/probe", func(c echo.Context) error {
        got = CurrentAdmin(c)
        return c.NoContent(http.StatusOK)
    }, RequireAdmin(svc))

    rec := doRequest(e, agentCookie)
    require.Equal(t, http.StatusForbidden, rec.Code)
    require.Contains(t, rec.Body.String(), "admin access required")

    require.Equal(t, http.StatusOK, doRequest(e, adminCookie).Code)
    require.NotNil(t, got)
    require.Equal(t, "admin@example.com", got.Email)
}

func TestRequireAdminViaLinkedRole(t *testing.T) {
    store := newMemStore()
    svc := testService(store)
    cookie := seedUser(t, store, svc, "promoted@example.com", "agent", true)
    store.roles[store.byEmail["promoted@example.com"].ID] = []model.Role{{ID: 5, Name: "super_admin"}}

    e := echo.New()
    e.GET("/probe", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, RequireAdmin(svc))

    require.Equal(t, http.StatusOK, doRequest(e, cookie).Code)
}

func TestRequirePermissionsDiff(t *testing.T) {
    store := newMemStore()
    svc := testService(store)
    agentCookie := seedUser(t, store, svc, "agent@example.com", "agent", true)
    managerCookie := seedUser(t, store, svc, "manager@example.com", "manager", true)

    e := echo.New()
    e.GET("/probe", func(c echo.Context) error { return c.NoContent(http.StatusOK) },
        RequireAuth(svc), RequirePermissions("audit.read"))

    rec := doRequest(e, agentCookie)
    require.Equal(t, http.StatusForbidden, rec.Code)
    require.Contains(t, rec.Body.String(), "insufficient permissions")

    require.Equal(t, http.StatusOK, doRequest(e, managerCookie).Code)
}

func TestRequirePermissionsNormalizesDeclaration(t *testing.T) {
    store := newMemStore()
    svc := testService(store)
    cookie := seedUser(t, store, svc, "agent@example.com", "agent", true)

    e := echo.New()
    e.GET("/probe", func(c echo.Context) error { return c.NoContent(http.StatusOK) },
        RequireAuth(svc), RequirePermissions(" Tickets.Read ", "TICKETS.WRITE"))

    require.Equal(t, http.StatusOK, doRequest(e, cookie).Code)
}

func TestRequirePermissionsWithoutUserContext(t *testing.T) {
    e := echo.New()
    e.GET("/probe", func(c echo.Context) error { return c.NoContent(http.StatusOK) },
        RequirePermissions("tickets.read"))

    require.Equal(t, http.StatusUnauthorized, doRequest(e, "").Code)
}

func TestRequirePermissionsEmptyDeclarationPasses(t *testing.T) {
    store := newMemStore()
    svc := testService(store)
    cookie := seedUser(t, store, svc, "agent@example.com", "agent", true)

    e := echo.New()
    e.GET("/probe", func(c echo.Context) error { return c.NoContent(http.StatusOK) },
        RequireAuth(svc), RequirePermissions())

    require.Equal(t, http.StatusOK, doRequest(e, cookie).Code)
}
