package auth

import (
    "context"
    "database/sql"
    "testing"

    "github.com/stretchr/testify/require"

    "github.com/Oussamaredd/ISI-react-app1-sub002/internal/model"
    "github.com/Oussamaredd/ISI-react-app1-sub002/internal/repository"
)

// fakeUserStore keeps users in a map keyed by email and records
// creation calls so tests can assert on them.
type fakeUserStore struct {
    users     map[string]model.User
    nextID    uint64
    created   []string
    createErr error
    missGets  int // force this many GetByEmail misses before serving
}

func newFakeUserStore() *fakeUserStore {
    return &fakeUserStore{users: map[string]model.User{}, nextID: 1}
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (model.User, error) {
    if f.missGets > 0 {
        f.missGets--
        return model.User{}, sql.ErrNoRows
    }
    u, ok := f.users[email]
    if !ok {
        return model.User{}, sql.ErrNoRows
    }
    return u, nil
}

func (f *fakeUserStore) CreateFromIdentity(ctx context.Context, email, name, role string, hotelID uint64) (uint64, error) {
    f.created = append(f.created, email)
    if f.createErr != nil {
        return 0, f.createErr
    }
    id := f.nextID
    f.nextID++
    f.users[email] = model.User{ID: id, Email: email, Name: name, Role: role, HotelID: hotelID, IsActive: true}
    return id, nil
}

func newMaterializer(store *fakeUserStore) *Materializer {
    return &Materializer{Users: store, DefaultRole: "agent", AssignTenant: FixedTenant(42)}
}

func TestEnsureCreatesOnFirstSight(t *testing.T) {
    store := newFakeUserStore()
    m := newMaterializer(store)

    u, err := m.EnsureUserForAuth(context.Background(), &Identity{
        Provider: "google", Subject: "s1", Email: "New.User@Example.com", Name: "New User",
    })
    require.NoError(t, err)
    require.NotNil(t, u)
    require.Equal(t, "new.user@example.com", u.Email)
    require.Equal(t, "agent", u.Role)
    require.Equal(t, uint64(42), u.HotelID)
    require.Equal(t, []string{"new.user@example.com"}, store.created)
}

func TestEnsureIsIdempotent(t *testing.T) {
    store := newFakeUserStore()
    m := newMaterializer(store)
    id := &Identity{Provider: "google", Subject: "s1", Email: "bob@example.com", Name: "Bob"}

    first, err := m.EnsureUserForAuth(context.Background(), id)
    require.NoError(t, err)
    second, err := m.EnsureUserForAuth(context.Background(), id)
    require.NoError(t, err)

    require.Equal(t, first.ID, second.ID)
    require.Len(t, store.created, 1)
}

func TestEnsureUnusableIdentity(t *testing.T) {
    store := newFakeUserStore()
    m := newMaterializer(store)

    u, err := m.EnsureUserForAuth(context.Background(), nil)
    require.NoError(t, err)
    require.Nil(t, u)

    u, err = m.EnsureUserForAuth(context.Background(), &Identity{Provider: "google", Subject: "s1"})
    require.NoError(t, err)
    require.Nil(t, u)
    require.Empty(t, store.created)
}

func TestEnsureResolvesCreationRace(t *testing.T) {
    store := newFakeUserStore()
    // Simulate losing the insert race: the first lookup misses,
    // the insert reports a duplicate, and the refetch finds the
    // row another request just created.
    store.missGets = 1
    store.createErr = repository.ErrEmailExists
    store.users["raced@example.com"] = model.User{ID: 9, Email: "raced@example.com", Role: "agent", IsActive: true}
    m := newMaterializer(store)

    u, err := m.EnsureUserForAuth(context.Background(), &Identity{
        Provider: "google", Subject: "s9", Email: "raced@example.com",
    })
    require.NoError(t, err)
    require.NotNil(t, u)
    require.Equal(t, uint64(9), u.ID)
}

func TestEnsureDefaultsNameToEmail(t *testing.T) {
    store := newFakeUserStore()
    m := newMaterializer(store)

    u, err := m.EnsureUserForAuth(context.Background(), &Identity{
        Provider: "google", Subject: "s2", Email: "noname@example.com",
    })
    require.NoError(t, err)
    require.Equal(t, "noname@example.com", u.Name)
}
