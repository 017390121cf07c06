package auth

import (
    "context"
    "testing"

    "github.com/stretchr/testify/require"

    "github.com/Oussamaredd/ISI-react-app1-sub002/internal/model"
)

type stubRoleSource struct {
    roles []model.Role
    err   error
}

func (s stubRoleSource) RolesForUser(ctx context.Context, userID uint64) ([]model.Role, error) {
    return s.roles, s.err
}

func TestAggregatePrimaryRoleFallbackOnly(t *testing.T) {
    agg := NewAggregator(stubRoleSource{}, nil)
    user := model.User{ID: 1, Role: "agent"}

    grant := agg.Aggregate(user, nil)

    require.True(t, grant.RoleNames["agent"])
    require.Equal(t, []string{PermTicketsRead, PermTicketsWrite}, grant.Permissions)
    require.True(t, grant.Has("tickets.read"))
    require.False(t, grant.Has("hotels.write"))
}

func TestAggregateUnionsExplicitAndFallback(t *testing.T) {
    agg := NewAggregator(stubRoleSource{}, nil)
    user := model.User{ID: 1, Role: "agent"}
    linked := []model.Role{
        {ID: 7, Name: "Auditor", Permissions: []string{"audit.read"}},
    }

    grant := agg.Aggregate(user, linked)

    // Explicit permissions from the linked role join the fallback
    // permissions of the primary role.
    require.Equal(t, []string{PermAuditRead, PermTicketsRead, PermTicketsWrite}, grant.Permissions)
    require.True(t, grant.RoleNames["auditor"])
    require.Equal(t, []model.RoleRef{{ID: 7, Name: "Auditor"}}, grant.Roles)
}

func TestAggregateDedupesCaseInsensitive(t *testing.T) {
    agg := NewAggregator(stubRoleSource{}, nil)
    user := model.User{ID: 1, Role: "agent"}
    linked := []model.Role{
        {ID: 2, Name: "shift", Permissions: []string{"Tickets.Read", " tickets.read "}},
    }

    grant := agg.Aggregate(user, linked)

    require.Equal(t, []string{PermTicketsRead, PermTicketsWrite}, grant.Permissions)
}

func TestAggregateFallbackIsAdditive(t *testing.T) {
    // A manager role row stored with an empty permission column
    // still grants the manager baseline through the fallback table.
    agg := NewAggregator(stubRoleSource{}, nil)
    user := model.User{ID: 1, Role: "agent"}
    linked := []model.Role{{ID: 3, Name: "manager"}}

    grant := agg.Aggregate(user, linked)

    for _, p := range DefaultRolePermissions["manager"] {
        require.True(t, grant.Has(p), "missing %s", p)
    }
}

func TestAggregateUnknownRoleGrantsMembershipOnly(t *testing.T) {
    agg := NewAggregator(stubRoleSource{}, nil)
    user := model.User{ID: 1, Role: "visitor"}

    grant := agg.Aggregate(user, nil)

    require.True(t, grant.RoleNames["visitor"])
    require.Empty(t, grant.Permissions)
}

func TestAggregateAdminGetsFullCatalog(t *testing.T) {
    agg := NewAggregator(stubRoleSource{}, nil)
    user := model.User{ID: 1, Role: "Admin"}

    grant := agg.Aggregate(user, nil)

    for _, p := range AllPermissions {
        require.True(t, grant.Has(p), "missing %s", p)
    }
    require.True(t, grant.HasAnyRole(AdminRoles...))
}

func TestResolveFetchesLinkedRoles(t *testing.T) {
    src := stubRoleSource{roles: []model.Role{{ID: 9, Name: "auditor", Permissions: []string{"audit.read"}}}}
    agg := NewAggregator(src, nil)

    grant, err := agg.Resolve(context.Background(), model.User{ID: 4, Role: ""})
    require.NoError(t, err)
    require.Equal(t, []string{PermAuditRead}, grant.Permissions)
    require.False(t, grant.RoleNames[""])
}

func TestHasAnyRoleNormalizes(t *testing.T) {
    grant := Grant{RoleNames: map[string]bool{"super_admin": true}}
    require.True(t, grant.HasAnyRole("SUPER_ADMIN"))
    require.False(t, grant.HasAnyRole("manager", "agent"))
}

func TestNormalize(t *testing.T) {
    require.Equal(t, "tickets.read", Normalize("  Tickets.Read "))
    require.Equal(t, "", Normalize("   "))
}
