package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func snapWith(creds map[string]string, users []RegisteredUser) *snapshot {
	if creds == nil {
		creds = map[string]string{}
	}
	return &snapshot{
		credentials: creds,
		users:       users,
		renames:     map[string]string{},
		deleted:     map[string]struct{}{},
	}
}

func TestCustomResolver(t *testing.T) {
	snap := snapWith(map[string]string{"admin": "custom1"}, nil)
	r := customResolver{}

	assert.Equal(t, ResolutionMatch, r.Resolve("admin", "custom1", snap))
	// a present entry is authoritative: mismatch rejects, never falls through
	assert.Equal(t, ResolutionReject, r.Resolve("admin", "admin123", snap))
	assert.Equal(t, ResolutionSkip, r.Resolve("other", "custom1", snap))
}

func TestDefaultResolver(t *testing.T) {
	snap := snapWith(nil, nil)
	r := defaultResolver{}

	assert.Equal(t, ResolutionMatch, r.Resolve("admin", "admin123", snap))
	// mismatch skips so later resolvers still get a chance
	assert.Equal(t, ResolutionSkip, r.Resolve("admin", "wrong", snap))
	assert.Equal(t, ResolutionSkip, r.Resolve("bob", "admin123", snap))
}

func TestRegisteredResolver(t *testing.T) {
	snap := snapWith(nil, []RegisteredUser{{Username: "bob", Password: "bobpass1"}})
	r := registeredResolver{}

	assert.Equal(t, ResolutionMatch, r.Resolve("bob", "bobpass1", snap))
	assert.Equal(t, ResolutionSkip, r.Resolve("bob", "wrong", snap))
	assert.Equal(t, ResolutionSkip, r.Resolve("ghost", "bobpass1", snap))
}

func TestDefaultResolvers_Order(t *testing.T) {
	rs := defaultResolvers()
	names := make([]string, len(rs))
	for i, r := range rs {
		names[i] = r.Name()
	}
	assert.Equal(t, []string{"custom", "default", "registered"}, names)
}

func TestSnapshot_OriginOf(t *testing.T) {
	snap := snapWith(nil, nil)
	snap.renames = map[string]string{"admin": "adminx", "adminx": "root"}

	assert.Equal(t, "admin", snap.originOf("root"))
	assert.Equal(t, "admin", snap.originOf("adminx"))
	assert.Equal(t, "bob", snap.originOf("bob"))
}

func TestSnapshot_OriginOf_CycleTerminates(t *testing.T) {
	snap := snapWith(nil, nil)
	snap.renames = map[string]string{"a": "b", "b": "a"}

	// inconsistent history must not loop forever
	_ = snap.originOf("a")
	_ = snap.originOf("b")
}

func TestSnapshot_RoleOf(t *testing.T) {
	snap := snapWith(nil, []RegisteredUser{{Username: "bob", Role: RoleAdmin}, {Username: "carol"}})
	snap.renames = map[string]string{"superadmin": "root"}

	assert.Equal(t, RoleSuperadmin, snap.roleOf("root"))
	assert.Equal(t, RoleAdmin, snap.roleOf("bob"))
	assert.Equal(t, RoleUser, snap.roleOf("carol"))
	assert.Equal(t, RoleUser, snap.roleOf("ghost"))
}
