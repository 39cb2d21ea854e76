package migration_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lock-check/internal/migration"
)

func TestResolverWithApp(t *testing.T) {
	r := migration.NewResolver("auth")

	assert.Equal(t, "auth_user", r.Resolve("User"))
	assert.Equal(t, "auth_user", r.Resolve("USER"))
	assert.Equal(t, "auth_userprofile", r.Resolve("UserProfile"))
}

func TestResolverWithoutApp(t *testing.T) {
	r := migration.NewResolver("")

	assert.Equal(t, "user", r.Resolve("User"))
	assert.Equal(t, "userprofile", r.Resolve("UserProfile"))
}

func TestResolverIdempotent(t *testing.T) {
	r := migration.NewResolver("myapp")

	// Repeat resolutions hit the cache; results must not change.
	for i := 0; i < 3; i++ {
		assert.Equal(t, "myapp_order", r.Resolve("Order"))
	}
}
