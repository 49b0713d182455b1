package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSeed(t *testing.T) {
	db := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, Seed(ctx, db, "admin@example.com", "changeme-seed"))

	// idempotent
	require.NoError(t, Seed(ctx, db, "admin@example.com", "changeme-seed"))

	roles, err := db.ListRoles(ctx)
	require.NoError(t, err)
	assert.Len(t, roles, 3)

	perms, err := db.ListPermissions(ctx)
	require.NoError(t, err)
	assert.Len(t, perms, len(basePermissions))

	admin, err := db.GetUserByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("changeme-seed")))

	adminRoles, err := db.GetUserRoles(ctx, admin.ID)
	require.NoError(t, err)
	require.Len(t, adminRoles, 1)
	assert.Equal(t, "admin", adminRoles[0].Name)

	adminPerms, err := db.GetRolePermissions(ctx, adminRoles[0].ID)
	require.NoError(t, err)
	assert.Len(t, adminPerms, len(basePermissions))

	// regular user has a direct users:read grant
	regular, err := db.GetUserByEmail(ctx, "user@example.com")
	require.NoError(t, err)
	direct, err := db.GetUserPermissions(ctx, regular.ID)
	require.NoError(t, err)
	require.Len(t, direct, 1)
	assert.Equal(t, "users:read", direct[0].Name)

	// companies ABC and XYZ exist; admin defaults to ABC
	abc, err := db.GetCompanyByCode(ctx, "ABC")
	require.NoError(t, err)
	_, err = db.GetCompanyByCode(ctx, "XYZ")
	require.NoError(t, err)

	link, err := db.GetDefaultCompany(ctx, admin.ID)
	require.NoError(t, err)
	require.NotNil(t, link)
	assert.Equal(t, abc.ID, link.CompanyID)

	// seeded demo products live under ABC
	products, err := db.ListProducts(ctx, abc.ID, ProductFilter{})
	require.NoError(t, err)
	assert.NotEmpty(t, products)
}

func TestSeed_ExistingUserKeepsID(t *testing.T) {
	db := newTestStore(t)
	ctx := context.Background()

	// the regular user already exists before seeding
	existing := &User{Email: "user@example.com", Username: "user", PasswordHash: "h", IsActive: true}
	require.NoError(t, db.CreateUser(ctx, existing))

	require.NoError(t, Seed(ctx, db, "admin@example.com", "changeme-seed"))

	regular, err := db.GetUserByEmail(ctx, "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, existing.ID, regular.ID)

	// role, direct grant and company link all reference the stored user
	roles, err := db.GetUserRoles(ctx, existing.ID)
	require.NoError(t, err)
	require.Len(t, roles, 1)
	assert.Equal(t, "user", roles[0].Name)

	direct, err := db.GetUserPermissions(ctx, existing.ID)
	require.NoError(t, err)
	assert.Len(t, direct, 1)

	link, err := db.GetDefaultCompany(ctx, existing.ID)
	require.NoError(t, err)
	require.NotNil(t, link)
}
