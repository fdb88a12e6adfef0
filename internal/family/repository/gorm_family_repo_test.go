package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fidel-otieno2/KinKeep.app/internal/family/domain"
	identitydomain "github.com/fidel-otieno2/KinKeep.app/internal/identity/domain"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&identitydomain.UserModel{},
		&domain.FamilyModel{},
		&domain.FamilyMemberModel{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string) uint {
	t.Helper()
	m := identitydomain.UserModel{Name: name, Email: name + "@example.com", PasswordHash: "x", Role: "member"}
	require.NoError(t, db.Create(&m).Error)
	return m.ID
}

func TestCreateFamilyAddsCreatorAsAdmin(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormFamilyRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	family := domain.Family{Name: "smiths", CreatedBy: alice}
	require.NoError(t, repo.Create(ctx, &family, "grandmother"))
	require.NotZero(t, family.ID)

	members, err := repo.Members(ctx, family.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, alice, members[0].Member.UserID)
	assert.Equal(t, domain.RoleAdmin, members[0].Member.RoleInFamily)
	assert.Equal(t, "grandmother", members[0].Member.Relation)
	assert.Equal(t, "alice", members[0].User.Name)
}

func TestFamiliesOfAndMembershipGate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormFamilyRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	family := domain.Family{Name: "smiths", CreatedBy: alice}
	require.NoError(t, repo.Create(ctx, &family, ""))

	mine, err := repo.FamiliesOf(ctx, alice)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "smiths", mine[0].Name)

	none, err := repo.FamiliesOf(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, none)

	member, err := repo.IsMember(ctx, family.ID, alice)
	require.NoError(t, err)
	assert.True(t, member)
	member, err = repo.IsMember(ctx, family.ID, bob)
	require.NoError(t, err)
	assert.False(t, member)
}

func TestGetByIDNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormFamilyRepository(db)

	_, err := repo.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrFamilyNotFound)
}
