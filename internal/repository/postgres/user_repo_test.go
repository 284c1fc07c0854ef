package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/avaldez/ecommerce-api/internal/domain"
	"github.com/avaldez/ecommerce-api/internal/repository/postgres"
	"github.com/avaldez/ecommerce-api/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUser(username string) *domain.User {
	return &domain.User{
		ID:                 uuid.New(),
		Username:           username,
		NormalizedUsername: domain.NormalizeUsername(username),
		PasswordHash:       "hashedpassword",
		Role:               domain.RoleUser,
		CreatedAt:          time.Now(),
		UpdatedAt:          time.Now(),
	}
}

func TestUserRepository_Create(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newUser("testuser")))

	// Same normalized key, different presentation: the unique index rejects it
	err := repo.Create(ctx, newUser(" TestUser "))
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestUserRepository_GetByUsername(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	created, _ := testutil.NewUserBuilder().
		WithUsername("Lookup_User").
		Build(t, testDB.DB)

	tests := []struct {
		name     string
		username string
		found    bool
	}{
		{name: "exact match", username: "Lookup_User", found: true},
		{name: "lower-cased", username: "lookup_user", found: true},
		{name: "surrounding whitespace", username: "  LOOKUP_USER  ", found: true},
		{name: "unknown", username: "someone_else", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := repo.GetByUsername(ctx, tt.username)
			if !tt.found {
				assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, created.ID, user.ID)
		})
	}
}

func TestUserRepository_IsUsernameTaken(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	testutil.NewUserBuilder().WithUsername("taken").Build(t, testDB.DB)

	taken, err := repo.IsUsernameTaken(ctx, "TAKEN ")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.IsUsernameTaken(ctx, "free")
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestUserRepository_List(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	testutil.NewUserBuilder().WithUsername("charlie").Build(t, testDB.DB)
	testutil.NewUserBuilder().WithUsername("alice").Build(t, testDB.DB)
	testutil.NewUserBuilder().WithUsername("bob").Build(t, testDB.DB)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "bob", users[1].Username)
	assert.Equal(t, "charlie", users[2].Username)
}
