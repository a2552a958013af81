package repository

import (
	"Inkstone/internal/model"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUserRepoCreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepo(db)
	ctx := context.Background()

	u := seedUser(t, db, "alice")

	got, err := repo.GetUserById(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "alice", got.Username)

	byName, err := repo.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, u.ID, byName.ID)

	// 未命中返回 nil 而非错误
	miss, err := repo.GetUserByUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, miss)
}

func TestUserRepoDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepo(db)
	ctx := context.Background()

	seedUser(t, db, "alice")

	err := repo.CreateUser(ctx, &model.User{Username: "alice", PasswordHash: "x"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestUserRepoBanRowsAffected(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepo(db)
	ctx := context.Background()

	u := seedUser(t, db, "alice")

	rows, err := repo.UpdateUserIsBan(ctx, u.ID, true)
	require.NoError(t, err)
	assert.EqualValues(t, 1, rows)

	got, err := repo.GetUserById(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, got.IsBanned)

	// 不存在的用户
	rows, err = repo.UpdateUserIsBan(ctx, 9999, true)
	require.NoError(t, err)
	assert.EqualValues(t, 0, rows)
}

func TestUserRepoUpdateTheme(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepo(db)
	ctx := context.Background()

	u := seedUser(t, db, "alice")

	require.NoError(t, repo.UpdateUserTheme(ctx, u.ID, "dark"))

	got, err := repo.GetUserById(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "dark", got.Theme)
}

func TestUserRepoList(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepo(db)
	ctx := context.Background()

	seedUser(t, db, "alice")
	seedUser(t, db, "bob")
	seedUser(t, db, "carol")

	users, total, err := repo.ListUsers(ctx, 2, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, users, 2)
}
