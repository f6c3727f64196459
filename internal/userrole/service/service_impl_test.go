package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/kolahope/kolahope/internal/userrole/domain"
	"github.com/kolahope/kolahope/internal/userrole/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.UserRole{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
	return svc.(*Service)
}

func TestGrantAndHasRole(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	ok, err := svc.HasRole(ctx, "user-1", domain.RoleAdmin)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.Grant(ctx, "user-1", domain.RoleAdmin)
	require.NoError(t, err)

	ok, err = svc.HasRole(ctx, "user-1", domain.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.HasRole(ctx, "user-1", domain.RoleEditor)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGrantIsIdempotent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Grant(ctx, "user-1", domain.RoleEditor)
	require.NoError(t, err)
	_, err = svc.Grant(ctx, "user-1", domain.RoleEditor)
	require.NoError(t, err)

	roles, err := svc.ListRoles(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, roles, 1)
}

func TestGrantValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Grant(ctx, " ", domain.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrInvalidUser)

	_, err = svc.Grant(ctx, "user-1", "superuser")
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestRevoke(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Grant(ctx, "user-1", domain.RoleAdmin)
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(ctx, "user-1", domain.RoleAdmin))
	assert.ErrorIs(t, svc.Revoke(ctx, "user-1", domain.RoleAdmin), domain.ErrNotFound)

	ok, err := svc.HasRole(ctx, "user-1", domain.RoleAdmin)
	require.NoError(t, err)
	assert.False(t, ok)
}
