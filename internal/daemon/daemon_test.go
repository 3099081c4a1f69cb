package daemon

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DirGroup-Admin/DirGroup-Admin/internal/config"
	"github.com/DirGroup-Admin/DirGroup-Admin/internal/db/models"
	"github.com/DirGroup-Admin/DirGroup-Admin/internal/db/testdb"
)

func TestSeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)

	require.NoError(t, seed(ctx, db))
	require.NoError(t, seed(ctx, db))

	var roles []models.Role
	require.NoError(t, db.Order("id").Find(&roles).Error)
	require.Len(t, roles, len(builtinRoles()))

	protected := 0

	for _, r := range roles {
		if r.IsProtected() {
			protected++
		}
	}

	assert.Equal(t, 1, protected, "exactly one protected role")

	var groups int64
	require.NoError(t, db.Model(&models.LocalGroup{}).Count(&groups).Error)
	assert.Equal(t, int64(len(builtinLocalGroups())), groups)

	var admin models.User
	require.NoError(t, db.Preload("Role").Where("username = ?", DefaultAdmin).First(&admin).Error)
	assert.True(t, admin.Active)
	assert.True(t, admin.Role.IsProtected())

	var users int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	assert.Equal(t, int64(1), users)
}

func TestSeedKeepsExistingUsers(t *testing.T) {
	ctx := context.Background()
	db := testdb.Seeded(t)

	require.NoError(t, db.Create(&models.User{Username: "operator", RoleID: testdb.RoleAdmin, Active: true}).Error)
	require.NoError(t, seed(ctx, db))

	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("username = ?", DefaultAdmin).Count(&count).Error)
	assert.Zero(t, count)
}

func TestNew(t *testing.T) {
	_, err := New(context.Background(), nil)
	require.ErrorIs(t, err, ErrConfigNil)

	cfg := &config.Config{
		Title:     "DirGroup-Admin",
		DB:        config.DB{GormEngine: config.EngineSQLite, Path: ":memory:"},
		Webserver: config.Webserver{Host: "127.0.0.1", Port: 8080},
	}

	d, err := New(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8080", d.Addr())

	var admins int64
	require.NoError(t, d.db.Model(&models.User{}).Where("username = ?", DefaultAdmin).Count(&admins).Error)
	assert.Equal(t, int64(1), admins)

	sqlDB, err := d.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
}
