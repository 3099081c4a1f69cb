// Package testdb provides migrated in-memory databases for tests.
package testdb

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/DirGroup-Admin/DirGroup-Admin/internal/config"
	"github.com/DirGroup-Admin/DirGroup-Admin/internal/db"
	"github.com/DirGroup-Admin/DirGroup-Admin/internal/db/models"
	"github.com/DirGroup-Admin/DirGroup-Admin/internal/logger"
)

// Role ids created by Seed.
const (
	RoleUser       uint = 1
	RoleAdmin      uint = 2
	RoleSuperAdmin uint = 3 // read-only, the protected role
	RoleOperators  uint = 4 // super admin, not read-only
)

// LocalGroupCount is the number of local groups created by Seed, with ids 1..LocalGroupCount.
const LocalGroupCount = 10

// New returns an empty migrated in-memory SQLite database private to the test.
func New(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := db.Open(config.DB{GormEngine: config.EngineSQLite, Path: ":memory:"}, logger.Log{})
	require.NoError(t, err, "failed to open test database")

	require.NoError(t, db.Migrate(gdb), "failed to migrate test database")

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return gdb
}

// Seeded returns a database from New holding the roles and local groups of Seed.
func Seeded(t *testing.T) *gorm.DB {
	t.Helper()

	gdb := New(t)
	Seed(t, gdb)

	return gdb
}

// Seed inserts four roles and LocalGroupCount local groups named "group-<id>".
func Seed(t *testing.T, gdb *gorm.DB) {
	t.Helper()

	roles := []models.Role{
		{ID: RoleUser, Name: "User role", Type: models.UserTypeUser},
		{ID: RoleAdmin, Name: "Admin role", Type: models.UserTypeAdmin},
		{ID: RoleSuperAdmin, Name: "Super admin role", Type: models.UserTypeSuperAdmin, Readonly: true},
		{ID: RoleOperators, Name: "Operators", Type: models.UserTypeSuperAdmin},
	}
	require.NoError(t, gdb.Create(&roles).Error, "failed to seed roles")

	groups := make([]models.LocalGroup, LocalGroupCount)
	for i := range groups {
		id := uint(i + 1)
		groups[i] = models.LocalGroup{ID: id, Name: "group-" + strconv.Itoa(i+1)}
	}

	require.NoError(t, gdb.Create(&groups).Error, "failed to seed local groups")
}
