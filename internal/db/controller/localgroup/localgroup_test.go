package localgroup

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/clause"

	"github.com/DirGroup-Admin/DirGroup-Admin/internal/db/models"
	"github.com/DirGroup-Admin/DirGroup-Admin/internal/db/testdb"
)

func TestGet(t *testing.T) {
	ctx := context.Background()
	db := testdb.Seeded(t)

	testCases := []struct {
		name          string
		groupName     string
		nilDB         bool
		expectedError error
		expectedID    uint
	}{
		{name: "nil database", groupName: "group-1", nilDB: true, expectedError: ErrDBNil},
		{name: "empty name", groupName: "", expectedError: ErrLocalGroupNameEmpty},
		{name: "not found", groupName: "nonexistent", expectedError: ErrLocalGroupNotFound},
		{name: "successful get", groupName: "group-3", expectedID: 3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gdb := db
			if tc.nilDB {
				gdb = nil
			}

			group, err := Get(ctx, gdb, tc.groupName)
			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, group)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expectedID, group.ID)
		})
	}
}

func TestGetAll(t *testing.T) {
	ctx := context.Background()

	groups, err := GetAll(ctx, testdb.New(t))
	require.NoError(t, err)
	assert.Empty(t, groups)

	groups, err = GetAll(ctx, testdb.Seeded(t))
	require.NoError(t, err)
	require.Len(t, groups, testdb.LocalGroupCount)
	assert.Equal(t, "group-1", groups[0].Name)
}

func TestCreateAndEnsure(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)

	created, err := Create(ctx, db, "Guests")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	_, err = Create(ctx, db, "Guests")
	require.ErrorIs(t, err, ErrLocalGroupAlreadyExists)

	_, err = Create(ctx, db, "")
	require.ErrorIs(t, err, ErrLocalGroupNameEmpty)

	ensured, err := Ensure(ctx, db, "Guests")
	require.NoError(t, err)
	assert.Equal(t, created.ID, ensured.ID)

	other, err := Ensure(ctx, db, "Internal")
	require.NoError(t, err)
	assert.NotEqual(t, created.ID, other.ID)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	db := testdb.Seeded(t)

	group := models.DirectoryGroup{Name: "LDAP-Ops", RoleID: testdb.RoleUser}
	require.NoError(t, db.Create(&group).Error)
	require.NoError(t, db.Omit(clause.Associations).Create(&models.Membership{DirectoryGroupID: group.ID, LocalGroupID: 1}).Error)

	require.ErrorIs(t, Delete(ctx, db, 1), ErrLocalGroupInUse)
	require.NoError(t, Delete(ctx, db, 2))
	require.ErrorIs(t, Delete(ctx, db, 2), ErrLocalGroupNotFound)
	require.ErrorIs(t, Delete(ctx, nil, 3), ErrDBNil)

	_, err := Get(ctx, db, "group-1")
	require.NoError(t, err)
}
