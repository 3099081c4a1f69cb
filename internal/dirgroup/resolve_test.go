package dirgroup

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DirGroup-Admin/DirGroup-Admin/internal/db/models"
	"github.com/DirGroup-Admin/DirGroup-Admin/internal/db/testdb"
)

func TestGroupName(t *testing.T) {
	tests := []struct {
		ref  string
		want string
	}{
		{ref: "LDAP-Ops", want: "LDAP-Ops"},
		{ref: "  Helpdesk ", want: "Helpdesk"},
		{ref: "cn=LDAP-Ops,ou=groups,dc=example,dc=org", want: "LDAP-Ops"},
		{ref: "CN=Ops\\, Night Shift,OU=Groups,DC=example,DC=com", want: "Ops, Night Shift"},
		{ref: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			assert.Equal(t, tt.want, GroupName(tt.ref))
		})
	}
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	ids := mustCreate(t, svc,
		Input{Name: "Helpdesk", RoleID: testdb.RoleUser, LocalGroups: refs(5)},
		Input{Name: "LDAP-Ops", RoleID: testdb.RoleAdmin, LocalGroups: refs(5, 7)},
		Input{Name: "Night Ops", RoleID: testdb.RoleAdmin, LocalGroups: refs(8)},
	)

	res, err := svc.Resolve(ctx, []string{
		"CN=LDAP-Ops,OU=Groups,DC=example,DC=com",
		"Helpdesk",
		"unknown",
	})
	require.NoError(t, err)
	assert.Equal(t, []uint{ids[0], ids[1]}, res.DirectoryGroupIDs)
	assert.Equal(t, ids[1], res.DirectoryGroupID)
	assert.Equal(t, testdb.RoleAdmin, res.RoleID)
	assert.Equal(t, models.UserTypeAdmin, res.UserType)
	assert.Equal(t, []uint{5, 7}, res.LocalGroupIDs)

	res, err = svc.Resolve(ctx, []string{"Night Ops", "LDAP-Ops"})
	require.NoError(t, err)
	assert.Equal(t, ids[1], res.DirectoryGroupID, "ties go to the lowest id")
	assert.Equal(t, []uint{5, 7, 8}, res.LocalGroupIDs)

	_, err = svc.Resolve(ctx, []string{"cn=nobody,dc=example,dc=org"})
	require.ErrorIs(t, err, ErrNoDirectoryGroup)

	_, err = svc.Resolve(ctx, nil)
	require.ErrorIs(t, err, ErrNoDirectoryGroup)
}
