package dirgroup

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DirGroup-Admin/DirGroup-Admin/internal/auth"
	"github.com/DirGroup-Admin/DirGroup-Admin/internal/db/models"
	"github.com/DirGroup-Admin/DirGroup-Admin/internal/db/testdb"
)

func names(groups []DirectoryGroup) []string {
	out := make([]string, len(groups))
	for i := range groups {
		out[i] = groups[i].Name
	}

	return out
}

func TestGet(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	ids := mustCreate(t, svc,
		Input{Name: "LDAP-Ops", RoleID: testdb.RoleAdmin, LocalGroups: refs(5, 7)},
		Input{Name: "LDAP-Admins", RoleID: testdb.RoleSuperAdmin, LocalGroups: refs(1)},
		Input{Name: "Helpdesk", RoleID: testdb.RoleUser, LocalGroups: refs(5)},
		Input{Name: "ops_team", RoleID: testdb.RoleAdmin, LocalGroups: refs(2)},
	)

	testCases := []struct {
		name string
		opts GetOptions
		want []string
	}{
		{
			name: "everything ordered by id",
			want: []string{"LDAP-Ops", "LDAP-Admins", "Helpdesk", "ops_team"},
		},
		{
			name: "by ids",
			opts: GetOptions{DirectoryGroupIDs: []uint{ids[3], ids[0]}},
			want: []string{"LDAP-Ops", "ops_team"},
		},
		{
			name: "empty id list matches nothing",
			opts: GetOptions{DirectoryGroupIDs: []uint{}},
			want: []string{},
		},
		{
			name: "by local groups",
			opts: GetOptions{LocalGroupIDs: []uint{5}},
			want: []string{"LDAP-Ops", "Helpdesk"},
		},
		{
			name: "exact name",
			opts: GetOptions{Filter: &Filter{Name: []string{"Helpdesk", "nope"}}},
			want: []string{"Helpdesk"},
		},
		{
			name: "by role",
			opts: GetOptions{Filter: &Filter{RoleID: []uint{testdb.RoleAdmin}}},
			want: []string{"LDAP-Ops", "ops_team"},
		},
		{
			name: "substring search ignores case",
			opts: GetOptions{Search: "ops"},
			want: []string{"LDAP-Ops", "ops_team"},
		},
		{
			name: "start search",
			opts: GetOptions{Search: "ldap", StartSearch: true},
			want: []string{"LDAP-Ops", "LDAP-Admins"},
		},
		{
			name: "exclude search",
			opts: GetOptions{Search: "ldap", ExcludeSearch: true},
			want: []string{"Helpdesk", "ops_team"},
		},
		{
			name: "wildcards match the whole name",
			opts: GetOptions{Search: "*ps", SearchWildcardsEnabled: true},
			want: []string{"LDAP-Ops"},
		},
		{
			name: "underscore is literal",
			opts: GetOptions{Search: "P_O"},
			want: []string{},
		},
		{
			name: "sort by name descending",
			opts: GetOptions{SortField: "name", SortOrder: "DESC"},
			want: []string{"ops_team", "LDAP-Ops", "LDAP-Admins", "Helpdesk"},
		},
		{
			name: "limit",
			opts: GetOptions{Limit: 2},
			want: []string{"LDAP-Ops", "LDAP-Admins"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := svc.Get(ctx, superAdmin, tc.opts)
			require.NoError(t, err)
			assert.Equal(t, tc.want, names(res.Groups))
		})
	}

	t.Run("count", func(t *testing.T) {
		res, err := svc.Get(ctx, superAdmin, GetOptions{CountOutput: true, Search: "ldap"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), res.Count)
		assert.Nil(t, res.Groups)
	})

	t.Run("select related", func(t *testing.T) {
		res, err := svc.Get(ctx, superAdmin, GetOptions{
			DirectoryGroupIDs: []uint{ids[0]},
			SelectLocalGroups: true,
			SelectRole:        true,
		})
		require.NoError(t, err)
		require.Len(t, res.Groups, 1)

		g := res.Groups[0]
		require.Len(t, g.LocalGroups, 2)
		assert.Equal(t, uint(5), g.LocalGroups[0].ID)
		assert.Equal(t, "group-7", g.LocalGroups[1].Name)
		require.NotNil(t, g.Role)
		assert.Equal(t, models.UserTypeAdmin, g.Role.Type)
	})

	t.Run("related objects are not loaded by default", func(t *testing.T) {
		res, err := svc.Get(ctx, superAdmin, GetOptions{DirectoryGroupIDs: []uint{ids[0]}})
		require.NoError(t, err)
		require.Len(t, res.Groups, 1)
		assert.Nil(t, res.Groups[0].LocalGroups)
		assert.Nil(t, res.Groups[0].Role)
	})

	t.Run("invalid sort field", func(t *testing.T) {
		_, err := svc.Get(ctx, superAdmin, GetOptions{SortField: "roleid"})

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "/sortfield", verr.Path)
	})

	t.Run("non super admin sees own group", func(t *testing.T) {
		caller := auth.Caller{UserID: 5, Username: "jdoe", Type: models.UserTypeAdmin, DirectoryGroupID: ids[2]}

		res, err := svc.Get(ctx, caller, GetOptions{})
		require.NoError(t, err)
		assert.Equal(t, []string{"Helpdesk"}, names(res.Groups))

		res, err = svc.Get(ctx, caller, GetOptions{Editable: true})
		require.NoError(t, err)
		assert.Empty(t, res.Groups)

		res, err = svc.Get(ctx, auth.Caller{UserID: 6, Type: models.UserTypeUser}, GetOptions{})
		require.NoError(t, err)
		assert.Empty(t, res.Groups, "no directory group, nothing visible")
	})
}

func TestGetSearchNonASCII(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	mustCreate(t, svc,
		Input{Name: "café-ops", RoleID: testdb.RoleUser, LocalGroups: refs(1)},
		Input{Name: "CAFE-admins", RoleID: testdb.RoleUser, LocalGroups: refs(2)},
	)

	testCases := []struct {
		name string
		opts GetOptions
		want []string
	}{
		{name: "accented letter", opts: GetOptions{Search: "é"}, want: []string{"café-ops"}},
		{name: "ascii letters in other case", opts: GetOptions{Search: "CAFé"}, want: []string{"café-ops"}},
		{name: "common prefix", opts: GetOptions{Search: "caf", StartSearch: true}, want: []string{"café-ops", "CAFE-admins"}},
		{name: "exclude accented", opts: GetOptions{Search: "é", ExcludeSearch: true}, want: []string{"CAFE-admins"}},
		{name: "wildcards", opts: GetOptions{Search: "*é*", SearchWildcardsEnabled: true}, want: []string{"café-ops"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := svc.Get(ctx, superAdmin, tc.opts)
			require.NoError(t, err)
			assert.Equal(t, tc.want, names(res.Groups))
		})
	}

	res, err := svc.Get(ctx, superAdmin, GetOptions{Search: "é", CountOutput: true})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Count)
}

func TestLikePattern(t *testing.T) {
	tests := []struct {
		search    string
		start     bool
		wildcards bool
		want      string
	}{
		{search: "ops", want: "%ops%"},
		{search: "ops", start: true, want: "ops%"},
		{search: "50%_!", want: "%50!%!_!!%"},
		{search: "LDAP-*", wildcards: true, want: "LDAP-%"},
		{search: "*_*", wildcards: true, want: "%!_%"},
	}

	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			assert.Equal(t, tt.want, likePattern(tt.search, tt.start, tt.wildcards))
		})
	}
}
