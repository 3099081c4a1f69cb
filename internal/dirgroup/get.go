package dirgroup

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/DirGroup-Admin/DirGroup-Admin/internal/auth"
	"github.com/DirGroup-Admin/DirGroup-Admin/internal/db/models"
)

// Filter restricts Get to exact field values.
type Filter struct {
	Name   []string `json:"name"`
	RoleID []uint   `json:"roleid"`
}

// GetOptions selects the directory groups returned by Get.
// Nil id lists do not filter, empty ones match nothing.
type GetOptions struct {
	DirectoryGroupIDs []uint  `json:"dirgroupids"`
	LocalGroupIDs     []uint  `json:"usrgrpids"`
	Filter            *Filter `json:"filter"`

	// Search matches names case-insensitively, anywhere unless StartSearch is set.
	// With SearchWildcardsEnabled "*" matches any text and the pattern must match the whole name.
	Search                 string `json:"search"`
	StartSearch            bool   `json:"startSearch"`
	ExcludeSearch          bool   `json:"excludeSearch"`
	SearchWildcardsEnabled bool   `json:"searchWildcardsEnabled"`

	SelectLocalGroups bool `json:"selectUsrgrps"`
	SelectRole        bool `json:"selectRole"`
	CountOutput       bool `json:"countOutput"`
	Editable          bool `json:"editable"`

	SortField string `json:"sortfield" validate:"omitempty,oneof=dirgroupid name"`
	SortOrder string `json:"sortorder" validate:"omitempty,oneof=ASC DESC asc desc"`
	Limit     int    `json:"limit"     validate:"gte=0"`
}

// GetResult is the outcome of Get. Count is set only when CountOutput was requested,
// Groups otherwise.
type GetResult struct {
	Groups []DirectoryGroup
	Count  int64
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_") //nolint:gochecknoglobals

// Get returns the directory groups visible to caller matching opts.
// Super admins see all groups. Other callers see only their own directory
// group and nothing when asking for editable groups.
func (s *Service) Get(ctx context.Context, caller auth.Caller, opts GetOptions) (GetResult, error) {
	result, err := s.get(ctx, caller, opts)
	observe("get", err)

	return result, err
}

func (s *Service) get(ctx context.Context, caller auth.Caller, opts GetOptions) (GetResult, error) {
	if !caller.Authenticated() {
		return GetResult{}, &PermissionError{Reason: "not authorised"}
	}

	if err := s.checkShape("", &opts); err != nil {
		return GetResult{}, err
	}

	if !caller.IsSuperAdmin() && opts.Editable {
		return GetResult{Groups: []DirectoryGroup{}}, nil
	}

	q := s.db.WithContext(ctx).Model(&models.DirectoryGroup{})

	if !caller.IsSuperAdmin() {
		q = q.Where("directory_groups.id = ?", caller.DirectoryGroupID)
	}

	if opts.DirectoryGroupIDs != nil {
		q = q.Where("directory_groups.id IN ?", opts.DirectoryGroupIDs)
	}

	if opts.LocalGroupIDs != nil {
		q = q.Where("directory_groups.id IN (?)", s.db.Model(&models.Membership{}).
			Select("directory_group_id").
			Where("local_group_id IN ?", opts.LocalGroupIDs))
	}

	if opts.Filter != nil {
		if opts.Filter.Name != nil {
			q = q.Where("directory_groups.name IN ?", opts.Filter.Name)
		}

		if opts.Filter.RoleID != nil {
			q = q.Where("directory_groups.role_id IN ?", opts.Filter.RoleID)
		}
	}

	if opts.Search != "" {
		op := "LIKE"
		if opts.ExcludeSearch {
			op = "NOT LIKE"
		}

		// Both sides are folded by the database so they always agree; SQLite folds ASCII only.
		q = q.Where("UPPER(directory_groups.name) "+op+" UPPER(?) ESCAPE '!'",
			likePattern(opts.Search, opts.StartSearch, opts.SearchWildcardsEnabled))
	}

	if opts.CountOutput {
		var count int64
		if err := q.Count(&count).Error; err != nil {
			return GetResult{}, errors.Wrap(err, "failed to count directory groups")
		}

		return GetResult{Count: count}, nil
	}

	column := "id"
	if opts.SortField == "name" {
		column = "name"
	}

	q = q.Order(clause.OrderByColumn{
		Column: clause.Column{Table: "directory_groups", Name: column},
		Desc:   strings.EqualFold(opts.SortOrder, "DESC"),
	})

	if column != "id" {
		q = q.Order("directory_groups.id")
	}

	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}

	var rows []models.DirectoryGroup
	if err := q.Find(&rows).Error; err != nil {
		return GetResult{}, errors.Wrap(err, "failed to query directory groups")
	}

	groups := make([]DirectoryGroup, len(rows))
	for i, row := range rows {
		groups[i] = DirectoryGroup{ID: row.ID, Name: row.Name, RoleID: row.RoleID}
	}

	if err := s.attach(ctx, groups, opts); err != nil {
		return GetResult{}, err
	}

	return GetResult{Groups: groups}, nil
}

// attach loads the related objects requested by opts into groups.
func (s *Service) attach(ctx context.Context, groups []DirectoryGroup, opts GetOptions) error {
	if len(groups) == 0 || (!opts.SelectLocalGroups && !opts.SelectRole) {
		return nil
	}

	db := s.db.WithContext(ctx)

	ids := make([]uint, len(groups))
	for i := range groups {
		ids[i] = groups[i].ID
	}

	if opts.SelectLocalGroups {
		if err := attachLocalGroups(db, groups, ids); err != nil {
			return err
		}
	}

	if opts.SelectRole {
		if err := attachRoles(db, groups); err != nil {
			return err
		}
	}

	return nil
}

func attachLocalGroups(db *gorm.DB, groups []DirectoryGroup, ids []uint) error {
	var rows []models.Membership

	err := db.Preload("LocalGroup").
		Where("directory_group_id IN ?", ids).
		Order("local_group_id").
		Find(&rows).Error
	if err != nil {
		return errors.Wrap(err, "failed to load local groups of directory groups")
	}

	byGroup := make(map[uint][]models.LocalGroup, len(groups))
	for _, row := range rows {
		byGroup[row.DirectoryGroupID] = append(byGroup[row.DirectoryGroupID], row.LocalGroup)
	}

	for i := range groups {
		groups[i].LocalGroups = byGroup[groups[i].ID]
		if groups[i].LocalGroups == nil {
			groups[i].LocalGroups = []models.LocalGroup{}
		}
	}

	return nil
}

func attachRoles(db *gorm.DB, groups []DirectoryGroup) error {
	roleIDs := NewIDSet()
	for i := range groups {
		roleIDs.Add(groups[i].RoleID)
	}

	var roles []models.Role
	if err := db.Where("id IN ?", roleIDs.Values()).Find(&roles).Error; err != nil {
		return errors.Wrap(err, "failed to load roles of directory groups")
	}

	byID := make(map[uint]models.Role, len(roles))
	for _, role := range roles {
		byID[role.ID] = role
	}

	for i := range groups {
		if role, ok := byID[groups[i].RoleID]; ok {
			groups[i].Role = &role
		}
	}

	return nil
}

// likePattern builds a LIKE pattern escaped with "!".
func likePattern(search string, startSearch, wildcards bool) string {
	pattern := likeEscaper.Replace(search)

	if wildcards {
		return strings.ReplaceAll(pattern, "*", "%")
	}

	if !startSearch {
		pattern = "%" + pattern
	}

	return pattern + "%"
}
