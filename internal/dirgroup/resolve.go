package dirgroup

import (
	"context"
	"strings"

	"github.com/go-ldap/ldap/v3"
	"github.com/pkg/errors"

	"github.com/DirGroup-Admin/DirGroup-Admin/internal/db/models"
)

// Resolution is the access granted to a member of a set of directory groups.
type Resolution struct {
	// DirectoryGroupIDs lists the matched directory groups in ascending order.
	DirectoryGroupIDs []uint `json:"dirgroupids"`
	// DirectoryGroupID is the matched group the role was taken from.
	DirectoryGroupID uint `json:"dirgroupid"`
	// RoleID is the role of the most privileged matched group.
	RoleID uint `json:"roleid"`
	// UserType is the privilege level of RoleID.
	UserType models.UserType `json:"type"`
	// LocalGroupIDs is the union of the local groups of all matched groups.
	LocalGroupIDs []uint `json:"usrgrpids"`
}

// GroupName returns the directory group name referenced by ref.
// A distinguished name such as "CN=LDAP-Ops,OU=Groups,DC=example,DC=com"
// yields the value of its first RDN, any other ref is used as is.
func GroupName(ref string) string {
	ref = strings.TrimSpace(ref)
	if !strings.Contains(ref, "=") {
		return ref
	}

	dn, err := ldap.ParseDN(ref)
	if err != nil || len(dn.RDNs) == 0 || len(dn.RDNs[0].Attributes) == 0 {
		return ref
	}

	return dn.RDNs[0].Attributes[0].Value
}

// Resolve maps the directory group refs an account is member of to the
// access it is granted. The role of the matched group with the highest user
// type wins, ties go to the lowest directory group id. Local groups of all
// matched groups are merged. ErrNoDirectoryGroup is returned when nothing matches.
func (s *Service) Resolve(ctx context.Context, refs []string) (Resolution, error) {
	res, err := s.resolve(ctx, refs)
	observe("resolve", err)

	return res, err
}

func (s *Service) resolve(ctx context.Context, refs []string) (Resolution, error) {
	names := make([]string, 0, len(refs))
	seen := make(map[string]struct{}, len(refs))

	for _, ref := range refs {
		name := GroupName(ref)
		if name == "" {
			continue
		}

		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}

	if len(names) == 0 {
		return Resolution{}, ErrNoDirectoryGroup
	}

	db := s.db.WithContext(ctx)

	var groups []models.DirectoryGroup
	if err := db.Preload("Role").Where("name IN ?", names).Order("id").Find(&groups).Error; err != nil {
		return Resolution{}, errors.Wrap(err, "failed to look up directory groups")
	}

	if len(groups) == 0 {
		return Resolution{}, ErrNoDirectoryGroup
	}

	best := groups[0]
	ids := make([]uint, len(groups))

	for i, g := range groups {
		ids[i] = g.ID
		if g.Role.Type > best.Role.Type {
			best = g
		}
	}

	var localGroupIDs []uint

	err := db.Model(&models.Membership{}).
		Where("directory_group_id IN ?", ids).
		Pluck("local_group_id", &localGroupIDs).Error
	if err != nil {
		return Resolution{}, errors.Wrap(err, "failed to look up local groups")
	}

	return Resolution{
		DirectoryGroupIDs: ids,
		DirectoryGroupID:  best.ID,
		RoleID:            best.RoleID,
		UserType:          best.Role.Type,
		LocalGroupIDs:     NewIDSet(localGroupIDs...).Values(),
	}, nil
}
