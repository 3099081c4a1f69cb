// Package dirgroup manages directory groups: named mappings from an external
// directory group to a role and a non-empty set of local groups.
//
// Every write runs in a single transaction. The association rows between
// directory groups and local groups are reconciled by Diff and checked by
// Guard so that no directory group is left without local groups.
package dirgroup

import (
	"context"
	"database/sql"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/DirGroup-Admin/DirGroup-Admin/internal/audit"
	"github.com/DirGroup-Admin/DirGroup-Admin/internal/auth"
	"github.com/DirGroup-Admin/DirGroup-Admin/internal/db/models"
)

// Service implements the directory group operations.
type Service struct {
	db       *gorm.DB
	audit    audit.Sink
	validate *validator.Validate
	txOpts   *sql.TxOptions
	lockRows bool
}

// Option configures a Service.
type Option func(*Service)

// WithTxOptions sets the options of the transactions started by the service.
func WithTxOptions(opts *sql.TxOptions) Option {
	return func(s *Service) {
		s.txOpts = opts
	}
}

// WithRowLocking enables or disables SELECT ... FOR UPDATE on the rows a write reads.
// It is enabled by default for every engine except SQLite.
func WithRowLocking(enabled bool) Option {
	return func(s *Service) {
		s.lockRows = enabled
	}
}

// NewService returns a Service storing to db and recording changes to sink.
// A nil sink drops audit entries.
func NewService(db *gorm.DB, sink audit.Sink, opts ...Option) *Service {
	if sink == nil {
		sink = audit.Nop{}
	}

	s := &Service{
		db:       db,
		audit:    sink,
		validate: newValidator(),
		lockRows: db.Dialector.Name() != "sqlite",
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Service) transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s.txOpts != nil {
		return s.db.WithContext(ctx).Transaction(fn, s.txOpts) //nolint:wrapcheck
	}

	return s.db.WithContext(ctx).Transaction(fn) //nolint:wrapcheck
}

// forUpdate locks the rows read by tx until the transaction ends.
func (s *Service) forUpdate(tx *gorm.DB) *gorm.DB {
	if !s.lockRows {
		return tx
	}

	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// Create stores new directory groups and returns their ids in input order.
// Either all groups are created or none.
func (s *Service) Create(ctx context.Context, caller auth.Caller, groups []Input) ([]uint, error) {
	ids, err := s.create(ctx, caller, groups)
	observe("create", err)

	return ids, err
}

func (s *Service) create(ctx context.Context, caller auth.Caller, groups []Input) ([]uint, error) {
	if err := requireSuperAdmin(caller, "create"); err != nil {
		return nil, err
	}

	if err := s.validateCreate(groups); err != nil {
		return nil, err
	}

	var (
		names   = make([]string, len(groups))
		roleIDs = make([]uint, 0, len(groups))
		refs    = make([][]LocalGroupRef, len(groups))
		rows    = make([]models.DirectoryGroup, len(groups))
	)

	for i, g := range groups {
		names[i] = g.Name
		roleIDs = append(roleIDs, g.RoleID)
		refs[i] = g.LocalGroups
		rows[i] = models.DirectoryGroup{Name: g.Name, RoleID: g.RoleID}
	}

	err := s.transaction(ctx, func(tx *gorm.DB) error {
		if err := checkNamesAvailable(tx, names); err != nil {
			return err
		}

		if err := checkRoles(tx, uniqueIDs(roleIDs)); err != nil {
			return err
		}

		if err := checkLocalGroups(tx, referencedLocalGroups(refs...)); err != nil {
			return err
		}

		if err := tx.Omit(clause.Associations).Create(&rows).Error; err != nil {
			if dup := duplicateNameError(err, names); dup != nil {
				return dup
			}

			return errors.Wrap(err, "failed to insert directory groups")
		}

		desired := make(Desired, len(rows))
		for i := range rows {
			desired[rows[i].ID] = localGroupSet(groups[i].LocalGroups)
		}

		return applyChanges(tx, Diff(desired, nil))
	})
	if err != nil {
		return nil, err
	}

	ids := make([]uint, len(rows))
	entries := make([]audit.Entry, len(rows))

	for i := range rows {
		ids[i] = rows[i].ID
		entries[i] = newEntry(caller, audit.ActionAdd, rows[i].ID)
		entries[i].After = snapshotOf(rows[i], localGroupSet(groups[i].LocalGroups).Values())
	}

	s.record(ctx, entries)

	return ids, nil
}

// Update applies patches to existing directory groups and returns their ids in input order.
// Either all patches are applied or none.
func (s *Service) Update(ctx context.Context, caller auth.Caller, patches []Patch) ([]uint, error) {
	ids, err := s.update(ctx, caller, patches)
	observe("update", err)

	return ids, err
}

func (s *Service) update(ctx context.Context, caller auth.Caller, patches []Patch) ([]uint, error) { //nolint:funlen,gocognit
	if err := requireSuperAdmin(caller, "update"); err != nil {
		return nil, err
	}

	if err := s.validateUpdate(patches); err != nil {
		return nil, err
	}

	ids := make([]uint, len(patches))
	for i := range patches {
		ids[i] = patches[i].ID
	}

	var entries []audit.Entry

	err := s.transaction(ctx, func(tx *gorm.DB) error {
		stored, err := s.lockGroups(tx, ids)
		if err != nil {
			return err
		}

		protected, err := protectedRole(tx)
		if err != nil {
			return err
		}

		var (
			names        []string
			roleIDs      []uint
			refs         [][]LocalGroupRef
			desired      = make(Desired)
			groupNames   = make(map[uint]string, len(stored))
			leavingRoles = make(map[uint]bool)
		)

		for _, p := range patches {
			cur := stored[p.ID]
			groupNames[p.ID] = cur.Name

			if p.Name != nil && *p.Name != cur.Name {
				names = append(names, *p.Name)
			}

			if p.RoleID != nil && *p.RoleID != cur.RoleID {
				roleIDs = append(roleIDs, *p.RoleID)

				if protected != nil && cur.RoleID == protected.ID {
					leavingRoles[p.ID] = true
				}
			}

			if p.LocalGroups != nil {
				desired[p.ID] = localGroupSet(p.LocalGroups)
				refs = append(refs, p.LocalGroups)
			}
		}

		if err = checkNamesAvailable(tx, names); err != nil {
			return err
		}

		if err = checkRoles(tx, uniqueIDs(roleIDs)); err != nil {
			return err
		}

		if err = checkLocalGroups(tx, referencedLocalGroups(refs...)); err != nil {
			return err
		}

		current, err := s.lockMemberships(tx, keys(desired))
		if err != nil {
			return err
		}

		changes := Diff(desired, current)

		if err = Guard(changes, current, groupNames, IDSet{}); err != nil {
			orphanRejectionsTotal.Inc()

			return err
		}

		if err = applyChanges(tx, changes); err != nil {
			return err
		}

		before := membershipsByGroup(current)

		for _, p := range patches {
			cur := stored[p.ID]
			next := cur

			if p.Name != nil {
				next.Name = *p.Name
			}

			if p.RoleID != nil {
				next.RoleID = *p.RoleID
			}

			if next.Name != cur.Name || next.RoleID != cur.RoleID {
				err = tx.Model(&models.DirectoryGroup{ID: p.ID}).
					Updates(map[string]any{"name": next.Name, "role_id": next.RoleID}).Error
				if dup := duplicateNameError(err, []string{next.Name}); dup != nil {
					return dup
				}

				if err != nil {
					return errors.Wrapf(err, "failed to update directory group %d", p.ID)
				}
			}

			entry := newEntry(caller, audit.ActionUpdate, p.ID)

			if set, ok := desired[p.ID]; ok {
				entry.Before = snapshotOf(cur, before[p.ID].Values())
				entry.After = snapshotOf(next, set.Values())
			} else {
				entry.Before = snapshotOf(cur, nil)
				entry.After = snapshotOf(next, nil)
			}

			if leavingRoles[p.ID] {
				protectedRoleTransitionsTotal.Inc()
				log.Warn().
					Uint("dirgroupid", p.ID).
					Str("name", cur.Name).
					Uint("from_roleid", cur.RoleID).
					Uint("to_roleid", next.RoleID).
					Str("user", caller.Username).
					Msg("directory group moved away from the read-only super admin role")

				entry.Notes = map[string]string{"protected_role": "left " + strconv.FormatUint(uint64(cur.RoleID), 10)}
			}

			entries = append(entries, entry)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.record(ctx, entries)

	return ids, nil
}

// Delete removes directory groups with all their associations and returns the removed ids.
// Either all groups are removed or none.
func (s *Service) Delete(ctx context.Context, caller auth.Caller, ids []uint) ([]uint, error) {
	deleted, err := s.remove(ctx, caller, ids)
	observe("delete", err)

	return deleted, err
}

func (s *Service) remove(ctx context.Context, caller auth.Caller, ids []uint) ([]uint, error) {
	if err := requireSuperAdmin(caller, "delete"); err != nil {
		return nil, err
	}

	if err := validateDelete(ids); err != nil {
		return nil, err
	}

	var entries []audit.Entry

	err := s.transaction(ctx, func(tx *gorm.DB) error {
		stored, err := s.lockGroups(tx, ids)
		if err != nil {
			return err
		}

		current, err := s.lockMemberships(tx, ids)
		if err != nil {
			return err
		}

		changes := Changes{DeleteIDs: make([]uint, 0, len(current))}
		for _, row := range current {
			changes.DeleteIDs = append(changes.DeleteIDs, row.ID)
		}

		if err = Guard(changes, current, nil, NewIDSet(ids...)); err != nil {
			orphanRejectionsTotal.Inc()

			return err
		}

		if err = applyChanges(tx, changes); err != nil {
			return err
		}

		err = tx.Model(&models.User{}).
			Where("directory_group_id IN ?", ids).
			Update("directory_group_id", nil).Error
		if err != nil {
			return errors.Wrap(err, "failed to detach users from directory groups")
		}

		if err = tx.Where("id IN ?", ids).Delete(&models.DirectoryGroup{}).Error; err != nil {
			return errors.Wrap(err, "failed to delete directory groups")
		}

		before := membershipsByGroup(current)

		for _, id := range ids {
			entry := newEntry(caller, audit.ActionDelete, id)
			entry.Before = snapshotOf(stored[id], before[id].Values())
			entries = append(entries, entry)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.record(ctx, entries)

	return ids, nil
}

// lockGroups loads and locks the directory groups with ids.
// A missing id is reported as a permission error.
func (s *Service) lockGroups(tx *gorm.DB, ids []uint) (map[uint]models.DirectoryGroup, error) {
	var rows []models.DirectoryGroup
	if err := s.forUpdate(tx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to load directory groups")
	}

	stored := make(map[uint]models.DirectoryGroup, len(rows))
	for _, row := range rows {
		stored[row.ID] = row
	}

	for _, id := range ids {
		if _, ok := stored[id]; !ok {
			return nil, &PermissionError{}
		}
	}

	return stored, nil
}

// lockMemberships loads and locks every association row of the directory groups with ids.
func (s *Service) lockMemberships(tx *gorm.DB, ids []uint) ([]models.Membership, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var rows []models.Membership

	err := s.forUpdate(tx).
		Where("directory_group_id IN ?", ids).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to load directory group memberships")
	}

	return rows, nil
}

// applyChanges writes changes inside tx.
func applyChanges(tx *gorm.DB, changes Changes) error {
	if len(changes.DeleteIDs) > 0 {
		if err := tx.Where("id IN ?", changes.DeleteIDs).Delete(&models.Membership{}).Error; err != nil {
			return errors.Wrap(err, "failed to delete directory group memberships")
		}
	}

	if len(changes.Insert) > 0 {
		rows := make([]models.Membership, len(changes.Insert))
		for i, pair := range changes.Insert {
			rows[i] = models.Membership{
				DirectoryGroupID: pair.DirectoryGroupID,
				LocalGroupID:     pair.LocalGroupID,
			}
		}

		if err := tx.Omit(clause.Associations).Create(&rows).Error; err != nil {
			return errors.Wrap(err, "failed to insert directory group memberships")
		}
	}

	return nil
}

// record writes entries after a committed change. Failures are logged and
// counted but never undo the change.
func (s *Service) record(ctx context.Context, entries []audit.Entry) {
	if err := audit.RecordAll(ctx, s.audit, entries); err != nil {
		auditFailuresTotal.Inc()
		log.Error().Err(err).Int("entries", len(entries)).Msg("failed to record directory group audit entries")
	}
}

func newEntry(caller auth.Caller, action audit.Action, id uint) audit.Entry {
	return audit.Entry{
		Action:     action,
		Resource:   audit.ResourceDirectoryGroup,
		ResourceID: id,
		UserID:     caller.UserID,
		Username:   caller.Username,
	}
}

func membershipsByGroup(rows []models.Membership) map[uint]IDSet {
	out := make(map[uint]IDSet)

	for _, row := range rows {
		set := out[row.DirectoryGroupID]
		set.Add(row.LocalGroupID)
		out[row.DirectoryGroupID] = set
	}

	return out
}

func keys(desired Desired) []uint {
	set := NewIDSet()
	for id := range desired {
		set.Add(id)
	}

	return set.Values()
}

// uniqueIDs drops repeated ids keeping the first occurrence.
func uniqueIDs(ids []uint) []uint {
	var (
		seen IDSet
		out  = make([]uint, 0, len(ids))
	)

	for _, id := range ids {
		if !seen.Has(id) {
			seen.Add(id)
			out = append(out, id)
		}
	}

	return out
}
