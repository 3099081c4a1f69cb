// Package localgroup provides CRUD operations for local groups.
package localgroup

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/DirGroup-Admin/DirGroup-Admin/internal/db/models"
)

const (
	nameQueryPattern = "name = ?"
)

var (
	// ErrLocalGroupNotFound is returned when a local group is not found.
	ErrLocalGroupNotFound = errors.New("local group not found")
	// ErrLocalGroupNameEmpty is returned when attempting to create a local group with an empty name.
	ErrLocalGroupNameEmpty = errors.New("local group name cannot be empty")
	// ErrLocalGroupAlreadyExists is returned when attempting to create a local group that already exists.
	ErrLocalGroupAlreadyExists = errors.New("local group already exists")
	// ErrLocalGroupInUse is returned when deleting a local group a directory group is still associated with.
	ErrLocalGroupInUse = errors.New("local group is used by a directory group")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Get retrieves a local group by its name.
func Get(ctx context.Context, db *gorm.DB, name string) (*models.LocalGroup, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if name == "" {
		return nil, ErrLocalGroupNameEmpty
	}

	var group models.LocalGroup

	err := db.WithContext(ctx).Where(nameQueryPattern, name).First(&group).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrLocalGroupNotFound
	}

	if err != nil {
		return nil, errors.Wrapf(err, "failed to query local group %q", name)
	}

	return &group, nil
}

// GetAll retrieves all local groups ordered by id.
func GetAll(ctx context.Context, db *gorm.DB) ([]models.LocalGroup, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var groups []models.LocalGroup
	if err := db.WithContext(ctx).Order("id").Find(&groups).Error; err != nil {
		return nil, errors.Wrap(err, "failed to query local groups")
	}

	return groups, nil
}

// Create creates a new local group.
func Create(ctx context.Context, db *gorm.DB, name string) (*models.LocalGroup, error) {
	_, err := Get(ctx, db, name)
	if err == nil {
		return nil, ErrLocalGroupAlreadyExists
	}

	if !errors.Is(err, ErrLocalGroupNotFound) {
		return nil, err
	}

	group := &models.LocalGroup{Name: name}
	if err = db.WithContext(ctx).Create(group).Error; err != nil {
		return nil, errors.Wrapf(err, "failed to create local group %q", name)
	}

	return group, nil
}

// Ensure returns the local group name, creating it if it does not exist.
func Ensure(ctx context.Context, db *gorm.DB, name string) (*models.LocalGroup, error) {
	group, err := Get(ctx, db, name)
	if errors.Is(err, ErrLocalGroupNotFound) {
		return Create(ctx, db, name)
	}

	return group, err
}

// Delete deletes a local group by id.
// Local groups still associated with a directory group are kept, removing
// them would leave the directory group without local groups.
func Delete(ctx context.Context, db *gorm.DB, id uint) error {
	if db == nil {
		return ErrDBNil
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error { //nolint:wrapcheck
		var used int64
		if err := tx.Model(&models.Membership{}).Where("local_group_id = ?", id).Count(&used).Error; err != nil {
			return errors.Wrap(err, "failed to count memberships")
		}

		if used > 0 {
			return ErrLocalGroupInUse
		}

		result := tx.Delete(&models.LocalGroup{}, id)
		if result.Error != nil {
			return errors.Wrapf(result.Error, "failed to delete local group %d", id)
		}

		if result.RowsAffected == 0 {
			return ErrLocalGroupNotFound
		}

		return nil
	})
}
