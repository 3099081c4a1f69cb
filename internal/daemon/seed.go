package daemon

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/DirGroup-Admin/DirGroup-Admin/internal/db/controller/localgroup"
	"github.com/DirGroup-Admin/DirGroup-Admin/internal/db/models"
)

// DefaultAdmin is the super admin account created on an empty database.
const DefaultAdmin = "Admin"

// ProtectedRoleName is the name of the read-only super admin role.
const ProtectedRoleName = "Super admin role"

func builtinRoles() []models.Role {
	return []models.Role{
		{Name: "User role", Type: models.UserTypeUser},
		{Name: "Admin role", Type: models.UserTypeAdmin},
		{Name: ProtectedRoleName, Type: models.UserTypeSuperAdmin, Readonly: true},
	}
}

func builtinLocalGroups() []string {
	return []string{"Administrators", "Guests", "Internal", "Disabled"}
}

// seed creates what is missing of the built-in data, existing rows are left alone.
func seed(ctx context.Context, db *gorm.DB) error {
	var protected models.Role

	for _, want := range builtinRoles() {
		var role models.Role

		err := db.WithContext(ctx).
			Where(models.Role{Name: want.Name}).
			Attrs(models.Role{Type: want.Type, Readonly: want.Readonly}).
			FirstOrCreate(&role).Error
		if err != nil {
			return errors.Wrapf(err, "failed to seed role %q", want.Name)
		}

		if role.Name == ProtectedRoleName {
			protected = role
		}
	}

	for _, name := range builtinLocalGroups() {
		if _, err := localgroup.Ensure(ctx, db, name); err != nil {
			return errors.Wrapf(err, "failed to seed local group %q", name)
		}
	}

	var users int64
	if err := db.WithContext(ctx).Model(&models.User{}).Count(&users).Error; err != nil {
		return errors.Wrap(err, "failed to count users")
	}

	if users > 0 {
		return nil
	}

	admin := models.User{Username: DefaultAdmin, RoleID: protected.ID, Active: true}
	if err := db.WithContext(ctx).Create(&admin).Error; err != nil {
		return errors.Wrap(err, "failed to seed admin user")
	}

	log.Info().Str("username", DefaultAdmin).Msg("created default super admin, issue an API token with the token command")

	return nil
}
