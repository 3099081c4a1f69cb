package models

import "time"

// UserType is the privilege level a role grants to its users.
type UserType int

const (
	// UserTypeUser is a regular user with read access.
	UserTypeUser UserType = 1
	// UserTypeAdmin is an administrator of the objects they are granted.
	UserTypeAdmin UserType = 2
	// UserTypeSuperAdmin is the highest privilege level.
	UserTypeSuperAdmin UserType = 3
)

// String returns the human-readable name of the user type.
func (t UserType) String() string {
	switch t {
	case UserTypeUser:
		return "user"
	case UserTypeAdmin:
		return "admin"
	case UserTypeSuperAdmin:
		return "super admin"
	default:
		return "unknown"
	}
}

// Role represents a user role. Directory groups and users reference a role,
// the role type determines the privilege level of its members.
// Exactly one super admin role is marked Readonly; it is the protected role
// that cannot be edited and whose reassignment gets extra scrutiny.
type Role struct {
	// ID is the unique identifier for the role.
	ID uint `gorm:"primaryKey" json:"roleid"`
	// Name is the unique name of the role (e.g., "Super admin role").
	Name string `gorm:"unique;size:255;not null" json:"name"`
	// Type is the privilege level granted by the role.
	Type UserType `gorm:"not null;default:1" json:"type"`
	// Readonly marks the protected built-in super admin role.
	Readonly bool `gorm:"not null;default:false" json:"readonly"`
	// CreatedAt is the timestamp when the role was created (managed by GORM).
	CreatedAt time.Time `json:"-"`
	// UpdatedAt is the timestamp when the role was last updated (managed by GORM).
	UpdatedAt time.Time `json:"-"`
}

// TableName specifies the database table name for the Role model.
func (Role) TableName() string {
	return "roles"
}

// IsProtected reports whether r is the read-only super admin role.
func (r Role) IsProtected() bool {
	return r.Type == UserTypeSuperAdmin && r.Readonly
}
