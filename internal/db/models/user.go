package models

import (
	"time"
)

// User represents an account of the platform.
// Directory users carry the directory group they were placed in at login,
// their privilege level comes from their role.
type User struct {
	// ID is the unique identifier for the user.
	ID uint64 `gorm:"primaryKey"`
	// Active indicates whether the user account may authenticate.
	Active bool
	// Username is the unique username for login.
	Username string `gorm:"unique;size:100;not null"`
	// RoleID is the ID of the role assigned to this user.
	RoleID uint `gorm:"column:role_id;not null"`
	// Role is the associated role (enforced with a foreign key constraint).
	Role Role `gorm:"foreignKey:RoleID;references:ID;constraint:OnDelete:RESTRICT,OnUpdate:CASCADE"`
	// DirectoryGroupID is the directory group the user was placed in, if any.
	DirectoryGroupID *uint `gorm:"index"`
	// DirectoryGroup is cleared when the directory group is deleted.
	DirectoryGroup *DirectoryGroup `gorm:"foreignKey:DirectoryGroupID;constraint:OnDelete:SET NULL"`
	// CreatedAt is the timestamp when the user was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the user was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the User model.
func (User) TableName() string {
	return "users"
}
