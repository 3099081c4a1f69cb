package models

import "time"

// DirectoryGroupNameMaxLength is the column size of DirectoryGroup.Name.
const DirectoryGroupNameMaxLength = 64

// DirectoryGroup is the local mirror of a group defined in an LDAP or
// Active Directory server. Users authenticated through the directory receive
// the group's role and the permissions of its associated local groups.
type DirectoryGroup struct {
	// ID is the unique identifier for the directory group.
	ID uint `gorm:"primaryKey"`
	// Name is the group name as reported by the directory. Globally unique.
	Name string `gorm:"uniqueIndex;size:64;not null"`
	// RoleID is the role granted to users of this group.
	RoleID uint `gorm:"not null;index"`
	// Role is the associated role. A role in use by a directory group cannot be removed.
	Role Role `gorm:"foreignKey:RoleID;references:ID;constraint:OnDelete:RESTRICT,OnUpdate:CASCADE"`
	// CreatedAt is the timestamp when the group was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the group was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the DirectoryGroup model.
func (DirectoryGroup) TableName() string {
	return "directory_groups"
}
