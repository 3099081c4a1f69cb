package models

import "time"

// LocalGroup is a user group managed inside the application.
// Directory groups are associated with local groups to grant their users
// the permissions of those groups.
type LocalGroup struct {
	// ID is the unique identifier for the local group.
	ID uint `gorm:"primaryKey" json:"usrgrpid"`
	// Name is the unique display name of the local group.
	Name string `gorm:"unique;size:64;not null" json:"name"`
	// CreatedAt is the timestamp when the group was created (managed by GORM).
	CreatedAt time.Time `json:"-"`
	// UpdatedAt is the timestamp when the group was last updated (managed by GORM).
	UpdatedAt time.Time `json:"-"`
}

// TableName specifies the database table name for the LocalGroup model.
func (LocalGroup) TableName() string {
	return "local_groups"
}
