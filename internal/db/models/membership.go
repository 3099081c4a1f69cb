package models

// Membership associates a directory group with a local group.
// A (DirectoryGroupID, LocalGroupID) pair appears at most once.
type Membership struct {
	// ID is the unique identifier of the association row.
	ID uint `gorm:"primaryKey"`
	// DirectoryGroupID is the owning directory group.
	DirectoryGroupID uint `gorm:"not null;uniqueIndex:idx_directory_local_group,priority:1"`
	// LocalGroupID is the associated local group.
	LocalGroupID uint `gorm:"not null;uniqueIndex:idx_directory_local_group,priority:2;index"`
	// DirectoryGroup is removed together with its memberships.
	DirectoryGroup DirectoryGroup `gorm:"foreignKey:DirectoryGroupID;constraint:OnDelete:CASCADE"`
	// LocalGroup cannot be removed while a directory group references it.
	LocalGroup LocalGroup `gorm:"foreignKey:LocalGroupID;constraint:OnDelete:RESTRICT"`
}

// TableName specifies the database table name for the Membership model.
func (Membership) TableName() string {
	return "directory_group_local_groups"
}
