package auth

import (
	"github.com/DirGroup-Admin/DirGroup-Admin/internal/db/models"
)

// Caller is the authorization context of a request.
type Caller struct {
	// UserID is the authenticated account.
	UserID uint64
	// Username of the authenticated account.
	Username string
	// Type is the privilege level of the account's role.
	Type models.UserType
	// DirectoryGroupID is the directory group of the account, 0 if none.
	DirectoryGroupID uint
}

// Authenticated reports whether c describes a logged in account.
func (c Caller) Authenticated() bool {
	return c.UserID != 0 && c.Type >= models.UserTypeUser
}

// IsSuperAdmin reports whether c holds the highest privilege level.
func (c Caller) IsSuperAdmin() bool {
	return c.Authenticated() && c.Type == models.UserTypeSuperAdmin
}

// CallerFromUser builds the authorization context for u.
// The user's role must be loaded.
func CallerFromUser(u *models.User) Caller {
	caller := Caller{
		UserID:   u.ID,
		Username: u.Username,
		Type:     u.Role.Type,
	}

	if u.DirectoryGroupID != nil {
		caller.DirectoryGroupID = *u.DirectoryGroupID
	}

	return caller
}
