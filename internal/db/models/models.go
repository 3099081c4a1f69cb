// Package models contains database model definitions.
package models

// All returns every model of the schema in dependency order, ready for AutoMigrate.
func All() []any {
	return []any{
		&Role{},
		&LocalGroup{},
		&DirectoryGroup{},
		&Membership{},
		&User{},
		&APIToken{},
		&AuditLog{},
	}
}
