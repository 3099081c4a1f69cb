package models

import "time"

// AuditDetails holds the state of a resource before and after a change.
type AuditDetails struct {
	Before any               `json:"before,omitempty"`
	After  any               `json:"after,omitempty"`
	Notes  map[string]string `json:"notes,omitempty"`
}

// AuditLog is one recorded change of an administrative resource.
type AuditLog struct {
	// ID is a random UUID.
	ID string `gorm:"primaryKey;size:36" json:"auditid"`
	// Action is the kind of change (add, update, delete).
	Action string `gorm:"size:16;not null;index" json:"action"`
	// Resource is the kind of resource changed (e.g., "directory_group").
	Resource string `gorm:"size:64;not null;index:idx_audit_resource,priority:1" json:"resource"`
	// ResourceID is the identifier of the changed resource.
	ResourceID uint `gorm:"not null;index:idx_audit_resource,priority:2" json:"resourceid"`
	// UserID is the account that performed the change.
	UserID uint64 `json:"userid"`
	// Username is copied so the record survives the user's removal.
	Username string `gorm:"size:100" json:"username"`
	// Details is stored as JSON.
	Details AuditDetails `gorm:"type:text;serializer:json" json:"details"`
	// CreatedAt is the timestamp of the change (managed by GORM).
	CreatedAt time.Time `gorm:"index" json:"clock"`
}

// TableName specifies the database table name for the AuditLog model.
func (AuditLog) TableName() string {
	return "audit_log"
}
