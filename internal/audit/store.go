package audit

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/DirGroup-Admin/DirGroup-Admin/internal/db/models"
)

// Store is a Sink writing to the audit_log table.
type Store struct {
	db *gorm.DB
}

// NewStore returns a Store using db.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Record implements Sink.
func (s *Store) Record(ctx context.Context, entry Entry) error {
	row := models.AuditLog{
		ID:         uuid.NewString(),
		Action:     string(entry.Action),
		Resource:   entry.Resource,
		ResourceID: entry.ResourceID,
		UserID:     entry.UserID,
		Username:   entry.Username,
		Details: models.AuditDetails{
			Before: entry.Before,
			After:  entry.After,
			Notes:  entry.Notes,
		},
	}

	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return errors.Wrapf(err, "failed to record %s of %s %d", entry.Action, entry.Resource, entry.ResourceID)
	}

	return nil
}

// List returns the entries recorded for one object, oldest first.
func (s *Store) List(ctx context.Context, resource string, resourceID uint) ([]models.AuditLog, error) {
	var rows []models.AuditLog

	err := s.db.WithContext(ctx).
		Where("resource = ? AND resource_id = ?", resource, resourceID).
		Order("created_at").Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list audit entries")
	}

	return rows, nil
}
