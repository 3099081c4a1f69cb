package handler

import (
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/DirGroup-Admin/DirGroup-Admin/internal/db/controller/localgroup"
	"github.com/DirGroup-Admin/DirGroup-Admin/internal/dirgroup"
)

func TestErrorResponse(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
		wantData   bool
	}{
		{"fiber error", fiber.ErrUnauthorized, fiber.StatusUnauthorized, fiber.StatusUnauthorized, false},
		{"permission", &dirgroup.PermissionError{}, fiber.StatusForbidden, CodeApplication, true},
		{"validation", &dirgroup.ValidationError{Path: "/1/name", Reason: "cannot be empty"}, fiber.StatusBadRequest, CodeInvalidParams, true},
		{"duplicate", &dirgroup.DuplicateNameError{Name: "A"}, fiber.StatusConflict, CodeApplication, true},
		{"orphan", &dirgroup.OrphanGroupError{ID: 1, Name: "A"}, fiber.StatusConflict, CodeApplication, true},
		{"unknown reference", &dirgroup.UnknownReferenceError{Kind: dirgroup.RefRole, ID: 9}, fiber.StatusUnprocessableEntity, CodeApplication, true},
		{"no directory group", errors.WithStack(dirgroup.ErrNoDirectoryGroup), fiber.StatusNotFound, CodeApplication, true},
		{"local group in use", localgroup.ErrLocalGroupInUse, fiber.StatusConflict, CodeApplication, true},
		{"local group not found", localgroup.ErrLocalGroupNotFound, fiber.StatusNotFound, CodeApplication, true},
		{"internal", errors.New("database is locked"), fiber.StatusInternalServerError, CodeInternal, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := ErrorResponse(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, body.Code)
			assert.NotEmpty(t, body.Message)

			if tt.wantData {
				assert.Equal(t, tt.err.Error(), body.Data)
			} else {
				assert.Empty(t, body.Data)
			}
		})
	}
}
