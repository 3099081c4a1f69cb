package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"gorm.io/gorm"

	"github.com/DirGroup-Admin/DirGroup-Admin/internal/audit"
	"github.com/DirGroup-Admin/DirGroup-Admin/internal/config"
	"github.com/DirGroup-Admin/DirGroup-Admin/internal/dirgroup"
)

// ErrMissingDependency is returned by Init when a required dependency is nil.
var ErrMissingDependency = errors.New("router, database or service is nil")

// Dependencies are the services API handlers are built from.
type Dependencies struct {
	Config    *config.Config
	DB        *gorm.DB
	DirGroups *dirgroup.Service
	Audit     *audit.Store
}

// Service is implemented by every API handler.
// Init registers the handler's routes below router.
type Service interface {
	Init(router fiber.Router, deps Dependencies) error
}
