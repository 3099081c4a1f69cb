// Package localgroup provides the JSON API handlers for local groups.
package localgroup

import (
	"strconv"

	"github.com/gofiber/fiber/v3"
	"gorm.io/gorm"

	"github.com/DirGroup-Admin/DirGroup-Admin/internal/auth"
	localgroupctl "github.com/DirGroup-Admin/DirGroup-Admin/internal/db/controller/localgroup"
	"github.com/DirGroup-Admin/DirGroup-Admin/internal/dirgroup"
	"github.com/DirGroup-Admin/DirGroup-Admin/internal/web/handler"
)

const (
	// Path is the base path of the local group API below the API prefix.
	Path = handler.RootPath + "usrgrps"

	// RouteDelete removes one local group.
	RouteDelete = Path + "/:id"
)

// Service serves the local group API.
type Service struct {
	db *gorm.DB
}

// Init registers routes.
func (s *Service) Init(router fiber.Router, deps handler.Dependencies) error {
	if router == nil || deps.DB == nil {
		return handler.ErrMissingDependency
	}

	s.db = deps.DB

	router.Get(Path, s.List)
	router.Delete(RouteDelete, s.Delete)

	return nil
}

// List returns every local group.
func (s *Service) List(c fiber.Ctx) error {
	if _, ok := auth.CallerFrom(c); !ok {
		return fiber.ErrUnauthorized
	}

	groups, err := localgroupctl.GetAll(c.Context(), s.db)
	if err != nil {
		return err //nolint:wrapcheck
	}

	return handler.Result(c, groups)
}

// Delete removes a local group no directory group is associated with.
func (s *Service) Delete(c fiber.Ctx) error {
	caller, ok := auth.CallerFrom(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	if !caller.IsSuperAdmin() {
		return &dirgroup.PermissionError{Reason: "only super admins can delete local groups"}
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 0)
	if err != nil || id == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid local group id")
	}

	if err = localgroupctl.Delete(c.Context(), s.db, uint(id)); err != nil {
		return err //nolint:wrapcheck
	}

	return handler.Result(c, handler.LocalGroupIDs{UsrGrpIDs: []uint{uint(id)}})
}
