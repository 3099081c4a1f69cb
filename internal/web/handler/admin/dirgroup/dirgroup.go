// Package dirgroup provides the JSON API handlers for directory groups.
package dirgroup

import (
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/DirGroup-Admin/DirGroup-Admin/internal/audit"
	"github.com/DirGroup-Admin/DirGroup-Admin/internal/auth"
	dirgroupsvc "github.com/DirGroup-Admin/DirGroup-Admin/internal/dirgroup"
	"github.com/DirGroup-Admin/DirGroup-Admin/internal/web/handler"
)

const (
	// Path is the base path of the directory group API below the API prefix.
	Path = handler.RootPath + "dirgroups"

	// RouteGet queries directory groups.
	RouteGet = Path + "/get"
	// RouteResolve maps directory group references to access.
	RouteResolve = Path + "/resolve"
	// RouteAudit lists the recorded changes of one directory group.
	RouteAudit = Path + "/:id/audit"
)

// Service serves the directory group API.
type Service struct {
	groups *dirgroupsvc.Service
	audit  *audit.Store
}

// ResolveRequest is the body of RouteResolve.
type ResolveRequest struct {
	// Groups are directory group names or distinguished names.
	Groups []string `json:"groups"`
}

// Init registers routes.
func (s *Service) Init(router fiber.Router, deps handler.Dependencies) error {
	if router == nil || deps.DirGroups == nil || deps.Audit == nil {
		return handler.ErrMissingDependency
	}

	s.groups = deps.DirGroups
	s.audit = deps.Audit

	router.Post(RouteGet, s.Get)
	router.Post(Path, s.Create)
	router.Put(Path, s.Update)
	router.Delete(Path, s.Delete)
	router.Post(RouteResolve, s.Resolve)
	router.Get(RouteAudit, s.Audit)

	return nil
}

// Get returns the directory groups matching the options in the body.
func (s *Service) Get(c fiber.Ctx) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}

	var opts dirgroupsvc.GetOptions
	if len(c.Body()) > 0 {
		if err = decode(c, &opts); err != nil {
			return err
		}
	}

	res, err := s.groups.Get(c.Context(), caller, opts)
	if err != nil {
		return err //nolint:wrapcheck
	}

	if opts.CountOutput {
		return handler.Result(c, fiber.Map{"count": res.Count})
	}

	return handler.Result(c, res.Groups)
}

// Create stores the directory groups in the body.
func (s *Service) Create(c fiber.Ctx) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}

	var groups []dirgroupsvc.Input
	if err = decode(c, &groups); err != nil {
		return err
	}

	ids, err := s.groups.Create(c.Context(), caller, groups)
	if err != nil {
		return err //nolint:wrapcheck
	}

	return handler.Result(c, handler.IDs{DirGroupIDs: ids})
}

// Update applies the patches in the body.
func (s *Service) Update(c fiber.Ctx) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}

	var patches []dirgroupsvc.Patch
	if err = decode(c, &patches); err != nil {
		return err
	}

	ids, err := s.groups.Update(c.Context(), caller, patches)
	if err != nil {
		return err //nolint:wrapcheck
	}

	return handler.Result(c, handler.IDs{DirGroupIDs: ids})
}

// Delete removes the directory groups whose ids are in the body.
func (s *Service) Delete(c fiber.Ctx) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}

	var ids []uint
	if err = decode(c, &ids); err != nil {
		return err
	}

	deleted, err := s.groups.Delete(c.Context(), caller, ids)
	if err != nil {
		return err //nolint:wrapcheck
	}

	return handler.Result(c, handler.IDs{DirGroupIDs: deleted})
}

// Resolve maps the directory group references in the body to the access they grant.
// Only super admins may resolve, it reveals the configuration of every group.
func (s *Service) Resolve(c fiber.Ctx) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}

	if !caller.IsSuperAdmin() {
		return &dirgroupsvc.PermissionError{Reason: "only super admins can resolve directory groups"}
	}

	var req ResolveRequest
	if err = decode(c, &req); err != nil {
		return err
	}

	res, err := s.groups.Resolve(c.Context(), req.Groups)
	if err != nil {
		return err //nolint:wrapcheck
	}

	return handler.Result(c, res)
}

// Audit returns the audit entries of a directory group, oldest first.
func (s *Service) Audit(c fiber.Ctx) error {
	caller, err := callerOf(c)
	if err != nil {
		return err
	}

	if !caller.IsSuperAdmin() {
		return &dirgroupsvc.PermissionError{Reason: "only super admins can read the audit log"}
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 0)
	if err != nil || id == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid directory group id")
	}

	entries, err := s.audit.List(c.Context(), audit.ResourceDirectoryGroup, uint(id))
	if err != nil {
		return err //nolint:wrapcheck
	}

	return handler.Result(c, entries)
}

func callerOf(c fiber.Ctx) (auth.Caller, error) {
	caller, ok := auth.CallerFrom(c)
	if !ok {
		return auth.Caller{}, fiber.ErrUnauthorized
	}

	return caller, nil
}

func decode(c fiber.Ctx, out any) error {
	if err := c.Bind().JSON(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid JSON body: "+err.Error())
	}

	return nil
}
