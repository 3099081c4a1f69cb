package handler

import (
	"github.com/gofiber/fiber/v3"
	"github.com/pkg/errors"

	"github.com/DirGroup-Admin/DirGroup-Admin/internal/db/controller/localgroup"
	"github.com/DirGroup-Admin/DirGroup-Admin/internal/dirgroup"
)

// Error codes of the error body.
const (
	CodeInvalidParams = -32602
	CodeApplication   = -32500
	CodeInternal      = -32603
)

// Error is the body of a failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    string `json:"data,omitempty"`
}

// Result writes v as the result of a successful request.
func Result(c fiber.Ctx, v any) error {
	return c.JSON(fiber.Map{"result": v})
}

// IDs is the result of a write, the ids of the affected directory groups.
type IDs struct {
	DirGroupIDs []uint `json:"dirgroupids"`
}

// LocalGroupIDs is the result of a local group write.
type LocalGroupIDs struct {
	UsrGrpIDs []uint `json:"usrgrpids"`
}

// ErrorResponse maps err to an HTTP status and error body.
// Errors without a known kind are reported as internal errors without details.
func ErrorResponse(err error) (int, Error) {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code, Error{Code: fiberErr.Code, Message: fiberErr.Message}
	}

	switch {
	case errors.Is(err, dirgroup.ErrPermissionDenied):
		return fiber.StatusForbidden, Error{Code: CodeApplication, Message: "No permissions.", Data: err.Error()}
	case errors.Is(err, dirgroup.ErrValidation):
		return fiber.StatusBadRequest, Error{Code: CodeInvalidParams, Message: "Invalid params.", Data: err.Error()}
	case errors.Is(err, dirgroup.ErrDuplicateName), errors.Is(err, dirgroup.ErrOrphanGroup):
		return fiber.StatusConflict, Error{Code: CodeApplication, Message: "Application error.", Data: err.Error()}
	case errors.Is(err, dirgroup.ErrUnknownReference):
		return fiber.StatusUnprocessableEntity, Error{Code: CodeApplication, Message: "Application error.", Data: err.Error()}
	case errors.Is(err, localgroup.ErrLocalGroupInUse):
		return fiber.StatusConflict, Error{Code: CodeApplication, Message: "Application error.", Data: err.Error()}
	case errors.Is(err, dirgroup.ErrNoDirectoryGroup), errors.Is(err, localgroup.ErrLocalGroupNotFound):
		return fiber.StatusNotFound, Error{Code: CodeApplication, Message: "Application error.", Data: err.Error()}
	default:
		return fiber.StatusInternalServerError, Error{Code: CodeInternal, Message: "Internal error."}
	}
}
