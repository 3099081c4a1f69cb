package dirgroup

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrPermissionDenied is returned when the caller lacks the privilege for an
	// operation or references a directory group that does not exist. Both cases
	// share one error so callers cannot discover which objects exist.
	ErrPermissionDenied = errors.New("no permissions to referred object or it does not exist")

	// ErrValidation is returned when the request does not match the expected schema.
	ErrValidation = errors.New("invalid parameter")

	// ErrDuplicateName is returned when a directory group name is already taken.
	ErrDuplicateName = errors.New("directory group already exists")

	// ErrUnknownReference is returned when a referenced role or local group does not exist.
	ErrUnknownReference = errors.New("referenced object is not available")

	// ErrOrphanGroup is returned when a change would leave a directory group without local groups.
	ErrOrphanGroup = errors.New("directory group cannot be without local groups")

	// ErrNoDirectoryGroup is returned by Resolve when no reference matches a directory group.
	ErrNoDirectoryGroup = errors.New("no matching directory group")
)

// PermissionError reports a failed authorization gate or existence check.
type PermissionError struct {
	Reason string
}

func (e *PermissionError) Error() string {
	if e.Reason == "" {
		return ErrPermissionDenied.Error()
	}

	return e.Reason
}

// Unwrap returns ErrPermissionDenied.
func (e *PermissionError) Unwrap() error { return ErrPermissionDenied }

// ValidationError reports a schema violation at Path, e.g. "/1/usrgrps/2/usrgrpid".
type ValidationError struct {
	Path   string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid parameter %q: %s", e.Path, e.Reason)
}

// Unwrap returns ErrValidation.
func (e *ValidationError) Unwrap() error { return ErrValidation }

// DuplicateNameError names the directory group name that is already taken.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("directory group %q already exists", e.Name)
}

// Unwrap returns ErrDuplicateName.
func (e *DuplicateNameError) Unwrap() error { return ErrDuplicateName }

// ReferenceKind names the type of a referenced object.
type ReferenceKind string

const (
	// RefRole is a role reference.
	RefRole ReferenceKind = "role"
	// RefLocalGroup is a local group reference.
	RefLocalGroup ReferenceKind = "local group"
)

// UnknownReferenceError names the referenced object that does not exist.
type UnknownReferenceError struct {
	Kind ReferenceKind
	ID   uint
}

func (e *UnknownReferenceError) Error() string {
	return fmt.Sprintf("%s with ID \"%d\" is not available", e.Kind, e.ID)
}

// Unwrap returns ErrUnknownReference.
func (e *UnknownReferenceError) Unwrap() error { return ErrUnknownReference }

// OrphanGroupError names the directory group that would lose all local groups.
type OrphanGroupError struct {
	ID   uint
	Name string
}

func (e *OrphanGroupError) Error() string {
	return fmt.Sprintf("directory group %q cannot be without local groups", e.Name)
}

// Unwrap returns ErrOrphanGroup.
func (e *OrphanGroupError) Unwrap() error { return ErrOrphanGroup }
