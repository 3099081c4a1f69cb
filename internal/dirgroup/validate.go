package dirgroup

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/DirGroup-Admin/DirGroup-Admin/internal/auth"
	"github.com/DirGroup-Admin/DirGroup-Admin/internal/db/models"
)

// newValidator returns a validator reporting fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

func requireSuperAdmin(caller auth.Caller, verb string) error {
	if caller.IsSuperAdmin() {
		return nil
	}

	return &PermissionError{Reason: fmt.Sprintf("only super admins can %s directory groups", verb)}
}

// checkShape validates item, prefix is its path in the request.
func (s *Service) checkShape(prefix string, item any) error {
	err := s.validate.Struct(item)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return errors.Wrap(err, "failed to validate input")
	}

	fe := fieldErrs[0]

	path := prefix
	if _, ns, ok := strings.Cut(fe.Namespace(), "."); ok {
		path += "/" + fieldPath(ns)
	}

	if path == "" {
		path = "/"
	}

	return &ValidationError{Path: path, Reason: describe(fe)}
}

// itemPath returns the one-based path of the batch element at index.
func itemPath(index int) string {
	return "/" + strconv.Itoa(index+1)
}

// fieldPath turns a validator namespace such as "usrgrps[0].usrgrpid" into
// the one-based path "usrgrps/1/usrgrpid".
func fieldPath(namespace string) string {
	var b strings.Builder

	for i := 0; i < len(namespace); i++ {
		switch namespace[i] {
		case '.':
			b.WriteByte('/')
		case '[':
			end := strings.IndexByte(namespace[i:], ']')
			if end < 0 {
				b.WriteString(namespace[i:])
				return b.String()
			}

			index, err := strconv.Atoi(namespace[i+1 : i+end])
			if err != nil {
				b.WriteString(namespace[i : i+end+1])
			} else {
				b.WriteByte('/')
				b.WriteString(strconv.Itoa(index + 1))
			}

			i += end
		default:
			b.WriteByte(namespace[i])
		}
	}

	return b.String()
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "the parameter is missing or empty"
	case "min":
		if fe.Kind() == reflect.Slice || fe.Kind() == reflect.String {
			return "cannot be empty"
		}

		return "a positive number is expected"
	case "max":
		return "value is too long"
	case "unique":
		return "contains duplicate values"
	case "oneof":
		return "value must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return fmt.Sprintf("failed on the %q rule", fe.Tag())
	}
}

func (s *Service) validateCreate(groups []Input) error {
	if len(groups) == 0 {
		return &ValidationError{Path: "/", Reason: "cannot be empty"}
	}

	for i := range groups {
		if err := s.checkShape(itemPath(i), &groups[i]); err != nil {
			return err
		}
	}

	names := make([]string, 0, len(groups))
	for i := range groups {
		names = append(names, groups[i].Name)
	}

	return checkBatchNames(names)
}

func (s *Service) validateUpdate(patches []Patch) error {
	if len(patches) == 0 {
		return &ValidationError{Path: "/", Reason: "cannot be empty"}
	}

	seen := make(map[uint]struct{}, len(patches))
	names := make([]string, 0, len(patches))

	for i := range patches {
		if err := s.checkShape(itemPath(i), &patches[i]); err != nil {
			return err
		}

		if _, ok := seen[patches[i].ID]; ok {
			return &ValidationError{
				Path:   itemPath(i),
				Reason: fmt.Sprintf("value (dirgroupid)=(%d) already exists", patches[i].ID),
			}
		}

		seen[patches[i].ID] = struct{}{}

		if patches[i].Name != nil {
			names = append(names, *patches[i].Name)
		}
	}

	return checkBatchNames(names)
}

func validateDelete(ids []uint) error {
	if len(ids) == 0 {
		return &ValidationError{Path: "/", Reason: "cannot be empty"}
	}

	seen := make(map[uint]struct{}, len(ids))

	for i, id := range ids {
		path := itemPath(i)

		if id == 0 {
			return &ValidationError{Path: path, Reason: "a positive number is expected"}
		}

		if _, ok := seen[id]; ok {
			return &ValidationError{Path: path, Reason: fmt.Sprintf("value (%d) already exists", id)}
		}

		seen[id] = struct{}{}
	}

	return nil
}

// checkBatchNames fails on the first name that appears twice in one request.
func checkBatchNames(names []string) error {
	seen := make(map[string]struct{}, len(names))

	for _, name := range names {
		if _, ok := seen[name]; ok {
			return &DuplicateNameError{Name: name}
		}

		seen[name] = struct{}{}
	}

	return nil
}

// duplicateNameError turns a unique index violation into a DuplicateNameError,
// nil for any other error. MySQL collations compare names case-insensitively,
// so the index can reject names the checks above accepted. The reported name
// is the first of names that folds onto an earlier one, else the first name.
func duplicateNameError(err error, names []string) error {
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}

	seen := make(map[string]struct{}, len(names))

	for _, name := range names {
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			return &DuplicateNameError{Name: name}
		}

		seen[key] = struct{}{}
	}

	if len(names) == 0 {
		return &DuplicateNameError{}
	}

	return &DuplicateNameError{Name: names[0]}
}

// checkNamesAvailable fails if any of names is used by a stored directory group.
func checkNamesAvailable(tx *gorm.DB, names []string) error {
	if len(names) == 0 {
		return nil
	}

	var taken []models.DirectoryGroup
	if err := tx.Select("id", "name").Where("name IN ?", names).Limit(1).Find(&taken).Error; err != nil {
		return errors.Wrap(err, "failed to check directory group names")
	}

	if len(taken) > 0 {
		return &DuplicateNameError{Name: taken[0].Name}
	}

	return nil
}

// checkRoles fails naming the first of ids without a stored role.
func checkRoles(tx *gorm.DB, ids []uint) error {
	found, err := existingIDs(tx, &models.Role{}, ids)
	if err != nil {
		return errors.Wrap(err, "failed to check roles")
	}

	for _, id := range ids {
		if !found.Has(id) {
			return &UnknownReferenceError{Kind: RefRole, ID: id}
		}
	}

	return nil
}

// checkLocalGroups fails naming the first of ids without a stored local group.
func checkLocalGroups(tx *gorm.DB, ids []uint) error {
	found, err := existingIDs(tx, &models.LocalGroup{}, ids)
	if err != nil {
		return errors.Wrap(err, "failed to check local groups")
	}

	for _, id := range ids {
		if !found.Has(id) {
			return &UnknownReferenceError{Kind: RefLocalGroup, ID: id}
		}
	}

	return nil
}

func existingIDs(tx *gorm.DB, model any, ids []uint) (IDSet, error) {
	var found []uint
	if len(ids) == 0 {
		return IDSet{}, nil
	}

	if err := tx.Model(model).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return IDSet{}, err //nolint:wrapcheck
	}

	return NewIDSet(found...), nil
}

// protectedRole returns the read-only super admin role, nil if none is defined.
func protectedRole(tx *gorm.DB) (*models.Role, error) {
	var roles []models.Role

	err := tx.Where("type = ? AND readonly = ?", models.UserTypeSuperAdmin, true).
		Order("id").Limit(1).Find(&roles).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to load protected role")
	}

	if len(roles) == 0 {
		return nil, nil //nolint:nilnil
	}

	return &roles[0], nil
}

// referencedLocalGroups returns the distinct local group ids of refs in order of first appearance.
func referencedLocalGroups(refLists ...[]LocalGroupRef) []uint {
	var (
		seen IDSet
		out  []uint
	)

	for _, refs := range refLists {
		for _, ref := range refs {
			if !seen.Has(ref.ID) {
				seen.Add(ref.ID)
				out = append(out, ref.ID)
			}
		}
	}

	return out
}
