package dirgroup

import (
	"github.com/DirGroup-Admin/DirGroup-Admin/internal/db/models"
)

// LocalGroupRef references an existing local group.
type LocalGroupRef struct {
	ID uint `json:"usrgrpid" validate:"required"`
}

// Input describes a directory group to create.
type Input struct {
	Name        string          `json:"name"    validate:"required,max=64"`
	RoleID      uint            `json:"roleid"  validate:"required"`
	LocalGroups []LocalGroupRef `json:"usrgrps" validate:"required,min=1,unique=ID,dive"`
}

// Patch describes changes to an existing directory group.
// Nil fields are left unchanged. A non-nil LocalGroups replaces the complete
// set of local groups, an empty non-nil slice asks to remove all of them.
type Patch struct {
	ID          uint            `json:"dirgroupid"        validate:"required"`
	Name        *string         `json:"name,omitempty"    validate:"omitnil,min=1,max=64"`
	RoleID      *uint           `json:"roleid,omitempty"  validate:"omitnil,min=1"`
	LocalGroups []LocalGroupRef `json:"usrgrps"           validate:"omitnil,unique=ID,dive"`
}

// DirectoryGroup is a directory group as returned by Get.
type DirectoryGroup struct {
	ID          uint                `json:"dirgroupid"`
	Name        string              `json:"name"`
	RoleID      uint                `json:"roleid"`
	Role        *models.Role        `json:"role,omitempty"`
	LocalGroups []models.LocalGroup `json:"usrgrps,omitempty"`
}

// Snapshot is the audited state of a directory group.
type Snapshot struct {
	ID            uint   `json:"dirgroupid"`
	Name          string `json:"name"`
	RoleID        uint   `json:"roleid"`
	LocalGroupIDs []uint `json:"usrgrpids,omitempty"`
}

func localGroupSet(refs []LocalGroupRef) IDSet {
	set := NewIDSet()
	for _, ref := range refs {
		set.Add(ref.ID)
	}

	return set
}

func snapshotOf(g models.DirectoryGroup, localGroupIDs []uint) Snapshot {
	return Snapshot{
		ID:            g.ID,
		Name:          g.Name,
		RoleID:        g.RoleID,
		LocalGroupIDs: localGroupIDs,
	}
}
