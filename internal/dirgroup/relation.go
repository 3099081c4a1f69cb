package dirgroup

import (
	"cmp"
	"slices"

	"github.com/DirGroup-Admin/DirGroup-Admin/internal/db/models"
)

// Pair is one (directory group, local group) association.
type Pair struct {
	DirectoryGroupID uint
	LocalGroupID     uint
}

// Desired maps a directory group to the complete set of local groups it
// should be associated with. Directory groups that are not keys are left alone.
type Desired map[uint]IDSet

// Changes is the minimal set of writes turning the persisted relation into
// the desired one.
type Changes struct {
	// Insert lists the associations to create.
	Insert []Pair
	// DeleteIDs lists the ids of the association rows to remove.
	DeleteIDs []uint
}

// Empty reports whether no write is needed.
func (c Changes) Empty() bool {
	return len(c.Insert) == 0 && len(c.DeleteIDs) == 0
}

// Diff computes the changes between the desired relation and the current rows.
// Rows of directory groups missing from desired are ignored. desired is not modified.
func Diff(desired Desired, current []models.Membership) Changes {
	missing := make(map[uint]IDSet, len(desired))
	for dirGroupID, localGroupIDs := range desired {
		missing[dirGroupID] = localGroupIDs.Clone()
	}

	var changes Changes

	for _, row := range current {
		wanted, ok := missing[row.DirectoryGroupID]
		if !ok {
			continue
		}

		if wanted.Has(row.LocalGroupID) {
			wanted.Remove(row.LocalGroupID)
			continue
		}

		changes.DeleteIDs = append(changes.DeleteIDs, row.ID)
	}

	for dirGroupID, localGroupIDs := range missing {
		for _, localGroupID := range localGroupIDs.Values() {
			changes.Insert = append(changes.Insert, Pair{DirectoryGroupID: dirGroupID, LocalGroupID: localGroupID})
		}
	}

	slices.SortFunc(changes.Insert, func(a, b Pair) int {
		return cmp.Or(
			cmp.Compare(a.DirectoryGroupID, b.DirectoryGroupID),
			cmp.Compare(a.LocalGroupID, b.LocalGroupID),
		)
	})
	slices.Sort(changes.DeleteIDs)

	return changes
}
