package dirgroup

import (
	"strconv"

	"github.com/DirGroup-Admin/DirGroup-Admin/internal/db/models"
)

// Guard fails with an *OrphanGroupError when applying changes would leave a
// directory group that currently has local groups without any.
// current must hold every association row of the directory groups touched by
// changes, as read before any write. Groups in dropping are being deleted as a
// whole and are not checked. names maps directory group ids to their names
// for the error message.
func Guard(changes Changes, current []models.Membership, names map[uint]string, dropping IDSet) error {
	if len(changes.DeleteIDs) == 0 {
		return nil
	}

	var (
		owner    = make(map[uint]uint, len(current))
		total    = make(map[uint]int)
		deleted  = make(map[uint]int)
		inserted = make(map[uint]int)
		affected IDSet
	)

	for _, row := range current {
		owner[row.ID] = row.DirectoryGroupID
		total[row.DirectoryGroupID]++
	}

	for _, id := range changes.DeleteIDs {
		dirGroupID, ok := owner[id]
		if !ok {
			continue
		}

		deleted[dirGroupID]++
		affected.Add(dirGroupID)
	}

	for _, pair := range changes.Insert {
		inserted[pair.DirectoryGroupID]++
	}

	for _, dirGroupID := range affected.Values() {
		if dropping.Has(dirGroupID) || total[dirGroupID] == 0 {
			continue
		}

		if total[dirGroupID]-deleted[dirGroupID]+inserted[dirGroupID] <= 0 {
			name, ok := names[dirGroupID]
			if !ok {
				name = strconv.FormatUint(uint64(dirGroupID), 10)
			}

			return &OrphanGroupError{ID: dirGroupID, Name: name}
		}
	}

	return nil
}
