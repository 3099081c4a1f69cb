package dirgroup

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuard(t *testing.T) {
	current := rows(
		[3]uint{10, 1, 5}, [3]uint{11, 1, 7},
		[3]uint{20, 2, 5},
	)
	names := map[uint]string{1: "LDAP-Ops", 2: "Helpdesk"}

	testCases := []struct {
		name     string
		changes  Changes
		dropping IDSet
		wantID   uint
		wantName string
	}{
		{
			name:    "no deletions",
			changes: Changes{Insert: []Pair{{1, 9}}},
		},
		{
			name:    "partial deletion keeps a row",
			changes: Changes{DeleteIDs: []uint{10}},
		},
		{
			name:    "replacing all rows",
			changes: Changes{DeleteIDs: []uint{10, 11}, Insert: []Pair{{1, 9}}},
		},
		{
			name:     "removing all rows",
			changes:  Changes{DeleteIDs: []uint{10, 11}},
			wantID:   1,
			wantName: "LDAP-Ops",
		},
		{
			name:     "inserts of another group do not count",
			changes:  Changes{DeleteIDs: []uint{20}, Insert: []Pair{{1, 9}}},
			wantID:   2,
			wantName: "Helpdesk",
		},
		{
			name:     "dropped groups are not checked",
			changes:  Changes{DeleteIDs: []uint{10, 11, 20}},
			dropping: NewIDSet(1, 2),
		},
		{
			name:    "unknown row ids are ignored",
			changes: Changes{DeleteIDs: []uint{99}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := Guard(tc.changes, current, names, tc.dropping)

			if tc.wantName == "" {
				require.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, ErrOrphanGroup)

			var orphan *OrphanGroupError
			require.True(t, errors.As(err, &orphan))
			assert.Equal(t, tc.wantID, orphan.ID)
			assert.Equal(t, tc.wantName, orphan.Name)
		})
	}
}

func TestGuardNameFallback(t *testing.T) {
	err := Guard(Changes{DeleteIDs: []uint{10}}, rows([3]uint{10, 42, 1}), nil, IDSet{})

	var orphan *OrphanGroupError
	require.True(t, errors.As(err, &orphan))
	assert.Equal(t, "42", orphan.Name)
}
