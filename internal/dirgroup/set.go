package dirgroup

import (
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// IDSet is a sorted set of identifiers without duplicates.
// The zero value is an empty set ready to use.
type IDSet struct {
	set *treeset.Set
}

// NewIDSet returns a set holding ids.
func NewIDSet(ids ...uint) IDSet {
	var s IDSet
	s.Add(ids...)

	return s
}

// Add inserts ids into the set.
func (s *IDSet) Add(ids ...uint) {
	if s.set == nil {
		s.set = treeset.NewWith(utils.UIntComparator)
	}

	for _, id := range ids {
		s.set.Add(id)
	}
}

// Remove deletes id from the set.
func (s *IDSet) Remove(id uint) {
	if s.set != nil {
		s.set.Remove(id)
	}
}

// Has reports whether id is in the set.
func (s IDSet) Has(id uint) bool {
	return s.set != nil && s.set.Contains(id)
}

// Len returns the number of ids in the set.
func (s IDSet) Len() int {
	if s.set == nil {
		return 0
	}

	return s.set.Size()
}

// Values returns the ids in ascending order.
func (s IDSet) Values() []uint {
	out := make([]uint, 0, s.Len())
	if s.set == nil {
		return out
	}

	for _, v := range s.set.Values() {
		out = append(out, v.(uint)) //nolint:forcetypeassert // only uint values are ever added
	}

	return out
}

// Clone returns an independent copy of the set.
func (s IDSet) Clone() IDSet {
	return NewIDSet(s.Values()...)
}
