package fsm

import "sort"

// EndIDSet is the set of end ids attached to an accepting state. End ids
// carry acceptance provenance: which alternative of a union matched. The
// zero value is the empty set.
//
// EndIDSet is kept sorted and deduplicated so that two sets built by
// different code paths (e.g. determinisation's union-of-members vs.
// collation's union-of-originals) compare equal with Equal and produce
// the same EARLIEST id without re-sorting at read time.
type EndIDSet []uint64

// NewEndIDSet returns a set containing the given ids.
func NewEndIDSet(ids ...uint64) EndIDSet {
	var s EndIDSet
	for _, id := range ids {
		s = s.add(id)
	}
	return s
}

func (s EndIDSet) add(id uint64) EndIDSet {
	i := sort.Search(len(s), func(i int) bool { return s[i] >= id })
	if i < len(s) && s[i] == id {
		return s
	}
	s = append(s, 0)
	copy(s[i+1:], s[i:])
	s[i] = id
	return s
}

// Union returns the set union of s and o, newly allocated.
func (s EndIDSet) Union(o EndIDSet) EndIDSet {
	if len(s) == 0 {
		return append(EndIDSet(nil), o...)
	}
	if len(o) == 0 {
		return append(EndIDSet(nil), s...)
	}
	out := make(EndIDSet, 0, len(s)+len(o))
	i, j := 0, 0
	for i < len(s) && j < len(o) {
		switch {
		case s[i] < o[j]:
			out = append(out, s[i])
			i++
		case s[i] > o[j]:
			out = append(out, o[j])
			j++
		default:
			out = append(out, s[i])
			i++
			j++
		}
	}
	out = append(out, s[i:]...)
	out = append(out, o[j:]...)
	return out
}

// Equal reports whether s and o contain the same ids.
func (s EndIDSet) Equal(o EndIDSet) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i] != o[i] {
			return false
		}
	}
	return true
}

// Earliest returns the lowest-valued end id and whether the set is
// non-empty.
func (s EndIDSet) Earliest() (uint64, bool) {
	if len(s) == 0 {
		return 0, false
	}
	return s[0], true
}
