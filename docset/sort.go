package docset

import "sort"

// Comparator reports whether a may precede or tie b: a non-strict "not
// after" predicate over records. Comparators must describe a total preorder;
// the set does not verify transitivity, and a non-transitive comparator
// yields an unspecified (but never crashing) order.
type Comparator func(a, b Record) bool

// sortRegistry holds the named comparators and the active sort selector.
// An empty active id means positional (manual) ordering.
type sortRegistry struct {
	comparators map[string]Comparator
	active      string
}

func newSortRegistry() *sortRegistry {
	return &sortRegistry{comparators: make(map[string]Comparator)}
}

// RegisterSort adds or replaces the comparator registered under sortID.
func (s *Set) RegisterSort(sortID string, cmp Comparator) {
	s.sorts.comparators[sortID] = cmp
}

// UnregisterSort removes the comparator registered under sortID. The active
// sort id is left untouched; with its comparator gone the set behaves as if
// no sort were active.
func (s *Set) UnregisterSort(sortID string) {
	delete(s.sorts.comparators, sortID)
}

// ClearSorts removes every registered comparator.
func (s *Set) ClearSorts() {
	s.sorts.comparators = make(map[string]Comparator)
}

// SortComparator returns the comparator registered under sortID, or nil.
func (s *Set) SortComparator(sortID string) Comparator {
	return s.sorts.comparators[sortID]
}

// ActiveComparator returns the comparator for the active sort id, or nil
// when no sort id is active or none is registered under it.
func (s *Set) ActiveComparator() Comparator {
	if s.sorts.active == "" {
		return nil
	}
	return s.sorts.comparators[s.sorts.active]
}

// ActiveSortID returns the currently active sort id, or "" for positional
// ordering.
func (s *Set) ActiveSortID() string {
	return s.sorts.active
}

// SetActiveSortID selects the sort policy governing Add insertion order.
// Switching to a different registered id stably resorts the existing
// records; every record whose position changed is reported as an updated
// (record, new position) change in a single batch, bracketed by its own
// will-start/did-end pair.
func (s *Set) SetActiveSortID(sortID string) {
	if sortID == s.sorts.active {
		return
	}
	s.sorts.active = sortID
	cmp := s.ActiveComparator()
	if cmp == nil || s.index.count() < 2 {
		return
	}
	s.resort(cmp)
}

func (s *Set) resort(cmp Comparator) {
	s.pipe.begin(s)
	defer s.pipe.end(s)

	before := make(map[DocumentID]int, s.index.count())
	for i, rec := range s.index.seq {
		before[rec.ID()] = i
	}
	sort.SliceStable(s.index.seq, func(i, j int) bool {
		a, b := s.index.seq[i], s.index.seq[j]
		// strict "a before b": a not-after b, but not the tie case
		return cmp(a, b) && !cmp(b, a)
	})
	s.index.reindex(0)
	for i, rec := range s.index.seq {
		if before[rec.ID()] != i {
			s.pipe.recordMove(rec, i)
		}
	}
}

// Add inserts rec at the position dictated by the active sort policy: the
// first position whose existing record does not precede-or-tie rec. With no
// active sort, Add degenerates to Append. Duplicate identities are silent
// no-ops, as with Insert.
func (s *Set) Add(rec Record) (bool, error) {
	s.pipe.begin(s)
	defer s.pipe.end(s)
	return s.addOne(rec)
}

// AddAll adds each record in order as one logical operation: one
// will-start/did-end pair and at most one change batch for the whole slice.
func (s *Set) AddAll(recs []Record) error {
	s.pipe.begin(s)
	defer s.pipe.end(s)
	for _, rec := range recs {
		if _, err := s.addOne(rec); err != nil {
			return err
		}
	}
	return nil
}

func (s *Set) addOne(rec Record) (bool, error) {
	cmp := s.ActiveComparator()
	at := s.index.count()
	if cmp != nil {
		// The sequence is ordered under cmp, so binary search finds the
		// insertion-sort position.
		at = sort.Search(s.index.count(), func(i int) bool {
			return !cmp(s.index.seq[i], rec)
		})
	}
	return s.insertOne(rec, at)
}
