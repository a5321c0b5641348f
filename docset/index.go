package docset

import "fmt"

// orderedIndex is the dual structure backing a Set: an ordered sequence of
// records plus an identity-to-position map. The two are kept consistent at
// all times - every identity in the map names exactly one position and no
// identity appears twice in the sequence.
type orderedIndex struct {
	seq []Record
	pos map[DocumentID]int
}

func newOrderedIndex() *orderedIndex {
	return &orderedIndex{
		pos: make(map[DocumentID]int),
	}
}

func (x *orderedIndex) count() int {
	return len(x.seq)
}

func (x *orderedIndex) contains(id DocumentID) bool {
	_, ok := x.pos[id]
	return ok
}

func (x *orderedIndex) indexOf(id DocumentID) (int, bool) {
	p, ok := x.pos[id]
	return p, ok
}

func (x *orderedIndex) at(i int) Record {
	if i < 0 || i >= len(x.seq) {
		return nil
	}
	return x.seq[i]
}

func (x *orderedIndex) first() Record {
	if len(x.seq) == 0 {
		return nil
	}
	return x.seq[0]
}

func (x *orderedIndex) last() Record {
	if len(x.seq) == 0 {
		return nil
	}
	return x.seq[len(x.seq)-1]
}

// idAfter returns the identity at the position following id's, or false at
// the boundary or when id is not present.
func (x *orderedIndex) idAfter(id DocumentID) (DocumentID, bool) {
	p, ok := x.pos[id]
	if !ok || p+1 >= len(x.seq) {
		return 0, false
	}
	return x.seq[p+1].ID(), true
}

// idBefore returns the identity at the position preceding id's, or false at
// the boundary or when id is not present.
func (x *orderedIndex) idBefore(id DocumentID) (DocumentID, bool) {
	p, ok := x.pos[id]
	if !ok || p == 0 {
		return 0, false
	}
	return x.seq[p-1].ID(), true
}

// insert places rec at position at, which must be in [0, count]. Inserting a
// record whose identity is already present is a silent no-op reported as
// (false, nil). A zero identity fails with ErrMissingID.
func (x *orderedIndex) insert(rec Record, at int) (bool, error) {
	id := rec.ID()
	if id == 0 {
		return false, ErrMissingID
	}
	if at < 0 || at > len(x.seq) {
		return false, fmt.Errorf("%w: position %d with %d records", ErrOutOfBounds, at, len(x.seq))
	}
	if _, exists := x.pos[id]; exists {
		return false, nil
	}
	x.seq = append(x.seq, nil)
	copy(x.seq[at+1:], x.seq[at:])
	x.seq[at] = rec
	x.reindex(at)
	return true, nil
}

// removeAt removes and returns the record at position at, which must be
// valid. The caller resolves identity to position first.
func (x *orderedIndex) removeAt(at int) Record {
	rec := x.seq[at]
	delete(x.pos, rec.ID())
	x.seq = append(x.seq[:at], x.seq[at+1:]...)
	x.reindex(at)
	return rec
}

func (x *orderedIndex) removeAll() {
	x.seq = nil
	x.pos = make(map[DocumentID]int)
}

// replaceAt swaps the record at position at for rec, updating the identity
// map when the identities differ. The caller has already validated at.
func (x *orderedIndex) replaceAt(at int, rec Record) {
	old := x.seq[at]
	if old.ID() != rec.ID() {
		delete(x.pos, old.ID())
	}
	x.seq[at] = rec
	x.pos[rec.ID()] = at
}

// reindex rebuilds the identity map for positions from onward after the
// sequence has shifted.
func (x *orderedIndex) reindex(from int) {
	for i := from; i < len(x.seq); i++ {
		x.pos[x.seq[i].ID()] = i
	}
}
