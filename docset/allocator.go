package docset

import "fmt"

// maxGenerateAttempts bounds the random search for a free identity. The
// identity space is 64 bits wide, so hitting the bound means the random
// source is broken, not that the set is full.
const maxGenerateAttempts = 64

// Create returns a new Document carrying a freshly allocated identity. The
// identity is reserved in the pending set until the document is inserted or
// discarded, so consecutive Create calls never hand out the same value.
func (s *Set) Create() (*Document, error) {
	id, err := s.generateID()
	if err != nil {
		return nil, err
	}
	s.pending[id] = struct{}{}
	now := s.timeFn()
	return &Document{DocID: id, CreatedAt: now, UpdatedAt: now}, nil
}

// CreateWithHint is Create with a preferred identity. The hint is used when
// it is nonzero and neither active nor pending; otherwise allocation falls
// back to the random search, exactly as with Create.
func (s *Set) CreateWithHint(hint DocumentID) (*Document, error) {
	if hint != 0 && !s.idInUse(hint) {
		s.pending[hint] = struct{}{}
		now := s.timeFn()
		return &Document{DocID: hint, CreatedAt: now, UpdatedAt: now}, nil
	}
	return s.Create()
}

// CreateWithID returns a new Document carrying the requested identity. It
// fails with ErrExistingID when the identity is already active in the set or
// pending from an earlier Create, and with ErrMissingID for zero.
func (s *Set) CreateWithID(id DocumentID) (*Document, error) {
	if id == 0 {
		return nil, ErrMissingID
	}
	if s.idInUse(id) {
		return nil, fmt.Errorf("%w: %d", ErrExistingID, id)
	}
	s.pending[id] = struct{}{}
	now := s.timeFn()
	return &Document{DocID: id, CreatedAt: now, UpdatedAt: now}, nil
}

// Register assigns an identity to an already-constructed, identity-less
// record and reserves it in the pending set. A record that already carries a
// nonzero identity keeps it; registration never reassigns. The hint is used
// when it is nonzero and free, otherwise a fresh identity is generated.
func (s *Set) Register(rec Record, hint DocumentID) error {
	if rec.ID() != 0 {
		return nil
	}
	id := hint
	if id == 0 || s.idInUse(id) {
		generated, err := s.generateID()
		if err != nil {
			return err
		}
		id = generated
	}
	rec.SetID(id)
	s.pending[id] = struct{}{}
	return nil
}

// DiscardPending abandons an identity reserved by Create or Register without
// inserting its record, freeing it for reallocation.
func (s *Set) DiscardPending(id DocumentID) {
	delete(s.pending, id)
}

// idInUse checks the active index and the pending set jointly: a reserved
// but not-yet-inserted identity is just as unusable as an active one.
func (s *Set) idInUse(id DocumentID) bool {
	if s.index.contains(id) {
		return true
	}
	_, pending := s.pending[id]
	return pending
}

func (s *Set) generateID() (DocumentID, error) {
	for attempt := 0; attempt < maxGenerateAttempts; attempt++ {
		id := DocumentID(s.randID())
		if id == 0 || s.idInUse(id) {
			continue
		}
		return id, nil
	}
	return 0, fmt.Errorf("%w after %d attempts", ErrGenerateID, maxGenerateAttempts)
}
