package docset

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

// Store is the persistence collaborator for Save and Load: any keyed blob
// store holding the encoded set. Implementations live in the stores
// subpackage; anything with the same shape works.
type Store interface {
	Save(ctx context.Context, key string, data []byte) error
	Load(ctx context.Context, key string) ([]byte, error)
}

// Set is an ordered collection of uniquely identified records. See the
// package documentation for the full contract. The zero value is not usable;
// construct sets with New or NewFromRecords.
type Set struct {
	index   *orderedIndex
	sorts   *sortRegistry
	pipe    *pipeline
	pending map[DocumentID]struct{}
	codec   Codec
	meta    Metadata
	randID  func() uint64
	timeFn  func() time.Time
}

// Option configures a Set during construction.
type Option func(*Set)

// WithObserver installs the observer receiving will/did hooks. Without it a
// no-op, allow-all observer is used.
func WithObserver(o Observer) Option {
	return func(s *Set) {
		s.pipe.observer = o
	}
}

// WithSink installs the notification sink receiving one change batch per
// logical operation.
func WithSink(sink Sink) Option {
	return func(s *Set) {
		s.pipe.sink = sink
	}
}

// WithCodec replaces the default JSON codec used by Save and Load.
func WithCodec(c Codec) Option {
	return func(s *Set) {
		s.codec = c
	}
}

// WithIDSource sets the random source for identity generation. Mainly for
// deterministic tests.
func WithIDSource(fn func() uint64) Option {
	return func(s *Set) {
		s.randID = fn
	}
}

// WithTimeFunc sets a custom time function for testing.
func WithTimeFunc(fn func() time.Time) Option {
	return func(s *Set) {
		s.timeFn = fn
	}
}

// New creates an empty Set.
func New(opts ...Option) *Set {
	s := &Set{
		index:   newOrderedIndex(),
		sorts:   newSortRegistry(),
		pipe:    newPipeline(),
		pending: make(map[DocumentID]struct{}),
		codec:   JSONCodec{},
		randID:  rand.Uint64,
		timeFn:  func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	now := s.timeFn()
	s.meta = Metadata{
		Version:   storeVersion,
		StoreID:   uuid.New().String(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	return s
}

// NewFromRecords creates a Set seeded with recs, in order. Seeding runs
// through the same insertion path as runtime appends, so a record without an
// identity fails with ErrMissingID and duplicate identities are silently
// dropped, exactly as they would be later.
func NewFromRecords(recs []Record, opts ...Option) (*Set, error) {
	s := New(opts...)
	if err := s.AppendAll(recs); err != nil {
		return nil, err
	}
	return s, nil
}

// Count returns the number of records in the set.
func (s *Set) Count() int { return s.index.count() }

// Contains reports whether id is active in the set.
func (s *Set) Contains(id DocumentID) bool { return s.index.contains(id) }

// IndexOf returns the position of id, resolved through the identity map.
func (s *Set) IndexOf(id DocumentID) (int, bool) { return s.index.indexOf(id) }

// At returns the record at position i, or nil when i is out of range.
func (s *Set) At(i int) Record { return s.index.at(i) }

// First returns the record at position 0, or nil when the set is empty.
func (s *Set) First() Record { return s.index.first() }

// Last returns the record at the final position, or nil when the set is
// empty.
func (s *Set) Last() Record { return s.index.last() }

// IDAfter returns the identity following id in the order, or false at the
// boundary.
func (s *Set) IDAfter(id DocumentID) (DocumentID, bool) { return s.index.idAfter(id) }

// IDBefore returns the identity preceding id in the order, or false at the
// boundary.
func (s *Set) IDBefore(id DocumentID) (DocumentID, bool) { return s.index.idBefore(id) }

// Records returns a copy of the ordered sequence.
func (s *Set) Records() []Record {
	out := make([]Record, len(s.index.seq))
	copy(out, s.index.seq)
	return out
}

// IDs returns the identities in order.
func (s *Set) IDs() []DocumentID {
	out := make([]DocumentID, len(s.index.seq))
	for i, rec := range s.index.seq {
		out[i] = rec.ID()
	}
	return out
}

// Metadata returns the persistence envelope metadata carried by the set.
func (s *Set) Metadata() Metadata { return s.meta }

// Insert places rec at position at, which must be in [0, Count]. It returns
// whether the insert was performed: false with a nil error means the change
// was vetoed or rec's identity was already present (a silent no-op). A zero
// identity fails with ErrMissingID, an invalid position with ErrOutOfBounds;
// neither fires hooks.
func (s *Set) Insert(rec Record, at int) (bool, error) {
	s.pipe.begin(s)
	defer s.pipe.end(s)
	return s.insertOne(rec, at)
}

// Append is Insert at Count.
func (s *Set) Append(rec Record) (bool, error) {
	s.pipe.begin(s)
	defer s.pipe.end(s)
	return s.insertOne(rec, s.index.count())
}

// AppendAll appends each record in order as one logical operation. An
// append of N records fires one will-start/did-end pair and delivers one
// batch with N insert entries (fewer if some were vetoed or duplicates).
func (s *Set) AppendAll(recs []Record) error {
	s.pipe.begin(s)
	defer s.pipe.end(s)
	for _, rec := range recs {
		if _, err := s.insertOne(rec, s.index.count()); err != nil {
			return err
		}
	}
	return nil
}

func (s *Set) insertOne(rec Record, at int) (bool, error) {
	if rec.ID() == 0 {
		return false, ErrMissingID
	}
	if at < 0 || at > s.index.count() {
		return false, fmt.Errorf("%w: position %d with %d records", ErrOutOfBounds, at, s.index.count())
	}
	if !s.pipe.observer.WillInsert(s, rec, at) {
		s.pipe.observer.DidInsert(s, rec, at, false)
		return false, nil
	}
	performed, err := s.index.insert(rec, at)
	if err != nil {
		return false, err
	}
	if performed {
		delete(s.pending, rec.ID())
		s.pipe.recordInsert(rec, at)
	}
	s.pipe.observer.DidInsert(s, rec, at, performed)
	return performed, nil
}

// Remove removes the record matching rec's identity. Removing an absent
// identity is a silent no-op: the method returns (nil, false) and the did
// hook reports performed=false.
func (s *Set) Remove(rec Record) (Record, bool) {
	s.pipe.begin(s)
	defer s.pipe.end(s)
	return s.removeOne(rec)
}

func (s *Set) removeOne(rec Record) (Record, bool) {
	if !s.pipe.observer.WillRemove(s, rec) {
		s.pipe.observer.DidRemove(s, rec, -1, false)
		return nil, false
	}
	at, present := s.index.indexOf(rec.ID())
	if !present {
		s.pipe.observer.DidRemove(s, rec, -1, false)
		return nil, false
	}
	removed := s.index.removeAt(at)
	s.pipe.recordDelete(removed, at)
	s.pipe.observer.DidRemove(s, removed, at, true)
	return removed, true
}

// RemoveAll clears the sequence, the identity map, and the pending set in
// one step. The observer sees WillRemoveAll/DidRemoveAll instead of
// per-record hooks; the batch lists every removed record with its former
// position.
func (s *Set) RemoveAll() {
	s.pipe.begin(s)
	defer s.pipe.end(s)
	if !s.pipe.observer.WillRemoveAll(s) {
		s.pipe.observer.DidRemoveAll(s, false)
		return
	}
	for i, rec := range s.index.seq {
		s.pipe.recordDelete(rec, i)
	}
	s.index.removeAll()
	s.pending = make(map[DocumentID]struct{})
	s.pipe.observer.DidRemoveAll(s, true)
}

// Replace swaps the record matching old's identity for rec, preserving its
// position. It fails with ErrNotFound when old is not present. rec's
// identity need not match old's, but it must be nonzero, and when it differs
// it must not already be held by another record - that case is a silent
// no-op reported through the did hook.
func (s *Set) Replace(old, rec Record) error {
	at, present := s.index.indexOf(old.ID())
	if !present {
		return fmt.Errorf("%w: id %d", ErrNotFound, old.ID())
	}
	return s.replaceAt(old, rec, at)
}

// ReplaceAt is Replace with an explicit position, which must name old's
// slot. It fails with ErrOutOfBounds for positions outside [0, Count) and
// ErrNotFound when the record at that position is not old.
func (s *Set) ReplaceAt(old, rec Record, at int) error {
	if at < 0 || at >= s.index.count() {
		return fmt.Errorf("%w: position %d with %d records", ErrOutOfBounds, at, s.index.count())
	}
	if s.index.seq[at].ID() != old.ID() {
		return fmt.Errorf("%w: id %d not at position %d", ErrNotFound, old.ID(), at)
	}
	return s.replaceAt(old, rec, at)
}

func (s *Set) replaceAt(old, rec Record, at int) error {
	if rec.ID() == 0 {
		return ErrMissingID
	}
	s.pipe.begin(s)
	defer s.pipe.end(s)
	if !s.pipe.observer.WillReplace(s, old, rec, at) {
		s.pipe.observer.DidReplace(s, old, rec, at, false)
		return nil
	}
	if rec.ID() != old.ID() && s.index.contains(rec.ID()) {
		// would duplicate an identity held elsewhere; same silent no-op as
		// a duplicate insert
		s.pipe.observer.DidReplace(s, old, rec, at, false)
		return nil
	}
	s.index.replaceAt(at, rec)
	delete(s.pending, rec.ID())
	s.pipe.recordMove(rec, at)
	s.pipe.observer.DidReplace(s, old, rec, at, true)
	return nil
}

// Update records a scalar property change on a member record. The set does
// not touch the record itself - the caller already mutated it - it only runs
// the hooks and adds a (property, old, new) entry to the batch. Updating a
// record that is not a member is a silent no-op.
func (s *Set) Update(rec Record, property string, old, new interface{}) bool {
	s.pipe.begin(s)
	defer s.pipe.end(s)
	if !s.pipe.observer.WillUpdate(s, rec, property, old, new) {
		s.pipe.observer.DidUpdate(s, rec, property, old, new, false)
		return false
	}
	if !s.index.contains(rec.ID()) {
		s.pipe.observer.DidUpdate(s, rec, property, old, new, false)
		return false
	}
	s.pipe.recordUpdate(rec, property, old, new)
	s.pipe.observer.DidUpdate(s, rec, property, old, new, true)
	return true
}

// Save encodes the set and writes it to store under key.
func (s *Set) Save(ctx context.Context, store Store, key string) error {
	data, err := s.codec.Encode(s)
	if err != nil {
		return fmt.Errorf("failed to encode document set: %w", err)
	}
	if err := store.Save(ctx, key, data); err != nil {
		return fmt.Errorf("failed to save document set: %w", err)
	}
	return nil
}

// Load reads key from store and decodes it into the set, replacing its
// contents. Decoding re-inserts records in their stored order through the
// normal insertion path, so the usual invariants hold afterwards. Load is
// one logical operation.
func (s *Set) Load(ctx context.Context, store Store, key string) error {
	data, err := store.Load(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to load document set: %w", err)
	}
	if err := s.codec.Decode(data, s); err != nil {
		return fmt.Errorf("failed to decode document set: %w", err)
	}
	return nil
}
