package docset

// Change describes one structural event inside a batch. Insert and delete
// entries carry the record and its position; scalar update entries carry the
// property name with its old and new values; positional update entries
// (replace, resort moves) carry the record and its new position.
type Change struct {
	Record   Record
	Position int
	Property string
	Old      interface{}
	New      interface{}
}

// ChangeBatch is the coalesced result of one logical operation. It is built
// up while the operation runs and handed to the sink exactly once, after the
// operation's DidEndChanges hook.
type ChangeBatch struct {
	Inserted []Change
	Updated  []Change
	Deleted  []Change
}

// Empty reports whether the batch carries no changes. Empty batches are
// never delivered.
func (b ChangeBatch) Empty() bool {
	return len(b.Inserted) == 0 && len(b.Updated) == 0 && len(b.Deleted) == 0
}

// Sink receives the change batch produced by a logical operation. The set
// invokes it at most once per operation and only when the batch is
// non-empty. The batch value is fully formed before delivery; the set does
// not wait on anything the sink does with it.
type Sink func(ChangeBatch)

// Observer receives the will/did hooks wrapping every structural mutation.
//
// Will hooks returning false veto that record's change; the structural
// mutation is skipped for it, while the rest of a batch proceeds. Did hooks
// carry performed, which is false when the change was vetoed or turned out
// to be a no-op (inserting a duplicate identity, removing an absent one).
// Vetoed and no-op attempts never appear in the change batch.
//
// Hooks run synchronously, inline with the triggering mutation. Mutating the
// same set from inside a hook is not safe.
type Observer interface {
	// WillStartChanges fires once per logical operation, before any
	// per-record hook.
	WillStartChanges(s *Set)

	// WillInsert fires before rec is inserted at position at.
	WillInsert(s *Set, rec Record, at int) bool
	// DidInsert fires after the insert attempt for rec.
	DidInsert(s *Set, rec Record, at int, performed bool)

	// WillRemove fires before rec is removed.
	WillRemove(s *Set, rec Record) bool
	// DidRemove fires after the remove attempt. at is the position rec held,
	// or -1 when it was not present.
	DidRemove(s *Set, rec Record, at int, performed bool)

	// WillUpdate fires before a scalar property change on a member record is
	// recorded.
	WillUpdate(s *Set, rec Record, property string, old, new interface{}) bool
	// DidUpdate fires after the update attempt.
	DidUpdate(s *Set, rec Record, property string, old, new interface{}, performed bool)

	// WillReplace fires before old is replaced by rec at position at.
	WillReplace(s *Set, old, rec Record, at int) bool
	// DidReplace fires after the replace attempt.
	DidReplace(s *Set, old, rec Record, at int, performed bool)

	// WillRemoveAll and DidRemoveAll bracket a remove-all; they are not
	// per-record.
	WillRemoveAll(s *Set) bool
	DidRemoveAll(s *Set, performed bool)

	// DidEndChanges fires once per logical operation, after all per-record
	// did hooks and before the change batch is delivered.
	DidEndChanges(s *Set)
}

// BaseObserver is a no-op, allow-all Observer for embedding. Override only
// the hooks you need.
type BaseObserver struct{}

func (BaseObserver) WillStartChanges(*Set) {}

func (BaseObserver) WillInsert(*Set, Record, int) bool      { return true }
func (BaseObserver) DidInsert(*Set, Record, int, bool)      {}
func (BaseObserver) WillRemove(*Set, Record) bool           { return true }
func (BaseObserver) DidRemove(*Set, Record, int, bool)      {}
func (BaseObserver) WillUpdate(*Set, Record, string, interface{}, interface{}) bool {
	return true
}
func (BaseObserver) DidUpdate(*Set, Record, string, interface{}, interface{}, bool) {}
func (BaseObserver) WillReplace(*Set, Record, Record, int) bool                     { return true }
func (BaseObserver) DidReplace(*Set, Record, Record, int, bool)                     {}
func (BaseObserver) WillRemoveAll(*Set) bool                                        { return true }
func (BaseObserver) DidRemoveAll(*Set, bool)                                        {}
func (BaseObserver) DidEndChanges(*Set)                                             {}
