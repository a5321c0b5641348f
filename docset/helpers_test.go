package docset_test

import (
	"testing"

	"github.com/arthur-debert/docset/docset"
)

func newDoc(id docset.DocumentID, title string) *docset.Document {
	return &docset.Document{DocID: id, Title: title}
}

func newSetWithDocs(t *testing.T, ids []docset.DocumentID, opts ...docset.Option) *docset.Set {
	t.Helper()
	set := docset.New(opts...)
	for _, id := range ids {
		if _, err := set.Append(newDoc(id, "")); err != nil {
			t.Fatalf("failed to append doc %d: %v", id, err)
		}
	}
	return set
}

func assertIDs(t *testing.T, set *docset.Set, want []docset.DocumentID) {
	t.Helper()
	got := set.IDs()
	if len(got) != len(want) {
		t.Fatalf("expected ids %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected ids %v, got %v", want, got)
		}
	}
}

// assertConsistent checks the order/index duality: every position resolves
// through IndexOf and no identity appears twice.
func assertConsistent(t *testing.T, set *docset.Set) {
	t.Helper()
	seen := make(map[docset.DocumentID]bool)
	for i, rec := range set.Records() {
		id := rec.ID()
		if seen[id] {
			t.Fatalf("identity %d appears more than once", id)
		}
		seen[id] = true
		pos, ok := set.IndexOf(id)
		if !ok || pos != i {
			t.Fatalf("identity %d at position %d resolves to (%d, %v)", id, i, pos, ok)
		}
	}
	if set.Count() != len(seen) {
		t.Fatalf("count %d does not match %d distinct identities", set.Count(), len(seen))
	}
}

// hookEvent captures one did-hook invocation.
type hookEvent struct {
	id        docset.DocumentID
	position  int
	performed bool
}

// recorder is an Observer that counts brackets and captures did-hook events
// and delivered batches.
type recorder struct {
	docset.BaseObserver
	starts, ends int
	inserts      []hookEvent
	removes      []hookEvent
	removeAlls   []bool
	batches      []docset.ChangeBatch
}

func (r *recorder) WillStartChanges(*docset.Set) { r.starts++ }
func (r *recorder) DidEndChanges(*docset.Set)    { r.ends++ }

func (r *recorder) DidInsert(_ *docset.Set, rec docset.Record, at int, performed bool) {
	r.inserts = append(r.inserts, hookEvent{id: rec.ID(), position: at, performed: performed})
}

func (r *recorder) DidRemove(_ *docset.Set, rec docset.Record, at int, performed bool) {
	r.removes = append(r.removes, hookEvent{id: rec.ID(), position: at, performed: performed})
}

func (r *recorder) DidRemoveAll(_ *docset.Set, performed bool) {
	r.removeAlls = append(r.removeAlls, performed)
}

func (r *recorder) sink() docset.Sink {
	return func(b docset.ChangeBatch) { r.batches = append(r.batches, b) }
}

// vetoer blocks will-hooks for one identity while still recording did-hooks.
type vetoer struct {
	recorder
	blocked docset.DocumentID
}

func (v *vetoer) WillInsert(_ *docset.Set, rec docset.Record, _ int) bool {
	return rec.ID() != v.blocked
}

func (v *vetoer) WillRemove(_ *docset.Set, rec docset.Record) bool {
	return rec.ID() != v.blocked
}
