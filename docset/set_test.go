package docset_test

import (
	"errors"
	"testing"

	"github.com/arthur-debert/docset/docset"
)

func TestInsert(t *testing.T) {
	t.Run("AtPosition", func(t *testing.T) {
		set := newSetWithDocs(t, []docset.DocumentID{1, 3})
		performed, err := set.Insert(newDoc(2, ""), 1)
		if err != nil {
			t.Fatalf("insert failed: %v", err)
		}
		if !performed {
			t.Fatal("insert was not performed")
		}
		assertIDs(t, set, []docset.DocumentID{1, 2, 3})
		assertConsistent(t, set)
	})

	t.Run("MissingIdentity", func(t *testing.T) {
		set := docset.New()
		_, err := set.Insert(&docset.Document{}, 0)
		if !errors.Is(err, docset.ErrMissingID) {
			t.Errorf("expected ErrMissingID, got %v", err)
		}
	})

	t.Run("PositionOutOfRange", func(t *testing.T) {
		set := newSetWithDocs(t, []docset.DocumentID{1})
		if _, err := set.Insert(newDoc(2, ""), 5); !errors.Is(err, docset.ErrOutOfBounds) {
			t.Errorf("expected ErrOutOfBounds, got %v", err)
		}
		if _, err := set.Insert(newDoc(2, ""), -1); !errors.Is(err, docset.ErrOutOfBounds) {
			t.Errorf("expected ErrOutOfBounds for negative position, got %v", err)
		}
	})

	t.Run("DuplicateIsSilentNoOp", func(t *testing.T) {
		set := newSetWithDocs(t, []docset.DocumentID{1, 2})
		performed, err := set.Insert(newDoc(2, "again"), 0)
		if err != nil {
			t.Fatalf("duplicate insert must not error: %v", err)
		}
		if performed {
			t.Error("duplicate insert reported as performed")
		}
		if set.Count() != 2 {
			t.Errorf("expected count 2, got %d", set.Count())
		}
	})
}

func TestRemove(t *testing.T) {
	t.Run("ByIdentity", func(t *testing.T) {
		set := newSetWithDocs(t, []docset.DocumentID{1, 2, 3})
		removed, ok := set.Remove(newDoc(2, ""))
		if !ok {
			t.Fatal("remove did not report success")
		}
		if removed.ID() != 2 {
			t.Errorf("expected removed id 2, got %d", removed.ID())
		}
		assertIDs(t, set, []docset.DocumentID{1, 3})
		assertConsistent(t, set)
	})

	t.Run("AbsentIsSilentNoOp", func(t *testing.T) {
		set := newSetWithDocs(t, []docset.DocumentID{1})
		removed, ok := set.Remove(newDoc(9, ""))
		if ok || removed != nil {
			t.Errorf("expected (nil, false) for absent identity, got (%v, %v)", removed, ok)
		}
		if set.Count() != 1 {
			t.Errorf("expected count 1, got %d", set.Count())
		}
	})
}

func TestRemoveAll(t *testing.T) {
	set := newSetWithDocs(t, []docset.DocumentID{1, 2, 3})
	if _, err := set.Create(); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	set.RemoveAll()
	if set.Count() != 0 {
		t.Fatalf("expected empty set, got %d records", set.Count())
	}
	// pending identities are cleared too
	if _, err := set.CreateWithID(1); err != nil {
		t.Errorf("identity should be free after remove-all: %v", err)
	}
}

func TestOrderingPrimitives(t *testing.T) {
	set := newSetWithDocs(t, []docset.DocumentID{10, 20, 30})

	if first := set.First(); first == nil || first.ID() != 10 {
		t.Errorf("unexpected first: %v", first)
	}
	if last := set.Last(); last == nil || last.ID() != 30 {
		t.Errorf("unexpected last: %v", last)
	}
	if rec := set.At(1); rec == nil || rec.ID() != 20 {
		t.Errorf("unexpected record at 1: %v", rec)
	}
	if rec := set.At(3); rec != nil {
		t.Errorf("expected nil beyond the end, got %v", rec)
	}

	t.Run("IDAfter", func(t *testing.T) {
		if id, ok := set.IDAfter(10); !ok || id != 20 {
			t.Errorf("expected (20, true), got (%d, %v)", id, ok)
		}
		if _, ok := set.IDAfter(30); ok {
			t.Error("expected boundary after last identity")
		}
		if _, ok := set.IDAfter(99); ok {
			t.Error("expected no neighbor for absent identity")
		}
	})

	t.Run("IDBefore", func(t *testing.T) {
		if id, ok := set.IDBefore(30); !ok || id != 20 {
			t.Errorf("expected (20, true), got (%d, %v)", id, ok)
		}
		if _, ok := set.IDBefore(10); ok {
			t.Error("expected boundary before first identity")
		}
	})

	t.Run("EmptySet", func(t *testing.T) {
		empty := docset.New()
		if empty.First() != nil || empty.Last() != nil {
			t.Error("expected nil first/last on empty set")
		}
	})
}

func TestReplace(t *testing.T) {
	t.Run("PreservesPosition", func(t *testing.T) {
		set := newSetWithDocs(t, []docset.DocumentID{1, 2, 3})
		old := set.At(1)
		if err := set.Replace(old, newDoc(9, "replacement")); err != nil {
			t.Fatalf("replace failed: %v", err)
		}
		assertIDs(t, set, []docset.DocumentID{1, 9, 3})
		if _, ok := set.IndexOf(2); ok {
			t.Error("old identity still resolves")
		}
		if pos, ok := set.IndexOf(9); !ok || pos != 1 {
			t.Errorf("new identity resolves to (%d, %v), expected (1, true)", pos, ok)
		}
		assertConsistent(t, set)
	})

	t.Run("NotFound", func(t *testing.T) {
		set := newSetWithDocs(t, []docset.DocumentID{1})
		err := set.Replace(newDoc(9, ""), newDoc(10, ""))
		if !errors.Is(err, docset.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("ExplicitPositionOutOfRange", func(t *testing.T) {
		set := newSetWithDocs(t, []docset.DocumentID{1})
		err := set.ReplaceAt(set.At(0), newDoc(9, ""), 4)
		if !errors.Is(err, docset.ErrOutOfBounds) {
			t.Errorf("expected ErrOutOfBounds, got %v", err)
		}
	})

	t.Run("ExplicitPositionMismatch", func(t *testing.T) {
		set := newSetWithDocs(t, []docset.DocumentID{1, 2})
		err := set.ReplaceAt(set.At(0), newDoc(9, ""), 1)
		if !errors.Is(err, docset.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("SameIdentityKeepsSlot", func(t *testing.T) {
		set := newSetWithDocs(t, []docset.DocumentID{1, 2})
		if err := set.Replace(set.At(0), newDoc(1, "updated")); err != nil {
			t.Fatalf("replace failed: %v", err)
		}
		assertIDs(t, set, []docset.DocumentID{1, 2})
		assertConsistent(t, set)
	})

	t.Run("DuplicatingOtherIdentityIsNoOp", func(t *testing.T) {
		set := newSetWithDocs(t, []docset.DocumentID{1, 2})
		if err := set.Replace(set.At(0), newDoc(2, "")); err != nil {
			t.Fatalf("replace must not error: %v", err)
		}
		assertIDs(t, set, []docset.DocumentID{1, 2})
		assertConsistent(t, set)
	})
}

func TestNewFromRecords(t *testing.T) {
	t.Run("SeedsInOrder", func(t *testing.T) {
		set, err := docset.NewFromRecords([]docset.Record{
			newDoc(3, ""), newDoc(1, ""), newDoc(2, ""),
		})
		if err != nil {
			t.Fatalf("seeding failed: %v", err)
		}
		assertIDs(t, set, []docset.DocumentID{3, 1, 2})
	})

	t.Run("DuplicatesDroppedLikeRuntimeInserts", func(t *testing.T) {
		set, err := docset.NewFromRecords([]docset.Record{
			newDoc(1, "first"), newDoc(1, "second"),
		})
		if err != nil {
			t.Fatalf("seeding failed: %v", err)
		}
		if set.Count() != 1 {
			t.Errorf("expected 1 record, got %d", set.Count())
		}
	})

	t.Run("MissingIdentityFails", func(t *testing.T) {
		_, err := docset.NewFromRecords([]docset.Record{&docset.Document{}})
		if !errors.Is(err, docset.ErrMissingID) {
			t.Errorf("expected ErrMissingID, got %v", err)
		}
	})
}

// TestIndexStaysConsistent drives a fixed mixed mutation sequence and checks
// the order/index duality after every step.
func TestIndexStaysConsistent(t *testing.T) {
	set := docset.New()
	steps := []func(){
		func() { _, _ = set.Append(newDoc(1, "")) },
		func() { _, _ = set.Append(newDoc(2, "")) },
		func() { _, _ = set.Insert(newDoc(3, ""), 0) },
		func() { _, _ = set.Insert(newDoc(2, ""), 1) }, // duplicate no-op
		func() { _, _ = set.Remove(newDoc(1, "")) },
		func() { _, _ = set.Insert(newDoc(4, ""), 1) },
		func() { _, _ = set.Remove(newDoc(99, "")) }, // absent no-op
		func() { _ = set.Replace(newDoc(3, ""), newDoc(5, "")) },
		func() { _, _ = set.Append(newDoc(1, "")) },
		func() { _, _ = set.Remove(newDoc(4, "")) },
	}
	for i, step := range steps {
		step()
		assertConsistent(t, set)
		if t.Failed() {
			t.Fatalf("inconsistent after step %d", i)
		}
	}
	assertIDs(t, set, []docset.DocumentID{5, 2, 1})
}
