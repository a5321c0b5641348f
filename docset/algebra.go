package docset

// Union returns a new set seeded with s's records in s's order, followed by
// every record from other whose identity is not already present, in other's
// order. Neither input is mutated; records are shared, not copied. The
// result carries no observer or sink of its own.
func (s *Set) Union(other *Set) *Set {
	out := New()
	for _, rec := range s.index.seq {
		_, _ = out.Append(rec)
	}
	for _, rec := range other.index.seq {
		// duplicate identities are skipped by the insert path
		_, _ = out.Append(rec)
	}
	return out
}

// Intersect removes, in place, every record whose identity is absent from
// other. Removals run through the normal pipeline remove path, so hooks fire
// per record and the survivors keep their relative order. The whole
// intersect is one logical operation with one change batch.
func (s *Set) Intersect(other *Set) {
	s.pipe.begin(s)
	defer s.pipe.end(s)
	for _, rec := range s.Records() {
		if !other.Contains(rec.ID()) {
			s.removeOne(rec)
		}
	}
}

// Minus removes, in place, every record whose identity is present in other.
// Like Intersect it is one logical operation over the pipeline remove path,
// and survivors keep their relative order.
func (s *Set) Minus(other *Set) {
	s.pipe.begin(s)
	defer s.pipe.end(s)
	for _, rec := range s.Records() {
		if other.Contains(rec.ID()) {
			s.removeOne(rec)
		}
	}
}
