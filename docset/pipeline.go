package docset

// pipeline brackets structural operations with the observer's start/end
// hooks and accumulates the change batch for the sink.
//
// begin and end nest: a compound operation (intersect, load) opens its own
// bracket and the per-record operations it delegates to reuse it, so the
// whole compound counts as one logical operation with one batch. The batch
// is flushed when the outermost bracket closes, after DidEndChanges.
type pipeline struct {
	observer Observer
	sink     Sink
	depth    int
	batch    ChangeBatch
}

func newPipeline() *pipeline {
	return &pipeline{observer: BaseObserver{}}
}

func (p *pipeline) begin(s *Set) {
	if p.depth == 0 {
		p.observer.WillStartChanges(s)
	}
	p.depth++
}

func (p *pipeline) end(s *Set) {
	p.depth--
	if p.depth > 0 {
		return
	}
	p.observer.DidEndChanges(s)
	batch := p.batch
	p.batch = ChangeBatch{}
	if p.sink != nil && !batch.Empty() {
		p.sink(batch)
	}
}

func (p *pipeline) recordInsert(rec Record, at int) {
	p.batch.Inserted = append(p.batch.Inserted, Change{Record: rec, Position: at})
}

func (p *pipeline) recordMove(rec Record, at int) {
	p.batch.Updated = append(p.batch.Updated, Change{Record: rec, Position: at})
}

func (p *pipeline) recordUpdate(rec Record, property string, old, new interface{}) {
	p.batch.Updated = append(p.batch.Updated, Change{Record: rec, Property: property, Old: old, New: new})
}

func (p *pipeline) recordDelete(rec Record, at int) {
	p.batch.Deleted = append(p.batch.Deleted, Change{Record: rec, Position: at})
}
