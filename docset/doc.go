// Package docset provides an ordered, identity-indexed document collection.
//
// A Set holds uniquely identified records in a caller-visible order. Every
// structural change runs through an observable mutation pipeline: registered
// observers see vetoable "will" hooks before the change and "did" hooks after
// it, and each logical operation produces at most one coalesced change batch
// for the configured notification sink. Named sort policies govern insertion
// order when active, and union/intersect/minus combine sets by identity.
//
// The Set itself is an in-memory model layer. Persistence is a thin JSON
// round trip through any key/value or blob store implementing the Store
// interface; backends live in the stores subpackage.
//
// A Set is not safe for concurrent use. All operations execute synchronously
// on the caller's goroutine, including hook callbacks.
package docset
