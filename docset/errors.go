package docset

import "errors"

// Error kinds surfaced by Set operations. Callers match them with errors.Is;
// the errors returned by operations wrap these with the offending identity or
// position.
//
// Duplicate-identity inserts and absent-identity removals are deliberately
// not errors: they are silent no-ops, reported only through the performed
// parameter of the corresponding did-hook.
var (
	// ErrMissingID is returned when a structural insert is attempted with a
	// record whose identity is unassigned (zero).
	ErrMissingID = errors.New("docset: record has no identity")

	// ErrExistingID is returned when an explicit identity request collides
	// with an identity that is already active or pending.
	ErrExistingID = errors.New("docset: identity already in use")

	// ErrGenerateID is returned when randomized identity allocation exhausts
	// its retry budget without finding a free value.
	ErrGenerateID = errors.New("docset: unable to generate a free identity")

	// ErrNotFound is returned when a replace or lookup by identity fails.
	ErrNotFound = errors.New("docset: record not found")

	// ErrOutOfBounds is returned when an explicit position falls outside the
	// valid range for the operation.
	ErrOutOfBounds = errors.New("docset: position out of bounds")
)
