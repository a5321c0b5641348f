package docset

import "time"

// DocumentID uniquely identifies a record within a set.
// The zero value means "unassigned": a record carrying it cannot be inserted.
type DocumentID uint64

// Record is the identity contract every stored value must satisfy.
// The set treats records as opaque beyond identity extraction; two records
// are the same entry if and only if their identities are equal.
type Record interface {
	// ID returns the record's identity, or zero if none has been assigned.
	ID() DocumentID

	// SetID assigns the record's identity. Called once, during registration;
	// implementations should not expect further calls.
	SetID(DocumentID)
}

// Document is the concrete record type used by the default JSON codec.
// Its encodable fields are enumerated explicitly here; there is no
// reflection-driven property discovery.
type Document struct {
	DocID     DocumentID             `json:"id"`
	Title     string                 `json:"title,omitempty"`
	Body      string                 `json:"body,omitempty"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// ID implements Record.
func (d *Document) ID() DocumentID { return d.DocID }

// SetID implements Record.
func (d *Document) SetID(id DocumentID) { d.DocID = id }
