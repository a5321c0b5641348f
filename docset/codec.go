package docset

import (
	"encoding/json"
	"fmt"
	"time"
)

const storeVersion = "1.0"

// Metadata is the envelope metadata persisted alongside the documents.
type Metadata struct {
	Version   string    `json:"version"`
	StoreID   string    `json:"store_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// envelope is the on-disk JSON shape: the ordered documents plus metadata.
type envelope struct {
	Documents []*Document `json:"documents"`
	Metadata  Metadata    `json:"metadata"`
}

// Codec turns a Set into bytes and back. The default is JSONCodec; supply a
// different implementation through WithCodec to change the format. Codecs
// only sequence records for encoding and re-insert them in order on
// decoding; they own the representation, not the container semantics.
type Codec interface {
	Encode(s *Set) ([]byte, error)
	Decode(data []byte, into *Set) error
}

// JSONCodec encodes the set as a JSON envelope in the documents+metadata
// shape. It handles *Document records; encoding a set holding any other
// Record implementation fails.
type JSONCodec struct {
	// Indent pretty-prints the output, matching what the file store writes.
	Indent bool
}

// Encode implements Codec.
func (c JSONCodec) Encode(s *Set) ([]byte, error) {
	env := envelope{
		Documents: make([]*Document, 0, s.Count()),
		Metadata:  s.meta,
	}
	env.Metadata.UpdatedAt = s.timeFn()
	for _, rec := range s.index.seq {
		doc, ok := rec.(*Document)
		if !ok {
			return nil, fmt.Errorf("cannot encode record %d: %T is not a *docset.Document", rec.ID(), rec)
		}
		env.Documents = append(env.Documents, doc)
	}
	if c.Indent {
		return json.MarshalIndent(env, "", "  ")
	}
	return json.Marshal(env)
}

// Decode implements Codec. It replaces into's contents with the decoded
// documents, appending them in stored order through the normal insertion
// path: a stored document without an identity fails with ErrMissingID and a
// stored duplicate is silently dropped, exactly as at runtime. The clear and
// the re-inserts form one logical operation.
func (c JSONCodec) Decode(data []byte, into *Set) error {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}
	into.pipe.begin(into)
	defer into.pipe.end(into)
	into.RemoveAll()
	into.meta = env.Metadata
	for _, doc := range env.Documents {
		if _, err := into.Append(doc); err != nil {
			return err
		}
	}
	return nil
}
