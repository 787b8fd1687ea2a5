package sequence

import (
	"encoding/json"
	"fmt"

	"github.com/lseqkit/lseq/pkg/identifier"
)

// OpKind distinguishes the two operation variants in the wire shape
// described in spec section 6: Insert and Delete.
type OpKind string

const (
	KindInsert OpKind = "insert"
	KindDelete OpKind = "delete"
)

// Op is a tagged record produced by a local edit and consumed by Apply.
// For KindInsert, Payload holds the inserted value and RemoteDot is
// unused. For KindDelete, RemoteDot holds the dot of the insert being
// undone and Payload is unused.
type Op[T any] struct {
	Kind      OpKind
	ID        identifier.Identifier
	Dot       Dot
	RemoteDot Dot
	Payload   T
}

// wireOp is the JSON rendering of Op: identifier positions are flattened
// to a plain array of {index, site} objects so the path order and every
// field round-trip exactly, per spec section 6.
type wireOp[T any] struct {
	Op        string                `json:"op"`
	ID        []identifier.Position `json:"id"`
	Dot       Dot                   `json:"dot"`
	RemoteDot *Dot                  `json:"remote_dot,omitempty"`
	Payload   *T                    `json:"payload,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (o Op[T]) MarshalJSON() ([]byte, error) {
	w := wireOp[T]{
		Op:  string(o.Kind),
		ID:  o.ID.Path(),
		Dot: o.Dot,
	}

	switch o.Kind {
	case KindInsert:
		payload := o.Payload
		w.Payload = &payload
	case KindDelete:
		remote := o.RemoteDot
		w.RemoteDot = &remote
	}

	return json.Marshal(w) //nolint:wrapcheck
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *Op[T]) UnmarshalJSON(data []byte) error {
	var w wireOp[T]
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("op: decode: %w", err)
	}

	id, err := identifier.New(w.ID)
	if err != nil {
		return fmt.Errorf("op: %w", err)
	}

	o.ID = id
	o.Dot = w.Dot

	switch OpKind(w.Op) {
	case KindInsert:
		o.Kind = KindInsert

		if w.Payload != nil {
			o.Payload = *w.Payload
		}
	case KindDelete:
		o.Kind = KindDelete

		if w.RemoteDot != nil {
			o.RemoteDot = *w.RemoteDot
		}
	default:
		return fmt.Errorf("op: unknown kind %q", w.Op)
	}

	return nil
}
