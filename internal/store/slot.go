package store

import "context"

// DefaultSlotName is the key the roster document is stored under.
const DefaultSlotName = "@teams_data"

// Slot is one named unit of durable storage holding the whole roster document.
type Slot interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, payload []byte) error
	Close() error
}
