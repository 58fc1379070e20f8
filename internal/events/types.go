package events

import (
	"context"
	"encoding/json"
	"time"
)

// Tables that emit change events.
const (
	TableUsers       = "users"
	TableMemoryForms = "memory_forms"
	TableFormOwners  = "form_owners"
	TablePhotos      = "photos"
)

// Change operations. Subscribers only see changes that happen after they
// attach; nothing is replayed.
const (
	OpInsert = "insert"
	OpUpdate = "update"
	OpDelete = "delete"
)

// ChangeEvent is the wire envelope relayed to subscribers. Record is null for
// refresh signals, where the change itself does not carry the affected
// record's content (ownership grants).
type ChangeEvent struct {
	Table      string          `json:"table"`
	Operation  string          `json:"operation"`
	Record     json.RawMessage `json:"record"`
	OccurredAt time.Time       `json:"occurred_at"`

	// Routing metadata, filled by the publisher.
	CreatorID     string `json:"creator_id,omitempty"`
	FormID        string `json:"form_id,omitempty"`
	WalletAddress string `json:"wallet_address,omitempty"`
}

type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

type Subscriber interface {
	Subscribe(ctx context.Context, channels []string, handler func(channel string, payload []byte)) error
}
