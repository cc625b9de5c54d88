package core

import (
	"encoding/hex"

	"github.com/go-crypt/x/blake2b"
)

// RawMessage is the untyped key/value payload decoded from the wire.
// No invariants hold; any field may be missing or of the wrong type.
type RawMessage map[string]any

// NormalizedItem is the canonical form of a lost-item report.
// All string fields are whitespace-collapsed and edge-trimmed; ImageKey, when
// non-empty, is a canonical object-storage key. Instances are created only by
// the convert package and must not be mutated afterward.
type NormalizedItem struct {
	ItemID      string
	Title       string
	Description string
	Category    string
	Location    string
	DateLost    string
	ContactInfo string
	ImageKey    string
}

// HasImage reports whether the item carries an object-storage image reference.
func (item *NormalizedItem) HasImage() bool {
	return item.ImageKey != ""
}

// OutputRecord is the standardized embedding-bearing record published for
// downstream indexing. JSON field names are the wire contract consumed by the
// indexing service; downstream consumers upsert by ItemID, which keeps
// redelivered messages idempotent.
type OutputRecord struct {
	ItemID            string    `json:"item_id"`
	Embedding         []float32 `json:"embedding"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Category          string    `json:"category"`
	Location          string    `json:"location"`
	DateLost          string    `json:"date_lost"`
	ImageKey          string    `json:"image_key"`
	ContactInfo       string    `json:"contact_info"`
	Timestamp         string    `json:"timestamp"`
	HasImageEmbedding bool      `json:"has_image_embedding"`
}

// Fingerprint generates a deterministic content hash of a payload using
// BLAKE2b hashing. It is attached to published messages as the message ID so
// that redeliveries of the same item produce the same ID downstream.
func Fingerprint(payload []byte) string {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write(payload)
	return hex.EncodeToString(h.Sum(nil))
}
