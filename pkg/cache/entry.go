package cache

import (
	"context"
	"encoding/json"
	"time"
)

// entry wraps cached data with its expiry. The file and bolt backends store
// entries in this form; Redis and MongoDB expire entries natively.
type entry struct {
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

func newEntry(data []byte, ttl time.Duration, now time.Time) entry {
	e := entry{Data: data}
	if ttl > 0 {
		e.ExpiresAt = now.Add(ttl)
	}
	return e
}

func (e entry) expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && now.After(e.ExpiresAt)
}

// decodeEntry parses a stored entry. ok is false for corrupt data.
func decodeEntry(raw []byte) (e entry, ok bool) {
	if err := json.Unmarshal(raw, &e); err != nil {
		return entry{}, false
	}
	return e, true
}

func (e entry) encode() ([]byte, error) {
	return json.Marshal(e)
}

// Clearer is implemented by backends that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}
