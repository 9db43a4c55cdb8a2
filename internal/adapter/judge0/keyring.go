package judge0

import "sync"

// KeyRing is a round-robin pool of interchangeable backend API keys. Every
// call takes the next key; a quota rejection advances the ring so the
// failing key is skipped on the retry. Safe for concurrent use.
type KeyRing struct {
	mu   sync.Mutex
	keys []string
	next int
}

// NewKeyRing builds a ring over the configured keys. An empty pool is valid:
// Next returns "" and the client sends no auth header (self-hosted backend).
func NewKeyRing(keys []string) *KeyRing {
	return &KeyRing{keys: keys}
}

// Next returns the current key and advances the ring.
func (r *KeyRing) Next() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.keys) == 0 {
		return ""
	}
	key := r.keys[r.next]
	r.next = (r.next + 1) % len(r.keys)
	return key
}

// Size reports the pool size.
func (r *KeyRing) Size() int {
	return len(r.keys)
}
