package form

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"sync"
)

// InFlight tracks submissions being processed, keyed by form name and state fingerprint,
// so that an identical submission arriving meanwhile is rejected.
type InFlight struct {
	mu      sync.Mutex
	pending map[string]struct{}
}

func NewInFlight() *InFlight {
	return &InFlight{pending: make(map[string]struct{})}
}

// Acquire registers the submission. The returned func releases it.
func (g *InFlight) Acquire(formName string, state State) (release func(), err error) {
	key := formName + ":" + Fingerprint(state)

	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.pending[key]; busy {
		return nil, ErrSubmissionInProgress
	}
	g.pending[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.pending, key)
			g.mu.Unlock()
		})
	}, nil
}

// Len returns the number of submissions in flight.
func (g *InFlight) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.pending)
}

// Fingerprint is the hex SHA-256 of the state's sorted key/value pairs.
func Fingerprint(state State) string {
	keys := make([]string, 0, len(state))
	for k := range state {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	h := sha256.New()
	for _, k := range keys {
		h.Write([]byte(k))
		h.Write([]byte{0})
		h.Write([]byte(state[k]))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
