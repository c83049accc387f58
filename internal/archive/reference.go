package archive

import (
	"fmt"
	"sync"
	"time"
)

// References mints "<PREFIX>-<unix millis>" identifiers. Two calls within the
// same millisecond still get distinct ids: the counter moves forward by one.
type References struct {
	prefix string
	now    func() time.Time

	mu   sync.Mutex
	last int64
}

// NewReferences creates a minter; nil now uses time.Now.
func NewReferences(prefix string, now func() time.Time) *References {
	if now == nil {
		now = time.Now
	}
	return &References{prefix: prefix, now: now}
}

// Next returns a new identifier and the instant it was minted at.
func (r *References) Next() (string, time.Time) {
	at := r.now()
	ms := at.UnixMilli()

	r.mu.Lock()
	if ms <= r.last {
		ms = r.last + 1
	}
	r.last = ms
	r.mu.Unlock()

	return fmt.Sprintf("%s-%d", r.prefix, ms), at
}
