package slogx

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	reqIDMu      sync.Mutex
	reqIDEntropy = ulid.Monotonic(rand.Reader, 0)
)

// NewRequestID returns a sortable ULID for tagging an outbound call.
func NewRequestID() string {
	reqIDMu.Lock()
	defer reqIDMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now().UTC()), reqIDEntropy).String()
}
