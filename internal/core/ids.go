// AngelaMos | 2026
// ids.go

package core

import (
	mathrand "math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(
		mathrand.New(mathrand.NewSource(time.Now().UnixNano())), //nolint:gosec // non-cryptographic entropy for sortable ids
		0,
	)
)

// NewID returns a lexicographically sortable identifier, used for request
// ids and append-only rows like activity entries.
func NewID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}
