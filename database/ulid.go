package database

import (
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// MonotonicULIDsource hands out strictly increasing ULIDs even for calls
// within the same millisecond. Safe for concurrent use.
type MonotonicULIDsource struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

func NewMonotonicULIDsource(entropy io.Reader) *MonotonicULIDsource {
	return &MonotonicULIDsource{
		entropy: ulid.Monotonic(entropy, 0),
	}
}

func (s *MonotonicULIDsource) New(t time.Time) (ulid.ULID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.New(ulid.Timestamp(t), s.entropy)
}
