// Package keylock provides striped mutual exclusion keyed by int64 ids.
// Two ids that hash to the same stripe serialize against each other, which
// is harmless: every critical section guarded here is short.
package keylock

import (
	"encoding/binary"
	"sync"

	"github.com/cespare/xxhash/v2"
)

const DefaultStripes = 64

type Striped struct {
	stripes []sync.Mutex
}

func New(n int) *Striped {
	if n <= 0 {
		n = DefaultStripes
	}
	return &Striped{stripes: make([]sync.Mutex, n)}
}

// Lock blocks until the stripe of key is held and returns its unlock func.
func (s *Striped) Lock(key int64) func() {
	mu := &s.stripes[Slot(key, len(s.stripes))]
	mu.Lock()
	return mu.Unlock
}

// Slot maps key onto [0, n).
func Slot(key int64, n int) int {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(key))
	return int(xxhash.Sum64(buf[:]) % uint64(n))
}
