// Package holdstore holds seat holds in process memory.
//
// A MemoryStore is created once at service start, injected into the services
// that need it and lives for the lifetime of the process. Nothing is
// persisted: a restart starts from an empty store.
package holdstore

import (
	"sync"
	"time"

	"github.com/srgjo27/seat_reservation/internal/core/domain"
	"github.com/srgjo27/seat_reservation/internal/platform/keylock"
)

const DefaultShards = 32

type shard struct {
	mu    sync.RWMutex
	holds map[int64]domain.Hold
}

type MemoryStore struct {
	shards []*shard
}

func NewMemoryStore(shards int) *MemoryStore {
	if shards <= 0 {
		shards = DefaultShards
	}

	s := &MemoryStore{shards: make([]*shard, shards)}
	for i := range s.shards {
		s.shards[i] = &shard{holds: make(map[int64]domain.Hold)}
	}

	return s
}

func (s *MemoryStore) shardFor(seatID int64) *shard {
	return s.shards[keylock.Slot(seatID, len(s.shards))]
}

func (s *MemoryStore) Get(seatID int64) (domain.Hold, bool) {
	sh := s.shardFor(seatID)
	sh.mu.RLock()
	defer sh.mu.RUnlock()

	hold, ok := sh.holds[seatID]
	return hold, ok
}

func (s *MemoryStore) Put(seatID int64, hold domain.Hold) {
	sh := s.shardFor(seatID)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	sh.holds[seatID] = hold
}

func (s *MemoryStore) Remove(seatID int64) {
	sh := s.shardFor(seatID)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	delete(sh.holds, seatID)
}

// PutIfAbsentOrExpired stores hold unless a hold that is still active at now
// already exists for the seat. It reports whether the write happened.
func (s *MemoryStore) PutIfAbsentOrExpired(seatID int64, hold domain.Hold, now time.Time) bool {
	sh := s.shardFor(seatID)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	if current, ok := sh.holds[seatID]; ok && current.ActiveAt(now) {
		return false
	}

	sh.holds[seatID] = hold
	return true
}

// Sweep drops every hold that is no longer active at now and returns how
// many were dropped.
func (s *MemoryStore) Sweep(now time.Time) int {
	removed := 0
	for _, sh := range s.shards {
		sh.mu.Lock()
		for id, hold := range sh.holds {
			if !hold.ActiveAt(now) {
				delete(sh.holds, id)
				removed++
			}
		}
		sh.mu.Unlock()
	}

	return removed
}

func (s *MemoryStore) Len() int {
	total := 0
	for _, sh := range s.shards {
		sh.mu.RLock()
		total += len(sh.holds)
		sh.mu.RUnlock()
	}

	return total
}
