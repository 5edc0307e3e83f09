package ratelimit

import (
	"context"
	"sync"
	"time"
)

// counter tracks requests for one (identity, endpoint) key in the current
// rolling window.
type counter struct {
	mu          sync.Mutex
	count       int
	windowStart time.Time
}

// MemoryStore keeps quota counters in process memory. Counters for different
// keys never contend; access to a single counter is serialized by its own
// mutex, so two concurrent requests cannot both take the last slot.
type MemoryStore struct {
	mu       sync.RWMutex
	counters map[string]*counter
	clock    Clock

	cleanupTicker *time.Ticker
	cleanupStop   chan struct{}
}

// NewMemoryStore creates an in-memory counter store. Expired counters are
// swept every cleanupInterval; pass 0 to disable the sweeper (tests).
func NewMemoryStore(clock Clock, cleanupInterval time.Duration) *MemoryStore {
	if clock == nil {
		clock = SystemClock()
	}
	s := &MemoryStore{
		counters: make(map[string]*counter),
		clock:    clock,
	}
	if cleanupInterval > 0 {
		s.cleanupTicker = time.NewTicker(cleanupInterval)
		s.cleanupStop = make(chan struct{})
		go s.sweepLoop()
	}
	return s
}

// Take implements Store.
func (s *MemoryStore) Take(_ context.Context, key string, limit int, window time.Duration) (Decision, error) {
	c := s.getCounter(key)

	c.mu.Lock()
	defer c.mu.Unlock()

	now := s.clock.Now()
	if c.count == 0 || now.Sub(c.windowStart) >= window {
		c.count = 1
		c.windowStart = now
		return Decision{
			Allowed:   true,
			Limit:     limit,
			Remaining: limit - 1,
			ResetAt:   now.Add(window),
		}, nil
	}

	resetAt := c.windowStart.Add(window)
	if c.count < limit {
		c.count++
		return Decision{
			Allowed:   true,
			Limit:     limit,
			Remaining: limit - c.count,
			ResetAt:   resetAt,
		}, nil
	}

	return Decision{
		Allowed:   false,
		Limit:     limit,
		Remaining: 0,
		ResetAt:   resetAt,
	}, nil
}

// getCounter returns the counter for key, creating it if needed.
func (s *MemoryStore) getCounter(key string) *counter {
	s.mu.RLock()
	c, exists := s.counters[key]
	s.mu.RUnlock()
	if exists {
		return c
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Double-check after acquiring the write lock.
	if existing, exists := s.counters[key]; exists {
		return existing
	}
	c = &counter{}
	s.counters[key] = c
	return c
}

// Count returns the current count for a key. Zero when no counter exists.
func (s *MemoryStore) Count(key string) int {
	s.mu.RLock()
	c, exists := s.counters[key]
	s.mu.RUnlock()
	if !exists {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

func (s *MemoryStore) sweepLoop() {
	for {
		select {
		case <-s.cleanupTicker.C:
			s.sweep()
		case <-s.cleanupStop:
			return
		}
	}
}

// sweep removes counters whose window has fully elapsed.
func (s *MemoryStore) sweep() {
	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	for key, c := range s.counters {
		c.mu.Lock()
		stale := now.Sub(c.windowStart) >= Window
		c.mu.Unlock()
		if stale {
			delete(s.counters, key)
		}
	}
}

// Stop halts the sweeper goroutine.
func (s *MemoryStore) Stop() {
	if s.cleanupTicker != nil {
		s.cleanupTicker.Stop()
	}
	if s.cleanupStop != nil {
		close(s.cleanupStop)
	}
}
