package services

import (
	"time"

	"github.com/srgjo27/seat_reservation/internal/platform/keylock"
)

const (
	DefaultHoldTTL       = 10 * time.Minute
	DefaultSweepInterval = time.Minute
)

type settings struct {
	now           func() time.Time
	sweepInterval time.Duration
	lockStripes   int
}

type Option func(*settings)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}

func WithSweepInterval(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.sweepInterval = d
		}
	}
}

func WithLockStripes(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.lockStripes = n
		}
	}
}

func buildSettings(opts []Option) settings {
	s := settings{
		now:           time.Now,
		sweepInterval: DefaultSweepInterval,
		lockStripes:   keylock.DefaultStripes,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
