package clock

import "time"

// Clock is the time source used by scheduling, cooldown and streak logic.
// Production code uses System; tests substitute a fixed or stepping clock
// to hit window and rollover boundaries deterministically.
type Clock interface {
	Now() time.Time
}

// System reads the wall clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed always returns the same instant.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time { return f.T }
