package service

import (
	"math/rand"
	"time"

	"grower/models"
)

// Clock supplies the current time
type Clock interface {
	Now() time.Time
}

type systemClock struct {
	loc *time.Location
}

// NewSystemClock returns a clock reading wall time in loc (time.Local when nil)
func NewSystemClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return systemClock{loc: loc}
}

func (c systemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// Today returns the clock's current civil date
func Today(c Clock) time.Time {
	return models.CivilDate(c.Now())
}

// Random is the source used for growth amounts and challenge winners
type Random interface {
	// IntN returns a uniform value in [0, n)
	IntN(n int) int
}

type globalRandom struct{}

// NewRandom returns a Random backed by the runtime's seeded generator
func NewRandom() Random {
	return globalRandom{}
}

func (globalRandom) IntN(n int) int {
	return rand.Intn(n)
}

// randomBetween returns a uniform value in [lo, hi]
func randomBetween(r Random, lo, hi int64) int64 {
	if hi <= lo {
		return lo
	}
	return lo + int64(r.IntN(int(hi-lo+1)))
}
