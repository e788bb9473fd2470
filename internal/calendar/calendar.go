// Package calendar converts in-game ticks into durations the player reads.
package calendar

import (
	"fmt"
	"time"
)

const (
	TicksPerHour = 50
	TicksPerDay  = 1200
)

// Clock reports the current in-game time in ticks.
type Clock interface {
	Now() int64
}

// Fixed is a Clock stopped at a given tick.
type Fixed int64

func (f Fixed) Now() int64 { return int64(f) }

// Wall maps real time onto ticks, one tick per Rate of wall time since Epoch.
type Wall struct {
	Epoch time.Time
	Rate  time.Duration
}

func (w Wall) Now() int64 {
	rate := w.Rate
	if rate <= 0 {
		rate = time.Second
	}
	return int64(time.Since(w.Epoch) / rate)
}

// Ago formats the time elapsed between then and now. Two or more whole days
// are shown in days, anything shorter in whole hours.
func Ago(now, then int64) string {
	delta := now - then
	days := delta / TicksPerDay
	if days > 1 {
		return fmt.Sprintf("%d days ago", days)
	}
	return fmt.Sprintf("%d hours ago", delta/TicksPerHour)
}
