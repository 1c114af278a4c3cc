package ledger

import (
	"sync"
	"time"
)

// appendClock hands out non-decreasing timestamps for log appends. The wall
// clock can step backwards (NTP adjustments); committed records must not.
type appendClock struct {
	mu   sync.Mutex
	last time.Time
}

// Next returns now, clamped so it never precedes the previously issued stamp
func (c *appendClock) Next(now time.Time) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	if now.Before(c.last) {
		now = c.last
	}
	c.last = now
	return now
}
