package boruta

import "time"

// clockFunc returns the current time. A Server's clock defaults to
// defaultClock (time.Now) but is injectable through WithClock so tests
// get a deterministic wall clock (§5 "Clock").
type clockFunc func() time.Time

func defaultClock() time.Time {
	return time.Now()
}
