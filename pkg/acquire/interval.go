package acquire

import "time"

// Ticker is the interval primitive pacing the sampling loop. The production
// implementation wraps time.Ticker, which fires on a monotonic schedule so
// per-tick processing time does not accumulate as drift. Tests substitute a
// deterministic fake.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type intervalTicker struct {
	t *time.Ticker
}

func newIntervalTicker(d time.Duration) Ticker {
	return &intervalTicker{t: time.NewTicker(d)}
}

func (it *intervalTicker) C() <-chan time.Time { return it.t.C }

func (it *intervalTicker) Stop() { it.t.Stop() }
