// Package acquire drives timed acquisition of thermocouple readings: it
// applies a register plan to a device session once, then reads the derived
// registers on a fixed cadence, assembling an ordered record stream.
package acquire

import (
	"context"
	"fmt"
	"time"

	"github.com/kimlab/thermolog/pkg/config"
	"github.com/kimlab/thermolog/pkg/daq"
	"github.com/kimlab/thermolog/pkg/thermocouple"
)

// State is the sampling loop state.
type State int

const (
	StateConfiguring State = iota
	StateRunning
	StateCompleted
	StateAborted
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateConfiguring:
		return "configuring"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateAborted:
		return "aborted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Result is the outcome of a session: the ordered records collected up to the
// terminal state, the terminal state itself, and the triggering error when
// the session aborted.
type Result struct {
	Records []Record
	State   State
	Err     error
}

// Session owns one acquisition run against one exclusively held device.
type Session struct {
	dev        daq.Device
	plan       thermocouple.RegisterPlan
	cadence    time.Duration
	iterations int // 0 = unbounded

	onRecord func(Record)

	// Injection points for hardware-free tests.
	now       func() time.Time
	newTicker func(time.Duration) Ticker
}

// New creates a session for a configured device and register plan.
func New(dev daq.Device, plan thermocouple.RegisterPlan, cfg config.SamplingConfig) *Session {
	return &Session{
		dev:        dev,
		plan:       plan,
		cadence:    cfg.Cadence,
		iterations: cfg.Iterations,
		now:        time.Now,
		newTicker:  newIntervalTicker,
	}
}

// OnRecord registers a callback invoked synchronously for every record, in
// read order, as the loop runs. It must be set before Run.
func (s *Session) OnRecord(fn func(Record)) {
	s.onRecord = fn
}

// Run executes the session until the iteration bound, a device error, or
// context cancellation. The device and the interval ticker are released on
// every exit path; closing the device is idempotent so callers may also
// defer their own Close.
//
// A configuration write failure aborts immediately: a partially applied plan
// leaves the device in a state that is not safe to sample. A read failure
// during the run aborts too, but the records collected so far are preserved
// in the result. Cancellation between ticks completes the session normally.
func (s *Session) Run(ctx context.Context) Result {
	defer s.dev.Close()

	if err := s.configure(); err != nil {
		return Result{State: StateAborted, Err: err}
	}

	names := s.plan.ReadNames()

	ticker := s.newTicker(s.cadence)
	defer ticker.Stop()

	start := s.now()
	tickTime := start

	var records []Record
	for i := 0; ; i++ {
		values, err := s.dev.ReadNames(names)
		if err != nil {
			return Result{
				Records: records,
				State:   StateAborted,
				Err:     fmt.Errorf("reading %d: %w", i+1, err),
			}
		}

		rec := s.newRecord(tickTime, tickTime.Sub(start), values)
		records = append(records, rec)
		if s.onRecord != nil {
			s.onRecord(rec)
		}

		if s.iterations > 0 && i+1 >= s.iterations {
			return Result{Records: records, State: StateCompleted}
		}

		// Cancellation is only honored between ticks; an in-flight read
		// always completes or fails before it takes effect.
		select {
		case <-ctx.Done():
			return Result{Records: records, State: StateCompleted}
		case t := <-ticker.C():
			tickTime = t
		}
	}
}

// configure applies the register plan in its write order: negative channel
// wiring, resolution indices, then the extended function registers. Failures
// are not retried.
func (s *Session) configure() error {
	for _, group := range [][]thermocouple.Entry{s.plan.Negative, s.plan.Resolution, s.plan.EF} {
		if len(group) == 0 {
			continue
		}
		names := make([]string, len(group))
		values := make([]float64, len(group))
		for i, e := range group {
			names[i] = e.Name
			values[i] = e.Value
		}
		if err := s.dev.WriteNames(names, values); err != nil {
			return fmt.Errorf("configuring %s: %w", names[0], err)
		}
	}
	return nil
}

func (s *Session) newRecord(ts time.Time, elapsed time.Duration, values []float64) Record {
	rec := Record{
		Timestamp: ts,
		Time:      ts.Format(TimeFormat),
		Elapsed:   elapsed.Seconds(),
		Channels:  make([]ChannelReading, 0, len(s.plan.Channels)),
	}
	for i, ch := range s.plan.Channels {
		rec.Channels = append(rec.Channels, ChannelReading{
			Channel:        ch,
			Temperature:    values[3*i],
			Voltage:        values[3*i+1],
			CJCTemperature: values[3*i+2],
		})
	}
	return rec
}
