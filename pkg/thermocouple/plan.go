package thermocouple

import (
	"fmt"

	"github.com/kimlab/thermolog/pkg/daq"
)

// Highest channel carrying an extended function register block.
const maxEFChannel = 149

// Entry is one (register name, value) pair of a plan.
type Entry struct {
	Name  string
	Value float64
}

// RegisterPlan is the full set of register writes configuring a sampling
// session, grouped in write order. It is computed once, before the first
// read, and is immutable afterwards.
type RegisterPlan struct {
	Channels []int
	Type     Type
	Unit     Unit

	// Negative holds the AIN#_NEGATIVE_CH writes selecting single-ended
	// wiring. Only present on variants with addressable differential inputs
	// (the T8 inputs are isolated and need none).
	Negative []Entry
	// Resolution holds the AIN#_RESOLUTION_INDEX writes. Each channel's
	// register is written with the channel's own number, matching the
	// register map convention the device firmware expects.
	Resolution []Entry
	// EF holds the five extended function writes per channel: type index,
	// unit index, CJC address, CJC slope and CJC offset.
	EF []Entry
}

// Option adjusts plan construction.
type Option func(*planOptions)

type planOptions struct {
	resolutionIndex *int
}

// WithResolutionIndex overrides the per-channel resolution index value.
func WithResolutionIndex(index int) Option {
	return func(o *planOptions) {
		o.resolutionIndex = &index
	}
}

// BuildPlan derives the registers configuring the given channels for one
// thermocouple type and temperature unit on a device variant. It is a pure
// function of its inputs: identical inputs yield an identical plan.
//
// Unsupported variants and types are rejected here, before any hardware
// state is touched.
func BuildPlan(channels []int, tc Type, unit Unit, deviceType daq.DeviceType, opts ...Option) (RegisterPlan, error) {
	var o planOptions
	for _, opt := range opts {
		opt(&o)
	}

	if !deviceType.SupportsThermocoupleEF() {
		return RegisterPlan{}, fmt.Errorf("%w: %s has no thermocouple extended function", daq.ErrUnsupportedDevice, deviceType)
	}
	if len(channels) == 0 {
		return RegisterPlan{}, fmt.Errorf("at least one channel is required")
	}

	seen := make(map[int]bool, len(channels))
	for _, ch := range channels {
		if ch < 0 || ch > maxEFChannel {
			return RegisterPlan{}, fmt.Errorf("%w: %d", daq.ErrInvalidChannel, ch)
		}
		if seen[ch] {
			return RegisterPlan{}, fmt.Errorf("duplicate channel %d", ch)
		}
		seen[ch] = true
	}

	plan := RegisterPlan{
		Channels: append([]int(nil), channels...),
		Type:     tc,
		Unit:     unit,
	}

	for _, ch := range channels {
		name := daq.ChannelName(ch)

		cjc, err := ResolveCJC(deviceType, tc, ch)
		if err != nil {
			return RegisterPlan{}, err
		}

		if deviceType == daq.DeviceT7 {
			plan.Negative = append(plan.Negative, Entry{
				Name:  name + "_NEGATIVE_CH",
				Value: daq.GND,
			})
		}

		resolution := ch
		if o.resolutionIndex != nil {
			resolution = *o.resolutionIndex
		}
		plan.Resolution = append(plan.Resolution, Entry{
			Name:  name + "_RESOLUTION_INDEX",
			Value: float64(resolution),
		})

		plan.EF = append(plan.EF,
			Entry{Name: name + "_EF_INDEX", Value: float64(tc.EFIndex())},
			Entry{Name: name + "_EF_CONFIG_A", Value: float64(unit.Index())},
			Entry{Name: name + "_EF_CONFIG_B", Value: float64(cjc.Address)},
			Entry{Name: name + "_EF_CONFIG_D", Value: cjc.Slope},
			Entry{Name: name + "_EF_CONFIG_E", Value: cjc.Offset},
		)
	}

	return plan, nil
}

// Entries returns all plan entries in write order: negative channel wiring,
// resolution indices, then the extended function configuration.
func (p RegisterPlan) Entries() []Entry {
	entries := make([]Entry, 0, len(p.Negative)+len(p.Resolution)+len(p.EF))
	entries = append(entries, p.Negative...)
	entries = append(entries, p.Resolution...)
	entries = append(entries, p.EF...)
	return entries
}

// ReadNames returns the flattened derived-value registers read on every tick:
// EF_READ_A (temperature), EF_READ_B (voltage) and EF_READ_C (cold junction
// temperature) for each channel, in channel order.
func (p RegisterPlan) ReadNames() []string {
	names := make([]string, 0, 3*len(p.Channels))
	for _, ch := range p.Channels {
		name := daq.ChannelName(ch)
		names = append(names,
			name+"_EF_READ_A",
			name+"_EF_READ_B",
			name+"_EF_READ_C",
		)
	}
	return names
}
