package thermocouple

import (
	"fmt"

	"github.com/kimlab/thermolog/pkg/daq"
)

// CJC source addresses. The T8 has an on-die temperature sensor per channel
// pair (TEMPERATURE#); the T7 exposes a single device temperature register
// (TEMPERATURE_DEVICE_K).
const (
	cjcPerChannelBase    = 600
	cjcDeviceTempAddress = 60052
)

// CJCParameters configure the cold-junction compensation source such that
//
//	tempK = reading * Slope + Offset
//
// where reading is the value at the register Address.
type CJCParameters struct {
	Address int
	Slope   float64
	Offset  float64
}

// ResolveCJC returns the CJC parameters for a device variant, thermocouple
// type and channel.
//
// Only type K has known-good slope and offset values (the CJC sources above
// already report Kelvin, so the identity mapping applies). Every other type
// returns ErrUnsupportedConfiguration.
func ResolveCJC(deviceType daq.DeviceType, tc Type, channel int) (CJCParameters, error) {
	if channel < 0 {
		return CJCParameters{}, fmt.Errorf("%w: %d", daq.ErrInvalidChannel, channel)
	}
	if tc != TypeK {
		return CJCParameters{}, fmt.Errorf("%w: no CJC slope and offset known for type %s thermocouples", ErrUnsupportedConfiguration, tc)
	}

	p := CJCParameters{Slope: 1.0, Offset: 0.0}
	switch deviceType {
	case daq.DeviceT8:
		p.Address = cjcPerChannelBase + 2*channel
	case daq.DeviceT7:
		p.Address = cjcDeviceTempAddress
	default:
		return CJCParameters{}, fmt.Errorf("%w: %s", daq.ErrUnsupportedDevice, deviceType)
	}
	return p, nil
}
