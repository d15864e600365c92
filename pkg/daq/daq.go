// Package daq provides the session layer for a LabJack T-series data
// acquisition device: opening a device, discovering its variant, and
// reading/writing named registers over the device's Modbus TCP map.
package daq

import (
	"errors"
	"fmt"
)

// DeviceType identifies the device variant. The values match the PRODUCT_ID
// register, which reports the model number as a float.
type DeviceType int

const (
	DeviceUnknown DeviceType = 0
	DeviceT4      DeviceType = 4
	DeviceT7      DeviceType = 7
	DeviceT8      DeviceType = 8
)

// String returns the model name for the device type.
func (d DeviceType) String() string {
	switch d {
	case DeviceT4:
		return "T4"
	case DeviceT7:
		return "T7"
	case DeviceT8:
		return "T8"
	default:
		return fmt.Sprintf("unknown(%d)", int(d))
	}
}

// SupportsThermocoupleEF reports whether the variant implements the
// thermocouple extended function. The T4 does not.
func (d DeviceType) SupportsThermocoupleEF() bool {
	return d == DeviceT7 || d == DeviceT8
}

// GND is the negative-channel sentinel selecting single-ended wiring.
const GND = 199

var (
	// ErrNoDeviceFound indicates that no device was reachable at open time.
	ErrNoDeviceFound = errors.New("no device found")
	// ErrUnsupportedDevice indicates a device variant without thermocouple
	// extended function support.
	ErrUnsupportedDevice = errors.New("unsupported device")
	// ErrInvalidChannel indicates a channel number that maps to no valid register.
	ErrInvalidChannel = errors.New("invalid channel")
	// ErrNotConnected indicates a register operation on a closed session.
	ErrNotConnected = errors.New("not connected")
)

// DeviceError reports a failed register operation at the protocol layer.
type DeviceError struct {
	Op       string // "read" or "write"
	Register string
	Err      error
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("device %s %s: %v", e.Op, e.Register, e.Err)
}

func (e *DeviceError) Unwrap() error { return e.Err }

// Device defines the interface for DAQ devices (real or mocked).
//
// ReadNames and WriteNames operate on named registers in order. A batch either
// succeeds completely or fails with no partial results. Implementations are
// not safe for concurrent use; the device is exclusively owned by one
// acquisition session at a time.
type Device interface {
	DeviceType() DeviceType
	ReadNames(names []string) ([]float64, error)
	WriteNames(names []string, values []float64) error
	Close() error
}

// Ensure TCP implements Device.
var _ Device = (*TCP)(nil)

// Ensure Mock implements Device.
var _ Device = (*Mock)(nil)
