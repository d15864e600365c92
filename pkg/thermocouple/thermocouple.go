// Package thermocouple maps thermocouple types, temperature units and channel
// lists onto the device register writes required by the thermocouple extended
// function, and resolves cold-junction compensation parameters per device
// variant.
package thermocouple

import (
	"errors"
	"fmt"
	"strings"
)

// Type is a thermocouple type.
type Type int

const (
	TypeE Type = iota
	TypeJ
	TypeK
	TypeR
	TypeT
	TypeS
	TypeN
	TypeB
	TypeC
)

// efIndices maps each type to its extended function index. These values are
// fixed by the device firmware.
var efIndices = map[Type]int{
	TypeE: 20,
	TypeJ: 21,
	TypeK: 22,
	TypeR: 23,
	TypeT: 24,
	TypeS: 25,
	TypeN: 27,
	TypeB: 28,
	TypeC: 30,
}

var typeNames = map[Type]string{
	TypeE: "E",
	TypeJ: "J",
	TypeK: "K",
	TypeR: "R",
	TypeT: "T",
	TypeS: "S",
	TypeN: "N",
	TypeB: "B",
	TypeC: "C",
}

// ErrUnsupportedConfiguration indicates a thermocouple type without known
// CJC calibration data. There is deliberately no fallback: defaulting to
// another type's slope and offset would produce physically wrong temperatures.
var ErrUnsupportedConfiguration = errors.New("unsupported configuration")

// ParseType parses a thermocouple type letter, case-insensitive.
func ParseType(s string) (Type, error) {
	for t, name := range typeNames {
		if strings.EqualFold(s, name) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown thermocouple type %q", s)
}

// EFIndex returns the extended function index configuring this type.
func (t Type) EFIndex() int {
	return efIndices[t]
}

// String returns the type letter.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Unit is a temperature reading unit.
type Unit int

const (
	UnitKelvin     Unit = 0
	UnitCelsius    Unit = 1
	UnitFahrenheit Unit = 2
)

// ParseUnit parses a temperature unit letter, case-insensitive.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToUpper(s) {
	case "K":
		return UnitKelvin, nil
	case "C":
		return UnitCelsius, nil
	case "F":
		return UnitFahrenheit, nil
	default:
		return 0, fmt.Errorf("unknown temperature unit %q", s)
	}
}

// Index returns the unit index written to EF_CONFIG_A.
func (u Unit) Index() int {
	return int(u)
}

// String returns the unit letter.
func (u Unit) String() string {
	switch u {
	case UnitKelvin:
		return "K"
	case UnitCelsius:
		return "C"
	case UnitFahrenheit:
		return "F"
	default:
		return fmt.Sprintf("Unit(%d)", int(u))
	}
}
