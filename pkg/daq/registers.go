package daq

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Register data types in the device's Modbus map. FLOAT32 and UINT32 values
// span two big-endian registers, UINT16 values one.
type regType int

const (
	typeUINT16 regType = iota
	typeUINT32
	typeFLOAT32
)

func (t regType) quantity() uint16 {
	if t == typeUINT16 {
		return 1
	}
	return 2
}

// register describes one resolved named register.
type register struct {
	address  uint16
	dataType regType
}

// ainRegister describes an AIN-indexed register block: consecutive channels
// sit stride registers apart starting at base.
type ainRegister struct {
	base       uint16
	stride     uint16
	dataType   regType
	maxChannel int
}

// Addresses, strides and types are taken from the T-series Modbus map and
// must not be altered; the device firmware depends on them.
var ainRegisters = map[string]ainRegister{
	"":                 {base: 0, stride: 2, dataType: typeFLOAT32, maxChannel: 254},
	"EF_READ_A":        {base: 7000, stride: 2, dataType: typeFLOAT32, maxChannel: 149},
	"EF_READ_B":        {base: 7300, stride: 2, dataType: typeFLOAT32, maxChannel: 149},
	"EF_READ_C":        {base: 7600, stride: 2, dataType: typeFLOAT32, maxChannel: 149},
	"EF_READ_D":        {base: 7900, stride: 2, dataType: typeFLOAT32, maxChannel: 149},
	"EF_INDEX":         {base: 9000, stride: 2, dataType: typeUINT32, maxChannel: 149},
	"EF_CONFIG_A":      {base: 9300, stride: 2, dataType: typeUINT32, maxChannel: 149},
	"EF_CONFIG_B":      {base: 9600, stride: 2, dataType: typeUINT32, maxChannel: 149},
	"EF_CONFIG_C":      {base: 9900, stride: 2, dataType: typeUINT32, maxChannel: 149},
	"EF_CONFIG_D":      {base: 10200, stride: 2, dataType: typeFLOAT32, maxChannel: 149},
	"EF_CONFIG_E":      {base: 10500, stride: 2, dataType: typeFLOAT32, maxChannel: 149},
	"NEGATIVE_CH":      {base: 41000, stride: 1, dataType: typeUINT16, maxChannel: 254},
	"RESOLUTION_INDEX": {base: 41500, stride: 1, dataType: typeUINT16, maxChannel: 254},
}

var fixedRegisters = map[string]register{
	"TEMPERATURE_DEVICE_K": {address: 60052, dataType: typeFLOAT32},
	"PRODUCT_ID":           {address: 60000, dataType: typeFLOAT32},
}

// The T8 on-die channel sensors, TEMPERATURE#.
const temperatureBase = 600

// ChannelName returns the analog input identifier for a channel, e.g. "AIN2".
func ChannelName(channel int) string {
	return fmt.Sprintf("AIN%d", channel)
}

// resolveName maps a register name like "AIN2_EF_READ_A" or
// "TEMPERATURE_DEVICE_K" to its Modbus address and data type.
func resolveName(name string) (register, error) {
	if reg, ok := fixedRegisters[name]; ok {
		return reg, nil
	}

	if rest, ok := strings.CutPrefix(name, "TEMPERATURE"); ok && rest != "" && rest[0] != '_' {
		ch, err := strconv.Atoi(rest)
		if err != nil || ch < 0 || ch > 7 {
			return register{}, fmt.Errorf("%w: %s", ErrInvalidChannel, name)
		}
		return register{address: temperatureBase + uint16(2*ch), dataType: typeFLOAT32}, nil
	}

	rest, ok := strings.CutPrefix(name, "AIN")
	if !ok {
		return register{}, fmt.Errorf("unknown register %q", name)
	}
	digits := rest
	suffix := ""
	if i := strings.IndexByte(rest, '_'); i >= 0 {
		digits, suffix = rest[:i], rest[i+1:]
	}
	ch, err := strconv.Atoi(digits)
	if err != nil || ch < 0 {
		return register{}, fmt.Errorf("%w: %s", ErrInvalidChannel, name)
	}
	block, ok := ainRegisters[suffix]
	if !ok {
		return register{}, fmt.Errorf("unknown register %q", name)
	}
	if ch > block.maxChannel {
		return register{}, fmt.Errorf("%w: %s", ErrInvalidChannel, name)
	}
	return register{
		address:  block.base + block.stride*uint16(ch),
		dataType: block.dataType,
	}, nil
}

// encodeValue packs a value into big-endian register bytes of the given type.
func encodeValue(t regType, value float64) []byte {
	switch t {
	case typeUINT16:
		buf := make([]byte, 2)
		binary.BigEndian.PutUint16(buf, uint16(value))
		return buf
	case typeUINT32:
		buf := make([]byte, 4)
		binary.BigEndian.PutUint32(buf, uint32(value))
		return buf
	default:
		buf := make([]byte, 4)
		binary.BigEndian.PutUint32(buf, math.Float32bits(float32(value)))
		return buf
	}
}

// decodeValue unpacks big-endian register bytes of the given type.
func decodeValue(t regType, buf []byte) (float64, error) {
	switch t {
	case typeUINT16:
		if len(buf) < 2 {
			return 0, fmt.Errorf("short register data: %d bytes", len(buf))
		}
		return float64(binary.BigEndian.Uint16(buf)), nil
	case typeUINT32:
		if len(buf) < 4 {
			return 0, fmt.Errorf("short register data: %d bytes", len(buf))
		}
		return float64(binary.BigEndian.Uint32(buf)), nil
	default:
		if len(buf) < 4 {
			return 0, fmt.Errorf("short register data: %d bytes", len(buf))
		}
		return float64(math.Float32frombits(binary.BigEndian.Uint32(buf))), nil
	}
}
