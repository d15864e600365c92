package daq

import (
	"fmt"
	"log"
	"sync"

	"github.com/goburrow/modbus"

	"github.com/kimlab/thermolog/pkg/config"
)

// TCP is a session with a physical device over its Modbus TCP register map.
// Named registers resolve to Modbus addresses; reads use FC 3 and writes FC 16.
type TCP struct {
	handler *modbus.TCPClientHandler
	client  modbus.Client

	deviceType DeviceType

	mu        sync.Mutex
	connected bool
}

// NewTCP opens a session with the device at cfg.Address and probes its
// variant. Variants without thermocouple extended function support are
// rejected here, before any configuration is attempted.
func NewTCP(cfg config.DeviceConfig) (*TCP, error) {
	handler := modbus.NewTCPClientHandler(cfg.Address)
	handler.Timeout = cfg.Timeout
	handler.SlaveId = cfg.UnitID

	if err := handler.Connect(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNoDeviceFound, cfg.Address, err)
	}

	d := &TCP{
		handler:   handler,
		client:    modbus.NewClient(handler),
		connected: true,
	}

	productID, err := d.readName("PRODUCT_ID")
	if err != nil {
		d.Close()
		return nil, err
	}
	d.deviceType = DeviceType(productID)
	if !d.deviceType.SupportsThermocoupleEF() {
		d.Close()
		return nil, fmt.Errorf("%w: %s has no thermocouple extended function", ErrUnsupportedDevice, d.deviceType)
	}

	log.Printf("Opened %s at %s", d.deviceType, cfg.Address)

	return d, nil
}

// DeviceType returns the device variant discovered at open time.
func (d *TCP) DeviceType() DeviceType {
	return d.deviceType
}

// ReadNames reads the named registers in order and returns their values.
// Any failure discards the whole batch.
func (d *TCP) ReadNames(names []string) ([]float64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.connected {
		return nil, &DeviceError{Op: "read", Register: "", Err: ErrNotConnected}
	}

	values := make([]float64, 0, len(names))
	for _, name := range names {
		v, err := d.readName(name)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// WriteNames writes values to the named registers in order.
func (d *TCP) WriteNames(names []string, values []float64) error {
	if len(names) != len(values) {
		return fmt.Errorf("write: %d names for %d values", len(names), len(values))
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.connected {
		return &DeviceError{Op: "write", Register: "", Err: ErrNotConnected}
	}

	for i, name := range names {
		reg, err := resolveName(name)
		if err != nil {
			return err
		}
		buf := encodeValue(reg.dataType, values[i])
		if _, err := d.client.WriteMultipleRegisters(reg.address, reg.dataType.quantity(), buf); err != nil {
			return &DeviceError{Op: "write", Register: name, Err: err}
		}
	}
	return nil
}

// Close releases the connection. It is idempotent and safe on failure paths.
func (d *TCP) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.connected {
		return nil
	}
	d.connected = false
	return d.handler.Close()
}

func (d *TCP) readName(name string) (float64, error) {
	reg, err := resolveName(name)
	if err != nil {
		return 0, err
	}
	buf, err := d.client.ReadHoldingRegisters(reg.address, reg.dataType.quantity())
	if err != nil {
		return 0, &DeviceError{Op: "read", Register: name, Err: err}
	}
	v, err := decodeValue(reg.dataType, buf)
	if err != nil {
		return 0, &DeviceError{Op: "read", Register: name, Err: err}
	}
	return v, nil
}
