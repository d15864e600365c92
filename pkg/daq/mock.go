package daq

import (
	"fmt"
	"strings"
	"sync"

	"github.com/kimlab/thermolog/pkg/config"
)

// Mock simulates a DAQ device for testing and development.
//
// Configuration writes are recorded in an in-memory register map. Reads of
// EF_READ_A return a deterministic ramp (base temperature plus a fixed step
// per batch), EF_READ_B the configured thermocouple voltage and EF_READ_C
// the configured cold junction temperature.
type Mock struct {
	cfg        *config.MockConfig
	deviceType DeviceType

	mu         sync.Mutex
	registers  map[string]float64
	writeCount int
	readCount  int
	failReadAt int
	closed     bool
}

// NewMock creates a new mocked device instance.
func NewMock(cfg *config.MockConfig) *Mock {
	if cfg == nil {
		cfg = &config.Default().Mock
	}

	deviceType := DeviceT7
	if strings.EqualFold(cfg.DeviceType, "T8") {
		deviceType = DeviceT8
	}

	return &Mock{
		cfg:        cfg,
		deviceType: deviceType,
		registers:  make(map[string]float64),
	}
}

// DeviceType returns the simulated device variant.
func (m *Mock) DeviceType() DeviceType {
	return m.deviceType
}

// ReadNames returns simulated values for the named registers in order.
func (m *Mock) ReadNames(names []string) ([]float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, &DeviceError{Op: "read", Register: "", Err: ErrNotConnected}
	}

	m.readCount++
	if m.failReadAt > 0 && m.readCount >= m.failReadAt {
		return nil, &DeviceError{Op: "read", Register: names[0], Err: fmt.Errorf("simulated read failure on batch %d", m.readCount)}
	}

	values := make([]float64, 0, len(names))
	for _, name := range names {
		if _, err := resolveName(name); err != nil {
			return nil, err
		}
		values = append(values, m.value(name))
	}
	return values, nil
}

// WriteNames records values for the named registers in order.
func (m *Mock) WriteNames(names []string, values []float64) error {
	if len(names) != len(values) {
		return fmt.Errorf("write: %d names for %d values", len(names), len(values))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return &DeviceError{Op: "write", Register: "", Err: ErrNotConnected}
	}

	for i, name := range names {
		if _, err := resolveName(name); err != nil {
			return err
		}
		m.registers[name] = values[i]
		m.writeCount++
	}
	return nil
}

// Close marks the mock as closed. It is idempotent.
func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// FailReadAt makes the nth ReadNames batch (1-based) and all later ones fail.
func (m *Mock) FailReadAt(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failReadAt = n
}

// WriteCount returns the number of register writes recorded so far.
func (m *Mock) WriteCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writeCount
}

// Register returns the last written value of a named register.
func (m *Mock) Register(name string) (float64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.registers[name]
	return v, ok
}

// Closed reports whether Close has been called.
func (m *Mock) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

func (m *Mock) value(name string) float64 {
	switch {
	case strings.HasSuffix(name, "_EF_READ_A"):
		return m.cfg.BaseTemperature + m.cfg.TemperatureStep*float64(m.readCount-1)
	case strings.HasSuffix(name, "_EF_READ_B"):
		return m.cfg.Voltage
	case strings.HasSuffix(name, "_EF_READ_C"):
		return m.cfg.CJCTemperature
	case name == "PRODUCT_ID":
		return float64(m.deviceType)
	}
	if v, ok := m.registers[name]; ok {
		return v
	}
	return 0
}
