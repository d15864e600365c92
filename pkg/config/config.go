package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Device   DeviceConfig   `yaml:"device"`
	Channels []int          `yaml:"channels"`
	Sensor   SensorConfig   `yaml:"sensor"`
	Sampling SamplingConfig `yaml:"sampling"`
	Output   OutputConfig   `yaml:"output"`
	Mock     MockConfig     `yaml:"mock"`
}

// DeviceConfig contains device connection configuration.
type DeviceConfig struct {
	Address string        `yaml:"address"` // Modbus TCP endpoint, host:port
	UnitID  byte          `yaml:"unit_id"`
	Timeout time.Duration `yaml:"timeout"`
	Mock    bool          `yaml:"mock"` // Use the mocked device instead of hardware
}

// SensorConfig describes the attached thermocouples.
type SensorConfig struct {
	Type string `yaml:"type"` // Thermocouple type: E, J, K, R, T, S, N, B or C
	Unit string `yaml:"unit"` // Temperature unit: K, C or F
}

// SamplingConfig contains acquisition parameters.
type SamplingConfig struct {
	Cadence    time.Duration `yaml:"cadence"`    // Time between readings
	Iterations int           `yaml:"iterations"` // Number of readings, 0 = run until cancelled
}

// OutputConfig selects where records go.
type OutputConfig struct {
	Print  bool       `yaml:"print"`   // Echo each record to stdout
	SaveTo string     `yaml:"save_to"` // Empty = no file, directory or explicit .csv path
	MQTT   MQTTConfig `yaml:"mqtt"`
}

// MQTTConfig contains the optional MQTT sink configuration.
// The sink is enabled when Server is non-empty.
type MQTTConfig struct {
	Server   string `yaml:"server"` // e.g. tcp://localhost:1883
	ClientID string `yaml:"client_id"`
	Topic    string `yaml:"topic"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// MockConfig contains mock device configuration.
type MockConfig struct {
	DeviceType      string  `yaml:"device_type"`      // T7 or T8
	BaseTemperature float64 `yaml:"base_temperature"` // Initial thermocouple reading
	TemperatureStep float64 `yaml:"temperature_step"` // Per-read increment
	Voltage         float64 `yaml:"voltage"`          // Simulated thermocouple voltage (V)
	CJCTemperature  float64 `yaml:"cjc_temperature"`  // Simulated cold junction reading (K)
}

// Default returns a default configuration with sensible values.
func Default() *Config {
	return &Config{
		Device: DeviceConfig{
			Address: "192.168.1.207:502",
			UnitID:  1,
			Timeout: 5 * time.Second,
			Mock:    false,
		},
		Channels: []int{0},
		Sensor: SensorConfig{
			Type: "K",
			Unit: "C",
		},
		Sampling: SamplingConfig{
			Cadence:    time.Second,
			Iterations: 10,
		},
		Output: OutputConfig{
			Print:  true,
			SaveTo: "",
			MQTT: MQTTConfig{
				ClientID: "thermolog",
				Topic:    "thermolog/records",
			},
		},
		Mock: MockConfig{
			DeviceType:      "T7",
			BaseTemperature: 296.15,
			TemperatureStep: 0.05,
			Voltage:         0.00125,
			CJCTemperature:  295.0,
		},
	}
}

// Load loads configuration from a YAML file. If the file doesn't exist or
// fields are missing, it uses default values.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			// File doesn't exist, return defaults
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ensureDefaults()

	return cfg, nil
}

// Save saves the configuration to a YAML file.
func (c *Config) Save(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks the fields the acquisition engine depends on.
func (c *Config) Validate() error {
	if len(c.Channels) == 0 {
		return fmt.Errorf("at least one channel is required")
	}
	for _, ch := range c.Channels {
		if ch < 0 {
			return fmt.Errorf("invalid channel %d: must be non-negative", ch)
		}
	}
	if c.Sampling.Cadence <= 0 {
		return fmt.Errorf("cadence must be positive, got %v", c.Sampling.Cadence)
	}
	if c.Sampling.Iterations < 0 {
		return fmt.Errorf("iterations must be zero (unbounded) or positive, got %d", c.Sampling.Iterations)
	}
	if !c.Device.Mock && c.Device.Address == "" {
		return fmt.Errorf("device address is required")
	}
	return nil
}

// ensureDefaults ensures that all required fields have default values if missing.
func (c *Config) ensureDefaults() {
	def := Default()

	if c.Device.Address == "" {
		c.Device.Address = def.Device.Address
	}
	if c.Device.UnitID == 0 {
		c.Device.UnitID = def.Device.UnitID
	}
	if c.Device.Timeout == 0 {
		c.Device.Timeout = def.Device.Timeout
	}

	if len(c.Channels) == 0 {
		c.Channels = def.Channels
	}

	if c.Sensor.Type == "" {
		c.Sensor.Type = def.Sensor.Type
	}
	if c.Sensor.Unit == "" {
		c.Sensor.Unit = def.Sensor.Unit
	}

	if c.Sampling.Cadence == 0 {
		c.Sampling.Cadence = def.Sampling.Cadence
	}

	if c.Output.MQTT.ClientID == "" {
		c.Output.MQTT.ClientID = def.Output.MQTT.ClientID
	}
	if c.Output.MQTT.Topic == "" {
		c.Output.MQTT.Topic = def.Output.MQTT.Topic
	}

	if c.Mock.DeviceType == "" {
		c.Mock.DeviceType = def.Mock.DeviceType
	}
	if c.Mock.BaseTemperature == 0 {
		c.Mock.BaseTemperature = def.Mock.BaseTemperature
	}
	if c.Mock.Voltage == 0 {
		c.Mock.Voltage = def.Mock.Voltage
	}
	if c.Mock.CJCTemperature == 0 {
		c.Mock.CJCTemperature = def.Mock.CJCTemperature
	}
}
