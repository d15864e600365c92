package acquire

import (
	"time"

	"github.com/kimlab/thermolog/pkg/daq"
)

// TimeFormat is the wall-clock timestamp layout used in persisted records.
const TimeFormat = "2006/01/02, 15:04:05.000000"

// ChannelReading holds the three derived values read back for one channel on
// one tick.
type ChannelReading struct {
	Channel        int     `json:"channel"`
	Temperature    float64 `json:"temperature"`     // EF_READ_A
	Voltage        float64 `json:"voltage"`         // EF_READ_B
	CJCTemperature float64 `json:"cjc_temperature"` // EF_READ_C
}

// Record is one row of the acquisition table: a timestamped batch of channel
// readings.
type Record struct {
	Timestamp time.Time        `json:"-"`
	Time      string           `json:"time"` // Timestamp formatted with TimeFormat
	Elapsed   float64          `json:"dt"`   // Seconds since the session entered Running
	Channels  []ChannelReading `json:"channels"`
}

// Labels returns the per-channel column labels of the record table, in the
// same order ReadNames lists the registers.
func Labels(channels []int) []string {
	labels := make([]string, 0, 3*len(channels))
	for _, ch := range channels {
		name := daq.ChannelName(ch)
		labels = append(labels,
			"T_thermocouple_"+name,
			"V_thermocouple_"+name,
			"T_cold_junction_"+name,
		)
	}
	return labels
}
