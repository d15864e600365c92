package console

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kimlab/thermolog/pkg/acquire"
)

func TestConsoleOutput(t *testing.T) {
	o := New("C")

	rec := acquire.Record{
		Timestamp: time.Now(),
		Time:      time.Now().Format(acquire.TimeFormat),
		Elapsed:   1.5,
		Channels: []acquire.ChannelReading{
			{Channel: 0, Temperature: 23.5, Voltage: 0.00125, CJCTemperature: 295.0},
		},
	}

	assert.NoError(t, o.Publish(rec))
	assert.NoError(t, o.Close())
}
