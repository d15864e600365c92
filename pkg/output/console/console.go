package console

import (
	"fmt"

	"github.com/kimlab/thermolog/pkg/acquire"
	"github.com/kimlab/thermolog/pkg/output"
)

type ConsoleOutput struct {
	unit string
}

// New creates a sink echoing each record to stdout.
func New(unit string) output.Output { return &ConsoleOutput{unit: unit} }

func (c *ConsoleOutput) Publish(rec acquire.Record) error {
	fmt.Printf("%s dt=%.3f", rec.Time, rec.Elapsed)
	for _, ch := range rec.Channels {
		fmt.Printf(" AIN%d: T=%.3f%s V=%.6f CJC=%.3f", ch.Channel, ch.Temperature, c.unit, ch.Voltage, ch.CJCTemperature)
	}
	fmt.Println()
	return nil
}

func (c *ConsoleOutput) Close() error { return nil }
