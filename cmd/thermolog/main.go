package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/kimlab/thermolog/pkg/acquire"
	"github.com/kimlab/thermolog/pkg/config"
	"github.com/kimlab/thermolog/pkg/daq"
	"github.com/kimlab/thermolog/pkg/output"
	"github.com/kimlab/thermolog/pkg/output/console"
	"github.com/kimlab/thermolog/pkg/output/csvfile"
	"github.com/kimlab/thermolog/pkg/output/mqtt"
	"github.com/kimlab/thermolog/pkg/thermocouple"
)

func main() {
	cfgPath := flag.String("config", "thermolog.yaml", "Path to YAML config file")
	flagAddress := flag.String("address", "", "Device Modbus TCP endpoint (host:port)")
	flagChannels := flag.String("channels", "", "Comma-separated AIN channels, e.g. 0,2")
	flagType := flag.String("type", "", "Thermocouple type (E,J,K,R,T,S,N,B,C)")
	flagUnit := flag.String("unit", "", "Temperature unit (K,C,F)")
	flagCadence := flag.Duration("cadence", 0, "Time between readings, e.g. 1s")
	flagIterations := flag.Int("iterations", -1, "Number of readings (0 = run until interrupted)")
	flagSaveTo := flag.String("save-to", "", "CSV destination: directory or file path")
	flagMock := flag.Bool("mock", false, "Use the mocked device instead of hardware")
	flagQuiet := flag.Bool("quiet", false, "Do not echo records to stdout")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	applyFlags(cfg, flagAddress, flagChannels, flagType, flagUnit, flagCadence, flagIterations, flagSaveTo, flagMock, flagQuiet)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	tcType, err := thermocouple.ParseType(cfg.Sensor.Type)
	if err != nil {
		log.Fatalf("sensor: %v", err)
	}
	unit, err := thermocouple.ParseUnit(cfg.Sensor.Unit)
	if err != nil {
		log.Fatalf("sensor: %v", err)
	}

	dev, err := openDevice(cfg)
	if err != nil {
		log.Fatalf("device: %v", err)
	}
	defer dev.Close()

	plan, err := thermocouple.BuildPlan(cfg.Channels, tcType, unit, dev.DeviceType())
	if err != nil {
		log.Fatalf("plan: %v", err)
	}

	start := time.Now()
	outputs, err := buildOutputs(cfg, start)
	if err != nil {
		log.Fatalf("output: %v", err)
	}
	defer func() {
		for _, o := range outputs {
			if err := o.Close(); err != nil {
				log.Printf("output close: %v", err)
			}
		}
	}()

	session := acquire.New(dev, plan, cfg.Sampling)
	session.OnRecord(func(rec acquire.Record) {
		for _, o := range outputs {
			if err := o.Publish(rec); err != nil {
				log.Printf("output publish: %v", err)
			}
		}
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("Reading thermocouples %s (type %s, unit %s) every %v...",
		channelNames(cfg.Channels), tcType, unit, cfg.Sampling.Cadence)

	result := session.Run(ctx)

	log.Printf("Session %s with %d records", result.State, len(result.Records))
	if result.Err != nil {
		log.Fatalf("session: %v", result.Err)
	}
}

func openDevice(cfg *config.Config) (daq.Device, error) {
	if cfg.Device.Mock {
		return daq.NewMock(&cfg.Mock), nil
	}
	return daq.NewTCP(cfg.Device)
}

func buildOutputs(cfg *config.Config, start time.Time) ([]output.Output, error) {
	var outputs []output.Output
	if cfg.Output.Print {
		outputs = append(outputs, console.New(cfg.Sensor.Unit))
	}
	if cfg.Output.SaveTo != "" {
		o, err := csvfile.New(cfg.Output.SaveTo, cfg.Channels, cfg.Sensor.Unit, start)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, o)
	}
	if cfg.Output.MQTT.Server != "" {
		o, err := mqtt.New(cfg.Output.MQTT, cfg.Sensor.Unit)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, o)
	}
	return outputs, nil
}

func applyFlags(cfg *config.Config, address, channels, tcType, unit *string, cadence *time.Duration, iterations *int, saveTo *string, mock, quiet *bool) {
	if *address != "" {
		cfg.Device.Address = *address
	}
	if *channels != "" {
		chs, err := parseChannels(*channels)
		if err != nil {
			log.Fatalf("channels: %v", err)
		}
		cfg.Channels = chs
	}
	if *tcType != "" {
		cfg.Sensor.Type = *tcType
	}
	if *unit != "" {
		cfg.Sensor.Unit = *unit
	}
	if *cadence != 0 {
		cfg.Sampling.Cadence = *cadence
	}
	if *iterations >= 0 {
		cfg.Sampling.Iterations = *iterations
	}
	if *saveTo != "" {
		cfg.Output.SaveTo = *saveTo
	}
	if *mock {
		cfg.Device.Mock = true
	}
	if *quiet {
		cfg.Output.Print = false
	}
}

func parseChannels(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t == "" {
			continue
		}
		v, err := strconv.Atoi(t)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func channelNames(channels []int) string {
	names := make([]string, len(channels))
	for i, ch := range channels {
		names[i] = daq.ChannelName(ch)
	}
	return strings.Join(names, ",")
}
