// Package csvfile persists the record table to a CSV file, one row per tick.
package csvfile

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/kimlab/thermolog/pkg/acquire"
	"github.com/kimlab/thermolog/pkg/output"
)

// Layout of the timestamped filename used when the destination is a directory.
const fileTimeFormat = "2006_01_02_15_04_05"

type CSVOutput struct {
	file *os.File
	w    *csv.Writer
	unit string
}

// New creates a CSV sink for the configured channels. If dest is an existing
// directory, the file is named from the session start time and placed there;
// otherwise dest is taken as an explicit file path and its parent directory
// is created if missing.
//
// The header row holds the per-channel labels followed by time, dt and the
// session temperature unit tag. Rows are flushed as they arrive so an aborted
// session keeps everything collected up to the failure.
func New(dest string, channels []int, unit string, start time.Time) (output.Output, error) {
	path, err := resolvePath(dest, start)
	if err != nil {
		return nil, err
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create csv file: %w", err)
	}

	o := &CSVOutput{
		file: f,
		w:    csv.NewWriter(f),
		unit: unit,
	}

	header := append(acquire.Labels(channels), "time", "dt", "T unit")
	if err := o.w.Write(header); err != nil {
		f.Close()
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	o.w.Flush()

	return o, nil
}

func (o *CSVOutput) Publish(rec acquire.Record) error {
	row := make([]string, 0, 3*len(rec.Channels)+3)
	for _, ch := range rec.Channels {
		row = append(row,
			formatValue(ch.Temperature),
			formatValue(ch.Voltage),
			formatValue(ch.CJCTemperature),
		)
	}
	row = append(row, rec.Time, formatValue(rec.Elapsed), o.unit)

	if err := o.w.Write(row); err != nil {
		return fmt.Errorf("write csv row: %w", err)
	}
	o.w.Flush()
	return o.w.Error()
}

func (o *CSVOutput) Close() error {
	o.w.Flush()
	if err := o.w.Error(); err != nil {
		o.file.Close()
		return err
	}
	return o.file.Close()
}

func resolvePath(dest string, start time.Time) (string, error) {
	if info, err := os.Stat(dest); err == nil && info.IsDir() {
		return filepath.Join(dest, start.Format(fileTimeFormat)+".csv"), nil
	}
	if dir := filepath.Dir(dest); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("create output directory: %w", err)
		}
	}
	return dest, nil
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
