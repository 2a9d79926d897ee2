// Package csvload reads exported meter readings for offline billing.
package csvload

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"powermonitor/backend/services/monitor-service/internal/models"
)

// Header columns. timestamp and power are required; voltage and current are
// optional and default to zero.
const (
	ColumnTimestamp = "timestamp"
	ColumnVoltage   = "voltage"
	ColumnCurrent   = "current"
	ColumnPower     = "power"
)

// localLayout is accepted besides RFC 3339 and read as UTC.
const localLayout = "2006-01-02 15:04:05"

// ParseReadings parses readings from r and returns them sorted by timestamp.
// Invalid rows are skipped and reported as a joined error, so callers can
// choose to bill the rows that did parse.
func ParseReadings(r io.Reader) ([]models.Reading, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	columns, err := indexHeader(header)
	if err != nil {
		return nil, err
	}

	var (
		readings []models.Reading
		rowErrs  []error
		rowNum   = 1
	)
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil {
			rowErrs = append(rowErrs, fmt.Errorf("row %d: read: %w", rowNum, err))
			continue
		}
		reading, err := parseRow(row, columns)
		if err != nil {
			rowErrs = append(rowErrs, fmt.Errorf("row %d: %w", rowNum, err))
			continue
		}
		reading.ID = fmt.Sprintf("row-%d", rowNum)
		readings = append(readings, reading)
	}

	if readings == nil {
		readings = []models.Reading{}
	}
	sort.SliceStable(readings, func(i, j int) bool {
		return readings[i].Timestamp.Before(readings[j].Timestamp)
	})
	return readings, errors.Join(rowErrs...)
}

// ParseFile opens path and parses it with ParseReadings.
func ParseFile(path string) ([]models.Reading, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseReadings(f)
}

func indexHeader(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{ColumnTimestamp, ColumnPower} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("unexpected header %q (want at least %s,%s)",
				strings.Join(header, ","), ColumnTimestamp, ColumnPower)
		}
	}
	return columns, nil
}

func parseRow(row []string, columns map[string]int) (models.Reading, error) {
	cell := func(name string) (string, bool) {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return "", false
		}
		return strings.TrimSpace(row[i]), true
	}

	raw, ok := cell(ColumnTimestamp)
	if !ok {
		return models.Reading{}, fmt.Errorf("missing %s", ColumnTimestamp)
	}
	ts, err := parseTimestamp(raw)
	if err != nil {
		return models.Reading{}, fmt.Errorf("parse %s %q: %w", ColumnTimestamp, raw, err)
	}

	reading := models.Reading{Timestamp: ts}
	fields := []struct {
		name     string
		dst      *float64
		required bool
	}{
		{ColumnVoltage, &reading.Voltage, false},
		{ColumnCurrent, &reading.Current, false},
		{ColumnPower, &reading.Power, true},
	}
	for _, f := range fields {
		raw, ok := cell(f.name)
		if !ok || raw == "" {
			if f.required {
				return models.Reading{}, fmt.Errorf("missing %s", f.name)
			}
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return models.Reading{}, fmt.Errorf("parse %s %q: %w", f.name, raw, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return models.Reading{}, fmt.Errorf("invalid %s %v", f.name, v)
		}
		*f.dst = v
	}
	if reading.Power < 0 {
		return models.Reading{}, fmt.Errorf("invalid %s %v: must not be negative", ColumnPower, reading.Power)
	}
	return reading, nil
}

func parseTimestamp(raw string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return ts.UTC(), nil
	}
	return time.ParseInLocation(localLayout, raw, time.UTC)
}
