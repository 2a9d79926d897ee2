package service

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnknownPreset is returned for a range preset that is not supported.
var ErrUnknownPreset = errors.New("unknown range preset")

var presetDurations = map[string]time.Duration{
	"1h":  time.Hour,
	"6h":  6 * time.Hour,
	"12h": 12 * time.Hour,
	"24h": 24 * time.Hour,
}

// ResolvePreset turns a named range ("1h", "6h", "12h", "24h", "7d") into a
// window ending at now.
func ResolvePreset(name string, now time.Time) (time.Time, time.Time, error) {
	if name == "7d" {
		return now.AddDate(0, 0, -7), now, nil
	}
	d, ok := presetDurations[name]
	if !ok {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return now.Add(-d), now, nil
}
