package model

import (
	"fmt"
	"strings"
	"time"
)

// Preset toast lengths.
const (
	ShortLength   = 1500 * time.Millisecond
	AverageLength = 3 * time.Second
	LongLength    = 7 * time.Second
)

type durationKind int

const (
	durationAverage durationKind = iota
	durationShort
	durationLong
	durationCustom
)

// Duration is how long a toast stays up before its timeout fires.
// The zero value is DurationAverage.
type Duration struct {
	kind   durationKind
	custom time.Duration
}

var (
	DurationShort   = Duration{kind: durationShort}
	DurationAverage = Duration{kind: durationAverage}
	DurationLong    = Duration{kind: durationLong}
)

// CustomDuration returns a Duration of exactly d.
func CustomDuration(d time.Duration) Duration {
	return Duration{kind: durationCustom, custom: d}
}

// Length resolves the duration to a single timeout.
func (d Duration) Length() time.Duration {
	switch d.kind {
	case durationShort:
		return ShortLength
	case durationLong:
		return LongLength
	case durationCustom:
		return d.custom
	default:
		return AverageLength
	}
}

// IsCustom reports whether the duration was given explicitly.
func (d Duration) IsCustom() bool {
	return d.kind == durationCustom
}

// String returns the preset name, or the Go duration for custom values.
func (d Duration) String() string {
	switch d.kind {
	case durationShort:
		return "short"
	case durationLong:
		return "long"
	case durationCustom:
		return d.custom.String()
	default:
		return "average"
	}
}

// ParseDuration accepts a preset name (short, average, long) or a Go
// duration string such as "5s".
func ParseDuration(s string) (Duration, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "average":
		return DurationAverage, nil
	case "short":
		return DurationShort, nil
	case "long":
		return DurationLong, nil
	}

	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return DurationAverage, fmt.Errorf("invalid duration %q: must be short, average, long or like '5s': %w", s, err)
	}
	if d <= 0 {
		return DurationAverage, fmt.Errorf("invalid duration %q: must be positive", s)
	}
	return CustomDuration(d), nil
}
