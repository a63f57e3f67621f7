// Package model defines shared data structures.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Font size bounds for the countdown digits.
const (
	MinFontSize     = 20
	MaxFontSize     = 200
	DefaultFontSize = 60
)

const (
	secondsPerMinute = 60
	secondsPerHour   = 3600
	secondsPerDay    = 86400
)

// TimeRemaining is a countdown split into display fields.
type TimeRemaining struct {
	Days    int `json:"days" yaml:"days"`
	Hours   int `json:"hours" yaml:"hours"`
	Minutes int `json:"minutes" yaml:"minutes"`
	Seconds int `json:"seconds" yaml:"seconds"`
}

// FromSeconds decomposes a total second count. Negative totals clamp to zero.
func FromSeconds(total int64) TimeRemaining {
	if total <= 0 {
		return TimeRemaining{}
	}
	return TimeRemaining{
		Days:    int(total / secondsPerDay),
		Hours:   int((total % secondsPerDay) / secondsPerHour),
		Minutes: int((total % secondsPerHour) / secondsPerMinute),
		Seconds: int(total % secondsPerMinute),
	}
}

// FromDuration decomposes d using millisecond floors. Non-positive durations
// yield an all-zero value.
func FromDuration(d time.Duration) TimeRemaining {
	if d <= 0 {
		return TimeRemaining{}
	}
	ms := d.Milliseconds()
	return TimeRemaining{
		Days:    int(ms / 86400000),
		Hours:   int((ms / 3600000) % 24),
		Minutes: int((ms / 60000) % 60),
		Seconds: int((ms / 1000) % 60),
	}
}

// Total recombines the fields into seconds.
func (t TimeRemaining) Total() int64 {
	return int64(t.Days)*secondsPerDay +
		int64(t.Hours)*secondsPerHour +
		int64(t.Minutes)*secondsPerMinute +
		int64(t.Seconds)
}

// IsZero reports whether every field is zero.
func (t TimeRemaining) IsZero() bool {
	return t.Days == 0 && t.Hours == 0 && t.Minutes == 0 && t.Seconds == 0
}

// Get returns the value of a single field.
func (t TimeRemaining) Get(f Field) int {
	switch f {
	case FieldDays:
		return t.Days
	case FieldHours:
		return t.Hours
	case FieldMinutes:
		return t.Minutes
	default:
		return t.Seconds
	}
}

// With returns a copy with one field replaced.
func (t TimeRemaining) With(f Field, v int) TimeRemaining {
	switch f {
	case FieldDays:
		t.Days = v
	case FieldHours:
		t.Hours = v
	case FieldMinutes:
		t.Minutes = v
	default:
		t.Seconds = v
	}
	return t
}

func (t TimeRemaining) String() string {
	return fmt.Sprintf("%02dd %02dh %02dm %02ds", t.Days, t.Hours, t.Minutes, t.Seconds)
}

// Mode selects how the remaining time is computed.
type Mode int

const (
	ModeAutomatic Mode = iota
	ModeManual
)

func (m Mode) String() string {
	if m == ModeManual {
		return "manual"
	}
	return "automatic"
}

// Field identifies one of the four countdown fields.
type Field int

const (
	FieldDays Field = iota
	FieldHours
	FieldMinutes
	FieldSeconds
)

// Fields lists the countdown fields in display order.
var Fields = []Field{FieldDays, FieldHours, FieldMinutes, FieldSeconds}

var fieldNames = [...]string{"days", "hours", "minutes", "seconds"}

var fieldMax = [...]int{999, 23, 59, 59}

func (f Field) String() string {
	if f < FieldDays || f > FieldSeconds {
		return fmt.Sprintf("field(%d)", int(f))
	}
	return fieldNames[f]
}

// Label is the upper-case caption shown under a block.
func (f Field) Label() string {
	return strings.ToUpper(f.String())
}

// Max is the largest value a user may enter for the field.
func (f Field) Max() int {
	if f < FieldDays || f > FieldSeconds {
		return 0
	}
	return fieldMax[f]
}

// InRange reports whether v is an acceptable manual value for the field.
func (f Field) InRange(v int) bool {
	return v >= 0 && v <= f.Max()
}

// ValidFontSize reports whether v is within [MinFontSize, MaxFontSize].
func ValidFontSize(v int) bool {
	return v >= MinFontSize && v <= MaxFontSize
}

// State is the full persisted countdown state.
type State struct {
	Remaining     TimeRemaining
	Mode          Mode
	Paused        bool
	ManualTimeSet *bool
	FontSize      int
}

// DefaultState returns the state used when nothing has been persisted.
func DefaultState() State {
	return State{FontSize: DefaultFontSize}
}

// Manual reports whether the state is in manual mode.
func (s State) Manual() bool {
	return s.Mode == ModeManual
}

// ManualSet reports whether a manual duration has been established.
func (s State) ManualSet() bool {
	return s.ManualTimeSet != nil && *s.ManualTimeSet
}

// Setting is a raw persisted key/value pair.
type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

// BoolPtr returns a pointer to v.
func BoolPtr(v bool) *bool {
	return &v
}
