// Package timespinner models a wall-clock time as independently editable
// fields and composes them back into a single value.
package timespinner

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidTime = errors.New("invalid time")
	ErrHourFormat  = errors.New(`hour format must be "12" or "24"`)
)

// Value is a time of day, always held in 24-hour form.
type Value struct {
	Hour   int
	Minute int
	Second int
}

func (v Value) Valid() bool {
	return v.Hour >= 0 && v.Hour <= 23 &&
		v.Minute >= 0 && v.Minute <= 59 &&
		v.Second >= 0 && v.Second <= 59
}

// Time places v on the zero date so it can be formatted with Go layouts.
func (v Value) Time() time.Time {
	return time.Date(0, time.January, 1, v.Hour, v.Minute, v.Second, 0, time.UTC)
}

// Format renders v with a Go time layout such as "15:04:05" or "3:04 PM".
func (v Value) Format(layout string) string {
	return v.Time().Format(layout)
}

func (v Value) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", v.Hour, v.Minute, v.Second)
}

func FromTime(t time.Time) Value {
	return Value{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}
}

// Now returns the current local time of day.
func Now() Value {
	return FromTime(time.Now())
}

// Parse reads s with a Go time layout.
func Parse(layout, s string) (Value, error) {
	t, err := time.Parse(layout, strings.TrimSpace(s))
	if err != nil {
		return Value{}, fmt.Errorf("parse %q: %w", s, ErrInvalidTime)
	}
	return FromTime(t), nil
}

type HourFormat string

const (
	Hour24 HourFormat = "24"
	Hour12 HourFormat = "12"
)

// ParseHourFormat accepts "12" or "24"; empty means 24-hour.
func ParseHourFormat(s string) (HourFormat, error) {
	switch strings.TrimSpace(s) {
	case "", "24":
		return Hour24, nil
	case "12":
		return Hour12, nil
	}
	return "", fmt.Errorf("%q: %w", s, ErrHourFormat)
}

// HourRange is the range of the hour field in this format.
func (f HourFormat) HourRange() (int, int) {
	if f == Hour12 {
		return 1, 12
	}
	return 0, 23
}

type Meridiem int

const (
	AM Meridiem = iota
	PM
)

func (m Meridiem) String() string {
	if m == PM {
		return "PM"
	}
	return "AM"
}

// ParseMeridiem accepts "am" or "pm" in any case.
func ParseMeridiem(s string) (Meridiem, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "AM":
		return AM, true
	case "PM":
		return PM, true
	}
	return AM, false
}
