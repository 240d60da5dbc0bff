package timespinner

import (
	"fmt"
	"strconv"
	"strings"
)

// Fields is the per-field view of a Value. Hour is the displayed hour, so
// in 12-hour mode it lies in 1..12 and Meridiem says which half of the day.
type Fields struct {
	Hour     int
	Minute   int
	Second   int
	Meridiem Meridiem
}

// Decompose splits v into field values for the given hour format.
func Decompose(v Value, f HourFormat) Fields {
	out := Fields{Hour: v.Hour, Minute: v.Minute, Second: v.Second}
	if f != Hour12 {
		return out
	}
	switch {
	case v.Hour == 0:
		out.Hour, out.Meridiem = 12, AM
	case v.Hour < 12:
		out.Meridiem = AM
	case v.Hour == 12:
		out.Meridiem = PM
	default:
		out.Hour, out.Meridiem = v.Hour-12, PM
	}
	return out
}

// Compose is the inverse of Decompose. With seconds hidden the second is
// taken as 0. The result is range-checked in 24-hour form.
func Compose(fl Fields, f HourFormat, showSeconds bool) (Value, error) {
	v := Value{Hour: fl.Hour, Minute: fl.Minute}
	if showSeconds {
		v.Second = fl.Second
	}
	if f == Hour12 {
		if fl.Hour < 1 || fl.Hour > 12 {
			return Value{}, fmt.Errorf("hour %d: %w", fl.Hour, ErrInvalidTime)
		}
		switch {
		case fl.Hour == 12 && fl.Meridiem == AM:
			v.Hour = 0
		case fl.Hour == 12 && fl.Meridiem == PM:
			v.Hour = 12
		case fl.Hour >= 1 && fl.Hour <= 11 && fl.Meridiem == PM:
			v.Hour = fl.Hour + 12
		}
	}
	if !v.Valid() {
		return Value{}, fmt.Errorf("%s: %w", v, ErrInvalidTime)
	}
	return v, nil
}

// ComposeText parses raw field text, as shown in the entries, and composes
// it. second is ignored when seconds are hidden and meridiem is ignored in
// 24-hour mode.
func ComposeText(hour, minute, second, meridiem string, f HourFormat, showSeconds bool) (Value, error) {
	var fl Fields
	var err error
	if fl.Hour, err = atoi("hour", hour); err != nil {
		return Value{}, err
	}
	if fl.Minute, err = atoi("minute", minute); err != nil {
		return Value{}, err
	}
	if showSeconds {
		if fl.Second, err = atoi("second", second); err != nil {
			return Value{}, err
		}
	}
	if f == Hour12 {
		m, ok := ParseMeridiem(meridiem)
		if !ok {
			return Value{}, fmt.Errorf("meridiem %q: %w", meridiem, ErrInvalidTime)
		}
		fl.Meridiem = m
	}
	return Compose(fl, f, showSeconds)
}

func atoi(field, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%s %q: %w", field, s, ErrInvalidTime)
	}
	return n, nil
}
