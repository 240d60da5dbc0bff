package timespinner

import (
	"fmt"
	"strconv"
	"strings"
)

// Field is one editable cell of the composer.
type Field interface {
	Increment()
	Decrement()
	// Scroll maps a wheel delta: positive increments, zero or negative
	// decrements.
	Scroll(delta int)
	// ValidateAndCommit accepts raw text if it parses and is in range.
	// Rejected text reverts the display to the last committed value.
	ValidateAndCommit(raw string) bool
	Text() string
	OnChange(fn func())
	SetDisplay(fn func(string))
}

// NumberField is a wraparound integer cell such as an hour or a minute.
type NumberField struct {
	min, max int
	value    int
	format   string
	onChange func()
	display  func(string)
}

var _ Field = (*NumberField)(nil)

func NewNumberField(min, max int) *NumberField {
	if max < min {
		min, max = max, min
	}
	return &NumberField{min: min, max: max, value: min, format: "%02d"}
}

func (f *NumberField) Min() int { return f.min }
func (f *NumberField) Max() int { return f.max }
func (f *NumberField) Get() int { return f.value }

// Set stores v if it is in range. It does not fire OnChange.
func (f *NumberField) Set(v int) bool {
	if v < f.min || v > f.max {
		return false
	}
	f.value = v
	f.render()
	return true
}

func (f *NumberField) Increment() {
	f.value++
	if f.value > f.max {
		f.value = f.min
	}
	f.changed()
}

func (f *NumberField) Decrement() {
	f.value--
	if f.value < f.min {
		f.value = f.max
	}
	f.changed()
}

func (f *NumberField) Scroll(delta int) {
	if delta > 0 {
		f.Increment()
		return
	}
	f.Decrement()
}

func (f *NumberField) ValidateAndCommit(raw string) bool {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v < f.min || v > f.max {
		f.render()
		return false
	}
	f.value = v
	f.changed()
	return true
}

func (f *NumberField) Text() string {
	return fmt.Sprintf(f.format, f.value)
}

func (f *NumberField) OnChange(fn func()) { f.onChange = fn }

// SetDisplay registers where the formatted value is shown and renders the
// current value there immediately.
func (f *NumberField) SetDisplay(fn func(string)) {
	f.display = fn
	f.render()
}

func (f *NumberField) changed() {
	f.render()
	if f.onChange != nil {
		f.onChange()
	}
}

func (f *NumberField) render() {
	if f.display != nil {
		f.display(f.Text())
	}
}

// AmPmField is the two-value AM/PM cell. Increment and decrement both
// toggle.
type AmPmField struct {
	value    Meridiem
	onChange func()
	display  func(string)
}

var _ Field = (*AmPmField)(nil)

func NewAmPmField(m Meridiem) *AmPmField {
	return &AmPmField{value: m}
}

func (f *AmPmField) Get() Meridiem { return f.value }

func (f *AmPmField) Set(m Meridiem) {
	f.value = m
	f.render()
}

func (f *AmPmField) Increment() {
	f.value = (f.value + 1) % 2
	f.changed()
}

func (f *AmPmField) Decrement() {
	f.value = (f.value + 1) % 2
	f.changed()
}

// CanIncrement and CanDecrement drive the arrow affordance: at AM only
// the down arrow is live, at PM only the up arrow.
func (f *AmPmField) CanIncrement() bool { return f.value == PM }
func (f *AmPmField) CanDecrement() bool { return f.value == AM }

func (f *AmPmField) Scroll(delta int) {
	if delta > 0 {
		f.Increment()
		return
	}
	f.Decrement()
}

func (f *AmPmField) ValidateAndCommit(raw string) bool {
	m, ok := ParseMeridiem(raw)
	if !ok {
		f.render()
		return false
	}
	f.value = m
	f.changed()
	return true
}

func (f *AmPmField) Text() string { return f.value.String() }

func (f *AmPmField) OnChange(fn func()) { f.onChange = fn }

func (f *AmPmField) SetDisplay(fn func(string)) {
	f.display = fn
	f.render()
}

func (f *AmPmField) changed() {
	f.render()
	if f.onChange != nil {
		f.onChange()
	}
}

func (f *AmPmField) render() {
	if f.display != nil {
		f.display(f.Text())
	}
}
