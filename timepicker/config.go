// Package timepicker provides popup time pickers anchored to a trigger
// widget: TimeFrame (an entry with a button) and TimeEntry (a
// combobox-style entry). Both open a timespinner in an undecorated overlay
// window and close it on commit, cancel, Escape, an outside click or a
// focus loss.
package timepicker

import (
	"errors"

	"github.com/charmbracelet/log"

	"github.com/jask/termface/theme"
	"github.com/jask/termface/timespinner"
)

// ErrOverlayBuild is returned when the popup could not be constructed.
// The picker is left closed.
var ErrOverlayBuild = errors.New("build time picker overlay")

const (
	DefaultTimeFormat = "15:04:05"
	DefaultWidth      = 15
	DefaultButtonText = "🕐"
)

// Config is shared by both adapters. It is read when a popup opens; the
// hour format and seconds visibility can be changed afterwards through the
// adapter.
type Config struct {
	// TimeFormat is a Go time layout for the adapter's text.
	TimeFormat  string
	HourFormat  timespinner.HourFormat
	ShowSeconds bool
	// Theme names a built-in palette for the popup window. Empty follows
	// the application palette.
	Theme string
	// Locale overrides the display locale for popup labels.
	Locale string
	// Initial is the starting time; nil means now.
	Initial *timespinner.Value
	// OnCommit runs once per popup: with the value on OK, with nil on
	// cancel or any other dismissal.
	OnCommit func(*timespinner.Value)

	// Width is the entry width in cells.
	Width int
	// ButtonText labels the TimeFrame button. TimeEntry ignores it.
	ButtonText string

	Logger *log.Logger
}

func DefaultConfig() Config {
	return Config{
		TimeFormat:  DefaultTimeFormat,
		HourFormat:  timespinner.Hour24,
		ShowSeconds: true,
		Width:       DefaultWidth,
		ButtonText:  DefaultButtonText,
	}
}

// normalize fills zero fields with defaults and rejects what cannot be
// repaired.
func (c Config) normalize() (Config, error) {
	if c.TimeFormat == "" {
		c.TimeFormat = DefaultTimeFormat
	}
	f, err := timespinner.ParseHourFormat(string(c.HourFormat))
	if err != nil {
		return c, err
	}
	c.HourFormat = f
	if c.Width <= 0 {
		c.Width = DefaultWidth
	}
	if c.ButtonText == "" {
		c.ButtonText = DefaultButtonText
	}
	if c.Logger == nil {
		c.Logger = log.Default().WithPrefix("timepicker")
	}
	if c.Theme != "" {
		if _, err := theme.Lookup(c.Theme); err != nil {
			c.Logger.Debug("unknown theme, using application theme", "theme", c.Theme)
			c.Theme = ""
		}
	}
	return c, nil
}
