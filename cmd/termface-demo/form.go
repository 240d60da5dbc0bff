package main

import (
	"fmt"

	"github.com/jask/termface/timepicker"
	"github.com/jask/termface/timespinner"
	"github.com/jask/termface/widget"
)

// form is the demo screen: one picker of each kind and a line reporting
// the last commit.
type form struct {
	start  *timepicker.TimeFrame
	alarm  *timepicker.TimeEntry
	status string
}

func buildForm(host *widget.Window, cfg timepicker.Config) (*form, error) {
	f := &form{status: "pick a time"}
	root := host.Root()

	startLabel := widget.NewLabel("start-label", "Start")
	startLabel.Move(2, 2)
	alarmLabel := widget.NewLabel("alarm-label", "Alarm")
	alarmLabel.Move(2, 4)
	root.Add(startLabel, alarmLabel)

	startCfg := cfg
	startCfg.OnCommit = f.report("start")
	start, err := timepicker.NewTimeFrame(root, "start", startCfg)
	if err != nil {
		return nil, fmt.Errorf("build form: %w", err)
	}
	start.Node().Move(10, 2)

	alarmCfg := cfg
	alarmCfg.OnCommit = f.report("alarm")
	alarm, err := timepicker.NewTimeEntry(root, "alarm", alarmCfg)
	if err != nil {
		return nil, fmt.Errorf("build form: %w", err)
	}
	alarm.Node().Move(10, 4)

	f.start, f.alarm = start, alarm
	return f, nil
}

func (f *form) report(name string) func(*timespinner.Value) {
	return func(v *timespinner.Value) {
		if v == nil {
			f.status = name + ": unchanged"
			return
		}
		f.status = name + ": " + v.String()
	}
}

// Status is the footer text.
func (f *form) Status() string { return f.status }
