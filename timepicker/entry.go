package timepicker

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/termface/widget"
)

// dropDownWidth is the clickable arrow area at the right end of a
// TimeEntry.
const dropDownWidth = 2

// TimeEntry is a read-only entry that behaves like a combobox: pressing
// its arrow area, Down or space opens the popup.
type TimeEntry struct {
	*picker
	entry *widget.Node
}

// NewTimeEntry builds a TimeEntry named name inside parent.
func NewTimeEntry(parent *widget.Node, name string, cfg Config) (*TimeEntry, error) {
	if parent == nil {
		return nil, fmt.Errorf("new time entry: nil parent")
	}
	p, err := newPicker(cfg)
	if err != nil {
		return nil, fmt.Errorf("new time entry: %w", err)
	}
	e := &TimeEntry{
		picker: p,
		entry:  widget.NewEntry(name, p.cfg.Width+dropDownWidth),
	}
	if ed, ok := e.entry.Editor(); ok {
		ed.SetReadonly(true)
	}
	e.entry.Bind(widget.ButtonPress, e.press)
	e.entry.Bind(widget.KeyPress, e.key)
	e.entry.Bind(widget.FocusOut, e.focusLost)
	parent.Add(e.entry)

	p.trigger = e.entry
	p.anchor = e.entry
	p.setText = e.entry.SetText
	p.resetPressed = func() { e.entry.SetPressed(false) }
	p.refreshText()
	return e, nil
}

// press opens or closes the popup when the arrow area is hit. Other
// presses fall through so the entry takes focus.
func (e *TimeEntry) press(ev widget.Event) widget.Result {
	r := e.entry.WindowRect()
	if ev.X < r.Right()-dropDownWidth {
		return widget.Continue
	}
	e.entry.SetPressed(true)
	e.DropDown()
	return widget.Break
}

func (e *TimeEntry) key(ev widget.Event) widget.Result {
	switch ev.Key.Type {
	case tea.KeyDown, tea.KeySpace:
		if err := e.ShowTimePicker(); err != nil {
			e.logger.Error("open time picker", "err", err)
		}
		return widget.Break
	}
	return widget.Continue
}

// focusLost closes the popup unless focus went into it.
func (e *TimeEntry) focusLost(widget.Event) widget.Result {
	if !e.IsOpen() {
		return widget.Continue
	}
	d := e.display()
	if d == nil {
		return widget.Continue
	}
	focused := d.Focused()
	if focused == e.entry || widget.IsDescendant(focused, e.spinner.Node()) {
		return widget.Continue
	}
	e.HideTimePicker()
	return widget.Continue
}

// DropDown shows the popup, or hides it when it is already showing.
func (e *TimeEntry) DropDown() {
	if e.IsOpen() && e.popup.Mapped() {
		e.HideTimePicker()
		return
	}
	if err := e.ShowTimePicker(); err != nil {
		e.logger.Error("open time picker", "err", err)
	}
}

// SetWidth sets the text width in cells, not counting the arrow area.
func (e *TimeEntry) SetWidth(width int) {
	if width <= 0 {
		return
	}
	e.entry.Resize(width+dropDownWidth, 1)
	e.logger.Debug("entry width set", "width", width)
}

func (e *TimeEntry) Node() *widget.Node { return e.entry }

// Destroy closes any open popup and removes the entry.
func (e *TimeEntry) Destroy() {
	e.HideTimePicker()
	e.entry.Destroy()
}
