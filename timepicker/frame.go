package timepicker

import (
	"fmt"

	"github.com/charmbracelet/x/ansi"

	"github.com/jask/termface/widget"
)

// TimeFrame is a read-only entry showing the selected time with a button
// beside it that toggles the popup.
type TimeFrame struct {
	*picker
	frame  *widget.Node
	entry  *widget.Node
	button *widget.Node
}

// NewTimeFrame builds a TimeFrame named name inside parent.
func NewTimeFrame(parent *widget.Node, name string, cfg Config) (*TimeFrame, error) {
	if parent == nil {
		return nil, fmt.Errorf("new time frame: nil parent")
	}
	p, err := newPicker(cfg)
	if err != nil {
		return nil, fmt.Errorf("new time frame: %w", err)
	}
	f := &TimeFrame{
		picker: p,
		frame:  widget.NewFrame(name),
		entry:  widget.NewEntry("entry", p.cfg.Width),
	}
	if ed, ok := f.entry.Editor(); ok {
		ed.SetReadonly(true)
	}
	f.button = widget.NewButton("button", p.cfg.ButtonText, f.toggle)
	f.frame.Add(f.entry, f.button)
	f.layoutRow()
	parent.Add(f.frame)

	p.trigger = f.frame
	p.anchor = f.entry
	p.hostClick = true
	p.setText = f.entry.SetText
	p.refreshText()
	return f, nil
}

// toggle is the button command. Pressing the button while the popup is
// open closes it instead of reopening it.
func (f *TimeFrame) toggle() {
	if f.IsOpen() {
		f.HideTimePicker()
		return
	}
	if err := f.ShowTimePicker(); err != nil {
		f.logger.Error("open time picker", "err", err)
	}
}

func (f *TimeFrame) layoutRow() {
	eb := f.entry.Bounds()
	f.entry.Move(0, 0)
	f.button.Resize(ansi.StringWidth(f.button.Text())+2, 1)
	f.button.Move(eb.W, 0)
	f.frame.Resize(eb.W+f.button.Bounds().W, 1)
}

// SetButtonText relabels the button.
func (f *TimeFrame) SetButtonText(text string) {
	f.button.SetText(text)
	f.layoutRow()
	f.logger.Debug("button text set", "text", text, "width", f.button.Bounds().W)
}

// SetWidth sets the entry width in cells.
func (f *TimeFrame) SetWidth(width int) {
	if width <= 0 {
		return
	}
	f.entry.Resize(width, 1)
	f.layoutRow()
	f.logger.Debug("entry width set", "width", width)
}

func (f *TimeFrame) Node() *widget.Node   { return f.frame }
func (f *TimeFrame) Entry() *widget.Node  { return f.entry }
func (f *TimeFrame) Button() *widget.Node { return f.button }

// Destroy closes any open popup and removes the frame.
func (f *TimeFrame) Destroy() {
	f.HideTimePicker()
	f.frame.Destroy()
}
