package timepicker

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/jask/termface/dpi"
	"github.com/jask/termface/lang"
	"github.com/jask/termface/timespinner"
	"github.com/jask/termface/widget"
)

// Focus is requested when the popup opens and again after these delays.
const (
	focusRetry = 50 * time.Millisecond
	focusForce = 100 * time.Millisecond
)

type spinnerFactory func(parent *widget.Node, opts timespinner.Options) (*timespinner.Spinner, error)

// picker is the overlay state shared by both adapters. It is the only
// thing that opens or closes the popup.
type picker struct {
	cfg    Config
	logger *log.Logger

	// trigger is the adapter's own node; anchor is the node the popup
	// hangs below.
	trigger *widget.Node
	anchor  *widget.Node

	selected *timespinner.Value
	popup    *widget.Window
	spinner  *timespinner.Spinner

	// hostClick is set only for adapters with a separate button.
	hostClick   bool
	hostWindow  *widget.Window
	hostBinding string

	// generation changes on every open and close so deferred callbacks
	// can tell they are stale.
	generation int
	committed  bool

	setText      func(string)
	resetPressed func()
	newSpinner   spinnerFactory
}

func newPicker(cfg Config) (*picker, error) {
	cfg, err := cfg.normalize()
	if err != nil {
		return nil, err
	}
	p := &picker{
		cfg:        cfg,
		logger:     cfg.Logger,
		newSpinner: timespinner.New,
	}
	v := timespinner.Now()
	if cfg.Initial != nil {
		if !cfg.Initial.Valid() {
			return nil, fmt.Errorf("initial %s: %w", cfg.Initial, timespinner.ErrInvalidTime)
		}
		v = *cfg.Initial
	}
	p.selected = &v
	return p, nil
}

func (p *picker) display() *widget.Display {
	return p.trigger.Display()
}

// IsOpen reports whether the popup is showing.
func (p *picker) IsOpen() bool {
	return p.popup != nil && p.popup.Exists()
}

// Popup returns the overlay window while open.
func (p *picker) Popup() *widget.Window {
	if !p.IsOpen() {
		return nil
	}
	return p.popup
}

// Spinner returns the composer while open.
func (p *picker) Spinner() *timespinner.Spinner {
	if !p.IsOpen() {
		return nil
	}
	return p.spinner
}

// ---------------------------------------------------------------------------
// Open
// ---------------------------------------------------------------------------

// ShowTimePicker opens the popup. It does nothing when already open. On
// failure the picker is left closed and the error wraps ErrOverlayBuild.
func (p *picker) ShowTimePicker() (err error) {
	if p.IsOpen() {
		p.logger.Debug("popup already open")
		return nil
	}
	if p.popup != nil {
		// Destroyed behind our back.
		p.teardown()
	}
	d := p.display()
	if d == nil {
		return fmt.Errorf("%w: %w", ErrOverlayBuild, widget.ErrDestroyed)
	}
	defer func() {
		if r := recover(); r != nil {
			p.teardown()
			err = fmt.Errorf("%w: %v", ErrOverlayBuild, r)
		}
		if err != nil {
			p.logger.Debug("popup construction failed", "err", err)
		}
	}()

	p.generation++
	p.committed = false
	p.popup = d.NewWindow(widget.WindowOptions{
		Name:         p.trigger.Name() + "-popup",
		TransientFor: p.trigger.Window(),
		Withdrawn:    true,
		Theme:        p.cfg.Theme,
	})

	initial := *p.selected
	sp, err := p.newSpinner(p.popup.Root(), timespinner.Options{
		HourFormat:  p.cfg.HourFormat,
		ShowSeconds: p.cfg.ShowSeconds,
		Initial:     &initial,
		OnSelect:    p.onSelect,
		Label:       p.label,
		Logger:      p.logger,
	})
	if err != nil {
		p.teardown()
		return fmt.Errorf("%w: %w", ErrOverlayBuild, err)
	}
	p.spinner = sp
	sp.OnFocusOut(p.focusOut)
	p.layout()

	p.popup.Deiconify()
	p.popup.Lift()
	p.popup.Bind(widget.KeyPress, func(ev widget.Event) widget.Result {
		if ev.Key.Type == tea.KeyEsc {
			p.HideTimePicker()
			return widget.Break
		}
		return widget.Continue
	})
	p.bindCoordinator()
	p.requestFocus()
	p.logger.Debug("popup opened", "trigger", p.trigger.Path(), "bounds", p.popup.Bounds())
	return nil
}

// layout sizes the popup around the spinner and places it below the
// anchor.
func (p *picker) layout() {
	d := p.display()
	pad := dpi.Scale(1, dpi.ScalingFactor(d))
	p.spinner.Node().Move(pad, pad)
	w, h := p.popup.ReqSize()
	w, h = w+pad, h+pad
	sw, sh := d.Size()
	x, y := Place(p.anchor.ScreenRect(), w, h, sw, sh)
	p.popup.SetGeometry(widget.Rect{X: x, Y: y, W: w, H: h})
}

func (p *picker) label(key string) string {
	if p.cfg.Locale != "" {
		return lang.Get(key, lang.Tag(p.cfg.Locale))
	}
	if d := p.display(); d != nil {
		return lang.Get(key, d)
	}
	return lang.Get(key, nil)
}

// requestFocus puts focus on the first field now and twice more shortly
// after, in case something else grabbed it while the popup was mapping.
func (p *picker) requestFocus() {
	d := p.display()
	gen := p.generation
	p.focusComposer(false)
	d.After(focusRetry, func() {
		if p.generation == gen && p.IsOpen() {
			p.focusComposer(false)
		}
	})
	d.After(focusForce, func() {
		if p.generation == gen && p.IsOpen() {
			p.focusComposer(true)
		}
	})
}

// focusComposer moves focus to the first field unless it is already
// somewhere inside the composer.
func (p *picker) focusComposer(force bool) {
	if p.spinner == nil {
		return
	}
	d := p.display()
	if d == nil {
		return
	}
	if widget.IsDescendant(d.Focused(), p.spinner.Node()) {
		if force {
			p.popup.Lift()
		}
		return
	}
	first := p.spinner.FirstField()
	var err error
	if force {
		err = d.FocusForce(first)
	} else {
		err = d.FocusSet(first)
	}
	if err != nil {
		p.logger.Debug("focus composer", "err", err)
	}
}

// ---------------------------------------------------------------------------
// Close
// ---------------------------------------------------------------------------

// HideTimePicker closes the popup. Closing an already closed picker does
// nothing.
func (p *picker) HideTimePicker() {
	if p.popup == nil && p.hostBinding == "" {
		return
	}
	wasOpen := p.popup != nil
	p.teardown()
	if p.resetPressed != nil {
		p.resetPressed()
	}
	if wasOpen && !p.committed {
		p.committed = true
		p.notify(nil)
	}
	p.logger.Debug("popup closed", "trigger", p.trigger.Path())
}

// teardown destroys whatever part of the popup exists and removes the
// host click subscription.
func (p *picker) teardown() {
	p.generation++
	if p.popup != nil {
		p.popup.Destroy()
	}
	p.popup = nil
	p.spinner = nil
	p.unbindHost()
}

// onSelect receives the spinner's OK (v set) or Cancel (v nil).
func (p *picker) onSelect(v *timespinner.Value) {
	if v != nil {
		cp := *v
		p.selected = &cp
		p.refreshText()
	}
	p.committed = true
	p.HideTimePicker()
	p.notify(v)
}

func (p *picker) notify(v *timespinner.Value) {
	if p.cfg.OnCommit != nil {
		p.cfg.OnCommit(v)
	}
}

// ---------------------------------------------------------------------------
// Value API
// ---------------------------------------------------------------------------

// SetSelectedTime changes the selected time, including an open popup's
// fields.
func (p *picker) SetSelectedTime(v timespinner.Value) error {
	if !v.Valid() {
		return fmt.Errorf("set selected time %s: %w", v, timespinner.ErrInvalidTime)
	}
	p.selected = &v
	if p.spinner != nil {
		if err := p.spinner.SetSelected(v); err != nil {
			return err
		}
	}
	p.refreshText()
	return nil
}

// Time returns the live value of an open popup, otherwise the selected
// time. ok is false when nothing is selected.
func (p *picker) Time() (timespinner.Value, bool) {
	if p.IsOpen() {
		return p.spinner.Selected(), true
	}
	if p.selected == nil {
		return timespinner.Value{}, false
	}
	return *p.selected, true
}

// TimeString formats Time with the configured layout, or "" when unset.
func (p *picker) TimeString() string {
	v, ok := p.Time()
	if !ok {
		return ""
	}
	return v.Format(p.cfg.TimeFormat)
}

// SetHourFormat switches an open popup between 12 and 24-hour fields and
// applies to later popups.
func (p *picker) SetHourFormat(f timespinner.HourFormat) error {
	f, err := timespinner.ParseHourFormat(string(f))
	if err != nil {
		return err
	}
	p.cfg.HourFormat = f
	if p.IsOpen() {
		if err := p.spinner.SetHourFormat(f); err != nil {
			return err
		}
		p.relayout()
	}
	return nil
}

// SetShowSeconds toggles the seconds field.
func (p *picker) SetShowSeconds(show bool) {
	p.cfg.ShowSeconds = show
	if p.IsOpen() {
		p.spinner.SetShowSeconds(show)
		p.relayout()
	}
}

// relayout resizes the popup after the spinner rebuilt its fields, which
// also dropped focus.
func (p *picker) relayout() {
	p.layout()
	p.focusComposer(false)
}

func (p *picker) refreshText() {
	if p.setText != nil {
		p.setText(p.TimeString())
	}
}
