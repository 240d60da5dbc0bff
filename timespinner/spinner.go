package timespinner

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/jask/termface/lang"
	"github.com/jask/termface/widget"
)

// Label keys looked up through the lang catalog.
const (
	LabelHour   = "timepicker.hour"
	LabelMinute = "timepicker.minute"
	LabelSecond = "timepicker.second"
	LabelAmPm   = "timepicker.am_pm"
	LabelOK     = "timepicker.ok"
	LabelCancel = "timepicker.cancel"
)

const (
	fieldWidth = 2
	actionRow  = 5
)

// Options configures a Spinner.
type Options struct {
	HourFormat  HourFormat
	ShowSeconds bool
	// Initial is the starting value; nil means the current time.
	Initial *Value
	// OnSelect receives the composed value on Commit and nil on Cancel.
	OnSelect func(*Value)
	// Label resolves label keys. Defaults to the lang catalog for the
	// parent's display locale.
	Label  func(key string) string
	Logger *log.Logger
}

type column struct {
	field Field
	entry *widget.Node
	up    *widget.Node
	down  *widget.Node
}

// Spinner is the time composer: one column per field plus OK and Cancel
// buttons, laid out inside a single frame.
type Spinner struct {
	root        *widget.Node
	format      HourFormat
	showSeconds bool
	value       Value

	hour    *NumberField
	minute  *NumberField
	second  *NumberField
	ampm    *AmPmField
	columns []*column

	onSelect   func(*Value)
	onFocusOut widget.Handler
	label      func(string) string
	logger     *log.Logger
}

// New builds a Spinner as a child of parent.
func New(parent *widget.Node, opts Options) (*Spinner, error) {
	if parent == nil {
		return nil, fmt.Errorf("new spinner: nil parent")
	}
	format, err := ParseHourFormat(string(opts.HourFormat))
	if err != nil {
		return nil, fmt.Errorf("new spinner: %w", err)
	}
	v := Now()
	if opts.Initial != nil {
		v = *opts.Initial
	}
	if !v.Valid() {
		return nil, fmt.Errorf("new spinner: %s: %w", v, ErrInvalidTime)
	}
	if !opts.ShowSeconds {
		v.Second = 0
	}

	s := &Spinner{
		root:        widget.NewFrame("timespinner"),
		format:      format,
		showSeconds: opts.ShowSeconds,
		value:       v,
		onSelect:    opts.OnSelect,
		label:       opts.Label,
		logger:      opts.Logger,
	}
	if s.logger == nil {
		s.logger = log.Default().WithPrefix("timespinner")
	}
	if s.label == nil {
		s.label = func(key string) string {
			if d := parent.Display(); d != nil {
				return lang.Get(key, d)
			}
			return lang.Get(key, nil)
		}
	}
	parent.Add(s.root)
	s.build()
	return s, nil
}

// ---------------------------------------------------------------------------
// Layout
// ---------------------------------------------------------------------------

func (s *Spinner) build() {
	s.root.DestroyChildren()
	s.columns = nil

	fl := Decompose(s.value, s.format)
	lo, hi := s.format.HourRange()
	s.hour = NewNumberField(lo, hi)
	s.hour.Set(fl.Hour)
	s.minute = NewNumberField(0, 59)
	s.minute.Set(fl.Minute)
	s.second = nil
	if s.showSeconds {
		s.second = NewNumberField(0, 59)
		s.second.Set(fl.Second)
	}
	s.ampm = nil
	if s.format == Hour12 {
		s.ampm = NewAmPmField(fl.Meridiem)
	}

	x := s.addColumn(0, "hour", LabelHour, s.hour)
	x = s.addSeparator(x)
	x = s.addColumn(x, "minute", LabelMinute, s.minute)
	if s.second != nil {
		x = s.addSeparator(x)
		x = s.addColumn(x, "second", LabelSecond, s.second)
	}
	if s.ampm != nil {
		x = s.addColumn(x+2, "ampm", LabelAmPm, s.ampm)
		s.syncAffordance()
	}

	ok := widget.NewButton("ok", s.label(LabelOK), s.Commit)
	cancel := widget.NewButton("cancel", s.label(LabelCancel), s.Cancel)
	ok.Move(0, actionRow)
	cancel.Move(ok.Bounds().Right()+1, actionRow)
	s.root.Add(ok, cancel)

	w, h := s.root.NaturalSize()
	if w < x {
		w = x
	}
	s.root.Resize(w, h)
}

func (s *Spinner) addColumn(x int, name, key string, f Field) int {
	c := &column{field: f}
	label := widget.NewLabel(name+"-label", s.label(key))
	up := widget.NewButton(name+"-up", "▲", func() { s.step(c, 1) })
	entry := widget.NewEntry(name, fieldWidth)
	down := widget.NewButton(name+"-down", "▼", func() { s.step(c, -1) })
	c.entry, c.up, c.down = entry, up, down

	colW := max(label.Bounds().W, up.Bounds().W, fieldWidth)
	center := func(n *widget.Node, y int) {
		n.Move(x+(colW-n.Bounds().W)/2, y)
	}
	center(label, 0)
	center(up, 1)
	center(entry, 2)
	center(down, 3)
	s.root.Add(label, up, entry, down)

	if ed, ok := entry.Editor(); ok {
		ed.SetReadonly(true)
	}
	s.columns = append(s.columns, c)
	s.bindColumn(c)
	f.SetDisplay(entry.SetText)
	f.OnChange(s.changed)
	return x + colW
}

func (s *Spinner) addSeparator(x int) int {
	sep := widget.NewLabel(fmt.Sprintf("sep%d", len(s.columns)), ":")
	sep.Move(x+1, 2)
	s.root.Add(sep)
	return x + 3
}

// ---------------------------------------------------------------------------
// Input
// ---------------------------------------------------------------------------

func (s *Spinner) bindColumn(c *column) {
	e := c.entry
	e.Bind(widget.FocusIn, func(widget.Event) widget.Result {
		s.activate(e)
		return widget.Continue
	})
	e.Bind(widget.ButtonPress, func(widget.Event) widget.Result {
		s.activate(e)
		return widget.Continue
	})
	e.Bind(widget.FocusOut, func(ev widget.Event) widget.Result {
		s.commitText(c)
		if ed, ok := e.Editor(); ok {
			ed.SetReadonly(true)
			ed.ClearSelection()
		}
		return s.focusOut(ev)
	})
	e.Bind(widget.KeyPress, func(ev widget.Event) widget.Result {
		switch ev.Key.Type {
		case tea.KeyUp:
			s.step(c, 1)
		case tea.KeyDown:
			s.step(c, -1)
		case tea.KeyEnter:
			s.commitText(c)
			s.Commit()
		case tea.KeyEsc:
			s.Cancel()
		case tea.KeyTab:
			s.cycle(c, 1)
		case tea.KeyShiftTab:
			s.cycle(c, -1)
		default:
			return widget.Continue
		}
		return widget.Break
	})
	e.Bind(widget.KeyRelease, func(widget.Event) widget.Result {
		s.recompute()
		return widget.Continue
	})

	wheel := func(ev widget.Event) widget.Result {
		c.field.Scroll(ev.Delta)
		return widget.Break
	}
	e.Bind(widget.MouseWheel, wheel)
	c.up.Bind(widget.MouseWheel, wheel)
	c.down.Bind(widget.MouseWheel, wheel)
}

// activate makes the field editable with its whole text selected.
func (s *Spinner) activate(e *widget.Node) {
	ed, ok := e.Editor()
	if !ok {
		return
	}
	ed.SetReadonly(false)
	ed.SelectAll()
	ed.CursorEnd()
}

// commitText validates whatever was typed into the entry. Unchanged text
// is left alone so it does not count as a mutation.
func (s *Spinner) commitText(c *column) {
	raw := c.entry.Text()
	if raw == c.field.Text() {
		return
	}
	if !c.field.ValidateAndCommit(raw) {
		s.logger.Debug("rejected field input", "field", c.entry.Name(), "text", raw)
	}
}

// step commits pending input before moving the field, so arrows work from
// what the user sees.
func (s *Spinner) step(c *column, dir int) {
	s.commitText(c)
	if dir > 0 {
		c.field.Increment()
		return
	}
	c.field.Decrement()
}

func (s *Spinner) cycle(from *column, step int) {
	d := s.root.Display()
	if d == nil || len(s.columns) == 0 {
		return
	}
	for i, c := range s.columns {
		if c == from {
			next := s.columns[(i+step+len(s.columns))%len(s.columns)]
			_ = d.FocusSet(next.entry)
			return
		}
	}
}

func (s *Spinner) focusOut(ev widget.Event) widget.Result {
	if s.onFocusOut == nil {
		return widget.Continue
	}
	return s.onFocusOut(ev)
}

// changed runs after every accepted field mutation.
func (s *Spinner) changed() {
	s.syncAffordance()
	s.recompute()
}

func (s *Spinner) syncAffordance() {
	if s.ampm == nil {
		return
	}
	for _, c := range s.columns {
		if c.field == Field(s.ampm) {
			c.up.SetDisabled(!s.ampm.CanIncrement())
			c.down.SetDisabled(!s.ampm.CanDecrement())
		}
	}
}

// recompute composes the text currently shown in the fields, typed or not.
// Text that does not parse or an invalid combination keeps the previous
// value.
func (s *Spinner) recompute() {
	text := make(map[Field]string, len(s.columns))
	for _, c := range s.columns {
		text[c.field] = c.entry.Text()
	}
	var second, meridiem string
	if s.second != nil {
		second = text[s.second]
	}
	if s.ampm != nil {
		meridiem = text[s.ampm]
	}
	v, err := ComposeText(text[s.hour], text[s.minute], second, meridiem, s.format, s.showSeconds)
	if err != nil {
		s.logger.Debug("keeping previous time", "err", err)
		return
	}
	s.value = v
}

// ---------------------------------------------------------------------------
// Public API
// ---------------------------------------------------------------------------

// Commit validates every field's text, recomposes and reports the value to
// OnSelect. Rejected text falls back to the field's last good value.
func (s *Spinner) Commit() {
	for _, c := range s.columns {
		s.commitText(c)
	}
	s.recompute()
	if s.onSelect != nil {
		v := s.value
		s.onSelect(&v)
	}
}

// Cancel reports nil to OnSelect without recomposing.
func (s *Spinner) Cancel() {
	if s.onSelect != nil {
		s.onSelect(nil)
	}
}

// Selected returns the last successfully composed value, including text
// typed but not yet committed.
func (s *Spinner) Selected() Value { return s.value }

// SetSelected loads v into the fields. Invalid values are rejected.
func (s *Spinner) SetSelected(v Value) error {
	if !v.Valid() {
		return fmt.Errorf("set selected %s: %w", v, ErrInvalidTime)
	}
	if !s.showSeconds {
		v.Second = 0
	}
	s.value = v
	fl := Decompose(v, s.format)
	s.hour.Set(fl.Hour)
	s.minute.Set(fl.Minute)
	if s.second != nil {
		s.second.Set(fl.Second)
	}
	if s.ampm != nil {
		s.ampm.Set(fl.Meridiem)
		s.syncAffordance()
	}
	return nil
}

// SetHourFormat switches between 12 and 24-hour fields, rebuilding the
// field set.
func (s *Spinner) SetHourFormat(f HourFormat) error {
	f, err := ParseHourFormat(string(f))
	if err != nil {
		return err
	}
	if f == s.format {
		return nil
	}
	s.format = f
	s.build()
	return nil
}

// SetShowSeconds adds or removes the seconds field.
func (s *Spinner) SetShowSeconds(show bool) {
	if show == s.showSeconds {
		return
	}
	s.showSeconds = show
	if !show {
		s.value.Second = 0
	}
	s.build()
}

// OnFocusOut sets the handler run when any field loses focus. It survives
// rebuilds.
func (s *Spinner) OnFocusOut(fn widget.Handler) { s.onFocusOut = fn }

func (s *Spinner) Node() *widget.Node { return s.root }

// FirstField is the entry that receives focus when the spinner opens.
func (s *Spinner) FirstField() *widget.Node {
	if len(s.columns) == 0 {
		return nil
	}
	return s.columns[0].entry
}

// Size is the spinner's natural size in cells.
func (s *Spinner) Size() (int, int) {
	b := s.root.Bounds()
	return b.W, b.H
}

func (s *Spinner) HourFormat() HourFormat { return s.format }
func (s *Spinner) ShowSeconds() bool      { return s.showSeconds }

func (s *Spinner) Hour() *NumberField   { return s.hour }
func (s *Spinner) Minute() *NumberField { return s.minute }

// Second is nil when seconds are hidden.
func (s *Spinner) Second() *NumberField { return s.second }

// Meridiem is nil in 24-hour mode.
func (s *Spinner) Meridiem() *AmPmField { return s.ampm }
