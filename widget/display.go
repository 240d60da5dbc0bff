package widget

import (
	"errors"
	"fmt"
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/jask/termface/dpi"
)

var ErrDestroyed = errors.New("widget destroyed")

// maxIdleRounds bounds RunIdle when callbacks keep queueing more work.
const maxIdleRounds = 64

type timer struct {
	at  time.Duration
	seq int
	fn  func()
}

// Display owns the screen: its windows, the focus, the pointer, the idle
// queue and the timers. It is not safe for concurrent use; everything runs
// on the UI goroutine.
type Display struct {
	width, height      int
	pointerX, pointerY int
	windows            []*Window // bottom to top
	focus              *Node
	grab               *Node // press target; receives the matching release
	idle               []func()
	timers             []timer
	seq                int
	now                time.Duration
	locale             string
	scale              float64
	logger             *log.Logger
}

func NewDisplay(width, height int) *Display {
	return &Display{
		width:  width,
		height: height,
		locale: "en",
		logger: log.Default().WithPrefix("widget"),
	}
}

func (d *Display) SetLogger(l *log.Logger) {
	if l != nil {
		d.logger = l
	}
}

func (d *Display) Size() (int, int) { return d.width, d.height }

func (d *Display) SetSize(width, height int) {
	d.width, d.height = width, height
}

func (d *Display) Pointer() (int, int) { return d.pointerX, d.pointerY }

func (d *Display) SetPointer(x, y int) {
	d.pointerX, d.pointerY = x, y
}

func (d *Display) Locale() string { return d.locale }

func (d *Display) SetLocale(locale string) { d.locale = locale }

// ScalingFactor returns the configured cell scaling factor.
func (d *Display) ScalingFactor() (float64, error) {
	if d.scale <= 0 {
		return 0, dpi.ErrUnknownScale
	}
	return d.scale, nil
}

func (d *Display) SetScalingFactor(f float64) { d.scale = f }

// Now is the display's virtual clock.
func (d *Display) Now() time.Duration { return d.now }

// ---------------------------------------------------------------------------
// Windows
// ---------------------------------------------------------------------------

func (d *Display) NewWindow(opts WindowOptions) *Window {
	name := opts.Name
	if name == "" {
		name = fmt.Sprintf("w%d", len(d.windows)+1)
	}
	w := &Window{
		display:      d,
		decorated:    opts.Decorated,
		resizable:    opts.Resizable,
		transientFor: opts.TransientFor,
		theme:        opts.Theme,
		mapped:       !opts.Withdrawn,
	}
	w.root = NewFrame(name)
	w.root.window = w
	w.SetGeometry(opts.Bounds)
	d.windows = append(d.windows, w)
	return w
}

// Windows returns the live windows from bottom to top.
func (d *Display) Windows() []*Window {
	return append([]*Window(nil), d.windows...)
}

func (d *Display) raise(w *Window) {
	d.removeWindow(w)
	d.windows = append(d.windows, w)
}

func (d *Display) removeWindow(w *Window) {
	for i, cur := range d.windows {
		if cur == w {
			d.windows = append(d.windows[:i], d.windows[i+1:]...)
			return
		}
	}
}

// WindowAt returns the topmost mapped window covering the screen point.
func (d *Display) WindowAt(x, y int) *Window {
	for i := len(d.windows) - 1; i >= 0; i-- {
		w := d.windows[i]
		if w.Mapped() && w.bounds.Hit(x, y) {
			return w
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Focus
// ---------------------------------------------------------------------------

// Focused returns the node holding keyboard focus, or nil.
func (d *Display) Focused() *Node {
	if d.focus != nil && !d.focus.Exists() {
		d.focus = nil
	}
	return d.focus
}

// FocusSet moves keyboard focus to n.
func (d *Display) FocusSet(n *Node) error {
	if !n.Exists() {
		return ErrDestroyed
	}
	d.setFocus(n)
	return nil
}

// FocusForce moves focus to n and raises its window.
func (d *Display) FocusForce(n *Node) error {
	if !n.Exists() {
		return ErrDestroyed
	}
	n.Window().Lift()
	d.setFocus(n)
	return nil
}

// ClearFocus leaves no node focused.
func (d *Display) ClearFocus() {
	d.setFocus(nil)
}

// setFocus updates the focus before delivering FocusOut, so handlers see
// the node that received focus.
func (d *Display) setFocus(n *Node) {
	old := d.Focused()
	if old == n {
		return
	}
	d.focus = n
	if old != nil && old.editor != nil {
		old.editor.blur()
	}
	if n != nil && n.editor != nil {
		n.editor.focus()
	}
	if old != nil && old.Exists() {
		old.bindings.dispatch(Event{Kind: FocusOut, Target: old})
	}
	if n != nil && n.Exists() && d.focus == n {
		n.bindings.dispatch(Event{Kind: FocusIn, Target: n})
	}
}

// forget drops focus held inside a subtree that is being destroyed.
func (d *Display) forget(n *Node) {
	if d.focus != nil && IsDescendant(d.focus, n) {
		if d.focus.editor != nil {
			d.focus.editor.blur()
		}
		d.focus = nil
	}
}

// ---------------------------------------------------------------------------
// Idle queue and timers
// ---------------------------------------------------------------------------

// AfterIdle queues fn to run once the current event has been handled.
func (d *Display) AfterIdle(fn func()) {
	d.idle = append(d.idle, fn)
}

// After schedules fn to run once the virtual clock has advanced by delay.
func (d *Display) After(delay time.Duration, fn func()) {
	d.seq++
	d.timers = append(d.timers, timer{at: d.now + delay, seq: d.seq, fn: fn})
}

// Pending reports queued idle callbacks plus outstanding timers.
func (d *Display) Pending() int {
	return len(d.idle) + len(d.timers)
}

// RunIdle drains the idle queue, including work queued while draining,
// and returns how many callbacks ran.
func (d *Display) RunIdle() int {
	ran := 0
	for round := 0; round < maxIdleRounds && len(d.idle) > 0; round++ {
		batch := d.idle
		d.idle = nil
		for _, fn := range batch {
			d.run(fn)
			ran++
		}
	}
	return ran
}

// Advance moves the virtual clock forward, fires due timers in order and
// then drains the idle queue.
func (d *Display) Advance(delta time.Duration) {
	d.now += delta
	for {
		due := -1
		for i, t := range d.timers {
			if t.at > d.now {
				continue
			}
			if due < 0 || t.at < d.timers[due].at || (t.at == d.timers[due].at && t.seq < d.timers[due].seq) {
				due = i
			}
		}
		if due < 0 {
			break
		}
		t := d.timers[due]
		d.timers = append(d.timers[:due], d.timers[due+1:]...)
		d.run(t.fn)
	}
	d.RunIdle()
}

// NextTimer returns the delay until the earliest timer, if any.
func (d *Display) NextTimer() (time.Duration, bool) {
	if len(d.timers) == 0 {
		return 0, false
	}
	ats := make([]time.Duration, 0, len(d.timers))
	for _, t := range d.timers {
		ats = append(ats, t.at)
	}
	sort.Slice(ats, func(i, j int) bool { return ats[i] < ats[j] })
	if ats[0] < d.now {
		return 0, true
	}
	return ats[0] - d.now, true
}

// run isolates the loop from a panicking callback.
func (d *Display) run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("background callback panicked", "panic", r)
		}
	}()
	fn()
}

// ---------------------------------------------------------------------------
// Input routing
// ---------------------------------------------------------------------------

// Press routes a primary-button press at the screen point.
func (d *Display) Press(x, y int) Result {
	return d.pointer(ButtonPress, x, y, 0)
}

// Release routes a primary-button release at the screen point.
func (d *Display) Release(x, y int) Result {
	return d.pointer(ButtonRelease, x, y, 0)
}

// Wheel routes a wheel movement at the screen point.
func (d *Display) Wheel(x, y, delta int) Result {
	return d.pointer(MouseWheel, x, y, delta)
}

func (d *Display) pointer(kind EventKind, x, y, delta int) Result {
	d.SetPointer(x, y)
	if kind == ButtonRelease && d.grab != nil {
		g := d.grab
		d.grab = nil
		if g.Exists() {
			w := g.Window()
			lx, ly := x-w.bounds.X, y-w.bounds.Y
			return d.dispatch(w, g, Event{Kind: kind, Target: g, X: lx, Y: ly, RootX: x, RootY: y})
		}
	}
	w := d.WindowAt(x, y)
	if w == nil {
		return Continue
	}
	lx, ly := x-w.bounds.X, y-w.bounds.Y
	n := w.root.hit(lx, ly)
	if kind == ButtonPress {
		d.grab = n
	}
	return d.dispatch(w, n, Event{
		Kind:   kind,
		Target: n,
		X:      lx,
		Y:      ly,
		RootX:  x,
		RootY:  y,
		Delta:  delta,
	})
}

// Key routes a key to the focused node. Terminals report no releases, so a
// KeyRelease is synthesised on the same node once the press is handled.
func (d *Display) Key(msg tea.KeyMsg) Result {
	n := d.Focused()
	if n == nil {
		return Continue
	}
	res := d.dispatch(n.Window(), n, Event{Kind: KeyPress, Target: n, Key: msg})
	if n.Exists() {
		n.bindings.dispatch(Event{Kind: KeyRelease, Target: n, Key: msg, Synthetic: true})
	}
	return res
}

// Deliver runs ev through w's binding chain. It is how input whose target
// could only be resolved to a Token reaches a window.
func (d *Display) Deliver(w *Window, ev Event) Result {
	if !w.Exists() {
		return Continue
	}
	return d.dispatch(w, ev.Widget(), ev)
}

// Generate synthesises an event of kind on n, positioned at its centre.
func (d *Display) Generate(n *Node, kind EventKind) (Result, error) {
	if !n.Exists() {
		return Continue, ErrDestroyed
	}
	w := n.Window()
	r := n.WindowRect()
	x, y := r.X+r.W/2, r.Y+r.H/2
	return d.dispatch(w, n, Event{
		Kind:      kind,
		Target:    n,
		X:         x,
		Y:         y,
		RootX:     w.bounds.X + x,
		RootY:     w.bounds.Y + y,
		Synthetic: true,
	}), nil
}

// dispatch runs node handlers, then class behaviour, then window handlers,
// stopping at the first Break.
func (d *Display) dispatch(w *Window, n *Node, ev Event) Result {
	if n != nil && n != w.root {
		if n.bindings.dispatch(ev) == Break {
			return Break
		}
	}
	if n != nil && n.Exists() {
		if d.classBehaviour(n, ev) == Break {
			return Break
		}
	}
	if !w.Exists() {
		return Continue
	}
	return w.root.bindings.dispatch(ev)
}

func (d *Display) classBehaviour(n *Node, ev Event) Result {
	switch ev.Kind {
	case ButtonPress:
		if n.Focusable() {
			d.setFocus(n)
		}
		if n.kind == KindButton && !n.disabled {
			n.pressed = true
		}
	case ButtonRelease:
		if n.kind == KindButton && n.pressed {
			n.pressed = false
			if ev.Synthetic || n.WindowRect().Hit(ev.X, ev.Y) {
				n.Invoke()
			}
		}
	case KeyPress:
		if n.editor != nil {
			n.editor.Update(ev.Key)
		}
	}
	return Continue
}
