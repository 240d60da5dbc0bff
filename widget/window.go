package widget

// WindowOptions configures a new top-level window.
type WindowOptions struct {
	Name         string
	Bounds       Rect
	Decorated    bool
	Resizable    bool
	TransientFor *Window
	// Withdrawn creates the window unmapped; call Deiconify to show it.
	Withdrawn bool
	// Theme names the palette the renderer draws this window with; empty
	// means the application theme.
	Theme string
}

// Window is a top-level layer on the display with its own node tree.
type Window struct {
	display      *Display
	root         *Node
	bounds       Rect
	decorated    bool
	resizable    bool
	transientFor *Window
	theme        string
	mapped       bool
	destroyed    bool
}

func (w *Window) Root() *Node       { return w.root }
func (w *Window) Display() *Display { return w.display }
func (w *Window) Bounds() Rect      { return w.bounds }
func (w *Window) Decorated() bool   { return w.decorated }
func (w *Window) Resizable() bool   { return w.resizable }
func (w *Window) Theme() string     { return w.theme }

// TransientFor returns the window w stays on top of, if any.
func (w *Window) TransientFor() *Window { return w.transientFor }

// SetGeometry moves and resizes the window in screen coordinates.
func (w *Window) SetGeometry(r Rect) {
	w.bounds = r
	w.root.bounds = Rect{W: r.W, H: r.H}
}

func (w *Window) Move(x, y int) {
	w.bounds.X, w.bounds.Y = x, y
}

// ReqSize is the size the window's content asks for.
func (w *Window) ReqSize() (int, int) {
	return w.root.NaturalSize()
}

func (w *Window) Mapped() bool { return w.mapped && !w.destroyed }

func (w *Window) Withdraw() { w.mapped = false }

func (w *Window) Deiconify() {
	if !w.destroyed {
		w.mapped = true
	}
}

// Lift raises w to the top of the stacking order.
func (w *Window) Lift() {
	if !w.destroyed {
		w.display.raise(w)
	}
}

func (w *Window) Exists() bool { return w != nil && !w.destroyed }

// Destroy unmaps the window and destroys its tree. Destroying twice is a
// no-op.
func (w *Window) Destroy() {
	if w == nil || w.destroyed {
		return
	}
	d := w.display
	d.forget(w.root)
	w.root.markDestroyed()
	w.destroyed = true
	w.mapped = false
	d.removeWindow(w)
}

// Bind registers a window-level handler. Window handlers run after the
// target node's own handlers and its class behaviour.
func (w *Window) Bind(kind EventKind, fn Handler) string {
	return w.root.Bind(kind, fn)
}

func (w *Window) Unbind(kind EventKind, id string) bool {
	return w.root.Unbind(kind, id)
}
