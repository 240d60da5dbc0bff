package widget

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

type Kind int

const (
	KindFrame Kind = iota
	KindLabel
	KindEntry
	KindButton
)

func (k Kind) String() string {
	switch k {
	case KindFrame:
		return "frame"
	case KindLabel:
		return "label"
	case KindEntry:
		return "entry"
	case KindButton:
		return "button"
	default:
		return "unknown"
	}
}

// Node is one element of a window's tree. Bounds are relative to the
// parent node; the root node of a window sits at (0, 0) of the window.
type Node struct {
	name      string
	kind      Kind
	text      string
	parent    *Node
	children  []*Node
	bounds    Rect
	focusable bool
	disabled  bool
	pressed   bool
	editor    *Editor
	command   func()
	window    *Window // root node only
	destroyed bool
	bindings  bindingTable
}

func NewFrame(name string) *Node {
	return &Node{name: name, kind: KindFrame}
}

func NewLabel(name, text string) *Node {
	return &Node{name: name, kind: KindLabel, text: text, bounds: Rect{W: textWidth(text), H: 1}}
}

// NewEntry returns a focusable single-line text entry.
func NewEntry(name string, width int) *Node {
	n := &Node{name: name, kind: KindEntry, focusable: true, bounds: Rect{W: width, H: 1}}
	n.editor = newEditor(width)
	return n
}

// NewButton returns a button that runs command when released over itself.
func NewButton(name, text string, command func()) *Node {
	return &Node{name: name, kind: KindButton, text: text, command: command, bounds: Rect{W: textWidth(text) + 2, H: 1}}
}

func (n *Node) Name() string { return n.name }
func (n *Node) Kind() Kind   { return n.kind }

// Path returns the dotted path from the window root, e.g. ".host.time.entry".
func (n *Node) Path() string {
	var parts []string
	for cur := n; cur != nil; cur = cur.parent {
		parts = append(parts, cur.name)
	}
	var b strings.Builder
	for i := len(parts) - 1; i >= 0; i-- {
		b.WriteByte('.')
		b.WriteString(parts[i])
	}
	return b.String()
}

func (n *Node) targetPath() string { return n.Path() }

func (n *Node) Parent() *Node { return n.parent }

func (n *Node) Children() []*Node {
	return append([]*Node(nil), n.children...)
}

// Add appends children, detaching each from any previous parent.
func (n *Node) Add(children ...*Node) *Node {
	for _, c := range children {
		if c == nil || c == n {
			continue
		}
		if c.parent != nil {
			c.parent.Remove(c)
		}
		c.parent = n
		n.children = append(n.children, c)
	}
	return n
}

// Remove detaches child without destroying it.
func (n *Node) Remove(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// Destroy detaches n and marks its whole subtree dead. Focus held inside
// the subtree is dropped without a FocusOut event.
func (n *Node) Destroy() {
	if n.destroyed {
		return
	}
	d := n.Display()
	if n.parent != nil {
		n.parent.Remove(n)
	}
	n.markDestroyed()
	if d != nil {
		d.forget(n)
	}
}

// DestroyChildren destroys every child of n, keeping n itself.
func (n *Node) DestroyChildren() {
	for _, c := range n.Children() {
		c.Destroy()
	}
}

func (n *Node) markDestroyed() {
	n.destroyed = true
	n.bindings.clear()
	for _, c := range n.children {
		c.markDestroyed()
	}
}

func (n *Node) Exists() bool {
	if n == nil || n.destroyed {
		return false
	}
	return n.Window() != nil
}

func (n *Node) root() *Node {
	cur := n
	for cur.parent != nil {
		cur = cur.parent
	}
	return cur
}

// Window returns the top-level window n belongs to, or nil when n is not
// attached to one.
func (n *Node) Window() *Window {
	if n == nil {
		return nil
	}
	w := n.root().window
	if w == nil || w.destroyed {
		return nil
	}
	return w
}

func (n *Node) Display() *Display {
	if w := n.Window(); w != nil {
		return w.display
	}
	return nil
}

func (n *Node) Text() string {
	if n.editor != nil {
		return n.editor.Value()
	}
	return n.text
}

func (n *Node) SetText(s string) {
	if n.editor != nil {
		n.editor.SetValue(s)
		return
	}
	n.text = s
	if n.kind == KindLabel && n.bounds.W < textWidth(s) {
		n.bounds.W = textWidth(s)
	}
}

func (n *Node) Bounds() Rect     { return n.bounds }
func (n *Node) SetBounds(r Rect) { n.bounds = r }

func (n *Node) Move(x, y int) {
	n.bounds.X, n.bounds.Y = x, y
}

func (n *Node) Resize(w, h int) {
	n.bounds.W, n.bounds.H = w, h
	if n.editor != nil {
		n.editor.setWidth(w)
	}
}

// WindowRect returns the bounds of n relative to its window origin.
func (n *Node) WindowRect() Rect {
	r := n.bounds
	if n.parent == nil {
		r.X, r.Y = 0, 0
		return r
	}
	for p := n.parent; p != nil && p.parent != nil; p = p.parent {
		r = r.Offset(p.bounds.X, p.bounds.Y)
	}
	return r
}

// ScreenRect returns the bounds of n in screen coordinates.
func (n *Node) ScreenRect() Rect {
	r := n.WindowRect()
	if w := n.Window(); w != nil {
		r = r.Offset(w.bounds.X, w.bounds.Y)
	}
	return r
}

// NaturalSize is the smallest size that holds every child.
func (n *Node) NaturalSize() (int, int) {
	w, h := 0, 0
	for _, c := range n.children {
		if c.bounds.Right() > w {
			w = c.bounds.Right()
		}
		if c.bounds.Bottom() > h {
			h = c.bounds.Bottom()
		}
	}
	return w, h
}

func (n *Node) Focusable() bool    { return n.focusable && !n.disabled }
func (n *Node) Disabled() bool     { return n.disabled }
func (n *Node) SetDisabled(b bool) { n.disabled = b }
func (n *Node) Pressed() bool      { return n.pressed }
func (n *Node) SetPressed(b bool)  { n.pressed = b }

// Editor returns the text editing state for nodes that support text
// selection and cursor placement.
func (n *Node) Editor() (*Editor, bool) {
	return n.editor, n.editor != nil
}

// Invoke runs the button command, if any.
func (n *Node) Invoke() {
	if n.command != nil && !n.disabled && !n.destroyed {
		n.command()
	}
}

// Bind registers fn for kind and returns its registration token.
func (n *Node) Bind(kind EventKind, fn Handler) string {
	return n.bindings.add(kind, fn)
}

func (n *Node) Unbind(kind EventKind, id string) bool {
	return n.bindings.remove(kind, id)
}

// Bindings reports how many handlers are registered for kind.
func (n *Node) Bindings(kind EventKind) int {
	return n.bindings.count(kind)
}

// Walk visits n and its descendants depth first until fn returns false.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// hit returns the deepest node under the window-relative point. Later
// children are on top.
func (n *Node) hit(x, y int) *Node {
	for i := len(n.children) - 1; i >= 0; i-- {
		c := n.children[i]
		if c.WindowRect().Hit(x, y) {
			return c.hit(x, y)
		}
	}
	return n
}

// IsDescendant reports whether target is root or sits below it. A Token
// never matches because it has no parent chain to walk.
func IsDescendant(target Target, root *Node) bool {
	n, ok := target.(*Node)
	if !ok || n == nil || root == nil {
		return false
	}
	for cur := n; cur != nil; cur = cur.parent {
		if cur == root {
			return true
		}
	}
	return false
}

func textWidth(s string) int {
	return ansi.StringWidth(s)
}
