package widget

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

type EventKind int

const (
	ButtonPress EventKind = iota + 1
	ButtonRelease
	FocusIn
	FocusOut
	KeyPress
	// KeyRelease follows every KeyPress on the same node, after the edit
	// buffer has seen the key.
	KeyRelease
	MouseWheel
)

func (k EventKind) String() string {
	switch k {
	case ButtonPress:
		return "button-press"
	case ButtonRelease:
		return "button-release"
	case FocusIn:
		return "focus-in"
	case FocusOut:
		return "focus-out"
	case KeyPress:
		return "key-press"
	case KeyRelease:
		return "key-release"
	case MouseWheel:
		return "mouse-wheel"
	default:
		return "unknown"
	}
}

// Result tells the dispatcher whether later handlers in the chain run.
type Result int

const (
	Continue Result = iota
	Break
)

// Target identifies what an event was delivered to. It is either a *Node
// or a Token.
type Target interface {
	targetPath() string
}

// Token is an opaque path string some input paths deliver in place of a
// live node. It cannot be walked or focused.
type Token string

func (t Token) targetPath() string { return string(t) }

// TargetPath returns the printable path of t, or "" for a nil target.
func TargetPath(t Target) string {
	if t == nil {
		return ""
	}
	return t.targetPath()
}

// Event is a single pointer, focus or key event.
type Event struct {
	Kind   EventKind
	Target Target
	// X and Y are relative to the origin of the window the event was
	// routed through.
	X, Y int
	// RootX and RootY are screen coordinates.
	RootX, RootY int
	// Delta is the wheel movement; positive means away from the user.
	Delta     int
	Key       tea.KeyMsg
	Synthetic bool
}

// Widget returns the target node, or nil when the target is a Token.
func (e Event) Widget() *Node {
	n, _ := e.Target.(*Node)
	return n
}

type Handler func(Event) Result

type binding struct {
	id string
	fn Handler
}

// bindingTable holds handlers per event kind in registration order.
type bindingTable struct {
	byKind map[EventKind][]binding
}

func (b *bindingTable) add(kind EventKind, fn Handler) string {
	if b.byKind == nil {
		b.byKind = make(map[EventKind][]binding)
	}
	id := uuid.NewString()
	b.byKind[kind] = append(b.byKind[kind], binding{id: id, fn: fn})
	return id
}

func (b *bindingTable) remove(kind EventKind, id string) bool {
	list := b.byKind[kind]
	for i := range list {
		if list[i].id == id {
			b.byKind[kind] = append(list[:i:i], list[i+1:]...)
			return true
		}
	}
	return false
}

func (b *bindingTable) count(kind EventKind) int {
	return len(b.byKind[kind])
}

// dispatch runs a snapshot of the handlers so a handler may unbind itself
// or others mid-dispatch.
func (b *bindingTable) dispatch(ev Event) Result {
	list := b.byKind[ev.Kind]
	if len(list) == 0 {
		return Continue
	}
	snapshot := append([]binding(nil), list...)
	for _, h := range snapshot {
		if h.fn(ev) == Break {
			return Break
		}
	}
	return Continue
}

func (b *bindingTable) clear() {
	b.byKind = nil
}
