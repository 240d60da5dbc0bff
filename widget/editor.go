package widget

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Editor is the text state behind an entry node: the edit buffer, the
// cursor and an optional selection.
type Editor struct {
	input    textinput.Model
	readonly bool
	selStart int
	selEnd   int
}

func newEditor(width int) *Editor {
	in := textinput.New()
	in.Prompt = ""
	in.Width = width
	return &Editor{input: in}
}

func (e *Editor) setWidth(w int) {
	e.input.Width = w
}

func (e *Editor) Value() string {
	return e.input.Value()
}

// SetValue replaces the text and drops any selection.
func (e *Editor) SetValue(s string) {
	e.input.SetValue(s)
	e.ClearSelection()
}

func (e *Editor) Readonly() bool     { return e.readonly }
func (e *Editor) SetReadonly(b bool) { e.readonly = b }

// SelectRange selects the runes in [start, end), clamped to the text.
func (e *Editor) SelectRange(start, end int) {
	n := len([]rune(e.input.Value()))
	start = clamp(start, 0, n)
	end = clamp(end, 0, n)
	if end < start {
		start, end = end, start
	}
	e.selStart, e.selEnd = start, end
}

func (e *Editor) SelectAll() {
	e.SelectRange(0, len([]rune(e.input.Value())))
}

// Selection returns the selected range; ok is false when nothing is
// selected.
func (e *Editor) Selection() (start, end int, ok bool) {
	return e.selStart, e.selEnd, e.selEnd > e.selStart
}

func (e *Editor) ClearSelection() {
	e.selStart, e.selEnd = 0, 0
}

func (e *Editor) Cursor() int { return e.input.Position() }
func (e *Editor) CursorEnd()   { e.input.CursorEnd() }

func (e *Editor) focus() { e.input.Focus() }
func (e *Editor) blur()  { e.input.Blur() }

// Update feeds a key to the edit buffer. Typing over a selection replaces
// it. It reports whether the text changed; read-only editors never change.
func (e *Editor) Update(msg tea.KeyMsg) bool {
	if e.readonly {
		return false
	}
	before := e.input.Value()
	if start, end, ok := e.Selection(); ok && editsText(msg) {
		r := []rune(before)
		e.input.SetValue(string(r[:start]) + string(r[end:]))
		e.input.SetCursor(start)
		e.ClearSelection()
		if msg.Type == tea.KeyBackspace || msg.Type == tea.KeyDelete {
			return e.input.Value() != before
		}
	}
	if !e.input.Focused() {
		e.input.Focus()
	}
	e.input, _ = e.input.Update(msg)
	if e.input.Value() != before {
		e.ClearSelection()
		return true
	}
	return false
}

// View renders the edit buffer; the cursor is only drawn while focused.
func (e *Editor) View() string {
	return e.input.View()
}

func editsText(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyRunes, tea.KeySpace, tea.KeyBackspace, tea.KeyDelete:
		return true
	}
	return false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
