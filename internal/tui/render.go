package tui

import (
	"strings"

	"github.com/jask/termface/theme"
	"github.com/jask/termface/widget"
)

func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	styles := m.palette.Styles()
	out := canvas(m.width, m.height, styles.Screen)
	for _, w := range m.display.Windows() {
		b := w.Bounds()
		if !w.Mapped() || b.Empty() {
			continue
		}
		out = overlayAt(out, m.renderWindow(w), b.X, b.Y, m.width, m.height)
	}
	if footer := m.footer(styles); footer != "" {
		out = overlayAt(out, footer, 0, m.height-1, m.width, m.height)
	}
	return out
}

// paletteFor honours a window's own theme.
func (m *Model) paletteFor(w *widget.Window) theme.Palette {
	if name := w.Theme(); name != "" {
		if p, err := theme.Lookup(name); err == nil {
			return p
		}
	}
	return m.palette
}

func (m *Model) renderWindow(w *widget.Window) string {
	st := m.paletteFor(w).Styles()
	b := w.Bounds()
	var layer string
	if w.Decorated() || b.W < 2 || b.H < 2 {
		layer = canvas(b.W, b.H, st.Screen)
	} else {
		// Popups draw a border in their padding ring.
		layer = st.Popup.Width(b.W - 2).Height(b.H - 2).Render("")
	}
	focused := m.display.Focused()
	w.Root().Walk(func(n *widget.Node) bool {
		if n == w.Root() || n.Kind() == widget.KindFrame {
			return true
		}
		r := n.WindowRect()
		layer = overlayAt(layer, renderNode(n, n == focused, st), r.X, r.Y, b.W, b.H)
		return true
	})
	return layer
}

func renderNode(n *widget.Node, focused bool, st theme.Styles) string {
	r := n.Bounds()
	switch n.Kind() {
	case widget.KindLabel:
		return st.Label.Render(fit(n.Text(), r.W))
	case widget.KindButton:
		style := st.Button
		switch {
		case n.Disabled():
			style = st.ButtonDisabled
		case n.Pressed():
			style = st.ButtonPressed
		}
		return style.Render(fit(" "+n.Text()+" ", r.W))
	case widget.KindEntry:
		return renderEntry(n, focused, st)
	}
	return ""
}

func renderEntry(n *widget.Node, focused bool, st theme.Styles) string {
	style := st.Entry
	if focused || n.Pressed() {
		style = st.EntryFocused
	}
	width := n.Bounds().W
	text := fit(n.Text(), width)
	ed, ok := n.Editor()
	if !ok {
		return style.Render(text)
	}
	start, end, sel := ed.Selection()
	if !sel {
		return style.Render(text)
	}
	runes := []rune(text)
	start, end = min(start, len(runes)), min(end, len(runes))
	var b strings.Builder
	b.WriteString(style.Render(string(runes[:start])))
	b.WriteString(st.Selection.Render(string(runes[start:end])))
	b.WriteString(style.Render(string(runes[end:])))
	return b.String()
}

// footer shows the status text and the key help for the current scope.
func (m *Model) footer(st theme.Styles) string {
	var parts []string
	if m.status != nil {
		if s := m.status(); s != "" {
			parts = append(parts, s)
		}
	}
	for _, b := range m.keys.HelpBindings(m.scope()) {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	if len(parts) == 0 {
		return ""
	}
	return st.Status.Render(fit(strings.Join(parts, " · "), m.width))
}
