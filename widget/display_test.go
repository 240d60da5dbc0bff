package widget

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func TestPressFocusesEntryAndRunsChainInOrder(t *testing.T) {
	d, w, _, entry := testTree(t)
	var order []string
	entry.Bind(ButtonPress, func(Event) Result { order = append(order, "node"); return Continue })
	w.Bind(ButtonPress, func(ev Event) Result {
		order = append(order, "window")
		if d.Focused() != entry {
			t.Fatalf("class behaviour should focus the entry before window handlers")
		}
		return Continue
	})

	r := entry.ScreenRect()
	d.Press(r.X+1, r.Y)
	require.Equal(t, []string{"node", "window"}, order)
}

func TestNodeBreakStopsChain(t *testing.T) {
	d, w, _, entry := testTree(t)
	entry.Bind(ButtonPress, func(Event) Result { return Break })
	windowRan := false
	w.Bind(ButtonPress, func(Event) Result { windowRan = true; return Continue })

	r := entry.ScreenRect()
	if got := d.Press(r.X, r.Y); got != Break {
		t.Fatalf("result = %v, want Break", got)
	}
	if windowRan || d.Focused() == entry {
		t.Fatal("break must skip class behaviour and window handlers")
	}
}

func TestButtonInvokesOnReleaseOverItself(t *testing.T) {
	d := NewDisplay(40, 10)
	w := d.NewWindow(WindowOptions{Name: "host", Bounds: Rect{W: 40, H: 10}})
	clicks := 0
	btn := NewButton("go", "Go", func() { clicks++ })
	btn.Move(1, 1)
	w.Root().Add(btn)

	d.Press(2, 1)
	d.Release(2, 1)
	d.Press(2, 1)
	d.Release(30, 8)
	if clicks != 1 {
		t.Fatalf("clicks = %d, want 1", clicks)
	}

	if _, err := d.Generate(btn, ButtonPress); err != nil {
		t.Fatal(err)
	}
	if _, err := d.Generate(btn, ButtonRelease); err != nil {
		t.Fatal(err)
	}
	if clicks != 2 {
		t.Fatalf("synthetic click should invoke; clicks = %d", clicks)
	}
}

func TestFocusOutSeesNewFocus(t *testing.T) {
	d, w, _, entry := testTree(t)
	other := NewEntry("other", 5)
	other.Move(0, 10)
	w.Root().Add(other)
	require.NoError(t, d.FocusSet(entry))

	var seen *Node
	entry.Bind(FocusOut, func(Event) Result { seen = d.Focused(); return Continue })
	require.NoError(t, d.FocusSet(other))
	require.Same(t, other, seen)
}

func TestTopmostWindowReceivesPress(t *testing.T) {
	d := NewDisplay(80, 24)
	host := d.NewWindow(WindowOptions{Name: "host", Bounds: Rect{W: 80, H: 24}})
	popup := d.NewWindow(WindowOptions{Name: "popup", Bounds: Rect{X: 10, Y: 5, W: 20, H: 6}})
	hostHits, popupHits := 0, 0
	host.Bind(ButtonPress, func(Event) Result { hostHits++; return Continue })
	popup.Bind(ButtonPress, func(ev Event) Result {
		popupHits++
		if ev.X != 2 || ev.Y != 1 {
			t.Fatalf("popup-relative coordinates = (%d,%d)", ev.X, ev.Y)
		}
		return Continue
	})

	d.Press(12, 6)
	d.Press(50, 20)
	popup.Withdraw()
	d.Press(12, 6)
	if popupHits != 1 || hostHits != 2 {
		t.Fatalf("popup=%d host=%d", popupHits, hostHits)
	}
}

func TestDeliverTokenTargetSkipsNodeHandlers(t *testing.T) {
	d, w, _, entry := testTree(t)
	nodeRan := false
	entry.Bind(ButtonRelease, func(Event) Result { nodeRan = true; return Continue })
	var got Event
	w.Bind(ButtonRelease, func(ev Event) Result { got = ev; return Break })

	res := d.Deliver(w, Event{Kind: ButtonRelease, Target: Token(".host.form.entry")})
	if res != Break || nodeRan {
		t.Fatalf("res=%v nodeRan=%v", res, nodeRan)
	}
	if got.Widget() != nil || TargetPath(got.Target) != ".host.form.entry" {
		t.Fatalf("unexpected target %#v", got.Target)
	}
}

func TestUnbindByToken(t *testing.T) {
	_, w, _, _ := testTree(t)
	id := w.Bind(ButtonRelease, func(Event) Result { return Continue })
	if w.Root().Bindings(ButtonRelease) != 1 {
		t.Fatal("binding not registered")
	}
	if !w.Unbind(ButtonRelease, id) {
		t.Fatal("unbind should find the token")
	}
	if w.Unbind(ButtonRelease, id) {
		t.Fatal("second unbind should report false")
	}
}

func TestIdleAndTimersRunInOrder(t *testing.T) {
	d := NewDisplay(10, 10)
	var order []string
	d.After(100*time.Millisecond, func() { order = append(order, "t100") })
	d.After(50*time.Millisecond, func() { order = append(order, "t50") })
	d.AfterIdle(func() {
		order = append(order, "idle")
		d.AfterIdle(func() { order = append(order, "idle-chained") })
	})

	if ran := d.RunIdle(); ran != 2 {
		t.Fatalf("ran = %d, want 2", ran)
	}
	d.Advance(60 * time.Millisecond)
	d.Advance(60 * time.Millisecond)
	require.Equal(t, []string{"idle", "idle-chained", "t50", "t100"}, order)
	require.Zero(t, d.Pending())
}

func TestPanickingCallbackDoesNotStopQueue(t *testing.T) {
	d := NewDisplay(10, 10)
	ran := false
	d.AfterIdle(func() { panic("boom") })
	d.AfterIdle(func() { ran = true })
	d.RunIdle()
	if !ran {
		t.Fatal("later callbacks must still run")
	}
}

func TestKeyGoesToFocusedEditor(t *testing.T) {
	d, _, _, entry := testTree(t)
	require.NoError(t, d.FocusSet(entry))
	d.Key(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("4")})
	d.Key(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2")})
	require.Equal(t, "42", entry.Text())
}

func TestKeyReleaseSeesEditedText(t *testing.T) {
	d, _, _, entry := testTree(t)
	require.NoError(t, d.FocusSet(entry))

	var atPress, atRelease []string
	entry.Bind(KeyPress, func(Event) Result {
		atPress = append(atPress, entry.Text())
		return Continue
	})
	entry.Bind(KeyRelease, func(ev Event) Result {
		require.True(t, ev.Synthetic)
		atRelease = append(atRelease, entry.Text())
		return Continue
	})
	d.Key(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("4")})
	d.Key(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2")})

	require.Equal(t, []string{"", "4"}, atPress)
	require.Equal(t, []string{"4", "42"}, atRelease)
}
