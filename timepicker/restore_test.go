package timepicker

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/termface/widget"
)

func TestFocusRestoreIsDeferred(t *testing.T) {
	d, host, f, _ := newTestFrame(t)
	notes := widget.NewEntry("notes", 10)
	notes.Move(40, 20)
	host.Root().Add(notes)
	notes.SetText("hello")

	presses := 0
	notes.Bind(widget.ButtonPress, func(ev widget.Event) widget.Result {
		if ev.Synthetic {
			presses++
		}
		return widget.Continue
	})

	f.scheduleFocusRestore(notes, true)
	require.Nil(t, d.Focused(), "restore must not run inside the current event")

	d.RunIdle()
	require.Equal(t, notes, d.Focused())
	require.Equal(t, 1, presses)
	ed, _ := notes.Editor()
	start, end, ok := ed.Selection()
	require.True(t, ok)
	require.Equal(t, 0, start)
	require.Equal(t, 5, end)
	require.Equal(t, 5, ed.Cursor())
}

func TestFocusRestoreSkipsClickOnButtons(t *testing.T) {
	d, host, f, _ := newTestFrame(t)
	runs := 0
	btn := widget.NewButton("save", "Save", func() { runs++ })
	btn.Move(40, 20)
	host.Root().Add(btn)

	f.scheduleFocusRestore(btn, true)
	d.RunIdle()
	require.Equal(t, 0, runs)
	require.Equal(t, btn, d.Focused())
}

func TestFocusRestoreToleratesDestroyedTarget(t *testing.T) {
	d, host, f, _ := newTestFrame(t)
	gone := widget.NewEntry("gone", 4)
	host.Root().Add(gone)

	f.scheduleFocusRestore(gone, true)
	gone.Destroy()
	require.NotPanics(t, func() { d.RunIdle() })
	require.Nil(t, d.Focused())
}

func TestFocusRestoreSupersededByReopen(t *testing.T) {
	d, host, f, _ := newTestFrame(t)
	notes := widget.NewEntry("notes", 10)
	host.Root().Add(notes)

	f.scheduleFocusRestore(notes, false)
	require.NoError(t, f.ShowTimePicker())
	d.RunIdle()
	require.True(t, f.IsOpen())
	require.Equal(t, f.Spinner().FirstField(), d.Focused())
}

func TestFocusRestorePanicIsContained(t *testing.T) {
	d, host, f, _ := newTestFrame(t)
	notes := widget.NewEntry("notes", 10)
	host.Root().Add(notes)
	notes.Bind(widget.FocusIn, func(widget.Event) widget.Result { panic("handler bug") })

	f.scheduleFocusRestore(notes, false)
	require.NotPanics(t, func() { d.RunIdle() })
}

func TestFocusRestoreNilTarget(t *testing.T) {
	d, _, f, _ := newTestFrame(t)
	f.scheduleFocusRestore(nil, true)
	require.Equal(t, 0, d.Pending())
}
