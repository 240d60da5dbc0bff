package timespinner

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/jask/termface/widget"
)

func newTestSpinner(t *testing.T, opts Options) (*widget.Display, *widget.Window, *Spinner) {
	t.Helper()
	d := widget.NewDisplay(80, 24)
	w := d.NewWindow(widget.WindowOptions{Name: "popup", Bounds: widget.Rect{X: 5, Y: 2, W: 40, H: 10}})
	s, err := New(w.Root(), opts)
	require.NoError(t, err)
	return d, w, s
}

func typeText(d *widget.Display, s string) {
	for _, r := range s {
		d.Key(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestSpinnerTwelveHourFields(t *testing.T) {
	_, _, s := newTestSpinner(t, Options{HourFormat: Hour12, ShowSeconds: true, Initial: &Value{Hour: 13, Minute: 5, Second: 9}})

	require.Equal(t, "01", s.Hour().Text())
	require.Equal(t, "05", s.Minute().Text())
	require.Equal(t, "09", s.Second().Text())
	require.Equal(t, "PM", s.Meridiem().Text())
	require.Equal(t, "01", s.FirstField().Text())
}

func TestSpinnerCommitAndCancel(t *testing.T) {
	var got []*Value
	_, _, s := newTestSpinner(t, Options{
		HourFormat: Hour24,
		Initial:    &Value{Hour: 8, Minute: 30},
		OnSelect:   func(v *Value) { got = append(got, v) },
	})

	s.Minute().Increment()
	s.Commit()
	s.Cancel()
	require.Len(t, got, 2)
	require.Equal(t, Value{Hour: 8, Minute: 31}, *got[0])
	require.Nil(t, got[1])
}

func TestSpinnerTypedInputCommitsOnEnter(t *testing.T) {
	var got *Value
	d, _, s := newTestSpinner(t, Options{
		HourFormat:  Hour12,
		ShowSeconds: true,
		Initial:     &Value{Hour: 13, Minute: 5, Second: 9},
		OnSelect:    func(v *Value) { got = v },
	})

	require.NoError(t, d.FocusSet(s.FirstField()))
	typeText(d, "09")
	require.Equal(t, "09", s.FirstField().Text())

	d.Key(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, got)
	require.Equal(t, Value{Hour: 21, Minute: 5, Second: 9}, *got)
}

func TestSpinnerRejectsOutOfRangeTyping(t *testing.T) {
	d, _, s := newTestSpinner(t, Options{HourFormat: Hour24, Initial: &Value{Hour: 10, Minute: 20}})
	minute := s.columns[1].entry

	require.NoError(t, d.FocusSet(minute))
	typeText(d, "61")
	require.Equal(t, "61", minute.Text())

	// 61 is dropped, then Up steps from the last committed value.
	d.Key(tea.KeyMsg{Type: tea.KeyUp})
	require.Equal(t, 21, s.Minute().Get())
	require.Equal(t, "21", minute.Text())
	require.Equal(t, Value{Hour: 10, Minute: 21}, s.Selected())
}

func TestSpinnerWheelOverField(t *testing.T) {
	d, _, s := newTestSpinner(t, Options{HourFormat: Hour24, Initial: &Value{Hour: 23}})
	r := s.FirstField().ScreenRect()

	d.Wheel(r.X, r.Y, 1)
	require.Equal(t, Value{Hour: 0}, s.Selected())
	d.Wheel(r.X, r.Y, -1)
	require.Equal(t, Value{Hour: 23}, s.Selected())
}

func TestSpinnerArrowButtons(t *testing.T) {
	d, _, s := newTestSpinner(t, Options{HourFormat: Hour12, Initial: &Value{Hour: 9}})
	ampm := s.columns[len(s.columns)-1]

	require.True(t, ampm.up.Disabled(), "up arrow is dead at AM")
	require.False(t, ampm.down.Disabled())

	r := ampm.down.ScreenRect()
	d.Press(r.X+1, r.Y)
	d.Release(r.X+1, r.Y)
	require.Equal(t, PM, s.Meridiem().Get())
	require.Equal(t, 21, s.Selected().Hour)
	require.False(t, ampm.up.Disabled())
	require.True(t, ampm.down.Disabled())
}

func TestSpinnerEscapeCancels(t *testing.T) {
	calls := 0
	var last *Value
	d, _, s := newTestSpinner(t, Options{
		HourFormat: Hour24,
		Initial:    &Value{Hour: 1},
		OnSelect:   func(v *Value) { calls++; last = v },
	})
	require.NoError(t, d.FocusSet(s.FirstField()))
	d.Key(tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, 1, calls)
	require.Nil(t, last)
}

func TestSpinnerTabCyclesFields(t *testing.T) {
	d, _, s := newTestSpinner(t, Options{HourFormat: Hour24, ShowSeconds: true, Initial: &Value{}})
	require.NoError(t, d.FocusSet(s.FirstField()))
	d.Key(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, s.columns[1].entry, d.Focused())
	d.Key(tea.KeyMsg{Type: tea.KeyShiftTab})
	d.Key(tea.KeyMsg{Type: tea.KeyShiftTab})
	require.Equal(t, s.columns[2].entry, d.Focused())
}

func TestSpinnerRebuildKeepsValue(t *testing.T) {
	_, _, s := newTestSpinner(t, Options{HourFormat: Hour12, ShowSeconds: true, Initial: &Value{Hour: 0, Minute: 45, Second: 10}})
	require.Equal(t, "12", s.Hour().Text())

	require.NoError(t, s.SetHourFormat(Hour24))
	require.Nil(t, s.Meridiem())
	require.Equal(t, "00", s.Hour().Text())
	require.Len(t, s.columns, 3)

	s.SetShowSeconds(false)
	require.Nil(t, s.Second())
	require.Equal(t, Value{Minute: 45}, s.Selected())

	require.Error(t, s.SetHourFormat("7"))
}

func TestSpinnerFocusOutHook(t *testing.T) {
	d, w, s := newTestSpinner(t, Options{HourFormat: Hour24, Initial: &Value{}})
	other := widget.NewEntry("other", 4)
	other.Move(0, 8)
	w.Root().Add(other)

	var seen []*widget.Node
	s.OnFocusOut(func(ev widget.Event) widget.Result {
		seen = append(seen, d.Focused())
		return widget.Continue
	})
	require.NoError(t, d.FocusSet(s.FirstField()))
	require.NoError(t, d.FocusSet(other))
	require.Equal(t, []*widget.Node{other}, seen)

	// The hook survives a rebuild.
	require.NoError(t, s.SetHourFormat(Hour12))
	require.NoError(t, d.FocusSet(s.FirstField()))
	require.NoError(t, d.FocusSet(other))
	require.Len(t, seen, 2)
}

func TestSpinnerLabelsFromCatalog(t *testing.T) {
	d := widget.NewDisplay(80, 24)
	d.SetLocale("ja")
	w := d.NewWindow(widget.WindowOptions{Bounds: widget.Rect{W: 40, H: 10}})
	s, err := New(w.Root(), Options{Initial: &Value{}})
	require.NoError(t, err)

	var labels []string
	s.Node().Walk(func(n *widget.Node) bool {
		if n.Kind() == widget.KindLabel && n.Text() != ":" {
			labels = append(labels, n.Text())
		}
		return true
	})
	require.Equal(t, []string{"時", "分"}, labels)
}

func TestNewRejectsBadOptions(t *testing.T) {
	d := widget.NewDisplay(10, 10)
	w := d.NewWindow(widget.WindowOptions{Bounds: widget.Rect{W: 10, H: 10}})
	_, err := New(w.Root(), Options{HourFormat: "36"})
	require.ErrorIs(t, err, ErrHourFormat)
	_, err = New(w.Root(), Options{Initial: &Value{Hour: 24}})
	require.ErrorIs(t, err, ErrInvalidTime)
	_, err = New(nil, Options{})
	require.Error(t, err)
}

func TestSpinnerSelectedTracksTyping(t *testing.T) {
	d, _, s := newTestSpinner(t, Options{HourFormat: Hour24, Initial: &Value{Hour: 10, Minute: 20}})
	minute := s.columns[1].entry

	require.NoError(t, d.FocusSet(minute))
	typeText(d, "4")
	require.Equal(t, Value{Hour: 10, Minute: 4}, s.Selected())
	typeText(d, "5")
	require.Equal(t, Value{Hour: 10, Minute: 45}, s.Selected())
	require.Equal(t, 20, s.Minute().Get(), "typing alone does not commit the field")

	d.Key(tea.KeyMsg{Type: tea.KeyBackspace})
	require.Equal(t, Value{Hour: 10, Minute: 4}, s.Selected())

	// Unparseable text keeps the last good value.
	d.Key(tea.KeyMsg{Type: tea.KeyBackspace})
	require.Equal(t, "", minute.Text())
	require.Equal(t, Value{Hour: 10, Minute: 4}, s.Selected())
}

func TestSpinnerPointerOKCommitsTypedText(t *testing.T) {
	var got *Value
	d, _, s := newTestSpinner(t, Options{
		HourFormat:  Hour24,
		ShowSeconds: true,
		Initial:     &Value{Hour: 9, Minute: 30, Second: 15},
		OnSelect:    func(v *Value) { got = v },
	})
	minute := s.columns[1].entry
	r := minute.ScreenRect()
	d.Press(r.X, r.Y)
	d.Release(r.X, r.Y)
	typeText(d, "45")

	var ok *widget.Node
	for _, n := range s.Node().Children() {
		if n.Name() == "ok" {
			ok = n
		}
	}
	require.NotNil(t, ok)
	r = ok.ScreenRect()
	d.Press(r.X+1, r.Y)
	d.Release(r.X+1, r.Y)

	require.NotNil(t, got)
	require.Equal(t, Value{Hour: 9, Minute: 45, Second: 15}, *got)
	require.Equal(t, 45, s.Minute().Get())
}

func TestSpinnerCommitRevertsBadTypedText(t *testing.T) {
	var got *Value
	d, _, s := newTestSpinner(t, Options{
		HourFormat: Hour24,
		Initial:    &Value{Hour: 10, Minute: 20},
		OnSelect:   func(v *Value) { got = v },
	})
	minute := s.columns[1].entry
	require.NoError(t, d.FocusSet(minute))
	typeText(d, "61")

	s.Commit()
	require.NotNil(t, got)
	require.Equal(t, Value{Hour: 10, Minute: 20}, *got, "61 is rejected and the field reverts")
	require.Equal(t, "20", minute.Text())
}

func TestSpinnerArrowButtonStepsFromTypedText(t *testing.T) {
	d, _, s := newTestSpinner(t, Options{HourFormat: Hour24, Initial: &Value{Hour: 10, Minute: 20}})
	c := s.columns[1]
	require.NoError(t, d.FocusSet(c.entry))
	typeText(d, "45")

	r := c.up.ScreenRect()
	d.Press(r.X+1, r.Y)
	d.Release(r.X+1, r.Y)
	require.Equal(t, 46, s.Minute().Get())
	require.Equal(t, "46", c.entry.Text())
	require.Equal(t, Value{Hour: 10, Minute: 46}, s.Selected())
}
