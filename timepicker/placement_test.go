package timepicker

import (
	"testing"

	"github.com/jask/termface/widget"
)

func TestPlace(t *testing.T) {
	tests := []struct {
		name             string
		anchor           widget.Rect
		w, h             int
		screenW, screenH int
		wantX, wantY     int
	}{
		{"below anchor", widget.Rect{X: 100, Y: 50, W: 120, H: 20}, 250, 150, 1920, 1080, 100, 70},
		{"clamped to right edge", widget.Rect{X: 1850, Y: 50, W: 60, H: 150}, 250, 150, 1920, 1080, 1670, 200},
		{"flipped above anchor", widget.Rect{X: 10, Y: 1000, W: 60, H: 20}, 250, 150, 1024, 1080, 10, 850},
		{"floored at zero", widget.Rect{X: 2, Y: 3, W: 5, H: 1}, 40, 30, 20, 20, 0, 0},
		{"exact fit stays below", widget.Rect{X: 0, Y: 10, W: 5, H: 1}, 10, 9, 10, 20, 0, 11},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := Place(tt.anchor, tt.w, tt.h, tt.screenW, tt.screenH)
			if x != tt.wantX || y != tt.wantY {
				t.Fatalf("Place = (%d, %d), want (%d, %d)", x, y, tt.wantX, tt.wantY)
			}
		})
	}
}
