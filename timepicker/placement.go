package timepicker

import "github.com/jask/termface/widget"

// Place returns the popup origin for an anchor rectangle in screen
// coordinates. The popup hangs below the anchor with left edges aligned,
// shifts left when it would overflow the right edge, flips above the
// anchor when it would overflow the bottom, and never goes negative.
func Place(anchor widget.Rect, width, height, screenW, screenH int) (x, y int) {
	x = anchor.X
	y = anchor.Y + anchor.H
	if x+width > screenW {
		x = screenW - width
	}
	if y+height > screenH {
		y = anchor.Y - height
	}
	return max(x, 0), max(y, 0)
}
