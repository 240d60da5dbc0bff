// Package widget is the retained-mode terminal toolkit the pickers are
// built on.
//
// Allowed here:
// - node trees, top-level windows, focus, pointer routing, bindings
// - the idle queue and the virtual-clock timers
//
// Not allowed here:
// - picker policy (timepicker) or drawing (internal/tui)
package widget
