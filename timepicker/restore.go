package timepicker

import (
	"github.com/jask/termface/widget"
)

// scheduleFocusRestore hands focus back to target once the dismissing
// event has finished. With generateClick it also replays a click on
// target so a trigger that opens on click reacts to the same gesture.
// Failures are logged and dropped.
func (p *picker) scheduleFocusRestore(target *widget.Node, generateClick bool) {
	if target == nil {
		return
	}
	d := target.Display()
	if d == nil {
		p.logger.Debug("focus restore target has no display", "target", target.Name())
		return
	}
	gen := p.generation
	d.AfterIdle(func() {
		defer func() {
			if r := recover(); r != nil {
				p.logger.Debug("focus restoration failed", "panic", r)
			}
		}()
		if p.generation != gen {
			p.logger.Debug("focus restore superseded", "target", target.Path())
			return
		}
		if err := d.FocusForce(target); err != nil {
			p.logger.Debug("focus restoration failed", "target", target.Path(), "err", err)
			return
		}
		// A button already ran its command for this release.
		if generateClick && target.Kind() != widget.KindButton {
			if _, err := d.Generate(target, widget.ButtonPress); err != nil {
				p.logger.Debug("synthetic press failed", "err", err)
				return
			}
			if _, err := d.Generate(target, widget.ButtonRelease); err != nil {
				p.logger.Debug("synthetic release failed", "err", err)
				return
			}
		}
		if ed, ok := target.Editor(); ok && target.Exists() {
			ed.SelectAll()
			ed.CursorEnd()
		}
	})
}
