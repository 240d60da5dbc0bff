package timepicker

import (
	"github.com/jask/termface/widget"
)

// bindCoordinator installs the listeners that decide whether a pointer or
// focus event keeps the popup open. Popup-window bindings die with the
// window; the host-window binding is removed explicitly in teardown.
func (p *picker) bindCoordinator() {
	p.popup.Bind(widget.ButtonPress, p.overlayClick)
	p.popup.Bind(widget.ButtonRelease, p.overlayClick)

	if !p.hostClick {
		return
	}
	host := p.trigger.Window()
	if host == nil {
		return
	}
	p.unbindHost()
	p.hostWindow = host
	p.hostBinding = host.Bind(widget.ButtonRelease, p.hostRelease)
}

func (p *picker) unbindHost() {
	if p.hostBinding == "" {
		return
	}
	if p.hostWindow.Exists() && !p.hostWindow.Unbind(widget.ButtonRelease, p.hostBinding) {
		p.logger.Debug("host click binding already gone", "id", p.hostBinding)
	}
	p.hostWindow = nil
	p.hostBinding = ""
}

// overlayClick handles presses and releases inside the popup window. It
// never closes the popup; it only keeps focus in the composer.
func (p *picker) overlayClick(ev widget.Event) (res widget.Result) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Debug("overlay click target resolution failed", "panic", r)
			p.focusComposer(false)
			res = widget.Break
		}
	}()
	if p.spinner == nil {
		return widget.Continue
	}
	if _, isToken := ev.Target.(widget.Token); isToken {
		// No ancestry to walk; fall back to the pointer position.
		if !p.popup.Bounds().Contains(ev.RootX, ev.RootY) {
			p.logger.Debug("token click outside popup bounds, keeping open", "target", widget.TargetPath(ev.Target))
		}
		p.focusComposer(false)
		return widget.Break
	}
	if !widget.IsDescendant(ev.Target, p.spinner.Node()) {
		p.logger.Debug("click on popup chrome", "target", widget.TargetPath(ev.Target))
	}
	p.focusComposer(false)
	return widget.Break
}

// hostRelease closes the popup when the host window is clicked outside
// it. The event always continues so the same click reaches the widget
// underneath.
func (p *picker) hostRelease(ev widget.Event) widget.Result {
	if !p.IsOpen() {
		return widget.Continue
	}
	if _, isToken := ev.Target.(widget.Token); isToken {
		return widget.Continue
	}
	// The trigger handles its own clicks, including the one that opened
	// the popup.
	if widget.IsDescendant(ev.Target, p.trigger) {
		return widget.Continue
	}
	host := p.hostWindow
	if !host.Exists() {
		return widget.Continue
	}
	hb := host.Bounds()
	x, y := hb.X+ev.X, hb.Y+ev.Y
	if p.popup.Bounds().Contains(x, y) {
		return widget.Continue
	}
	target := ev.Widget()
	p.HideTimePicker()
	p.scheduleFocusRestore(target, p.hostClick)
	return widget.Continue
}

// focusOut runs when a composer field loses focus. Focus moving within
// the composer or back to the trigger keeps the popup open.
func (p *picker) focusOut(widget.Event) (res widget.Result) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Debug("focus out handling failed, closing", "panic", r)
			p.HideTimePicker()
			res = widget.Break
		}
	}()
	if !p.IsOpen() {
		return widget.Continue
	}
	d := p.display()
	focused := d.Focused()
	if focused != nil {
		if widget.IsDescendant(focused, p.trigger) || widget.IsDescendant(focused, p.spinner.Node()) {
			return widget.Break
		}
		p.HideTimePicker()
		return widget.Break
	}
	px, py := d.Pointer()
	if p.popup.Bounds().Contains(px, py) {
		p.focusComposer(true)
	} else {
		p.HideTimePicker()
	}
	return widget.Break
}
