// component_button.go - PressButton and ToggleButton (spec §3, §4.6)

package breadboard

// ButtonState is the payload shared by PressButton and ToggleButton;
// the two differ only in how their Press/Release events are driven
// (momentary vs. flip-on-press), which lives on the caller side -
// the board's tick contract for both is identical.
type ButtonState struct {
	State bool
}

// NewPressButton creates a momentary push-button component.
func NewPressButton(pos Position, w, h int, sbuses []Bus) *Component {
	return &Component{
		Kind: KindPressButton, Pos: pos, W: w, H: h,
		SBuses: sbuses,
		Button: &ButtonState{},
	}
}

// NewToggleButton creates a flip-on-press toggle component.
func NewToggleButton(pos Position, w, h int, sbuses []Bus) *Component {
	return &Component{
		Kind: KindToggleButton, Pos: pos, W: w, H: h,
		SBuses: sbuses,
		Button: &ButtonState{},
	}
}

// Press drives a PressButton true (held) or flips a ToggleButton.
func (c *Component) Press() {
	if c.Button == nil {
		return
	}
	if c.Kind == KindToggleButton {
		c.Button.State = !c.Button.State
	} else {
		c.Button.State = true
	}
}

// Release clears a PressButton's momentary state. No-op on a toggle.
func (c *Component) Release() {
	if c.Button == nil || c.Kind != KindPressButton {
		return
	}
	c.Button.State = false
}

// tickButton writes 255/0 to every SBus pin per the button's state
// (spec §4.6).
func tickButton(c *Component) {
	var v int64
	if c.Button.State {
		v = 255
	}
	for i := range c.SBuses {
		c.SBuses[i].WriteSignal(v)
	}
}
