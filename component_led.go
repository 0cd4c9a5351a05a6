// component_led.go - LED (spec §3, §4.6)

package breadboard

// LEDState holds an LED's colour tag and its current driven value.
type LEDState struct {
	Color string
	Value int64
}

// NewLED creates an LED component.
func NewLED(pos Position, w, h int, color string, sbuses []Bus) *Component {
	return &Component{
		Kind: KindLED, Pos: pos, W: w, H: h,
		SBuses: sbuses,
		LED:    &LEDState{Color: color},
	}
}

// tickLED sets Value to the maximum signal seen across all of the
// LED's S-bus nets, clamped to [0,255] (spec §4.6).
func tickLED(c *Component, b *Board) {
	var max int64
	for j := range c.SBuses {
		if v := b.sbusMax(busRef{component: c.boardIndex, bus: j}); v > max {
			max = v
		}
	}
	c.LED.Value = clamp255(max)
}
