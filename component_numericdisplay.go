// component_numericdisplay.go - NumericDisplay (spec §3, §4.6)

package breadboard

import "strconv"

// NumericDisplayState renders values read off its X-bus pins in a
// configurable base, clamped to [Min,Max].
type NumericDisplayState struct {
	Text     string
	Base     int
	Min, Max int64
}

// NewNumericDisplay creates a numeric display component.
func NewNumericDisplay(pos Position, w, h int, base int, min, max int64, xbuses []Bus) *Component {
	return &Component{
		Kind: KindNumericDisplay, Pos: pos, W: w, H: h,
		XBuses:  xbuses,
		Numeric: &NumericDisplayState{Base: base, Min: min, Max: max},
	}
}

// tickNumericDisplay implements spec §4.6: on ReadComplete, clamp
// and render the payload in Base (falling back to base 10 for any
// value outside {2,8,10,16} - re-checked every tick per the open
// question in spec §9/SPEC_FULL.md), then return the pin to Reading.
func tickNumericDisplay(c *Component) {
	n := c.Numeric
	base := n.Base
	switch base {
	case 2, 8, 10, 16:
	default:
		base = 10
	}
	for i := range c.XBuses {
		pin := &c.XBuses[i]
		if pin.XState != ReadComplete {
			continue
		}
		v := pin.Value
		if v < n.Min {
			v = n.Min
		}
		if v > n.Max {
			v = n.Max
		}
		n.Text = strconv.FormatInt(v, base)
		pin.XState = Reading
	}
}
