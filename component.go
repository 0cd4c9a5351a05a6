// component.go - the Component tagged variant and its tick contract
//
// DESIGN NOTES §9 replaces a reflective/polymorphic component
// hierarchy with a tagged variant: one struct, a Kind discriminator,
// and exactly one populated payload pointer. This mirrors the
// teacher's own preference for flat structs over class hierarchies
// (e.g. CPUEntry, WriteRecord in debug_monitor.go) rather than an
// interface per device.

package breadboard

import "fmt"

// ComponentKind discriminates the concrete component variants.
type ComponentKind int

const (
	KindPressButton ComponentKind = iota
	KindToggleButton
	KindLED
	KindNumericDisplay
	KindTextDisplay
	KindBitmapDisplay
	KindMemory
	KindMicroController
)

func (k ComponentKind) String() string {
	switch k {
	case KindPressButton:
		return "PressButton"
	case KindToggleButton:
		return "ToggleButton"
	case KindLED:
		return "LED"
	case KindNumericDisplay:
		return "NumericDisplay"
	case KindTextDisplay:
		return "TextDisplay"
	case KindBitmapDisplay:
		return "BitmapDisplay"
	case KindMemory:
		return "Memory"
	case KindMicroController:
		return "MicroController"
	default:
		return "Unknown"
	}
}

// Component is a placed, rectangular device with typed pins. Exactly
// one of the variant payload pointers is non-nil, selected by Kind.
type Component struct {
	Kind ComponentKind
	Pos  Position
	W, H int

	SBuses []Bus
	XBuses []Bus

	// boardIndex caches this component's position in Board.components
	// as of the last Initialise call; used to dereference busRef
	// without threading an index through every tick call.
	boardIndex int

	Button  *ButtonState
	LED     *LEDState
	Numeric *NumericDisplayState
	Text    *TextDisplayState
	Bitmap  *BitmapDisplayState
	Memory  *MemoryState
	MCU     *MicroController
}

// Rect returns the component's footprint.
func (c *Component) Rect() Rect {
	return Rect{Pos: c.Pos, W: c.W, H: c.H}
}

// AllBuses returns SBuses followed by XBuses, the order the
// connectivity cache is built and iterated in.
func (c *Component) AllBuses() []*Bus {
	out := make([]*Bus, 0, len(c.SBuses)+len(c.XBuses))
	for i := range c.SBuses {
		out = append(out, &c.SBuses[i])
	}
	for i := range c.XBuses {
		out = append(out, &c.XBuses[i])
	}
	return out
}

// Addresses returns every data-location address owned by the
// component: its buses, and (for a microcontroller) its registers.
// Used by Board.Initialise to check the disjointness invariant of
// spec §4.7 step 1.
func (c *Component) Addresses() []string {
	var out []string
	for _, b := range c.SBuses {
		out = append(out, b.Address)
	}
	for _, b := range c.XBuses {
		out = append(out, b.Address)
	}
	if c.MCU != nil {
		for _, r := range c.MCU.Registers {
			out = append(out, r.Address)
		}
	}
	return out
}

// resetVariant restores the component's variant payload to its
// default state, per spec §3 "reset() ... clears display contents".
func (c *Component) resetVariant() {
	for i := range c.SBuses {
		c.SBuses[i].Value = 0
	}
	for i := range c.XBuses {
		c.XBuses[i].Value = 0
		c.XBuses[i].XState = Idle
	}
	switch c.Kind {
	case KindPressButton, KindToggleButton:
		c.Button.State = false
	case KindLED:
		c.LED.Value = 0
	case KindNumericDisplay:
		c.Numeric.Text = ""
	case KindTextDisplay:
		c.Text.Text = ""
	case KindBitmapDisplay:
		for i := range c.Bitmap.Pixels {
			c.Bitmap.Pixels[i] = c.Bitmap.InactiveColor
		}
	case KindMemory:
		for i := range c.Memory.Cells {
			c.Memory.Cells[i] = 0
		}
	case KindMicroController:
		c.MCU.reset()
	}
}

// tickVariant advances the component's own behaviour for one tick,
// before the board-wide XBus delivery sweep runs (spec §4.6-§4.7).
func (c *Component) tickVariant(b *Board) error {
	switch c.Kind {
	case KindPressButton, KindToggleButton:
		tickButton(c)
	case KindLED:
		tickLED(c, b)
	case KindNumericDisplay:
		tickNumericDisplay(c)
	case KindTextDisplay:
		tickTextDisplay(c)
	case KindBitmapDisplay:
		tickBitmapDisplay(c)
	case KindMemory:
		return tickMemory(c)
	case KindMicroController:
		return c.MCU.tick(b, c)
	default:
		return fmt.Errorf("unknown component kind %v", c.Kind)
	}
	return nil
}
