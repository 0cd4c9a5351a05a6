// component_textdisplay.go - TextDisplay (spec §3, §4.6)

package breadboard

// TextDisplayState is a fixed-width character line addressed by
// position, one character write per handshake.
type TextDisplayState struct {
	Text   string
	MaxLen int
}

// NewTextDisplay creates a text display component.
func NewTextDisplay(pos Position, w, h int, maxLen int, xbuses []Bus) *Component {
	return &Component{
		Kind: KindTextDisplay, Pos: pos, W: w, H: h,
		XBuses: xbuses,
		Text:   &TextDisplayState{MaxLen: maxLen},
	}
}

// tickTextDisplay implements spec §4.6: low 16 bits of the payload
// are a character code, the next 16 bits a position index.
func tickTextDisplay(c *Component) {
	t := c.Text
	for i := range c.XBuses {
		pin := &c.XBuses[i]
		if pin.XState != ReadComplete {
			continue
		}
		payload := uint64(pin.Value)
		ch := rune(payload & 0xFFFF)
		pos := int((payload >> 16) & 0xFFFF)
		if pos >= 0 && pos < t.MaxLen {
			runes := padTo(t.Text, t.MaxLen)
			runes[pos] = ch
			t.Text = string(runes)
		}
		pin.XState = Reading
	}
}

// padTo pads or truncates s to exactly n runes of spaces, returning
// a mutable rune slice.
func padTo(s string, n int) []rune {
	runes := []rune(s)
	out := make([]rune, n)
	for i := range out {
		out[i] = ' '
	}
	copy(out, runes)
	return out
}
