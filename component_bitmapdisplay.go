// component_bitmapdisplay.go - BitmapDisplay (spec §3, §4.6)

package breadboard

// BitmapDisplayState is a w x h grid of packed 0xRRGGBB pixel
// values, written one pixel per handshake.
type BitmapDisplayState struct {
	W, H                        int
	Pixels                      []uint32
	DefaultColor, InactiveColor uint32
}

// NewBitmapDisplay creates a bitmap display component. w and h are
// clamped to [0,1024] per spec §3.
func NewBitmapDisplay(pos Position, footW, footH int, bitmapW, bitmapH int, defaultColor, inactiveColor uint32, xbuses []Bus) *Component {
	if bitmapW > 1024 {
		bitmapW = 1024
	}
	if bitmapH > 1024 {
		bitmapH = 1024
	}
	if bitmapW < 0 {
		bitmapW = 0
	}
	if bitmapH < 0 {
		bitmapH = 0
	}
	pixels := make([]uint32, bitmapW*bitmapH)
	for i := range pixels {
		pixels[i] = defaultColor
	}
	return &Component{
		Kind: KindBitmapDisplay, Pos: pos, W: footW, H: footH,
		XBuses: xbuses,
		Bitmap: &BitmapDisplayState{
			W: bitmapW, H: bitmapH, Pixels: pixels,
			DefaultColor: defaultColor, InactiveColor: inactiveColor,
		},
	}
}

func rgb(r, g, b uint32) uint32 {
	return (r << 16) | (g << 8) | b
}

// tickBitmapDisplay implements spec §4.6: the payload packs, from
// the low byte up, b(8) g(8) r(8) y(16) x(16).
func tickBitmapDisplay(c *Component) {
	bm := c.Bitmap
	for i := range c.XBuses {
		pin := &c.XBuses[i]
		if pin.XState != ReadComplete {
			continue
		}
		payload := uint64(pin.Value)
		b := uint32(payload & 0xFF)
		g := uint32((payload >> 8) & 0xFF)
		r := uint32((payload >> 16) & 0xFF)
		y := int((payload >> 24) & 0xFFFF)
		x := int((payload >> 40) & 0xFFFF)
		if x >= 0 && x < bm.W && y >= 0 && y < bm.H {
			bm.Pixels[y*bm.W+x] = rgb(r, g, b)
		}
		pin.XState = Reading
	}
}
