// component_test.go - peripheral tick semantics (spec §4.6)

package breadboard

import "testing"

func TestTickButton(t *testing.T) {
	c := NewPressButton(Position{}, 1, 1, []Bus{{Address: "s0", Kind: SBus}})
	tickButton(c)
	if c.SBuses[0].Value != 0 {
		t.Fatalf("released button: SBus value = %d, want 0", c.SBuses[0].Value)
	}

	c.Press()
	tickButton(c)
	if c.SBuses[0].Value != 255 {
		t.Fatalf("pressed button: SBus value = %d, want 255", c.SBuses[0].Value)
	}

	c.Release()
	tickButton(c)
	if c.SBuses[0].Value != 0 {
		t.Fatalf("released button: SBus value = %d, want 0", c.SBuses[0].Value)
	}
}

func TestToggleButtonFlipsOnPress(t *testing.T) {
	c := NewToggleButton(Position{}, 1, 1, []Bus{{Address: "s0", Kind: SBus}})
	c.Press()
	if !c.Button.State {
		t.Fatal("expected first press to set toggle state true")
	}
	c.Press()
	if c.Button.State {
		t.Fatal("expected second press to flip toggle state back to false")
	}
	// Release is a no-op for a toggle.
	c.Press()
	c.Release()
	if !c.Button.State {
		t.Fatal("expected Release on a toggle button to have no effect")
	}
}

func TestTickLEDTakesMaxAcrossSBuses(t *testing.T) {
	b := NewBoard(3, 1)
	led := NewLED(Position{2, 0}, 1, 1, "red", []Bus{
		{Address: "s0", Kind: SBus, Value: 10},
		{Address: "s1", Kind: SBus, Value: 200},
	})
	if !b.AddComponent(led) {
		t.Fatal("failed to place LED")
	}
	if err := b.Initialise(); err != nil {
		t.Fatalf("Initialise: %v", err)
	}
	tickLED(led, b)
	if led.LED.Value != 200 {
		t.Fatalf("LED.Value = %d, want 200", led.LED.Value)
	}
}

func TestTickNumericDisplayClampsAndFormats(t *testing.T) {
	c := NewNumericDisplay(Position{}, 1, 1, 16, 0, 255, []Bus{{Address: "x0", Kind: XBus}})
	c.XBuses[0].Value = 4096
	c.XBuses[0].XState = ReadComplete
	tickNumericDisplay(c)
	if c.Numeric.Text != "ff" {
		t.Fatalf("Text = %q, want %q (clamped to 255, base 16)", c.Numeric.Text, "ff")
	}
	if c.XBuses[0].XState != Reading {
		t.Fatalf("XState after display = %v, want Reading", c.XBuses[0].XState)
	}
}

// TestTickNumericDisplayBaseFallback verifies the boundary behaviour
// from spec §8: a base outside {2,8,10,16} renders in base 10.
func TestTickNumericDisplayBaseFallback(t *testing.T) {
	c := NewNumericDisplay(Position{}, 1, 1, 7, 0, 1000, []Bus{{Address: "x0", Kind: XBus}})
	c.XBuses[0].Value = 42
	c.XBuses[0].XState = ReadComplete
	tickNumericDisplay(c)
	if c.Numeric.Text != "42" {
		t.Fatalf("Text = %q, want %q (base-10 fallback)", c.Numeric.Text, "42")
	}
}

func TestTickTextDisplayWritesAtPosition(t *testing.T) {
	c := NewTextDisplay(Position{}, 1, 1, 4, []Bus{{Address: "x0", Kind: XBus}})
	payload := int64('Z') | int64(2)<<16
	c.XBuses[0].Value = payload
	c.XBuses[0].XState = ReadComplete
	tickTextDisplay(c)
	if c.Text.Text != "  Z " {
		t.Fatalf("Text = %q, want %q", c.Text.Text, "  Z ")
	}
}

func TestTickBitmapDisplayDecodesPayload(t *testing.T) {
	c := NewBitmapDisplay(Position{}, 1, 1, 4, 4, 0, 0, []Bus{{Address: "x0", Kind: XBus}})
	x, y := int64(1), int64(2)
	r, g, bl := int64(0x10), int64(0x20), int64(0x30)
	payload := bl | g<<8 | r<<16 | y<<24 | x<<40
	c.XBuses[0].Value = payload
	c.XBuses[0].XState = ReadComplete
	tickBitmapDisplay(c)
	want := rgb(0x10, 0x20, 0x30)
	if got := c.Bitmap.Pixels[int(y)*c.Bitmap.W+int(x)]; got != want {
		t.Fatalf("Pixels[%d,%d] = 0x%06X, want 0x%06X", x, y, got, want)
	}
}

func TestTickMemoryStoreAndLoad(t *testing.T) {
	c := NewMemory(Position{}, 1, 1, 8, []Bus{
		{Address: "xp0", Kind: XBus},
		{Address: "xd0", Kind: XBus},
	})
	ptr := &c.XBuses[0]
	data := &c.XBuses[1]

	ptr.Value = 3
	data.Value = 99
	data.XState = ReadComplete
	if err := tickMemory(c); err != nil {
		t.Fatalf("tickMemory (store): %v", err)
	}
	if c.Memory.Cells[3] != 99 {
		t.Fatalf("Cells[3] = %d, want 99 (store)", c.Memory.Cells[3])
	}
	if ptr.XState != ReadingWriting {
		t.Fatalf("pointer XState = %v, want ReadingWriting", ptr.XState)
	}

	data.XState = Idle
	if err := tickMemory(c); err != nil {
		t.Fatalf("tickMemory (load): %v", err)
	}
	if data.Value != 99 {
		t.Fatalf("data.Value = %d, want 99 (load back)", data.Value)
	}
}

func TestTickMemoryOutOfRangeIsFatal(t *testing.T) {
	c := NewMemory(Position{}, 1, 1, 4, []Bus{
		{Address: "xp0", Kind: XBus},
		{Address: "xd0", Kind: XBus},
	})
	c.XBuses[0].Value = 4 // capacity 4: valid indices are 0..3
	if err := tickMemory(c); err == nil {
		t.Fatal("expected an out-of-range memory pointer to be a fatal error")
	}
}

func TestPairMemoryPinsRejectsUnmatchedPointer(t *testing.T) {
	_, err := pairMemoryPins([]Bus{{Address: "xp0", Kind: XBus}})
	if err == nil {
		t.Fatal("expected an unmatched xp0 pointer pin to be an error")
	}
}
