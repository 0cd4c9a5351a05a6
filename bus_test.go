// bus_test.go - SBus/XBus semantics (spec §4.4-§4.5)

package breadboard

import "testing"

// TestSBusWriteSignalClamps verifies boundary behaviour: any written
// value is observed clamped to [0,255] (spec §8).
func TestSBusWriteSignalClamps(t *testing.T) {
	tests := []struct {
		in, want int64
	}{
		{-100, 0},
		{0, 0},
		{255, 255},
		{256, 255},
		{100000, 255},
	}
	for _, tc := range tests {
		b := Bus{Kind: SBus}
		b.WriteSignal(tc.in)
		if b.Value != tc.want {
			t.Errorf("WriteSignal(%d): Value = %d, want %d", tc.in, b.Value, tc.want)
		}
	}
}

func TestBusAbsolutePort(t *testing.T) {
	b := Bus{Pos: Position{X: 1, Y: 2}, Dir: Right}
	anchor := Position{X: 5, Y: 5}
	if got := b.AbsolutePort(anchor); got != (Position{X: 6, Y: 7}) {
		t.Fatalf("AbsolutePort = %v, want (6,7)", got)
	}
}

func TestXStateString(t *testing.T) {
	tests := []struct {
		s    XState
		want string
	}{
		{Idle, "Idle"},
		{Reading, "Reading"},
		{Writing, "Writing"},
		{ReadingWriting, "ReadingWriting"},
		{WriteComplete, "WriteComplete"},
		{ReadComplete, "ReadComplete"},
	}
	for _, tc := range tests {
		if got := tc.s.String(); got != tc.want {
			t.Errorf("%d.String() = %q, want %q", tc.s, got, tc.want)
		}
	}
}
