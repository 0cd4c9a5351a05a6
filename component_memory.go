// component_memory.go - Memory (spec §3, §4.6)

package breadboard

import (
	"fmt"
	"strings"
)

// MemoryState is an addressable cell array accessed through
// pointer/data X-bus pin pairs.
type MemoryState struct {
	Cells []int64
}

// NewMemory creates a memory component with capacity clamped to
// [0,2048] (spec §3).
func NewMemory(pos Position, w, h int, capacity int, xbuses []Bus) *Component {
	if capacity < 0 {
		capacity = 0
	}
	if capacity > 2048 {
		capacity = 2048
	}
	return &Component{
		Kind: KindMemory, Pos: pos, W: w, H: h,
		XBuses: xbuses,
		Memory: &MemoryState{Cells: make([]int64, capacity)},
	}
}

type memPair struct{ xp, xd int }

// pairMemoryPins matches every "xp<suffix>" pin to its "xd<suffix>"
// data pin (spec §4.6). A pointer pin with zero or more than one
// matching data pin is a fatal error.
func pairMemoryPins(buses []Bus) ([]memPair, error) {
	var pairs []memPair
	for i, b := range buses {
		if !strings.HasPrefix(b.Address, "xp") {
			continue
		}
		suffix := b.Address[2:]
		match := -1
		for j, d := range buses {
			if d.Address == "xd"+suffix {
				if match >= 0 {
					return nil, fmt.Errorf("memory pointer %q has duplicate data pin %q", b.Address, d.Address)
				}
				match = j
			}
		}
		if match < 0 {
			return nil, fmt.Errorf("memory pointer %q has no matching data pin", b.Address)
		}
		pairs = append(pairs, memPair{xp: i, xd: match})
	}
	return pairs, nil
}

// tickMemory implements spec §4.6's four-step pointer/data handshake.
func tickMemory(c *Component) error {
	m := c.Memory
	pairs, err := pairMemoryPins(c.XBuses)
	if err != nil {
		return err
	}
	for _, pr := range pairs {
		ptr := &c.XBuses[pr.xp]
		data := &c.XBuses[pr.xd]
		p := ptr.Value
		if p < 0 || p >= int64(len(m.Cells)) {
			return fmt.Errorf("memory pointer %q out of range: %d (capacity %d)", ptr.Address, p, len(m.Cells))
		}
		ptr.XState = ReadingWriting
		if data.XState == ReadComplete {
			m.Cells[p] = data.Value
		}
		data.Value = m.Cells[p]
		data.XState = ReadingWriting
	}
	return nil
}
