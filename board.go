// board.go - the Board: component/cable ownership, connectivity
// cache, and the tick scheduler (spec §3-§5)
//
// The scheduler itself is deliberately simple (DESIGN NOTES §9): no
// goroutines, no channels, a single pass over components in
// placement order followed by a single pass over the connectivity
// cache for the XBus delivery sweep. This mirrors the teacher's own
// MachineMonitor bookkeeping (debug_monitor.go RegisterCPU/ResetCPUs)
// for owning a registry of devices by stable index, without any of
// its concurrency (the teacher's debugger runs alongside a
// goroutine-driven CPU; BreadBoard's scheduler has no such need -
// spec §5 rules out concurrency between components entirely).

package breadboard

import (
	"fmt"

	"github.com/golang/glog"
)

// Board is the simulation space: a grid, its placed components, its
// cables, and (once initialised) the connectivity cache.
type Board struct {
	W, H int

	components []*Component
	cables     map[CableKind][]Cable

	cache       map[busRef][]busRef
	initialised bool
}

// NewBoard creates an empty board of the given dimensions.
func NewBoard(w, h int) *Board {
	return &Board{
		W: w, H: h,
		cables: map[CableKind][]Cable{Solder: nil, Bridge: nil},
	}
}

// Components returns the placed components in placement order. The
// returned slice is the board's own backing slice and must not be
// mutated by the caller.
func (b *Board) Components() []*Component { return b.components }

// Cables returns the cables of one variant in insertion order.
func (b *Board) Cables(k CableKind) []Cable { return b.cables[k] }

// Microcontrollers returns every MicroController component in
// placement order.
func (b *Board) Microcontrollers() []*MicroController {
	var out []*MicroController
	for _, c := range b.components {
		if c.Kind == KindMicroController {
			out = append(out, c.MCU)
		}
	}
	return out
}

// TotalOps sums Ops across every microcontroller on the board.
func (b *Board) TotalOps() int64 {
	var total int64
	for _, m := range b.Microcontrollers() {
		total += m.Ops
	}
	return total
}

func (b *Board) insideAnyComponent(p Position) bool {
	for _, c := range b.components {
		if c.Rect().Contains(p) {
			return true
		}
	}
	return false
}

// componentAt returns the component whose footprint contains p, or
// nil.
func (b *Board) componentAt(p Position) *Component {
	for _, c := range b.components {
		if c.Rect().Contains(p) {
			return c
		}
	}
	return nil
}

func (b *Board) allCables() []Cable {
	var out []Cable
	out = append(out, b.cables[Bridge]...)
	out = append(out, b.cables[Solder]...)
	return out
}

// wiredCableIndex implements spec §4.2: find the unique cable whose
// endpoint set contains the absolute port position and whose other
// endpoint is the port shifted one tile in the bus's facing
// direction. Returns -1 if the bus is unconnected.
func wiredCableIndex(all []Cable, port Position, dir Direction) int {
	want := port.Neighbour(dir)
	for i, c := range all {
		if c.hasEndpoint(port) && c.otherEnd(port) == want {
			return i
		}
	}
	return -1
}

// AddComponent places c on the board if every rule in spec §3-§4 is
// satisfied, returning false (board unchanged) otherwise.
func (b *Board) AddComponent(c *Component) bool {
	if !c.Rect().InBounds(b.W, b.H) {
		return false
	}
	for _, other := range b.components {
		if c.Rect().Overlaps(other.Rect()) {
			return false
		}
	}
	all := b.allCables()
	for _, cable := range all {
		for _, end := range [2]Position{cable.A, cable.B} {
			if !c.Rect().Contains(end) {
				continue
			}
			if !endpointMatchesPort(c, end, cable.otherEnd(end)) {
				return false
			}
		}
	}
	b.components = append(b.components, c)
	b.initialised = false
	return true
}

// endpointMatchesPort reports whether position end coincides with
// one of c's bus ports, facing toward other.
func endpointMatchesPort(c *Component, end, other Position) bool {
	for _, bus := range c.AllBuses() {
		if bus.AbsolutePort(c.Pos) == end && end.Neighbour(bus.Dir) == other {
			return true
		}
	}
	return false
}

// RemoveComponent removes c from the board if present.
func (b *Board) RemoveComponent(c *Component) bool {
	for i, other := range b.components {
		if other == c {
			b.components = append(b.components[:i], b.components[i+1:]...)
			b.initialised = false
			return true
		}
	}
	return false
}

// AddCable validates and places a cable per spec §4.1.
func (b *Board) AddCable(cable Cable) bool {
	if !cable.A.InBounds(b.W, b.H) || !cable.B.InBounds(b.W, b.H) {
		return false
	}
	if !cable.A.Adjacent(cable.B) {
		return false
	}
	for _, existing := range b.allCables() {
		if sameEndpoints(existing, cable) {
			return false
		}
	}
	for _, k := range b.components {
		aIn := k.Rect().Contains(cable.A)
		bIn := k.Rect().Contains(cable.B)
		if aIn && bIn {
			return false
		}
		if aIn && (cable.Kind == Bridge || !endpointMatchesPort(k, cable.A, cable.B)) {
			return false
		}
		if bIn && (cable.Kind == Bridge || !endpointMatchesPort(k, cable.B, cable.A)) {
			return false
		}
	}

	all := append(append([]Cable{}, b.allCables()...), cable)
	candidateIdx := len(all) - 1
	if mixesKinds(b, all, candidateIdx) {
		return false
	}

	b.cables[cable.Kind] = append(b.cables[cable.Kind], cable)
	b.initialised = false
	return true
}

// mixesKinds reports whether the net the candidate cable (at index
// idx in all) would join contains both an SBus and an XBus.
func mixesKinds(b *Board, all []Cable, idx int) bool {
	visited := netFrom(all, idx, b.insideAnyComponent)
	hasS, hasX := false, false
	for _, comp := range b.components {
		for _, bus := range comp.AllBuses() {
			abs := bus.AbsolutePort(comp.Pos)
			ci := wiredCableIndex(all, abs, bus.Dir)
			if ci >= 0 && visited[ci] {
				if bus.Kind == SBus {
					hasS = true
				} else {
					hasX = true
				}
			}
		}
	}
	return hasS && hasX
}

// RemoveCable removes a cable with the same endpoints and kind, if
// present.
func (b *Board) RemoveCable(cable Cable) bool {
	list := b.cables[cable.Kind]
	for i, existing := range list {
		if sameEndpoints(existing, cable) {
			b.cables[cable.Kind] = append(list[:i], list[i+1:]...)
			b.initialised = false
			return true
		}
	}
	return false
}

// Initialise (re)compiles every microcontroller, checks address
// disjointness, and rebuilds the connectivity cache (spec §4.3,
// §4.7).
func (b *Board) Initialise() error {
	for i, c := range b.components {
		c.boardIndex = i
		if c.Kind == KindMicroController {
			if err := checkAddressesDisjoint(c); err != nil {
				return err
			}
			if err := c.MCU.compile(c); err != nil {
				return err
			}
		}
	}

	all := b.allCables()
	cache := make(map[busRef][]busRef)
	for i, comp := range b.components {
		for j, bus := range comp.AllBuses() {
			abs := bus.AbsolutePort(comp.Pos)
			ci := wiredCableIndex(all, abs, bus.Dir)
			ref := busRef{component: i, bus: j}
			if ci < 0 {
				cache[ref] = nil
				continue
			}
			visited := netFrom(all, ci, b.insideAnyComponent)
			var peers []busRef
			for pi, pcomp := range b.components {
				for pj, pbus := range pcomp.AllBuses() {
					if pi == i && pj == j {
						continue
					}
					pabs := pbus.AbsolutePort(pcomp.Pos)
					pci := wiredCableIndex(all, pabs, pbus.Dir)
					if pci >= 0 && visited[pci] {
						peers = append(peers, busRef{component: pi, bus: pj})
					}
				}
			}
			cache[ref] = peers
		}
	}
	b.cache = cache
	b.initialised = true
	glog.V(1).Infof("breadboard: connectivity cache rebuilt (%d components, %d cache entries)",
		len(b.components), len(cache))
	return nil
}

func checkAddressesDisjoint(c *Component) error {
	seen := map[string]bool{}
	for _, addr := range c.Addresses() {
		if seen[addr] {
			return fmt.Errorf("duplicate data-location address %q on component", addr)
		}
		seen[addr] = true
	}
	return nil
}

// busAt dereferences a busRef against the board's current component
// layout. Only valid between an Initialise() call and the next
// mutation of components/cables.
func (b *Board) busAt(ref busRef) *Bus {
	comp := b.components[ref.component]
	buses := comp.AllBuses()
	return buses[ref.bus]
}

// sbusMax returns the observable value of an SBus net: the maximum
// of its own value and every peer's value (spec §4.4).
func (b *Board) sbusMax(ref busRef) int64 {
	max := b.busAt(ref).Value
	for _, p := range b.cache[ref] {
		if v := b.busAt(p).Value; v > max {
			max = v
		}
	}
	return max
}

// Tick advances every component once, then runs the XBus delivery
// sweep (spec §5). dt is accepted for interface parity with the
// spec's tick(dt) signature; the simulation is otherwise
// step-counted, not wall-clock driven.
func (b *Board) Tick(dt float64) error {
	if !b.initialised {
		return fmt.Errorf("board not initialised")
	}
	for _, c := range b.components {
		if err := c.tickVariant(b); err != nil {
			return err
		}
	}
	b.deliverXBus()
	return nil
}

// deliverXBus implements the cross-component XBus handshake of spec
// §4.5: for every writer pin, the first eligible peer in
// connectivity-cache iteration order (placement order, then bus
// declaration order - see Board.Initialise) completes the
// handshake. This is the sole place outside a component's own tick
// that mutates another component's bus fields.
func (b *Board) deliverXBus() {
	for i, comp := range b.components {
		for j := range comp.XBuses {
			ref := busRef{component: i, bus: len(comp.SBuses) + j}
			writer := &comp.XBuses[j]
			if writer.XState != Writing && writer.XState != ReadingWriting {
				continue
			}
			for _, pref := range b.cache[ref] {
				peer := b.busAt(pref)
				if peer.XState == Reading || peer.XState == ReadingWriting {
					peer.Value = writer.Value
					peer.XState = ReadComplete
					writer.XState = WriteComplete
					break
				}
			}
		}
	}
}

// Reset returns every component to its default state (spec §3, §5).
func (b *Board) Reset() {
	for _, c := range b.components {
		c.resetVariant()
	}
}

// MCUDiagnostic is a read-only snapshot of one microcontroller's
// interpreter state, for headless inspection (SPEC_FULL.md §6
// supplemental - a descendant of the teacher's debug_monitor
// read-only views, minus the interactive breakpoint/backstep
// machinery that has no place in a headless core).
type MCUDiagnostic struct {
	Index       int
	Line        int
	SleepCycles int64
	Ops         int64
	Running     bool
	Errored     bool
}

// NetDiagnostic summarises one connectivity-cache entry: how many
// peer buses share a net with it, and which bus kind that net
// carries.
type NetDiagnostic struct {
	Component int
	Bus       int
	PeerCount int
	Kind      BusKind
}

// Diagnostics reports a read-only snapshot of every microcontroller
// and every bus's net size. Valid only after Initialise(); purely
// additive and makes no state change.
func (b *Board) Diagnostics() ([]MCUDiagnostic, []NetDiagnostic) {
	var mcus []MCUDiagnostic
	for i, c := range b.components {
		if c.Kind != KindMicroController {
			continue
		}
		m := c.MCU
		mcus = append(mcus, MCUDiagnostic{
			Index: i, Line: m.Line, SleepCycles: m.SleepCycles,
			Ops: m.Ops, Running: m.Running, Errored: m.Errored,
		})
	}

	var nets []NetDiagnostic
	for i, c := range b.components {
		for j, bus := range c.AllBuses() {
			ref := busRef{component: i, bus: j}
			nets = append(nets, NetDiagnostic{
				Component: i, Bus: j, PeerCount: len(b.cache[ref]), Kind: bus.Kind,
			})
		}
	}
	return mcus, nets
}
