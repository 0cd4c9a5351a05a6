// persist.go - the .bbd document format (spec §6)
//
// The document shape mirrors runtime_ipc.go's request/response
// structs: plain exported fields, one struct per record kind, no
// custom (Un)MarshalYAML methods. gopkg.in/yaml.v3 is adopted from
// the rest of the retrieval pack (several sibling repos carry it for
// exactly this kind of structured-document round-trip) since the
// teacher itself only ever serialises over its debug IPC socket with
// encoding/json.
//
// Load replays adds into a fresh board (spec §6): a malformed or
// rule-violating record is dropped and the load is reported
// non-perfect, but never aborts the rest of the document. Each drop is
// reported via glog.Warningf so an operator replaying an old .bbd file
// after a board/component change can see what was silently discarded.

package breadboard

import (
	"fmt"
	"os"

	"github.com/golang/glog"
	"gopkg.in/yaml.v3"
)

type busDoc struct {
	Address   string `yaml:"address"`
	X         int    `yaml:"x"`
	Y         int    `yaml:"y"`
	Direction string `yaml:"direction"`
}

type registerDoc struct {
	Address string `yaml:"address"`
	Value   int64  `yaml:"value"`
}

type componentDoc struct {
	Kind string `yaml:"kind"`
	X    int    `yaml:"x"`
	Y    int    `yaml:"y"`
	W    int    `yaml:"w"`
	H    int    `yaml:"h"`

	SBuses []busDoc `yaml:"sbuses,omitempty"`
	XBuses []busDoc `yaml:"xbuses,omitempty"`

	// Variant-specific scalars. Unused fields are left zero for any
	// given Kind.
	State         bool   `yaml:"state,omitempty"`
	Color         string `yaml:"color,omitempty"`
	Base          int    `yaml:"base,omitempty"`
	Min           int64  `yaml:"min,omitempty"`
	Max           int64  `yaml:"max,omitempty"`
	MaxLen        int    `yaml:"max_len,omitempty"`
	BitmapW       int    `yaml:"bitmap_w,omitempty"`
	BitmapH       int    `yaml:"bitmap_h,omitempty"`
	DefaultColor  uint32 `yaml:"default_color,omitempty"`
	InactiveColor uint32 `yaml:"inactive_color,omitempty"`
	Capacity      int    `yaml:"capacity,omitempty"`

	Registers []registerDoc `yaml:"registers,omitempty"`
	Source    string        `yaml:"source,omitempty"`
}

type cableDoc struct {
	Kind string `yaml:"kind"`
	Ax   int    `yaml:"ax"`
	Ay   int    `yaml:"ay"`
	Bx   int    `yaml:"bx"`
	By   int    `yaml:"by"`
}

type boardDoc struct {
	Width      int            `yaml:"width"`
	Height     int            `yaml:"height"`
	Components []componentDoc `yaml:"components"`
	Cables     []cableDoc     `yaml:"cables"`
}

func directionToString(d Direction) string { return d.String() }

func directionFromString(s string) (Direction, error) {
	switch s {
	case "Up":
		return Up, nil
	case "Down":
		return Down, nil
	case "Left":
		return Left, nil
	case "Right":
		return Right, nil
	default:
		return 0, fmt.Errorf("unknown direction %q", s)
	}
}

func encodeBus(b Bus) busDoc {
	return busDoc{Address: b.Address, X: b.Pos.X, Y: b.Pos.Y, Direction: directionToString(b.Dir)}
}

func decodeBus(kind BusKind, d busDoc) (Bus, error) {
	dir, err := directionFromString(d.Direction)
	if err != nil {
		return Bus{}, err
	}
	return Bus{Address: d.Address, Pos: Position{X: d.X, Y: d.Y}, Dir: dir, Kind: kind}, nil
}

func decodeBuses(kind BusKind, docs []busDoc) ([]Bus, error) {
	out := make([]Bus, 0, len(docs))
	for _, d := range docs {
		b, err := decodeBus(kind, d)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func cableKindToString(k CableKind) string { return k.String() }

func cableKindFromString(s string) (CableKind, error) {
	switch s {
	case "Solder":
		return Solder, nil
	case "Bridge":
		return Bridge, nil
	default:
		return 0, fmt.Errorf("unknown cable kind %q", s)
	}
}

// encodeComponent renders a placed component into its document form
// (spec §6).
func encodeComponent(c *Component) componentDoc {
	d := componentDoc{
		Kind: c.Kind.String(),
		X:    c.Pos.X, Y: c.Pos.Y, W: c.W, H: c.H,
	}
	for _, b := range c.SBuses {
		d.SBuses = append(d.SBuses, encodeBus(b))
	}
	for _, b := range c.XBuses {
		d.XBuses = append(d.XBuses, encodeBus(b))
	}
	switch c.Kind {
	case KindPressButton, KindToggleButton:
		d.State = c.Button.State
	case KindLED:
		d.Color = c.LED.Color
	case KindNumericDisplay:
		d.Base, d.Min, d.Max = c.Numeric.Base, c.Numeric.Min, c.Numeric.Max
	case KindTextDisplay:
		d.MaxLen = c.Text.MaxLen
	case KindBitmapDisplay:
		d.BitmapW, d.BitmapH = c.Bitmap.W, c.Bitmap.H
		d.DefaultColor, d.InactiveColor = c.Bitmap.DefaultColor, c.Bitmap.InactiveColor
	case KindMemory:
		d.Capacity = len(c.Memory.Cells)
	case KindMicroController:
		d.Source = c.MCU.Source
		for _, r := range c.MCU.Registers {
			d.Registers = append(d.Registers, registerDoc{Address: r.Address, Value: r.Value})
		}
	}
	return d
}

// decodeComponent builds a fresh component from its document form,
// using the same constructors the rest of the package uses.
func decodeComponent(d componentDoc) (*Component, error) {
	pos := Position{X: d.X, Y: d.Y}
	sbuses, err := decodeBuses(SBus, d.SBuses)
	if err != nil {
		return nil, err
	}
	xbuses, err := decodeBuses(XBus, d.XBuses)
	if err != nil {
		return nil, err
	}

	switch d.Kind {
	case "PressButton":
		c := NewPressButton(pos, d.W, d.H, sbuses)
		c.Button.State = d.State
		return c, nil
	case "ToggleButton":
		c := NewToggleButton(pos, d.W, d.H, sbuses)
		c.Button.State = d.State
		return c, nil
	case "LED":
		return NewLED(pos, d.W, d.H, d.Color, sbuses), nil
	case "NumericDisplay":
		return NewNumericDisplay(pos, d.W, d.H, d.Base, d.Min, d.Max, xbuses), nil
	case "TextDisplay":
		return NewTextDisplay(pos, d.W, d.H, d.MaxLen, xbuses), nil
	case "BitmapDisplay":
		return NewBitmapDisplay(pos, d.W, d.H, d.BitmapW, d.BitmapH, d.DefaultColor, d.InactiveColor, xbuses), nil
	case "Memory":
		return NewMemory(pos, d.W, d.H, d.Capacity, xbuses), nil
	case "MicroController":
		regs := make([]Register, 0, len(d.Registers))
		for _, r := range d.Registers {
			regs = append(regs, Register{Address: r.Address, Value: r.Value})
		}
		return NewMicroController(pos, d.W, d.H, d.Source, regs, sbuses, xbuses), nil
	default:
		return nil, fmt.Errorf("unknown component kind %q", d.Kind)
	}
}

func encodeCable(c Cable) cableDoc {
	return cableDoc{Kind: cableKindToString(c.Kind), Ax: c.A.X, Ay: c.A.Y, Bx: c.B.X, By: c.B.Y}
}

func decodeCable(d cableDoc) (Cable, error) {
	kind, err := cableKindFromString(d.Kind)
	if err != nil {
		return Cable{}, err
	}
	return Cable{A: Position{X: d.Ax, Y: d.Ay}, B: Position{X: d.Bx, Y: d.By}, Kind: kind}, nil
}

// Encode renders the board into its document form.
func (b *Board) Encode() *boardDoc {
	doc := &boardDoc{Width: b.W, Height: b.H}
	for _, c := range b.components {
		doc.Components = append(doc.Components, encodeComponent(c))
	}
	for _, c := range b.cables[Bridge] {
		doc.Cables = append(doc.Cables, encodeCable(c))
	}
	for _, c := range b.cables[Solder] {
		doc.Cables = append(doc.Cables, encodeCable(c))
	}
	return doc
}

// Save writes the board to path in the .bbd format.
func (b *Board) Save(path string) error {
	out, err := yaml.Marshal(b.Encode())
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0o644)
}

// Load reads a .bbd document and replays it into a fresh board (spec
// §6). perfect reports whether every record in the document placed
// cleanly; a false value means the board is usable but incomplete.
func Load(path string) (board *Board, perfect bool, err error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, false, err
	}
	var doc boardDoc
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, false, err
	}
	dst, perfect := replay(&doc)
	return dst, perfect, nil
}

// replay rebuilds a board from a document, dropping any record that
// fails to decode or violates a placement rule. perfect is false if
// any record was dropped (spec §6).
func replay(doc *boardDoc) (dst *Board, perfect bool) {
	dst = NewBoard(doc.Width, doc.Height)
	perfect = true

	for i, cd := range doc.Components {
		c, err := decodeComponent(cd)
		if err != nil {
			glog.Warningf("breadboard: load: dropping component %d (%q): %v", i, cd.Kind, err)
			perfect = false
			continue
		}
		if !dst.AddComponent(c) {
			glog.Warningf("breadboard: load: dropping component %d (%s at %d,%d): placement rule violated",
				i, cd.Kind, cd.X, cd.Y)
			perfect = false
		}
	}

	var bridges, solders []cableDoc
	for _, cd := range doc.Cables {
		if cd.Kind == "Bridge" {
			bridges = append(bridges, cd)
		} else {
			solders = append(solders, cd)
		}
	}
	for _, cd := range append(bridges, solders...) {
		cable, err := decodeCable(cd)
		if err != nil {
			glog.Warningf("breadboard: load: dropping cable (%d,%d)-(%d,%d): %v", cd.Ax, cd.Ay, cd.Bx, cd.By, err)
			perfect = false
			continue
		}
		if !dst.AddCable(cable) {
			glog.Warningf("breadboard: load: dropping %s cable (%d,%d)-(%d,%d): placement rule violated",
				cable.Kind, cd.Ax, cd.Ay, cd.Bx, cd.By)
			perfect = false
		}
	}

	return dst, perfect
}
