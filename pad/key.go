/*
Package pad models the controller keys shown on the overlay and the
directional pad animation.

Each key carries a State: the low bits select the base sprite and three flag
bits select the pressed sprite or one of the two deformed sprites used when
the d-pad is tilted. The flags are only changed through the Key methods so
contracted and elongated are never set together and a pressed key is never
deformed once Update has run.
*/
package pad

// State packs a sprite identifier with the pressed and length flags.
type State uint8

// State bits. The sprite sheets are laid out so that adding a flag to the
// sprite identifier gives the tile of the matching variant.
const (
	SpriteMask    State = 0x0f
	PressedBit    State = 16
	ContractedBit State = 32
	ElongatedBit  State = 64

	lengthMask = ContractedBit | ElongatedBit
)

// Length is the deformation applied to an idle d-pad key.
type Length int

// Possible lengths
const (
	Neutral Length = iota
	Contracted
	Elongated
)

func (l Length) String() string {
	switch l {
	case Contracted:
		return "contracted"
	case Elongated:
		return "elongated"
	default:
		return "neutral"
	}
}

func (l Length) bits() State {
	switch l {
	case Contracted:
		return ContractedBit
	case Elongated:
		return ElongatedBit
	default:
		return 0
	}
}

// Sprite returns the base sprite identifier.
func (s State) Sprite() uint8 {
	return uint8(s & SpriteMask)
}

// Tile returns the sheet tile for the current state.
func (s State) Tile() int {
	return int(s)
}

// IsPressed reports whether the pressed flag is set.
func (s State) IsPressed() bool {
	return s&PressedBit != 0
}

// Length returns the current deformation.
func (s State) Length() Length {
	switch s & lengthMask {
	case ContractedBit:
		return Contracted
	case ElongatedBit:
		return Elongated
	default:
		return Neutral
	}
}

// Key is a single controller button.
type Key struct {
	Primary   uint32
	Secondary uint32

	// Name is shown while binding, ConfigName prefixes the stored bindings
	Name       string
	ConfigName string

	// Position in key-sized units
	X, Y float32

	state State
}

// NewKey returns an idle key using the given base sprite.
func NewKey(name, configName string, x, y float32, sprite uint8) Key {
	return Key{
		Name:       name,
		ConfigName: configName,
		X:          x,
		Y:          y,
		state:      State(sprite) & SpriteMask,
	}
}

// State returns the packed state.
func (k *Key) State() State {
	return k.state
}

// Matches reports whether code is bound to the key. Zero is never bound.
func (k *Key) Matches(code uint32) bool {
	return code != 0 && (k.Primary == code || k.Secondary == code)
}

// IsPressed reports whether the key is held.
func (k *Key) IsPressed() bool {
	return k.state.IsPressed()
}

// SetPressed sets or clears the pressed flag.
func (k *Key) SetPressed(v bool) {
	if v {
		k.state |= PressedBit
	} else {
		k.state &^= PressedBit
	}
}

// ClearLength removes any deformation.
func (k *Key) ClearLength() {
	k.state &^= lengthMask
}

// SetLength replaces the deformation with l.
func (k *Key) SetLength(l Length) {
	k.state = k.state&^lengthMask | l.bits()
}
