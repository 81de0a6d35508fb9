package pad

import (
	"image"

	"github.com/pkg/errors"
)

// Direction identifies one of the four d-pad keys.
type Direction int

// Directions, also the arrow sprite identifiers.
const (
	Up Direction = iota
	Down
	Left
	Right

	NumDirections = 4
)

func (d Direction) String() string {
	return [...]string{"up", "down", "left", "right"}[d]
}

// ArrowPressedBit selects the pressed arrow sprite.
const ArrowPressedBit = 4

// Shift applied to the whole d-pad for each held direction. Opposite
// directions cancel.
var shifts = [NumDirections]image.Point{
	Up:    {0, -2},
	Down:  {0, 2},
	Left:  {-2, 0},
	Right: {2, 0},
}

// Overhang is a fragment of a key sprite redrawn outside its tile so it
// overlaps the neighbouring key.
type Overhang struct {
	// Src is relative to the key's tile, Dst is relative to the key's position
	Src image.Rectangle
	Dst image.Point
}

// Arrow is the small arrow drawn on top of a d-pad key.
type Arrow struct {
	Sprite  int
	Offset  image.Point
	Shift   image.Point
	Pressed bool
}

// Tile returns the arrow sheet tile for the current state.
func (a Arrow) Tile() int {
	if a.Pressed {
		return a.Sprite | ArrowPressedBit
	}
	return a.Sprite
}

// DpadKey ties a d-pad direction to its key and drawing details.
type DpadKey struct {
	Key      int
	Shift    image.Point
	Overhang Overhang
	Arrow    Arrow
}

// NewDpadKey returns the d-pad entry for direction d driving keys[key].
func NewDpadKey(d Direction, key int, overhang Overhang, arrowOffset image.Point) DpadKey {
	return DpadKey{
		Key:      key,
		Shift:    shifts[d],
		Overhang: overhang,
		Arrow: Arrow{
			Sprite: int(d),
			Offset: arrowOffset,
		},
	}
}

// Dpad holds the four directions, indexed by Direction.
type Dpad [NumDirections]DpadKey

// Result is the outcome of one recompute.
type Result struct {
	Shift   image.Point
	Length  Length
	Pressed [NumDirections]bool
}

// Validate checks every entry refers to one of n keys.
func (d *Dpad) Validate(n int) error {
	for i, k := range d {
		if k.Key < 0 || k.Key >= n {
			return errors.Errorf("pad: %s refers to key %d of %d", Direction(i), k.Key, n)
		}
	}
	return nil
}

// Compute works out the combined shift and deformation for the given key
// states without changing anything.
func (d *Dpad) Compute(keys []Key) Result {
	var r Result
	for i, k := range d {
		if keys[k.Key].IsPressed() {
			r.Pressed[i] = true
			r.Shift = r.Shift.Add(k.Shift)
		}
	}

	switch {
	case r.Shift.Y < 0:
		r.Length = Elongated
	case r.Shift.Y > 0:
		r.Length = Contracted
	default:
		r.Length = Neutral
	}

	return r
}

// Update recomputes the d-pad and applies the result: every arrow moves by
// the combined shift and every idle d-pad key takes the combined length.
// Held keys are never deformed.
func (d *Dpad) Update(keys []Key) Result {
	r := d.Compute(keys)
	for i := range d {
		a := &d[i].Arrow
		a.Pressed = r.Pressed[i]
		a.Shift = r.Shift

		k := &keys[d[i].Key]
		k.ClearLength()
		if !k.IsPressed() {
			k.SetLength(r.Length)
		}
	}
	return r
}
