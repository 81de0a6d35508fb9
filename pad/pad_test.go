package pad

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPad(t *testing.T) ([]Key, *Dpad) {
	t.Helper()

	keys := []Key{
		NewKey("UP", "GameUpKey", 2, 2, 5),
		NewKey("DOWN", "GameDownKey", 2, 4, 6),
		NewKey("LEFT", "GameLeftKey", 1, 3, 7),
		NewKey("RIGHT", "GameRightKey", 3, 3, 8),
		NewKey("A", "GameAKey", 7, 3, 0),
	}
	d := &Dpad{
		NewDpadKey(Up, 0, Overhang{}, image.Pt(10, 8)),
		NewDpadKey(Down, 1, Overhang{}, image.Pt(10, 6)),
		NewDpadKey(Left, 2, Overhang{}, image.Pt(8, 7)),
		NewDpadKey(Right, 3, Overhang{}, image.Pt(12, 7)),
	}
	require.NoError(t, d.Validate(len(keys)))
	return keys, d
}

func TestKeyState(t *testing.T) {
	k := NewKey("B", "GameBKey", 0, 0, 1)
	assert.Equal(t, uint8(1), k.State().Sprite())
	assert.False(t, k.IsPressed())

	k.SetPressed(true)
	assert.True(t, k.IsPressed())
	assert.Equal(t, 1|16, k.State().Tile())

	k.SetLength(Contracted)
	assert.Equal(t, Contracted, k.State().Length())
	k.SetLength(Elongated)
	assert.Equal(t, Elongated, k.State().Length())
	assert.Equal(t, 1|16|64, k.State().Tile())

	k.ClearLength()
	assert.Equal(t, Neutral, k.State().Length())

	k.SetPressed(false)
	assert.Equal(t, 1, k.State().Tile())
	assert.Equal(t, uint8(1), k.State().Sprite())
}

func TestKeyMatches(t *testing.T) {
	k := NewKey("A", "GameAKey", 0, 0, 0)
	assert.False(t, k.Matches(0))

	k.Primary, k.Secondary = 10, 20
	assert.True(t, k.Matches(10))
	assert.True(t, k.Matches(20))
	assert.False(t, k.Matches(30))
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name    string
		pressed []Direction
		shift   image.Point
		length  Length
	}{
		{"none", nil, image.Pt(0, 0), Neutral},
		{"up", []Direction{Up}, image.Pt(0, -2), Elongated},
		{"down", []Direction{Down}, image.Pt(0, 2), Contracted},
		{"left", []Direction{Left}, image.Pt(-2, 0), Neutral},
		{"right", []Direction{Right}, image.Pt(2, 0), Neutral},
		{"up left", []Direction{Up, Left}, image.Pt(-2, -2), Elongated},
		{"down right", []Direction{Down, Right}, image.Pt(2, 2), Contracted},
		{"left right", []Direction{Left, Right}, image.Pt(0, 0), Neutral},
		{"up down", []Direction{Up, Down}, image.Pt(0, 0), Neutral},
		{"all", []Direction{Up, Down, Left, Right}, image.Pt(0, 0), Neutral},
		{"up left right", []Direction{Up, Left, Right}, image.Pt(0, -2), Elongated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keys, d := newPad(t)
			for _, p := range tt.pressed {
				keys[d[p].Key].SetPressed(true)
			}
			before := append([]Key(nil), keys...)

			r := d.Compute(keys)
			assert.Equal(t, tt.shift, r.Shift)
			assert.Equal(t, tt.length, r.Length)
			for _, p := range tt.pressed {
				assert.True(t, r.Pressed[p])
			}
			// Compute has no side effects
			assert.Equal(t, before, keys)
		})
	}
}

func TestUpdate(t *testing.T) {
	keys, d := newPad(t)

	keys[0].SetPressed(true)
	r := d.Update(keys)
	assert.Equal(t, image.Pt(0, -2), r.Shift)

	for i := range d {
		assert.Equal(t, image.Pt(0, -2), d[i].Arrow.Shift)
	}
	assert.True(t, d[Up].Arrow.Pressed)
	assert.Equal(t, int(Up)|ArrowPressedBit, d[Up].Arrow.Tile())
	assert.False(t, d[Down].Arrow.Pressed)
	assert.Equal(t, int(Down), d[Down].Arrow.Tile())

	// The held key keeps its pressed sprite, the others stretch
	assert.Equal(t, Neutral, keys[0].State().Length())
	for _, i := range []int{1, 2, 3} {
		assert.Equal(t, Elongated, keys[i].State().Length(), keys[i].Name)
	}
	// Keys outside the d-pad are untouched
	assert.Equal(t, 0, keys[4].State().Tile())

	// Switching to down flips the deformation and releases the arrow
	keys[0].SetPressed(false)
	keys[1].SetPressed(true)
	d.Update(keys)
	assert.False(t, d[Up].Arrow.Pressed)
	assert.Equal(t, Contracted, keys[0].State().Length())
	assert.Equal(t, Neutral, keys[1].State().Length())

	// Releasing everything returns to neutral
	keys[1].SetPressed(false)
	d.Update(keys)
	for i := range d {
		assert.Equal(t, image.Pt(0, 0), d[i].Arrow.Shift)
		assert.Equal(t, Neutral, keys[d[i].Key].State().Length())
	}
}

func TestUpdateInvariants(t *testing.T) {
	// Every combination of held keys, starting from every stale length
	for mask := 0; mask < 1<<NumDirections; mask++ {
		for _, stale := range []Length{Neutral, Contracted, Elongated} {
			keys, d := newPad(t)
			for i := range d {
				keys[d[i].Key].SetLength(stale)
				keys[d[i].Key].SetPressed(mask&(1<<i) != 0)
			}

			d.Update(keys)

			for i := range d {
				s := keys[d[i].Key].State()
				assert.False(t, s&ContractedBit != 0 && s&ElongatedBit != 0)
				if s.IsPressed() {
					assert.Equal(t, Neutral, s.Length())
				}
			}
		}
	}
}

func TestValidate(t *testing.T) {
	_, d := newPad(t)
	assert.Error(t, d.Validate(3))
	d[Left].Key = -1
	assert.Error(t, d.Validate(10))
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "left", Left.String())
	assert.Equal(t, "elongated", Elongated.String())
	assert.Equal(t, "neutral", Neutral.String())
}
