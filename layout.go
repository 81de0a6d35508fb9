package inputdisplay

import (
	"image"
	"math"

	"github.com/bodgit/inputdisplay/assets"
	"github.com/bodgit/inputdisplay/pad"
)

// Surface dimensions. The overlay is nine keys wide and eight keys high, the
// last row holding the status text.
const (
	Width  = assets.KeySize * 9
	Height = assets.KeySize * 8

	statusRow = 7

	// Tile in the key sheet drawn between the four d-pad keys
	dpadCentreTile = 32
)

// Indices into the key list.
const (
	KeyUp = iota
	KeyDown
	KeyLeft
	KeyRight
	KeySelect
	KeyStart
	KeyB
	KeyA
	KeyPower

	numKeys
)

// newKeys returns the keys in binding order.
func newKeys() []pad.Key {
	return []pad.Key{
		KeyUp:     pad.NewKey("UP", "GameUpKey", 2, 2, 5),
		KeyDown:   pad.NewKey("DOWN", "GameDownKey", 2, 4, 6),
		KeyLeft:   pad.NewKey("LEFT", "GameLeftKey", 1, 3, 7),
		KeyRight:  pad.NewKey("RIGHT", "GameRightKey", 3, 3, 8),
		KeySelect: pad.NewKey("SELECT", "GameSelectKey", 3.5, 6, 2),
		KeyStart:  pad.NewKey("START", "GameStartKey", 4.5, 6, 3),
		KeyB:      pad.NewKey("B", "GameBKey", 5.5, 4, 1),
		KeyA:      pad.NewKey("A", "GameAKey", 7, 3, 0),
		KeyPower:  pad.NewKey("POWER", "PlayHard resetKey", 7, 1-6.0/assets.KeySize, 4),
	}
}

// newDpad returns the d-pad table. Each overhang is the two pixel strip of
// a key that reaches over the centre tile or the opposite edge.
func newDpad() pad.Dpad {
	const k = assets.KeySize

	oh := func(sx, sy, dx, dy, w, h int) pad.Overhang {
		return pad.Overhang{
			Src: image.Rect(sx, sy, sx+w, sy+h),
			Dst: image.Pt(dx, dy),
		}
	}

	return pad.Dpad{
		pad.Up:    pad.NewDpadKey(pad.Up, KeyUp, oh(2, k-2, 2, k, k-4, 2), image.Pt(10, 8)),
		pad.Down:  pad.NewDpadKey(pad.Down, KeyDown, oh(2, 0, 2, -2, k-4, 2), image.Pt(10, 6)),
		pad.Left:  pad.NewDpadKey(pad.Left, KeyLeft, oh(k-2, 2, k, 2, 2, k-4), image.Pt(8, 7)),
		pad.Right: pad.NewDpadKey(pad.Right, KeyRight, oh(0, 2, -2, 2, 2, k-4), image.Pt(12, 7)),
	}
}

// coord converts a position in key units plus a pixel offset to pixels.
func coord(base float32, offset int) int {
	return int(math.Round(float64(base)*assets.KeySize)) + offset
}
