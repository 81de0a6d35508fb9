package inputdisplay

import (
	"github.com/bodgit/inputdisplay/assets"
	"github.com/bodgit/inputdisplay/pad"
	"github.com/bodgit/inputdisplay/palette"
)

func (d *Display) check(err error, what string) {
	if err != nil {
		d.logger.Printf("draw %s: %v", what, err)
	}
}

// Redraw recomputes the d-pad, composes a frame and presents it. A sprite
// that fails to draw is logged and skipped.
func (d *Display) Redraw() {
	d.dpad.Update(d.keys)

	s, p := d.surface, d.palette
	s.Clear(p[palette.Background])

	for i := range d.keys {
		k := &d.keys[i]
		d.check(s.DrawTile(p, d.keySheet, coord(k.X, 0), coord(k.Y, 0), k.State().Tile()), k.Name)
	}

	up := &d.keys[d.dpad[pad.Up].Key]
	d.check(s.DrawTile(p, d.keySheet, coord(up.X, 0), coord(up.Y+1, 0), dpadCentreTile), "d-pad centre")

	for i := range d.dpad {
		dk := &d.dpad[i]
		k := &d.keys[dk.Key]

		at := dk.Arrow.Offset.Add(dk.Arrow.Shift)
		d.check(s.DrawTile(p, d.arrowSheet, coord(k.X, at.X), coord(k.Y, at.Y), dk.Arrow.Tile()), pad.Direction(i).String()+" arrow")

		oh := dk.Overhang
		d.check(s.DrawSubtile(p, d.keySheet, coord(k.X, oh.Dst.X), coord(k.Y, oh.Dst.Y), k.State().Tile(),
			oh.Src.Min.X, oh.Src.Min.Y, oh.Src.Dx(), oh.Src.Dy()), pad.Direction(i).String()+" overhang")
	}

	if d.text != "" {
		x := (Width - len(d.text)*assets.CharSize) / 2
		y := coord(statusRow, (assets.KeySize-assets.CharSize)/2)
		d.check(s.DrawText(p, d.font, d.text, x, y), "text")
	}

	if err := d.platform.Present(s); err != nil {
		d.logger.Printf("present: %v", err)
	}
}
