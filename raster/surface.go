/*
Package raster draws palette indexed sprites onto a raw pixel surface.

The surface holds 4 bytes per pixel, rows top to bottom. Colors are written
in reverse channel order (blue, green, red) into the first three bytes of each
pixel and the fourth byte is never touched.

Unlike a plain blit, every draw call checks the tile index, both rectangles
and every palette index it would use before writing anything. A failing call
returns an error matching ErrIndexOutOfRange and leaves the surface as it was.
*/
package raster

import (
	"image"

	"github.com/bodgit/inputdisplay/bmp"
	"github.com/bodgit/inputdisplay/palette"
	"github.com/pkg/errors"
)

// BytesPerPixel is the size of a surface pixel.
const BytesPerPixel = 4

// ErrIndexOutOfRange is returned for any draw that would read or write out
// of bounds.
var ErrIndexOutOfRange = errors.New("raster: index out of range")

// Surface is a mutable BGRX pixel buffer.
type Surface struct {
	Width  int
	Height int
	Pix    []byte
}

// NewSurface returns a zeroed surface.
func NewSurface(width, height int) *Surface {
	return &Surface{
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height*BytesPerPixel),
	}
}

// Bounds returns the surface rectangle.
func (s *Surface) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.Width, s.Height)
}

func (s *Surface) put(i int, c palette.Color) {
	s.Pix[i+0] = c[2]
	s.Pix[i+1] = c[1]
	s.Pix[i+2] = c[0]
}

// Clear fills every pixel with c.
func (s *Surface) Clear(c palette.Color) {
	for i := 0; i+BytesPerPixel <= len(s.Pix); i += BytesPerPixel {
		s.put(i, c)
	}
}

// At returns the color of the pixel at (x, y).
func (s *Surface) At(x, y int) (palette.Color, bool) {
	if !image.Pt(x, y).In(s.Bounds()) {
		return palette.Color{}, false
	}
	i := (y*s.Width + x) * BytesPerPixel
	return palette.Color{s.Pix[i+2], s.Pix[i+1], s.Pix[i+0]}, true
}

// DrawTile draws tile i of sheet at (x, y).
func (s *Surface) DrawTile(p palette.Palette, sheet *Sheet, x, y, i int) error {
	return s.DrawSubtile(p, sheet, x, y, i, 0, 0, sheet.TileWidth, sheet.TileHeight)
}

// DrawSubtile draws the w by h rectangle found at (sx, sy) relative to the
// origin of tile i, placing it at (x, y).
func (s *Surface) DrawSubtile(p palette.Palette, sheet *Sheet, x, y, i, sx, sy, w, h int) error {
	o, err := sheet.TileOrigin(i)
	if err != nil {
		return err
	}
	return s.DrawSubbitmap(p, sheet.Bitmap, x, y, o.X+sx, o.Y+sy, w, h)
}

// DrawSubbitmap copies the w by h rectangle at (sx, sy) in b to (x, y),
// translating each index through p.
func (s *Surface) DrawSubbitmap(p palette.Palette, b *bmp.Bitmap, x, y, sx, sy, w, h int) error {
	if w < 0 || h < 0 {
		return errors.Wrapf(ErrIndexOutOfRange, "negative size %dx%d", w, h)
	}

	src := image.Rect(sx, sy, sx+w, sy+h)
	if !src.In(image.Rect(0, 0, b.Width, b.Height)) {
		return errors.Wrapf(ErrIndexOutOfRange, "source %v outside %dx%d bitmap", src, b.Width, b.Height)
	}
	dst := image.Rect(x, y, x+w, y+h)
	if !dst.In(s.Bounds()) {
		return errors.Wrapf(ErrIndexOutOfRange, "destination %v outside %v", dst, s.Bounds())
	}

	for row := sy; row < sy+h; row++ {
		for _, i := range b.Pix[row*b.Width+sx : row*b.Width+sx+w] {
			if int(i) >= len(p) {
				return errors.Wrapf(ErrIndexOutOfRange, "palette index %d of %d", i, len(p))
			}
		}
	}

	for row := 0; row < h; row++ {
		si := (sy+row)*b.Width + sx
		di := ((y+row)*s.Width + x) * BytesPerPixel
		for col := 0; col < w; col++ {
			s.put(di, p[b.Pix[si]])
			si++
			di += BytesPerPixel
		}
	}

	return nil
}

// DrawText draws text with one font tile per rune, 'A' being tile 0. The
// cursor always advances by the tile width; spaces and runes the font does
// not cover leave a blank cell. Glyphs that fail to draw are skipped and the
// first such error is returned after the rest of the text is drawn.
func (s *Surface) DrawText(p palette.Palette, font *Sheet, text string, x, y int) error {
	var first error
	for _, r := range text {
		if i := int(r - 'A'); r != ' ' && i >= 0 && i < font.NumTiles() {
			if err := s.DrawTile(p, font, x, y, i); err != nil && first == nil {
				first = err
			}
		}
		x += font.TileWidth
	}
	return first
}

// RGBA converts the surface to RGBA order with an opaque alpha channel,
// suitable for image.RGBA.Pix. dst must be at least len(s.Pix) bytes.
func (s *Surface) RGBA(dst []byte) {
	for i := 0; i+BytesPerPixel <= len(s.Pix) && i+BytesPerPixel <= len(dst); i += BytesPerPixel {
		dst[i+0] = s.Pix[i+2]
		dst[i+1] = s.Pix[i+1]
		dst[i+2] = s.Pix[i+0]
		dst[i+3] = 0xff
	}
}
