package raster

import (
	"image"

	"github.com/bodgit/inputdisplay/bmp"
	"github.com/pkg/errors"
)

// Sheet indexes a bitmap as a grid of equally sized tiles. Tiles are
// numbered row-major; any partial column on the right is never addressed.
type Sheet struct {
	Bitmap      *bmp.Bitmap
	TileWidth   int
	TileHeight  int
	TilesPerRow int
}

// NewSheet wraps b as a sheet of tw by th tiles.
func NewSheet(b *bmp.Bitmap, tw, th int) (*Sheet, error) {
	if b == nil {
		return nil, errors.New("raster: nil bitmap")
	}
	if tw <= 0 || th <= 0 || tw > b.Width || th > b.Height {
		return nil, errors.Errorf("raster: invalid tile size %dx%d for %dx%d bitmap", tw, th, b.Width, b.Height)
	}
	return &Sheet{
		Bitmap:      b,
		TileWidth:   tw,
		TileHeight:  th,
		TilesPerRow: b.Width / tw,
	}, nil
}

// NumTiles returns the number of whole tiles in the sheet.
func (s *Sheet) NumTiles() int {
	return s.TilesPerRow * (s.Bitmap.Height / s.TileHeight)
}

// TileOrigin returns the top-left corner of tile i within the bitmap.
func (s *Sheet) TileOrigin(i int) (image.Point, error) {
	if i < 0 || i >= s.NumTiles() {
		return image.Point{}, errors.Wrapf(ErrIndexOutOfRange, "tile %d of %d", i, s.NumTiles())
	}
	return image.Pt(i%s.TilesPerRow*s.TileWidth, i/s.TilesPerRow*s.TileHeight), nil
}

func (s *Sheet) tileRect(i int) (image.Rectangle, error) {
	p, err := s.TileOrigin(i)
	if err != nil {
		return image.Rectangle{}, err
	}
	return image.Rectangle{Min: p, Max: p.Add(image.Pt(s.TileWidth, s.TileHeight))}, nil
}
