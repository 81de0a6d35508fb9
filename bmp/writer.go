package bmp

import (
	"encoding/binary"
	"image"
	"image/color"
	"image/draw"
	"io"
	"sort"

	"github.com/ericpauley/go-quantize/quantize"
	"github.com/pkg/errors"
)

const (
	fileHeaderSize = 14
	infoHeaderSize = 40
	pixelOffset    = fileHeaderSize + infoHeaderSize
)

// The info header is padded out to a BITMAPINFOHEADER so that other tools can
// open the result, the decoder only looks at the leading fields.
type infoTrailer struct {
	Compression     uint32
	ImageSize       uint32
	XPixelsPerMeter int32
	YPixelsPerMeter int32
	ColorsUsed      uint32
	ColorsImportant uint32
}

type encoder struct {
	w io.Writer
}

func (e *encoder) encode(m *Bitmap) error {
	imageSize := uint32(m.Width * m.Height * bytesPerPixel)

	if _, err := e.w.Write([]byte{'B', 'M'}); err != nil {
		return err
	}

	h := header{
		FileSize:     pixelOffset + imageSize,
		PixelOffset:  pixelOffset,
		HeaderSize:   infoHeaderSize,
		Width:        int32(m.Width),
		Height:       int32(m.Height),
		Planes:       1,
		BitsPerPixel: bitsPerPixel,
	}
	if err := binary.Write(e.w, binary.LittleEndian, &h); err != nil {
		return err
	}
	if err := binary.Write(e.w, binary.LittleEndian, &infoTrailer{ImageSize: imageSize}); err != nil {
		return err
	}

	row := make([]byte, m.Width*bytesPerPixel)
	for y := m.Height - 1; y >= 0; y-- {
		for x := 0; x < m.Width; x++ {
			l := Level(m.Pix[y*m.Width+x])
			copy(row[x*bytesPerPixel:], []byte{l, l, l, 0})
		}
		if _, err := e.w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

// rank orders the palette entries by luminance, returning the index each
// entry maps to so the darkest becomes 0.
func rank(p color.Palette) []uint8 {
	order := make([]int, len(p))
	for i := range order {
		order[i] = i
	}
	luma := func(c color.Color) uint8 {
		return color.GrayModel.Convert(c).(color.Gray).Y
	}
	sort.SliceStable(order, func(i, j int) bool {
		return luma(p[order[i]]) < luma(p[order[j]])
	})
	r := make([]uint8, len(p))
	for n, i := range order {
		r[i] = uint8(n)
	}
	return r
}

func ranked(pm *image.Paletted) *Bitmap {
	b := pm.Bounds()
	r := rank(pm.Palette)

	out := New(b.Dx(), b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out.Pix[(y-b.Min.Y)*out.Width+x-b.Min.X] = r[pm.ColorIndexAt(x, y)]
		}
	}
	return out
}

// Reduce maps m onto NumColors intensity levels. The image is first reduced
// to NumColors colors with a median cut quantizer, the resulting colors are
// then ordered by brightness so the darkest becomes index 0.
func Reduce(m image.Image) *Bitmap {
	b := m.Bounds()

	q := quantize.MedianCutQuantizer{}
	pm := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, NumColors), m))
	draw.Draw(pm, b, m, b.Min, draw.Src)

	return ranked(pm)
}

// Encode writes the Image m to w as a 32bpp bitmap. Paletted images whose
// palette is already no bigger than NumColors skip the quantizer, anything
// else is reduced with Reduce. Either way the darkest color becomes index 0.
func Encode(w io.Writer, m image.Image) error {
	b := m.Bounds()
	if b.Empty() {
		return errors.New("bmp: image is empty")
	}

	var out *Bitmap
	if pm, ok := m.(*image.Paletted); ok && len(pm.Palette) <= NumColors {
		out = ranked(pm)
	} else {
		out = Reduce(m)
	}

	return EncodeBitmap(w, out)
}

// EncodeBitmap writes an already quantized bitmap to w.
func EncodeBitmap(w io.Writer, m *Bitmap) error {
	if m.Width <= 0 || m.Height <= 0 || len(m.Pix) != m.Width*m.Height {
		return errors.New("bmp: invalid bitmap")
	}
	e := encoder{w: w}
	return e.encode(m)
}
