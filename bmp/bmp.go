/*
Package bmp implements a decoder and encoder for the sprite sheet bitmaps.

Only one variant of the Windows bitmap format is understood: a "BM" file with
an uncompressed 32 bits per pixel image stored bottom row first. The first
byte of each pixel (blue) is treated as an intensity and quantized into one of
NumColors levels which are later used as palette indices. The remaining three
bytes of each pixel are ignored.

The header is read as the 2 byte big-endian signature followed by these
little-endian fields, with no padding:

	file size        uint32
	reserved         uint32
	pixel offset     uint32
	header size      uint32
	width            int32
	height           int32
	planes           uint16
	bits per pixel   uint16
*/
package bmp

const (
	// NumColors is the number of intensity levels a pixel is quantized to
	NumColors = 5

	signature     = 0x424d
	bitsPerPixel  = 32
	bytesPerPixel = bitsPerPixel / 8
	levelStep     = 255 / NumColors

	// Enough for the largest sheet plus plenty of room
	maxPixels = 1 << 24
)

// Bitmap is a decoded image where each pixel is an index in the range
// [0, NumColors). Pixels are stored row-major, top row first.
type Bitmap struct {
	Width  int
	Height int
	Pix    []uint8
}

// New returns a blank bitmap of the given size.
func New(width, height int) *Bitmap {
	return &Bitmap{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height),
	}
}

// At returns the index at (x, y), the boolean is false if the coordinate is
// outside the bitmap.
func (b *Bitmap) At(x, y int) (uint8, bool) {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return 0, false
	}
	return b.Pix[y*b.Width+x], true
}

// Set stores index i at (x, y). Out of range coordinates are ignored.
func (b *Bitmap) Set(x, y int, i uint8) {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return
	}
	b.Pix[y*b.Width+x] = i
}

// Level returns the canonical blue intensity that decodes to index i.
func Level(i uint8) uint8 {
	if i >= NumColors {
		i = NumColors - 1
	}
	return i * levelStep
}

func quantizeBlue(b byte) uint8 {
	i := b / levelStep
	if i >= NumColors {
		i = NumColors - 1
	}
	return i
}
