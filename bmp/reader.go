package bmp

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

var (
	// ErrWrongSignature is returned when the data does not start with "BM"
	ErrWrongSignature = errors.New("bmp: wrong signature")
	// ErrUnsupportedBitsPerPixel is returned for anything other than 32bpp
	ErrUnsupportedBitsPerPixel = errors.New("bmp: unsupported bits per pixel")
	// ErrIO is returned for short reads, failed seeks and impossible headers
	ErrIO = errors.New("bmp: i/o error")
)

type header struct {
	FileSize     uint32
	Reserved     uint32
	PixelOffset  uint32
	HeaderSize   uint32
	Width        int32
	Height       int32
	Planes       uint16
	BitsPerPixel uint16
}

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

// ioError marks err as an ErrIO while keeping the underlying cause in the
// message.
func ioError(err error, what string) error {
	return errors.Wrapf(ErrIO, "%s: %v", what, err)
}

type decoder struct {
	r      io.ReadSeeker
	header header
	image  *Bitmap
}

func (d *decoder) readHeader() error {
	var sig [2]byte
	if err := readFull(d.r, sig[:]); err != nil {
		return ioError(err, "reading signature")
	}
	if binary.BigEndian.Uint16(sig[:]) != signature {
		return ErrWrongSignature
	}

	if err := binary.Read(d.r, binary.LittleEndian, &d.header); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return ioError(err, "reading header")
	}

	if d.header.BitsPerPixel != bitsPerPixel {
		return errors.Wrapf(ErrUnsupportedBitsPerPixel, "%d", d.header.BitsPerPixel)
	}

	w, h := int64(d.header.Width), int64(d.header.Height)
	if w <= 0 || h <= 0 || w*h > maxPixels {
		return errors.Wrapf(ErrIO, "invalid dimensions %dx%d", w, h)
	}

	return nil
}

func (d *decoder) readPixels() error {
	width, height := int(d.header.Width), int(d.header.Height)

	// Check there is enough data before allocating anything
	size, err := d.r.Seek(0, io.SeekEnd)
	if err != nil {
		return ioError(err, "finding data size")
	}
	if int64(d.header.PixelOffset)+int64(width*height*bytesPerPixel) > size {
		return ioError(io.ErrUnexpectedEOF, "reading pixel data")
	}

	if _, err := d.r.Seek(int64(d.header.PixelOffset), io.SeekStart); err != nil {
		return ioError(err, "seeking to pixel data")
	}

	d.image = New(width, height)

	row := make([]byte, width*bytesPerPixel)
	for y := 0; y < height; y++ {
		if err := readFull(d.r, row); err != nil {
			return ioError(err, "reading pixel data")
		}
		// Rows are stored bottom-up
		dst := d.image.Pix[(height-y-1)*width:]
		for x := 0; x < width; x++ {
			dst[x] = quantizeBlue(row[x*bytesPerPixel])
		}
	}

	return nil
}

func (d *decoder) decode(r io.ReadSeeker, configOnly bool) error {
	d.r = r

	if err := d.readHeader(); err != nil {
		return err
	}

	if configOnly {
		return nil
	}

	return d.readPixels()
}

// Decode reads a 32bpp bitmap from r and returns the quantized index grid.
func Decode(r io.ReadSeeker) (*Bitmap, error) {
	var d decoder
	if err := d.decode(r, false); err != nil {
		return nil, err
	}
	return d.image, nil
}

// DecodeBytes is a convenience wrapper around Decode for embedded assets.
func DecodeBytes(b []byte) (*Bitmap, error) {
	return Decode(bytes.NewReader(b))
}

// DecodeConfig returns the dimensions of a bitmap without decoding the
// pixel data.
func DecodeConfig(r io.ReadSeeker) (width, height int, err error) {
	var d decoder
	if err := d.decode(r, true); err != nil {
		return 0, 0, err
	}
	return int(d.header.Width), int(d.header.Height), nil
}
