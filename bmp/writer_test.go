package bmp

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeBitmapRoundTrip(t *testing.T) {
	m := New(3, 2)
	copy(m.Pix, []uint8{0, 1, 2, 3, 4, 0})

	b := new(bytes.Buffer)
	require.NoError(t, EncodeBitmap(b, m))
	assert.Equal(t, pixelOffset+3*2*4, b.Len())

	out, err := DecodeBytes(b.Bytes())
	require.NoError(t, err)
	assert.Equal(t, m, out)
}

func TestEncodePaletted(t *testing.T) {
	p := color.Palette{color.Black, color.White}
	m := image.NewPaletted(image.Rect(5, 5, 7, 6), p)
	m.SetColorIndex(6, 5, 1)

	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, m))

	out, err := DecodeBytes(b.Bytes())
	require.NoError(t, err)
	assert.Equal(t, []uint8{0, 1}, out.Pix)
}

func TestEncodePalettedRanksByBrightness(t *testing.T) {
	p := color.Palette{color.White, color.Black, color.Gray{Y: 0x80}}
	m := image.NewPaletted(image.Rect(0, 0, 3, 1), p)
	m.SetColorIndex(0, 0, 0)
	m.SetColorIndex(1, 0, 1)
	m.SetColorIndex(2, 0, 2)

	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, m))

	out, err := DecodeBytes(b.Bytes())
	require.NoError(t, err)
	assert.Equal(t, []uint8{2, 0, 1}, out.Pix)
}

func TestEncodeReducesByBrightness(t *testing.T) {
	m := image.NewRGBA(image.Rect(0, 0, 4, 1))
	m.Set(0, 0, color.RGBA{0xf0, 0xf0, 0xf0, 0xff})
	m.Set(1, 0, color.RGBA{0x10, 0x10, 0x10, 0xff})
	m.Set(2, 0, color.RGBA{0x80, 0x80, 0x80, 0xff})
	m.Set(3, 0, color.RGBA{0x10, 0x10, 0x10, 0xff})

	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, m))

	out, err := DecodeBytes(b.Bytes())
	require.NoError(t, err)
	for _, i := range out.Pix {
		assert.True(t, i < NumColors)
	}
	// Identical pixels share an index and darker pixels get lower indices
	assert.Equal(t, out.Pix[1], out.Pix[3])
	assert.True(t, out.Pix[1] < out.Pix[0])
	assert.True(t, out.Pix[1] <= out.Pix[2])
	assert.True(t, out.Pix[2] <= out.Pix[0])
}

func TestEncodeEmpty(t *testing.T) {
	assert.Error(t, Encode(new(bytes.Buffer), image.NewRGBA(image.Rect(0, 0, 0, 0))))
	assert.Error(t, EncodeBitmap(new(bytes.Buffer), &Bitmap{Width: 2, Height: 2}))
}
