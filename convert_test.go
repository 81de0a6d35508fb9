package inputdisplay

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/bodgit/inputdisplay/bmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, file string, w, h int) {
	t.Helper()

	m := image.NewGray(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		m.SetGray(x, 0, color.Gray{Y: uint8(x * 255 / w)})
	}

	f, err := os.Create(file)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, m))
	require.NoError(t, f.Close())
}

func decodeFile(t *testing.T, file string) *bmp.Bitmap {
	t.Helper()

	f, err := os.Open(file)
	require.NoError(t, err)
	defer f.Close()

	b, err := bmp.Decode(f)
	require.NoError(t, err)
	return b
}

func TestConvertFile(t *testing.T) {
	dir := t.TempDir()
	src, dst := filepath.Join(dir, "keys.png"), filepath.Join(dir, "keys.bmp")
	writePNG(t, src, 8, 2)

	require.NoError(t, NewConverter(nil).ConvertFile(src, dst))

	b := decodeFile(t, dst)
	assert.Equal(t, 8, b.Width)
	assert.Equal(t, 2, b.Height)
}

func TestConvertFileErrors(t *testing.T) {
	dir := t.TempDir()
	c := NewConverter(nil)

	assert.Error(t, c.ConvertFile(filepath.Join(dir, "missing.png"), filepath.Join(dir, "out.bmp")))

	junk := filepath.Join(dir, "junk.png")
	require.NoError(t, ioutil.WriteFile(junk, []byte("not an image"), 0o644))
	assert.Error(t, c.ConvertFile(junk, filepath.Join(dir, "out.bmp")))
}

func TestConvertDirectory(t *testing.T) {
	src, dst := t.TempDir(), filepath.Join(t.TempDir(), "out")

	writePNG(t, filepath.Join(src, "keys.png"), 4, 4)
	writePNG(t, filepath.Join(src, "font.PNG"), 6, 2)
	writePNG(t, filepath.Join(src, ".hidden.png"), 1, 1)
	require.NoError(t, ioutil.WriteFile(filepath.Join(src, "notes.txt"), []byte("ignored"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(src, "nested"), 0o755))
	writePNG(t, filepath.Join(src, "nested", "arrows.png"), 2, 2)

	c := NewConverter(nil)
	c.Workers = 2
	require.NoError(t, c.ConvertDirectory(context.Background(), src, dst))

	files, err := ioutil.ReadDir(dst)
	require.NoError(t, err)

	var names []string
	for _, f := range files {
		names = append(names, f.Name())
	}
	assert.Equal(t, []string{"font.bmp", "keys.bmp"}, names)

	b := decodeFile(t, filepath.Join(dst, "font.bmp"))
	assert.Equal(t, 6, b.Width)
	assert.Equal(t, 2, b.Height)
}

func TestConvertDirectoryError(t *testing.T) {
	src, dst := t.TempDir(), t.TempDir()

	require.NoError(t, ioutil.WriteFile(filepath.Join(src, "bad.png"), []byte("not an image"), 0o644))

	assert.Error(t, NewConverter(nil).ConvertDirectory(context.Background(), src, dst))
}
