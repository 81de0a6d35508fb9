/*
Package palette implements the small color palettes used to draw the sprites.

A palette is chosen from a catalog of named entries of four colors each. The
four colors are expanded into the six color runtime palette with Synthesize:

	0-2  sprite colors
	3    reserved, always black
	4    background, the last base color with the green channel nudged by
	     one so it can be used as a chroma key
	5    border, the last base color unchanged
*/
package palette

import "github.com/pkg/errors"

// Runtime palette slots beyond the three sprite colors.
const (
	Reserved   = 3
	Background = 4
	Border     = 5

	// Size is the length of a synthesized palette
	Size = 6
)

// ErrNoSuchPalette is returned when selecting outside the catalog.
var ErrNoSuchPalette = errors.New("palette: no such palette")

// Color is an RGB triple.
type Color [3]uint8

// R returns the red channel.
func (c Color) R() uint8 { return c[0] }

// G returns the green channel.
func (c Color) G() uint8 { return c[1] }

// B returns the blue channel.
func (c Color) B() uint8 { return c[2] }

// Palette is a runtime palette. It is replaced wholesale, never modified.
type Palette []Color

// Synthesize expands four base colors into a runtime palette.
func Synthesize(base [4]Color) Palette {
	p := append(Palette(nil), base[:]...)

	p = insert(p, Reserved, Color{0, 0, 0})
	c := p[Background]
	p = insert(p, Background, Color{c.R(), c.G() + 1, c.B()})

	return p
}

func insert(p Palette, i int, c Color) Palette {
	p = append(p, Color{})
	copy(p[i+1:], p[i:])
	p[i] = c
	return p
}

// Entry is a named set of base colors.
type Entry struct {
	Name   string
	Colors [4]Color
}

// Catalog is an ordered list of palettes.
type Catalog []Entry

// Select returns the synthesized palette at index i.
func (c Catalog) Select(i int) (Palette, error) {
	if i < 0 || i >= len(c) {
		return nil, errors.Wrapf(ErrNoSuchPalette, "%d", i)
	}
	return Synthesize(c[i].Colors), nil
}

// Names returns the palette names in order.
func (c Catalog) Names() []string {
	names := make([]string, len(c))
	for i, e := range c {
		names[i] = e.Name
	}
	return names
}

// DefaultIndex is the palette used when nothing has been configured.
const DefaultIndex = 3

var (
	black = Color{0, 0, 0}
	white = Color{248, 248, 248}
)

// Default is the built-in catalog.
var Default = Catalog{
	{"Brown", [4]Color{black, {228, 150, 133}, {228, 150, 133}, white}},
	{"Pastel Mix", [4]Color{black, {228, 144, 163}, {228, 144, 163}, {242, 226, 187}}},
	{"Blue", [4]Color{black, {225, 128, 150}, {113, 182, 208}, white}},
	{"Green", [4]Color{black, {96, 186, 46}, {96, 186, 46}, white}},
	{"Red", [4]Color{black, {131, 198, 86}, {225, 128, 150}, white}},
	{"Orange", [4]Color{black, {232, 186, 77}, {232, 186, 77}, white}},
	{"Dark Blue", [4]Color{black, {225, 128, 150}, {141, 156, 191}, white}},
	{"Dark Green", [4]Color{black, {225, 128, 150}, {131, 198, 86}, white}},
	{"Dark Brown", [4]Color{{78, 38, 28}, {228, 150, 133}, {189, 146, 144}, {241, 216, 206}}},
	{"Yellow", [4]Color{black, {113, 182, 208}, {232, 186, 77}, white}},
	{"Monochrome", [4]Color{black, {160, 160, 160}, {160, 160, 160}, white}},
	{"Inverted", [4]Color{white, {24, 128, 104}, {24, 128, 104}, black}},
}
