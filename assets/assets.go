// Package assets holds the sprite sheets drawn by the overlay.
package assets

import (
	_ "embed" // sprite sheets
)

// Tile sizes of the embedded sheets.
const (
	KeySize   = 34
	ArrowSize = 14
	CharSize  = 16
)

var (
	// Keys is the key sheet, sixteen tiles per row. Adding a pad.State flag
	// to a base tile selects the matching variant.
	//go:embed keys.bmp
	Keys []byte

	// Arrows holds the four arrows followed by their pressed variants.
	//go:embed arrows.bmp
	Arrows []byte

	// Font covers A to Z.
	//go:embed font.bmp
	Font []byte
)
