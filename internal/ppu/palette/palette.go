// Package palette maps the 2-bit shades produced by the pixel
// pipeline to RGB colours for presentation.
package palette

import (
	"fmt"
	"image/color"
)

const (
	// Greyscale is the default greyscale palette.
	Greyscale = iota
	// Green is the green palette which attempts to emulate
	// the original colour palette as it would have appeared
	// on the original Game Boy.
	Green
	// Red is a red palette.
	Red
	// Yellow is a yellow palette.
	Yellow
)

// Palette represents a palette. A palette is an array of 4 RGB values,
// indexed by shade, from lightest to darkest.
type Palette struct {
	Colors [4][3]uint8
}

// Palettes is a list of all available palettes.
var Palettes = []Palette{
	// Greyscale
	{
		Colors: [4][3]uint8{
			{0xFF, 0xFF, 0xFF},
			{0xCC, 0xCC, 0xCC},
			{0x77, 0x77, 0x77},
			{0x00, 0x00, 0x00},
		},
	},
	// Green
	{
		Colors: [4][3]uint8{
			{0x9B, 0xBC, 0x0F},
			{0x8B, 0xAC, 0x0F},
			{0x30, 0x62, 0x30},
			{0x0F, 0x38, 0x0F},
		},
	},
	// Red
	{
		Colors: [4][3]uint8{
			{0xFF, 0x00, 0x00},
			{0xCC, 0x00, 0x00},
			{0x77, 0x00, 0x00},
			{0x00, 0x00, 0x00},
		},
	},
	// Yellow
	{
		Colors: [4][3]uint8{
			{0xFF, 0xFF, 0x00},
			{0xCC, 0xCC, 0x00},
			{0x77, 0x77, 0x00},
			{0x00, 0x00, 0x00},
		},
	},
}

// Get returns the palette with the given index.
func Get(index int) (Palette, error) {
	if index < 0 || index >= len(Palettes) {
		return Palette{}, fmt.Errorf("palette: no palette %d", index)
	}
	return Palettes[index], nil
}

// Colour returns the colour of the given shade (0-3).
func (p Palette) Colour(shade uint8) color.RGBA {
	rgb := p.Colors[shade&0x03]
	return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 0xFF}
}

// Map maps the 4 colour numbers through a palette register (BGP, OBP0,
// OBP1), 2 bits per entry, to shades.
func Map(register, colourNumber uint8) uint8 {
	return (register >> ((colourNumber & 0x03) * 2)) & 0x03
}
