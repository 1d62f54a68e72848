// Package lcd decodes the LCD control and status registers.
package lcd

import "github.com/thelolagemann/gbcore/internal/types"

// Control is the decoded value of the LCD Control Register (0xFF40):
//
//	Bit 7 - LCD Enable                     (0=Off, 1=On)
//	Bit 6 - Window Tile Map Display Select (0=9800-9BFF, 1=9C00-9FFF)
//	Bit 5 - Window Display Enable          (0=Off, 1=On)
//	Bit 4 - BG & Window Tile Data Select   (0=8800-97FF, 1=8000-8FFF)
//	Bit 3 - BG Tile Map Display Select     (0=9800-9BFF, 1=9C00-9FFF)
//	Bit 2 - OBJ (Sprite) Size              (0=8x8, 1=8x16)
//	Bit 1 - OBJ (Sprite) Display Enable    (0=Off, 1=On)
//	Bit 0 - BG/Window Display/Priority     (0=Off, 1=On)
type Control struct {
	// Enabled is the LCD Enable bit. When reset, nothing is drawn.
	Enabled bool
	// WindowTileMapAddress is the start address of the window tile map.
	WindowTileMapAddress uint16
	// WindowEnabled is the Window Display Enable bit.
	WindowEnabled bool
	// UnsignedTileData is the BG & Window Tile Data Select bit. When set,
	// tile indices are unsigned offsets from 0x8000, otherwise they are
	// signed offsets from 0x9000.
	UnsignedTileData bool
	// BackgroundTileMapAddress is the start address of the background
	// tile map.
	BackgroundTileMapAddress uint16
	// SpriteSize is the height of sprites, 8 or 16.
	SpriteSize uint8
	// SpriteEnabled is the OBJ (Sprite) Display Enable bit.
	SpriteEnabled bool
	// BackgroundEnabled is the BG/Window Display/Priority bit. When
	// reset, the background is blank.
	BackgroundEnabled bool
}

// ParseControl decodes the value of the LCD Control Register.
func ParseControl(value uint8) Control {
	c := Control{
		Enabled:                  types.Test(value, 7),
		WindowTileMapAddress:     types.TileMap0,
		WindowEnabled:            types.Test(value, 5),
		UnsignedTileData:         types.Test(value, 4),
		BackgroundTileMapAddress: types.TileMap0,
		SpriteSize:               8,
		SpriteEnabled:            types.Test(value, 1),
		BackgroundEnabled:        types.Test(value, 0),
	}
	if types.Test(value, 6) {
		c.WindowTileMapAddress = types.TileMap1
	}
	if types.Test(value, 3) {
		c.BackgroundTileMapAddress = types.TileMap1
	}
	if types.Test(value, 2) {
		c.SpriteSize = 16
	}
	return c
}

// TileAddress returns the address of the tile with the given index in
// the background tile data.
func (c Control) TileAddress(index uint8) uint16 {
	if c.UnsignedTileData {
		return types.TileData + uint16(index)*16
	}
	return uint16(int32(0x9000) + int32(int8(index))*16)
}
