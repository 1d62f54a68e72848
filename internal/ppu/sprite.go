package ppu

// MaxSpritesPerLine is the hardware limit of sprites selected per scanline.
const MaxSpritesPerLine = 10

// Sprite is an entry of the object attribute memory.
type Sprite struct {
	Y      uint8
	X      uint8
	TileID uint8
	spriteAttributes
}

// spriteAttributes represents the attributes of a sprite.
type spriteAttributes struct {
	// Bit 7 - OBJ-to-BG priority (0=OBJ Above BG, 1=OBJ Behind BG color 1-3)
	// (Used for both BG and Window. BG color 0 is always behind OBJ)
	priority bool
	// Bit 6 - Y flip          (0=Normal, 1=Vertically mirrored)
	// Bit 5 - X flip          (0=Normal, 1=Horizontally mirrored)
	// Bit 4 - Palette number  (0=OBP0, 1=OBP1)
	raw uint8
}

// newSprite decodes a 4 byte OAM entry.
func newSprite(entry [4]uint8) Sprite {
	return Sprite{
		Y:      entry[0],
		X:      entry[1],
		TileID: entry[2],
		spriteAttributes: spriteAttributes{
			priority: entry[3]&0x80 == 0,
			raw:      entry[3],
		},
	}
}

// Attributes returns the raw attribute byte.
func (s Sprite) Attributes() uint8 {
	return s.raw
}

// AboveBackground reports whether the sprite is drawn over background
// colours 1-3.
func (s Sprite) AboveBackground() bool {
	return s.priority
}

// covers reports whether the sprite overlaps scanline ly. The OAM y
// position is offset by 16, so that sprites may be partially off the
// top of the screen.
func (s Sprite) covers(ly, height uint8) bool {
	top := int(s.Y) - 16
	return int(ly) >= top && int(ly) < top+int(height)
}
