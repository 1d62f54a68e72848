// Package ppu implements the pixel pipeline of the Game Boy. It reads
// the tile data, tile maps and object attributes from memory and
// produces one scanline of shades per call.
package ppu

import (
	"github.com/thelolagemann/gbcore/internal/ppu/lcd"
	"github.com/thelolagemann/gbcore/internal/ppu/palette"
	"github.com/thelolagemann/gbcore/internal/types"
)

const (
	// ScreenWidth is the width of the screen in pixels.
	ScreenWidth = 160
	// ScreenHeight is the height of the screen in pixels.
	ScreenHeight = 144
)

// Scanline is a single row of shades (0-3).
type Scanline [ScreenWidth]uint8

// Memory is the memory the PPU draws from.
type Memory interface {
	Get(addr uint16) uint8
	Set(addr uint16, value uint8)
	RequestInterrupt(flag uint8)
	ReadOAM(index int) ([4]uint8, error)
	ReadTileMap(base uint16, index int) (uint8, error)
}

// PPU is the pixel processing unit.
type PPU struct {
	mem Memory

	// sprites selected for the current scanline
	sprites     [MaxSpritesPerLine]Sprite
	spriteCount int
}

// New returns a new PPU drawing from mem.
func New(mem Memory) *PPU {
	return &PPU{mem: mem}
}

// Sprites returns the sprites selected for the last drawn scanline, in
// OAM order.
func (p *PPU) Sprites() []Sprite {
	return p.sprites[:p.spriteCount]
}

// DrawScanline draws the scanline held in LY.
func (p *PPU) DrawScanline() (Scanline, error) {
	var line Scanline
	p.spriteCount = 0

	control := lcd.ParseControl(p.mem.Get(types.LCDC))
	if !control.Enabled {
		return line, nil
	}

	ly := p.mem.Get(types.LY)
	if err := p.scanOAM(ly, control.SpriteSize); err != nil {
		return line, err
	}
	if control.BackgroundEnabled {
		if err := p.drawBackground(&line, ly, control); err != nil {
			return line, err
		}
	}

	equal := ly == p.mem.Get(types.LYC)
	p.mem.Set(types.STAT, lcd.WithCoincidence(p.mem.Get(types.STAT), equal))
	if equal {
		p.mem.RequestInterrupt(types.LCDFlag)
	}

	return line, nil
}

// scanOAM selects up to 10 sprites covering scanline ly. Sprites with an
// x position of 0 are never selected.
func (p *PPU) scanOAM(ly, height uint8) error {
	for i := 0; i < 40 && p.spriteCount < MaxSpritesPerLine; i++ {
		entry, err := p.mem.ReadOAM(i)
		if err != nil {
			return err
		}
		s := newSprite(entry)
		if s.X == 0 || !s.covers(ly, height) {
			continue
		}
		p.sprites[p.spriteCount] = s
		p.spriteCount++
	}
	return nil
}

// drawBackground composes the background tiles spanning the visible
// width of scanline ly.
func (p *PPU) drawBackground(line *Scanline, ly uint8, control lcd.Control) error {
	scx, scy := p.mem.Get(types.SCX), p.mem.Get(types.SCY)
	bgp := p.mem.Get(types.BGP)

	y := ly + scy
	row := int(y/8) * 32
	tileY := y % 8

	// 21 tiles are needed when the scroll is not tile aligned
	for tile := 0; tile <= ScreenWidth/8; tile++ {
		x := uint8(tile*8) + scx
		index, err := p.mem.ReadTileMap(control.BackgroundTileMapAddress, row+int(x/8))
		if err != nil {
			return err
		}
		pixels := p.decodeTileRow(control.TileAddress(index), tileY)

		for i, colourNumber := range pixels {
			screenX := tile*8 + i - int(scx%8)
			if screenX < 0 || screenX >= ScreenWidth {
				continue
			}
			line[screenX] = palette.Map(bgp, colourNumber)
		}
	}
	return nil
}

// decodeTileRow decodes row y of the tile at addr into 8 colour
// numbers. Each row is 2 bytes, the first holding the low bit of every
// pixel and the second the high bit, most significant bit first.
func (p *PPU) decodeTileRow(addr uint16, y uint8) [8]uint8 {
	lo := p.mem.Get(addr + uint16(y)*2)
	hi := p.mem.Get(addr + uint16(y)*2 + 1)

	var pixels [8]uint8
	for x := 0; x < 8; x++ {
		pixels[x] = (lo>>(7-x))&1 | ((hi>>(7-x))&1)<<1
	}
	return pixels
}
