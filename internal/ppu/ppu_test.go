package ppu

import (
	"testing"

	"github.com/thelolagemann/gbcore/internal/cartridge"
	"github.com/thelolagemann/gbcore/internal/mmu"
	"github.com/thelolagemann/gbcore/internal/types"
)

func newTestPPU(t *testing.T) (*PPU, *mmu.MMU) {
	t.Helper()
	cart, err := cartridge.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	m := mmu.NewMMU(cart)
	m.Set(types.BGP, 0xE4)
	return New(m), m
}

func draw(t *testing.T, p *PPU) Scanline {
	t.Helper()
	line, err := p.DrawScanline()
	if err != nil {
		t.Fatal(err)
	}
	return line
}

func TestPPU_LCDOff(t *testing.T) {
	p, m := newTestPPU(t)
	m.Set(types.LCDC, 0x11)
	m.Set(0x8000, 0xFF)
	m.Set(types.LYC, 0)
	line := draw(t, p)
	if line != (Scanline{}) {
		t.Errorf("expected blank scanline with the LCD off")
	}
	if m.Get(types.IF) != 0 {
		t.Errorf("expected no interrupt with the LCD off")
	}
}

func TestPPU_Background(t *testing.T) {
	p, m := newTestPPU(t)
	m.Set(types.LCDC, 0x91)

	// tile 1, row 0 is colour 1, row 1 is colour 2
	m.Set(0x8010, 0xFF)
	m.Set(0x8013, 0xFF)
	m.Set(types.TileMap0, 1)

	line := draw(t, p)
	for x := 0; x < 8; x++ {
		if line[x] != 1 {
			t.Errorf("x=%d: expected shade 1, got %d", x, line[x])
		}
	}
	if line[8] != 0 {
		t.Errorf("x=8: expected shade 0, got %d", line[8])
	}

	t.Run("scroll x", func(t *testing.T) {
		m.Set(types.SCX, 4)
		defer m.Set(types.SCX, 0)
		line := draw(t, p)
		if line[3] != 1 || line[4] != 0 {
			t.Errorf("expected tile to be scrolled by 4 pixels, got %v", line[:8])
		}
	})
	t.Run("scroll y", func(t *testing.T) {
		m.Set(types.SCY, 1)
		defer m.Set(types.SCY, 0)
		line := draw(t, p)
		if line[0] != 2 {
			t.Errorf("expected row 1 of the tile, got shade %d", line[0])
		}
	})
	t.Run("wrap", func(t *testing.T) {
		// the last visible column wraps to the tile map start
		m.Set(types.SCX, 0xF8)
		defer m.Set(types.SCX, 0)
		line := draw(t, p)
		if line[8] != 1 || line[7] != 0 {
			t.Errorf("expected map column 0 at x=8, got %v", line[:16])
		}
	})
	t.Run("palette", func(t *testing.T) {
		m.Set(types.BGP, 0x1B)
		defer m.Set(types.BGP, 0xE4)
		line := draw(t, p)
		if line[0] != 2 || line[8] != 3 {
			t.Errorf("expected BGP to invert the shades, got %d and %d", line[0], line[8])
		}
	})
	t.Run("background disabled", func(t *testing.T) {
		m.Set(types.LCDC, 0x90)
		defer m.Set(types.LCDC, 0x91)
		if draw(t, p) != (Scanline{}) {
			t.Errorf("expected blank background")
		}
	})
}

func TestPPU_TileData(t *testing.T) {
	p, m := newTestPPU(t)
	m.Set(types.LCDC, 0x89) // signed tile data, map 0x9C00

	// tile -1 is at 0x8FF0, most significant bit first
	m.Set(0x8FF0, 0x80)
	m.Set(0x8FF1, 0x01)
	m.Set(types.TileMap1, 0xFF)

	line := draw(t, p)
	if line[0] != 1 || line[7] != 2 {
		t.Errorf("expected shades 1 and 2 at the tile edges, got %v", line[:8])
	}
	for x := 1; x < 7; x++ {
		if line[x] != 0 {
			t.Errorf("x=%d: expected shade 0, got %d", x, line[x])
		}
	}
}

func TestPPU_Coincidence(t *testing.T) {
	p, m := newTestPPU(t)
	m.Set(types.LCDC, 0x91)
	m.Set(types.LYC, 5)
	m.SetLY(5)
	draw(t, p)
	if m.Get(types.STAT)&types.Bit2 == 0 {
		t.Errorf("expected coincidence flag to be set")
	}
	if m.Get(types.IF)&types.LCDFlag == 0 {
		t.Errorf("expected LCD STAT interrupt to be requested")
	}

	m.SetLY(6)
	draw(t, p)
	if m.Get(types.STAT)&types.Bit2 != 0 {
		t.Errorf("expected coincidence flag to be reset")
	}
}

func TestPPU_ScanOAM(t *testing.T) {
	p, m := newTestPPU(t)
	m.Set(types.LCDC, 0x80)

	// entry 0 has x=0 and is never selected
	m.Set(types.OAMStart, 16)
	m.Set(types.OAMStart+1, 0)
	// entries 1-11 all cover scanline 0
	for i := uint16(1); i <= 11; i++ {
		m.Set(types.OAMStart+i*4, 16)
		m.Set(types.OAMStart+i*4+1, uint8(i*8))
		m.Set(types.OAMStart+i*4+2, uint8(i))
	}

	draw(t, p)
	sprites := p.Sprites()
	if len(sprites) != MaxSpritesPerLine {
		t.Fatalf("expected %d sprites, got %d", MaxSpritesPerLine, len(sprites))
	}
	for i, s := range sprites {
		if s.X == 0 {
			t.Errorf("sprite %d: selected a sprite with x=0", i)
		}
		if s.TileID != uint8(i+1) {
			t.Errorf("sprite %d: expected OAM order, got tile %d", i, s.TileID)
		}
	}
}

func TestPPU_SpriteHeight(t *testing.T) {
	p, m := newTestPPU(t)
	m.Set(types.OAMStart, 8) // top at -8
	m.Set(types.OAMStart+1, 8)
	m.SetLY(4)

	m.Set(types.LCDC, 0x80)
	draw(t, p)
	if len(p.Sprites()) != 0 {
		t.Errorf("expected 8x8 sprite not to cover scanline 4")
	}

	m.Set(types.LCDC, 0x84)
	draw(t, p)
	if len(p.Sprites()) != 1 {
		t.Errorf("expected 8x16 sprite to cover scanline 4")
	}
}
