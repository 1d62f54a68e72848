// Package gameboy provides an emulation of a Nintendo Game Boy.
//
// The GameBoy drives the CPU, the MMU and the PPU one scanline at a
// time: the CPU executes until the scanline's cycle budget is used up,
// the MMU is ticked after every instruction, and the PPU draws the
// scanline once its cycles have elapsed.
package gameboy

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/cespare/xxhash"
	"github.com/davecgh/go-spew/spew"
	"github.com/tevino/abool"
	"github.com/thelolagemann/gbcore/internal/cartridge"
	"github.com/thelolagemann/gbcore/internal/cpu"
	"github.com/thelolagemann/gbcore/internal/mmu"
	"github.com/thelolagemann/gbcore/internal/ppu"
	"github.com/thelolagemann/gbcore/internal/ppu/lcd"
	"github.com/thelolagemann/gbcore/internal/ppu/palette"
	"github.com/thelolagemann/gbcore/internal/types"
	"github.com/thelolagemann/gbcore/pkg/log"
)

const (
	// ClockSpeed is the clock speed of the Game Boy.
	ClockSpeed = cpu.ClockSpeed // 4.194304 MHz
	// CyclesPerScanline is the number of clock cycles per scanline.
	CyclesPerScanline = 456
	// ScanlinesPerFrame is the number of scanlines per frame, including
	// the 10 lines of VBlank.
	ScanlinesPerFrame = 154
	// CyclesPerFrame is the number of clock cycles per frame.
	CyclesPerFrame = CyclesPerScanline * ScanlinesPerFrame // 70224
)

// ErrStateMismatch is returned when loading a state saved with a
// different cartridge.
var ErrStateMismatch = errors.New("gameboy: state belongs to another cartridge")

// Frame holds the shades of every pixel on the screen.
type Frame [ppu.ScreenHeight]ppu.Scanline

// GameBoy represents a Game Boy. It contains all the components of the Game Boy.
// It is the main entry point for the emulator.
type GameBoy struct {
	CPU  *cpu.CPU
	MMU  *mmu.MMU
	PPU  *ppu.PPU
	Cart *cartridge.Cartridge

	log.Logger

	frame  Frame
	line   uint8
	frames uint64
	// cycles run past the end of the previous scanline
	cycles int

	stopped *abool.AtomicBool

	// set by options before the components are created
	serial       io.Writer
	entry        *uint16
	dmaBlocksBus bool
	state        []byte
}

// New returns a new GameBoy running rom.
func New(rom []byte, opts ...Opt) (*GameBoy, error) {
	cart, err := cartridge.New(rom)
	if err != nil {
		return nil, err
	}

	g := &GameBoy{
		Cart:    cart,
		Logger:  log.NewNullLogger(),
		stopped: abool.New(),
	}
	for _, opt := range opts {
		opt(g)
	}

	g.MMU = mmu.NewMMU(cart,
		mmu.WithLogger(g.Logger),
		mmu.WithSerialOutput(g.serial),
		mmu.WithDMABusBlocking(g.dmaBlocksBus),
	)
	entry := cart.EntryPoint()
	if g.entry != nil {
		entry = *g.entry
	}
	g.CPU = cpu.NewCPU(g.MMU, entry, g.Logger)
	g.PPU = ppu.New(g.MMU)

	g.Infof("loaded %s", cart)
	if g.state != nil {
		if err := g.LoadState(g.state); err != nil {
			return nil, err
		}
		g.state = nil
	}

	return g, nil
}

// StepScanline executes one scanline worth of cycles, and draws the
// scanline if it is visible.
func (g *GameBoy) StepScanline() error {
	ly := g.line
	g.MMU.SetLY(ly)

	stat := g.MMU.Get(types.STAT)
	switch {
	case ly == ppu.ScreenHeight:
		g.MMU.RequestInterrupt(types.VBlankFlag)
		g.MMU.Set(types.STAT, lcd.WithMode(stat, lcd.VBlank))
	case ly < ppu.ScreenHeight:
		g.MMU.Set(types.STAT, lcd.WithMode(stat, lcd.OAM))
	}

	for g.cycles < CyclesPerScanline {
		n, err := g.CPU.Step()
		if err != nil {
			return g.fatal(err)
		}
		g.MMU.Tick(n)
		g.cycles += int(n)
	}
	g.cycles -= CyclesPerScanline

	if ly < ppu.ScreenHeight {
		line, err := g.PPU.DrawScanline()
		if err != nil {
			return g.fatal(err)
		}
		g.frame[ly] = line
		g.MMU.Set(types.STAT, lcd.WithMode(g.MMU.Get(types.STAT), lcd.HBlank))
	}

	g.line++
	if g.line == ScanlinesPerFrame {
		g.line = 0
		g.frames++
	}
	return nil
}

// Frame will step the emulation until the current frame has been
// completed, and return it.
func (g *GameBoy) Frame() (Frame, error) {
	for {
		if err := g.StepScanline(); err != nil {
			return g.frame, err
		}
		if g.line == 0 {
			return g.frame, nil
		}
	}
}

// Run runs the given number of frames, or until stopped if frames is
// 0. It returns early if Stop is called.
func (g *GameBoy) Run(frames uint64) error {
	g.stopped.UnSet()
	for n := uint64(0); frames == 0 || n < frames; n++ {
		if g.stopped.IsSet() {
			g.Infof("stopped after %d frames", g.frames)
			return nil
		}
		if _, err := g.Frame(); err != nil {
			return err
		}
	}
	return nil
}

// Stop stops a running emulation at the end of the current frame. It
// is safe to call from another goroutine.
func (g *GameBoy) Stop() {
	g.stopped.Set()
}

// Frames returns the number of frames completed.
func (g *GameBoy) Frames() uint64 {
	return g.frames
}

// Digest returns a hash of the last completed frame.
func (g *GameBoy) Digest() uint64 {
	d := xxhash.New()
	for _, line := range g.frame {
		d.Write(line[:])
	}
	return d.Sum64()
}

// Image renders the current frame with the given palette.
func (g *GameBoy) Image(p palette.Palette) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, ppu.ScreenWidth, ppu.ScreenHeight))
	for y, line := range g.frame {
		for x, shade := range line {
			img.SetRGBA(x, y, p.Colour(shade))
		}
	}
	return img
}

// fatal logs a diagnostic of the CPU state and wraps err.
func (g *GameBoy) fatal(err error) error {
	text, _ := g.CPU.Disassemble(g.CPU.PC)
	g.Errorf("%v\nat 0x%04X: %s\n%s", err, g.CPU.PC, text, spew.Sdump(g.CPU.Registers))
	return fmt.Errorf("gameboy: frame %d, line %d: %w", g.frames, g.line, err)
}

// SaveState serialises the state of the GameBoy, brotli compressed.
func (g *GameBoy) SaveState() ([]byte, error) {
	s := types.NewState()
	sum := g.Cart.Checksum()
	for i := 0; i < 4; i++ {
		s.Write16(uint16(sum >> (16 * i)))
	}
	g.CPU.Save(s)
	g.MMU.Save(s)
	s.Write8(g.line)
	s.Write16(uint16(g.cycles))

	var buf bytes.Buffer
	if err := s.Compress(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// LoadState restores a state created by SaveState. The state is
// decoded in full before anything is restored, so a GameBoy is left
// untouched when loading fails.
func (g *GameBoy) LoadState(b []byte) error {
	s, err := types.Decompress(bytes.NewReader(b))
	if err != nil {
		return err
	}
	scratchMMU := mmu.NewMMU(g.Cart)
	scratchCPU := cpu.NewCPU(scratchMMU, 0, nil)
	if _, _, err := g.readState(s, scratchCPU, scratchMMU); err != nil {
		return err
	}

	s, err = types.StateFromBytes(s.Bytes())
	if err != nil {
		return err
	}
	line, cycles, err := g.readState(s, g.CPU, g.MMU)
	if err != nil {
		return err
	}
	g.line, g.cycles = line, cycles
	g.Infof("loaded state at PC 0x%04X", g.CPU.PC)
	return nil
}

// readState verifies the cartridge checksum of s and loads the CPU and
// MMU from it, returning the scanline and carried cycles.
func (g *GameBoy) readState(s *types.State, c *cpu.CPU, m *mmu.MMU) (uint8, int, error) {
	var sum uint64
	for i := 0; i < 4; i++ {
		sum |= uint64(s.Read16()) << (16 * i)
	}
	if s.Err() == nil && sum != g.Cart.Checksum() {
		return 0, 0, ErrStateMismatch
	}
	c.Load(s)
	m.Load(s)
	line := s.Read8() % ScanlinesPerFrame
	cycles := int(s.Read16())
	if err := s.Err(); err != nil {
		return 0, 0, err
	}
	if cycles >= CyclesPerScanline {
		return 0, 0, fmt.Errorf("gameboy: invalid cycle carry %d", cycles)
	}
	return line, cycles, nil
}
