package gameboy

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/thelolagemann/gbcore/internal/cpu"
	"github.com/thelolagemann/gbcore/internal/ppu/palette"
	"github.com/thelolagemann/gbcore/internal/types"
)

// serialROM transmits 0x42 over the serial port and then spins.
var serialROM = []byte{
	0x3E, 0x42, // LD A, 0x42
	0xEA, 0x01, 0xFF, // LD (0xFF01), A
	0x3E, 0x81, // LD A, 0x81
	0xEA, 0x02, 0xFF, // LD (0xFF02), A
	0x18, 0xFE, // JR -2
}

// counterROM increments B forever.
var counterROM = []byte{
	0x04,       // INC B
	0x18, 0xFD, // JR -3
}

func TestGameBoy_Serial(t *testing.T) {
	var out bytes.Buffer
	g, err := New(serialROM, WithSerialOutput(&out))
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Run(2); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out.Bytes(), []byte{0x42}) {
		t.Errorf("expected 0x42 to be transmitted exactly once, got %v", out.Bytes())
	}
}

func TestGameBoy_Frame(t *testing.T) {
	g, err := New(counterROM)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 144; i++ {
		if err := g.StepScanline(); err != nil {
			t.Fatal(err)
		}
	}
	if g.MMU.Read(types.LY) != 143 {
		t.Errorf("expected LY to be 143, got %d", g.MMU.Read(types.LY))
	}
	if g.MMU.Read(types.IF)&types.VBlankFlag != 0 {
		t.Errorf("expected no VBlank interrupt before line 144")
	}
	if err := g.StepScanline(); err != nil {
		t.Fatal(err)
	}
	if g.MMU.Read(types.IF)&types.VBlankFlag == 0 {
		t.Errorf("expected VBlank interrupt at line 144")
	}

	if _, err := g.Frame(); err != nil {
		t.Fatal(err)
	}
	if g.Frames() != 1 {
		t.Errorf("expected 1 frame, got %d", g.Frames())
	}
	if g.MMU.Read(types.DIV) == 0 {
		t.Errorf("expected the timer to have been ticked")
	}
}

func TestGameBoy_EntryPoint(t *testing.T) {
	g, err := New(counterROM, WithEntryPoint(0x0001))
	if err != nil {
		t.Fatal(err)
	}
	if g.CPU.PC != 0x0001 {
		t.Errorf("expected PC to be 0x0001, got 0x%04X", g.CPU.PC)
	}

	if _, err := New(make([]byte, 0x8001)); err == nil {
		t.Errorf("expected an oversized ROM to be rejected")
	}
}

func TestGameBoy_UnsupportedOpcode(t *testing.T) {
	g, err := New([]byte{0x00, 0xDD})
	if err != nil {
		t.Fatal(err)
	}
	err = g.StepScanline()
	var unsupported *cpu.UnsupportedOpcodeError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedOpcodeError, got %v", err)
	}
	if unsupported.PC != 0x0001 || unsupported.Opcode != 0xDD {
		t.Errorf("expected opcode 0xDD at 0x0001, got %v", unsupported)
	}
}

func TestGameBoy_State(t *testing.T) {
	g, err := New(counterROM)
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Run(3); err != nil {
		t.Fatal(err)
	}
	saved, err := g.SaveState()
	if err != nil {
		t.Fatal(err)
	}
	b, pc := g.CPU.B, g.CPU.PC

	if err := g.Run(1); err != nil {
		t.Fatal(err)
	}
	if g.CPU.B == b {
		t.Fatalf("expected B to have changed")
	}

	restored, err := New(counterROM, WithState(saved))
	if err != nil {
		t.Fatal(err)
	}
	if restored.CPU.B != b || restored.CPU.PC != pc {
		t.Errorf("expected B=%d PC=0x%04X, got B=%d PC=0x%04X", b, pc, restored.CPU.B, restored.CPU.PC)
	}

	if _, err := New(serialROM, WithState(saved)); !errors.Is(err, ErrStateMismatch) {
		t.Errorf("expected ErrStateMismatch, got %v", err)
	}
	if _, err := New(counterROM, WithState([]byte("garbage"))); err == nil {
		t.Errorf("expected an error for a corrupt state")
	}
}

func TestGameBoy_LoadStateTruncated(t *testing.T) {
	g, err := New(counterROM)
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Run(1); err != nil {
		t.Fatal(err)
	}
	saved, err := g.SaveState()
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Run(1); err != nil {
		t.Fatal(err)
	}
	g.MMU.Write(0xC000, 0x77)
	b, pc, line := g.CPU.B, g.CPU.PC, g.line

	// keep the header and checksum, drop the second half
	s, err := types.Decompress(bytes.NewReader(saved))
	if err != nil {
		t.Fatal(err)
	}
	raw := s.Bytes()
	half, err := types.StateFromBytes(raw[:len(raw)/2])
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := half.Compress(&buf); err != nil {
		t.Fatal(err)
	}

	if err := g.LoadState(buf.Bytes()); !errors.Is(err, types.ErrStateTruncated) {
		t.Fatalf("expected ErrStateTruncated, got %v", err)
	}
	if g.CPU.B != b || g.CPU.PC != pc || g.line != line {
		t.Errorf("expected CPU to be untouched, got B=%d PC=0x%04X", g.CPU.B, g.CPU.PC)
	}
	if g.MMU.Read(0xC000) != 0x77 {
		t.Errorf("expected memory to be untouched, got 0x%02X", g.MMU.Read(0xC000))
	}
}

func TestGameBoy_FrameTiming(t *testing.T) {
	g, err := New(counterROM)
	if err != nil {
		t.Fatal(err)
	}
	const frames = 3
	if err := g.Run(frames); err != nil {
		t.Fatal(err)
	}

	// the last instruction of a line may overrun it by up to 23 cycles
	if g.cycles < 0 || g.cycles >= 24 {
		t.Fatalf("expected a carry shorter than one instruction, got %d", g.cycles)
	}
	total := frames*CyclesPerFrame + g.cycles
	if want := uint8((total % 0x10000) >> 8); g.MMU.Read(types.DIV) != want {
		t.Errorf("expected %d cycles to have elapsed (DIV=%d), got DIV=%d", total, want, g.MMU.Read(types.DIV))
	}
}

func TestGameBoy_Stop(t *testing.T) {
	g, err := New(counterROM)
	if err != nil {
		t.Fatal(err)
	}
	done := make(chan error)
	go func() {
		done <- g.Run(0)
	}()
	time.AfterFunc(10*time.Millisecond, g.Stop)

	select {
	case err := <-done:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("expected Run to return after Stop")
	}
}

func TestGameBoy_Digest(t *testing.T) {
	g, err := New(counterROM)
	if err != nil {
		t.Fatal(err)
	}
	g.MMU.Set(types.LCDC, 0x91)
	g.MMU.Set(types.BGP, 0xE4)
	if _, err := g.Frame(); err != nil {
		t.Fatal(err)
	}
	blank := g.Digest()

	// tile 0 is solid colour 3
	for i := uint16(0); i < 16; i++ {
		g.MMU.Set(0x8000+i, 0xFF)
	}
	if _, err := g.Frame(); err != nil {
		t.Fatal(err)
	}
	if g.Digest() == blank {
		t.Errorf("expected digest to change with the frame")
	}

	p, _ := palette.Get(palette.Greyscale)
	img := g.Image(p)
	if c := img.RGBAAt(0, 0); c.R != 0 || c.G != 0 || c.B != 0 {
		t.Errorf("expected black pixel, got %v", c)
	}
}

// romTestWalker runs every test ROM found, expecting it to report over
// the serial port.
func romTestWalker(t *testing.T) fs.WalkDirFunc {
	return func(path string, info fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() && filepath.Ext(path) == ".gb" {
			t.Run(path, func(t *testing.T) {
				testRom(t, path)
			})
		}

		return nil
	}
}

func testRom(t *testing.T, romPath string) {
	b, err := os.ReadFile(romPath)
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	g, err := New(b, WithSerialOutput(&out))
	if err != nil {
		t.Skip(err)
	}

	// blargg's tests report Passed or Failed within a minute of emulated time
	for i := 0; i < 60*60; i++ {
		if err := g.Run(1); err != nil {
			t.Fatal(err)
		}
		if strings.Contains(out.String(), "Passed") {
			return
		}
		if strings.Contains(out.String(), "Failed") {
			break
		}
	}
	t.Fatalf("unexpected output:\n%s", out.String())
}

func TestROMs(t *testing.T) {
	if _, err := os.Stat("testdata/roms"); os.IsNotExist(err) {
		t.Skip("no test ROMs in testdata/roms")
	}
	if err := filepath.WalkDir("testdata/roms", romTestWalker(t)); err != nil {
		t.Fatal(err)
	}
}
