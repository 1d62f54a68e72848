package cartridge

import (
	"errors"
	"testing"
)

// newROM creates a 32kB image with a valid header titled title.
func newROM(title string) []byte {
	rom := make([]byte, MaxROMSize)
	copy(rom[0x134:], title)
	rom[0x147] = byte(ROM)
	rom[0x14D] = headerChecksum(rom[0x100:0x150])
	return rom
}

func TestNew(t *testing.T) {
	t.Run("too large", func(t *testing.T) {
		_, err := New(make([]byte, MaxROMSize+1))
		if !errors.Is(err, ErrROMTooLarge) {
			t.Errorf("expected ErrROMTooLarge, got %v", err)
		}
	})
	t.Run("header", func(t *testing.T) {
		c, err := New(newROM("CPU_INSTRS"))
		if err != nil {
			t.Fatal(err)
		}
		if c.Header() == nil {
			t.Fatalf("expected header to be parsed")
		}
		if c.Title() != "CPU_INSTRS" {
			t.Errorf("expected title CPU_INSTRS, got %q", c.Title())
		}
		if c.EntryPoint() != 0x0100 {
			t.Errorf("expected entry point 0x0100, got 0x%04X", c.EntryPoint())
		}
		if c.Header().ROMSize != 32*1024 {
			t.Errorf("expected ROM size 32kB, got %d", c.Header().ROMSize)
		}
	})
	t.Run("headerless", func(t *testing.T) {
		c, err := New([]byte{0x3E, 0x42})
		if err != nil {
			t.Fatal(err)
		}
		if c.Header() != nil {
			t.Errorf("expected no header")
		}
		if c.EntryPoint() != 0x0000 {
			t.Errorf("expected entry point 0x0000, got 0x%04X", c.EntryPoint())
		}
	})
	t.Run("bad checksum", func(t *testing.T) {
		rom := newROM("BROKEN")
		rom[0x14D]++
		c, _ := New(rom)
		if c.Header() != nil {
			t.Errorf("expected header with bad checksum to be ignored")
		}
	})
}

func TestCartridge_Checksum(t *testing.T) {
	a, _ := New(newROM("A"))
	b, _ := New(newROM("B"))
	if a.Checksum() == b.Checksum() {
		t.Errorf("expected different images to have different checksums")
	}
}
