// Package cartridge validates cartridge images before they are mapped
// into the address space. Only cartridges that fit in the fixed
// 0x0000-0x7FFF ROM region are accepted, as bank switching is not
// emulated.
package cartridge

import (
	"errors"
	"fmt"

	"github.com/cespare/xxhash"
)

// MaxROMSize is the largest image that can be mapped without a
// memory bank controller.
const MaxROMSize = 0x8000

// EntryPoint is where execution begins for cartridges carrying a
// header, i.e. after the boot sequence has handed over.
const EntryPoint uint16 = 0x0100

// ErrROMTooLarge is returned for images larger than MaxROMSize.
var ErrROMTooLarge = errors.New("cartridge: rom exceeds 32768 bytes")

// Cartridge represents a basic game cartridge.
type Cartridge struct {
	rom    []byte
	header *Header
}

// New validates rom and parses its header, if it has one.
func New(rom []byte) (*Cartridge, error) {
	if len(rom) > MaxROMSize {
		return nil, fmt.Errorf("%w: got %d bytes", ErrROMTooLarge, len(rom))
	}
	c := &Cartridge{rom: rom}

	// parse the cartridge header (0x0100 - 0x014F)
	if len(rom) >= 0x150 {
		raw := rom[0x100:0x150]
		if headerChecksum(raw) == raw[0x4D] {
			h := parseHeader(raw)
			c.header = &h
		}
	}

	return c, nil
}

// Bytes returns the raw cartridge image.
func (c *Cartridge) Bytes() []byte {
	return c.rom
}

// Header returns the parsed header, or nil if the image has no valid
// header (e.g. a raw program without a boot handover).
func (c *Cartridge) Header() *Header {
	return c.header
}

// HasHeader reports whether the image carries a valid header.
func (c *Cartridge) HasHeader() bool {
	return c.header != nil
}

// Title returns the cartridge title, if known.
func (c *Cartridge) Title() string {
	if c.header == nil {
		return ""
	}
	return c.header.Title
}

// EntryPoint returns the address the program counter starts at.
func (c *Cartridge) EntryPoint() uint16 {
	if c.HasHeader() {
		return EntryPoint
	}
	return 0x0000
}

// Checksum identifies the cartridge image.
func (c *Cartridge) Checksum() uint64 {
	return xxhash.Sum64(c.rom)
}

func (c *Cartridge) String() string {
	if c.header == nil {
		return fmt.Sprintf("headerless image (%d bytes, %016x)", len(c.rom), c.Checksum())
	}
	return fmt.Sprintf("%s (%016x)", c.header.String(), c.Checksum())
}
