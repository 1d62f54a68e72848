// Package mmu provides the memory management unit for the Game Boy.
// The MMU owns the whole 64kB address space as a flat array, and
// implements the side effects of the memory mapped hardware registers
// through write handlers reserved on the high page (0xFF00-0xFFFF).
package mmu

import (
	"errors"
	"fmt"
	"io"

	"github.com/thelolagemann/gbcore/internal/cartridge"
	"github.com/thelolagemann/gbcore/internal/types"
	"github.com/thelolagemann/gbcore/pkg/log"
)

// ErrInvalidIndex is returned when an OAM entry or tile map index is
// out of range.
var ErrInvalidIndex = errors.New("mmu: invalid index")

// WriteHandler is a function that handles writing to a memory address.
// It should return the new value to be written back to the memory address.
type WriteHandler func(byte) byte

// MMU is the memory management unit for the Game Boy. It handles all
// memory reads and writes to the Game Boy's 64kB of memory, and advances
// the timer and any in-flight OAM DMA transfer when ticked.
type MMU struct {
	data [0x10000]byte

	// 0xFF00 - 0xFFFF
	writeHandlers [0x100]WriteHandler

	// internal 16-bit divider, the top byte is exposed at types.DIV
	div uint16
	// set when TIMA wrapped on the previous tick
	overflow bool

	dma          dma
	dmaBlocksBus bool

	serial io.Writer

	Log log.Logger
}

// Opt is a function that configures the MMU.
type Opt func(m *MMU)

// WithLogger sets the logger used by the MMU.
func WithLogger(l log.Logger) Opt {
	return func(m *MMU) {
		m.Log = l
	}
}

// WithSerialOutput sets the sink for bytes transmitted over the serial
// port.
func WithSerialOutput(w io.Writer) Opt {
	return func(m *MMU) {
		m.serial = w
	}
}

// WithDMABusBlocking makes CPU side accesses outside of HRAM
// unavailable while an OAM DMA transfer is in progress.
func WithDMABusBlocking(block bool) Opt {
	return func(m *MMU) {
		m.dmaBlocksBus = block
	}
}

// NewMMU returns a new MMU with the cartridge mapped into the ROM
// region, and the rest of the address space zero filled.
func NewMMU(cart *cartridge.Cartridge, opts ...Opt) *MMU {
	m := &MMU{
		Log: log.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(m)
	}
	copy(m.data[:types.ROMEnd], cart.Bytes())

	m.reserve(types.DIV, m.writeDIV)
	m.reserve(types.LY, func(byte) byte {
		m.Log.Debugf("dropped write to LY")
		return m.data[types.LY]
	})
	m.reserve(types.DMA, m.startDMA)
	m.reserve(types.SC, m.writeSC)

	return m
}

// reserve reserves an address on the high page for the given handler.
func (m *MMU) reserve(addr uint16, handler WriteHandler) {
	if addr < 0xFF00 {
		panic(fmt.Sprintf("address %04X is not on the high page", addr))
	}
	if m.writeHandlers[addr-0xFF00] != nil {
		panic(fmt.Sprintf("address %04X has already been reserved", addr))
	}
	m.writeHandlers[addr-0xFF00] = handler
}

// blocked reports whether a CPU access to addr is locked out by an
// active DMA transfer. HRAM and the interrupt registers IF and IE stay
// reachable.
func (m *MMU) blocked(addr uint16) bool {
	return m.dmaBlocksBus && m.dma.active && addr < types.HRAMStart && addr != types.IF
}

// Read returns the value at the given address, as seen by the CPU.
func (m *MMU) Read(addr uint16) uint8 {
	if m.blocked(addr) {
		return 0xFF
	}
	return m.data[addr]
}

// Write writes the value to the given address, as the CPU would. Writes
// to ROM are dropped, writes to reserved addresses pass through their
// handler, and writes to work RAM and echo RAM are mirrored.
func (m *MMU) Write(addr uint16, value uint8) {
	if addr < types.ROMEnd {
		m.Log.Debugf("dropped write to ROM 0x%04X (0x%02X)", addr, value)
		return
	}
	if m.blocked(addr) {
		return
	}
	if addr >= 0xFF00 {
		if handler := m.writeHandlers[addr-0xFF00]; handler != nil {
			value = handler(value)
		}
	}

	m.data[addr] = value

	switch {
	case addr >= types.WRAMStart && addr < types.EchoEnd-types.EchoDistance:
		m.data[addr+types.EchoDistance] = value
	case addr >= types.EchoStart && addr < types.EchoEnd:
		m.data[addr-types.EchoDistance] = value
	}
}

// Read16 reads a little endian word.
func (m *MMU) Read16(addr uint16) uint16 {
	return uint16(m.Read(addr)) | uint16(m.Read(addr+1))<<8
}

// Write16 writes a little endian word.
func (m *MMU) Write16(addr uint16, value uint16) {
	m.Write(addr, uint8(value))
	m.Write(addr+1, uint8(value>>8))
}

// Get gets the value at the specified memory address, ignoring any
// DMA bus lock. Used by the PPU.
func (m *MMU) Get(addr uint16) uint8 {
	return m.data[addr]
}

// Set sets the value at the specified memory address. This function
// ignores the write handler and just sets the value.
func (m *MMU) Set(addr uint16, value uint8) {
	m.data[addr] = value
}

// SetBit sets the bit at the specified memory address.
func (m *MMU) SetBit(addr uint16, bit uint8) {
	m.data[addr] |= bit
}

// SetLY publishes the current scanline.
func (m *MMU) SetLY(ly uint8) {
	m.data[types.LY] = ly
}

// RequestInterrupt sets the given bit in the interrupt flag register.
func (m *MMU) RequestInterrupt(flag uint8) {
	m.data[types.IF] |= flag
}

// ReadOAM returns the 4 byte object attribute entry at index (0-39).
func (m *MMU) ReadOAM(index int) ([4]uint8, error) {
	var entry [4]uint8
	if index < 0 || index >= 40 {
		return entry, fmt.Errorf("%w: oam entry %d", ErrInvalidIndex, index)
	}
	copy(entry[:], m.data[types.OAMStart+uint16(index)*4:])
	return entry, nil
}

// ReadTileMap returns the tile index at position index (0-1023) of the
// tile map starting at base.
func (m *MMU) ReadTileMap(base uint16, index int) (uint8, error) {
	if index < 0 || index >= 1024 {
		return 0, fmt.Errorf("%w: tile map entry %d", ErrInvalidIndex, index)
	}
	return m.data[base+uint16(index)], nil
}

// writeSC handles the serial control register. Writing 0x81 transmits
// the byte held in SB.
func (m *MMU) writeSC(v uint8) uint8 {
	if v != 0x81 {
		return v
	}
	if m.serial != nil {
		if _, err := m.serial.Write([]byte{m.data[types.SB]}); err != nil {
			m.Log.Errorf("serial output: %v", err)
		}
	}
	return 0
}

// Tick advances the DMA controller and the timer by the given number of
// clock cycles.
func (m *MMU) Tick(cycles uint8) {
	m.tickDMA(cycles)
	m.tickTimer(cycles)
}

var _ types.Stater = (*MMU)(nil)

// Load loads the state of the MMU.
func (m *MMU) Load(s *types.State) {
	s.ReadData(m.data[:])
	m.div = s.Read16()
	m.overflow = s.ReadBool()
	m.dma.active = s.ReadBool()
	m.dma.source = s.Read16()
	m.dma.copied = s.Read8()
	m.dma.remainder = s.Read8()
}

// Save saves the state of the MMU.
func (m *MMU) Save(s *types.State) {
	s.WriteData(m.data[:])
	s.Write16(m.div)
	s.WriteBool(m.overflow)
	s.WriteBool(m.dma.active)
	s.Write16(m.dma.source)
	s.Write8(m.dma.copied)
	s.Write8(m.dma.remainder)
}
