package cartridge

import (
	"fmt"
	"strings"
)

type Flag uint8

const (
	FlagOnlyDMG Flag = iota
	FlagSupportsCGB
	FlagOnlyCGB
)

var (
	ramMAP = map[uint8]uint{
		0x00: 0,
		0x02: 8 * 1024,
		0x03: 32 * 1024,
		0x04: 128 * 1024,
		0x05: 64 * 1024,
	}
)

type Type uint8

const (
	ROM        Type = 0x00
	MBC1       Type = 0x01
	MBC1RAM    Type = 0x02
	ROMRAM     Type = 0x08
	ROMRAMBATT Type = 0x09
)

func (t Type) String() string {
	switch t {
	case ROM:
		return "ROM ONLY"
	case MBC1:
		return "MBC1"
	case MBC1RAM:
		return "MBC1+RAM"
	case ROMRAM:
		return "ROM+RAM"
	case ROMRAMBATT:
		return "ROM+RAM+BATTERY"
	}
	return fmt.Sprintf("unknown (0x%02X)", uint8(t))
}

// Header represents the header of a cartridge, each cartridge has a header and is
// located at the address space 0x0100-0x014F. The header contains information about
// the cartridge itself, and the hardware it expects to run on.
type Header struct {
	// 0x0134-0x0143 - Title of the game
	Title string

	// 0x0143 - CartridgeGBMode of the game. In older cartridges this byte was part
	// of the title.
	CartridgeGBMode Flag

	CartridgeType  Type
	ROMSize        uint
	RAMSize        uint
	HeaderChecksum uint8
	GlobalChecksum uint16
}

// parseHeader parses the header of the given ROM and returns a Header. The
// header must be exactly 0x50 bytes long (0x0100-0x014F).
func parseHeader(header []byte) Header {
	h := Header{}

	switch header[0x43] {
	case 0x80:
		h.CartridgeGBMode = FlagSupportsCGB
	case 0xC0:
		h.CartridgeGBMode = FlagOnlyCGB
	default:
		h.CartridgeGBMode = FlagOnlyDMG
	}

	if h.CartridgeGBMode == FlagOnlyDMG {
		h.Title = string(header[0x34:0x44])
	} else {
		h.Title = string(header[0x34:0x43])
	}
	h.Title = strings.TrimRight(h.Title, "\x00 ")

	h.CartridgeType = Type(header[0x47])

	// parse the ROM size (calculated by 32kB x (1 << n))
	h.ROMSize = (32 * 1024) * (1 << (header[0x48] & 0x0F))
	h.RAMSize = ramMAP[header[0x49]]

	h.HeaderChecksum = header[0x4D]
	h.GlobalChecksum = uint16(header[0x4E])<<8 | uint16(header[0x4F])

	return h
}

// headerChecksum computes the checksum over 0x0134-0x014C the way the
// boot ROM does.
func headerChecksum(header []byte) uint8 {
	var x uint8
	for _, b := range header[0x34:0x4D] {
		x = x - b - 1
	}
	return x
}

func (h *Header) Hardware() string {
	switch h.CartridgeGBMode {
	case FlagSupportsCGB, FlagOnlyCGB:
		return "CGB"
	default:
		return "DMG"
	}
}

func (h *Header) String() string {
	return fmt.Sprintf("%s Mode: %s | Type: %s | ROM Size: %dkB | RAM Size: %dkB", h.Title, h.Hardware(), h.CartridgeType, h.ROMSize/1024, h.RAMSize/1024)
}
