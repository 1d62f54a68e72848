package lcd

import "github.com/thelolagemann/gbcore/internal/types"

// Mode represents a mode of the LCD, held in bits 1-0 of the LCD
// Status Register (0xFF41).
type Mode = uint8

const (
	// HBlank is the horizontal blanking mode. The CPU can access both the display RAM and OAM.
	HBlank Mode = iota
	// VBlank is the vertical blanking mode. The CPU can access both the display RAM and OAM.
	VBlank
	// OAM is the OAM mode. The CPU can access OAM but not the display RAM.
	OAM
	// VRAM is the VRAM mode. The CPU can access the display RAM but not OAM.
	VRAM
)

// Coincidence is the LYC=LY flag of the status register.
const Coincidence = types.Bit2

// WithMode returns the status register value with the mode bits
// replaced.
func WithMode(stat uint8, mode Mode) uint8 {
	return stat&^0b11 | mode&0b11
}

// WithCoincidence returns the status register value with the
// coincidence flag set or reset.
func WithCoincidence(stat uint8, equal bool) uint8 {
	if equal {
		return stat | Coincidence
	}
	return stat &^ Coincidence
}
