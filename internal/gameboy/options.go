package gameboy

import (
	"io"

	"github.com/thelolagemann/gbcore/pkg/log"
)

// Opt is a function that modifies a GameBoy
// instance.
type Opt func(gb *GameBoy)

func WithLogger(log log.Logger) Opt {
	return func(gb *GameBoy) {
		gb.Logger = log
	}
}

// WithSerialOutput sends every byte transmitted over the serial port
// to w.
func WithSerialOutput(w io.Writer) Opt {
	return func(gb *GameBoy) {
		gb.serial = w
	}
}

// WithEntryPoint overrides the address execution starts at, which is
// otherwise derived from the cartridge header.
func WithEntryPoint(pc uint16) Opt {
	return func(gb *GameBoy) {
		gb.entry = &pc
	}
}

// WithDMABusBlocking locks the CPU out of everything but HRAM while an
// OAM DMA transfer is in progress.
func WithDMABusBlocking(block bool) Opt {
	return func(gb *GameBoy) {
		gb.dmaBlocksBus = block
	}
}

// WithState restores a state created by SaveState once the GameBoy has
// been created.
func WithState(b []byte) Opt {
	return func(gb *GameBoy) {
		gb.state = b
	}
}
