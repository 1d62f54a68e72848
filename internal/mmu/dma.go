package mmu

import "github.com/thelolagemann/gbcore/internal/types"

// dmaLength is the number of bytes copied into the OAM by a transfer.
const dmaLength = 160

// dma holds the state of an OAM DMA transfer. A transfer copies
// one byte every 4 cycles, taking 640 cycles in total.
type dma struct {
	active    bool
	source    uint16
	copied    uint8
	remainder uint8
}

// startDMA starts a transfer from v * 0x100 to the OAM. Writing while
// a transfer is active restarts it.
func (m *MMU) startDMA(v uint8) uint8 {
	m.dma = dma{
		active: true,
		source: uint16(v) << 8,
	}
	m.Log.Debugf("DMA started from 0x%04X", m.dma.source)
	return v
}

// tickDMA copies a byte for every 4 cycles elapsed.
func (m *MMU) tickDMA(cycles uint8) {
	if !m.dma.active {
		return
	}

	elapsed := uint16(m.dma.remainder) + uint16(cycles)
	for elapsed >= 4 && m.dma.copied < dmaLength {
		src := m.dma.source + uint16(m.dma.copied)
		// sources above echo RAM read from work RAM instead
		if src >= types.EchoStart {
			src &^= 0x2000
		}
		m.data[types.OAMStart+uint16(m.dma.copied)] = m.data[src]
		m.dma.copied++
		elapsed -= 4
	}
	m.dma.remainder = uint8(elapsed)

	if m.dma.copied == dmaLength {
		m.dma = dma{}
	}
}

// DMAActive reports whether an OAM DMA transfer is in progress.
func (m *MMU) DMAActive() bool {
	return m.dma.active
}
