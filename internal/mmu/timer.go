package mmu

import "github.com/thelolagemann/gbcore/internal/types"

// timerBits maps the clock select of TAC to the bit of the
// internal divider whose falling edge increments TIMA.
//
//	00 = bit 9
//	01 = bit 3
//	10 = bit 5
//	11 = bit 7
var timerBits = [4]uint16{1 << 9, 1 << 3, 1 << 5, 1 << 7}

// timerEnabled reports whether bit 2 of TAC is set.
func (m *MMU) timerEnabled() bool {
	return m.data[types.TAC]&types.Bit2 != 0
}

// selectedBit returns the divider bit selected by TAC.
func (m *MMU) selectedBit() uint16 {
	return timerBits[m.data[types.TAC]&0b11]
}

// incrementTIMA increments TIMA, flagging an overflow to be
// handled on the next tick.
func (m *MMU) incrementTIMA() {
	m.data[types.TIMA]++
	if m.data[types.TIMA] == 0 {
		m.overflow = true
	}
}

// tickTimer reloads TIMA if it overflowed on the previous tick, and
// then advances the divider one cycle at a time, incrementing TIMA on
// every falling edge of the selected bit.
func (m *MMU) tickTimer(cycles uint8) {
	if m.overflow {
		m.overflow = false
		m.data[types.TIMA] = m.data[types.TMA]
		m.RequestInterrupt(types.TimerFlag)
	}

	enabled := m.timerEnabled()
	bit := m.selectedBit()
	for i := uint8(0); i < cycles; i++ {
		old := m.div
		m.div++

		// detect a falling edge
		if enabled && old&bit != 0 && m.div&bit == 0 {
			m.incrementTIMA()
		}
	}

	m.data[types.DIV] = uint8(m.div >> 8)
}

// writeDIV resets the divider. If the selected bit was set, the reset
// is seen as a falling edge and TIMA is incremented.
func (m *MMU) writeDIV(uint8) uint8 {
	if m.timerEnabled() && m.div&m.selectedBit() != 0 {
		m.incrementTIMA()
	}
	m.Log.Debugf("DIV reset at 0x%04X", m.div)
	m.div = 0
	return 0
}
