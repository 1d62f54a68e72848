package cpu

import "fmt"

// cbOps are the rotate and shift operations of the first quarter of
// the CB prefixed instruction set, in opcode order.
var cbOps = [8]struct {
	name string
	fn   func(f *Flags, n uint8) uint8
}{
	{"RLC", rlc},
	{"RRC", rrc},
	{"RL", rl},
	{"RR", rr},
	{"SLA", sla},
	{"SRA", sra},
	{"SWAP", swap},
	{"SRL", srl},
}

// generateCBInstructions fills the CB prefixed instruction set. The
// lower 3 bits of the opcode select the operand, the upper 5 bits the
// operation.
func generateCBInstructions() {
	for r := uint8(0); r < 8; r++ {
		cycles, bitCycles := uint8(8), uint8(8)
		if r == hl {
			cycles, bitCycles = 16, 12
		}

		// 0x00 - 0x3F - rotates, shifts and swap
		for op := uint8(0); op < 8; op++ {
			DefineInstructionCB(op<<3|r, fmt.Sprintf("%s %s", cbOps[op].name, registerNames[r]), cycles, shiftRegister(op, r))
		}

		for b := uint8(0); b < 8; b++ {
			// 0x40 - 0x7F - BIT b, r
			DefineInstructionCB(0x40|b<<3|r, fmt.Sprintf("BIT %d, %s", b, registerNames[r]), bitCycles, testBit(b, r))
			// 0x80 - 0xBF - RES b, r
			DefineInstructionCB(0x80|b<<3|r, fmt.Sprintf("RES %d, %s", b, registerNames[r]), cycles, resetBit(b, r))
			// 0xC0 - 0xFF - SET b, r
			DefineInstructionCB(0xC0|b<<3|r, fmt.Sprintf("SET %d, %s", b, registerNames[r]), cycles, setBit(b, r))
		}
	}
}

func shiftRegister(op, r uint8) func(*CPU) {
	fn := cbOps[op].fn
	return func(c *CPU) {
		c.setRegister(r, fn(&c.F, c.register(r)))
	}
}

func testBit(b, r uint8) func(*CPU) {
	return func(c *CPU) {
		bit(&c.F, b, c.register(r))
	}
}

func resetBit(b, r uint8) func(*CPU) {
	return func(c *CPU) {
		c.setRegister(r, res(b, c.register(r)))
	}
}

func setBit(b, r uint8) func(*CPU) {
	return func(c *CPU) {
		c.setRegister(r, set(b, c.register(r)))
	}
}
