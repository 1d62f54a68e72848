package cpu

import "fmt"

var (
	registerNames  = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}
	pairNames      = [4]string{"BC", "DE", "HL", "SP"}
	stackNames     = [4]string{"BC", "DE", "HL", "AF"}
	conditionNames = [4]string{"NZ", "Z", "NC", "C"}
)

// hl is the operand index of (HL).
const hl = 6

// illegalOpcodes have no defined behaviour and are left out of the
// instruction set.
var illegalOpcodes = []uint8{
	0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD,
}

func init() {
	generateLoadInstructions()
	generateStackInstructions()
	generateALUInstructions()
	generate16BitInstructions()
	generateJumpInstructions()
	generateControlInstructions()
	generateCBInstructions()
}

// aluOps are the 8 accumulator operations, in opcode order.
var aluOps = [8]struct {
	name string
	fn   func(c *CPU, v uint8)
}{
	{"ADD A,", func(c *CPU, v uint8) { c.A = add(&c.F, c.A, v) }},
	{"ADC A,", func(c *CPU, v uint8) { c.A = adc(&c.F, c.A, v) }},
	{"SUB", func(c *CPU, v uint8) { c.A = sub(&c.F, c.A, v) }},
	{"SBC A,", func(c *CPU, v uint8) { c.A = sbc(&c.F, c.A, v) }},
	{"AND", func(c *CPU, v uint8) { c.A = and(&c.F, c.A, v) }},
	{"XOR", func(c *CPU, v uint8) { c.A = xor(&c.F, c.A, v) }},
	{"OR", func(c *CPU, v uint8) { c.A = or(&c.F, c.A, v) }},
	{"CP", func(c *CPU, v uint8) { cp(&c.F, c.A, v) }},
}

func generateLoadInstructions() {
	// 0x40 - 0x7F - LD r, r' (0x76 is HALT)
	for dst := uint8(0); dst < 8; dst++ {
		for src := uint8(0); src < 8; src++ {
			if dst == hl && src == hl {
				continue
			}
			cycles := uint8(4)
			if dst == hl || src == hl {
				cycles = 8
			}
			DefineInstruction(0x40|dst<<3|src, fmt.Sprintf("LD %s, %s", registerNames[dst], registerNames[src]), cycles, loadRegister(dst, src))
		}
	}

	// 0x06, 0x0E ... 0x3E - LD r, d8
	for r := uint8(0); r < 8; r++ {
		cycles := uint8(8)
		if r == hl {
			cycles = 12
		}
		DefineInstruction(0x06|r<<3, fmt.Sprintf("LD %s, d8", registerNames[r]), cycles, loadImmediate(r))
	}

	// 0x01, 0x11, 0x21, 0x31 - LD rr, d16
	for p := uint8(0); p < 4; p++ {
		DefineInstruction(0x01|p<<4, fmt.Sprintf("LD %s, d16", pairNames[p]), 12, loadPairImmediate(p))
	}

	DefineInstruction(0x02, "LD (BC), A", 8, func(c *CPU) { c.mem.Write(c.BC(), c.A) })
	DefineInstruction(0x12, "LD (DE), A", 8, func(c *CPU) { c.mem.Write(c.DE(), c.A) })
	DefineInstruction(0x22, "LD (HL+), A", 8, func(c *CPU) { c.mem.Write(c.HLIncrement(), c.A) })
	DefineInstruction(0x32, "LD (HL-), A", 8, func(c *CPU) { c.mem.Write(c.HLDecrement(), c.A) })
	DefineInstruction(0x0A, "LD A, (BC)", 8, func(c *CPU) { c.A = c.mem.Read(c.BC()) })
	DefineInstruction(0x1A, "LD A, (DE)", 8, func(c *CPU) { c.A = c.mem.Read(c.DE()) })
	DefineInstruction(0x2A, "LD A, (HL+)", 8, func(c *CPU) { c.A = c.mem.Read(c.HLIncrement()) })
	DefineInstruction(0x3A, "LD A, (HL-)", 8, func(c *CPU) { c.A = c.mem.Read(c.HLDecrement()) })

	DefineInstruction(0x08, "LD (a16), SP", 20, func(c *CPU) {
		addr := c.fetch16()
		c.mem.Write(addr, uint8(c.SP))
		c.mem.Write(addr+1, uint8(c.SP>>8))
	})
	DefineInstruction(0xE0, "LDH (a8), A", 12, func(c *CPU) { c.mem.Write(0xFF00|uint16(c.fetch()), c.A) })
	DefineInstruction(0xF0, "LDH A, (a8)", 12, func(c *CPU) { c.A = c.mem.Read(0xFF00 | uint16(c.fetch())) })
	DefineInstruction(0xE2, "LD (C), A", 8, func(c *CPU) { c.mem.Write(0xFF00|uint16(c.C), c.A) })
	DefineInstruction(0xF2, "LD A, (C)", 8, func(c *CPU) { c.A = c.mem.Read(0xFF00 | uint16(c.C)) })
	DefineInstruction(0xEA, "LD (a16), A", 16, func(c *CPU) { c.mem.Write(c.fetch16(), c.A) })
	DefineInstruction(0xFA, "LD A, (a16)", 16, func(c *CPU) { c.A = c.mem.Read(c.fetch16()) })
	DefineInstruction(0xF8, "LD HL, SP+r8", 12, func(c *CPU) {
		c.SetHL(addSPSigned(&c.F, c.SP, int8(c.fetch())))
	})
	DefineInstruction(0xF9, "LD SP, HL", 8, func(c *CPU) { c.SP = c.HL() })
}

func loadRegister(dst, src uint8) func(*CPU) {
	return func(c *CPU) {
		c.setRegister(dst, c.register(src))
	}
}

func loadImmediate(r uint8) func(*CPU) {
	return func(c *CPU) {
		c.setRegister(r, c.fetch())
	}
}

func loadPairImmediate(p uint8) func(*CPU) {
	return func(c *CPU) {
		c.setRegisterPair(p, c.fetch16())
	}
}

func generateStackInstructions() {
	for p := uint8(0); p < 4; p++ {
		DefineInstruction(0xC5|p<<4, "PUSH "+stackNames[p], 16, push(p))
		DefineInstruction(0xC1|p<<4, "POP "+stackNames[p], 12, pop(p))
	}
}

func push(p uint8) func(*CPU) {
	if p == 3 {
		return func(c *CPU) { c.push(c.AF()) }
	}
	return func(c *CPU) { c.push(c.registerPair(p)) }
}

func pop(p uint8) func(*CPU) {
	if p == 3 {
		return func(c *CPU) { c.SetAF(c.pop()) }
	}
	return func(c *CPU) { c.setRegisterPair(p, c.pop()) }
}

func generateALUInstructions() {
	for op := uint8(0); op < 8; op++ {
		// 0x80 - 0xBF - ALU A, r
		for r := uint8(0); r < 8; r++ {
			cycles := uint8(4)
			if r == hl {
				cycles = 8
			}
			DefineInstruction(0x80|op<<3|r, fmt.Sprintf("%s %s", aluOps[op].name, registerNames[r]), cycles, aluRegister(op, r))
		}

		// 0xC6, 0xCE ... 0xFE - ALU A, d8
		DefineInstruction(0xC6|op<<3, aluOps[op].name+" d8", 8, aluImmediate(op))
	}

	// INC r, DEC r
	for r := uint8(0); r < 8; r++ {
		cycles := uint8(4)
		if r == hl {
			cycles = 12
		}
		DefineInstruction(0x04|r<<3, "INC "+registerNames[r], cycles, increment(r))
		DefineInstruction(0x05|r<<3, "DEC "+registerNames[r], cycles, decrement(r))
	}
}

func aluRegister(op, r uint8) func(*CPU) {
	fn := aluOps[op].fn
	return func(c *CPU) {
		fn(c, c.register(r))
	}
}

func aluImmediate(op uint8) func(*CPU) {
	fn := aluOps[op].fn
	return func(c *CPU) {
		fn(c, c.fetch())
	}
}

func increment(r uint8) func(*CPU) {
	return func(c *CPU) {
		c.setRegister(r, inc(&c.F, c.register(r)))
	}
}

func decrement(r uint8) func(*CPU) {
	return func(c *CPU) {
		c.setRegister(r, dec(&c.F, c.register(r)))
	}
}

func generate16BitInstructions() {
	for p := uint8(0); p < 4; p++ {
		DefineInstruction(0x03|p<<4, "INC "+pairNames[p], 8, incrementPair(p))
		DefineInstruction(0x0B|p<<4, "DEC "+pairNames[p], 8, decrementPair(p))
		DefineInstruction(0x09|p<<4, "ADD HL, "+pairNames[p], 8, addHL(p))
	}
	DefineInstruction(0xE8, "ADD SP, r8", 16, func(c *CPU) {
		c.SP = addSPSigned(&c.F, c.SP, int8(c.fetch()))
	})
}

func incrementPair(p uint8) func(*CPU) {
	return func(c *CPU) {
		c.setRegisterPair(p, c.registerPair(p)+1)
	}
}

func decrementPair(p uint8) func(*CPU) {
	return func(c *CPU) {
		c.setRegisterPair(p, c.registerPair(p)-1)
	}
}

func addHL(p uint8) func(*CPU) {
	return func(c *CPU) {
		c.SetHL(addUint16(&c.F, c.HL(), c.registerPair(p)))
	}
}

func generateJumpInstructions() {
	DefineInstruction(0xC3, "JP a16", 16, func(c *CPU) { c.SetPC(c.fetch16()) })
	DefineInstruction(0xE9, "JP HL", 4, func(c *CPU) { c.SetPC(c.HL()) })
	DefineInstruction(0x18, "JR r8", 12, func(c *CPU) { c.JumpPC(int8(c.fetch())) })
	DefineInstruction(0xCD, "CALL a16", 24, func(c *CPU) { c.call(c.fetch16()) })
	DefineInstruction(0xC9, "RET", 16, func(c *CPU) { c.SetPC(c.pop()) })
	DefineInstruction(0xD9, "RETI", 16, func(c *CPU) {
		c.SetPC(c.pop())
		c.scheduledIME = true
		c.eiDelay = false
	})

	for cc := uint8(0); cc < 4; cc++ {
		DefineConditional(0xC2|cc<<3, fmt.Sprintf("JP %s, a16", conditionNames[cc]), 12, 16, jumpConditional(cc))
		DefineConditional(0x20|cc<<3, fmt.Sprintf("JR %s, r8", conditionNames[cc]), 8, 12, jumpRelativeConditional(cc))
		DefineConditional(0xC4|cc<<3, fmt.Sprintf("CALL %s, a16", conditionNames[cc]), 12, 24, callConditional(cc))
		DefineConditional(0xC0|cc<<3, "RET "+conditionNames[cc], 8, 20, retConditional(cc))
	}

	// RST n
	for n := uint8(0); n < 8; n++ {
		DefineInstruction(0xC7|n<<3, fmt.Sprintf("RST 0x%02X", n<<3), 16, restart(uint16(n)<<3))
	}
}

// The conditional instructions always consume their operands, so that
// the program counter advances the same way whatever the outcome.

func jumpConditional(cc uint8) func(*CPU) {
	return func(c *CPU) {
		addr := c.fetch16()
		if c.condition(cc) {
			c.SetPC(addr)
			c.branched = true
		}
	}
}

func jumpRelativeConditional(cc uint8) func(*CPU) {
	return func(c *CPU) {
		offset := int8(c.fetch())
		if c.condition(cc) {
			c.JumpPC(offset)
			c.branched = true
		}
	}
}

func callConditional(cc uint8) func(*CPU) {
	return func(c *CPU) {
		addr := c.fetch16()
		if c.condition(cc) {
			c.call(addr)
			c.branched = true
		}
	}
}

func retConditional(cc uint8) func(*CPU) {
	return func(c *CPU) {
		if c.condition(cc) {
			c.SetPC(c.pop())
			c.branched = true
		}
	}
}

func restart(addr uint16) func(*CPU) {
	return func(c *CPU) {
		c.call(addr)
	}
}

func generateControlInstructions() {
	DefineInstruction(0x00, "NOP", 4, func(c *CPU) {})
	DefineInstruction(0x10, "STOP d8", 4, func(c *CPU) {
		c.fetch()
		c.stopped = true
		c.log.Debugf("stopped at 0x%04X", c.PC)
	})
	DefineInstruction(0x76, "HALT", 4, func(c *CPU) {
		c.halted = true
	})
	DefineInstruction(0xF3, "DI", 4, func(c *CPU) {
		c.scheduledIME = false
		c.eiDelay = false
	})
	DefineInstruction(0xFB, "EI", 4, func(c *CPU) {
		c.scheduledIME = true
		c.eiDelay = true
	})

	DefineInstruction(0x07, "RLCA", 4, func(c *CPU) { c.A = rlca(&c.F, c.A) })
	DefineInstruction(0x0F, "RRCA", 4, func(c *CPU) { c.A = rrca(&c.F, c.A) })
	DefineInstruction(0x17, "RLA", 4, func(c *CPU) { c.A = rla(&c.F, c.A) })
	DefineInstruction(0x1F, "RRA", 4, func(c *CPU) { c.A = rra(&c.F, c.A) })

	DefineInstruction(0x27, "DAA", 4, func(c *CPU) { c.A = daa(&c.F, c.A) })
	DefineInstruction(0x2F, "CPL", 4, func(c *CPU) {
		c.A = ^c.A
		c.F.N, c.F.H = true, true
	})
	DefineInstruction(0x37, "SCF", 4, func(c *CPU) {
		c.F.N, c.F.H, c.F.C = false, false, true
	})
	DefineInstruction(0x3F, "CCF", 4, func(c *CPU) {
		c.F.N, c.F.H, c.F.C = false, false, !c.F.C
	})
}
