package cpu

import (
	"fmt"
	"strings"
)

// Instruction is a single entry of an instruction set.
type Instruction struct {
	name string
	// cycles is the number of clock cycles taken, taken the number of
	// cycles taken by a conditional instruction whose condition is met.
	cycles uint8
	taken  uint8
	fn     func(*CPU)
}

// Name returns the mnemonic of the instruction.
func (i Instruction) Name() string {
	return i.name
}

// Cycles returns the number of clock cycles the instruction takes, and
// the number it takes when a condition is met.
func (i Instruction) Cycles() (uint8, uint8) {
	return i.cycles, i.taken
}

// operands returns the number of immediate bytes that follow the opcode.
func (i Instruction) operands() int {
	switch {
	case strings.Contains(i.name, "d16"), strings.Contains(i.name, "a16"):
		return 2
	case strings.Contains(i.name, "d8"), strings.Contains(i.name, "a8"), strings.Contains(i.name, "r8"):
		return 1
	}
	return 0
}

var (
	// InstructionSet holds the primary instructions, indexed by opcode.
	InstructionSet [256]Instruction
	// InstructionSetCB holds the instructions prefixed by 0xCB.
	InstructionSetCB [256]Instruction
)

// DefineInstruction defines the instruction in the InstructionSet, with
// the provided opcode.
func DefineInstruction(opcode uint8, name string, cycles uint8, fn func(*CPU)) {
	InstructionSet[opcode] = Instruction{name: name, cycles: cycles, taken: cycles, fn: fn}
}

// DefineConditional defines a conditional instruction, which takes
// taken cycles when its condition is met.
func DefineConditional(opcode uint8, name string, cycles, taken uint8, fn func(*CPU)) {
	InstructionSet[opcode] = Instruction{name: name, cycles: cycles, taken: taken, fn: fn}
}

func DefineInstructionCB(opcode uint8, name string, cycles uint8, fn func(*CPU)) {
	InstructionSetCB[opcode] = Instruction{name: name, cycles: cycles, taken: cycles, fn: fn}
}

// Disassemble renders the instruction at pc, returning the address of
// the instruction that follows it.
func (c *CPU) Disassemble(pc uint16) (string, uint16) {
	opcode := c.mem.Read(pc)
	pc++
	instr := InstructionSet[opcode]
	if opcode == 0xCB {
		opcode = c.mem.Read(pc)
		pc++
		instr = InstructionSetCB[opcode]
	}
	if instr.fn == nil {
		return fmt.Sprintf("DB 0x%02X", opcode), pc
	}

	text := instr.name
	switch instr.operands() {
	case 2:
		v := pair(c.mem.Read(pc+1), c.mem.Read(pc))
		pc += 2
		text = strings.NewReplacer("d16", fmt.Sprintf("0x%04X", v), "a16", fmt.Sprintf("0x%04X", v)).Replace(text)
	case 1:
		v := c.mem.Read(pc)
		pc++
		text = strings.NewReplacer(
			"d8", fmt.Sprintf("0x%02X", v),
			"a8", fmt.Sprintf("0xFF%02X", v),
			"r8", fmt.Sprintf("%+d", int8(v)),
		).Replace(text)
	}
	return text, pc
}
