package cpu

import (
	"fmt"

	"github.com/thelolagemann/gbcore/internal/types"
	"github.com/thelolagemann/gbcore/pkg/log"
)

const (
	// ClockSpeed is the clock speed of the CPU.
	ClockSpeed = 4194304

	// StackStart is the initial value of the stack pointer.
	StackStart uint16 = 0xFFFE
)

// Bus is the memory the CPU fetches from and operates on.
type Bus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// CPU represents the Gameboy CPU. It is responsible for executing instructions.
type CPU struct {
	// Registers contains the 8-bit registers, the flags, the stack
	// pointer and the program counter.
	Registers

	mem Bus
	log log.Logger

	halted  bool
	stopped bool

	// ime is the effective interrupt master enable, scheduledIME the
	// value it takes once the current instruction has completed.
	ime          bool
	scheduledIME bool
	// eiDelay holds back the scheduled enable by one more instruction.
	eiDelay bool

	// set by conditional instructions whose condition was met
	branched bool
}

// NewCPU creates a new CPU instance with the given Bus, with the
// program counter at entry.
func NewCPU(mem Bus, entry uint16, l log.Logger) *CPU {
	if l == nil {
		l = log.NewNullLogger()
	}
	return &CPU{
		Registers: Registers{
			SP: StackStart,
			PC: entry,
		},
		mem: mem,
		log: l,
	}
}

// IME returns the effective interrupt master enable.
func (c *CPU) IME() bool {
	return c.ime
}

// Halted reports whether the CPU is halted or stopped.
func (c *CPU) Halted() bool {
	return c.halted || c.stopped
}

// Step executes a single instruction and returns the number of clock
// cycles it took. A halted CPU idles for 4 cycles, until an enabled
// interrupt is requested.
func (c *CPU) Step() (uint8, error) {
	if c.halted || c.stopped {
		if c.mem.Read(types.IE)&c.mem.Read(types.IF)&0x1F == 0 {
			return 4, nil
		}
		c.log.Debugf("woken at 0x%04X", c.PC)
		c.halted, c.stopped = false, false
	}

	pc := c.PC
	opcode := c.fetch()
	prefixed := opcode == 0xCB
	var instr Instruction
	if prefixed {
		opcode = c.fetch()
		instr = InstructionSetCB[opcode]
	} else {
		instr = InstructionSet[opcode]
	}
	if instr.fn == nil {
		c.PC = pc
		return 0, &UnsupportedOpcodeError{Opcode: opcode, Prefixed: prefixed, PC: pc}
	}

	c.branched = false
	instr.fn(c)
	c.updateIME()

	if c.branched {
		return instr.taken, nil
	}
	return instr.cycles, nil
}

// updateIME applies the scheduled interrupt master enable. Called once
// at the end of every step.
func (c *CPU) updateIME() {
	if c.eiDelay {
		c.eiDelay = false
		return
	}
	c.ime = c.scheduledIME
}

// fetch reads the byte at the program counter, advancing it.
func (c *CPU) fetch() uint8 {
	return c.mem.Read(c.NextPC())
}

// fetch16 reads a little endian word at the program counter.
func (c *CPU) fetch16() uint16 {
	low := c.fetch()
	high := c.fetch()
	return pair(high, low)
}

// push pushes a word onto the stack.
func (c *CPU) push(v uint16) {
	c.SP--
	c.mem.Write(c.SP, uint8(v>>8))
	c.SP--
	c.mem.Write(c.SP, uint8(v))
}

// pop pops a word off the stack.
func (c *CPU) pop() uint16 {
	low := c.mem.Read(c.SP)
	c.SP++
	high := c.mem.Read(c.SP)
	c.SP++
	return pair(high, low)
}

// call pushes the program counter and jumps to addr.
func (c *CPU) call(addr uint16) {
	c.push(c.PC)
	c.SetPC(addr)
}

// register returns the operand with index i, in the order
// B, C, D, E, H, L, (HL), A.
func (c *CPU) register(i uint8) uint8 {
	switch i {
	case 0:
		return c.B
	case 1:
		return c.C
	case 2:
		return c.D
	case 3:
		return c.E
	case 4:
		return c.H
	case 5:
		return c.L
	case 6:
		return c.mem.Read(c.HL())
	case 7:
		return c.A
	}
	panic(fmt.Sprintf("invalid register index: %d", i))
}

// setRegister sets the operand with index i.
func (c *CPU) setRegister(i, v uint8) {
	switch i {
	case 0:
		c.B = v
	case 1:
		c.C = v
	case 2:
		c.D = v
	case 3:
		c.E = v
	case 4:
		c.H = v
	case 5:
		c.L = v
	case 6:
		c.mem.Write(c.HL(), v)
	case 7:
		c.A = v
	default:
		panic(fmt.Sprintf("invalid register index: %d", i))
	}
}

// registerPair returns the pair with index i, in the order BC, DE, HL, SP.
func (c *CPU) registerPair(i uint8) uint16 {
	switch i {
	case 0:
		return c.BC()
	case 1:
		return c.DE()
	case 2:
		return c.HL()
	default:
		return c.SP
	}
}

func (c *CPU) setRegisterPair(i uint8, v uint16) {
	switch i {
	case 0:
		c.SetBC(v)
	case 1:
		c.SetDE(v)
	case 2:
		c.SetHL(v)
	default:
		c.SP = v
	}
}

// condition evaluates the condition with index i, in the order
// NZ, Z, NC, C.
func (c *CPU) condition(i uint8) bool {
	switch i {
	case 0:
		return !c.F.Z
	case 1:
		return c.F.Z
	case 2:
		return !c.F.C
	default:
		return c.F.C
	}
}

// String returns a one line summary of the CPU state.
func (c *CPU) String() string {
	return fmt.Sprintf("AF=%04X BC=%04X DE=%04X HL=%04X SP=%04X PC=%04X IME=%t halted=%t",
		c.AF(), c.BC(), c.DE(), c.HL(), c.SP, c.PC, c.ime, c.Halted())
}

var _ types.Stater = (*CPU)(nil)

// Load loads the state of the CPU.
func (c *CPU) Load(s *types.State) {
	c.SetAF(s.Read16())
	c.SetBC(s.Read16())
	c.SetDE(s.Read16())
	c.SetHL(s.Read16())
	c.SP = s.Read16()
	c.PC = s.Read16()
	c.halted = s.ReadBool()
	c.stopped = s.ReadBool()
	c.ime = s.ReadBool()
	c.scheduledIME = s.ReadBool()
	c.eiDelay = s.ReadBool()
}

// Save saves the state of the CPU.
func (c *CPU) Save(s *types.State) {
	s.Write16(c.AF())
	s.Write16(c.BC())
	s.Write16(c.DE())
	s.Write16(c.HL())
	s.Write16(c.SP)
	s.Write16(c.PC)
	s.WriteBool(c.halted)
	s.WriteBool(c.stopped)
	s.WriteBool(c.ime)
	s.WriteBool(c.scheduledIME)
	s.WriteBool(c.eiDelay)
}
