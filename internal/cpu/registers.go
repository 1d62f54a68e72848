package cpu

// Registers represents the GB CPU registers. The 8-bit registers
// B, C, D, E, H and L may also be accessed as the 16-bit pairs BC, DE
// and HL, where the first register of the pair holds the high byte.
type Registers struct {
	A uint8
	B uint8
	C uint8
	D uint8
	E uint8
	H uint8
	L uint8

	// F holds the flags, only packed into a byte when crossing the AF
	// boundary.
	F Flags

	// SP is the stack pointer, it points to the top of the stack.
	SP uint16
	// PC is the program counter, it points to the next byte to be fetched.
	PC uint16
}

func pair(high, low uint8) uint16 {
	return uint16(high)<<8 | uint16(low)
}

// BC returns the value of the BC register pair.
func (r *Registers) BC() uint16 { return pair(r.B, r.C) }

// SetBC sets the BC register pair.
func (r *Registers) SetBC(v uint16) { r.B, r.C = uint8(v>>8), uint8(v) }

// DE returns the value of the DE register pair.
func (r *Registers) DE() uint16 { return pair(r.D, r.E) }

// SetDE sets the DE register pair.
func (r *Registers) SetDE(v uint16) { r.D, r.E = uint8(v>>8), uint8(v) }

// HL returns the value of the HL register pair.
func (r *Registers) HL() uint16 { return pair(r.H, r.L) }

// SetHL sets the HL register pair.
func (r *Registers) SetHL(v uint16) { r.H, r.L = uint8(v>>8), uint8(v) }

// AF returns the accumulator and the flags packed into a word. The low
// nibble is always 0.
func (r *Registers) AF() uint16 { return pair(r.A, r.F.Byte()) }

// SetAF sets the accumulator and the flags, ignoring the low nibble.
func (r *Registers) SetAF(v uint16) {
	r.A = uint8(v >> 8)
	r.F.SetByte(uint8(v))
}

// HLIncrement returns HL and then increments it.
func (r *Registers) HLIncrement() uint16 {
	hl := r.HL()
	r.SetHL(hl + 1)
	return hl
}

// HLDecrement returns HL and then decrements it.
func (r *Registers) HLDecrement() uint16 {
	hl := r.HL()
	r.SetHL(hl - 1)
	return hl
}

// NextPC returns the program counter and advances it by one, as an
// instruction fetch does.
func (r *Registers) NextPC() uint16 {
	pc := r.PC
	r.PC++
	return pc
}

// SetPC sets the program counter.
func (r *Registers) SetPC(pc uint16) {
	r.PC = pc
}

// JumpPC moves the program counter by a signed offset, wrapping around
// the address space.
func (r *Registers) JumpPC(offset int8) {
	r.PC = uint16(int32(r.PC) + int32(offset))
}
