package cpu

// Flag is the bit position of a flag in the F register.
type Flag = uint8

const (
	FlagZero      Flag = 7
	FlagSubtract  Flag = 6
	FlagHalfCarry Flag = 5
	FlagCarry     Flag = 4
)

// Flags holds the 4 condition flags of the CPU.
type Flags struct {
	Z bool // zero
	N bool // subtract
	H bool // half carry
	C bool // carry
}

// set sets all 4 flags at once.
func (f *Flags) set(z, n, h, c bool) {
	f.Z, f.N, f.H, f.C = z, n, h, c
}

// Byte packs the flags into the upper nibble of a byte.
func (f Flags) Byte() uint8 {
	var b uint8
	if f.Z {
		b |= 1 << FlagZero
	}
	if f.N {
		b |= 1 << FlagSubtract
	}
	if f.H {
		b |= 1 << FlagHalfCarry
	}
	if f.C {
		b |= 1 << FlagCarry
	}
	return b
}

// SetByte unpacks the flags from the upper nibble of b.
func (f *Flags) SetByte(b uint8) {
	f.Z = b&(1<<FlagZero) != 0
	f.N = b&(1<<FlagSubtract) != 0
	f.H = b&(1<<FlagHalfCarry) != 0
	f.C = b&(1<<FlagCarry) != 0
}

// carry returns the carry flag as a bit.
func (f *Flags) carry() uint8 {
	if f.C {
		return 1
	}
	return 0
}
