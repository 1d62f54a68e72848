package cpu

// add adds b to a.
//
//	ADD A, n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func add(f *Flags, a, b uint8) uint8 {
	result := a + b
	f.set(result == 0, false, (a&0xF)+(b&0xF) > 0xF, uint16(a)+uint16(b) > 0xFF)
	return result
}

// adc adds b and the carry flag to a.
//
//	ADC A, n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func adc(f *Flags, a, b uint8) uint8 {
	carry := f.carry()
	result := a + b + carry
	f.set(result == 0, false, (a&0xF)+(b&0xF)+carry > 0xF, uint16(a)+uint16(b)+uint16(carry) > 0xFF)
	return result
}

// sub subtracts b from a.
//
//	SUB n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow.
func sub(f *Flags, a, b uint8) uint8 {
	result := a - b
	f.set(result == 0, true, ((a&0xF)-(b&0xF))&0x10 != 0, b > a)
	return result
}

// sbc subtracts b and the carry flag from a.
//
//	SBC A, n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow.
func sbc(f *Flags, a, b uint8) uint8 {
	carry := f.carry()
	result := a - b - carry
	f.set(result == 0, true, ((a&0xF)-(b&0xF)-carry)&0x10 != 0, uint16(b)+uint16(carry) > uint16(a))
	return result
}

// cp compares b to a. This is basically a subtraction where the result
// is thrown away.
func cp(f *Flags, a, b uint8) {
	sub(f, a, b)
}

// and performs a bitwise AND operation on a and b.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set.
//	C - Reset.
func and(f *Flags, a, b uint8) uint8 {
	result := a & b
	f.set(result == 0, false, true, false)
	return result
}

// xor performs a bitwise XOR operation on a and b.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func xor(f *Flags, a, b uint8) uint8 {
	result := a ^ b
	f.set(result == 0, false, false, false)
	return result
}

// or performs a bitwise OR operation on a and b.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func or(f *Flags, a, b uint8) uint8 {
	result := a | b
	f.set(result == 0, false, false, false)
	return result
}

// addUint16 adds two words.
//
//	ADD HL, nn
//	nn = BC, DE, HL, SP
//
// Flags affected:
//
//	Z - Not affected.
//	N - Reset.
//	H - Set if carry from bit 11.
//	C - Set if carry from bit 15.
func addUint16(f *Flags, a, b uint16) uint16 {
	f.N = false
	f.H = (a&0xFFF)+(b&0xFFF) > 0xFFF
	f.C = uint32(a)+uint32(b) > 0xFFFF
	return a + b
}

// addSPSigned adds a signed offset to the stack pointer. The flags are
// computed from the unsigned addition of the low byte.
//
//	ADD SP, r8
//	LD HL, SP+r8
//
// Flags affected:
//
//	Z - Reset.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func addSPSigned(f *Flags, sp uint16, e int8) uint16 {
	low, u := uint8(sp), uint8(e)
	f.set(false, false, (low&0xF)+(u&0xF) > 0xF, uint16(low)+uint16(u) > 0xFF)
	return uint16(int32(sp) + int32(e))
}

// inc increments n by 1.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Not affected.
func inc(f *Flags, n uint8) uint8 {
	result := n + 1
	f.Z, f.N, f.H = result == 0, false, n&0xF == 0xF
	return result
}

// dec decrements n by 1.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Not affected.
func dec(f *Flags, n uint8) uint8 {
	result := n - 1
	f.Z, f.N, f.H = result == 0, true, n&0xF == 0
	return result
}

// rlc rotates n left, the old bit 7 goes to the carry flag and to bit 0.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 7 data.
func rlc(f *Flags, n uint8) uint8 {
	result := n<<1 | n>>7
	f.set(result == 0, false, false, n&0x80 != 0)
	return result
}

// rrc rotates n right, the old bit 0 goes to the carry flag and to bit 7.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 0 data.
func rrc(f *Flags, n uint8) uint8 {
	result := n>>1 | n<<7
	f.set(result == 0, false, false, n&0x01 != 0)
	return result
}

// rl rotates n left through the carry flag.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 7 data.
func rl(f *Flags, n uint8) uint8 {
	result := n<<1 | f.carry()
	f.set(result == 0, false, false, n&0x80 != 0)
	return result
}

// rr rotates n right through the carry flag.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 0 data.
func rr(f *Flags, n uint8) uint8 {
	result := n>>1 | f.carry()<<7
	f.set(result == 0, false, false, n&0x01 != 0)
	return result
}

// The accumulator rotates (RLCA, RRCA, RLA, RRA) behave like their CB
// prefixed counterparts, except Z is always reset.

func rlca(f *Flags, a uint8) uint8 {
	a = rlc(f, a)
	f.Z = false
	return a
}

func rrca(f *Flags, a uint8) uint8 {
	a = rrc(f, a)
	f.Z = false
	return a
}

func rla(f *Flags, a uint8) uint8 {
	a = rl(f, a)
	f.Z = false
	return a
}

func rra(f *Flags, a uint8) uint8 {
	a = rr(f, a)
	f.Z = false
	return a
}

// sla shifts n left into the carry flag, bit 0 is reset.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 7 data.
func sla(f *Flags, n uint8) uint8 {
	result := n << 1
	f.set(result == 0, false, false, n&0x80 != 0)
	return result
}

// sra shifts n right into the carry flag, bit 7 is unchanged.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 0 data.
func sra(f *Flags, n uint8) uint8 {
	result := n>>1 | n&0x80
	f.set(result == 0, false, false, n&0x01 != 0)
	return result
}

// srl shifts n right into the carry flag, bit 7 is reset.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 0 data.
func srl(f *Flags, n uint8) uint8 {
	result := n >> 1
	f.set(result == 0, false, false, n&0x01 != 0)
	return result
}

// swap the upper and lower nibbles of a byte
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func swap(f *Flags, n uint8) uint8 {
	result := n<<4 | n>>4
	f.set(result == 0, false, false, false)
	return result
}

// bit tests bit b of n.
//
// Flags affected:
//
//	Z - Set if bit b of n is 0.
//	N - Reset.
//	H - Set.
//	C - Not affected.
func bit(f *Flags, b, n uint8) {
	f.Z, f.N, f.H = n&(1<<b) == 0, false, true
}

// res resets bit b of n.
func res(b, n uint8) uint8 {
	return n &^ (1 << b)
}

// set sets bit b of n.
func set(b, n uint8) uint8 {
	return n | 1<<b
}

// daa decimal adjusts the accumulator after a BCD addition or
// subtraction, depending on the N flag.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Not affected.
//	H - Reset.
//	C - Set or reset according to operation.
func daa(f *Flags, a uint8) uint8 {
	if !f.N {
		if f.C || a > 0x99 {
			a += 0x60
			f.C = true
		}
		if f.H || a&0x0F > 0x09 {
			a += 0x06
		}
	} else {
		if f.C {
			a -= 0x60
		}
		if f.H {
			a -= 0x06
		}
	}
	f.Z = a == 0
	f.H = false
	return a
}
