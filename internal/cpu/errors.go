package cpu

import "fmt"

// UnsupportedOpcodeError is returned when the CPU fetches an opcode
// that has no defined behaviour.
type UnsupportedOpcodeError struct {
	Opcode   uint8
	Prefixed bool
	PC       uint16
}

func (e *UnsupportedOpcodeError) Error() string {
	if e.Prefixed {
		return fmt.Sprintf("cpu: unsupported opcode 0xCB%02X at 0x%04X", e.Opcode, e.PC)
	}
	return fmt.Sprintf("cpu: unsupported opcode 0x%02X at 0x%04X", e.Opcode, e.PC)
}
