package types

// HardwareAddress represents the address of a hardware
// register of the Game Boy. The hardware IO are mapped
// to memory addresses 0xFF00 - 0xFF7F & 0xFFFF.
type HardwareAddress = uint16

const (
	// SB is the address of the SB hardware register. The SB
	// hardware register holds the byte to be transferred over
	// the serial port.
	SB HardwareAddress = 0xFF01
	// SC is the address of the SC hardware register. Writing
	// 0x81 (transfer start, internal clock) transmits SB.
	SC HardwareAddress = 0xFF02
	// DIV is the address of the DIV hardware register. The DIV
	// hardware register is incremented at a rate of 16384Hz. Internally
	// it is a 16-bit register, but only the upper 8 bits may be read.
	// Any write resets the whole counter to 0.
	DIV HardwareAddress = 0xFF04
	// TIMA is the address of the TIMA hardware register. The TIMA
	// hardware register is incremented at a rate specified by the TAC
	// hardware register. When TIMA overflows, it is reset to the value
	// specified by the TMA hardware register, and a timer interrupt is
	// requested.
	TIMA HardwareAddress = 0xFF05
	// TMA is the address of the TMA hardware register. The TMA
	// hardware register is loaded into TIMA when it overflows.
	TMA HardwareAddress = 0xFF06
	// TAC is the address of the TAC hardware register. The TAC
	// hardware register is used to control the timer.
	//
	//  Bit 2   - Timer Enable
	//  Bit 1-0 - Input Clock Select
	//            00: div bit 9 (4096 Hz)
	//            01: div bit 3 (262144 Hz)
	//            10: div bit 5 (65536 Hz)
	//            11: div bit 7 (16384 Hz)
	TAC HardwareAddress = 0xFF07
	// IF is the address of the IF hardware register. The IF
	// hardware register is used to request interrupts.
	//
	//  Bit 0: V-Blank Interrupt Request (INT 40h)  (1=Request)
	//  Bit 1: LCD STAT Interrupt Request (INT 48h) (1=Request)
	//  Bit 2: Timer Interrupt Request (INT 50h)    (1=Request)
	//  Bit 3: Serial Interrupt Request (INT 58h)   (1=Request)
	//  Bit 4: Joypad Interrupt Request (INT 60h)   (1=Request)
	IF HardwareAddress = 0xFF0F
	// LCDC is the address of the LCDC hardware register.
	//
	//  Bit 7 - LCD Display Enable             (0=Off, 1=On)
	//  Bit 6 - Window Tile Map Display Select (0=9800-9BFF, 1=9C00-9FFF)
	//  Bit 5 - Window Display Enable          (0=Off, 1=On)
	//  Bit 4 - BG & Window Tile Data Select   (0=8800-97FF, 1=8000-8FFF)
	//  Bit 3 - BG Tile Map Display Select     (0=9800-9BFF, 1=9C00-9FFF)
	//  Bit 2 - OBJ (Sprite) Size              (0=8x8, 1=8x16)
	//  Bit 1 - OBJ (Sprite) Display Enable    (0=Off, 1=On)
	//  Bit 0 - BG Display                     (0=Off, 1=On)
	LCDC HardwareAddress = 0xFF40
	// STAT is the address of the STAT hardware register. Bit 2
	// is the coincidence flag (LY == LYC).
	STAT HardwareAddress = 0xFF41
	// SCY is the address of the SCY hardware register, the
	// vertical scroll of the background.
	SCY HardwareAddress = 0xFF42
	// SCX is the address of the SCX hardware register, the
	// horizontal scroll of the background.
	SCX HardwareAddress = 0xFF43
	// LY is the address of the LY hardware register. It holds
	// the scanline currently being drawn and is read-only to the
	// CPU.
	LY HardwareAddress = 0xFF44
	// LYC is the address of the LYC hardware register, compared
	// against LY after every scanline.
	LYC HardwareAddress = 0xFF45
	// DMA is the address of the DMA hardware register. Writing to
	// it starts a transfer of 160 bytes from XX00 to the OAM.
	DMA HardwareAddress = 0xFF46
	// BGP is the address of the BGP hardware register. It maps the
	// four background colour numbers to shades, 2 bits each.
	BGP HardwareAddress = 0xFF47
	// IE is the address of the IE hardware register.
	IE HardwareAddress = 0xFFFF
)

// Memory regions used by the bus and the pixel pipeline.
const (
	ROMEnd       uint16 = 0x8000
	TileData     uint16 = 0x8000
	TileMap0     uint16 = 0x9800
	TileMap1     uint16 = 0x9C00
	WRAMStart    uint16 = 0xC000
	EchoStart    uint16 = 0xE000
	EchoEnd      uint16 = 0xFE00
	OAMStart     uint16 = 0xFE00
	HRAMStart    uint16 = 0xFF80
	HRAMEnd      uint16 = 0xFFFE
	EchoDistance uint16 = EchoStart - WRAMStart
)
