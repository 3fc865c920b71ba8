package emulator

// Processor exception codes, stored in bits [6:2] of the CAUSE register
type Exception uint32

const (
	EXCEPTION_INTERRUPT           Exception = 0x0 // External hardware interrupt
	EXCEPTION_LOAD_ADDRESS_ERROR  Exception = 0x4 // Address error on load
	EXCEPTION_STORE_ADDRESS_ERROR Exception = 0x5 // Address error on store
	EXCEPTION_INSTRUCTION_BUS     Exception = 0x6 // Bus error on instruction fetch
	EXCEPTION_DATA_BUS            Exception = 0x7 // Bus error on data access
	EXCEPTION_SYSCALL             Exception = 0x8 // System call (caused by the SYSCALL opcode)
	EXCEPTION_BREAK               Exception = 0x9 // Breakpoint (caused by BREAK opcode)
	EXCEPTION_ILLEGAL_INSTRUCTION Exception = 0xa // CPU encountered an unknown instruction
	EXCEPTION_COPROCESSOR_ERROR   Exception = 0xb // Unsupported coprocessor operation
	EXCEPTION_OVERFLOW            Exception = 0xc // Arithmetic overflow
)
