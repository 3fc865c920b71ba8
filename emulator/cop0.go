package emulator

// Register indices of coprocessor 0
const (
	COP0_BPC   = 3  // Breakpoint PC
	COP0_BDA   = 5  // Breakpoint data address
	COP0_TAR   = 6  // Target address
	COP0_DCIC  = 7  // Debug and cache isolation control
	COP0_BADA  = 8  // Bad virtual address
	COP0_BDAM  = 9  // Data address mask
	COP0_BPCM  = 11 // PC mask
	COP0_SR    = 12 // Status register
	COP0_CAUSE = 13 // Cause register
	COP0_EPC   = 14 // Exception PC
	COP0_PRID  = 15 // Processor ID
)

// Normal and bootstrap exception handler addresses, selected by the
// BEV bit (bit 22) of the status register
const (
	EXCEPTION_HANDLER      uint32 = 0x80000080
	EXCEPTION_HANDLER_BOOT uint32 = 0xbfc00180
)

// Coprocessor 0: System Control. Owns the privileged registers that
// govern interrupt masking, exception causes and privilege level
type Cop0 struct {
	Regs [32]uint32
}

// Creates a new Cop0 instance with the power-on register values
func NewCop0() *Cop0 {
	cop := &Cop0{}
	cop.Reset()
	return cop
}

// Restores the power-on state: all registers zeroed except the status
// register (BEV set, COP0 usable) and the read-only processor ID
func (cop *Cop0) Reset() {
	cop.Regs = [32]uint32{}
	cop.Regs[COP0_SR] = 0x10900000
	cop.Regs[COP0_PRID] = 0x00000002
}

// Returns true if the cache is isolated (bit 16 of the status register).
// The BIOS isolates the cache while zeroing RAM, stores are discarded
// during that time
func (cop *Cop0) CacheIsolated() bool {
	return cop.Regs[COP0_SR]&0x10000 != 0
}

// Returns true if the global interrupt enable bit (IEc) is set
func (cop *Cop0) IrqEnabled() bool {
	return cop.Regs[COP0_SR]&1 != 0
}

// Enters an exception and returns the handler address the CPU should
// jump to. `pc` is the address of the faulting instruction, already
// adjusted for the PC increment done during the step
func (cop *Cop0) EnterException(cause Exception, pc uint32, inDelaySlot bool) uint32 {
	// Shift bits [5:0] of the SR two places to the left.
	// Those bits are three pairs of Interrupt Enable/User Mode
	// bits behaving like a stack of 3 entries deep. Entering an
	// exception pushes a pair of zeroes by left shifting the stack
	// which disables interrupts and puts the CPU in kernel mode.
	// The original third entry is discarded (it's up to the kernel
	// to handle more than two recursive exception levels)
	sr := cop.Regs[COP0_SR]
	mode := sr & 0x3f
	sr &^= 0x3f
	sr |= (mode << 2) & 0x3f
	cop.Regs[COP0_SR] = sr

	// update the CAUSE register with the exception code. The code
	// bits are fully replaced, not merged
	cop.Regs[COP0_CAUSE] &^= 0x7c
	cop.Regs[COP0_CAUSE] |= uint32(cause) << 2

	// if the exception was raised in a branch delay slot, EPC must
	// point at the branch instruction one word earlier, with bit 31
	// of CAUSE flagging the adjustment
	if inDelaySlot {
		cop.Regs[COP0_EPC] = pc - 4
		cop.Regs[COP0_CAUSE] |= 1 << 31
	} else {
		cop.Regs[COP0_EPC] = pc
		cop.Regs[COP0_CAUSE] &^= 1 << 31
	}

	if cop.Regs[COP0_SR]&(1<<22) != 0 {
		return EXCEPTION_HANDLER_BOOT
	}
	return EXCEPTION_HANDLER
}

// Pops the interrupt enable/user mode stack, restoring the state
// pushed by the last exception entry
func (cop *Cop0) ReturnFromException() {
	sr := cop.Regs[COP0_SR]
	mode := sr & 0x3f
	cop.Regs[COP0_SR] = (sr &^ 0x3f) | (mode >> 2)
}
