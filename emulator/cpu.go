package emulator

import (
	"fmt"
	"io"
)

// Address of the first instruction executed after reset (BIOS entry point)
const RESET_PC uint32 = 0xbfc00000

// Memory interface the CPU executes against. The bus is borrowed for
// the duration of one step, the CPU never keeps a reference to it.
// A failed access is a hard error that aborts the current step, it is
// not converted into a bus-error exception
type Bus interface {
	Load8(addr uint32) (byte, error)
	Load16(addr uint32) (uint16, error)
	Load32(addr uint32) (uint32, error)
	Store8(addr uint32, val byte) error
	Store16(addr uint32, val uint16) error
	Store32(addr uint32, val uint32) error
	// Returns true if any unmasked hardware interrupt is pending
	IrqPending() bool
}

// The result of a load instruction, invisible until the next step
// resolves it
type PendingLoad struct {
	Reg   uint32 // Target register
	Value uint32 // Value to load
}

// CPU state (MIPS R3000A)
type CPU struct {
	PC     uint32     // Address of the instruction about to execute
	NextPC uint32     // Next value of PC, overwritten by branches to implement the delay slot
	Regs   [32]uint32 // General purpose registers. The first value must always be 0
	Hi     uint32     // Multiplication 64 bit high result or division remainder
	Lo     uint32     // Multiplication 64 bit low result or division quotient

	Cop0   *Cop0   // Coprocessor 0: system control
	Gte    *GTE    // Coprocessor 2: geometry transformation engine register file
	ICache *ICache // Instruction cache

	// The load delay slot: at most one load is in flight at a time,
	// its value becomes visible one instruction after it was issued
	Load    PendingLoad
	HasLoad bool

	// Set by a taken branch or jump, promoted into InBranchDelay at
	// the start of the following step
	Branch bool
	// True while the executing instruction sits in a branch delay
	// slot, i.e. for at most one step after a taken branch
	InBranchDelay bool

	// The instruction being executed, kept around for debugging
	CurrentInstruction Instruction
	// Address of the instruction being executed, latched at fetch
	// time. PC itself can't be used to compute the exception PC, it
	// already points into the next step (or at a branch target)
	CurrentPC uint32
}

// Creates a new CPU in the power-on state
func NewCPU() *CPU {
	cpu := &CPU{
		Cop0:   NewCop0(),
		Gte:    NewGTE(),
		ICache: NewICache(),
	}
	cpu.Reset()
	return cpu
}

// Resets the CPU to the power-on state: registers zeroed, PC at the
// BIOS entry point, instruction cache emptied
func (cpu *CPU) Reset() {
	cpu.PC = RESET_PC
	cpu.NextPC = RESET_PC + 4
	cpu.CurrentPC = RESET_PC
	cpu.Regs = [32]uint32{}
	cpu.Hi = 0
	cpu.Lo = 0
	cpu.Cop0.Reset()
	cpu.Gte.Reset()
	cpu.ICache.Clear()
	cpu.HasLoad = false
	cpu.Branch = false
	cpu.InBranchDelay = false
	cpu.CurrentInstruction = 0
}

// Returns the register value at `index`. The first register is always zero
func (cpu *CPU) Reg(index uint32) uint32 {
	if index == 0 {
		return 0
	}
	return cpu.Regs[index]
}

// Sets the value at the `index` register. Writes to the first register
// are a no-op, it's hardwired to zero
func (cpu *CPU) SetReg(index, val uint32) {
	if index != 0 {
		cpu.Regs[index] = val
	}
}

// Records a delayed register write for a load-class instruction. If a
// load is already in flight its value is committed first, so the one
// instruction latency is reproduced exactly once per load
func (cpu *CPU) SetRegDelayed(index, val uint32) {
	if cpu.HasLoad {
		cpu.SetReg(cpu.Load.Reg, cpu.Load.Value)
		cpu.HasLoad = false
	}
	if index != 0 {
		cpu.Load = PendingLoad{Reg: index, Value: val}
		cpu.HasLoad = true
	}
}

// Makes the in-flight load visible, if any
func (cpu *CPU) commitPendingLoad() {
	if cpu.HasLoad {
		cpu.SetReg(cpu.Load.Reg, cpu.Load.Value)
		cpu.HasLoad = false
	}
}

// Runs one instruction through its full life cycle: interrupt check,
// fetch, PC advance, load delay resolution, dispatch, execute.
// Returns the amount of cycles consumed (currently always 1) or a hard
// error if the bus failed to serve the fetch or a data access
func (cpu *CPU) Step(bus Bus) (uint64, error) {
	cpu.CurrentPC = cpu.PC

	// the instruction executing this step sits in a delay slot iff
	// the previous step took a branch
	cpu.InBranchDelay = cpu.Branch
	cpu.Branch = false

	// interrupts are only checked between instructions, never
	// mid-instruction. An interrupt taken here saves the address of
	// the instruction that was about to execute, it reruns after the
	// handler returns
	cpu.pollIrqs(bus)

	// resolve the load issued by the previous instruction
	cpu.commitPendingLoad()

	// fetch through the instruction cache; on a miss read the bus and
	// remember the word. Cached entries are never refreshed here, see
	// the ICache contract
	// reload the latched address, an interrupt above redirected PC to
	// the handler
	pc := cpu.PC
	cpu.CurrentPC = pc
	// JR/JALR land here unchecked, misaligned targets fault at fetch
	if pc%4 != 0 {
		return 0, fmt.Errorf("unaligned instruction fetch at address 0x%x", pc)
	}
	word, ok := cpu.ICache.Fetch(pc)
	if !ok {
		var err error
		word, err = bus.Load32(pc)
		if err != nil {
			return 0, err
		}
		cpu.ICache.Store(pc, word)
	}
	instruction := Instruction(word)
	cpu.CurrentInstruction = instruction

	// advance the PC. A branch executed below overwrites NextPC, which
	// takes effect only after the delay slot instruction has run
	cpu.PC = cpu.NextPC
	cpu.NextPC += 4 // wraps around: 0xfffffffc + 4 = 0

	if err := cpu.execute(bus, instruction); err != nil {
		return 0, err
	}
	return 1, nil
}

// Enters an exception: pushes the interrupt enable/user mode stack,
// latches the cause and exception PC and redirects execution to the
// handler. Exception entry is a full pipeline flush, any pending load
// is discarded
func (cpu *CPU) Exception(cause Exception) {
	handler := cpu.Cop0.EnterException(cause, cpu.CurrentPC, cpu.InBranchDelay)

	cpu.PC = handler
	cpu.NextPC = handler + 4
	cpu.Branch = false
	cpu.InBranchDelay = false
	cpu.HasLoad = false
}

// Merges the external pending-interrupt bitmask into the CAUSE register
// and enters the interrupt handler if the status register allows it
func (cpu *CPU) CheckInterrupts(pending uint32) {
	// the interrupt preempts the instruction that would execute next
	cpu.CurrentPC = cpu.PC
	cpu.InBranchDelay = cpu.Branch
	pending &= 0xff
	cause := cpu.Cop0.Regs[COP0_CAUSE]
	cpu.Cop0.Regs[COP0_CAUSE] = (cause &^ 0xff00) | (pending << 8)

	if !cpu.Cop0.IrqEnabled() {
		return
	}
	im := (cpu.Cop0.Regs[COP0_SR] >> 8) & 0xff
	if pending&im != 0 {
		cpu.Exception(EXCEPTION_INTERRUPT)
	}
}

// Per-step interrupt check: mirrors the single external interrupt line
// into bit 10 of the CAUSE register, then enters the handler if the
// line is unmasked and interrupts are enabled
func (cpu *CPU) pollIrqs(bus Bus) {
	pending := bus.IrqPending()
	if pending {
		cpu.Cop0.Regs[COP0_CAUSE] |= 1 << 10
	} else {
		cpu.Cop0.Regs[COP0_CAUSE] &^= 1 << 10
	}

	if !cpu.Cop0.IrqEnabled() {
		return
	}
	im := (cpu.Cop0.Regs[COP0_SR] >> 8) & 0xff
	if pending && im&0x04 != 0 {
		cpu.Exception(EXCEPTION_INTERRUPT)
	}
}

// Returns true if the instruction executed by the current (or most
// recent) step is in a branch delay slot
func (cpu *CPU) InDelaySlot() bool {
	return cpu.InBranchDelay
}

// Force-sets the program counter, used when loading an executable with
// a fixed entry point
func (cpu *CPU) SetPC(pc uint32) {
	cpu.PC = pc
	cpu.NextPC = pc + 4
}

// Prefills the instruction cache with `word` at `addr`. Called by the
// bus when it sees code being copied into memory
func (cpu *CPU) PrefillICache(addr, word uint32) {
	cpu.ICache.Prefill(addr, word)
}

// Invalidates the cached instruction at `addr`. Called by the bus when
// memory that might hold already-fetched code is written
func (cpu *CPU) InvalidateICache(addr uint32) {
	cpu.ICache.Invalidate(addr)
}

// Invalidates all cached instructions in [start, end)
func (cpu *CPU) InvalidateICacheRange(start, end uint32) {
	cpu.ICache.InvalidateRange(start, end)
}

// Writes a human-readable dump of the full register state to `w`
func (cpu *CPU) DumpRegisters(w io.Writer) {
	fmt.Fprintf(w, "pc: 0x%08x  next pc: 0x%08x\n", cpu.PC, cpu.NextPC)
	fmt.Fprintf(w, "hi: 0x%08x  lo: 0x%08x\n", cpu.Hi, cpu.Lo)
	for i := uint32(0); i < 32; i++ {
		fmt.Fprintf(w, "%-2s: 0x%08x  ", GetRegisterName(i), cpu.Reg(i))
		if i%4 == 3 {
			fmt.Fprintln(w)
		}
	}
	fmt.Fprintf(w, "sr: 0x%08x  cause: 0x%08x  epc: 0x%08x\n",
		cpu.Cop0.Regs[COP0_SR], cpu.Cop0.Regs[COP0_CAUSE], cpu.Cop0.Regs[COP0_EPC])
	fmt.Fprintf(w, "bada: 0x%08x  prid: 0x%08x\n",
		cpu.Cop0.Regs[COP0_BADA], cpu.Cop0.Regs[COP0_PRID])
}
