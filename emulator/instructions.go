package emulator

// Decodes and executes an instruction. Processor exceptions (overflow,
// syscall, address errors...) are handled internally and never surface
// as errors, only a failed bus access does
func (cpu *CPU) execute(bus Bus, instruction Instruction) error {
	// http://problemkaputt.de/psx-spx.htm#cpuopcodeencoding
	switch instruction.Function() {
	case 0x00:
		cpu.executeSpecial(instruction)
	case 0x01:
		cpu.OpBcondZ(instruction)
	case 0x02:
		cpu.OpJ(instruction)
	case 0x03:
		cpu.OpJAL(instruction)
	case 0x04:
		cpu.OpBEQ(instruction)
	case 0x05:
		cpu.OpBNE(instruction)
	case 0x06:
		cpu.OpBLEZ(instruction)
	case 0x07:
		cpu.OpBGTZ(instruction)
	case 0x08:
		cpu.OpADDI(instruction)
	case 0x09:
		cpu.OpADDIU(instruction)
	case 0x0a:
		cpu.OpSLTI(instruction)
	case 0x0b:
		cpu.OpSLTIU(instruction)
	case 0x0c:
		cpu.OpANDI(instruction)
	case 0x0d:
		cpu.OpORI(instruction)
	case 0x0e:
		cpu.OpXORI(instruction)
	case 0x0f:
		cpu.OpLUI(instruction)
	case 0x10:
		cpu.executeCop0(instruction)
	case 0x12:
		cpu.executeCop2(instruction)
	case 0x11, 0x13:
		// COP1 and COP3 don't exist on this CPU
		cpu.Exception(EXCEPTION_COPROCESSOR_ERROR)
	case 0x20:
		return cpu.OpLB(bus, instruction)
	case 0x21:
		return cpu.OpLH(bus, instruction)
	case 0x22:
		return cpu.OpLWL(bus, instruction)
	case 0x23:
		return cpu.OpLW(bus, instruction)
	case 0x24:
		return cpu.OpLBU(bus, instruction)
	case 0x25:
		return cpu.OpLHU(bus, instruction)
	case 0x26:
		return cpu.OpLWR(bus, instruction)
	case 0x28:
		return cpu.OpSB(bus, instruction)
	case 0x29:
		return cpu.OpSH(bus, instruction)
	case 0x2a:
		return cpu.OpSWL(bus, instruction)
	case 0x2b:
		return cpu.OpSW(bus, instruction)
	case 0x2e:
		return cpu.OpSWR(bus, instruction)
	case 0x32:
		return cpu.OpLWC2(bus, instruction)
	case 0x3a:
		return cpu.OpSWC2(bus, instruction)
	case 0x30, 0x31, 0x33, 0x38, 0x39, 0x3b:
		// load/store for coprocessors that don't exist
		cpu.Exception(EXCEPTION_COPROCESSOR_ERROR)
	default:
		cpu.Exception(EXCEPTION_ILLEGAL_INSTRUCTION)
	}
	return nil
}

// Executes a SPECIAL (opcode 0x00) instruction, dispatched on the
// function field
func (cpu *CPU) executeSpecial(instruction Instruction) {
	rs, rt, rd, shamt, funct := DecodeRType(instruction)

	switch funct {
	case 0x00:
		cpu.OpSLL(rt, rd, shamt)
	case 0x02:
		cpu.OpSRL(rt, rd, shamt)
	case 0x03:
		cpu.OpSRA(rt, rd, shamt)
	case 0x04:
		cpu.OpSLLV(rs, rt, rd)
	case 0x06:
		cpu.OpSRLV(rs, rt, rd)
	case 0x07:
		cpu.OpSRAV(rs, rt, rd)
	case 0x08:
		cpu.OpJR(rs)
	case 0x09:
		cpu.OpJALR(rs, rd)
	case 0x0c:
		cpu.Exception(EXCEPTION_SYSCALL)
	case 0x0d:
		cpu.Exception(EXCEPTION_BREAK)
	case 0x10:
		cpu.OpMFHI(rd)
	case 0x11:
		cpu.OpMTHI(rs)
	case 0x12:
		cpu.OpMFLO(rd)
	case 0x13:
		cpu.OpMTLO(rs)
	case 0x18:
		cpu.OpMULT(rs, rt)
	case 0x19:
		cpu.OpMULTU(rs, rt)
	case 0x1a:
		cpu.OpDIV(rs, rt)
	case 0x1b:
		cpu.OpDIVU(rs, rt)
	case 0x20:
		cpu.OpADD(rs, rt, rd)
	case 0x21:
		cpu.OpADDU(rs, rt, rd)
	case 0x22:
		cpu.OpSUB(rs, rt, rd)
	case 0x23:
		cpu.OpSUBU(rs, rt, rd)
	case 0x24:
		cpu.OpAND(rs, rt, rd)
	case 0x25:
		cpu.OpOR(rs, rt, rd)
	case 0x26:
		cpu.OpXOR(rs, rt, rd)
	case 0x27:
		cpu.OpNOR(rs, rt, rd)
	case 0x2a:
		cpu.OpSLT(rs, rt, rd)
	case 0x2b:
		cpu.OpSLTU(rs, rt, rd)
	default:
		cpu.Exception(EXCEPTION_ILLEGAL_INSTRUCTION)
	}
}

// === Arithmetic ===

// Add: checked signed addition. On overflow the destination is left
// untouched and an Overflow exception is raised
func (cpu *CPU) OpADD(rs, rt, rd uint32) {
	v, err := add32Overflow(int32(cpu.Reg(rs)), int32(cpu.Reg(rt)))
	if err != nil {
		cpu.Exception(EXCEPTION_OVERFLOW)
		return
	}
	cpu.SetReg(rd, uint32(v))
}

// Add Unsigned: wraps silently, never excepts
func (cpu *CPU) OpADDU(rs, rt, rd uint32) {
	cpu.SetReg(rd, cpu.Reg(rs)+cpu.Reg(rt))
}

// Add Immediate: checked signed addition of the sign-extended immediate
func (cpu *CPU) OpADDI(instruction Instruction) {
	s := instruction.S()
	t := instruction.T()
	i := int32(instruction.ImmSE())

	v, err := add32Overflow(int32(cpu.Reg(s)), i)
	if err != nil {
		cpu.Exception(EXCEPTION_OVERFLOW)
		return
	}
	cpu.SetReg(t, uint32(v))
}

// Add Immediate Unsigned: despite the name the immediate is
// sign-extended, only the overflow behavior differs from ADDI
func (cpu *CPU) OpADDIU(instruction Instruction) {
	cpu.SetReg(instruction.T(), cpu.Reg(instruction.S())+instruction.ImmSE())
}

// Subtract: checked signed subtraction, same overflow rules as ADD
func (cpu *CPU) OpSUB(rs, rt, rd uint32) {
	v, err := sub32Overflow(int32(cpu.Reg(rs)), int32(cpu.Reg(rt)))
	if err != nil {
		cpu.Exception(EXCEPTION_OVERFLOW)
		return
	}
	cpu.SetReg(rd, uint32(v))
}

// Subtract Unsigned
func (cpu *CPU) OpSUBU(rs, rt, rd uint32) {
	cpu.SetReg(rd, cpu.Reg(rs)-cpu.Reg(rt))
}

// Set on Less Than (signed comparison)
func (cpu *CPU) OpSLT(rs, rt, rd uint32) {
	cpu.SetReg(rd, oneIfTrue(int32(cpu.Reg(rs)) < int32(cpu.Reg(rt))))
}

// Set on Less Than Unsigned
func (cpu *CPU) OpSLTU(rs, rt, rd uint32) {
	cpu.SetReg(rd, oneIfTrue(cpu.Reg(rs) < cpu.Reg(rt)))
}

// Set on Less Than Immediate (signed, sign-extended immediate)
func (cpu *CPU) OpSLTI(instruction Instruction) {
	i := int32(instruction.ImmSE())
	cpu.SetReg(instruction.T(), oneIfTrue(int32(cpu.Reg(instruction.S())) < i))
}

// Set on Less Than Immediate Unsigned: the immediate bit pattern is
// sign-extended but the comparison itself is unsigned
func (cpu *CPU) OpSLTIU(instruction Instruction) {
	cpu.SetReg(instruction.T(), oneIfTrue(cpu.Reg(instruction.S()) < instruction.ImmSE()))
}

// === Logical ===

// Load Upper Immediate: low 16 bits are set to 0
func (cpu *CPU) OpLUI(instruction Instruction) {
	cpu.SetReg(instruction.T(), instruction.Imm()<<16)
}

// Bitwise And
func (cpu *CPU) OpAND(rs, rt, rd uint32) {
	cpu.SetReg(rd, cpu.Reg(rs)&cpu.Reg(rt))
}

// Bitwise And Immediate. Unlike the arithmetic immediates, the logical
// immediates are zero-extended
func (cpu *CPU) OpANDI(instruction Instruction) {
	cpu.SetReg(instruction.T(), cpu.Reg(instruction.S())&instruction.Imm())
}

// Bitwise Or
func (cpu *CPU) OpOR(rs, rt, rd uint32) {
	cpu.SetReg(rd, cpu.Reg(rs)|cpu.Reg(rt))
}

// Bitwise Or Immediate (zero-extended)
func (cpu *CPU) OpORI(instruction Instruction) {
	cpu.SetReg(instruction.T(), cpu.Reg(instruction.S())|instruction.Imm())
}

// Bitwise Exclusive Or
func (cpu *CPU) OpXOR(rs, rt, rd uint32) {
	cpu.SetReg(rd, cpu.Reg(rs)^cpu.Reg(rt))
}

// Bitwise Exclusive Or Immediate (zero-extended)
func (cpu *CPU) OpXORI(instruction Instruction) {
	cpu.SetReg(instruction.T(), cpu.Reg(instruction.S())^instruction.Imm())
}

// Bitwise Not Or
func (cpu *CPU) OpNOR(rs, rt, rd uint32) {
	cpu.SetReg(rd, ^(cpu.Reg(rs) | cpu.Reg(rt)))
}

// === Shifts ===

// Shift Left Logical. SLL with every field zero is the canonical NOP
func (cpu *CPU) OpSLL(rt, rd, shamt uint32) {
	cpu.SetReg(rd, cpu.Reg(rt)<<shamt)
}

// Shift Right Logical (zero-fill)
func (cpu *CPU) OpSRL(rt, rd, shamt uint32) {
	cpu.SetReg(rd, cpu.Reg(rt)>>shamt)
}

// Shift Right Arithmetic (sign-extend)
func (cpu *CPU) OpSRA(rt, rd, shamt uint32) {
	cpu.SetReg(rd, uint32(int32(cpu.Reg(rt))>>shamt))
}

// Shift Left Logical Variable: only the low 5 bits of the shift
// register are used
func (cpu *CPU) OpSLLV(rs, rt, rd uint32) {
	cpu.SetReg(rd, cpu.Reg(rt)<<(cpu.Reg(rs)&0x1f))
}

// Shift Right Logical Variable
func (cpu *CPU) OpSRLV(rs, rt, rd uint32) {
	cpu.SetReg(rd, cpu.Reg(rt)>>(cpu.Reg(rs)&0x1f))
}

// Shift Right Arithmetic Variable
func (cpu *CPU) OpSRAV(rs, rt, rd uint32) {
	cpu.SetReg(rd, uint32(int32(cpu.Reg(rt))>>(cpu.Reg(rs)&0x1f)))
}

// === Multiply/divide ===

// Multiply (signed): the full 64 bit product lands in HI:LO
func (cpu *CPU) OpMULT(rs, rt uint32) {
	v := int64(int32(cpu.Reg(rs))) * int64(int32(cpu.Reg(rt)))
	cpu.Hi = uint32(uint64(v) >> 32)
	cpu.Lo = uint32(uint64(v))
}

// Multiply Unsigned
func (cpu *CPU) OpMULTU(rs, rt uint32) {
	v := uint64(cpu.Reg(rs)) * uint64(cpu.Reg(rt))
	cpu.Hi = uint32(v >> 32)
	cpu.Lo = uint32(v)
}

// Divide (signed): quotient in LO, remainder in HI. Division by zero
// and INT_MIN / -1 don't trap, they produce fixed patterns
func (cpu *CPU) OpDIV(rs, rt uint32) {
	n := int32(cpu.Reg(rs))
	d := int32(cpu.Reg(rt))

	switch {
	case d == 0:
		if n >= 0 {
			cpu.Lo = 0xffffffff
		} else {
			cpu.Lo = 1
		}
		cpu.Hi = uint32(n)
	case uint32(n) == 0x80000000 && d == -1:
		cpu.Lo = 0x80000000
		cpu.Hi = 0
	default:
		cpu.Lo = uint32(n / d)
		cpu.Hi = uint32(n % d)
	}
}

// Divide Unsigned. Division by zero yields LO = 0xffffffff and the
// numerator in HI
func (cpu *CPU) OpDIVU(rs, rt uint32) {
	n := cpu.Reg(rs)
	d := cpu.Reg(rt)

	if d == 0 {
		cpu.Lo = 0xffffffff
		cpu.Hi = n
		return
	}
	cpu.Lo = n / d
	cpu.Hi = n % d
}

// Move From HI
func (cpu *CPU) OpMFHI(rd uint32) {
	cpu.SetReg(rd, cpu.Hi)
}

// Move To HI
func (cpu *CPU) OpMTHI(rs uint32) {
	cpu.Hi = cpu.Reg(rs)
}

// Move From LO
func (cpu *CPU) OpMFLO(rd uint32) {
	cpu.SetReg(rd, cpu.Lo)
}

// Move To LO
func (cpu *CPU) OpMTLO(rs uint32) {
	cpu.Lo = cpu.Reg(rs)
}

// === Branches ===

// Applies a taken branch. PC already points at the delay slot while
// the branch executes, the -4 makes the offset relative to the branch
// instruction itself
func (cpu *CPU) branch(offset uint32) {
	cpu.NextPC = cpu.PC + offset - 4
	cpu.Branch = true
}

// Branch on Equal
func (cpu *CPU) OpBEQ(instruction Instruction) {
	if cpu.Reg(instruction.S()) == cpu.Reg(instruction.T()) {
		cpu.branch(instruction.ImmSE() << 2)
	}
}

// Branch on Not Equal
func (cpu *CPU) OpBNE(instruction Instruction) {
	if cpu.Reg(instruction.S()) != cpu.Reg(instruction.T()) {
		cpu.branch(instruction.ImmSE() << 2)
	}
}

// Branch on Less Than or Equal to Zero (signed)
func (cpu *CPU) OpBLEZ(instruction Instruction) {
	if int32(cpu.Reg(instruction.S())) <= 0 {
		cpu.branch(instruction.ImmSE() << 2)
	}
}

// Branch on Greater Than Zero (signed)
func (cpu *CPU) OpBGTZ(instruction Instruction) {
	if int32(cpu.Reg(instruction.S())) > 0 {
		cpu.branch(instruction.ImmSE() << 2)
	}
}

// The REGIMM group: BLTZ, BGEZ, BLTZAL and BGEZAL share opcode 0x01 and
// are told apart by two bits of the rt field: bit 0 selects
// greater-or-equal vs less-than, bit 4 selects linking. The return
// address is saved even when the branch is not taken
func (cpu *CPU) OpBcondZ(instruction Instruction) {
	s := instruction.S()
	t := instruction.T()

	isBgez := t&0x01 != 0
	isLink := t&0x10 != 0

	test := int32(cpu.Reg(s)) >= 0
	taken := test == isBgez

	if isLink {
		cpu.SetReg(31, cpu.NextPC)
	}
	if taken {
		cpu.branch(instruction.ImmSE() << 2)
	}
}

// === Jumps ===

// Jump: keeps the top 4 bits of the current PC region and splices in
// the 26 bit target shifted left by 2
func (cpu *CPU) OpJ(instruction Instruction) {
	cpu.NextPC = (cpu.PC & 0xf0000000) | (instruction.ImmJump() << 2)
	cpu.Branch = true
}

// Jump And Link: like J, but saves the address following the delay
// slot to r31
func (cpu *CPU) OpJAL(instruction Instruction) {
	cpu.SetReg(31, cpu.NextPC)
	cpu.NextPC = (cpu.PC & 0xf0000000) | (instruction.ImmJump() << 2)
	cpu.Branch = true
}

// Jump Register: jumps to an arbitrary 32 bit address, misalignment is
// not checked here (it would fault at fetch time)
func (cpu *CPU) OpJR(rs uint32) {
	cpu.NextPC = cpu.Reg(rs)
	cpu.Branch = true
}

// Jump And Link Register. The link register is written before the jump
// target register is read, so JALR with rd == rs jumps to the link
// address
func (cpu *CPU) OpJALR(rs, rd uint32) {
	cpu.SetReg(rd, cpu.NextPC)
	cpu.NextPC = cpu.Reg(rs)
	cpu.Branch = true
}

// === Loads/stores ===

// Raises an address error exception, latching the offending address in
// the BadA register
func (cpu *CPU) addressError(addr uint32, cause Exception) {
	cpu.Cop0.Regs[COP0_BADA] = addr
	cpu.Exception(cause)
}

// Load Byte (sign-extended)
func (cpu *CPU) OpLB(bus Bus, instruction Instruction) error {
	addr := cpu.Reg(instruction.S()) + instruction.ImmSE()
	v, err := bus.Load8(addr)
	if err != nil {
		return err
	}
	cpu.SetRegDelayed(instruction.T(), uint32(int8(v)))
	return nil
}

// Load Byte Unsigned
func (cpu *CPU) OpLBU(bus Bus, instruction Instruction) error {
	addr := cpu.Reg(instruction.S()) + instruction.ImmSE()
	v, err := bus.Load8(addr)
	if err != nil {
		return err
	}
	cpu.SetRegDelayed(instruction.T(), uint32(v))
	return nil
}

// Load Halfword (sign-extended)
func (cpu *CPU) OpLH(bus Bus, instruction Instruction) error {
	addr := cpu.Reg(instruction.S()) + instruction.ImmSE()
	if addr%2 != 0 {
		cpu.addressError(addr, EXCEPTION_LOAD_ADDRESS_ERROR)
		return nil
	}
	v, err := bus.Load16(addr)
	if err != nil {
		return err
	}
	cpu.SetRegDelayed(instruction.T(), uint32(int16(v)))
	return nil
}

// Load Halfword Unsigned
func (cpu *CPU) OpLHU(bus Bus, instruction Instruction) error {
	addr := cpu.Reg(instruction.S()) + instruction.ImmSE()
	if addr%2 != 0 {
		cpu.addressError(addr, EXCEPTION_LOAD_ADDRESS_ERROR)
		return nil
	}
	v, err := bus.Load16(addr)
	if err != nil {
		return err
	}
	cpu.SetRegDelayed(instruction.T(), uint32(v))
	return nil
}

// Load Word. The result goes through the load delay slot, it is not
// visible to the next instruction
func (cpu *CPU) OpLW(bus Bus, instruction Instruction) error {
	if cpu.Cop0.CacheIsolated() {
		// the data cache is not emulated, loads are meaningless here
		return nil
	}
	addr := cpu.Reg(instruction.S()) + instruction.ImmSE()
	if addr%4 != 0 {
		cpu.addressError(addr, EXCEPTION_LOAD_ADDRESS_ERROR)
		return nil
	}
	v, err := bus.Load32(addr)
	if err != nil {
		return err
	}
	cpu.SetRegDelayed(instruction.T(), v)
	return nil
}

// Returns the value the target register of an unaligned load currently
// holds: normally the committed value, but LWL/LWR pairs are meant to be
// chained in consecutive instructions, so an in-flight load to the same
// register is merged with instead
func (cpu *CPU) pendingLoadValue(index uint32) uint32 {
	if cpu.HasLoad && cpu.Load.Reg == index {
		return cpu.Load.Value
	}
	return cpu.Reg(index)
}

// Load Word Left: loads the most significant bytes of an unaligned word
func (cpu *CPU) OpLWL(bus Bus, instruction Instruction) error {
	t := instruction.T()
	addr := cpu.Reg(instruction.S()) + instruction.ImmSE()
	cur := cpu.pendingLoadValue(t)

	word, err := bus.Load32(addr &^ 3)
	if err != nil {
		return err
	}

	var v uint32
	switch addr & 3 {
	case 0:
		v = (cur & 0x00ffffff) | (word << 24)
	case 1:
		v = (cur & 0x0000ffff) | (word << 16)
	case 2:
		v = (cur & 0x000000ff) | (word << 8)
	case 3:
		v = word
	}
	cpu.SetRegDelayed(t, v)
	return nil
}

// Load Word Right: loads the least significant bytes of an unaligned word
func (cpu *CPU) OpLWR(bus Bus, instruction Instruction) error {
	t := instruction.T()
	addr := cpu.Reg(instruction.S()) + instruction.ImmSE()
	cur := cpu.pendingLoadValue(t)

	word, err := bus.Load32(addr &^ 3)
	if err != nil {
		return err
	}

	var v uint32
	switch addr & 3 {
	case 0:
		v = word
	case 1:
		v = (cur & 0xff000000) | (word >> 8)
	case 2:
		v = (cur & 0xffff0000) | (word >> 16)
	case 3:
		v = (cur & 0xffffff00) | (word >> 24)
	}
	cpu.SetRegDelayed(t, v)
	return nil
}

// Store Byte
func (cpu *CPU) OpSB(bus Bus, instruction Instruction) error {
	if cpu.Cop0.CacheIsolated() {
		return nil
	}
	addr := cpu.Reg(instruction.S()) + instruction.ImmSE()
	return bus.Store8(addr, byte(cpu.Reg(instruction.T())))
}

// Store Halfword
func (cpu *CPU) OpSH(bus Bus, instruction Instruction) error {
	if cpu.Cop0.CacheIsolated() {
		return nil
	}
	addr := cpu.Reg(instruction.S()) + instruction.ImmSE()
	if addr%2 != 0 {
		cpu.addressError(addr, EXCEPTION_STORE_ADDRESS_ERROR)
		return nil
	}
	return bus.Store16(addr, uint16(cpu.Reg(instruction.T())))
}

// Store Word
func (cpu *CPU) OpSW(bus Bus, instruction Instruction) error {
	if cpu.Cop0.CacheIsolated() {
		return nil
	}
	addr := cpu.Reg(instruction.S()) + instruction.ImmSE()
	if addr%4 != 0 {
		cpu.addressError(addr, EXCEPTION_STORE_ADDRESS_ERROR)
		return nil
	}
	return bus.Store32(addr, cpu.Reg(instruction.T()))
}

// Store Word Left: stores the most significant bytes of an unaligned word
func (cpu *CPU) OpSWL(bus Bus, instruction Instruction) error {
	if cpu.Cop0.CacheIsolated() {
		return nil
	}
	addr := cpu.Reg(instruction.S()) + instruction.ImmSE()
	v := cpu.Reg(instruction.T())
	aligned := addr &^ 3

	cur, err := bus.Load32(aligned)
	if err != nil {
		return err
	}

	var word uint32
	switch addr & 3 {
	case 0:
		word = (cur & 0xffffff00) | (v >> 24)
	case 1:
		word = (cur & 0xffff0000) | (v >> 16)
	case 2:
		word = (cur & 0xff000000) | (v >> 8)
	case 3:
		word = v
	}
	return bus.Store32(aligned, word)
}

// Store Word Right: stores the least significant bytes of an unaligned word
func (cpu *CPU) OpSWR(bus Bus, instruction Instruction) error {
	if cpu.Cop0.CacheIsolated() {
		return nil
	}
	addr := cpu.Reg(instruction.S()) + instruction.ImmSE()
	v := cpu.Reg(instruction.T())
	aligned := addr &^ 3

	cur, err := bus.Load32(aligned)
	if err != nil {
		return err
	}

	var word uint32
	switch addr & 3 {
	case 0:
		word = v
	case 1:
		word = (cur & 0x000000ff) | (v << 8)
	case 2:
		word = (cur & 0x0000ffff) | (v << 16)
	case 3:
		word = (cur & 0x00ffffff) | (v << 24)
	}
	return bus.Store32(aligned, word)
}

// === Coprocessors ===

// Executes a COP0 (system control) instruction, dispatched on the
// coprocessor opcode in the rs field
func (cpu *CPU) executeCop0(instruction Instruction) {
	switch instruction.S() {
	case 0x00: // MFC0
		// coprocessor reads go through the load delay slot
		cpu.SetRegDelayed(instruction.T(), cpu.Cop0.Regs[instruction.D()])
	case 0x04: // MTC0
		cpu.Cop0.Regs[instruction.D()] = cpu.Reg(instruction.T())
	case 0x10: // RFE
		if instruction.Subfunction() != 0x10 {
			cpu.Exception(EXCEPTION_ILLEGAL_INSTRUCTION)
			return
		}
		cpu.Cop0.ReturnFromException()
	default:
		cpu.Exception(EXCEPTION_ILLEGAL_INSTRUCTION)
	}
}

// Executes a COP2 (GTE) instruction. Only the register file moves are
// handled here, command words are forwarded to the GTE
func (cpu *CPU) executeCop2(instruction Instruction) {
	s := instruction.S()
	if s&0x10 != 0 {
		cpu.Gte.Command(uint32(instruction) & 0x1ffffff)
		return
	}

	switch s {
	case 0x00: // MFC2
		cpu.SetRegDelayed(instruction.T(), cpu.Gte.DataReg(instruction.D()))
	case 0x02: // CFC2
		cpu.SetRegDelayed(instruction.T(), cpu.Gte.ControlReg(instruction.D()))
	case 0x04: // MTC2
		cpu.Gte.SetDataReg(instruction.D(), cpu.Reg(instruction.T()))
	case 0x06: // CTC2
		cpu.Gte.SetControlReg(instruction.D(), cpu.Reg(instruction.T()))
	default:
		cpu.Exception(EXCEPTION_ILLEGAL_INSTRUCTION)
	}
}

// Load Word to Coprocessor 2: reads a word straight into the GTE data
// register file
func (cpu *CPU) OpLWC2(bus Bus, instruction Instruction) error {
	addr := cpu.Reg(instruction.S()) + instruction.ImmSE()
	if addr%4 != 0 {
		cpu.addressError(addr, EXCEPTION_LOAD_ADDRESS_ERROR)
		return nil
	}
	v, err := bus.Load32(addr)
	if err != nil {
		return err
	}
	cpu.Gte.SetDataReg(instruction.T(), v)
	return nil
}

// Store Word from Coprocessor 2
func (cpu *CPU) OpSWC2(bus Bus, instruction Instruction) error {
	addr := cpu.Reg(instruction.S()) + instruction.ImmSE()
	if addr%4 != 0 {
		cpu.addressError(addr, EXCEPTION_STORE_ADDRESS_ERROR)
		return nil
	}
	return bus.Store32(addr, cpu.Gte.DataReg(instruction.T()))
}
