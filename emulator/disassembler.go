package emulator

import "fmt"

// Returns the assembly mnemonic of an instruction with its operands,
// e.g. "addiu $sp, $sp, 0xffffffe8". Unknown encodings disassemble to
// "!UNKNOWN!" instead of failing
func Disassemble(instruction Instruction) string {
	switch instruction.Function() {
	case 0x00:
		return disasmSpecial(instruction)
	case 0x01:
		return disasmBcondZ(instruction)
	case 0x02:
		return disasmJump("j", instruction)
	case 0x03:
		return disasmJump("jal", instruction)
	case 0x04:
		return disasmBranch2("beq", instruction)
	case 0x05:
		return disasmBranch2("bne", instruction)
	case 0x06:
		return disasmBranch1("blez", instruction)
	case 0x07:
		return disasmBranch1("bgtz", instruction)
	case 0x08:
		return disasmImmSE("addi", instruction)
	case 0x09:
		return disasmImmSE("addiu", instruction)
	case 0x0a:
		return disasmImmSE("slti", instruction)
	case 0x0b:
		return disasmImmSE("sltiu", instruction)
	case 0x0c:
		return disasmImm("andi", instruction)
	case 0x0d:
		return disasmImm("ori", instruction)
	case 0x0e:
		return disasmImm("xori", instruction)
	case 0x0f:
		return fmt.Sprintf("lui $%s, 0x%x",
			GetRegisterName(instruction.T()), instruction.Imm())
	case 0x10:
		return disasmCop0(instruction)
	case 0x12:
		return disasmCop2(instruction)
	case 0x11, 0x13:
		return fmt.Sprintf("!INVALID cop 0x%08x!", uint32(instruction))
	case 0x20:
		return disasmMem("lb", instruction)
	case 0x21:
		return disasmMem("lh", instruction)
	case 0x22:
		return disasmMem("lwl", instruction)
	case 0x23:
		return disasmMem("lw", instruction)
	case 0x24:
		return disasmMem("lbu", instruction)
	case 0x25:
		return disasmMem("lhu", instruction)
	case 0x26:
		return disasmMem("lwr", instruction)
	case 0x28:
		return disasmMem("sb", instruction)
	case 0x29:
		return disasmMem("sh", instruction)
	case 0x2a:
		return disasmMem("swl", instruction)
	case 0x2b:
		return disasmMem("sw", instruction)
	case 0x2e:
		return disasmMem("swr", instruction)
	case 0x32:
		return disasmMemCop2("lwc2", instruction)
	case 0x3a:
		return disasmMemCop2("swc2", instruction)
	}
	return "!UNKNOWN!"
}

func disasmSpecial(instruction Instruction) string {
	rs, rt, rd, shamt, funct := DecodeRType(instruction)
	s := GetRegisterName(rs)
	t := GetRegisterName(rt)
	d := GetRegisterName(rd)

	switch funct {
	case 0x00:
		if instruction == 0 {
			return "nop"
		}
		return fmt.Sprintf("sll $%s, $%s, %d", d, t, shamt)
	case 0x02:
		return fmt.Sprintf("srl $%s, $%s, %d", d, t, shamt)
	case 0x03:
		return fmt.Sprintf("sra $%s, $%s, %d", d, t, shamt)
	case 0x04:
		return fmt.Sprintf("sllv $%s, $%s, $%s", d, t, s)
	case 0x06:
		return fmt.Sprintf("srlv $%s, $%s, $%s", d, t, s)
	case 0x07:
		return fmt.Sprintf("srav $%s, $%s, $%s", d, t, s)
	case 0x08:
		return fmt.Sprintf("jr $%s", s)
	case 0x09:
		return fmt.Sprintf("jalr $%s, $%s", d, s)
	case 0x0c:
		return "syscall"
	case 0x0d:
		return "break"
	case 0x10:
		return fmt.Sprintf("mfhi $%s", d)
	case 0x11:
		return fmt.Sprintf("mthi $%s", s)
	case 0x12:
		return fmt.Sprintf("mflo $%s", d)
	case 0x13:
		return fmt.Sprintf("mtlo $%s", s)
	case 0x18:
		return fmt.Sprintf("mult $%s, $%s", s, t)
	case 0x19:
		return fmt.Sprintf("multu $%s, $%s", s, t)
	case 0x1a:
		return fmt.Sprintf("div $%s, $%s", s, t)
	case 0x1b:
		return fmt.Sprintf("divu $%s, $%s", s, t)
	case 0x20:
		return fmt.Sprintf("add $%s, $%s, $%s", d, s, t)
	case 0x21:
		return fmt.Sprintf("addu $%s, $%s, $%s", d, s, t)
	case 0x22:
		return fmt.Sprintf("sub $%s, $%s, $%s", d, s, t)
	case 0x23:
		return fmt.Sprintf("subu $%s, $%s, $%s", d, s, t)
	case 0x24:
		return fmt.Sprintf("and $%s, $%s, $%s", d, s, t)
	case 0x25:
		return fmt.Sprintf("or $%s, $%s, $%s", d, s, t)
	case 0x26:
		return fmt.Sprintf("xor $%s, $%s, $%s", d, s, t)
	case 0x27:
		return fmt.Sprintf("nor $%s, $%s, $%s", d, s, t)
	case 0x2a:
		return fmt.Sprintf("slt $%s, $%s, $%s", d, s, t)
	case 0x2b:
		return fmt.Sprintf("sltu $%s, $%s, $%s", d, s, t)
	}
	return "!UNKNOWN!"
}

func disasmBcondZ(instruction Instruction) string {
	t := instruction.T()

	op := "bltz"
	if t&0x01 != 0 {
		op = "bgez"
	}
	if t&0x10 != 0 {
		op += "al"
	}
	return fmt.Sprintf("%s $%s, %d", op,
		GetRegisterName(instruction.S()), int32(instruction.ImmSE())<<2)
}

func disasmJump(op string, instruction Instruction) string {
	return fmt.Sprintf("%s (PC & 0xf0000000) | 0x%x", op, instruction.ImmJump()<<2)
}

func disasmBranch2(op string, instruction Instruction) string {
	return fmt.Sprintf("%s $%s, $%s, %d", op,
		GetRegisterName(instruction.S()),
		GetRegisterName(instruction.T()),
		int32(instruction.ImmSE())<<2)
}

func disasmBranch1(op string, instruction Instruction) string {
	return fmt.Sprintf("%s $%s, %d", op,
		GetRegisterName(instruction.S()), int32(instruction.ImmSE())<<2)
}

func disasmImmSE(op string, instruction Instruction) string {
	return fmt.Sprintf("%s $%s, $%s, 0x%x", op,
		GetRegisterName(instruction.T()),
		GetRegisterName(instruction.S()),
		instruction.ImmSE())
}

func disasmImm(op string, instruction Instruction) string {
	return fmt.Sprintf("%s $%s, $%s, 0x%x", op,
		GetRegisterName(instruction.T()),
		GetRegisterName(instruction.S()),
		instruction.Imm())
}

func disasmMem(op string, instruction Instruction) string {
	return fmt.Sprintf("%s $%s, 0x%x($%s)", op,
		GetRegisterName(instruction.T()),
		instruction.ImmSE(),
		GetRegisterName(instruction.S()))
}

func disasmMemCop2(op string, instruction Instruction) string {
	return fmt.Sprintf("%s $cop2_%d, 0x%x($%s)", op,
		instruction.T(),
		instruction.ImmSE(),
		GetRegisterName(instruction.S()))
}

func disasmCop0(instruction Instruction) string {
	switch instruction.S() {
	case 0x00:
		return fmt.Sprintf("mfc0 $%s, $cop0_%d",
			GetRegisterName(instruction.T()), instruction.D())
	case 0x04:
		return fmt.Sprintf("mtc0 $%s, $cop0_%d",
			GetRegisterName(instruction.T()), instruction.D())
	case 0x10:
		if instruction.Subfunction() == 0x10 {
			return "rfe"
		}
	}
	return "!UNKNOWN cop0!"
}

func disasmCop2(instruction Instruction) string {
	s := instruction.S()
	if s&0x10 != 0 {
		return fmt.Sprintf("cop2 0x%07x", uint32(instruction)&0x1ffffff)
	}

	switch s {
	case 0x00:
		return fmt.Sprintf("mfc2 $%s, $cop2_%d",
			GetRegisterName(instruction.T()), instruction.D())
	case 0x02:
		return fmt.Sprintf("cfc2 $%s, $cop2_%d",
			GetRegisterName(instruction.T()), instruction.D())
	case 0x04:
		return fmt.Sprintf("mtc2 $%s, $cop2_%d",
			GetRegisterName(instruction.T()), instruction.D())
	case 0x06:
		return fmt.Sprintf("ctc2 $%s, $cop2_%d",
			GetRegisterName(instruction.T()), instruction.D())
	}
	return "!UNKNOWN cop2!"
}
