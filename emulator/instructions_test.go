package emulator

import "testing"

func causeCode(cpu *CPU) uint32 {
	return (cpu.Cop0.Regs[COP0_CAUSE] >> 2) & 0x1f
}

func TestImmediateExtension(t *testing.T) {
	assert := func(v bool) {
		if !v {
			t.Error("assert failed")
		}
	}

	// addiu sign-extends: $t0 = 0x1000 + (-8)
	cpu, bus := newTestCPU(encodeI(0x09, 8, 8, 0xfff8))
	cpu.SetReg(8, 0x1000)
	step(t, cpu, bus)
	assert(cpu.Reg(8) == 0xff8)

	// ori zero-extends the same bit pattern
	cpu, bus = newTestCPU(encodeI(0x0d, 0, 8, 0xfff8))
	step(t, cpu, bus)
	assert(cpu.Reg(8) == 0xfff8)

	// andi zero-extends: the high half is always cleared
	cpu, bus = newTestCPU(encodeI(0x0c, 8, 9, 0xffff))
	cpu.SetReg(8, 0xdeadbeef)
	step(t, cpu, bus)
	assert(cpu.Reg(9) == 0xbeef)

	// xori zero-extends
	cpu, bus = newTestCPU(encodeI(0x0e, 8, 9, 0xffff))
	cpu.SetReg(8, 0xffff0000)
	step(t, cpu, bus)
	assert(cpu.Reg(9) == 0xffffffff)
}

func TestAddiOverflow(t *testing.T) {
	cpu, bus := newTestCPU(encodeI(0x08, 8, 9, 1))
	cpu.SetReg(8, 0x7fffffff)
	cpu.SetReg(9, 0x55555555)

	step(t, cpu, bus)
	if cpu.Reg(9) != 0x55555555 {
		t.Error("overflowing addi wrote its destination")
	}
	if causeCode(cpu) != uint32(EXCEPTION_OVERFLOW) {
		t.Errorf("expected overflow cause, got 0x%x", causeCode(cpu))
	}

	// addiu with the same operands wraps silently
	cpu, bus = newTestCPU(encodeI(0x09, 8, 9, 1))
	cpu.SetReg(8, 0x7fffffff)
	step(t, cpu, bus)
	if cpu.Reg(9) != 0x80000000 {
		t.Errorf("expected 0x80000000, got 0x%x", cpu.Reg(9))
	}
}

func TestSubOverflow(t *testing.T) {
	cpu, bus := newTestCPU(encodeR(0x22, 8, 9, 10, 0))
	cpu.SetReg(8, 0x80000000)
	cpu.SetReg(9, 1)
	cpu.SetReg(10, 7)

	step(t, cpu, bus)
	if cpu.Reg(10) != 7 {
		t.Error("overflowing sub wrote its destination")
	}
	if causeCode(cpu) != uint32(EXCEPTION_OVERFLOW) {
		t.Errorf("expected overflow cause, got 0x%x", causeCode(cpu))
	}

	cpu, bus = newTestCPU(encodeR(0x23, 8, 9, 10, 0))
	cpu.SetReg(8, 0x80000000)
	cpu.SetReg(9, 1)
	step(t, cpu, bus)
	if cpu.Reg(10) != 0x7fffffff {
		t.Errorf("subu: expected 0x7fffffff, got 0x%x", cpu.Reg(10))
	}
}

func TestSetOnLessThan(t *testing.T) {
	assert := func(v bool) {
		if !v {
			t.Error("assert failed")
		}
	}

	// slt is signed: -1 < 1
	cpu, bus := newTestCPU(encodeR(0x2a, 8, 9, 10, 0))
	cpu.SetReg(8, 0xffffffff)
	cpu.SetReg(9, 1)
	step(t, cpu, bus)
	assert(cpu.Reg(10) == 1)

	// sltu is unsigned: 0xffffffff > 1
	cpu, bus = newTestCPU(encodeR(0x2b, 8, 9, 10, 0))
	cpu.SetReg(8, 0xffffffff)
	cpu.SetReg(9, 1)
	step(t, cpu, bus)
	assert(cpu.Reg(10) == 0)

	// sltiu compares against the sign-extended immediate, unsigned
	cpu, bus = newTestCPU(encodeI(0x0b, 8, 9, 0xffff))
	cpu.SetReg(8, 0x10)
	step(t, cpu, bus)
	assert(cpu.Reg(9) == 1) // 0x10 < 0xffffffff

	// slti is signed
	cpu, bus = newTestCPU(encodeI(0x0a, 8, 9, 0xffff))
	cpu.SetReg(8, 0x10)
	step(t, cpu, bus)
	assert(cpu.Reg(9) == 0) // 0x10 > -1
}

func TestShifts(t *testing.T) {
	assert := func(v bool) {
		if !v {
			t.Error("assert failed")
		}
	}

	// sra sign-extends
	cpu, bus := newTestCPU(encodeR(0x03, 0, 8, 9, 4))
	cpu.SetReg(8, 0x80000000)
	step(t, cpu, bus)
	assert(cpu.Reg(9) == 0xf8000000)

	// srl zero-fills
	cpu, bus = newTestCPU(encodeR(0x02, 0, 8, 9, 4))
	cpu.SetReg(8, 0x80000000)
	step(t, cpu, bus)
	assert(cpu.Reg(9) == 0x08000000)

	// variable shifts only use the low 5 bits of the count
	cpu, bus = newTestCPU(encodeR(0x04, 10, 8, 9, 0))
	cpu.SetReg(8, 1)
	cpu.SetReg(10, 33)
	step(t, cpu, bus)
	assert(cpu.Reg(9) == 2)

	cpu, bus = newTestCPU(encodeR(0x06, 10, 8, 9, 0))
	cpu.SetReg(8, 0x80000000)
	cpu.SetReg(10, 0xffffffe1) // &0x1f == 1
	step(t, cpu, bus)
	assert(cpu.Reg(9) == 0x40000000)
}

func TestLui(t *testing.T) {
	cpu, bus := newTestCPU(encodeI(0x0f, 0, 8, 0x1f80))
	step(t, cpu, bus)
	if cpu.Reg(8) != 0x1f800000 {
		t.Errorf("expected 0x1f800000, got 0x%x", cpu.Reg(8))
	}
}

func TestLogicalOps(t *testing.T) {
	assert := func(v bool) {
		if !v {
			t.Error("assert failed")
		}
	}

	cpu, bus := newTestCPU(
		encodeR(0x24, 8, 9, 10, 0), // and
		encodeR(0x25, 8, 9, 11, 0), // or
		encodeR(0x26, 8, 9, 12, 0), // xor
		encodeR(0x27, 8, 9, 13, 0), // nor
	)
	cpu.SetReg(8, 0xff00ff00)
	cpu.SetReg(9, 0x0ff00ff0)
	for i := 0; i < 4; i++ {
		step(t, cpu, bus)
	}
	assert(cpu.Reg(10) == 0x0f000f00)
	assert(cpu.Reg(11) == 0xfff0fff0)
	assert(cpu.Reg(12) == 0xf0f0f0f0)
	assert(cpu.Reg(13) == 0x000f000f)
}

func TestMult(t *testing.T) {
	assert := func(v bool) {
		if !v {
			t.Error("assert failed")
		}
	}

	// mult is signed: -2 * 3 = -6, sign-extended across HI:LO
	cpu, bus := newTestCPU(encodeR(0x18, 8, 9, 0, 0))
	cpu.SetReg(8, 0xfffffffe)
	cpu.SetReg(9, 3)
	step(t, cpu, bus)
	assert(cpu.Lo == 0xfffffffa)
	assert(cpu.Hi == 0xffffffff)

	// multu treats the same operands as huge unsigned values
	cpu, bus = newTestCPU(encodeR(0x19, 8, 9, 0, 0))
	cpu.SetReg(8, 0xfffffffe)
	cpu.SetReg(9, 3)
	step(t, cpu, bus)
	assert(cpu.Lo == 0xfffffffa)
	assert(cpu.Hi == 0x00000002)
}

func TestDivEdgeCases(t *testing.T) {
	assert := func(v bool) {
		if !v {
			t.Error("assert failed")
		}
	}

	div := func(n, d uint32) (uint32, uint32) {
		cpu, bus := newTestCPU(encodeR(0x1a, 8, 9, 0, 0))
		cpu.SetReg(8, n)
		cpu.SetReg(9, d)
		step(t, cpu, bus)
		return cpu.Lo, cpu.Hi
	}

	lo, hi := div(7, 2)
	assert(lo == 3 && hi == 1)

	lo, hi = div(0xfffffff9, 2) // -7 / 2
	assert(lo == 0xfffffffd && hi == 0xffffffff)

	// division by zero doesn't trap: the results follow fixed rules
	lo, hi = div(5, 0)
	assert(lo == 0xffffffff && hi == 5)

	lo, hi = div(0xfffffffb, 0) // negative numerator
	assert(lo == 1 && hi == 0xfffffffb)

	// INT_MIN / -1 can't be represented
	lo, hi = div(0x80000000, 0xffffffff)
	assert(lo == 0x80000000 && hi == 0)
}

func TestDivuEdgeCases(t *testing.T) {
	assert := func(v bool) {
		if !v {
			t.Error("assert failed")
		}
	}

	divu := func(n, d uint32) (uint32, uint32) {
		cpu, bus := newTestCPU(encodeR(0x1b, 8, 9, 0, 0))
		cpu.SetReg(8, n)
		cpu.SetReg(9, d)
		step(t, cpu, bus)
		return cpu.Lo, cpu.Hi
	}

	lo, hi := divu(7, 2)
	assert(lo == 3 && hi == 1)

	lo, hi = divu(0xffffffff, 0x10000)
	assert(lo == 0xffff && hi == 0xffff)

	lo, hi = divu(5, 0)
	assert(lo == 0xffffffff && hi == 5)
}

func TestHiLoMoves(t *testing.T) {
	assert := func(v bool) {
		if !v {
			t.Error("assert failed")
		}
	}

	cpu, bus := newTestCPU(
		encodeR(0x11, 8, 0, 0, 0), // mthi $t0
		encodeR(0x13, 9, 0, 0, 0), // mtlo $t1
		encodeR(0x10, 0, 0, 10, 0), // mfhi $t2
		encodeR(0x12, 0, 0, 11, 0), // mflo $t3
	)
	cpu.SetReg(8, 0x11111111)
	cpu.SetReg(9, 0x22222222)
	for i := 0; i < 4; i++ {
		step(t, cpu, bus)
	}
	assert(cpu.Reg(10) == 0x11111111)
	assert(cpu.Reg(11) == 0x22222222)
}

func TestBcondZVariants(t *testing.T) {
	assert := func(v bool) {
		if !v {
			t.Error("assert failed")
		}
	}

	run := func(rt, rsVal uint32) *CPU {
		cpu, bus := newTestCPU(encodeI(0x01, 8, rt, 4))
		cpu.SetReg(8, rsVal)
		step(t, cpu, bus)
		return cpu
	}

	// bltz taken on a negative value
	cpu := run(0x00, 0xffffffff)
	assert(cpu.NextPC == RESET_PC+0x10)

	// bltz not taken on zero
	cpu = run(0x00, 0)
	assert(cpu.NextPC == RESET_PC+8)

	// bgez taken on zero
	cpu = run(0x01, 0)
	assert(cpu.NextPC == RESET_PC+0x10)

	// bltzal links even when the branch is not taken
	cpu = run(0x10, 0)
	assert(cpu.NextPC == RESET_PC+8)
	assert(cpu.Reg(31) == RESET_PC+8)

	// bgezal taken, links too
	cpu = run(0x11, 5)
	assert(cpu.NextPC == RESET_PC+0x10)
	assert(cpu.Reg(31) == RESET_PC+8)
}

// The branch test reads the register before the link value is
// written: bgezal with $ra as its source uses the old $ra
func TestBcondZLinkAfterTest(t *testing.T) {
	cpu, bus := newTestCPU(encodeI(0x01, 31, 0x11, 4)) // bgezal $ra, +4
	cpu.SetReg(31, 0x80000000)                         // negative: not taken

	step(t, cpu, bus)
	if cpu.NextPC != RESET_PC+8 {
		t.Error("branch decision used the freshly written link value")
	}
	if cpu.Reg(31) != RESET_PC+8 {
		t.Error("untaken bgezal did not link")
	}
}

func TestJumpRegister(t *testing.T) {
	cpu, bus := newTestCPU(encodeR(0x08, 8, 0, 0, 0))
	cpu.SetReg(8, 0x80002000)

	step(t, cpu, bus)
	if cpu.NextPC != 0x80002000 {
		t.Errorf("expected jr target 0x80002000, got 0x%x", cpu.NextPC)
	}
}

func TestLoadSignExtension(t *testing.T) {
	assert := func(v bool) {
		if !v {
			t.Error("assert failed")
		}
	}

	load := func(op, addr uint32) *CPU {
		cpu, bus := newTestCPU(
			encodeI(op, 0, 8, addr),
			0, // nop so the load commits
		)
		bus.mem[0x100] = 0x8001f080
		step(t, cpu, bus)
		step(t, cpu, bus)
		return cpu
	}

	// lb sign-extends the byte
	assert(load(0x20, 0x100).Reg(8) == 0xffffff80)
	// lbu zero-extends
	assert(load(0x24, 0x100).Reg(8) == 0x80)
	// lh sign-extends the halfword
	assert(load(0x21, 0x100).Reg(8) == 0xfffff080)
	assert(load(0x21, 0x102).Reg(8) == 0xffff8001)
	// lhu zero-extends
	assert(load(0x25, 0x102).Reg(8) == 0x8001)
	// byte addressing is little endian
	assert(load(0x24, 0x103).Reg(8) == 0x80)
	assert(load(0x24, 0x101).Reg(8) == 0xf0)
}

func TestLoadAlignment(t *testing.T) {
	assert := func(v bool) {
		if !v {
			t.Error("assert failed")
		}
	}

	// lw from an unaligned address: address error with the address
	// latched in BadA
	cpu, bus := newTestCPU(encodeI(0x23, 0, 8, 0x102))
	step(t, cpu, bus)
	assert(causeCode(cpu) == uint32(EXCEPTION_LOAD_ADDRESS_ERROR))
	assert(cpu.Cop0.Regs[COP0_BADA] == 0x102)
	assert(!cpu.HasLoad)

	// lh from an odd address
	cpu, bus = newTestCPU(encodeI(0x21, 0, 8, 0x101))
	step(t, cpu, bus)
	assert(causeCode(cpu) == uint32(EXCEPTION_LOAD_ADDRESS_ERROR))
	assert(cpu.Cop0.Regs[COP0_BADA] == 0x101)
}

func TestStoreAlignment(t *testing.T) {
	assert := func(v bool) {
		if !v {
			t.Error("assert failed")
		}
	}

	cpu, bus := newTestCPU(encodeI(0x2b, 0, 8, 0x102)) // sw
	cpu.SetReg(8, 0xdeadbeef)
	step(t, cpu, bus)
	assert(causeCode(cpu) == uint32(EXCEPTION_STORE_ADDRESS_ERROR))
	assert(cpu.Cop0.Regs[COP0_BADA] == 0x102)
	assert(bus.mem[0x100] == 0)

	cpu, bus = newTestCPU(encodeI(0x29, 0, 8, 0x101)) // sh
	step(t, cpu, bus)
	assert(causeCode(cpu) == uint32(EXCEPTION_STORE_ADDRESS_ERROR))
	assert(cpu.Cop0.Regs[COP0_BADA] == 0x101)
}

func TestStores(t *testing.T) {
	assert := func(v bool) {
		if !v {
			t.Error("assert failed")
		}
	}

	cpu, bus := newTestCPU(
		encodeI(0x2b, 0, 8, 0x100), // sw
		encodeI(0x29, 0, 9, 0x104), // sh
		encodeI(0x28, 0, 10, 0x106), // sb
	)
	cpu.SetReg(8, 0xdeadbeef)
	cpu.SetReg(9, 0x1234)
	cpu.SetReg(10, 0xab)
	for i := 0; i < 3; i++ {
		step(t, cpu, bus)
	}
	assert(bus.mem[0x100] == 0xdeadbeef)
	assert(bus.mem[0x104] == 0x00ab1234)
}

func TestIsolatedCacheDiscardsAccesses(t *testing.T) {
	assert := func(v bool) {
		if !v {
			t.Error("assert failed")
		}
	}

	cpu, bus := newTestCPU(
		encodeI(0x2b, 0, 8, 0x100), // sw, discarded
		encodeI(0x28, 0, 8, 0x104), // sb, discarded
		encodeI(0x23, 0, 9, 0x100), // lw, ignored
	)
	cpu.Cop0.Regs[COP0_SR] |= 0x10000
	cpu.SetReg(8, 0xdeadbeef)
	bus.mem[0x100] = 0x11111111

	for i := 0; i < 3; i++ {
		step(t, cpu, bus)
	}
	assert(bus.mem[0x100] == 0x11111111)
	assert(bus.mem[0x104] == 0)
	assert(!cpu.HasLoad)
	assert(cpu.Reg(9) == 0)
}

func TestLWLAndLWR(t *testing.T) {
	assert := func(v bool) {
		if !v {
			t.Error("assert failed")
		}
	}

	// memory: bytes 0x11 0x22 0x33 0x44 at 0x100, 0x55 0x66 0x77 0x88
	// at 0x104 (little endian words)
	lwl := func(addr uint32, cur uint32) uint32 {
		cpu, bus := newTestCPU(
			encodeI(0x22, 0, 8, addr),
			0,
		)
		bus.mem[0x100] = 0x44332211
		bus.mem[0x104] = 0x88776655
		cpu.SetReg(8, cur)
		step(t, cpu, bus)
		step(t, cpu, bus)
		return cpu.Reg(8)
	}
	lwr := func(addr uint32, cur uint32) uint32 {
		cpu, bus := newTestCPU(
			encodeI(0x26, 0, 8, addr),
			0,
		)
		bus.mem[0x100] = 0x44332211
		bus.mem[0x104] = 0x88776655
		cpu.SetReg(8, cur)
		step(t, cpu, bus)
		step(t, cpu, bus)
		return cpu.Reg(8)
	}

	// lwl pulls the word's low bytes into the register's high bytes
	assert(lwl(0x100, 0xaabbccdd) == 0x11bbccdd)
	assert(lwl(0x101, 0xaabbccdd) == 0x2211ccdd)
	assert(lwl(0x102, 0xaabbccdd) == 0x332211dd)
	assert(lwl(0x103, 0xaabbccdd) == 0x44332211)

	// lwr pulls the word's high bytes into the register's low bytes
	assert(lwr(0x100, 0xaabbccdd) == 0x44332211)
	assert(lwr(0x101, 0xaabbccdd) == 0xaa443322)
	assert(lwr(0x102, 0xaabbccdd) == 0xaabb4433)
	assert(lwr(0x103, 0xaabbccdd) == 0xaabbcc44)
}

// The canonical unaligned load: lwl/lwr pair targeting the same
// register. The second load must merge with the in-flight value of the
// first, not with the stale register
func TestLWLLWRPairMerges(t *testing.T) {
	cpu, bus := newTestCPU(
		encodeI(0x22, 0, 8, 0x104), // lwl $t0, 0x104($0)
		encodeI(0x26, 0, 8, 0x101), // lwr $t0, 0x101($0)
		0,
	)
	bus.mem[0x100] = 0x44332211
	bus.mem[0x104] = 0x88776655
	cpu.SetReg(8, 0xaabbccdd)

	step(t, cpu, bus) // lwl: pending (8, 0x55bbccdd)? merged below
	step(t, cpu, bus) // lwr merges with the pending value
	step(t, cpu, bus) // nop commits

	// unaligned word at 0x101: bytes 0x22 0x33 0x44 0x55 -> 0x55443322
	if cpu.Reg(8) != 0x55443322 {
		t.Errorf("expected 0x55443322, got 0x%x", cpu.Reg(8))
	}
}

func TestSWLAndSWR(t *testing.T) {
	assert := func(v bool) {
		if !v {
			t.Error("assert failed")
		}
	}

	swl := func(addr uint32) uint32 {
		cpu, bus := newTestCPU(encodeI(0x2a, 0, 8, addr))
		bus.mem[addr&^3] = 0x44332211
		cpu.SetReg(8, 0xaabbccdd)
		step(t, cpu, bus)
		return bus.mem[addr&^3]
	}
	swr := func(addr uint32) uint32 {
		cpu, bus := newTestCPU(encodeI(0x2e, 0, 8, addr))
		bus.mem[addr&^3] = 0x44332211
		cpu.SetReg(8, 0xaabbccdd)
		step(t, cpu, bus)
		return bus.mem[addr&^3]
	}

	assert(swl(0x100) == 0x443322aa)
	assert(swl(0x101) == 0x4433aabb)
	assert(swl(0x102) == 0x44aabbcc)
	assert(swl(0x103) == 0xaabbccdd)

	assert(swr(0x100) == 0xaabbccdd)
	assert(swr(0x101) == 0xbbccdd11)
	assert(swr(0x102) == 0xccdd2211)
	assert(swr(0x103) == 0xdd332211)
}

func TestMFC0IsDelayed(t *testing.T) {
	assert := func(v bool) {
		if !v {
			t.Error("assert failed")
		}
	}

	// mfc0 $t0, $cause; nop
	cpu, bus := newTestCPU(
		0x10<<26|0x00<<21|8<<16|COP0_CAUSE<<11,
		0,
	)
	cpu.Cop0.Regs[COP0_CAUSE] = 0x12345678

	step(t, cpu, bus)
	assert(cpu.Reg(8) == 0)
	assert(cpu.HasLoad)

	step(t, cpu, bus)
	assert(cpu.Reg(8) == 0x12345678)
}

func TestMTC0(t *testing.T) {
	// mtc0 $t0, $sr
	cpu, bus := newTestCPU(0x10<<26 | 0x04<<21 | 8<<16 | COP0_SR<<11)
	cpu.SetReg(8, 0x10010000)

	step(t, cpu, bus)
	if cpu.Cop0.Regs[COP0_SR] != 0x10010000 {
		t.Errorf("expected sr 0x10010000, got 0x%x", cpu.Cop0.Regs[COP0_SR])
	}
}

func TestRFE(t *testing.T) {
	// syscall; <handler> rfe
	cpu, bus := newTestCPU(encodeR(0x0c, 0, 0, 0, 0))
	cpu.Cop0.Regs[COP0_SR] |= 0x01 // IEc

	step(t, cpu, bus)
	if cpu.Cop0.Regs[COP0_SR]&0x3f != 0x04 {
		t.Fatalf("mode stack not pushed, sr = 0x%x", cpu.Cop0.Regs[COP0_SR])
	}

	// plant rfe at the handler
	bus.mem[EXCEPTION_HANDLER_BOOT] = 0x10<<26 | 0x10<<21 | 0x10
	step(t, cpu, bus)
	if cpu.Cop0.Regs[COP0_SR]&0x3f != 0x01 {
		t.Errorf("rfe did not pop the mode stack, sr = 0x%x", cpu.Cop0.Regs[COP0_SR])
	}
}

func TestIllegalInstruction(t *testing.T) {
	cpu, bus := newTestCPU(0x3f << 26)

	step(t, cpu, bus)
	if causeCode(cpu) != uint32(EXCEPTION_ILLEGAL_INSTRUCTION) {
		t.Errorf("expected illegal instruction cause, got 0x%x", causeCode(cpu))
	}
	if cpu.PC != EXCEPTION_HANDLER_BOOT {
		t.Errorf("expected handler pc, got 0x%x", cpu.PC)
	}
}

func TestMissingCoprocessors(t *testing.T) {
	assert := func(v bool) {
		if !v {
			t.Error("assert failed")
		}
	}

	// cop1 opcode
	cpu, bus := newTestCPU(0x11 << 26)
	step(t, cpu, bus)
	assert(causeCode(cpu) == uint32(EXCEPTION_COPROCESSOR_ERROR))

	// lwc0
	cpu, bus = newTestCPU(encodeI(0x30, 0, 8, 0x100))
	step(t, cpu, bus)
	assert(causeCode(cpu) == uint32(EXCEPTION_COPROCESSOR_ERROR))

	// swc3
	cpu, bus = newTestCPU(encodeI(0x3b, 0, 8, 0x100))
	step(t, cpu, bus)
	assert(causeCode(cpu) == uint32(EXCEPTION_COPROCESSOR_ERROR))
}

func TestBreak(t *testing.T) {
	cpu, bus := newTestCPU(encodeR(0x0d, 0, 0, 0, 0))

	step(t, cpu, bus)
	if causeCode(cpu) != uint32(EXCEPTION_BREAK) {
		t.Errorf("expected break cause, got 0x%x", causeCode(cpu))
	}
}

func TestGTERegisterMoves(t *testing.T) {
	assert := func(v bool) {
		if !v {
			t.Error("assert failed")
		}
	}

	cpu, bus := newTestCPU(
		0x12<<26|0x04<<21|8<<16|5<<11, // mtc2 $t0, $cop2_5
		0x12<<26|0x06<<21|9<<16|7<<11, // ctc2 $t1, $cop2_7
		0x12<<26|0x00<<21|10<<16|5<<11, // mfc2 $t2, $cop2_5
		0x12<<26|0x02<<21|11<<16|7<<11, // cfc2 $t3, $cop2_7
		0,
	)
	cpu.SetReg(8, 0x11112222)
	cpu.SetReg(9, 0x33334444)

	for i := 0; i < 5; i++ {
		step(t, cpu, bus)
	}
	assert(cpu.Gte.DataReg(5) == 0x11112222)
	assert(cpu.Gte.ControlReg(7) == 0x33334444)
	// coprocessor reads go through the load delay slot
	assert(cpu.Reg(10) == 0x11112222)
	assert(cpu.Reg(11) == 0x33334444)
}

func TestGTECommandLatch(t *testing.T) {
	// a cop2 command word (bit 25 of the coprocessor opcode set)
	cpu, bus := newTestCPU(0x12<<26 | 0x10<<21 | 0x0180001)

	step(t, cpu, bus)
	if cpu.Gte.LastCommand != 0x0180001 {
		t.Errorf("unexpected latched command 0x%x", cpu.Gte.LastCommand)
	}
}

func TestLWC2AndSWC2(t *testing.T) {
	assert := func(v bool) {
		if !v {
			t.Error("assert failed")
		}
	}

	cpu, bus := newTestCPU(
		encodeI(0x32, 0, 3, 0x100), // lwc2 $cop2_3, 0x100($0)
		encodeI(0x3a, 0, 3, 0x104), // swc2 $cop2_3, 0x104($0)
	)
	bus.mem[0x100] = 0xcafebabe

	step(t, cpu, bus)
	assert(cpu.Gte.DataReg(3) == 0xcafebabe)

	step(t, cpu, bus)
	assert(bus.mem[0x104] == 0xcafebabe)

	// unaligned lwc2 is an address error
	cpu, bus = newTestCPU(encodeI(0x32, 0, 3, 0x102))
	step(t, cpu, bus)
	assert(causeCode(cpu) == uint32(EXCEPTION_LOAD_ADDRESS_ERROR))
	assert(cpu.Cop0.Regs[COP0_BADA] == 0x102)
}
