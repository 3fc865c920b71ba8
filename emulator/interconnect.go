package emulator

import "fmt"

// A word waiting to be pushed into the instruction cache after a write
// to low memory
type CachePrefill struct {
	Addr uint32 // CPU address of the cache line word
	Word uint32 // Instruction word to prefill
}

// Global interconnect. It stores all of the peripherals and routes CPU
// accesses to them. Writes that can make the instruction cache stale
// are recorded in the pending queues, the driver drains them between
// CPU steps
type Interconnect struct {
	Bios       *BIOS       // Basic input/output memory
	Ram        *RAM        // Main RAM
	ScratchPad *ScratchPad // 1KB of fast RAM
	Irq        *IrqState   // Interrupt status and mask

	CacheControl uint32    // Latched cache control register
	MemControl   [9]uint32 // Memory latency and expansion mapping registers
	RamSize      uint32    // Latched RAM_SIZE register

	// peripherals out of scope for the CPU core, their registers are
	// latched so the BIOS can poke them without faulting
	timerRegs [24]uint16
	spuRegs   [320]uint16

	// instruction cache coherency traffic, in drain order
	PendingInvalidates      []uint32
	PendingRangeInvalidates [][2]uint32
	PendingPrefills         []CachePrefill
}

// Creates a new interconnect instance
func NewInterconnect(bios *BIOS) *Interconnect {
	inter := &Interconnect{
		Bios:       bios,
		Ram:        NewRAM(),
		ScratchPad: NewScratchPad(),
		Irq:        NewIrqState(),
	}
	return inter
}

// Returns true if any unmasked hardware interrupt is pending
func (inter *Interconnect) IrqPending() bool {
	return inter.Irq.Active()
}

// Records the cache traffic caused by writing a word to RAM at
// physical offset `paddr`: the word is invalidated through both its
// cached aliases, and words in low memory (where the BIOS relocates
// its own code) are pushed back into the cache so a later fetch sees
// the new instruction without a miss
func (inter *Interconnect) queueCacheWrite(paddr, word uint32) {
	paddr &= 0x1fffff
	inter.PendingInvalidates = append(inter.PendingInvalidates,
		paddr, 0x80000000|paddr)
	// the window end is inclusive, the word at 0x10000 still prefills
	if paddr <= 0x10000 {
		inter.PendingPrefills = append(inter.PendingPrefills,
			CachePrefill{Addr: paddr, Word: word},
			CachePrefill{Addr: 0x80000000 | paddr, Word: word})
	}
}

// Invalidates the containing word of a partial (byte or halfword) RAM
// write. Never prefills: the word is not a full instruction write
func (inter *Interconnect) queueCachePartialWrite(paddr uint32) {
	paddr = paddr & 0x1fffff &^ 3
	inter.PendingInvalidates = append(inter.PendingInvalidates,
		paddr, 0x80000000|paddr)
}

// Returns the queued single word invalidations and resets the queue
func (inter *Interconnect) TakePendingInvalidates() []uint32 {
	v := inter.PendingInvalidates
	inter.PendingInvalidates = nil
	return v
}

// Returns the queued range invalidations ([start, end) pairs) and
// resets the queue
func (inter *Interconnect) TakePendingRangeInvalidates() [][2]uint32 {
	v := inter.PendingRangeInvalidates
	inter.PendingRangeInvalidates = nil
	return v
}

// Returns the queued cache prefills and resets the queue
func (inter *Interconnect) TakePendingPrefills() []CachePrefill {
	v := inter.PendingPrefills
	inter.PendingPrefills = nil
	return v
}

// Returns a 32bit little endian value at `addr`. Returns an error if
// the address is not mapped to anything
func (inter *Interconnect) Load32(addr uint32) (uint32, error) {
	masked := maskRegion(addr)

	switch {
	case RAM_RANGE.Contains(masked):
		return inter.Ram.Load32(RAM_RANGE.Offset(masked)), nil
	case BIOS_RANGE.Contains(masked):
		return inter.Bios.Load32(BIOS_RANGE.Offset(masked)), nil
	case SCRATCHPAD_RANGE.Contains(masked):
		if addr >= 0xa0000000 {
			return 0, fmt.Errorf("scratchpad load32 through uncached memory at 0x%x", addr)
		}
		return inter.ScratchPad.Load32(SCRATCHPAD_RANGE.Offset(masked)), nil
	case IRQ_CONTROL.Contains(masked):
		switch IRQ_CONTROL.Offset(masked) {
		case 0:
			return uint32(inter.Irq.Status), nil
		case 4:
			return uint32(inter.Irq.Mask), nil
		}
	case MEM_CONTROL.Contains(masked):
		return inter.MemControl[MEM_CONTROL.Offset(masked)>>2], nil
	case RAM_SIZE.Contains(masked):
		return inter.RamSize, nil
	case CACHE_CONTROL.Contains(masked):
		return inter.CacheControl, nil
	case TIMERS_RANGE.Contains(masked):
		return uint32(inter.timerRegs[TIMERS_RANGE.Offset(masked)>>1]), nil
	case SPU_RANGE.Contains(masked):
		offset := SPU_RANGE.Offset(masked) >> 1
		v := uint32(inter.spuRegs[offset])
		if offset+1 < uint32(len(inter.spuRegs)) {
			v |= uint32(inter.spuRegs[offset+1]) << 16
		}
		return v, nil
	case EXPANSION_1.Contains(masked):
		// no expansion hardware connected
		return 0xffffffff, nil
	}
	return 0, fmt.Errorf("unhandled load32 at address 0x%x", addr)
}

// Load a 16 bit little endian value at `addr`
func (inter *Interconnect) Load16(addr uint32) (uint16, error) {
	masked := maskRegion(addr)

	switch {
	case RAM_RANGE.Contains(masked):
		return inter.Ram.Load16(RAM_RANGE.Offset(masked)), nil
	case BIOS_RANGE.Contains(masked):
		return inter.Bios.Load16(BIOS_RANGE.Offset(masked)), nil
	case SCRATCHPAD_RANGE.Contains(masked):
		if addr >= 0xa0000000 {
			return 0, fmt.Errorf("scratchpad load16 through uncached memory at 0x%x", addr)
		}
		return inter.ScratchPad.Load16(SCRATCHPAD_RANGE.Offset(masked)), nil
	case IRQ_CONTROL.Contains(masked):
		switch IRQ_CONTROL.Offset(masked) {
		case 0:
			return inter.Irq.Status, nil
		case 4:
			return inter.Irq.Mask, nil
		}
	case TIMERS_RANGE.Contains(masked):
		return inter.timerRegs[TIMERS_RANGE.Offset(masked)>>1], nil
	case SPU_RANGE.Contains(masked):
		return inter.spuRegs[SPU_RANGE.Offset(masked)>>1], nil
	case EXPANSION_1.Contains(masked):
		return 0xffff, nil
	}
	return 0, fmt.Errorf("unhandled load16 at address 0x%x", addr)
}

// Fetches the byte at `addr`
func (inter *Interconnect) Load8(addr uint32) (byte, error) {
	masked := maskRegion(addr)

	switch {
	case RAM_RANGE.Contains(masked):
		return inter.Ram.Load8(RAM_RANGE.Offset(masked)), nil
	case BIOS_RANGE.Contains(masked):
		return inter.Bios.Load8(BIOS_RANGE.Offset(masked)), nil
	case SCRATCHPAD_RANGE.Contains(masked):
		if addr >= 0xa0000000 {
			return 0, fmt.Errorf("scratchpad load8 through uncached memory at 0x%x", addr)
		}
		return inter.ScratchPad.Load8(SCRATCHPAD_RANGE.Offset(masked)), nil
	case EXPANSION_1.Contains(masked), EXPANSION_2.Contains(masked):
		return 0xff, nil
	}
	return 0, fmt.Errorf("unhandled load8 at address 0x%x", addr)
}

// Store a 32 bit little endian word `val` into `addr`
func (inter *Interconnect) Store32(addr, val uint32) error {
	masked := maskRegion(addr)

	switch {
	case RAM_RANGE.Contains(masked):
		offset := RAM_RANGE.Offset(masked)
		inter.Ram.Store32(offset, val)
		inter.queueCacheWrite(offset, val)
		return nil
	case SCRATCHPAD_RANGE.Contains(masked):
		if addr >= 0xa0000000 {
			return fmt.Errorf("scratchpad store32 through uncached memory at 0x%x", addr)
		}
		inter.ScratchPad.Store32(SCRATCHPAD_RANGE.Offset(masked), val)
		return nil
	case IRQ_CONTROL.Contains(masked):
		switch IRQ_CONTROL.Offset(masked) {
		case 0:
			inter.Irq.Acknowledge(uint16(val))
			return nil
		case 4:
			inter.Irq.SetMask(uint16(val))
			return nil
		}
	case MEM_CONTROL.Contains(masked):
		offset := MEM_CONTROL.Offset(masked)
		// the base addresses of the expansion regions are fixed on
		// real hardware, the BIOS is expected to write them back
		// unchanged
		switch {
		case offset == 0 && val != 0x1f000000:
			return fmt.Errorf("bad expansion 1 base address 0x%x", val)
		case offset == 4 && val != 0x1f802000:
			return fmt.Errorf("bad expansion 2 base address 0x%x", val)
		}
		inter.MemControl[offset>>2] = val
		return nil
	case RAM_SIZE.Contains(masked):
		inter.RamSize = val
		return nil
	case CACHE_CONTROL.Contains(masked):
		// tag test mode rewrites cache tags, anything cached before
		// it cannot be trusted afterwards
		if val&0x4 != 0 {
			inter.PendingRangeInvalidates = append(inter.PendingRangeInvalidates,
				[2]uint32{0x00000000, RAM_ALLOC_SIZE},
				[2]uint32{0x80000000, 0x80000000 + RAM_ALLOC_SIZE})
		}
		inter.CacheControl = val
		return nil
	case TIMERS_RANGE.Contains(masked):
		// an unaligned bus-level word write may hit the last halfword
		// slot, the high half has nowhere to go then
		offset := TIMERS_RANGE.Offset(masked) >> 1
		inter.timerRegs[offset] = uint16(val)
		if offset+1 < uint32(len(inter.timerRegs)) {
			inter.timerRegs[offset+1] = uint16(val >> 16)
		}
		return nil
	case SPU_RANGE.Contains(masked):
		offset := SPU_RANGE.Offset(masked) >> 1
		inter.spuRegs[offset] = uint16(val)
		if offset+1 < uint32(len(inter.spuRegs)) {
			inter.spuRegs[offset+1] = uint16(val >> 16)
		}
		return nil
	}
	return fmt.Errorf("unhandled store32 at address 0x%x", addr)
}

// Stores a 16 bit little endian value into `addr`
func (inter *Interconnect) Store16(addr uint32, val uint16) error {
	masked := maskRegion(addr)

	switch {
	case RAM_RANGE.Contains(masked):
		offset := RAM_RANGE.Offset(masked)
		inter.Ram.Store16(offset, val)
		inter.queueCachePartialWrite(offset)
		return nil
	case SCRATCHPAD_RANGE.Contains(masked):
		if addr >= 0xa0000000 {
			return fmt.Errorf("scratchpad store16 through uncached memory at 0x%x", addr)
		}
		inter.ScratchPad.Store16(SCRATCHPAD_RANGE.Offset(masked), val)
		return nil
	case IRQ_CONTROL.Contains(masked):
		switch IRQ_CONTROL.Offset(masked) {
		case 0:
			inter.Irq.Acknowledge(val)
			return nil
		case 4:
			inter.Irq.SetMask(val)
			return nil
		}
	case TIMERS_RANGE.Contains(masked):
		inter.timerRegs[TIMERS_RANGE.Offset(masked)>>1] = val
		return nil
	case SPU_RANGE.Contains(masked):
		inter.spuRegs[SPU_RANGE.Offset(masked)>>1] = val
		return nil
	case EXPANSION_2.Contains(masked):
		// debug port, ignore
		return nil
	}
	return fmt.Errorf("unhandled store16 at address 0x%x", addr)
}

// Sets the byte at `addr`
func (inter *Interconnect) Store8(addr uint32, val byte) error {
	masked := maskRegion(addr)

	switch {
	case RAM_RANGE.Contains(masked):
		offset := RAM_RANGE.Offset(masked)
		inter.Ram.Store8(offset, val)
		inter.queueCachePartialWrite(offset)
		return nil
	case SCRATCHPAD_RANGE.Contains(masked):
		if addr >= 0xa0000000 {
			return fmt.Errorf("scratchpad store8 through uncached memory at 0x%x", addr)
		}
		inter.ScratchPad.Store8(SCRATCHPAD_RANGE.Offset(masked), val)
		return nil
	case EXPANSION_2.Contains(masked):
		// debug port, ignore
		return nil
	}
	return fmt.Errorf("unhandled store8 at address 0x%x", addr)
}
