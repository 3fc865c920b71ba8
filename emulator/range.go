package emulator

var (
	// RAM, mirrored 4 times over the first 8MB
	RAM_RANGE = NewRange(0x00000000, RAM_ALLOC_SIZE*4)
	// Expansion region 1 (parallel port)
	EXPANSION_1 = NewRange(0x1f000000, 512*1024)
	// 1KB of fast RAM carved out of the data cache
	SCRATCHPAD_RANGE = NewRange(0x1f800000, SCRATCH_PAD_SIZE)
	// Memory latency and expansion mapping (also known as SYSCONTROL)
	MEM_CONTROL = NewRange(0x1f801000, 36)
	// Register that has something to do with RAM configuration, configured by the BIOS
	RAM_SIZE = NewRange(0x1f801060, 4)
	// Interrupt status and mask registers
	IRQ_CONTROL = NewRange(0x1f801070, 8)
	// The three hardware timers
	TIMERS_RANGE = NewRange(0x1f801100, 0x30)
	// SPU registers
	SPU_RANGE = NewRange(0x1f801c00, 640)
	// Expansion region 2 (debug port)
	EXPANSION_2 = NewRange(0x1f802000, 66)
	// The range of the BIOS in the system memory
	BIOS_RANGE = NewRange(0x1fc00000, BIOS_SIZE)
	// Cache control register, full address since it's in KSEG2
	CACHE_CONTROL = NewRange(0xfffe0130, 4)
)

// Mask array used to strip the region bits of a CPU address. The
// mask is selected by the 3 most significant bits of the address
var REGION_MASK = [8]uint32{
	// KUSEG: 2048MB
	0xffffffff, 0xffffffff, 0xffffffff, 0xffffffff,
	// KSEG0: 512MB
	0x7fffffff,
	// KSEG1: 512MB
	0x1fffffff,
	// KSEG2: 1024MB
	0xffffffff, 0xffffffff,
}

// Masks a CPU address to remove the region bits, so that KUSEG, KSEG0
// and KSEG1 all map to the same physical addresses
func maskRegion(addr uint32) uint32 {
	return addr & REGION_MASK[addr>>29]
}

type Range struct {
	Start  uint32 // Start address
	Length uint32 // Length of the mapping
}

func NewRange(start uint32, length uint32) Range {
	return Range{Start: start, Length: length}
}

// Returns whether `addr` is located inside this range
func (r *Range) Contains(addr uint32) bool {
	return addr >= r.Start && addr < r.Start+r.Length
}

// Returns the offset between `addr` and the `Start` of the range.
// Does not check if the range contains the address, so if `addr`
// is smaller than `Start`, there will be an overflow
func (r *Range) Offset(addr uint32) uint32 {
	return addr - r.Start
}
