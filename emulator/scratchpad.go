package emulator

// 1kb scratchpad (fast RAM)
const SCRATCH_PAD_SIZE = 1024

type ScratchPad struct {
	Data [SCRATCH_PAD_SIZE]byte
}

// Returns a new ScratchPad instance initialized with garbage values
func NewScratchPad() *ScratchPad {
	sp := &ScratchPad{}
	for i := range sp.Data {
		sp.Data[i] = 0xab
	}
	return sp
}

// Fetches the byte at `offset`
func (sp *ScratchPad) Load8(offset uint32) byte {
	return sp.Data[offset]
}

// Load a 16 bit little endian value at `offset`
func (sp *ScratchPad) Load16(offset uint32) uint16 {
	b0 := uint16(sp.Data[offset+0])
	b1 := uint16(sp.Data[offset+1])
	return b0 | (b1 << 8)
}

// Load a 32 bit little endian word at `offset`
func (sp *ScratchPad) Load32(offset uint32) uint32 {
	b0 := uint32(sp.Data[offset+0])
	b1 := uint32(sp.Data[offset+1])
	b2 := uint32(sp.Data[offset+2])
	b3 := uint32(sp.Data[offset+3])
	return b0 | (b1 << 8) | (b2 << 16) | (b3 << 24)
}

// Sets the byte at `offset`
func (sp *ScratchPad) Store8(offset uint32, val byte) {
	sp.Data[offset] = val
}

// Stores a 16 bit little endian value into `offset`
func (sp *ScratchPad) Store16(offset uint32, val uint16) {
	sp.Data[offset+0] = byte(val)
	sp.Data[offset+1] = byte(val >> 8)
}

// Store a 32 bit little endian word `val` into `offset`
func (sp *ScratchPad) Store32(offset, val uint32) {
	sp.Data[offset+0] = byte(val)
	sp.Data[offset+1] = byte(val >> 8)
	sp.Data[offset+2] = byte(val >> 16)
	sp.Data[offset+3] = byte(val >> 24)
}
