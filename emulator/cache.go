package emulator

// Instruction cache: a sparse mapping from instruction address to the
// 32 bit word that was visible there when the address was first fetched
// (or explicitly prefilled by the bus).
//
// Entries are sticky: once code has been seen at an address it stays
// cached until explicitly invalidated, no matter what is written to
// memory afterwards. This is not real hardware cache-line replacement,
// it is the minimal contract that keeps the BIOS boot sequence working:
// the BIOS copies code to low RAM, then zeroes RAM while executing from
// it, relying on the instruction cache still holding the copied code
type ICache struct {
	Entries map[uint32]uint32
}

// Creates a new, empty instruction cache
func NewICache() *ICache {
	return &ICache{Entries: make(map[uint32]uint32)}
}

// Returns the cached word at `addr` and whether the fetch was a hit
func (cache *ICache) Fetch(addr uint32) (uint32, bool) {
	word, ok := cache.Entries[addr&^3]
	return word, ok
}

// Inserts `word` at `addr` if the address is not cached yet. Called by
// the fetch path after a cache miss, so an existing entry is never
// overwritten through here
func (cache *ICache) Store(addr, word uint32) {
	addr &^= 3
	if _, ok := cache.Entries[addr]; !ok {
		cache.Entries[addr] = word
	}
}

// Explicit external insert/overwrite, used by the bus when code is
// copied into memory before it is first executed from there
func (cache *ICache) Prefill(addr, word uint32) {
	cache.Entries[addr&^3] = word
}

// Removes the entry at `addr`. Does nothing if the address is not cached
func (cache *ICache) Invalidate(addr uint32) {
	delete(cache.Entries, addr&^3)
}

// Removes all entries in the half-open range [start, end). Used when the
// bus detects a bulk write to a region that might contain already
// fetched code (DMA, executable loading)
func (cache *ICache) InvalidateRange(start, end uint32) {
	if start >= end {
		return
	}
	start &^= 3

	// for huge ranges it's cheaper to walk the entries instead
	if (end-start)/4 >= uint32(len(cache.Entries)) {
		for addr := range cache.Entries {
			if addr >= start && addr < end {
				delete(cache.Entries, addr)
			}
		}
		return
	}

	for addr := start; addr < end; addr += 4 {
		delete(cache.Entries, addr)
	}
}

// Removes all entries. Called on processor reset
func (cache *ICache) Clear() {
	cache.Entries = make(map[uint32]uint32)
}

// Returns the amount of cached instructions
func (cache *ICache) Len() int {
	return len(cache.Entries)
}
