package emulator

// Ties the CPU, the interconnect and the emulation clock together and
// drives them in lockstep
type Emulator struct {
	Cpu   *CPU
	Inter *Interconnect
	Th    *TimeHandler
	// Optional debugger. When set, every step checks breakpoints and
	// memory accesses are routed through a watching bus
	Dbg *Debugger

	bus Bus // the bus handed to the CPU, wrapped when debugging
}

// Creates a new emulator around a loaded BIOS image
func NewEmulator(bios *BIOS) *Emulator {
	emu := &Emulator{
		Cpu:   NewCPU(),
		Inter: NewInterconnect(bios),
		Th:    NewTimeHandler(),
	}
	emu.bus = emu.Inter
	return emu
}

// Attaches a debugger. Passing nil detaches it again
func (emu *Emulator) SetDebugger(dbg *Debugger) {
	emu.Dbg = dbg
	if dbg == nil {
		emu.bus = emu.Inter
		return
	}
	emu.bus = &DebugBus{Inner: emu.Inter, Dbg: dbg, Cpu: emu.Cpu}
}

// Runs a single CPU instruction, advances the clock and applies any
// cache coherency traffic the instruction caused
func (emu *Emulator) Step() error {
	if emu.Dbg != nil {
		emu.Dbg.ChangedPC(emu.Cpu)
	}

	cycles, err := emu.Cpu.Step(emu.bus)
	if err != nil {
		return err
	}
	emu.Th.Tick(cycles)
	emu.syncICache()
	return nil
}

// Applies the cache traffic queued by the interconnect to the CPU's
// instruction cache. Invalidations always run before prefills so a
// store that produced both leaves the fresh word in the cache
func (emu *Emulator) syncICache() {
	for _, addr := range emu.Inter.TakePendingInvalidates() {
		emu.Cpu.InvalidateICache(addr)
	}
	for _, r := range emu.Inter.TakePendingRangeInvalidates() {
		emu.Cpu.InvalidateICacheRange(r[0], r[1])
	}
	for _, p := range emu.Inter.TakePendingPrefills() {
		emu.Cpu.PrefillICache(p.Addr, p.Word)
	}
}

// Runs the CPU for at least `cycles` cycles
func (emu *Emulator) RunCycles(cycles uint64) error {
	end := emu.Th.Cycles + cycles
	for emu.Th.Cycles < end {
		if err := emu.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Runs the CPU for one video frame worth of cycles
func (emu *Emulator) RunFrame() error {
	emu.Th.StartFrame()
	for !emu.Th.FrameDone() {
		if err := emu.Step(); err != nil {
			return err
		}
	}
	return nil
}
