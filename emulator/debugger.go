package emulator

import (
	"fmt"
	"io"
	"os"
)

type Debugger struct {
	Breakpoints      []uint32 // All breakpoint addresses
	ReadWatchpoints  []uint32 // All read watchpoints
	WriteWatchpoints []uint32 // All write watchpoints
	Out              io.Writer
}

func NewDebugger() *Debugger {
	return &Debugger{Out: os.Stdout}
}

// Adds a breakpoint when the instruction at `addr` is about to be executed
func (debugger *Debugger) AddBreakpoint(addr uint32) {
	// check if that breakpoint already exists
	for _, breakpoint := range debugger.Breakpoints {
		if breakpoint == addr {
			return
		}
	}
	debugger.Breakpoints = append(debugger.Breakpoints, addr)
}

// Deletes a breakpoint at `addr`. Does nothing if it doesn't exist
func (debugger *Debugger) DeleteBreakpoint(addr uint32) {
	for idx, breakpoint := range debugger.Breakpoints {
		if breakpoint == addr {
			debugger.Breakpoints = append(debugger.Breakpoints[:idx], debugger.Breakpoints[idx+1:]...)
			return
		}
	}
}

// Adds a memory read watchpoint for `addr`
func (debugger *Debugger) AddReadWatchpoint(addr uint32) {
	for _, watchpoint := range debugger.ReadWatchpoints {
		if watchpoint == addr {
			return
		}
	}
	debugger.ReadWatchpoints = append(debugger.ReadWatchpoints, addr)
}

// Adds a memory write watchpoint for `addr`
func (debugger *Debugger) AddWriteWatchpoint(addr uint32) {
	for _, watchpoint := range debugger.WriteWatchpoints {
		if watchpoint == addr {
			return
		}
	}
	debugger.WriteWatchpoints = append(debugger.WriteWatchpoints, addr)
}

// Deletes a memory read watchpoint at `addr`. Does nothing if it doesn't exist
func (debugger *Debugger) DeleteReadWatchpoint(addr uint32) {
	for idx, watchpoint := range debugger.ReadWatchpoints {
		if watchpoint == addr {
			debugger.ReadWatchpoints = append(
				debugger.ReadWatchpoints[:idx],
				debugger.ReadWatchpoints[idx+1:]...,
			)
			return
		}
	}
}

// Deletes a memory write watchpoint at `addr`. Does nothing if it doesn't exist
func (debugger *Debugger) DeleteWriteWatchpoint(addr uint32) {
	for idx, watchpoint := range debugger.WriteWatchpoints {
		if watchpoint == addr {
			debugger.WriteWatchpoints = append(
				debugger.WriteWatchpoints[:idx],
				debugger.WriteWatchpoints[idx+1:]...,
			)
			return
		}
	}
}

// Called before every instruction, triggers on breakpoints
func (debugger *Debugger) ChangedPC(cpu *CPU) {
	for _, breakpoint := range debugger.Breakpoints {
		if breakpoint == cpu.PC {
			fmt.Fprintf(debugger.Out, "debugger: reached breakpoint 0x%08x\n", cpu.PC)
			debugger.Debug(cpu)
			return
		}
	}
}

// Called when the CPU is about to read a value from memory
func (debugger *Debugger) MemoryRead(cpu *CPU, addr uint32) {
	for _, watchpoint := range debugger.ReadWatchpoints {
		if watchpoint == addr {
			fmt.Fprintf(debugger.Out, "debugger: triggered read watchpoint 0x%08x\n", addr)
			debugger.Debug(cpu)
			return
		}
	}
}

// Called when the CPU is about to write a value to memory
func (debugger *Debugger) MemoryWrite(cpu *CPU, addr uint32) {
	for _, watchpoint := range debugger.WriteWatchpoints {
		if watchpoint == addr {
			fmt.Fprintf(debugger.Out, "debugger: triggered write watchpoint 0x%08x\n", addr)
			debugger.Debug(cpu)
			return
		}
	}
}

// Dumps the CPU state along with the instruction about to execute
func (debugger *Debugger) Debug(cpu *CPU) {
	fmt.Fprintf(debugger.Out, "debugger: 0x%08x: %s\n",
		cpu.PC, Disassemble(cpu.CurrentInstruction))
	cpu.DumpRegisters(debugger.Out)
}

// A bus wrapper that reports every access to the debugger before
// forwarding it. Instruction fetches only show up here on a cache
// miss
type DebugBus struct {
	Inner Bus
	Dbg   *Debugger
	Cpu   *CPU
}

func (bus *DebugBus) Load8(addr uint32) (byte, error) {
	bus.Dbg.MemoryRead(bus.Cpu, addr)
	return bus.Inner.Load8(addr)
}

func (bus *DebugBus) Load16(addr uint32) (uint16, error) {
	bus.Dbg.MemoryRead(bus.Cpu, addr)
	return bus.Inner.Load16(addr)
}

func (bus *DebugBus) Load32(addr uint32) (uint32, error) {
	bus.Dbg.MemoryRead(bus.Cpu, addr)
	return bus.Inner.Load32(addr)
}

func (bus *DebugBus) Store8(addr uint32, val byte) error {
	bus.Dbg.MemoryWrite(bus.Cpu, addr)
	return bus.Inner.Store8(addr, val)
}

func (bus *DebugBus) Store16(addr uint32, val uint16) error {
	bus.Dbg.MemoryWrite(bus.Cpu, addr)
	return bus.Inner.Store16(addr, val)
}

func (bus *DebugBus) Store32(addr uint32, val uint32) error {
	bus.Dbg.MemoryWrite(bus.Cpu, addr)
	return bus.Inner.Store32(addr, val)
}

func (bus *DebugBus) IrqPending() bool {
	return bus.Inner.IrqPending()
}
