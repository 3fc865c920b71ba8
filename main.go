package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/zeozeozeo/gor3000/emulator"
)

func main() {
	// parse arguments
	biosPath := flag.String("bios", "SCPH1001.BIN", "path to the BIOS file")
	frames := flag.Int("frames", 0, "amount of frames to run before exiting (0 = run forever)")
	breakpoint := flag.Uint64("breakpoint", 0, "address to break and dump the CPU state at")
	flag.Parse()

	// start emulator
	bios := loadBios(*biosPath)
	emu := emulator.NewEmulator(bios)

	if *breakpoint != 0 {
		dbg := emulator.NewDebugger()
		dbg.AddBreakpoint(uint32(*breakpoint))
		emu.SetDebugger(dbg)
	}

	for frame := 0; *frames == 0 || frame < *frames; frame++ {
		if err := emu.RunFrame(); err != nil {
			log.Printf("emulation stopped after %d cycles: %v", emu.Th.Cycles, err)
			emu.Cpu.DumpRegisters(os.Stderr)
			os.Exit(1)
		}
	}
}

func loadBios(path string) *emulator.BIOS {
	log.Printf("loading bios \"%s\"", path)
	start := time.Now()

	file, err := os.Open(path)
	if err != nil {
		log.Fatalf("failed to open bios: %v", err)
	}
	defer file.Close()

	bios, err := emulator.LoadBIOS(file)
	if err != nil {
		log.Fatalf("failed to load bios: %v", err)
	}

	log.Printf("loaded bios in %s", time.Since(start))
	return bios
}
