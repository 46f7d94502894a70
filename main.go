package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"

	"nesforge/cpu6502"
	"nesforge/ines"
	"nesforge/system"
)

// version is stamped by the release process; unset for local builds.
var version = "dev"

func main() {
	cli := parseArgs(os.Args[1:])

	switch cli.mode {
	case romInfosMode:
		runRomInfos(cli.RomInfos)
	case versionMode:
		fmt.Println("nesforge", version)
	default:
		runRom(cli.Run)
	}
}

func runRomInfos(cmd RomInfos) {
	rom, err := ines.Open(cmd.RomPath)
	checkf(err, "failed to open rom")
	rom.PrintInfos(os.Stdout)
}

func runRom(cmd Run) {
	rom, err := ines.Open(cmd.RomPath)
	checkf(err, "failed to open rom")
	if rom.NES20 {
		fatalf("NES 2.0 roms are not supported yet")
	}

	nes, err := system.NewFromRom(rom)
	checkf(err, "failed to load rom")
	nes.Reset(false)

	if cmd.CPUProfile != "" {
		f, err := os.Create(cmd.CPUProfile)
		checkf(err, "failed to create cpu profile")
		checkf(pprof.StartCPUProfile(f), "failed to start cpu profile")
		defer pprof.StopCPUProfile()
	}

	if cmd.Trace != nil {
		defer cmd.Trace.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch {
	case cmd.Frames > 0:
		for i := 0; i < cmd.Frames && !nes.Halted && ctx.Err() == nil; i++ {
			traceFrame(nes, cmd.Trace)
		}
	case cmd.Trace != nil:
		for !nes.Halted && ctx.Err() == nil {
			traceFrame(nes, cmd.Trace)
		}
	default:
		err := nes.Run(ctx, nil, nil)
		if err != nil && ctx.Err() == nil {
			fatalf("emulation halted: %v", err)
		}
	}

	if nes.Halted {
		fatalf("emulation halted: %v", nes.LastError)
	}
}

// traceFrame steps one frame, writing a nestest.log-format line to trace
// before every CPU instruction (cmd.Trace: spec's supplemented execution
// tracing feature).
func traceFrame(nes *system.System, trace *outfile) {
	startFrame := nes.PPU.Frame()
	for nes.PPU.Frame() == startFrame && !nes.Halted {
		if trace != nil && !nes.Bus.InDMA() {
			fmt.Fprintln(trace, cpu6502.Trace(nes.CPU, nes.PPU.Scanline, nes.PPU.Cycle))
		}
		nes.StepInstruction()
	}
}
