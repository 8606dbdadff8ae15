// Package main provides the entry point for lc3vm, an LC-3 interpreter.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/dputtick/lc3-vm/console"
	"github.com/dputtick/lc3-vm/internal/vmlog"
	"github.com/dputtick/lc3-vm/loader"
	"github.com/dputtick/lc3-vm/vm"
)

var (
	strict  = flag.Bool("strict", false, "treat reserved opcodes as fatal errors")
	verbose = flag.Bool("v", false, "log ambient diagnostics to stderr")
	origin  = flag.Uint("origin", 0, "override the image's load origin (0 uses the image header)")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: lc3vm [options] <program.obj>\n\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	os.Exit(run(flag.Arg(0)))
}

func run(imagePath string) int {
	logger := vmlog.New(nil, slog.LevelInfo)
	if *verbose {
		logger = vmlog.NewStderr(slog.LevelInfo)
	}

	f, err := os.Open(imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lc3vm: %v\n", err)
		return 1
	}
	defer func() { _ = f.Close() }()

	img, err := loader.Load(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lc3vm: %v\n", err)
		return 1
	}
	if *origin != 0 {
		img.Origin = uint16(*origin)
	}

	host := console.NewTerminalHost()
	if err := host.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "lc3vm: %v\n", err)
		return 1
	}
	defer host.Stop()

	mem := vm.NewMemory(host)
	img.LoadInto(mem)

	machine := vm.New(mem, host)
	machine.Strict = *strict
	machine.Logger = logger

	logger.Info("vm start", "origin", fmt.Sprintf("0x%04X", img.Origin), "words", len(img.Words))

	done := make(chan error, 1)
	go func() { done <- machine.Run() }()

	select {
	case <-host.SIGINT:
		return 0
	case err := <-done:
		finalPC := machine.Reg.Snapshot()[vm.RPC]
		logger.Info("vm halt", "instructions", machine.InstructionCount(), "pc", fmt.Sprintf("0x%04X", finalPC))
		if err == nil {
			return 0
		}
		fmt.Fprintf(os.Stderr, "lc3vm: %v\n", err)
		return 1
	}
}
