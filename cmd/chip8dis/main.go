package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/retroenv/retrogolib/log"
	"github.com/user-none/echip8/chip8"
	"github.com/user-none/echip8/disasm"
	"github.com/user-none/echip8/emu"
	"github.com/user-none/echip8/romloader"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: chip8dis <file>")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	logger := emu.NewLogger(false, true)

	program, _, err := romloader.LoadROM(flag.Arg(0))
	if err != nil {
		logger.Fatal("Failed to load program", log.String("path", flag.Arg(0)), log.Err(err))
	}

	if err := disasm.Write(os.Stdout, disasm.Disassemble(program, chip8.ProgramStart)); err != nil {
		logger.Fatal("Failed to write listing", log.Err(err))
	}
}
