package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
	"github.com/user-none/echip8/cli"
	"github.com/user-none/echip8/emu"
	"github.com/user-none/echip8/romloader"
)

func main() {
	romPath := flag.String("rom", "", "path to program file")
	speed := flag.Int("speed", emu.DefaultInstructionsPerFrame, "instructions per frame")
	seed := flag.Uint64("seed", 0, "random seed (0 picks one from the clock)")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	if *romPath == "" {
		fmt.Println("Usage: chip8term -rom <file> [-speed n] [-seed n] [-debug]")
		os.Exit(1)
	}

	logger := emu.NewLogger(*debug, false)

	program, name, err := romloader.LoadROM(*romPath)
	if err != nil {
		logger.Fatal("Failed to load program", log.String("path", *romPath), log.Err(err))
	}
	logger.Debug("Loaded program", log.String("name", name), log.Int("size", len(program)))

	cfg := emu.DefaultConfig()
	cfg.InstructionsPerFrame = *speed
	cfg.Seed = *seed
	cfg.Buzzer = false
	cfg.Logger = logger
	if cfg.Seed == 0 {
		cfg.Seed = emu.ClockSeed()
	}

	e, err := emu.NewEmulatorWithConfig(program, cfg)
	if err != nil {
		logger.Fatal("Failed to start emulator", log.Err(err))
	}
	defer e.Close()

	if err := cli.NewRunner(&e, logger).Run(app.Context()); err != nil {
		logger.Error("Terminal runner failed", log.Err(err))
		os.Exit(1)
	}
}
