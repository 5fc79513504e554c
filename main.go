//go:build !libretro && !ios

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/retroenv/retrogolib/log"
	bridge "github.com/user-none/echip8/bridge/ebiten"
	"github.com/user-none/echip8/emu"
	"github.com/user-none/echip8/romloader"
)

func main() {
	romPath := flag.String("rom", "", "path to program file")
	speed := flag.Int("speed", emu.DefaultInstructionsPerFrame, "instructions per frame")
	seed := flag.Uint64("seed", 0, "random seed (0 picks one from the clock)")
	scale := flag.Int("scale", 10, "window scale")
	palette := flag.String("palette", emu.PaletteClassic, "display palette: classic, amber, or green")
	mute := flag.Bool("mute", false, "disable the buzzer")
	trace := flag.Bool("trace", false, "log every executed instruction")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	if *romPath == "" {
		fmt.Println("Usage: go run main.go -rom <file> [-speed n] [-seed n] [-scale n] [-palette name] [-mute] [-trace] [-debug]")
		os.Exit(1)
	}

	logger := emu.NewLogger(*debug || *trace, false)

	program, name, err := romloader.LoadROM(*romPath)
	if err != nil {
		logger.Fatal("Failed to load program", log.String("path", *romPath), log.Err(err))
	}

	cfg := emu.DefaultConfig()
	cfg.InstructionsPerFrame = *speed
	cfg.Seed = *seed
	cfg.Palette = *palette
	cfg.Buzzer = !*mute
	cfg.Trace = *trace
	cfg.Logger = logger
	if cfg.Seed == 0 {
		cfg.Seed = emu.ClockSeed()
	}

	core, err := emu.NewEmulatorWithConfig(program, cfg)
	if err != nil {
		logger.Fatal("Failed to start emulator", log.Err(err))
	}

	var audio *bridge.AudioPlayer
	if !*mute {
		audio, err = bridge.NewAudioPlayer()
		if err != nil {
			// Keep running without sound
			logger.Warn("Audio unavailable", log.Err(err))
		}
	}

	e := bridge.NewEmulator(&core, audio)
	defer e.Close()

	timing := core.GetTiming()
	ebiten.SetWindowSize(emu.ScreenWidth**scale, emu.MaxScreenHeight**scale)
	ebiten.SetWindowTitle(fmt.Sprintf("%s - %s", emu.Name, name))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(timing.FPS)

	if err := ebiten.RunGame(e); err != nil {
		logger.Fatal("Emulation failed", log.Err(err))
	}
}
