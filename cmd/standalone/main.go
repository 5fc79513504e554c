//go:build !libretro && !ios

package main

import (
	"flag"
	"log"
	"strconv"

	"github.com/user-none/eblitui/standalone"
	"github.com/user-none/echip8/adapter"
	"github.com/user-none/echip8/emu"
)

func main() {
	romPath := flag.String("rom", "", "path to program file (opens UI if not provided)")
	speed := flag.Int("speed", emu.DefaultInstructionsPerFrame, "instructions per frame")
	palette := flag.String("palette", emu.PaletteClassic, "display palette: classic, amber, or green")
	mute := flag.Bool("mute", false, "disable the buzzer")
	flag.Parse()

	factory := &adapter.Factory{}

	if *romPath != "" {
		options := map[string]string{
			emu.OptionCPUSpeed: strconv.Itoa(*speed),
			emu.OptionPalette:  *palette,
		}
		if *mute {
			options[emu.OptionBuzzer] = "false"
		}
		if err := standalone.RunDirect(factory, *romPath, "ntsc", options); err != nil {
			log.Fatal(err)
		}
		return
	}

	if err := standalone.Run(factory); err != nil {
		log.Fatal(err)
	}
}
