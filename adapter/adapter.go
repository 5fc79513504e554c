package adapter

import (
	"fmt"

	emucore "github.com/user-none/eblitui/api"
	"github.com/user-none/echip8/emu"
)

// Compile-time interface check.
var _ emucore.CoreFactory = (*Factory)(nil)

// keypadLayout pairs each keypad key with its default keyboard key. The
// rows follow the COSMAC VIP keypad laid over 1234/QWER/ASDF/ZXCV.
var keypadLayout = [16]string{
	0x1: "1", 0x2: "2", 0x3: "3", 0xC: "4",
	0x4: "Q", 0x5: "W", 0x6: "E", 0xD: "R",
	0x7: "A", 0x8: "S", 0x9: "D", 0xE: "F",
	0xA: "Z", 0x0: "X", 0xB: "C", 0xF: "V",
}

// padLayout maps the keys most programs use for actions onto pad buttons.
var padLayout = map[uint8]string{
	0x5: "A",
	0x0: "B",
	0xF: "Start",
}

// Factory implements emucore.CoreFactory for the CHIP-8 interpreter.
type Factory struct{}

// SystemInfo returns system metadata for UI configuration.
func (f *Factory) SystemInfo() emucore.SystemInfo {
	return emucore.SystemInfo{
		Name:            emu.Name,
		ConsoleName:     "CHIP-8",
		Extensions:      []string{".ch8", ".c8", ".rom"},
		ScreenWidth:     emu.ScreenWidth,
		MaxScreenHeight: emu.MaxScreenHeight,
		AspectRatio:     2.0,
		SampleRate:      48000,
		Buttons:         buttons(),
		Players:         1,
		CoreOptions: []emucore.CoreOption{
			{
				Key:         emu.OptionBuzzer,
				Label:       "Buzzer",
				Description: "Play a tone while the sound timer runs",
				Type:        emucore.CoreOptionBool,
				Default:     "true",
			},
		},
		RDBName:       "CHIP-8",
		ThumbnailRepo: "CHIP-8",
		DataDirName:   emu.Name,
		CoreName:      emu.Name,
		CoreVersion:   emu.Version,
	}
}

// buttons lists the sixteen keypad keys as frontend buttons.
func buttons() []emucore.Button {
	out := make([]emucore.Button, 0, 16)
	for key := uint8(0); key < 16; key++ {
		out = append(out, emucore.Button{
			Name:       fmt.Sprintf("Key %X", key),
			ID:         emu.KeyBitBase + int(key),
			DefaultKey: keypadLayout[key],
			DefaultPad: padLayout[key],
		})
	}
	return out
}

// CreateEmulator creates a new emulator instance with the given program and region.
func (f *Factory) CreateEmulator(rom []byte, region emucore.Region) (emucore.Emulator, error) {
	e, err := emu.NewEmulator(rom, region)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// DetectRegion reports the region for a program. Programs carry no
// region, so the bool is always false.
func (f *Factory) DetectRegion(rom []byte) (emucore.Region, bool) {
	return emu.DetectRegionFromROM(rom)
}
