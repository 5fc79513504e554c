// Package emuios provides a gomobile-compatible interface to the emulator.
package emuios

import (
	"fmt"
	"hash/crc32"
	"os"
	"path/filepath"

	emucore "github.com/user-none/eblitui/api"
	"github.com/user-none/echip8/emu"
	"github.com/user-none/echip8/romloader"
)

// ExtractResult contains the result of program extraction
type ExtractResult struct {
	Crc32    string // Hex string, e.g., "AABBCCDD"
	Filename string // Original filename from archive, e.g., "PONG.ch8"
}

// currentEmu holds the emulator state (unexported)
var currentEmu *emulatorState

type emulatorState struct {
	core      emu.Emulator
	audioData []byte
	ramData   []byte
}

// InitFromPath creates an emulator from a program file path.
// Automatically extracts from ZIP/7z/gzip/RAR if needed.
// speed is the instruction rate per frame; 0 selects the default.
// Returns true on success, false on error.
func InitFromPath(path string, speed int) bool {
	rom, _, err := romloader.LoadROM(path)
	if err != nil {
		return false
	}

	cfg := emu.DefaultConfig()
	cfg.InstructionsPerFrame = speed
	cfg.Seed = emu.ClockSeed()

	core, err := emu.NewEmulatorWithConfig(rom, cfg)
	if err != nil {
		return false
	}
	currentEmu = &emulatorState{core: core}
	return true
}

// Close releases the emulator.
func Close() {
	if currentEmu != nil {
		currentEmu.core.Close()
	}
	currentEmu = nil
}

// Reset restarts the loaded program.
func Reset() {
	if currentEmu != nil {
		currentEmu.core.Reset()
	}
}

// RunFrame executes one frame of emulation.
func RunFrame() {
	if currentEmu == nil {
		return
	}
	currentEmu.core.RunFrame()

	// Convert audio samples to bytes
	samples := currentEmu.core.GetAudioSamples()
	if len(samples) > 0 {
		currentEmu.audioData = make([]byte, len(samples)*2)
		for i, s := range samples {
			currentEmu.audioData[i*2] = byte(s)
			currentEmu.audioData[i*2+1] = byte(s >> 8)
		}
	} else {
		currentEmu.audioData = nil
	}
}

// FrameWidth returns the display width (always 64).
func FrameWidth() int {
	return emu.ScreenWidth
}

// FrameHeight returns the display height (always 32).
func FrameHeight() int {
	return emu.MaxScreenHeight
}

// GetFrameData returns the RGBA frame buffer.
func GetFrameData() []byte {
	if currentEmu == nil {
		return nil
	}
	return currentEmu.core.GetFramebuffer()
}

// GetAudioData returns the entire audio buffer.
func GetAudioData() []byte {
	if currentEmu == nil {
		return nil
	}
	return currentEmu.audioData
}

// SetInput sets the keypad state from a button mask.
// Bits 0-3 are the d-pad, bits 4-19 are keys 0-F.
func SetInput(buttons int) {
	if currentEmu != nil {
		currentEmu.core.SetInput(0, uint32(buttons))
	}
}

// SetKey reports a single keypad key held or released.
func SetKey(key int, down bool) {
	if currentEmu == nil || key < 0 || key > 0xF {
		return
	}
	var buttons uint32
	if down {
		buttons = emu.KeyButton(uint8(key))
	}
	currentEmu.core.SetInput(0, buttons)
}

// SetOption forwards a core option, e.g. "palette" or "buzzer".
func SetOption(key, value string) {
	if currentEmu != nil {
		currentEmu.core.SetOption(key, value)
	}
}

// Halted returns the fault message, or an empty string while running.
func Halted() string {
	if currentEmu == nil {
		return ""
	}
	if err := currentEmu.core.Err(); err != nil {
		return err.Error()
	}
	return ""
}

// PrepareRAM copies machine memory to an internal buffer.
func PrepareRAM() {
	if currentEmu == nil {
		return
	}
	currentEmu.ramData = currentEmu.core.ReadRegion(emucore.MemorySystemRAM)
}

// RAMLen returns the prepared memory length (4096).
func RAMLen() int {
	if currentEmu == nil {
		return 0
	}
	return len(currentEmu.ramData)
}

// RAMByte returns a single byte from prepared memory at index i.
func RAMByte(i int) int {
	if currentEmu == nil || i < 0 || i >= len(currentEmu.ramData) {
		return 0
	}
	return int(currentEmu.ramData[i])
}

// GetFPS returns the target FPS.
func GetFPS() int {
	return emu.GetTimingForRegion(emu.DefaultRegion()).FPS
}

// GetCRC32FromPath calculates the CRC32 checksum of a program file.
// Automatically extracts from ZIP/7z/gzip/RAR if needed.
// Returns -1 on error.
func GetCRC32FromPath(path string) int64 {
	rom, _, err := romloader.LoadROM(path)
	if err != nil {
		return -1
	}

	return int64(crc32.ChecksumIEEE(rom))
}

// ExtractAndStoreROM extracts a program from an archive (or copies a raw
// file), calculates its CRC32, and stores it as {destDir}/{CRC32}.ch8.
// If a file with the same CRC32 already exists, it skips writing.
// Returns the CRC32 and original filename on success, or an error.
func ExtractAndStoreROM(srcPath, destDir string) (*ExtractResult, error) {
	rom, filename, err := romloader.LoadROM(srcPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load program: %w", err)
	}

	crc := crc32.ChecksumIEEE(rom)
	crcHex := fmt.Sprintf("%08X", crc)

	destPath := filepath.Join(destDir, crcHex+".ch8")

	// Skip write if file already exists (same CRC = same content)
	if _, err := os.Stat(destPath); err == nil {
		return &ExtractResult{Crc32: crcHex, Filename: filename}, nil
	}

	if err := os.WriteFile(destPath, rom, 0644); err != nil {
		return nil, fmt.Errorf("failed to write program: %w", err)
	}

	return &ExtractResult{Crc32: crcHex, Filename: filename}, nil
}
