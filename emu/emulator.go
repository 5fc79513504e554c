package emu

import (
	"errors"
	"fmt"

	"github.com/retroenv/retrogolib/log"
	emucore "github.com/user-none/eblitui/api"
	"github.com/user-none/echip8/chip8"
	"github.com/user-none/echip8/disasm"
)

// Compile-time interface checks.
var _ emucore.Emulator = (*Emulator)(nil)
var _ emucore.MemoryInspector = (*Emulator)(nil)
var _ emucore.MemoryMapper = (*Emulator)(nil)

const (
	ScreenWidth     = chip8.Width
	MaxScreenHeight = chip8.Height
)

// Emulator drives a CHIP-8 machine one video frame at a time.
type Emulator struct {
	cpu     *chip8.CPU
	keypad  Keypad
	buzzer  *Buzzer
	palette Palette
	logger  *log.Logger

	cfg    Config
	region Region
	timing RegionTiming

	// err holds the fault that halted the machine
	err    error
	frames uint64

	// Pre-allocated output buffers to avoid per-frame allocations
	pixels      []byte
	audioBuffer []int16
}

// NewEmulator creates an emulator with the default configuration and a
// time based seed.
func NewEmulator(rom []byte, region Region) (Emulator, error) {
	cfg := DefaultConfig()
	cfg.Seed = ClockSeed()

	e, err := NewEmulatorWithConfig(rom, cfg)
	if err != nil {
		return Emulator{}, err
	}
	e.SetRegion(region)
	return e, nil
}

// NewEmulatorWithConfig creates an emulator running rom with cfg.
func NewEmulatorWithConfig(rom []byte, cfg Config) (Emulator, error) {
	cfg = cfg.normalize()

	cpu, err := chip8.New(rom, cfg.Seed)
	if err != nil {
		return Emulator{}, fmt.Errorf("loading program: %w", err)
	}

	timing := GetTimingForRegion(DefaultRegion())
	palette, _ := PaletteByName(cfg.Palette)

	e := Emulator{
		cpu:     cpu,
		buzzer:  NewBuzzer(cfg.BuzzerHz, timing.FPS),
		palette: palette,
		logger:  cfg.Logger,
		cfg:     cfg,
		region:  DefaultRegion(),
		timing:  timing,
		pixels:  make([]byte, ScreenWidth*MaxScreenHeight*4),
		// ~800 stereo sample pairs per frame at 48kHz/60fps
		audioBuffer: make([]int16, 0, 2048),
	}
	e.render()

	e.logger.Debug("Program loaded",
		log.Int("size", len(rom)),
		log.Hex("seed", cfg.Seed),
		log.Int("instructions_per_frame", cfg.InstructionsPerFrame))
	return e, nil
}

// RunFrame executes one frame: the configured number of instructions,
// then one timer decrement. A faulted machine only re-renders.
func (e *Emulator) RunFrame() {
	e.audioBuffer = e.audioBuffer[:0]

	if e.err == nil {
		e.runInstructions()
	}

	sounding := e.err == nil && e.cfg.Buzzer && e.cpu.SoundTimer() > 0
	if e.err == nil {
		e.cpu.DecrementTimers()
	}
	e.frames++

	e.render()

	// Convert float32 mono samples to int16 stereo
	// Attenuate by 0.5 to compensate for acoustic summing when both speakers
	// play the same signal
	e.buzzer.SetActive(sounding)
	for _, sample := range e.buzzer.Generate() {
		intSample := int16(sample * 32767 * 0.5)
		e.audioBuffer = append(e.audioBuffer, intSample, intSample)
	}
}

// runInstructions executes up to InstructionsPerFrame instructions and
// stops at the first fault.
func (e *Emulator) runInstructions() {
	for i := 0; i < e.cfg.InstructionsPerFrame; i++ {
		pc := e.cpu.PC()
		ins, err := e.cpu.Tick()
		if err != nil {
			e.halt(err)
			return
		}
		if e.cfg.Trace {
			e.logger.Debug(disasm.Trace(pc, ins))
		}
	}
}

// halt records the fault and stops the machine until Reset.
func (e *Emulator) halt(err error) {
	e.err = err

	var execErr *chip8.ExecError
	if errors.As(err, &execErr) {
		e.logger.Error("Program halted",
			log.Hex("pc", execErr.PC),
			log.String("instruction", disasm.Format(execErr.Instruction)),
			log.Err(execErr.Err))
		return
	}
	e.logger.Error("Program halted", log.Err(err))
}

func (e *Emulator) render() {
	fb := e.cpu.Framebuffer()
	e.palette.Render(&fb, e.pixels)
}

// Err returns the fault that halted the machine, or nil while running.
func (e *Emulator) Err() error {
	return e.err
}

// Reset restarts the program from its initial state and clears any fault.
func (e *Emulator) Reset() {
	e.cpu.Reset()
	e.err = nil
	e.frames = 0
	e.buzzer.SetActive(false)
	e.render()
}

// CPU exposes the machine for debuggers and tests.
func (e *Emulator) CPU() *chip8.CPU {
	return e.cpu
}

// Frames returns the number of frames run since creation or Reset.
func (e *Emulator) Frames() uint64 {
	return e.frames
}

// SetInput unpacks a button bitmask into the keypad. Only player 0 has a keypad.
func (e *Emulator) SetInput(player int, buttons uint32) {
	if player != 0 {
		return
	}
	e.keypad.Set(buttons)

	if key, ok := e.keypad.Pressed(); ok {
		_ = e.cpu.SetKey(key)
	} else {
		e.cpu.ReleaseKey()
	}
}

// GetFramebuffer returns raw RGBA pixel data for current frame.
func (e *Emulator) GetFramebuffer() []byte {
	return e.pixels
}

// GetFramebufferStride returns the stride (bytes per row) of the framebuffer.
func (e *Emulator) GetFramebufferStride() int {
	return ScreenWidth * 4
}

// GetActiveHeight returns the display height, which never changes.
func (e *Emulator) GetActiveHeight() int {
	return MaxScreenHeight
}

// GetAudioSamples returns accumulated audio samples as 16-bit stereo PCM.
func (e *Emulator) GetAudioSamples() []int16 {
	return e.audioBuffer
}

// GetRegion returns the emulator's region setting
func (e *Emulator) GetRegion() Region {
	return e.region
}

// SetRegion updates the emulator's region configuration
func (e *Emulator) SetRegion(region Region) {
	e.region = region
	e.timing = GetTimingForRegion(region)
}

// GetTiming returns FPS and the display row count.
func (e *Emulator) GetTiming() emucore.Timing {
	return emucore.Timing{
		FPS:       e.timing.FPS,
		Scanlines: e.timing.Scanlines,
	}
}

// SetOption applies a core option change identified by key.
func (e *Emulator) SetOption(key string, value string) {
	switch key {
	case OptionCPUSpeed:
		if n, ok := parseSpeed(value); ok {
			e.cfg.InstructionsPerFrame = n
		}
	case OptionPalette:
		if p, ok := PaletteByName(value); ok {
			e.cfg.Palette = value
			e.palette = p
			e.render()
		}
	case OptionBuzzer:
		e.cfg.Buzzer = value == "true"
	}
}

// InstructionsPerFrame returns the current instruction rate.
func (e *Emulator) InstructionsPerFrame() int {
	return e.cfg.InstructionsPerFrame
}

// Close releases any resources held by the emulator.
func (e *Emulator) Close() {}

// =============================================================================
// MemoryInspector interface
// =============================================================================

// ReadMemory reads from a flat address into buf and returns the number
// of bytes read. The flat address space is the 4KB machine memory.
func (e *Emulator) ReadMemory(addr uint32, buf []byte) uint32 {
	if addr >= chip8.MemorySize {
		return 0
	}
	n := uint32(len(buf))
	if addr+n > chip8.MemorySize {
		n = chip8.MemorySize - addr
	}
	data, err := e.cpu.ReadMemory(uint16(addr), int(n))
	if err != nil {
		return 0
	}
	return uint32(copy(buf, data))
}

// =============================================================================
// MemoryMapper interface
// =============================================================================

// MemoryMap returns a list of available memory regions with sizes.
func (e *Emulator) MemoryMap() []emucore.MemoryRegion {
	return []emucore.MemoryRegion{
		{Type: emucore.MemorySystemRAM, Size: chip8.MemorySize},
	}
}

// ReadRegion returns a copy of the specified memory region.
func (e *Emulator) ReadRegion(regionType int) []byte {
	if regionType != emucore.MemorySystemRAM {
		return nil
	}
	data, _ := e.cpu.ReadMemory(0, chip8.MemorySize)
	return data
}

// WriteRegion writes data to the specified memory region.
func (e *Emulator) WriteRegion(regionType int, data []byte) {
	if regionType != emucore.MemorySystemRAM {
		return
	}
	if len(data) > chip8.MemorySize {
		data = data[:chip8.MemorySize]
	}
	_ = e.cpu.WriteMemory(0, data)
}
