package emu

import (
	"strconv"
	"time"

	"github.com/retroenv/retrogolib/log"
)

// Core option keys accepted by SetOption.
const (
	OptionCPUSpeed = "cpu_speed"
	OptionPalette  = "palette"
	OptionBuzzer   = "buzzer"
)

// Instruction rate limits per frame.
const (
	DefaultInstructionsPerFrame = 10
	MinInstructionsPerFrame     = 1
	MaxInstructionsPerFrame     = 1000
)

// DefaultBuzzerHz is the buzzer tone frequency.
const DefaultBuzzerHz = 440

// Config controls how the frame driver runs a program.
type Config struct {
	// InstructionsPerFrame is the number of instructions executed per frame.
	InstructionsPerFrame int
	// Seed seeds the generator behind RND.
	Seed uint64
	// Palette names the display colors: classic, amber or green.
	Palette string
	// Buzzer enables sound while the sound timer is running.
	Buzzer bool
	// BuzzerHz is the buzzer tone frequency.
	BuzzerHz int
	// Trace logs every executed instruction at debug level.
	Trace bool
	// Logger receives fault and trace output. A quiet logger is used when nil.
	Logger *log.Logger
}

// DefaultConfig returns the configuration used by NewEmulator, apart
// from the seed.
func DefaultConfig() Config {
	return Config{
		InstructionsPerFrame: DefaultInstructionsPerFrame,
		Palette:              PaletteClassic,
		Buzzer:               true,
		BuzzerHz:             DefaultBuzzerHz,
	}
}

// ClockSeed returns a seed taken from the wall clock.
func ClockSeed() uint64 {
	return uint64(time.Now().UnixNano())
}

// NewLogger creates a logger with appropriate settings
func NewLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// normalize fills zero values with defaults and clamps the instruction rate.
func (c Config) normalize() Config {
	if c.InstructionsPerFrame == 0 {
		c.InstructionsPerFrame = DefaultInstructionsPerFrame
	}
	c.InstructionsPerFrame = clampSpeed(c.InstructionsPerFrame)
	if c.BuzzerHz <= 0 {
		c.BuzzerHz = DefaultBuzzerHz
	}
	if _, ok := PaletteByName(c.Palette); !ok {
		c.Palette = PaletteClassic
	}
	if c.Logger == nil {
		c.Logger = NewLogger(c.Trace, !c.Trace)
	}
	return c
}

func clampSpeed(n int) int {
	if n < MinInstructionsPerFrame {
		return MinInstructionsPerFrame
	}
	if n > MaxInstructionsPerFrame {
		return MaxInstructionsPerFrame
	}
	return n
}

// parseSpeed parses a cpu_speed option value.
func parseSpeed(value string) (int, bool) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, false
	}
	return clampSpeed(n), true
}
