package emu

import "testing"

// TestConfig_Defaults verifies the default configuration
func TestConfig_Defaults(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.InstructionsPerFrame != 10 {
		t.Errorf("InstructionsPerFrame: expected 10, got %d", cfg.InstructionsPerFrame)
	}
	if cfg.Palette != PaletteClassic {
		t.Errorf("Palette: expected %s, got %s", PaletteClassic, cfg.Palette)
	}
	if !cfg.Buzzer {
		t.Error("Buzzer should be enabled by default")
	}
	if cfg.BuzzerHz != DefaultBuzzerHz {
		t.Errorf("BuzzerHz: expected %d, got %d", DefaultBuzzerHz, cfg.BuzzerHz)
	}
}

// TestConfig_Normalize verifies zero values and out of range values are fixed up
func TestConfig_Normalize(t *testing.T) {
	testCases := []struct {
		name          string
		cfg           Config
		expectedSpeed int
		expectedPal   string
	}{
		{"zero value", Config{}, DefaultInstructionsPerFrame, PaletteClassic},
		{"negative speed", Config{InstructionsPerFrame: -5}, MinInstructionsPerFrame, PaletteClassic},
		{"huge speed", Config{InstructionsPerFrame: 1 << 20}, MaxInstructionsPerFrame, PaletteClassic},
		{"green", Config{InstructionsPerFrame: 30, Palette: PaletteGreen}, 30, PaletteGreen},
		{"unknown palette", Config{Palette: "sepia"}, DefaultInstructionsPerFrame, PaletteClassic},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := tc.cfg.normalize()
			if cfg.InstructionsPerFrame != tc.expectedSpeed {
				t.Errorf("InstructionsPerFrame: expected %d, got %d", tc.expectedSpeed, cfg.InstructionsPerFrame)
			}
			if cfg.Palette != tc.expectedPal {
				t.Errorf("Palette: expected %s, got %s", tc.expectedPal, cfg.Palette)
			}
			if cfg.BuzzerHz != DefaultBuzzerHz {
				t.Errorf("BuzzerHz: expected %d, got %d", DefaultBuzzerHz, cfg.BuzzerHz)
			}
			if cfg.Logger == nil {
				t.Error("Logger should be set")
			}
		})
	}
}

// TestConfig_NewLogger verifies a logger is built for every mode
func TestConfig_NewLogger(t *testing.T) {
	for _, mode := range []struct{ debug, quiet bool }{{false, false}, {true, false}, {false, true}} {
		if NewLogger(mode.debug, mode.quiet) == nil {
			t.Errorf("NewLogger(%v, %v) returned nil", mode.debug, mode.quiet)
		}
	}
}
