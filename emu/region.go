package emu

import (
	emucore "github.com/user-none/eblitui/api"
)

// Region is an alias for emucore.Region so frontends can pass theirs through.
type Region = emucore.Region

const (
	RegionNTSC = emucore.RegionNTSC
	RegionPAL  = emucore.RegionPAL
)

// RegionTiming holds frame timing constants for a region
type RegionTiming struct {
	FPS       int // Frames per second
	Scanlines int // Display rows per frame
	TimerHz   int // Delay and sound timer rate
}

// NTSCTiming runs at 60 frames per second with one timer tick per frame.
var NTSCTiming = RegionTiming{
	FPS:       60,
	Scanlines: MaxScreenHeight,
	TimerHz:   60,
}

// PALTiming is identical to NTSCTiming. The interpreter has no video signal,
// and its timers count at 60Hz on every machine, so the frame rate stays
// tied to the timer rate.
var PALTiming = NTSCTiming

// GetTimingForRegion returns the timing constants for r
func GetTimingForRegion(r Region) RegionTiming {
	if r == RegionPAL {
		return PALTiming
	}
	return NTSCTiming
}

// DefaultRegion returns the default region (NTSC).
func DefaultRegion() Region {
	return RegionNTSC
}

// DetectRegionFromROM always reports NTSC. Program images carry no header,
// so the bool is false to tell callers nothing was detected.
func DetectRegionFromROM(rom []byte) (Region, bool) {
	return RegionNTSC, false
}
