package emu

import "github.com/user-none/go-chip-sn76489"

const (
	sampleRate = 48000

	// psgClockHz drives the tone generator. Tone frequency is
	// psgClockHz / (32 * divider).
	psgClockHz = 3579545

	maxToneDivider = 0x3FF

	// buzzerVolume is the channel 0 attenuation while sounding (0 = loudest).
	buzzerVolume = 0x02
	volumeOff    = 0x0F
)

// Buzzer produces the single tone CHIP-8 plays while the sound timer runs.
// It uses tone channel 0 of an SN76489 and keeps the other channels silent.
type Buzzer struct {
	psg            *sn76489.SN76489
	clocksPerFrame int
	active         bool
}

// NewBuzzer creates a silent buzzer tuned to toneHz that produces one
// frame of samples per Generate call at fps.
func NewBuzzer(toneHz int, fps int) *Buzzer {
	samplesPerFrame := sampleRate / fps
	b := &Buzzer{
		psg:            sn76489.New(psgClockHz, sampleRate, samplesPerFrame*2, sn76489.Sega),
		clocksPerFrame: psgClockHz / fps,
	}
	b.SetTone(toneHz)
	b.psg.Write(0x90 | volumeOff)
	return b
}

// toneDivider returns the 10-bit divider closest to hz.
func toneDivider(hz int) uint16 {
	if hz <= 0 {
		return maxToneDivider
	}
	div := psgClockHz / (32 * hz)
	if div < 1 {
		div = 1
	}
	if div > maxToneDivider {
		div = maxToneDivider
	}
	return uint16(div)
}

// SetTone programs the tone frequency.
func (b *Buzzer) SetTone(hz int) {
	div := toneDivider(hz)
	// Latch channel 0 tone with the low 4 bits, then the high 6 bits.
	b.psg.Write(0x80 | uint8(div&0x0F))
	b.psg.Write(uint8(div>>4) & 0x3F)
}

// SetActive opens or mutes the tone channel.
func (b *Buzzer) SetActive(on bool) {
	if on == b.active {
		return
	}
	b.active = on
	if on {
		b.psg.Write(0x90 | buzzerVolume)
	} else {
		b.psg.Write(0x90 | volumeOff)
	}
}

// Active reports whether the buzzer is sounding.
func (b *Buzzer) Active() bool {
	return b.active
}

// Generate runs the tone generator for one frame and returns the mono
// samples. The slice is reused by the next call.
func (b *Buzzer) Generate() []float32 {
	b.psg.GenerateSamples(b.clocksPerFrame)
	buffer, count := b.psg.GetBuffer()
	return buffer[:count]
}
