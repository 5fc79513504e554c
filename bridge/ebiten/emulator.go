//go:build !libretro && !ios

// Package ebiten provides an Ebiten-specific wrapper for the emulator.
package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/user-none/echip8/emu"
)

// Emulator wraps emu.Emulator with Ebiten-specific functionality.
// It implements ebiten.Game so it can be handed straight to ebiten.RunGame.
type Emulator struct {
	*emu.Emulator

	audio *AudioPlayer

	offscreen *ebiten.Image           // Offscreen buffer for native resolution rendering
	drawOpts  ebiten.DrawImageOptions // Pre-allocated draw options to avoid per-frame allocation
}

// NewEmulator wraps e. Audio is optional; a nil player runs silent.
func NewEmulator(e *emu.Emulator, audio *AudioPlayer) *Emulator {
	return &Emulator{
		Emulator: e,
		audio:    audio,
	}
}

// Close releases the audio player.
func (e *Emulator) Close() {
	if e.audio != nil {
		e.audio.Close()
		e.audio = nil
	}
	e.Emulator.Close()
}

// Update implements ebiten.Game.
func (e *Emulator) Update() error {
	// Input is polled by the frontend, the core never reads devices
	e.SetInput(0, PollKeypad(ebiten.IsKeyPressed))

	e.RunFrame()

	if e.audio != nil {
		e.audio.QueueSamples(e.GetAudioSamples())
	}
	return nil
}

// Draw implements ebiten.Game.
func (e *Emulator) Draw(screen *ebiten.Image) {
	e.DrawToScreen(screen)
}

// DrawToScreen renders the emulator framebuffer to the given screen,
// scaled to fit and centered.
func (e *Emulator) DrawToScreen(screen *ebiten.Image) {
	img := e.GetFramebufferImage()
	if img == nil {
		return
	}

	// Calculate scaling to fit window while preserving aspect ratio
	screenW, screenH := screen.Bounds().Dx(), screen.Bounds().Dy()
	nativeW := float64(emu.ScreenWidth)
	nativeH := float64(emu.MaxScreenHeight)

	scaleX := float64(screenW) / nativeW
	scaleY := float64(screenH) / nativeH
	scale := scaleX
	if scaleY < scaleX {
		scale = scaleY
	}

	// Calculate offset to center the image
	offsetX := (float64(screenW) - nativeW*scale) / 2
	offsetY := (float64(screenH) - nativeH*scale) / 2

	e.drawOpts = ebiten.DrawImageOptions{}
	e.drawOpts.GeoM.Scale(scale, scale)
	e.drawOpts.GeoM.Translate(offsetX, offsetY)
	e.drawOpts.Filter = ebiten.FilterNearest
	screen.DrawImage(img, &e.drawOpts)
}

// Layout implements ebiten.Game.
func (e *Emulator) Layout(outsideWidth, outsideHeight int) (int, int) {
	// Return window size so we control scaling in Draw()
	return outsideWidth, outsideHeight
}

// GetFramebufferImage returns the display as an ebiten.Image at native
// resolution, or nil if the framebuffer is short.
func (e *Emulator) GetFramebufferImage() *ebiten.Image {
	if e.offscreen == nil {
		e.offscreen = ebiten.NewImage(emu.ScreenWidth, emu.MaxScreenHeight)
	}

	fb := e.GetFramebuffer()
	requiredLen := e.GetFramebufferStride() * e.GetActiveHeight()
	if len(fb) < requiredLen {
		return nil
	}
	e.offscreen.WritePixels(fb[:requiredLen])
	return e.offscreen
}
