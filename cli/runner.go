// Package cli provides a terminal runner for the emulator.
// It handles input polling and draws the display with block characters,
// without a window or the full UI.
package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/retroenv/retrogolib/log"
	"github.com/user-none/echip8/emu"
	"golang.org/x/term"
)

// keyLayout maps typed characters onto the hex keypad, in the usual
// 1234/QWER/ASDF/ZXCV arrangement.
const keyLayout = "1234qwerasdfzxcv"

var layoutKeys = [16]uint8{
	0x1, 0x2, 0x3, 0xC,
	0x4, 0x5, 0x6, 0xD,
	0x7, 0x8, 0x9, 0xE,
	0xA, 0x0, 0xB, 0xF,
}

// holdFrames is how long a typed key stays down. Terminals report
// presses only, never releases.
const holdFrames = 6

const (
	keyCtrlC  = 0x03
	keyEscape = 0x1B
)

// Runner wraps an emulator for terminal mode.
// Like the windowed frontends it is responsible for polling input and
// passing it to the emulator via SetInput().
type Runner struct {
	emulator *emu.Emulator
	logger   *log.Logger

	held  [16]int // frames left per key
	frame bytes.Buffer
}

// NewRunner creates a new Runner wrapping the given emulator.
func NewRunner(e *emu.Emulator, logger *log.Logger) *Runner {
	return &Runner{
		emulator: e,
		logger:   logger,
	}
}

// HandleKey records a typed character and reports whether it asks to quit.
func (r *Runner) HandleKey(b byte) (quit bool) {
	switch b {
	case keyCtrlC, keyEscape:
		return true
	}
	idx := strings.IndexByte(keyLayout, toLower(b))
	if idx >= 0 {
		r.held[layoutKeys[idx]] = holdFrames
	}
	return false
}

// Step feeds the held keys to the emulator and runs one frame.
func (r *Runner) Step() {
	var buttons uint32
	for key, n := range r.held {
		if n > 0 {
			buttons |= emu.KeyButton(uint8(key))
			r.held[key]--
		}
	}
	r.emulator.SetInput(0, buttons)
	r.emulator.RunFrame()
}

// Render writes the display to w. Each text row carries two pixel rows
// using half block characters.
func (r *Runner) Render(w io.Writer) error {
	fb := r.emulator.CPU().Framebuffer()

	r.frame.Reset()
	r.frame.WriteString("\x1b[H")
	for y := 0; y < emu.MaxScreenHeight; y += 2 {
		for x := 0; x < emu.ScreenWidth; x++ {
			top, bottom := fb.Pixel(x, y), fb.Pixel(x, y+1)
			switch {
			case top && bottom:
				r.frame.WriteString("█")
			case top:
				r.frame.WriteString("▀")
			case bottom:
				r.frame.WriteString("▄")
			default:
				r.frame.WriteByte(' ')
			}
		}
		r.frame.WriteString("\r\n")
	}
	if err := r.emulator.Err(); err != nil {
		fmt.Fprintf(&r.frame, "halted: %v\x1b[K\r\n", err)
	}

	if _, err := w.Write(r.frame.Bytes()); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}

// Run puts the terminal in raw mode and runs frames at the emulator's
// frame rate until ctx is done or quit is typed.
//
// Stdin is read by a goroutine that stops forwarding keys once Run
// returns, but it stays blocked in its pending Read until stdin yields
// another byte or is closed.
func (r *Runner) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return fmt.Errorf("stdin is not a terminal")
	}
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil &&
		(w < emu.ScreenWidth || h < emu.MaxScreenHeight/2) {
		r.logger.Warn("Terminal smaller than display", log.Int("columns", w), log.Int("rows", h))
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("setting raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	// clear screen, hide cursor; show it again on exit
	fmt.Fprint(os.Stdout, "\x1b[2J\x1b[?25l")
	defer fmt.Fprint(os.Stdout, "\x1b[?25h\r\n")

	keys := make(chan byte, 16)
	go readKeys(ctx, os.Stdin, keys)

	fps := r.emulator.GetTiming().FPS
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case b, ok := <-keys:
			if !ok || r.HandleKey(b) {
				return nil
			}
		case <-ticker.C:
			r.Step()
			if err := r.Render(os.Stdout); err != nil {
				return err
			}
		}
	}
}

// readKeys forwards bytes from in until it fails or ctx is done.
func readKeys(ctx context.Context, in io.Reader, keys chan<- byte) {
	defer close(keys)
	buf := make([]byte, 1)
	for {
		n, err := in.Read(buf)
		if n > 0 {
			select {
			case keys <- buf[0]:
			case <-ctx.Done():
				return
			}
		}
		if err != nil {
			return
		}
	}
}

func toLower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + 'a' - 'A'
	}
	return b
}
