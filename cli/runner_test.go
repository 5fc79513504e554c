package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/retroenv/retrogolib/log"
	"github.com/user-none/echip8/emu"
)

func newTestRunner(t *testing.T, program ...byte) *Runner {
	t.Helper()
	cfg := emu.DefaultConfig()
	cfg.Seed = 1
	cfg.Logger = log.NewTestLogger(t)

	e, err := emu.NewEmulatorWithConfig(program, cfg)
	if err != nil {
		t.Fatalf("NewEmulatorWithConfig failed: %v", err)
	}
	return NewRunner(&e, cfg.Logger)
}

func TestHandleKey_Quit(t *testing.T) {
	r := newTestRunner(t, 0x12, 0x00)

	for _, b := range []byte{0x03, 0x1B} {
		if !r.HandleKey(b) {
			t.Errorf("key $%02X: expected quit", b)
		}
	}
	if r.HandleKey('w') {
		t.Error("w: expected no quit")
	}
}

func TestHandleKey_Layout(t *testing.T) {
	tests := []struct {
		in  byte
		key uint8
	}{
		{'1', 0x1}, {'4', 0xC}, {'q', 0x4}, {'W', 0x5},
		{'r', 0xD}, {'a', 0x7}, {'f', 0xE}, {'z', 0xA},
		{'x', 0x0}, {'c', 0xB}, {'V', 0xF},
	}

	for _, tt := range tests {
		r := newTestRunner(t, 0x12, 0x00)
		r.HandleKey(tt.in)
		if r.held[tt.key] != holdFrames {
			t.Errorf("%q: expected key %X held for %d frames, got %d", tt.in, tt.key, holdFrames, r.held[tt.key])
		}
	}
}

func TestHandleKey_Ignored(t *testing.T) {
	r := newTestRunner(t, 0x12, 0x00)
	r.HandleKey('p')
	for key, n := range r.held {
		if n != 0 {
			t.Errorf("key %X: expected not held, got %d", key, n)
		}
	}
}

func TestStep_DeliversKey(t *testing.T) {
	// 200: LD V0, K
	// 202: JP 202
	r := newTestRunner(t, 0xF0, 0x0A, 0x12, 0x02)

	r.Step()
	if r.emulator.CPU().PC() != 0x200 {
		t.Fatalf("expected PC to wait at $200, got $%03X", r.emulator.CPU().PC())
	}

	r.HandleKey('w')
	r.Step()
	v0, _ := r.emulator.CPU().Register(0)
	if v0 != 0x5 {
		t.Errorf("V0: expected 5, got %d", v0)
	}
}

func TestStep_ReleasesKey(t *testing.T) {
	r := newTestRunner(t, 0x12, 0x00)
	r.HandleKey('1')

	for i := 0; i < holdFrames; i++ {
		r.Step()
		if _, ok := r.emulator.CPU().Key(); !ok {
			t.Fatalf("frame %d: expected key held", i)
		}
	}
	r.Step()
	if _, ok := r.emulator.CPU().Key(); ok {
		t.Error("expected key released after hold expired")
	}
}

func TestRender_HalfBlocks(t *testing.T) {
	// 200: LD V0, 0
	// 202: LD F, V0
	// 204: DRW V0, V0, 5
	// 206: JP 206
	r := newTestRunner(t, 0x60, 0x00, 0xF0, 0x29, 0xD0, 0x05, 0x12, 0x06)
	r.Step()

	var buf bytes.Buffer
	if err := r.Render(&buf); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	out := strings.TrimPrefix(buf.String(), "\x1b[H")
	lines := strings.Split(out, "\r\n")
	if len(lines) != emu.MaxScreenHeight/2+1 {
		t.Fatalf("expected %d lines, got %d", emu.MaxScreenHeight/2+1, len(lines))
	}

	// Glyph 0 is F0 90 90 90 F0
	want := []string{"█▀▀█", "█  █", "▀▀▀▀"}
	for i, w := range want {
		if !strings.HasPrefix(lines[i], w) {
			t.Errorf("line %d: expected prefix %q, got %q", i, w, []rune(lines[i])[:4])
		}
		if n := len([]rune(lines[i])); n != emu.ScreenWidth {
			t.Errorf("line %d: expected %d columns, got %d", i, emu.ScreenWidth, n)
		}
	}
	if strings.TrimSpace(lines[3]) != "" {
		t.Errorf("line 3: expected blank, got %q", lines[3])
	}
}

func TestRender_Halted(t *testing.T) {
	// 200: RET with an empty stack
	r := newTestRunner(t, 0x00, 0xEE)
	r.Step()

	var buf bytes.Buffer
	if err := r.Render(&buf); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(buf.String(), "halted: ") {
		t.Error("expected halt message in frame")
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestRender_WriteError(t *testing.T) {
	r := newTestRunner(t, 0x12, 0x00)
	if err := r.Render(failWriter{}); err == nil {
		t.Error("expected error from failing writer")
	}
}

func TestReadKeys(t *testing.T) {
	keys := make(chan byte, 8)
	readKeys(context.Background(), strings.NewReader("ab"), keys)

	var got []byte
	for b := range keys {
		got = append(got, b)
	}
	if string(got) != "ab" {
		t.Errorf("expected %q, got %q", "ab", got)
	}
}

func TestReadKeys_StopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Unbuffered and never drained: the send can only give way to ctx
	keys := make(chan byte)
	done := make(chan struct{})
	go func() {
		readKeys(ctx, strings.NewReader("abc"), keys)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("readKeys blocked on a send after cancellation")
	}
	if _, ok := <-keys; ok {
		t.Error("expected keys channel closed")
	}
}
