package emuios

import (
	"os"
	"path/filepath"
	"testing"
)

func writeProgram(t *testing.T, program ...byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.ch8")
	if err := os.WriteFile(path, program, 0644); err != nil {
		t.Fatalf("failed to write program: %v", err)
	}
	return path
}

func TestInitFromPath(t *testing.T) {
	defer Close()

	if InitFromPath(filepath.Join(t.TempDir(), "missing.ch8"), 0) {
		t.Fatal("expected failure for missing file")
	}

	path := writeProgram(t, 0x70, 0x01, 0x12, 0x00)
	if !InitFromPath(path, 0) {
		t.Fatal("InitFromPath failed")
	}

	RunFrame()
	if n := len(GetFrameData()); n != FrameWidth()*FrameHeight()*4 {
		t.Errorf("frame data: expected %d bytes, got %d", FrameWidth()*FrameHeight()*4, n)
	}
	if Halted() != "" {
		t.Errorf("expected running, got %q", Halted())
	}
}

func TestSetKey(t *testing.T) {
	defer Close()

	// 200: LD V0, K
	// 202: JP 202
	if !InitFromPath(writeProgram(t, 0xF0, 0x0A, 0x12, 0x02), 0) {
		t.Fatal("InitFromPath failed")
	}

	SetKey(0xB, true)
	RunFrame()
	SetKey(0xB, false)

	v0, _ := currentEmu.core.CPU().Register(0)
	if v0 != 0xB {
		t.Errorf("V0: expected $0B, got $%02X", v0)
	}
}

func TestHalted(t *testing.T) {
	defer Close()

	if !InitFromPath(writeProgram(t, 0x00, 0xEE), 0) {
		t.Fatal("InitFromPath failed")
	}
	RunFrame()
	if Halted() == "" {
		t.Fatal("expected fault after RET with empty stack")
	}

	Reset()
	if Halted() != "" {
		t.Errorf("expected fault cleared after Reset, got %q", Halted())
	}
}

func TestRAM(t *testing.T) {
	defer Close()

	if !InitFromPath(writeProgram(t, 0x12, 0x00), 0) {
		t.Fatal("InitFromPath failed")
	}

	PrepareRAM()
	if RAMLen() != 4096 {
		t.Fatalf("RAMLen: expected 4096, got %d", RAMLen())
	}
	if RAMByte(0x200) != 0x12 || RAMByte(0x201) != 0x00 {
		t.Errorf("program bytes: expected 12 00, got %02X %02X", RAMByte(0x200), RAMByte(0x201))
	}
	if RAMByte(-1) != 0 || RAMByte(4096) != 0 {
		t.Error("expected 0 for out of range index")
	}
}

func TestNoEmulator(t *testing.T) {
	Close()

	RunFrame()
	SetKey(1, true)
	if GetFrameData() != nil {
		t.Error("expected nil frame data")
	}
	if GetAudioData() != nil {
		t.Error("expected nil audio data")
	}
	if Halted() != "" || RAMLen() != 0 {
		t.Error("expected zero values without an emulator")
	}
}

func TestExtractAndStoreROM(t *testing.T) {
	src := writeProgram(t, 0x12, 0x00)
	dest := t.TempDir()

	res, err := ExtractAndStoreROM(src, dest)
	if err != nil {
		t.Fatalf("ExtractAndStoreROM failed: %v", err)
	}
	if res.Filename != "test.ch8" {
		t.Errorf("Filename: expected test.ch8, got %s", res.Filename)
	}
	if GetCRC32FromPath(src) != GetCRC32FromPath(filepath.Join(dest, res.Crc32+".ch8")) {
		t.Error("stored program CRC does not match source")
	}

	// Second store is a no-op
	if _, err := ExtractAndStoreROM(src, dest); err != nil {
		t.Errorf("second ExtractAndStoreROM failed: %v", err)
	}
	if GetCRC32FromPath(filepath.Join(dest, "missing.ch8")) != -1 {
		t.Error("expected -1 for missing file")
	}
}
