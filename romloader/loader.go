// Package romloader handles loading CHIP-8 program images from various
// sources, including compressed archives (ZIP, 7z, gzip, tar.gz, RAR).
package romloader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Magic bytes for format detection
var (
	magicZIP    = []byte{0x50, 0x4B, 0x03, 0x04}
	magicZIPEnd = []byte{0x50, 0x4B, 0x05, 0x06} // empty zip
	magic7z     = []byte{0x37, 0x7A, 0xBC, 0xAF, 0x27, 0x1C}
	magicGzip   = []byte{0x1F, 0x8B}
	magicRAR    = []byte{0x52, 0x61, 0x72, 0x21} // "Rar!"
)

// MaxROMSize is the largest program that fits between 0x200 and 0xFFF.
const MaxROMSize = 0x1000 - 0x200

// programExtensions are the file extensions of raw program images.
var programExtensions = []string{".ch8", ".c8", ".rom"}

// ErrNoProgramFile is returned when no program file is found in an archive
var ErrNoProgramFile = errors.New("no program file found in archive")

// ErrUnsupportedFormat is returned for unrecognized file formats
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ErrFileTooLarge is returned when extracted content exceeds size limit
var ErrFileTooLarge = errors.New("file exceeds maximum size limit")

// ErrEmptyFile is returned when the program image has no bytes
var ErrEmptyFile = errors.New("program file is empty")

// formatType represents the detected file format
type formatType int

const (
	formatUnknown formatType = iota
	formatRaw
	formatZIP
	format7z
	formatGzip
	formatRAR
)

// LoadROM loads a program from a file path. It automatically detects and
// extracts from archives. Returns the program data, the filename of the
// program (useful for display), and any error encountered.
func LoadROM(path string) ([]byte, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	// Read header for magic byte detection
	header := make([]byte, 16)
	n, err := f.Read(header)
	if err != nil && err != io.EOF {
		return nil, "", fmt.Errorf("failed to read file header: %w", err)
	}
	header = header[:n]

	// Detect format
	format := detectFormat(header, path)

	// Reset file position
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, "", fmt.Errorf("failed to seek file: %w", err)
	}

	var data []byte
	var name string
	switch format {
	case formatRaw:
		data, err = limitedRead(f)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read program: %w", err)
		}
		name = filepath.Base(path)

	case formatZIP:
		data, name, err = extractFromZIP(path)

	case format7z:
		data, name, err = extractFrom7z(path)

	case formatGzip:
		data, name, err = extractFromGzip(path)

	case formatRAR:
		data, name, err = extractFromRAR(path)

	default:
		return nil, "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return nil, "", err
	}

	if len(data) == 0 {
		return nil, "", fmt.Errorf("%w: %s", ErrEmptyFile, name)
	}
	return data, name, nil
}

// detectFormat determines the file format based on extension and magic bytes.
// A program extension wins over magic bytes since any two byte pair is a
// valid instruction.
func detectFormat(header []byte, path string) formatType {
	if isProgramFile(path) {
		return formatRaw
	}

	// Check magic bytes
	if len(header) >= 4 {
		if bytes.HasPrefix(header, magicZIP) || bytes.HasPrefix(header, magicZIPEnd) {
			return formatZIP
		}
		if bytes.HasPrefix(header, magicRAR) {
			return formatRAR
		}
	}
	if len(header) >= 6 && bytes.HasPrefix(header, magic7z) {
		return format7z
	}
	if len(header) >= 2 && bytes.HasPrefix(header, magicGzip) {
		return formatGzip
	}

	// Fall back to extension
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip":
		return formatZIP
	case ".7z":
		return format7z
	case ".gz", ".tgz":
		return formatGzip
	case ".rar":
		return formatRAR
	}

	return formatUnknown
}

// isProgramFile checks if a filename has a program extension (case-insensitive)
func isProgramFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range programExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// limitedRead reads from r up to MaxROMSize bytes, returning an error if exceeded
func limitedRead(r io.Reader) ([]byte, error) {
	lr := io.LimitReader(r, MaxROMSize+1)
	data, err := io.ReadAll(lr)
	if err != nil {
		return nil, err
	}
	if len(data) > MaxROMSize {
		return nil, ErrFileTooLarge
	}
	return data, nil
}
