package rasterizer

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// Helper function to encode a rendered icon to PNG bytes
func encodePNG(t *testing.T, size int) []byte {
	t.Helper()
	img, err := Render(size)
	if err != nil {
		t.Fatalf("Render(%d) failed: %v", size, err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode PNG: %v", err)
	}
	return buf.Bytes()
}

func TestEncodeICO_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeICO(&buf, nil); !errors.Is(err, ErrEmptyICO) {
		t.Errorf("expected ErrEmptyICO, got %v", err)
	}
}

func TestEncodeICO_Layout(t *testing.T) {
	pngs := [][]byte{
		encodePNG(t, 16),
		encodePNG(t, 48),
	}

	var buf bytes.Buffer
	if err := EncodeICO(&buf, pngs); err != nil {
		t.Fatalf("EncodeICO failed: %v", err)
	}
	data := buf.Bytes()

	// ICONDIR: reserved 0, type 1, count 2.
	if got := binary.LittleEndian.Uint16(data[0:2]); got != 0 {
		t.Errorf("reserved field = %d, want 0", got)
	}
	if got := binary.LittleEndian.Uint16(data[2:4]); got != 1 {
		t.Errorf("type field = %d, want 1", got)
	}
	if got := binary.LittleEndian.Uint16(data[4:6]); got != 2 {
		t.Errorf("count field = %d, want 2", got)
	}

	// First ICONDIRENTRY: 16x16, 32bpp, payload right after the
	// directory.
	entry := data[6:22]
	if entry[0] != 16 || entry[1] != 16 {
		t.Errorf("first entry dimensions = %dx%d, want 16x16", entry[0], entry[1])
	}
	if got := binary.LittleEndian.Uint16(entry[6:8]); got != 32 {
		t.Errorf("bit count = %d, want 32", got)
	}
	if got := binary.LittleEndian.Uint32(entry[8:12]); got != uint32(len(pngs[0])) {
		t.Errorf("first payload length = %d, want %d", got, len(pngs[0]))
	}
	wantOffset := uint32(6 + 16*2)
	if got := binary.LittleEndian.Uint32(entry[12:16]); got != wantOffset {
		t.Errorf("first payload offset = %d, want %d", got, wantOffset)
	}

	// Payloads are the untouched PNG bytes, in order.
	payloads := data[wantOffset:]
	if !bytes.HasPrefix(payloads, pngs[0]) {
		t.Error("first PNG payload does not match")
	}
	if !bytes.Equal(payloads[len(pngs[0]):], pngs[1]) {
		t.Error("second PNG payload does not match")
	}
}

func TestEncodeICO_RejectsGarbage(t *testing.T) {
	var buf bytes.Buffer
	err := EncodeICO(&buf, [][]byte{[]byte("not a png")})
	if err == nil {
		t.Fatal("expected error for non-PNG payload")
	}
}

func TestIcoDim(t *testing.T) {
	tests := []struct {
		n    int
		want uint8
	}{
		{16, 16},
		{128, 128},
		{255, 255},
		{256, 0},
		{512, 0},
	}
	for _, tt := range tests {
		if got := icoDim(tt.n); got != tt.want {
			t.Errorf("icoDim(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestWriteICO_FromGeneratedSet(t *testing.T) {
	tempDir := t.TempDir()

	gen := NewGenerator()
	gen.SetOutputDir(tempDir)
	gen.SetWriteICO(true)

	result, err := gen.Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if result.ICOPath != filepath.Join(tempDir, ICOFileName) {
		t.Errorf("unexpected ICO path: %s", result.ICOPath)
	}

	data, err := os.ReadFile(result.ICOPath)
	if err != nil {
		t.Fatalf("icon.ico missing: %v", err)
	}
	if got := binary.LittleEndian.Uint16(data[4:6]); got != 3 {
		t.Errorf("ICO entry count = %d, want 3", got)
	}

	// Entry dimensions follow the generated sizes.
	wantDims := []uint8{16, 48, 128}
	for i, want := range wantDims {
		entry := data[6+16*i:]
		if entry[0] != want || entry[1] != want {
			t.Errorf("entry %d dimensions = %dx%d, want %dx%d", i, entry[0], entry[1], want, want)
		}
	}
}

func TestWriteICO_MissingSource(t *testing.T) {
	tempDir := t.TempDir()
	err := WriteICO(filepath.Join(tempDir, "icon.ico"), []string{filepath.Join(tempDir, "absent.png")})
	if err == nil {
		t.Fatal("expected error for missing source file")
	}
}
