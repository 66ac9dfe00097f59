package rasterizer

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image/png"
	"io"
	"os"
)

// ICOFileName is the conventional name of the bundled ICO container.
const ICOFileName = "icon.ico"

var ErrEmptyICO = errors.New("no images for ICO container")

// icoDir is the ICONDIR header of the Windows ICO format.
type icoDir struct {
	Reserved uint16
	Type     uint16
	Count    uint16
}

// icoDirEntry is one ICONDIRENTRY. Width and Height are single bytes
// where zero means 256 pixels.
type icoDirEntry struct {
	Width    uint8
	Height   uint8
	Colors   uint8
	Reserved uint8
	Planes   uint16
	BitCount uint16
	Length   uint32
	Offset   uint32
}

// EncodeICO writes the given PNG payloads into a single ICO container.
// Entries keep the given order; dimensions are read from each PNG
// header.
func EncodeICO(w io.Writer, pngs [][]byte) error {
	if len(pngs) == 0 {
		return ErrEmptyICO
	}

	dir := icoDir{Type: 1, Count: uint16(len(pngs))}
	if err := binary.Write(w, binary.LittleEndian, dir); err != nil {
		return fmt.Errorf("failed to write ICO header: %w", err)
	}

	// Payloads start right after the directory: 6 header bytes plus 16
	// per entry.
	offset := uint32(6 + 16*len(pngs))
	for _, data := range pngs {
		cfg, err := png.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("failed to read PNG header: %w", err)
		}
		entry := icoDirEntry{
			Width:    icoDim(cfg.Width),
			Height:   icoDim(cfg.Height),
			Planes:   1,
			BitCount: 32,
			Length:   uint32(len(data)),
			Offset:   offset,
		}
		if err := binary.Write(w, binary.LittleEndian, entry); err != nil {
			return fmt.Errorf("failed to write ICO directory entry: %w", err)
		}
		offset += uint32(len(data))
	}

	for _, data := range pngs {
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("failed to write ICO payload: %w", err)
		}
	}
	return nil
}

// icoDim converts a pixel dimension to the single-byte ICO field.
func icoDim(n int) uint8 {
	if n >= 256 {
		return 0
	}
	return uint8(n)
}

// WriteICO bundles already-written PNG files into an ICO container at
// path, overwriting any existing file.
func WriteICO(path string, pngPaths []string) error {
	pngs := make([][]byte, 0, len(pngPaths))
	for _, p := range pngPaths {
		data, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", p, err)
		}
		pngs = append(pngs, data)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := EncodeICO(f, pngs); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
