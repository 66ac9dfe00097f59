//go:build ignore
// +build ignore

package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
)

func main() {
	baseDir := filepath.Dir(os.Args[0])
	if len(os.Args) > 1 {
		baseDir = os.Args[1]
	}

	// Create fixture directories
	dirs := []string{"valid", "wrong_size", "opaque_corner", "truncated", "not_png", "missing"}
	for _, dir := range dirs {
		os.MkdirAll(filepath.Join(baseDir, dir), 0755)
	}

	fmt.Println("📁 Создание тестовых наборов иконок...")

	// Correct set all checks should pass on
	createValidSet(baseDir)

	// icon48.png that is actually 32x32
	createWrongSize(baseDir)

	// icon16.png painted edge to edge, corners opaque
	createOpaqueCorner(baseDir)

	// icon128.png cut off mid-stream
	createTruncated(baseDir)

	// icon16.png that is plain text
	createNotPNG(baseDir)

	// Set with icon128.png absent
	createMissing(baseDir)

	fmt.Println("✅ Все тестовые наборы созданы!")
}

// renderIcon paints the expected icon directly: blue disc over the
// whole canvas, white square at quarter margin, transparent elsewhere
func renderIcon(size int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))

	blue := color.NRGBA{0, 122, 204, 255}
	white := color.NRGBA{255, 255, 255, 255}

	c := float64(size) / 2
	r2 := c * c

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) + 0.5 - c
			dy := float64(y) + 0.5 - c
			if dx*dx+dy*dy <= r2 {
				img.SetNRGBA(x, y, blue)
			}
		}
	}

	margin := size / 4
	for y := margin; y <= size-margin; y++ {
		for x := margin; x <= size-margin; x++ {
			img.SetNRGBA(x, y, white)
		}
	}

	return img
}

func writeIcon(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

func createValidSet(baseDir string) {
	for _, size := range []int{16, 48, 128} {
		name := fmt.Sprintf("icon%d.png", size)
		path := filepath.Join(baseDir, "valid", name)
		if err := writeIcon(path, renderIcon(size)); err != nil {
			fmt.Printf("  ✗ Ошибка создания %s: %v\n", name, err)
			continue
		}
		fmt.Printf("  ✓ valid/%s\n", name)
	}
}

func createWrongSize(baseDir string) {
	// Correct sizes except icon48, which carries a 32px image
	writeIcon(filepath.Join(baseDir, "wrong_size", "icon16.png"), renderIcon(16))
	writeIcon(filepath.Join(baseDir, "wrong_size", "icon48.png"), renderIcon(32))
	writeIcon(filepath.Join(baseDir, "wrong_size", "icon128.png"), renderIcon(128))
	fmt.Println("  ✓ wrong_size/icon48.png (32×32)")
}

func createOpaqueCorner(baseDir string) {
	// Blue fill edge to edge, no circle, corners stay opaque
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	blue := color.NRGBA{0, 122, 204, 255}
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.SetNRGBA(x, y, blue)
		}
	}
	white := color.NRGBA{255, 255, 255, 255}
	for y := 4; y <= 12; y++ {
		for x := 4; x <= 12; x++ {
			img.SetNRGBA(x, y, white)
		}
	}

	writeIcon(filepath.Join(baseDir, "opaque_corner", "icon16.png"), img)
	writeIcon(filepath.Join(baseDir, "opaque_corner", "icon48.png"), renderIcon(48))
	writeIcon(filepath.Join(baseDir, "opaque_corner", "icon128.png"), renderIcon(128))
	fmt.Println("  ✓ opaque_corner/icon16.png")
}

func createTruncated(baseDir string) {
	writeIcon(filepath.Join(baseDir, "truncated", "icon16.png"), renderIcon(16))
	writeIcon(filepath.Join(baseDir, "truncated", "icon48.png"), renderIcon(48))

	path := filepath.Join(baseDir, "truncated", "icon128.png")
	if err := writeIcon(path, renderIcon(128)); err != nil {
		fmt.Printf("  ✗ Ошибка создания icon128.png: %v\n", err)
		return
	}

	// Cut the file in half so decoding fails past the header
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("  ✗ Ошибка чтения icon128.png: %v\n", err)
		return
	}
	os.WriteFile(path, data[:len(data)/2], 0644)
	fmt.Println("  ✓ truncated/icon128.png")
}

func createNotPNG(baseDir string) {
	writeIcon(filepath.Join(baseDir, "not_png", "icon48.png"), renderIcon(48))
	writeIcon(filepath.Join(baseDir, "not_png", "icon128.png"), renderIcon(128))

	content := "это не изображение, а обычный текстовый файл\n"
	os.WriteFile(filepath.Join(baseDir, "not_png", "icon16.png"), []byte(content), 0644)
	fmt.Println("  ✓ not_png/icon16.png")
}

func createMissing(baseDir string) {
	writeIcon(filepath.Join(baseDir, "missing", "icon16.png"), renderIcon(16))
	writeIcon(filepath.Join(baseDir, "missing", "icon48.png"), renderIcon(48))
	fmt.Println("  ✓ missing/ (без icon128.png)")
}
